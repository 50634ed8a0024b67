// Package container provides dependency injection for the history-csv application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/history-csv/internal/analyser"
	"fjacquet/history-csv/internal/batch"
	"fjacquet/history-csv/internal/common"
	"fjacquet/history-csv/internal/config"
	"fjacquet/history-csv/internal/factory"
	"fjacquet/history-csv/internal/ingest"
	"fjacquet/history-csv/internal/logging"
	"fjacquet/history-csv/internal/report"
	"fjacquet/history-csv/internal/store"
	"fjacquet/history-csv/internal/validation"
)

// Container holds all application dependencies and provides methods to access them.
// It is immutable after creation; fields are only reachable through getters.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	manifests *store.ManifestStore
	pipeline  *ingest.Pipeline
	batch     *batch.BatchIngester
	reporter  *report.ReportGenerator
}

// NewContainer creates and wires all application dependencies, with a logrus
// logger configured from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg)))
}

// NewContainerWithLogger is NewContainer with an externally supplied logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	tableIO := common.NewTableIO(logger, cfg.DelimiterRune(), cfg.CSV.TimeLayout)
	validators := validation.DefaultValidators(logger)
	manifests := store.NewManifestStore(logger)

	pipeline := ingest.NewPipeline(logger, tableIO, validators, factory.NewExtractorFactory(), manifests, ingest.Options{
		Concurrent:    cfg.Ingest.Concurrent,
		WriteManifest: cfg.Ingest.WriteManifest,
	})

	logger.Debug("Container initialized successfully",
		logging.F("validators_count", len(validators)),
		logging.F("concurrent", cfg.Ingest.Concurrent))

	return &Container{
		logger:    logger,
		config:    cfg,
		manifests: manifests,
		pipeline:  pipeline,
		batch:     batch.NewBatchIngester(logger, pipeline),
		reporter:  report.NewReportGenerator(logger),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetManifestStore returns the run manifest store.
func (c *Container) GetManifestStore() *store.ManifestStore {
	return c.manifests
}

// GetPipeline returns the ingest pipeline.
func (c *Container) GetPipeline() *ingest.Pipeline {
	return c.pipeline
}

// GetBatchIngester returns the directory-wide ingester built on the pipeline.
func (c *Container) GetBatchIngester() *batch.BatchIngester {
	return c.batch
}

// GetReportGenerator returns the summary renderer.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reporter
}

// NewTransactionAnalyser loads the transaction file at path with the
// configured delimiter.
func (c *Container) NewTransactionAnalyser(path string) (*analyser.TransactionAnalyser, error) {
	return analyser.NewTransactionAnalyser(c.logger, path, c.config.DelimiterRune())
}

// Close performs cleanup of container resources. The root command calls it
// once the selected subcommand has finished.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
