// Package ingest drives a full run: load the export, validate it, split it
// into the four history categories and persist each category.
package ingest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"
	"time"

	"fjacquet/history-csv/internal/common"
	"fjacquet/history-csv/internal/extractor"
	"fjacquet/history-csv/internal/fileutils"
	"fjacquet/history-csv/internal/logging"
	"fjacquet/history-csv/internal/models"
	"fjacquet/history-csv/internal/parsererror"
	"fjacquet/history-csv/internal/store"
	"fjacquet/history-csv/internal/validation"

	"github.com/google/uuid"
)

// ExtractorProvider resolves the extractor for a history category.
// *factory.ExtractorFactory satisfies it.
type ExtractorProvider interface {
	GetExtractor(historyType models.HistoryType) (extractor.Extractor, error)
}

// Options tune a Pipeline.
type Options struct {
	// Concurrent runs the four extractions in parallel.
	Concurrent bool
	// WriteManifest saves models.ManifestFileName after a successful run.
	WriteManifest bool
}

// CategoryResult describes one persisted category.
type CategoryResult struct {
	Type models.HistoryType
	Path string
	Rows int
}

// Result summarizes a successful run.
type Result struct {
	RunID      string
	Input      string
	OutputDir  string
	TotalRows  int
	Categories []CategoryResult
	Duration   time.Duration
}

// Rows returns the row count of historyType, or 0 if it is not part of r.
func (r *Result) Rows(historyType models.HistoryType) int {
	for _, c := range r.Categories {
		if c.Type == historyType {
			return c.Rows
		}
	}
	return 0
}

// Pipeline runs the load, validate, extract and persist sequence.
type Pipeline struct {
	logger     logging.Logger
	tableIO    *common.TableIO
	validators []validation.Validator
	extractors ExtractorProvider
	manifests  store.ManifestRepository
	options    Options
	now        func() time.Time
}

// NewPipeline creates a Pipeline. manifests may be nil when Options.WriteManifest
// is false.
func NewPipeline(
	logger logging.Logger,
	tableIO *common.TableIO,
	validators []validation.Validator,
	extractors ExtractorProvider,
	manifests store.ManifestRepository,
	options Options,
) *Pipeline {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Pipeline{
		logger:     logger,
		tableIO:    tableIO,
		validators: validators,
		extractors: extractors,
		manifests:  manifests,
		options:    options,
		now:        time.Now,
	}
}

// Run ingests the export at inputPath and writes one CSV per category into
// outputDir. Either all category files of the run are written or none are.
func (p *Pipeline) Run(inputPath, outputDir string) (*Result, error) {
	start := p.now()
	runID := uuid.NewString()
	logger := p.logger.WithFields(
		logging.F(logging.FieldRunID, runID),
		logging.F(logging.FieldInputFile, inputPath),
	)

	table, err := p.tableIO.ReadTableFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", inputPath, err)
	}

	if err := validation.Run(table, p.validators...); err != nil {
		logger.WithError(err).Error("Validation failed")
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	historyTypes := models.AllHistoryTypes()
	tables, err := p.extractAll(table, historyTypes)
	if err != nil {
		return nil, err
	}

	if err := checkPartition(table, historyTypes, tables); err != nil {
		logger.WithError(err).Error("Categorization is not a partition of the input")
		return nil, err
	}

	categories, err := p.persist(outputDir, historyTypes, tables)
	if err != nil {
		return nil, err
	}

	result := &Result{
		RunID:      runID,
		Input:      inputPath,
		OutputDir:  outputDir,
		TotalRows:  table.Len(),
		Categories: categories,
	}

	if p.options.WriteManifest && p.manifests != nil {
		if err := p.manifests.Save(outputDir, buildManifest(result, p.now())); err != nil {
			return nil, fmt.Errorf("failed to save manifest: %w", err)
		}
	}

	result.Duration = p.now().Sub(start)
	fields := []logging.Field{
		logging.F(logging.FieldOutputDir, outputDir),
		logging.F(logging.FieldCount, result.TotalRows),
		logging.F(logging.FieldDuration, result.Duration.Milliseconds()),
	}
	for _, c := range categories {
		fields = append(fields, logging.F(c.Type.String(), c.Rows))
	}
	logger.Info("Ingest completed", fields...)

	return result, nil
}

func (p *Pipeline) extractAll(table *models.Table, historyTypes []models.HistoryType) ([]*models.Table, error) {
	tables := make([]*models.Table, len(historyTypes))
	errs := make([]error, len(historyTypes))

	extract := func(i int) {
		historyType := historyTypes[i]
		e, err := p.extractors.GetExtractor(historyType)
		if err != nil {
			errs[i] = err
			return
		}
		tables[i], errs[i] = e.Extract(table)
		if errs[i] == nil {
			p.logger.Debug("Extracted category",
				logging.F(logging.FieldCategory, historyType.String()),
				logging.F(logging.FieldCount, tables[i].Len()))
		}
	}

	if p.options.Concurrent {
		var wg sync.WaitGroup
		for i := range historyTypes {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				extract(i)
			}(i)
		}
		wg.Wait()
	} else {
		for i := range historyTypes {
			extract(i)
			if errs[i] != nil {
				break
			}
		}
	}

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("failed to extract %s rows: %w", historyTypes[i], err)
		}
	}
	return tables, nil
}

func checkPartition(table *models.Table, historyTypes []models.HistoryType, tables []*models.Table) error {
	counts := make(map[string]int, len(tables))
	actual := 0
	for i, t := range tables {
		counts[historyTypes[i].String()] = t.Len()
		actual += t.Len()
	}
	if actual != table.Len() {
		return &parsererror.PartitionInvariantError{
			Expected: table.Len(),
			Actual:   actual,
			Counts:   counts,
		}
	}
	return nil
}

func (p *Pipeline) persist(outputDir string, historyTypes []models.HistoryType, tables []*models.Table) ([]CategoryResult, error) {
	staging, err := fileutils.NewStagingDir(outputDir, p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare output directory: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			if err := staging.Discard(); err != nil {
				p.logger.WithError(err).Warn("Failed to clean up staging directory")
			}
		}
	}()

	names := make([]string, len(historyTypes))
	categories := make([]CategoryResult, len(historyTypes))
	for i, historyType := range historyTypes {
		names[i] = historyType.FileName()
		if err := p.tableIO.WriteTable(tables[i], staging.Path(names[i])); err != nil {
			return nil, fmt.Errorf("failed to write %s rows: %w", historyType, err)
		}
		categories[i] = CategoryResult{
			Type: historyType,
			Path: staging.Dest(names[i]),
			Rows: tables[i].Len(),
		}
	}

	// A manifest from an earlier run must not describe the new files.
	if err := removeIfExists(staging.Dest(models.ManifestFileName)); err != nil {
		return nil, err
	}

	if err := staging.Commit(names...); err != nil {
		return nil, fmt.Errorf("failed to publish category files: %w", err)
	}
	committed = true

	for _, c := range categories {
		p.logger.Info("Wrote category file",
			logging.F(logging.FieldCategory, c.Type.String()),
			logging.F(logging.FieldOutputFile, c.Path),
			logging.F(logging.FieldCount, c.Rows))
	}
	return categories, nil
}

func removeIfExists(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove stale %s: %w", path, err)
	}
	return nil
}

func buildManifest(result *Result, completedAt time.Time) *models.Manifest {
	manifest := &models.Manifest{
		RunID:       result.RunID,
		Input:       result.Input,
		TotalRows:   result.TotalRows,
		CompletedAt: completedAt.UTC().Truncate(time.Second),
	}
	for _, c := range result.Categories {
		manifest.Categories = append(manifest.Categories, models.CategoryManifest{
			Type: c.Type.String(),
			File: c.Type.FileName(),
			Rows: c.Rows,
		})
	}
	return manifest
}
