// Package batch ingests every history export found in a directory.
package batch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"fjacquet/history-csv/internal/ingest"
	"fjacquet/history-csv/internal/logging"
)

// Runner runs one ingest. *ingest.Pipeline satisfies it.
type Runner interface {
	Run(inputPath, outputDir string) (*ingest.Result, error)
}

// FileResult is the outcome of ingesting one export.
type FileResult struct {
	Input     string
	OutputDir string
	Result    *ingest.Result
	Err       error
}

// Summary collects the outcome of a batch.
type Summary struct {
	Files []FileResult
}

// Succeeded counts the exports that were ingested.
func (s *Summary) Succeeded() int {
	n := 0
	for _, f := range s.Files {
		if f.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the exports that could not be ingested.
func (s *Summary) Failed() []FileResult {
	var failed []FileResult
	for _, f := range s.Files {
		if f.Err != nil {
			failed = append(failed, f)
		}
	}
	return failed
}

// BatchIngester runs the pipeline over each export of a directory. Each
// export gets its own output directory named after the file, so the
// categories of different exports never mix.
type BatchIngester struct {
	logger logging.Logger
	runner Runner
}

// NewBatchIngester creates a new BatchIngester instance
func NewBatchIngester(logger logging.Logger, runner Runner) *BatchIngester {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &BatchIngester{logger: logger, runner: runner}
}

// FindExports lists the .csv files directly inside dir, sorted by name.
func FindExports(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".csv") {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// OutputDirFor is the directory the categories of input are written to.
func OutputDirFor(outputRoot, input string) string {
	base := filepath.Base(input)
	return filepath.Join(outputRoot, strings.TrimSuffix(base, filepath.Ext(base)))
}

// IngestDirectory ingests every export in inputDir. A failing export is
// recorded in the summary and does not stop the others.
func (b *BatchIngester) IngestDirectory(inputDir, outputRoot string) (*Summary, error) {
	files, err := FindExports(inputDir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		b.logger.Warn("No CSV files found in input directory", logging.F(logging.FieldFile, inputDir))
		return &Summary{}, nil
	}

	b.logger.Info("Found files for processing", logging.F(logging.FieldCount, len(files)))

	summary := &Summary{Files: make([]FileResult, 0, len(files))}
	for _, file := range files {
		outputDir := OutputDirFor(outputRoot, file)
		result, err := b.runner.Run(file, outputDir)
		if err != nil {
			b.logger.WithError(err).Error("Failed to ingest file", logging.F(logging.FieldInputFile, file))
		}
		summary.Files = append(summary.Files, FileResult{
			Input:     file,
			OutputDir: outputDir,
			Result:    result,
			Err:       err,
		})
	}

	b.logger.Info("Batch completed",
		logging.F(logging.FieldCount, len(files)),
		logging.F("succeeded", summary.Succeeded()),
		logging.F("failed", len(summary.Failed())))
	return summary, nil
}
