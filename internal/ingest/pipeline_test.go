package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/history-csv/internal/common"
	"fjacquet/history-csv/internal/extractor"
	"fjacquet/history-csv/internal/factory"
	"fjacquet/history-csv/internal/historytest"
	"fjacquet/history-csv/internal/logging"
	"fjacquet/history-csv/internal/models"
	"fjacquet/history-csv/internal/parsererror"
	"fjacquet/history-csv/internal/store"
	"fjacquet/history-csv/internal/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPipeline(t *testing.T, provider ExtractorProvider, manifests store.ManifestRepository, options Options) (*Pipeline, *logging.MockLogger) {
	t.Helper()
	logger := logging.NewMockLogger()
	if provider == nil {
		provider = factory.NewExtractorFactory()
	}
	return NewPipeline(
		logger,
		common.NewTableIO(logger, ',', ""),
		validation.DefaultValidators(logger),
		provider,
		manifests,
		options,
	), logger
}

func writeInput(t *testing.T, header []string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.csv")
	require.NoError(t, os.WriteFile(path, []byte(historytest.CSV(header, rows)), 0600))
	return path
}

func TestPipeline_EndToEndFourRows(t *testing.T) {
	for _, concurrent := range []bool{true, false} {
		name := "sequential"
		if concurrent {
			name = "concurrent"
		}
		t.Run(name, func(t *testing.T) {
			input := writeInput(t, historytest.ExportHeader, historytest.MixedRows()[:4])
			outputDir := filepath.Join(t.TempDir(), "out")
			manifests := &store.MockManifestStore{}
			pipeline, logger := newTestPipeline(t, nil, manifests, Options{Concurrent: concurrent, WriteManifest: true})

			result, err := pipeline.Run(input, outputDir)
			require.NoError(t, err)

			assert.Equal(t, 4, result.TotalRows)
			assert.NotEmpty(t, result.RunID)
			require.Len(t, result.Categories, 4)

			reader := common.NewTableIO(nil, ',', "")
			extractors := factory.NewExtractorFactory()
			for i, historyType := range models.AllHistoryTypes() {
				category := result.Categories[i]
				assert.Equal(t, historyType, category.Type, "categories are reported in fixed order")
				assert.Equal(t, 1, category.Rows)
				assert.Equal(t, filepath.Join(outputDir, historyType.FileName()), category.Path)

				written, err := reader.ReadTableFile(category.Path)
				require.NoError(t, err)
				e, err := extractors.GetExtractor(historyType)
				require.NoError(t, err)
				assert.Equal(t, e.Schema(), written.Columns())
				assert.Equal(t, 1, written.Len())
			}

			entries, err := os.ReadDir(outputDir)
			require.NoError(t, err)
			assert.Len(t, entries, 4, "no staging directory is left behind")

			manifest, err := manifests.Load(outputDir)
			require.NoError(t, err)
			assert.Equal(t, result.RunID, manifest.RunID)
			assert.Equal(t, 4, manifest.TotalRows)
			assert.Equal(t, 4, manifest.CategorizedRows())

			assert.True(t, logger.HasEntry("INFO", "Ingest completed"))
		})
	}
}

func TestPipeline_NormalizesTimestamps(t *testing.T) {
	input := writeInput(t, historytest.ExportHeader, historytest.MixedRows())
	outputDir := t.TempDir()
	pipeline, _ := newTestPipeline(t, nil, nil, Options{})

	result, err := pipeline.Run(input, outputDir)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Rows(models.HistoryOrder))
	assert.Equal(t, 2, result.Rows(models.HistoryTransaction))

	orders, err := common.NewTableIO(nil, ',', "").ReadTableFile(filepath.Join(outputDir, "orders.csv"))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-25 14:31:02.125", orders.Value(0, models.ColumnTime), "fractional seconds are kept")
	assert.Equal(t, string(models.ActionLimitSell), orders.Value(1, models.ColumnAction))
	assert.Equal(t, "2024-04-06 10:11:12", orders.Value(1, models.ColumnTime), "whole seconds have no fraction")
}

func TestPipeline_Idempotent(t *testing.T) {
	input := writeInput(t, historytest.ExportHeader, historytest.MixedRows())
	outputDir := t.TempDir()
	pipeline, _ := newTestPipeline(t, nil, store.NewManifestStore(nil), Options{Concurrent: true, WriteManifest: true})

	readAll := func() map[string][]byte {
		files := make(map[string][]byte)
		for _, historyType := range models.AllHistoryTypes() {
			data, err := os.ReadFile(filepath.Join(outputDir, historyType.FileName()))
			require.NoError(t, err)
			files[historyType.FileName()] = data
		}
		return files
	}

	first, err := pipeline.Run(input, outputDir)
	require.NoError(t, err)
	firstFiles := readAll()

	second, err := pipeline.Run(input, outputDir)
	require.NoError(t, err)

	assert.Equal(t, firstFiles, readAll())
	assert.NotEqual(t, first.RunID, second.RunID)

	manifest, err := store.NewManifestStore(nil).Load(outputDir)
	require.NoError(t, err)
	assert.Equal(t, second.RunID, manifest.RunID)
}

func TestPipeline_ValidationFailuresWriteNothing(t *testing.T) {
	withoutTime := make([]string, 0, len(historytest.ExportHeader))
	for _, c := range historytest.ExportHeader {
		if c != models.ColumnTime {
			withoutTime = append(withoutTime, c)
		}
	}
	rowWithoutTime := func(action models.ActionType) []string {
		record := historytest.Row(action, "", nil)
		return append(record[:1:1], record[2:]...)
	}

	tests := []struct {
		name   string
		header []string
		rows   [][]string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unknown action",
			header: historytest.ExportHeader,
			rows: [][]string{
				historytest.Row(models.ActionDeposit, "2024-03-24 10:00:00", nil),
				historytest.Row("Card payment", "2024-03-24 11:00:00", nil),
			},
			check: func(t *testing.T, err error) {
				var target *parsererror.UnknownActionTypeError
				require.True(t, errors.As(err, &target))
				assert.Equal(t, "Card payment", target.Value)
			},
		},
		{
			name:   "missing time column",
			header: withoutTime,
			rows:   [][]string{rowWithoutTime(models.ActionDeposit)},
			check: func(t *testing.T, err error) {
				var target *parsererror.MissingColumnError
				require.True(t, errors.As(err, &target))
				assert.Equal(t, models.ColumnTime, target.Column)
			},
		},
		{
			name:   "unparseable time",
			header: historytest.ExportHeader,
			rows: [][]string{
				historytest.Row(models.ActionDeposit, "2024-03-24 10:00:00", nil),
				historytest.Row(models.ActionWithdrawal, "not a date", nil),
			},
			check: func(t *testing.T, err error) {
				var target *parsererror.InvalidDateFormatError
				require.True(t, errors.As(err, &target))
				assert.Equal(t, 2, target.Row)
				assert.Equal(t, "not a date", target.Value)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := writeInput(t, tt.header, tt.rows)
			outputDir := filepath.Join(t.TempDir(), "out")
			manifests := &store.MockManifestStore{}
			pipeline, _ := newTestPipeline(t, nil, manifests, Options{WriteManifest: true})

			_, err := pipeline.Run(input, outputDir)
			require.Error(t, err)
			tt.check(t, err)

			assert.NoDirExists(t, outputDir)
			assert.Empty(t, manifests.Manifests)
		})
	}
}

// droppingProvider returns extractors that lose every row of one category.
type droppingProvider struct {
	drop models.HistoryType
}

func (p droppingProvider) GetExtractor(historyType models.HistoryType) (extractor.Extractor, error) {
	e, err := factory.NewExtractorFactory().GetExtractor(historyType)
	if err != nil || historyType != p.drop {
		return e, err
	}
	return droppingExtractor{Extractor: e}, nil
}

type droppingExtractor struct {
	extractor.Extractor
}

func (d droppingExtractor) Extract(table *models.Table) (*models.Table, error) {
	return table.Filter(func(int) bool { return false }).Project(d.Schema())
}

type unsupportedProvider struct{}

func (unsupportedProvider) GetExtractor(historyType models.HistoryType) (extractor.Extractor, error) {
	return nil, &parsererror.UnsupportedHistoryTypeError{HistoryType: historyType.String()}
}

func TestPipeline_PartitionViolation(t *testing.T) {
	for _, concurrent := range []bool{true, false} {
		input := writeInput(t, historytest.ExportHeader, historytest.MixedRows())
		outputDir := t.TempDir()
		pipeline, logger := newTestPipeline(t, droppingProvider{drop: models.HistoryOrder}, nil, Options{Concurrent: concurrent})

		_, err := pipeline.Run(input, outputDir)

		var target *parsererror.PartitionInvariantError
		require.True(t, errors.As(err, &target))
		assert.Equal(t, 6, target.Expected)
		assert.Equal(t, 4, target.Actual)
		assert.Equal(t, 0, target.Counts["order"])
		assert.Equal(t, 2, target.Counts["transaction"])

		entries, err := os.ReadDir(outputDir)
		require.NoError(t, err)
		assert.Empty(t, entries)
		assert.True(t, logger.HasEntry("ERROR", "Categorization is not a partition of the input"))
	}
}

func TestPipeline_UnsupportedHistoryType(t *testing.T) {
	input := writeInput(t, historytest.ExportHeader, historytest.MixedRows())
	pipeline, _ := newTestPipeline(t, unsupportedProvider{}, nil, Options{Concurrent: true})

	_, err := pipeline.Run(input, t.TempDir())

	var target *parsererror.UnsupportedHistoryTypeError
	require.True(t, errors.As(err, &target))
	assert.Equal(t, "transaction", target.HistoryType, "the first category in fixed order is reported")
}

func TestPipeline_SchemaMismatch(t *testing.T) {
	header := []string{models.ColumnAction, models.ColumnTime, models.ColumnTotal}
	rows := [][]string{{string(models.ActionDeposit), "2024-03-24 10:00:00", "10"}}
	input := writeInput(t, header, rows)
	outputDir := filepath.Join(t.TempDir(), "out")
	pipeline, _ := newTestPipeline(t, nil, nil, Options{})

	_, err := pipeline.Run(input, outputDir)

	var target *parsererror.SchemaMismatchError
	require.True(t, errors.As(err, &target))
	assert.NoDirExists(t, outputDir)
}

func TestPipeline_RemovesStaleManifest(t *testing.T) {
	input := writeInput(t, historytest.ExportHeader, historytest.MixedRows())
	outputDir := t.TempDir()
	stale := filepath.Join(outputDir, models.ManifestFileName)
	require.NoError(t, os.WriteFile(stale, []byte("run_id: old\n"), 0600))

	pipeline, _ := newTestPipeline(t, nil, nil, Options{})
	_, err := pipeline.Run(input, outputDir)
	require.NoError(t, err)

	assert.NoFileExists(t, stale)
}

func TestPipeline_ManifestSaveError(t *testing.T) {
	input := writeInput(t, historytest.ExportHeader, historytest.MixedRows())
	manifests := &store.MockManifestStore{SaveError: errors.New("read-only")}
	pipeline, _ := newTestPipeline(t, nil, manifests, Options{WriteManifest: true})

	_, err := pipeline.Run(input, t.TempDir())
	assert.ErrorContains(t, err, "failed to save manifest")
}

func TestPipeline_MissingInput(t *testing.T) {
	pipeline, _ := newTestPipeline(t, nil, nil, Options{})

	_, err := pipeline.Run(filepath.Join(t.TempDir(), "absent.csv"), t.TempDir())
	assert.ErrorContains(t, err, "failed to load")
}
