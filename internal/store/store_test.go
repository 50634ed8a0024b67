package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fjacquet/history-csv/internal/logging"
	"fjacquet/history-csv/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleManifest() *models.Manifest {
	return &models.Manifest{
		RunID:     "3f1c2a9e-0000-4000-8000-000000000001",
		Input:     "history.csv",
		TotalRows: 4,
		Categories: []models.CategoryManifest{
			{Type: "transaction", File: "transactions.csv", Rows: 1},
			{Type: "dividend", File: "dividends.csv", Rows: 1},
			{Type: "interest", File: "interest.csv", Rows: 1},
			{Type: "order", File: "orders.csv", Rows: 1},
		},
		CompletedAt: time.Date(2024, 3, 25, 14, 31, 2, 0, time.UTC),
	}
}

func TestManifestStore_SaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	logger := logging.NewMockLogger()
	store := NewManifestStore(logger)

	require.NoError(t, store.Save(dir, sampleManifest()))
	assert.FileExists(t, filepath.Join(dir, models.ManifestFileName))
	assert.NoFileExists(t, filepath.Join(dir, models.ManifestFileName+".tmp"))

	loaded, err := store.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, sampleManifest(), loaded)
	assert.True(t, logger.HasEntry("DEBUG", "Saved run manifest"))
}

func TestManifestStore_YAMLLayout(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, NewManifestStore(nil).Save(dir, sampleManifest()))

	data, err := os.ReadFile(filepath.Join(dir, models.ManifestFileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), "run_id: 3f1c2a9e-0000-4000-8000-000000000001")
	assert.Contains(t, string(data), "file: transactions.csv")
	assert.Contains(t, string(data), "total_rows: 4")
}

func TestManifestStore_LoadMissing(t *testing.T) {
	_, err := NewManifestStore(nil).Load(t.TempDir())
	assert.True(t, errors.Is(err, ErrManifestNotFound))
}

func TestManifestStore_LoadMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, models.ManifestFileName), []byte("run_id: [unclosed"), 0600))

	_, err := NewManifestStore(nil).Load(dir)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrManifestNotFound))
}

func TestManifestStore_LoadRejectsUnknownCategory(t *testing.T) {
	dir := t.TempDir()
	manifest := sampleManifest()
	manifest.Categories[3].Type = "cash"
	require.NoError(t, NewManifestStore(nil).Save(dir, manifest))

	_, err := NewManifestStore(nil).Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown history type \"cash\"")
}

func TestManifestStore_SaveNil(t *testing.T) {
	assert.Error(t, NewManifestStore(nil).Save(t.TempDir(), nil))
}

func TestMockManifestStore(t *testing.T) {
	mock := &MockManifestStore{}

	_, err := mock.Load("out")
	assert.True(t, errors.Is(err, ErrManifestNotFound))

	require.NoError(t, mock.Save("out", sampleManifest()))
	loaded, err := mock.Load("out")
	require.NoError(t, err)
	assert.Equal(t, 4, loaded.CategorizedRows())

	mock.SaveError = errors.New("disk full")
	assert.EqualError(t, mock.Save("out", sampleManifest()), "disk full")
}

func TestManifest_Category(t *testing.T) {
	manifest := sampleManifest()

	category, ok := manifest.Category(models.HistoryInterest)
	require.True(t, ok)
	assert.Equal(t, "interest.csv", category.File)

	manifest.Categories = manifest.Categories[:1]
	_, ok = manifest.Category(models.HistoryOrder)
	assert.False(t, ok)
}
