package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/history-csv/internal/fileutils"
	"fjacquet/history-csv/internal/logging"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))

	assert.True(t, fileutils.FileExists(testFile))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "nonexistent.txt")))
	assert.False(t, fileutils.FileExists(tmpDir))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nonexistent")))

	testFile := filepath.Join(tmpDir, "test.txt")
	require.NoError(t, os.WriteFile(testFile, []byte("test"), 0600))
	assert.False(t, fileutils.DirectoryExists(testFile))
}

func TestEnsureDirectoryExists(t *testing.T) {
	newDir := filepath.Join(t.TempDir(), "new", "nested", "dir")

	require.NoError(t, fileutils.EnsureDirectoryExists(newDir))
	assert.True(t, fileutils.DirectoryExists(newDir))

	// Existing directories are fine.
	assert.NoError(t, fileutils.EnsureDirectoryExists(newDir))
}

func TestStagingDir_Commit(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out")
	logger := logging.NewMockLogger()

	staging, err := fileutils.NewStagingDir(dest, logger)
	require.NoError(t, err)
	assert.True(t, fileutils.DirectoryExists(dest))

	// A file from an earlier run is replaced.
	require.NoError(t, os.WriteFile(staging.Dest("a.csv"), []byte("old"), 0600))

	require.NoError(t, os.WriteFile(staging.Path("a.csv"), []byte("new a"), 0600))
	require.NoError(t, os.WriteFile(staging.Path("b.csv"), []byte("new b"), 0600))

	require.NoError(t, staging.Commit("a.csv", "b.csv"))

	data, err := os.ReadFile(filepath.Join(dest, "a.csv"))
	require.NoError(t, err)
	assert.Equal(t, "new a", string(data))
	assert.True(t, fileutils.FileExists(filepath.Join(dest, "b.csv")))

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "staging directory is removed after commit")
	assert.True(t, logger.HasEntry("DEBUG", "Committed file"))
}

func TestStagingDir_CommitMissingFileMovesNothing(t *testing.T) {
	dest := t.TempDir()

	staging, err := fileutils.NewStagingDir(dest, nil)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(staging.Path("a.csv"), []byte("a"), 0600))

	err = staging.Commit("a.csv", "missing.csv")
	require.Error(t, err)
	assert.False(t, fileutils.FileExists(filepath.Join(dest, "a.csv")))

	require.NoError(t, staging.Discard())
	require.NoError(t, staging.Discard())

	entries, err := os.ReadDir(dest)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
