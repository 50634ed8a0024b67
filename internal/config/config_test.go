package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvFrom(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("HISTORY_TEST_FROM_DOTENV=loaded\n"), 0600))
	t.Setenv("HISTORY_TEST_FROM_DOTENV", "")
	require.NoError(t, os.Unsetenv("HISTORY_TEST_FROM_DOTENV"))

	logger := logrus.New()
	loaded := loadEnvFrom(logger, filepath.Join(dir, "absent.env"), envFile)

	assert.Equal(t, envFile, loaded)
	assert.Equal(t, "loaded", os.Getenv("HISTORY_TEST_FROM_DOTENV"))
}

func TestLoadEnvFrom_NoFile(t *testing.T) {
	assert.Empty(t, loadEnvFrom(nil, filepath.Join(t.TempDir(), ".env")))
}

func TestGetEnv(t *testing.T) {
	t.Setenv("HISTORY_TEST_GET_ENV", "value")
	assert.Equal(t, "value", GetEnv("HISTORY_TEST_GET_ENV", "fallback"))
	assert.Equal(t, "fallback", GetEnv("HISTORY_TEST_UNSET_KEY_XYZ", "fallback"))
}
