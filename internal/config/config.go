package config

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var once sync.Once

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, if one exists. Variables already set are not overridden.
// It returns the file that was loaded, or "" when none was found.
func LoadEnv(logger *logrus.Logger) string {
	var loaded string
	once.Do(func() {
		loaded = loadEnvFrom(logger, ".env", filepath.Join("..", ".env"))
	})
	return loaded
}

func loadEnvFrom(logger *logrus.Logger, candidates ...string) string {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	for _, envFile := range candidates {
		if _, err := os.Stat(envFile); err != nil {
			continue
		}
		if err := godotenv.Load(envFile); err != nil {
			logger.Warnf("Error loading .env file: %v", err)
			return ""
		}
		logger.Debugf("Loaded environment variables from %s", envFile)
		return envFile
	}
	logger.Debug("No .env file found, using environment variables")
	return ""
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
