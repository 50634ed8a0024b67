package main

import (
	"fmt"
	"os"
	"strings"

	"fjacquet/history-csv/cmd/analyse"
	"fjacquet/history-csv/cmd/batch"
	"fjacquet/history-csv/cmd/ingest"
	"fjacquet/history-csv/cmd/root"
	"fjacquet/history-csv/internal/config"

	"github.com/sirupsen/logrus"
)

func init() {
	// 1. Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// 2. Configure the global log level before any command logs
	configureLogLevelDirectly()

	// 3. Initialize root command and add subcommands
	root.Init()
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(analyse.Cmd)
	root.Cmd.AddCommand(batch.Cmd)
}

// loadEnvSilently loads a .env file without logging anything
func loadEnvSilently() {
	quiet := logrus.New()
	quiet.SetLevel(logrus.PanicLevel)
	config.LoadEnv(quiet)
}

// configureLogLevelDirectly sets the global logrus level from HISTORY_LOG_LEVEL
// and returns it
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := config.GetEnv(config.EnvPrefix+"_LOG_LEVEL", "info")

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
