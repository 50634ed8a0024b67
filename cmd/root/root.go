// Package root contains the root command for the application
package root

import (
	"fmt"
	"sync"

	"fjacquet/history-csv/internal/config"
	"fjacquet/history-csv/internal/container"
	"fjacquet/history-csv/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input        string
	Output       string
	ConfigFile   string
	LogLevel     string
	LogFormat    string
	CSVDelimiter string
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.NewLogrusAdapter("info", "text")

	// AppConfig is the configuration loaded by PersistentPreRunE
	AppConfig *config.Config

	// AppContainer holds the dependencies wired from AppConfig
	AppContainer *container.Container

	// SharedFlags are the persistent flags accessible to all commands
	SharedFlags = CommonFlags{}

	initOnce sync.Once

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "history-csv",
		Short: "A CLI tool to split broker history exports into category CSV files.",
		Long: `history-csv validates a broker transaction history export and splits it
into four category files: cash transactions, dividends, interest and orders.
It can then analyse the transaction file to report deposit and withdrawal totals.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to history-csv!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return Setup(cmd)
		},
		// Release the container when ANY command finishes
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return Teardown()
		},
	}
)

// Init initializes the root command and all flags. Calling it more than once
// is harmless.
func Init() {
	initOnce.Do(func() {
		flags := Cmd.PersistentFlags()
		flags.StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
		flags.StringVarP(&SharedFlags.Output, "output", "o", "", "Output directory")
		flags.StringVar(&SharedFlags.ConfigFile, "config", "", "Config file (default searches $HOME/.history-csv, .history-csv and .)")
		flags.StringVar(&SharedFlags.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
		flags.StringVar(&SharedFlags.LogFormat, "log-format", "", "Log format (text or json)")
		flags.StringVar(&SharedFlags.CSVDelimiter, "csv-delimiter", "", "CSV field delimiter")
	})
}

// LoadConfig reads the configuration and applies the flags that were set on cmd.
func LoadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.InitializeConfigFrom(SharedFlags.ConfigFile)
	if err != nil {
		return nil, err
	}

	if flagChanged(cmd, "log-level") {
		cfg.Log.Level = SharedFlags.LogLevel
	}
	if flagChanged(cmd, "log-format") {
		cfg.Log.Format = SharedFlags.LogFormat
	}
	if flagChanged(cmd, "csv-delimiter") {
		cfg.CSV.Delimiter = SharedFlags.CSVDelimiter
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil {
		return false
	}
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// Setup loads the configuration and wires AppContainer and Log.
func Setup(cmd *cobra.Command) error {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return err
	}

	c, err := container.NewContainer(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	AppConfig = cfg
	AppContainer = c
	Log = c.GetLogger()
	return nil
}

// Teardown closes AppContainer, if Setup created one.
func Teardown() error {
	if AppContainer == nil {
		return nil
	}
	if err := AppContainer.Close(); err != nil {
		return fmt.Errorf("failed to close application: %w", err)
	}
	return nil
}

// GetContainer returns the application container, or nil before Setup ran.
func GetContainer() *container.Container {
	return AppContainer
}

// GetConfig returns the loaded configuration, or the defaults before Setup ran.
func GetConfig() *config.Config {
	if AppConfig == nil {
		return config.Default()
	}
	return AppConfig
}
