// Package analyse provides the command that reports totals over an ingested
// transaction file.
package analyse

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/history-csv/cmd/root"
	"fjacquet/history-csv/internal/container"
	"fjacquet/history-csv/internal/logging"
	"fjacquet/history-csv/internal/models"
	"fjacquet/history-csv/internal/report"
	"fjacquet/history-csv/internal/store"

	"github.com/spf13/cobra"
)

// Format is the output format selected with --format.
var Format string

// Cmd represents the analyse command
var Cmd = &cobra.Command{
	Use:     "analyse [transactions.csv]",
	Aliases: []string{"analyze"},
	Short:   "Report deposit and withdrawal totals of an ingested transaction file",
	Long: `Load the transactions.csv produced by ingest and print the total amount,
the total deposit amount and the total withdrawal amount. When the output
directory holds a run manifest, the row count is checked against it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: analyseFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Format, "format", "f", report.FormatText, "Output format (text, json or xml)")
}

func analyseFunc(cmd *cobra.Command, args []string) error {
	path := root.SharedFlags.Input
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		dir := root.SharedFlags.Output
		if dir == "" {
			dir = root.GetConfig().Ingest.OutputDir
		}
		path = filepath.Join(dir, models.HistoryTransaction.FileName())
	}

	return Run(root.GetContainer(), path, Format, cmd.OutOrStdout())
}

// Run analyses the transaction file at path and writes the report to out.
func Run(c *container.Container, path, format string, out io.Writer) error {
	if c == nil {
		return fmt.Errorf("application is not initialized")
	}
	logger := c.GetLogger().WithField(logging.FieldFile, path)

	a, err := c.NewTransactionAnalyser(path)
	if err != nil {
		return err
	}

	manifest, err := c.GetManifestStore().Load(filepath.Dir(path))
	switch {
	case errors.Is(err, store.ErrManifestNotFound):
		if c.GetConfig().Analyse.RequireManifest {
			return fmt.Errorf("cannot verify %s: %w", path, err)
		}
		logger.Debug("No run manifest found, skipping row count check")
	case err != nil:
		return err
	default:
		if err := a.CheckManifest(manifest); err != nil {
			return err
		}
		logger.Debug("Row count matches run manifest", logging.F(logging.FieldRunID, manifest.RunID))
	}

	summary, err := a.Summarize()
	if err != nil {
		return err
	}

	rendered, err := c.GetReportGenerator().GenerateReport(summary, format)
	if err != nil {
		return err
	}
	_, err = out.Write(rendered)
	return err
}
