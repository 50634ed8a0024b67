// Package ingest provides the command that splits a history export into
// category files.
package ingest

import (
	"fmt"
	"io"

	"fjacquet/history-csv/cmd/root"
	"fjacquet/history-csv/internal/container"
	"fjacquet/history-csv/internal/ingest"

	"github.com/spf13/cobra"
)

// Cmd represents the ingest command
var Cmd = &cobra.Command{
	Use:   "ingest [input.csv]",
	Short: "Validate a history export and split it into category CSV files",
	Long: `Validate a broker history export and write one CSV file per category
(transactions.csv, dividends.csv, interest.csv, orders.csv) into the output
directory. Nothing is written when validation or categorization fails.`,
	Args: cobra.MaximumNArgs(1),
	RunE: ingestFunc,
}

func ingestFunc(cmd *cobra.Command, args []string) error {
	input := root.SharedFlags.Input
	if len(args) == 1 {
		input = args[0]
	}
	if input == "" {
		return fmt.Errorf("an input file is required (--input or argument)")
	}

	output := root.SharedFlags.Output
	if output == "" {
		output = root.GetConfig().Ingest.OutputDir
	}

	_, err := Run(root.GetContainer(), input, output, cmd.OutOrStdout())
	return err
}

// Run ingests input into output and prints a per-category summary to out.
func Run(c *container.Container, input, output string, out io.Writer) (*ingest.Result, error) {
	if c == nil {
		return nil, fmt.Errorf("application is not initialized")
	}

	result, err := c.GetPipeline().Run(input, output)
	if err != nil {
		return nil, fmt.Errorf("error ingesting %s: %w", input, err)
	}

	fmt.Fprintf(out, "Ingested %d rows from %s (run %s)\n", result.TotalRows, result.Input, result.RunID)
	for _, category := range result.Categories {
		fmt.Fprintf(out, "  %-12s %6d  %s\n", category.Type, category.Rows, category.Path)
	}
	return result, nil
}
