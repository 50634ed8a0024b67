// Package batch handles batch ingestion of history exports
package batch

import (
	"fmt"
	"io"

	"fjacquet/history-csv/cmd/root"
	"fjacquet/history-csv/internal/batch"
	"fjacquet/history-csv/internal/container"

	"github.com/spf13/cobra"
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Ingest every history export of a directory",
	Long: `Ingest every CSV export found in the input directory. The categories of
each export are written to a subdirectory of the output directory named after
the export file. A failing export is reported and does not stop the others.

Example:
  history-csv batch -i exports/ -o output/`,
	Args: cobra.NoArgs,
	RunE: batchFunc,
}

func batchFunc(cmd *cobra.Command, args []string) error {
	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if outputDir == "" {
		outputDir = root.GetConfig().Ingest.OutputDir
	}
	if inputDir == "" {
		return fmt.Errorf("an input directory is required (--input)")
	}

	_, err := Run(root.GetContainer(), inputDir, outputDir, cmd.OutOrStdout())
	return err
}

// Run ingests every export of inputDir and prints one line per file to out.
// It fails when at least one export could not be ingested.
func Run(c *container.Container, inputDir, outputDir string, out io.Writer) (*batch.Summary, error) {
	if c == nil {
		return nil, fmt.Errorf("application is not initialized")
	}

	summary, err := c.GetBatchIngester().IngestDirectory(inputDir, outputDir)
	if err != nil {
		return nil, err
	}

	for _, f := range summary.Files {
		if f.Err != nil {
			fmt.Fprintf(out, "FAILED %s: %v\n", f.Input, f.Err)
			continue
		}
		fmt.Fprintf(out, "OK     %s -> %s (%d rows)\n", f.Input, f.OutputDir, f.Result.TotalRows)
	}

	if failed := summary.Failed(); len(failed) > 0 {
		return summary, fmt.Errorf("%d of %d files failed", len(failed), len(summary.Files))
	}
	return summary, nil
}
