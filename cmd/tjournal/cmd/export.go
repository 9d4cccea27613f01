package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/service"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the journal",
	Long: `Write every trade as JSON (default), CSV or Org.

Examples:
  tjournal export -o trading-journal-export.json
  tjournal export --format csv > trades.csv`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportOutput string
	exportFormat string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "format", service.FormatJSON, "json, csv or org")
}

func runExport(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOutput, err)
		}
		defer f.Close()
		w = f
	}

	if err := j.Export(cmd.Context(), w, exportFormat); err != nil {
		return err
	}
	if exportOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Exported journal to %s\n", exportOutput)
	}
	return nil
}
