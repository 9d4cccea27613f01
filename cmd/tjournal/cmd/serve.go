package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the journal over HTTP",
	Long: `Run the JSON API until interrupted.

Example:
  tjournal serve --addr :8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var serveAddr string

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	apiCfg := cfg.API
	if serveAddr != "" {
		apiCfg.Addr = serveAddr
	}
	if err := api.Serve(cmd.Context(), apiCfg, j, log); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
