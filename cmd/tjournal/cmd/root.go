package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/logger"
	"github.com/rustyeddy/tradejournal/service"
)

var (
	cfgFile  string
	dbPath   string
	logLevel string

	cfg *config.Config
	log = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "tjournal",
	Short: "An options trading journal with P&L analytics",
	Long: `tjournal records short-dated option trades and reports on them.

It provides tools for:
  - Logging trades with screenshots and computing net P&L after commissions
  - Summary stats, ticker and strategy breakdowns, and an equity curve
  - A monthly P&L calendar
  - Exporting the journal as JSON, CSV or Org
  - Serving the journal over HTTP`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
	PersistentPostRun: func(*cobra.Command, []string) {
		_ = log.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext is Execute with a context that cancels long-running commands.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON; default $TJ_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

// loadConfig layers defaults, the config file, TJ_* env vars (a .env file
// is honored) and finally command-line flags.
func loadConfig(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	path := cfgFile
	if path == "" {
		path = os.Getenv("TJ_CONFIG")
	}

	c := config.Default()
	if path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		c = loaded
	}
	c.ApplyEnv(os.Getenv)

	if dbPath != "" {
		c.Storage.Type = "sqlite"
		c.Storage.DBPath = dbPath
	}
	if logLevel != "" {
		c.Log.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	l, err := logger.New(c.Log)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	cfg, log = c, l
	return nil
}

func openJournal(cmd *cobra.Command) (*service.Journal, error) {
	j, err := service.Open(cmd.Context(), cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return j, nil
}
