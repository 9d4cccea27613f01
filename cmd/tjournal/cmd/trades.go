package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a trade",
	Long: `Record a closed option trade. P&L and outcome are computed from
entry, exit, contracts and fees; screenshots are downscaled and embedded.

Example:
  tjournal add --ticker SPY --strategy ORB --cp C --dte 0 --strike 450 \
    --entry-time 06:45 --exit-time 07:10 --entry 1.20 --exit 2.10 \
    --contracts 2 --shot chart.png`,
	Args: cobra.NoArgs,
	RunE: runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

var deleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runDelete,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every trade",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

var (
	addInput journal.TradeInput
	addShots []string

	listQuery analytics.Query
	listOrg   bool

	clearYes bool
)

func init() {
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(clearCmd)

	f := addCmd.Flags()
	f.StringVar(&addInput.Date, "date", time.Now().Format(journal.DateLayout), "trade date YYYY-MM-DD")
	f.StringVar(&addInput.EntryTime, "entry-time", "", "entry time HH:MM (24h, inside the session)")
	f.StringVar(&addInput.ExitTime, "exit-time", "", "exit time HH:MM (24h, inside the session)")
	f.StringVarP(&addInput.Ticker, "ticker", "t", "", "underlying ticker (required)")
	f.StringVarP(&addInput.Strategy, "strategy", "s", "", "strategy label")
	f.StringVar(&addInput.CP, "cp", "C", "C or P")
	f.StringVar(&addInput.DTE, "dte", "0", "days to expiry")
	f.StringVar(&addInput.Strike, "strike", "", "strike price")
	f.StringVar(&addInput.Entry, "entry", "", "entry premium per share")
	f.StringVar(&addInput.Exit, "exit", "", "exit premium per share")
	f.StringVar(&addInput.Contracts, "contracts", "1", "number of contracts")
	f.StringVar(&addInput.OtherFees, "fees", "0", "other fees in dollars")
	f.StringVarP(&addInput.Notes, "notes", "n", "", "free-form notes")
	f.StringSliceVar(&addShots, "shot", nil, "screenshot file (repeatable, first two images kept)")
	_ = addCmd.MarkFlagRequired("ticker")

	lf := listCmd.Flags()
	lf.StringVar(&listQuery.Ticker, "ticker", "", "ticker substring filter")
	lf.StringVar(&listQuery.Outcome, "outcome", analytics.OutcomeAll, "WIN, LOSS, BE or ALL")
	lf.StringVar((*string)(&listQuery.Sort), "sort", string(analytics.SortNewest), "NEWEST, OLDEST, BIGWIN or BIGLOSS")
	lf.BoolVar(&listOrg, "org", false, "print trades as Org entries")

	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "confirm deleting every trade")
}

func runAdd(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	rec, err := j.AddTradeFromFiles(cmd.Context(), addInput, addShots)
	if err != nil {
		return fmt.Errorf("add trade: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(rec, j.Rate()))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	trades, err := j.Trades(cmd.Context())
	if err != nil {
		return fmt.Errorf("load trades: %w", err)
	}
	view := analytics.View(trades, listQuery)

	if listOrg {
		fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradesOrg(view, j.Rate()))
		return nil
	}
	return writeTradesTable(cmd.OutOrStdout(), view)
}

func writeTradesTable(w io.Writer, trades []journal.TradeRecord) error {
	if len(trades) == 0 {
		_, err := fmt.Fprintln(w, "No trades yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tCONTRACT\tSTRATEGY\tQTY\tPNL\tOUTCOME\tSHOTS")
	for _, t := range trades {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%g\t%s\t%s\t%d\n",
			t.ID,
			t.Date,
			journal.TimeRangeLabel(t.EntryTime, t.ExitTime),
			t.ContractLabel(),
			t.StrategyLabel(),
			t.Contracts,
			journal.FormatMoney(t.PnL),
			t.Outcome,
			len(t.Shots),
		)
	}
	return tw.Flush()
}

func runDelete(cmd *cobra.Command, args []string) error {
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.DeleteTrade(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("delete trade: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}

func runClear(cmd *cobra.Command, args []string) error {
	if !clearYes {
		return fmt.Errorf("refusing to delete every trade without --yes")
	}
	j, err := openJournal(cmd)
	if err != nil {
		return err
	}
	defer j.Close()

	if err := j.Clear(cmd.Context()); err != nil {
		return fmt.Errorf("clear journal: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "Journal cleared.")
	return nil
}
