package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show summary statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

var breakdownCmd = &cobra.Command{
	Use:   "breakdown",
	Short: "Show P&L by ticker and strategy",
	Args:  cobra.NoArgs,
	RunE:  runBreakdown,
}

var equityCmd = &cobra.Command{
	Use:   "equity",
	Short: "Show the equity curve",
	Args:  cobra.NoArgs,
	RunE:  runEquity,
}

var calendarCmd = &cobra.Command{
	Use:   "calendar [YYYY-MM]",
	Short: "Show the monthly P&L calendar",
	Long: `Render a six-week P&L grid for a month (default: the current month).
Totals inside the breakeven band are prefixed with ~.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCalendar,
}

func init() {
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(breakdownCmd)
	rootCmd.AddCommand(equityCmd)
	rootCmd.AddCommand(calendarCmd)
}

func loadTrades(cmd *cobra.Command) ([]journal.TradeRecord, analytics.Settings, error) {
	j, err := openJournal(cmd)
	if err != nil {
		return nil, analytics.Settings{}, err
	}
	defer j.Close()

	trades, err := j.Trades(cmd.Context())
	if err != nil {
		return nil, analytics.Settings{}, fmt.Errorf("load trades: %w", err)
	}
	return trades, j.Settings(), nil
}

func runStats(cmd *cobra.Command, args []string) error {
	trades, _, err := loadTrades(cmd)
	if err != nil {
		return err
	}
	writeStats(cmd.OutOrStdout(), analytics.ComputeStats(trades))
	return nil
}

func writeStats(w io.Writer, s analytics.Stats) {
	fmt.Fprintf(w, "Trades:     %d (%d W / %d L / %d BE)\n", s.Count, s.Wins, s.Losses, s.BE)
	fmt.Fprintf(w, "Net P&L:    %s\n", journal.FormatMoney(s.Net))
	fmt.Fprintf(w, "Win rate:   %.1f%% [%s]\n", s.WinRate, analytics.WinRateBand(s.WinRate))
	fmt.Fprintf(w, "Avg winner: %s\n", journal.FormatMoney(s.AvgWinner))
	fmt.Fprintf(w, "Avg loser:  %s\n", journal.FormatMoney(s.AvgLoser))
}

func runBreakdown(cmd *cobra.Command, args []string) error {
	trades, _, err := loadTrades(cmd)
	if err != nil {
		return err
	}
	b := analytics.ComputeBreakdowns(trades)

	out := cmd.OutOrStdout()
	writeItems(out, "Best tickers", b.BestTickers)
	writeItems(out, "Worst tickers", b.WorstTickers)
	writeItems(out, "Strategies", b.Strategies)
	return nil
}

func writeItems(w io.Writer, title string, items []analytics.Item) {
	fmt.Fprintf(w, "%s\n", title)
	if len(items) == 0 {
		fmt.Fprintln(w, "  (none)")
		fmt.Fprintln(w)
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for _, it := range items {
		fmt.Fprintf(tw, "  %s\t%s\t\n", it.Label, journal.FormatMoney(it.Value))
	}
	_ = tw.Flush()
	fmt.Fprintln(w)
}

func runEquity(cmd *cobra.Command, args []string) error {
	trades, settings, err := loadTrades(cmd)
	if err != nil {
		return err
	}
	eq := analytics.BuildEquitySeries(trades, settings.StartingBalance)

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tBALANCE")
	for i := range eq.Labels {
		fmt.Fprintf(tw, "%s\t%s\n", eq.Labels[i], journal.FormatMoney(eq.Values[i]))
	}
	return tw.Flush()
}

func runCalendar(cmd *cobra.Command, args []string) error {
	now := time.Now()
	year, month := now.Year(), now.Month()
	if len(args) == 1 {
		t, err := time.Parse("2006-01", args[0])
		if err != nil {
			return fmt.Errorf("month must be YYYY-MM: %w", err)
		}
		year, month = t.Year(), t.Month()
	}

	trades, settings, err := loadTrades(cmd)
	if err != nil {
		return err
	}
	cal := analytics.BuildCalendar(trades, year, month, settings.BreakevenDayBand)
	writeCalendar(cmd.OutOrStdout(), cal)
	return nil
}

func writeCalendar(w io.Writer, cal analytics.Calendar) {
	fmt.Fprintln(w, cal.Title)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Sun\tMon\tTue\tWed\tThu\tFri\tSat\tWeek\t")
	for _, wk := range cal.Weeks {
		days := make([]string, 0, analytics.DaysPerWeek+1)
		pnls := make([]string, 0, analytics.DaysPerWeek+1)
		for _, d := range wk.Days {
			label := fmt.Sprintf("%d", d.Day)
			if !d.InCurrentMonth {
				label = "(" + label + ")"
			}
			days = append(days, label)
			pnls = append(pnls, cell(d.PnL, d.Class))
		}
		days = append(days, "")
		pnls = append(pnls, cell(wk.Total, wk.Class))
		fmt.Fprintln(tw, strings.Join(days, "\t")+"\t")
		fmt.Fprintln(tw, strings.Join(pnls, "\t")+"\t")
	}
	_ = tw.Flush()
	fmt.Fprintf(w, "prev %04d-%02d  next %04d-%02d\n",
		cal.Prev.Year, int(cal.Prev.Month), cal.Next.Year, int(cal.Next.Month))
}

// cell renders a day or week total; totals inside the breakeven band are
// prefixed with ~.
func cell(pnl float64, class analytics.Band) string {
	if pnl == 0 {
		return "·"
	}
	if class == analytics.Neutral {
		return fmt.Sprintf("~%+.0f", pnl)
	}
	return fmt.Sprintf("%+.0f", pnl)
}
