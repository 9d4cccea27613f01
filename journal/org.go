package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/pkg/id"
)

// FormatTradeOrg renders a TradeRecord as an Org-mode entry. Structured facts
// go in the PROPERTIES drawer; notes become the Review section. Ids that are
// ULIDs also get a CREATED timestamp.
func FormatTradeOrg(t TradeRecord, rate float64) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %s (%s)\n", t.Date, t.ContractLabel(), shortID(t.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", t.ID)
	if at, err := id.CreatedAt(t.ID); err == nil {
		fmt.Fprintf(&b, ":CREATED: %s\n", at.Format(time.RFC3339))
	}
	fmt.Fprintf(&b, ":DATE: %s\n", t.Date)
	fmt.Fprintf(&b, ":TIME: %s\n", TimeRangeLabel(t.EntryTime, t.ExitTime))
	fmt.Fprintf(&b, ":TICKER: %s\n", t.Ticker)
	fmt.Fprintf(&b, ":STRATEGY: %s\n", t.StrategyLabel())
	fmt.Fprintf(&b, ":CP: %s\n", t.CP)
	fmt.Fprintf(&b, ":DTE: %d\n", t.DTE)
	fmt.Fprintf(&b, ":STRIKE: %s\n", formatStrike(t.Strike))
	fmt.Fprintf(&b, ":ENTRY: %.2f\n", t.Entry)
	fmt.Fprintf(&b, ":EXIT: %.2f\n", t.Exit)
	fmt.Fprintf(&b, ":CONTRACTS: %g\n", t.Contracts)
	fmt.Fprintf(&b, ":COMMISSIONS: %.2f\n", t.Commissions(rate))
	fmt.Fprintf(&b, ":OTHER_FEES: %.2f\n", t.OtherFees)
	fmt.Fprintf(&b, ":PNL: %.2f\n", t.PnL)
	fmt.Fprintf(&b, ":OUTCOME: %s\n", t.Outcome)
	fmt.Fprintf(&b, ":SHOTS: %d\n", len(t.Shots))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Review\n")
	if t.Notes == "" {
		b.WriteString("- \n")
	} else {
		for _, line := range strings.Split(t.Notes, "\n") {
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}
	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []TradeRecord, rate float64) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t, rate))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
