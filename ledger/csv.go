// ledger/csv.go
package ledger

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rustyeddy/tradejournal/journal"
)

var csvHeader = []string{
	"id", "date", "entry_time", "exit_time", "ticker", "strategy", "cp", "dte", "strike",
	"entry", "exit", "contracts", "commissions", "other_fees", "pnl", "outcome", "shots", "notes",
}

// WriteCSV writes one row per trade, in ledger order. Screenshots are counted,
// not embedded.
func WriteCSV(w io.Writer, trades []journal.TradeRecord, rate float64) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range trades {
		err := cw.Write([]string{
			t.ID,
			t.Date,
			t.EntryTime,
			t.ExitTime,
			t.Ticker,
			t.StrategyLabel(),
			string(t.CP),
			strconv.Itoa(t.DTE),
			num(t.Strike),
			num(t.Entry),
			num(t.Exit),
			num(t.Contracts),
			cents(t.Commissions(rate)),
			cents(t.OtherFees),
			cents(t.PnL),
			string(t.Outcome),
			strconv.Itoa(len(t.Shots)),
			t.Notes,
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func num(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

func cents(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
