package analytics

import (
	"sort"

	"github.com/rustyeddy/tradejournal/journal"
)

// StartLabel labels the synthetic first point of every equity series.
const StartLabel = "Start"

// EquitySeries is a chart-ready balance curve; Labels and Values always have
// the same length.
type EquitySeries struct {
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

// BuildEquitySeries sorts trades by date (same-day trades keep ledger order)
// and emits the running balance after each one, rounded to cents, after an
// initial ("Start", startingBalance) point.
func BuildEquitySeries(trades []journal.TradeRecord, startingBalance float64) EquitySeries {
	sorted := make([]journal.TradeRecord, len(trades))
	copy(sorted, trades)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date < sorted[j].Date })

	s := EquitySeries{
		Labels: make([]string, 0, len(sorted)+1),
		Values: make([]float64, 0, len(sorted)+1),
	}
	s.Labels = append(s.Labels, StartLabel)
	s.Values = append(s.Values, startingBalance)

	bal := dec(startingBalance)
	for _, t := range sorted {
		bal = bal.Add(dec(t.PnL))
		s.Labels = append(s.Labels, t.Date)
		s.Values = append(s.Values, bal.Round(2).InexactFloat64())
	}
	return s
}
