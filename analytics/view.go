package analytics

import (
	"sort"
	"strings"

	"github.com/rustyeddy/tradejournal/journal"
)

// SortKey orders the trades table.
type SortKey string

const (
	SortNewest  SortKey = "NEWEST"
	SortOldest  SortKey = "OLDEST"
	SortBigWin  SortKey = "BIGWIN"
	SortBigLoss SortKey = "BIGLOSS"
)

// OutcomeAll disables the outcome filter.
const OutcomeAll = "ALL"

// Query filters and orders the trades table. Zero values mean "no filter"
// and "ledger order".
type Query struct {
	Ticker  string  `json:"ticker" form:"ticker"`
	Outcome string  `json:"outcome" form:"outcome"`
	Sort    SortKey `json:"sort" form:"sort"`
}

// View projects trades through q. The result is a new slice of copies; the
// input is never reordered. Dates compare as strings, which is chronological
// for zero-padded YYYY-MM-DD. An unknown sort key keeps ledger order.
func View(trades []journal.TradeRecord, q Query) []journal.TradeRecord {
	tkr := journal.NormalizeTicker(q.Ticker)
	outcome := strings.ToUpper(strings.TrimSpace(q.Outcome))

	out := make([]journal.TradeRecord, 0, len(trades))
	for _, t := range trades {
		if tkr != "" && !strings.Contains(journal.NormalizeTicker(t.Ticker), tkr) {
			continue
		}
		if outcome != "" && outcome != OutcomeAll && string(t.Outcome) != outcome {
			continue
		}
		out = append(out, t.Clone())
	}

	var less func(a, b journal.TradeRecord) bool
	switch SortKey(strings.ToUpper(string(q.Sort))) {
	case SortNewest:
		less = func(a, b journal.TradeRecord) bool { return a.Date > b.Date }
	case SortOldest:
		less = func(a, b journal.TradeRecord) bool { return a.Date < b.Date }
	case SortBigWin:
		less = func(a, b journal.TradeRecord) bool { return a.PnL > b.PnL }
	case SortBigLoss:
		less = func(a, b journal.TradeRecord) bool { return a.PnL < b.PnL }
	default:
		return out
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
