package analytics

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

const (
	BestTickerCount  = 5
	WorstTickerCount = 10
)

// Item is one labelled P&L total.
type Item struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Breakdowns are the ranked lists shown beside the charts. Best and worst
// tickers may overlap when there are fewer than 15 tickers.
type Breakdowns struct {
	BestTickers  []Item `json:"bestTickers"`
	WorstTickers []Item `json:"worstTickers"`
	Strategies   []Item `json:"strategies"`
}

// ByTicker sums P&L per normalized ticker, ranked best first. Equal totals
// keep the order in which the ticker first appears in the ledger.
func ByTicker(trades []journal.TradeRecord) []Item {
	return rankDesc(group(trades, tickerKey))
}

// ByStrategy sums P&L per strategy label, ranked best first.
func ByStrategy(trades []journal.TradeRecord) []Item {
	return rankDesc(group(trades, journal.TradeRecord.StrategyLabel))
}

// BestTickers is the top BestTickerCount of ByTicker.
func BestTickers(trades []journal.TradeRecord) []Item {
	return head(ByTicker(trades), BestTickerCount)
}

// WorstTickers is the WorstTickerCount lowest ticker totals, worst first.
func WorstTickers(trades []journal.TradeRecord) []Item {
	return head(rankAsc(group(trades, tickerKey)), WorstTickerCount)
}

func ComputeBreakdowns(trades []journal.TradeRecord) Breakdowns {
	tickers := group(trades, tickerKey)
	return Breakdowns{
		BestTickers:  head(rankDesc(tickers), BestTickerCount),
		WorstTickers: head(rankAsc(tickers), WorstTickerCount),
		Strategies:   ByStrategy(trades),
	}
}

func tickerKey(t journal.TradeRecord) string {
	return journal.NormalizeTicker(t.Ticker)
}

// group totals P&L by key, in first-seen order.
func group(trades []journal.TradeRecord, key func(journal.TradeRecord) string) []Item {
	idx := map[string]int{}
	var labels []string
	var totals []decimal.Decimal

	for _, t := range trades {
		k := key(t)
		i, ok := idx[k]
		if !ok {
			i = len(labels)
			idx[k] = i
			labels = append(labels, k)
			totals = append(totals, decimal.Zero)
		}
		totals[i] = totals[i].Add(dec(t.PnL))
	}

	out := make([]Item, len(labels))
	for i, l := range labels {
		out[i] = Item{Label: l, Value: totals[i].InexactFloat64()}
	}
	return out
}

func rankDesc(items []Item) []Item {
	out := append([]Item{}, items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value > out[j].Value })
	return out
}

func rankAsc(items []Item) []Item {
	out := append([]Item{}, items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value < out[j].Value })
	return out
}

func head(items []Item, n int) []Item {
	if len(items) > n {
		return items[:n]
	}
	return items
}
