package analytics

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/journal"
)

func TestByTicker(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		tr("1", "2024-01-02", "AAPL", "", 100),
		tr("2", "2024-01-02", "MSFT", "", 10),
		tr("3", "2024-01-03", " aapl", "", -50),
	}

	got := ByTicker(trades)
	assert.Equal(t, []Item{{"AAPL", 50}, {"MSFT", 10}}, got)
	assert.Equal(t, "AAPL", BestTickers(trades)[0].Label)
}

func TestByTickerTieKeepsLedgerOrder(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		tr("1", "2024-01-02", "ZZZ", "", 25),
		tr("2", "2024-01-02", "AAA", "", 25),
		tr("3", "2024-01-02", "MMM", "", 25),
	}

	assert.Equal(t, []string{"ZZZ", "AAA", "MMM"}, labels(ByTicker(trades)))
	assert.Equal(t, []string{"ZZZ", "AAA", "MMM"}, labels(WorstTickers(trades)))
}

func TestBestAndWorstTickers(t *testing.T) {
	t.Parallel()

	var trades []journal.TradeRecord
	for i := 0; i < 12; i++ {
		trades = append(trades, tr(fmt.Sprint(i), "2024-01-02", fmt.Sprintf("T%02d", i), "", float64(i*10-50)))
	}

	best := BestTickers(trades)
	require.Len(t, best, BestTickerCount)
	assert.Equal(t, []string{"T11", "T10", "T09", "T08", "T07"}, labels(best))

	worst := WorstTickers(trades)
	require.Len(t, worst, WorstTickerCount)
	assert.Equal(t, "T00", worst[0].Label)
	assert.Equal(t, -50.0, worst[0].Value)
	assert.Equal(t, "T09", worst[9].Label)
}

func TestBestAndWorstOverlapWithFewTickers(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		tr("1", "2024-01-02", "SPY", "", 30),
		tr("2", "2024-01-02", "QQQ", "", -20),
	}
	b := ComputeBreakdowns(trades)
	assert.Equal(t, []string{"SPY", "QQQ"}, labels(b.BestTickers))
	assert.Equal(t, []string{"QQQ", "SPY"}, labels(b.WorstTickers))
}

func TestByStrategy(t *testing.T) {
	t.Parallel()

	trades := []journal.TradeRecord{
		tr("1", "2024-01-02", "SPY", "ORB", -20),
		tr("2", "2024-01-02", "SPY", "", 15),
		tr("3", "2024-01-02", "SPY", "VWAP", 40),
		tr("4", "2024-01-02", "SPY", "  ", 5),
		tr("5", "2024-01-02", "SPY", "ORB", 1.1),
	}

	got := ByStrategy(trades)
	assert.Equal(t, []Item{{"VWAP", 40}, {"Unknown", 20}, {"ORB", -18.9}}, got)
}

func TestBreakdownsEmpty(t *testing.T) {
	t.Parallel()

	b := ComputeBreakdowns(nil)
	assert.Empty(t, b.BestTickers)
	assert.Empty(t, b.WorstTickers)
	assert.Empty(t, b.Strategies)
}

func labels(items []Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Label
	}
	return out
}
