package analytics

import (
	"time"

	"github.com/rustyeddy/tradejournal/journal"
)

// Settings are the presentation constants the aggregators need.
type Settings struct {
	StartingBalance  float64
	BreakevenDayBand float64
}

// DefaultStartingBalance seeds the equity curve.
const DefaultStartingBalance = 4475.0

func DefaultSettings() Settings {
	return Settings{
		StartingBalance:  DefaultStartingBalance,
		BreakevenDayBand: DefaultBreakevenDayBand,
	}
}

// Dashboard is everything a renderer needs for one screen. Trades is the
// filtered table; every other field is computed over the whole ledger.
type Dashboard struct {
	Trades      []journal.TradeRecord `json:"trades"`
	Stats       Stats                 `json:"stats"`
	WinRateBand Band                  `json:"winRateBand"`
	Equity      EquitySeries          `json:"equity"`
	WL          WLCounts              `json:"wl"`
	Breakdowns  Breakdowns            `json:"breakdowns"`
	Calendar    Calendar              `json:"calendar"`
}

// BuildDashboard runs every aggregator over the same snapshot.
func BuildDashboard(trades []journal.TradeRecord, q Query, year int, month time.Month, s Settings) Dashboard {
	stats := ComputeStats(trades)
	return Dashboard{
		Trades:      View(trades, q),
		Stats:       stats,
		WinRateBand: WinRateBand(stats.WinRate),
		Equity:      BuildEquitySeries(trades, s.StartingBalance),
		WL:          stats.WL(),
		Breakdowns:  ComputeBreakdowns(trades),
		Calendar:    BuildCalendar(trades, year, month, s.BreakevenDayBand),
	}
}
