package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// Stats summarizes a ledger. WinRate is a percentage of decisive trades:
// breakeven trades count toward Count and BE but not the win-rate
// denominator.
type Stats struct {
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	BE        int     `json:"be"`
	Net       float64 `json:"net"`
	WinRate   float64 `json:"winRate"`
	Count     int     `json:"count"`
	AvgWinner float64 `json:"avgWinner"`
	AvgLoser  float64 `json:"avgLoser"`
}

// WLCounts feeds the wins/losses/breakeven doughnut.
type WLCounts struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	BE     int `json:"be"`
}

func (s Stats) WL() WLCounts {
	return WLCounts{Wins: s.Wins, Losses: s.Losses, BE: s.BE}
}

// ComputeStats reduces trades in a single pass. An empty ledger yields the
// zero Stats.
func ComputeStats(trades []journal.TradeRecord) Stats {
	var s Stats
	net, sumWin, sumLoss := decimal.Zero, decimal.Zero, decimal.Zero

	for _, t := range trades {
		p := dec(t.PnL)
		net = net.Add(p)
		switch t.Outcome {
		case journal.Win:
			s.Wins++
			sumWin = sumWin.Add(p)
		case journal.Loss:
			s.Losses++
			sumLoss = sumLoss.Add(p)
		default:
			s.BE++
		}
	}

	s.Count = len(trades)
	s.Net = net.InexactFloat64()
	if decisive := s.Wins + s.Losses; decisive > 0 {
		s.WinRate = float64(s.Wins) / float64(decisive) * 100
	}
	if s.Wins > 0 {
		s.AvgWinner = sumWin.Div(decimal.NewFromInt(int64(s.Wins))).InexactFloat64()
	}
	if s.Losses > 0 {
		s.AvgLoser = sumLoss.Div(decimal.NewFromInt(int64(s.Losses))).InexactFloat64()
	}
	return s
}

// Band is a presentation colour class.
type Band string

const (
	Good    Band = "GOOD"
	Warn    Band = "WARN"
	Bad     Band = "BAD"
	Neutral Band = "NEUTRAL"
)

// WinRateBand colours the win-rate ring: 60% and up is good, 45% and up is
// a warning, anything lower is bad.
func WinRateBand(pct float64) Band {
	pct = clamp(pct, 0, 100)
	switch {
	case pct >= 60:
		return Good
	case pct >= 45:
		return Warn
	}
	return Bad
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
