// journal/trade.go
package journal

import (
	"fmt"
	"strings"
)

// Outcome classifies a trade's realized P&L.
type Outcome string

const (
	Win       Outcome = "WIN"
	Loss      Outcome = "LOSS"
	Breakeven Outcome = "BE"
)

// CP is the call/put side of an option contract.
type CP string

const (
	Call CP = "C"
	Put  CP = "P"
)

// UnknownStrategy labels trades logged without a strategy.
const UnknownStrategy = "Unknown"

// TradeRecord is one logged options trade. PnL and Outcome are derived once by
// NewTrade and stored; records are never edited after creation.
type TradeRecord struct {
	ID        string   `json:"id"`
	Date      string   `json:"date"`
	EntryTime string   `json:"entryTime"`
	ExitTime  string   `json:"exitTime"`
	Ticker    string   `json:"ticker"`
	Strategy  string   `json:"strategy"`
	CP        CP       `json:"cp"`
	DTE       int      `json:"dte"`
	Strike    float64  `json:"strike"`
	Entry     float64  `json:"entry"`
	Exit      float64  `json:"exit"`
	Contracts float64  `json:"contracts"`
	OtherFees float64  `json:"otherFees"`
	Notes     string   `json:"notes"`
	Shots     []string `json:"shots"`

	// Derived
	PnL     float64 `json:"pnl"`
	Outcome Outcome `json:"outcome"`
}

// Clone returns a deep copy so callers can hand records out without sharing
// the Shots backing array.
func (t TradeRecord) Clone() TradeRecord {
	c := t
	if t.Shots != nil {
		c.Shots = make([]string, len(t.Shots))
		copy(c.Shots, t.Shots)
	}
	return c
}

// StrategyLabel is the strategy used for grouping.
func (t TradeRecord) StrategyLabel() string {
	if strings.TrimSpace(t.Strategy) == "" {
		return UnknownStrategy
	}
	return t.Strategy
}

// ContractLabel renders e.g. "SPY C DTE0 450".
func (t TradeRecord) ContractLabel() string {
	return fmt.Sprintf("%s %s DTE%d %s", NormalizeTicker(t.Ticker), t.CP, t.DTE, formatStrike(t.Strike))
}

// Commissions charged on this trade at the given per-contract, per-side rate.
func (t TradeRecord) Commissions(rate float64) float64 {
	return Calculator{RatePerContractPerSide: rate}.Commissions(t.Contracts)
}

// CloneTrades deep-copies a ledger snapshot.
func CloneTrades(trades []TradeRecord) []TradeRecord {
	out := make([]TradeRecord, len(trades))
	for i, t := range trades {
		out[i] = t.Clone()
	}
	return out
}

// NormalizeTicker trims and uppercases a ticker symbol.
func NormalizeTicker(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseCP accepts C, P, CALL or PUT in any case.
func ParseCP(s string) (CP, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "C", "CALL":
		return Call, nil
	case "P", "PUT":
		return Put, nil
	}
	return "", fmt.Errorf("%w: %q", ErrBadCP, s)
}

func formatStrike(x float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", x), "0"), ".")
}
