package api

import (
	"bytes"
	"encoding/json"

	"github.com/rustyeddy/tradejournal/journal"
)

// CreateTradeRequest is the body of POST /api/v1/trades. Numeric fields may
// be JSON numbers or strings. Shots are base64 images, optionally carried as
// data URLs.
type CreateTradeRequest struct {
	journal.TradeInput
	Shots []string `json:"shots,omitempty"`
}

func (r *CreateTradeRequest) UnmarshalJSON(b []byte) error {
	var raw struct {
		Date      string     `json:"date"`
		EntryTime string     `json:"entryTime"`
		ExitTime  string     `json:"exitTime"`
		Ticker    string     `json:"ticker"`
		Strategy  string     `json:"strategy"`
		CP        string     `json:"cp"`
		DTE       flexString `json:"dte"`
		Strike    flexString `json:"strike"`
		Entry     flexString `json:"entry"`
		Exit      flexString `json:"exit"`
		Contracts flexString `json:"contracts"`
		OtherFees flexString `json:"otherFees"`
		Notes     string     `json:"notes"`
		Shots     []string   `json:"shots"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	*r = CreateTradeRequest{
		TradeInput: journal.TradeInput{
			Date:      raw.Date,
			EntryTime: raw.EntryTime,
			ExitTime:  raw.ExitTime,
			Ticker:    raw.Ticker,
			Strategy:  raw.Strategy,
			CP:        raw.CP,
			DTE:       string(raw.DTE),
			Strike:    string(raw.Strike),
			Entry:     string(raw.Entry),
			Exit:      string(raw.Exit),
			Contracts: string(raw.Contracts),
			OtherFees: string(raw.OtherFees),
			Notes:     raw.Notes,
		},
		Shots: raw.Shots,
	}
	return nil
}

// flexString holds a numeric input as text. A JSON number keeps its literal
// form; null, booleans, objects and arrays become blank so NewTrade applies
// its fallback.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0:
		*f = ""
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
	case b[0] == '-' || (b[0] >= '0' && b[0] <= '9'):
		*f = flexString(b)
	default:
		*f = ""
	}
	return nil
}

// TradesResponse is the filtered trades table.
type TradesResponse struct {
	Trades []journal.TradeRecord `json:"trades"`
	Count  int                   `json:"count"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}
