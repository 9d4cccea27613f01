package analytics

import "github.com/rustyeddy/tradejournal/journal"

func tr(id, date, ticker, strategy string, pnl float64) journal.TradeRecord {
	return journal.TradeRecord{
		ID:        id,
		Date:      date,
		Ticker:    ticker,
		Strategy:  strategy,
		CP:        journal.Call,
		Contracts: 1,
		Shots:     []string{},
		PnL:       pnl,
		Outcome:   journal.Classify(pnl),
	}
}
