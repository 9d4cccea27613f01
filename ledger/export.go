package ledger

import (
	"encoding/json"
	"io"

	"github.com/rustyeddy/tradejournal/journal"
)

// ExportFileName is the suggested name of the JSON export artifact.
const ExportFileName = "trading-journal-export.json"

// Export writes the ledger as pretty-printed JSON in TradeRecord field order.
// It is a snapshot, not a backup format; nothing reads it back in.
func Export(w io.Writer, trades []journal.TradeRecord) error {
	if trades == nil {
		trades = []journal.TradeRecord{}
	}
	b, err := json.MarshalIndent(trades, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}
