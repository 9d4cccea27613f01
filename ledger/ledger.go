package ledger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/journal"
)

// DefaultKey is the logical key the whole ledger is stored under.
const DefaultKey = "slstrades_journal_v3"

var ErrDuplicateID = errors.New("duplicate trade id")

// Ledger is the insertion-ordered sequence of trades, persisted as one JSON
// blob under a single key.
//
// Every mutation is a load-modify-save of the whole blob with no
// compare-and-swap: two writers racing on the same key can silently lose an
// update (last write wins). Callers sharing a store must serialize writes.
type Ledger struct {
	store BlobStore
	key   string
	log   *zap.Logger
}

type Option func(*Ledger)

func WithKey(key string) Option {
	return func(l *Ledger) {
		if key != "" {
			l.key = key
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(l *Ledger) {
		if log != nil {
			l.log = log
		}
	}
}

func New(store BlobStore, opts ...Option) *Ledger {
	l := &Ledger{store: store, key: DefaultKey, log: zap.NewNop()}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Key is the logical key the ledger persists under.
func (l *Ledger) Key() string { return l.key }

// Load returns a fresh snapshot of the ledger. An absent or unparsable blob
// yields an empty ledger; only a failing backend is reported as an error.
func (l *Ledger) Load(ctx context.Context) ([]journal.TradeRecord, error) {
	b, found, err := l.store.Get(ctx, l.key)
	if err != nil {
		return nil, fmt.Errorf("read ledger %q: %w", l.key, err)
	}
	if !found {
		return []journal.TradeRecord{}, nil
	}

	var trades []journal.TradeRecord
	if err := json.Unmarshal(b, &trades); err != nil {
		l.log.Warn("ledger blob unparsable, treating as empty",
			zap.String("key", l.key),
			zap.Int("bytes", len(b)),
			zap.Error(err),
		)
		return []journal.TradeRecord{}, nil
	}
	if trades == nil {
		trades = []journal.TradeRecord{}
	}
	return trades, nil
}

// Save replaces the persisted blob with trades.
func (l *Ledger) Save(ctx context.Context, trades []journal.TradeRecord) error {
	if trades == nil {
		trades = []journal.TradeRecord{}
	}
	b, err := json.Marshal(trades)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := l.store.Set(ctx, l.key, b); err != nil {
		return fmt.Errorf("write ledger %q: %w", l.key, err)
	}
	return nil
}

// Append adds rec to the end of the ledger.
func (l *Ledger) Append(ctx context.Context, rec journal.TradeRecord) error {
	trades, err := l.Load(ctx)
	if err != nil {
		return err
	}
	for _, t := range trades {
		if t.ID == rec.ID {
			return fmt.Errorf("%w: %s", ErrDuplicateID, rec.ID)
		}
	}
	return l.Save(ctx, append(trades, rec.Clone()))
}

// RemoveByID deletes the trade with the given id. It reports whether a trade
// was removed; an unknown id is a no-op and does not rewrite the blob.
func (l *Ledger) RemoveByID(ctx context.Context, id string) (bool, error) {
	trades, err := l.Load(ctx)
	if err != nil {
		return false, err
	}
	kept := trades[:0]
	removed := false
	for _, t := range trades {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		return false, nil
	}
	return true, l.Save(ctx, kept)
}

// Clear wipes the ledger unconditionally.
func (l *Ledger) Clear(ctx context.Context) error {
	if err := l.store.Delete(ctx, l.key); err != nil {
		return fmt.Errorf("clear ledger %q: %w", l.key, err)
	}
	return nil
}
