package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/ledger"
	"github.com/rustyeddy/tradejournal/shots"
)

var (
	ErrNotFound      = errors.New("trade not found")
	ErrUnknownFormat = errors.New("unknown export format")
	ErrInvalidPeriod = errors.New("invalid dashboard period")
)

// Export formats.
const (
	FormatJSON = "json"
	FormatCSV  = "csv"
	FormatOrg  = "org"
)

// Journal ties the ledger to the shot encoder and the configured constants.
// Writes through one Journal are serialized; separate processes sharing a
// store can still lose updates.
type Journal struct {
	mu       sync.Mutex
	ledger   *ledger.Ledger
	store    ledger.BlobStore
	enc      shots.Encoder
	opts     journal.Options
	settings analytics.Settings
	rate     float64
	log      *zap.Logger
}

// New builds a Journal over an already opened store.
func New(store ledger.BlobStore, cfg *config.Config, log *zap.Logger) *Journal {
	if log == nil {
		log = zap.NewNop()
	}
	return &Journal{
		ledger:   ledger.New(store, ledger.WithKey(cfg.Storage.Key), ledger.WithLogger(log)),
		store:    store,
		enc:      cfg.Encoder(),
		opts:     cfg.TradeOptions(),
		settings: cfg.Settings(),
		rate:     cfg.Journal.RatePerContractPerSide,
		log:      log,
	}
}

// Open opens the configured store and returns a Journal over it.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Journal, error) {
	store, err := OpenStore(ctx, cfg.Storage)
	if err != nil {
		return nil, err
	}
	return New(store, cfg, log), nil
}

func (j *Journal) Close() error {
	return j.store.Close()
}

// Settings returns the aggregator constants in effect.
func (j *Journal) Settings() analytics.Settings { return j.settings }

// Rate is the commission rate per contract per side.
func (j *Journal) Rate() float64 { return j.rate }

// AddTrade encodes images, builds the trade and appends it. Nothing is
// persisted if any image fails to encode.
func (j *Journal) AddTrade(ctx context.Context, in journal.TradeInput, images ...[]byte) (journal.TradeRecord, error) {
	if limit := j.enc.Limit(); len(images) > limit {
		return journal.TradeRecord{}, fmt.Errorf("%w: %d > %d", journal.ErrTooManyShots, len(images), limit)
	}
	encoded := make([]string, 0, len(images))
	for i, b := range images {
		s, err := j.enc.EncodeBytes(ctx, b)
		if err != nil {
			return journal.TradeRecord{}, fmt.Errorf("screenshot %d: %w", i+1, err)
		}
		encoded = append(encoded, s)
	}
	return j.add(ctx, in, encoded)
}

// AddTradeFromFiles is AddTrade for screenshot files on disk. Non-image files
// are skipped and only the first MaxCount images are kept.
func (j *Journal) AddTradeFromFiles(ctx context.Context, in journal.TradeInput, paths []string) (journal.TradeRecord, error) {
	encoded, err := j.enc.EncodeFiles(ctx, paths)
	if err != nil {
		return journal.TradeRecord{}, fmt.Errorf("screenshots: %w", err)
	}
	return j.add(ctx, in, encoded)
}

func (j *Journal) add(ctx context.Context, in journal.TradeInput, encoded []string) (journal.TradeRecord, error) {
	rec, err := journal.NewTrade(in, encoded, j.opts)
	if err != nil {
		return journal.TradeRecord{}, err
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if err := j.ledger.Append(ctx, rec); err != nil {
		return journal.TradeRecord{}, err
	}

	j.log.Info("trade added",
		zap.String("id", rec.ID),
		zap.String("ticker", rec.Ticker),
		zap.Float64("pnl", rec.PnL),
		zap.String("outcome", string(rec.Outcome)),
		zap.Int("shots", len(rec.Shots)),
	)
	return rec, nil
}

// DeleteTrade removes the trade with id. An unknown id returns ErrNotFound
// and leaves the ledger untouched.
func (j *Journal) DeleteTrade(ctx context.Context, id string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	removed, err := j.ledger.RemoveByID(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	j.log.Info("trade deleted", zap.String("id", id))
	return nil
}

// Clear wipes every trade. Confirmation is the caller's job.
func (j *Journal) Clear(ctx context.Context) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.ledger.Clear(ctx); err != nil {
		return err
	}
	j.log.Warn("ledger cleared", zap.String("key", j.ledger.Key()))
	return nil
}

// Trades returns the ledger in insertion order.
func (j *Journal) Trades(ctx context.Context) ([]journal.TradeRecord, error) {
	return j.ledger.Load(ctx)
}

// Trade returns the trade with id.
func (j *Journal) Trade(ctx context.Context, id string) (journal.TradeRecord, error) {
	trades, err := j.ledger.Load(ctx)
	if err != nil {
		return journal.TradeRecord{}, err
	}
	for _, t := range trades {
		if t.ID == id {
			return t, nil
		}
	}
	return journal.TradeRecord{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Export writes the whole ledger to w in the given format.
func (j *Journal) Export(ctx context.Context, w io.Writer, format string) error {
	trades, err := j.ledger.Load(ctx)
	if err != nil {
		return err
	}

	switch strings.ToLower(format) {
	case "", FormatJSON:
		err = ledger.Export(w, trades)
	case FormatCSV:
		err = ledger.WriteCSV(w, trades, j.rate)
	case FormatOrg:
		_, err = io.WriteString(w, journal.FormatTradesOrg(trades, j.rate))
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", format, err)
	}
	return nil
}

// ExportFileName is the suggested attachment name for format.
func ExportFileName(format string) string {
	base := strings.TrimSuffix(ledger.ExportFileName, ".json")
	switch strings.ToLower(format) {
	case FormatCSV:
		return base + ".csv"
	case FormatOrg:
		return base + ".org"
	default:
		return ledger.ExportFileName
	}
}

// Dashboard computes every view over one snapshot of the ledger. A zero year
// or month is taken from now; the other part is kept.
func (j *Journal) Dashboard(ctx context.Context, q analytics.Query, year int, month time.Month) (analytics.Dashboard, error) {
	if year < 0 {
		return analytics.Dashboard{}, fmt.Errorf("%w: year %d", ErrInvalidPeriod, year)
	}
	if month < 0 || month > time.December {
		return analytics.Dashboard{}, fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = now.Month()
	}
	trades, err := j.ledger.Load(ctx)
	if err != nil {
		return analytics.Dashboard{}, err
	}
	return analytics.BuildDashboard(trades, q, year, month, j.settings), nil
}
