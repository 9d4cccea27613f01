package journal

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rustyeddy/tradejournal/pkg/id"
)

var (
	ErrEmptyTicker        = errors.New("ticker is required")
	ErrBadDate            = errors.New("date must be YYYY-MM-DD")
	ErrBadTime            = errors.New("time must be HH:MM")
	ErrTimeOutsideSession = errors.New("time outside trading session")
	ErrBadCP              = errors.New("cp must be C or P")
	ErrTooManyShots       = errors.New("too many screenshots")
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	DefaultSessionStart = "06:30"
	DefaultSessionEnd   = "08:00"
	DefaultNotesMaxLen  = 500
	MaxShots            = 2
)

// TradeInput is a trade as captured by an input surface: every field is the
// raw string the user typed or picked.
type TradeInput struct {
	Date      string `json:"date" yaml:"date"`
	EntryTime string `json:"entryTime" yaml:"entryTime"`
	ExitTime  string `json:"exitTime" yaml:"exitTime"`
	Ticker    string `json:"ticker" yaml:"ticker"`
	Strategy  string `json:"strategy" yaml:"strategy"`
	CP        string `json:"cp" yaml:"cp"`
	DTE       string `json:"dte" yaml:"dte"`
	Strike    string `json:"strike" yaml:"strike"`
	Entry     string `json:"entry" yaml:"entry"`
	Exit      string `json:"exit" yaml:"exit"`
	Contracts string `json:"contracts" yaml:"contracts"`
	OtherFees string `json:"otherFees" yaml:"otherFees"`
	Notes     string `json:"notes" yaml:"notes"`
}

// Options control how NewTrade normalizes input.
type Options struct {
	Calculator   Calculator
	SessionStart string // HH:MM, inclusive
	SessionEnd   string // HH:MM, inclusive
	NotesMaxLen  int
	NewID        func() string
}

func DefaultOptions() Options {
	return Options{
		Calculator:   DefaultCalculator(),
		SessionStart: DefaultSessionStart,
		SessionEnd:   DefaultSessionEnd,
		NotesMaxLen:  DefaultNotesMaxLen,
		NewID:        id.New,
	}
}

// NewTrade is the single normalization boundary for trades. Numeric fields
// are coerced with fallbacks (0, or 1 for contracts) and never fail; the
// remaining fields are validated. shots must already be encoded.
func NewTrade(in TradeInput, shots []string, opts Options) (TradeRecord, error) {
	ticker := NormalizeTicker(in.Ticker)
	if ticker == "" {
		return TradeRecord{}, ErrEmptyTicker
	}

	date := strings.TrimSpace(in.Date)
	if _, err := time.Parse(DateLayout, date); err != nil {
		return TradeRecord{}, fmt.Errorf("%w: %q", ErrBadDate, in.Date)
	}

	entryTime, err := sessionTime(in.EntryTime, opts)
	if err != nil {
		return TradeRecord{}, fmt.Errorf("entry time: %w", err)
	}
	exitTime, err := sessionTime(in.ExitTime, opts)
	if err != nil {
		return TradeRecord{}, fmt.Errorf("exit time: %w", err)
	}

	cp, err := ParseCP(in.CP)
	if err != nil {
		return TradeRecord{}, err
	}

	if len(shots) > MaxShots {
		return TradeRecord{}, fmt.Errorf("%w: %d > %d", ErrTooManyShots, len(shots), MaxShots)
	}

	dte := int(math.Trunc(ParseNum(in.DTE, 0)))
	if dte < 0 {
		dte = 0
	}

	newID := opts.NewID
	if newID == nil {
		newID = id.New
	}

	rec := TradeRecord{
		ID:        newID(),
		Date:      date,
		EntryTime: entryTime,
		ExitTime:  exitTime,
		Ticker:    ticker,
		Strategy:  strings.TrimSpace(in.Strategy),
		CP:        cp,
		DTE:       dte,
		Strike:    ParseNum(in.Strike, 0),
		Entry:     ParseNum(in.Entry, 0),
		Exit:      ParseNum(in.Exit, 0),
		Contracts: ParseNum(in.Contracts, 1),
		OtherFees: ParseNum(in.OtherFees, 0),
		Notes:     truncateRunes(strings.TrimSpace(in.Notes), opts.NotesMaxLen),
		Shots:     make([]string, len(shots)),
	}
	copy(rec.Shots, shots)

	rec.PnL = opts.Calculator.PnL(rec.Entry, rec.Exit, rec.Contracts, rec.OtherFees)
	rec.Outcome = Classify(rec.PnL)
	return rec, nil
}

// sessionTime accepts a blank value or an HH:MM inside the session bound.
func sessionTime(s string, opts Options) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	m, err := minuteOfDay(s)
	if err != nil {
		return "", err
	}
	start, end := DefaultSessionStart, DefaultSessionEnd
	if opts.SessionStart != "" {
		start = opts.SessionStart
	}
	if opts.SessionEnd != "" {
		end = opts.SessionEnd
	}
	lo, err := minuteOfDay(start)
	if err != nil {
		return "", fmt.Errorf("session start: %w", err)
	}
	hi, err := minuteOfDay(end)
	if err != nil {
		return "", fmt.Errorf("session end: %w", err)
	}
	if m < lo || m > hi {
		return "", fmt.Errorf("%w: %s not in %s-%s", ErrTimeOutsideSession, s, start, end)
	}
	return s, nil
}

// minuteOfDay parses a zero-padded 24-hour HH:MM.
func minuteOfDay(s string) (int, error) {
	if len(s) != len(TimeLayout) {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}

func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	return string(r[:max])
}
