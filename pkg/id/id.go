package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator hands out ULIDs for trade records. IDs generated within the same
// millisecond stay lexicographically increasing.
type Generator struct {
	mu   sync.Mutex
	mono io.Reader
	now  func() time.Time
}

// NewGenerator builds a generator from an explicit seed and clock. A zero
// seed is replaced by one read from crypto/rand.
func NewGenerator(seed int64, now func() time.Time) *Generator {
	if seed == 0 {
		_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{
		mono: ulid.Monotonic(rand.New(rand.NewSource(seed)), 0),
		now:  now,
	}
}

// New returns the next ULID string.
func (g *Generator) New() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(g.now().UTC()), g.mono)
	if err != nil {
		// Only possible if the clock runs backwards past the ULID epoch or
		// the entropy source fails.
		panic(err)
	}
	return id.String()
}

var std = NewGenerator(0, nil)

// New returns a ULID string from the process-wide generator.
func New() string {
	return std.New()
}

// CreatedAt reports the creation time embedded in a ULID. Trade ids that are
// not ULIDs (e.g. imported from elsewhere) return an error.
func CreatedAt(s string) (time.Time, error) {
	u, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(u.Time()).UTC(), nil
}
