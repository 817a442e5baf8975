package journal

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// IDGenerator produces session ids.
type IDGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session ids.
//
// Safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7. Panics if the system random
// source fails.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined ids in order, for tests.
type FixedGenerator struct {
	mu  sync.Mutex
	ids []string
	idx int
}

// NewFixedGenerator creates a generator that returns ids in order.
func NewFixedGenerator(ids ...string) *FixedGenerator {
	return &FixedGenerator{ids: ids}
}

// Generate returns the next id. Panics once all ids are used, which points
// at a test that opened more sessions than it declared.
func (g *FixedGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.ids) {
		panic("FixedGenerator: all ids exhausted")
	}
	id := g.ids[g.idx]
	g.idx++
	return id
}

// Clock assigns entry sequence numbers.
type Clock interface {
	Next() int64
}

// LogicalClock is a monotonic counter starting at 0; the first Next returns 1.
type LogicalClock struct {
	seq atomic.Int64
}

// NewClock creates a clock starting at 0.
func NewClock() *LogicalClock {
	return &LogicalClock{}
}

// Next returns the next sequence number.
func (c *LogicalClock) Next() int64 {
	return c.seq.Add(1)
}
