package testutil

// FixedSessionID is the id returned by a zero-argument FixedSessionGenerator.
const FixedSessionID = "00000000-0000-7000-8000-000000000001"

// FixedSessionGenerator returns the same journal session id every time, so
// recorded journals are byte-for-byte reproducible in tests.
type FixedSessionGenerator struct {
	id string
}

// NewFixedSessionGenerator creates a generator for id. An empty id means
// FixedSessionID.
func NewFixedSessionGenerator(id string) *FixedSessionGenerator {
	if id == "" {
		id = FixedSessionID
	}
	return &FixedSessionGenerator{id: id}
}

// Generate returns the fixed id.
func (g *FixedSessionGenerator) Generate() string {
	return g.id
}
