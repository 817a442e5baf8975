package cipher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPool_Naval(t *testing.T) {
	pool, err := NewPool(mustAlphabet(t, DefaultAlphabet), navalDefs)
	require.NoError(t, err)
	assert.Equal(t, len(navalDefs), pool.Len())
	assert.Equal(t, "I", pool.Names()[0])

	id, ok := pool.Lookup("Beta")
	require.True(t, ok)
	assert.Equal(t, Fixed, pool.Rotor(id).Kind())

	_, ok = pool.Lookup("IX")
	assert.False(t, ok)
}

func TestNewPool_Errors(t *testing.T) {
	a := mustAlphabet(t, "ABCDE")

	tests := []struct {
		name  string
		defs  []RotorDef
		check func(error) bool
	}{
		{
			name: "duplicate name",
			defs: []RotorDef{
				{Name: "R", Kind: Moving, Cycles: "(AB)"},
				{Name: "R", Kind: Fixed, Cycles: "(CD)"},
			},
			check: IsConfigError,
		},
		{
			name:  "empty name",
			defs:  []RotorDef{{Kind: Fixed}},
			check: IsConfigError,
		},
		{
			name:  "reflector not a derangement",
			defs:  []RotorDef{{Name: "X", Kind: Reflector, Cycles: "(AB)(CD)"}},
			check: IsConfigError,
		},
		{
			name:  "fixed rotor with notches",
			defs:  []RotorDef{{Name: "F", Kind: Fixed, Notches: "A"}},
			check: IsConfigError,
		},
		{
			name:  "bad cycles",
			defs:  []RotorDef{{Name: "M", Kind: Moving, Cycles: "(AB"}},
			check: IsPermutationError,
		},
		{
			name:  "invalid kind",
			defs:  []RotorDef{{Name: "M", Kind: Kind(7)}},
			check: IsConfigError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPool(a, tt.defs)
			require.Error(t, err)
			assert.True(t, tt.check(err), "got %v", err)
		})
	}
}
