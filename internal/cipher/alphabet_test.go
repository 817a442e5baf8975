package cipher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlphabet_RoundTrip(t *testing.T) {
	a := mustAlphabet(t, "ABCDE")
	require.Equal(t, 5, a.Size())

	for i := 0; i < a.Size(); i++ {
		r, err := a.ToChar(i)
		require.NoError(t, err)
		back, err := a.ToInt(r)
		require.NoError(t, err)
		assert.Equal(t, i, back)
	}
	assert.Equal(t, "ABCDE", a.String())
}

func TestAlphabet_Contains(t *testing.T) {
	a := mustAlphabet(t, "ABCDE")
	assert.True(t, a.Contains('A'))
	assert.True(t, a.Contains('E'))
	assert.False(t, a.Contains('F'))
	assert.False(t, a.Contains('a'))
}

func TestAlphabet_NonLatinSymbols(t *testing.T) {
	a := mustAlphabet(t, "αβγδ01")
	assert.Equal(t, 6, a.Size())
	i, err := a.ToInt('γ')
	require.NoError(t, err)
	assert.Equal(t, 2, i)
}

func TestAlphabet_ToCharOutOfRange(t *testing.T) {
	a := mustAlphabet(t, "ABCDE")
	for _, idx := range []int{-1, 5, 100} {
		_, err := a.ToChar(idx)
		require.Error(t, err)
		assert.True(t, IsRangeError(err), "index %d", idx)
	}
}

func TestAlphabet_ToIntUnknownSymbol(t *testing.T) {
	a := mustAlphabet(t, "ABCDE")
	_, err := a.ToInt('Z')
	require.Error(t, err)
	assert.True(t, IsAlphabetError(err))

	var e *Error
	require.ErrorAs(t, err, &e)
	assert.Equal(t, 'Z', e.Symbol)
}

func TestNewAlphabet_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		chars string
	}{
		{"empty", ""},
		{"duplicate", "ABCA"},
		{"space", "AB C"},
		{"open paren", "AB(C"},
		{"close paren", "AB)C"},
		{"star", "AB*C"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewAlphabet(tt.chars)
			require.Error(t, err)
			assert.True(t, IsConfigError(err))
		})
	}
}
