package cipher

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// navalDefs is the M4 rotor set: eight moving rotors, two thin fixed rotors
// and two thin reflectors.
var navalDefs = []RotorDef{
	{Name: "I", Kind: Moving, Notches: "Q", Cycles: "(AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ) (S)"},
	{Name: "II", Kind: Moving, Notches: "E", Cycles: "(FIXVYOMW) (CDKLHUP) (ESZ) (BJ) (GR) (NT) (A) (Q)"},
	{Name: "III", Kind: Moving, Notches: "V", Cycles: "(ABDHPEJT) (CFLVMZOYQIRWUKXSG) (N)"},
	{Name: "IV", Kind: Moving, Notches: "J", Cycles: "(AEPLIYWCOXMRFZBSTGJQNH) (DV) (KU)"},
	{Name: "V", Kind: Moving, Notches: "Z", Cycles: "(AVOLDRWFIUQ)(BZKSMNHYC) (EGTJPX)"},
	{Name: "VI", Kind: Moving, Notches: "ZM", Cycles: "(AJQDVLEOZWIYTS) (CGMNHFUX) (BPRK)"},
	{Name: "VII", Kind: Moving, Notches: "ZM", Cycles: "(ANOUPFRIMBZTLWKSVEGCJYDHXQ)"},
	{Name: "VIII", Kind: Moving, Notches: "ZM", Cycles: "(AFLSETWUNDHOZVICQ) (BKJ) (GXY) (MPR)"},
	{Name: "Beta", Kind: Fixed, Cycles: "(ALBEVFCYODJWUGNMQTZSKPR) (HIX)"},
	{Name: "Gamma", Kind: Fixed, Cycles: "(AFNIRLBSQWVXGUZDKMTPCOYJHE)"},
	{Name: "B", Kind: Reflector, Cycles: "(AE) (BN) (CK) (DQ) (FU) (GY) (HW) (IJ) (LO) (MP) (RX) (SZ) (TV)"},
	{Name: "C", Kind: Reflector, Cycles: "(AR) (BD) (CO) (EJ) (FN) (GT) (HK) (IV) (LM) (PW) (QZ) (SX) (UY)"},
}

func mustAlphabet(t *testing.T, chars string) Alphabet {
	t.Helper()
	a, err := NewAlphabet(chars)
	require.NoError(t, err)
	return a
}

func mustPermutation(t *testing.T, cycles string, a Alphabet) *Permutation {
	t.Helper()
	p, err := NewPermutation(cycles, a)
	require.NoError(t, err)
	return p
}

// newNavalMachine returns a 5-slot, 3-pawl machine over the M4 rotor set.
func newNavalMachine(t *testing.T) *Machine {
	t.Helper()
	pool, err := NewPool(mustAlphabet(t, DefaultAlphabet), navalDefs)
	require.NoError(t, err)
	m, err := NewMachine(pool, 5, 3)
	require.NoError(t, err)
	return m
}

// setUp applies a full setup the way a "*" directive does.
func setUp(t *testing.T, m *Machine, rotors []string, positions, rings, plugboard string) {
	t.Helper()
	require.NoError(t, m.InsertRotors(rotors))
	require.NoError(t, m.SetRotors(positions))
	require.NoError(t, m.SetRingSetting(rings))
	m.SetPlugboard(mustPermutation(t, plugboard, m.Alphabet()))
}
