package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/enigma/internal/cipher"
	"github.com/roach88/enigma/internal/config"
)

func setupMachine(t *testing.T, directive string) *cipher.Machine {
	t.Helper()
	m := newMachine(t)
	s, err := config.ParseSetup(directive, m.NumRotors())
	require.NoError(t, err)
	require.NoError(t, s.Apply(m))
	return m
}

func TestTraceMessage_DoubleStep(t *testing.T) {
	m := setupMachine(t, "* B Beta I II III AADU")

	keys, err := TraceMessage(m, "AAAA")
	require.NoError(t, err)
	require.Len(t, keys, 4)

	positions := make([]string, len(keys))
	for i, k := range keys {
		positions[i] = k.Positions
		assert.Equal(t, i, k.Index)
		assert.Equal(t, "A", k.Input)
	}
	assert.Equal(t, []string{"AADV", "AAEW", "ABFX", "ABFY"}, positions)
}

func TestTraceMessage_MatchesConvertString(t *testing.T) {
	traced := setupMachine(t, "* B Beta III IV I AXLE (HQ) (EX) (IP) (TR) (BY)")
	plain := setupMachine(t, "* B Beta III IV I AXLE (HQ) (EX) (IP) (TR) (BY)")

	keys, err := TraceMessage(traced, "FROMHISSHOULDERHIAWATHA")
	require.NoError(t, err)
	want, err := plain.ConvertString("FROMHISSHOULDERHIAWATHA")
	require.NoError(t, err)

	assert.Equal(t, "QVPQSOKOILPUBKJZPISFXDW", KeystrokeOutput(keys))
	assert.Equal(t, want, KeystrokeOutput(keys))
	assert.Equal(t, plain.Positions(), traced.Positions())
}

func TestTraceMessage_UnknownSymbol(t *testing.T) {
	m := setupMachine(t, "* B Beta I II III AAAA")

	keys, err := TraceMessage(m, "AA1A")
	require.Error(t, err)
	assert.True(t, cipher.IsAlphabetError(err))
	assert.Len(t, keys, 2)
	assert.Equal(t, "AAAC", m.Positions())
}

func TestTraceMessage_NoRotors(t *testing.T) {
	_, err := TraceMessage(newMachine(t), "A")
	assert.True(t, cipher.IsConfigError(err))
}

func TestProcess_KeystrokesInEvents(t *testing.T) {
	obs := &recordingObserver{}
	_, _, err := run(t, "* B Beta I II III AAAA\nAAAAA\n", Options{Observer: obs, Keystrokes: true})
	require.NoError(t, err)

	require.Len(t, obs.messages, 1)
	ev := obs.messages[0]
	assert.Equal(t, "BDZGO", ev.Output)
	require.Len(t, ev.Keystrokes, 5)
	assert.Equal(t, Keystroke{Index: 4, Input: "A", Output: "O", Positions: "AAAF"}, ev.Keystrokes[4])
}

func TestTee(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	obs := Tee(a, nil, b)

	require.NoError(t, obs.OnSetup(context.Background(), SetupEvent{Line: 1}))
	require.NoError(t, obs.OnMessage(context.Background(), MessageEvent{Line: 2, Input: "X"}))
	assert.Len(t, a.setups, 1)
	assert.Len(t, b.messages, 1)

	failing := &recordingObserver{failOn: "X"}
	c := &recordingObserver{}
	err := Tee(failing, c).OnMessage(context.Background(), MessageEvent{Input: "X"})
	assert.EqualError(t, err, "observer failed")
	assert.Empty(t, c.messages, "observers after a failing one are not called")
}
