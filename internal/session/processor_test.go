package session

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/enigma/internal/cipher"
	"github.com/roach88/enigma/internal/config"
	"github.com/roach88/enigma/internal/testutil"
)

func newMachine(t *testing.T) *cipher.Machine {
	t.Helper()
	spec, err := config.Parse("naval.conf", []byte(testutil.NavalConfig), config.FormatClassic)
	require.NoError(t, err)
	m, err := config.Build(spec)
	require.NoError(t, err)
	return m
}

func run(t *testing.T, input string, opts Options) (string, Stats, error) {
	t.Helper()
	var out bytes.Buffer
	p := New(newMachine(t), &out, opts)
	stats, err := p.Process(context.Background(), strings.NewReader(input))
	return out.String(), stats, err
}

type recordingObserver struct {
	setups   []SetupEvent
	messages []MessageEvent
	failOn   string
}

func (r *recordingObserver) OnSetup(_ context.Context, ev SetupEvent) error {
	r.setups = append(r.setups, ev)
	return nil
}

func (r *recordingObserver) OnMessage(_ context.Context, ev MessageEvent) error {
	if r.failOn != "" && ev.Input == r.failOn {
		return errors.New("observer failed")
	}
	r.messages = append(r.messages, ev)
	return nil
}

func TestProcess_TrialMessage(t *testing.T) {
	out, stats, err := run(t, testutil.TrialInput, Options{})
	require.NoError(t, err)
	assert.Equal(t, testutil.TrialOutput, out)
	assert.Equal(t, Stats{Lines: 2, Setups: 1, Messages: 1, Symbols: 23}, stats)
}

func TestProcess_MultipleSetupsAndBlankLines(t *testing.T) {
	input := "* B Beta I II III AAAA\n" +
		"HELLO WORLD\n" +
		"\n" +
		"* B Gamma VI VII VIII ZMPQ HLDX (AB) (CD) (EF)\n" +
		"THE QUICK BROWN FOX\n" +
		"JUMPS OVER THE LAZY DOG\n"

	out, stats, err := run(t, input, Options{})
	require.NoError(t, err)
	assert.Equal(t, "ILBDA AMTAZ\n\nZCYTL EJLDD RYIUZ O\nSANKH QHSBE VDHNN OGWR\n", out)
	assert.Equal(t, 2, stats.Setups)
	assert.Equal(t, 3, stats.Messages)
}

func TestProcess_Reciprocal(t *testing.T) {
	out, _, err := run(t, "* B Beta I II III AAAA\nILBDAAMTAZ\n", Options{GroupSize: -1})
	require.NoError(t, err)
	assert.Equal(t, "HELLOWORLD\n", out)
}

func TestProcess_GroupSize(t *testing.T) {
	out, _, err := run(t, testutil.TrialInput, Options{GroupSize: 4})
	require.NoError(t, err)
	assert.Equal(t, "QVPQ SOKO ILPU BKJZ PISF XDW\n", out)
}

func TestProcess_WhitespaceOnlyLineIsBlank(t *testing.T) {
	out, stats, err := run(t, "* B Beta I II III AAAA\n   \t\nHELLO\n", Options{})
	require.NoError(t, err)
	assert.Equal(t, "\nILBDA\n", out)
	assert.Equal(t, 1, stats.Messages)
}

func TestProcess_LeadingBlankLines(t *testing.T) {
	out, _, err := run(t, "\n* B Beta I II III AAAA\nHELLO\n", Options{})
	require.NoError(t, err)
	assert.Equal(t, "\nILBDA\n", out)
}

func TestProcess_InputWithoutSetupLine(t *testing.T) {
	tests := []struct {
		name  string
		input string
		lines int
	}{
		{"empty", "", 0},
		{"blank lines only", "\n  \n\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stats, err := run(t, tt.input, Options{})
			require.Error(t, err)
			assert.True(t, config.IsConfigError(err))
			assert.Contains(t, err.Error(), "missing setup line")
			assert.Equal(t, tt.lines, stats.Lines)
		})
	}
}

func TestProcess_MessageBeforeSetup(t *testing.T) {
	_, _, err := run(t, "HELLO\n* B Beta I II III AAAA\n", Options{})
	require.Error(t, err)
	assert.True(t, config.IsConfigError(err))
	assert.Contains(t, err.Error(), "line 1")
}

func TestProcess_BadSetupStopsProcessing(t *testing.T) {
	input := "* B Beta I II III AAAA\nHELLO\n* B Beta I I III AAAA\nWORLD\n"
	out, stats, err := run(t, input, Options{})
	require.Error(t, err)
	assert.True(t, config.IsConfigError(err))
	assert.Contains(t, err.Error(), "line 3")
	assert.Equal(t, "ILBDA\n", out, "output before the failing line is kept")
	assert.Equal(t, 3, stats.Lines)
}

func TestProcess_SymbolOutsideAlphabet(t *testing.T) {
	_, _, err := run(t, "* B Beta I II III AAAA\nHELLO1\n", Options{})
	require.Error(t, err)
	assert.True(t, cipher.IsAlphabetError(err))
	assert.Contains(t, err.Error(), "line 2")
}

func TestProcess_BadPlugboard(t *testing.T) {
	_, _, err := run(t, "* B Beta I II III AAAA (AB) (AC)\nHELLO\n", Options{})
	require.Error(t, err)
	assert.True(t, cipher.IsPermutationError(err))
}

func TestProcess_ObserverEvents(t *testing.T) {
	obs := &recordingObserver{}
	_, _, err := run(t, "* B Beta I II III AAAA\nAAAAA\n* B Beta I II III AADU\nA\n", Options{Observer: obs})
	require.NoError(t, err)

	require.Len(t, obs.setups, 2)
	assert.Equal(t, SetupEvent{Line: 1, Directive: "* B Beta I II III AAAA", Before: "", After: "AAAA"}, obs.setups[0])
	assert.Equal(t, "AAAF", obs.setups[1].Before)
	assert.Equal(t, "AADU", obs.setups[1].After)

	require.Len(t, obs.messages, 2)
	assert.Equal(t, MessageEvent{Line: 2, Input: "AAAAA", Output: "BDZGO", Before: "AAAA", After: "AAAF"}, obs.messages[0])
	assert.Equal(t, "AADV", obs.messages[1].After)
}

func TestProcess_ObserverErrorStops(t *testing.T) {
	obs := &recordingObserver{failOn: "WORLD"}
	_, stats, err := run(t, "* B Beta I II III AAAA\nHELLO\nWORLD\nAGAIN\n", Options{Observer: obs})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "observer failed")
	assert.Equal(t, 3, stats.Lines)
	assert.Len(t, obs.messages, 1)
}

func TestProcess_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	p := New(newMachine(t), &out, Options{})
	_, err := p.Process(ctx, strings.NewReader(testutil.TrialInput))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, out.String())
}

func TestProcess_LaterSetupKeepsRings(t *testing.T) {
	m := newMachine(t)
	var out bytes.Buffer
	p := New(m, &out, Options{})
	input := "* B Beta III IV I AXLE BCDE\nAAAA\n* B Beta III IV I AXLE\nHELLO\n"
	_, err := p.Process(context.Background(), strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, "BCDE", m.Rings())

	explicit, _, err := run(t, "* B Beta III IV I AXLE BCDE\nHELLO\n", Options{})
	require.NoError(t, err)

	lines := strings.Split(out.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, explicit, lines[1]+"\n")
}
