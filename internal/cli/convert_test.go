package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/enigma/internal/journal"
	"github.com/roach88/enigma/internal/testutil"
)

func TestConvert_Stdin(t *testing.T) {
	conf := writeNavalConfig(t)

	stdout, stderr, err := executeCommand(t, testutil.TrialInput, "convert", conf)
	require.NoError(t, err)
	assert.Equal(t, testutil.TrialOutput, stdout)
	assert.Empty(t, stderr)
}

func TestConvert_InputAndOutputFiles(t *testing.T) {
	conf := writeNavalConfig(t)
	in := testutil.WriteFile(t, "message.txt", testutil.TrialInput)
	out := filepath.Join(t.TempDir(), "cipher.txt")

	stdout, _, err := executeCommand(t, "", "convert", conf, in, out)
	require.NoError(t, err)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, testutil.TrialOutput, string(data))
}

func TestConvert_DashMeansStdio(t *testing.T) {
	conf := writeNavalConfig(t)

	stdout, _, err := executeCommand(t, testutil.TrialInput, "convert", conf, "-", "-")
	require.NoError(t, err)
	assert.Equal(t, testutil.TrialOutput, stdout)
}

func TestConvert_Ungrouped(t *testing.T) {
	conf := writeNavalConfig(t)

	stdout, _, err := executeCommand(t, testutil.TrialInput, "convert", conf, "--group", "0")
	require.NoError(t, err)
	assert.Equal(t, "QVPQSOKOILPUBKJZPISFXDW\n", stdout)
}

func TestConvert_BlankLinesCopied(t *testing.T) {
	conf := writeNavalConfig(t)
	input := "* B Beta I II III AAAA\n\nHELLO WORLD\n\n"

	stdout, _, err := executeCommand(t, input, "convert", conf)
	require.NoError(t, err)
	assert.Equal(t, "\nILBDA AMTAZ\n\n", stdout)
}

func TestConvert_NegativeGroup(t *testing.T) {
	conf := writeNavalConfig(t)

	_, stderr, err := executeCommand(t, testutil.TrialInput, "convert", conf, "--group", "-3")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.True(t, IsReported(err))
	assert.Contains(t, stderr, "Error [E002]")
}

func TestConvert_MissingConfig(t *testing.T) {
	_, stderr, err := executeCommand(t, "", "convert", filepath.Join(t.TempDir(), "nope.conf"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [")
}

func TestConvert_BadConfig(t *testing.T) {
	conf := testutil.WriteFile(t, "bad.conf", "ABCDE\n3 1\nR1 X (AB)\n")

	_, stderr, err := executeCommand(t, testutil.TrialInput, "convert", conf)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [CONFIG]")
}

func TestConvert_UnknownRotorInSetup(t *testing.T) {
	conf := writeNavalConfig(t)

	_, stderr, err := executeCommand(t, "* B Beta I II IX AAAA\nHELLO\n", "convert", conf)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "line 1")
}

func TestConvert_SymbolOutsideAlphabet(t *testing.T) {
	conf := writeNavalConfig(t)

	stdout, stderr, err := executeCommand(t, "* B Beta I II III AAAA\nHELLO\nHELL0\n", "convert", conf)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, stderr, "Error [ALPHABET]")
	assert.Contains(t, stderr, "line 3")
	// Lines before the failure are still written.
	assert.Equal(t, "ILBDA\n", stdout)
}

func TestConvert_EmptyInput(t *testing.T) {
	conf := writeNavalConfig(t)

	stdout, stderr, err := executeCommand(t, "", "convert", conf)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, stderr, "Error [CONFIG]")
	assert.Contains(t, stderr, "missing setup line")
	assert.Empty(t, stdout)
}

func TestConvert_JSONSummaryOnStderr(t *testing.T) {
	conf := writeNavalConfig(t)

	stdout, stderr, err := executeCommand(t, testutil.TrialInput, "--format", "json", "convert", conf)
	require.NoError(t, err)
	assert.Equal(t, testutil.TrialOutput, stdout)

	var resp struct {
		Status string         `json:"status"`
		Data   ConvertSummary `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stderr), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Stats.Lines)
	assert.Equal(t, 1, resp.Data.Stats.Setups)
	assert.Equal(t, 1, resp.Data.Stats.Messages)
	assert.Equal(t, 23, resp.Data.Stats.Symbols)
	assert.Empty(t, resp.Data.SessionID)
}

func TestConvert_Journal(t *testing.T) {
	conf := writeNavalConfig(t)
	db := filepath.Join(t.TempDir(), "enigma.db")

	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(bytes.NewBufferString(testutil.TrialInput))

	opts := &ConvertOptions{
		RootOptions: &RootOptions{Format: "text"},
		Group:       5,
		Journal:     db,
		SessionIDs:  journal.NewFixedGenerator(testutil.FixedSessionID),
	}
	require.NoError(t, runConvert(opts, []string{conf}, cmd))
	assert.Equal(t, testutil.TrialOutput, stdout.String())
	assert.Contains(t, stderr.String(), "journal session started")
	assert.Contains(t, stderr.String(), testutil.FixedSessionID)

	st, err := journal.Open(db)
	require.NoError(t, err)
	defer st.Close()

	sess, err := st.ReadSession(context.Background(), testutil.FixedSessionID)
	require.NoError(t, err)
	assert.Equal(t, testutil.NavalConfig, sess.ConfigText)
	assert.Equal(t, 5, sess.GroupSize)

	entries, err := st.ReadEntries(context.Background(), testutil.FixedSessionID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, journal.KindSetup, entries[0].Kind)
	assert.Equal(t, journal.KindMessage, entries[1].Kind)
	assert.Equal(t, "QVPQSOKOILPUBKJZPISFXDW", entries[1].Output)
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(bytes.NewBufferString("x")))

	f, err := os.Open(writeNavalConfig(t))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
}
