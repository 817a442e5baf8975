package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/enigma/internal/testutil"
)

// writeScenario writes a scenario next to a copy of the naval description.
func writeScenario(t *testing.T, content string) string {
	t.Helper()
	conf := testutil.WriteFile(t, "naval.conf", testutil.NavalConfig)
	path := filepath.Join(filepath.Dir(conf), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScenario_ValidFile(t *testing.T) {
	path := writeScenario(t, `
name: trial
description: Trial message
config: naval.conf
input: |
  * B Beta I II III AAAA
  AAAAA
expect: |
  BDZGO
final_positions: AAAF
`)

	s, err := LoadScenario(path)
	require.NoError(t, err)
	assert.Equal(t, "trial", s.Name)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "naval.conf"), s.Config)
	require.NotNil(t, s.Expect)
	assert.Equal(t, "BDZGO\n", *s.Expect)
	assert.Equal(t, path, s.Path)
}

func TestLoadScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "unknown field",
			content: "name: x\ndescription: x\nconfig: naval.conf\ninput: x\nexpected: typo\n",
			wantErr: "field expected not found",
		},
		{
			name:    "missing name",
			content: "description: x\nconfig: naval.conf\ninput: x\n",
			wantErr: "name is required",
		},
		{
			name:    "missing description",
			content: "name: x\nconfig: naval.conf\ninput: x\n",
			wantErr: "description is required",
		},
		{
			name:    "missing config",
			content: "name: x\ndescription: x\ninput: x\n",
			wantErr: "config is required",
		},
		{
			name:    "config not found",
			content: "name: x\ndescription: x\nconfig: missing.conf\ninput: x\n",
			wantErr: "config file not found",
		},
		{
			name:    "bad config format",
			content: "name: x\ndescription: x\nconfig: naval.conf\nconfig_format: toml\ninput: x\n",
			wantErr: "invalid config format",
		},
		{
			name:    "missing input",
			content: "name: x\ndescription: x\nconfig: naval.conf\n",
			wantErr: "input is required",
		},
		{
			name:    "unknown assertion",
			content: "name: x\ndescription: x\nconfig: naval.conf\ninput: x\nassertions:\n  - type: trace_order\n",
			wantErr: `unknown assertion type "trace_order"`,
		},
		{
			name:    "keystroke without line",
			content: "name: x\ndescription: x\nconfig: naval.conf\ninput: x\nassertions:\n  - type: keystroke\n    output: A\n",
			wantErr: "line is required for keystroke",
		},
		{
			name:    "entry_count bad kind",
			content: "name: x\ndescription: x\nconfig: naval.conf\ninput: x\nassertions:\n  - type: entry_count\n    kind: keystroke\n",
			wantErr: "kind must be setup or message",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadScenario(writeScenario(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "failed to read scenario file")
}

func TestLoadScenarios_Filter(t *testing.T) {
	dir := filepath.Join("testdata", "scenarios")

	scenarios, err := LoadScenarios(dir, "hiawatha*")
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "hiawatha-yaml", scenarios[0].Name)
	assert.Equal(t, "hiawatha", scenarios[1].Name)

	scenarios, err = LoadScenarios(dir, "nothing-matches")
	require.NoError(t, err)
	assert.Empty(t, scenarios)

	_, err = LoadScenarios(dir, "[")
	assert.ErrorContains(t, err, "invalid filter")
}

func TestLoadScenarios_EmptyDir(t *testing.T) {
	_, err := LoadScenarios(t.TempDir(), "")
	assert.ErrorContains(t, err, "no scenario files")
}

func TestEvaluateAssertions(t *testing.T) {
	result, err := Run(loadTestdata(t, "multi-setup"))
	require.NoError(t, err)

	failures := EvaluateAssertions(result.Trace, []Assertion{
		{Type: AssertEntryCount, Kind: "setup", Count: 2},
		{Type: AssertLineAfter, Line: 4, Positions: "ZMPQ"},
		{Type: AssertKeystroke, Line: 5, Index: 0, Output: "Z"},
	})
	assert.Empty(t, failures)

	failures = EvaluateAssertions(result.Trace, []Assertion{
		{Type: AssertEntryCount, Kind: "setup", Count: 3},
		{Type: AssertLineAfter, Line: 9, Positions: "AAAA"},
		{Type: AssertKeystroke, Line: 1, Index: 0, Output: "A"},
		{Type: AssertKeystroke, Line: 2, Index: 99, Output: "A"},
	})
	require.Len(t, failures, 4)
	assert.Contains(t, failures[1], "no event on line 9")
	assert.Contains(t, failures[2], "no message on line 1")
	assert.Contains(t, failures[3], "message has 10 keystrokes")
}
