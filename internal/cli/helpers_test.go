package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/roach88/enigma/internal/testutil"
)

// executeCommand runs the root command with args and stdin and returns
// what it wrote to stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeNavalConfig writes the naval machine description to a temp file.
func writeNavalConfig(t *testing.T) string {
	t.Helper()
	return testutil.WriteFile(t, "naval.conf", testutil.NavalConfig)
}
