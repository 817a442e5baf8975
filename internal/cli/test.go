package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/roach88/enigma/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Update   bool   // regenerate golden files
	Filter   string // scenario filter (glob pattern)
	Golden   string // golden file directory
	Parallel int    // scenarios run at once
}

// ScenarioResult holds the result of a single scenario execution.
type ScenarioResult struct {
	Name   string   `json:"name"`
	Pass   bool     `json:"pass"`
	Golden string   `json:"golden,omitempty"` // "match", "mismatch", "updated" or empty
	Errors []string `json:"errors,omitempty"`
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []ScenarioResult `json:"scenarios"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Total     int              `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run conformance scenarios",
		Long: `Run every scenario file (*.yaml, *.yml) in a directory.

Each scenario names a configuration, an input stream and the expected
output, final rotor positions or error. Every run is also recorded in a
scratch journal and replayed. When a golden file <golden-dir>/<name>.golden
exists, the run's trace is compared against it.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (invalid paths, etc.)

Examples:
  enigma test ./scenarios
  enigma test ./scenarios --filter "hiawatha*"
  enigma test ./scenarios --golden ./golden --update
  enigma test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().BoolVar(&opts.Update, "update", false, "regenerate golden files")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by name (glob pattern)")
	cmd.Flags().StringVar(&opts.Golden, "golden", "", "golden file directory (default <scenarios-dir>/golden)")
	cmd.Flags().IntVar(&opts.Parallel, "parallel", runtime.NumCPU(), "number of scenarios run at once")

	return cmd
}

func runTests(opts *TestOptions, dir string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		return formatter.FailWith(ErrCodeNotFound, ExitCommandError, fmt.Errorf("scenarios directory not found: %s", dir))
	}
	goldenDir := opts.Golden
	if goldenDir == "" {
		goldenDir = filepath.Join(dir, "golden")
	}

	if opts.Parallel < 1 {
		return formatter.FailWith(ErrCodeUsage, ExitCommandError, fmt.Errorf("--parallel must be >= 1, got %d", opts.Parallel))
	}

	scenarios, err := harness.LoadScenarios(dir, opts.Filter)
	if err != nil {
		return formatter.FailWith(ErrCodeConfig, ExitCommandError, err)
	}

	// Each scenario runs on its own machine and in-memory journal.
	results := make([]ScenarioResult, len(scenarios))
	var g errgroup.Group
	g.SetLimit(opts.Parallel)
	for i, s := range scenarios {
		i, s := i, s
		g.Go(func() error {
			results[i] = runScenario(s, goldenDir, opts)
			return nil
		})
	}
	// runScenario records failures in its result, so the group only bounds
	// concurrency and Wait never returns an error.
	_ = g.Wait()

	result := TestResult{Scenarios: results, Total: len(results)}
	for _, sr := range results {
		if opts.Format != "json" {
			printScenario(cmd, sr)
		}
		if sr.Pass {
			result.Passed++
		} else {
			result.Failed++
		}
	}

	if opts.Format == "json" {
		return outputTestJSON(cmd, result)
	}
	return outputTestText(cmd, result)
}

// runScenario executes a single scenario and handles its golden file.
func runScenario(s *harness.Scenario, goldenDir string, opts *TestOptions) ScenarioResult {
	result, err := harness.Run(s)
	if err != nil {
		return ScenarioResult{Name: s.Name, Errors: []string{fmt.Sprintf("execution failed: %v", err)}}
	}

	sr := ScenarioResult{Name: s.Name, Pass: result.Pass, Errors: result.Errors}

	snapshot, err := harness.Snapshot(s.Name, result)
	if err != nil {
		sr.Pass = false
		sr.Errors = append(sr.Errors, fmt.Sprintf("snapshot failed: %v", err))
		return sr
	}
	goldenPath := filepath.Join(goldenDir, s.Name+".golden")

	if opts.Update {
		if err := os.MkdirAll(goldenDir, 0o755); err != nil {
			sr.Pass = false
			sr.Errors = append(sr.Errors, fmt.Sprintf("failed to create golden directory: %v", err))
			return sr
		}
		if err := os.WriteFile(goldenPath, snapshot, 0o644); err != nil {
			sr.Pass = false
			sr.Errors = append(sr.Errors, fmt.Sprintf("failed to write golden file: %v", err))
			return sr
		}
		sr.Golden = "updated"
		return sr
	}

	want, err := os.ReadFile(goldenPath)
	switch {
	case os.IsNotExist(err):
		// No golden file for this scenario.
	case err != nil:
		sr.Pass = false
		sr.Errors = append(sr.Errors, fmt.Sprintf("failed to read golden file: %v", err))
	case bytes.Equal(want, snapshot):
		sr.Golden = "match"
	default:
		sr.Pass = false
		sr.Golden = "mismatch"
		sr.Errors = append(sr.Errors, fmt.Sprintf("trace differs from %s", goldenPath))
	}
	return sr
}

func printScenario(cmd *cobra.Command, sr ScenarioResult) {
	w := cmd.OutOrStdout()
	mark := "✓"
	if !sr.Pass {
		mark = "✗"
	}
	if sr.Golden != "" {
		fmt.Fprintf(w, "%s %s (golden %s)\n", mark, sr.Name, sr.Golden)
	} else {
		fmt.Fprintf(w, "%s %s\n", mark, sr.Name)
	}
	for _, e := range sr.Errors {
		fmt.Fprintf(w, "  %s\n", e)
	}
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(cmd *cobra.Command, result TestResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if result.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeTestFailed,
			Message: fmt.Sprintf("%d scenario(s) failed", result.Failed),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if result.Failed > 0 {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d scenario(s) failed", result.Failed), Reported: true}
	}
	return nil
}

// outputTestText outputs the test summary as text.
func outputTestText(cmd *cobra.Command, result TestResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("%d scenario(s) failed", result.Failed), Reported: true}
	}
	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}
