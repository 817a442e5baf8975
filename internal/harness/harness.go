package harness

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/enigma/internal/config"
	"github.com/roach88/enigma/internal/journal"
	"github.com/roach88/enigma/internal/session"
	"github.com/roach88/enigma/internal/testutil"
)

// tracer collects trace events from the processor.
type tracer struct {
	result *Result
}

func (t *tracer) OnSetup(_ context.Context, ev session.SetupEvent) error {
	t.result.Trace = append(t.result.Trace, TraceEvent{
		Seq:    int64(len(t.result.Trace) + 1),
		Line:   ev.Line,
		Kind:   journal.KindSetup,
		Input:  ev.Directive,
		Before: ev.Before,
		After:  ev.After,
	})
	return nil
}

func (t *tracer) OnMessage(_ context.Context, ev session.MessageEvent) error {
	t.result.Trace = append(t.result.Trace, TraceEvent{
		Seq:        int64(len(t.result.Trace) + 1),
		Line:       ev.Line,
		Kind:       journal.KindMessage,
		Input:      ev.Input,
		Output:     ev.Output,
		Before:     ev.Before,
		After:      ev.After,
		Keystrokes: ev.Keystrokes,
	})
	return nil
}

// Run executes a scenario and returns the result.
//
// Execution flow:
//  1. Load and build the machine description
//  2. Open a fresh in-memory journal with a fixed session id
//  3. Process the input, recording the trace and the journal
//  4. Check the expected output, positions, error and assertions
//  5. Replay the journal and report any divergence
//
// The returned error covers only a scenario that cannot be run at all, such
// as an unreadable description. Failed expectations are in Result.Errors.
func Run(scenario *Scenario) (*Result, error) {
	ctx := context.Background()

	format := config.FormatAuto
	if scenario.ConfigFormat != "" {
		f, err := config.ParseFormat(scenario.ConfigFormat)
		if err != nil {
			return nil, err
		}
		format = f
	}
	src, err := config.Load(scenario.Config, format)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	m, err := config.Build(src.Spec)
	if err != nil {
		return nil, fmt.Errorf("failed to build machine: %w", err)
	}

	st, err := journal.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory journal: %w", err)
	}
	defer st.Close()

	sessionID := scenario.SessionID
	if sessionID == "" {
		sessionID = testutil.FixedSessionID
	}
	rec, err := journal.StartSession(ctx, st, testutil.NewFixedSessionGenerator(sessionID),
		testutil.NewDeterministicClock(), src, scenario.GroupSize)
	if err != nil {
		return nil, fmt.Errorf("failed to start journal session: %w", err)
	}

	result := NewResult()
	var out bytes.Buffer
	p := session.New(m, &out, session.Options{
		GroupSize:  scenario.GroupSize,
		Observer:   session.Tee(&tracer{result: result}, rec),
		Keystrokes: true,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	_, procErr := p.Process(ctx, strings.NewReader(scenario.Input))

	result.Output = out.String()
	if len(m.Slots()) > 0 {
		result.FinalPositions = m.Positions()
	}
	if procErr != nil {
		result.Error = procErr.Error()
	}

	checkExpectations(scenario, result, procErr)
	for _, msg := range EvaluateAssertions(result.Trace, scenario.Assertions) {
		result.AddError(msg)
	}

	replay, err := journal.Replay(ctx, st, sessionID)
	if err != nil {
		result.AddError(fmt.Sprintf("replay failed: %v", err))
	} else {
		for _, d := range replay.Divergences {
			result.AddError("replay diverged: " + d.String())
		}
	}

	return result, nil
}

func checkExpectations(scenario *Scenario, result *Result, procErr error) {
	switch {
	case scenario.ExpectError != "" && procErr == nil:
		result.AddError(fmt.Sprintf("expected error containing %q, got none", scenario.ExpectError))
	case scenario.ExpectError != "" && !strings.Contains(procErr.Error(), scenario.ExpectError):
		result.AddError(fmt.Sprintf("expected error containing %q, got %q", scenario.ExpectError, procErr.Error()))
	case scenario.ExpectError == "" && procErr != nil:
		result.AddError(fmt.Sprintf("processing failed: %v", procErr))
	}

	if scenario.Expect != nil && *scenario.Expect != result.Output {
		result.AddError(fmt.Sprintf("output mismatch:\n  expected: %q\n  actual:   %q", *scenario.Expect, result.Output))
	}
	if scenario.FinalPositions != "" && scenario.FinalPositions != result.FinalPositions {
		result.AddError(fmt.Sprintf("final positions: expected %q, got %q", scenario.FinalPositions, result.FinalPositions))
	}
}
