package harness

import (
	"fmt"
	"strings"

	"github.com/roach88/enigma/internal/journal"
)

// Assertion type constants.
const (
	AssertKeystroke  = "keystroke"
	AssertEntryCount = "entry_count"
	AssertLineAfter  = "positions_after"
)

// Assertion validates the trace.
type Assertion struct {
	// Type specifies the assertion type:
	//   - "keystroke": keystroke Index of the message on Line has the given
	//     Output and/or Positions
	//   - "entry_count": the trace holds Count events of Kind
	//   - "positions_after": the line Line leaves the rotors at Positions
	Type string `yaml:"type"`

	Line      int    `yaml:"line,omitempty"`
	Index     int    `yaml:"index,omitempty"`
	Output    string `yaml:"output,omitempty"`
	Positions string `yaml:"positions,omitempty"`
	Kind      string `yaml:"kind,omitempty"`
	Count     int    `yaml:"count,omitempty"`
}

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string
	Expected string
	Actual   string
	Trace    []TraceEvent
}

func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, ev := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] line %d %s %q -> %q (%s)\n", ev.Seq, ev.Line, ev.Kind, ev.Input, ev.Output, ev.After)
	}
	return buf.String()
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	case AssertKeystroke:
		if a.Line <= 0 {
			return fmt.Errorf("assertions[%d]: line is required for keystroke", index)
		}
		if a.Index < 0 {
			return fmt.Errorf("assertions[%d]: index must be non-negative for keystroke", index)
		}
		if a.Output == "" && a.Positions == "" {
			return fmt.Errorf("assertions[%d]: output or positions is required for keystroke", index)
		}
	case AssertEntryCount:
		if a.Kind != string(journal.KindSetup) && a.Kind != string(journal.KindMessage) {
			return fmt.Errorf("assertions[%d]: kind must be setup or message for entry_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for entry_count", index)
		}
	case AssertLineAfter:
		if a.Line <= 0 || a.Positions == "" {
			return fmt.Errorf("assertions[%d]: line and positions are required for positions_after", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

// EvaluateAssertions returns one message per failed assertion.
func EvaluateAssertions(trace []TraceEvent, assertions []Assertion) []string {
	var failures []string
	for _, a := range assertions {
		var err error
		switch a.Type {
		case AssertKeystroke:
			err = assertKeystroke(trace, a)
		case AssertEntryCount:
			err = assertEntryCount(trace, a)
		case AssertLineAfter:
			err = assertLineAfter(trace, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			failures = append(failures, err.Error())
		}
	}
	return failures
}

func findLine(trace []TraceEvent, line int) (TraceEvent, bool) {
	for _, ev := range trace {
		if ev.Line == line {
			return ev, true
		}
	}
	return TraceEvent{}, false
}

func assertKeystroke(trace []TraceEvent, a Assertion) error {
	fail := func(actual string) error {
		return &AssertionError{
			Type:     AssertKeystroke,
			Expected: fmt.Sprintf("line %d keystroke %d output %q positions %q", a.Line, a.Index, a.Output, a.Positions),
			Actual:   actual,
			Trace:    trace,
		}
	}

	ev, ok := findLine(trace, a.Line)
	if !ok || ev.Kind != journal.KindMessage {
		return fail(fmt.Sprintf("no message on line %d", a.Line))
	}
	if a.Index >= len(ev.Keystrokes) {
		return fail(fmt.Sprintf("message has %d keystrokes", len(ev.Keystrokes)))
	}
	k := ev.Keystrokes[a.Index]
	if (a.Output != "" && k.Output != a.Output) || (a.Positions != "" && k.Positions != a.Positions) {
		return fail(fmt.Sprintf("output %q positions %q", k.Output, k.Positions))
	}
	return nil
}

func assertEntryCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, ev := range trace {
		if string(ev.Kind) == a.Kind {
			count++
		}
	}
	if count != a.Count {
		return &AssertionError{
			Type:     AssertEntryCount,
			Expected: fmt.Sprintf("%d %s entries", a.Count, a.Kind),
			Actual:   fmt.Sprintf("%d", count),
			Trace:    trace,
		}
	}
	return nil
}

func assertLineAfter(trace []TraceEvent, a Assertion) error {
	ev, ok := findLine(trace, a.Line)
	actual := fmt.Sprintf("no event on line %d", a.Line)
	if ok {
		if ev.After == a.Positions {
			return nil
		}
		actual = ev.After
	}
	return &AssertionError{
		Type:     AssertLineAfter,
		Expected: fmt.Sprintf("line %d leaves positions %q", a.Line, a.Positions),
		Actual:   actual,
		Trace:    trace,
	}
}
