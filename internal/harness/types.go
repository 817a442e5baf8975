package harness

import (
	"github.com/roach88/enigma/internal/journal"
	"github.com/roach88/enigma/internal/session"
)

// TraceEvent is one processed input line.
type TraceEvent struct {
	Seq        int64               `json:"seq"`
	Line       int                 `json:"line"`
	Kind       journal.EntryKind   `json:"kind"`
	Input      string              `json:"input"`
	Output     string              `json:"output,omitempty"`
	Before     string              `json:"positions_before"`
	After      string              `json:"positions_after"`
	Keystrokes []session.Keystroke `json:"keystrokes,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if every expectation and assertion held.
	Pass bool `json:"pass"`

	// Output is everything the processor wrote.
	Output string `json:"output"`

	// FinalPositions are the rotor positions after the last line; empty if
	// no setup directive was applied.
	FinalPositions string `json:"final_positions"`

	// Error is the processing error, if any.
	Error string `json:"error,omitempty"`

	Trace  []TraceEvent `json:"trace"`
	Errors []string     `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a failed expectation and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
