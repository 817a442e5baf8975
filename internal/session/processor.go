package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/enigma/internal/cipher"
	"github.com/roach88/enigma/internal/config"
)

// SetupEvent is emitted after a setup directive has been applied.
type SetupEvent struct {
	Line      int
	Directive string // canonical form, see config.Setup.String
	Before    string // rotor positions before the directive
	After     string // rotor positions after the directive
}

// MessageEvent is emitted after a message line has been converted.
type MessageEvent struct {
	Line   int
	Input  string // whitespace removed, NFC normalized
	Output string // ungrouped
	Before string
	After  string

	// Keystrokes is set only when Options.Keystrokes is true.
	Keystrokes []Keystroke
}

// Observer receives processing events in input order. An error returned by
// an observer stops processing.
type Observer interface {
	OnSetup(ctx context.Context, ev SetupEvent) error
	OnMessage(ctx context.Context, ev MessageEvent) error
}

// Options configures a Processor.
type Options struct {
	// GroupSize is the output group width; 0 means DefaultGroupSize and a
	// negative value disables grouping.
	GroupSize int

	// Observer is optional.
	Observer Observer

	// Keystrokes records a Keystroke per converted symbol in MessageEvent.
	Keystrokes bool

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// Stats counts what a Process call handled.
type Stats struct {
	Lines    int `json:"lines"`
	Setups   int `json:"setups"`
	Messages int `json:"messages"`
	Symbols  int `json:"symbols"`
}

// Processor converts message streams with one machine.
type Processor struct {
	machine    *cipher.Machine
	out        io.Writer
	groupSize  int
	observer   Observer
	keystrokes bool
	logger     *slog.Logger
	configured bool
}

// New creates a processor writing converted messages to out.
func New(m *cipher.Machine, out io.Writer, opts Options) *Processor {
	group := opts.GroupSize
	switch {
	case group == 0:
		group = DefaultGroupSize
	case group < 0:
		group = 0
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{
		machine:    m,
		out:        out,
		groupSize:  group,
		observer:   opts.Observer,
		keystrokes: opts.Keystrokes,
		logger:     logger,
	}
}

// Process reads in to EOF. Errors are prefixed with the 1-based line number
// and keep their original type for errors.As.
func (p *Processor) Process(ctx context.Context, in io.Reader) (Stats, error) {
	var stats Stats
	w := bufio.NewWriter(p.out)
	defer w.Flush()

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Lines++
		if err := p.line(ctx, w, stats.Lines, scanner.Text(), &stats); err != nil {
			return stats, fmt.Errorf("line %d: %w", stats.Lines, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("read input: %w", err)
	}
	if !p.configured {
		return stats, &config.ParseError{Message: "missing setup line at the start of the input"}
	}
	return stats, w.Flush()
}

func (p *Processor) line(ctx context.Context, w *bufio.Writer, n int, text string, stats *Stats) error {
	trimmed := strings.TrimSpace(text)
	switch {
	case trimmed == "":
		_, err := w.WriteString("\n")
		return err
	case config.IsSetupLine(trimmed):
		stats.Setups++
		return p.setup(ctx, n, trimmed)
	default:
		stats.Messages++
		return p.message(ctx, w, n, trimmed, stats)
	}
}

func (p *Processor) setup(ctx context.Context, n int, line string) error {
	s, err := config.ParseSetup(line, p.machine.NumRotors())
	if err != nil {
		return err
	}

	before := ""
	if p.configured {
		before = p.machine.Positions()
	}
	if err := s.Apply(p.machine); err != nil {
		return err
	}
	p.configured = true

	ev := SetupEvent{Line: n, Directive: s.String(), Before: before, After: p.machine.Positions()}
	p.logger.Debug("setup applied", "line", n, "rotors", s.Rotors, "positions", ev.After)
	if p.observer != nil {
		return p.observer.OnSetup(ctx, ev)
	}
	return nil
}

func (p *Processor) message(ctx context.Context, w *bufio.Writer, n int, line string, stats *Stats) error {
	if !p.configured {
		return &config.ParseError{Message: "message before the first setup line"}
	}

	input := config.Normalize(StripSpace(line))
	before := p.machine.Positions()
	var (
		output string
		keys   []Keystroke
		err    error
	)
	if p.keystrokes {
		keys, err = TraceMessage(p.machine, input)
		output = KeystrokeOutput(keys)
	} else {
		output, err = p.machine.ConvertString(input)
	}
	if err != nil {
		return err
	}
	stats.Symbols += len([]rune(input))

	if _, err := w.WriteString(FormatGroups(output, p.groupSize) + "\n"); err != nil {
		return err
	}

	ev := MessageEvent{Line: n, Input: input, Output: output, Before: before, After: p.machine.Positions(), Keystrokes: keys}
	p.logger.Debug("message converted", "line", n, "symbols", len([]rune(input)), "positions", ev.After)
	if p.observer != nil {
		return p.observer.OnMessage(ctx, ev)
	}
	return nil
}
