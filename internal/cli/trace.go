package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/enigma/internal/config"
	"github.com/roach88/enigma/internal/session"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	ConfigFormat string
	Setup        string
}

// TraceResult holds the per-keystroke trace of one message.
type TraceResult struct {
	Setup      string              `json:"setup"`
	Start      string              `json:"start"`
	Rings      string              `json:"rings"`
	Keystrokes []session.Keystroke `json:"keystrokes"`
	Output     string              `json:"output"`
	Final      string              `json:"final"`
}

func (r TraceResult) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "setup:     %s\n", r.Setup)
	fmt.Fprintf(&b, "positions: %s\n", r.Start)
	fmt.Fprintf(&b, "rings:     %s\n", r.Rings)
	fmt.Fprintf(&b, "%4s  %-3s %-3s %s\n", "#", "in", "out", "positions")
	for _, k := range r.Keystrokes {
		fmt.Fprintf(&b, "%4d  %-3s %-3s %s\n", k.Index+1, k.Input, k.Output, k.Positions)
	}
	fmt.Fprintf(&b, "output:    %s", r.Output)
	return b.String()
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace <config> <message>...",
		Short: "Show rotor positions keystroke by keystroke",
		Long: `Set up the machine and convert one message, printing the input and
output symbol and the rotor positions after every keystroke. The header
shows the starting positions and the ring settings in effect. Useful for
watching the stepping of the rotors, including the double step of a rotor
that sits at its own notch.

Examples:
  enigma trace naval.conf --setup "* B Beta I II III AADU" AAAA
  enigma trace naval.conf --setup "* B Beta III IV I AXLE (HQ) (EX)" FROM HIS SHOULDER
  enigma trace naval.conf --setup "* B Beta I II III AAAA" HELLO --format json`,
		Args:          cobra.MinimumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, args[0], strings.Join(args[1:], " "), cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigFormat, "config-format", string(config.FormatAuto), "configuration format (auto|classic|yaml|cue)")
	cmd.Flags().StringVar(&opts.Setup, "setup", "", "setup directive (required)")
	_ = cmd.MarkFlagRequired("setup")

	return cmd
}

func runTrace(opts *TraceOptions, path, message string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	format, err := config.ParseFormat(opts.ConfigFormat)
	if err != nil {
		return formatter.FailWith(ErrCodeUsage, ExitCommandError, err)
	}
	src, err := config.Load(path, format)
	if err != nil {
		return formatter.Fail(err)
	}
	m, err := config.Build(src.Spec)
	if err != nil {
		return formatter.Fail(err)
	}

	s, err := config.ParseSetup(strings.TrimSpace(opts.Setup), m.NumRotors())
	if err != nil {
		return formatter.Fail(err)
	}
	if err := s.Apply(m); err != nil {
		return formatter.Fail(err)
	}

	result := TraceResult{Setup: s.String(), Start: m.Positions(), Rings: m.Rings()}
	keys, err := session.TraceMessage(m, config.Normalize(session.StripSpace(message)))
	if err != nil {
		return formatter.Fail(err)
	}
	result.Keystrokes = keys
	result.Output = session.KeystrokeOutput(keys)
	result.Final = m.Positions()

	return formatter.Success(result)
}
