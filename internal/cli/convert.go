package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/roach88/enigma/internal/config"
	"github.com/roach88/enigma/internal/journal"
	"github.com/roach88/enigma/internal/session"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Group        int
	ConfigFormat string
	Journal      string

	// SessionIDs overrides the journal session id generator (for testing).
	// If nil, defaults to journal.UUIDv7Generator.
	SessionIDs journal.IDGenerator
}

// ConvertSummary is the JSON payload written to stderr after a conversion
// in json mode.
type ConvertSummary struct {
	Stats     session.Stats `json:"stats"`
	SessionID string        `json:"session_id,omitempty"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <config> [input] [output]",
		Short: "Convert a message file",
		Long: `Convert a message file with the machine described by <config>.

Input defaults to stdin and output to stdout; "-" also selects them.
Each "*" line sets up the machine, blank lines are copied, and every other
line is converted with whitespace removed and written in groups of five.

With --journal the configuration and every processed line are recorded in
a SQLite journal that "enigma replay" can verify later.

Exit codes:
  0 - Conversion succeeded
  1 - Conversion failed (symbol outside the alphabet, ...)
  2 - Command error (bad configuration, missing file, ...)

Examples:
  enigma convert naval.conf message.txt
  enigma convert naval.yaml < message.txt > cipher.txt
  enigma convert naval.conf message.txt --group 0
  enigma convert naval.conf message.txt --journal ./enigma.db`,
		Args:          cobra.RangeArgs(1, 3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args, cmd)
		},
	}

	cmd.Flags().IntVar(&opts.Group, "group", session.DefaultGroupSize, "output group width (0 disables grouping)")
	cmd.Flags().StringVar(&opts.ConfigFormat, "config-format", string(config.FormatAuto), "configuration format (auto|classic|yaml|cue)")
	cmd.Flags().StringVar(&opts.Journal, "journal", "", "record the session in this SQLite journal")

	return cmd
}

func runConvert(opts *ConvertOptions, args []string, cmd *cobra.Command) error {
	// Converted text owns stdout; errors and summaries go to stderr.
	formatter := newFormatter(opts.RootOptions, cmd)
	formatter.Writer = cmd.ErrOrStderr()
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	if opts.Group < 0 {
		return formatter.FailWith(ErrCodeUsage, ExitCommandError, fmt.Errorf("--group must be >= 0, got %d", opts.Group))
	}
	format, err := config.ParseFormat(opts.ConfigFormat)
	if err != nil {
		return formatter.FailWith(ErrCodeUsage, ExitCommandError, err)
	}

	src, err := config.Load(args[0], format)
	if err != nil {
		return formatter.Fail(err)
	}
	m, err := config.Build(src.Spec)
	if err != nil {
		return formatter.Fail(err)
	}
	logger.Debug("machine loaded", "config", src.Path, "format", src.Format, "summary", config.Summarize(m).String())

	in, closeIn, err := openInput(args, cmd)
	if err != nil {
		return formatter.Fail(err)
	}
	defer closeIn()
	if isTerminal(in) {
		logger.Info("reading message from terminal, end input with Ctrl-D")
	}

	out, closeOut, err := openOutput(args, cmd)
	if err != nil {
		return formatter.Fail(err)
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group := opts.Group
	if group == 0 {
		group = -1
	}
	procOpts := session.Options{GroupSize: group, Logger: logger}

	var summary ConvertSummary
	if opts.Journal != "" {
		st, err := journal.Open(opts.Journal)
		if err != nil {
			closeOut()
			return formatter.FailWith(ErrCodeJournal, ExitCommandError, err)
		}
		defer st.Close()

		ids := opts.SessionIDs
		if ids == nil {
			ids = journal.UUIDv7Generator{}
		}
		rec, err := journal.StartSession(ctx, st, ids, nil, src, opts.Group)
		if err != nil {
			closeOut()
			return formatter.FailWith(ErrCodeJournal, ExitCommandError, err)
		}
		procOpts.Observer = rec
		summary.SessionID = rec.Session().ID
		logger.Info("journal session started", "db", opts.Journal, "session", summary.SessionID)
	}

	stats, procErr := session.New(m, out, procOpts).Process(ctx, in)
	summary.Stats = stats
	if err := closeOut(); err != nil && procErr == nil {
		procErr = fmt.Errorf("write output: %w", err)
	}
	if procErr != nil {
		return formatter.Fail(procErr)
	}

	logger.Debug("conversion finished", "lines", stats.Lines, "messages", stats.Messages, "symbols", stats.Symbols)
	if opts.Format == "json" {
		return formatter.Success(summary)
	}
	return nil
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// isTerminal reports whether r is an interactive terminal.
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func openInput(args []string, cmd *cobra.Command) (io.Reader, func(), error) {
	if len(args) < 2 || args[1] == "-" {
		return cmd.InOrStdin(), func() {}, nil
	}
	f, err := os.Open(args[1])
	if err != nil {
		return nil, nil, fmt.Errorf("could not open %s: %w", args[1], err)
	}
	return f, func() { f.Close() }, nil
}

func openOutput(args []string, cmd *cobra.Command) (io.Writer, func() error, error) {
	if len(args) < 3 || args[2] == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(args[2])
	if err != nil {
		return nil, nil, fmt.Errorf("could not open %s: %w", args[2], err)
	}
	closed := false
	return f, func() error {
		if closed {
			return nil
		}
		closed = true
		return f.Close()
	}, nil
}
