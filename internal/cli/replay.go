package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/enigma/internal/journal"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Session  string // optional - specific session only
	All      bool
}

// ReplaySummary holds the overall replay result.
type ReplaySummary struct {
	Sessions         []*journal.ReplayResult `json:"sessions"`
	TotalSessions    int                     `json:"total_sessions"`
	AllDeterministic bool                    `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay journal sessions and verify determinism",
		Long: `Rebuild the machine of a recorded session from its stored configuration
and re-run every setup line and message, checking that the recorded output
and rotor positions are reproduced exactly.

Without --session the most recent session is replayed; --all replays every
session in the journal.

Exit codes:
  0 - Every replayed session was reproduced
  1 - Determinism verification failed (differences detected)
  2 - Command error (database not found, unknown session, etc.)

Examples:
  enigma replay --db ./enigma.db
  enigma replay --db ./enigma.db --session 01890a5d-ac96-774b-bcce-b302099a8057
  enigma replay --db ./enigma.db --all --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite journal (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "replay a specific session only")
	cmd.Flags().BoolVar(&opts.All, "all", false, "replay every session")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := commandContext(cmd)
	formatter := newFormatter(opts.RootOptions, cmd)

	if opts.All && opts.Session != "" {
		return formatter.FailWith(ErrCodeUsage, ExitCommandError, fmt.Errorf("--all and --session are mutually exclusive"))
	}

	st, err := openExistingJournal(opts.Database)
	if err != nil {
		return formatter.FailWith(ErrCodeJournal, ExitCommandError, err)
	}
	defer st.Close()

	var ids []string
	switch {
	case opts.Session != "":
		ids = []string{opts.Session}
	case opts.All:
		sessions, err := st.ListSessions(ctx)
		if err != nil {
			return formatter.FailWith(ErrCodeJournal, ExitCommandError, err)
		}
		for _, s := range sessions {
			ids = append(ids, s.ID)
		}
	default:
		latest, err := st.LatestSession(ctx)
		if err != nil {
			return formatter.Fail(err)
		}
		ids = []string{latest.ID}
	}

	summary := ReplaySummary{
		Sessions:         make([]*journal.ReplayResult, 0, len(ids)),
		TotalSessions:    len(ids),
		AllDeterministic: true,
	}
	for _, id := range ids {
		formatter.VerboseLog("Replaying session %s", id)
		result, err := journal.Replay(ctx, st, id)
		if err != nil {
			return formatter.Fail(err)
		}
		summary.Sessions = append(summary.Sessions, result)
		if !result.OK() {
			summary.AllDeterministic = false
		}
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, summary)
	}
	return outputReplayText(cmd, summary)
}

func outputReplayJSON(cmd *cobra.Command, summary ReplaySummary) error {
	response := CLIResponse{Status: "ok", Data: summary}
	if !summary.AllDeterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    ErrCodeDiverged,
			Message: "replay did not reproduce the journal",
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !summary.AllDeterministic {
		return &ExitError{Code: ExitFailure, Message: "replay did not reproduce the journal", Reported: true}
	}
	return nil
}

func outputReplayText(cmd *cobra.Command, summary ReplaySummary) error {
	w := cmd.OutOrStdout()

	for _, r := range summary.Sessions {
		if r.OK() {
			fmt.Fprintf(w, "✓ %s: %d entries reproduced\n", r.SessionID, r.Replayed)
			continue
		}
		fmt.Fprintf(w, "✗ %s: %d of %d entries replayed\n", r.SessionID, r.Replayed, r.Entries)
		for _, d := range r.Divergences {
			fmt.Fprintf(w, "  %s\n", d)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Replay Summary: %d session(s)\n", summary.TotalSessions)
	if !summary.AllDeterministic {
		return &ExitError{Code: ExitFailure, Message: "replay did not reproduce the journal", Reported: true}
	}
	fmt.Fprintln(w, "✓ All sessions deterministic")
	return nil
}
