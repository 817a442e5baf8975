package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/enigma/internal/config"
	"github.com/roach88/enigma/internal/journal"
)

// SessionsOptions holds flags for the sessions command.
type SessionsOptions struct {
	*RootOptions
	Database     string
	Config       string
	ConfigFormat string
}

// NewSessionsCommand creates the sessions command.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List journal sessions",
		Long: `List the sessions recorded in a journal, oldest first, with their
configuration and number of entries. With --config only the sessions
recorded with that exact configuration text are listed.

Examples:
  enigma sessions --db ./enigma.db
  enigma sessions --db ./enigma.db --config naval.conf
  enigma sessions --db ./enigma.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite journal (required)")
	cmd.Flags().StringVar(&opts.Config, "config", "", "only list sessions recorded with this configuration file")
	cmd.Flags().StringVar(&opts.ConfigFormat, "config-format", string(config.FormatAuto), "configuration format (auto|classic|yaml|cue)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSessions(opts *SessionsOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	var hash string
	if opts.Config != "" {
		format, err := config.ParseFormat(opts.ConfigFormat)
		if err != nil {
			return formatter.FailWith(ErrCodeUsage, ExitCommandError, err)
		}
		src, err := config.Load(opts.Config, format)
		if err != nil {
			return formatter.Fail(err)
		}
		hash = journal.HashConfig(src.Text)
	}

	st, err := openExistingJournal(opts.Database)
	if err != nil {
		return formatter.FailWith(ErrCodeJournal, ExitCommandError, err)
	}
	defer st.Close()

	ctx := commandContext(cmd)
	var sessions []journal.Session
	if hash != "" {
		sessions, err = st.SessionsForConfig(ctx, hash)
	} else {
		sessions, err = st.ListSessions(ctx)
	}
	if err != nil {
		return formatter.FailWith(ErrCodeJournal, ExitCommandError, err)
	}

	if opts.Format == "json" {
		return formatter.Success(sessions)
	}

	w := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions found in journal.")
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SEQ\tSESSION\tCONFIG\tFORMAT\tENTRIES")
	for _, s := range sessions {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\n", s.Seq, s.ID, s.ConfigName, s.Format, s.Entries)
	}
	return tw.Flush()
}

// openExistingJournal opens a journal that must already exist, so a typo
// in --db is reported instead of creating an empty database.
func openExistingJournal(path string) (*journal.Store, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("journal %s: %w", path, err)
	}
	return journal.Open(path)
}
