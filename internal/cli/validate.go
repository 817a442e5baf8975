package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/enigma/internal/config"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
	ConfigFormat string
	Setup        string
	EmitYAML     bool
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool           `json:"valid"`
	Config  string         `json:"config"`
	Format  config.Format  `json:"format"`
	Summary config.Summary `json:"summary"`
	Setup   *config.Setup  `json:"setup,omitempty"`
}

func (r ValidationResult) String() string {
	s := fmt.Sprintf("✓ %s (%s)\n%s", r.Config, r.Format, r.Summary)
	if r.Setup != nil {
		s += "\nsetup: " + r.Setup.String()
	}
	return s
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <config>",
		Short: "Check a machine configuration",
		Long: `Load and build a machine configuration without converting anything.

Reports the alphabet size, slot and pawl counts and the rotors by kind.
With --setup a setup directive is also applied to the built machine.
With --emit-yaml the configuration is printed in YAML form instead.

Examples:
  enigma validate naval.conf
  enigma validate naval.conf --setup "* B Beta I II III AAAA"
  enigma validate naval.conf --emit-yaml > naval.yaml
  enigma validate naval.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.ConfigFormat, "config-format", string(config.FormatAuto), "configuration format (auto|classic|yaml|cue)")
	cmd.Flags().StringVar(&opts.Setup, "setup", "", "setup directive to apply")
	cmd.Flags().BoolVar(&opts.EmitYAML, "emit-yaml", false, "print the configuration as YAML")

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)

	format, err := config.ParseFormat(opts.ConfigFormat)
	if err != nil {
		return formatter.FailWith(ErrCodeUsage, ExitCommandError, err)
	}

	src, err := config.Load(path, format)
	if err != nil {
		return formatter.Fail(err)
	}
	formatter.VerboseLog("Loaded %s as %s", src.Path, src.Format)

	m, err := config.Build(src.Spec)
	if err != nil {
		return formatter.Fail(err)
	}

	result := ValidationResult{
		Valid:   true,
		Config:  src.Path,
		Format:  src.Format,
		Summary: config.Summarize(m),
	}

	if opts.Setup != "" {
		s, err := config.ParseSetup(opts.Setup, m.NumRotors())
		if err != nil {
			return formatter.Fail(err)
		}
		if err := s.Apply(m); err != nil {
			return formatter.Fail(err)
		}
		formatter.VerboseLog("Setup applied, positions %s", m.Positions())
		result.Setup = s
	}

	if opts.EmitYAML {
		data, err := config.EncodeYAML(src.Spec)
		if err != nil {
			return formatter.Fail(err)
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	return formatter.Success(result)
}
