package harness

import (
	"bytes"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/roach88/enigma/internal/config"
)

// Scenario defines a conformance scenario.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Config is the machine description path, relative to the scenario file.
	Config string `yaml:"config"`

	// ConfigFormat overrides format detection (auto, classic, yaml, cue).
	ConfigFormat string `yaml:"config_format,omitempty"`

	// Input is the message stream, setup directives included.
	Input string `yaml:"input"`

	// GroupSize is the output group width; 0 means the default and a
	// negative value disables grouping.
	GroupSize int `yaml:"group_size,omitempty"`

	// Expect is the exact expected output. Nil skips the check.
	Expect *string `yaml:"expect,omitempty"`

	// FinalPositions are the expected rotor positions after the last line.
	FinalPositions string `yaml:"final_positions,omitempty"`

	// ExpectError, when set, requires processing to fail with an error
	// containing this text.
	ExpectError string `yaml:"expect_error,omitempty"`

	// Assertions validate the trace.
	Assertions []Assertion `yaml:"assertions,omitempty"`

	// SessionID fixes the journal session id; defaults to
	// testutil.FixedSessionID.
	SessionID string `yaml:"session_id,omitempty"`

	// Path is the file the scenario was loaded from.
	Path string `yaml:"-"`
}

// LoadScenario reads and parses a scenario YAML file. The config path is
// resolved relative to the scenario file. Unknown fields are rejected.
func LoadScenario(file string) (*Scenario, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	scenario.Path = file

	if scenario.Config != "" && !filepath.IsAbs(scenario.Config) {
		scenario.Config = filepath.Join(filepath.Dir(file), scenario.Config)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarios loads every *.yaml and *.yml file in dir, in file name
// order, keeping those whose name matches filter (a path.Match pattern;
// empty matches everything).
func LoadScenarios(dir, filter string) ([]*Scenario, error) {
	if filter != "" {
		if _, err := path.Match(filter, ""); err != nil {
			return nil, fmt.Errorf("invalid filter %q: %w", filter, err)
		}
	}

	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no scenario files in %s", dir)
	}
	sort.Strings(files)

	scenarios := []*Scenario{}
	seen := make(map[string]string)
	for _, f := range files {
		s, err := LoadScenario(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		if prev, ok := seen[s.Name]; ok {
			return nil, fmt.Errorf("%s: scenario name %q already used by %s", f, s.Name, prev)
		}
		seen[s.Name] = f

		if filter != "" {
			if ok, _ := path.Match(filter, s.Name); !ok {
				continue
			}
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Config == "" {
		return fmt.Errorf("config is required")
	}
	if _, err := os.Stat(s.Config); os.IsNotExist(err) {
		return fmt.Errorf("config file not found: %s", s.Config)
	}
	if s.ConfigFormat != "" {
		if _, err := config.ParseFormat(s.ConfigFormat); err != nil {
			return err
		}
	}
	if s.Input == "" {
		return fmt.Errorf("input is required")
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}
