package config

import (
	"fmt"
	"strings"

	"github.com/roach88/enigma/internal/cipher"
)

// SetupMarker starts a setup directive line.
const SetupMarker = "*"

// Setup is a parsed setup directive.
type Setup struct {
	// Rotors names one rotor per slot, reflector first.
	Rotors []string `json:"rotors"`

	// Positions holds one symbol per non-reflector slot, left to right.
	Positions string `json:"positions"`

	// Rings holds the ring settings in the same layout. Empty leaves each
	// rotor's ring where it was.
	Rings string `json:"rings,omitempty"`

	// Plugboard is cycle notation; empty means no plugs.
	Plugboard string `json:"plugboard,omitempty"`
}

// IsSetupLine reports whether line is a setup directive.
func IsSetupLine(line string) bool {
	return strings.HasPrefix(line, SetupMarker)
}

// ParseSetup parses "* <slots rotor names> <positions> [<rings>] [<cycles>...]".
func ParseSetup(line string, slots int) (*Setup, error) {
	if !IsSetupLine(line) {
		return nil, &ParseError{Message: fmt.Sprintf("setup line must start with %q", SetupMarker)}
	}
	fields := strings.Fields(Normalize(strings.TrimPrefix(line, SetupMarker)))
	if len(fields) < slots+1 {
		return nil, &ParseError{Message: fmt.Sprintf(
			"setup needs %d rotor names and a position string, got %d fields", slots, len(fields))}
	}

	s := &Setup{Rotors: fields[:slots:slots], Positions: fields[slots]}
	for i, name := range s.Rotors {
		if strings.HasPrefix(name, "(") {
			return nil, &ParseError{Message: fmt.Sprintf("slot %d: expected rotor name, got cycle %q", i, name)}
		}
	}
	if strings.HasPrefix(s.Positions, "(") {
		return nil, &ParseError{Message: fmt.Sprintf("expected position string, got cycle %q", s.Positions)}
	}

	rest := fields[slots+1:]
	if len(rest) > 0 && !strings.HasPrefix(rest[0], "(") {
		s.Rings = rest[0]
		rest = rest[1:]
	}
	for _, f := range rest {
		if !strings.HasPrefix(f, "(") {
			return nil, &ParseError{Message: fmt.Sprintf("unexpected token %q after plugboard cycles began", f)}
		}
	}
	s.Plugboard = strings.Join(rest, " ")
	return s, nil
}

// Apply configures m: InsertRotors, SetRotors, SetRingSetting, SetPlugboard,
// in that order. The plugboard is parsed first so malformed cycles leave
// the machine untouched.
func (s *Setup) Apply(m *cipher.Machine) error {
	alphabet := m.Alphabet()
	plugboard, err := cipher.NewPermutation(s.Plugboard, alphabet)
	if err != nil {
		return fmt.Errorf("plugboard: %w", err)
	}

	if err := m.InsertRotors(s.Rotors); err != nil {
		return err
	}
	if err := m.SetRotors(s.Positions); err != nil {
		return err
	}

	// Without a ring token each rotor keeps the ring it last had.
	if s.Rings != "" {
		if err := m.SetRingSetting(s.Rings); err != nil {
			return err
		}
	}

	m.SetPlugboard(plugboard)
	return nil
}

// String renders the canonical directive.
func (s *Setup) String() string {
	parts := append([]string{SetupMarker}, s.Rotors...)
	parts = append(parts, s.Positions)
	if s.Rings != "" {
		parts = append(parts, s.Rings)
	}
	if s.Plugboard != "" {
		parts = append(parts, s.Plugboard)
	}
	return strings.Join(parts, " ")
}
