package config

import (
	"fmt"

	"github.com/roach88/enigma/internal/cipher"
)

// MachineSpec is the decoded form of a machine description.
type MachineSpec struct {
	Alphabet string      `yaml:"alphabet" json:"alphabet" validate:"required"`
	Slots    int         `yaml:"slots" json:"slots"`
	Pawls    int         `yaml:"pawls" json:"pawls" validate:"gte=0"`
	Rotors   []RotorSpec `yaml:"rotors" json:"rotors" validate:"dive"`
}

// RotorSpec describes one named rotor.
type RotorSpec struct {
	Name    string `yaml:"name" json:"name" validate:"required,excludesall=()*"`
	Kind    string `yaml:"kind" json:"kind" validate:"oneof=moving fixed reflector"`
	Notches string `yaml:"notches,omitempty" json:"notches,omitempty"`
	Cycles  string `yaml:"cycles,omitempty" json:"cycles,omitempty"`
}

// Defs converts the rotor specs to cipher definitions.
func (s *MachineSpec) Defs() ([]cipher.RotorDef, error) {
	defs := make([]cipher.RotorDef, len(s.Rotors))
	for i, r := range s.Rotors {
		kind, err := cipher.ParseKind(r.Kind)
		if err != nil {
			return nil, fmt.Errorf("rotor %s: %w", r.Name, err)
		}
		defs[i] = cipher.RotorDef{
			Name:    r.Name,
			Kind:    kind,
			Notches: r.Notches,
			Cycles:  r.Cycles,
		}
	}
	return defs, nil
}

// Build creates a machine from spec. No rotors are inserted yet; apply a
// Setup before converting.
func Build(spec *MachineSpec) (*cipher.Machine, error) {
	alphabet, err := cipher.NewAlphabet(spec.Alphabet)
	if err != nil {
		return nil, err
	}
	defs, err := spec.Defs()
	if err != nil {
		return nil, err
	}
	pool, err := cipher.NewPool(alphabet, defs)
	if err != nil {
		return nil, err
	}
	return cipher.NewMachine(pool, spec.Slots, spec.Pawls)
}

// Summary describes a spec for validation output.
type Summary struct {
	AlphabetSize int      `json:"alphabet_size"`
	Slots        int      `json:"slots"`
	Pawls        int      `json:"pawls"`
	Moving       []string `json:"moving"`
	// Notches maps each moving rotor to its notch symbols.
	Notches    map[string]string `json:"notches"`
	Fixed      []string          `json:"fixed"`
	Reflectors []string          `json:"reflectors"`
}

// Summarize groups the rotors of a built machine by kind.
func Summarize(m *cipher.Machine) Summary {
	s := Summary{
		AlphabetSize: m.Alphabet().Size(),
		Slots:        m.NumRotors(),
		Pawls:        m.NumPawls(),
		Moving:       []string{},
		Notches:      map[string]string{},
		Fixed:        []string{},
		Reflectors:   []string{},
	}
	pool := m.Pool()
	for i := 0; i < pool.Len(); i++ {
		r := pool.Rotor(cipher.RotorID(i))
		switch r.Kind() {
		case cipher.Moving:
			s.Moving = append(s.Moving, r.Name())
			s.Notches[r.Name()] = r.Notches()
		case cipher.Fixed:
			s.Fixed = append(s.Fixed, r.Name())
		case cipher.Reflector:
			s.Reflectors = append(s.Reflectors, r.Name())
		}
	}
	return s
}

// String renders the summary for text output.
func (s Summary) String() string {
	notches := make([]string, len(s.Moving))
	for i, name := range s.Moving {
		notches[i] = name + "=" + s.Notches[name]
	}
	return fmt.Sprintf("alphabet: %d symbols\nslots: %d\npawls: %d\nmoving: %v\nnotches: %v\nfixed: %v\nreflectors: %v",
		s.AlphabetSize, s.Slots, s.Pawls, s.Moving, notches, s.Fixed, s.Reflectors)
}
