package cipher

import "fmt"

// Kind tags the rotor variant. The set is closed: every switch over Kind
// in this package is exhaustive.
type Kind int

const (
	// Moving rotors advance under a pawl and carry notches.
	Moving Kind = iota
	// Fixed rotors never move.
	Fixed
	// Reflector rotors never move and must be derangements. Slot 0 only.
	Reflector
)

// String returns the lower-case kind name used in configuration files.
func (k Kind) String() string {
	switch k {
	case Moving:
		return "moving"
	case Fixed:
		return "fixed"
	case Reflector:
		return "reflector"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "moving":
		return Moving, nil
	case "fixed":
		return Fixed, nil
	case "reflector":
		return Reflector, nil
	}
	return 0, configErrorf("invalid rotor kind %q", s)
}

// Rotor is a permutation mounted at a rotational setting and a ring setting.
type Rotor struct {
	name    string
	kind    Kind
	perm    *Permutation
	notches []bool // indexed by alphabet index; nil unless Moving

	setting int
	ring    int
}

// NewMovingRotor creates a rotor that advances and signals its left
// neighbour when its setting is one of notches.
func NewMovingRotor(name string, perm *Permutation, notches string) (*Rotor, error) {
	r := &Rotor{name: name, kind: Moving, perm: perm}
	r.notches = make([]bool, perm.Size())
	for _, n := range notches {
		idx, err := perm.alphabet.ToInt(n)
		if err != nil {
			return nil, configErrorf("rotor %s: notch %q is not in the alphabet", name, n)
		}
		r.notches[idx] = true
	}
	return r, nil
}

// NewFixedRotor creates a rotor that never advances.
func NewFixedRotor(name string, perm *Permutation) *Rotor {
	return &Rotor{name: name, kind: Fixed, perm: perm}
}

// NewReflector creates a reflector. perm must be a derangement.
func NewReflector(name string, perm *Permutation) (*Rotor, error) {
	if !perm.Derangement() {
		return nil, configErrorf("reflector %s: permutation %q is not a derangement", name, perm.String())
	}
	return &Rotor{name: name, kind: Reflector, perm: perm}, nil
}

// Name returns the rotor's name.
func (r *Rotor) Name() string { return r.name }

// Kind returns the rotor's variant.
func (r *Rotor) Kind() Kind { return r.kind }

// Permutation returns the rotor's wiring at setting 0.
func (r *Rotor) Permutation() *Permutation { return r.perm }

// Alphabet returns the alphabet the rotor is wired over.
func (r *Rotor) Alphabet() Alphabet { return r.perm.alphabet }

// Size returns the alphabet size.
func (r *Rotor) Size() int { return r.perm.Size() }

// Setting returns the current rotational position.
func (r *Rotor) Setting() int { return r.setting }

// RingSetting returns the ring offset.
func (r *Rotor) RingSetting() int { return r.ring }

// Notches returns the notch symbols in alphabet order.
func (r *Rotor) Notches() string {
	var out []rune
	for i, ok := range r.notches {
		if ok {
			out = append(out, r.perm.alphabet.symbol(i))
		}
	}
	return string(out)
}

// Set sets the rotational position to Wrap(posn).
func (r *Rotor) Set(posn int) {
	r.setting = r.perm.Wrap(posn)
}

// SetRune sets the rotational position to the index of symbol.
func (r *Rotor) SetRune(symbol rune) error {
	idx, err := r.perm.alphabet.ToInt(symbol)
	if err != nil {
		return err
	}
	r.setting = idx
	return nil
}

// SetRing sets the ring offset to the index of symbol.
func (r *Rotor) SetRing(symbol rune) error {
	idx, err := r.perm.alphabet.ToInt(symbol)
	if err != nil {
		return err
	}
	r.ring = idx
	return nil
}

// Rotates reports whether the rotor can advance.
func (r *Rotor) Rotates() bool {
	switch r.kind {
	case Moving:
		return true
	case Fixed, Reflector:
		return false
	}
	return false
}

// AtNotch reports whether the symbol at the current setting is a notch.
// Always false for non-moving rotors.
func (r *Rotor) AtNotch() bool {
	switch r.kind {
	case Moving:
		return r.notches[r.setting]
	case Fixed, Reflector:
		return false
	}
	return false
}

// Advance moves a Moving rotor one position. It is a no-op for the other kinds.
func (r *Rotor) Advance() {
	switch r.kind {
	case Moving:
		r.setting = r.perm.Wrap(r.setting + 1)
	case Fixed, Reflector:
	}
}

// ConvertForward passes index p right to left through the rotor.
func (r *Rotor) ConvertForward(p int) int {
	shift := r.setting - r.ring
	return r.perm.Wrap(r.perm.Permute(p+shift) - shift)
}

// ConvertBackward passes index p left to right through the rotor.
func (r *Rotor) ConvertBackward(p int) int {
	shift := r.setting - r.ring
	return r.perm.Wrap(r.perm.Invert(p+shift) - shift)
}

// String returns a short description for logs.
func (r *Rotor) String() string {
	return fmt.Sprintf("%s(%s)@%c", r.name, r.kind, r.perm.alphabet.symbol(r.setting))
}
