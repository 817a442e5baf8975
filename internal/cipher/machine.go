package cipher

import "strings"

// Machine is a reflector plus numRotors-1 rotor slots plus a plugboard.
// Slot 0 holds the reflector; higher slots are further right and faster.
type Machine struct {
	pool      *Pool
	numRotors int
	pawls     int
	slots     []RotorID
	plugboard *Permutation
}

// NewMachine creates a machine with numRotors slots and pawls pawls drawing
// rotors from pool. Requires 1 < numRotors and 0 <= pawls < numRotors.
// The plugboard starts as the identity.
func NewMachine(pool *Pool, numRotors, pawls int) (*Machine, error) {
	if numRotors <= 1 {
		return nil, configErrorf("machine needs more than one rotor slot, got %d", numRotors)
	}
	if pawls < 0 || pawls >= numRotors {
		return nil, configErrorf("pawl count %d must be in [0, %d)", pawls, numRotors)
	}
	return &Machine{
		pool:      pool,
		numRotors: numRotors,
		pawls:     pawls,
		plugboard: IdentityPermutation(pool.alphabet),
	}, nil
}

// NumRotors returns the number of slots, reflector included.
func (m *Machine) NumRotors() int { return m.numRotors }

// NumPawls returns the number of pawls, which equals the number of moving rotors.
func (m *Machine) NumPawls() int { return m.pawls }

// Alphabet returns the machine's alphabet.
func (m *Machine) Alphabet() Alphabet { return m.pool.alphabet }

// Pool returns the rotor pool.
func (m *Machine) Pool() *Pool { return m.pool }

// Plugboard returns the current plugboard.
func (m *Machine) Plugboard() *Permutation { return m.plugboard }

// InsertRotors replaces the slot list with the rotors named by names,
// left to right, names[0] being the reflector.
//
// The slot list is only replaced when every check passes:
//   - len(names) == NumRotors()
//   - every name exists in the pool and appears once
//   - slot 0 is a Reflector and no other slot is
//   - exactly NumPawls() moving rotors, all to the right of any fixed rotor
//
// Rotor settings are not reset.
func (m *Machine) InsertRotors(names []string) error {
	if len(names) != m.numRotors {
		return configErrorf("expected %d rotors, got %d", m.numRotors, len(names))
	}

	slots := make([]RotorID, len(names))
	used := make(map[RotorID]bool, len(names))
	moving := 0
	for i, name := range names {
		id, ok := m.pool.Lookup(name)
		if !ok {
			return configErrorf("unknown rotor %s", name)
		}
		if used[id] {
			return configErrorf("rotor %s is selected into more than one slot", name)
		}
		used[id] = true
		slots[i] = id

		r := m.pool.Rotor(id)
		switch r.kind {
		case Reflector:
			if i != 0 {
				return configErrorf("reflector %s must be in slot 0, found in slot %d", name, i)
			}
		case Fixed:
			if i == 0 {
				return configErrorf("slot 0 must hold a reflector, found fixed rotor %s", name)
			}
			if moving > 0 {
				return configErrorf("fixed rotor %s cannot be right of a moving rotor", name)
			}
		case Moving:
			if i == 0 {
				return configErrorf("slot 0 must hold a reflector, found moving rotor %s", name)
			}
			moving++
		}
	}
	if moving != m.pawls {
		return configErrorf("machine has %d pawls but %d moving rotors were selected", m.pawls, moving)
	}

	m.slots = slots
	return nil
}

// Slots returns the names of the inserted rotors, left to right.
func (m *Machine) Slots() []string {
	names := make([]string, len(m.slots))
	for i, id := range m.slots {
		names[i] = m.pool.Rotor(id).name
	}
	return names
}

// Rotor returns the rotor in slot i.
func (m *Machine) Rotor(i int) *Rotor {
	return m.pool.Rotor(m.slots[i])
}

// SetRotors sets the positions of slots 1..NumRotors()-1 from setting,
// one symbol per slot, left to right.
// Nothing is mutated unless every symbol is valid.
func (m *Machine) SetRotors(setting string) error {
	idx, err := m.settingIndices("rotor setting", setting)
	if err != nil {
		return err
	}
	for i, v := range idx {
		m.Rotor(i + 1).Set(v)
	}
	return nil
}

// SetRingSetting sets the ring offsets of slots 1..NumRotors()-1, with the
// same contract as SetRotors.
func (m *Machine) SetRingSetting(ringSetting string) error {
	idx, err := m.settingIndices("ring setting", ringSetting)
	if err != nil {
		return err
	}
	for i, v := range idx {
		m.Rotor(i + 1).ring = v
	}
	return nil
}

func (m *Machine) settingIndices(what, s string) ([]int, error) {
	if len(m.slots) == 0 {
		return nil, configErrorf("%s: no rotors inserted", what)
	}
	symbols := []rune(s)
	if len(symbols) != m.numRotors-1 {
		return nil, configErrorf("%s %q has length %d, expected %d", what, s, len(symbols), m.numRotors-1)
	}
	idx := make([]int, len(symbols))
	for i, r := range symbols {
		v, ok := m.pool.alphabet.index[r]
		if !ok {
			return nil, &Error{
				Code:    ErrCodeConfig,
				Message: what + ": " + alphabetError(r).Message,
				Symbol:  r,
			}
		}
		idx[i] = v
	}
	return idx, nil
}

// SetPlugboard replaces the plugboard.
func (m *Machine) SetPlugboard(plugboard *Permutation) {
	m.plugboard = plugboard
}

// Positions returns the settings of slots 1..NumRotors()-1 as symbols.
func (m *Machine) Positions() string {
	return m.describe(func(r *Rotor) int { return r.setting })
}

// Rings returns the ring settings of slots 1..NumRotors()-1 as symbols.
func (m *Machine) Rings() string {
	return m.describe(func(r *Rotor) int { return r.ring })
}

func (m *Machine) describe(get func(*Rotor) int) string {
	var b strings.Builder
	for i := 1; i < len(m.slots); i++ {
		b.WriteRune(m.pool.alphabet.symbol(get(m.Rotor(i))))
	}
	return b.String()
}

// step advances the rotors for one keystroke.
//
// Slots are scanned left to right. The rightmost slot always advances.
// Any other moving rotor advances, together with its right neighbour, when
// that neighbour is at a notch; the neighbour is then skipped so it moves
// at most once per keystroke.
func (m *Machine) step() {
	last := len(m.slots) - 1
	for i := 0; i <= last; i++ {
		r := m.Rotor(i)
		if !r.Rotates() {
			continue
		}
		if i == last {
			r.Advance()
			continue
		}
		if right := m.Rotor(i + 1); right.AtNotch() {
			r.Advance()
			right.Advance()
			i++
		}
	}
}

// Convert advances the rotors and then returns the encoding of index c.
// Rotors must have been inserted; Convert panics otherwise. ConvertString
// reports the same condition as a CONFIG error.
func (m *Machine) Convert(c int) int {
	if len(m.slots) == 0 {
		panic("cipher: Convert called before InsertRotors")
	}
	m.step()

	c = m.plugboard.Permute(c)
	for i := len(m.slots) - 1; i >= 0; i-- {
		c = m.Rotor(i).ConvertForward(c)
	}
	for i := 1; i < len(m.slots); i++ {
		c = m.Rotor(i).ConvertBackward(c)
	}
	return m.plugboard.Invert(c)
}

// ConvertString converts msg one symbol at a time, stepping once per symbol.
//
// Conversion fails fast: on an unknown symbol the output produced so far is
// returned together with the error, and the rotors stay where the last
// converted symbol left them.
func (m *Machine) ConvertString(msg string) (string, error) {
	if len(m.slots) == 0 {
		return "", configErrorf("no rotors inserted")
	}
	var b strings.Builder
	b.Grow(len(msg))
	for _, r := range msg {
		idx, err := m.pool.alphabet.ToInt(r)
		if err != nil {
			return b.String(), err
		}
		b.WriteRune(m.pool.alphabet.symbol(m.Convert(idx)))
	}
	return b.String(), nil
}
