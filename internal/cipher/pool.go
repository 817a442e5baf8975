package cipher

// RotorID is a handle to a rotor owned by a Pool.
type RotorID int

// RotorDef describes one named rotor in a configuration.
type RotorDef struct {
	Name    string
	Kind    Kind
	Notches string // Moving only
	Cycles  string // cycle notation
}

// Pool owns every rotor available to a machine. Rotors are stored by value
// and addressed through RotorID handles.
type Pool struct {
	alphabet Alphabet
	rotors   []Rotor
	byName   map[string]RotorID
}

// NewPool builds every rotor in defs over alphabet.
// Rotor names must be unique and non-empty.
func NewPool(alphabet Alphabet, defs []RotorDef) (*Pool, error) {
	p := &Pool{
		alphabet: alphabet,
		rotors:   make([]Rotor, 0, len(defs)),
		byName:   make(map[string]RotorID, len(defs)),
	}
	for _, def := range defs {
		if _, err := p.add(def); err != nil {
			return nil, err
		}
	}
	return p, nil
}

func (p *Pool) add(def RotorDef) (RotorID, error) {
	if def.Name == "" {
		return 0, configErrorf("rotor name is empty")
	}
	if _, dup := p.byName[def.Name]; dup {
		return 0, configErrorf("rotor %s is defined more than once", def.Name)
	}

	perm, err := NewPermutation(def.Cycles, p.alphabet)
	if err != nil {
		return 0, err
	}

	var r *Rotor
	switch def.Kind {
	case Moving:
		r, err = NewMovingRotor(def.Name, perm, def.Notches)
	case Fixed:
		if def.Notches != "" {
			return 0, configErrorf("rotor %s: fixed rotors have no notches", def.Name)
		}
		r = NewFixedRotor(def.Name, perm)
	case Reflector:
		if def.Notches != "" {
			return 0, configErrorf("rotor %s: reflectors have no notches", def.Name)
		}
		r, err = NewReflector(def.Name, perm)
	default:
		return 0, configErrorf("rotor %s: invalid kind %v", def.Name, def.Kind)
	}
	if err != nil {
		return 0, err
	}

	id := RotorID(len(p.rotors))
	p.rotors = append(p.rotors, *r)
	p.byName[def.Name] = id
	return id, nil
}

// Alphabet returns the alphabet shared by every rotor in the pool.
func (p *Pool) Alphabet() Alphabet {
	return p.alphabet
}

// Len returns the number of rotors.
func (p *Pool) Len() int {
	return len(p.rotors)
}

// Lookup returns the handle for name.
func (p *Pool) Lookup(name string) (RotorID, bool) {
	id, ok := p.byName[name]
	return id, ok
}

// Rotor returns the rotor for id. The pointer stays valid for the life of the pool.
func (p *Pool) Rotor(id RotorID) *Rotor {
	return &p.rotors[id]
}

// Names returns rotor names in definition order.
func (p *Pool) Names() []string {
	names := make([]string, len(p.rotors))
	for i := range p.rotors {
		names[i] = p.rotors[i].name
	}
	return names
}
