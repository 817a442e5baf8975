package config

import "golang.org/x/text/unicode/norm"

// Normalize returns s in Unicode NFC.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

func normalizeSpec(spec *MachineSpec) {
	spec.Alphabet = Normalize(spec.Alphabet)
	for i := range spec.Rotors {
		r := &spec.Rotors[i]
		r.Name = Normalize(r.Name)
		r.Notches = Normalize(r.Notches)
		r.Cycles = Normalize(r.Cycles)
	}
}
