// Package cipher implements the rotor cipher engine.
//
// The engine is built bottom-up from four pieces:
//   - Alphabet: ordered distinct symbols with a dense index mapping
//   - Permutation: a bijection over alphabet indices written as disjoint cycles
//   - Rotor: a permutation with a rotational setting and a ring setting,
//     tagged as Moving, Fixed or Reflector
//   - Machine: reflector plus rotor slots plus plugboard, converting one
//     symbol per keystroke
//
// # Ownership
//
// A Pool owns every Rotor built from a configuration. Machines refer to
// rotors through RotorID handles into the pool, so a rotor is never aliased
// into two independent mutable copies.
//
// # Stepping
//
// Before each symbol is converted the machine scans its slots left to right.
// The rightmost rotor always advances. A moving rotor whose right neighbour
// sits at a notch advances together with that neighbour, and the neighbour is
// skipped for the rest of the scan. Because the trigger is evaluated on the
// neighbour's position before its own advance, a middle rotor steps twice in
// one revolution of its right neighbour (double stepping).
//
// Nothing in this package is safe for concurrent use. A Machine and the Pool
// it draws from have a single owner for the duration of a run.
package cipher
