// Package config turns machine descriptions and setup directives into
// configured cipher machines.
//
// A machine description names the alphabet, the number of rotor slots, the
// number of pawls and the pool of available rotors. Three encodings are
// accepted and produce the same MachineSpec:
//
//   - classic: whitespace separated tokens
//
//     ABCDEFGHIJKLMNOPQRSTUVWXYZ
//     5 3
//     I MQ (AELTPHQXRU) (BKNW) (CMOY) (DFG) (IV) (JZ) (S)
//     Beta N (ALBEVFCYODJWUGNMQTZSKPR) (HIX)
//     B R (AE) (BN) (CK) ...
//
//     The type token is M followed by the notch symbols, N for a fixed
//     rotor, or R for a reflector.
//
//   - yaml: the MachineSpec fields, decoded strictly
//
//   - cue: the MachineSpec fields, unified with an embedded #Machine schema
//
// All text is normalized to Unicode NFC before use so that composed and
// decomposed spellings of a symbol are the same symbol.
//
// A setup directive such as "* B Beta III IV I AXLE" selects rotors and
// initial positions for the following messages. Optional ring settings and
// plugboard cycles may follow the positions.
package config
