// Package session drives a configured machine over a message stream.
//
// The input is line oriented:
//   - a line starting with "*" is a setup directive and reconfigures the machine
//   - an empty (or all whitespace) line is copied to the output as an empty line
//   - any other line is a message: whitespace is removed, the symbols are
//     converted, and the result is written in groups of GroupSize symbols
//
// A message before the first setup directive is an error. Processing stops at
// the first failing line; everything written before it stands.
package session
