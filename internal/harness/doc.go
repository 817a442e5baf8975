// Package harness runs conformance scenarios against a machine description.
//
// A scenario is a YAML file naming a machine description, an input stream
// and the expected results: the exact converted output, the final rotor
// positions, an expected error, and assertions over the trace.
//
// Each run uses a fresh in-memory journal with a fixed session id and a
// deterministic clock. After the input is processed the journal is replayed
// against a newly built machine, so every scenario also checks that
// conversion is reproducible from the recorded description alone.
//
// The trace holds one event per setup directive or message line, and one
// keystroke record per converted symbol. RunWithGolden compares it against
// testdata/golden/<name>.golden.
package harness
