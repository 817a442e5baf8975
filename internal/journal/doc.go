// Package journal records conversion sessions in SQLite and replays them.
//
// A session row holds the machine description exactly as it was loaded
// (format, text and a content hash). Entry rows hold every setup directive
// and message in input order together with the rotor positions before and
// after it.
//
// The journal is an audit trail: Replay builds a fresh machine from the
// stored description and checks that re-running every entry produces the
// recorded output and positions. It is never used to resume a machine.
//
// # Ordering
//
// Entries are ordered by seq, a logical clock value assigned by the
// Recorder. Queries always use ORDER BY seq ASC, id COLLATE BINARY ASC so
// reads are deterministic.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package journal
