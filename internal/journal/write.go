package journal

import (
	"context"
	"fmt"
)

// WriteSession inserts a session row. The session seq is assigned by the
// store, one past the highest existing value, and returned.
func (s *Store) WriteSession(ctx context.Context, sess Session) (int64, error) {
	if sess.ID == "" {
		return 0, fmt.Errorf("write session: empty id")
	}
	if sess.ConfigHash == "" {
		sess.ConfigHash = HashConfig(sess.ConfigText)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("write session: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM sessions`).Scan(&seq); err != nil {
		return 0, fmt.Errorf("write session: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions
		(id, seq, config_name, config_format, config_text, config_hash, group_size)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		sess.ID,
		seq,
		sess.ConfigName,
		string(sess.Format),
		sess.ConfigText,
		sess.ConfigHash,
		sess.GroupSize,
	)
	if err != nil {
		return 0, fmt.Errorf("write session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("write session: commit: %w", err)
	}
	return seq, nil
}

// WriteEntry inserts an entry. An empty ID is computed with EntryID.
// Uses ON CONFLICT(id) DO NOTHING, so rewriting an identical entry is
// ignored; other constraint violations (unknown session, a different entry
// at the same seq) are errors.
func (s *Store) WriteEntry(ctx context.Context, e Entry) error {
	if err := e.Kind.valid(); err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	if e.ID == "" {
		e.ID = EntryID(e.SessionID, e.Seq, e.Kind, e.Input)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO entries
		(id, session_id, seq, line, kind, input, output, positions_before, positions_after)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		e.ID,
		e.SessionID,
		e.Seq,
		e.Line,
		string(e.Kind),
		e.Input,
		e.Output,
		e.Before,
		e.After,
	)
	if err != nil {
		return fmt.Errorf("write entry: %w", err)
	}
	return nil
}
