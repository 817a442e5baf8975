package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/enigma/internal/config"
)

// ErrSessionNotFound is returned when a session id is not in the journal.
var ErrSessionNotFound = errors.New("session not found")

// ReadSession retrieves a session by id, including its configuration text.
func (s *Store) ReadSession(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, config_name, config_format, config_text, config_hash, group_size
		FROM sessions
		WHERE id = ?
	`, id)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("read session %s: %w", id, ErrSessionNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("read session %s: %w", id, err)
	}
	return sess, nil
}

// LatestSession returns the session with the highest seq.
func (s *Store) LatestSession(ctx context.Context) (Session, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, config_name, config_format, config_text, config_hash, group_size
		FROM sessions
		ORDER BY seq DESC, id COLLATE BINARY DESC
		LIMIT 1
	`)

	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Session{}, fmt.Errorf("latest session: %w", ErrSessionNotFound)
	}
	if err != nil {
		return Session{}, fmt.Errorf("latest session: %w", err)
	}
	return sess, nil
}

// ListSessions returns every session with its entry count, oldest first.
// ConfigText is not loaded. Returns an empty slice (not nil) for an empty
// journal.
func (s *Store) ListSessions(ctx context.Context) ([]Session, error) {
	return s.listSessions(ctx, `
		SELECT s.id, s.seq, s.config_name, s.config_format, s.config_hash, s.group_size, COUNT(e.id)
		FROM sessions s
		LEFT JOIN entries e ON e.session_id = s.id
		GROUP BY s.id
		ORDER BY s.seq ASC, s.id COLLATE BINARY ASC
	`)
}

// SessionsForConfig returns the sessions recorded with a configuration
// whose HashConfig is hash, oldest first.
func (s *Store) SessionsForConfig(ctx context.Context, hash string) ([]Session, error) {
	return s.listSessions(ctx, `
		SELECT s.id, s.seq, s.config_name, s.config_format, s.config_hash, s.group_size, COUNT(e.id)
		FROM sessions s
		LEFT JOIN entries e ON e.session_id = s.id
		WHERE s.config_hash = ?
		GROUP BY s.id
		ORDER BY s.seq ASC, s.id COLLATE BINARY ASC
	`, hash)
}

func (s *Store) listSessions(ctx context.Context, query string, args ...any) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		var (
			sess   Session
			format string
		)
		if err := rows.Scan(&sess.ID, &sess.Seq, &sess.ConfigName, &format,
			&sess.ConfigHash, &sess.GroupSize, &sess.Entries); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sess.Format = config.Format(format)
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// ReadEntries returns the entries of a session in seq order. Returns an
// empty slice (not nil) if the session has none.
func (s *Store) ReadEntries(ctx context.Context, sessionID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, seq, line, kind, input, output, positions_before, positions_after
		FROM entries
		WHERE session_id = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var (
			e    Entry
			kind string
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Seq, &e.Line, &kind,
			&e.Input, &e.Output, &e.Before, &e.After); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.Kind = EntryKind(kind)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

func scanSession(row *sql.Row) (Session, error) {
	var (
		sess   Session
		format string
	)
	err := row.Scan(&sess.ID, &sess.Seq, &sess.ConfigName, &format,
		&sess.ConfigText, &sess.ConfigHash, &sess.GroupSize)
	if err != nil {
		return Session{}, err
	}
	sess.Format = config.Format(format)
	return sess, nil
}
