package journal

import (
	"context"
	"fmt"

	"github.com/roach88/enigma/internal/config"
	"github.com/roach88/enigma/internal/session"
)

// Recorder writes session events to a Store. It implements session.Observer.
type Recorder struct {
	store   *Store
	clock   Clock
	session Session
}

var _ session.Observer = (*Recorder)(nil)

// StartSession records a new session for src and returns a Recorder for its
// entries. A nil clock means NewClock().
func StartSession(ctx context.Context, store *Store, ids IDGenerator, clock Clock, src *config.Source, groupSize int) (*Recorder, error) {
	if clock == nil {
		clock = NewClock()
	}
	sess := Session{
		ID:         ids.Generate(),
		ConfigName: src.Path,
		Format:     src.Format,
		ConfigText: src.Text,
		ConfigHash: HashConfig(src.Text),
		GroupSize:  groupSize,
	}
	seq, err := store.WriteSession(ctx, sess)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	sess.Seq = seq
	return &Recorder{store: store, clock: clock, session: sess}, nil
}

// Session returns the recorded session row.
func (r *Recorder) Session() Session {
	return r.session
}

// OnSetup records a setup directive.
func (r *Recorder) OnSetup(ctx context.Context, ev session.SetupEvent) error {
	return r.store.WriteEntry(ctx, Entry{
		SessionID: r.session.ID,
		Seq:       r.clock.Next(),
		Line:      ev.Line,
		Kind:      KindSetup,
		Input:     ev.Directive,
		Before:    ev.Before,
		After:     ev.After,
	})
}

// OnMessage records a converted message.
func (r *Recorder) OnMessage(ctx context.Context, ev session.MessageEvent) error {
	return r.store.WriteEntry(ctx, Entry{
		SessionID: r.session.ID,
		Seq:       r.clock.Next(),
		Line:      ev.Line,
		Kind:      KindMessage,
		Input:     ev.Input,
		Output:    ev.Output,
		Before:    ev.Before,
		After:     ev.After,
	})
}
