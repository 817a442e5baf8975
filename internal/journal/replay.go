package journal

import (
	"context"
	"fmt"

	"github.com/roach88/enigma/internal/cipher"
	"github.com/roach88/enigma/internal/config"
)

// Divergence is a recorded value that replay could not reproduce.
type Divergence struct {
	Seq   int64  `json:"seq"`
	Line  int    `json:"line"`
	Field string `json:"field"`
	Want  string `json:"want"`
	Got   string `json:"got"`
}

func (d Divergence) String() string {
	return fmt.Sprintf("seq %d (line %d): %s: recorded %q, replayed %q", d.Seq, d.Line, d.Field, d.Want, d.Got)
}

// ReplayResult summarizes a replay.
type ReplayResult struct {
	SessionID   string       `json:"session_id"`
	Entries     int          `json:"entries"`
	Replayed    int          `json:"replayed"`
	Divergences []Divergence `json:"divergences"`
}

// OK reports whether every entry was reproduced.
func (r *ReplayResult) OK() bool {
	return len(r.Divergences) == 0 && r.Replayed == r.Entries
}

func (r *ReplayResult) check(e Entry, field, want, got string) {
	if want != got {
		r.Divergences = append(r.Divergences, Divergence{Seq: e.Seq, Line: e.Line, Field: field, Want: want, Got: got})
	}
}

// Replay rebuilds the machine of session id from its stored description and
// re-runs every entry against it. Divergences are reported in the result;
// the returned error covers storage failures and a description that no
// longer builds. Replay stops at the first entry that cannot be applied.
func Replay(ctx context.Context, store *Store, id string) (*ReplayResult, error) {
	sess, err := store.ReadSession(ctx, id)
	if err != nil {
		return nil, err
	}
	entries, err := store.ReadEntries(ctx, id)
	if err != nil {
		return nil, err
	}

	result := &ReplayResult{SessionID: id, Entries: len(entries), Divergences: []Divergence{}}
	if got := HashConfig(sess.ConfigText); got != sess.ConfigHash {
		result.Divergences = append(result.Divergences, Divergence{Field: "config_hash", Want: sess.ConfigHash, Got: got})
	}

	spec, err := config.Parse(sess.ConfigName, []byte(sess.ConfigText), sess.Format)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", id, err)
	}
	m, err := config.Build(spec)
	if err != nil {
		return nil, fmt.Errorf("replay %s: %w", id, err)
	}

	configured := false
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		before := ""
		if configured {
			before = m.Positions()
		}
		result.check(e, "positions_before", e.Before, before)

		if err := replayEntry(m, e, configured, result); err != nil {
			result.check(e, "error", "", err.Error())
			break
		}
		configured = true
		result.check(e, "positions_after", e.After, m.Positions())
		result.Replayed++
	}
	return result, nil
}

func replayEntry(m *cipher.Machine, e Entry, configured bool, result *ReplayResult) error {
	switch e.Kind {
	case KindSetup:
		s, err := config.ParseSetup(e.Input, m.NumRotors())
		if err != nil {
			return err
		}
		return s.Apply(m)
	case KindMessage:
		if !configured {
			return fmt.Errorf("message before the first setup")
		}
		out, err := m.ConvertString(e.Input)
		if err != nil {
			return err
		}
		result.check(e, "output", e.Output, out)
		return nil
	default:
		return fmt.Errorf("unknown entry kind %q", string(e.Kind))
	}
}
