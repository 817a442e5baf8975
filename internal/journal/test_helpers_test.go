package journal

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/roach88/enigma/internal/config"
	"github.com/roach88/enigma/internal/session"
	"github.com/roach88/enigma/internal/testutil"
)

// createTestStore opens a journal in a temp dir, closed on cleanup.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "journal.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestSession writes a minimal session row.
func createTestSession(t *testing.T, s *Store, id string) Session {
	t.Helper()
	sess := Session{
		ID:         id,
		ConfigName: "naval.conf",
		Format:     config.FormatClassic,
		ConfigText: testutil.NavalConfig,
		GroupSize:  5,
	}
	seq, err := s.WriteSession(context.Background(), sess)
	if err != nil {
		t.Fatalf("WriteSession() failed: %v", err)
	}
	sess.Seq = seq
	sess.ConfigHash = HashConfig(sess.ConfigText)
	return sess
}

// recordSession runs input through a processor with a Recorder attached and
// returns the session id and the converted output.
func recordSession(t *testing.T, s *Store, id, input string) (string, string) {
	t.Helper()
	ctx := context.Background()

	src, err := config.Load(testutil.WriteFile(t, "naval.conf", testutil.NavalConfig), config.FormatAuto)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	m, err := config.Build(src.Spec)
	if err != nil {
		t.Fatalf("Build() failed: %v", err)
	}

	rec, err := StartSession(ctx, s, NewFixedGenerator(id), testutil.NewDeterministicClock(), src, session.DefaultGroupSize)
	if err != nil {
		t.Fatalf("StartSession() failed: %v", err)
	}

	var out bytes.Buffer
	p := session.New(m, &out, session.Options{Observer: rec})
	if _, err := p.Process(ctx, strings.NewReader(input)); err != nil {
		t.Fatalf("Process() failed: %v", err)
	}
	return rec.Session().ID, out.String()
}
