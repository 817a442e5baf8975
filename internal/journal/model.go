package journal

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/roach88/enigma/internal/config"
)

// Hash domains. The version suffix leaves room to change what is hashed.
const (
	DomainConfig = "enigma/config/v1"
	DomainEntry  = "enigma/entry/v1"
)

// EntryKind distinguishes setup directives from messages.
type EntryKind string

const (
	KindSetup   EntryKind = "setup"
	KindMessage EntryKind = "message"
)

// Session is one recorded run of a machine description over an input.
type Session struct {
	ID         string        `json:"id"`
	Seq        int64         `json:"seq"`
	ConfigName string        `json:"config_name"`
	Format     config.Format `json:"config_format"`
	ConfigText string        `json:"-"`
	ConfigHash string        `json:"config_hash"`
	GroupSize  int           `json:"group_size"`

	// Entries is filled by ListSessions only.
	Entries int `json:"entries"`
}

// Entry is one processed input line.
type Entry struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Seq       int64     `json:"seq"`
	Line      int       `json:"line"`
	Kind      EntryKind `json:"kind"`
	Input     string    `json:"input"`
	Output    string    `json:"output,omitempty"`
	Before    string    `json:"positions_before"`
	After     string    `json:"positions_after"`
}

// hashWithDomain computes SHA256(domain + 0x00 + data), hex encoded.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// HashConfig returns the content hash stored with a session.
func HashConfig(text string) string {
	return hashWithDomain(DomainConfig, []byte(text))
}

// EntryID computes the content-addressed id of an entry. Writing the same
// entry twice is a no-op.
func EntryID(sessionID string, seq int64, kind EntryKind, input string) string {
	data := sessionID + "\x00" + strconv.FormatInt(seq, 10) + "\x00" + string(kind) + "\x00" + input
	return hashWithDomain(DomainEntry, []byte(data))
}

func (k EntryKind) valid() error {
	switch k {
	case KindSetup, KindMessage:
		return nil
	}
	return fmt.Errorf("invalid entry kind %q", string(k))
}
