package config

import (
	"errors"
	"fmt"

	"github.com/roach88/enigma/internal/cipher"
)

// ParseError reports malformed configuration or setup text.
type ParseError struct {
	File    string
	Line    int // 1-based; 0 when unknown
	Column  int // 1-based; 0 when unknown
	Message string
}

func (e *ParseError) Error() string {
	switch {
	case e.File != "" && e.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s", e.File, e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	case e.File != "":
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}

// IsConfigError reports whether err is a configuration problem: either a
// ParseError or a cipher CONFIG error.
func IsConfigError(err error) bool {
	var pe *ParseError
	if errors.As(err, &pe) {
		return true
	}
	return cipher.IsConfigError(err)
}
