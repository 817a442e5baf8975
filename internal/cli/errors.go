package cli

import (
	"errors"
	"io/fs"

	"github.com/roach88/enigma/internal/cipher"
	"github.com/roach88/enigma/internal/config"
	"github.com/roach88/enigma/internal/journal"
)

// Error codes for failures that do not carry a cipher error code.
const (
	ErrCodeGeneric        = "E001" // Generic/unknown error
	ErrCodeUsage          = "E002" // Invalid flag value
	ErrCodeConfig         = "CONFIG"
	ErrCodeNotFound       = "E005" // Path not found
	ErrCodeJournal        = "E010" // Journal could not be opened or written
	ErrCodeSessionMissing = "E011" // Session id not in the journal
	ErrCodeDiverged       = "E020" // Replay did not reproduce the journal
	ErrCodeTestFailed     = "E030" // One or more scenarios failed
)

// Classify maps an error to its reported code and exit status.
//
// Configuration problems, missing files and unknown sessions are command
// errors (exit 2). Symbols outside the alphabet and other conversion
// failures are exit 1.
func Classify(err error) (string, int) {
	var cerr *cipher.Error
	switch {
	case errors.As(err, &cerr):
		switch cerr.Code {
		case cipher.ErrCodeConfig, cipher.ErrCodePermutation:
			return string(cerr.Code), ExitCommandError
		default:
			return string(cerr.Code), ExitFailure
		}
	case config.IsConfigError(err):
		return ErrCodeConfig, ExitCommandError
	case errors.Is(err, journal.ErrSessionNotFound):
		return ErrCodeSessionMissing, ExitCommandError
	case errors.Is(err, fs.ErrNotExist):
		return ErrCodeNotFound, ExitCommandError
	}
	return ErrCodeGeneric, ExitFailure
}
