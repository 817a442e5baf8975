package cipher

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes engine errors.
type ErrorCode string

const (
	// ErrCodeConfig indicates an invalid machine or rotor configuration:
	// unknown or duplicate rotor names, wrong setting lengths, slot layout
	// violations, non-derangement reflectors.
	ErrCodeConfig ErrorCode = "CONFIG"

	// ErrCodeAlphabet indicates a symbol that is not in the alphabet.
	ErrCodeAlphabet ErrorCode = "ALPHABET"

	// ErrCodeRange indicates an index outside [0, size).
	ErrCodeRange ErrorCode = "RANGE"

	// ErrCodePermutation indicates malformed cycle notation.
	ErrCodePermutation ErrorCode = "PERMUTATION"
)

// Error is the single error type returned by the engine.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Symbol is the offending symbol, when there is one.
	Symbol rune

	// Index is the offending index (RANGE) or text offset (PERMUTATION).
	Index int
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func configErrorf(format string, args ...any) *Error {
	return &Error{Code: ErrCodeConfig, Message: fmt.Sprintf(format, args...)}
}

func alphabetError(r rune) *Error {
	return &Error{
		Code:    ErrCodeAlphabet,
		Message: fmt.Sprintf("symbol %q is not in the alphabet", r),
		Symbol:  r,
	}
}

func rangeError(index, size int) *Error {
	return &Error{
		Code:    ErrCodeRange,
		Message: fmt.Sprintf("index %d out of range [0, %d)", index, size),
		Index:   index,
	}
}

func permutationError(offset int, format string, args ...any) *Error {
	return &Error{
		Code:    ErrCodePermutation,
		Message: fmt.Sprintf("offset %d: %s", offset, fmt.Sprintf(format, args...)),
		Index:   offset,
	}
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// IsConfigError reports whether err is a configuration error.
// Uses errors.As to handle wrapped errors.
func IsConfigError(err error) bool { return hasCode(err, ErrCodeConfig) }

// IsAlphabetError reports whether err is an unknown-symbol error.
func IsAlphabetError(err error) bool { return hasCode(err, ErrCodeAlphabet) }

// IsRangeError reports whether err is an index-out-of-range error.
func IsRangeError(err error) bool { return hasCode(err, ErrCodeRange) }

// IsPermutationError reports whether err is a cycle notation error.
func IsPermutationError(err error) bool { return hasCode(err, ErrCodePermutation) }
