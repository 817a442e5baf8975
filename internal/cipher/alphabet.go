package cipher

import (
	"fmt"
	"unicode"
)

// DefaultAlphabet is the 26 upper-case Latin letters.
const DefaultAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Alphabet is an ordered set of distinct symbols. The K-th symbol has index K.
//
// Alphabet is immutable after construction and safe to copy by value.
type Alphabet struct {
	symbols []rune
	index   map[rune]int
}

// NewAlphabet creates an alphabet from the runes of chars.
//
// Whitespace, '(', ')' and '*' are reserved by the configuration grammar
// and rejected, as are empty input and duplicate symbols.
func NewAlphabet(chars string) (Alphabet, error) {
	symbols := []rune(chars)
	if len(symbols) == 0 {
		return Alphabet{}, configErrorf("alphabet is empty")
	}

	index := make(map[rune]int, len(symbols))
	for i, r := range symbols {
		if isReserved(r) {
			return Alphabet{}, &Error{
				Code:    ErrCodeConfig,
				Message: fmt.Sprintf("alphabet contains reserved symbol %q", r),
				Symbol:  r,
			}
		}
		if _, dup := index[r]; dup {
			return Alphabet{}, &Error{
				Code:    ErrCodeConfig,
				Message: fmt.Sprintf("alphabet contains duplicate symbol %q", r),
				Symbol:  r,
			}
		}
		index[r] = i
	}

	return Alphabet{symbols: symbols, index: index}, nil
}

func isReserved(r rune) bool {
	return unicode.IsSpace(r) || r == '(' || r == ')' || r == '*'
}

// Size returns the number of symbols.
func (a Alphabet) Size() int {
	return len(a.symbols)
}

// Contains reports whether r is in the alphabet.
func (a Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// ToChar returns the symbol at index.
func (a Alphabet) ToChar(index int) (rune, error) {
	if index < 0 || index >= len(a.symbols) {
		return 0, rangeError(index, len(a.symbols))
	}
	return a.symbols[index], nil
}

// ToInt returns the index of r. This is the inverse of ToChar.
func (a Alphabet) ToInt(r rune) (int, error) {
	i, ok := a.index[r]
	if !ok {
		return 0, alphabetError(r)
	}
	return i, nil
}

// String returns the symbols in order.
func (a Alphabet) String() string {
	return string(a.symbols)
}

// symbol is ToChar for indices already known to be in range.
func (a Alphabet) symbol(index int) rune {
	return a.symbols[index]
}
