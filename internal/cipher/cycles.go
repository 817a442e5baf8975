package cipher

import "unicode"

// cycleToken is one parenthesized group of cycle notation.
type cycleToken struct {
	symbols []rune
	offsets []int // byte offset of each symbol in the source text
}

// tokenizeCycles splits cycle notation into parenthesized groups.
//
// Grammar:
//
//	cycles := ws* (cycle ws*)*
//	cycle  := '(' symbol+ ')'
//
// Adjacent groups such as "(AB)(CD)" need no separating whitespace.
// Membership is not checked here; see NewPermutation.
func tokenizeCycles(text string) ([]cycleToken, error) {
	var (
		tokens []cycleToken
		cur    cycleToken
		open   bool
		start  int
	)

	for off, r := range text {
		switch {
		case r == '(':
			if open {
				return nil, permutationError(off, "nested '('")
			}
			open = true
			start = off
			cur = cycleToken{}
		case r == ')':
			if !open {
				return nil, permutationError(off, "unmatched ')'")
			}
			if len(cur.symbols) == 0 {
				return nil, permutationError(start, "empty cycle")
			}
			tokens = append(tokens, cur)
			open = false
		case unicode.IsSpace(r):
			if open {
				return nil, permutationError(off, "whitespace inside cycle")
			}
		default:
			if !open {
				return nil, permutationError(off, "symbol %q outside a cycle", r)
			}
			cur.symbols = append(cur.symbols, r)
			cur.offsets = append(cur.offsets, off)
		}
	}

	if open {
		return nil, permutationError(start, "unterminated cycle")
	}
	return tokens, nil
}
