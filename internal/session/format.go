package session

import "strings"

// DefaultGroupSize is the width of output groups.
const DefaultGroupSize = 5

// FormatGroups splits msg into space separated groups of width symbols.
// The last group may be shorter. A width <= 0 returns msg unchanged.
func FormatGroups(msg string, width int) string {
	symbols := []rune(msg)
	if width <= 0 || len(symbols) <= width {
		return msg
	}

	var b strings.Builder
	b.Grow(len(msg) + len(msg)/width)
	for i := 0; i < len(symbols); i += width {
		if i > 0 {
			b.WriteByte(' ')
		}
		end := i + width
		if end > len(symbols) {
			end = len(symbols)
		}
		b.WriteString(string(symbols[i:end]))
	}
	return b.String()
}

// StripSpace removes every whitespace character from s.
func StripSpace(s string) string {
	return strings.Join(strings.Fields(s), "")
}
