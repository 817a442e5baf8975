package config

import (
	"bufio"
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// token is one whitespace-delimited word of classic configuration text.
type token struct {
	text   string
	line   int
	column int
}

// tokenize splits data into words, recording 1-based line and column.
func tokenize(data []byte) ([]token, error) {
	var tokens []token
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		start := -1
		for i, r := range text {
			if unicode.IsSpace(r) {
				if start >= 0 {
					tokens = append(tokens, token{text: text[start:i], line: line, column: startCol(text, start)})
					start = -1
				}
				continue
			}
			if start < 0 {
				start = i
			}
		}
		if start >= 0 {
			tokens = append(tokens, token{text: text[start:], line: line, column: startCol(text, start)})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read configuration: %w", err)
	}
	return tokens, nil
}

// startCol converts a byte offset into a 1-based rune column.
func startCol(text string, offset int) int {
	return len([]rune(text[:offset])) + 1
}

// classicParser walks the token stream of a classic description.
type classicParser struct {
	file   string
	tokens []token
	pos    int
}

// parseClassic decodes the classic whitespace grammar:
//
//	alphabet slots pawls { name type cycle* }
func parseClassic(file string, data []byte) (*MachineSpec, error) {
	tokens, err := tokenize(data)
	if err != nil {
		return nil, err
	}
	p := &classicParser{file: file, tokens: tokens}

	alphabet, err := p.next("alphabet")
	if err != nil {
		return nil, err
	}
	slots, err := p.nextInt("rotor slot count")
	if err != nil {
		return nil, err
	}
	pawls, err := p.nextInt("pawl count")
	if err != nil {
		return nil, err
	}

	spec := &MachineSpec{Alphabet: alphabet.text, Slots: slots, Pawls: pawls}
	for !p.done() {
		r, err := p.rotor()
		if err != nil {
			return nil, err
		}
		spec.Rotors = append(spec.Rotors, r)
	}
	return spec, nil
}

func (p *classicParser) done() bool {
	return p.pos >= len(p.tokens)
}

func (p *classicParser) errorf(tok token, format string, args ...any) *ParseError {
	return &ParseError{File: p.file, Line: tok.line, Column: tok.column, Message: fmt.Sprintf(format, args...)}
}

func (p *classicParser) truncated(what string) *ParseError {
	e := &ParseError{File: p.file, Message: "configuration truncated: missing " + what}
	if n := len(p.tokens); n > 0 {
		last := p.tokens[n-1]
		e.Line, e.Column = last.line, last.column+len([]rune(last.text))
	}
	return e
}

func (p *classicParser) next(what string) (token, error) {
	if p.done() {
		return token{}, p.truncated(what)
	}
	tok := p.tokens[p.pos]
	p.pos++
	return tok, nil
}

func (p *classicParser) nextInt(what string) (int, error) {
	tok, err := p.next(what)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(tok.text)
	if err != nil {
		return 0, p.errorf(tok, "%s must be an integer, got %q", what, tok.text)
	}
	return n, nil
}

// rotor reads: name type (cycle)*
func (p *classicParser) rotor() (RotorSpec, error) {
	name, err := p.next("rotor name")
	if err != nil {
		return RotorSpec{}, err
	}
	if strings.HasPrefix(name.text, "(") {
		return RotorSpec{}, p.errorf(name, "expected rotor name, got cycle %q", name.text)
	}
	kindTok, err := p.next("type of rotor " + name.text)
	if err != nil {
		return RotorSpec{}, err
	}

	r := RotorSpec{Name: name.text}
	switch kind, rest := kindTok.text[0], kindTok.text[1:]; {
	case kind == 'M':
		r.Kind, r.Notches = "moving", rest
	case kind == 'N' && rest == "":
		r.Kind = "fixed"
	case kind == 'R' && rest == "":
		r.Kind = "reflector"
	default:
		return RotorSpec{}, p.errorf(kindTok, "invalid type %q for rotor %s: want M<notches>, N or R", kindTok.text, name.text)
	}

	var cycles []string
	for !p.done() && strings.HasPrefix(p.tokens[p.pos].text, "(") {
		cycles = append(cycles, p.tokens[p.pos].text)
		p.pos++
	}
	r.Cycles = strings.Join(cycles, " ")
	return r, nil
}
