package session

import (
	"context"
	"strings"

	"github.com/roach88/enigma/internal/cipher"
)

// Keystroke is one converted symbol and the rotor positions it left behind.
type Keystroke struct {
	Index     int    `json:"index"`
	Input     string `json:"input"`
	Output    string `json:"output"`
	Positions string `json:"positions"`
}

// TraceMessage converts msg one symbol at a time, recording each keystroke.
// It steps the machine exactly like ConvertString. On an unknown symbol the
// keystrokes converted so far are returned with the error.
func TraceMessage(m *cipher.Machine, msg string) ([]Keystroke, error) {
	if len(m.Slots()) == 0 {
		return nil, &cipher.Error{Code: cipher.ErrCodeConfig, Message: "no rotors inserted"}
	}
	alphabet := m.Alphabet()
	keys := make([]Keystroke, 0, len(msg))
	for i, r := range []rune(msg) {
		in, err := alphabet.ToInt(r)
		if err != nil {
			return keys, err
		}
		out, err := alphabet.ToChar(m.Convert(in))
		if err != nil {
			return keys, err
		}
		keys = append(keys, Keystroke{Index: i, Input: string(r), Output: string(out), Positions: m.Positions()})
	}
	return keys, nil
}

// KeystrokeOutput joins the output symbols of keys.
func KeystrokeOutput(keys []Keystroke) string {
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k.Output)
	}
	return b.String()
}

type teeObserver []Observer

// Tee returns an Observer that forwards every event to each of obs in
// order, stopping at the first error. Nil observers are skipped.
func Tee(obs ...Observer) Observer {
	var t teeObserver
	for _, o := range obs {
		if o != nil {
			t = append(t, o)
		}
	}
	return t
}

func (t teeObserver) OnSetup(ctx context.Context, ev SetupEvent) error {
	for _, o := range t {
		if err := o.OnSetup(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}

func (t teeObserver) OnMessage(ctx context.Context, ev MessageEvent) error {
	for _, o := range t {
		if err := o.OnMessage(ctx, ev); err != nil {
			return err
		}
	}
	return nil
}
