package cipher

import "strings"

// Permutation is a bijection over the indices of an Alphabet, described by
// disjoint cycles. Symbols not mentioned in any cycle are fixed points.
//
// Forward and inverse tables are computed once at construction, so Permute
// and Invert are constant time and exact inverses of each other.
type Permutation struct {
	alphabet Alphabet
	cycles   [][]int
	forward  []int
	inverse  []int
}

// NewPermutation parses cycle notation such as "(AELT) (BKNW) (S)" over
// alphabet. Whitespace between cycles is ignored.
//
// Fails with a PERMUTATION error for malformed text, a symbol outside the
// alphabet, or a symbol that appears more than once.
func NewPermutation(cycles string, alphabet Alphabet) (*Permutation, error) {
	tokens, err := tokenizeCycles(cycles)
	if err != nil {
		return nil, err
	}

	p := newIdentity(alphabet)
	seen := make([]bool, alphabet.Size())

	for _, tok := range tokens {
		group := make([]int, len(tok.symbols))
		for i, r := range tok.symbols {
			idx, ok := alphabet.index[r]
			if !ok {
				e := permutationError(tok.offsets[i], "symbol %q is not in the alphabet", r)
				e.Symbol = r
				return nil, e
			}
			if seen[idx] {
				e := permutationError(tok.offsets[i], "symbol %q appears in more than one position", r)
				e.Symbol = r
				return nil, e
			}
			seen[idx] = true
			group[i] = idx
		}
		p.cycles = append(p.cycles, group)
	}

	for _, group := range p.cycles {
		for i, from := range group {
			to := group[(i+1)%len(group)]
			p.forward[from] = to
			p.inverse[to] = from
		}
	}

	return p, nil
}

// IdentityPermutation returns the permutation that maps every index to itself.
func IdentityPermutation(alphabet Alphabet) *Permutation {
	return newIdentity(alphabet)
}

func newIdentity(alphabet Alphabet) *Permutation {
	n := alphabet.Size()
	p := &Permutation{
		alphabet: alphabet,
		forward:  make([]int, n),
		inverse:  make([]int, n),
	}
	for i := 0; i < n; i++ {
		p.forward[i] = i
		p.inverse[i] = i
	}
	return p
}

// Size returns the size of the alphabet being permuted.
func (p *Permutation) Size() int {
	return p.alphabet.Size()
}

// Alphabet returns the alphabet this permutation is defined over.
func (p *Permutation) Alphabet() Alphabet {
	return p.alphabet
}

// Wrap reduces x into [0, Size()) using floored modulo, so -1 wraps to Size()-1.
func (p *Permutation) Wrap(x int) int {
	return wrap(x, p.Size())
}

func wrap(x, n int) int {
	r := x % n
	if r < 0 {
		r += n
	}
	return r
}

// Permute returns the successor of Wrap(x) in its cycle.
func (p *Permutation) Permute(x int) int {
	return p.forward[p.Wrap(x)]
}

// Invert returns the predecessor of Wrap(x) in its cycle.
func (p *Permutation) Invert(x int) int {
	return p.inverse[p.Wrap(x)]
}

// PermuteRune applies Permute to a symbol.
func (p *Permutation) PermuteRune(r rune) (rune, error) {
	i, err := p.alphabet.ToInt(r)
	if err != nil {
		return 0, err
	}
	return p.alphabet.symbol(p.forward[i]), nil
}

// InvertRune applies Invert to a symbol.
func (p *Permutation) InvertRune(r rune) (rune, error) {
	i, err := p.alphabet.ToInt(r)
	if err != nil {
		return 0, err
	}
	return p.alphabet.symbol(p.inverse[i]), nil
}

// Derangement reports whether no index maps to itself.
func (p *Permutation) Derangement() bool {
	for i, to := range p.forward {
		if i == to {
			return false
		}
	}
	return true
}

// String renders the permutation in cycle notation. Singleton cycles are
// omitted since they are fixed points either way.
func (p *Permutation) String() string {
	var parts []string
	for _, c := range p.cycles {
		if len(c) < 2 {
			continue
		}
		var b strings.Builder
		b.WriteByte('(')
		for _, idx := range c {
			b.WriteRune(p.alphabet.symbol(idx))
		}
		b.WriteByte(')')
		parts = append(parts, b.String())
	}
	return strings.Join(parts, " ")
}
