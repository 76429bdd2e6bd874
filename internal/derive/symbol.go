// Package containing the data model of the derivation search: symbols of the
// cyclic alphabet, merge operations, the node arena and the frontier registry
package derive

import (
	"errors"
	"fmt"
	"strings"
)

// Fixed cyclic alphabet; a symbol's position is its index in this string
const Alphabet = "abcde"

var ErrInvalidSymbol = errors.New("invalid symbol")

type Symbol byte

// Position of the symbol in the alphabet (-1 if it is not part of it)
func (c Symbol) Pos() int {
	return strings.IndexByte(Alphabet, byte(c))
}

func (c Symbol) Valid() bool {
	return c != 0 && c.Pos() >= 0
}

func (c Symbol) String() string {
	if c == 0 {
		return "\\0"
	}
	return string(rune(c))
}

// Returns (predecessor, successor) of c in the cyclic alphabet. These are the
// only two symbols two merged copies of c can turn into.
func Neighbors(c Symbol) (Symbol, Symbol) {
	pos := c.Pos()
	if pos < 0 {
		panic(fmt.Sprintf("symbol %q is not in the alphabet", byte(c)))
	}
	n := len(Alphabet)
	return Symbol(Alphabet[(pos-1+n)%n]), Symbol(Alphabet[(pos+1)%n])
}

type Sequence []Symbol

// Parses and validates a sequence over the alphabet
func ParseSequence(s string) (Sequence, error) {
	seq := make(Sequence, len(s))
	for i := range len(s) {
		c := Symbol(s[i])
		if !c.Valid() {
			return nil, fmt.Errorf("%w %q at position %d, expected one of %q", ErrInvalidSymbol, s[i], i, Alphabet)
		}
		seq[i] = c
	}
	return seq, nil
}

func (seq Sequence) String() string {
	var b strings.Builder
	b.Grow(len(seq))
	for _, c := range seq {
		b.WriteByte(byte(c))
	}
	return b.String()
}
