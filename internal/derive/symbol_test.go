package derive

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNeighbors(t *testing.T) {
	testCases := []struct {
		c          Symbol
		prev, next Symbol
	}{
		{c: 'a', prev: 'e', next: 'b'},
		{c: 'b', prev: 'a', next: 'c'},
		{c: 'c', prev: 'b', next: 'd'},
		{c: 'd', prev: 'c', next: 'e'},
		{c: 'e', prev: 'd', next: 'a'},
	}
	for _, test := range testCases {
		t.Run(test.c.String(), func(t *testing.T) {
			prev, next := Neighbors(test.c)
			assert.Equal(t, test.prev, prev)
			assert.Equal(t, test.next, next)
			assert.NotEqual(t, test.c, prev)
			assert.NotEqual(t, test.c, next)
		})
	}
}

// successor and predecessor are rotations of order len(Alphabet)
func TestNeighborsCycle(t *testing.T) {
	for i := range len(Alphabet) {
		start := Symbol(Alphabet[i])
		seenNext := map[Symbol]bool{}
		seenPrev := map[Symbol]bool{}
		next, prev := start, start
		for range len(Alphabet) {
			seenNext[next], seenPrev[prev] = true, true
			_, next = Neighbors(next)
			prev, _ = Neighbors(prev)
		}
		assert.Equal(t, start, next, "successor should cycle back to %s", start)
		assert.Equal(t, start, prev, "predecessor should cycle back to %s", start)
		assert.Len(t, seenNext, len(Alphabet))
		assert.Len(t, seenPrev, len(Alphabet))
	}
}

func TestNeighborsPanics(t *testing.T) {
	assert.Panics(t, func() { Neighbors('z') })
	assert.Panics(t, func() { Neighbors(0) })
}

func TestParseSequence(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectedErr error
	}{
		{name: "basic", input: "aaccadd", expectedErr: nil},
		{name: "empty", input: "", expectedErr: nil},
		{name: "whole alphabet", input: Alphabet, expectedErr: nil},
		{name: "out of alphabet", input: "aaf", expectedErr: ErrInvalidSymbol},
		{name: "upper case", input: "aA", expectedErr: ErrInvalidSymbol},
		{name: "nul byte", input: "a\x00", expectedErr: ErrInvalidSymbol},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			seq, err := ParseSequence(test.input)
			if !errors.Is(err, test.expectedErr) {
				t.Fatalf("got error %v, expected %v", err, test.expectedErr)
			}
			if test.expectedErr == nil {
				require.Len(t, seq, len(test.input))
				assert.Equal(t, test.input, seq.String())
			}
		})
	}
}
