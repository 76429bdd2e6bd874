package derive

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCombinable(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     Operation
		expected bool
	}{
		{
			name:     "adjacent right",
			a:        Operation{Start: 0, End: 1, Prev: 'a', Cur: 'b'},
			b:        Operation{Start: 2, End: 3, Prev: 'c', Cur: 'b'},
			expected: true,
		},
		{
			name:     "adjacent left",
			a:        Operation{Start: 4, End: 6, Prev: 'a', Cur: 'e'},
			b:        Operation{Start: 1, End: 3, Prev: 'a', Cur: 'e'},
			expected: true,
		},
		{
			name:     "different symbols",
			a:        Operation{Start: 0, End: 1, Prev: 'a', Cur: 'b'},
			b:        Operation{Start: 2, End: 3, Prev: 'c', Cur: 'd'},
			expected: false,
		},
		{
			name:     "identical ranges",
			a:        Operation{Start: 0, End: 1, Prev: 'a', Cur: 'b'},
			b:        Operation{Start: 0, End: 1, Prev: 'a', Cur: 'b'},
			expected: false,
		},
		{
			name:     "overlap",
			a:        Operation{Start: 0, End: 1, Prev: 'a', Cur: 'b'},
			b:        Operation{Start: 1, End: 2, Prev: 'a', Cur: 'b'},
			expected: false,
		},
		{
			name:     "gap",
			a:        Operation{Start: 0, End: 1, Prev: 'a', Cur: 'b'},
			b:        Operation{Start: 3, End: 4, Prev: 'a', Cur: 'b'},
			expected: false,
		},
		{
			name:     "nested",
			a:        Operation{Start: 0, End: 4, Prev: 'a', Cur: 'b'},
			b:        Operation{Start: 1, End: 2, Prev: 'a', Cur: 'b'},
			expected: false,
		},
	}
	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, Combinable(test.a, test.b))
			assert.Equal(t, test.expected, Combinable(test.b, test.a), "combinable is not symmetric")
		})
	}
}

func TestCombinableSymmetric(t *testing.T) {
	ops := make([]Operation, 0)
	for start := range 4 {
		for end := start; end < 4; end++ {
			for i := range 2 {
				ops = append(ops, Operation{Start: start, End: end, Prev: 'a', Cur: Symbol(Alphabet[i])})
			}
		}
	}
	for _, a := range ops {
		for _, b := range ops {
			if Combinable(a, b) != Combinable(b, a) {
				t.Errorf("Combinable(%s, %s) != Combinable(%s, %s)", a, b, b, a)
			}
		}
	}
}

func TestUnion(t *testing.T) {
	a := Operation{Start: 4, End: 6, Cur: 'e'}
	b := Operation{Start: 1, End: 3, Cur: 'e'}
	start, end := Union(a, b)
	assert.Equal(t, 1, start)
	assert.Equal(t, 6, end)
	merged := Operation{Start: start, End: end}
	assert.True(t, merged.Contains(a))
	assert.True(t, merged.Contains(b))
	assert.Equal(t, a.Span()+b.Span(), merged.Span())
}

func TestInvalid(t *testing.T) {
	assert.False(t, Invalid.Valid())
	assert.True(t, Operation{Start: 0, End: 1, Prev: 'a', Cur: 'b'}.Valid())
	assert.Equal(t, "(0, 1, a, e)", Operation{Start: 0, End: 1, Prev: 'a', Cur: 'e'}.String())
}
