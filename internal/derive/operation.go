package derive

import "fmt"

// Provenance of one merge: [Start, End] are indices into the searched input
// that were reduced to Cur; Prev is the symbol the range held before.
type Operation struct {
	Start int
	End   int
	Prev  Symbol
	Cur   Symbol
}

// Operation of the synthetic root
var Invalid = Operation{Start: -1, End: -1}

func (op Operation) Valid() bool {
	return op != Invalid
}

// Number of input positions covered by the operation
func (op Operation) Span() int {
	return op.End - op.Start + 1
}

// op's range contains o's range
func (op Operation) Contains(o Operation) bool {
	return op.Start <= o.Start && o.End <= op.End
}

func (op Operation) String() string {
	return fmt.Sprintf("(%d, %d, %s, %s)", op.Start, op.End, op.Prev, op.Cur)
}

// Two operations can be combined if they reduce to the same symbol and their
// ranges touch without overlapping or leaving a gap
func Combinable(a, b Operation) bool {
	return a.Cur == b.Cur && (a.End+1 == b.Start || b.End+1 == a.Start)
}

// Smallest range covering both operations
func Union(a, b Operation) (start, end int) {
	return min(a.Start, b.Start), max(a.End, b.End)
}
