package search

import (
	"fmt"

	"github.com/jsdoublel/dbsearch/internal/derive"
)

// Checks that hold for every created node
func (s *Searcher) checkNode(n derive.Node, depth int) error {
	op := n.Op
	switch {
	case op.Start < 0 || op.End >= len(s.input) || op.Start > op.End:
		return fmt.Errorf("%w, %s node %s is outside of input range [0, %d]", ErrInvariant, n.Type, op, len(s.input)-1)
	case n.Depth != depth:
		return fmt.Errorf("%w, %s node %s has depth %d in pass %d", ErrInvariant, n.Type, op, n.Depth, depth)
	case !op.Prev.Valid() || !op.Cur.Valid():
		return fmt.Errorf("%w, %s node %s has symbols outside the alphabet", ErrInvariant, n.Type, op)
	}
	if prev, next := derive.Neighbors(op.Prev); op.Cur != prev && op.Cur != next {
		return fmt.Errorf("%w, %s node %s does not reduce to a neighbor of %s", ErrInvariant, n.Type, op, op.Prev)
	}
	return nil
}

// A dependency child widens its parent's range by exactly one position (two
// for the initial pairs found from the root) and re-merges its result
func (s *Searcher) checkExtension(parent derive.Operation, n derive.Node, depth int) error {
	if err := s.checkNode(n, depth); err != nil {
		return err
	}
	if !parent.Valid() {
		if n.Op.Span() != 2 || s.input[n.Op.Start] != n.Op.Prev || s.input[n.Op.End] != n.Op.Prev {
			return fmt.Errorf("%w, initial pair %s does not merge two equal input symbols", ErrInvariant, n.Op)
		}
		return nil
	}
	if !n.Op.Contains(parent) || n.Op.Span() != parent.Span()+1 || n.Op.Prev != parent.Cur {
		return fmt.Errorf("%w, %s does not extend parent %s", ErrInvariant, n.Op, parent)
	}
	return nil
}

// A combination covers exactly the union of two adjacent ranges
func (s *Searcher) checkCombination(a, b derive.Operation, n derive.Node, depth int) error {
	if err := s.checkNode(n, depth); err != nil {
		return err
	}
	if !derive.Combinable(a, b) || !n.Op.Contains(a) || !n.Op.Contains(b) ||
		n.Op.Span() != a.Span()+b.Span() || n.Op.Prev != a.Cur {
		return fmt.Errorf("%w, %s is not the combination of %s and %s", ErrInvariant, n.Op, a, b)
	}
	return nil
}
