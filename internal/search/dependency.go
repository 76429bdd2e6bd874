package search

import (
	"fmt"

	"github.com/jsdoublel/dbsearch/internal/derive"
)

type taskKind int

const (
	visitTask  taskKind = iota // walk towards nodes that can be extended
	expandTask                 // extend a node along the input
	pairTask                   // create the two children of one merge
	settleTask                 // register a fresh child that did not extend
	reportTask                 // report a node to the observers
)

// Merge of two equal symbols (or of a derived symbol and its equal neighbor)
// into the range [start, end]
type merge struct {
	start, end int
	sym        derive.Symbol
}

type task struct {
	kind  taskKind
	id    derive.NodeID
	merge merge // pairTask only
}

// Pass-depth frontier candidates: the root in the first pass and
// combinations from the previous pass. Dependency children created during
// the stage are expanded directly.
func extendable(n derive.Node, depth int) bool {
	return n.Type == derive.Combination && n.Depth+1 == depth
}

// Grows the tree along the input. Fresh children are extended depth first
// before their sibling, and a child that cannot extend is registered in the
// frontier. Returns whether any node was created.
func (s *Searcher) dependencyStage(depth int) (bool, error) {
	grew := false
	stack := []task{{kind: visitTask, id: s.store.Root()}}
	for len(stack) > 0 {
		t := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		switch t.kind {
		case visitTask:
			n := s.store.Node(t.id)
			if extendable(n, depth) {
				stack = append(stack, task{kind: expandTask, id: t.id})
				continue
			}
			for i := len(n.Children) - 1; i >= 0; i-- {
				stack = append(stack, task{kind: visitTask, id: n.Children[i]})
			}
		case expandTask:
			merges := s.merges(s.store.Node(t.id).Op)
			for i := len(merges) - 1; i >= 0; i-- {
				stack = append(stack, task{kind: pairTask, id: t.id, merge: merges[i]})
			}
		case pairTask:
			c1, c2, err := s.extend(t.id, t.merge, depth)
			if err != nil {
				return grew, err
			}
			grew = true
			stack = append(stack,
				task{kind: reportTask, id: c2},
				task{kind: settleTask, id: c2},
				task{kind: expandTask, id: c2},
				task{kind: settleTask, id: c1},
				task{kind: expandTask, id: c1},
			)
		case settleTask:
			if s.store.ChildCount(t.id) != 0 {
				continue
			}
			if err := s.frontier.Add(t.id); err != nil {
				return grew, fmt.Errorf("%w, %s", ErrInvariant, err)
			}
		case reportTask:
			s.report(t.id)
		default:
			panic(fmt.Sprintf("invalid task kind (%d)", t.kind))
		}
	}
	return grew, nil
}

// Merges available to a node with operation op, in creation order. The root
// merges every pair of equal adjacent input symbols left to right; any other
// node merges its result with an equal input symbol to the right, then to
// the left.
func (s *Searcher) merges(op derive.Operation) []merge {
	result := make([]merge, 0, 2)
	if !op.Valid() {
		for i := 0; i+1 < len(s.input); i++ {
			if s.input[i] == s.input[i+1] {
				result = append(result, merge{start: i, end: i + 1, sym: s.input[i]})
			}
		}
		return result
	}
	if op.End+1 < len(s.input) && s.input[op.End+1] == op.Cur {
		result = append(result, merge{start: op.Start, end: op.End + 1, sym: op.Cur})
	}
	if op.Start >= 1 && s.input[op.Start-1] == op.Cur {
		result = append(result, merge{start: op.Start - 1, end: op.End, sym: op.Cur})
	}
	return result
}

func (s *Searcher) extend(parent derive.NodeID, m merge, depth int) (derive.NodeID, derive.NodeID, error) {
	c1, c2 := s.makePair(derive.Dependency, m.start, m.end, m.sym, depth)
	parentOp := s.store.Node(parent).Op
	for _, c := range []derive.NodeID{c1, c2} {
		if err := s.checkExtension(parentOp, s.store.Node(c), depth); err != nil {
			return 0, 0, err
		}
	}
	s.report(c1)
	if err := s.store.AddChildren(parent, c1, c2); err != nil {
		return 0, 0, fmt.Errorf("%w, %s", ErrInvariant, err)
	}
	return c1, c2, nil
}
