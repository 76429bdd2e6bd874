package search

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jsdoublel/dbsearch/internal/derive"
)

// Frontier entry i is a dependency node created by this pass's dependency
// stage
func (s *Searcher) combinationCandidate(i, depth int) bool {
	n := s.store.Node(s.frontier.At(i))
	return n.Type == derive.Dependency && n.Depth == depth
}

// Earlier frontier entries that can be combined with entry i
func (s *Searcher) combinableWith(i int) []int {
	op := s.store.Node(s.frontier.At(i)).Op
	var result []int
	for j := range i {
		that := s.store.Node(s.frontier.At(j))
		if that.Type == derive.Dependency && derive.Combinable(op, that.Op) {
			result = append(result, j)
		}
	}
	return result
}

// Merges frontier leaves created in this pass with earlier adjacent leaves
// reducing to the same symbol. Both new nodes are children of the later
// frontier entry only. Returns whether any node was created.
func (s *Searcher) combinationStage(ctx context.Context, depth int) (bool, error) {
	n := s.frontier.Len()
	if n < 2 {
		s.log.Debugf("pass %d: %d frontier node(s), nothing to combine", depth, n)
		return false, nil
	}
	matches, err := s.findCombinable(ctx, n, depth)
	if err != nil {
		return false, err
	}
	grew := false
	for i := n - 1; i >= 1; i-- {
		for _, j := range matches[i] {
			if err := s.combine(s.frontier.At(i), s.frontier.At(j), depth); err != nil {
				return grew, err
			}
			grew = true
		}
	}
	return grew, nil
}

// Finds the combinable pairs among the first n frontier entries
// (matches[i] = j's). Nodes created from the matches never change the
// result for other entries, so the scan can run before any of them exist.
func (s *Searcher) findCombinable(ctx context.Context, n, depth int) ([][]int, error) {
	matches := make([][]int, n)
	if s.opts.procs <= 1 {
		for i := n - 1; i >= 1; i-- {
			if s.combinationCandidate(i, depth) {
				matches[i] = s.combinableWith(i)
			}
		}
		return matches, nil
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.procs)
	for i := n - 1; i >= 1; i-- {
		if !s.combinationCandidate(i, depth) {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			matches[i] = s.combinableWith(i)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("combination scan at pass %d: %w", depth, err)
	}
	return matches, nil
}

func (s *Searcher) combine(id, thatID derive.NodeID, depth int) error {
	node, that := s.store.Node(id), s.store.Node(thatID)
	start, end := derive.Union(node.Op, that.Op)
	c1, c2 := s.makePair(derive.Combination, start, end, node.Op.Cur, depth)
	for _, c := range []derive.NodeID{c1, c2} {
		if err := s.checkCombination(node.Op, that.Op, s.store.Node(c), depth); err != nil {
			return err
		}
	}
	s.report(c1)
	s.report(c2)
	for _, c := range []derive.NodeID{c1, c2} {
		if err := s.frontier.Add(c); err != nil {
			return fmt.Errorf("%w, %s", ErrInvariant, err)
		}
	}
	if err := s.store.AddChildren(id, c1, c2); err != nil {
		return fmt.Errorf("%w, %s", ErrInvariant, err)
	}
	return nil
}
