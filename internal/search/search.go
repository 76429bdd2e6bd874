// Package implementing the level-synchronous derivation search. Each pass L
// first grows the existing branches along the input (dependency stage) and
// then merges adjacent leaves created in that pass (combination stage). The
// search ends at the first pass that creates nothing.
package search

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jsdoublel/dbsearch/internal/derive"
)

var ErrInvariant = errors.New("invariant violated")

// Number of nodes created in one pass
type Level struct {
	Depth       int
	Dependency  int
	Combination int
}

func (l Level) Total() int {
	return l.Dependency + l.Combination
}

type Result struct {
	Store    *derive.Store    // derivation tree
	Frontier *derive.Frontier // registry at the end of the search
	Depth    int              // last pass run
	Levels   []Level          // node counts for every pass run
	Found    bool             // a goal was given and matched
	Match    derive.NodeID    // first node matching the goal
}

type Searcher struct {
	input    derive.Sequence
	opts     options
	log      *zap.SugaredLogger
	store    *derive.Store
	frontier *derive.Frontier
	level    Level
	found    bool
	match    derive.NodeID
}

func New(input derive.Sequence, opts ...Option) *Searcher {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Searcher{input: input, opts: o, log: o.logger.Sugar()}
}

// Runs passes until the fixed point (or the goal / max depth when set). Each
// call starts from a fresh tree.
func (s *Searcher) Run(ctx context.Context) (*Result, error) {
	s.store, s.frontier = derive.NewStore(), derive.NewFrontier()
	s.found, s.match = false, derive.RootID
	s.log.Infof("searching %q (length %d)", s.input.String(), len(s.input))
	levels := make([]Level, 0)
	depth := 0
	for grew := true; grew; {
		if s.opts.maxDepth > 0 && depth == s.opts.maxDepth {
			s.log.Infof("max depth %d reached, stopping", s.opts.maxDepth)
			break
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("search stopped before pass %d: %w", depth+1, err)
		}
		depth++
		s.level = Level{Depth: depth}
		depGrew, err := s.dependencyStage(depth)
		if err != nil {
			return nil, err
		}
		combGrew, err := s.combinationStage(ctx, depth)
		if err != nil {
			return nil, err
		}
		grew = depGrew || combGrew
		levels = append(levels, s.level)
		s.log.Debugf("pass %d: %d dependency nodes, %d combination nodes, frontier size %d",
			depth, s.level.Dependency, s.level.Combination, s.frontier.Len())
		if s.found {
			s.log.Infof("goal matched at pass %d by node %d %s", depth, s.match, s.store.Node(s.match).Op)
			break
		}
	}
	s.log.Infof("search finished after %d passes with %d nodes", depth, s.store.Len())
	return &Result{
		Store:    s.store,
		Frontier: s.frontier,
		Depth:    depth,
		Levels:   levels,
		Found:    s.found,
		Match:    s.match,
	}, nil
}

// Allocates the two nodes a merge of sym over [start, end] can produce
func (s *Searcher) makePair(t derive.NodeType, start, end int, sym derive.Symbol, depth int) (derive.NodeID, derive.NodeID) {
	cur1, cur2 := derive.Neighbors(sym)
	c1 := s.store.MakeNode(t, derive.Operation{Start: start, End: end, Prev: sym, Cur: cur1}, depth)
	c2 := s.store.MakeNode(t, derive.Operation{Start: start, End: end, Prev: sym, Cur: cur2}, depth)
	s.created(c1)
	s.created(c2)
	return c1, c2
}

func (s *Searcher) created(id derive.NodeID) {
	n := s.store.Node(id)
	switch n.Type {
	case derive.Dependency:
		s.level.Dependency++
	case derive.Combination:
		s.level.Combination++
	}
	if !s.found && s.opts.goal != nil && s.opts.goal(n.Op) {
		s.found, s.match = true, id
	}
}

func (s *Searcher) report(id derive.NodeID) {
	if len(s.opts.observers) == 0 {
		return
	}
	n := s.store.Node(id)
	e := Event{ID: id, Type: n.Type, Op: n.Op, Depth: n.Depth, ChildCount: len(n.Children)}
	for _, obs := range s.opts.observers {
		obs.Observe(e)
	}
}
