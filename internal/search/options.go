package search

import (
	"go.uber.org/zap"

	"github.com/jsdoublel/dbsearch/internal/derive"
)

// Predicate evaluated on every created operation
type Goal func(op derive.Operation) bool

// Matches an operation reducing the whole input of length n to sym
func FullReduction(n int, sym derive.Symbol) Goal {
	return func(op derive.Operation) bool {
		return op.Start == 0 && op.End == n-1 && op.Cur == sym
	}
}

type options struct {
	observers []Observer
	logger    *zap.Logger
	procs     int  // workers for the combination scan (<= 1 is sequential)
	maxDepth  int  // 0 is unbounded
	goal      Goal // nil runs to exhaustion
}

type Option func(*options)

func WithObserver(obs ...Observer) Option {
	return func(o *options) {
		o.observers = append(o.observers, obs...)
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Scans combination candidates with n workers. Output order does not depend
// on n.
func WithProcs(n int) Option {
	return func(o *options) {
		o.procs = n
	}
}

// Stops after depth passes even if the tree is still growing
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = depth
	}
}

// Stops after the first pass that creates an operation matching goal
func WithGoal(goal Goal) Option {
	return func(o *options) {
		o.goal = goal
	}
}
