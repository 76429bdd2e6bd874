// Package computing per-depth statistics of a finished search and exporting
// search metrics to prometheus
package stats

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/jsdoublel/dbsearch/internal/derive"
	"github.com/jsdoublel/dbsearch/internal/search"
)

// Summary of the nodes created at one depth
type LevelStats struct {
	Depth       int
	Dependency  int  // dependency nodes created
	Combination int  // combination nodes created
	Frontier    int  // nodes of this depth in the frontier registry
	Covered     uint // input positions covered by at least one node
	MaxSpan     int  // widest range reduced by a node
}

// Statistics for every pass of res (depths 1 to res.Depth). n is the input
// length.
func Levels(res *search.Result, n int) []LevelStats {
	levels := make([]LevelStats, res.Depth)
	covered := make([]*bitset.BitSet, res.Depth)
	for i := range levels {
		levels[i].Depth = i + 1
		covered[i] = bitset.New(uint(n))
	}
	s := res.Store
	for id := derive.NodeID(1); int(id) < s.Len(); id++ {
		node := s.Node(id)
		if node.Depth < 1 || node.Depth > res.Depth {
			continue
		}
		l := &levels[node.Depth-1]
		switch node.Type {
		case derive.Dependency:
			l.Dependency++
		case derive.Combination:
			l.Combination++
		}
		l.MaxSpan = max(l.MaxSpan, node.Op.Span())
		for i := node.Op.Start; i <= node.Op.End; i++ {
			covered[node.Depth-1].Set(uint(i))
		}
		if res.Frontier.Contains(id) {
			l.Frontier++
		}
	}
	for i := range levels {
		levels[i].Covered = covered[i].Count()
	}
	return levels
}

func (l LevelStats) Total() int {
	return l.Dependency + l.Combination
}
