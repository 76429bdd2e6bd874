package derive

import (
	"fmt"

	"github.com/bits-and-blooms/bitset"
)

// Flat insertion-ordered registry of nodes that can be compared pairwise
// without walking the tree. It refers to nodes by id and owns none of them.
type Frontier struct {
	ids     []NodeID
	members *bitset.BitSet
}

func NewFrontier() *Frontier {
	return &Frontier{ids: make([]NodeID, 0), members: bitset.New(0)}
}

// Registers id; a node can only be registered once and the root never
func (f *Frontier) Add(id NodeID) error {
	if id == RootID {
		return fmt.Errorf("root cannot be added to the frontier")
	}
	if id < 0 {
		return fmt.Errorf("invalid node id %d", id)
	}
	if f.members.Test(uint(id)) {
		return fmt.Errorf("node %d is already in the frontier", id)
	}
	f.members.Set(uint(id))
	f.ids = append(f.ids, id)
	return nil
}

func (f *Frontier) At(i int) NodeID {
	return f.ids[i]
}

func (f *Frontier) Len() int {
	return len(f.ids)
}

func (f *Frontier) Contains(id NodeID) bool {
	return id >= 0 && f.members.Test(uint(id))
}

// Copy of the registered ids in insertion order
func (f *Frontier) IDs() []NodeID {
	ids := make([]NodeID, len(f.ids))
	copy(ids, f.ids)
	return ids
}
