package derive

import (
	"fmt"

	"github.com/evolbioinfo/gotree/tree"
)

const rootLabel = "root"

// Converts the derivation tree into a gotree tree. Nodes are labelled
// <type initial><depth>_<start>-<end>_<prev><cur>, e.g. D1_0-1_ae.
func (s *Store) Tree() *tree.Tree {
	tre := tree.NewTree()
	tNodes := make([]*tree.Node, s.Len())
	s.PreOrder(func(id NodeID, n Node) (keep bool) {
		cur := tre.NewNode()
		cur.SetName(s.Label(id))
		tNodes[id] = cur
		if id == RootID {
			tre.SetRoot(cur)
		} else {
			tre.ConnectNodes(tNodes[s.parents[id]], cur)
		}
		return true
	})
	return tre
}

// Derivation tree in newick format
func (s *Store) Newick() string {
	return s.Tree().Newick()
}

func (s *Store) Label(id NodeID) string {
	if id == RootID {
		return rootLabel
	}
	n := s.nodes[id]
	return fmt.Sprintf("%c%d_%d-%d_%s%s", n.Type.String()[0], n.Depth, n.Op.Start, n.Op.End, n.Op.Prev, n.Op.Cur)
}
