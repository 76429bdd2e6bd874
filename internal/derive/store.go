package derive

import (
	"errors"
	"fmt"
)

var ErrAlreadyAttached = errors.New("node already attached")

type NodeType int

const (
	Dependency NodeType = iota
	Combination
)

func (t NodeType) String() string {
	switch t {
	case Dependency:
		return "Dependency"
	case Combination:
		return "Combination"
	default:
		panic(fmt.Sprintf("invalid node type (%d)", int(t)))
	}
}

type NodeID int

const (
	RootID   NodeID = 0
	noParent NodeID = -1
)

// Node of the derivation tree. Children are owned exclusively: every node
// has at most one tree parent.
type Node struct {
	Type     NodeType  // how the node was produced
	Op       Operation // merge recorded by the node
	Depth    int       // pass that created the node (root is 0)
	Children []NodeID  // ordered child list (do not modify)
}

// Append-only arena holding every node of one search. Node ids are indices
// into the arena and stay valid for the life of the store.
type Store struct {
	nodes   []Node
	parents []NodeID
}

// Makes a store containing only the synthetic root
func NewStore() *Store {
	s := &Store{}
	s.MakeNode(Combination, Invalid, 0)
	return s
}

// Allocates a detached node. No validation is done; callers guarantee the
// range and depth are well formed.
func (s *Store) MakeNode(t NodeType, op Operation, depth int) NodeID {
	s.nodes = append(s.nodes, Node{Type: t, Op: op, Depth: depth})
	s.parents = append(s.parents, noParent)
	return NodeID(len(s.nodes) - 1)
}

// Attaches children to parent in order
func (s *Store) AddChildren(parent NodeID, children ...NodeID) error {
	if !s.valid(parent) {
		return fmt.Errorf("parent id %d is out of range", parent)
	}
	for _, c := range children {
		switch {
		case !s.valid(c):
			return fmt.Errorf("child id %d is out of range", c)
		case c == RootID || s.parents[c] != noParent:
			return fmt.Errorf("%w, node %d cannot be given parent %d", ErrAlreadyAttached, c, parent)
		case c == parent:
			return fmt.Errorf("node %d cannot be its own child", c)
		}
	}
	for _, c := range children {
		s.parents[c] = parent
	}
	s.nodes[parent].Children = append(s.nodes[parent].Children, children...)
	return nil
}

func (s *Store) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(s.nodes)
}

func (s *Store) Node(id NodeID) Node {
	return s.nodes[id]
}

func (s *Store) ChildCount(id NodeID) int {
	return len(s.nodes[id].Children)
}

// Returns the tree parent of id; ok is false for the root and detached nodes
func (s *Store) Parent(id NodeID) (parent NodeID, ok bool) {
	p := s.parents[id]
	return p, p != noParent
}

func (s *Store) Root() NodeID {
	return RootID
}

// Number of nodes, root included
func (s *Store) Len() int {
	return len(s.nodes)
}

// Visits nodes reachable from the root in pre-order. Returning false from f
// skips the subtree below the current node.
func (s *Store) PreOrder(f func(id NodeID, n Node) (keep bool)) {
	stack := []NodeID{RootID}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := s.nodes[id]
		if !f(id, n) {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}
