package flattree

import (
	"fmt"
)

// None marks an absent child, parent or root index.
const None = -1

// Node is a single entry in a Tree. Children and parent are referred to by
// their index in the same Tree.
type Node struct {
	// The label of this node. It is set when the node is created and never
	// changes afterwards.
	Name string

	// Indices of the two children, or None for a leaf. Either both are set
	// or neither is.
	Left, Right int

	// Index of the parent, or None. It is set exactly once, by Attach.
	Parent int

	// The branch length between this node and its parent.
	Length float64

	depth    float64
	hasDepth bool
}

// NewNode returns a disconnected node with the given name and no depth.
func NewNode(name string) Node {
	return Node{Name: name, Left: None, Right: None, Parent: None}
}

// IsLeaf reports whether the node has no children.
func (n *Node) IsLeaf() bool {
	return n.Left == None && n.Right == None
}

// Depth returns the depth of the node and whether it has been set.
func (n *Node) Depth() (float64, bool) {
	return n.depth, n.hasDepth
}

// MustDepth returns the depth of the node. It panics if the depth was never
// set, since every node built by this package's users is expected to carry
// one.
func (n *Node) MustDepth() float64 {
	if !n.hasDepth {
		panic(fmt.Sprintf("BUG: depth not set on node '%s'.", n.Name))
	}
	return n.depth
}

// SetDepth sets (or overwrites) the depth of the node.
func (n *Node) SetDepth(depth float64) {
	n.depth, n.hasDepth = depth, true
}

// Tree is an append-only store of nodes. Indices returned by Add stay valid
// for the lifetime of the tree.
type Tree struct {
	Nodes []Node

	// Index of the root, or None if it hasn't been determined yet.
	Root int
}

// New returns an empty tree with room for `capacity` nodes. Adding more
// nodes than that is fine; the capacity only avoids reallocation.
func New(capacity int) *Tree {
	if capacity < 0 {
		capacity = 0
	}
	return &Tree{
		Nodes: make([]Node, 0, capacity),
		Root:  None,
	}
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	return len(t.Nodes)
}

// Add appends a node and returns its index. The child and parent indices of
// `n` are not checked.
func (t *Tree) Add(n Node) int {
	t.Nodes = append(t.Nodes, n)
	return len(t.Nodes) - 1
}

// AddLeaf appends a leaf created at the given depth and returns its index.
func (t *Tree) AddLeaf(name string, depth float64) int {
	n := NewNode(name)
	n.SetDepth(depth)
	return t.Add(n)
}

// AddInternal appends a node with two children created at the given depth
// and returns its index. The children are not modified; see Attach.
func (t *Tree) AddInternal(name string, left, right int, depth float64) int {
	n := NewNode(name)
	n.Left, n.Right = left, right
	n.SetDepth(depth)
	return t.Add(n)
}

// Node returns the node at index i for reading or in-place mutation. The
// pointer is only valid until the next call to Add.
func (t *Tree) Node(i int) *Node {
	return &t.Nodes[i]
}

// Attach joins `child` to `parent` at time `now`: the parent index is
// recorded and the branch length of the child becomes `now` minus the depth
// it was created at.
//
// Attaching a node that already has a parent is a bug and panics.
func (t *Tree) Attach(child, parent int, now float64) {
	n := t.Node(child)
	if n.Parent != None {
		panic(fmt.Sprintf("BUG: node %d already attached to %d, cannot "+
			"attach it to %d.", child, n.Parent, parent))
	}
	n.Parent = parent
	n.Length = now - n.MustDepth()
}

// Seal fixes the branch length of the node at index i, which must be the
// last lineage left without a parent, to `now` minus its creation depth.
func (t *Tree) Seal(i int, now float64) {
	n := t.Node(i)
	if n.Parent != None {
		panic(fmt.Sprintf("BUG: cannot seal node %d, it is attached to %d.",
			i, n.Parent))
	}
	n.Length = now - n.MustDepth()
}
