package newick

import (
	"bytes"
	"fmt"
	"strings"
)

// Tree corresponds to any value representable in a Newick format. Each
// tree value corresponds to a single node.
type Tree struct {
	// All children of this node, which may be empty.
	Children []Tree

	// The label of this node. If it's empty, then this node does
	// not have a name.
	Label string

	// The branch length of this node corresponding to the distance between
	// it and its parent node. If it's `nil`, then no distance exists.
	Length *float64
}

// Len returns the number of nodes in the tree, including the root.
func (tree *Tree) Len() int {
	count := 0
	tree.walk(func(*Tree, int) { count++ })
	return count
}

// Leaves returns every leaf of the tree in left to right order.
func (tree *Tree) Leaves() []*Tree {
	var leaves []*Tree
	tree.walk(func(t *Tree, _ int) {
		if len(t.Children) == 0 {
			leaves = append(leaves, t)
		}
	})
	return leaves
}

// walk calls f on every node in pre-order, along with its depth in edges
// from the root. It uses an explicit stack.
func (tree *Tree) walk(f func(t *Tree, depth int)) {
	type frame struct {
		t     *Tree
		depth int
	}
	stack := []frame{{tree, 0}}
	for len(stack) > 0 {
		fr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		f(fr.t, fr.depth)
		for i := len(fr.t.Children) - 1; i >= 0; i-- {
			stack = append(stack, frame{&fr.t.Children[i], fr.depth + 1})
		}
	}
}

// String converts a tree to a string, with whitespace indenting to indicate
// depth. Use Newick for the Newick representation.
func (tree *Tree) String() string {
	buf := new(bytes.Buffer)
	tree.walk(func(t *Tree, depth int) {
		name, length := t.Label, ""
		if len(name) == 0 {
			name = "N/A"
		}
		if t.Length != nil {
			length = fmt.Sprintf(" (%f)", *t.Length)
		}
		fmt.Fprintf(buf, "%s%s%s\n", strings.Repeat("  ", depth), name, length)
	})
	return buf.String()
}
