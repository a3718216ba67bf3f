package flattree

import (
	"errors"
	"fmt"

	"github.com/SisyphusMountain/simulate-trees/newick"
)

// ErrMalformed is wrapped by every error caused by a tree whose indices do
// not describe a proper binary tree.
var ErrMalformed = errors.New("malformed tree")

func malformed(format string, v ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, v...))
}

// Newick converts the tree into a nested newick.Tree rooted at t.Root.
func (t *Tree) Newick() (*newick.Tree, error) {
	return Convert(t.Nodes, t.Root)
}

// Convert resolves the indices in `nodes`, starting at `root`, into a nested
// tree that owns its children. Every node of the result carries the name and
// the branch length of the corresponding arena node.
//
// The arena is never modified. An error wrapping ErrMalformed is returned if
// `root` or any child index is out of bounds, if a node has exactly one
// child, or if a node can be reached more than once (which covers cycles).
//
// The walk uses an explicit stack, so the height of the tree is not limited
// by the goroutine stack.
func Convert(nodes []Node, root int) (*newick.Tree, error) {
	if root < 0 || root >= len(nodes) {
		return nil, malformed("root index %d out of bounds [0, %d)",
			root, len(nodes))
	}

	type frame struct {
		index    int
		expanded bool
	}
	seen := make([]bool, len(nodes))
	stack := []frame{{index: root}}
	done := make([]newick.Tree, 0, 2)

	visit := func(i int) error {
		if i < 0 || i >= len(nodes) {
			return malformed("child index %d out of bounds [0, %d)",
				i, len(nodes))
		}
		if seen[i] {
			return malformed("node %d is reachable more than once", i)
		}
		seen[i] = true
		stack = append(stack, frame{index: i})
		return nil
	}
	seen[root] = true

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		n := &nodes[f.index]
		length := n.Length

		if (n.Left == None) != (n.Right == None) {
			return nil, malformed("node %d has exactly one child", f.index)
		}
		if n.IsLeaf() {
			stack = stack[:len(stack)-1]
			done = append(done, newick.Tree{Label: n.Name, Length: &length})
			continue
		}
		if !f.expanded {
			// Push right first so that the left subtree is finished first
			// and ends up below the right one on the 'done' stack.
			stack[len(stack)-1].expanded = true
			if err := visit(n.Right); err != nil {
				return nil, err
			}
			if err := visit(n.Left); err != nil {
				return nil, err
			}
			continue
		}

		stack = stack[:len(stack)-1]
		left, right := done[len(done)-2], done[len(done)-1]
		done = done[:len(done)-2]
		done = append(done, newick.Tree{
			Children: []newick.Tree{left, right},
			Label:    n.Name,
			Length:   &length,
		})
	}
	if len(done) != 1 {
		panic(fmt.Sprintf("BUG: %d subtrees left after conversion.", len(done)))
	}
	return &done[0], nil
}
