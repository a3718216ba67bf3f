package flattree

// Prune returns a new tree that only keeps the leaves for which `keep`
// returns true. Subtrees without any kept leaf are dropped, and a node left
// with a single child is collapsed into that child, whose branch length
// grows by the length of the collapsed node. Depths and names are carried
// over unchanged. Only the subtree under t.Root is considered.
//
// The tree is processed in a single pass over increasing indices, which
// requires every child to have a lower index than its parent (trees built
// bottom-up, like the ones produced by the birthdeath package, always
// satisfy this). A violation, or any other bad index, results in an error
// wrapping ErrMalformed. If no leaf is kept, the error wraps ErrMalformed
// as well since there is no tree left.
//
// The receiver is not modified.
func (t *Tree) Prune(keep func(i int) bool) (*Tree, error) {
	if t.Root < 0 || t.Root >= len(t.Nodes) {
		return nil, malformed("root index %d out of bounds [0, %d)",
			t.Root, len(t.Nodes))
	}

	// Mark the subtree under the root. Nodes outside of it, including any
	// above the root, are not part of the result.
	reach := make([]bool, t.Root+1)
	reach[t.Root] = true
	for i := t.Root; i >= 0; i-- {
		n := &t.Nodes[i]
		if !reach[i] || n.IsLeaf() {
			continue
		}
		if (n.Left == None) != (n.Right == None) {
			return nil, malformed("node %d has exactly one child", i)
		}
		for _, c := range []int{n.Left, n.Right} {
			if c < 0 || c >= i {
				return nil, malformed("child %d of node %d is not a lower "+
					"index", c, i)
			}
			reach[c] = true
		}
	}

	pruned := New(t.Root + 1)
	rep := make([]int, t.Root+1)
	for i := range rep {
		rep[i] = None
		if !reach[i] {
			continue
		}
		n := &t.Nodes[i]
		if n.IsLeaf() {
			if keep(i) {
				rep[i] = pruned.Add(copyNode(n))
			}
			continue
		}

		left, right := rep[n.Left], rep[n.Right]
		switch {
		case left == None && right == None:
		case left == None:
			rep[i] = right
			pruned.Node(right).Length += n.Length
		case right == None:
			rep[i] = left
			pruned.Node(left).Length += n.Length
		default:
			parent := copyNode(n)
			parent.Left, parent.Right = left, right
			rep[i] = pruned.Add(parent)
			pruned.Node(left).Parent = rep[i]
			pruned.Node(right).Parent = rep[i]
		}
	}
	if rep[t.Root] == None {
		return nil, malformed("no leaf left after pruning")
	}
	pruned.Root = rep[t.Root]
	return pruned, nil
}

// copyNode returns a disconnected copy of n, keeping name, depth and length.
func copyNode(n *Node) Node {
	c := NewNode(n.Name)
	c.Length = n.Length
	c.depth, c.hasDepth = n.depth, n.hasDepth
	return c
}
