package flattree

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	nt, err := cherry().Newick()
	require.NoError(t, err)

	assert.Equal(t, "((0:0.5,1:0.5)3:0.75,2:1.25)4:0.75", nt.Newick())
	require.Len(t, nt.Children, 2)
	assert.Equal(t, "3", nt.Children[0].Label)
	assert.Equal(t, "2", nt.Children[1].Label)
	require.NotNil(t, nt.Length)
	assert.Equal(t, 0.75, *nt.Length)
}

func TestConvertSubtree(t *testing.T) {
	nt, err := Convert(cherry().Nodes, 3)
	require.NoError(t, err)
	assert.Equal(t, "(0:0.5,1:0.5)3:0.75", nt.Newick())
}

func TestConvertLeafRoot(t *testing.T) {
	tree := New(1)
	tree.Root = tree.AddLeaf("0", 0)
	tree.Seal(0, 2.5)

	nt, err := tree.Newick()
	require.NoError(t, err)
	assert.Empty(t, nt.Children)
	assert.Equal(t, "0:2.5", nt.Newick())
}

func TestConvertMalformed(t *testing.T) {
	tests := []struct {
		name  string
		nodes func() []Node
		root  int
	}{
		{
			name:  "root out of bounds",
			nodes: func() []Node { return cherry().Nodes },
			root:  5,
		},
		{
			name:  "negative root",
			nodes: func() []Node { return cherry().Nodes },
			root:  None,
		},
		{
			name:  "empty arena",
			nodes: func() []Node { return nil },
			root:  0,
		},
		{
			name: "single child",
			nodes: func() []Node {
				nodes := cherry().Nodes
				nodes[3].Right = None
				return nodes
			},
			root: 4,
		},
		{
			name: "child out of bounds",
			nodes: func() []Node {
				nodes := cherry().Nodes
				nodes[3].Left = 42
				return nodes
			},
			root: 4,
		},
		{
			name: "cycle",
			nodes: func() []Node {
				nodes := cherry().Nodes
				nodes[3].Left = 4
				return nodes
			},
			root: 4,
		},
		{
			name: "self loop",
			nodes: func() []Node {
				nodes := cherry().Nodes
				nodes[4].Right = 4
				return nodes
			},
			root: 4,
		},
		{
			name: "shared subtree",
			nodes: func() []Node {
				nodes := cherry().Nodes
				nodes[4].Right = 0
				return nodes
			},
			root: 4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nt, err := Convert(tt.nodes(), tt.root)
			assert.Nil(t, nt)
			assert.ErrorIs(t, err, ErrMalformed)
		})
	}
}

func TestConvertDoesNotModify(t *testing.T) {
	tree := cherry()
	before := append([]Node(nil), tree.Nodes...)
	_, err := tree.Newick()
	require.NoError(t, err)
	assert.Equal(t, before, tree.Nodes)
}

// A caterpillar tree is as tall as it has leaves, which would exhaust the
// stack of a naive recursive conversion.
func TestConvertDeep(t *testing.T) {
	const leaves = 200000

	tree := New(2 * leaves)
	prev := tree.AddLeaf("0", 0)
	for i := 1; i < leaves; i++ {
		leaf := tree.AddLeaf(strconv.Itoa(tree.Len()), 0)
		parent := tree.AddInternal(strconv.Itoa(tree.Len()), prev, leaf,
			float64(i))
		tree.Attach(prev, parent, float64(i))
		tree.Attach(leaf, parent, float64(i))
		prev = parent
	}
	tree.Root = prev

	nt, err := tree.Newick()
	require.NoError(t, err)

	depth, n := 0, nt
	for len(n.Children) > 0 {
		require.Len(t, n.Children, 2)
		n = &n.Children[0]
		depth++
	}
	assert.Equal(t, leaves-1, depth)
	assert.Equal(t, "0", n.Label)
}
