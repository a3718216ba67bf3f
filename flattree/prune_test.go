package flattree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPruneKeepAll(t *testing.T) {
	tree := cherry()
	pruned, err := tree.Prune(func(int) bool { return true })
	require.NoError(t, err)

	want, err := tree.Newick()
	require.NoError(t, err)
	got, err := pruned.Newick()
	require.NoError(t, err)
	assert.Equal(t, want.Newick(), got.Newick())
	assert.Equal(t, tree.Len(), pruned.Len())
}

func TestPruneCollapse(t *testing.T) {
	tree := cherry()
	pruned, err := tree.Prune(func(i int) bool { return i != 1 })
	require.NoError(t, err)

	nt, err := pruned.Newick()
	require.NoError(t, err)
	// Node 3 lost a child, so leaf 0 absorbs its branch length.
	assert.Equal(t, "(0:1.25,2:1.25)4:0.75", nt.Newick())
	assert.Equal(t, 3, pruned.Len())
	assert.Equal(t, pruned.Len()-1, pruned.Root)

	// The input arena is untouched.
	assert.Equal(t, 0.5, tree.Node(0).Length)
	assert.Equal(t, 5, tree.Len())
}

func TestPruneCollapseRoot(t *testing.T) {
	tree := cherry()
	pruned, err := tree.Prune(func(i int) bool { return i == 0 || i == 1 })
	require.NoError(t, err)

	nt, err := pruned.Newick()
	require.NoError(t, err)
	assert.Equal(t, "(0:0.5,1:0.5)3:1.5", nt.Newick())
	assert.Equal(t, None, pruned.Node(pruned.Root).Parent)
}

func TestPruneSubtreeRoot(t *testing.T) {
	tree := cherry()
	tree.Root = 3
	pruned, err := tree.Prune(func(int) bool { return true })
	require.NoError(t, err)

	nt, err := pruned.Newick()
	require.NoError(t, err)
	assert.Equal(t, "(0:0.5,1:0.5)3:0.75", nt.Newick())
	require.Equal(t, 3, pruned.Len())

	roots := 0
	for i := range pruned.Nodes {
		if pruned.Node(i).Parent == None {
			roots++
			assert.Equal(t, pruned.Root, i)
		}
	}
	assert.Equal(t, 1, roots)
}

func TestPruneNothingLeft(t *testing.T) {
	_, err := cherry().Prune(func(int) bool { return false })
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestPruneBadOrder(t *testing.T) {
	tree := New(3)
	tree.AddInternal("0", 1, 2, 1)
	tree.AddLeaf("1", 0)
	tree.AddLeaf("2", 0)
	tree.Root = 0

	_, err := tree.Prune(func(int) bool { return true })
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestPruneDepths(t *testing.T) {
	tree := cherry()
	pruned, err := tree.Prune(func(i int) bool { return i != 2 })
	require.NoError(t, err)

	for i := range pruned.Nodes {
		n := pruned.Node(i)
		d, ok := n.Depth()
		require.True(t, ok)
		orig := tree.Node(mustIndex(t, tree, n.Name))
		assert.Equal(t, orig.MustDepth(), d)
	}
}

func mustIndex(t *testing.T, tree *Tree, name string) int {
	for i := range tree.Nodes {
		if tree.Nodes[i].Name == name {
			return i
		}
	}
	t.Fatalf("No node named '%s'.", name)
	return None
}
