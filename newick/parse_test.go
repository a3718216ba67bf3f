package newick

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser(t *testing.T) {
	r := NewReader(sample("(A,B,(X,Y)C)ROOT;(A,B,C)ROOT;"))
	trees, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, trees, 2)

	first := trees[0]
	assert.Equal(t, "ROOT", first.Label)
	assert.Nil(t, first.Length)
	require.Len(t, first.Children, 3)
	assert.Equal(t, "C", first.Children[2].Label)
	require.Len(t, first.Children[2].Children, 2)
	assert.Equal(t, "Y", first.Children[2].Children[1].Label)
	assert.Equal(t, 6, first.Len())

	assert.Equal(t, 4, trees[1].Len())
}

func TestParserLengths(t *testing.T) {
	tree, err := NewReader(sample("(A:0.1,'b c':2.5e-05)R:1;")).ReadTree()
	require.NoError(t, err)

	require.Len(t, tree.Children, 2)
	require.NotNil(t, tree.Children[0].Length)
	assert.Equal(t, 0.1, *tree.Children[0].Length)
	assert.Equal(t, "b c", tree.Children[1].Label)
	assert.Equal(t, 2.5e-05, *tree.Children[1].Length)
	assert.Equal(t, 1.0, *tree.Length)
}

func TestParserSingleNode(t *testing.T) {
	trees, err := NewReader(sample("0:1.5;\n")).ReadAll()
	require.NoError(t, err)
	require.Len(t, trees, 1)
	assert.Empty(t, trees[0].Children)
	assert.Equal(t, "0", trees[0].Label)
	assert.Equal(t, 1.5, *trees[0].Length)
}

func TestParserEmpty(t *testing.T) {
	trees, err := NewReader(sample("")).ReadAll()
	require.NoError(t, err)
	assert.Empty(t, trees)
}

func TestParserErrors(t *testing.T) {
	for _, s := range []string{
		"(A,B;",
		"(A:1e+,B);",
		"(A B);",
		"((A,B);",
	} {
		_, err := NewReader(sample(s)).ReadAll()
		assert.Error(t, err, "%s", s)
	}
}
