package newick

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample(s string) io.Reader {
	return bytes.NewReader([]byte(s))
}

// items lexes all of s and returns the items, stopping at EOF or an error.
func items(s string) []item {
	var all []item
	lx := lex(sample(s))
	for {
		it := lx.nextItem()
		all = append(all, it)
		if it.typ == itemEOF || it.typ == itemError {
			return all
		}
	}
}

func types(all []item) []itemType {
	typs := make([]itemType, len(all))
	for i := range all {
		typs[i] = all[i].typ
	}
	return typs
}

func TestLexer(t *testing.T) {
	all := items("((X,Y)C)ROOT;")
	assert.Equal(t, []itemType{
		itemDescendentsStart,
		itemDescendentsStart,
		itemSubtree, itemSubtree,
		itemDescendentsEnd,
		itemSubtree,
		itemDescendentsEnd,
		itemSubtree,
		itemTerminal,
		itemEOF,
	}, types(all))
	assert.Equal(t, "X", all[2].val)
	assert.Equal(t, "ROOT", all[7].val)
}

func TestLexerLengths(t *testing.T) {
	for _, s := range []string{
		"(A:0.1,B:0.2,(C:0.3,D:0.4):0.5);",
		"(:0.1,:0.2,(:0.3,:0.4):0.5);",
		"(A:-1,B:2.5e-05,C:1E+3)R:7;",
		"((d1qbea_:0.597492,d1dwna_:0.632208):0.162939," +
			"(d1gav0_:0.526213,(d1unaa_:0.457107,d2iznb1:0.523093):0.043387);",
	} {
		all := items(s)
		require.Equal(t, itemEOF, all[len(all)-1].typ, "%s: %s", s, all)
	}
}

func TestLexerQuoted(t *testing.T) {
	all := items("('a b':1,'it''s':2,'x,y');")
	var vals []string
	for _, it := range all {
		if it.typ == itemSubtree {
			vals = append(vals, it.val)
		}
	}
	assert.Equal(t, []string{"'a b':1", "'it''s':2", "'x,y'", ""}, vals)
	assert.Equal(t, itemEOF, all[len(all)-1].typ)
}

func TestLexerComments(t *testing.T) {
	all := items("[header]\n([c1]A,[c2] B)[c3]R;\n")
	assert.Equal(t, itemEOF, all[len(all)-1].typ, "%v", all)

	var vals []string
	for _, it := range all {
		if it.typ == itemSubtree {
			vals = append(vals, it.val)
		}
	}
	assert.Equal(t, []string{"A", "B", "R"}, vals)
}

func TestLexerErrors(t *testing.T) {
	for _, s := range []string{
		"(A B);",
		"(A:1x);",
		"('open;",
		"(A,B)[never closed",
		"('a'b);",
	} {
		all := items(s)
		assert.Equal(t, itemError, all[len(all)-1].typ, "%s", s)
	}
}

func TestLexerLines(t *testing.T) {
	all := items("(A,\nB)\nR;")
	for _, it := range all {
		if it.typ == itemSubtree && it.val == "R" {
			assert.Equal(t, 3, it.line)
		}
	}
}
