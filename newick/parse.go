package newick

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Reader corresponds to the state necessary to read trees from Newick
// formatted input.
type Reader struct {
	*lexer
}

// NewReader returns a reader ready for reading trees from `r`.
func NewReader(r io.Reader) *Reader {
	return &Reader{lex(r)}
}

// ReadAll returns all of the Newick trees in the source input. The first
// error that occurs is returned with no trees. The error is never `io.EOF`.
func (lx *Reader) ReadAll() ([]*Tree, error) {
	trees := make([]*Tree, 0)
	for {
		tree, err := lx.ReadTree()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// ReadTree reads a single tree from the source input. If the end of the
// input is reached, then a nil `Tree` is returned with `io.EOF` as the error.
//
// Nested descendent lists are handled with an explicit stack, so the height
// of the tree is not limited by the goroutine stack.
func (lx *Reader) ReadTree() (*Tree, error) {
	item := lx.nextItem()
	root := &Tree{}
	switch item.typ {
	case itemTerminal:
		return root, nil
	case itemEOF:
		return nil, io.EOF
	case itemSubtree:
		if err := setLabelLength(root, item.val); err != nil {
			return nil, errf(item.line, "%s", err)
		}
	case itemDescendentsStart:
		if err := lx.parseDescendents(root); err != nil {
			return nil, err
		}
	default:
		return nil, expectErr(item, "a descendent list or a subtree")
	}

	item = lx.nextItem()
	if item.typ != itemTerminal {
		return nil, expectErr(item, fmt.Sprintf("a terminal '%c'", terminal))
	}
	return root, nil
}

// parseDescendents reads the descendent list whose start has just been read
// into `parent`, followed by the label and length of `parent` itself.
func (lx *Reader) parseDescendents(parent *Tree) error {
	// Every open descendent list. A child is only appended to its parent
	// once it is complete, so that no pointer into a Children slice is held
	// while that slice may still grow.
	open := []*Tree{parent}
	for len(open) > 0 {
		top := open[len(open)-1]
		item := lx.nextItem()
		switch item.typ {
		case itemSubtree:
			child := Tree{}
			if err := setLabelLength(&child, item.val); err != nil {
				return errf(item.line, "%s", err)
			}
			top.Children = append(top.Children, child)
		case itemDescendentsStart:
			open = append(open, &Tree{})
		case itemDescendentsEnd:
			// After a descendent list is done, we should always expect a
			// subtree.
			item = lx.nextItem()
			if item.typ != itemSubtree {
				return expectErr(item, "a subtree")
			}
			if err := setLabelLength(top, item.val); err != nil {
				return errf(item.line, "%s", err)
			}
			open = open[:len(open)-1]
			if len(open) > 0 {
				up := open[len(open)-1]
				up.Children = append(up.Children, *top)
			}
		default:
			return expectErr(item, "a descendent list or a subtree")
		}
	}
	return nil
}

// setLabelLength splits the raw value of a subtree item into a label and a
// branch length.
func setLabelLength(t *Tree, label string) error {
	label = strings.TrimSpace(label)
	if len(label) == 0 {
		return nil
	}

	var length string
	hasLength := false
	if label[0] == quoteStart {
		end := closingQuote(label)
		if end < 0 {
			return fmt.Errorf("Unterminated quoted label: %s", label)
		}
		rest := label[end+1:]
		t.Label = strings.ReplaceAll(label[1:end], "''", "'")
		if len(rest) > 0 {
			if rest[0] != lengthStart {
				return fmt.Errorf("Unexpected '%s' after quoted label.", rest)
			}
			length, hasLength = rest[1:], true
		}
	} else {
		pieces := strings.SplitN(label, ":", 2)
		t.Label = pieces[0]
		if len(pieces) == 2 {
			length, hasLength = pieces[1], true
		}
	}

	if hasLength {
		l, err := strconv.ParseFloat(length, 64)
		if err != nil {
			return fmt.Errorf("Invalid branch length: %s", err)
		}
		t.Length = &l
	}
	return nil
}

// closingQuote returns the index of the quote closing the quoted label at
// the start of s, or -1 if there is none.
func closingQuote(s string) int {
	for i := 1; i < len(s); i++ {
		if s[i] != quoteEnd {
			continue
		}
		if i+1 < len(s) && s[i+1] == quoteEnd {
			i++
			continue
		}
		return i
	}
	return -1
}

func expectErr(item item, expected string) error {
	if item.typ == itemError {
		return errf(item.line, "%s", item.val)
	}
	return errf(item.line, "Unexpected %s, expected %s.", item.typ, expected)
}

func errf(line int, format string, v ...interface{}) error {
	return fmt.Errorf("Error on line %d: %s", line, fmt.Sprintf(format, v...))
}
