package newick

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Newick returns the Newick representation of the tree, without the
// terminating ';'. Children are written in the order they are stored.
//
// A leaf is written as 'label:length' and an inner node as
// '(child,child,...)label:length'. An empty label and a nil length are
// both omitted.
func (tree *Tree) Newick() string {
	return string(tree.AppendNewick(nil))
}

// AppendNewick appends the Newick representation of the tree (without the
// terminating ';') to buf and returns the extended buffer.
func (tree *Tree) AppendNewick(buf []byte) []byte {
	type frame struct {
		t    *Tree
		next int
	}
	stack := []frame{{t: tree}}
	for len(stack) > 0 {
		top := len(stack) - 1
		f := stack[top]
		nkids := len(f.t.Children)

		switch {
		case nkids > 0 && f.next == 0:
			buf = append(buf, descStart)
		case f.next < nkids:
			buf = append(buf, descDelimiter)
		default:
			if nkids > 0 {
				buf = append(buf, descEnd)
			}
			buf = appendLabelLength(buf, f.t)
			stack = stack[:top]
			continue
		}
		stack[top].next++
		stack = append(stack, frame{t: &f.t.Children[f.next]})
	}
	return buf
}

func appendLabelLength(buf []byte, t *Tree) []byte {
	buf = appendLabel(buf, t.Label)
	if t.Length != nil {
		buf = append(buf, lengthStart)
		buf = strconv.AppendFloat(buf, *t.Length, 'f', -1, 64)
	}
	return buf
}

func appendLabel(buf []byte, label string) []byte {
	if !strings.ContainsAny(label, unquoteBanned+"\n\r") {
		return append(buf, label...)
	}
	buf = append(buf, quoteStart)
	for i := 0; i < len(label); i++ {
		if label[i] == quoteEnd {
			buf = append(buf, quoteEnd)
		}
		buf = append(buf, label[i])
	}
	return append(buf, quoteEnd)
}

// A Writer writes trees in Newick format, one tree per line, each ending
// with a ';'.
type Writer struct {
	buf     *bufio.Writer
	scratch []byte
}

// NewWriter creates a new Newick writer that writes trees to an io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{buf: bufio.NewWriter(w)}
}

// Flush writes any buffered data to the underlying io.Writer.
func (w *Writer) Flush() error {
	return w.buf.Flush()
}

// Write writes a single tree to the underlying io.Writer.
//
// You may need to call Flush in order for the changes to be written.
func (w *Writer) Write(tree *Tree) error {
	w.scratch = tree.AppendNewick(w.scratch[:0])
	w.scratch = append(w.scratch, terminal, '\n')
	_, err := w.buf.Write(w.scratch)
	return err
}

// WriteAll writes a slice of trees to the underlying io.Writer, and calls
// Flush.
func (w *Writer) WriteAll(trees []*Tree) error {
	for _, tree := range trees {
		if err := w.Write(tree); err != nil {
			return err
		}
	}
	return w.Flush()
}
