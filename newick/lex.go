package newick

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

type itemType int

const (
	itemError itemType = iota
	itemEOF
	itemTerminal
	itemDescendentsStart
	itemDescendentsEnd
	itemSubtree
)

const (
	eof           = 0
	terminal      = ';'
	descDelimiter = ','
	descStart     = '('
	descEnd       = ')'
	quoteStart    = '\''
	quoteEnd      = '\''
	lengthStart   = ':'
	commentStart  = '['
	commentEnd    = ']'
)

// Characters that may only appear inside a quoted label.
const unquoteBanned = " ()[]':;,"

type stateFn func(lx *lexer) stateFn

// lexer is a state machine that turns Newick input into a stream of items.
// A subtree item holds the raw label and length of one node, e.g.,
// "'a b':0.5"; it is split by the parser.
type lexer struct {
	input io.Reader
	buf   string
	start int
	pos   int
	width int
	line  int
	state stateFn
	items chan item
}

type item struct {
	typ  itemType
	val  string
	line int
}

func (lx *lexer) nextItem() item {
	for {
		select {
		case item := <-lx.items:
			return item
		default:
			lx.state = lx.state(lx)
		}
	}
}

func lex(input io.Reader) *lexer {
	return &lexer{
		input: bufio.NewReader(input),
		buf:   "",
		state: lexDescendents,
		line:  1,
		items: make(chan item, 10),
	}
}

func (lx *lexer) current() string {
	return lx.buf[lx.start:lx.pos]
}

func (lx *lexer) emit(typ itemType) {
	lx.items <- item{typ, lx.current(), lx.line}
	lx.buf = lx.buf[lx.pos:]
	lx.start, lx.pos = 0, 0
}

func (lx *lexer) next() (r rune) {
	if lx.pos >= len(lx.buf) {
		buf := make([]byte, 4096)
		n, err := lx.input.Read(buf)
		if n == 0 && err != nil {
			lx.width = 0
			return eof
		}
		lx.buf += string(buf[0:n])
		if lx.pos >= len(lx.buf) {
			lx.width = 0
			return eof
		}
	}

	if lx.buf[lx.pos] == '\n' {
		lx.line++
	}
	r, lx.width = utf8.DecodeRuneInString(lx.buf[lx.pos:])
	lx.pos += lx.width
	return r
}

// ignore skips over the pending input before this point.
func (lx *lexer) ignore() {
	lx.start = lx.pos
}

// backup steps back one rune. Can be called only once per call of next.
func (lx *lexer) backup() {
	lx.pos -= lx.width
	if lx.width > 0 && lx.buf[lx.pos] == '\n' {
		lx.line--
	}
}

// peek returns but does not consume the next rune in the input.
func (lx *lexer) peek() rune {
	r := lx.next()
	lx.backup()
	return r
}

// errorf stops all lexing by emitting an error and returning `nil`.
// Characters should be passed through escapeSpecial first.
func (lx *lexer) errorf(format string, values ...interface{}) stateFn {
	lx.items <- item{
		itemError,
		fmt.Sprintf(format, values...),
		lx.line,
	}
	return nil
}

func lexDescendents(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case isBlank(r) || isNL(r):
		return lexSkip(lx, lexDescendents)
	case r == commentStart:
		return lexComment(lx, lexDescendents)
	case r == descStart:
		lx.ignore()
		lx.emit(itemDescendentsStart)
		return lexSubtreeStart
	case r == eof:
		if lx.pos > lx.start {
			return lx.errorf("Unexpected EOF.")
		}
		lx.emit(itemEOF)
		return nil
	}
	lx.backup()
	lx.ignore()
	return lexLabel
}

func lexSubtreeStart(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case isBlank(r) || isNL(r):
		return lexSkip(lx, lexSubtreeStart)
	case r == commentStart:
		return lexComment(lx, lexSubtreeStart)
	case isSubtreeEnd(r):
		lx.backup()
		lx.ignore()
		return lexSubtreeEnd
	case r == descStart:
		lx.backup()
		return lexDescendents
	}
	lx.backup()
	lx.ignore()
	return lexLabelStart
}

func lexSubtreeEnd(lx *lexer) stateFn {
	lx.emit(itemSubtree)
	r := lx.next()
	switch r {
	case descDelimiter:
		lx.ignore()
		return lexDescendents
	case descEnd:
		lx.ignore()
		lx.emit(itemDescendentsEnd)
		return lexLabelStart
	case terminal:
		lx.ignore()
		lx.emit(itemTerminal)
		return lexDescendents
	case eof:
		lx.ignore()
		lx.emit(itemTerminal)
		lx.emit(itemEOF)
		return nil
	}
	return lx.errorf("Expected end of subtree (',', ')' or ';') but got "+
		"'%s' instead.", escapeSpecial(r))
}

func lexLabelStart(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case isBlank(r) || isNL(r):
		return lexSkip(lx, lexLabelStart)
	case r == commentStart:
		return lexComment(lx, lexLabelStart)
	}
	lx.backup()
	return lexLabel
}

func lexLabel(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case r == quoteStart && len(lx.current()) == lx.width:
		return lexQuotedLabel
	case r == lengthStart:
		return lexLengthStart
	case isSubtreeEnd(r):
		lx.backup()
		return lexSubtreeEnd
	case strings.ContainsRune(unquoteBanned, r) || isNL(r):
		return lx.errorf("Found '%s' in an unquoted label, which may not "+
			"contain the following characters: '%s'.", escapeSpecial(r),
			unquoteBanned)
	}
	return lexLabel
}

// lexQuotedLabel consumes a label up to its closing quote. Two consecutive
// quotes stand for a single quote inside the label.
func lexQuotedLabel(lx *lexer) stateFn {
	switch lx.next() {
	case eof:
		return lx.errorf("Unexpected EOF inside a quoted label.")
	case quoteEnd:
		if lx.peek() == quoteEnd {
			lx.next()
			return lexQuotedLabel
		}
		return lexQuotedLabelEnd
	}
	return lexQuotedLabel
}

func lexQuotedLabelEnd(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case r == lengthStart:
		return lexLengthStart
	case isSubtreeEnd(r):
		lx.backup()
		return lexSubtreeEnd
	}
	return lx.errorf("Expected a ':' or the end of a subtree after a "+
		"quoted label, but got '%s' instead.", escapeSpecial(r))
}

func lexLengthStart(lx *lexer) stateFn {
	if r := lx.next(); r != '-' {
		lx.backup()
	}
	return lexLengthNum
}

func lexLengthNum(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case isSubtreeEnd(r):
		lx.backup()
		return lexSubtreeEnd
	case r == '.':
		return lexLengthDecimal
	case isExponent(r):
		return lexLengthExponent
	case isDigit(r):
		return lexLengthNum
	}
	return lx.errorf("Expected a '.', a digit or the end of a subtree, but "+
		"got '%s' instead.", escapeSpecial(r))
}

func lexLengthDecimal(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case isSubtreeEnd(r):
		lx.backup()
		return lexSubtreeEnd
	case isExponent(r):
		return lexLengthExponent
	case isDigit(r):
		return lexLengthDecimal
	}
	return lx.errorf("Expected a digit or the end of a subtree, but "+
		"got '%s' instead.", escapeSpecial(r))
}

func lexLengthExponent(lx *lexer) stateFn {
	if r := lx.next(); r != '-' && r != '+' {
		lx.backup()
	}
	return lexLengthExponentDigits
}

func lexLengthExponentDigits(lx *lexer) stateFn {
	r := lx.next()
	switch {
	case isSubtreeEnd(r):
		lx.backup()
		return lexSubtreeEnd
	case isDigit(r):
		return lexLengthExponentDigits
	}
	return lx.errorf("Expected a digit in an exponent or the end of a "+
		"subtree, but got '%s' instead.", escapeSpecial(r))
}

// lexSkip ignores all slurped input and moves on to the next state.
func lexSkip(lx *lexer, nextState stateFn) stateFn {
	return func(lx *lexer) stateFn {
		lx.ignore()
		return nextState
	}
}

// lexComment consumes a bracketed comment whose opening bracket has already
// been read, ignores it and moves on to the next state. Comments do not
// nest.
func lexComment(lx *lexer, nextState stateFn) stateFn {
	var inComment stateFn
	inComment = func(lx *lexer) stateFn {
		switch lx.next() {
		case eof:
			return lx.errorf("Unexpected EOF inside a comment.")
		case commentEnd:
			lx.ignore()
			return nextState
		}
		return inComment
	}
	return inComment
}

func isSubtreeEnd(r rune) bool {
	return r == descDelimiter || r == descEnd || r == terminal || r == eof
}

func isBlank(r rune) bool {
	return r == '\t' || r == ' '
}

func isNL(r rune) bool {
	return r == '\n' || r == '\r'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isExponent(r rune) bool {
	return r == 'e' || r == 'E'
}

func (itype itemType) String() string {
	switch itype {
	case itemError:
		return "Error"
	case itemEOF:
		return "EOF"
	case itemTerminal:
		return "Terminal"
	case itemDescendentsStart:
		return "Descendents (start)"
	case itemDescendentsEnd:
		return "Descendents (end)"
	case itemSubtree:
		return "Subtree"
	}
	panic(fmt.Sprintf("BUG: Unknown type '%d'.", int(itype)))
}

func (item item) String() string {
	return fmt.Sprintf("(%s, %s)", item.typ.String(), item.val)
}

func escapeSpecial(c rune) string {
	switch c {
	case '\n':
		return "\\n"
	case eof:
		return "EOF"
	}
	return string(c)
}
