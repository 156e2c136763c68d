// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package newick implements reading and writing
// of phylogenetic trees in Newick
// (i.e., parenthetical)
// format.
//
// The grammar accepted by the parser is:
//
//	tree    := subtree ';'
//	subtree := '(' subtree (',' subtree)* ')' [label] [':' length]
//	         | [label] [':' length]
//
// After a closing parenthesis,
// the branch length can be given before or after the label,
// so "(A,B)X:0.5" and "(A,B):0.5X" are both valid,
// but a label can not start with a dot or a sign
// if it follows a branch length.
// Nodes without children, label or branch length
// (as in "(A,,B);")
// are invalid.
// Labels can be quoted with single quotes
// (a doubled quote inside a quoted label is a literal quote).
// Comments in square brackets are ignored.
// Labels are always read as strings,
// and leaves are nodes without children,
// regardless of their labels.
package newick

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/treeland/tree"
)

// A ParseError is an error found
// while parsing a Newick tree.
type ParseError struct {
	// Offset is the byte offset in the input
	// at which the error was found.
	Offset int

	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("newick: at offset %d: %s", e.Offset, e.Msg)
}

const (
	terminal      = ';'
	descDelimiter = ','
	descStart     = '('
	descEnd       = ')'
	quote         = '\''
	lengthStart   = ':'
	commentStart  = '['
	commentEnd    = ']'
)

// Characters that are not valid
// in an unquoted label.
const unquoteBanned = " \t\r\n()[]':;,"

// Parse reads a single tree from a string.
// The tree must end with a semicolon,
// and only blanks or comments are accepted after it.
func Parse(text string) (*tree.Tree, error) {
	p := &parser{input: text}
	t, err := p.tree()
	if err != nil {
		return nil, err
	}
	p.skip()
	if p.pos < len(p.input) {
		return nil, p.errorf("unexpected %q after end of tree", p.input[p.pos])
	}
	return t, nil
}

// A Reader reads trees in Newick format
// from an input stream.
type Reader struct {
	r    io.Reader
	p    *parser
	read bool
}

// NewReader returns a reader that reads from r.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// Read reads the next tree from the input.
// If there are no more trees,
// it returns io.EOF.
func (r *Reader) Read() (*tree.Tree, error) {
	if !r.read {
		b, err := io.ReadAll(r.r)
		if err != nil {
			return nil, fmt.Errorf("newick: %v", err)
		}
		r.p = &parser{input: string(b)}
		r.read = true
	}

	r.p.skip()
	if r.p.pos >= len(r.p.input) {
		return nil, io.EOF
	}
	return r.p.tree()
}

// ReadAll reads all the trees from the input.
// The first error found is returned
// without any tree.
func (r *Reader) ReadAll() ([]*tree.Tree, error) {
	var trees []*tree.Tree
	for {
		t, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		trees = append(trees, t)
	}
	return trees, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) tree() (*tree.Tree, error) {
	p.skip()
	t := tree.New()
	root := t.NewNode()
	if err := p.subtree(t, root); err != nil {
		return nil, err
	}

	p.skip()
	if p.pos >= len(p.input) {
		return nil, p.errorf("expecting %q at end of tree", terminal)
	}
	if c := p.input[p.pos]; c != terminal {
		return nil, p.errorf("expecting %q, found %q", terminal, c)
	}
	p.pos++

	// fix the numbering of the tree
	t.Anchors()
	return t, nil
}

func (p *parser) subtree(t *tree.Tree, id int) error {
	p.skip()
	if p.peek() == descStart {
		p.pos++
		for {
			child := t.NewNode()
			if err := t.AddChild(id, child); err != nil {
				return p.errorf("%v", err)
			}
			p.skip()
			start := p.pos
			if err := p.subtree(t, child); err != nil {
				return err
			}
			if p.pos == start {
				return p.errorf("empty node")
			}

			p.skip()
			switch c := p.peek(); c {
			case descDelimiter:
				p.pos++
				continue
			case descEnd:
				p.pos++
			case 0:
				return p.errorf("unexpected end of input, expecting %q", descEnd)
			default:
				return p.errorf("expecting %q or %q, found %q", descDelimiter, descEnd, c)
			}
			break
		}
	}
	return p.labelLength(t, id)
}

// LabelLength reads the optional label
// and branch length of a node,
// in any order.
func (p *parser) labelLength(t *tree.Tree, id int) error {
	var hasLabel, hasLength bool
	for {
		p.skip()
		c := p.peek()
		switch {
		case c == lengthStart:
			if hasLength {
				return p.errorf("branch length already defined")
			}
			p.pos++
			l, err := p.length()
			if err != nil {
				return err
			}
			t.SetLength(id, l)
			hasLength = true
		case c == quote || isLabel(c):
			if hasLabel {
				return p.errorf("label already defined")
			}
			lbl, err := p.label()
			if err != nil {
				return err
			}
			t.SetLabel(id, lbl)
			hasLabel = true
		default:
			return nil
		}
	}
}

func (p *parser) label() (string, error) {
	if p.peek() != quote {
		start := p.pos
		for p.pos < len(p.input) && isLabel(p.input[p.pos]) {
			p.pos++
		}
		return p.input[start:p.pos], nil
	}

	start := p.pos
	p.pos++
	var b strings.Builder
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		p.pos++
		if c != quote {
			b.WriteByte(c)
			continue
		}
		if p.peek() == quote {
			b.WriteByte(quote)
			p.pos++
			continue
		}
		return b.String(), nil
	}
	return "", &ParseError{Offset: start, Msg: "unterminated quoted label"}
}

func (p *parser) length() (float64, error) {
	p.skip()
	start := p.pos
	p.pos = scanNumber(p.input, p.pos)
	if start == p.pos {
		return 0, p.errorf("expecting a branch length")
	}
	v := p.input[start:p.pos]
	l, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, &ParseError{Offset: start, Msg: fmt.Sprintf("invalid branch length %q", v)}
	}
	if l < 0 {
		return 0, &ParseError{Offset: start, Msg: fmt.Sprintf("negative branch length %q", v)}
	}
	if c := p.peek(); c == '.' || c == '+' || c == '-' {
		return 0, p.errorf("invalid branch length %q", v+string(c))
	}
	return l, nil
}

// Skip ignores blanks and comments.
func (p *parser) skip() {
	for p.pos < len(p.input) {
		c := p.input[p.pos]
		switch {
		case isBlank(c):
			p.pos++
		case c == commentStart:
			end := strings.IndexByte(p.input[p.pos:], commentEnd)
			if end < 0 {
				// let the caller report the unexpected character
				return
			}
			p.pos += end + 1
		default:
			return
		}
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *parser) errorf(format string, v ...any) *ParseError {
	return &ParseError{
		Offset: p.pos,
		Msg:    fmt.Sprintf(format, v...),
	}
}

func isBlank(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func isLabel(c byte) bool {
	return c != 0 && strings.IndexByte(unquoteBanned, c) < 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// ScanNumber returns the position after a number
// that starts at pos.
// An exponent is only read if it is followed by a digit,
// so a label can follow a branch length.
func scanNumber(s string, pos int) int {
	if pos < len(s) && (s[pos] == '-' || s[pos] == '+') {
		pos++
	}
	for pos < len(s) && isDigit(s[pos]) {
		pos++
	}
	if pos < len(s) && s[pos] == '.' {
		pos++
		for pos < len(s) && isDigit(s[pos]) {
			pos++
		}
	}
	if pos < len(s) && (s[pos] == 'e' || s[pos] == 'E') {
		e := pos + 1
		if e < len(s) && (s[e] == '-' || s[e] == '+') {
			e++
		}
		if e < len(s) && isDigit(s[e]) {
			pos = e
			for pos < len(s) && isDigit(s[pos]) {
				pos++
			}
		}
	}
	return pos
}
