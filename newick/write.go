// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick

import (
	"bufio"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/js-arias/treeland/tree"
)

// Write writes a tree in Newick format,
// ending with a semicolon and a new line.
// Children are written in their stored order.
// If lengths is true,
// branch lengths larger than 0 are written.
func Write(w io.Writer, t *tree.Tree, lengths bool) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(format(t, lengths))
	bw.WriteString("\n")
	return bw.Flush()
}

// String returns a tree in Newick format,
// with branch lengths.
func String(t *tree.Tree) string {
	return format(t, true)
}

// Topology returns a tree in Newick format,
// without branch lengths.
func Topology(t *tree.Tree) string {
	return format(t, false)
}

func format(t *tree.Tree, lengths bool) string {
	if t.Root() < 0 {
		return ";"
	}
	var b strings.Builder
	var out func(id int)
	out = func(id int) {
		if children := t.Children(id); len(children) > 0 {
			b.WriteByte(descStart)
			for i, c := range children {
				if i > 0 {
					b.WriteByte(descDelimiter)
				}
				out(c)
			}
			b.WriteByte(descEnd)
		} else if t.Label(id) == "" {
			// an empty leaf is not valid
			b.WriteString("''")
		}
		b.WriteString(quoteLabel(t.Label(id)))
		if l := t.Length(id); lengths && l > 0 {
			b.WriteByte(lengthStart)
			b.WriteString(strconv.FormatFloat(l, 'g', -1, 64))
		}
	}
	out(t.Root())
	b.WriteByte(terminal)
	return b.String()
}

// Canonical returns a string that identifies
// the unrooted topology of a tree.
//
// The string is a Newick tree without branch lengths
// nor internal labels,
// rooted at the leaf with the smallest label,
// with nodes of degree two removed,
// and the children of each node sorted.
// Two trees have the same canonical string
// if and only if they have the same unrooted topology.
func Canonical(t *tree.Tree) string {
	leaves := t.Leaves()
	if len(leaves) == 0 {
		return ";"
	}
	first := leaves[0]
	for _, id := range leaves[1:] {
		if t.Label(id) < t.Label(first) {
			first = id
		}
	}
	lbl := quoteLabel(t.Label(first))

	var canon func(id, from int) string
	canon = func(id, from int) string {
		var nb []string
		if p := t.Parent(id); p >= 0 && p != from {
			nb = append(nb, canon(p, id))
		}
		for _, c := range t.Children(id) {
			if c == from {
				continue
			}
			nb = append(nb, canon(c, id))
		}
		switch len(nb) {
		case 0:
			return quoteLabel(t.Label(id))
		case 1:
			return nb[0]
		}
		slices.Sort(nb)
		return string(descStart) + strings.Join(nb, string(descDelimiter)) + string(descEnd)
	}

	p := t.Parent(first)
	if p < 0 {
		// a tree with a single node
		return lbl + string(terminal)
	}
	s := canon(p, first)
	if strings.HasPrefix(s, string(descStart)) {
		return string(descStart) + lbl + string(descDelimiter) + s[1:] + string(terminal)
	}
	return string(descStart) + lbl + string(descDelimiter) + s + string(descEnd) + string(terminal)
}

func quoteLabel(lbl string) string {
	if !strings.ContainsAny(lbl, unquoteBanned) {
		return lbl
	}
	return "'" + strings.ReplaceAll(lbl, "'", "''") + "'"
}
