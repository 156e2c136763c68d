// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"slices"
	"strings"
)

// Split returns the bipartition of the leaves
// defined by the branch of a node.
// The returned side is the one
// that does not include the smallest leaf label,
// so both sides of a branch return the same split.
// Labels are sorted.
func (t *Tree) Split(id int) []string {
	terms := t.Terms()
	if len(terms) == 0 {
		return nil
	}

	var in []string
	stack := []int{id}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if t.IsLeaf(n) {
			in = append(in, t.nodes[n].label)
			continue
		}
		stack = append(stack, t.nodes[n].children...)
	}
	slices.Sort(in)
	if len(in) == 0 || in[0] != terms[0] {
		return in
	}

	out := make([]string, 0, len(terms)-len(in))
	for _, tm := range terms {
		if _, ok := slices.BinarySearch(in, tm); !ok {
			out = append(out, tm)
		}
	}
	return out
}

// Splits returns the non-trivial bipartitions of the tree
// (i.e., with at least two leaves at each side),
// each one as the comma separated labels of a Split.
// The list is sorted.
func (t *Tree) Splits() []string {
	n := t.NumLeaves()
	var splits []string
	for _, id := range t.PreOrder() {
		if t.IsRoot(id) || t.IsLeaf(id) {
			continue
		}
		s := t.Split(id)
		if len(s) < 2 || len(s) > n-2 {
			continue
		}
		splits = append(splits, strings.Join(s, ","))
	}
	slices.Sort(splits)
	return slices.Compact(splits)
}
