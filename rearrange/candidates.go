// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package rearrange

import "github.com/js-arias/treeland/tree"

// Candidates returns the moves of a given kind
// produced at an anchor of a tree
// (see tree.Anchors).
//
// The anchor node is the parent of a leaf anchor,
// or the root for the root anchor.
// NNI moves swap each child of an internal node
// with the subtrees at the other side of its parent edge,
// for the internal edges at an edge distance
// less or equal to radius from the anchor node,
// in pre-order.
// Edges adjacent to the anchor node are at distance 1.
//
// For a leaf anchor SPR moves prune the leaf,
// and for the root anchor
// SPR moves prune each child of the root.
// SPR targets are the edges outside the pruned subtree
// at an edge distance less or equal to radius,
// in pre-order.
// Edges adjacent to the pruning point are at distance 1.
//
// If kind is All,
// NNI moves are returned before SPR moves.
// The tree must not have a move pending.
func Candidates(t *tree.Tree, anchor int, kind Kind, radius int) []Move {
	anchors := t.Anchors()
	if anchor < 1 || anchor >= len(anchors) {
		return nil
	}
	id := anchors[anchor]

	var moves []Move
	if kind == NNI || kind == All {
		moves = nniMoves(t, anchor, id, radius, moves)
	}
	if kind == SPR || kind == All {
		if t.IsRoot(id) {
			for _, c := range t.Children(id) {
				moves = sprMoves(t, anchor, c, radius, moves)
			}
		} else {
			moves = sprMoves(t, anchor, id, radius, moves)
		}
	}
	return moves
}

func nniMoves(t *tree.Tree, anchor, id, radius int, moves []Move) []Move {
	from := id
	if !t.IsRoot(id) {
		from = t.Parent(id)
		if from < 0 {
			return moves
		}
	}

	dist := nodeDistance(t, from, false, make([]bool, t.Len()))
	for _, c := range t.PreOrder() {
		if t.IsRoot(c) || t.IsLeaf(c) {
			continue
		}
		d := dist[c]
		if pd := dist[t.Parent(c)]; pd < d {
			d = pd
		}
		if d+1 > radius {
			continue
		}
		moves = edgeNNI(t, anchor, c, moves)
	}
	return moves
}

// edgeNNI returns the NNI moves
// across the parent edge of an internal node.
func edgeNNI(t *tree.Tree, anchor, c int, moves []Move) []Move {
	u := uncles(t, c)
	for _, x := range t.Children(c) {
		for _, y := range u {
			moves = append(moves, Move{Kind: NNI, Anchor: anchor, Node: x, Target: y})
		}
	}
	return moves
}

// uncles returns the nodes at the other side
// of the parent edge of a node.
// If the parent is a binary root,
// the edge passes through the root,
// and the nodes are the children of the sibling.
func uncles(t *tree.Tree, p int) []int {
	g := t.Parent(p)
	if g < 0 {
		return nil
	}
	sibs := t.Children(g)
	if t.IsRoot(g) && len(sibs) == 2 {
		o := sibs[0]
		if o == p {
			o = sibs[1]
		}
		return t.Children(o)
	}
	u := make([]int, 0, len(sibs)-1)
	for _, y := range sibs {
		if y != p {
			u = append(u, y)
		}
	}
	return u
}

func sprMoves(t *tree.Tree, anchor, v, radius int, moves []Move) []Move {
	p := t.Parent(v)
	if p < 0 || len(t.Children(p)) < 2 {
		return moves
	}
	binary := len(t.Children(p)) == 2

	in := make([]bool, t.Len())
	stack := []int{v}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		in[n] = true
		stack = append(stack, t.Children(n)...)
	}

	dist := nodeDistance(t, p, binary, in)
	for _, x := range t.PreOrder() {
		if in[x] || t.IsRoot(x) {
			continue
		}
		if binary && (x == p || t.Parent(x) == p) {
			continue
		}
		d := dist[x]
		if pd := dist[t.Parent(x)]; pd < d {
			d = pd
		}
		if d+1 > radius {
			continue
		}
		moves = append(moves, Move{Kind: SPR, Anchor: anchor, Node: v, Target: x})
	}
	return moves
}

// nodeDistance returns the number of edges
// between a node and the nodes of the tree
// outside the pruned subtree.
// If the node is binary
// it is removed after pruning,
// so its neighbors are at distance 0.
func nodeDistance(t *tree.Tree, p int, binary bool, pruned []bool) []int {
	dist := make([]int, t.Len())
	for i := range dist {
		dist[i] = -1
	}
	dist[p] = 0

	first := 1
	if binary {
		first = 0
	}
	var queue []int
	visit := func(n, d int) {
		if n < 0 || pruned[n] || dist[n] >= 0 {
			return
		}
		dist[n] = d
		queue = append(queue, n)
	}
	visit(t.Parent(p), first)
	for _, c := range t.Children(p) {
		visit(c, first)
	}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		d := dist[n] + 1
		visit(t.Parent(n), d)
		for _, c := range t.Children(n) {
			visit(c, d)
		}
	}
	return dist
}
