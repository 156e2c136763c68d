// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package rearrange

import (
	"fmt"

	"github.com/js-arias/treeland/newick"
	"github.com/js-arias/treeland/tree"
)

// A Branch is the neighborhood of a branch of a tree.
type Branch struct {
	// Node is the node below the branch.
	Node int

	// Split is the bipartition of the leaves
	// defined by the branch
	// (see tree.Split).
	Split []string

	// Results are the trees produced by the moves
	// that cross or break the branch.
	Results []Result
}

// Neighborhood returns the trees in the neighborhood
// of each branch of a topology,
// without a radius limit.
//
// NNI moves of a branch swap the subtrees
// at both sides of the branch.
// SPR moves of a branch prune the subtree
// at each side of the branch
// and regraft it on any edge of the other side.
// Branches are visited in pre-order.
// If the root is binary,
// the two branches of the root are a single branch,
// stored with the first child of the root.
// Moves are not associated with an anchor.
//
// In a branch,
// moves that produce the starting tree,
// or a tree already found in the branch
// with another move of the same kind,
// are ignored.
// The same tree can be found in different branches.
//
// If the tree has less than four leaves,
// it returns an empty list.
func Neighborhood(top Topology, kind Kind) ([]Branch, error) {
	if kind != NNI && kind != SPR && kind != All {
		return nil, fmt.Errorf("rearrange: invalid kind %v", kind)
	}
	t := top.Tree()
	if t.Editing() {
		return nil, tree.ErrPendingEdit
	}
	if t.NumLeaves() < 4 {
		return []Branch{}, nil
	}

	base, err := top.Score()
	if err != nil {
		return nil, fmt.Errorf("rearrange: starting score: %w", err)
	}
	start := newick.Canonical(t)

	skip := -1
	if rc := t.Children(t.Root()); len(rc) == 2 {
		skip = rc[1]
	}

	var branches []Branch
	for _, c := range t.PreOrder() {
		if t.IsRoot(c) || c == skip {
			continue
		}
		b := Branch{
			Node:  c,
			Split: t.Split(c),
		}
		seen := map[Kind]map[string]bool{
			NNI: {start: true},
			SPR: {start: true},
		}
		for _, m := range branchMoves(t, c, kind) {
			r, ok, err := evaluate(top, m, seen[m.Kind])
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			b.Results = append(b.Results, r)
		}
		branches = append(branches, b)
	}

	if err := checkBaseline(top, base); err != nil {
		return nil, err
	}
	return branches, nil
}

// BranchMoves returns the moves
// that cross or break the parent edge of a node.
func branchMoves(t *tree.Tree, c int, kind Kind) []Move {
	var moves []Move
	if (kind == NNI || kind == All) && !t.IsLeaf(c) {
		moves = edgeNNI(t, 0, c, moves)
	}
	if kind != SPR && kind != All {
		return moves
	}

	moves = sprMoves(t, 0, c, t.Len(), moves)
	children := t.Children(c)
	if len(children) < 2 {
		return moves
	}
	binary := len(children) == 2
	var visit func(x int)
	visit = func(x int) {
		for _, d := range t.Children(x) {
			if !binary || x != c {
				moves = append(moves, Move{Kind: SPR, Node: c, Target: d, Flip: true})
			}
			visit(d)
		}
	}
	visit(c)
	return moves
}
