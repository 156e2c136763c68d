// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package rearrange

import (
	"errors"
	"fmt"
	"math"

	"github.com/js-arias/treeland/newick"
	"github.com/js-arias/treeland/tree"
)

// Tolerance is the maximum difference allowed
// between the score of a tree
// before and after an enumeration.
const Tolerance = 1e-6

// ErrInvalidRadius is returned when the search radius
// is less than 1.
var ErrInvalidRadius = errors.New("rearrange: invalid radius")

// ErrOracleDesync is returned when the score of the tree
// after an enumeration
// is different from the score before the enumeration.
var ErrOracleDesync = errors.New("rearrange: score changed after enumeration")

// A Topology is a tree
// with a score evaluator.
type Topology interface {
	// Tree returns the tree evaluated by the topology.
	// Moves are applied directly to this tree.
	Tree() *tree.Tree

	// Score returns the score of the current state of the tree.
	Score() (float64, error)
}

// A Result is a tree in the neighborhood of a tree.
type Result struct {
	Move Move

	// Score is the score of the rearranged tree.
	Score float64

	// Topology is the rearranged tree
	// in Newick format
	// (with branch lengths).
	Topology string
}

// MaxSPR returns the maximum number of SPR rearrangements
// of a tree with n leaves.
func MaxSPR(n int) int {
	if n < 4 {
		return 0
	}
	return 4*(n-3)*(n-2) + (n - 1)
}

// Enumerate returns the trees in the neighborhood of a topology
// produced by moves of the given kind
// with a given radius.
//
// Each move is applied on the tree of the topology,
// scored,
// and reverted.
// Moves that produce the starting tree,
// or a tree already found with another move of the same kind,
// are ignored.
// Results are ordered by anchor,
// and then by the order of the candidates of each anchor.
//
// If the tree has less than four leaves,
// it returns an empty list.
func Enumerate(top Topology, kind Kind, radius int) ([]Result, error) {
	if radius < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRadius, radius)
	}
	if kind != NNI && kind != SPR && kind != All {
		return nil, fmt.Errorf("rearrange: invalid kind %v", kind)
	}
	t := top.Tree()
	if t.Editing() {
		return nil, tree.ErrPendingEdit
	}
	n := t.NumLeaves()
	if n < 4 {
		return []Result{}, nil
	}

	base, err := top.Score()
	if err != nil {
		return nil, fmt.Errorf("rearrange: starting score: %w", err)
	}
	start := newick.Canonical(t)

	maxSPR := MaxSPR(n)
	size := maxSPR
	if kind == All {
		size *= 2
	}
	res := make([]Result, 0, size)
	seen := map[Kind]map[string]bool{
		NNI: {start: true},
		SPR: {start: true},
	}
	var numSPR int

	anchors := t.Anchors()
	for a := 1; a < len(anchors); a++ {
		for _, m := range Candidates(t, a, kind, radius) {
			if m.Kind == SPR && numSPR >= maxSPR {
				continue
			}
			r, ok, err := evaluate(top, m, seen[m.Kind])
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			res = append(res, r)
			if m.Kind == SPR {
				numSPR++
			}
		}
	}

	if err := checkBaseline(top, base); err != nil {
		return nil, err
	}
	return res, nil
}

// Evaluate applies a move,
// and if the resulting tree was not seen before
// it returns the scored result.
// The move is always reverted.
func evaluate(top Topology, m Move, seen map[string]bool) (Result, bool, error) {
	t := top.Tree()
	tk, err := Apply(t, m)
	if err != nil {
		return Result{}, false, err
	}
	key := newick.Canonical(t)
	if seen[key] {
		if err := Revert(t, tk); err != nil {
			return Result{}, false, err
		}
		return Result{}, false, nil
	}
	seen[key] = true

	nwk := newick.String(t)
	sc, err := top.Score()
	if err != nil {
		Revert(t, tk)
		return Result{}, false, fmt.Errorf("rearrange: move %v: %w", m, err)
	}
	if err := Revert(t, tk); err != nil {
		return Result{}, false, err
	}
	return Result{
		Move:     m,
		Score:    sc,
		Topology: nwk,
	}, true, nil
}

func checkBaseline(top Topology, base float64) error {
	after, err := top.Score()
	if err != nil {
		return fmt.Errorf("rearrange: final score: %w", err)
	}
	if math.Abs(after-base) > Tolerance {
		return fmt.Errorf("%w: starting %.6f, final %.6f", ErrOracleDesync, base, after)
	}
	return nil
}
