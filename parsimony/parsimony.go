// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package parsimony implements the Fitch parsimony cost
// of a tree
// generalized to trees with multifurcations.
//
// Each site is scored independently.
// A leaf receives the state of its taxon in the site.
// An internal node receives the intersection
// of the state sets of its children,
// if it is not empty,
// otherwise it receives the union of the sets,
// and the cost of the site is increased by k-1,
// in which k is the number of children of the node.
package parsimony

import (
	"errors"
	"fmt"

	"github.com/js-arias/treeland/tree"
)

// ErrDimensionMismatch is returned when the number of profiles
// is different from the number of weights,
// or when a profile is too short
// for the columns in the taxon index.
var ErrDimensionMismatch = errors.New("parsimony: dimension mismatch")

// ErrUnknownTaxon is returned when a leaf of the tree
// is not found in the taxon index.
var ErrUnknownTaxon = errors.New("parsimony: unknown taxon")

// ErrNegativeWeight is returned when a site weight
// is less than 0.
var ErrNegativeWeight = errors.New("parsimony: negative weight")

// An UnknownTaxonError is the error returned
// when a leaf label is not in the taxon index.
type UnknownTaxonError struct {
	Label string
}

func (e *UnknownTaxonError) Error() string {
	return fmt.Sprintf("parsimony: unknown taxon %q", e.Label)
}

// Is makes an UnknownTaxonError to match ErrUnknownTaxon.
func (e *UnknownTaxonError) Is(target error) bool {
	return target == ErrUnknownTaxon
}

// A stateSet is a set of byte states.
type stateSet [4]uint64

func single(c byte) stateSet {
	var s stateSet
	s[c>>6] = 1 << (c & 63)
	return s
}

func (s stateSet) and(o stateSet) stateSet {
	return stateSet{s[0] & o[0], s[1] & o[1], s[2] & o[2], s[3] & o[3]}
}

func (s stateSet) or(o stateSet) stateSet {
	return stateSet{s[0] | o[0], s[1] | o[1], s[2] | o[2], s[3] | o[3]}
}

func (s stateSet) empty() bool {
	return s[0]|s[1]|s[2]|s[3] == 0
}

// Score returns the parsimony cost of a tree.
//
// Profiles is a list of sites,
// each one a string with a character per taxon,
// weights is the weight of each site,
// and taxa is a map of leaf labels
// to the position of the taxon in the profile strings.
//
// Score does not modify the tree.
func Score(t *tree.Tree, profiles []string, weights []float64, taxa map[string]int) (float64, error) {
	if len(profiles) != len(weights) {
		return 0, fmt.Errorf("%w: %d profiles, %d weights", ErrDimensionMismatch, len(profiles), len(weights))
	}
	for i, w := range weights {
		if w < 0 {
			return 0, fmt.Errorf("%w: site %d: %g", ErrNegativeWeight, i, w)
		}
	}

	post := t.PostOrder()
	cols := make([]int, t.Len())
	for _, id := range post {
		if !t.IsLeaf(id) {
			continue
		}
		c, ok := taxa[t.Label(id)]
		if !ok {
			return 0, &UnknownTaxonError{Label: t.Label(id)}
		}
		cols[id] = c
	}

	sets := make([]stateSet, t.Len())
	var total float64
	for i, p := range profiles {
		var cost int
		for _, id := range post {
			if t.IsLeaf(id) {
				c := cols[id]
				if c < 0 || c >= len(p) {
					return 0, fmt.Errorf("%w: site %d: profile length %d, taxon %q at column %d", ErrDimensionMismatch, i, len(p), t.Label(id), c)
				}
				sets[id] = single(p[c])
				continue
			}
			children := t.Children(id)
			in := sets[children[0]]
			un := in
			for _, c := range children[1:] {
				in = in.and(sets[c])
				un = un.or(sets[c])
			}
			if !in.empty() {
				sets[id] = in
				continue
			}
			sets[id] = un
			cost += len(children) - 1
		}
		total += float64(cost) * weights[i]
	}
	return total, nil
}
