// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package pruning implements the Felsenstein's pruning algorithm
// for aligned characters
// under the Mk model of evolution
// (Jukes-Cantor for nucleotides),
// with among site rate variation
// given as discrete rate categories.
package pruning

import (
	"fmt"

	"github.com/js-arias/treeland/tree"
)

// MinLength is the minimum branch length
// used to calculate transition probabilities.
const MinLength = 1e-8

// A Tree is a phylogenetic tree
// with its associated data.
type Tree struct {
	t     *tree.Tree
	rates []float64
	data  []*Data

	// conditional likelihoods
	// and log scale factors
	// of each node
	cond  [][]float64
	scale [][]float64
}

// New creates a new tree
// for the evaluation of the likelihood.
// The tree is not copied,
// so changes on the tree will be used in later evaluations.
// Rates are the relative rates of each rate category.
// Every leaf of the tree must be in each data partition.
func New(t *tree.Tree, rates []float64, data ...*Data) (*Tree, error) {
	if len(rates) == 0 {
		rates = []float64{1}
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("pruning: no data")
	}
	for _, d := range data {
		for _, id := range t.Leaves() {
			if _, ok := d.taxa[t.Label(id)]; !ok {
				return nil, fmt.Errorf("pruning: partition %q: taxon %q not in data", d.name, t.Label(id))
			}
		}
	}
	return &Tree{
		t:     t,
		rates: rates,
		data:  data,
	}, nil
}

// Rates returns the relative rates
// of the rate categories.
func (t *Tree) Rates() []float64 {
	return t.rates
}

// Tree returns the underlying tree.
func (t *Tree) Tree() *tree.Tree {
	return t.t
}

// LogLike returns the logarithm of the likelihood
// of the current state of the tree,
// summed over all data partitions.
func (t *Tree) LogLike() float64 {
	var lnL float64
	for _, d := range t.data {
		lnL += t.partLike(d)
	}
	return lnL
}

// grow makes sure that the buffers
// have space for a given number of nodes,
// and for a given number of values per node.
func (t *Tree) grow(nodes, size, patterns int) {
	for len(t.cond) < nodes {
		t.cond = append(t.cond, nil)
		t.scale = append(t.scale, nil)
	}
	for i := 0; i < nodes; i++ {
		if cap(t.cond[i]) < size {
			t.cond[i] = make([]float64, size)
		}
		t.cond[i] = t.cond[i][:size]
		if cap(t.scale[i]) < patterns {
			t.scale[i] = make([]float64, patterns)
		}
		t.scale[i] = t.scale[i][:patterns]
	}
}
