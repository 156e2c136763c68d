// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package pruning

import (
	"fmt"

	"github.com/js-arias/treeland/align"
)

// Data is a partition of an alignment
// compressed into site patterns.
type Data struct {
	name     string
	alphabet Alphabet

	taxa    map[string]int
	states  [][]int8 // taxon x pattern
	weights []float64
}

// NewData creates a partition
// from the sites of an alignment
// between from (inclusive) and to (exclusive),
// using 0-based site indices.
// Identical sites are merged into a single pattern.
func NewData(name string, aln *align.Alignment, a Alphabet, from, to int) (*Data, error) {
	if from < 0 || to > aln.Len() || from >= to {
		return nil, fmt.Errorf("partition %q: invalid site range %d-%d (alignment length %d)", name, from+1, to, aln.Len())
	}
	if a.States() == 0 {
		return nil, fmt.Errorf("partition %q: invalid alphabet %v", name, a)
	}

	d := &Data{
		name:     name,
		alphabet: a,
		taxa:     aln.TaxonIndex(),
		states:   make([][]int8, aln.NumTaxa()),
	}
	idx := make(map[string]int)
	for s := from; s < to; s++ {
		col := aln.Column(s)
		p, ok := idx[string(col)]
		if ok {
			d.weights[p]++
			continue
		}
		idx[string(col)] = len(d.weights)
		d.weights = append(d.weights, 1)
		for i, c := range col {
			d.states[i] = append(d.states[i], int8(a.Index(c)))
		}
	}
	return d, nil
}

// Alphabet returns the alphabet of the partition.
func (d *Data) Alphabet() Alphabet {
	return d.alphabet
}

// Name returns the name of the partition.
func (d *Data) Name() string {
	return d.name
}

// Patterns returns the number of site patterns.
func (d *Data) Patterns() int {
	return len(d.weights)
}

// Sites returns the number of sites of the partition.
func (d *Data) Sites() int {
	var n float64
	for _, w := range d.weights {
		n += w
	}
	return int(n)
}
