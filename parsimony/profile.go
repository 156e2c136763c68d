// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package parsimony

import (
	"github.com/js-arias/treeland/align"
	"github.com/js-arias/treeland/tree"
)

// Profiles is a compressed set of site profiles
// of an alignment.
//
// In a profile each distinct state of a site
// is recoded with a digit,
// in the order in which the state is first found
// in the taxa of the alignment.
// Sites with the same profile are merged
// and its weight is the number of merged sites.
type Profiles struct {
	Profiles []string
	Weights  []float64

	// Taxa is a map of taxon names
	// to its position in the profile strings.
	Taxa map[string]int

	// Sites is the index of the profile
	// of each site of the alignment.
	Sites []int
}

// NewProfiles builds the profiles of an alignment.
func NewProfiles(aln *align.Alignment) *Profiles {
	p := &Profiles{
		Taxa:  aln.TaxonIndex(),
		Sites: make([]int, aln.Len()),
	}
	idx := make(map[string]int)
	for s := 0; s < aln.Len(); s++ {
		v := profile(aln.Column(s))
		i, ok := idx[v]
		if !ok {
			i = len(p.Profiles)
			idx[v] = i
			p.Profiles = append(p.Profiles, v)
			p.Weights = append(p.Weights, 0)
		}
		p.Weights[i]++
		p.Sites[s] = i
	}
	return p
}

func profile(col []byte) string {
	code := make(map[byte]byte)
	v := make([]byte, len(col))
	for i, c := range col {
		d, ok := code[c]
		if !ok {
			d = '0' + byte(len(code))
			code[c] = d
		}
		v[i] = d
	}
	return string(v)
}

// Len returns the number of distinct profiles.
func (p *Profiles) Len() int {
	return len(p.Profiles)
}

// Score returns the parsimony cost of a tree
// using the profiles.
func (p *Profiles) Score(t *tree.Tree) (float64, error) {
	return Score(t, p.Profiles, p.Weights, p.Taxa)
}

// A Topology is a tree scored with a set of profiles.
type Topology struct {
	t *tree.Tree
	p *Profiles
}

// Topology returns a tree
// that is scored with the profiles.
func (p *Profiles) Topology(t *tree.Tree) *Topology {
	return &Topology{t: t, p: p}
}

// Score returns the parsimony cost of the tree.
func (tp *Topology) Score() (float64, error) {
	return tp.p.Score(tp.t)
}

// Tree returns the scored tree.
func (tp *Topology) Tree() *tree.Tree {
	return tp.t
}
