// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package pruning

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// scaleLimit is the value below which
// the conditional likelihoods of a pattern are scaled.
const scaleLimit = 1e-100

// partLike returns the log likelihood of a partition.
//
// The conditional likelihoods of a node
// are stored as pattern x category x state.
func (t *Tree) partLike(d *Data) float64 {
	k := d.alphabet.States()
	nc := len(t.rates)
	np := len(d.weights)
	stride := nc * k
	t.grow(t.t.Len(), np*stride, np)

	post := t.t.PostOrder()
	for _, id := range post {
		if t.t.IsLeaf(id) {
			t.leafConditional(d, id, k, stride)
			continue
		}
		t.conditional(id, k, np, stride)
	}

	root := t.t.Root()
	rc := t.cond[root]
	rs := t.scale[root]
	var lnL float64
	for p, w := range d.weights {
		// equal state frequencies
		// and equal probability categories
		like := floats.Sum(rc[p*stride:(p+1)*stride]) / float64(stride)
		lnL += w * (math.Log(like) + rs[p])
	}
	return lnL
}

func (t *Tree) leafConditional(d *Data, id, k, stride int) {
	c := t.cond[id]
	row := d.states[d.taxa[t.t.Label(id)]]
	for p, st := range row {
		v := c[p*stride : (p+1)*stride]
		if st < 0 {
			for i := range v {
				v[i] = 1
			}
		} else {
			for i := range v {
				v[i] = 0
			}
			for cat := 0; cat < len(t.rates); cat++ {
				v[cat*k+int(st)] = 1
			}
		}
		t.scale[id][p] = 0
	}
}

// conditional calculates the conditional likelihood of a node
// as the product of the conditional likelihood
// of each descendant
// at the beginning of its branch.
func (t *Tree) conditional(id, k, np, stride int) {
	c := t.cond[id]
	sc := t.scale[id]
	for i := range c {
		c[i] = 1
	}
	for p := range sc {
		sc[p] = 0
	}

	for _, ch := range t.t.Children(id) {
		cc := t.cond[ch]
		l := t.t.Length(ch)
		for cat, r := range t.rates {
			same, diff := transProb(k, l*r)
			for p := 0; p < np; p++ {
				off := p*stride + cat*k
				v := cc[off : off+k]
				sum := floats.Sum(v)
				for i, x := range v {
					c[off+i] *= diff*sum + (same-diff)*x
				}
			}
		}
		floats.Add(sc, t.scale[ch])
	}

	for p := 0; p < np; p++ {
		v := c[p*stride : (p+1)*stride]
		m := floats.Max(v)
		if m > 0 && m < scaleLimit {
			floats.Scale(1/m, v)
			sc[p] += math.Log(m)
		}
	}
}

// transProb returns the probability of staying in the same state,
// and the probability of a change to any other state,
// under an Mk model with k states
// along a branch of a given length
// (in expected number of changes per site).
func transProb(k int, length float64) (same, diff float64) {
	if length < MinLength {
		length = MinLength
	}
	fk := float64(k)
	e := math.Exp(-fk / (fk - 1) * length)
	same = 1/fk + (fk-1)/fk*e
	diff = (1 - e) / fk
	return same, diff
}
