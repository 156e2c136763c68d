// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package rearrange_test

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/treeland/newick"
	"github.com/js-arias/treeland/parsimony"
	"github.com/js-arias/treeland/rearrange"
	"github.com/js-arias/treeland/tree"
)

// parsTopology scores a tree
// using parsimony.
type parsTopology struct {
	t        *tree.Tree
	profiles []string
	weights  []float64
	taxa     map[string]int
}

func (pt *parsTopology) Tree() *tree.Tree {
	return pt.t
}

func (pt *parsTopology) Score() (float64, error) {
	return parsimony.Score(pt.t, pt.profiles, pt.weights, pt.taxa)
}

func newTopology(t testing.TB, nwk string) *parsTopology {
	t.Helper()

	tr := parse(t, nwk)
	return &parsTopology{
		t:        tr,
		profiles: []string{"001122", "012012", "000111", "010101"},
		weights:  []float64{1, 2, 1, 0.5},
		taxa:     map[string]int{"A": 0, "B": 1, "C": 2, "D": 3, "E": 4, "F": 5},
	}
}

var testTrees = map[string]string{
	"binary":         "(((A:1,B:1):1,C:1):1,(D:1,E:1):1);",
	"multifurcation": "((A:1,B:2):0.5,(C:1,(D:1,E:2):1):0.3,F:4);",
	"caterpillar":    "(A:1,(B:1,(C:1,(D:1,(E:1,F:1):1):1):1):1);",
	"no lengths":     "((A,B),(C,D),(E,F));",
}

func TestApplyRevert(t *testing.T) {
	for name, nwk := range testTrees {
		tr := parse(t, nwk)
		orig := tr.Clone()
		terms := tr.Terms()

		for a := 1; a < len(tr.Anchors()); a++ {
			for _, m := range rearrange.Candidates(tr, a, rearrange.All, 10) {
				tk, err := rearrange.Apply(tr, m)
				if err != nil {
					t.Fatalf("%s: apply %v: %v", name, m, err)
				}
				if tr.Equal(orig) {
					t.Errorf("%s: apply %v: tree unchanged", name, m)
				}
				moved := parse(t, newick.String(tr))
				if got := moved.Terms(); !reflect.DeepEqual(got, terms) {
					t.Errorf("%s: apply %v: terms %v, want %v", name, m, got, terms)
				}

				if err := rearrange.Revert(tr, tk); err != nil {
					t.Fatalf("%s: revert %v: %v", name, m, err)
				}
				if !tr.Equal(orig) {
					t.Fatalf("%s: revert %v: got %s, want %s", name, m, newick.String(tr), newick.String(orig))
				}
			}
		}
	}
}

func TestApplyNNI(t *testing.T) {
	tr := parse(t, "((A,B),(C,D));")
	orig := tr.Clone()

	m := rearrange.Move{
		Kind:   rearrange.NNI,
		Anchor: 1,
		Node:   find(t, tr, "A"),
		Target: find(t, tr, "C"),
	}
	tk, err := rearrange.Apply(tr, m)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	want := "((C,B),(A,D));"
	if got := newick.String(tr); got != want {
		t.Errorf("nni: got %q, want %q", got, want)
	}
	if tk.Move() != m {
		t.Errorf("token: got %v, want %v", tk.Move(), m)
	}
	if err := rearrange.Revert(tr, tk); err != nil {
		t.Fatalf("revert: %v", err)
	}
	if !tr.Equal(orig) {
		t.Errorf("revert: got %q", newick.String(tr))
	}
}

func TestApplySPR(t *testing.T) {
	tests := map[string]struct {
		tree   string
		node   string
		target string
		want   string
	}{
		"suppress internal": {
			tree:   "((A:1,B:1):1,(C:1,D:2):1);",
			node:   "A",
			target: "D",
			want:   "(B:2,(C:1,(D:1,A:1):1):1);",
		},
		"suppress root": {
			tree:   "(A:1,(B:1,(C:1,D:2):1):3);",
			node:   "A",
			target: "D",
			want:   "(B:1,(C:1,(D:1,A:1):1):1);",
		},
		"multifurcation": {
			tree:   "(A:1,B:1,(C:1,D:2):2);",
			node:   "A",
			target: "B",
			want:   "((B:0.5,A:1):0.5,(C:1,D:2):2);",
		},
	}

	for name, test := range tests {
		tr := parse(t, test.tree)
		orig := tr.Clone()
		m := rearrange.Move{
			Kind:   rearrange.SPR,
			Anchor: 1,
			Node:   find(t, tr, test.node),
			Target: find(t, tr, test.target),
		}
		tk, err := rearrange.Apply(tr, m)
		if err != nil {
			t.Fatalf("%s: apply: %v", name, err)
		}
		if got := newick.String(tr); got != test.want {
			t.Errorf("%s: got %q, want %q", name, got, test.want)
		}
		if err := rearrange.Revert(tr, tk); err != nil {
			t.Fatalf("%s: revert: %v", name, err)
		}
		if !tr.Equal(orig) {
			t.Errorf("%s: revert: got %q, want %q", name, newick.String(tr), test.tree)
		}
	}
}

func TestApplyFlip(t *testing.T) {
	tests := map[string]struct {
		tree   string
		node   string
		up     int
		target string
		want   string
	}{
		"binary": {
			tree:   "((A:1,B:1):1,((C:1,D:1):1,E:1):1);",
			node:   "C",
			up:     2,
			target: "C",
			want:   "((A:1,B:1):1,(C:0.5,(D:1,E:2):0.5):1);",
		},
		"multifurcation": {
			tree:   "(A:1,(B:1,C:1,D:1):2);",
			node:   "B",
			up:     1,
			target: "C",
			want:   "(A:1,(C:0.5,(B:1,D:1):0.5):2);",
		},
	}

	for name, test := range tests {
		tr := parse(t, test.tree)
		orig := tr.Clone()

		c := find(t, tr, test.node)
		for i := 0; i < test.up; i++ {
			c = tr.Parent(c)
		}
		m := rearrange.Move{
			Kind:   rearrange.SPR,
			Node:   c,
			Target: find(t, tr, test.target),
			Flip:   true,
		}
		tk, err := rearrange.Apply(tr, m)
		if err != nil {
			t.Fatalf("%s: apply: %v", name, err)
		}
		if got := newick.String(tr); got != test.want {
			t.Errorf("%s: got %q, want %q", name, got, test.want)
		}
		if err := rearrange.Revert(tr, tk); err != nil {
			t.Fatalf("%s: revert: %v", name, err)
		}
		if !tr.Equal(orig) {
			t.Errorf("%s: revert: got %q, want %q", name, newick.String(tr), test.tree)
		}
	}
}

func TestFlipRevert(t *testing.T) {
	for name, nwk := range testTrees {
		tr := parse(t, nwk)
		orig := tr.Clone()
		terms := tr.Terms()

		for _, c := range tr.PreOrder() {
			ch := tr.Children(c)
			if tr.IsRoot(c) || len(ch) < 2 {
				continue
			}
			for _, x := range tr.PreOrder() {
				if x == c || !isDescendant(tr, c, x) {
					continue
				}
				if len(ch) == 2 && tr.Parent(x) == c {
					continue
				}
				m := rearrange.Move{Kind: rearrange.SPR, Node: c, Target: x, Flip: true}
				tk, err := rearrange.Apply(tr, m)
				if err != nil {
					t.Fatalf("%s: apply %v: %v", name, m, err)
				}
				moved := parse(t, newick.String(tr))
				if got := moved.Terms(); !reflect.DeepEqual(got, terms) {
					t.Errorf("%s: apply %v: terms %v, want %v", name, m, got, terms)
				}
				if newick.Canonical(moved) == newick.Canonical(orig) {
					t.Errorf("%s: apply %v: same tree", name, m)
				}

				if err := rearrange.Revert(tr, tk); err != nil {
					t.Fatalf("%s: revert %v: %v", name, m, err)
				}
				if !tr.Equal(orig) {
					t.Fatalf("%s: revert %v: got %s, want %s", name, m, newick.String(tr), newick.String(orig))
				}
			}
		}
	}
}

func TestApplyErrors(t *testing.T) {
	tr := parse(t, "((A,B),(C,D));")
	a := find(t, tr, "A")
	b := find(t, tr, "B")
	c := find(t, tr, "C")

	invalid := []rearrange.Move{
		{Kind: rearrange.NNI, Node: a, Target: b},
		{Kind: rearrange.NNI, Node: a, Target: tr.Root()},
		{Kind: rearrange.NNI, Node: a, Target: tr.Parent(a)},
		{Kind: rearrange.SPR, Node: a, Target: b},
		{Kind: rearrange.SPR, Node: a, Target: tr.Parent(a)},
		{Kind: rearrange.SPR, Node: tr.Parent(a), Target: a},
		{Kind: rearrange.SPR, Node: tr.Root(), Target: c},
		{Kind: rearrange.SPR, Node: a, Target: 100},
		{Kind: rearrange.All, Node: a, Target: c},
		{Kind: rearrange.SPR, Node: tr.Parent(a), Target: c, Flip: true},
		{Kind: rearrange.SPR, Node: tr.Parent(a), Target: a, Flip: true},
		{Kind: rearrange.SPR, Node: tr.Root(), Target: a, Flip: true},
		{Kind: rearrange.SPR, Node: a, Target: b, Flip: true},
	}
	for _, m := range invalid {
		if _, err := rearrange.Apply(tr, m); !errors.Is(err, rearrange.ErrInvalidMove) {
			t.Errorf("move %v: got %v, want %v", m, err, rearrange.ErrInvalidMove)
		}
		if tr.Editing() {
			t.Fatalf("move %v: tree in edit mode after an invalid move", m)
		}
	}

	tk, err := rearrange.Apply(tr, rearrange.Move{Kind: rearrange.SPR, Node: a, Target: c})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if _, err := rearrange.Apply(tr, rearrange.Move{Kind: rearrange.NNI, Node: b, Target: c}); !errors.Is(err, tree.ErrPendingEdit) {
		t.Errorf("pending move: got %v, want %v", err, tree.ErrPendingEdit)
	}
	if err := rearrange.Revert(tr, tk); err != nil {
		t.Fatalf("revert: %v", err)
	}
	if err := rearrange.Revert(tr, tk); err == nil {
		t.Errorf("double revert: expecting error")
	}
}

func TestNNINeighbors(t *testing.T) {
	top := newTopology(t, "(((A,B),C),(D,E));")
	res, err := rearrange.Enumerate(top, rearrange.NNI, 1)
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}

	// a binary tree with n leaves has 2(n-3) NNI neighbors
	if len(res) != 4 {
		t.Errorf("nni neighbors: got %d, want %d", len(res), 4)
	}
	keys := testResults(t, top.t, res)
	if len(keys) != len(res) {
		t.Errorf("nni neighbors: got %d distinct trees, want %d", len(keys), len(res))
	}

	spr, err := rearrange.Enumerate(top, rearrange.SPR, 3)
	if err != nil {
		t.Fatalf("enumerate: %v", err)
	}
	sprKeys := testResults(t, top.t, spr)
	for k := range keys {
		if !sprKeys[k] {
			t.Errorf("nni neighbor %s not found in spr neighbors", k)
		}
	}
}

func TestNNIRadius(t *testing.T) {
	tests := map[string]string{
		"balanced 8":    "(((A,B),(C,D)),((E,F),(G,H)));",
		"balanced 10":   "((((A,B),(C,D)),((E,F),(G,H))),(I,J));",
		"caterpillar 8": "(A,(B,(C,(D,(E,(F,(G,H)))))));",
		"unbalanced 10": "(((A,B),((C,D),(E,F))),(((G,H),I),J));",
	}

	for name, nwk := range tests {
		top := leafTopology(t, nwk)
		n := top.t.NumLeaves()

		// a binary tree with n leaves has 2(n-3) NNI neighbors
		want := 2 * (n - 3)
		var prev int
		for r := 1; r <= 10; r++ {
			res, err := rearrange.Enumerate(top, rearrange.NNI, r)
			if err != nil {
				t.Fatalf("%s: radius %d: %v", name, r, err)
			}
			testResults(t, top.t, res)
			if len(res) < prev {
				t.Errorf("%s: radius %d: got %d neighbors, want at least %d", name, r, len(res), prev)
			}
			prev = len(res)
		}
		if prev != want {
			t.Errorf("%s: got %d neighbors, want %d", name, prev, want)
		}
	}

	// internal edges far from leaves and the root
	// are only reached with a larger radius
	top := leafTopology(t, tests["balanced 10"])
	near, err := rearrange.Enumerate(top, rearrange.NNI, 1)
	if err != nil {
		t.Fatalf("radius 1: %v", err)
	}
	if len(near) >= 14 {
		t.Errorf("radius 1: got %d neighbors, want less than %d", len(near), 14)
	}
	far, err := rearrange.Enumerate(top, rearrange.NNI, 2)
	if err != nil {
		t.Fatalf("radius 2: %v", err)
	}
	if len(far) != 14 {
		t.Errorf("radius 2: got %d neighbors, want %d", len(far), 14)
	}
}

func TestNeighborhood(t *testing.T) {
	nwk := "(((A,B),(C,D)),((E,F),(G,H)));"
	top := leafTopology(t, nwk)
	orig := top.t.Clone()
	n := top.t.NumLeaves()

	branches, err := rearrange.Neighborhood(top, rearrange.All)
	if err != nil {
		t.Fatalf("neighborhood: %v", err)
	}
	if !top.t.Equal(orig) {
		t.Errorf("tree changed after neighborhood: got %q", newick.String(top.t))
	}

	// an unrooted binary tree has 2n-3 branches
	if len(branches) != 2*n-3 {
		t.Errorf("branches: got %d, want %d", len(branches), 2*n-3)
	}
	if want := []string{"E", "F", "G", "H"}; !reflect.DeepEqual(branches[0].Split, want) {
		t.Errorf("root branch split: got %v, want %v", branches[0].Split, want)
	}

	sk := newick.Canonical(orig)
	nni := make(map[string]bool)
	spr := make(map[string]bool)
	for _, b := range branches {
		var numNNI, numSPR int
		for _, r := range b.Results {
			tr := parse(t, r.Topology)
			k := newick.Canonical(tr)
			if k == sk {
				t.Errorf("branch %v: move %v: starting tree", b.Split, r.Move)
			}
			switch r.Move.Kind {
			case rearrange.NNI:
				nni[k] = true
				numNNI++
			case rearrange.SPR:
				spr[k] = true
				numSPR++
			}
		}

		leaf := top.t.IsLeaf(b.Node)
		if leaf && numNNI != 0 {
			t.Errorf("leaf branch %v: got %d nni moves, want 0", b.Split, numNNI)
		}
		if !leaf && numNNI != 2 {
			t.Errorf("internal branch %v: got %d nni moves, want 2", b.Split, numNNI)
		}

		// a pruned leaf can be regrafted
		// in any other branch of the tree
		if leaf && numSPR != 2*n-6 {
			t.Errorf("leaf branch %v: got %d spr moves, want %d", b.Split, numSPR, 2*n-6)
		}
	}

	if len(nni) != 2*(n-3) {
		t.Errorf("nni neighbors: got %d, want %d", len(nni), 2*(n-3))
	}
	// the SPR neighborhood of an unrooted binary tree
	// has 2(n-3)(2n-7) trees
	if want := 2 * (n - 3) * (2*n - 7); len(spr) != want {
		t.Errorf("spr neighbors: got %d, want %d", len(spr), want)
	}
	for k := range nni {
		if !spr[k] {
			t.Errorf("nni neighbor %s not found in spr neighbors", k)
		}
	}
}

func TestNeighborhoodScores(t *testing.T) {
	for name, nwk := range testTrees {
		top := newTopology(t, nwk)
		orig := top.t.Clone()
		base, err := top.Score()
		if err != nil {
			t.Fatalf("%s: score: %v", name, err)
		}

		branches, err := rearrange.Neighborhood(top, rearrange.SPR)
		if err != nil {
			t.Fatalf("%s: neighborhood: %v", name, err)
		}
		if !top.t.Equal(orig) {
			t.Errorf("%s: tree changed after neighborhood", name)
		}
		if after, _ := top.Score(); after != base {
			t.Errorf("%s: score %g, want %g", name, after, base)
		}
		for _, b := range branches {
			testResults(t, orig, b.Results)
			for _, r := range b.Results {
				want, err := parsimony.Score(parse(t, r.Topology), top.profiles, top.weights, top.taxa)
				if err != nil {
					t.Fatalf("%s: score %q: %v", name, r.Topology, err)
				}
				if r.Score != want {
					t.Errorf("%s: move %v: score %g, want %g", name, r.Move, r.Score, want)
				}
			}
		}
	}

	small, err := rearrange.Neighborhood(newTopology(t, "(A,(B,C));"), rearrange.All)
	if err != nil {
		t.Fatalf("small tree: %v", err)
	}
	if len(small) != 0 {
		t.Errorf("small tree: got %d branches, want 0", len(small))
	}
}

func TestEnumerate(t *testing.T) {
	for name, nwk := range testTrees {
		for _, kind := range []rearrange.Kind{rearrange.NNI, rearrange.SPR, rearrange.All} {
			for _, radius := range []int{1, 2, 5} {
				top := newTopology(t, nwk)
				orig := top.t.Clone()
				base, err := top.Score()
				if err != nil {
					t.Fatalf("%s: score: %v", name, err)
				}

				res, err := rearrange.Enumerate(top, kind, radius)
				if err != nil {
					t.Fatalf("%s: %v radius %d: %v", name, kind, radius, err)
				}
				if !top.t.Equal(orig) {
					t.Errorf("%s: %v radius %d: tree changed after enumeration", name, kind, radius)
				}
				after, err := top.Score()
				if err != nil {
					t.Fatalf("%s: score: %v", name, err)
				}
				if base != after {
					t.Errorf("%s: %v radius %d: score %g, want %g", name, kind, radius, after, base)
				}

				var numSPR int
				for _, r := range res {
					if kind != rearrange.All && r.Move.Kind != kind {
						t.Errorf("%s: %v radius %d: unexpected move %v", name, kind, radius, r.Move)
					}
					if r.Move.Kind == rearrange.SPR {
						numSPR++
					}
					want, err := parsimony.Score(parse(t, r.Topology), top.profiles, top.weights, top.taxa)
					if err != nil {
						t.Fatalf("%s: score %q: %v", name, r.Topology, err)
					}
					if r.Score != want {
						t.Errorf("%s: %v radius %d: move %v: score %g, want %g", name, kind, radius, r.Move, r.Score, want)
					}
				}
				if limit := rearrange.MaxSPR(top.t.NumLeaves()); numSPR > limit {
					t.Errorf("%s: %v radius %d: %d spr moves, max %d", name, kind, radius, numSPR, limit)
				}
				if kind != rearrange.All {
					testResults(t, orig, res)
				}

				// determinism
				again, err := rearrange.Enumerate(top, kind, radius)
				if err != nil {
					t.Fatalf("%s: %v radius %d: %v", name, kind, radius, err)
				}
				if !reflect.DeepEqual(res, again) {
					t.Errorf("%s: %v radius %d: enumeration is not deterministic", name, kind, radius)
				}
			}
		}
	}
}

func TestEnumerateRadius(t *testing.T) {
	top := newTopology(t, testTrees["caterpillar"])
	var prev int
	for r := 1; r <= 6; r++ {
		res, err := rearrange.Enumerate(top, rearrange.SPR, r)
		if err != nil {
			t.Fatalf("radius %d: %v", r, err)
		}
		if len(res) < prev {
			t.Errorf("radius %d: got %d moves, want at least %d", r, len(res), prev)
		}
		prev = len(res)
	}

	if _, err := rearrange.Enumerate(top, rearrange.SPR, 0); !errors.Is(err, rearrange.ErrInvalidRadius) {
		t.Errorf("radius 0: got %v, want %v", err, rearrange.ErrInvalidRadius)
	}
}

func TestEnumerateSmall(t *testing.T) {
	top := newTopology(t, "(A,(B,C));")
	res, err := rearrange.Enumerate(top, rearrange.All, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res) != 0 {
		t.Errorf("small tree: got %d moves, want 0", len(res))
	}
}

var errScore = errors.New("score failure")

// failTopology fails after a number of scores.
type failTopology struct {
	*parsTopology
	calls int
	fail  int
}

func (ft *failTopology) Score() (float64, error) {
	ft.calls++
	if ft.calls == ft.fail {
		return 0, errScore
	}
	return ft.parsTopology.Score()
}

// driftTopology returns a different score each time.
type driftTopology struct {
	*parsTopology
	calls int
}

func (dt *driftTopology) Score() (float64, error) {
	dt.calls++
	return float64(dt.calls), nil
}

func TestEnumerateErrors(t *testing.T) {
	ft := &failTopology{
		parsTopology: newTopology(t, testTrees["binary"]),
		fail:         3,
	}
	orig := ft.t.Clone()
	if _, err := rearrange.Enumerate(ft, rearrange.SPR, 2); !errors.Is(err, errScore) {
		t.Errorf("oracle error: got %v, want %v", err, errScore)
	}
	if ft.t.Editing() {
		t.Errorf("oracle error: tree in edit mode")
	}
	if !ft.t.Equal(orig) {
		t.Errorf("oracle error: got %q, want %q", newick.String(ft.t), newick.String(orig))
	}

	dt := &driftTopology{parsTopology: newTopology(t, testTrees["binary"])}
	if _, err := rearrange.Enumerate(dt, rearrange.NNI, 1); !errors.Is(err, rearrange.ErrOracleDesync) {
		t.Errorf("desync: got %v, want %v", err, rearrange.ErrOracleDesync)
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]rearrange.Kind{
		"nni": rearrange.NNI,
		"SPR": rearrange.SPR,
		"All": rearrange.All,
	}
	for s, want := range tests {
		k, err := rearrange.ParseKind(s)
		if err != nil {
			t.Errorf("kind %q: unexpected error: %v", s, err)
			continue
		}
		if k != want {
			t.Errorf("kind %q: got %v, want %v", s, k, want)
		}
	}
	if _, err := rearrange.ParseKind("tbr"); err == nil {
		t.Errorf("kind %q: expecting error", "tbr")
	}
	if rearrange.NNI.String() != "NNI" || rearrange.SPR.String() != "SPR" {
		t.Errorf("kind names: got %q, %q", rearrange.NNI, rearrange.SPR)
	}
}

func TestMaxSPR(t *testing.T) {
	tests := map[int]int{
		3:  0,
		4:  11,
		5:  28,
		10: 233,
	}
	for n, want := range tests {
		if got := rearrange.MaxSPR(n); got != want {
			t.Errorf("max spr %d: got %d, want %d", n, got, want)
		}
	}
}

// testResults checks that the results are different trees
// and different from the starting tree,
// and returns the set of canonical trees.
func testResults(t testing.TB, start *tree.Tree, res []rearrange.Result) map[string]bool {
	t.Helper()

	sk := newick.Canonical(start)
	keys := make(map[string]bool, len(res))
	for _, r := range res {
		k := newick.Canonical(parse(t, r.Topology))
		if k == sk {
			t.Errorf("move %v: starting tree", r.Move)
		}
		if keys[k] {
			t.Errorf("move %v: repeated tree %s", r.Move, k)
		}
		keys[k] = true
	}
	return keys
}

// leafTopology returns a topology
// scored with a single character
// with a different state on each leaf.
func leafTopology(t testing.TB, nwk string) *parsTopology {
	t.Helper()

	tr := parse(t, nwk)
	taxa := make(map[string]int)
	var prof strings.Builder
	for i, tm := range tr.Terms() {
		taxa[tm] = i
		prof.WriteByte(byte('0' + i%10))
	}
	return &parsTopology{
		t:        tr,
		profiles: []string{prof.String()},
		weights:  []float64{1},
		taxa:     taxa,
	}
}

func isDescendant(tr *tree.Tree, a, n int) bool {
	for ; n >= 0; n = tr.Parent(n) {
		if n == a {
			return true
		}
	}
	return false
}

func parse(t testing.TB, nwk string) *tree.Tree {
	t.Helper()

	tr, err := newick.Parse(nwk)
	if err != nil {
		t.Fatalf("parse %q: %v", nwk, err)
	}
	return tr
}

func find(t testing.TB, tr *tree.Tree, label string) int {
	t.Helper()

	for _, id := range tr.PostOrder() {
		if tr.Label(id) == label {
			return id
		}
	}
	t.Fatalf("label %q not found", label)
	return -1
}
