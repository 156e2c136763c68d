// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick_test

import (
	"bytes"
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/js-arias/treeland/newick"
	"github.com/js-arias/treeland/tree"
)

func TestParse(t *testing.T) {
	tests := map[string]struct {
		in     string
		terms  []string
		nodes  int
		rootCh int
	}{
		"binary": {
			in:     "((A,B),(C,D));",
			terms:  []string{"A", "B", "C", "D"},
			nodes:  7,
			rootCh: 2,
		},
		"multifurcating": {
			in:     "(A,B,C,(D,E,F));",
			terms:  []string{"A", "B", "C", "D", "E", "F"},
			nodes:  8,
			rootCh: 4,
		},
		"lengths": {
			in:     "(A:0.1,B:0.2,(C:0.3,D:0.4):0.5);",
			terms:  []string{"A", "B", "C", "D"},
			nodes:  6,
			rootCh: 3,
		},
		"anonymous": {
			in:     "(:1,'',(:0.5,:2));",
			terms:  []string{"", "", "", ""},
			nodes:  6,
			rootCh: 3,
		},
		"blanks": {
			in:     " ( A , B\n,\t( C , D ) E ) F ;\n",
			terms:  []string{"A", "B", "C", "D"},
			nodes:  6,
			rootCh: 3,
		},
		"comments": {
			in:     "(A[a comment],B)[&&NHX];",
			terms:  []string{"A", "B"},
			nodes:  3,
			rootCh: 2,
		},
		"quoted": {
			in:     "('Acer campbellii','O''Brien');",
			terms:  []string{"Acer campbellii", "O'Brien"},
			nodes:  3,
			rootCh: 2,
		},
		"single": {
			in:     "A;",
			terms:  []string{"A"},
			nodes:  1,
			rootCh: 0,
		},
	}

	for name, test := range tests {
		tr, err := newick.Parse(test.in)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", name, err)
			continue
		}
		if got := tr.Terms(); !reflect.DeepEqual(got, test.terms) {
			t.Errorf("%s: terms: got %q, want %q", name, got, test.terms)
		}
		if got := tr.Len(); got != test.nodes {
			t.Errorf("%s: nodes: got %d, want %d", name, got, test.nodes)
		}
		if got := len(tr.Children(tr.Root())); got != test.rootCh {
			t.Errorf("%s: root children: got %d, want %d", name, got, test.rootCh)
		}
	}
}

func TestLabelLengthOrder(t *testing.T) {
	for _, in := range []string{
		"((A,B)X:0.5,C);",
		"((A,B):0.5X,C);",
		"((A,B):0.5 X,C);",
		"((A,B) X : 0.5,C);",
	} {
		tr, err := newick.Parse(in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", in, err)
			continue
		}
		x := tr.Children(tr.Root())[0]
		if lbl := tr.Label(x); lbl != "X" {
			t.Errorf("%q: label: got %q, want %q", in, lbl, "X")
		}
		if l := tr.Length(x); l != 0.5 {
			t.Errorf("%q: length: got %g, want %g", in, l, 0.5)
		}
		if tr.IsLeaf(x) {
			t.Errorf("%q: node %q: want internal node", in, "X")
		}
	}
}

func TestNumericLabels(t *testing.T) {
	tr, err := newick.Parse("(1,2.5,(3,4)0.95:1e-3);")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"1", "2.5", "3", "4"}
	if got := tr.Terms(); !reflect.DeepEqual(got, want) {
		t.Errorf("terms: got %q, want %q", got, want)
	}

	in := tr.Children(tr.Root())[2]
	if lbl := tr.Label(in); lbl != "0.95" {
		t.Errorf("internal label: got %q, want %q", lbl, "0.95")
	}
	if l := tr.Length(in); l != 0.001 {
		t.Errorf("internal length: got %g, want %g", l, 0.001)
	}
	for _, id := range tr.Leaves() {
		if tr.Length(id) != 0 {
			t.Errorf("leaf %q: length: got %g, want 0", tr.Label(id), tr.Length(id))
		}
	}
}

func TestParseError(t *testing.T) {
	tests := map[string]struct {
		in     string
		offset int
	}{
		"no terminal":      {"(A,B)", 5},
		"unbalanced":       {"((A,B);", 6},
		"open list":        {"(A,B", 4},
		"bad length":       {"(A:x,B);", 3},
		"negative length":  {"(A:-1,B);", 3},
		"double length":    {"(A:1:2,B);", 4},
		"double label":     {"((A,B)X:1Y,C);", 9},
		"trailing text":    {"(A,B);junk", 6},
		"unterminated":     {"('A,B);", 1},
		"empty":            {"", 0},
		"unexpected close": {"(A,B));", 5},
		"empty list":       {"();", 1},
		"empty child":      {"(A,,B);", 3},
		"empty last child": {"(A,(B,C),);", 9},
		"length and dot":   {"(A:1.5.3,B);", 6},
		"length and sign":  {"(A:1-2,B);", 4},
	}

	for name, test := range tests {
		tr, err := newick.Parse(test.in)
		if err == nil {
			t.Errorf("%s: expecting error, got tree %q", name, newick.String(tr))
			continue
		}
		var pe *newick.ParseError
		if !errors.As(err, &pe) {
			t.Errorf("%s: got error %v (%T), want *newick.ParseError", name, err, err)
			continue
		}
		if pe.Offset != test.offset {
			t.Errorf("%s: offset: got %d, want %d [%v]", name, pe.Offset, test.offset, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	for _, in := range []string{
		"((A:0.1,B:0.2)X:0.3,(C,D:4.25)Y,E:1e-08)root;",
		"('',:1,(:0.5,''));",
		"('Acer campbellii':1,'O''Brien',(C,D));",
		"(A,B,C,D,E,F,G);",
	} {
		tr, err := newick.Parse(in)
		if err != nil {
			t.Errorf("%q: unexpected error: %v", in, err)
			continue
		}
		out := newick.String(tr)
		nt, err := newick.Parse(out)
		if err != nil {
			t.Errorf("%q: output %q: unexpected error: %v", in, out, err)
			continue
		}
		if !tr.Equal(nt) {
			t.Errorf("%q: output %q: trees are different", in, out)
		}
		testClades(t, in, tr, nt)
	}
}

func TestWrite(t *testing.T) {
	tr, err := newick.Parse("((A:1,B:2)X:0.5,C:3);")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var w bytes.Buffer
	if err := newick.Write(&w, tr, false); err != nil {
		t.Fatalf("unable to write tree: %v", err)
	}
	want := "((A,B)X,C);\n"
	if got := w.String(); got != want {
		t.Errorf("topology: got %q, want %q", got, want)
	}
	if got := newick.Topology(tr); got != strings.TrimSpace(want) {
		t.Errorf("topology: got %q, want %q", got, strings.TrimSpace(want))
	}
}

func TestCanonical(t *testing.T) {
	same := []string{
		"((A,B),(C,D));",
		"((D,C),(B,A));",
		"(A,B,(C,D));",
		"(((C,D)X:1,A:2),B:3);",
		"(B,(A,(C,D)));",
	}
	want := newick.Canonical(parse(t, same[0]))
	for _, s := range same[1:] {
		if got := newick.Canonical(parse(t, s)); got != want {
			t.Errorf("%q: got %q, want %q", s, got, want)
		}
	}

	other := newick.Canonical(parse(t, "((A,C),(B,D));"))
	if other == want {
		t.Errorf("%q: unexpected canonical %q", "((A,C),(B,D));", other)
	}

	if got := newick.Canonical(parse(t, "((A,B),C);")); got != "(A,B,C);" {
		t.Errorf("three leaves: got %q, want %q", got, "(A,B,C);")
	}
}

func TestReader(t *testing.T) {
	in := "(A,B,(X,Y)C)ROOT;\n(A,B,C)ROOT;\n\n"
	r := newick.NewReader(strings.NewReader(in))
	trees, err := r.ReadAll()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trees) != 2 {
		t.Fatalf("trees: got %d, want %d", len(trees), 2)
	}
	if got := trees[1].Terms(); !reflect.DeepEqual(got, []string{"A", "B", "C"}) {
		t.Errorf("tree 1: terms: got %q", got)
	}

	r = newick.NewReader(strings.NewReader("(A,B);(C,D"))
	if _, err := r.ReadAll(); err == nil {
		t.Errorf("expecting error on incomplete second tree")
	}
}

func parse(t testing.TB, s string) *tree.Tree {
	t.Helper()

	tr, err := newick.Parse(s)
	if err != nil {
		t.Fatalf("%q: unexpected error: %v", s, err)
	}
	return tr
}

// testClades checks that both trees have the same set of leaves
// under every internal node.
func testClades(t testing.TB, name string, a, b *tree.Tree) {
	t.Helper()

	ca := clades(a)
	cb := clades(b)
	if !reflect.DeepEqual(ca, cb) {
		t.Errorf("%s: clades: got %v, want %v", name, cb, ca)
	}
}

func clades(t *tree.Tree) map[string]bool {
	desc := make(map[int][]string)
	cl := make(map[string]bool)
	for _, id := range t.PostOrder() {
		if t.IsLeaf(id) {
			desc[id] = []string{t.Label(id)}
			continue
		}
		var ls []string
		for _, c := range t.Children(id) {
			ls = append(ls, desc[c]...)
		}
		desc[id] = ls
		s := slices.Clone(ls)
		slices.Sort(s)
		cl[strings.Join(s, ",")] = true
	}
	return cl
}
