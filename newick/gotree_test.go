// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package newick_test

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	gtnewick "github.com/evolbioinfo/gotree/io/newick"
	"github.com/js-arias/treeland/newick"
)

// TestGotree compares the terminals read by the parser
// with the ones read by gotree,
// and checks that the written tree is read by gotree.
func TestGotree(t *testing.T) {
	for _, in := range []string{
		"((A:0.1,B:0.2)X:0.3,(C,D:4.25)Y,E:1e-08);",
		"(A,B,C,(D,E,F));",
		"((Eoraptor_lunensis:1,Ceratosaurus_nasicornis:2):3,Carnotaurus_sastrei:4);",
	} {
		tr := parse(t, in)
		for _, s := range []string{in, newick.String(tr)} {
			gt, err := gtnewick.NewParser(strings.NewReader(s)).Parse()
			if err != nil {
				t.Errorf("%q: gotree: unexpected error: %v", s, err)
				continue
			}
			var names []string
			for _, tip := range gt.Tips() {
				names = append(names, tip.Name())
			}
			slices.Sort(names)
			if want := tr.Terms(); !reflect.DeepEqual(names, want) {
				t.Errorf("%q: gotree terminals: got %q, want %q", s, names, want)
			}
		}
	}
}
