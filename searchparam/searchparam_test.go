// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package searchparam_test

import (
	"os"
	"reflect"
	"testing"

	"github.com/js-arias/treeland/rearrange"
	"github.com/js-arias/treeland/searchparam"
)

func TestSearchParam(t *testing.T) {
	name := "tmp-search-parameters-for-test.tab"
	sp := searchparam.New(name)
	testSP(t, sp, nil, name)

	if err := sp.SetMoves("spr"); err != nil {
		t.Fatalf("set moves: %v", err)
	}
	sp.SetRadius(5)
	sp.SetCats(6)
	sp.SetAlpha(0.5)
	sp.SetRelaxed("LogNormal")
	sp.SetIterations(200)
	sp.SetTolerance(1e-4)

	defer os.Remove(name)
	if err := sp.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := searchparam.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testSP(t, np, sp, name)

	if np.Moves() != rearrange.SPR {
		t.Errorf("moves: got %v, want %v", np.Moves(), rearrange.SPR)
	}
	if f := np.Function(); f != "lognormal" {
		t.Errorf("function: got %q, want %q", f, "lognormal")
	}
	set := np.Settings()
	if set.Cats != 6 || set.Iterations != 200 || set.Tolerance != 1e-4 {
		t.Errorf("settings: got %+v", set)
	}
	if len(set.Dist.Cats()) != 6 {
		t.Errorf("settings: got %d categories, want %d", len(set.Dist.Cats()), 6)
	}
}

func TestSetErrors(t *testing.T) {
	sp := searchparam.New("test")
	if err := sp.SetMoves("tbr"); err == nil {
		t.Errorf("moves: expecting error")
	}
	if err := sp.SetRadius(0); err == nil {
		t.Errorf("radius: expecting error")
	}
	if err := sp.SetCats(0); err == nil {
		t.Errorf("cats: expecting error")
	}
	if err := sp.SetAlpha(-1); err == nil {
		t.Errorf("alpha: expecting error")
	}
	if err := sp.SetRelaxed("normal"); err == nil {
		t.Errorf("relaxed: expecting error")
	}
	if err := sp.SetIterations(0); err == nil {
		t.Errorf("iterations: expecting error")
	}
	if err := sp.SetTolerance(0); err == nil {
		t.Errorf("tolerance: expecting error")
	}

	// values are unchanged
	testSP(t, sp, nil, "test")
}

func testSP(t testing.TB, sp, want *searchparam.Params, name string) {
	t.Helper()

	if want == nil {
		want = searchparam.New(name)
	}

	if sp.Name() != want.Name() {
		t.Errorf("name: got %q, want %q", sp.Name(), want.Name())
	}
	if sp.Moves() != want.Moves() {
		t.Errorf("moves: got %v, want %v", sp.Moves(), want.Moves())
	}
	if sp.Radius() != want.Radius() {
		t.Errorf("radius: got %d, want %d", sp.Radius(), want.Radius())
	}
	if sp.Function() != want.Function() {
		t.Errorf("function: got %q, want %q", sp.Function(), want.Function())
	}
	if sp.Alpha() != want.Alpha() {
		t.Errorf("alpha: got %g, want %g", sp.Alpha(), want.Alpha())
	}
	if sp.Cats() != want.Cats() {
		t.Errorf("cats: got %d, want %d", sp.Cats(), want.Cats())
	}
	if sp.Iterations() != want.Iterations() {
		t.Errorf("iterations: got %d, want %d", sp.Iterations(), want.Iterations())
	}
	if sp.Tolerance() != want.Tolerance() {
		t.Errorf("tolerance: got %g, want %g", sp.Tolerance(), want.Tolerance())
	}
	if !reflect.DeepEqual(sp.Relaxed().Cats(), want.Relaxed().Cats()) {
		t.Errorf("relaxed: got %v, want %v", sp.Relaxed().Cats(), want.Relaxed().Cats())
	}
}
