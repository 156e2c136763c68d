// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package searchparam implements reading and writing
// of the parameters used to evaluate
// the neighborhood of a tree.
package searchparam

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/js-arias/treeland/cats"
	"github.com/js-arias/treeland/oracle"
	"github.com/js-arias/treeland/rearrange"
)

// Param is a keyword to identify
// the type of parameter in a parameter file.
type Param string

// Valid parameters
const (
	// Alpha is the parameter of the function
	// used for the rate categories.
	Alpha Param = "alpha"

	// Cats is the number of rate categories.
	Cats Param = "cats"

	// Iterations is the maximum number of iterations
	// of the branch length optimization.
	Iterations Param = "iterations"

	// Moves is the kind of rearrangements.
	Moves Param = "moves"

	// Radius is the maximum distance
	// between the pruned and the regraft branch
	// of an SPR move.
	Radius Param = "radius"

	// Relaxed is the function used for the rate categories.
	Relaxed Param = "relaxed"

	// Tolerance is the minimum improvement
	// of the branch length optimization.
	Tolerance Param = "tolerance"
)

// Params represents a collection of search parameters.
type Params struct {
	name string // file name

	moves  rearrange.Kind
	radius int

	// rate categories
	r     string // function
	alpha float64
	c     int

	// optimization
	iter int
	tol  float64
}

// New creates a new parameter collection
// with default values.
func New(name string) *Params {
	set := oracle.DefaultSettings()
	return &Params{
		name:   name,
		moves:  rearrange.All,
		radius: 3,
		r:      "gamma",
		alpha:  set.Alpha,
		c:      set.Cats,
		iter:   set.Iterations,
		tol:    set.Tolerance,
	}
}

var header = []string{
	"parameter",
	"value",
}

// Read reads a parameter file from a TSV file.
//
// The TSV must contains the following fields:
//
//   - parameter, the name of the parameter
//   - value, the value of the parameter
//
// Here is an example file:
//
//	# treeland search parameters
//	parameter	value
//	moves	SPR
//	radius	3
//	relaxed	gamma
//	alpha	0.5
//	cats	4
func Read(name string) (*Params, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("on file %q: header: %v", name, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("on file %q: expecting field %q", name, h)
		}
	}

	sp := New(name)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}

		f := "parameter"
		p := Param(strings.ToLower(row[fields[f]]))

		f = "value"
		v := row[fields[f]]
		switch p {
		case Alpha:
			a, err := strconv.ParseFloat(v, 64)
			if err == nil {
				err = sp.SetAlpha(a)
			}
			if err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
		case Cats:
			c, err := strconv.Atoi(v)
			if err == nil {
				err = sp.SetCats(c)
			}
			if err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
		case Iterations:
			it, err := strconv.Atoi(v)
			if err == nil {
				err = sp.SetIterations(it)
			}
			if err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
		case Moves:
			if err := sp.SetMoves(v); err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
		case Radius:
			r, err := strconv.Atoi(v)
			if err == nil {
				err = sp.SetRadius(r)
			}
			if err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
		case Relaxed:
			if err := sp.SetRelaxed(v); err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
		case Tolerance:
			tol, err := strconv.ParseFloat(v, 64)
			if err == nil {
				err = sp.SetTolerance(tol)
			}
			if err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
		}
	}
	return sp, nil
}

// Alpha returns the parameter of the rate categories function.
func (sp *Params) Alpha() float64 {
	return sp.alpha
}

// Cats returns the number of rate categories.
func (sp *Params) Cats() int {
	return sp.c
}

// Function returns the name of the function
// used for the rate categories.
func (sp *Params) Function() string {
	return sp.r
}

// Iterations returns the maximum number of iterations
// of the branch length optimization.
func (sp *Params) Iterations() int {
	return sp.iter
}

// Moves returns the kind of rearrangements.
func (sp *Params) Moves() rearrange.Kind {
	return sp.moves
}

// Name returns the name used for a set of parameters.
func (sp *Params) Name() string {
	return sp.name
}

// Radius returns the SPR radius.
func (sp *Params) Radius() int {
	return sp.radius
}

// Relaxed returns the distribution of the rate categories.
func (sp *Params) Relaxed() cats.Discrete {
	d, err := cats.Parse(fmt.Sprintf("%s=%g", sp.r, sp.alpha), sp.c)
	if err != nil {
		panic(fmt.Sprintf("invalid rate function: %v", err))
	}
	return d
}

// Settings returns the settings for a likelihood problem
// using the indicated parameters.
func (sp *Params) Settings() oracle.Settings {
	return oracle.Settings{
		Cats:       sp.c,
		Alpha:      sp.alpha,
		Dist:       sp.Relaxed(),
		Iterations: sp.iter,
		Tolerance:  sp.tol,
	}
}

// Tolerance returns the minimum improvement
// of the branch length optimization.
func (sp *Params) Tolerance() float64 {
	return sp.tol
}

// SetAlpha sets the parameter of the rate categories function.
func (sp *Params) SetAlpha(a float64) error {
	if a <= 0 {
		return fmt.Errorf("invalid alpha value: %.6f", a)
	}
	sp.alpha = a
	return nil
}

// SetCats sets the number of rate categories.
func (sp *Params) SetCats(c int) error {
	if c < 1 {
		return fmt.Errorf("invalid number of categories: %d", c)
	}
	sp.c = c
	return nil
}

// SetIterations sets the maximum number of iterations
// of the branch length optimization.
func (sp *Params) SetIterations(it int) error {
	if it < 1 {
		return fmt.Errorf("invalid iterations value: %d", it)
	}
	sp.iter = it
	return nil
}

// SetMoves sets the kind of rearrangements.
func (sp *Params) SetMoves(s string) error {
	k, err := rearrange.ParseKind(s)
	if err != nil {
		return err
	}
	sp.moves = k
	return nil
}

// SetName sets the name of a parameter collection.
func (sp *Params) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	sp.name = name
}

// SetRadius sets the SPR radius.
func (sp *Params) SetRadius(r int) error {
	if r < 1 {
		return fmt.Errorf("invalid radius value: %d", r)
	}
	sp.radius = r
	return nil
}

// SetRelaxed sets the function used for the rate categories.
func (sp *Params) SetRelaxed(r string) error {
	r = strings.ToLower(strings.TrimSpace(r))
	switch r {
	case "gamma":
	case "lognormal":
	default:
		return fmt.Errorf("unknown function %q", r)
	}
	sp.r = r
	return nil
}

// SetTolerance sets the minimum improvement
// of the branch length optimization.
func (sp *Params) SetTolerance(tol float64) error {
	if tol <= 0 {
		return fmt.Errorf("invalid tolerance value: %g", tol)
	}
	sp.tol = tol
	return nil
}

// Write writes a parameter collection into a file.
func (sp *Params) Write() (err error) {
	f, err := os.Create(sp.name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	fmt.Fprintf(bw, "# treeland search parameters\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("on file %q: while writing header: %v", sp.name, err)
	}

	rows := [][]string{
		{string(Moves), sp.moves.String()},
		{string(Radius), strconv.Itoa(sp.radius)},
		{string(Relaxed), sp.r},
		{string(Alpha), strconv.FormatFloat(sp.alpha, 'g', -1, 64)},
		{string(Cats), strconv.Itoa(sp.c)},
		{string(Iterations), strconv.Itoa(sp.iter)},
		{string(Tolerance), strconv.FormatFloat(sp.tol, 'g', -1, 64)},
	}
	for _, row := range rows {
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("on file %q: %v", sp.name, err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", sp.name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", sp.name, err)
	}
	return nil
}
