// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package oracle implements a likelihood evaluator
// for a tree and an alignment,
// used to score the trees
// in the neighborhood of a tree.
//
// A Problem is a handle that owns its tree,
// data and buffers.
// It must be closed after use,
// either with Close,
// or by using the function With.
// A Problem is not safe for concurrent use.
package oracle

import (
	"errors"
	"fmt"
	"math"

	"github.com/js-arias/treeland/align"
	"github.com/js-arias/treeland/cats"
	"github.com/js-arias/treeland/newick"
	"github.com/js-arias/treeland/pruning"
	"github.com/js-arias/treeland/rearrange"
	"github.com/js-arias/treeland/tree"
	"gonum.org/v1/gonum/optimize"
)

// An Oracle evaluates a tree
// and its rearrangements.
type Oracle interface {
	// LogLikelihood returns the log likelihood of the tree,
	// after optimizing its parameters.
	LogLikelihood() (float64, error)

	// Moves returns the trees in the neighborhood
	// of the current tree,
	// produced by rearrangements of the given kind
	// and radius.
	Moves(kind rearrange.Kind, radius int) ([]rearrange.Result, error)

	// Close releases the resources of the oracle.
	Close() error
}

// ErrClosed is returned when a closed problem is used.
var ErrClosed = errors.New("oracle: problem closed")

// ErrConvergence is returned when the optimization
// of the branch lengths fails.
var ErrConvergence = errors.New("oracle: optimization failed to converge")

// An IOError is returned when an input file
// can not be read,
// or its content is invalid.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("oracle: on file %q: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// DefaultLength is the branch length assigned
// to branches without length.
const DefaultLength = 0.1

// MaxLength is the maximum branch length
// during optimization.
const MaxLength = 100

// Settings are the parameters of a problem.
type Settings struct {
	// Number of rate categories.
	Cats int

	// Alpha is the shape parameter
	// of the Gamma distribution
	// of the rate categories.
	Alpha float64

	// Dist is the distribution of the rate categories.
	// If nil,
	// a Gamma distribution with mean 1 and shape Alpha
	// is used.
	Dist cats.Discrete

	// Iterations is the maximum number of iterations
	// of the branch length optimization.
	Iterations int

	// Tolerance is the minimum improvement
	// of the log likelihood
	// during the branch length optimization.
	Tolerance float64
}

// DefaultSettings returns the default settings.
func DefaultSettings() Settings {
	return Settings{
		Cats:       4,
		Alpha:      1,
		Iterations: 5000,
		Tolerance:  1e-6,
	}
}

// A Problem is a tree
// with an alignment and a model.
type Problem struct {
	t      *tree.Tree
	pt     *pruning.Tree
	parts  []Partition
	set    Settings
	closed bool
}

// Open creates a new problem
// from an alignment file,
// a tree in Newick format,
// and a partition model file.
// If the model file is empty,
// all the alignment is used as a single DNA partition.
//
// The taxa of the tree and the alignment must be the same.
func Open(alignPath, nwk, modelPath string, set Settings) (*Problem, error) {
	aln, err := align.ReadFile(alignPath)
	if err != nil {
		return nil, &IOError{Path: alignPath, Err: err}
	}

	t, err := newick.Parse(nwk)
	if err != nil {
		return nil, &IOError{Path: "newick", Err: err}
	}
	if err := sameTaxa(t, aln); err != nil {
		return nil, &IOError{Path: alignPath, Err: err}
	}
	for _, id := range t.PreOrder() {
		if !t.IsRoot(id) && t.Length(id) <= 0 {
			t.SetLength(id, DefaultLength)
		}
	}

	parts := []Partition{{
		Model:    "DNA",
		Name:     "p1",
		Alphabet: pruning.DNA,
		From:     1,
		To:       aln.Len(),
	}}
	if modelPath != "" {
		parts, err = ReadModelFile(modelPath)
		if err != nil {
			return nil, &IOError{Path: modelPath, Err: err}
		}
	}
	data := make([]*pruning.Data, 0, len(parts))
	for _, p := range parts {
		d, err := pruning.NewData(p.Name, aln, p.Alphabet, p.From-1, p.To)
		if err != nil {
			return nil, &IOError{Path: modelPath, Err: err}
		}
		data = append(data, d)
	}

	if set.Cats < 1 {
		set.Cats = 1
	}
	dist := set.Dist
	if dist == nil {
		if set.Alpha <= 0 {
			return nil, fmt.Errorf("oracle: invalid alpha value %.6f", set.Alpha)
		}
		dist = cats.NewGamma(set.Alpha, set.Cats)
	}
	pt, err := pruning.New(t, cats.Rates(dist), data...)
	if err != nil {
		return nil, err
	}

	return &Problem{
		t:     t,
		pt:    pt,
		parts: parts,
		set:   set,
	}, nil
}

// With opens a problem,
// calls fn with the problem,
// and closes the problem.
func With(alignPath, nwk, modelPath string, set Settings, fn func(*Problem) error) (err error) {
	p, err := Open(alignPath, nwk, modelPath, set)
	if err != nil {
		return err
	}
	defer func() {
		if e := p.Close(); err == nil {
			err = e
		}
	}()

	return fn(p)
}

func sameTaxa(t *tree.Tree, aln *align.Alignment) error {
	idx := aln.TaxonIndex()
	terms := t.Terms()
	for i, tx := range terms {
		if i > 0 && terms[i-1] == tx {
			return fmt.Errorf("repeated taxon %q in tree", tx)
		}
		if _, ok := idx[tx]; !ok {
			return fmt.Errorf("tree taxon %q not in alignment", tx)
		}
	}
	if len(terms) != aln.NumTaxa() {
		return fmt.Errorf("alignment has %d taxa, tree has %d", aln.NumTaxa(), len(terms))
	}
	return nil
}

// Close releases the problem.
func (p *Problem) Close() error {
	if p.closed {
		return ErrClosed
	}
	p.closed = true
	p.pt = nil
	p.t = nil
	return nil
}

// LogLikelihood optimizes the branch lengths of the tree
// and returns the log likelihood.
// If the optimization fails,
// the branch lengths are not modified
// and it returns ErrConvergence.
func (p *Problem) LogLikelihood() (float64, error) {
	if p.closed {
		return 0, ErrClosed
	}

	var edges []int
	for _, id := range p.t.PreOrder() {
		if !p.t.IsRoot(id) {
			edges = append(edges, id)
		}
	}
	if len(edges) == 0 {
		return p.pt.LogLike(), nil
	}

	orig := make([]float64, len(edges))
	x0 := make([]float64, len(edges))
	for i, id := range edges {
		orig[i] = p.t.Length(id)
		x0[i] = math.Log(orig[i])
	}
	setLengths := func(x []float64) {
		for i, id := range edges {
			p.t.SetLength(id, logLength(x[i]))
		}
	}

	prob := optimize.Problem{
		Func: func(x []float64) float64 {
			setLengths(x)
			return -p.pt.LogLike()
		},
	}
	settings := &optimize.Settings{
		MajorIterations: p.set.Iterations,
		Converger: &optimize.FunctionConverge{
			Absolute:   p.set.Tolerance,
			Iterations: 100,
		},
	}
	res, err := optimize.Minimize(prob, x0, settings, &optimize.NelderMead{})
	if err == nil && res.Status.Early() {
		err = res.Status.Err()
	}
	if err != nil {
		for i, id := range edges {
			p.t.SetLength(id, orig[i])
		}
		return 0, fmt.Errorf("%w: %v", ErrConvergence, err)
	}

	setLengths(res.X)
	return p.pt.LogLike(), nil
}

func logLength(x float64) float64 {
	l := math.Exp(x)
	if l < pruning.MinLength {
		return pruning.MinLength
	}
	if l > MaxLength {
		return MaxLength
	}
	return l
}

// Moves returns the trees in the neighborhood
// of the current tree,
// scored with the log likelihood,
// using the current branch lengths.
func (p *Problem) Moves(kind rearrange.Kind, radius int) ([]rearrange.Result, error) {
	if p.closed {
		return nil, ErrClosed
	}
	return rearrange.Enumerate(p, kind, radius)
}

// Neighborhood returns the trees in the neighborhood
// of each branch of the current tree,
// scored with the log likelihood,
// using the current branch lengths.
func (p *Problem) Neighborhood(kind rearrange.Kind) ([]rearrange.Branch, error) {
	if p.closed {
		return nil, ErrClosed
	}
	return rearrange.Neighborhood(p, kind)
}

// Newick returns the current tree
// in Newick format.
func (p *Problem) Newick() (string, error) {
	if p.closed {
		return "", ErrClosed
	}
	return newick.String(p.t), nil
}

// Partitions returns the partitions of the problem.
func (p *Problem) Partitions() []Partition {
	return p.parts
}

// Score returns the log likelihood of the tree
// with the current branch lengths.
func (p *Problem) Score() (float64, error) {
	if p.closed {
		return 0, ErrClosed
	}
	lnL := p.pt.LogLike()
	if math.IsNaN(lnL) {
		return 0, fmt.Errorf("oracle: invalid likelihood")
	}
	return lnL, nil
}

// Tree returns the tree of the problem.
func (p *Problem) Tree() *tree.Tree {
	return p.t
}
