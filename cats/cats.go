// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package cats implements discrete categories
// from a continuous probability distribution function.
// Each category is expected to have the same probability.
//
// The categories are used as relative rates of evolution
// among sites.
package cats

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
)

// Discrete is a discrete category distribution.
type Discrete interface {
	// Cats returns the values of the different categories.
	Cats() []float64

	// String output for the function name and parameters.
	String() string
}

// Gamma is a discretized Gamma distribution.
type Gamma struct {
	// Parameters of the gamma distribution.
	Param distuv.Gamma

	// Number of categories
	NumCat int
}

// NewGamma returns a discretized Gamma distribution
// with mean 1
// and the given shape parameter.
func NewGamma(alpha float64, numCat int) Gamma {
	return Gamma{
		Param: distuv.Gamma{
			Alpha: alpha,
			Beta:  alpha,
		},
		NumCat: numCat,
	}
}

// Cats returns the values for a Gamma distribution
// discretized in equal probability categories.
func (g Gamma) Cats() []float64 {
	return getCats(g.Param, g.NumCat)
}

// String output for the function name and parameters.
func (g Gamma) String() string {
	return fmt.Sprintf("gamma=%.6f", g.Param.Alpha)
}

// LogNormal is a discretized LogNormal distribution.
type LogNormal struct {
	// Parameters of the log normal distribution
	Param distuv.LogNormal

	// Number of categories
	NumCat int
}

// Cats return the values for a log Normal distribution
// discretized in equal probability categories.
func (ln LogNormal) Cats() []float64 {
	return getCats(ln.Param, ln.NumCat)
}

// String output for the function name and parameters.
func (ln LogNormal) String() string {
	return fmt.Sprintf("logNormal=%.6f", ln.Param.Sigma)
}

// Parse returns a discrete distribution
// from a string of the form "<function>=<parameter>",
// as produced by the String method of a distribution.
// Valid functions are "gamma",
// using the parameter as the shape of a Gamma
// with mean 1,
// and "logNormal",
// using the parameter as the sigma of a LogNormal
// with mu 0.
func Parse(s string, numCat int) (Discrete, error) {
	name, val, ok := strings.Cut(s, "=")
	if !ok {
		return nil, fmt.Errorf("invalid distribution %q: expecting <function>=<parameter>", s)
	}
	p, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid distribution %q: %v", s, err)
	}
	if p <= 0 {
		return nil, fmt.Errorf("invalid distribution %q: parameter must be > 0", s)
	}
	if numCat < 1 {
		return nil, fmt.Errorf("invalid number of categories %d", numCat)
	}

	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gamma":
		return NewGamma(p, numCat), nil
	case "lognormal":
		return LogNormal{
			Param: distuv.LogNormal{
				Mu:    0,
				Sigma: p,
			},
			NumCat: numCat,
		}, nil
	}
	return nil, fmt.Errorf("invalid distribution %q: unknown function %q", s, name)
}

// Rates returns the categories of a distribution
// scaled to have a mean of 1.
// A distribution with a single category
// returns a single rate of 1.
func Rates(d Discrete) []float64 {
	c := d.Cats()
	if len(c) <= 1 {
		return []float64{1}
	}
	mean := floats.Sum(c) / float64(len(c))
	floats.Scale(1/mean, c)
	return c
}

// Quantiler is a interfaces for distributions
// with a Quantile function
// (the inverse of the CDF function).
type quantiler interface {
	Quantile(p float64) float64
}

func getCats(q quantiler, n int) []float64 {
	cats := make([]float64, n)
	for i := range cats {
		p := (float64(i) + 0.5) / float64(n)
		cats[i] = q.Quantile(p)
	}
	return cats
}
