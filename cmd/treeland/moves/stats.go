// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package moves

import (
	"fmt"
	"io"
	"slices"

	"github.com/js-arias/treeland/rearrange"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A summary is a summary of the scores
// of a neighborhood.
type summary struct {
	n      int
	better int
	min    float64
	max    float64
	mean   float64
	sd     float64
	median float64
	best   rearrange.Result
}

func summarize(start float64, res []rearrange.Result) summary {
	s := summary{n: len(res)}
	if len(res) == 0 {
		return s
	}

	scores := make([]float64, 0, len(res))
	for _, r := range res {
		scores = append(scores, r.Score)
		if r.Score > start {
			s.better++
		}
	}
	s.best = res[floats.MaxIdx(scores)]
	s.mean, s.sd = stat.MeanStdDev(scores, nil)

	slices.Sort(scores)
	s.min = scores[0]
	s.max = scores[len(scores)-1]
	s.median = stat.Quantile(0.5, stat.Empirical, scores, nil)
	return s
}

func writeStats(w io.Writer, start float64, res []rearrange.Result) error {
	s := summarize(start, res)

	fmt.Fprintf(w, "start:\t%.6f\n", start)
	fmt.Fprintf(w, "trees:\t%d\n", s.n)
	if s.n == 0 {
		return nil
	}
	fmt.Fprintf(w, "better:\t%d\n", s.better)
	fmt.Fprintf(w, "min:\t%.6f\n", s.min)
	fmt.Fprintf(w, "max:\t%.6f\n", s.max)
	fmt.Fprintf(w, "median:\t%.6f\n", s.median)
	fmt.Fprintf(w, "mean:\t%.6f\n", s.mean)
	if s.n > 1 {
		fmt.Fprintf(w, "sd:\t%.6f\n", s.sd)
	}
	_, err := fmt.Fprintf(w, "best:\t%s\t%.6f\t%s\n", s.best.Move.Kind, s.best.Score, s.best.Topology)
	return err
}
