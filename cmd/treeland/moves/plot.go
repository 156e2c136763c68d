// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package moves

import (
	"fmt"

	"github.com/js-arias/blind"
	"github.com/js-arias/treeland/rearrange"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// numBins is the number of bins of the histogram.
const numBins = 20

func makePlot(name string, start float64, res []rearrange.Result) error {
	if len(res) == 0 {
		return fmt.Errorf("plot %q: no trees in the neighborhood", name)
	}

	p := plot.New()
	p.X.Label.Text = "log likelihood"
	p.Y.Label.Text = "trees"

	vals := make(plotter.Values, 0, len(res))
	for _, r := range res {
		vals = append(vals, r.Score)
	}
	h, err := plotter.NewHist(vals, numBins)
	if err != nil {
		return fmt.Errorf("while building histogram: %v", err)
	}
	h.FillColor = blind.Sequential(blind.Iridescent, 0.4)
	h.LineStyle.Width = vg.Length(0)
	p.Add(h)

	var top float64
	for _, b := range h.Bins {
		if b.Weight > top {
			top = b.Weight
		}
	}
	ln, err := plotter.NewLine(plotter.XYs{
		{X: start, Y: 0},
		{X: start, Y: top},
	})
	if err != nil {
		return fmt.Errorf("while building chart: %v", err)
	}
	ln.LineStyle.Color = blind.Sequential(blind.Iridescent, 1)
	ln.LineStyle.Width = vg.Points(2)
	p.Add(ln)

	if err := p.Save(5*vg.Inch, 3*vg.Inch, name); err != nil {
		return err
	}
	return nil
}
