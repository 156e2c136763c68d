// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package moves implements a command to evaluate
// the trees in the neighborhood of a tree
// of a treeland project.
package moves

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/treeland/cats"
	"github.com/js-arias/treeland/newick"
	"github.com/js-arias/treeland/oracle"
	"github.com/js-arias/treeland/project"
	"github.com/js-arias/treeland/rearrange"
)

var Command = &command.Command{
	Usage: `moves [--tree <tree-name>]
	[--moves <kind>] [--radius <value>] [--relaxed <value>]
	[--optimize] [--splits] [--stats] [--plot <image-file>]
	<project-file>`,
	Short: "evaluate the neighborhood of a tree",
	Long: `
Command moves reads a tree, the alignment, and the partition model from a
treeland project, and prints the log likelihood of all the trees that can be
reached from the tree with a single rearrangement.

The argument of the command is the name of the project file.

By default, the first tree of the project will be used. Use the flag --tree
to indicate a different tree.

The kind of rearrangement and the radius of SPR moves are defined by the
project parameters. Use the flag --moves to define a different kind of
rearrangements. Valid values are "NNI", "SPR", and "ALL" (for both NNI and SPR
moves). Use the flag --radius to define a different radius. Trees that can be
reached by different moves of the same kind are reported only once.

The rate categories are defined by the project parameters. To use a
different distribution use the flag --relaxed, with a value of the form
"<function>=<value>". Valid functions are "gamma" and "logNormal".

By default, the trees in the neighborhood are evaluated with the branch
lengths of the tree (branches without length have a length of 0.1, moved
subtrees keep their length, and the regrafted branch is divided into two
halves). If the flag --optimize is defined, the branch lengths of the tree
will be optimized before the moves are evaluated.

The output is a tab-delimited table with the move type, the log likelihood,
and the resulting tree in Newick format.

If the flag --splits is defined, the trees produced by all the moves that
cross or break each branch of the tree will be evaluated, without a radius
limit. Each branch is identified by the split (or bipartition) of the
terminals that it defines, given as the terminals at the side of the branch
without the first terminal (in alphabetic order). The output is a
tab-delimited table with the split, the number of trees in the neighborhood
of the branch, the best and the median log likelihood of these trees.

If the flag --stats is defined, a summary of the likelihood of the
neighborhood will be printed in the standard error. If the flag --plot is
defined, a histogram of the log likelihood of the neighborhood will be drawn
in the indicated image file. The format of the image is defined by the file
extension (for example "png" or "svg").
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var movesFlag string
var radius int
var relaxed string
var optimize bool
var splits bool
var printStats bool
var plotFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&movesFlag, "moves", "", "")
	c.Flags().IntVar(&radius, "radius", 0, "")
	c.Flags().StringVar(&relaxed, "relaxed", "", "")
	c.Flags().BoolVar(&optimize, "optimize", false, "")
	c.Flags().BoolVar(&splits, "splits", false, "")
	c.Flags().BoolVar(&printStats, "stats", false, "")
	c.Flags().StringVar(&plotFile, "plot", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	alnFile := p.Path(project.Alignment)
	if alnFile == "" {
		return fmt.Errorf("alignment not defined in project %q", args[0])
	}
	tc, err := p.Trees()
	if err != nil {
		return err
	}
	if treeName == "" {
		ls := tc.Names()
		if len(ls) == 0 {
			return fmt.Errorf("no trees in project %q", args[0])
		}
		treeName = ls[0]
	}
	t := tc.Tree(treeName)
	if t == nil {
		return fmt.Errorf("tree %q not found in project %q", treeName, args[0])
	}

	sp, err := p.Params()
	if err != nil {
		return err
	}
	kind := sp.Moves()
	if movesFlag != "" {
		kind, err = rearrange.ParseKind(movesFlag)
		if err != nil {
			return c.UsageError(err.Error())
		}
	}
	if radius == 0 {
		radius = sp.Radius()
	}
	set := sp.Settings()
	if relaxed != "" {
		d, err := cats.Parse(relaxed, sp.Cats())
		if err != nil {
			return err
		}
		set.Dist = d
	}

	var start float64
	var res []rearrange.Result
	var branches []rearrange.Branch
	err = oracle.With(alnFile, newick.String(t), p.Path(project.Model), set, func(pb *oracle.Problem) error {
		var err error
		if optimize {
			_, err = pb.LogLikelihood()
			if errors.Is(err, oracle.ErrConvergence) {
				fmt.Fprintf(c.Stderr(), "WARNING: tree %q: %v\n", treeName, err)
				err = nil
			}
			if err != nil {
				return err
			}
		}
		start, err = pb.Score()
		if err != nil {
			return err
		}

		if splits {
			branches, err = pb.Neighborhood(kind)
			return err
		}
		res, err = pb.Moves(kind, radius)
		return err
	})
	if err != nil {
		return fmt.Errorf("tree %q: %v", treeName, err)
	}

	if splits {
		if err := writeSplits(c.Stdout(), branches); err != nil {
			return err
		}
		for _, b := range branches {
			res = append(res, b.Results...)
		}
	} else {
		if err := writeMoves(c.Stdout(), res); err != nil {
			return err
		}
	}

	if printStats {
		if err := writeStats(c.Stderr(), start, res); err != nil {
			return err
		}
	}
	if plotFile != "" {
		if err := makePlot(plotFile, start, res); err != nil {
			return err
		}
	}
	return nil
}

func writeMoves(w io.Writer, res []rearrange.Result) error {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write([]string{"type", "score", "tree"}); err != nil {
		return err
	}
	for _, r := range res {
		row := []string{
			r.Move.Kind.String(),
			strconv.FormatFloat(r.Score, 'f', 6, 64),
			r.Topology,
		}
		if err := tsv.Write(row); err != nil {
			return err
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
