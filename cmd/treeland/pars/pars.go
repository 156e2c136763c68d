// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package pars implements a command to calculate
// the parsimony cost of the trees of a treeland project.
package pars

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/treeland/newick"
	"github.com/js-arias/treeland/parsimony"
	"github.com/js-arias/treeland/project"
	"github.com/js-arias/treeland/rearrange"
)

var Command = &command.Command{
	Usage: `pars [--tree <tree-name>]
	[--moves <kind>] [--radius <value>]
	<project-file>`,
	Short: "calculate the parsimony cost of trees",
	Long: `
Command pars reads the trees and the alignment from a treeland project, and
prints the parsimony cost of the trees. The cost of a node with k children
without a common state is k-1, so multifurcations are allowed.

The argument of the command is the name of the project file.

By default the cost of all the trees will be printed. If the flag --tree is
set, only the cost of the indicated tree will be printed.

If the flag --moves is defined, it will print the cost of the trees in the
neighborhood of each tree. Valid values are "NNI", "SPR", and "ALL" (for both
NNI and SPR moves). The flag --radius sets the maximum distance of SPR moves,
by default it is the radius defined in the project parameters. The output is a
tab-delimited table with the tree name, the move type, the cost, and the tree
in Newick format.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var movesFlag string
var radius int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&movesFlag, "moves", "", "")
	c.Flags().IntVar(&radius, "radius", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	aln, err := p.Alignment()
	if err != nil {
		return err
	}
	tc, err := p.Trees()
	if err != nil {
		return err
	}

	ls := tc.Names()
	if treeName != "" {
		if tc.Tree(treeName) == nil {
			return fmt.Errorf("tree %q not found in project %q", treeName, args[0])
		}
		ls = []string{treeName}
	}

	prof := parsimony.NewProfiles(aln)

	var kind rearrange.Kind
	if movesFlag != "" {
		kind, err = rearrange.ParseKind(movesFlag)
		if err != nil {
			return c.UsageError(err.Error())
		}
		if radius == 0 {
			sp, err := p.Params()
			if err != nil {
				return err
			}
			radius = sp.Radius()
		}
	}

	tsv := csv.NewWriter(c.Stdout())
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	header := []string{"tree", "cost"}
	if kind != 0 {
		header = []string{"tree", "type", "cost", "newick"}
	}
	if err := tsv.Write(header); err != nil {
		return err
	}

	for _, tn := range ls {
		top := prof.Topology(tc.Tree(tn))
		sc, err := top.Score()
		if err != nil {
			return fmt.Errorf("tree %q: %v", tn, err)
		}
		if kind == 0 {
			row := []string{
				tn,
				strconv.FormatFloat(sc, 'f', 3, 64),
			}
			if err := tsv.Write(row); err != nil {
				return err
			}
			continue
		}

		row := []string{
			tn,
			"start",
			strconv.FormatFloat(sc, 'f', 3, 64),
			newick.String(top.Tree()),
		}
		if err := tsv.Write(row); err != nil {
			return err
		}
		res, err := rearrange.Enumerate(top, kind, radius)
		if err != nil {
			return fmt.Errorf("tree %q: %v", tn, err)
		}
		for _, r := range res {
			row := []string{
				tn,
				r.Move.Kind.String(),
				strconv.FormatFloat(r.Score, 'f', 3, 64),
				r.Topology,
			}
			if err := tsv.Write(row); err != nil {
				return err
			}
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
