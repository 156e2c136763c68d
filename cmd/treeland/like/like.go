// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package like implements a command to calculate
// the likelihood of the trees of a treeland project.
package like

import (
	"encoding/csv"
	"errors"
	"fmt"
	"strconv"

	"github.com/js-arias/command"
	"github.com/js-arias/treeland/cats"
	"github.com/js-arias/treeland/newick"
	"github.com/js-arias/treeland/oracle"
	"github.com/js-arias/treeland/project"
)

var Command = &command.Command{
	Usage: `like [--tree <tree-name>] [--relaxed <value>]
	[--fixed] [--update]
	<project-file>`,
	Short: "calculate the likelihood of trees",
	Long: `
Command like reads the trees, the alignment, and the partition model from a
treeland project, and prints the log likelihood of the trees.

The argument of the command is the name of the project file.

By default the likelihood of all the trees will be calculated. If the flag
--tree is set, only the likelihood of the indicated tree will be calculated.

By default, the branch lengths of the trees are optimized before the
likelihood is reported. Branches without a length start with a length of 0.1.
If the flag --fixed is defined, the branch lengths of the trees will be used
without optimization. If the flag --update is defined, the optimized trees
will replace the trees in the project.

The rate categories are defined by the project parameters. To use a
different distribution use the flag --relaxed, with a value of the form
"<function>=<value>". Valid functions are:

	- Gamma: with a single parameter (both alpha and beta set as equal).
	- LogNormal: with a single parameter (sigma), the mean is 1.

The output is a tab-delimited table with the name of the tree, the log
likelihood, and the tree in Newick format.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var relaxed string
var fixed bool
var update bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&relaxed, "relaxed", "", "")
	c.Flags().BoolVar(&fixed, "fixed", false, "")
	c.Flags().BoolVar(&update, "update", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if fixed && update {
		return c.UsageError("flags --fixed and --update are incompatible")
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

	ls := tc.Names()
	if treeName != "" {
		if tc.Tree(treeName) == nil {
			return fmt.Errorf("tree %q not found in project %q", treeName, args[0])
		}
		ls = []string{treeName}
	}

	set, err := settings(p)
	if err != nil {
		return err
	}

	tsv := csv.NewWriter(c.Stdout())
	tsv.Comma = '\t'
	tsv.UseCRLF = true
	if err := tsv.Write([]string{"tree", "lnL", "newick"}); err != nil {
		return err
	}

	for _, tn := range ls {
		nwk := newick.String(tc.Tree(tn))
		err := oracle.With(alnFile, nwk, p.Path(project.Model), set, func(pb *oracle.Problem) error {
			var lnL float64
			var err error
			if fixed {
				lnL, err = pb.Score()
			} else {
				lnL, err = pb.LogLikelihood()
			}
			if errors.Is(err, oracle.ErrConvergence) {
				fmt.Fprintf(c.Stderr(), "WARNING: tree %q: %v\n", tn, err)
				lnL, err = pb.Score()
			}
			if err != nil {
				return err
			}

			out, err := pb.Newick()
			if err != nil {
				return err
			}
			row := []string{
				tn,
				strconv.FormatFloat(lnL, 'f', 6, 64),
				out,
			}
			if err := tsv.Write(row); err != nil {
				return err
			}

			if update {
				tc.Delete(tn)
				if err := tc.Add(tn, pb.Tree()); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("tree %q: %v", tn, err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}

	if update {
		if err := p.WriteTrees(tc); err != nil {
			return err
		}
	}
	return nil
}

func settings(p *project.Project) (oracle.Settings, error) {
	sp, err := p.Params()
	if err != nil {
		return oracle.Settings{}, err
	}
	set := sp.Settings()
	if relaxed != "" {
		d, err := cats.Parse(relaxed, sp.Cats())
		if err != nil {
			return oracle.Settings{}, err
		}
		set.Dist = d
	}
	return set, nil
}
