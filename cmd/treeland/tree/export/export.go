// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package export implements a command to export
// the trees of a treeland project
// as time calibrated trees.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/timetree"
	"github.com/js-arias/treeland/newick"
	"github.com/js-arias/treeland/project"
)

var Command = &command.Command{
	Usage: `export [--tree <tree-name>] [--scale <value>] [--age <value>]
	[-o|--output <file>] <project-file>`,
	Short: "export trees as time calibrated trees",
	Long: `
Command export reads the trees from a treeland project and writes them as
time calibrated trees, in the tab-delimited format used by PhyGeo and other
tools that use the timetree package.

The argument of the command is the name of the project file.

By default all trees will be exported. If the flag --tree is set, only the
indicated tree will be exported.

The trees must have branch lengths. By default, a branch length of 1 is
interpreted as a million years. Use the flag --scale to set the number of
million years for a unit of branch length. By default, the age of the root
will be calculated from the largest distance between any terminal and the
root. To set a different root age, use the flag --age, with a value in
million years.

By default, the trees will be printed in the standard output. Use the flag
--output, or -o, to define an output file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

// millionYears is the number of years
// in a million years.
const millionYears = 1_000_000

var treeName string
var output string
var scale float64
var rootAge float64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().Float64Var(&scale, "scale", 1, "")
	c.Flags().Float64Var(&rootAge, "age", 0, "")
}

func run(c *command.Command, args []string) (err error) {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if scale <= 0 {
		return c.UsageError("flag --scale must be larger than 0")
	}

	p, err := project.Read(args[0])
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

	coll := timetree.NewCollection()
	for _, tn := range ls {
		t := tc.Tree(tn).Clone()
		var hasLen bool
		for _, id := range t.PreOrder() {
			if l := t.Length(id); l > 0 {
				t.SetLength(id, l*scale)
				hasLen = true
			}
		}
		if !hasLen {
			return fmt.Errorf("tree %q: undefined branch lengths", tn)
		}

		nc, err := timetree.Newick(strings.NewReader(newick.String(t)), tn, int64(rootAge*millionYears))
		if err != nil {
			return fmt.Errorf("tree %q: %v", tn, err)
		}
		for _, n := range nc.Names() {
			if err := coll.Add(nc.Tree(n)); err != nil {
				return fmt.Errorf("tree %q: %v", tn, err)
			}
		}
	}

	var w io.Writer = c.Stdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer func() {
			e := f.Close()
			if e != nil && err == nil {
				err = e
			}
		}()
		w = f
	}
	if err := coll.TSV(w); err != nil {
		return fmt.Errorf("while writing trees: %v", err)
	}
	return nil
}
