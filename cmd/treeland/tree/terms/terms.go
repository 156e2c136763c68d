// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package terms implements a command to print
// the list of the terminals in the trees of a treeland project.
package terms

import (
	"fmt"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/treeland/project"
)

var Command = &command.Command{
	Usage: "terms [--tree <tree-name>] [--missing] <project-file>",
	Short: "print a list of tree terminals",
	Long: `
Command terms reads the trees from a treeland project and print the name of
the terminals in the standard output.

The argument of the command is the name of the project file.

By default all terminals will be printed. If the flag --tree is set, only the
terminals of the indicated tree will be printed.

If the flag --missing is defined, it will print the terminals of the trees
that are not found in the project alignment, and the terminals of the
alignment that are not found in the trees.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var missing bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().BoolVar(&missing, "missing", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	tc, err := p.Trees()
	if err != nil {
		return err
	}

	var ls []string
	if treeName != "" {
		if tc.Tree(treeName) == nil {
			return fmt.Errorf("tree %q not found in project %q", treeName, args[0])
		}
		ls = append(ls, treeName)
	} else {
		ls = tc.Names()
	}

	terms := make(map[string]bool)
	for _, tn := range ls {
		for _, tax := range tc.Tree(tn).Terms() {
			terms[tax] = true
		}
	}

	if missing {
		return printMissing(c, p, terms)
	}

	termList := make([]string, 0, len(terms))
	for tax := range terms {
		termList = append(termList, tax)
	}
	slices.Sort(termList)

	for _, term := range termList {
		fmt.Fprintf(c.Stdout(), "%s\n", term)
	}
	return nil
}

func printMissing(c *command.Command, p *project.Project, terms map[string]bool) error {
	aln, err := p.Alignment()
	if err != nil {
		return err
	}
	idx := aln.TaxonIndex()

	var noSeq []string
	for tax := range terms {
		if _, ok := idx[tax]; !ok {
			noSeq = append(noSeq, tax)
		}
	}
	slices.Sort(noSeq)
	for _, tax := range noSeq {
		fmt.Fprintf(c.Stdout(), "%s\tno sequence\n", tax)
	}

	for _, tax := range aln.Taxa() {
		if !terms[tax] {
			fmt.Fprintf(c.Stdout(), "%s\tnot in tree\n", tax)
		}
	}
	return nil
}
