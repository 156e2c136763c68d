// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package prj implements a command to print
// the basic information of a project.
package prj

import (
	"fmt"
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/treeland/parsimony"
	"github.com/js-arias/treeland/project"
	"github.com/js-arias/treeland/rearrange"
)

var Command = &command.Command{
	Usage: "prj <project-file>",
	Short: "print information about a project",
	Long: `
Command prj reads a treeland project and prints the information of the
different project elements into the standard output.

The argument of the command is the name of the project file.
	`,
	Run: run,
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	if p.Path(project.Alignment) != "" {
		if err := readAlignment(c.Stdout(), p); err != nil {
			return err
		}
	}

	if p.Path(project.Model) != "" {
		parts, err := p.Model()
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Stdout(), "Partition model:\n")
		fmt.Fprintf(c.Stdout(), "\tfile: %s\n", p.Path(project.Model))
		for _, pt := range parts {
			fmt.Fprintf(c.Stdout(), "\t%s\n", pt)
		}
		fmt.Fprintf(c.Stdout(), "\n")
	}

	sp, err := p.Params()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "Search parameters:\n")
	if p.Path(project.Params) != "" {
		fmt.Fprintf(c.Stdout(), "\tfile: %s\n", sp.Name())
	}
	fmt.Fprintf(c.Stdout(), "\tmoves: %s [radius %d]\n", sp.Moves(), sp.Radius())
	fmt.Fprintf(c.Stdout(), "\trates: %s [%d categories]\n", sp.Relaxed(), sp.Cats())
	fmt.Fprintf(c.Stdout(), "\n")

	if p.Path(project.Trees) != "" {
		if err := readTrees(c.Stdout(), p); err != nil {
			return err
		}
	}
	return nil
}

func readAlignment(w io.Writer, p *project.Project) error {
	aln, err := p.Alignment()
	if err != nil {
		return err
	}
	prof := parsimony.NewProfiles(aln)

	fmt.Fprintf(w, "Alignment:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Alignment))
	fmt.Fprintf(w, "\tterminals: %d\n", aln.NumTaxa())
	fmt.Fprintf(w, "\tsites: %d\n", aln.Len())
	fmt.Fprintf(w, "\tsite profiles: %d\n", prof.Len())
	fmt.Fprintf(w, "\n")
	return nil
}

func readTrees(w io.Writer, p *project.Project) error {
	tc, err := p.Trees()
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Trees:\n")
	fmt.Fprintf(w, "\tfile: %s\n", p.Path(project.Trees))
	fmt.Fprintf(w, "\ttrees: %d\n", len(tc.Names()))

	terms := make(map[string]bool)
	var maxSPR int
	for _, tn := range tc.Names() {
		t := tc.Tree(tn)
		for _, tax := range t.Terms() {
			terms[tax] = true
		}
		if m := rearrange.MaxSPR(t.NumLeaves()); m > maxSPR {
			maxSPR = m
		}
	}
	fmt.Fprintf(w, "\tterminals: %d\n", len(terms))
	fmt.Fprintf(w, "\tmax SPR neighbors: %d\n", maxSPR)
	fmt.Fprintf(w, "\n")
	return nil
}
