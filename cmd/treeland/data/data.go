// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package data implements a command to add
// an alignment and a partition model
// to a treeland project.
package data

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/treeland/align"
	"github.com/js-arias/treeland/oracle"
	"github.com/js-arias/treeland/project"
)

var Command = &command.Command{
	Usage: `data [--align <alignment-file>] [--model <model-file>]
	<project-file>`,
	Short: "add an alignment to a treeland project",
	Long: `
Command data adds an alignment file, and optionally a partition model file,
to a treeland project.

The argument of the command is the name of the project file. If no project
file exists, a new project will be created.

The flag --align defines the alignment file, in FASTA or PHYLIP format. See
'treeland help alignment-files' for a description of the formats.

The flag --model defines the partition model of the alignment. See
'treeland help model-files' for a description of the format. If no model is
given, all the alignment will be used as a single DNA partition.

The files are read before they are added to the project. If no flag is given,
the command will print the current alignment and model of the project.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var alignFile string
var modelFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&alignFile, "align", "", "")
	c.Flags().StringVar(&modelFile, "model", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	p, err := project.Open(args[0])
	if err != nil {
		return err
	}

	if alignFile == "" && modelFile == "" {
		return printData(c, p)
	}

	if alignFile != "" {
		if _, err := align.ReadFile(alignFile); err != nil {
			return err
		}
		p.Add(project.Alignment, alignFile)
	}
	if modelFile != "" {
		if _, err := oracle.ReadModelFile(modelFile); err != nil {
			return err
		}
		p.Add(project.Model, modelFile)
	}

	if an := p.Path(project.Alignment); an != "" {
		aln, err := p.Alignment()
		if err != nil {
			return err
		}
		parts, err := p.Model()
		if err != nil {
			return err
		}
		for _, pt := range parts {
			if pt.To > aln.Len() {
				fmt.Fprintf(c.Stderr(), "WARNING: partition %q ends at site %d, alignment %q has %d sites\n", pt.Name, pt.To, an, aln.Len())
			}
		}
	}

	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func printData(c *command.Command, p *project.Project) error {
	an := p.Path(project.Alignment)
	if an == "" {
		return fmt.Errorf("alignment not defined in project %q", p.Name())
	}
	aln, err := p.Alignment()
	if err != nil {
		return err
	}
	fmt.Fprintf(c.Stdout(), "alignment: %s\n", an)
	fmt.Fprintf(c.Stdout(), "\tterminals: %d\n", aln.NumTaxa())
	fmt.Fprintf(c.Stdout(), "\tsites: %d\n", aln.Len())

	parts, err := p.Model()
	if err != nil {
		return err
	}
	if parts == nil {
		return nil
	}
	fmt.Fprintf(c.Stdout(), "model: %s\n", p.Path(project.Model))
	for _, pt := range parts {
		fmt.Fprintf(c.Stdout(), "\t%s\n", pt)
	}
	return nil
}
