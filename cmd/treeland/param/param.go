// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package param implements a command to manage
// the search parameters of a treeland project.
package param

import (
	"fmt"
	"io"

	"github.com/js-arias/command"
	"github.com/js-arias/treeland/project"
	"github.com/js-arias/treeland/searchparam"
)

var Command = &command.Command{
	Usage: `param [--add <param-file>] [--file <file-name>]
	[--moves <kind>] [--radius <value>]
	[--func <value>] [--alpha <value>] [--cats <value>]
	[--iter <value>] [--tol <value>]
	<project-file>`,
	Short: "manage search parameters",
	Long: `
Command param manages the parameters used to evaluate the neighborhood of the
trees of a treeland project.

The argument of the command is the name of the project file.

By default, the command will print the currently defined parameters.

If the flag --add is defined, it will use the indicated file for the search
parameters.

By default, any change on the parameters will be stored in the current
parameters file. If the project does not have a parameters file, a new one
will be created with the name 'params.tab'. Use the flag --file to define a
new parameters file.

The flag --moves sets the kind of rearrangements. Valid values are "NNI",
"SPR", and "ALL" (the default). The flag --radius sets the maximum distance
between the pruned and the regraft branch of an SPR move. The default is 3.

To set the function used for the rate categories use the flag --func. Valid
values are (gamma is the default):

	- Gamma: with a single parameter (both alpha and beta set as equal).
	- LogNormal: with a single parameter (sigma), the mean is 1.

The parameter of the function is set with the flag --alpha (the default is
1), and the number of categories with the flag --cats (the default is 4).

The flag --iter sets the maximum number of iterations of the branch length
optimization (the default is 5000), and the flag --tol sets the minimum
improvement of the log likelihood (the default is 1e-06).
	`,
	SetFlags: setFlags,
	Run:      run,
}

var addFile string
var paramFile string
var movesFlag string
var funcName string
var radius int
var alpha float64
var cats int
var iter int
var tol float64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&addFile, "add", "", "")
	c.Flags().StringVar(&paramFile, "file", "", "")
	c.Flags().StringVar(&movesFlag, "moves", "", "")
	c.Flags().StringVar(&funcName, "func", "", "")
	c.Flags().IntVar(&radius, "radius", 0, "")
	c.Flags().Float64Var(&alpha, "alpha", 0, "")
	c.Flags().IntVar(&cats, "cats", 0, "")
	c.Flags().IntVar(&iter, "iter", 0, "")
	c.Flags().Float64Var(&tol, "tol", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Open(args[0])
	if err != nil {
		return err
	}

	if addFile != "" {
		if _, err := searchparam.Read(addFile); err != nil {
			return err
		}
		p.Add(project.Params, addFile)
		if err := p.Write(); err != nil {
			return err
		}
		return nil
	}

	sp, err := p.Params()
	if err != nil {
		return err
	}
	if paramFile != "" {
		sp.SetName(paramFile)
	}

	ed := false
	if movesFlag != "" {
		if err := sp.SetMoves(movesFlag); err != nil {
			return err
		}
		ed = true
	}
	if radius != 0 {
		if err := sp.SetRadius(radius); err != nil {
			return err
		}
		ed = true
	}
	if funcName != "" {
		if err := sp.SetRelaxed(funcName); err != nil {
			return err
		}
		ed = true
	}
	if alpha != 0 {
		if err := sp.SetAlpha(alpha); err != nil {
			return err
		}
		ed = true
	}
	if cats != 0 {
		if err := sp.SetCats(cats); err != nil {
			return err
		}
		ed = true
	}
	if iter != 0 {
		if err := sp.SetIterations(iter); err != nil {
			return err
		}
		ed = true
	}
	if tol != 0 {
		if err := sp.SetTolerance(tol); err != nil {
			return err
		}
		ed = true
	}

	if p.Path(project.Params) != sp.Name() && (ed || paramFile != "") {
		if err := sp.Write(); err != nil {
			return err
		}
		p.Add(project.Params, sp.Name())
		if err := p.Write(); err != nil {
			return err
		}
		return nil
	}
	if ed {
		if err := sp.Write(); err != nil {
			return err
		}
		return nil
	}

	printParams(c.Stdout(), sp)
	return nil
}

func printParams(w io.Writer, sp *searchparam.Params) {
	fmt.Fprintf(w, "file:        %s\n", sp.Name())
	fmt.Fprintf(w, "moves:       %s\n", sp.Moves())
	fmt.Fprintf(w, "radius:      %d\n", sp.Radius())
	if c := sp.Cats(); c > 1 {
		fmt.Fprintf(w, "relaxed:     %s\n", sp.Relaxed())
		fmt.Fprintf(w, "categories:  %d\n", c)
	}
	fmt.Fprintf(w, "iterations:  %d\n", sp.Iterations())
	fmt.Fprintf(w, "tolerance:   %g\n", sp.Tolerance())
}
