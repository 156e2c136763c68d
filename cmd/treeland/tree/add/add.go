// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add trees
// to a treeland project.
package add

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/treeland/newick"
	"github.com/js-arias/treeland/project"
	"github.com/js-arias/treeland/tree"
)

var Command = &command.Command{
	Usage: `add [-f|--file <tree-file>] [--name <name>]
	[--smooth] [--no-lengths]
	<project-file> [<newick-file>...]`,
	Short: "add phylogenetic trees to a treeland project",
	Long: `
Command add reads one or more trees in Newick format from one or more files,
and adds the trees to a treeland project.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

One or more Newick files can be given as arguments. If no file is given the
trees will be read from the standard input.

By default, the trees will be named after the file name, with a number added
if the file contains more than one tree. Use the flag --name to define a
different name for the trees.

If the flag --smooth is defined, nodes with a single child will be removed
from the trees. If the flag --no-lengths is defined, branch lengths will be
removed.

By default the trees will be stored in the tree file currently defined for the
project. If the project does not have a tree file, a new one will be created
with the name 'trees.tab'. A different tree file name can be defined using the
flag --file, or -f. If this flag is used, and there is tree file already
defined, then a new file with that name will be created, and used as the tree
file for the project (previously defined trees will be kept).
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeFile string
var treeName string
var smooth bool
var noLengths bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "file", "", "")
	c.Flags().StringVar(&treeFile, "f", "", "")
	c.Flags().StringVar(&treeName, "name", "", "")
	c.Flags().BoolVar(&smooth, "smooth", false, "")
	c.Flags().BoolVar(&noLengths, "no-lengths", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	p, err := project.Open(args[0])
	if err != nil {
		return err
	}

	tc := project.NewCollection()
	if p.Path(project.Trees) != "" {
		tc, err = p.Trees()
		if err != nil {
			return err
		}
	}

	args = args[1:]
	if len(args) == 0 {
		args = append(args, "-")
	}
	for _, a := range args {
		fn := a
		if fn == "-" {
			fn = ""
			a = "stdin"
		}
		ts, err := readNewick(c.Stdin(), fn)
		if err != nil {
			return err
		}

		name := treeName
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(a), filepath.Ext(a))
		}
		for i, t := range ts {
			if smooth {
				t = t.Smooth()
			}
			if noLengths {
				t.ClearLengths()
			}
			tn := name
			if len(ts) > 1 {
				tn = fmt.Sprintf("%s.%d", name, i+1)
			}
			if err := tc.Add(tn, t); err != nil {
				return fmt.Errorf("when adding trees from %q: %v", a, err)
			}
		}
	}

	if treeFile != "" {
		p.Add(project.Trees, treeFile)
	}
	if err := p.WriteTrees(tc); err != nil {
		return err
	}
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func readNewick(r io.Reader, name string) ([]*tree.Tree, error) {
	if name != "" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	ts, err := newick.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	if len(ts) == 0 {
		return nil, fmt.Errorf("while reading file %q: no trees found", name)
	}
	return ts, nil
}
