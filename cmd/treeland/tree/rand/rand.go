// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rand implements a command to add
// random trees to a treeland project.
package rand

import (
	"fmt"
	"time"

	"github.com/js-arias/command"
	"github.com/js-arias/treeland/project"
	"github.com/js-arias/treeland/tree"
	"golang.org/x/exp/rand"
)

var Command = &command.Command{
	Usage: `rand [--name <name>] [-n|--number <value>]
	[--shuffle <tree-name>] [--seed <value>]
	<project-file>`,
	Short: "add random trees to a treeland project",
	Long: `
Command rand adds one or more random trees to a treeland project.

The argument of the command is the name of the project file.

By default, the trees are built by random stepwise addition of the terminals
of the project alignment. If the flag --shuffle is defined with the name of a
tree in the project, the random trees will be built by a random permutation
of the terminal names of the indicated tree, keeping the topology and the
branch lengths of the tree.

By default, a single tree is added. Use the flag --number, or -n, to add more
trees.

By default, the trees will be named "random", followed by a number. Use the
flag --name to define a different name.

The random number generator is seeded with the current time. Use the flag
--seed to set a given seed, for example, to reproduce a previous analysis.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var numTrees int
var seed int64
var treeName string
var shuffle string

func setFlags(c *command.Command) {
	c.Flags().IntVar(&numTrees, "number", 1, "")
	c.Flags().IntVar(&numTrees, "n", 1, "")
	c.Flags().Int64Var(&seed, "seed", 0, "")
	c.Flags().StringVar(&treeName, "name", "random", "")
	c.Flags().StringVar(&shuffle, "shuffle", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if numTrees < 1 {
		return c.UsageError("flag --number must be larger than 0")
	}

	p, err := project.Read(args[0])
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

	var source *tree.Tree
	var terms []string
	if shuffle != "" {
		source = tc.Tree(shuffle)
		if source == nil {
			return fmt.Errorf("tree %q not found in project %q", shuffle, args[0])
		}
	} else {
		aln, err := p.Alignment()
		if err != nil {
			return err
		}
		terms = aln.Taxa()
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rnd := rand.New(rand.NewSource(uint64(seed)))

	for i := 0; i < numTrees; i++ {
		var t *tree.Tree
		if source != nil {
			t = source.Clone()
			t.Shuffle(rnd)
		} else {
			t, err = tree.Random(terms, rnd)
			if err != nil {
				return err
			}
		}

		tn := fmt.Sprintf("%s.%d", treeName, i+1)
		if err := tc.Add(tn, t); err != nil {
			return err
		}
	}

	if err := p.WriteTrees(tc); err != nil {
		return err
	}
	if err := p.Write(); err != nil {
		return err
	}
	fmt.Fprintf(c.Stderr(), "# random seed: %d\n", seed)
	return nil
}
