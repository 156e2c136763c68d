// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Treeland is a tool for the exploration
// of the neighborhood of phylogenetic trees.
package main

import (
	"github.com/js-arias/command"
	"github.com/js-arias/treeland/cmd/treeland/data"
	"github.com/js-arias/treeland/cmd/treeland/like"
	"github.com/js-arias/treeland/cmd/treeland/moves"
	"github.com/js-arias/treeland/cmd/treeland/param"
	"github.com/js-arias/treeland/cmd/treeland/pars"
	"github.com/js-arias/treeland/cmd/treeland/prj"
	"github.com/js-arias/treeland/cmd/treeland/tree"
)

var app = &command.Command{
	Usage: "treeland <command> [<argument>...]",
	Short: "a tool to explore the neighborhood of phylogenetic trees",
}

func init() {
	app.Add(data.Command)
	app.Add(like.Command)
	app.Add(moves.Command)
	app.Add(param.Command)
	app.Add(pars.Command)
	app.Add(prj.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}
