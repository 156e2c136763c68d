// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(alignmentGuide)
	app.Add(modelGuide)
	app.Add(paramGuide)
	app.Add(projectsGuide)
	app.Add(treeFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
Treeland requires several files to read and process phylogenetic data. To
reduce the burden of keeping track of many files, a single project file is
used to hold the reference of all files required in the analysis. This guide
explains the structure of the file, but most of the time, the best and most
secure way to edit or view this file is by using treeland commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# treeland project files
	dataset	path
	alignment	primates.fasta
	model	partitions.txt
	params	params.tab
	trees	trees.tab

The valid file types are:

- Sequence alignments. Defined by the dataset keyword "alignment". This file
  contains the aligned sequences of the terminals, in FASTA or PHYLIP format.
  The recommended way to add an alignment is by using the command
  'treeland data'.
- Partition models. Defined by the dataset keyword "model". This file
  contains the partitions of the alignment, and the model used for each
  partition. The recommended way to add a partition model is by using the
  command 'treeland data'.
- Search parameters. Defined by the dataset keyword "params". This file
  contains the parameters used to evaluate the neighborhood of a tree. The
  recommended way to add or edit the parameters is by using the command
  'treeland param'.
- Phylogenetic trees. Defined by the dataset keyword "trees". This file
  contains one or more trees in the form of a tab-delimited file. The
  recommended way to add a tree file is by using the command
  'treeland tree add'.
	`,
}

var alignmentGuide = &command.Command{
	Usage: "alignment-files",
	Short: "about alignment files",
	Long: `
Treeland reads aligned sequences in FASTA or PHYLIP format. The format is
detected from the first character of the file: if it is a '>', the file is
read as FASTA, otherwise it is read as PHYLIP.

In a FASTA file, each sequence starts with a line with the '>' character
followed by the name of the terminal, and the sequence can span several
lines:

	>Homo
	ACGTTACCGA
	ACGT
	>Pan
	ACGATACCGT
	ACGA

A PHYLIP file starts with a header with the number of terminals and the
number of sites. Then, each line contains the name of the terminal and the
sequence separated by blanks. The sequences can be interleaved:

	2 14
	Homo ACGTTACCGA
	Pan  ACGATACCGT
	ACGT
	ACGA

All the sequences must have the same length. Gaps can be indicated with '-'
or '?'.

In a treeland project, the file that contains the alignment is indicated with
the "alignment" keyword.
	`,
}

var modelGuide = &command.Command{
	Usage: "model-files",
	Short: "about partition model files",
	Long: `
A partition model file defines the partitions of an alignment, and the model
used for each partition. Each line of the file defines a partition:

	MODEL, NAME = FROM-TO

in which MODEL is the name of the model, NAME is the name of the partition,
and FROM and TO are the first and last site of the partition (the first site
of the alignment is 1).

Here is an example file:

	# primate partitions
	DNA, cox1 = 1-650
	WAG, rag1 = 651-1020
	BIN, morph = 1021-1060

Valid models are:

	- DNA   for nucleotides, using the Jukes-Cantor model.
	- WAG   or any other protein model name, for amino acids, using the
	        Poisson model.
	- BIN   for binary characters, using a two states Mk model.

If no partition model is defined for a project, all the alignment will be
used as a single DNA partition.

In a treeland project, the file that contains the partition model is
indicated with the "model" keyword.
	`,
}

var paramGuide = &command.Command{
	Usage: "param-files",
	Short: "about search parameter files",
	Long: `
A search parameter file is a tab-delimited file with the following columns:

	- parameter  the name of the parameter
	- value      the value of the parameter

Here is an example file:

	# treeland search parameters
	parameter	value
	moves	SPR
	radius	3
	relaxed	gamma
	alpha	0.5
	cats	4
	iterations	5000
	tolerance	1e-06

The valid parameters are:

	- moves       the kind of rearrangements, either "NNI", "SPR", or
	              "ALL".
	- radius      the maximum distance of an SPR move.
	- relaxed     the function used for the rate categories, either
	              "gamma" or "lognormal".
	- alpha       the parameter of the rate function.
	- cats        the number of rate categories.
	- iterations  the maximum number of iterations of the branch length
	              optimization.
	- tolerance   the minimum improvement of the log likelihood during the
	              branch length optimization.

In a treeland project, the file that contains the search parameters is
indicated with the "params" keyword.
	`,
}

var treeFilesGuide = &command.Command{
	Usage: "tree-files",
	Short: "about tree files",
	Long: `
In treeland, phylogenetic trees are stored in a tab-delimited file, with a
tree per row, in Newick format. The advantage of using a tab-delimited file is
that each tree has a name, and several trees can be stored in the same file.

The recommended way to interact with trees in a treeland project is by using
the commands in "treeland tree".

A treeland tree file is a tab-delimited file with the following columns:

	-tree    for the name of the tree.
	-newick  for the tree in Newick format.

Here is an example file:

	# treeland trees
	tree	newick
	start	((Homo:0.1,Pan:0.2):0.05,Gorilla:0.3,(Pongo:0.1,Hylobates:0.1):0.2);
	other	((Homo,Gorilla),Pan,(Pongo,Hylobates));

In a treeland project, the file that contains the trees is indicated with the
"trees" keyword.
	`,
}
