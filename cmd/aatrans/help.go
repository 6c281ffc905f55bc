// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package main

import "github.com/js-arias/command"

func init() {
	app.Add(paramFilesGuide)
	app.Add(projectsGuide)
	app.Add(sequenceFilesGuide)
	app.Add(transitionFilesGuide)
	app.Add(treeFilesGuide)
}

var projectsGuide = &command.Command{
	Usage: "projects",
	Short: "about project files",
	Long: `
AATrans requires several files to read and process sequence data. To reduce
the burden of keeping track of many files, a single project file is used to
hold the reference of all files required in the analysis. This guide explains
the structure of the file, but most of the time, the best and most secure way
to edit or view this file is by using aatrans commands.

A project file is a tab-delimited file with the following fields:

	- dataset  for the kind of file
	- path     for the path of the file

Here is an example file:

	# aatrans project files
	dataset	path
	params	params.tab
	sequences	sequences.tab
	tolerance	tolerance.tab
	transitions	transitions.tab
	trees	trees.tab

The valid file types are:

- Inference parameters. Defined by the dataset keyword "params". This file
  contains the parameters used in the inference of transitions. The
  recommended way to define the parameters is by using the command
  'aatrans trans param'.
- Aligned sequences. Defined by the dataset keyword "sequences". This file
  contains the amino acid sequences of the terminals. The recommended way to
  add a sequence file is by using the command 'aatrans seq add'.
- Tolerance by position. Defined by the dataset keyword "tolerance". This
  file contains the tolerance of particular positions. The recommended way to
  define these values is by using the command 'aatrans trans param'.
- Inferred transitions. Defined by the dataset keyword "transitions". This
  file contains the transitions inferred by 'aatrans trans infer'.
- Phylogenetic trees. Defined by the dataset keyword "trees". This file
  contains one or more trees in the form of a tab-delimited file. The
  recommended way to add a tree file is by using the command
  'aatrans tree add'.

Any other dataset keyword is an error, as is a dataset defined twice.
	`,
}

var sequenceFilesGuide = &command.Command{
	Usage: "sequence-files",
	Short: "about sequence files",
	Long: `
In AATrans, the amino acid sequences must be aligned, and can be stored in a
FASTA file, or in a tab-delimited file.

In a FASTA file, the name of the taxon is the whole description line, in which
underscores are replaced by spaces. Lines starting with ';' are
comments. Here is an example file:

	>Homo_sapiens
	MKAILVVLLYTFATANA
	>Pan_troglodytes
	MKAILVVLLYTFTTANA

A tab-delimited file must have the following columns:

	- taxon     the name of the taxon
	- sequence  the aligned sequence

Here is an example file:

	# aligned sequences
	taxon	sequence
	Homo sapiens	MKAILVVLLYTFATANA
	Pan troglodytes	MKAILVVLLYTFTTANA

Sequences are stored in upper case. The character 'X' is used for an
ambiguous residue, and '-' for a gap. Both are ignored in the consensus.
Taxon names are case insensitive, and must match the names of the terminals
of the trees.

In an AATrans project, the file that contains the sequences is indicated with
the "sequences" keyword.
	`,
}

var paramFilesGuide = &command.Command{
	Usage: "param-files",
	Short: "about parameter files",
	Long: `
The parameters for the inference of transitions are stored in a tab-delimited
file with the following columns:

	- parameter  the name of the parameter
	- value      the value of the parameter

Here is an example file:

	# aatrans parameters
	parameter	value
	capacity	24
	flipdistance	3
	flipratio	0.005000
	tolerance	0.600000
	reference	A/Brisbane/10/2007

Valid parameters are:

	- capacity      the number of distinct residues allowed at each
	                position.
	- flipdistance  the number of tree levels under which a reversion of a
	                transition is considered a flip.
	- flipratio     the minimum fraction of terminals of a node that must
	                revert a transition to remove it.
	- reference     the terminal used as the root sequence.
	- tolerance     the share of votes that the most common residue of a
	                node must exceed to be considered the majority.

The tolerance of particular positions is stored in a different tab-delimited
file with the following columns:

	- position   the 1-based position
	- tolerance  the tolerance at that position

In an AATrans project, the file that contains the parameters is indicated with
the "params" keyword, and the file with the tolerance of particular positions
with the "tolerance" keyword.
	`,
}

var transitionFilesGuide = &command.Command{
	Usage: "transition-files",
	Short: "about transition files",
	Long: `
Inferred transitions are stored in a tab-delimited file with the following
columns:

	- tree      the name of the tree
	- node      the ID of the node at the end of the branch
	- taxon     the name of the terminal (empty for internal nodes)
	- position  the 1-based position
	- ancestor  the ancestral residue ('?' if it is unknown)
	- derived   the derived residue

Here is an example file:

	# amino acid transitions
	tree	node	taxon	position	ancestor	derived
	h3n2	12		145	N	K
	h3n2	12		160	T	A
	h3n2	37	A/Perth/16/2009	189	K	N

In an AATrans project, the file that contains the transitions is indicated
with the "transitions" keyword.
	`,
}

var treeFilesGuide = &command.Command{
	Usage: "tree-files",
	Short: "about tree files",
	Long: `
In AATrans, phylogenetic trees are stored in a tab-delimited file. The
advantage of using a tab-delimited file is that it would be easier to
manipulate trees than in traditional newick files; for example, it would be
easier for commands in AATrans, as well as for third-party applications, to
understand the node IDs.

The recommended way to interact with trees in an AATrans project is by using
the commands in "aatrans tree".

An AATrans tree file is a tab-delimited file with the following columns:

	-tree    for the name of the tree.
	-node    for the ID of the node.
	-parent  for of ID of the parent node (-1 is used for the root).
	-age     the age of the node (in years).
	-taxon   the taxonomic name of the node.

Here is an example file:

	# phylogenetic tree
	tree	node	parent	age	taxon
	hominids	0	-1	16000000
	hominids	1	0	0	Pongo abelii
	hominids	2	0	8000000
	hominids	3	2	0	Homo sapiens
	hominids	4	2	0	Pan troglodytes

In an AATrans project, the file that contains the trees is indicated with the
"trees" keyword.
	`,
}
