// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add trees
// to an aatrans project.
package add

import (
	"fmt"
	"io"
	"os"

	"github.com/js-arias/aatrans/project"
	"github.com/js-arias/aatrans/seqs"
	"github.com/js-arias/aatrans/seqtree"
	"github.com/js-arias/command"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `add [-f|--file <tree-file>]
	[--newick <name>] [--age <value>]
	<project-file> [<tree-file>...]`,
	Short: "add phylogenetic trees to an aatrans project",
	Long: `
Command add read one or more trees from one or more tree files, and add the
trees to an aatrans project.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

One or more tree files can be given as arguments. If no file is given the
tress will be read from the standard input.

By default, the input is expected to be in the form of tab-delimited tree
files. To import newick trees (i.e., trees in parenthetical format), use the
flag --newick with a name to be defined for the trees found in the input
files. It is expected that branch lengths were given in million years. By
default, the age of the root will be calculated from the largest branch length
between any terminal and the root. To set a different root age, use the
flag --age, with a value in million years. Branch lengths are not used in the
inference of transitions, but they are kept to draw the trees.

If the project already has a sequence dataset, the terminals of each added
tree are searched in the sequences, and a warning is printed for every
terminal without a sequence. Such terminals are ignored during the inference.
If a tree has less than two terminals with sequences, the command fails, as
no transition can be inferred on that tree.

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

const millionYears = 1_000_000

var treeFile string
var newickName string
var rootAge float64

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeFile, "file", "", "")
	c.Flags().StringVar(&treeFile, "f", "", "")
	c.Flags().StringVar(&newickName, "newick", "", "")
	c.Flags().Float64Var(&rootAge, "age", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	p, err := project.Open(args[0])
	if err != nil {
		return err
	}

	tc := timetree.NewCollection()
	if tf := p.Path(project.Trees); tf != "" {
		tc, err = readTrees(nil, tf, "")
		if err != nil {
			return fmt.Errorf("on project %q: %v", p.Name(), err)
		}
	}

	var sc *seqs.Collection
	if p.Path(project.Sequences) != "" {
		sc, err = p.Sequences()
		if err != nil {
			return fmt.Errorf("on project %q: %v", p.Name(), err)
		}
	}

	args = args[1:]
	if len(args) == 0 {
		args = append(args, "-")
	}
	for i, a := range args {
		var tn string
		if newickName != "" {
			tn = newickName
			if i > 0 {
				tn = fmt.Sprintf("%s.%d", newickName, i)
			}
		}
		nc, err := readTrees(c.Stdin(), a, tn)
		if err != nil {
			return err
		}
		if err := addTrees(c.Stderr(), tc, nc, sc); err != nil {
			return fmt.Errorf("when adding trees from %q: %v", a, err)
		}
	}

	if treeFile == "" {
		treeFile = p.Path(project.Trees)
		if treeFile == "" {
			treeFile = "trees.tab"
		}
	}

	if err := writeTrees(tc); err != nil {
		return err
	}
	p.Add(project.Trees, treeFile)
	if err := p.Write(); err != nil {
		return err
	}

	return nil
}

// AddTrees adds the trees of a new collection
// into the project collection.
// If a sequence collection is given,
// the terminals of each tree are searched
// in the collection.
func addTrees(w io.Writer, tc, nc *timetree.Collection, sc *seqs.Collection) error {
	for _, tn := range nc.Names() {
		t := nc.Tree(tn)
		if sc != nil {
			missing := seqtree.New(t, sc).Missing()
			for _, tax := range missing {
				fmt.Fprintf(w, "WARNING: tree %q: terminal %q: without sequence\n", tn, tax)
			}
			if n := len(t.Terms()) - len(missing); n < 2 {
				return fmt.Errorf("tree %q: only %d terminals with sequences", tn, n)
			}
		}
		if err := tc.Add(t); err != nil {
			return err
		}
	}
	return nil
}

// ReadTrees reads trees from a file,
// or the standard input if the name is "-".
// If a tree name is given,
// the input is read as newick trees.
func readTrees(r io.Reader, name, treeName string) (*timetree.Collection, error) {
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	} else {
		name = "stdin"
	}

	var c *timetree.Collection
	var err error
	if treeName != "" {
		c, err = timetree.Newick(r, treeName, int64(rootAge*millionYears))
	} else {
		c, err = timetree.ReadTSV(r)
	}
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return c, nil
}

func writeTrees(tc *timetree.Collection) (err error) {
	f, err := os.Create(treeFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := tc.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", treeFile, err)
	}
	return nil
}
