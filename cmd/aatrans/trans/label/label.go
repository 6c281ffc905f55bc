// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package label implements a command to print
// the transition labels of the branches of a tree.
package label

import (
	"fmt"

	"github.com/js-arias/aatrans/infer/aatrans"
	"github.com/js-arias/aatrans/project"
	"github.com/js-arias/aatrans/seqs"
	"github.com/js-arias/aatrans/seqtree"
	"github.com/js-arias/aatrans/transparam"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `label [--tree <tree-name>] [--max <number>]
	[--important <position-list>] [--pos <position-list>]
	<project-file>`,
	Short: "print transition labels of the branches",
	Long: `
Command label reads the trees and the inferred transitions of an aatrans
project, and prints the label of each branch with at least one transition.

The argument of the command is the name of the project file.

The output is a tab-delimited table with the fields "tree", "node", "taxon",
and "label". A label is a list of transitions separated by spaces, in which
each transition is the ancestral residue, the 1-based position, and the
derived residue, for example "N145K T160A".

By default, all transitions of a branch are printed, sorted by position. Use
the flag --max to set the maximum number of transitions of each label. Use the
flag --important with a list of 1-based positions, separated by commas, to give
priority to the transitions at these positions (ranges can be given with a
dash, for example "145,156-160").

By default, all branches with transitions are printed. Use the flag --pos with
a list of 1-based positions to print only the branches with transitions at
these positions.

By default, all trees will be printed. Use the flag --tree to print only the
labels of a particular tree.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var maxLabel int
var importantFlag string
var posFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().IntVar(&maxLabel, "max", 0, "")
	c.Flags().StringVar(&importantFlag, "important", "", "")
	c.Flags().StringVar(&posFlag, "pos", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	important, err := transparam.ParsePositions(importantFlag)
	if err != nil {
		return c.UsageError(fmt.Sprintf("flag --important: %v", err))
	}
	positions, err := transparam.ParsePositions(posFlag)
	if err != nil {
		return c.UsageError(fmt.Sprintf("flag --pos: %v", err))
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	if err := p.Require(project.Trees, project.Transitions); err != nil {
		return err
	}
	tc, err := p.Trees()
	if err != nil {
		return err
	}
	tr, err := p.Transitions()
	if err != nil {
		return err
	}

	ls := tc.Names()
	if treeName != "" {
		if tc.Tree(treeName) == nil {
			return fmt.Errorf("tree %q not found in project %q", treeName, args[0])
		}
		ls = []string{treeName}
	}

	fmt.Fprintf(c.Stdout(), "tree\tnode\ttaxon\tlabel\n")
	for _, tn := range ls {
		t := seqtree.New(tc.Tree(tn), seqs.New())
		t.Import(tr)

		labels := aatrans.Labels(t, maxLabel, important...)
		t.PreOrder(func(n int) {
			lb, ok := labels[n]
			if !ok {
				return
			}
			if len(positions) > 0 && !aatrans.HasTransitions(t, n, positions...) {
				return
			}
			fmt.Fprintf(c.Stdout(), "%s\t%d\t%s\t%s\n", tn, t.ID(n), t.Taxon(n), lb)
		})
	}
	return nil
}
