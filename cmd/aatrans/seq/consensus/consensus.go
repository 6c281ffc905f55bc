// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package consensus implements a command to print
// the consensus of the nodes of a tree.
package consensus

import (
	"fmt"
	"io"

	"github.com/js-arias/aatrans/infer/aatrans"
	"github.com/js-arias/aatrans/project"
	"github.com/js-arias/aatrans/seqtree"
	"github.com/js-arias/aatrans/transparam"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `consensus [--tree <tree-name>] [--node <node-id>]
	[--pos <position-list>]
	<project-file>`,
	Short: "print the consensus of a node",
	Long: `
Command consensus reads the trees and sequences of an aatrans project, builds
the consensus of the internal nodes of the trees, and prints, for each
position, the majority residue of a node, as well as the votes of each
residue.

The argument of the command is the name of the project file.

By default, the consensus of the root of each tree will be printed. Use the
flag --tree to select a particular tree, and the flag --node, with the ID of a
node, to select a particular node of the tree.

By default, all positions will be printed. Use the flag --pos to define the
positions to be printed, as a list of 1-based positions separated by commas
(ranges can be given with a dash, for example, "145,156-160").

The output is a tab-delimited table with the fields "tree", "node",
"position", "majority", and "votes". If a position has no majority, "?" is
printed. The tolerance of the majority is taken from the project parameters.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var nodeID int
var posFlag string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().IntVar(&nodeID, "node", -1, "")
	c.Flags().StringVar(&posFlag, "pos", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	positions, err := transparam.ParsePositions(posFlag)
	if err != nil {
		return c.UsageError(fmt.Sprintf("flag --pos: %v", err))
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	if err := p.Require(project.Trees, project.Sequences); err != nil {
		return err
	}
	tc, err := p.Trees()
	if err != nil {
		return err
	}
	sc, err := p.Sequences()
	if err != nil {
		return err
	}
	tp, err := p.Params()
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

	fmt.Fprintf(c.Stdout(), "tree\tnode\tposition\tmajority\tvotes\n")
	for _, tn := range ls {
		t := seqtree.New(tc.Tree(tn), sc)
		if err := aatrans.BuildConsensus(t, tp.Capacity(), c.Stderr()); err != nil {
			return err
		}

		n := t.Root()
		if nodeID >= 0 {
			var ok bool
			n, ok = t.Node(nodeID)
			if !ok {
				return fmt.Errorf("tree %q: node %d not found", tn, nodeID)
			}
			if t.IsLeaf(n) {
				return fmt.Errorf("tree %q: node %d: is a terminal", tn, nodeID)
			}
		}
		printConsensus(c.Stdout(), t, n, tp, positions)
	}
	return nil
}

func printConsensus(w io.Writer, t *seqtree.Tree, n int, tp *transparam.TP, positions []int) {
	agg := t.Aggregator(n)
	if agg == nil {
		return
	}
	if len(positions) == 0 {
		for pos := 0; pos < t.Length(); pos++ {
			positions = append(positions, pos)
		}
	}

	for _, pos := range positions {
		if pos >= t.Length() {
			break
		}
		aa := agg.Majority(pos, tp.PosTolerance(pos))
		maj := "?"
		// zero means no majority
		if aa != 0 {
			maj = string(aa)
		}
		var votes string
		for i, v := range agg.Votes(pos) {
			if i > 0 {
				votes += " "
			}
			votes += v.String()
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", t.Name(), t.ID(n), pos+1, maj, votes)
	}
}
