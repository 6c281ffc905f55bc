// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package infer implements a command to infer
// the amino acid transitions on the trees
// of an aatrans project.
package infer

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/js-arias/aatrans/infer/aatrans"
	"github.com/js-arias/aatrans/project"
	"github.com/js-arias/aatrans/seqtree"
	"github.com/js-arias/aatrans/transition"
	"github.com/js-arias/aatrans/transparam"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `infer [--tree <tree-name>] [--hide <taxon-list>]
	[--trace <position-list>] [--ladder] [--cpu <number>]
	[-o|--output <file>]
	<project-file>`,
	Short: "infer amino acid transitions",
	Long: `
Command infer reads the trees, the aligned sequences, and the parameters of an
aatrans project, and infers the amino acid transitions on the branches of the
trees.

The argument of the command is the name of the project file.

For each position, the consensus of each node is build from the residues of
its descendants. A transition is proposed on each branch in which the
consensus of a node differs from its ancestor. The ancestral residue of each
transition is taken from the closest ancestral transition, and for the root,
from the reference sequence defined in the project parameters. Transitions
that are reverted by its descendants close to the ancestral transition are
removed as noise. See "aatrans help trans param" for the parameters of the
inference.

By default, transitions will be inferred on all the trees of the project. Use
the flag --tree to infer the transitions of a single tree. Transitions of
other trees already stored in the transitions file will be kept.

The flag --hide can be used to define a list of terminals, separated by
commas, that will be ignored in the inference.

The flag --trace can be used to define a list of 1-based positions (ranges can
be given with a dash, for example, "145,156-160"). For these positions the
consensus of each node will be printed in the standard error.

If the flag --ladder is defined, the descendants of each node will be sorted
by the number of terminals before the inference. It does not change the
inferred transitions.

By default, all available CPUs will be used in the inference. Use the flag
--cpu to define a different number of processors.

The transitions will be stored in the transitions file currently defined for
the project. If the project does not have a transitions file, a new one will
be created with the name 'transitions.tab'. A different file name can be
defined with the flag --output, or -o. In that case, the new file will be
used as the transitions file of the project.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var hideFlag string
var traceFlag string
var ladder bool
var numCPU int
var output string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&hideFlag, "hide", "", "")
	c.Flags().StringVar(&traceFlag, "trace", "", "")
	c.Flags().BoolVar(&ladder, "ladder", false, "")
	c.Flags().IntVar(&numCPU, "cpu", runtime.NumCPU(), "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	trace, err := transparam.ParsePositions(traceFlag)
	if err != nil {
		return c.UsageError(fmt.Sprintf("flag --trace: %v", err))
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

	param := tp.Infer()
	param.CPU = numCPU
	param.Log = c.Stderr()
	param.Trace = trace

	tr := transition.NewCollection()
	for _, tn := range ls {
		t := seqtree.New(tc.Tree(tn), sc)
		hide(c, t)
		if ladder {
			t.Ladderize()
		}

		st, err := aatrans.Infer(t, param)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Stderr(), "tree %q: positions %d, proposed %d, flips %d, cleaned %d, transitions %d, iterations %d\n", tn, st.Positions, st.Proposed, st.Flips, st.Cleaned, st.Transitions, st.Iterations)
		t.Export(tr)
	}

	if output == "" {
		output = p.Path(project.Transitions)
		if output == "" {
			output = "transitions.tab"
		}
	}
	if treeName != "" {
		if err := keepOthers(p, tr); err != nil {
			return err
		}
	}

	if err := writeTransitions(tr); err != nil {
		return err
	}
	p.Add(project.Transitions, output)
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func hide(c *command.Command, t *seqtree.Tree) {
	for _, tax := range strings.Split(hideFlag, ",") {
		tax = strings.TrimSpace(tax)
		if tax == "" {
			continue
		}
		n, ok := t.Leaf(tax)
		if !ok {
			fmt.Fprintf(c.Stderr(), "WARNING: tree %q: terminal %q: not found\n", t.Name(), tax)
			continue
		}
		t.Hide(n)
	}
}

// KeepOthers adds the transitions of the trees
// not inferred in this run
// from the current transitions file.
func keepOthers(p *project.Project, tr *transition.Collection) error {
	if p.Path(project.Transitions) == "" {
		return nil
	}
	old, err := p.Transitions()
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	for _, tn := range old.Trees() {
		if tn == treeName {
			continue
		}
		for _, n := range old.Nodes(tn) {
			tax := old.Taxon(tn, n)
			for _, r := range old.List(tn, n).Records() {
				tr.Add(tn, n, tax, r)
			}
		}
	}
	return nil
}

func writeTransitions(tr *transition.Collection) (err error) {
	f, err := os.Create(output)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := tr.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", output, err)
	}
	return nil
}
