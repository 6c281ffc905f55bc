// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package stats implements a command to print
// summary statistics of the inferred transitions.
package stats

import (
	"fmt"
	"io"

	"github.com/js-arias/aatrans/project"
	"github.com/js-arias/aatrans/transition"
	"github.com/js-arias/command"
	"github.com/js-arias/timetree"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

var Command = &command.Command{
	Usage: `stats [--tree <tree-name>] [--top <number>]
	<project-file>`,
	Short: "print summary statistics of transitions",
	Long: `
Command stats reads the trees and the inferred transitions of an aatrans
project, and prints summary statistics of the transitions of each tree.

The argument of the command is the name of the project file.

For each tree it prints the number of effective transitions, the number of
branches and positions with transitions, the mean, standard deviation, median
and 95% quantile of the number of transitions per branch (including branches
without transitions), and the same values for the number of transitions per
position (only positions with transitions).

By default, the five positions with more transitions are also printed. Use
the flag --top to define a different number.

By default, all trees will be used. Use the flag --tree to print only the
statistics of a particular tree.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var top int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().IntVar(&top, "top", 5, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
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

	for _, tn := range ls {
		printStats(c.Stdout(), tc.Tree(tn), tr)
	}
	return nil
}

type posCount struct {
	pos   int
	count int
}

func printStats(w io.Writer, t *timetree.Tree, tr *transition.Collection) {
	tn := t.Name()

	// the root has no branch
	branches := make([]float64, 0, len(t.Nodes()))
	perPos := make(map[int]int)
	var total, withTrans int
	for _, id := range t.Nodes() {
		if t.IsRoot(id) {
			continue
		}
		var eff int
		if l := tr.List(tn, id); l != nil {
			for _, r := range l.Records() {
				if !r.IsEffective() {
					continue
				}
				eff++
				perPos[r.Pos]++
			}
		}
		if eff > 0 {
			withTrans++
		}
		total += eff
		branches = append(branches, float64(eff))
	}

	pc := make([]posCount, 0, len(perPos))
	positions := make([]float64, 0, len(perPos))
	for p, n := range perPos {
		pc = append(pc, posCount{pos: p, count: n})
		positions = append(positions, float64(n))
	}
	slices.SortFunc(pc, func(a, b posCount) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return a.pos - b.pos
	})

	fmt.Fprintf(w, "tree: %s\n", tn)
	fmt.Fprintf(w, "\ttransitions:\t%d\n", total)
	fmt.Fprintf(w, "\tbranches:\t%d of %d\n", withTrans, len(branches))
	fmt.Fprintf(w, "\tpositions:\t%d\n", len(perPos))
	if len(branches) > 0 {
		printSummary(w, "per branch", branches)
	}
	if len(positions) > 0 {
		printSummary(w, "per position", positions)
	}
	for i, v := range pc {
		if i >= top {
			break
		}
		fmt.Fprintf(w, "\tposition %d:\t%d\n", v.pos+1, v.count)
	}
}

func printSummary(w io.Writer, name string, vals []float64) {
	slices.Sort(vals)
	mean, sd := stat.MeanStdDev(vals, nil)
	median := stat.Quantile(0.5, stat.Empirical, vals, nil)
	q95 := stat.Quantile(0.95, stat.Empirical, vals, nil)
	fmt.Fprintf(w, "\t%s:\tmean %.3f, sd %.3f, median %.1f, 95%% %.1f, max %.0f\n", name, mean, sd, median, q95, vals[len(vals)-1])
}
