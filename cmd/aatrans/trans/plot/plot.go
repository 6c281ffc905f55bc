// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package plot implements a command to plot
// the number of transitions at each position.
package plot

import (
	"fmt"

	"github.com/js-arias/aatrans/project"
	"github.com/js-arias/aatrans/transition"
	"github.com/js-arias/command"
	"golang.org/x/exp/slices"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var Command = &command.Command{
	Usage: `plot [--tree <tree-name>] [--min <number>]
	[-o|--output <out-prefix>]
	<project-file>`,
	Short: "plot the number of transitions per position",
	Long: `
Command plot reads the inferred transitions of an aatrans project, and draws
a bar plot with the number of transitions at each position. The plot is saved
as a PNG file.

The argument of the command is the name of the project file.

By default, all trees with transitions will be plotted. If the flag --tree is
set, only the indicated tree will be plotted.

By default, all positions with at least one transition will be plotted. Use
the flag --min to plot only the positions with at least the indicated number
of transitions.

By default, the names of the trees will be used as the output file names. Use
the flag -o, or --output, to define a prefix for the resulting files.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var treeName string
var minTrans int
var outPrefix string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().IntVar(&minTrans, "min", 1, "")
	c.Flags().StringVar(&outPrefix, "output", "", "")
	c.Flags().StringVar(&outPrefix, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}
	tr, err := p.Transitions()
	if err != nil {
		return err
	}

	ls := tr.Trees()
	if treeName != "" {
		if !slices.Contains(ls, treeName) {
			return fmt.Errorf("tree %q without transitions in project %q", treeName, args[0])
		}
		ls = []string{treeName}
	}

	for _, tn := range ls {
		name := tn + "-positions.png"
		if outPrefix != "" {
			name = fmt.Sprintf("%s-%s", outPrefix, name)
		}
		if err := positionPlot(tr, tn, name); err != nil {
			return fmt.Errorf("while writing file %q: %v", name, err)
		}
	}
	return nil
}

// PerPosition returns the number of effective transitions
// at each position of a tree.
func perPosition(tr *transition.Collection, tree string) map[int]int {
	count := make(map[int]int)
	for _, n := range tr.Nodes(tree) {
		for _, r := range tr.List(tree, n).Records() {
			if !r.IsEffective() {
				continue
			}
			count[r.Pos]++
		}
	}
	return count
}

func positionPlot(tr *transition.Collection, tree, name string) error {
	count := perPosition(tr, tree)
	pos := make([]int, 0, len(count))
	for p, n := range count {
		if n < minTrans {
			continue
		}
		pos = append(pos, p)
	}
	slices.Sort(pos)

	vals := make(plotter.Values, 0, len(pos))
	names := make([]string, 0, len(pos))
	for _, p := range pos {
		vals = append(vals, float64(count[p]))
		names = append(names, fmt.Sprintf("%d", p+1))
	}

	plt := plot.New()
	plt.Title.Text = tree
	plt.X.Label.Text = "position"
	plt.Y.Label.Text = "transitions"

	if len(vals) > 0 {
		bars, err := plotter.NewBarChart(vals, vg.Points(6))
		if err != nil {
			return err
		}
		bars.LineStyle.Width = vg.Length(0)
		plt.Add(bars)
		plt.NominalX(names...)
	}

	width := 6 * vg.Inch
	if w := vg.Points(8) * vg.Length(len(vals)); w > width {
		width = w
	}
	return plt.Save(width, 4*vg.Inch, name)
}
