// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package draw implements a command to draw
// trees with its amino acid transitions
// as SVG files.
package draw

import (
	"bufio"
	"fmt"
	"os"

	"github.com/js-arias/aatrans/project"
	"github.com/js-arias/aatrans/transparam"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `draw [--tree <tree-name>] [--step <value>]
	[--max <number>] [--important <position-list>]
	[-o|--output <out-prefix>]
	<project-file>`,
	Short: "draw trees with transitions as SVG files",
	Long: `
Command draw reads the trees and the inferred transitions of an aatrans
project, and draws the trees into SVG-encoded files. Each branch with
transitions is labeled with its transitions, and colored using a gradient
scaled by the number of transitions of the branch (branches without
transitions are drawn in gray).

The argument of the command is the name of the project file.

By default, 10 pixel units will be used per million years; use the flag --step
to define a different value (it can have decimal points).

By default, all transitions of a branch are used in the label. Use the flag
--max to set the maximum number of transitions of each label. Use the flag
--important with a list of 1-based positions, separated by commas, to give
priority to the transitions at these positions.

By default, all trees in the project will be drawn. If the flag --tree is set,
only the indicated tree will be drawn.

By default, the names of the trees will be used as the output file names. Use
the flag -o, or --output, to define a prefix for the resulting files.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var stepX float64
var maxLabel int
var importantFlag string
var treeName string
var outPrefix string

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&stepX, "step", 10, "")
	c.Flags().IntVar(&maxLabel, "max", 0, "")
	c.Flags().StringVar(&importantFlag, "important", "", "")
	c.Flags().StringVar(&treeName, "tree", "", "")
	c.Flags().StringVar(&outPrefix, "output", "", "")
	c.Flags().StringVar(&outPrefix, "o", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	important, err := transparam.ParsePositions(importantFlag)
	if err != nil {
		return c.UsageError(fmt.Sprintf("flag --important: %v", err))
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
		s := copyTree(tc.Tree(tn), stepX)
		s.setLabels(tr, maxLabel, important)
		if err := writeSVG(tn, s); err != nil {
			return err
		}
	}
	return nil
}

func writeSVG(name string, t svgTree) (err error) {
	if outPrefix != "" {
		name = fmt.Sprintf("%s-%s.svg", outPrefix, name)
	} else {
		name += ".svg"
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	bw := bufio.NewWriter(f)
	if err := t.draw(bw); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing file %q: %v", name, err)
	}
	return nil
}
