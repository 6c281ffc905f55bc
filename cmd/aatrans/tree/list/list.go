// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package list implements a command to print
// the list of trees in an aatrans project.
package list

import (
	"fmt"

	"github.com/js-arias/aatrans/project"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "list [--terms] <project-file>",
	Short: "print a list of the trees in a project",
	Long: `
Command list reads the trees from an aatrans project and print the tree names
in the standard output.

The argument of the command is the name of the project file.

If the flag --terms is defined, the number of terminals of each tree, and the
number of terminals without a sequence in the project sequence file, will be
printed after the name of the tree.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var termsFlag bool

func setFlags(c *command.Command) {
	c.Flags().BoolVar(&termsFlag, "terms", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	tc, err := p.Trees()
	if err != nil {
		return err
	}

	if !termsFlag {
		for _, tn := range tc.Names() {
			fmt.Fprintf(c.Stdout(), "%s\n", tn)
		}
		return nil
	}

	sc, err := p.Sequences()
	if err != nil {
		return err
	}
	for _, tn := range tc.Names() {
		t := tc.Tree(tn)
		var missing int
		terms := t.Terms()
		for _, tax := range terms {
			if sc.Seq(tax) == nil {
				missing++
			}
		}
		fmt.Fprintf(c.Stdout(), "%s\t%d\t%d\n", tn, len(terms), missing)
	}
	return nil
}
