// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// AATrans is a tool for the inference
// of amino acid transitions on phylogenetic trees.
package main

import (
	"github.com/js-arias/aatrans/cmd/aatrans/seq"
	"github.com/js-arias/aatrans/cmd/aatrans/trans"
	"github.com/js-arias/aatrans/cmd/aatrans/tree"
	"github.com/js-arias/command"
)

var app = &command.Command{
	Usage: "aatrans <command> [<argument>...]",
	Short: "a tool for the inference of amino acid transitions",
}

func init() {
	app.Add(seq.Command)
	app.Add(trans.Command)
	app.Add(tree.Command)
}

func main() {
	app.Main()
}
