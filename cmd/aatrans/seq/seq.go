// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package seq is a metapackage for commands
// that dealt with aligned amino acid sequences.
package seq

import (
	"github.com/js-arias/aatrans/cmd/aatrans/seq/add"
	"github.com/js-arias/aatrans/cmd/aatrans/seq/consensus"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "seq <command> [<argument>...]",
	Short: "commands for amino acid sequences",
}

func init() {
	Command.Add(add.Command)
	Command.Add(consensus.Command)
}
