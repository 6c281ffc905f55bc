// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package trans is a metapackage for commands
// that dealt with the inference of amino acid transitions.
package trans

import (
	"github.com/js-arias/aatrans/cmd/aatrans/trans/draw"
	"github.com/js-arias/aatrans/cmd/aatrans/trans/infer"
	"github.com/js-arias/aatrans/cmd/aatrans/trans/label"
	"github.com/js-arias/aatrans/cmd/aatrans/trans/param"
	"github.com/js-arias/aatrans/cmd/aatrans/trans/plot"
	"github.com/js-arias/aatrans/cmd/aatrans/trans/stats"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: "trans <command> [<argument>...]",
	Short: "commands for amino acid transitions",
}

func init() {
	Command.Add(draw.Command)
	Command.Add(infer.Command)
	Command.Add(label.Command)
	Command.Add(param.Command)
	Command.Add(plot.Command)
	Command.Add(stats.Command)
}
