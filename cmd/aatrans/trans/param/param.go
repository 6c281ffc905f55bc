// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package param implements a command to manage
// the parameters for the inference of transitions.
package param

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/js-arias/aatrans/project"
	"github.com/js-arias/aatrans/transparam"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `param [--add <param-file>] [--file <file-name>]
	[--tol <value>] [--ratio <value>] [--dist <value>]
	[--capacity <value>] [--ref <taxon>]
	[--postol <position=value,...>] [--tolfile <file-name>]
	<project-file>`,
	Short: "manage transition inference parameters",
	Long: `
Command param manages the parameters used for the inference of amino acid
transitions defined for an aatrans project.

The argument of the command is the name of the project file.

By default, the command will print the currently defined parameters.

If the flag --add is defined, it will use the indicated file for the
parameters.

By default, any change on the parameters will be stored in the current
parameters file. If the project does not have a parameters file, a new one
will be created with the name 'params.tab'. Use the flag --file to define a
new parameters file.

The flag --tol sets the tolerance of the consensus: the share of the votes
that the most common residue at a node must exceed to be considered the
majority. The default value is 0.6.

The flags --ratio and --dist define when a reversion is considered noise. If
the descendants that revert an ancestral transition are separated by less than
--dist tree levels from the ancestral transition, and the fraction of the
terminals of the ancestral node in the reverted clades is larger than --ratio,
the ancestral transition is removed. Default values are 3 and 0.005.

The flag --capacity sets the number of distinct residues allowed at each
position. If more residues are found, the inference is stopped. The default
value is 24.

The flag --ref sets the terminal used as the root sequence. By default the
first terminal with a sequence is used.

Particular positions can have a different tolerance. Use the flag --postol,
with a list of 1-based positions and tolerance values, for example,
"145=0.8,160=0.7". A negative value removes the tolerance of the position. The
tolerance of particular positions is stored in the tolerance file of the
project. If the project does not have a tolerance file, a new one will be
created with the name 'tolerance.tab'. Use the flag --tolfile to define a new
tolerance file.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var addFile string
var paramFile string
var tolFile string
var posTol string
var refTaxon string
var tolerance float64
var ratio float64
var dist int
var capacity int

func setFlags(c *command.Command) {
	c.Flags().StringVar(&addFile, "add", "", "")
	c.Flags().StringVar(&paramFile, "file", "", "")
	c.Flags().StringVar(&tolFile, "tolfile", "", "")
	c.Flags().StringVar(&posTol, "postol", "", "")
	c.Flags().StringVar(&refTaxon, "ref", "", "")
	c.Flags().Float64Var(&tolerance, "tol", -1, "")
	c.Flags().Float64Var(&ratio, "ratio", 0, "")
	c.Flags().IntVar(&dist, "dist", 0, "")
	c.Flags().IntVar(&capacity, "capacity", 0, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}

	p, err := project.Read(args[0])
	if err != nil {
		return err
	}

	tp, err := p.Params()
	if err != nil {
		return err
	}

	if addFile != "" {
		if _, err := transparam.Read(addFile); err != nil {
			return err
		}
		p.Add(project.Params, addFile)
		if err := p.Write(); err != nil {
			return err
		}
		return nil
	}

	if paramFile != "" {
		tp.SetName(paramFile)
	}

	ed := false
	if tolerance >= 0 {
		if err := tp.SetTolerance(tolerance); err != nil {
			return err
		}
		ed = true
	}
	if ratio > 0 {
		if err := tp.SetFlipRatio(ratio); err != nil {
			return err
		}
		ed = true
	}
	if dist > 0 {
		if err := tp.SetFlipDistance(dist); err != nil {
			return err
		}
		ed = true
	}
	if capacity > 0 {
		if err := tp.SetCapacity(capacity); err != nil {
			return err
		}
		ed = true
	}
	if refTaxon != "" {
		tp.SetReference(refTaxon)
		ed = true
	}

	if posTol != "" || tolFile != "" {
		if err := setPosTol(tp); err != nil {
			return c.UsageError(fmt.Sprintf("flag --postol: %v", err))
		}
		if tolFile == "" {
			tolFile = p.Path(project.Tolerance)
			if tolFile == "" {
				tolFile = "tolerance.tab"
			}
		}
		if err := writeTolerance(tp); err != nil {
			return err
		}
		p.Add(project.Tolerance, tolFile)
		if err := p.Write(); err != nil {
			return err
		}
	}

	if (ed || paramFile != "") && p.Path(project.Params) != tp.Name() {
		if err := tp.Write(); err != nil {
			return err
		}
		p.Add(project.Params, tp.Name())
		if err := p.Write(); err != nil {
			return err
		}
		return nil
	}
	if ed {
		if err := tp.Write(); err != nil {
			return err
		}
		return nil
	}
	if posTol != "" || tolFile != "" {
		return nil
	}

	printParams(c.Stdout(), tp)
	return nil
}

func setPosTol(tp *transparam.TP) error {
	for _, v := range strings.Split(posTol, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		ps, ts, ok := strings.Cut(v, "=")
		if !ok {
			return fmt.Errorf("invalid value %q", v)
		}
		pos, err := strconv.Atoi(strings.TrimSpace(ps))
		if err != nil {
			return fmt.Errorf("invalid position %q: %v", v, err)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(ts), 64)
		if err != nil {
			return fmt.Errorf("invalid tolerance %q: %v", v, err)
		}
		if err := tp.SetPosTolerance(pos-1, t); err != nil {
			return err
		}
	}
	return nil
}

func writeTolerance(tp *transparam.TP) (err error) {
	f, err := os.Create(tolFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := tp.TolTSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", tolFile, err)
	}
	return nil
}

func printParams(w io.Writer, tp *transparam.TP) {
	fmt.Fprintf(w, "file:          %s\n", tp.Name())
	fmt.Fprintf(w, "tolerance:     %.6f\n", tp.Tolerance())
	fmt.Fprintf(w, "flip ratio:    %.6f\n", tp.FlipRatio())
	fmt.Fprintf(w, "flip distance: %d\n", tp.FlipDistance())
	fmt.Fprintf(w, "capacity:      %d\n", tp.Capacity())
	if ref := tp.Reference(); ref != "" {
		fmt.Fprintf(w, "reference:     %s\n", ref)
	}
	for _, pos := range tp.Positions() {
		fmt.Fprintf(w, "position %d:\t%.6f\n", pos+1, tp.PosTolerance(pos))
	}
}
