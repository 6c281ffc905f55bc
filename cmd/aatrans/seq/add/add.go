// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package add implements a command to add
// aligned amino acid sequences to an aatrans project.
package add

import (
	"fmt"
	"os"

	"github.com/js-arias/aatrans/project"
	"github.com/js-arias/aatrans/seqs"
	"github.com/js-arias/command"
)

var Command = &command.Command{
	Usage: `add [-f|--file <sequence-file>]
	<project-file> <input-file>...`,
	Short: "add aligned sequences to an aatrans project",
	Long: `
Command add reads one or more files with aligned amino acid sequences and
adds them to an aatrans project.

The first argument of the command is the name of the project file. If no
project file exists, a new project will be created.

One or more sequence files can be given as arguments. Sequence files can be
FASTA files, or tab-delimited files with the fields "taxon" and "sequence". If
a taxon is already defined in the project, its sequence will be replaced by
the new sequence.

By default the sequences will be stored in the sequence file currently
defined for the project. If the project does not have a sequence file, a new
one will be created with the name 'sequences.tab'. A different file name can
be defined using the flag --file, or -f.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var seqFile string

func setFlags(c *command.Command) {
	c.Flags().StringVar(&seqFile, "file", "", "")
	c.Flags().StringVar(&seqFile, "f", "", "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting project file")
	}
	if len(args) < 2 {
		return c.UsageError("expecting sequence file")
	}

	p, err := project.Open(args[0])
	if err != nil {
		return err
	}

	sc := seqs.New()
	if sf := p.Path(project.Sequences); sf != "" {
		sc, err = project.ReadSequences(sf)
		if err != nil {
			return fmt.Errorf("on project %q: %v", p.Name(), err)
		}
	}

	for _, a := range args[1:] {
		nc, err := project.ReadSequences(a)
		if err != nil {
			return err
		}
		for _, tax := range nc.Taxa() {
			sc.Add(tax, string(nc.Seq(tax)))
		}
	}

	if seqFile == "" {
		seqFile = p.Path(project.Sequences)
		if seqFile == "" {
			seqFile = "sequences.tab"
		}
	}
	if err := writeSeqs(sc); err != nil {
		return err
	}
	p.Add(project.Sequences, seqFile)
	if err := p.Write(); err != nil {
		return err
	}
	return nil
}

func writeSeqs(sc *seqs.Collection) (err error) {
	f, err := os.Create(seqFile)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := sc.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", seqFile, err)
	}
	return nil
}
