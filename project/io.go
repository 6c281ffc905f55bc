// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"bufio"
	"fmt"
	"os"

	"github.com/js-arias/aatrans/seqs"
	"github.com/js-arias/aatrans/transition"
	"github.com/js-arias/aatrans/transparam"
	"github.com/js-arias/timetree"
)

// Params reads the parameter file
// as defined in a project,
// including the tolerance of particular positions.
// If no parameter file is defined,
// it returns the default parameters.
func (p *Project) Params() (*transparam.TP, error) {
	name := p.Path(Params)
	var tp *transparam.TP
	if name == "" {
		tp = transparam.New("params.tab")
	} else {
		var err error
		tp, err = transparam.Read(name)
		if err != nil {
			return nil, err
		}
	}

	tf := p.Path(Tolerance)
	if tf == "" {
		return tp, nil
	}
	f, err := os.Open(tf)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	if err := tp.ReadTolerance(f); err != nil {
		return nil, fmt.Errorf("on file %q: %v", tf, err)
	}
	return tp, nil
}

// Sequences reads the sequence file
// as defined in a project.
// The file can be either a FASTA file,
// or a TSV file.
func (p *Project) Sequences() (*seqs.Collection, error) {
	name := p.Path(Sequences)
	if name == "" {
		return nil, fmt.Errorf("sequences not defined in project %q", p.name)
	}
	return ReadSequences(name)
}

// ReadSequences reads a sequence file
// either in FASTA or TSV format.
func ReadSequences(name string) (*seqs.Collection, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	var c *seqs.Collection
	if isFasta(r) {
		c, err = seqs.ReadFasta(r)
	} else {
		c, err = seqs.ReadTSV(r)
	}
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return c, nil
}

// IsFasta returns true if the first non-blank character
// of the file is a FASTA description line
// or comment.
func isFasta(r *bufio.Reader) bool {
	for i := 1; ; i++ {
		b, err := r.Peek(i)
		if err != nil {
			return false
		}
		switch b[i-1] {
		case ' ', '\t', '\r', '\n':
			continue
		case '>', ';':
			return true
		}
		return false
	}
}

// Transitions reads the transitions file
// as defined in a project.
func (p *Project) Transitions() (*transition.Collection, error) {
	name := p.Path(Transitions)
	if name == "" {
		return nil, fmt.Errorf("transitions not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := transition.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return c, nil
}

// Trees reads a tree collection file
// as defined in a project.
func (p *Project) Trees() (*timetree.Collection, error) {
	name := p.Path(Trees)
	if name == "" {
		return nil, fmt.Errorf("trees not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := timetree.ReadTSV(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return c, nil
}
