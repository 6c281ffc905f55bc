// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package project implements reading and writing
// of aatrans project files.
//
// An aatrans project is a tab-delimited file (TSV)
// that stores the paths of the trees,
// the aligned sequences,
// the inference parameters,
// and the inferred transitions
// used by aatrans commands.
package project

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/exp/slices"
)

// Dataset is a keyword to identify
// the type of a dataset file in a project.
type Dataset string

// Valid dataset types.
const (
	// File for the parameters
	// of the transition inference.
	Params Dataset = "params"

	// File for aligned amino acid sequences.
	Sequences Dataset = "sequences"

	// File for tolerance values
	// of particular positions.
	Tolerance Dataset = "tolerance"

	// File for the inferred transitions.
	Transitions Dataset = "transitions"

	// File for phylogenetic trees.
	Trees Dataset = "trees"
)

var datasets = []Dataset{
	Params,
	Sequences,
	Tolerance,
	Transitions,
	Trees,
}

// ParseDataset returns the dataset of a keyword.
func ParseDataset(s string) (Dataset, error) {
	d := Dataset(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(datasets, d) {
		return "", fmt.Errorf("unknown dataset %q", s)
	}
	return d, nil
}

// A Project is a collection of paths
// for the datasets of an analysis.
type Project struct {
	name  string
	paths map[Dataset]string
}

// New creates a new empty project.
func New() *Project {
	return &Project{
		paths: make(map[Dataset]string),
	}
}

// Open reads a project file.
// If the file does not exist,
// it returns a new empty project
// with the indicated name.
func Open(name string) (*Project, error) {
	p, err := Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p = New()
		p.name = name
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}

// Read reads a project file.
//
// The TSV must contain the following fields:
//
//   - dataset, for the kind of file
//   - path, for the path of the file
//
// Here is an example file:
//
//	# aatrans project files
//	dataset	path
//	params	params.tab
//	sequences	h3-ha1.fasta
//	transitions	transitions.tab
//	trees	trees.tab
//
// Unknown datasets are an error.
func Read(name string) (*Project, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	p, err := read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	p.name = name
	return p, nil
}

func read(r io.Reader) (*Project, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		fields[strings.ToLower(h)] = i
	}
	for _, h := range []string{"dataset", "path"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	p := New()
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		set, err := ParseDataset(row[fields["dataset"]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
		if prev, ok := p.paths[set]; ok {
			return nil, fmt.Errorf("on row %d: dataset %q already defined as %q", ln, set, prev)
		}
		p.Add(set, row[fields["path"]])
	}
	return p, nil
}

// Add sets the path of a dataset,
// and returns the previous path.
// An empty path removes the dataset.
func (p *Project) Add(set Dataset, path string) string {
	prev := p.paths[set]
	path = strings.TrimSpace(path)
	if path == "" {
		delete(p.paths, set)
		return prev
	}

	p.paths[set] = path
	return prev
}

// Name returns the file name of the project.
func (p *Project) Name() string {
	return p.name
}

// Path returns the path of the given dataset.
func (p *Project) Path(set Dataset) string {
	return p.paths[set]
}

// Require returns an error
// if any of the indicated datasets is not defined.
func (p *Project) Require(sets ...Dataset) error {
	var missing []string
	for _, s := range sets {
		if _, ok := p.paths[s]; !ok {
			missing = append(missing, string(s))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("project %q: undefined datasets: %s", p.name, strings.Join(missing, ", "))
	}
	return nil
}

// Sets returns the datasets defined on a project.
func (p *Project) Sets() []Dataset {
	sets := make([]Dataset, 0, len(p.paths))
	for _, s := range datasets {
		if _, ok := p.paths[s]; ok {
			sets = append(sets, s)
		}
	}
	return sets
}

// SetName sets the project file name.
func (p *Project) SetName(name string) {
	p.name = name
}

// Write writes a project into a file.
func (p *Project) Write() (err error) {
	f, err := os.Create(p.name)
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
	fmt.Fprintf(bw, "# aatrans project files\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	if err := p.tsv(bw); err != nil {
		return fmt.Errorf("on file %q: %v", p.name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", p.name, err)
	}
	return nil
}

func (p *Project) tsv(w io.Writer) error {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write([]string{"dataset", "path"}); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, s := range p.Sets() {
		if err := tsv.Write([]string{string(s), p.paths[s]}); err != nil {
			return err
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
