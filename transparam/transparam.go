// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package transparam implements reading and writing
// of the parameters for the inference of amino acid transitions.
package transparam

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/js-arias/aatrans/consensus"
	"github.com/js-arias/aatrans/infer/aatrans"
)

// Param is a keyword to identify
// the type of parameter in a parameter file.
type Param string

// Valid parameters
const (
	// Capacity is the number of distinct residues
	// allowed at each position.
	Capacity Param = "capacity"

	// FlipDistance is the maximum distance in tree levels
	// of a reversion to be considered a flip.
	FlipDistance Param = "flipdistance"

	// FlipRatio is the minimum fraction of terminals
	// of the reverted clade.
	FlipRatio Param = "flipratio"

	// Reference is the terminal used as the root sequence.
	Reference Param = "reference"

	// Tolerance is the default tolerance
	// for the consensus.
	Tolerance Param = "tolerance"
)

// TP represents a collection of parameters
// for the inference of transitions.
type TP struct {
	name string // file name

	tol      float64
	ratio    float64
	dist     int
	capacity int
	ref      string

	// per position tolerance
	pos map[int]float64
}

// New creates a new parameter collection
// with default values.
func New(name string) *TP {
	return &TP{
		name:     name,
		tol:      aatrans.DefaultTolerance,
		ratio:    aatrans.DefaultFlipRatio,
		dist:     aatrans.DefaultFlipDistance,
		capacity: consensus.DefaultCapacity,
		pos:      make(map[int]float64),
	}
}

var header = []string{
	"parameter",
	"value",
}

// Read reads a parameter file from a TSV file.
//
// The TSV must contains the following fields:
//
//   - parameter, the name of the parameter
//   - value, the value of the parameter
//
// Here is an example file:
//
//	# aatrans parameters
//	parameter	value
//	capacity	24
//	flipdistance	3
//	flipratio	0.005000
//	reference	A/Brisbane/10/2007
//	tolerance	0.600000
func Read(name string) (*TP, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tsv := csv.NewReader(f)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("on file %q: header: %v", name, err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("on file %q: expecting field %q", name, h)
		}
	}

	tp := New(name)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on file %q: on row %d: %v", name, ln, err)
		}

		f := "parameter"
		p := Param(strings.ToLower(row[fields[f]]))

		f = "value"
		v := row[fields[f]]
		switch p {
		case Capacity:
			c, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
			if err := tp.SetCapacity(c); err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
		case FlipDistance:
			d, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
			if err := tp.SetFlipDistance(d); err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
		case FlipRatio:
			r, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
			if err := tp.SetFlipRatio(r); err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
		case Reference:
			tp.SetReference(v)
		case Tolerance:
			t, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
			if err := tp.SetTolerance(t); err != nil {
				return nil, fmt.Errorf("on file %q: on row %d, field %q: %v", name, ln, f, err)
			}
		}
	}
	return tp, nil
}

// Capacity returns the number of distinct residues
// at each position.
func (tp *TP) Capacity() int {
	return tp.capacity
}

// FlipDistance returns the maximum distance
// of a flip.
func (tp *TP) FlipDistance() int {
	return tp.dist
}

// FlipRatio returns the minimum fraction of terminals
// of a flip.
func (tp *TP) FlipRatio() float64 {
	return tp.ratio
}

// Name returns the name of the parameter file.
func (tp *TP) Name() string {
	return tp.name
}

// Reference returns the terminal used as root sequence.
func (tp *TP) Reference() string {
	return tp.ref
}

// Tolerance returns the default tolerance.
func (tp *TP) Tolerance() float64 {
	return tp.tol
}

// SetCapacity sets the number of distinct residues
// at each position.
func (tp *TP) SetCapacity(c int) error {
	if c < 1 {
		return fmt.Errorf("invalid capacity value: %d", c)
	}
	tp.capacity = c
	return nil
}

// SetFlipDistance sets the maximum distance of a flip.
func (tp *TP) SetFlipDistance(d int) error {
	if d < 1 {
		return fmt.Errorf("invalid flip distance: %d", d)
	}
	tp.dist = d
	return nil
}

// SetFlipRatio sets the minimum fraction of terminals
// of a flip.
func (tp *TP) SetFlipRatio(r float64) error {
	if r <= 0 || r >= 1 {
		return fmt.Errorf("invalid flip ratio: %.6f", r)
	}
	tp.ratio = r
	return nil
}

// SetName sets the name of the parameter file.
func (tp *TP) SetName(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	tp.name = name
}

// SetReference sets the terminal used as root sequence.
func (tp *TP) SetReference(ref string) {
	tp.ref = strings.Join(strings.Fields(ref), " ")
}

// SetTolerance sets the default tolerance.
func (tp *TP) SetTolerance(t float64) error {
	if t < 0 || t >= 1 {
		return fmt.Errorf("invalid tolerance: %.6f", t)
	}
	tp.tol = t
	return nil
}

// Write writes a parameter collection into a file.
func (tp *TP) Write() (err error) {
	f, err := os.Create(tp.name)
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
	fmt.Fprintf(bw, "# aatrans parameters\n")
	fmt.Fprintf(bw, "# data save on: %s\n", time.Now().Format(time.RFC3339))
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(header); err != nil {
		return fmt.Errorf("on file %q: while writing header: %v", tp.name, err)
	}

	rows := [][]string{
		{string(Capacity), strconv.Itoa(tp.capacity)},
		{string(FlipDistance), strconv.Itoa(tp.dist)},
		{string(FlipRatio), strconv.FormatFloat(tp.ratio, 'f', 6, 64)},
		{string(Tolerance), strconv.FormatFloat(tp.tol, 'f', 6, 64)},
	}
	if tp.ref != "" {
		rows = append(rows, []string{string(Reference), tp.ref})
	}
	for _, row := range rows {
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("on file %q: %v", tp.name, err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", tp.name, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("on file %q: while writing data: %v", tp.name, err)
	}
	return nil
}

// Infer returns the parameters for an inference.
func (tp *TP) Infer() aatrans.Param {
	return aatrans.Param{
		Tolerance:    tp.PosTolerance,
		FlipRatio:    tp.ratio,
		FlipDistance: tp.dist,
		Capacity:     tp.capacity,
		Reference:    tp.ref,
	}
}
