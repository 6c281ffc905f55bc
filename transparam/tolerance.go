// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package transparam

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// PosTolerance returns the tolerance
// at a given 0-based position.
// If the position has not a particular tolerance,
// the default tolerance is returned.
func (tp *TP) PosTolerance(pos int) float64 {
	if t, ok := tp.pos[pos]; ok {
		return t
	}
	return tp.tol
}

// SetPosTolerance sets the tolerance
// of a 0-based position.
// A negative tolerance
// removes the particular tolerance of the position.
func (tp *TP) SetPosTolerance(pos int, t float64) error {
	if pos < 0 {
		return fmt.Errorf("invalid position: %d", pos+1)
	}
	if t < 0 {
		delete(tp.pos, pos)
		return nil
	}
	if t >= 1 {
		return fmt.Errorf("position %d: invalid tolerance: %.6f", pos+1, t)
	}
	tp.pos[pos] = t
	return nil
}

// Positions returns the 0-based positions
// with a particular tolerance.
func (tp *TP) Positions() []int {
	pos := make([]int, 0, len(tp.pos))
	for p := range tp.pos {
		pos = append(pos, p)
	}
	slices.Sort(pos)
	return pos
}

// ReadTolerance reads the tolerance of particular positions
// from a TSV file.
//
// The TSV must contains the following fields:
//
//   - position, the 1-based position
//   - tolerance, the tolerance value at that position
//
// Here is an example file:
//
//	# tolerance by position
//	position	tolerance
//	145	0.500000
//	189	0.700000
func (tp *TP) ReadTolerance(r io.Reader) error {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range []string{"position", "tolerance"} {
		if _, ok := fields[h]; !ok {
			return fmt.Errorf("expecting field %q", h)
		}
	}

	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "position"
		pos, err := strconv.Atoi(row[fields[f]])
		if err != nil {
			return fmt.Errorf("on row %d, field %q: %v", ln, f, err)
		}

		f = "tolerance"
		t, err := strconv.ParseFloat(row[fields[f]], 64)
		if err != nil {
			return fmt.Errorf("on row %d, field %q: %v", ln, f, err)
		}
		if err := tp.SetPosTolerance(pos-1, t); err != nil {
			return fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	return nil
}

// TolTSV writes the tolerance of particular positions
// into a TSV file.
func (tp *TP) TolTSV(w io.Writer) error {
	tsv := csv.NewWriter(w)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write([]string{"position", "tolerance"}); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, p := range tp.Positions() {
		row := []string{
			strconv.Itoa(p + 1),
			strconv.FormatFloat(tp.pos[p], 'f', 6, 64),
		}
		if err := tsv.Write(row); err != nil {
			return fmt.Errorf("while writing data: %v", err)
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
