// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package consensus

import (
	"errors"
	"fmt"
	"strings"
)

// Tolerance returns the minimum share of votes
// that the most common residue
// must have at a given position
// to be considered the consensus.
type Tolerance func(pos int) float64

// Fixed returns a tolerance function
// with the same value for all positions.
func Fixed(tol float64) Tolerance {
	return func(int) float64 { return tol }
}

// An Aggregator is a collection of counters,
// one for each position of an alignment,
// that stores the votes of all the terminals
// of a subtree.
type Aggregator struct {
	pos      []Counter
	capacity int
}

// NewAggregator returns an empty aggregator
// for sequences of the indicated length,
// with counters of the given capacity.
func NewAggregator(length, capacity int) *Aggregator {
	a := &Aggregator{
		pos:      make([]Counter, length),
		capacity: capacity,
	}
	for i := range a.pos {
		a.pos[i] = NewCounter(capacity)
	}
	return a
}

// Capacity returns the capacity of the counters.
func (a *Aggregator) Capacity() int {
	return a.capacity
}

// Len returns the number of positions of the aggregator.
func (a *Aggregator) Len() int {
	return len(a.pos)
}

// UpdateLeaf adds a vote for each residue of a sequence.
// Ambiguous residues and gaps are ignored,
// as well as any position beyond the length of the aggregator.
func (a *Aggregator) UpdateLeaf(seq []byte) error {
	for i, aa := range seq {
		if i >= len(a.pos) {
			break
		}
		if !IsResidue(aa) {
			continue
		}
		if err := a.pos[i].Count(aa, 1); err != nil {
			return withPos(err, i)
		}
	}
	return nil
}

// UpdateFromChild adds the votes of a descendant aggregator.
func (a *Aggregator) UpdateFromChild(child *Aggregator) error {
	for i := range child.pos {
		if i >= len(a.pos) {
			break
		}
		if err := a.pos[i].Merge(&child.pos[i]); err != nil {
			return withPos(err, i)
		}
	}
	return nil
}

func withPos(err error, pos int) error {
	var ce *CapacityError
	if errors.As(err, &ce) {
		ce.Pos = pos
		return ce
	}
	return err
}

// IsEmpty returns true if there are no votes
// at a position.
func (a *Aggregator) IsEmpty(pos int) bool {
	if pos < 0 || pos >= len(a.pos) {
		return true
	}
	return a.pos[pos].IsEmpty()
}

// Total returns the number of votes at a position.
func (a *Aggregator) Total(pos int) int {
	if pos < 0 || pos >= len(a.pos) {
		return 0
	}
	return a.pos[pos].Total()
}

// Votes returns the votes at a position
// in descending order.
func (a *Aggregator) Votes(pos int) []Vote {
	if pos < 0 || pos >= len(a.pos) {
		return nil
	}
	return a.pos[pos].Report()
}

// Majority returns the most common residue at a position
// if its share of the votes is larger than the tolerance.
// Otherwise it returns None.
func (a *Aggregator) Majority(pos int, tol float64) byte {
	aa, share := a.Share(pos)
	if aa == None || share <= tol {
		return None
	}
	return aa
}

// Share returns the most common residue at a position
// and its share of the votes.
func (a *Aggregator) Share(pos int) (byte, float64) {
	if pos < 0 || pos >= len(a.pos) {
		return None, 0
	}
	c := &a.pos[pos]
	aa, n := c.MaxWithCount()
	if n == 0 {
		return None, 0
	}
	return aa, float64(n) / float64(c.Total())
}

// Report returns a description of the votes at a position
// and the resulting majority,
// for diagnostics.
func (a *Aggregator) Report(pos int, tol float64) string {
	var b strings.Builder
	aa := a.Majority(pos, tol)
	maj := "-"
	if aa != None {
		maj = string(aa)
	}
	fmt.Fprintf(&b, "pos %d: majority %s (tolerance %.3f) total %d:", pos+1, maj, tol, a.Total(pos))
	for _, v := range a.Votes(pos) {
		fmt.Fprintf(&b, " %s", v)
	}
	return b.String()
}
