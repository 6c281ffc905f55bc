// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package consensus implements residue counters
// used to build the consensus of a subtree
// at every position of an alignment.
package consensus

import (
	"fmt"
	"slices"
)

// Ambiguous is the residue used for unknown amino acids.
// It is never counted.
const Ambiguous = 'X'

// Gap is the alignment gap.
// It is never counted.
const Gap = '-'

// None is returned when there is no consensus
// (or no residue at all)
// at a position.
const None byte = 0

// DefaultCapacity is the default number of distinct residues
// stored by a counter.
// It covers the 20 standard amino acids
// plus the uncommon ones (B, J, O, U, Z).
const DefaultCapacity = 24

// IsResidue returns true if the indicated symbol
// is a residue that can be counted.
func IsResidue(aa byte) bool {
	switch aa {
	case None, Ambiguous, Gap, ' ', '.', '*', '?':
		return false
	}
	return true
}

// CapacityError is returned when a counter
// receives more distinct residues than its capacity.
// It is a configuration error:
// the capacity must be increased.
type CapacityError struct {
	Pos      int // 0-based position
	Residue  byte
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("position %d: residue %q: counter capacity %d exceeded", e.Pos+1, e.Residue, e.Capacity)
}

// A Vote is the number of observations of a residue.
type Vote struct {
	AA    byte
	Count int
}

func (v Vote) String() string {
	return fmt.Sprintf("%c:%d", v.AA, v.Count)
}

// A Counter stores the number of times each residue
// was observed at a single position.
// Residues are kept in insertion order.
type Counter struct {
	votes []Vote
	max   int
}

// NewCounter returns a counter with the indicated capacity.
func NewCounter(capacity int) Counter {
	return Counter{max: capacity}
}

// Capacity returns the maximum number of distinct residues
// of the counter.
func (c *Counter) Capacity() int {
	return c.max
}

// Count adds inc observations of a residue.
// It returns a *CapacityError,
// with the position set to -1,
// if the residue is new
// and the counter is full.
func (c *Counter) Count(aa byte, inc int) error {
	for i := range c.votes {
		if c.votes[i].AA == aa {
			c.votes[i].Count += inc
			return nil
		}
	}
	if len(c.votes) >= c.max {
		return &CapacityError{Pos: -1, Residue: aa, Capacity: c.max}
	}
	c.votes = append(c.votes, Vote{AA: aa, Count: inc})
	return nil
}

// IsEmpty returns true if no residue was counted.
func (c *Counter) IsEmpty() bool {
	return len(c.votes) == 0
}

// Len returns the number of distinct residues.
func (c *Counter) Len() int {
	return len(c.votes)
}

// Max returns the residue with the highest count.
// Ties are broken by insertion order.
func (c *Counter) Max() byte {
	aa, _ := c.MaxWithCount()
	return aa
}

// MaxWithCount returns the residue with the highest count
// and its count.
func (c *Counter) MaxWithCount() (byte, int) {
	var best Vote
	for _, v := range c.votes {
		if v.Count > best.Count {
			best = v
		}
	}
	return best.AA, best.Count
}

// Total returns the total number of observations.
func (c *Counter) Total() int {
	var sum int
	for _, v := range c.votes {
		sum += v.Count
	}
	return sum
}

// Merge adds the observations of other counter.
func (c *Counter) Merge(other *Counter) error {
	for _, v := range other.votes {
		if err := c.Count(v.AA, v.Count); err != nil {
			return err
		}
	}
	return nil
}

// Report returns the votes in descending order
// by count.
// Ties keep the insertion order.
func (c *Counter) Report() []Vote {
	r := slices.Clone(c.votes)
	slices.SortStableFunc(r, func(a, b Vote) int {
		return b.Count - a.Count
	})
	return r
}
