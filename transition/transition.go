// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package transition implements the list of amino acid transitions
// inferred on a branch of a phylogenetic tree.
package transition

import (
	"fmt"
	"slices"
	"strings"

	"github.com/js-arias/aatrans/consensus"
)

// A Record is an amino acid transition
// at a given position of the alignment.
// Left is the ancestral residue
// (it might be unresolved, i.e., consensus.None)
// and Right is the derived residue.
type Record struct {
	Pos   int // 0-based
	Left  byte
	Right byte
}

// IsEffective returns true if both residues are resolved
// and they are different.
func (r Record) IsEffective() bool {
	return r.Left != consensus.None && r.Right != consensus.None && r.Left != r.Right
}

// String returns the record
// in the usual notation,
// for example "N145K",
// with 1-based positions.
// Unresolved residues are printed as "?".
func (r Record) String() string {
	return fmt.Sprintf("%c%d%c", printable(r.Left), r.Pos+1, printable(r.Right))
}

func printable(aa byte) byte {
	if aa == consensus.None {
		return '?'
	}
	return aa
}

// A List is a list of transitions of a branch.
// Records are kept in insertion order.
type List struct {
	recs []Record
}

// Len returns the number of records in the list.
func (l *List) Len() int {
	return len(l.recs)
}

// Records returns a copy of the records of the list.
func (l *List) Records() []Record {
	return slices.Clone(l.recs)
}

// Add adds a transition with an unresolved ancestral residue.
func (l *List) Add(pos int, right byte) {
	l.AddLR(pos, consensus.None, right)
}

// AddLR adds a transition with both residues.
// If there is a record at the same position
// it will be overwritten.
func (l *List) AddLR(pos int, left, right byte) {
	if r := l.Find(pos); r != nil {
		r.Left = left
		r.Right = right
		return
	}
	l.recs = append(l.recs, Record{Pos: pos, Left: left, Right: right})
}

// Find returns the record at a given position,
// or nil if there is no record at that position.
// The returned record can be modified in place.
func (l *List) Find(pos int) *Record {
	for i := range l.recs {
		if l.recs[i].Pos == pos {
			return &l.recs[i]
		}
	}
	return nil
}

// Remove removes the record at a position.
// It returns true if a record was removed.
func (l *List) Remove(pos int) bool {
	i := slices.IndexFunc(l.recs, func(r Record) bool {
		return r.Pos == pos
	})
	if i < 0 {
		return false
	}
	l.recs = slices.Delete(l.recs, i, i+1)
	return true
}

// RemoveRight removes the record at a position
// only if its derived residue is the indicated one.
func (l *List) RemoveRight(pos int, right byte) bool {
	i := slices.IndexFunc(l.recs, func(r Record) bool {
		return r.Pos == pos && r.Right == right
	})
	if i < 0 {
		return false
	}
	l.recs = slices.Delete(l.recs, i, i+1)
	return true
}

// Replace sets the derived residue of the record at a position.
// It returns false if there is no record at that position.
func (l *List) Replace(pos int, right byte) bool {
	r := l.Find(pos)
	if r == nil {
		return false
	}
	r.Right = right
	return true
}

// SetLeft sets the ancestral residue of all records
// from a sequence.
// Records beyond the sequence length are left unresolved.
func (l *List) SetLeft(seq []byte) {
	for i := range l.recs {
		r := &l.recs[i]
		if r.Pos >= len(seq) {
			continue
		}
		r.Left = seq[r.Pos]
	}
}

// HasAny returns true if the list has at least one effective transition.
// If positions are given,
// only transitions at those positions are checked.
func (l *List) HasAny(positions ...int) bool {
	for _, r := range l.recs {
		if !r.IsEffective() {
			continue
		}
		if len(positions) == 0 || slices.Contains(positions, r.Pos) {
			return true
		}
	}
	return false
}

// Clean removes records with the same ancestral and derived residues.
// It returns the number of removed records.
func (l *List) Clean() int {
	n := len(l.recs)
	l.recs = slices.DeleteFunc(l.recs, func(r Record) bool {
		return r.Left == r.Right
	})
	return n - len(l.recs)
}

// Reset removes all records.
func (l *List) Reset() {
	l.recs = l.recs[:0]
}

// Label returns a label with at most n effective transitions.
// Transitions at the important positions are printed first,
// in the order of the important positions,
// then the remaining transitions sorted by position.
// If n is zero or negative,
// all effective transitions will be printed.
func (l *List) Label(n int, important ...int) string {
	var recs []Record
	for _, p := range important {
		r := l.Find(p)
		if r == nil || !r.IsEffective() {
			continue
		}
		recs = append(recs, *r)
	}

	var other []Record
	for _, r := range l.recs {
		if !r.IsEffective() || slices.Contains(important, r.Pos) {
			continue
		}
		other = append(other, r)
	}
	slices.SortFunc(other, func(a, b Record) int {
		return a.Pos - b.Pos
	})
	recs = append(recs, other...)

	if n > 0 && len(recs) > n {
		recs = recs[:n]
	}
	s := make([]string, 0, len(recs))
	for _, r := range recs {
		s = append(s, r.String())
	}
	return strings.Join(s, " ")
}
