// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package aatrans

import (
	"github.com/js-arias/aatrans/consensus"
	"github.com/js-arias/aatrans/seqtree"
	"github.com/js-arias/aatrans/transition"
)

// A recordSet is the set of transitions at a single position.
type recordSet interface {
	find(n int) *transition.Record
	remove(n int)
}

// treeRecords are the transitions of a position
// stored in the transition lists of a tree.
type treeRecords struct {
	t   *seqtree.Tree
	pos int
}

func (tr treeRecords) find(n int) *transition.Record {
	return tr.t.Transitions(n).Find(tr.pos)
}

func (tr treeRecords) remove(n int) {
	tr.t.Transitions(n).Remove(tr.pos)
}

// Stitch sets the ancestral residues of the transitions
// at a position,
// stored in the transition lists of the tree,
// and removes the ancestral transitions
// that are reverted by its descendants.
// It returns the number of removed transitions.
//
// The aggregators must be updated
// only if the reference sequence
// has no residue at the position.
func Stitch(t *seqtree.Tree, pos int, p Param) int {
	p = p.withDefaults()
	lg := &logger{w: p.Log}
	ref := reference(t, p.Reference, lg)

	removed, _ := stitch(t, pos, rootResidue(t, ref, pos), p, treeRecords{t: t, pos: pos}, make([]int, t.Len()))
	return removed
}

type flip struct {
	leaves int
	dist   int
}

// Stitch repeats the assignment of the ancestral residues
// and the removal of flipped transitions
// until no transition is removed.
// It returns the number of removed transitions
// and the number of iterations.
func stitch(t *seqtree.Tree, pos int, rootLeft byte, p Param, recs recordSet, depth []int) (removed, iter int) {
	for {
		iter++
		n := stitchPass(t, rootLeft, p, recs, depth)
		if n == 0 {
			return removed, iter
		}
		removed += n
	}
}

// StitchPass is a single pre-order pass
// that sets the ancestral residue of each transition
// from the closest ancestral transition,
// and on the way back,
// removes the transitions with too many flips.
func stitchPass(t *seqtree.Tree, rootLeft byte, p Param, recs recordSet, depth []int) int {
	var stack []int
	flips := make(map[int]*flip)
	var removed int

	root := t.Root()
	t.Walk(func(n int) {
		if n == root {
			depth[n] = 0
		} else {
			depth[n] = depth[t.Parent(n)] + 1
		}

		r := recs.find(n)
		if r == nil {
			return
		}
		if len(stack) == 0 {
			r.Left = rootLeft
			stack = append(stack, n)
			return
		}

		a := stack[len(stack)-1]
		ar := recs.find(a)
		r.Left = ar.Right
		if isFlip(ar, r) {
			f, ok := flips[a]
			if !ok {
				f = &flip{dist: depth[n] - depth[a]}
				flips[a] = f
			}
			f.leaves += t.NumLeaves(n)
			if d := depth[n] - depth[a]; d < f.dist {
				f.dist = d
			}
		}
		stack = append(stack, n)
	}, func(n int) {
		if len(stack) == 0 || stack[len(stack)-1] != n {
			return
		}
		stack = stack[:len(stack)-1]

		f, ok := flips[n]
		if !ok {
			return
		}
		nl := t.NumLeaves(n)
		if nl == 0 {
			return
		}
		ratio := float64(f.leaves) / float64(nl)
		if f.dist < p.FlipDistance && ratio > p.FlipRatio {
			recs.remove(n)
			removed++
		}
	})
	return removed
}

// IsFlip returns true if a transition
// is the reversion of its ancestral transition.
func isFlip(anc, r *transition.Record) bool {
	if r.Left == consensus.None || r.Left == r.Right {
		return false
	}
	return anc.Right == r.Left && anc.Left == r.Right
}
