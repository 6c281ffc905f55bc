// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package aatrans

import (
	"sync"

	"github.com/js-arias/aatrans/consensus"
	"github.com/js-arias/aatrans/seqtree"
	"github.com/js-arias/aatrans/transition"
)

// A found is a transition found at a position.
type found struct {
	n     int
	left  byte
	right byte
}

type posAnswer struct {
	pos      int
	found    []found
	proposed int
	removed  int
	iter     int
}

// InferPositions infers the transitions of each position
// using a pool of goroutines.
// Each position is independent,
// and its transitions are stored in a scratch map
// owned by a single goroutine.
// The aggregators must be already build,
// as they are only read.
func inferPositions(t *seqtree.Tree, p Param, ref []byte, lg *logger) []posAnswer {
	jobs := make(chan int, p.CPU*2)
	answer := make(chan posAnswer, p.CPU*2)

	var wg sync.WaitGroup
	for i := 0; i < p.CPU; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := &worker{
				t:     t,
				p:     p,
				ref:   ref,
				lg:    lg,
				depth: make([]int, t.Len()),
			}
			for pos := range jobs {
				answer <- w.infer(pos)
			}
		}()
	}

	go func() {
		for pos := 0; pos < t.Length(); pos++ {
			jobs <- pos
		}
		close(jobs)
		wg.Wait()
		close(answer)
	}()

	res := make([]posAnswer, t.Length())
	for a := range answer {
		res[a.pos] = a
	}
	return res
}

type worker struct {
	t   *seqtree.Tree
	p   Param
	ref []byte
	lg  *logger

	depth []int
}

// scratch is the set of transitions of a single position.
type scratch map[int]*transition.Record

func (s scratch) find(n int) *transition.Record {
	return s[n]
}

func (s scratch) remove(n int) {
	delete(s, n)
}

func (w *worker) infer(pos int) posAnswer {
	recs := make(scratch)
	w.propose(pos, recs)
	a := posAnswer{
		pos:      pos,
		proposed: len(recs),
	}

	left := rootResidue(w.t, w.ref, pos)
	a.removed, a.iter = stitch(w.t, pos, left, w.p, recs, w.depth)

	w.t.PreOrder(func(n int) {
		r := recs[n]
		if r == nil {
			return
		}
		a.found = append(a.found, found{n: n, left: r.Left, right: r.Right})
	})
	return a
}

// Propose sets the transitions of a position
// on each internal node.
func (w *worker) propose(pos int, recs scratch) {
	t := w.t
	tol := w.p.Tolerance(pos)
	trace := isTraced(w.p, pos)

	t.PreOrder(func(n int) {
		if t.IsLeaf(n) {
			return
		}
		agg := t.Aggregator(n)
		if agg == nil {
			return
		}
		if trace {
			w.lg.printf("# tree %q: node %d: %s\n", t.Name(), t.ID(n), agg.Report(pos, tol))
		}

		aa := agg.Majority(pos, tol)
		common := aa != consensus.None && isCommon(t, n, pos, aa, tol)

		for _, c := range t.Children(n) {
			if t.IsLeaf(c) {
				continue
			}
			cAgg := t.Aggregator(c)
			if cAgg == nil {
				continue
			}

			if !common {
				if caa, ok := isCommonForChild(t, c, pos, tol); ok {
					recs[c] = &transition.Record{Pos: pos, Left: consensus.None, Right: caa}
					if trace {
						w.lg.printf("# tree %q: node %d: proposed transition to %c\n", t.Name(), t.ID(c), caa)
					}
				}
				continue
			}

			// records of a child are only set
			// while its parent is visited,
			// so in a common node this replacement
			// never finds a record.
			if cAgg.IsEmpty(pos) {
				continue
			}
			if caa, ok := isCommonForChild(t, c, pos, tol); ok {
				if r := recs.find(c); r != nil {
					r.Right = caa
				}
			}
		}
	})
}

// IsCommon returns true if all descendants of a node
// agree with the indicated residue.
// Descendants without residues at the position are ignored.
func isCommon(t *seqtree.Tree, n, pos int, aa byte, tol float64) bool {
	for _, c := range t.Children(n) {
		caa, ok := childResidue(t, c, pos, tol)
		if !ok {
			continue
		}
		if caa != aa {
			return false
		}
	}
	return true
}

// IsCommonForChild returns the majority residue of a node
// if more than one of its descendants agree with it.
func isCommonForChild(t *seqtree.Tree, n, pos int, tol float64) (byte, bool) {
	aa := t.Aggregator(n).Majority(pos, tol)
	if aa == consensus.None {
		return consensus.None, false
	}

	var agree int
	for _, c := range t.Children(n) {
		caa, ok := childResidue(t, c, pos, tol)
		if !ok {
			continue
		}
		if caa == aa {
			agree++
		}
	}
	if agree > 1 {
		return aa, true
	}
	return consensus.None, false
}

// ChildResidue returns the residue of a node at a position:
// the residue of the sequence for a terminal,
// or the majority for an internal node.
// It returns false if the node has no votes at the position.
func childResidue(t *seqtree.Tree, n, pos int, tol float64) (byte, bool) {
	if t.IsLeaf(n) {
		aa := t.Residue(n, pos)
		return aa, aa != consensus.None
	}
	agg := t.Aggregator(n)
	if agg == nil || agg.IsEmpty(pos) {
		return consensus.None, false
	}
	return agg.Majority(pos, tol), true
}

// RootResidue returns the residue of the reference sequence
// at a position.
// If the reference has no residue at the position
// the most common residue of the root is used.
func rootResidue(t *seqtree.Tree, ref []byte, pos int) byte {
	if pos < len(ref) && consensus.IsResidue(ref[pos]) {
		return ref[pos]
	}
	agg := t.Aggregator(t.Root())
	if agg == nil {
		return consensus.None
	}
	aa, _ := agg.Share(pos)
	return aa
}
