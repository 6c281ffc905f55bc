// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package aatrans infers amino acid transitions
// on the branches of a phylogenetic tree
// from the aligned sequences of its terminals.
//
// The inference is made independently for each position.
// First a consensus of each subtree is build
// (a down-pass from the terminals to the root),
// then the transitions are proposed on each branch
// in which the consensus of a node differs from its ancestor.
// The ancestral residue of each transition is taken
// from the closest ancestral transition
// (or a reference sequence at the root),
// and transitions that are reverted by a large enough clade
// close to the ancestral transition
// are removed as noise.
package aatrans

import (
	"fmt"
	"io"
	"runtime"
	"slices"
	"sync"

	"github.com/js-arias/aatrans/consensus"
	"github.com/js-arias/aatrans/seqtree"
	"github.com/js-arias/aatrans/transition"
)

// Default values of the parameters.
const (
	// DefaultTolerance is the minimum share of votes
	// of a consensus residue.
	DefaultTolerance = 0.6

	// DefaultFlipRatio is the minimum fraction of the terminals
	// of a node that must revert a transition
	// to consider it as noise.
	DefaultFlipRatio = 0.005

	// DefaultFlipDistance is the number of tree levels
	// under which a reversion is considered a flip.
	DefaultFlipDistance = 3
)

// Param is a collection of parameters
// for the inference of transitions.
type Param struct {
	// Tolerance is the minimum share of votes
	// for a consensus at each position.
	// If nil, DefaultTolerance is used.
	Tolerance consensus.Tolerance

	// FlipRatio is the minimum ratio of terminals
	// of a reversion
	// to remove an ancestral transition.
	FlipRatio float64

	// FlipDistance is the minimum distance
	// (in tree levels)
	// of a reversion to be ignored.
	FlipDistance int

	// Capacity is the number of distinct residues
	// stored at each position.
	Capacity int

	// Reference is the name of the terminal
	// used as the root sequence.
	// If empty,
	// the first terminal with a sequence is used.
	Reference string

	// CPU is the number of concurrent process
	// used to infer the positions.
	CPU int

	// Log is the output for warnings and notices.
	// If nil, no messages will be written.
	Log io.Writer

	// Trace is a set of 0-based positions
	// in which the consensus of each node
	// will be written in the Log.
	Trace []int
}

func (p Param) withDefaults() Param {
	if p.Tolerance == nil {
		p.Tolerance = consensus.Fixed(DefaultTolerance)
	}
	if p.FlipRatio <= 0 {
		p.FlipRatio = DefaultFlipRatio
	}
	if p.FlipDistance <= 0 {
		p.FlipDistance = DefaultFlipDistance
	}
	if p.Capacity <= 0 {
		p.Capacity = consensus.DefaultCapacity
	}
	if p.CPU <= 0 {
		p.CPU = runtime.NumCPU()
	}
	return p
}

// Stats is a summary of an inference.
type Stats struct {
	// Number of positions analyzed
	Positions int

	// Number of transitions proposed
	// before the removal of flips.
	Proposed int

	// Number of transitions removed as flips.
	Flips int

	// Number of transitions without change removed
	// during the final clean up.
	Cleaned int

	// Number of effective transitions in the tree.
	Transitions int

	// Maximum number of iterations
	// required to remove all flips
	// in a single position.
	Iterations int
}

// Infer infers the amino acid transitions
// for all positions,
// and store them in the transition lists
// of the tree nodes.
// Previous transitions are discarded.
//
// A *consensus.CapacityError is returned
// if the number of distinct residues at a position
// is larger than the capacity of the counters.
func Infer(t *seqtree.Tree, p Param) (Stats, error) {
	p = p.withDefaults()
	lg := &logger{w: p.Log}

	for _, tax := range t.Missing() {
		lg.printf("WARNING: tree %q: terminal %q: without sequence\n", t.Name(), tax)
	}

	if !hasConsensus(t, p.Capacity) {
		if err := BuildConsensus(t, p.Capacity, lg.w); err != nil {
			return Stats{}, err
		}
	}

	t.PreOrder(func(n int) {
		t.Transitions(n).Reset()
	})

	// updates the leaf count
	// before any concurrent read
	t.NumLeaves(t.Root())

	ref := reference(t, p.Reference, lg)
	res := inferPositions(t, p, ref, lg)

	st := Stats{
		Positions: t.Length(),
	}
	for pos, a := range res {
		st.Proposed += a.proposed
		st.Flips += a.removed
		if a.iter > st.Iterations {
			st.Iterations = a.iter
		}
		for _, f := range a.found {
			t.Transitions(f.n).AddLR(pos, f.left, f.right)
		}
	}

	st.Cleaned = Clean(t, lg.w)
	t.PreOrder(func(n int) {
		for _, r := range t.Transitions(n).Records() {
			if r.IsEffective() {
				st.Transitions++
			}
		}
	})
	return st, nil
}

// BuildConsensus builds the consensus aggregators
// of the internal nodes of a tree
// in a post-order traversal.
// The aggregators are set in the tree
// only if all of them were build without errors.
func BuildConsensus(t *seqtree.Tree, capacity int, w io.Writer) error {
	if capacity <= 0 {
		capacity = consensus.DefaultCapacity
	}
	lg := &logger{w: w}

	t.ClearConsensus()
	aggs := make([]*consensus.Aggregator, t.Len())
	var err error
	t.PostOrder(func(n int) {
		if err != nil || t.IsLeaf(n) {
			return
		}

		agg := consensus.NewAggregator(t.Length(), capacity)
		aggs[n] = agg
		children := t.Children(n)
		if len(children) == 0 {
			lg.printf("WARNING: tree %q: node %d: without visible descendants\n", t.Name(), t.ID(n))
			return
		}
		for _, c := range children {
			if t.IsLeaf(c) {
				if e := agg.UpdateLeaf(t.Seq(c)); e != nil {
					err = fmt.Errorf("tree %q: terminal %q: %w", t.Name(), t.Taxon(c), e)
					return
				}
				continue
			}
			if e := agg.UpdateFromChild(aggs[c]); e != nil {
				err = fmt.Errorf("tree %q: node %d: %w", t.Name(), t.ID(n), e)
				return
			}
		}
	})
	if err != nil {
		return err
	}

	for n, agg := range aggs {
		if agg == nil {
			continue
		}
		t.SetAggregator(n, agg)
	}
	t.ConsensusDone()
	return nil
}

// hasConsensus returns true if the tree has updated aggregators
// build with the indicated capacity.
func hasConsensus(t *seqtree.Tree, capacity int) bool {
	if !t.HasConsensus() {
		return false
	}
	agg := t.Aggregator(t.Root())
	if agg == nil {
		return false
	}
	return agg.Capacity() == capacity
}

// Clean removes transitions without change
// (i.e., with the same ancestral and derived residues)
// in a pre-order traversal.
// It returns the number of removed records.
func Clean(t *seqtree.Tree, w io.Writer) int {
	lg := &logger{w: w}

	var removed int
	t.PreOrder(func(n int) {
		removed += t.Transitions(n).Clean()
	})

	if l := t.Transitions(t.Root()); l.Len() > 0 {
		lg.printf("NOTE: tree %q: transitions at the root: %s\n", t.Name(), l.Label(0))
	}
	return removed
}

// Reference returns the sequence used as the root sequence.
func reference(t *seqtree.Tree, name string, lg *logger) []byte {
	if name != "" {
		n, ok := t.Leaf(name)
		switch {
		case !ok:
			lg.printf("WARNING: tree %q: reference %q: terminal not found\n", t.Name(), name)
		case !t.IsVisible(n):
			lg.printf("WARNING: tree %q: reference %q: hidden terminal\n", t.Name(), name)
		case t.Seq(n) == nil:
			lg.printf("WARNING: tree %q: reference %q: terminal without sequence\n", t.Name(), name)
		default:
			return t.Seq(n)
		}
	}

	var ref []byte
	t.Leaves(func(n int) {
		if ref != nil {
			return
		}
		ref = t.Seq(n)
	})
	return ref
}

type logger struct {
	sync.Mutex
	w io.Writer
}

func (l *logger) printf(format string, a ...any) {
	if l.w == nil {
		return
	}
	l.Lock()
	defer l.Unlock()
	fmt.Fprintf(l.w, format, a...)
}

// HasTransitions returns true if the branch of a node
// has at least one effective transition
// in the indicated positions
// (or any position if no position is given).
func HasTransitions(t *seqtree.Tree, n int, positions ...int) bool {
	return t.Transitions(n).HasAny(positions...)
}

// Labels returns the labels of the branches
// with effective transitions,
// using at most the indicated number of transitions per branch,
// and giving priority to the important positions.
// The map key is the node index.
func Labels(t *seqtree.Tree, max int, important ...int) map[int]string {
	labels := make(map[int]string)
	t.PreOrder(func(n int) {
		if !HasTransitions(t, n) {
			return
		}
		labels[n] = t.Transitions(n).Label(max, important...)
	})
	return labels
}

// Records returns all the effective transitions of a tree
// at a given position,
// indexed by node.
func Records(t *seqtree.Tree, pos int) map[int]transition.Record {
	recs := make(map[int]transition.Record)
	t.PreOrder(func(n int) {
		r := t.Transitions(n).Find(pos)
		if r == nil || !r.IsEffective() {
			return
		}
		recs[n] = *r
	})
	return recs
}

func isTraced(p Param, pos int) bool {
	return slices.Contains(p.Trace, pos)
}
