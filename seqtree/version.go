// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package seqtree

import (
	"slices"

	"github.com/js-arias/aatrans/consensus"
)

// Version returns the structural version of the tree.
// The version is incremented each time
// the structure of the tree is modified.
func (t *Tree) Version() uint64 {
	return t.version
}

// Hide hides a node and all of its descendants.
// The root can not be hidden.
func (t *Tree) Hide(n int) {
	if n == t.Root() || t.nodes[n].hidden {
		return
	}
	t.nodes[n].hidden = true
	t.version++
}

// Unhide makes visible a hidden node.
func (t *Tree) Unhide(n int) {
	if !t.nodes[n].hidden {
		return
	}
	t.nodes[n].hidden = false
	t.version++
}

// Ladderize sorts the descendants of each node
// by the number of terminals,
// so the smaller clades will be visited first.
// Ties keep the previous order.
func (t *Tree) Ladderize() {
	t.updateLeaves()
	changed := false
	for i := range t.nodes {
		nd := &t.nodes[i]
		if len(nd.children) < 2 {
			continue
		}
		prev := slices.Clone(nd.children)
		slices.SortStableFunc(nd.children, func(a, b int) int {
			return t.leaves[a] - t.leaves[b]
		})
		if !slices.Equal(prev, nd.children) {
			changed = true
		}
	}
	if changed {
		t.version++
	}
}

// NumLeaves returns the number of visible terminals
// in the subtree of a node.
func (t *Tree) NumLeaves(n int) int {
	t.updateLeaves()
	return t.leaves[n]
}

func (t *Tree) updateLeaves() {
	if t.leafVersion == t.version && t.leaves != nil {
		return
	}
	if len(t.leaves) != len(t.nodes) {
		t.leaves = make([]int, len(t.nodes))
	}
	for i := range t.leaves {
		t.leaves[i] = 0
	}
	t.PostOrder(func(n int) {
		if t.IsLeaf(n) {
			t.leaves[n] = 1
			return
		}
		var sum int
		for _, c := range t.Children(n) {
			sum += t.leaves[c]
		}
		t.leaves[n] = sum
	})
	t.leafVersion = t.version
}

// Aggregator returns the consensus aggregator of an internal node.
// It returns nil if the consensus is not updated,
// or the node is a terminal.
func (t *Tree) Aggregator(n int) *consensus.Aggregator {
	if !t.HasConsensus() {
		return nil
	}
	return t.nodes[n].agg
}

// SetAggregator sets the consensus aggregator of an internal node.
func (t *Tree) SetAggregator(n int, a *consensus.Aggregator) {
	t.nodes[n].agg = a
}

// ConsensusDone marks the aggregators
// as updated for the current version of the tree.
func (t *Tree) ConsensusDone() {
	t.consVersion = t.version
	t.hasCons = true
}

// HasConsensus returns true if the aggregators
// were build for the current version of the tree.
func (t *Tree) HasConsensus() bool {
	return t.hasCons && t.consVersion == t.version
}

// ClearConsensus removes all aggregators.
func (t *Tree) ClearConsensus() {
	for i := range t.nodes {
		t.nodes[i].agg = nil
	}
	t.hasCons = false
}
