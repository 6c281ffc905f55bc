// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package seqtree implements a phylogenetic tree
// with aligned amino acid sequences at the terminals.
//
// Nodes are stored in an arena
// and referenced by their index in the arena
// (the root is always the index 0).
// Every node has a list of transitions
// for the branch that connects it with its parent.
package seqtree

import (
	"strings"

	"github.com/js-arias/aatrans/consensus"
	"github.com/js-arias/aatrans/seqs"
	"github.com/js-arias/aatrans/transition"
	"github.com/js-arias/timetree"
)

// A Tree is a phylogenetic tree with sequences.
type Tree struct {
	name  string
	nodes []node
	ids   map[int]int

	length  int
	missing []string

	// version is incremented on every structural change
	version uint64

	leafVersion uint64
	leaves      []int

	consVersion uint64
	hasCons     bool
}

type node struct {
	id       int
	taxon    string
	parent   int
	children []int
	hidden   bool

	seq   []byte
	agg   *consensus.Aggregator
	trans transition.List
}

// New creates a new tree by copying the indicated source tree,
// and assigning the sequences to the terminals.
func New(t *timetree.Tree, c *seqs.Collection) *Tree {
	nt := &Tree{
		name:    t.Name(),
		nodes:   make([]node, 0, len(t.Nodes())),
		ids:     make(map[int]int, len(t.Nodes())),
		length:  c.Longest(),
		version: 1,
	}
	nt.copySource(t, c, t.Root(), -1)
	return nt
}

func (t *Tree) copySource(src *timetree.Tree, c *seqs.Collection, id, parent int) {
	n := len(t.nodes)
	t.nodes = append(t.nodes, node{
		id:     id,
		parent: parent,
	})
	t.ids[id] = n
	if parent >= 0 {
		t.nodes[parent].children = append(t.nodes[parent].children, n)
	}

	if src.IsTerm(id) {
		tax := src.Taxon(id)
		t.nodes[n].taxon = tax
		t.nodes[n].seq = c.Seq(tax)
		if t.nodes[n].seq == nil {
			t.missing = append(t.missing, tax)
		}
		return
	}

	for _, cID := range src.Children(id) {
		t.copySource(src, c, cID, n)
	}
}

// Name returns the name of the tree.
func (t *Tree) Name() string {
	return t.name
}

// Len returns the number of nodes in the tree
// (including hidden nodes).
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Length returns the length of the longest sequence.
func (t *Tree) Length() int {
	return t.length
}

// Missing returns the terminals without a sequence.
func (t *Tree) Missing() []string {
	return t.missing
}

// Root returns the index of the root node.
func (t *Tree) Root() int {
	return 0
}

// ID returns the ID of a node
// in the source tree.
func (t *Tree) ID(n int) int {
	return t.nodes[n].id
}

// Node returns the index of a node
// from its ID in the source tree.
func (t *Tree) Node(id int) (int, bool) {
	n, ok := t.ids[id]
	return n, ok
}

// Taxon returns the taxon name of a node.
// Internal nodes have no name.
func (t *Tree) Taxon(n int) string {
	return t.nodes[n].taxon
}

// Leaf returns the index of the terminal with the indicated name.
// Names are compared ignoring case and extra spaces.
func (t *Tree) Leaf(taxon string) (int, bool) {
	taxon = strings.Join(strings.Fields(taxon), " ")
	for i, n := range t.nodes {
		if n.taxon == "" {
			continue
		}
		if strings.EqualFold(n.taxon, taxon) {
			return i, true
		}
	}
	return -1, false
}

// IsLeaf returns true if a node has no descendants.
func (t *Tree) IsLeaf(n int) bool {
	return len(t.nodes[n].children) == 0
}

// IsHidden returns true if the node is hidden.
func (t *Tree) IsHidden(n int) bool {
	return t.nodes[n].hidden
}

// IsVisible returns true if neither the node
// nor any of its ancestors is hidden.
func (t *Tree) IsVisible(n int) bool {
	for ; n >= 0; n = t.nodes[n].parent {
		if t.nodes[n].hidden {
			return false
		}
	}
	return true
}

// Parent returns the parent of a node.
// The root returns -1.
func (t *Tree) Parent(n int) int {
	return t.nodes[n].parent
}

// Children returns the visible descendants of a node.
func (t *Tree) Children(n int) []int {
	nd := &t.nodes[n]
	var vis []int
	for _, c := range nd.children {
		if t.nodes[c].hidden {
			continue
		}
		vis = append(vis, c)
	}
	return vis
}

// Seq returns the sequence of a terminal.
func (t *Tree) Seq(n int) []byte {
	return t.nodes[n].seq
}

// Residue returns the residue of a terminal at a position.
// If the position is absent,
// or the residue is ambiguous,
// it returns consensus.None.
func (t *Tree) Residue(n, pos int) byte {
	seq := t.nodes[n].seq
	if pos < 0 || pos >= len(seq) {
		return consensus.None
	}
	aa := seq[pos]
	if !consensus.IsResidue(aa) {
		return consensus.None
	}
	return aa
}

// Transitions returns the transitions list of the branch
// that ends in the indicated node.
func (t *Tree) Transitions(n int) *transition.List {
	return &t.nodes[n].trans
}

// Export adds the transitions of the tree
// into a collection.
func (t *Tree) Export(c *transition.Collection) {
	t.PreOrder(func(n int) {
		nd := &t.nodes[n]
		for _, r := range nd.trans.Records() {
			c.Add(t.name, nd.id, nd.taxon, r)
		}
	})
}

// Import sets the transitions of the tree
// from the lists of a collection.
// Previous transitions are discarded.
// Nodes are matched by their ID.
func (t *Tree) Import(c *transition.Collection) {
	for i := range t.nodes {
		nd := &t.nodes[i]
		nd.trans.Reset()
		l := c.List(t.name, nd.id)
		if l == nil {
			continue
		}
		for _, r := range l.Records() {
			nd.trans.AddLR(r.Pos, r.Left, r.Right)
		}
	}
}
