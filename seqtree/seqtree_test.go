// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package seqtree_test

import (
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/js-arias/aatrans/consensus"
	"github.com/js-arias/aatrans/seqs"
	"github.com/js-arias/aatrans/seqtree"
	"github.com/js-arias/aatrans/transition"
	"github.com/js-arias/timetree"
)

var treeBlob = `# hominids
tree	node	parent	age	taxon
hominids	0	-1	16000000	
hominids	1	0	8000000	
hominids	2	1	0	Homo sapiens
hominids	3	1	0	Pan troglodytes
hominids	4	0	12000000	
hominids	5	4	0	Pongo abelii
hominids	6	4	6000000	
hominids	7	6	0	Gorilla gorilla
hominids	8	6	0	Gorilla beringei
`

func newTree(t testing.TB) *seqtree.Tree {
	t.Helper()

	c, err := timetree.ReadTSV(strings.NewReader(treeBlob))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	tt := c.Tree("hominids")
	if tt == nil {
		t.Fatalf("tree %q not found", "hominids")
	}

	sq := seqs.New()
	sq.Add("Homo sapiens", "MKAILV")
	sq.Add("Pan troglodytes", "MKAILA")
	sq.Add("Pongo abelii", "MKTIL")
	sq.Add("Gorilla gorilla", "MKTXLV")
	return seqtree.New(tt, sq)
}

func TestNew(t *testing.T) {
	tr := newTree(t)

	if tr.Name() != "hominids" {
		t.Errorf("name: got %q, want %q", tr.Name(), "hominids")
	}
	if tr.Len() != 9 {
		t.Errorf("len: got %d, want %d", tr.Len(), 9)
	}
	if tr.Length() != 6 {
		t.Errorf("length: got %d, want %d", tr.Length(), 6)
	}
	if m := tr.Missing(); !reflect.DeepEqual(m, []string{"Gorilla beringei"}) {
		t.Errorf("missing: got %v, want %v", m, []string{"Gorilla beringei"})
	}
	if tr.Parent(tr.Root()) != -1 {
		t.Errorf("root parent: got %d, want %d", tr.Parent(tr.Root()), -1)
	}

	for i := 0; i < tr.Len(); i++ {
		n, ok := tr.Node(tr.ID(i))
		if !ok || n != i {
			t.Errorf("node %d: source ID %d maps to %d", i, tr.ID(i), n)
		}
	}

	g, ok := tr.Leaf("Gorilla gorilla")
	if !ok {
		t.Fatalf("leaf %q not found", "Gorilla gorilla")
	}
	if aa := tr.Residue(g, 2); aa != 'T' {
		t.Errorf("residue 2: got %q, want %q", aa, 'T')
	}
	if aa := tr.Residue(g, 3); aa != consensus.None {
		t.Errorf("ambiguous residue: got %q, want none", aa)
	}
	if aa := tr.Residue(g, 10); aa != consensus.None {
		t.Errorf("absent residue: got %q, want none", aa)
	}

	if n := tr.NumLeaves(tr.Root()); n != 5 {
		t.Errorf("root leaves: got %d, want %d", n, 5)
	}
	if n := tr.NumLeaves(tr.Parent(g)); n != 2 {
		t.Errorf("gorilla leaves: got %d, want %d", n, 2)
	}
}

func TestTraversal(t *testing.T) {
	tr := newTree(t)

	var pre, post, leaves []int
	tr.PreOrder(func(n int) { pre = append(pre, n) })
	tr.PostOrder(func(n int) { post = append(post, n) })
	tr.Leaves(func(n int) { leaves = append(leaves, n) })

	if len(pre) != tr.Len() || len(post) != tr.Len() {
		t.Fatalf("traversal: got %d pre-order and %d post-order nodes, want %d", len(pre), len(post), tr.Len())
	}
	if pre[0] != tr.Root() {
		t.Errorf("pre-order: first node %d, want root", pre[0])
	}
	if post[len(post)-1] != tr.Root() {
		t.Errorf("post-order: last node %d, want root", post[len(post)-1])
	}

	for i := 1; i < tr.Len(); i++ {
		p := tr.Parent(i)
		if slices.Index(pre, p) > slices.Index(pre, i) {
			t.Errorf("pre-order: parent %d visited after node %d", p, i)
		}
		if slices.Index(post, p) < slices.Index(post, i) {
			t.Errorf("post-order: parent %d visited before node %d", p, i)
		}
	}

	// leaves are visited in the same order
	// as in a pre-order traversal
	var want []int
	for _, n := range pre {
		if tr.IsLeaf(n) {
			want = append(want, n)
		}
	}
	if !reflect.DeepEqual(leaves, want) {
		t.Errorf("leaves: got %v, want %v", leaves, want)
	}

	// descendants are visited in stored order
	for _, n := range pre {
		ch := tr.Children(n)
		for i := 1; i < len(ch); i++ {
			if slices.Index(pre, ch[i-1]) > slices.Index(pre, ch[i]) {
				t.Errorf("node %d: child %d visited after child %d", n, ch[i-1], ch[i])
			}
		}
	}

	// pre and post calls must nest
	var stack []int
	tr.Walk(func(n int) {
		if len(stack) > 0 && stack[len(stack)-1] != tr.Parent(n) {
			t.Errorf("walk: node %d entered with %d on top of the stack", n, stack[len(stack)-1])
		}
		stack = append(stack, n)
	}, func(n int) {
		if stack[len(stack)-1] != n {
			t.Errorf("walk: leaving node %d, with %d on top of the stack", n, stack[len(stack)-1])
		}
		stack = stack[:len(stack)-1]
	})
	if len(stack) != 0 {
		t.Errorf("walk: stack not empty: %v", stack)
	}
}

func TestHide(t *testing.T) {
	tr := newTree(t)
	v := tr.Version()

	g, _ := tr.Leaf("Gorilla gorilla")
	gb, _ := tr.Leaf("Gorilla beringei")
	tr.Hide(g)
	tr.Hide(gb)
	if tr.Version() != v+2 {
		t.Errorf("version: got %d, want %d", tr.Version(), v+2)
	}

	// an internal node without visible descendants
	// contributes zero leaves
	gp := tr.Parent(g)
	if n := tr.NumLeaves(gp); n != 0 {
		t.Errorf("hidden clade: got %d leaves, want %d", n, 0)
	}
	if n := tr.NumLeaves(tr.Root()); n != 3 {
		t.Errorf("root: got %d leaves, want %d", n, 3)
	}

	var leaves []string
	tr.Leaves(func(n int) { leaves = append(leaves, tr.Taxon(n)) })
	if slices.Contains(leaves, "Gorilla gorilla") {
		t.Errorf("leaves: hidden terminal visited: %v", leaves)
	}

	tr.Unhide(g)
	if n := tr.NumLeaves(gp); n != 1 {
		t.Errorf("unhide: got %d leaves, want %d", n, 1)
	}

	// a terminal under a hidden node
	// is not visible
	tr.Hide(gp)
	if tr.IsVisible(g) {
		t.Errorf("hidden ancestor: terminal %d should not be visible", g)
	}
	if tr.IsHidden(g) {
		t.Errorf("hidden ancestor: terminal %d should not be marked as hidden", g)
	}
	h, _ := tr.Leaf("Homo sapiens")
	if !tr.IsVisible(h) {
		t.Errorf("terminal %d should be visible", h)
	}

	tr.Hide(tr.Root())
	if tr.IsHidden(tr.Root()) {
		t.Errorf("root can not be hidden")
	}
}

func TestLadderize(t *testing.T) {
	tr := newTree(t)
	tr.Ladderize()

	tr.PreOrder(func(n int) {
		ch := tr.Children(n)
		for i := 1; i < len(ch); i++ {
			if tr.NumLeaves(ch[i-1]) > tr.NumLeaves(ch[i]) {
				t.Errorf("node %d: child %d has more leaves than %d", n, ch[i-1], ch[i])
			}
		}
	})
}

func TestConsensusVersion(t *testing.T) {
	tr := newTree(t)
	if tr.HasConsensus() {
		t.Errorf("new tree: unexpected consensus")
	}

	tr.SetAggregator(tr.Root(), consensus.NewAggregator(tr.Length(), consensus.DefaultCapacity))
	tr.ConsensusDone()
	if !tr.HasConsensus() || tr.Aggregator(tr.Root()) == nil {
		t.Errorf("consensus: expecting updated consensus")
	}

	g, _ := tr.Leaf("Gorilla gorilla")
	tr.Hide(g)
	if tr.HasConsensus() {
		t.Errorf("structural change: consensus should be stale")
	}
	if tr.Aggregator(tr.Root()) != nil {
		t.Errorf("structural change: stale aggregator returned")
	}
}

func TestExportImport(t *testing.T) {
	tr := newTree(t)
	h, _ := tr.Leaf("homo  SAPIENS")
	tr.Transitions(h).AddLR(5, 'A', 'V')
	g, _ := tr.Node(6)
	tr.Transitions(g).AddLR(2, 'A', 'T')

	c := transition.NewCollection()
	tr.Export(c)
	if nodes := c.Nodes("hominids"); !reflect.DeepEqual(nodes, []int{2, 6}) {
		t.Errorf("exported nodes: got %v, want %v", nodes, []int{2, 6})
	}
	if tax := c.Taxon("hominids", 2); tax != "Homo sapiens" {
		t.Errorf("exported taxon: got %q, want %q", tax, "Homo sapiens")
	}

	nt := newTree(t)
	nt.Import(c)
	want := []transition.Record{{Pos: 5, Left: 'A', Right: 'V'}}
	if got := nt.Transitions(h).Records(); !reflect.DeepEqual(got, want) {
		t.Errorf("imported records: got %v, want %v", got, want)
	}
	if nt.Transitions(nt.Root()).Len() != 0 {
		t.Errorf("root: got %d records, want 0", nt.Transitions(nt.Root()).Len())
	}
}
