// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package consensus_test

import (
	"errors"
	"testing"

	"github.com/js-arias/aatrans/consensus"
)

func TestAggregatorMajority(t *testing.T) {
	// subtree {Y, Z}
	sub := consensus.NewAggregator(1, consensus.DefaultCapacity)
	sub.UpdateLeaf([]byte("B"))
	sub.UpdateLeaf([]byte("B"))

	// P: {X, {Y, Z}}
	p := consensus.NewAggregator(1, consensus.DefaultCapacity)
	if err := p.UpdateLeaf([]byte("A")); err != nil {
		t.Fatalf("update leaf: %v", err)
	}
	if err := p.UpdateFromChild(sub); err != nil {
		t.Fatalf("update from child: %v", err)
	}

	if aa := p.Majority(0, 0.6); aa != 'B' {
		t.Errorf("majority at 0.6: got %q, want %q", aa, 'B')
	}
	if aa := p.Majority(0, 0.7); aa != consensus.None {
		t.Errorf("majority at 0.7: got %q, want none", aa)
	}
	if aa, share := sub.Share(0); aa != 'B' || share != 1 {
		t.Errorf("share: got %q %.3f, want %q %.3f", aa, share, 'B', 1.0)
	}
	t.Logf("%s", p.Report(0, 0.6))
}

func TestAggregatorAbsent(t *testing.T) {
	a := consensus.NewAggregator(5, consensus.DefaultCapacity)
	a.UpdateLeaf([]byte("MK"))
	a.UpdateLeaf([]byte("MKXA-"))
	a.UpdateLeaf([]byte("MKTAYW"))

	tests := []struct {
		pos   int
		total int
		empty bool
	}{
		{0, 3, false},
		{1, 3, false},
		{2, 1, false},
		{3, 2, false},
		{4, 1, false},
		{5, 0, true},
	}
	for _, test := range tests {
		if tot := a.Total(test.pos); tot != test.total {
			t.Errorf("pos %d: total: got %d, want %d", test.pos, tot, test.total)
		}
		if e := a.IsEmpty(test.pos); e != test.empty {
			t.Errorf("pos %d: empty: got %v, want %v", test.pos, e, test.empty)
		}
	}
}

func TestAggregatorCapacity(t *testing.T) {
	a := consensus.NewAggregator(3, 2)
	a.UpdateLeaf([]byte("AAA"))
	a.UpdateLeaf([]byte("ACA"))
	err := a.UpdateLeaf([]byte("ADA"))

	var ce *consensus.CapacityError
	if !errors.As(err, &ce) {
		t.Fatalf("got error %v, want capacity error", err)
	}
	if ce.Pos != 1 {
		t.Errorf("capacity error: position: got %d, want %d", ce.Pos, 1)
	}
}
