// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package transition_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/aatrans/consensus"
	"github.com/js-arias/aatrans/transition"
)

func TestList(t *testing.T) {
	var l transition.List
	l.Add(144, 'K')
	l.AddLR(159, 'T', 'A')
	l.Add(188, 'N')
	l.AddLR(2, 'M', 'M')

	if l.Len() != 4 {
		t.Fatalf("len: got %d, want %d", l.Len(), 4)
	}

	r := l.Find(144)
	if r == nil {
		t.Fatalf("find 144: record not found")
	}
	if r.Left != consensus.None {
		t.Errorf("find 144: left: got %q, want none", r.Left)
	}
	if l.Find(10) != nil {
		t.Errorf("find 10: unexpected record")
	}

	if !l.HasAny() {
		t.Errorf("has any: expecting effective transitions")
	}
	if l.HasAny(144, 188) {
		t.Errorf("has any [144, 188]: unexpected effective transition")
	}

	seq := bytes.Repeat([]byte("A"), 150)
	seq[144] = 'N'
	seq[2] = 'M'
	l.SetLeft(seq)
	if r := l.Find(144); r.Left != 'N' {
		t.Errorf("set left: got %q, want %q", r.Left, 'N')
	}
	if r := l.Find(188); r.Left != consensus.None {
		t.Errorf("set left beyond sequence: got %q, want none", r.Left)
	}
	if !l.HasAny(144) {
		t.Errorf("has any [144]: expecting effective transition")
	}

	if !l.Replace(159, 'S') {
		t.Errorf("replace 159: record not found")
	}
	if l.Replace(10, 'S') {
		t.Errorf("replace 10: unexpected record")
	}
	if l.RemoveRight(188, 'K') {
		t.Errorf("remove 188 K: unexpected removal")
	}
	if !l.RemoveRight(188, 'N') {
		t.Errorf("remove 188 N: record not removed")
	}
	if n := l.Clean(); n != 1 {
		t.Errorf("clean: got %d removed, want %d", n, 1)
	}
	if n := l.Clean(); n != 0 {
		t.Errorf("second clean: got %d removed, want %d", n, 0)
	}

	want := []transition.Record{
		{Pos: 144, Left: 'N', Right: 'K'},
		{Pos: 159, Left: 'T', Right: 'S'},
	}
	if recs := l.Records(); !reflect.DeepEqual(recs, want) {
		t.Errorf("records: got %v, want %v", recs, want)
	}

	if !l.Remove(144) {
		t.Errorf("remove 144: record not removed")
	}
	if l.Remove(144) {
		t.Errorf("remove 144 again: unexpected removal")
	}
}

func TestLabel(t *testing.T) {
	var l transition.List
	l.AddLR(200, 'A', 'T')
	l.AddLR(144, 'N', 'K')
	l.AddLR(30, 'S', 'S')
	l.AddLR(61, 'D', 'N')
	l.Add(70, 'Q')

	tests := []struct {
		n         int
		important []int
		want      string
	}{
		{0, nil, "D62N N145K A201T"},
		{2, nil, "D62N N145K"},
		{2, []int{200}, "A201T D62N"},
		{0, []int{144, 30}, "N145K D62N A201T"},
	}
	for _, test := range tests {
		if got := l.Label(test.n, test.important...); got != test.want {
			t.Errorf("label %d %v: got %q, want %q", test.n, test.important, got, test.want)
		}
	}
}

func TestTSV(t *testing.T) {
	c := transition.NewCollection()
	c.Add("h3", 12, "", transition.Record{Pos: 159, Left: 'T', Right: 'A'})
	c.Add("h3", 12, "", transition.Record{Pos: 144, Left: 'N', Right: 'K'})
	c.Add("h3", 31, "A/Perth/16/2009", transition.Record{Pos: 188, Left: 'S', Right: 'N'})
	c.Add("h1", 3, "", transition.Record{Pos: 0, Left: consensus.None, Right: 'M'})

	var w bytes.Buffer
	if err := c.TSV(&w); err != nil {
		t.Fatalf("unable to write TSV data: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	nc, err := transition.ReadTSV(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read TSV data: %v", err)
	}

	if g, w := nc.Trees(), []string{"h1", "h3"}; !reflect.DeepEqual(g, w) {
		t.Errorf("trees: got %v, want %v", g, w)
	}
	if g, w := nc.Nodes("h3"), []int{12, 31}; !reflect.DeepEqual(g, w) {
		t.Errorf("nodes: got %v, want %v", g, w)
	}
	if tx := nc.Taxon("h3", 31); tx != "A/Perth/16/2009" {
		t.Errorf("taxon: got %q, want %q", tx, "A/Perth/16/2009")
	}
	want := []transition.Record{
		{Pos: 144, Left: 'N', Right: 'K'},
		{Pos: 159, Left: 'T', Right: 'A'},
	}
	if g := nc.List("h3", 12).Records(); !reflect.DeepEqual(g, want) {
		t.Errorf("records: got %v, want %v", g, want)
	}
	if r := nc.List("h1", 3).Find(0); r == nil || r.Left != consensus.None {
		t.Errorf("unresolved record: got %v", r)
	}
}
