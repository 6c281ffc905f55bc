// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package add

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/aatrans/seqs"
	"github.com/js-arias/timetree"
)

var treeBlob = "# hominids\n" +
	"tree\tnode\tparent\tage\ttaxon\n" +
	"hominids\t0\t-1\t16000000\t\n" +
	"hominids\t1\t0\t8000000\t\n" +
	"hominids\t2\t1\t0\tHomo sapiens\n" +
	"hominids\t3\t1\t0\tPan troglodytes\n" +
	"hominids\t4\t0\t12000000\t\n" +
	"hominids\t5\t4\t0\tPongo abelii\n" +
	"hominids\t6\t4\t6000000\t\n" +
	"hominids\t7\t6\t0\tGorilla gorilla\n" +
	"hominids\t8\t6\t0\tGorilla beringei\n"

func readBlob(t testing.TB) *timetree.Collection {
	t.Helper()

	c, err := timetree.ReadTSV(strings.NewReader(treeBlob))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}
	return c
}

func TestAddTrees(t *testing.T) {
	var w bytes.Buffer
	tc := timetree.NewCollection()
	if err := addTrees(&w, tc, readBlob(t), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w.Len() != 0 {
		t.Errorf("unexpected warnings: %q", w.String())
	}
	if ls := tc.Names(); !reflect.DeepEqual(ls, []string{"hominids"}) {
		t.Errorf("trees: got %v, want %v", ls, []string{"hominids"})
	}
}

func TestAddTreesMissing(t *testing.T) {
	sc := seqs.New()
	sc.Add("Homo sapiens", "MKAILV")
	sc.Add("Pan troglodytes", "MKAILA")
	sc.Add("Pongo abelii", "MKTIL")

	var w bytes.Buffer
	tc := timetree.NewCollection()
	if err := addTrees(&w, tc, readBlob(t), sc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "WARNING: tree \"hominids\": terminal \"Gorilla gorilla\": without sequence\n" +
		"WARNING: tree \"hominids\": terminal \"Gorilla beringei\": without sequence\n"
	if w.String() != want {
		t.Errorf("warnings: got %q, want %q", w.String(), want)
	}
	if tc.Tree("hominids") == nil {
		t.Errorf("tree %q not added", "hominids")
	}
}

func TestAddTreesFewSequences(t *testing.T) {
	sc := seqs.New()
	sc.Add("Homo sapiens", "MKAILV")

	var w bytes.Buffer
	tc := timetree.NewCollection()
	err := addTrees(&w, tc, readBlob(t), sc)
	if err == nil {
		t.Fatalf("expecting error")
	}
	want := `tree "hominids": only 1 terminals with sequences`
	if err.Error() != want {
		t.Errorf("error: got %q, want %q", err, want)
	}
	if ls := tc.Names(); len(ls) != 0 {
		t.Errorf("trees: got %v, want none", ls)
	}
}
