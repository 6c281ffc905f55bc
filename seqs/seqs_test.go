// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package seqs_test

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/js-arias/aatrans/seqs"
)

func TestCollection(t *testing.T) {
	c := newCollection()

	testCollection(t, "collection", c)
}

func TestTSV(t *testing.T) {
	c := newCollection()

	var w bytes.Buffer
	if err := c.TSV(&w); err != nil {
		t.Fatalf("unable to write TSV data: %v", err)
	}
	t.Logf("output:\n%s\n", w.String())

	nc, err := seqs.ReadTSV(strings.NewReader(w.String()))
	if err != nil {
		t.Fatalf("unable to read TSV data: %v", err)
	}

	testCollection(t, "tsv", nc)
}

func TestFasta(t *testing.T) {
	in := `; aligned HA1 fragments
>Homo_sapiens
MKAILV
LLY
>homo neanderthalensis
mkailv-ly
>Pan troglodytes
MKTILVX
>Pan paniscus
MKAI
`
	c, err := seqs.ReadFasta(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unable to read FASTA data: %v", err)
	}

	testCollection(t, "fasta", c)
}

func TestFastaNames(t *testing.T) {
	in := ">Pan troglodytes\nMKTILV\n>Pan_paniscus  \nMKAI\n"
	c, err := seqs.ReadFasta(strings.NewReader(in))
	if err != nil {
		t.Fatalf("unable to read FASTA data: %v", err)
	}
	want := []string{"Pan paniscus", "Pan troglodytes"}
	if tx := c.Taxa(); !reflect.DeepEqual(tx, want) {
		t.Errorf("taxa: got %v, want %v", tx, want)
	}
	if s := string(c.Seq("Pan troglodytes")); s != "MKTILV" {
		t.Errorf("sequence: got %q, want %q", s, "MKTILV")
	}
}

func TestFastaRepeated(t *testing.T) {
	in := ">Pan paniscus\nMKAI\n>pan Paniscus\nMKAV\n"
	if _, err := seqs.ReadFasta(strings.NewReader(in)); err == nil {
		t.Errorf("repeated taxon: expecting error")
	}
}

func newCollection() *seqs.Collection {
	c := seqs.New()

	c.Add("Homo sapiens", "MKAILVLLY")
	c.Add("homo  neanderthalensis", "mkailv-ly")
	c.Add("Pan troglodytes", "MKTILVX")
	c.Add("Pan paniscus", "MKAI")
	return c
}

func testCollection(t testing.TB, name string, c *seqs.Collection) {
	t.Helper()

	taxa := []string{"Homo neanderthalensis", "Homo sapiens", "Pan paniscus", "Pan troglodytes"}
	if g := c.Taxa(); !reflect.DeepEqual(g, taxa) {
		t.Errorf("%s: taxa: got %v, want %v", name, g, taxa)
	}

	if l := c.Longest(); l != 9 {
		t.Errorf("%s: longest: got %d, want %d", name, l, 9)
	}

	seqs := map[string]string{
		"Homo sapiens":          "MKAILVLLY",
		"Homo neanderthalensis": "MKAILV-LY",
		"Pan troglodytes":       "MKTILVX",
		"Pan paniscus":          "MKAI",
	}
	for tx, w := range seqs {
		if g := string(c.Seq(tx)); g != w {
			t.Errorf("%s: sequence for %q: got %q, want %q", name, tx, g, w)
		}
	}
}
