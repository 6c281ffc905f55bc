// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project_test

import (
	"os"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/js-arias/aatrans/project"
)

type setPath struct {
	set  project.Dataset
	path string
}

func TestProject(t *testing.T) {
	p := project.New()

	sets := []setPath{
		{project.Params, "params.tab"},
		{project.Sequences, "h3-ha1.fasta"},
		{project.Tolerance, "tolerance.tab"},
		{project.Transitions, "transitions.tab"},
		{project.Trees, "trees.tab"},
	}

	for _, s := range sets {
		p.Add(s.set, s.path)
	}
	testProject(t, p, sets)

	name := "tmp-project-for-test.tab"
	defer os.Remove(name)

	p.SetName(name)
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}

	np, err := project.Read(name)
	if err != nil {
		t.Fatalf("error when reading data: %v", err)
	}
	testProject(t, np, sets)
}

func testProject(t testing.TB, p *project.Project, sets []setPath) {
	t.Helper()

	for _, s := range sets {
		if path := p.Path(s.set); path != s.path {
			t.Errorf("set %s: got path %q, want %q", s.set, path, s.path)
		}
	}
	datasets := make([]project.Dataset, 0, len(sets))
	for _, v := range sets {
		datasets = append(datasets, v.set)
	}
	slices.Sort(datasets)

	if ls := p.Sets(); !reflect.DeepEqual(ls, datasets) {
		t.Errorf("sets: got %v, want %v", ls, datasets)
	}
}

func TestReadSequences(t *testing.T) {
	files := map[string]string{
		"tmp-seqs-for-test.fasta": "\n>Homo_sapiens\nMKAILV\n>Pan troglodytes\nMKTILV\n",
		"tmp-seqs-for-test.tab":   "taxon\tsequence\nHomo sapiens\tMKAILV\nPan troglodytes\tMKTILV\n",
	}
	for name, data := range files {
		if err := os.WriteFile(name, []byte(data), 0644); err != nil {
			t.Fatalf("unable to write %q: %v", name, err)
		}
		defer os.Remove(name)

		p := project.New()
		p.Add(project.Sequences, name)
		c, err := p.Sequences()
		if err != nil {
			t.Fatalf("%s: unable to read sequences: %v", name, err)
		}
		want := []string{"Homo sapiens", "Pan troglodytes"}
		if tx := c.Taxa(); !reflect.DeepEqual(tx, want) {
			t.Errorf("%s: taxa: got %v, want %v", name, tx, want)
		}
		if s := string(c.Seq("Pan troglodytes")); s != "MKTILV" {
			t.Errorf("%s: sequence: got %q, want %q", name, s, "MKTILV")
		}
	}
}

func TestDefaultParams(t *testing.T) {
	p := project.New()
	tp, err := p.Params()
	if err != nil {
		t.Fatalf("unable to get parameters: %v", err)
	}
	if tp.Tolerance() != 0.6 {
		t.Errorf("tolerance: got %.6f, want %.6f", tp.Tolerance(), 0.6)
	}
}

func TestOpen(t *testing.T) {
	name := "tmp-open-project-for-test.tab"
	os.Remove(name)

	p, err := project.Open(name)
	if err != nil {
		t.Fatalf("unable to open new project: %v", err)
	}
	if p.Name() != name {
		t.Errorf("name: got %q, want %q", p.Name(), name)
	}
	if ls := p.Sets(); len(ls) != 0 {
		t.Errorf("sets: got %v, want none", ls)
	}

	p.Add(project.Sequences, "h3-ha1.fasta")
	if err := p.Write(); err != nil {
		t.Fatalf("error when writing data: %v", err)
	}
	defer os.Remove(name)

	np, err := project.Open(name)
	if err != nil {
		t.Fatalf("unable to open project: %v", err)
	}
	testProject(t, np, []setPath{{project.Sequences, "h3-ha1.fasta"}})
}

func TestReadErrors(t *testing.T) {
	tests := map[string]struct {
		data string
		want string
	}{
		"unknown dataset": {
			data: "dataset\tpath\ntrees\ttrees.tab\nranges\tranges.tab\n",
			want: `on row 3: unknown dataset "ranges"`,
		},
		"repeated dataset": {
			data: "dataset\tpath\ntrees\ttrees.tab\ntrees\tother.tab\n",
			want: `on row 3: dataset "trees" already defined as "trees.tab"`,
		},
		"no path field": {
			data: "dataset\tfile\ntrees\ttrees.tab\n",
			want: `expecting field "path"`,
		},
	}

	name := "tmp-bad-project-for-test.tab"
	defer os.Remove(name)
	for n, test := range tests {
		if err := os.WriteFile(name, []byte(test.data), 0644); err != nil {
			t.Fatalf("unable to write %q: %v", name, err)
		}
		_, err := project.Read(name)
		if err == nil {
			t.Errorf("%s: expecting error", n)
			continue
		}
		if !strings.Contains(err.Error(), test.want) {
			t.Errorf("%s: got error %q, want %q", n, err, test.want)
		}

		if _, err := project.Open(name); err == nil {
			t.Errorf("%s: open: expecting error", n)
		}
	}
}

func TestRequire(t *testing.T) {
	p := project.New()
	p.SetName("project.tab")
	p.Add(project.Trees, "trees.tab")

	if err := p.Require(project.Trees); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	err := p.Require(project.Trees, project.Sequences, project.Params)
	if err == nil {
		t.Fatalf("expecting error")
	}
	want := `project "project.tab": undefined datasets: sequences, params`
	if err.Error() != want {
		t.Errorf("error: got %q, want %q", err, want)
	}

	if prev := p.Add(project.Trees, ""); prev != "trees.tab" {
		t.Errorf("previous path: got %q, want %q", prev, "trees.tab")
	}
	if err := p.Require(project.Trees); err == nil {
		t.Errorf("expecting error after removing dataset")
	}
}
