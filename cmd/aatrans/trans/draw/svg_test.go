// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package draw

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/js-arias/aatrans/transition"
	"github.com/js-arias/timetree"
)

var treeBlob = `# hominids
tree	node	parent	age	taxon
hominids	0	-1	16000000	
hominids	1	0	8000000	
hominids	2	1	0	Homo sapiens
hominids	3	1	0	Pan troglodytes
hominids	4	0	0	Pongo abelii
`

func TestSVG(t *testing.T) {
	tc, err := timetree.ReadTSV(strings.NewReader(treeBlob))
	if err != nil {
		t.Fatalf("unable to read tree: %v", err)
	}

	tr := transition.NewCollection()
	tr.Add("hominids", 1, "", transition.Record{Pos: 144, Left: 'N', Right: 'K'})
	tr.Add("hominids", 1, "", transition.Record{Pos: 159, Left: 'T', Right: 'A'})
	tr.Add("hominids", 2, "Homo sapiens", transition.Record{Pos: 3, Left: 'A', Right: 'V'})

	s := copyTree(tc.Tree("hominids"), 10)
	s.setLabels(tr, 0, nil)
	if lb := s.nodes[1].label; lb != "N145K T160A" {
		t.Errorf("label: got %q, want %q", lb, "N145K T160A")
	}
	if s.nodes[4].label != "" {
		t.Errorf("label: unexpected label %q", s.nodes[4].label)
	}
	if s.nodes[4].color != gray {
		t.Errorf("color: branch without transitions should be gray")
	}

	var buf bytes.Buffer
	if err := s.draw(&buf); err != nil {
		t.Fatalf("draw: unexpected error: %v", err)
	}
	out := buf.String()
	for _, w := range []string{"N145K T160A", "A4V", "Pongo abelii"} {
		if !strings.Contains(out, w) {
			t.Errorf("svg: %q not found", w)
		}
	}

	// the output must be valid XML
	d := xml.NewDecoder(&buf)
	for {
		_, err := d.Token()
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.Errorf("svg: invalid XML: %v", err)
			}
			break
		}
	}
}
