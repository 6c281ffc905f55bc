// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package transition

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/js-arias/aatrans/consensus"
)

// A Collection is a set of transition lists
// for the branches of one or more trees.
type Collection struct {
	trees map[string]map[int]*branch
}

type branch struct {
	taxon string
	list  List
}

// NewCollection returns an empty collection.
func NewCollection() *Collection {
	return &Collection{
		trees: make(map[string]map[int]*branch),
	}
}

// Add adds a record for the branch
// that ends on the indicated node of a tree.
func (c *Collection) Add(tree string, node int, taxon string, r Record) {
	tree = strings.Join(strings.Fields(tree), " ")
	if tree == "" {
		return
	}
	t, ok := c.trees[tree]
	if !ok {
		t = make(map[int]*branch)
		c.trees[tree] = t
	}
	b, ok := t[node]
	if !ok {
		b = &branch{taxon: taxon}
		t[node] = b
	}
	b.list.AddLR(r.Pos, r.Left, r.Right)
}

// List returns the transition list of a node in a tree.
// It returns nil if the node has no transitions.
func (c *Collection) List(tree string, node int) *List {
	t, ok := c.trees[tree]
	if !ok {
		return nil
	}
	b, ok := t[node]
	if !ok {
		return nil
	}
	return &b.list
}

// Taxon returns the taxon name of a node in a tree.
func (c *Collection) Taxon(tree string, node int) string {
	t, ok := c.trees[tree]
	if !ok {
		return ""
	}
	b, ok := t[node]
	if !ok {
		return ""
	}
	return b.taxon
}

// Nodes returns the nodes with transitions in a tree.
func (c *Collection) Nodes(tree string) []int {
	t, ok := c.trees[tree]
	if !ok {
		return nil
	}
	nodes := make([]int, 0, len(t))
	for id := range t {
		nodes = append(nodes, id)
	}
	slices.Sort(nodes)
	return nodes
}

// Trees returns the names of the trees in the collection.
func (c *Collection) Trees() []string {
	names := make([]string, 0, len(c.trees))
	for n := range c.trees {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

var header = []string{
	"tree",
	"node",
	"taxon",
	"position",
	"ancestor",
	"derived",
}

// ReadTSV reads a collection of transitions
// from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - tree, the name of the tree
//   - node, the ID of the node at the end of the branch
//   - taxon, the taxon name of the node (empty for internal nodes)
//   - position, the 1-based position in the alignment
//   - ancestor, the ancestral residue
//   - derived, the derived residue
//
// Here is an example file:
//
//	# amino acid transitions
//	tree	node	taxon	position	ancestor	derived
//	h3	12		145	N	K
//	h3	12		160	T	A
//	h3	31	A/Perth/16/2009	189	S	N
func ReadTSV(r io.Reader) (*Collection, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range header {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	c := NewCollection()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "tree"
		tn := row[fields[f]]

		f = "node"
		id, err := strconv.Atoi(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "taxon"
		tax := strings.Join(strings.Fields(row[fields[f]]), " ")

		f = "position"
		pos, err := strconv.Atoi(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}
		if pos < 1 {
			return nil, fmt.Errorf("on row %d: field %q: invalid position %d", ln, f, pos)
		}

		f = "ancestor"
		left, err := readResidue(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		f = "derived"
		right, err := readResidue(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, f, err)
		}

		c.Add(tn, id, tax, Record{Pos: pos - 1, Left: left, Right: right})
	}
	return c, nil
}

func readResidue(s string) (byte, error) {
	s = strings.TrimSpace(strings.ToUpper(s))
	if len(s) != 1 {
		return 0, fmt.Errorf("invalid residue %q", s)
	}
	if s[0] == '?' {
		return consensus.None, nil
	}
	return s[0], nil
}

// TSV writes a collection as a TSV file.
func (c *Collection) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, tn := range c.Trees() {
		for _, id := range c.Nodes(tn) {
			b := c.trees[tn][id]
			recs := b.list.Records()
			slices.SortFunc(recs, func(a, b Record) int {
				return a.Pos - b.Pos
			})
			for _, r := range recs {
				row := []string{
					tn,
					strconv.Itoa(id),
					b.taxon,
					strconv.Itoa(r.Pos + 1),
					string(printable(r.Left)),
					string(printable(r.Right)),
				}
				if err := tab.Write(row); err != nil {
					return fmt.Errorf("when writing data: %v", err)
				}
			}
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
