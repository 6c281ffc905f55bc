// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package seqs implements a collection
// of aligned amino acid sequences
// for a set of taxa.
package seqs

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Collection is a collection of aligned sequences.
type Collection struct {
	taxon map[string][]byte
}

// New creates a new empty collection.
func New() *Collection {
	return &Collection{
		taxon: make(map[string][]byte),
	}
}

// Add adds a sequence for a taxon.
// If the taxon already has a sequence,
// it will be replaced.
// Sequences are stored in upper case,
// and spaces are removed.
func (c *Collection) Add(taxon, seq string) {
	taxon = canon(taxon)
	if taxon == "" {
		return
	}
	seq = strings.Join(strings.Fields(strings.ToUpper(seq)), "")
	if seq == "" {
		return
	}
	c.taxon[taxon] = []byte(seq)
}

// Len returns the number of sequences in the collection.
func (c *Collection) Len() int {
	return len(c.taxon)
}

// Longest returns the length of the longest sequence.
func (c *Collection) Longest() int {
	var max int
	for _, s := range c.taxon {
		if len(s) > max {
			max = len(s)
		}
	}
	return max
}

// Seq returns the sequence of a taxon.
// The returned slice should not be modified.
func (c *Collection) Seq(taxon string) []byte {
	taxon = canon(taxon)
	if taxon == "" {
		return nil
	}
	return c.taxon[taxon]
}

// Taxa returns the taxa with sequences
// in the collection.
func (c *Collection) Taxa() []string {
	taxa := make([]string, 0, len(c.taxon))
	for tx := range c.taxon {
		taxa = append(taxa, tx)
	}
	slices.Sort(taxa)
	return taxa
}

// Canon returns a taxon name
// in its canonical form.
func canon(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return ""
	}
	name = strings.ToLower(name)
	r, n := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[n:]
}
