// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package seqs

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReadTSV reads a collection of sequences
// from a TSV file.
//
// The TSV file must contain the following fields:
//
//   - taxon, the taxonomic name of the taxon
//   - sequence, the aligned amino acid sequence
//
// Here is an example file:
//
//	taxon	sequence
//	A/Perth/16/2009	QKIPGNDNSTATLCLGHHAVPNGTIVKTITNDRIEVTNATELVQNSS
//	A/Victoria/361/2011	QKIPGNDNSTATLCLGHHAVPNGTIVKTITNDRIEVTNATELVQNSS
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
	for _, h := range []string{"taxon", "sequence"} {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	c := New()
	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "taxon"
		tax := canon(row[fields[f]])
		if tax == "" {
			continue
		}
		if _, ok := c.taxon[tax]; ok {
			return nil, fmt.Errorf("on row %d: field %q: taxon %q: repeated sequence", ln, f, tax)
		}

		f = "sequence"
		c.Add(tax, row[fields[f]])
	}
	return c, nil
}

// ReadFasta reads a collection of sequences
// from a FASTA file.
//
// The whole description line
// is used as the taxon name.
// Underscores in the name are replaced by spaces.
func ReadFasta(r io.Reader) (*Collection, error) {
	c := New()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var tax string
	var seq strings.Builder
	add := func(ln int) error {
		if tax == "" {
			return nil
		}
		if _, ok := c.taxon[canon(tax)]; ok {
			return fmt.Errorf("on line %d: taxon %q: repeated sequence", ln, tax)
		}
		c.Add(tax, seq.String())
		return nil
	}

	var ln int
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if err := add(ln); err != nil {
				return nil, err
			}
			seq.Reset()
			tax = strings.Join(strings.Fields(strings.ReplaceAll(line[1:], "_", " ")), " ")
			if tax == "" {
				return nil, fmt.Errorf("on line %d: empty taxon name", ln)
			}
			continue
		}
		if tax == "" {
			return nil, fmt.Errorf("on line %d: sequence without a description line", ln)
		}
		seq.WriteString(line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("on line %d: %v", ln, err)
	}
	if err := add(ln); err != nil {
		return nil, err
	}
	return c, nil
}

// TSV writes a collection as a TSV file.
func (c *Collection) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	// header
	header := []string{"taxon", "sequence"}
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, tx := range c.Taxa() {
		row := []string{
			tx,
			string(c.taxon[tx]),
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}
