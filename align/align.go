// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package align implements reading
// of multiple sequence alignments
// in FASTA and relaxed PHYLIP formats.
package align

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// An Alignment is a set of aligned sequences.
type Alignment struct {
	taxa []string
	seqs [][]byte
}

// New creates a new empty alignment.
func New() *Alignment {
	return &Alignment{}
}

// Add adds a sequence to the alignment.
// The sequence is stored in upper case.
func (a *Alignment) Add(taxon, seq string) error {
	taxon = strings.Join(strings.Fields(taxon), " ")
	if taxon == "" {
		return fmt.Errorf("empty taxon name")
	}
	for _, tx := range a.taxa {
		if tx == taxon {
			return fmt.Errorf("taxon %q: repeated sequence", taxon)
		}
	}
	s := bytes.ToUpper([]byte(seq))
	if len(a.seqs) > 0 && len(s) != len(a.seqs[0]) {
		return fmt.Errorf("taxon %q: sequence length %d, want %d", taxon, len(s), len(a.seqs[0]))
	}
	a.taxa = append(a.taxa, taxon)
	a.seqs = append(a.seqs, s)
	return nil
}

// Column returns the states of a site,
// one byte per taxon,
// in the order of the taxa.
func (a *Alignment) Column(site int) []byte {
	col := make([]byte, len(a.seqs))
	for i, s := range a.seqs {
		col[i] = s[site]
	}
	return col
}

// Len returns the number of sites in the alignment.
func (a *Alignment) Len() int {
	if len(a.seqs) == 0 {
		return 0
	}
	return len(a.seqs[0])
}

// NumTaxa returns the number of sequences in the alignment.
func (a *Alignment) NumTaxa() int {
	return len(a.taxa)
}

// Seq returns the sequence of the i-th taxon.
func (a *Alignment) Seq(i int) string {
	return string(a.seqs[i])
}

// Taxa returns the taxa of the alignment,
// in input order.
func (a *Alignment) Taxa() []string {
	return a.taxa
}

// TaxonIndex returns a map from taxon names
// to its position in the alignment.
func (a *Alignment) TaxonIndex() map[string]int {
	idx := make(map[string]int, len(a.taxa))
	for i, tx := range a.taxa {
		idx[tx] = i
	}
	return idx
}

// Read reads an alignment.
// If the first non-blank character is '>'
// the input is read as FASTA,
// otherwise it is read as relaxed PHYLIP.
func Read(r io.Reader) (*Alignment, error) {
	br := bufio.NewReader(r)
	for {
		c, _, err := br.ReadRune()
		if err == io.EOF {
			return nil, fmt.Errorf("empty alignment")
		}
		if err != nil {
			return nil, err
		}
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' {
			continue
		}
		br.UnreadRune()
		if c == '>' {
			return ReadFASTA(br)
		}
		return ReadPhylip(br)
	}
}

// ReadFile reads an alignment from a file.
func ReadFile(name string) (*Alignment, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	a, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return a, nil
}
