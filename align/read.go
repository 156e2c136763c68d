// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package align

import (
	"fmt"
	"io"

	goalign "github.com/evolbioinfo/goalign/align"
	"github.com/evolbioinfo/goalign/io/fasta"
	"github.com/evolbioinfo/goalign/io/phylip"
)

// ReadFASTA reads an alignment in FASTA format.
//
// The header line of each entry is used as the taxon name,
// and the sequence can span multiple lines.
// Only letters, digits, '-', '.', '?' and '*'
// are valid sequence characters.
func ReadFASTA(r io.Reader) (*Alignment, error) {
	al, err := fasta.NewParser(r).Parse()
	if err != nil {
		return nil, fmt.Errorf("fasta: %v", err)
	}
	return fromGoalign(al)
}

// ReadPhylip reads an alignment in relaxed PHYLIP format.
//
// The first line contains the number of taxa
// and the number of sites.
// Each of the following lines contains a taxon name,
// followed by blanks and its sequence.
// In interleaved files,
// the lines after the first block
// contain only sequence data,
// in the same taxon order.
func ReadPhylip(r io.Reader) (*Alignment, error) {
	al, err := phylip.NewParser(r, false).Parse()
	if err != nil {
		return nil, fmt.Errorf("phylip: %v", err)
	}
	return fromGoalign(al)
}

func fromGoalign(al goalign.Alignment) (*Alignment, error) {
	if al == nil || al.NbSequences() == 0 {
		return nil, fmt.Errorf("empty alignment")
	}

	a := New()
	for i := 0; i < al.NbSequences(); i++ {
		name, _ := al.GetSequenceNameById(i)
		seq, ok := al.GetSequenceById(i)
		if !ok {
			return nil, fmt.Errorf("sequence %d: not found", i+1)
		}
		for _, c := range seq {
			if !isSeqChar(c) {
				return nil, fmt.Errorf("taxon %q: invalid sequence character %q", name, c)
			}
		}
		if err := a.Add(name, seq); err != nil {
			return nil, err
		}
	}
	return a, nil
}

func isSeqChar(c rune) bool {
	switch {
	case c >= 'a' && c <= 'z':
		return true
	case c >= 'A' && c <= 'Z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-', c == '?', c == '*', c == '.':
		return true
	}
	return false
}
