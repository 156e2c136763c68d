// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package pruning

import (
	"fmt"
	"strings"
)

// Alphabet is the set of states of a character.
type Alphabet int

// Valid alphabets.
const (
	// Nucleotides (A, C, G, T).
	DNA Alphabet = iota

	// The twenty amino acids.
	Protein

	// Binary characters (0, 1).
	Binary
)

const aminoAcids = "ARNDCQEGHILKMFPSTWYV"

// States returns the number of states of the alphabet.
func (a Alphabet) States() int {
	switch a {
	case DNA:
		return 4
	case Protein:
		return len(aminoAcids)
	case Binary:
		return 2
	}
	return 0
}

// Index returns the index of a state.
// It returns -1 if the character is not a valid state
// (e.g. a gap or a missing value).
func (a Alphabet) Index(c byte) int {
	switch a {
	case DNA:
		switch c {
		case 'A', 'a':
			return 0
		case 'C', 'c':
			return 1
		case 'G', 'g':
			return 2
		case 'T', 't', 'U', 'u':
			return 3
		}
	case Protein:
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		return strings.IndexByte(aminoAcids, c)
	case Binary:
		switch c {
		case '0':
			return 0
		case '1':
			return 1
		}
	}
	return -1
}

func (a Alphabet) String() string {
	switch a {
	case DNA:
		return "DNA"
	case Protein:
		return "PROT"
	case Binary:
		return "BIN"
	}
	return fmt.Sprintf("Alphabet(%d)", int(a))
}
