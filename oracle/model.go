// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package oracle

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/js-arias/treeland/pruning"
)

// A Partition is a range of sites of an alignment
// with its own model.
type Partition struct {
	// Model is the name of the model.
	Model string

	// Name is the name of the partition.
	Name string

	// Alphabet of the partition,
	// derived from the model.
	Alphabet pruning.Alphabet

	// From and To are the first and last site
	// of the partition,
	// 1-based and inclusive.
	From, To int
}

func (p Partition) String() string {
	return fmt.Sprintf("%s, %s = %d-%d", p.Model, p.Name, p.From, p.To)
}

// protein model names.
var proteinModels = map[string]bool{
	"PROT":     true,
	"AA":       true,
	"POISSON":  true,
	"WAG":      true,
	"LG":       true,
	"JTT":      true,
	"DAYHOFF":  true,
	"DCMUT":    true,
	"MTREV":    true,
	"MTMAM":    true,
	"MTART":    true,
	"MTZOA":    true,
	"RTREV":    true,
	"CPREV":    true,
	"VT":       true,
	"BLOSUM62": true,
	"HIVB":     true,
	"HIVW":     true,
	"FLU":      true,
}

// ModelAlphabet returns the alphabet of a model name.
func ModelAlphabet(model string) (pruning.Alphabet, error) {
	m := strings.ToUpper(strings.TrimSpace(model))
	switch m {
	case "DNA", "DNAX", "NT", "JC", "JC69":
		return pruning.DNA, nil
	case "BIN", "BINARY":
		return pruning.Binary, nil
	}
	if proteinModels[m] {
		return pruning.Protein, nil
	}
	return 0, fmt.Errorf("unknown model %q", model)
}

// ReadModel reads a partition model.
//
// Each line of the model defines a partition
// with the format:
//
//	MODEL, NAME = FROM-TO
//
// in which FROM and TO are the first and last sites
// of the partition
// (1-based and inclusive).
// Blank lines and lines starting with '#' are ignored.
func ReadModel(r io.Reader) ([]Partition, error) {
	sc := bufio.NewScanner(r)
	var parts []Partition
	var ln int
	for sc.Scan() {
		ln++
		line := strings.TrimSpace(sc.Text())
		if line == "" || line[0] == '#' {
			continue
		}
		p, err := parsePartition(line)
		if err != nil {
			return nil, fmt.Errorf("on line %d: %v", ln, err)
		}
		for _, op := range parts {
			if op.Name == p.Name {
				return nil, fmt.Errorf("on line %d: repeated partition %q", ln, p.Name)
			}
			if p.From <= op.To && op.From <= p.To {
				return nil, fmt.Errorf("on line %d: partition %q overlaps with %q", ln, p.Name, op.Name)
			}
		}
		parts = append(parts, p)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty model")
	}
	return parts, nil
}

func parsePartition(line string) (Partition, error) {
	model, rest, ok := strings.Cut(line, ",")
	if !ok {
		return Partition{}, fmt.Errorf("expecting 'MODEL, NAME = FROM-TO'")
	}
	name, rng, ok := strings.Cut(rest, "=")
	if !ok {
		return Partition{}, fmt.Errorf("expecting 'MODEL, NAME = FROM-TO'")
	}
	p := Partition{
		Model: strings.TrimSpace(model),
		Name:  strings.TrimSpace(name),
	}
	if p.Name == "" {
		return Partition{}, fmt.Errorf("empty partition name")
	}
	a, err := ModelAlphabet(p.Model)
	if err != nil {
		return Partition{}, err
	}
	p.Alphabet = a

	from, to, ok := strings.Cut(rng, "-")
	if !ok {
		return Partition{}, fmt.Errorf("partition %q: invalid range %q", p.Name, strings.TrimSpace(rng))
	}
	p.From, err = strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return Partition{}, fmt.Errorf("partition %q: invalid range: %v", p.Name, err)
	}
	p.To, err = strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return Partition{}, fmt.Errorf("partition %q: invalid range: %v", p.Name, err)
	}
	if p.From < 1 || p.To < p.From {
		return Partition{}, fmt.Errorf("partition %q: invalid range %d-%d", p.Name, p.From, p.To)
	}
	return p, nil
}

// ReadModelFile reads a partition model from a file.
func ReadModelFile(name string) ([]Partition, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	parts, err := ReadModel(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return parts, nil
}

// WriteModel writes a partition model.
func WriteModel(w io.Writer, parts []Partition) error {
	bw := bufio.NewWriter(w)
	for _, p := range parts {
		fmt.Fprintf(bw, "%s\n", p)
	}
	return bw.Flush()
}
