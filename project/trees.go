// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/js-arias/treeland/newick"
	"github.com/js-arias/treeland/tree"
)

// A Collection is a set of named trees.
type Collection struct {
	trees map[string]*tree.Tree
}

// NewCollection creates a new empty collection.
func NewCollection() *Collection {
	return &Collection{
		trees: make(map[string]*tree.Tree),
	}
}

// Add adds a tree with the given name
// to the collection.
func (c *Collection) Add(name string, t *tree.Tree) error {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return errors.New("empty tree name")
	}
	if _, dup := c.trees[name]; dup {
		return fmt.Errorf("tree %q already in collection", name)
	}
	c.trees[name] = t
	return nil
}

// Delete removes a tree from the collection.
func (c *Collection) Delete(name string) {
	delete(c.trees, name)
}

// Names returns the names of the trees
// in the collection.
func (c *Collection) Names() []string {
	names := make([]string, 0, len(c.trees))
	for n := range c.trees {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Tree returns a tree with the given name.
func (c *Collection) Tree(name string) *tree.Tree {
	return c.trees[name]
}

var treeHeader = []string{
	"tree",
	"newick",
}

// ReadTrees reads a tree collection
// from a TSV file.
//
// The TSV must contain the following fields:
//
//   - tree, the name of the tree
//   - newick, the tree in Newick format
//
// Here is an example file:
//
//	# treeland trees
//	tree	newick
//	start	((A:0.1,B:0.2):0.05,C:0.3,(D:0.1,E:0.1):0.2);
//	other	((A,C),B,(D,E));
func ReadTrees(r io.Reader) (*Collection, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'
	tsv.LazyQuotes = true

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range treeHeader {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	c := NewCollection()
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "tree"
		name := row[fields[f]]

		f = "newick"
		t, err := newick.Parse(row[fields[f]])
		if err != nil {
			return nil, fmt.Errorf("on row %d, field %q: %v", ln, f, err)
		}
		if err := c.Add(name, t); err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}
	}
	return c, nil
}

// TSV writes a tree collection as a TSV file.
func (c *Collection) TSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# treeland trees\n")
	tsv := csv.NewWriter(bw)
	tsv.Comma = '\t'
	tsv.UseCRLF = true

	if err := tsv.Write(treeHeader); err != nil {
		return fmt.Errorf("while writing header: %v", err)
	}
	for _, n := range c.Names() {
		row := []string{
			n,
			newick.String(c.trees[n]),
		}
		if err := tsv.Write(row); err != nil {
			return err
		}
	}

	tsv.Flush()
	if err := tsv.Error(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("while writing data: %v", err)
	}
	return nil
}
