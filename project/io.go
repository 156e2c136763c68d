// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package project

import (
	"errors"
	"fmt"
	"os"

	"github.com/js-arias/treeland/align"
	"github.com/js-arias/treeland/oracle"
	"github.com/js-arias/treeland/searchparam"
)

// Alignment reads an alignment file
// as defined in a project.
func (p *Project) Alignment() (*align.Alignment, error) {
	name := p.Path(Alignment)
	if name == "" {
		return nil, fmt.Errorf("alignment not defined in project %q", p.name)
	}
	return align.ReadFile(name)
}

// Model reads a partition model file
// as defined in a project.
// If no model is defined,
// it returns nil.
func (p *Project) Model() ([]oracle.Partition, error) {
	name := p.Path(Model)
	if name == "" {
		return nil, nil
	}
	return oracle.ReadModelFile(name)
}

// Params reads the search parameters
// as defined in a project.
// If no parameter file is defined,
// it returns the default parameters.
func (p *Project) Params() (*searchparam.Params, error) {
	name := p.Path(Params)
	if name == "" {
		return searchparam.New("params.tab"), nil
	}
	return searchparam.Read(name)
}

// Trees reads a tree collection file
// as defined in a project.
func (p *Project) Trees() (*Collection, error) {
	name := p.Path(Trees)
	if name == "" {
		return nil, fmt.Errorf("trees not defined in project %q", p.name)
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	c, err := ReadTrees(f)
	if err != nil {
		return nil, fmt.Errorf("while reading file %q: %v", name, err)
	}
	return c, nil
}

// WriteTrees writes a tree collection
// into the tree file of a project.
// If the project does not have a tree file,
// the file "trees.tab" will be used.
func (p *Project) WriteTrees(c *Collection) (err error) {
	name := p.Path(Trees)
	if name == "" {
		name = "trees.tab"
	}

	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		e := f.Close()
		if e != nil && err == nil {
			err = e
		}
	}()

	if err := c.TSV(f); err != nil {
		return fmt.Errorf("while writing to %q: %v", name, err)
	}
	p.Add(Trees, name)
	return nil
}

// Open opens a project file.
// If the file does not exist,
// it returns a new empty project
// with the given name.
func Open(name string) (*Project, error) {
	p, err := Read(name)
	if errors.Is(err, os.ErrNotExist) {
		p := New()
		p.SetName(name)
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to open project %q: %v", name, err)
	}
	return p, nil
}
