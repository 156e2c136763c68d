// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package tree implements a phylogenetic tree
// stored as an arena of nodes.
//
// Nodes are identified by their index in the arena.
// A node knows its children,
// in insertion order,
// and the ID of its parent
// (-1 for the root or a detached node).
// The tree is the only owner of its nodes,
// no node is shared between trees.
package tree

import (
	"errors"
	"fmt"
	"slices"
)

// ErrPendingEdit is returned when an edit is started
// on a tree that has an edit still in progress.
var ErrPendingEdit = errors.New("tree: edit in progress")

// A Tree is a rooted phylogenetic tree.
type Tree struct {
	nodes []node
	root  int

	// anchors is the fixed numbering of the tree
	// (see Anchors).
	anchors []int

	editing bool
}

type node struct {
	label    string
	length   float64
	children []int
	parent   int
}

// New creates a new empty tree.
func New() *Tree {
	return &Tree{root: -1}
}

// NewNode adds a new detached node to the tree
// and returns its ID.
// The first node added to an empty tree
// is set as the root.
func (t *Tree) NewNode() int {
	id := len(t.nodes)
	t.nodes = append(t.nodes, node{parent: -1})
	if t.root < 0 {
		t.root = id
	}
	return id
}

// AddChild appends a child to the list of children
// of a parent node.
// The child must be a detached node.
func (t *Tree) AddChild(parent, child int) error {
	if !t.valid(parent) || !t.valid(child) {
		return fmt.Errorf("tree: invalid node IDs %d, %d", parent, child)
	}
	if child == t.root {
		return fmt.Errorf("tree: node %d is the root", child)
	}
	if p := t.nodes[child].parent; p >= 0 {
		return fmt.Errorf("tree: node %d already has parent %d", child, p)
	}
	for a := parent; a >= 0; a = t.nodes[a].parent {
		if a == child {
			return fmt.Errorf("tree: node %d is an ancestor of %d", child, parent)
		}
	}
	t.nodes[parent].children = append(t.nodes[parent].children, child)
	t.nodes[child].parent = parent
	return nil
}

// Anchors returns the fixed numbering of the tree:
// index 1 to n are the leaves,
// in left to right order,
// and index n+1 is the root.
// Index 0 is unused.
//
// The numbering is set the first time it is requested
// (the parser requests it when a tree is completed),
// and it is not modified by later rearrangements.
func (t *Tree) Anchors() []int {
	if t.anchors == nil {
		leaves := t.Leaves()
		a := make([]int, 0, len(leaves)+2)
		a = append(a, -1)
		a = append(a, leaves...)
		a = append(a, t.root)
		t.anchors = a
	}
	return t.anchors
}

// Children returns the IDs of the children of a node.
// The returned slice must not be modified.
func (t *Tree) Children(id int) []int {
	return t.nodes[id].children
}

// ChildPos returns the position of a node
// in the children list of its parent.
// It returns -1 if the node has no parent.
func (t *Tree) ChildPos(id int) int {
	p := t.nodes[id].parent
	if p < 0 {
		return -1
	}
	return slices.Index(t.nodes[p].children, id)
}

// IsLeaf returns true if the node has no children.
func (t *Tree) IsLeaf(id int) bool {
	return len(t.nodes[id].children) == 0
}

// IsRoot returns true if the node is the root of the tree.
func (t *Tree) IsRoot(id int) bool {
	return id == t.root
}

// Label returns the label of a node.
func (t *Tree) Label(id int) string {
	return t.nodes[id].label
}

// Leaves returns the IDs of the leaves
// in left to right order.
func (t *Tree) Leaves() []int {
	var leaves []int
	for _, id := range t.PostOrder() {
		if t.IsLeaf(id) {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Length returns the length of the branch
// that connects a node to its parent.
func (t *Tree) Length(id int) float64 {
	return t.nodes[id].length
}

// NumLeaves returns the number of leaves reachable from the root.
func (t *Tree) NumLeaves() int {
	return len(t.Leaves())
}

// Parent returns the ID of the parent of a node.
// It returns -1 for the root.
func (t *Tree) Parent(id int) int {
	return t.nodes[id].parent
}

// PostOrder returns the IDs of the nodes reachable from the root
// with the children visited from left to right
// before its parent.
func (t *Tree) PostOrder() []int {
	if t.root < 0 {
		return nil
	}
	order := make([]int, 0, len(t.nodes))
	var visit func(id int)
	visit = func(id int) {
		for _, c := range t.nodes[id].children {
			visit(c)
		}
		order = append(order, id)
	}
	visit(t.root)
	return order
}

// PreOrder returns the IDs of the nodes reachable from the root
// with a parent visited before its children.
func (t *Tree) PreOrder() []int {
	if t.root < 0 {
		return nil
	}
	order := make([]int, 0, len(t.nodes))
	var visit func(id int)
	visit = func(id int) {
		order = append(order, id)
		for _, c := range t.nodes[id].children {
			visit(c)
		}
	}
	visit(t.root)
	return order
}

// Root returns the ID of the root node.
// It returns -1 on an empty tree.
func (t *Tree) Root() int {
	return t.root
}

// SetLabel sets the label of a node.
func (t *Tree) SetLabel(id int, label string) {
	t.nodes[id].label = label
}

// SetLength sets the length of the branch
// that connects a node to its parent.
// Negative lengths are set to 0.
func (t *Tree) SetLength(id int, length float64) {
	if length < 0 {
		length = 0
	}
	t.nodes[id].length = length
}

// Terms returns the sorted labels of the leaves.
func (t *Tree) Terms() []string {
	leaves := t.Leaves()
	terms := make([]string, 0, len(leaves))
	for _, id := range leaves {
		terms = append(terms, t.nodes[id].label)
	}
	slices.Sort(terms)
	return terms
}

func (t *Tree) valid(id int) bool {
	return id >= 0 && id < len(t.nodes)
}
