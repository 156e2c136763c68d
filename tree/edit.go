// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"fmt"
	"slices"
)

// BeginEdit marks the tree as being edited.
// It returns ErrPendingEdit
// if a previous edit was not finished.
func (t *Tree) BeginEdit() error {
	if t.editing {
		return ErrPendingEdit
	}
	t.editing = true
	return nil
}

// EndEdit marks the end of an edit.
func (t *Tree) EndEdit() {
	t.editing = false
}

// Editing returns true if there is an edit in progress.
func (t *Tree) Editing() bool {
	return t.editing
}

// InsertChild inserts a detached node
// at the given position of the children list of a parent.
func (t *Tree) InsertChild(parent, pos, child int) {
	p := &t.nodes[parent]
	p.children = slices.Insert(p.children, pos, child)
	t.nodes[child].parent = parent
}

// RemoveChild removes the child at the given position
// of the children list of a parent,
// and returns the ID of the removed child.
// The removed child becomes a detached node.
func (t *Tree) RemoveChild(parent, pos int) int {
	p := &t.nodes[parent]
	child := p.children[pos]
	p.children = slices.Delete(p.children, pos, pos+1)
	t.nodes[child].parent = -1
	return child
}

// ReplaceChild replaces the child at the given position
// of the children list of a parent
// with a detached node,
// and returns the ID of the replaced child.
func (t *Tree) ReplaceChild(parent, pos, child int) int {
	p := &t.nodes[parent]
	old := p.children[pos]
	p.children[pos] = child
	t.nodes[old].parent = -1
	t.nodes[child].parent = parent
	return old
}

// SetRoot sets a detached node as the root of the tree.
func (t *Tree) SetRoot(id int) error {
	if !t.valid(id) {
		return fmt.Errorf("tree: invalid node ID %d", id)
	}
	if p := t.nodes[id].parent; p >= 0 {
		return fmt.Errorf("tree: node %d has parent %d", id, p)
	}
	t.root = id
	return nil
}

// Truncate removes all nodes with an ID equal or larger than n.
// Removed nodes must be detached.
func (t *Tree) Truncate(n int) {
	for i := n; i < len(t.nodes); i++ {
		t.nodes[i] = node{}
	}
	t.nodes = t.nodes[:n]
}

// A Snapshot is a copy of the state of some nodes of a tree.
type Snapshot struct {
	size  int
	root  int
	ids   []int
	nodes []node
}

// Snapshot stores the state of a set of nodes,
// and the size of the arena.
func (t *Tree) Snapshot(ids []int) *Snapshot {
	s := &Snapshot{
		size:  len(t.nodes),
		root:  t.root,
		ids:   slices.Clone(ids),
		nodes: make([]node, len(ids)),
	}
	for i, id := range ids {
		n := t.nodes[id]
		n.children = slices.Clone(n.children)
		s.nodes[i] = n
	}
	return s
}

// Restore sets the nodes stored in a snapshot
// to its stored state,
// and removes the nodes added after the snapshot.
// Nodes that are not in the snapshot
// must not have been modified.
func (t *Tree) Restore(s *Snapshot) {
	t.Truncate(s.size)
	for i, id := range s.ids {
		n := s.nodes[i]
		n.children = slices.Clone(n.children)
		t.nodes[id] = n
	}
	t.root = s.root
}

// Clone returns a deep copy of the tree.
// The copy is not in edit mode.
func (t *Tree) Clone() *Tree {
	nt := &Tree{
		nodes: make([]node, len(t.nodes)),
		root:  t.root,
	}
	for i, n := range t.nodes {
		n.children = slices.Clone(n.children)
		nt.nodes[i] = n
	}
	if t.anchors != nil {
		nt.anchors = slices.Clone(t.anchors)
	}
	return nt
}

// Equal returns true if both trees have the same arena:
// the same nodes,
// with the same labels, branch lengths and children order,
// and the same root.
func (t *Tree) Equal(o *Tree) bool {
	if t.root != o.root || len(t.nodes) != len(o.nodes) {
		return false
	}
	for i, n := range t.nodes {
		m := o.nodes[i]
		if n.label != m.label || n.length != m.length || n.parent != m.parent {
			return false
		}
		if !slices.Equal(n.children, m.children) {
			return false
		}
	}
	return true
}

// ClearLengths sets all branch lengths to 0.
func (t *Tree) ClearLengths() {
	for i := range t.nodes {
		t.nodes[i].length = 0
	}
}

// Smooth returns a new tree
// in which the internal nodes with a single child
// are merged with their child,
// adding their branch lengths.
// Nodes not reachable from the root are not copied.
func (t *Tree) Smooth() *Tree {
	nt := New()
	if t.root < 0 {
		return nt
	}

	var cp func(id int, length float64) int
	cp = func(id int, length float64) int {
		for len(t.nodes[id].children) == 1 {
			length += t.nodes[id].length
			id = t.nodes[id].children[0]
		}
		n := nt.NewNode()
		nt.nodes[n].label = t.nodes[id].label
		nt.nodes[n].length = length + t.nodes[id].length
		for _, c := range t.nodes[id].children {
			nc := cp(c, 0)
			nt.nodes[n].children = append(nt.nodes[n].children, nc)
			nt.nodes[nc].parent = n
		}
		return n
	}
	r := cp(t.root, 0)
	nt.nodes[r].length = 0
	return nt
}
