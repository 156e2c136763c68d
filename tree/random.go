// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package tree

import (
	"errors"

	"golang.org/x/exp/rand"
)

// Random returns a random tree with the given terminals,
// built by random stepwise addition.
// The first three terminals in random order
// are attached to the root,
// and each other terminal is added
// at a random branch.
func Random(terms []string, rnd *rand.Rand) (*Tree, error) {
	if len(terms) < 2 {
		return nil, errors.New("tree: at least two terminals required")
	}
	perm := rnd.Perm(len(terms))

	t := New()
	root := t.NewNode()
	for i, p := range perm {
		leaf := t.NewNode()
		t.SetLabel(leaf, terms[p])
		if i < 3 {
			t.AddChild(root, leaf)
			continue
		}

		// any node except the root
		// defines a branch
		x := rnd.Intn(leaf-1) + 1
		m := t.NewNode()
		t.ReplaceChild(t.Parent(x), t.ChildPos(x), m)
		t.AddChild(m, x)
		t.AddChild(m, leaf)
	}
	t.Anchors()
	return t, nil
}

// Shuffle permutes at random
// the labels of the leaves of the tree.
func (t *Tree) Shuffle(rnd *rand.Rand) {
	leaves := t.Leaves()
	rnd.Shuffle(len(leaves), func(i, j int) {
		a, b := leaves[i], leaves[j]
		t.nodes[a].label, t.nodes[b].label = t.nodes[b].label, t.nodes[a].label
	})
}
