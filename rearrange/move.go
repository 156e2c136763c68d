// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package rearrange implements local rearrangements of a tree
// (NNI and SPR)
// and the enumeration of the trees
// in the neighborhood of a tree.
//
// A rearrangement is applied on a tree with Apply,
// and it must be reverted with Revert
// before another rearrangement is applied.
// Revert restores the tree exactly,
// including the node arena,
// the order of the children
// and the branch lengths.
package rearrange

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/js-arias/treeland/tree"
)

// Kind is the kind of a rearrangement.
type Kind int

// Valid rearrangement kinds.
const (
	// Nearest neighbor interchange.
	NNI Kind = iota + 1

	// Subtree pruning and regrafting.
	SPR

	// Both NNI and SPR.
	All
)

func (k Kind) String() string {
	switch k {
	case NNI:
		return "NNI"
	case SPR:
		return "SPR"
	case All:
		return "ALL"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the kind of rearrangement from a string.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "nni":
		return NNI, nil
	case "spr":
		return SPR, nil
	case "all":
		return All, nil
	}
	return 0, fmt.Errorf("rearrange: unknown move kind %q", s)
}

// ErrInvalidMove is returned when a move
// can not be applied on a tree.
var ErrInvalidMove = errors.New("rearrange: invalid move")

// A Move is a rearrangement of a tree.
type Move struct {
	Kind Kind

	// Anchor is the anchor index
	// that produced the move.
	Anchor int

	// Node is the moved node.
	// In an NNI move,
	// it is one of the swapped subtrees,
	// in an SPR move it is the pruned subtree.
	Node int

	// Target is the destination.
	// In an NNI move,
	// it is the other swapped subtree,
	// in an SPR move it is the node below the edge
	// in which the pruned subtree is regrafted.
	Target int

	// Flip is set in an SPR move
	// in which the pruned subtree is the rest of the tree
	// at the other side of the parent edge of Node.
	// The Target is a node inside the Node subtree.
	Flip bool
}

func (m Move) String() string {
	if m.Flip {
		return fmt.Sprintf("%s %d: %d <- %d", m.Kind, m.Anchor, m.Node, m.Target)
	}
	return fmt.Sprintf("%s %d: %d -> %d", m.Kind, m.Anchor, m.Node, m.Target)
}

// A Token stores the information required
// to revert a move.
type Token struct {
	move     Move
	reverted bool

	// position of the moved node
	parent, pos int

	// NNI target position
	tParent, tPos int

	// suppressed parent (SPR)
	sibling int
	sibLen  float64
	grand   int
	gPos    int

	// regraft point (SPR)
	node  int
	tLen  float64
	xPos  int
	xPar  int
	arena int

	// flipped SPR
	snap *tree.Snapshot
}

// Move returns the move stored in the token.
func (tk *Token) Move() Move {
	return tk.move
}

// Apply applies a move on a tree.
// The tree must not have another move pending.
func Apply(t *tree.Tree, m Move) (*Token, error) {
	if err := t.BeginEdit(); err != nil {
		return nil, err
	}

	var tk *Token
	var err error
	switch m.Kind {
	case NNI:
		tk, err = applyNNI(t, m)
	case SPR:
		if m.Flip {
			tk, err = applyFlip(t, m)
			break
		}
		tk, err = applySPR(t, m)
	default:
		err = fmt.Errorf("%w: %v", ErrInvalidMove, m)
	}
	if err != nil {
		t.EndEdit()
		return nil, err
	}
	return tk, nil
}

// Revert reverts a move applied with Apply.
func Revert(t *tree.Tree, tk *Token) error {
	if tk == nil || tk.reverted {
		return fmt.Errorf("rearrange: move already reverted")
	}
	if !t.Editing() {
		return fmt.Errorf("rearrange: revert %v: no move in progress", tk.move)
	}

	switch tk.move.Kind {
	case NNI:
		revertNNI(t, tk)
	case SPR:
		if tk.snap != nil {
			t.Restore(tk.snap)
			break
		}
		revertSPR(t, tk)
	}
	tk.reverted = true
	t.EndEdit()
	return nil
}

func validNode(t *tree.Tree, id int) bool {
	return id >= 0 && id < t.Len()
}

// applyNNI swaps two subtrees.
func applyNNI(t *tree.Tree, m Move) (*Token, error) {
	x, y := m.Node, m.Target
	if !validNode(t, x) || !validNode(t, y) || x == y {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMove, m)
	}
	px, py := t.Parent(x), t.Parent(y)
	if px < 0 || py < 0 || px == py {
		return nil, fmt.Errorf("%w: %v: nodes %d and %d can not be swapped", ErrInvalidMove, m, x, y)
	}
	if isAncestor(t, x, y) || isAncestor(t, y, x) {
		return nil, fmt.Errorf("%w: %v: nested subtrees", ErrInvalidMove, m)
	}

	tk := &Token{
		move:    m,
		parent:  px,
		pos:     t.ChildPos(x),
		tParent: py,
		tPos:    t.ChildPos(y),
	}
	t.RemoveChild(px, tk.pos)
	t.RemoveChild(py, tk.tPos)
	t.InsertChild(px, tk.pos, y)
	t.InsertChild(py, tk.tPos, x)
	return tk, nil
}

func revertNNI(t *tree.Tree, tk *Token) {
	y := t.RemoveChild(tk.parent, tk.pos)
	x := t.RemoveChild(tk.tParent, tk.tPos)
	t.InsertChild(tk.parent, tk.pos, x)
	t.InsertChild(tk.tParent, tk.tPos, y)
}

// applySPR prunes a subtree
// and regrafts it at the middle of a target edge.
// If the parent of the pruned subtree is left with a single child,
// the parent is removed
// and its branch length is added to the remaining child.
func applySPR(t *tree.Tree, m Move) (*Token, error) {
	v, x := m.Node, m.Target
	if !validNode(t, v) || !validNode(t, x) || v == x {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMove, m)
	}
	p := t.Parent(v)
	if p < 0 || len(t.Children(p)) < 2 {
		return nil, fmt.Errorf("%w: %v: node %d can not be pruned", ErrInvalidMove, m, v)
	}
	if t.Parent(x) < 0 {
		return nil, fmt.Errorf("%w: %v: node %d without parent edge", ErrInvalidMove, m, x)
	}
	if isAncestor(t, v, x) {
		return nil, fmt.Errorf("%w: %v: target inside pruned subtree", ErrInvalidMove, m)
	}
	binary := len(t.Children(p)) == 2
	if binary && (x == p || t.Parent(x) == p) {
		return nil, fmt.Errorf("%w: %v: target reproduces the tree", ErrInvalidMove, m)
	}

	tk := &Token{
		move:    m,
		parent:  p,
		pos:     t.ChildPos(v),
		sibling: -1,
		grand:   -1,
	}

	// prune
	t.RemoveChild(p, tk.pos)
	if binary {
		s := t.Children(p)[0]
		tk.sibling = s
		tk.sibLen = t.Length(s)
		t.RemoveChild(p, 0)
		if g := t.Parent(p); g >= 0 {
			tk.grand = g
			tk.gPos = t.ChildPos(p)
			t.ReplaceChild(g, tk.gPos, s)
			t.SetLength(s, tk.sibLen+t.Length(p))
		} else {
			t.SetLength(s, 0)
			t.SetRoot(s)
		}
	}

	// regraft
	tk.arena = t.Len()
	tk.xPar = t.Parent(x)
	tk.xPos = t.ChildPos(x)
	tk.tLen = t.Length(x)
	n := t.NewNode()
	tk.node = n
	t.SetLength(n, tk.tLen/2)
	t.SetLength(x, tk.tLen/2)
	t.ReplaceChild(tk.xPar, tk.xPos, n)
	t.InsertChild(n, 0, x)
	t.InsertChild(n, 1, v)
	return tk, nil
}

// isAncestor returns true if a is an ancestor of n,
// or if a is n.
func isAncestor(t *tree.Tree, a, n int) bool {
	for ; n >= 0; n = t.Parent(n) {
		if n == a {
			return true
		}
	}
	return false
}

func revertSPR(t *tree.Tree, tk *Token) {
	m := tk.move

	// remove regraft
	t.RemoveChild(tk.node, 1)
	t.RemoveChild(tk.node, 0)
	t.ReplaceChild(tk.xPar, tk.xPos, m.Target)
	t.SetLength(m.Target, tk.tLen)
	t.Truncate(tk.arena)

	// restore suppressed parent
	p := tk.parent
	if s := tk.sibling; s >= 0 {
		if tk.grand >= 0 {
			t.ReplaceChild(tk.grand, tk.gPos, p)
		}
		t.InsertChild(p, 0, s)
		t.SetLength(s, tk.sibLen)
		if tk.grand < 0 {
			t.SetRoot(p)
		}
	}
	t.InsertChild(p, tk.pos, m.Node)
}

// applyFlip prunes the rest of the tree
// from the parent edge of a node
// and regrafts it at the middle of a target edge
// inside the node subtree.
// The tree keeps its root,
// and the node subtree is rerooted at the target edge.
// If the node is left with a single child,
// the node is removed
// and its branch lengths are added.
func applyFlip(t *tree.Tree, m Move) (*Token, error) {
	c, x := m.Node, m.Target
	if !validNode(t, c) || !validNode(t, x) || c == x {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMove, m)
	}
	p := t.Parent(c)
	if p < 0 {
		return nil, fmt.Errorf("%w: %v: node %d without parent edge", ErrInvalidMove, m, c)
	}
	if !isAncestor(t, c, x) {
		return nil, fmt.Errorf("%w: %v: target outside node subtree", ErrInvalidMove, m)
	}
	if len(t.Children(c)) < 2 {
		return nil, fmt.Errorf("%w: %v: node %d can not be rerooted", ErrInvalidMove, m, c)
	}
	binary := len(t.Children(c)) == 2
	if binary && t.Parent(x) == c {
		return nil, fmt.Errorf("%w: %v: target reproduces the tree", ErrInvalidMove, m)
	}

	// path from the node to the target,
	// without both ends
	var path []int
	for v := t.Parent(x); v != c; v = t.Parent(v) {
		path = append(path, v)
	}
	slices.Reverse(path)

	ids := []int{p, c, x}
	ids = append(ids, t.Children(c)...)
	ids = append(ids, path...)
	tk := &Token{
		move: m,
		snap: t.Snapshot(ids),
	}

	xLen := t.Length(x)
	pathLen := make([]float64, len(path))
	for i, v := range path {
		pathLen[i] = t.Length(v)
	}

	// the rest of the tree is attached
	// to the new node
	n := t.NewNode()
	t.ReplaceChild(p, t.ChildPos(c), n)
	t.SetLength(n, t.Length(c))

	xp := t.Parent(x)
	t.RemoveChild(xp, t.ChildPos(x))
	t.InsertChild(n, 0, x)
	t.SetLength(x, xLen/2)

	// reverse the path
	up := n
	for i := len(path) - 1; i >= 0; i-- {
		v := path[i]
		op := c
		if i > 0 {
			op = path[i-1]
		}
		t.RemoveChild(op, t.ChildPos(v))
		t.InsertChild(up, len(t.Children(up)), v)
		l := xLen / 2
		if i < len(path)-1 {
			l = pathLen[i+1]
		}
		t.SetLength(v, l)
		up = v
	}

	if binary {
		b := t.RemoveChild(c, 0)
		t.InsertChild(up, len(t.Children(up)), b)
		t.SetLength(b, t.Length(b)+pathLen[0])
		return tk, nil
	}
	t.InsertChild(up, len(t.Children(up)), c)
	l := xLen / 2
	if len(path) > 0 {
		l = pathLen[0]
	}
	t.SetLength(c, l)
	return tk, nil
}
