// SPDX-License-Identifier: MIT

package sketch

import (
	"fmt"
	"sort"
)

// Tree is the greedy parent forest of a sketch: record i hangs under
// record Parent(i), and records with NoParent are roots. Record 0 is always
// a root.
type Tree struct {
	parent   []int
	children [][]int
	depth    []int
	roots    []int
}

// Tree builds the parent forest. A parent always precedes its child, so the
// forest is acyclic; Tree fails with ErrInvariant when a parent index is
// negative (other than NoParent) or not smaller than the child's index.
//
// Complexity: O(n log n) for sorting child lists, O(n) otherwise.
func (s *Sketch) Tree() (*Tree, error) {
	if !s.loaded {
		return nil, ErrNotLoaded
	}
	n := len(s.records)
	t := &Tree{
		parent:   make([]int, n),
		children: make([][]int, n),
		depth:    make([]int, n),
	}

	// 1. Link children to parents; depth follows index order
	for i, r := range s.records {
		t.parent[i] = r.Parent
		switch {
		case r.Parent == NoParent:
			t.roots = append(t.roots, i)
		case r.Parent < 0 || r.Parent >= i:
			return nil, fmt.Errorf("sketch: record %d has parent %d, want [0, %d): %w", i, r.Parent, i, ErrInvariant)
		default:
			t.children[r.Parent] = append(t.children[r.Parent], i)
			t.depth[i] = t.depth[r.Parent] + 1
		}
	}

	// 2. Children in ascending order
	for i := range t.children {
		sort.Ints(t.children[i])
	}

	return t, nil
}

// Len is the number of nodes.
func (t *Tree) Len() int { return len(t.parent) }

// Roots lists root indices in ascending order.
func (t *Tree) Roots() []int { return append([]int(nil), t.roots...) }

func (t *Tree) check(i int) error {
	if i < 0 || i >= len(t.parent) {
		return fmt.Errorf("sketch: tree node %d not in [0, %d]: %w", i, len(t.parent)-1, ErrIndexOutOfRange)
	}

	return nil
}

// Parent returns the parent of i, or NoParent for a root.
func (t *Tree) Parent(i int) (int, error) {
	if err := t.check(i); err != nil {
		return NoParent, err
	}

	return t.parent[i], nil
}

// Children returns the children of i in ascending order.
func (t *Tree) Children(i int) ([]int, error) {
	if err := t.check(i); err != nil {
		return nil, err
	}

	return append([]int(nil), t.children[i]...), nil
}

// Depth is the number of edges between i and its root.
func (t *Tree) Depth(i int) (int, error) {
	if err := t.check(i); err != nil {
		return 0, err
	}

	return t.depth[i], nil
}

// Path returns the chain from i up to its root, i first.
func (t *Tree) Path(i int) ([]int, error) {
	if err := t.check(i); err != nil {
		return nil, err
	}
	path := make([]int, 0, t.depth[i]+1)
	for ; i != NoParent; i = t.parent[i] {
		path = append(path, i)
	}

	return path, nil
}

// Walk visits every node reachable from a root in pre-order (roots
// ascending, children ascending), passing its depth. An error from fn stops
// the walk and is returned wrapped.
func (t *Tree) Walk(fn func(index, depth int) error) error {
	type frame struct{ index, depth int }
	stack := make([]frame, 0, len(t.parent))
	for r := len(t.roots) - 1; r >= 0; r-- {
		stack = append(stack, frame{t.roots[r], 0})
	}

	var f frame
	for len(stack) > 0 {
		f, stack = stack[len(stack)-1], stack[:len(stack)-1]
		if err := fn(f.index, f.depth); err != nil {
			return fmt.Errorf("sketch: walk at %d: %w", f.index, err)
		}
		kids := t.children[f.index]
		for k := len(kids) - 1; k >= 0; k-- {
			stack = append(stack, frame{kids[k], f.depth + 1})
		}
	}

	return nil
}
