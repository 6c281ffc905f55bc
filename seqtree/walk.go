// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package seqtree

type step struct {
	n    int
	done bool
}

// Walk performs a depth-first traversal of the visible nodes
// of the tree,
// starting at the root.
// Pre is called when a node is reached,
// before any of its descendants,
// and post is called after all of its descendants are visited.
// Descendants are visited in their stored order.
// Either function can be nil.
func (t *Tree) Walk(pre, post func(n int)) {
	t.WalkFrom(t.Root(), pre, post)
}

// WalkFrom is like Walk
// but starts at an arbitrary node.
func (t *Tree) WalkFrom(n int, pre, post func(n int)) {
	if t.nodes[n].hidden {
		return
	}
	stack := []step{{n: n}}
	for len(stack) > 0 {
		s := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if s.done {
			if post != nil {
				post(s.n)
			}
			continue
		}

		if pre != nil {
			pre(s.n)
		}
		stack = append(stack, step{n: s.n, done: true})
		children := t.nodes[s.n].children
		for i := len(children) - 1; i >= 0; i-- {
			c := children[i]
			if t.nodes[c].hidden {
				continue
			}
			stack = append(stack, step{n: c})
		}
	}
}

// PreOrder visits each visible node before its descendants.
func (t *Tree) PreOrder(fn func(n int)) {
	t.Walk(fn, nil)
}

// PostOrder visits each visible node after its descendants.
func (t *Tree) PostOrder(fn func(n int)) {
	t.Walk(nil, fn)
}

// Leaves visits each visible terminal,
// in the order of the tree.
func (t *Tree) Leaves(fn func(n int)) {
	t.LeavesFrom(t.Root(), fn)
}

// LeavesFrom visits each visible terminal
// of the subtree rooted at the indicated node.
func (t *Tree) LeavesFrom(n int, fn func(n int)) {
	t.WalkFrom(n, func(n int) {
		if t.IsLeaf(n) {
			fn(n)
		}
	}, nil)
}
