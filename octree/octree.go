// Package octree implements a sparse volumetric index over integer 3D space.
// A tree tracks which cells of its bounding region are "on" without ever
// materializing individual cells, so coordinate ranges may span billions of
// cells per axis.
//
// Each node covers a region and is in one of three states: ON (the whole
// region is on, no children), PARTIAL (mixed, the on cells are the union of
// the ON descendants), or OFF (nothing on, represented by the absence of a
// child reference). Add merges uniformly-on subtrees back into single ON
// nodes, Remove splits ON nodes via region difference, so the node count
// stays proportional to the boundary introduced by the operation sequence
// rather than to the covered volume.
package octree

import (
	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/esultanik/reactor/geom"
)

// ErrTypeOutOfBounds is the error type returned when a region added to a tree
// is not contained in the tree's bounding region.
const ErrTypeOutOfBounds = "octree_out_of_bounds"

// Tree is a mutable spatial index over a fixed bounding region. The zero
// value is not usable; use New. Trees are not safe for concurrent use.
type Tree struct {
	root *node
}

// New creates a tree whose bounding region is bounds. Every region later
// passed to Add must be contained in bounds.
func New(bounds geom.Region) *Tree {
	return &Tree{root: newNode(bounds)}
}

// Bounds returns the tree's bounding region.
func (t *Tree) Bounds() geom.Region {
	return t.root.region
}

// Add turns on every cell of r. Adding an empty region is a no-op. Adding a
// region that is not contained in the tree's bounds is a contract violation
// and returns an ErrTypeOutOfBounds error without modifying the tree.
func (t *Tree) Add(r geom.Region) error {
	if r.Empty() {
		return nil
	}
	if !t.root.region.Contains(r) {
		return errors.New("region is not contained in the tree bounds").
			WithType(ErrTypeOutOfBounds).
			WithTag("region", r.String()).
			WithTag("bounds", t.root.region.String())
	}
	t.root.add(r)
	return nil
}

// Remove turns off every cell of r. Removing an empty region, or a region
// that does not intersect anything currently on, is a no-op. Unlike Add, r
// need not be contained in the tree's bounds.
func (t *Tree) Remove(r geom.Region) {
	if r.Empty() {
		return
	}
	t.root.remove(r)
}

// Volume returns the total number of cells currently on. ON regions at any
// two points in the tree are disjoint, so a traversal that never descends
// beneath an ON node counts every cell exactly once.
func (t *Tree) Volume() int64 {
	var total int64
	stack := []*node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.on {
			total += n.region.Volume()
			continue
		}
		for _, c := range n.children {
			if c != nil {
				stack = append(stack, c)
			}
		}
	}
	return total
}

// NodeCount returns the number of allocated nodes, root included. Useful to
// assert that the merge discipline keeps the tree compact.
func (t *Tree) NodeCount() int {
	count := 0
	stack := []*node{t.root}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		count++
		for _, c := range n.children {
			if c != nil {
				stack = append(stack, c)
			}
		}
	}
	return count
}

type node struct {
	region   geom.Region
	on       bool
	children [geom.NumOctants]*node
}

func newNode(region geom.Region) *node {
	nodesCreated.Inc()
	return &node{region: region}
}

// setOn canonicalizes the node to a uniformly-on subtree.
func (n *node) setOn() {
	n.on = true
	n.children = [geom.NumOctants]*node{}
}

// isOff reports whether nothing under the node is on. An OFF node is
// discarded by its parent rather than kept allocated.
func (n *node) isOff() bool {
	if n.on {
		return false
	}
	for _, c := range n.children {
		if c != nil {
			return false
		}
	}
	return true
}

// addFrame is one unit of work on the explicit add stack. Frames with merge
// set form the post-order pass that re-canonicalizes ancestors after their
// children changed; threading them through the stack replaces native
// recursion and its ancestor-chain bookkeeping.
type addFrame struct {
	node   *node
	region geom.Region
	merge  bool
}

// add turns on every cell of r within the node. r must be contained in
// n.region and non-empty.
func (n *node) add(r geom.Region) {
	stack := []addFrame{{node: n, region: r}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.merge {
			f.node.mergeChildren()
			continue
		}

		nd := f.node
		if nd.on {
			// The whole node is already on.
			continue
		}
		if f.region.Equal(nd.region) {
			nd.setOn()
			continue
		}

		// Re-merge once every overlapped octant has been processed.
		stack = append(stack, addFrame{node: nd, merge: true})

		for _, sub := range nd.region.Octants() {
			overlap := f.region.Intersect(sub.Region)
			if overlap.Empty() {
				continue
			}
			child := nd.children[sub.Octant]
			if child == nil {
				child = newNode(sub.Region)
				nd.children[sub.Octant] = child
			}
			stack = append(stack, addFrame{node: child, region: overlap})
		}
	}
}

// mergeChildren collapses the node to ON when its populated children are all
// ON and together cover the node's entire region. Without this, repeated
// adds of large regions would grow the tree without bound.
func (n *node) mergeChildren() {
	if n.on {
		return
	}
	var covered int64
	for _, c := range n.children {
		if c == nil {
			continue
		}
		if !c.on {
			return
		}
		covered += c.region.Volume()
	}
	if covered == n.region.Volume() {
		n.setOn()
		nodeMerges.Inc()
	}
}

// removeFrame is one unit of work on the explicit remove stack. Frames with
// sweep set run after a node's children were processed and drop the ones
// that collapsed to OFF.
type removeFrame struct {
	node   *node
	region geom.Region
	sweep  bool
}

// remove turns off every cell of r within the node. r may extend outside
// n.region; the part outside is ignored.
func (n *node) remove(r geom.Region) {
	stack := []removeFrame{{node: n, region: r}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		nd := f.node
		if f.sweep {
			for i, c := range nd.children {
				if c != nil && c.isOff() {
					nd.children[i] = nil
				}
			}
			continue
		}

		if !f.region.Intersects(nd.region) {
			continue
		}
		if f.region.Contains(nd.region) {
			nd.on = false
			nd.children = [geom.NumOctants]*node{}
			continue
		}

		if nd.on {
			// Partially clearing a uniformly-on node: the node carries no
			// internal structure, so synthesize the retained portion by
			// re-adding the difference pieces.
			nd.on = false
			for _, piece := range nd.region.Difference(f.region) {
				nd.add(piece)
			}
			nodeSplits.Inc()
			continue
		}

		stack = append(stack, removeFrame{node: nd, sweep: true})

		for _, c := range nd.children {
			if c == nil {
				continue
			}
			overlap := f.region.Intersect(c.region)
			if overlap.Empty() {
				continue
			}
			stack = append(stack, removeFrame{node: c, region: overlap})
		}
	}
}
