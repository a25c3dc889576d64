package trie

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// nodeID addresses a node in the arena. The root is always 0.
type nodeID uint32

const rootID nodeID = 0

type node[V any] struct {
	// branches has bit b set iff a child exists for byte b.
	branches bitset.BitSet
	// children holds the occupied child slots ordered by byte value;
	// the slot for byte b is at branches.Rank(b)-1.
	children []nodeID
	// values stored at exactly the path leading to this node.
	values []V
}

// child returns the child for byte b, if present.
func (n *node[V]) child(b byte) (nodeID, bool) {
	if !n.branches.Test(uint(b)) {
		return 0, false
	}
	return n.children[n.branches.Rank(uint(b))-1], true
}

// addChild links id as the child for byte b. The slot must be empty.
func (n *node[V]) addChild(b byte, id nodeID) {
	n.branches.Set(uint(b))
	n.children = slices.Insert(n.children, int(n.branches.Rank(uint(b))-1), id)
}

// forEachBranch calls fn for every occupied slot in byte order.
func (n *node[V]) forEachBranch(fn func(b byte, id nodeID)) {
	k := 0
	for b, ok := n.branches.NextSet(0); ok; b, ok = n.branches.NextSet(b + 1) {
		fn(byte(b), n.children[k])
		k++
	}
}
