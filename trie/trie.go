package trie

import (
	"iter"
	"unsafe"

	"github.com/hupe1980/recstore/internal/conv"
)

// Trie maps byte strings to values of type V.
//
// V is intended to be small and of constant size (an identifier or pointer):
// space is proportional to the total length of all inserted keys times
// sizeof(V).
type Trie[V any] struct {
	nodes []node[V]
	size  int
}

// New creates an empty trie.
func New[V any]() *Trie[V] {
	t := &Trie[V]{}
	t.Reset()
	return t
}

// Reset drops every node and value, leaving an empty trie.
// The old arena is released as a unit; no per-node teardown is needed.
func (t *Trie[V]) Reset() {
	t.nodes = make([]node[V], 1, 64)
	t.size = 0
}

// Len returns the number of stored values.
func (t *Trie[V]) Len() int { return t.size }

// NodeCount returns the number of nodes, including the root.
func (t *Trie[V]) NodeCount() int { return len(t.nodes) }

// Insert stores v under key. Repeated inserts accumulate.
func (t *Trie[V]) Insert(key string, v V) {
	id := t.findOrCreate(key)
	n := &t.nodes[id]
	n.values = append(n.values, v)
	t.size++
}

// InsertAllSuffixes stores v under every non-empty suffix of key,
// including key itself.
func (t *Trie[V]) InsertAllSuffixes(key string, v V) {
	for i := range len(key) {
		t.Insert(key[i:], v)
	}
}

// ForEachExact calls visit for each value stored under exactly key.
func (t *Trie[V]) ForEachExact(key string, visit func(V)) {
	id, ok := t.find(key)
	if !ok {
		return
	}
	for _, v := range t.nodes[id].values {
		visit(v)
	}
}

// ForEachPrefixMatch calls visit for each value whose key starts with prefix.
// Values are visited in pre-order; no ordering is guaranteed.
//
// When every suffix of a string was inserted, this visits the values of all
// strings containing prefix as a substring.
func (t *Trie[V]) ForEachPrefixMatch(prefix string, visit func(V)) {
	for v := range t.PrefixMatches(prefix) {
		visit(v)
	}
}

// PrefixMatches returns an iterator over the values whose key starts with
// prefix. Stopping the iteration early skips the rest of the subtree.
func (t *Trie[V]) PrefixMatches(prefix string) iter.Seq[V] {
	return func(yield func(V) bool) {
		start, ok := t.find(prefix)
		if !ok {
			return
		}

		stack := []nodeID{start}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			n := &t.nodes[id]
			for _, v := range n.values {
				if !yield(v) {
					return
				}
			}
			stack = append(stack, n.children...)
		}
	}
}

// Walk calls fn with each key under prefix and one of its values, in byte
// order of the keys. A key holding several values is reported once per
// value. Returning false from fn stops the walk.
func (t *Trie[V]) Walk(prefix string, fn func(key string, v V) bool) {
	start, ok := t.find(prefix)
	if !ok {
		return
	}

	type frame struct {
		id    nodeID
		depth int
		label byte
	}

	key := []byte(prefix)
	base := len(key)
	stack := []frame{{id: start}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.depth == 0 {
			key = key[:base]
		} else {
			key = append(key[:base+f.depth-1], f.label)
		}

		n := &t.nodes[f.id]
		if len(n.values) > 0 {
			k := string(key)
			for _, v := range n.values {
				if !fn(k, v) {
					return
				}
			}
		}

		// Push in reverse so the smallest byte is popped first.
		mark := len(stack)
		n.forEachBranch(func(b byte, child nodeID) {
			stack = append(stack, frame{id: child, depth: f.depth + 1, label: b})
		})
		for i, j := mark, len(stack)-1; i < j; i, j = i+1, j-1 {
			stack[i], stack[j] = stack[j], stack[i]
		}
	}
}

// Stats describes the shape and approximate footprint of a trie.
type Stats struct {
	Nodes       int    // Nodes including the root
	Values      int    // Stored values
	Edges       int    // Parent-child links
	MaxFanout   int    // Largest number of children of a single node
	MemoryBytes uint64 // Estimated heap usage
}

// Stats returns statistics about the trie.
func (t *Trie[V]) Stats() Stats {
	var zero V
	valueSize := uint64(unsafe.Sizeof(zero))

	s := Stats{
		Nodes:       len(t.nodes),
		Values:      t.size,
		MemoryBytes: uint64(cap(t.nodes)) * uint64(unsafe.Sizeof(node[V]{})),
	}
	for i := range t.nodes {
		n := &t.nodes[i]
		s.Edges += len(n.children)
		s.MaxFanout = max(s.MaxFanout, len(n.children))
		s.MemoryBytes += uint64(cap(n.children))*uint64(unsafe.Sizeof(nodeID(0))) +
			uint64(cap(n.values))*valueSize +
			uint64((n.branches.Len()+63)/64)*8
	}
	return s
}

func (t *Trie[V]) find(key string) (nodeID, bool) {
	id := rootID
	for i := 0; i < len(key); i++ {
		next, ok := t.nodes[id].child(key[i])
		if !ok {
			return 0, false
		}
		id = next
	}
	return id, true
}

func (t *Trie[V]) findOrCreate(key string) nodeID {
	id := rootID
	for i := 0; i < len(key); i++ {
		next, ok := t.nodes[id].child(key[i])
		if !ok {
			next = t.alloc()
			t.nodes[id].addChild(key[i], next)
		}
		id = next
	}
	return id
}

func (t *Trie[V]) alloc() nodeID {
	id, err := conv.IntToUint32(len(t.nodes))
	if err != nil {
		panic("trie: node arena exhausted: " + err.Error())
	}
	t.nodes = append(t.nodes, node[V]{})
	return nodeID(id)
}
