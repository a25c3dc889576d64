// Package trie provides a byte-wise suffix trie for substring search.
//
// A Trie[V] maps byte strings to values with multimap semantics: the same key
// may be inserted many times and every insert adds a value. Inserting all
// suffixes of a string turns substring search into prefix search:
//
//	t := trie.New[uint32]()
//	t.InsertAllSuffixes("hello", 0)
//	t.InsertAllSuffixes("yellow", 1)
//	t.ForEachPrefixMatch("ello", func(id uint32) { ... }) // 0 and 1
//
// # Layout
//
// Nodes live in a single arena slice and refer to each other by index. Each
// node carries a 256-bit presence bitmap (one bit per byte value) and only
// the occupied children, ordered by byte. A child is addressed by the rank
// of its bit, so a node with two children stores two slots rather than 256.
// Enumeration scans the bitmap words for set bits.
//
// All traversals use an explicit stack, so deep keys cannot overflow the
// goroutine stack. Dropping the arena (Reset) tears the whole trie down at
// once.
//
// # Complexity
//
//   - Insert: O(len(key))
//   - InsertAllSuffixes: O(len(key)^2)
//   - ForEachExact: O(len(key) + matches)
//   - ForEachPrefixMatch: O(len(prefix) + size of the subtree)
//
// A Trie is not safe for concurrent mutation. Concurrent reads are safe when
// no writer is active.
package trie
