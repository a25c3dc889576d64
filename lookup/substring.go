package lookup

import (
	"github.com/hupe1980/recstore/core"
	"github.com/hupe1980/recstore/schema"
	"github.com/hupe1980/recstore/trie"
)

// Substring is a substring-match index over text values.
//
// Every suffix of every value is inserted, so a substring query is a prefix
// walk of the trie. An id is visited once per occurrence of the query in
// its value.
type Substring struct {
	trie    *trie.Trie[core.ID]
	entries int
}

// NewSubstring creates an empty substring index.
func NewSubstring() *Substring {
	return &Substring{trie: trie.New[core.ID]()}
}

// Insert implements ColumnIndex.
func (s *Substring) Insert(id core.ID, v schema.Value) error {
	text, ok := v.AsString()
	if !ok {
		return kindMismatch(schema.KindString, v)
	}
	s.trie.InsertAllSuffixes(text, id)
	s.entries++
	return nil
}

// ForEachMatch implements ColumnIndex. It never fails.
func (s *Substring) ForEachMatch(query string, visit func(core.ID)) error {
	s.trie.ForEachPrefixMatch(query, visit)
	return nil
}

// Kind implements ColumnIndex.
func (s *Substring) Kind() Kind { return KindSubstring }

// Stats implements ColumnIndex.
func (s *Substring) Stats() Stats {
	ts := s.trie.Stats()
	return Stats{
		Kind:        KindSubstring,
		Entries:     s.entries,
		Keys:        ts.Nodes,
		MemoryBytes: ts.MemoryBytes,
	}
}
