package lookup

import (
	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/recstore/core"
	"github.com/hupe1980/recstore/internal/conv"
	"github.com/hupe1980/recstore/schema"
)

// Exact is an exact-match index over values of type K.
//
// Structure: value -> bitmap of ids. Roaring Bitmaps keep the posting lists
// compressed and iterate in ascending id order.
type Exact[K comparable] struct {
	postings map[K]*roaring.Bitmap
	entries  int
	kind     schema.Kind
	extract  func(schema.Value) (K, bool)
	parse    func(string) (K, error)
}

// NewExact creates an exact-match index. extract reads K out of a stored
// value and parse converts query text into K.
func NewExact[K comparable](kind schema.Kind, extract func(schema.Value) (K, bool), parse func(string) (K, error)) *Exact[K] {
	return &Exact[K]{
		postings: make(map[K]*roaring.Bitmap),
		kind:     kind,
		extract:  extract,
		parse:    parse,
	}
}

// NewInt creates an exact-match index for signed integer columns.
func NewInt() *Exact[int64] {
	return NewExact(schema.KindInt, schema.Value.AsInt, conv.ParseInt)
}

// NewUint creates an exact-match index for unsigned integer columns.
func NewUint() *Exact[uint32] {
	return NewExact(schema.KindUint, schema.Value.AsUint, conv.ParseUint)
}

// Insert implements ColumnIndex.
func (e *Exact[K]) Insert(id core.ID, v schema.Value) error {
	key, ok := e.extract(v)
	if !ok {
		return kindMismatch(e.kind, v)
	}
	e.Add(key, id)
	return nil
}

// Add records id under key.
func (e *Exact[K]) Add(key K, id core.ID) {
	bitmap, ok := e.postings[key]
	if !ok {
		bitmap = roaring.New()
		e.postings[key] = bitmap
	}
	bitmap.Add(uint32(id))
	e.entries++
}

// ForEachMatch implements ColumnIndex. The query must parse as K.
func (e *Exact[K]) ForEachMatch(query string, visit func(core.ID)) error {
	key, err := e.parse(query)
	if err != nil {
		return err
	}
	e.ForEach(key, visit)
	return nil
}

// ForEach calls visit for every id stored under key.
func (e *Exact[K]) ForEach(key K, visit func(core.ID)) {
	bitmap, ok := e.postings[key]
	if !ok {
		return
	}
	it := bitmap.Iterator()
	for it.HasNext() {
		visit(core.ID(it.Next()))
	}
}

// Count returns the number of ids stored under key.
func (e *Exact[K]) Count(key K) uint64 {
	if bitmap, ok := e.postings[key]; ok {
		return bitmap.GetCardinality()
	}
	return 0
}

// Kind implements ColumnIndex.
func (e *Exact[K]) Kind() Kind { return KindExact }

// Stats implements ColumnIndex.
func (e *Exact[K]) Stats() Stats {
	s := Stats{
		Kind:    KindExact,
		Entries: e.entries,
		Keys:    len(e.postings),
	}
	for _, bitmap := range e.postings {
		s.MemoryBytes += bitmap.GetSizeInBytes()
	}
	// Conservative estimate for the map itself.
	s.MemoryBytes += uint64(len(e.postings) * 48)
	return s
}
