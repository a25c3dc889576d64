package lookup

import (
	"errors"
	"fmt"

	"github.com/hupe1980/recstore/core"
	"github.com/hupe1980/recstore/schema"
)

// ErrKindMismatch is returned when a value of the wrong kind is inserted.
var ErrKindMismatch = errors.New("lookup: value kind mismatch")

// Kind identifies the matching strategy of an index.
type Kind uint8

const (
	// KindExact requires the parsed query to equal the stored value.
	KindExact Kind = iota + 1
	// KindSubstring matches stored text containing the query.
	KindSubstring
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindSubstring:
		return "substring"
	default:
		return "unknown"
	}
}

// ColumnIndex indexes the values of one column.
type ColumnIndex interface {
	// Insert adds id under value v.
	Insert(id core.ID, v schema.Value) error
	// ForEachMatch calls visit for every id whose value matches query.
	ForEachMatch(query string, visit func(core.ID)) error
	// Kind reports the matching strategy.
	Kind() Kind
	// Stats returns index statistics.
	Stats() Stats
}

// Stats describes an index.
type Stats struct {
	Kind        Kind
	Entries     int    // Insert calls
	Keys        int    // Distinct keys (values for exact, trie nodes for substring)
	MemoryBytes uint64 // Estimated heap usage
}

// ForColumn returns a new index suited to columns of type t.
func ForColumn(t schema.Type) (ColumnIndex, error) {
	switch t {
	case schema.TypeInt:
		return NewInt(), nil
	case schema.TypeUint:
		return NewUint(), nil
	case schema.TypeString:
		return NewSubstring(), nil
	default:
		return nil, fmt.Errorf("lookup: no index for column type %s", t)
	}
}

func kindMismatch(want schema.Kind, got schema.Value) error {
	return fmt.Errorf("%w: expected %s, got %s", ErrKindMismatch, want, got.Kind)
}

var (
	_ ColumnIndex = (*Exact[int64])(nil)
	_ ColumnIndex = (*Exact[uint32])(nil)
	_ ColumnIndex = (*Substring)(nil)
)
