package testutil

import (
	"strings"

	"github.com/hupe1980/recstore/internal/conv"
	"github.com/hupe1980/recstore/schema"
)

// Baseline is a linear-scan record store used as ground truth.
// Every query walks all records; it keeps insertion order.
type Baseline struct {
	schema  *schema.Schema
	records []schema.Record
	ids     map[uint32]struct{}
}

// NewBaseline creates an empty Baseline for s.
func NewBaseline(s *schema.Schema) *Baseline {
	return &Baseline{
		schema: s,
		ids:    make(map[uint32]struct{}),
	}
}

// Insert appends rec unless its key is already present.
func (b *Baseline) Insert(rec schema.Record) bool {
	id := uint32(b.schema.Key(rec))
	if _, ok := b.ids[id]; ok {
		return false
	}
	b.ids[id] = struct{}{}
	b.records = append(b.records, rec.Clone())
	return true
}

// Len returns the number of records.
func (b *Baseline) Len() int { return len(b.records) }

// FindMatchingRecords scans every record. Unknown columns match nothing;
// numeric columns parse match exactly like the indexed store does.
func (b *Baseline) FindMatchingRecords(column, match string) ([]schema.Record, error) {
	col, ok := b.schema.Lookup(column)
	if !ok {
		return nil, nil
	}

	var pred func(schema.Value) bool
	switch b.schema.Column(col).Type {
	case schema.TypeUint:
		want, err := conv.ParseUint(match)
		if err != nil {
			return nil, err
		}
		pred = func(v schema.Value) bool { return v.U32 == want }
	case schema.TypeInt:
		want, err := conv.ParseInt(match)
		if err != nil {
			return nil, err
		}
		pred = func(v schema.Value) bool { return v.I64 == want }
	default:
		pred = func(v schema.Value) bool {
			s, _ := v.AsString()
			return strings.Contains(s, match)
		}
	}

	var out []schema.Record
	for _, rec := range b.records {
		if pred(rec[col]) {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}
