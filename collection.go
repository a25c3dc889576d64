package recstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/recstore/codec"
	"github.com/hupe1980/recstore/core"
	"github.com/hupe1980/recstore/internal/conv"
	"github.com/hupe1980/recstore/lookup"
	"github.com/hupe1980/recstore/schema"
	"golang.org/x/sync/errgroup"
)

// Collection is an in-memory record store with one index per column.
//
// Architecture:
//   - Primary storage: map[core.ID]schema.Record (non-key values by key)
//   - Column indexes: one lookup.ColumnIndex per non-key column, in schema order
//
// Indexes hold identifiers only; every match is resolved through the primary
// map. Records can be inserted but never updated or removed.
//
// A Collection allows one writer at a time and any number of concurrent
// readers.
type Collection struct {
	mu sync.RWMutex

	schema *schema.Schema

	// rows holds the non-key values of every record, keyed by the unique id.
	rows map[core.ID]schema.Record

	// indexes[col] is the index of schema column col; nil for the key column.
	indexes []lookup.ColumnIndex

	logger        *Logger
	metrics       MetricsCollector
	codec         codec.Codec
	strictColumns bool
}

// New creates an empty collection for s.
func New(s *schema.Schema, optFns ...Option) (*Collection, error) {
	if s == nil {
		return nil, fmt.Errorf("recstore: nil schema")
	}

	o := applyOptions(optFns)
	if err := o.resolveCodec(); err != nil {
		return nil, err
	}

	c := &Collection{
		schema:        s,
		rows:          make(map[core.ID]schema.Record),
		indexes:       make([]lookup.ColumnIndex, s.Len()),
		logger:        o.logger,
		metrics:       o.metricsCollector,
		codec:         o.codec,
		strictColumns: o.strictColumns,
	}

	for col := range s.Len() {
		if col == s.KeyColumn() {
			continue
		}
		idx, err := lookup.ForColumn(s.Column(col).Type)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", s.Column(col).Name, err)
		}
		c.indexes[col] = idx
	}

	return c, nil
}

// Schema returns the schema the collection was created with.
func (c *Collection) Schema() *schema.Schema { return c.schema }

// Len returns the number of records.
func (c *Collection) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.rows)
}

// Insert adds rec to the collection.
//
// It returns false, leaving the collection unchanged, if a record with the
// same key already exists. A record that does not conform to the schema is
// rejected with ErrInvalidRecord.
func (c *Collection) Insert(rec schema.Record) (bool, error) {
	start := time.Now()

	inserted, id, err := c.insert(rec)

	c.metrics.RecordInsert(time.Since(start), inserted, err)
	c.logger.LogInsert(context.Background(), uint32(id), inserted, err)

	return inserted, err
}

func (c *Collection) insert(rec schema.Record) (bool, core.ID, error) {
	if err := c.schema.Validate(rec); err != nil {
		return false, 0, invalidRecord(err)
	}
	id := c.schema.Key(rec)

	c.mu.Lock()
	defer c.mu.Unlock()

	// The duplicate check must precede any mutation.
	if _, exists := c.rows[id]; exists {
		return false, id, nil
	}

	row := c.schema.Strip(rec)
	c.rows[id] = row
	for col, idx := range c.indexes {
		if idx == nil {
			continue
		}
		c.mustIndex(idx, id, row[c.schema.RowPos(col)])
	}

	return true, id, nil
}

// InsertBatch inserts recs and returns how many were stored.
//
// All records are validated before anything is stored; one invalid record
// rejects the whole batch. Records whose key already exists, in the
// collection or earlier in the batch, are skipped. Column indexes are
// populated concurrently, one goroutine per column.
func (c *Collection) InsertBatch(ctx context.Context, recs []schema.Record) (int, error) {
	start := time.Now()

	inserted, err := c.insertBatch(ctx, recs)

	c.metrics.RecordBatchInsert(len(recs), inserted, time.Since(start), err)
	c.logger.LogBatchInsert(ctx, len(recs), inserted, err)

	return inserted, err
}

func (c *Collection) insertBatch(ctx context.Context, recs []schema.Record) (int, error) {
	for i, rec := range recs {
		if err := c.schema.Validate(rec); err != nil {
			return 0, fmt.Errorf("record %d: %w", i, invalidRecord(err))
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return 0, err
	}

	type entry struct {
		id  core.ID
		row schema.Record
	}

	fresh := make([]entry, 0, len(recs))
	for _, rec := range recs {
		id := c.schema.Key(rec)
		if _, exists := c.rows[id]; exists {
			continue
		}
		row := c.schema.Strip(rec)
		c.rows[id] = row
		fresh = append(fresh, entry{id: id, row: row})
	}

	// Each goroutine owns exactly one column index.
	var g errgroup.Group
	for col, idx := range c.indexes {
		if idx == nil {
			continue
		}
		pos := c.schema.RowPos(col)
		g.Go(func() error {
			for _, e := range fresh {
				if err := idx.Insert(e.id, e.row[pos]); err != nil {
					return err
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		panic(fmt.Sprintf("recstore: index rejected validated value: %v", err))
	}

	return len(fresh), nil
}

// mustIndex inserts a validated value. Validation guarantees the kind, so
// an error here means the primary map and the indexes have diverged.
func (c *Collection) mustIndex(idx lookup.ColumnIndex, id core.ID, v schema.Value) {
	if err := idx.Insert(id, v); err != nil {
		panic(fmt.Sprintf("recstore: index rejected validated value: %v", err))
	}
}

// Get returns the record stored under id.
func (c *Collection) Get(id core.ID) (schema.Record, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	row, ok := c.rows[id]
	if !ok {
		return nil, false
	}
	return c.schema.Assemble(id, row), true
}

// FindMatchingRecords returns every record whose value in column matches.
//
// The key column and integer columns match exactly; match must parse as the
// column type, otherwise the query fails with an error matching ErrParse.
// Text columns match every record whose value contains match as a substring.
// Each record is returned at most once; the order is unspecified.
//
// An unknown column yields an empty result, or ErrUnknownColumn if the
// collection was created WithStrictColumns.
func (c *Collection) FindMatchingRecords(column, match string) ([]schema.Record, error) {
	start := time.Now()

	col, known := c.schema.Lookup(column)

	var (
		results []schema.Record
		err     error
		label   = column
	)
	switch {
	case known:
		results, err = c.find(col, match)
	case c.strictColumns:
		label, err = UnknownColumnLabel, unknownColumn(column)
	default:
		label = UnknownColumnLabel
		c.logger.LogUnknownColumn(context.Background(), column)
	}

	c.metrics.RecordQuery(label, len(results), time.Since(start), err)
	c.logger.LogQuery(context.Background(), column, match, len(results), err)

	return results, err
}

func (c *Collection) find(col int, match string) ([]schema.Record, error) {
	column := c.schema.Column(col).Name

	c.mu.RLock()
	defer c.mu.RUnlock()

	if col == c.schema.KeyColumn() {
		id, err := conv.ParseID(match)
		if err != nil {
			return nil, err
		}
		row, ok := c.rows[id]
		if !ok {
			return nil, nil
		}
		return []schema.Record{c.schema.Assemble(id, row)}, nil
	}

	var (
		results []schema.Record
		seen    = roaring.New()
	)
	err := c.indexes[col].ForEachMatch(match, func(id core.ID) {
		if !seen.CheckedAdd(uint32(id)) {
			return
		}
		row, ok := c.rows[id]
		if !ok {
			panic(fmt.Sprintf("recstore: id %d indexed in column %q but not stored", id, column))
		}
		results = append(results, c.schema.Assemble(id, row))
	})
	if err != nil {
		return nil, err
	}

	return results, nil
}

// Stats returns statistics about the collection.
type Stats struct {
	Records int
	Columns []ColumnStats
}

// ColumnStats describes the index of one non-key column.
type ColumnStats struct {
	Name string
	lookup.Stats
}

// Stats returns statistics about the collection and its indexes.
func (c *Collection) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Stats{Records: len(c.rows)}
	for col, idx := range c.indexes {
		if idx == nil {
			continue
		}
		s.Columns = append(s.Columns, ColumnStats{
			Name:  c.schema.Column(col).Name,
			Stats: idx.Stats(),
		})
	}
	return s
}
