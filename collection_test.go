package recstore

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/hupe1980/recstore/lookup"
	"github.com/hupe1980/recstore/schema"
	"github.com/hupe1980/recstore/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func rec(id uint32, c1 string, c2 int64, c3 string) schema.Record {
	return schema.Record{schema.Uint(id), schema.String(c1), schema.Int(c2), schema.String(c3)}
}

func newDefault(t testing.TB, opts ...Option) *Collection {
	t.Helper()

	c, err := New(schema.Default(), opts...)
	require.NoError(t, err)
	return c
}

func ids(recs []schema.Record) []uint32 {
	out := make([]uint32, len(recs))
	for i, r := range recs {
		out[i] = r[0].U32
	}
	slices.Sort(out)
	return out
}

func find(t *testing.T, c *Collection, column, match string) []uint32 {
	t.Helper()

	recs, err := c.FindMatchingRecords(column, match)
	require.NoError(t, err)
	return ids(recs)
}

func TestCollection(t *testing.T) {
	c := newDefault(t)

	for _, r := range []schema.Record{
		rec(1, "hello", 7, "world"),
		rec(2, "yellow", 7, "mellow"),
		rec(3, "jello", -1, "fellow"),
	} {
		ok, err := c.Insert(r)
		require.NoError(t, err)
		require.True(t, ok)
	}

	t.Run("Substring", func(t *testing.T) {
		assert.Equal(t, []uint32{1, 2, 3}, find(t, c, "column1", "ello"))
		assert.Equal(t, []uint32{2}, find(t, c, "column1", "yell"))
		assert.Equal(t, []uint32{2, 3}, find(t, c, "column3", "llow"))
		assert.Empty(t, find(t, c, "column1", "xyz"))
	})

	t.Run("RepeatedSubstringReturnsRecordOnce", func(t *testing.T) {
		// "yellow" contains "l" twice.
		assert.Equal(t, []uint32{1, 2, 3}, find(t, c, "column1", "l"))
	})

	t.Run("EmptyMatchReturnsAll", func(t *testing.T) {
		assert.Equal(t, []uint32{1, 2, 3}, find(t, c, "column3", ""))
	})

	t.Run("Int", func(t *testing.T) {
		assert.Equal(t, []uint32{1, 2}, find(t, c, "column2", "7"))
		assert.Equal(t, []uint32{3}, find(t, c, "column2", "-1"))
		assert.Empty(t, find(t, c, "column2", "8"))
	})

	t.Run("Key", func(t *testing.T) {
		recs, err := c.FindMatchingRecords("column0", "2")
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, rec(2, "yellow", 7, "mellow"), recs[0])

		assert.Empty(t, find(t, c, "column0", "99"))
	})

	t.Run("FullRecordReturned", func(t *testing.T) {
		recs, err := c.FindMatchingRecords("column1", "hel")
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, rec(1, "hello", 7, "world"), recs[0])
	})

	t.Run("Duplicate", func(t *testing.T) {
		ok, err := c.Insert(rec(1, "changed", 0, "changed"))
		require.NoError(t, err)
		assert.False(t, ok)

		assert.Equal(t, 3, c.Len())
		assert.Empty(t, find(t, c, "column1", "changed"))
		assert.Empty(t, find(t, c, "column2", "0"))

		got, ok := c.Get(1)
		require.True(t, ok)
		assert.Equal(t, rec(1, "hello", 7, "world"), got)
	})

	t.Run("UnknownColumn", func(t *testing.T) {
		recs, err := c.FindMatchingRecords("column9", "x")
		require.NoError(t, err)
		assert.Empty(t, recs)
	})

	t.Run("ParseFailure", func(t *testing.T) {
		for _, tc := range []struct{ column, match string }{
			{"column2", "seven"},
			{"column2", ""},
			{"column2", "1.5"},
			{"column0", "-1"},
			{"column0", "4294967296"},
			{"column0", "abc"},
		} {
			_, err := c.FindMatchingRecords(tc.column, tc.match)
			require.ErrorIs(t, err, ErrParse, "%s=%q", tc.column, tc.match)

			var pe *ParseError
			require.ErrorAs(t, err, &pe)
			assert.Equal(t, tc.match, pe.Input)
		}
	})

	t.Run("InvalidRecord", func(t *testing.T) {
		for _, r := range []schema.Record{
			{schema.Uint(9), schema.String("a"), schema.Int(1)},
			{schema.Uint(9), schema.Int(1), schema.Int(1), schema.String("a")},
			{schema.Int(9), schema.String("a"), schema.Int(1), schema.String("a")},
			nil,
		} {
			ok, err := c.Insert(r)
			require.ErrorIs(t, err, ErrInvalidRecord)
			assert.False(t, ok)
		}
		assert.Equal(t, 3, c.Len())
	})

	t.Run("Get", func(t *testing.T) {
		_, ok := c.Get(42)
		assert.False(t, ok)
	})

	t.Run("Stats", func(t *testing.T) {
		s := c.Stats()
		assert.Equal(t, 3, s.Records)
		require.Len(t, s.Columns, 3)

		assert.Equal(t, "column1", s.Columns[0].Name)
		assert.Equal(t, lookup.KindSubstring, s.Columns[0].Kind)
		assert.Equal(t, 3, s.Columns[0].Entries)

		assert.Equal(t, "column2", s.Columns[1].Name)
		assert.Equal(t, lookup.KindExact, s.Columns[1].Kind)
		assert.Equal(t, 2, s.Columns[1].Keys)
	})
}

func TestCollectionExampleScenario(t *testing.T) {
	c := newDefault(t)

	ok, err := c.Insert(rec(1, "alpha", 10, "xyz"))
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = c.Insert(rec(2, "alphabet", 10, "abc"))
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, []uint32{1, 2}, find(t, c, "column1", "lph"))
	assert.Equal(t, []uint32{2}, find(t, c, "column1", "bet"))
	assert.Equal(t, []uint32{1, 2}, find(t, c, "column2", "10"))
	assert.Equal(t, []uint32{2}, find(t, c, "column0", "2"))
	assert.Empty(t, find(t, c, "column3", "q"))

	ok, err = c.Insert(rec(1, "zzz", 0, "zzz"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, find(t, c, "column1", "zzz"))
}

func TestCollectionStrictColumns(t *testing.T) {
	c := newDefault(t, WithStrictColumns())

	_, err := c.FindMatchingRecords("nope", "x")
	require.ErrorIs(t, err, ErrUnknownColumn)

	_, err = c.FindMatchingRecords("column1", "x")
	require.NoError(t, err)
}

func TestCollectionKeyInMiddle(t *testing.T) {
	s := schema.MustNew(1,
		schema.Column{Name: "name", Type: schema.TypeString},
		schema.Column{Name: "id", Type: schema.TypeUint},
		schema.Column{Name: "age", Type: schema.TypeInt},
		schema.Column{Name: "zip", Type: schema.TypeUint},
	)

	c, err := New(s)
	require.NoError(t, err)

	people := []schema.Record{
		{schema.String("ada"), schema.Uint(10), schema.Int(36), schema.Uint(1000)},
		{schema.String("alan"), schema.Uint(20), schema.Int(41), schema.Uint(1000)},
		{schema.String("grace"), schema.Uint(30), schema.Int(36), schema.Uint(2000)},
	}
	for _, p := range people {
		ok, err := c.Insert(p)
		require.NoError(t, err)
		require.True(t, ok)
	}

	byKey := func(column, match string) []uint32 {
		recs, err := c.FindMatchingRecords(column, match)
		require.NoError(t, err)
		out := make([]uint32, len(recs))
		for i, r := range recs {
			out[i] = r[1].U32
		}
		slices.Sort(out)
		return out
	}

	assert.Equal(t, []uint32{10, 20, 30}, byKey("name", "a"))
	assert.Equal(t, []uint32{20}, byKey("name", "lan"))
	assert.Equal(t, []uint32{10, 30}, byKey("age", "36"))
	assert.Equal(t, []uint32{10, 20}, byKey("zip", "1000"))
	assert.Equal(t, []uint32{30}, byKey("id", "30"))

	got, ok := c.Get(20)
	require.True(t, ok)
	assert.Equal(t, people[1], got)

	_, err = c.FindMatchingRecords("zip", "-5")
	require.ErrorIs(t, err, ErrParse)
}

func TestCollectionInsertBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("SkipsDuplicates", func(t *testing.T) {
		c := newDefault(t)

		_, err := c.Insert(rec(1, "first", 1, "first"))
		require.NoError(t, err)

		n, err := c.InsertBatch(ctx, []schema.Record{
			rec(1, "dup", 2, "dup"),
			rec(2, "two", 2, "two"),
			rec(3, "three", 3, "three"),
			rec(2, "dup again", 2, "dup again"),
		})
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		assert.Equal(t, 3, c.Len())

		assert.Empty(t, find(t, c, "column1", "dup"))
		assert.Equal(t, []uint32{2}, find(t, c, "column1", "tw"))
		assert.Equal(t, []uint32{2}, find(t, c, "column2", "2"))
	})

	t.Run("InvalidRejectsWholeBatch", func(t *testing.T) {
		c := newDefault(t)

		n, err := c.InsertBatch(ctx, []schema.Record{
			rec(1, "one", 1, "one"),
			{schema.Uint(2)},
		})
		require.ErrorIs(t, err, ErrInvalidRecord)
		assert.Zero(t, n)
		assert.Zero(t, c.Len())
	})

	t.Run("Canceled", func(t *testing.T) {
		c := newDefault(t)

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := c.InsertBatch(cctx, testutil.Dummy("x", 10))
		require.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, c.Len())
	})

	t.Run("MatchesSingleInserts", func(t *testing.T) {
		rng := testutil.NewRNG(7)
		words := testutil.RandomWords(rng, 50, 5)
		recs := testutil.RandomRecords(rng, words, 500)

		single := newDefault(t)
		for _, r := range recs {
			_, err := single.Insert(r)
			require.NoError(t, err)
		}

		batch := newDefault(t)
		n, err := batch.InsertBatch(ctx, recs)
		require.NoError(t, err)
		assert.Equal(t, len(recs), n)

		for _, w := range words[:10] {
			assert.Equal(t, find(t, single, "column1", w), find(t, batch, "column1", w))
			assert.Equal(t, find(t, single, "column3", w[1:3]), find(t, batch, "column3", w[1:3]))
		}
		assert.Equal(t, single.Stats(), batch.Stats())
	})
}

// TestCollectionMatchesBaseline compares every kind of query against a
// linear scan over the same records.
func TestCollectionMatchesBaseline(t *testing.T) {
	rng := testutil.NewRNG(42)
	words := testutil.RandomWords(rng, 200, 6)
	recs := testutil.RandomRecords(rng, words, 2000)

	c := newDefault(t)
	base := testutil.NewBaseline(schema.Default())
	for _, r := range recs {
		want := base.Insert(r)
		got, err := c.Insert(r)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	require.Equal(t, base.Len(), c.Len())

	check := func(column, match string) {
		want, err := base.FindMatchingRecords(column, match)
		require.NoError(t, err)
		got, err := c.FindMatchingRecords(column, match)
		require.NoError(t, err)
		assert.ElementsMatch(t, want, got, "%s=%q", column, match)
	}

	for range 100 {
		w := words[rng.Intn(len(words))]
		lo := rng.Intn(len(w))
		hi := lo + 1 + rng.Intn(len(w)-lo)

		check("column1", w[lo:hi])
		check("column3", w[lo:hi])
		check("column2", strconv.Itoa(rng.Intn(1000)-500))
		check("column0", strconv.Itoa(rng.Intn(2500)))
	}
	check("column1", "")
	check("column1", words[0]+words[1])
}

func TestCollectionConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	c := newDefault(t)

	_, err := c.InsertBatch(ctx, testutil.Dummy("item", 1000))
	require.NoError(t, err)

	var g errgroup.Group
	for w := range 8 {
		g.Go(func() error {
			for i := range 200 {
				id := (w*200 + i) % 1000
				recs, err := c.FindMatchingRecords("column0", strconv.Itoa(id))
				if err != nil {
					return err
				}
				if len(recs) != 1 {
					return fmt.Errorf("id %d: got %d records", id, len(recs))
				}
				if _, err := c.FindMatchingRecords("column1", "item9"); err != nil {
					return err
				}
			}
			return nil
		})
	}
	g.Go(func() error {
		for i := 1000; i < 1200; i++ {
			if _, err := c.Insert(rec(uint32(i), "late", int64(i), "late")); err != nil {
				return err
			}
		}
		return nil
	})
	require.NoError(t, g.Wait())

	assert.Equal(t, 1200, c.Len())
	assert.Len(t, find(t, c, "column1", "late"), 200)
}

func TestCollectionMetrics(t *testing.T) {
	mc := &BasicMetricsCollector{}
	c := newDefault(t, WithMetricsCollector(mc))

	_, _ = c.Insert(rec(1, "a", 1, "a"))
	_, _ = c.Insert(rec(1, "a", 1, "a"))
	_, _ = c.Insert(schema.Record{})
	_, _ = c.FindMatchingRecords("column1", "a")
	_, _ = c.FindMatchingRecords("column2", "x")
	_, _ = c.InsertBatch(context.Background(), testutil.Dummy("b", 5))

	s := mc.GetStats()
	assert.Equal(t, int64(3), s.InsertCount)
	assert.Equal(t, int64(1), s.InsertDuplicates)
	assert.Equal(t, int64(1), s.InsertErrors)
	assert.Equal(t, int64(2), s.QueryCount)
	assert.Equal(t, int64(1), s.QueryErrors)
	assert.Equal(t, int64(1), s.QueryResults)
	assert.Equal(t, int64(1), s.BatchInsertCount)
	assert.Equal(t, int64(5), s.BatchInsertItems)
	// Dummy id 1 collides with the record inserted above.
	assert.Equal(t, int64(4), s.BatchInsertStored)
	assert.Zero(t, s.BatchInsertErrors)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.InsertBatch(ctx, testutil.Dummy("c", 3))
	require.ErrorIs(t, err, context.Canceled)
	_, err = c.InsertBatch(context.Background(), []schema.Record{{schema.Uint(1)}})
	require.ErrorIs(t, err, ErrInvalidRecord)

	s = mc.GetStats()
	assert.Equal(t, int64(3), s.BatchInsertCount)
	assert.Equal(t, int64(2), s.BatchInsertErrors)
	assert.Equal(t, int64(4), s.BatchInsertStored)
}

// columnRecorder captures the column names reported to a MetricsCollector.
type columnRecorder struct {
	NoopMetricsCollector
	columns []string
}

func (r *columnRecorder) RecordQuery(column string, _ int, _ time.Duration, _ error) {
	r.columns = append(r.columns, column)
}

func TestCollectionMetricsUnknownColumnLabel(t *testing.T) {
	for _, strict := range []bool{false, true} {
		t.Run(fmt.Sprintf("strict=%v", strict), func(t *testing.T) {
			var opts []Option
			if strict {
				opts = append(opts, WithStrictColumns())
			}
			mc := &columnRecorder{}
			c := newDefault(t, append(opts, WithMetricsCollector(mc))...)

			for i := range 50 {
				_, _ = c.FindMatchingRecords(fmt.Sprintf("bogus%d", i), "x")
			}
			_, err := c.FindMatchingRecords("column3", "x")
			require.NoError(t, err)

			assert.Len(t, mc.columns, 51)
			assert.Equal(t, []string{UnknownColumnLabel, "column3"}, slices.Compact(mc.columns))
		})
	}
}

func TestNew(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)

	c, err := New(schema.Default(), nil)
	require.NoError(t, err)
	assert.Same(t, schema.Default(), c.Schema())
	assert.Zero(t, c.Len())
	assert.Zero(t, c.Stats().Records)
}

func TestCollectionHelloYellow(t *testing.T) {
	c := newDefault(t)

	for _, r := range []schema.Record{
		rec(0, "hello", 5, "abc"),
		rec(1, "yellow", 5, "xyz"),
	} {
		ok, err := c.Insert(r)
		require.NoError(t, err)
		require.True(t, ok)
	}

	assert.Equal(t, []uint32{0, 1}, find(t, c, "column1", "ello"))
	assert.Equal(t, []uint32{0, 1}, find(t, c, "column2", "5"))

	recs, err := c.FindMatchingRecords("column0", "1")
	require.NoError(t, err)
	assert.Equal(t, []schema.Record{rec(1, "yellow", 5, "xyz")}, recs)

	assert.Empty(t, find(t, c, "column0", "2"))

	ok, err := c.Insert(rec(0, "other", 9, "q"))
	require.NoError(t, err)
	assert.False(t, ok)

	recs, err = c.FindMatchingRecords("column0", "0")
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "hello", recs[0][1].String())
}

func TestCollectionEveryTextSubstringFindsRecord(t *testing.T) {
	c := newDefault(t)

	const text = "mississippi"
	_, err := c.Insert(rec(5, text, 0, ""))
	require.NoError(t, err)
	_, err = c.Insert(rec(6, "other", 0, ""))
	require.NoError(t, err)

	for i := range len(text) {
		for j := i + 1; j <= len(text); j++ {
			assert.Contains(t, find(t, c, "column1", text[i:j]), uint32(5), text[i:j])
		}
	}

	// Queries are idempotent.
	first := find(t, c, "column1", "ssi")
	assert.Equal(t, first, find(t, c, "column1", "ssi"))
	assert.Equal(t, []uint32{5}, first)
}

func TestCollectionRejectsValueWithoutPayload(t *testing.T) {
	bare := schema.Record{schema.Uint(7), {Kind: schema.KindString}, schema.Int(1), schema.String("x")}

	t.Run("Insert", func(t *testing.T) {
		c := newDefault(t)

		ok, err := c.Insert(bare)
		require.ErrorIs(t, err, ErrInvalidRecord)
		assert.False(t, ok)

		assert.Zero(t, c.Len())
		_, found := c.Get(7)
		assert.False(t, found)
		assert.Empty(t, find(t, c, "column0", "7"))
		assert.Empty(t, find(t, c, "column3", "x"))
		assert.Zero(t, c.Stats().Columns[0].Entries)
	})

	t.Run("InsertBatch", func(t *testing.T) {
		c := newDefault(t)

		n, err := c.InsertBatch(context.Background(), []schema.Record{rec(1, "a", 1, "a"), bare})
		require.ErrorIs(t, err, ErrInvalidRecord)
		assert.Zero(t, n)
		assert.Zero(t, c.Len())
	})
}
