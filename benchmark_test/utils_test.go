package benchmark_test

import (
	"context"
	"testing"

	"github.com/hupe1980/recstore"
	"github.com/hupe1980/recstore/schema"
	"github.com/hupe1980/recstore/testutil"
)

const wordLength = 6

// dataset is a deterministic record set shared by the benchmarks.
type dataset struct {
	words   []string
	records []schema.Record
}

func newDataset(size int) dataset {
	rng := testutil.NewRNG(int64(size))
	words := testutil.RandomWords(rng, 1000, wordLength)
	return dataset{
		words:   words,
		records: testutil.RandomRecords(rng, words, size),
	}
}

// patterns returns n substring queries drawn from the vocabulary.
func (d dataset) patterns(n, length int) []string {
	out := make([]string, n)
	for i := range out {
		w := d.words[(i*7919)%len(d.words)]
		start := i % (wordLength - length + 1)
		out[i] = w[start : start+length]
	}
	return out
}

func loadCollection(b *testing.B, d dataset) *recstore.Collection {
	b.Helper()

	c, err := recstore.New(schema.Default())
	if err != nil {
		b.Fatalf("new collection: %v", err)
	}
	if _, err := c.InsertBatch(context.Background(), d.records); err != nil {
		b.Fatalf("insert batch: %v", err)
	}
	return c
}

func loadBaseline(d dataset) *testutil.Baseline {
	base := testutil.NewBaseline(schema.Default())
	for _, r := range d.records {
		base.Insert(r)
	}
	return base
}
