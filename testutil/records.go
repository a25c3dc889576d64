package testutil

import (
	"github.com/hupe1980/recstore/schema"
)

// RandomRecords returns count records for schema.Default() with ids
// 0..count-1 in shuffled order. Text columns hold one to three words;
// the integer column is drawn from [-count/4, count/4] so values repeat.
func RandomRecords(rng *RNG, words []string, count int) []schema.Record {
	limit := int64(count / 4)
	recs := make([]schema.Record, 0, count)
	for _, id := range rng.Perm(count) {
		recs = append(recs, schema.Record{
			schema.Uint(uint32(id)),
			schema.String(RandomText(rng, words, 3)),
			schema.Int(rng.Int63Range(-limit, limit)),
			schema.String(RandomText(rng, words, 3)),
		})
	}
	return recs
}

// Dummy returns count deterministic records for schema.Default():
// (i, prefix+i, i%100, i+prefix).
func Dummy(prefix string, count int) []schema.Record {
	recs := make([]schema.Record, count)
	for i := range recs {
		s := schema.Uint(uint32(i)).String()
		recs[i] = schema.Record{
			schema.Uint(uint32(i)),
			schema.String(prefix + s),
			schema.Int(int64(i % 100)),
			schema.String(s + prefix),
		}
	}
	return recs
}
