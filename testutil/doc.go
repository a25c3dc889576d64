// Package testutil provides testing utilities for recstore.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random source, generators for words and records,
// and a linear-scan Baseline that serves as ground truth for indexed
// queries.
//
// # Random Records
//
//	rng := testutil.NewRNG(seed)
//	words := testutil.RandomWords(rng, 1000, 3)
//	recs := testutil.RandomRecords(rng, words, 10_000)
//
// # Ground Truth
//
//	base := testutil.NewBaseline(schema.Default())
//	for _, r := range recs {
//	    base.Insert(r)
//	}
//	want, _ := base.FindMatchingRecords("column1", "abc")
package testutil
