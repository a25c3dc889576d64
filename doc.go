// Package recstore provides an in-memory, multi-column record store with
// per-column lookup indexes.
//
// A Collection holds records that conform to a schema.Schema. One column is
// the unique key; every other column gets an index chosen by its type:
//
//   - integer columns use an exact-match index (value → id bitmap)
//   - text columns use a suffix trie that answers substring queries
//
// # Quick Start
//
//	c, _ := recstore.New(schema.Default())
//
//	c.Insert(schema.Record{
//	    schema.Uint(1),
//	    schema.String("hello"),
//	    schema.Int(7),
//	    schema.String("world"),
//	})
//
//	recs, _ := c.FindMatchingRecords("column1", "ell")   // substring
//	recs, _ = c.FindMatchingRecords("column2", "7")      // exact
//	recs, _ = c.FindMatchingRecords("column0", "1")      // by key
//
// # Query Semantics
//
// The match text of a query on the key column or an integer column must
// parse as that column's type; malformed text fails with an error matching
// ErrParse. A text column matches every record whose value contains the match
// text as a contiguous byte substring, so the empty match returns every
// record. Results contain each record once, in no particular order.
//
// Queries against a column the schema does not declare return no records,
// unless the collection was created WithStrictColumns.
//
// # Bulk Loading
//
// InsertBatch validates a whole batch up front and populates the column
// indexes in parallel. Import reads JSON Lines, one array per record:
//
//	res, err := c.Import(ctx, strings.NewReader(`[1,"hello",7,"world"]`))
//
// # Observability
//
// Structured logging is configured with WithLogger or WithLogLevel and
// operation metrics with WithMetricsCollector. See BasicMetricsCollector for
// an in-process collector and package metric/prometheus for Prometheus.
//
// # Thread Safety
//
// A Collection is safe for concurrent use. Inserts are serialized; queries
// run concurrently with each other.
package recstore
