// Package lookup provides per-column indexes for a record collection.
//
// A ColumnIndex maps column values to record identifiers and answers a
// textual query by visiting every matching identifier. There are two
// variants, chosen by column type through ForColumn:
//
//   - Exact: hash map from value to a Roaring Bitmap of ids. The query text
//     is parsed into the column type; a malformed query fails the whole
//     lookup with a conv.ErrParse error.
//   - Substring: suffix trie over text values. Any id whose value contains
//     the query text is visited; no parsing is involved.
//
// Indexes store identifiers only, never copies of the values. They are not
// safe for concurrent mutation.
package lookup
