// Package schema describes the records stored by a recstore collection.
//
// A Schema is an ordered list of typed columns, one of which is the unique
// key. Records are tuples of Values in schema column order:
//
//	s := schema.Default() // column0 (key), column1 (text), column2 (int), column3 (text)
//	rec := schema.Record{
//	    schema.Uint(0),
//	    schema.String("hello"),
//	    schema.Int(5),
//	    schema.String("abc"),
//	}
//	if err := s.Validate(rec); err != nil {
//	    // wrong arity or kind
//	}
//
// # Column Types
//
//   - TypeUint: unsigned 32-bit integer; the key column must use it
//   - TypeInt: signed 64-bit integer, exact-match indexed
//   - TypeString: text, substring indexed
//
// String values are interned, so repeated text is stored once no matter how
// many records carry it.
package schema
