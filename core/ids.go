package core

// ID is the unique identifier of a record within a collection.
// It is strictly 32-bit so it can live directly in roaring bitmaps and
// trie value lists.
type ID uint32

// MaxID is the maximum possible value for an ID.
const MaxID = ^ID(0)
