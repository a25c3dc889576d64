// Package conv converts query text into typed column values.
//
// Every parse failure is reported as a *ParseError that matches ErrParse via
// errors.Is, so callers can tell a malformed query apart from an empty result.
//
// IntToUint32 performs the bounds-checked conversion used when sizing
// 32-bit identifier spaces.
package conv
