package conv

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/hupe1980/recstore/core"
)

// ErrParse is matched by every error returned from the Parse functions.
var ErrParse = errors.New("parse failure")

// ParseError describes query text that could not be converted to the
// requested type.
//
// The underlying strconv error (if any) can be accessed via errors.Unwrap.
type ParseError struct {
	Input string
	Type  string
	cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %q as %s", e.Input, e.Type)
}

func (e *ParseError) Unwrap() error { return e.cause }

// Is reports whether target is ErrParse.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// ParseID parses s as a record identifier (unsigned 32-bit, base 10).
func ParseID(s string) (core.ID, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, &ParseError{Input: s, Type: "id", cause: err}
	}
	return core.ID(v), nil
}

// ParseInt parses s as a signed 64-bit integer (base 10).
func ParseInt(s string) (int64, error) {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, &ParseError{Input: s, Type: "int", cause: err}
	}
	return v, nil
}

// ParseUint parses s as an unsigned 32-bit integer (base 10).
func ParseUint(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, &ParseError{Input: s, Type: "uint", cause: err}
	}
	return uint32(v), nil
}
