// Package codec centralizes JSON decoding for record import.
//
// A Codec turns bytes into Go values. The collection uses one to decode
// JSON Lines input; callers may plug in their own implementation or select
// a built-in one by name.
package codec

import "errors"

// ErrUnknown is returned when a codec name does not match a built-in codec.
var ErrUnknown = errors.New("codec: unknown name")

// Codec decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its stable name.
func ByName(name string) (Codec, bool) {
	switch name {
	case "json":
		return JSON{}, true
	case "go-json":
		return GoJSON{}, true
	default:
		return nil, false
	}
}
