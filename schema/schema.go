package schema

import (
	"errors"
	"fmt"

	"github.com/hupe1980/recstore/core"
)

// Type defines the data type of a column.
type Type uint8

const (
	TypeUint Type = iota + 1
	TypeInt
	TypeString
)

// String returns the string representation of the Type.
func (t Type) String() string {
	switch t {
	case TypeUint:
		return "Uint"
	case TypeInt:
		return "Int"
	case TypeString:
		return "String"
	default:
		return "Unknown"
	}
}

// Kind returns the value kind stored in columns of this type.
func (t Type) Kind() Kind {
	switch t {
	case TypeUint:
		return KindUint
	case TypeInt:
		return KindInt
	case TypeString:
		return KindString
	default:
		return KindInvalid
	}
}

// Column is a named, typed column.
type Column struct {
	Name string
	Type Type
}

var (
	// ErrNoColumns is returned when a schema declares no columns.
	ErrNoColumns = errors.New("schema: no columns")
	// ErrDuplicateColumn is returned when two columns share a name.
	ErrDuplicateColumn = errors.New("schema: duplicate column name")
	// ErrInvalidKeyColumn is returned when the key column is out of range or not TypeUint.
	ErrInvalidKeyColumn = errors.New("schema: invalid key column")
	// ErrInvalidType is returned for a column with an unknown Type.
	ErrInvalidType = errors.New("schema: invalid column type")
)

// Schema defines the columns of a record and which one is the unique key.
// A Schema is immutable after construction and safe for concurrent use.
type Schema struct {
	columns []Column
	key     int
	byName  map[string]int
}

// New creates a schema with the given key column position.
func New(key int, columns ...Column) (*Schema, error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	if key < 0 || key >= len(columns) {
		return nil, fmt.Errorf("%w: position %d of %d columns", ErrInvalidKeyColumn, key, len(columns))
	}
	if columns[key].Type != TypeUint {
		return nil, fmt.Errorf("%w: %q has type %s, expected %s", ErrInvalidKeyColumn, columns[key].Name, columns[key].Type, TypeUint)
	}

	s := &Schema{
		columns: make([]Column, len(columns)),
		key:     key,
		byName:  make(map[string]int, len(columns)),
	}
	copy(s.columns, columns)

	for i, c := range columns {
		if c.Type.Kind() == KindInvalid {
			return nil, fmt.Errorf("%w: column %q", ErrInvalidType, c.Name)
		}
		if _, dup := s.byName[c.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateColumn, c.Name)
		}
		s.byName[c.Name] = i
	}

	return s, nil
}

// MustNew is like New but panics on error. Intended for static schemas.
func MustNew(key int, columns ...Column) *Schema {
	s, err := New(key, columns...)
	if err != nil {
		panic(err)
	}
	return s
}

var defaultSchema = MustNew(0,
	Column{Name: "column0", Type: TypeUint},
	Column{Name: "column1", Type: TypeString},
	Column{Name: "column2", Type: TypeInt},
	Column{Name: "column3", Type: TypeString},
)

// Default returns the four-column schema: a unique key followed by
// text, integer and text columns.
func Default() *Schema { return defaultSchema }

// Len returns the number of columns.
func (s *Schema) Len() int { return len(s.columns) }

// Column returns the i-th column.
func (s *Schema) Column(i int) Column { return s.columns[i] }

// Columns returns a copy of the column list.
func (s *Schema) Columns() []Column {
	out := make([]Column, len(s.columns))
	copy(out, s.columns)
	return out
}

// KeyColumn returns the position of the unique key column.
func (s *Schema) KeyColumn() int { return s.key }

// Lookup resolves a column name (exact match) to its position.
func (s *Schema) Lookup(name string) (int, bool) {
	i, ok := s.byName[name]
	return i, ok
}

// Validate checks that rec has one value per column with the column's kind.
func (s *Schema) Validate(rec Record) error {
	if len(rec) != len(s.columns) {
		return fmt.Errorf("record has %d values, schema has %d columns", len(rec), len(s.columns))
	}
	for i, c := range s.columns {
		if rec[i].Kind != c.Type.Kind() {
			return fmt.Errorf("column %q has invalid kind %s, expected %s", c.Name, rec[i].Kind, c.Type.Kind())
		}
		if !rec[i].Valid() {
			return fmt.Errorf("column %q has a %s value without payload", c.Name, rec[i].Kind)
		}
	}
	return nil
}

// Key returns the unique key of a validated record.
func (s *Schema) Key(rec Record) core.ID {
	return core.ID(rec[s.key].U32)
}

// RowPos maps a non-key column position to its position in a stored row.
func (s *Schema) RowPos(col int) int {
	if col > s.key {
		return col - 1
	}
	return col
}

// Strip returns the non-key values of a validated record (the stored row).
func (s *Schema) Strip(rec Record) Record {
	row := make(Record, 0, len(rec)-1)
	row = append(row, rec[:s.key]...)
	return append(row, rec[s.key+1:]...)
}

// Assemble rebuilds a full record from a key and a stored row.
func (s *Schema) Assemble(id core.ID, row Record) Record {
	rec := make(Record, 0, len(row)+1)
	rec = append(rec, row[:s.key]...)
	rec = append(rec, Uint(uint32(id)))
	return append(rec, row[s.key:]...)
}
