package recstore

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hupe1980/recstore/internal/conv"
	"github.com/hupe1980/recstore/schema"
)

// maxLineSize bounds a single JSON Lines record.
const maxLineSize = 1 << 20

// ImportResult summarizes an Import.
type ImportResult struct {
	// Lines is the number of non-blank lines read.
	Lines int
	// Inserted is the number of records stored.
	Inserted int
	// Skipped is the number of records whose key was already present.
	Skipped int
}

// Import reads JSON Lines from r and inserts one record per line.
//
// Each line is a JSON array with one element per schema column, in schema
// order: integer literals for integer columns and strings for text columns. Blank
// lines are ignored. Import stops at the first malformed line and returns an
// *ErrImport; records read before it remain inserted.
func (c *Collection) Import(ctx context.Context, r io.Reader) (ImportResult, error) {
	res, err := c.importLines(ctx, r)
	c.logger.LogImport(ctx, res, err)
	return res, err
}

func (c *Collection) importLines(ctx context.Context, r io.Reader) (ImportResult, error) {
	var res ImportResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if err := ctx.Err(); err != nil {
			return res, err
		}

		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		res.Lines++

		rec, err := c.decodeRecord(line)
		if err != nil {
			return res, &ErrImport{Line: lineNo, cause: err}
		}

		inserted, err := c.Insert(rec)
		if err != nil {
			return res, &ErrImport{Line: lineNo, cause: err}
		}
		if inserted {
			res.Inserted++
		} else {
			res.Skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("read import: %w", err)
	}

	return res, nil
}

func (c *Collection) decodeRecord(line []byte) (schema.Record, error) {
	var fields []json.RawMessage
	if err := c.codec.Unmarshal(line, &fields); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
	}
	if len(fields) != c.schema.Len() {
		return nil, fmt.Errorf("%w: %d fields, schema has %d columns", ErrInvalidRecord, len(fields), c.schema.Len())
	}

	rec := make(schema.Record, len(fields))
	for i, raw := range fields {
		col := c.schema.Column(i)
		v, err := c.decodeValue(col.Type, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: column %q: %w", ErrInvalidRecord, col.Name, err)
		}
		rec[i] = v
	}
	return rec, nil
}

// decodeValue converts one array element. Numbers are parsed from their
// literal text so fractions, exponents and out-of-range values are rejected
// the same way as query text.
func (c *Collection) decodeValue(t schema.Type, raw json.RawMessage) (schema.Value, error) {
	switch t {
	case schema.TypeUint:
		u, err := conv.ParseUint(string(bytes.TrimSpace(raw)))
		if err != nil {
			return schema.Value{}, err
		}
		return schema.Uint(u), nil
	case schema.TypeInt:
		i, err := conv.ParseInt(string(bytes.TrimSpace(raw)))
		if err != nil {
			return schema.Value{}, err
		}
		return schema.Int(i), nil
	case schema.TypeString:
		var s string
		if err := c.codec.Unmarshal(raw, &s); err != nil {
			return schema.Value{}, err
		}
		return schema.String(s), nil
	default:
		return schema.Value{}, fmt.Errorf("unsupported column type %s", t)
	}
}
