/*
Copyright (C) 2026  Carl-Philip Hänsch

	This program is free software: you can redistribute it and/or modify
	it under the terms of the GNU General Public License as published by
	the Free Software Foundation, either version 3 of the License, or
	(at your option) any later version.

	This program is distributed in the hope that it will be useful,
	but WITHOUT ANY WARRANTY; without even the implied warranty of
	MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
	GNU General Public License for more details.

	You should have received a copy of the GNU General Public License
	along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package table is build-mode sugar over package codec/block: turning
// loose row-oriented or column-oriented Go values into a block.Block
// without hand-writing a codec.Builder call per field, the same kind of
// ergonomic layer a table abstraction provides over raw storage columns,
// rewired here around this module's wire codecs.
package table

import (
	"fmt"

	"github.com/launix-de/chwire/block"
	"github.com/launix-de/chwire/codec"
	"github.com/launix-de/chwire/column"
)

// FromRows builds a Block from row-oriented maps, one per row, against
// schema. A row missing a field entirely is treated the same as an
// explicit nil for that field; FromRows never raises ErrLengthMismatch.
// A declared field whose codec rejects a value fails with that codec's
// error, wrapped with the field name.
func FromRows(schema []block.Field, rows []map[string]any) (block.Block, error) {
	cols := make([]column.Column, len(schema))
	for fi, f := range schema {
		c, err := codec.GetCodec(f.Type)
		if err != nil {
			return block.Block{}, err
		}
		values := make([]any, len(rows))
		for ri, row := range rows {
			values[ri] = row[f.Name]
		}
		col, err := c.FromValues(values)
		if err != nil {
			return block.Block{}, fmt.Errorf("table: field %q: %w", f.Name, err)
		}
		cols[fi] = col
	}
	return block.Block{Fields: schema, Columns: cols, Rows: len(rows)}, nil
}

// FromArrays builds a Block from positional rows ([]any per row, in
// schema field order).
func FromArrays(schema []block.Field, rows [][]any) (block.Block, error) {
	cols := make([]column.Column, len(schema))
	for fi, f := range schema {
		c, err := codec.GetCodec(f.Type)
		if err != nil {
			return block.Block{}, err
		}
		values := make([]any, len(rows))
		for ri, row := range rows {
			if fi >= len(row) {
				return block.Block{}, fmt.Errorf("table: row %d has %d values, schema needs %d: %w", ri, len(row), len(schema), codec.ErrLengthMismatch)
			}
			values[ri] = row[fi]
		}
		col, err := c.FromValues(values)
		if err != nil {
			return block.Block{}, fmt.Errorf("table: field %q: %w", f.Name, err)
		}
		cols[fi] = col
	}
	return block.Block{Fields: schema, Columns: cols, Rows: len(rows)}, nil
}

// FromCols assembles a Block directly from already-built Columns,
// validating that every column's length matches rows.
func FromCols(schema []block.Field, cols []column.Column, rows int) (block.Block, error) {
	if len(schema) != len(cols) {
		return block.Block{}, fmt.Errorf("table: %d fields but %d columns: %w", len(schema), len(cols), codec.ErrLengthMismatch)
	}
	for i, c := range cols {
		if c.Length() != rows {
			return block.Block{}, fmt.Errorf("table: field %q has %d rows, table declares %d: %w", schema[i].Name, c.Length(), rows, codec.ErrLengthMismatch)
		}
	}
	return block.Block{Fields: schema, Columns: cols, Rows: rows}, nil
}

// Builder accumulates rows one at a time via per-field codec.Builders,
// for callers that produce rows incrementally rather than having them
// all in a slice up front.
type Builder struct {
	schema   []block.Field
	builders []codec.Builder
	rows     int
}

// NewBuilder constructs a Builder pre-sized for sizeHint rows.
func NewBuilder(schema []block.Field, sizeHint int) (*Builder, error) {
	builders := make([]codec.Builder, len(schema))
	for i, f := range schema {
		c, err := codec.GetCodec(f.Type)
		if err != nil {
			return nil, err
		}
		builders[i] = c.Builder(sizeHint)
	}
	return &Builder{schema: schema, builders: builders}, nil
}

// Append adds one row, positional in schema field order.
func (b *Builder) Append(row []any) error {
	if len(row) != len(b.schema) {
		return fmt.Errorf("table: row has %d values, schema needs %d: %w", len(row), len(b.schema), codec.ErrLengthMismatch)
	}
	for i, v := range row {
		if err := b.builders[i].Append(v); err != nil {
			return fmt.Errorf("table: field %q: %w", b.schema[i].Name, err)
		}
	}
	b.rows++
	return nil
}

// Finish seals every field's builder into a Block.
func (b *Builder) Finish() block.Block {
	cols := make([]column.Column, len(b.builders))
	for i, bld := range b.builders {
		cols[i] = bld.Finish()
	}
	return block.Block{Fields: b.schema, Columns: cols, Rows: b.rows}
}
