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

// Package block frames one self-describing columnar block: a column count,
// a row count, one (name, type, prefix, kind tree, payload) tuple per
// column, and
// nothing else — exactly the unit the streaming front end in package
// stream pulls apart one chunk at a time.
package block

import (
	"fmt"
	"io"

	"github.com/launix-de/chwire/buffer"
	"github.com/launix-de/chwire/codec"
	"github.com/launix-de/chwire/column"
)

// Field names and types a single column of a Block.
type Field struct {
	Name string
	Type string
}

// Block is one decoded columnar block: parallel Fields/Columns of equal
// length Rows.
type Block struct {
	Fields  []Field
	Columns []column.Column
	Rows    int
}

// endMarker is the (numColumns=0, numRows=0) sentinel a multi-block
// stream writes after its last real block, so DecodeAll knows where the
// stream ends without needing an outer length prefix.
const endMarker = 0

// EncodeBlock serializes schema/cols/rows as one Native block: a varint
// column count, a varint row count, then per column its name, type
// string, optional prefix, kind tree, and payload. Every kind node is
// written as Dense, so the payload is always dense.
func EncodeBlock(schema []Field, cols []column.Column, rows int) ([]byte, error) {
	if len(schema) != len(cols) {
		return nil, fmt.Errorf("%w: %d fields but %d columns", codec.ErrLengthMismatch, len(schema), len(cols))
	}
	w := buffer.NewWriter(rows * len(schema) * 8)
	w.WriteVarint(uint64(len(schema)))
	w.WriteVarint(uint64(rows))
	for i, f := range schema {
		if cols[i].Length() != rows {
			return nil, fmt.Errorf("%w: column %q has %d rows, block declares %d", codec.ErrLengthMismatch, f.Name, cols[i].Length(), rows)
		}
		c, err := codec.GetCodec(f.Type)
		if err != nil {
			return nil, err
		}
		w.WriteString(f.Name)
		w.WriteString(f.Type)
		if p, ok := c.(codec.Prefixed); ok {
			if err := p.WritePrefix(w, cols[i]); err != nil {
				return nil, err
			}
		}
		if kt, ok := c.(codec.KindTree); ok {
			kt.WriteKinds(w)
		}
		payload, err := c.Encode(cols[i], c.EstimateSize(rows))
		if err != nil {
			return nil, err
		}
		w.WriteBytes(payload)
	}
	return w.Bytes(), nil
}

// DecodeBlock reads exactly one block from r. Returns io.EOF (wrapping
// nothing) when r's next varint is the end-of-stream marker rather than
// a column count. opts.MapAsArray controls how any Map column in the
// block's schema materializes.
func DecodeBlock(r *buffer.Reader, opts Options) (Block, error) {
	numColumns, err := r.ReadVarInt()
	if err != nil {
		return Block{}, err
	}
	rowsU, err := r.ReadVarInt()
	if err != nil {
		return Block{}, err
	}
	if numColumns == endMarker && rowsU == endMarker {
		return Block{}, io.EOF
	}
	rows := int(rowsU)
	fields := make([]Field, numColumns)
	cols := make([]column.Column, numColumns)
	for i := range fields {
		name, err := r.ReadString()
		if err != nil {
			return Block{}, err
		}
		typeString, err := r.ReadString()
		if err != nil {
			return Block{}, err
		}
		var c codec.Codec
		if opts.MapAsArray {
			c, err = codec.GetCodecMapAsArray(typeString)
		} else {
			c, err = codec.GetCodec(typeString)
		}
		if err != nil {
			return Block{}, err
		}
		var prefix codec.PrefixState
		if p, ok := c.(codec.Prefixed); ok {
			prefix, err = p.ReadPrefix(r)
			if err != nil {
				return Block{}, err
			}
		}
		var kind *codec.KindNode
		if kt, ok := c.(codec.KindTree); ok {
			kind, err = kt.ReadKinds(r)
			if err != nil {
				return Block{}, err
			}
		}
		col, err := codec.Decode(c, r, rows, prefix, kind)
		if err != nil {
			return Block{}, err
		}
		fields[i] = Field{Name: name, Type: typeString}
		cols[i] = col
	}
	return Block{Fields: fields, Columns: cols, Rows: rows}, nil
}

// WriteEndMarker appends the (0,0) sentinel DecodeBlock/DecodeAll use to
// recognize the end of a multi-block stream.
func WriteEndMarker(w *buffer.Writer) {
	w.WriteVarint(endMarker)
	w.WriteVarint(endMarker)
}

// Options configures decode-side behavior shared by DecodeAll and the
// streaming front end in package stream.
type Options struct {
	// MapAsArray makes Map columns materialize as []column.KV instead of
	// map[any]any, preserving duplicate keys and insertion order.
	MapAsArray bool
}

// DecodeAll reads every block from r until the end marker (or r's
// natural EOF) and merges them into a single Block by concatenating each
// field's column rows in arrival order. All blocks must share an
// identical schema; schema drift is reported as ErrLengthMismatch.
func DecodeAll(r io.Reader, opts Options) (Block, error) {
	buf, err := io.ReadAll(r)
	if err != nil {
		return Block{}, err
	}
	reader := buffer.NewReader(buf)
	var fields []Field
	var perField [][]column.Column
	rows := 0
	for {
		b, err := DecodeBlock(reader, opts)
		if err == io.EOF {
			break
		}
		if err != nil {
			if reader.Len() == 0 {
				break
			}
			return Block{}, err
		}
		if fields == nil {
			fields = b.Fields
			perField = make([][]column.Column, len(b.Fields))
		} else if len(fields) != len(b.Fields) {
			return Block{}, codec.ErrLengthMismatch
		} else {
			for i := range fields {
				if fields[i] != b.Fields[i] {
					return Block{}, codec.ErrLengthMismatch
				}
			}
		}
		for i, c := range b.Columns {
			perField[i] = append(perField[i], c)
		}
		rows += b.Rows
	}
	cols := make([]column.Column, len(fields))
	for i, parts := range perField {
		if len(parts) == 1 {
			cols[i] = parts[0]
			continue
		}
		cols[i] = column.NewConcat(parts)
	}
	return Block{Fields: fields, Columns: cols, Rows: rows}, nil
}
