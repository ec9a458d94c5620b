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

package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/launix-de/chwire/buffer"
	"github.com/launix-de/chwire/column"
)

// EnumCodec stores Enum8('a'=1,'b'=2,...) / Enum16(...) as the signed
// code on the wire, with the name<->code mapping kept alongside for
// FromValues/materialization.
type EnumCodec struct {
	typeString string
	width      int // 1 for Enum8, 2 for Enum16
	nameToCode map[string]int32
	codeToName map[int32]string
}

// NewEnumCodec parses the comma-separated 'name'=code arg list already
// split out of the type string by types.ParseType (Args field).
func NewEnumCodec(typeString string, width int, args []string) (Codec, error) {
	nameToCode := make(map[string]int32, len(args))
	codeToName := make(map[int32]string, len(args))
	for _, a := range args {
		name, code, err := parseEnumMember(a)
		if err != nil {
			return nil, err
		}
		nameToCode[name] = code
		codeToName[code] = name
	}
	return &EnumCodec{typeString: typeString, width: width, nameToCode: nameToCode, codeToName: codeToName}, nil
}

func parseEnumMember(s string) (string, int32, error) {
	s = strings.TrimSpace(s)
	eq := strings.LastIndexByte(s, '=')
	if eq < 0 {
		return "", 0, fmt.Errorf("%w: malformed enum member %q", ErrUnknownType, s)
	}
	name := strings.TrimSpace(s[:eq])
	name = strings.Trim(name, "'")
	code, err := strconv.ParseInt(strings.TrimSpace(s[eq+1:]), 10, 32)
	if err != nil {
		return "", 0, fmt.Errorf("%w: malformed enum code in %q: %v", ErrUnknownType, s, err)
	}
	return name, int32(code), nil
}

func (c *EnumCodec) TypeString() string { return c.typeString }

func (c *EnumCodec) Encode(col column.Column, sizeHint int) ([]byte, error) {
	w := buffer.NewWriter(sizeHint)
	switch sc := col.(type) {
	case *column.Scalar[int8]:
		for _, v := range sc.Values {
			w.WriteU8(uint8(v))
		}
	case *column.Scalar[int16]:
		for _, v := range sc.Values {
			w.WriteU16LE(uint16(v))
		}
	default:
		return nil, ErrWrongValueType
	}
	return w.Bytes(), nil
}

func (c *EnumCodec) DecodeDense(r *buffer.Reader, rows int, _ PrefixState, _ *KindNode) (column.Column, error) {
	if c.width == 1 {
		out := make([]int8, rows)
		for i := 0; i < rows; i++ {
			b, err := r.ReadU8()
			if err != nil {
				return nil, err
			}
			out[i] = int8(b)
		}
		return column.NewScalar(out), nil
	}
	out := make([]int16, rows)
	for i := 0; i < rows; i++ {
		v, err := r.ReadU16LE()
		if err != nil {
			return nil, err
		}
		out[i] = int16(v)
	}
	return column.NewScalar(out), nil
}

func (c *EnumCodec) FromValues(values []any) (column.Column, error) {
	if c.width == 1 {
		out := make([]int8, len(values))
		for i, v := range values {
			code, err := c.toCode(v)
			if err != nil {
				return nil, err
			}
			out[i] = int8(code)
		}
		return column.NewScalar(out), nil
	}
	out := make([]int16, len(values))
	for i, v := range values {
		code, err := c.toCode(v)
		if err != nil {
			return nil, err
		}
		out[i] = int16(code)
	}
	return column.NewScalar(out), nil
}

func (c *EnumCodec) toCode(v any) (int32, error) {
	switch n := v.(type) {
	case string:
		code, ok := c.nameToCode[n]
		if !ok {
			return 0, fmt.Errorf("%w: unknown enum member %q", ErrWrongValueType, n)
		}
		return code, nil
	case int32:
		return n, nil
	case int:
		return int32(n), nil
	case int16:
		return int32(n), nil
	case int8:
		return int32(n), nil
	default:
		return 0, fmt.Errorf("%w: expected enum member name, got %T", ErrWrongValueType, v)
	}
}

// Name looks up the member name for a decoded code, returning false if the
// wire carried a code outside the declared member set.
func (c *EnumCodec) Name(code int32) (string, bool) {
	n, ok := c.codeToName[code]
	return n, ok
}

func (c *EnumCodec) Builder(sizeHint int) Builder {
	return &enumBuilder{codec: c, codes: make([]int32, 0, sizeHint)}
}

func (c *EnumCodec) ZeroValue() any {
	if c.width == 1 {
		return int8(0)
	}
	return int16(0)
}

func (c *EnumCodec) EstimateSize(rows int) int { return rows * c.width }

func (c *EnumCodec) ReadKinds(r *buffer.Reader) (*KindNode, error) { return readLeafKinds(r) }
func (c *EnumCodec) WriteKinds(w *buffer.Writer)                   { writeLeafKinds(w) }

type enumBuilder struct {
	codec *EnumCodec
	codes []int32
}

func (b *enumBuilder) Append(v any) error {
	code, err := b.codec.toCode(v)
	if err != nil {
		return err
	}
	b.codes = append(b.codes, code)
	return nil
}

func (b *enumBuilder) Finish() column.Column {
	if b.codec.width == 1 {
		out := make([]int8, len(b.codes))
		for i, c := range b.codes {
			out[i] = int8(c)
		}
		return column.NewScalar(out)
	}
	out := make([]int16, len(b.codes))
	for i, c := range b.codes {
		out[i] = int16(c)
	}
	return column.NewScalar(out)
}
