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

	"github.com/launix-de/chwire/types"
)

// GetCodec parses typeString via the type grammar and returns its codec
// tree, memoized in the process-wide cache keyed by typeString exactly
// as given. A Nested(...) type is expanded to Array(Tuple(...)) before
// building. Any Map nested anywhere in the tree materializes as
// map[any]any; use GetCodecMapAsArray for []column.KV instead.
func GetCodec(typeString string) (Codec, error) {
	return getCodec(typeString, false)
}

// GetCodecMapAsArray is GetCodec's counterpart for decode paths that want
// every Map column (at any depth) to materialize as []column.KV rather
// than map[any]any, preserving duplicate keys and insertion order. It is
// cached separately from GetCodec so the two materializations never
// collide on the same type string.
func GetCodecMapAsArray(typeString string) (Codec, error) {
	return getCodec(typeString, true)
}

// mapAsArrayCacheSuffix distinguishes the GetCodecMapAsArray cache
// namespace from GetCodec's within the shared process-wide cache, since
// both are keyed off the same canonical type string otherwise.
const mapAsArrayCacheSuffix = "\x00mapAsArray"

func getCodec(typeString string, mapAsArray bool) (Codec, error) {
	cacheKey := typeString
	if mapAsArray {
		cacheKey = typeString + mapAsArrayCacheSuffix
	}
	if c, ok := cacheGet(cacheKey); ok {
		return c, nil
	}
	t, err := types.ParseType(typeString)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownType, err)
	}
	c, err := build(t, mapAsArray)
	if err != nil {
		return nil, err
	}
	cachePut(cacheKey, c)
	return c, nil
}

func build(t *types.Type, mapAsArray bool) (Codec, error) {
	switch t.Name {
	case "UInt8":
		return NewUInt8Codec(), nil
	case "UInt16":
		return NewUInt16Codec(), nil
	case "UInt32":
		return NewUInt32Codec(), nil
	case "UInt64":
		return NewUInt64Codec(), nil
	case "Int8":
		return NewInt8Codec(), nil
	case "Int16":
		return NewInt16Codec(), nil
	case "Int32":
		return NewInt32Codec(), nil
	case "Int64":
		return NewInt64Codec(), nil
	case "Float32":
		return NewFloat32Codec(), nil
	case "Float64":
		return NewFloat64Codec(), nil
	case "Bool":
		return NewBoolCodec(), nil
	case "Date":
		return NewDateCodec(), nil
	case "Date32":
		return NewDate32Codec(), nil
	case "DateTime":
		return NewDateTimeCodec(), nil
	case "DateTime64":
		return NewDateTime64Codec(t.String()), nil
	case "String":
		return NewStringCodec(), nil
	case "FixedString":
		if len(t.Args) != 1 {
			return nil, fmt.Errorf("%w: FixedString requires one argument", ErrUnknownType)
		}
		n, err := strconv.Atoi(strings.TrimSpace(t.Args[0]))
		if err != nil {
			return nil, fmt.Errorf("%w: FixedString(%s)", ErrUnknownType, t.Args[0])
		}
		return NewFixedStringCodec(n), nil
	case "UUID":
		return NewUUIDCodec(), nil
	case "IPv4":
		return NewIPv4Codec(), nil
	case "IPv6":
		return NewIPv6Codec(), nil
	case "Int128":
		return NewInt128Codec(), nil
	case "Int256":
		return NewInt256Codec(), nil
	case "UInt128":
		return NewUInt128Codec(), nil
	case "UInt256":
		return NewUInt256Codec(), nil
	case "Decimal":
		return buildDecimal(t)
	case "Decimal32":
		return buildFixedDecimal(t, 9)
	case "Decimal64":
		return buildFixedDecimal(t, 18)
	case "Decimal128":
		return buildFixedDecimal(t, 38)
	case "Decimal256":
		return buildFixedDecimal(t, 76)
	case "Enum8":
		return NewEnumCodec(t.String(), 1, t.Args)
	case "Enum16":
		return NewEnumCodec(t.String(), 2, t.Args)
	case "Nullable":
		inner, err := build(t.Inner, mapAsArray)
		if err != nil {
			return nil, err
		}
		return NewNullableCodec(inner), nil
	case "Array":
		inner, err := build(t.Inner, mapAsArray)
		if err != nil {
			return nil, err
		}
		return NewArrayCodec(inner), nil
	case "Map":
		key, err := build(t.Key, mapAsArray)
		if err != nil {
			return nil, err
		}
		value, err := build(t.Value, mapAsArray)
		if err != nil {
			return nil, err
		}
		return NewMapCodec(key, value, mapAsArray), nil
	case "Tuple":
		return buildTuple(t.Elems, mapAsArray)
	case "Nested":
		// Nested(...) is Array(Tuple(...)) sugar.
		inner, err := buildTuple(t.Elems, mapAsArray)
		if err != nil {
			return nil, err
		}
		return NewArrayCodec(inner), nil
	case "Variant":
		alts := make([]Codec, len(t.Alts))
		for i, a := range t.Alts {
			c, err := build(a, mapAsArray)
			if err != nil {
				return nil, err
			}
			alts[i] = c
		}
		return NewVariantCodec(alts), nil
	case "LowCardinality":
		inner, err := build(t.Inner, mapAsArray)
		if err != nil {
			return nil, err
		}
		return NewLowCardinalityCodec(inner), nil
	case "Dynamic":
		return NewDynamicCodec(parseMaxTypes(t.Args)), nil
	case "JSON", "Object":
		return NewJSONCodec(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, t.Name)
	}
}

func buildTuple(elems []types.TupleElem, mapAsArray bool) (Codec, error) {
	named := true
	for _, e := range elems {
		if e.Name == "" {
			named = false
			break
		}
	}
	names := make([]string, len(elems))
	fields := make([]Codec, len(elems))
	for i, e := range elems {
		c, err := build(e.Type, mapAsArray)
		if err != nil {
			return nil, err
		}
		names[i] = e.Name
		fields[i] = c
	}
	return NewTupleCodec(names, fields, named), nil
}

func buildDecimal(t *types.Type) (Codec, error) {
	if len(t.Args) != 2 {
		return nil, fmt.Errorf("%w: Decimal requires precision and scale", ErrUnknownType)
	}
	precision, err := strconv.Atoi(strings.TrimSpace(t.Args[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid Decimal precision %q", ErrUnknownType, t.Args[0])
	}
	scale, err := strconv.Atoi(strings.TrimSpace(t.Args[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid Decimal scale %q", ErrUnknownType, t.Args[1])
	}
	return NewDecimalCodec(t.String(), precision, scale), nil
}

func buildFixedDecimal(t *types.Type, precision int) (Codec, error) {
	if len(t.Args) != 1 {
		return nil, fmt.Errorf("%w: %s requires a scale argument", ErrUnknownType, t.Name)
	}
	scale, err := strconv.Atoi(strings.TrimSpace(t.Args[0]))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s scale %q", ErrUnknownType, t.Name, t.Args[0])
	}
	return NewDecimalCodec(t.String(), precision, scale), nil
}

func parseMaxTypes(args []string) int {
	for _, a := range args {
		a = strings.TrimSpace(a)
		if strings.HasPrefix(a, "max_types") {
			parts := strings.SplitN(a, "=", 2)
			if len(parts) == 2 {
				if n, err := strconv.Atoi(strings.TrimSpace(parts[1])); err == nil {
					return n
				}
			}
		}
	}
	return 0
}
