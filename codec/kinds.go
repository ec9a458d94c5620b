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

import "github.com/launix-de/chwire/buffer"

// Kind is the one-byte serialization kind tag read per column, per node of
// the type tree, before that node's payload.
type Kind uint8

const (
	KindDense  Kind = 0
	KindSparse Kind = 1
)

// KindNode mirrors the structural shape of a type: a scalar has no
// children, Nullable/Array/LowCardinality have one structural child
// (their inner codec), Map has two (key, value), Tuple has one per field,
// Variant has one per alternative. Dynamic and Json read a single leaf
// node; their member and path columns have no kind subtree.
type KindNode struct {
	Kind     Kind
	Children []*KindNode
}

// readKind reads a single kind byte and validates it.
func readKind(r *buffer.Reader) (Kind, error) {
	b, err := r.ReadU8()
	if err != nil {
		return 0, err
	}
	if b != byte(KindDense) && b != byte(KindSparse) {
		return 0, ErrInvalidDiscriminator
	}
	return Kind(b), nil
}

// readLeafKinds reads a single-node kind tree for a codec with no
// structural children (every scalar codec).
func readLeafKinds(r *buffer.Reader) (*KindNode, error) {
	k, err := readKind(r)
	if err != nil {
		return nil, err
	}
	return &KindNode{Kind: k}, nil
}

// writeLeafKinds always emits Dense: this implementation never proposes
// Sparse on encode, only reconstructs it on decode.
func writeLeafKinds(w *buffer.Writer) {
	w.WriteU8(byte(KindDense))
}

// readWrappedKinds reads a node's own kind byte followed by exactly one
// child subtree, for single-inner-type composites (Nullable, Array,
// LowCardinality).
func readWrappedKinds(r *buffer.Reader, inner KindTree) (*KindNode, error) {
	self, err := readKind(r)
	if err != nil {
		return nil, err
	}
	child, err := inner.ReadKinds(r)
	if err != nil {
		return nil, err
	}
	return &KindNode{Kind: self, Children: []*KindNode{child}}, nil
}

func writeWrappedKinds(w *buffer.Writer, inner KindTree) {
	w.WriteU8(byte(KindDense))
	inner.WriteKinds(w)
}

// readMultiKinds reads a node's own kind byte followed by one subtree per
// child codec, for Map's key and value, Tuple fields and Variant
// alternatives.
func readMultiKinds(r *buffer.Reader, children []KindTree) (*KindNode, error) {
	self, err := readKind(r)
	if err != nil {
		return nil, err
	}
	node := &KindNode{Kind: self, Children: make([]*KindNode, len(children))}
	for i, c := range children {
		child, err := c.ReadKinds(r)
		if err != nil {
			return nil, err
		}
		node.Children[i] = child
	}
	return node, nil
}

func writeMultiKinds(w *buffer.Writer, children []KindTree) {
	w.WriteU8(byte(KindDense))
	for _, c := range children {
		c.WriteKinds(w)
	}
}
