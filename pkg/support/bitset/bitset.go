// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package bitset implements a bit-packed sequence of bools.
//
// Its elements are not addressable, so it is traversed by multidim as a proxied sequence:
// it implements the shapes.Sequence interface (ElemType, Len, At, SetAt).
package bitset

import (
	"iter"
	"reflect"
	"slices"
	"strings"

	"github.com/gomlx/exceptions"
)

const wordBits = 64

// BitSet is a fixed-length sequence of bools, packed 64 per word.
//
// The zero value is an empty BitSet.
type BitSet struct {
	words  []uint64
	length int
}

// New creates a BitSet with length bits, all false.
func New(length int) *BitSet {
	if length < 0 {
		exceptions.Panicf("bitset.New(%d): length cannot be negative", length)
	}
	return &BitSet{
		words:  make([]uint64, (length+wordBits-1)/wordBits),
		length: length,
	}
}

// FromBools creates a BitSet with the given values.
func FromBools(values ...bool) *BitSet {
	b := New(len(values))
	for index, value := range values {
		b.Set(index, value)
	}
	return b
}

// Len returns the number of bits.
func (b *BitSet) Len() int {
	if b == nil {
		return 0
	}
	return b.length
}

func (b *BitSet) checkIndex(index int) {
	if index < 0 || index >= b.Len() {
		exceptions.Panicf("bitset with len %d cannot access position %d", b.Len(), index)
	}
}

// Get returns the bit at position index.
func (b *BitSet) Get(index int) bool {
	b.checkIndex(index)
	return b.words[index/wordBits]&(1<<(index%wordBits)) != 0
}

// Set the bit at position index to value.
func (b *BitSet) Set(index int, value bool) {
	b.checkIndex(index)
	mask := uint64(1) << (index % wordBits)
	if value {
		b.words[index/wordBits] |= mask
	} else {
		b.words[index/wordBits] &^= mask
	}
}

// Append values to the end of the BitSet.
func (b *BitSet) Append(values ...bool) {
	start := b.length
	b.length += len(values)
	if needed := (b.length + wordBits - 1) / wordBits; needed > len(b.words) {
		b.words = append(b.words, make([]uint64, needed-len(b.words))...)
	}
	for index, value := range values {
		b.Set(start+index, value)
	}
}

// All returns an iterator over all the bits.
func (b *BitSet) All() iter.Seq[bool] {
	return func(yield func(bool) bool) {
		for index := range b.Len() {
			if !yield(b.Get(index)) {
				return
			}
		}
	}
}

// Bools returns a copy of the bits as a []bool. The values are not linked to the BitSet.
func (b *BitSet) Bools() []bool {
	return slices.Collect(b.All())
}

// String implements fmt.Stringer, printing bits as 0s and 1s.
func (b *BitSet) String() string {
	var sb strings.Builder
	for bit := range b.All() {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

var boolType = reflect.TypeOf(false)

// ElemType implements shapes.Sequence. It works on a nil *BitSet.
func (b *BitSet) ElemType() reflect.Type { return boolType }

// At implements shapes.Sequence.
func (b *BitSet) At(index int) any { return b.Get(index) }

// SetAt implements shapes.Sequence. It panics if value is not a bool.
func (b *BitSet) SetAt(index int, value any) {
	v, ok := value.(bool)
	if !ok {
		exceptions.Panicf("bitset.SetAt(%d, %T): value must be a bool", index, value)
	}
	b.Set(index, v)
}
