// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package ranges

import (
	"reflect"

	"github.com/gomlx/multidim/pkg/core/shapes"
	"github.com/pkg/errors"
)

// Pos is an immutable position in a Range: either at an element or at the end.
//
// Moving a Pos before the first element is undefined, as it is for raw iterators.
type Pos struct {
	r    Range
	idx  int
	link shapes.Link
}

// Range of the position.
func (p Pos) Range() Range { return p.r }

// randomAccess is true for all kinds but chains.
func (p Pos) randomAccess() bool { return p.r.desc.Kind != shapes.KindChain }

// IsEnd returns whether the position is one past the last element.
func (p Pos) IsEnd() bool {
	if p.randomAccess() {
		return p.idx >= p.r.Len()
	}
	return p.link == nil
}

// Index of the position, counting from the start of the range. It walks the chain for chains.
func (p Pos) Index() int {
	if p.randomAccess() {
		return p.idx
	}
	return p.r.Begin().Distance(p)
}

// Next returns the position after p. The end position is returned unchanged.
func (p Pos) Next() Pos {
	if p.randomAccess() {
		p.idx++
	} else if p.link != nil {
		p.link = p.link.Next()
	}
	return p
}

// Prev returns the position before p.
func (p Pos) Prev() Pos {
	if p.randomAccess() {
		p.idx--
	} else if p.link == nil {
		p.link = p.r.back()
	} else {
		p.link = p.link.Prev()
	}
	return p
}

// Advance returns the position n elements after p (before, if n is negative).
//
// It panics with ErrOutOfBounds if the result falls outside the range [Begin, End].
// For chains it takes |n| steps.
func (p Pos) Advance(n int) Pos {
	if p.randomAccess() {
		idx := p.idx + n
		if idx < 0 || idx > p.r.Len() {
			panic(errors.Wrapf(shapes.ErrOutOfBounds, "advancing position %d by %d in range of length %d", p.idx, n, p.r.Len()))
		}
		p.idx = idx
		return p
	}
	for ; n > 0; n-- {
		if p.link == nil {
			panic(errors.Wrap(shapes.ErrOutOfBounds, "advancing position past the end of chain"))
		}
		p.link = p.link.Next()
	}
	for ; n < 0; n++ {
		p = p.Prev()
		if p.link == nil {
			panic(errors.Wrap(shapes.ErrOutOfBounds, "advancing position before the start of chain"))
		}
	}
	return p
}

// Distance returns the number of steps from p to other: positive if other is after p.
//
// It panics with ErrUnrelatedIterators if the positions belong to different ranges.
func (p Pos) Distance(other Pos) int {
	if !p.r.Same(other.r) {
		panic(errors.Wrap(shapes.ErrUnrelatedIterators, "distance between positions of different ranges"))
	}
	if p.randomAccess() {
		return other.idx - p.idx
	}

	// Scan forward: it always finds the end.
	n := 0
	for link := p.link; ; link = link.Next() {
		if link == other.link {
			return n
		}
		if link == nil {
			break
		}
		n++
	}

	// Scan backward.
	n = -1
	link := p.link
	if link == nil {
		link = p.r.back()
	} else {
		link = link.Prev()
	}
	for ; link != nil; link, n = link.Prev(), n-1 {
		if link == other.link {
			return n
		}
	}
	panic(errors.Wrap(shapes.ErrUnrelatedIterators, "positions in chain don't reach each other"))
}

// Equal returns whether p and other are the same position of the same range.
func (p Pos) Equal(other Pos) bool {
	if !p.r.Same(other.r) {
		return false
	}
	if p.randomAccess() {
		return p.idx == other.idx
	}
	return p.link == other.link
}

// Slot returns the accessor to the element at p. It panics with ErrOutOfBounds at the end position.
func (p Pos) Slot() Slot {
	if p.IsEnd() || p.idx < 0 {
		panic(errors.Wrapf(shapes.ErrOutOfBounds, "no element at position %d of range of length %d", p.idx, p.r.Len()))
	}
	elemType := p.r.desc.Elem.Type
	switch p.r.desc.Kind {
	case shapes.KindSequence:
		return Slot{seq: p.r.seq, idx: p.idx, elemType: elemType}
	case shapes.KindChain:
		return Slot{link: p.link, elemType: elemType}
	default:
		return Slot{v: p.r.value.Index(p.idx), elemType: elemType}
	}
}

// Sub returns the element at p as a Range. The element type must be a range.
//
// Elements of sequences and chains are checked against their declared element type: an element
// of a different type with a different dimensionality returns an error wrapping ErrShapeMismatch,
// and one with a different scalar type an error wrapping ErrScalarType.
// Nil elements are returned as empty ranges.
func (p Pos) Sub() (Range, error) {
	r, err := p.sub()
	if err == nil && r.copied != nil {
		r.copied.from = &p
	}
	return r, err
}

func (p Pos) sub() (Range, error) {
	elemDesc := p.r.desc.Elem
	if elemDesc.IsScalar() {
		return Range{}, errors.Wrapf(shapes.ErrNotRange, "elements of %s are scalars", p.r.desc.Type)
	}
	slot := p.Slot()
	if slot.v.IsValid() {
		return New(elemDesc, slot.v), nil
	}
	var elem any
	if slot.seq != nil {
		elem = slot.seq.At(slot.idx)
	} else {
		elem = slot.link.Get()
	}
	if elem == nil {
		return Empty(elemDesc), nil
	}
	elemValue := reflect.ValueOf(elem)
	if elemValue.Type() == elemDesc.Type {
		return New(elemDesc, elemValue), nil
	}
	dynamicDesc, err := elemDesc.Describe(elemValue.Type())
	if err != nil {
		return Range{}, err
	}
	if dynamicDesc.Dimensionality != elemDesc.Dimensionality {
		return Range{}, errors.Wrapf(shapes.ErrShapeMismatch,
			"element of %s has type %s with dimensionality %d, but its declared element type %s has dimensionality %d",
			p.r.desc.Type, dynamicDesc.Type, dynamicDesc.Dimensionality, elemDesc.Type, elemDesc.Dimensionality)
	}
	if dynamicDesc.Scalar != elemDesc.Scalar {
		return Range{}, errors.Wrapf(shapes.ErrScalarType,
			"element of %s has scalar type %s, but its declared element type %s has scalar type %s",
			p.r.desc.Type, dynamicDesc.Scalar, elemDesc.Type, elemDesc.Scalar)
	}
	return New(dynamicDesc, elemValue), nil
}

// MustSub is like Sub, but panics on error.
func (p Pos) MustSub() Range {
	r, err := p.Sub()
	if err != nil {
		panic(err)
	}
	return r
}
