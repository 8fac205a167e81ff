// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package boxedview

import (
	"reflect"
	"slices"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/multidim/pkg/core/ranges"
	"github.com/gomlx/multidim/pkg/core/shapes"
	"github.com/pkg/errors"
)

// Iterator is a position along one dimension of a View.
//
// Its logical index goes from -1 ("one before the first") to the apparent bound of its
// dimension ("one past the last"). The raw position into the underlying range follows the index,
// but is clamped to the physical elements: past them the iterator keeps moving logically, and
// the elements it points to are filled with the default value.
//
// Iterators are mutable: Next, Prev and Advance move the iterator in place and return it, to
// allow chaining. Use Clone to get an independent copy.
type Iterator[T any] struct {
	cur      ranges.Pos
	physical int

	// bounds are the apparent bounds from this dimension down. It is shared with the View
	// and the other iterators, and never modified.
	bounds []int

	index        int
	defaultValue *T
}

func makeBegin[T any](first, last ranges.Pos, defaultValue *T, bounds []int) *Iterator[T] {
	return &Iterator[T]{
		cur:          first,
		physical:     first.Distance(last),
		bounds:       bounds,
		defaultValue: defaultValue,
	}
}

// makeEnd returns an iterator at the apparent bound. If that is smaller than the physical
// length, the raw position is moved back from last to match it.
func makeEnd[T any](first, last ranges.Pos, defaultValue *T, bounds []int) *Iterator[T] {
	it := &Iterator[T]{
		cur:          last,
		physical:     first.Distance(last),
		bounds:       bounds,
		index:        bounds[0],
		defaultValue: defaultValue,
	}
	if it.index < it.physical {
		it.cur = last.Advance(it.index - it.physical)
	}
	return it
}

// Clone returns an independent copy of the iterator.
func (it *Iterator[T]) Clone() *Iterator[T] {
	clone := *it
	return &clone
}

// Index is the logical index of the iterator in its dimension, from -1 to Len().
func (it *Iterator[T]) Index() int { return it.index }

// Len is the apparent bound of the dimension of the iterator.
func (it *Iterator[T]) Len() int { return it.bounds[0] }

// Dimensionality of the iterator: 1 for iterators over scalars.
func (it *Iterator[T]) Dimensionality() int { return len(it.bounds) }

// Physical returns whether the element at the current index exists in the underlying range.
// Elements beyond it are filled with the default value.
func (it *Iterator[T]) Physical() bool { return it.index >= 0 && it.index < it.physical }

// Valid returns whether the iterator points to an element, physical or filled.
func (it *Iterator[T]) Valid() bool { return it.index >= 0 && it.index < it.bounds[0] }

// Next moves the iterator to the next element.
//
// It panics with an error wrapping shapes.ErrOutOfBounds if the iterator is already at Len().
func (it *Iterator[T]) Next() *Iterator[T] {
	if it.index == it.bounds[0] {
		panic(errors.Wrapf(shapes.ErrOutOfBounds, "boxedview: incrementing iterator past the bound %d", it.bounds[0]))
	}
	if it.index >= 0 && it.index < it.physical {
		it.cur = it.cur.Next()
	}
	it.index++
	return it
}

// Prev moves the iterator to the previous element.
//
// It panics with an error wrapping shapes.ErrOutOfBounds if the iterator is already at -1.
func (it *Iterator[T]) Prev() *Iterator[T] {
	if it.index == -1 {
		panic(errors.Wrap(shapes.ErrOutOfBounds, "boxedview: decrementing iterator before the first element"))
	}
	if it.index > 0 && it.index <= it.physical {
		it.cur = it.cur.Prev()
	}
	it.index--
	return it
}

// Advance moves the iterator n elements (backwards if n is negative).
//
// It panics with an error wrapping shapes.ErrOutOfBounds if the resulting index is not in [-1, Len()].
// For random-access ranges the raw position is moved in one step, clamped to the physical elements.
// For other ranges it takes |n| steps.
func (it *Iterator[T]) Advance(n int) *Iterator[T] {
	target := it.index + n
	if target > it.bounds[0] || target < -1 {
		panic(errors.Wrapf(shapes.ErrOutOfBounds, "boxedview: advancing iterator at %d by %d, with bound %d",
			it.index, n, it.bounds[0]))
	}
	if !it.cur.Range().Descriptor().RandomAccess() {
		for ; n > 0; n-- {
			it.Next()
		}
		for ; n < 0; n++ {
			it.Prev()
		}
		return it
	}
	it.cur = it.cur.Advance(it.clamp(target) - it.clamp(it.index))
	it.index = target
	return it
}

// clamp returns the offset of the raw position for the given index.
func (it *Iterator[T]) clamp(index int) int {
	return min(max(index, 0), it.physical)
}

// Begin returns an iterator at the first element of the dimension of it.
func (it *Iterator[T]) Begin() *Iterator[T] { return it.Clone().Advance(-it.index) }

// End returns an iterator one past the last element of the dimension of it.
func (it *Iterator[T]) End() *Iterator[T] { return it.Clone().Advance(it.bounds[0] - it.index) }

// Distance returns the number of elements from it to other: positive if other comes after it.
//
// The raw distance is compensated for the indices that fall outside the physical elements.
// It panics with an error wrapping shapes.ErrUnrelatedIterators if the iterators are positions of different ranges.
func (it *Iterator[T]) Distance(other *Iterator[T]) int {
	return it.cur.Distance(other.cur) - it.outside() + other.outside()
}

// outside returns the difference between the logical index and the raw offset.
func (it *Iterator[T]) outside() int {
	return it.index - it.clamp(it.index)
}

// Less returns whether it comes before other.
func (it *Iterator[T]) Less(other *Iterator[T]) bool { return it.Distance(other) > 0 }

// Equal returns whether both iterators are at the same position of the same range, with the same
// bounds and equal default values.
func (it *Iterator[T]) Equal(other *Iterator[T]) bool {
	return it.cur.Equal(other.cur) &&
		it.physical == other.physical &&
		slices.Equal(it.bounds, other.bounds) &&
		it.index == other.index &&
		reflect.DeepEqual(*it.defaultValue, *other.defaultValue)
}

func (it *Iterator[T]) checkValid() {
	if !it.Valid() {
		panic(errors.Wrapf(shapes.ErrOutOfBounds, "boxedview: dereferencing iterator at index %d, with bound %d", it.index, it.bounds[0]))
	}
}

// Sub returns an iterator at the beginning of the element, one dimension down.
//
// Beyond the physical elements, it returns an iterator over an empty placeholder, so all its
// elements are filled with the default value.
//
// It panics with an error wrapping shapes.ErrOutOfBounds if the iterator is not Valid.
func (it *Iterator[T]) Sub() *Iterator[T] {
	if len(it.bounds) == 1 {
		exceptions.Panicf("boxedview: Sub() called on iterator over scalars, use Proxy() instead")
	}
	it.checkValid()
	var sub ranges.Range
	if it.index < it.physical {
		var err error
		sub, err = it.cur.Sub()
		if err != nil {
			panic(err)
		}
	} else {
		sub = ranges.Empty(it.cur.Range().Descriptor().Elem)
	}
	return makeBegin(sub.Begin(), sub.End(), it.defaultValue, it.bounds[1:])
}

// Proxy returns the proxy to the scalar the iterator points to.
//
// It panics with an error wrapping shapes.ErrOutOfBounds if the iterator is not Valid.
func (it *Iterator[T]) Proxy() ScalarProxy[T] {
	if len(it.bounds) > 1 {
		exceptions.Panicf("boxedview: Proxy() called on iterator of dimensionality %d, use Sub() instead", len(it.bounds))
	}
	it.checkValid()
	return ScalarProxy[T]{target: it.cur, defaultValue: it.defaultValue, valid: it.index < it.physical}
}

// ScalarProxy refers to a scalar of a View: either an element of the underlying range, or a
// filled position, which reads as the default value and ignores writes.
type ScalarProxy[T any] struct {
	target       ranges.Pos
	defaultValue *T
	valid        bool
}

// Physical returns whether the proxy refers to an element of the underlying range.
func (p ScalarProxy[T]) Physical() bool { return p.valid }

// Get returns the scalar, or the default value for filled positions.
func (p ScalarProxy[T]) Get() T {
	if !p.valid {
		return *p.defaultValue
	}
	return ranges.Load[T](p.target.Slot())
}

// Set the scalar. For filled positions it is a no-op.
func (p ScalarProxy[T]) Set(value T) {
	if p.valid {
		ranges.Store(p.target.Slot(), value)
	}
}

// Ptr returns a pointer to the scalar, or nil for filled positions and for scalars that
// are not addressable.
func (p ScalarProxy[T]) Ptr() *T {
	if !p.valid {
		return nil
	}
	return ranges.Pointer[T](p.target.Slot())
}
