// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package flatview

import (
	"github.com/gomlx/multidim/pkg/core/ranges"
	"github.com/gomlx/multidim/pkg/core/shapes"
	"github.com/pkg/errors"
)

// level holds the raw positions of an Iterator at one depth of the nesting.
type level struct {
	begin, cur, end ranges.Pos
}

// Iterator is a position in the flattened sequence of scalars of a View.
//
// It holds one level of raw positions per dimension: level 0 spans the range of the View, and
// each level below spans the subrange at the current position of the level above.
//
// Besides pointing to a scalar, an Iterator can be in one of two invalid states: "one before
// the first" and "one past the last" scalar. Both collapse into one for an empty View.
//
// Iterators are mutable: Next, Prev and Advance move the iterator in place and return it, to
// allow chaining. Use Clone to get an independent copy.
type Iterator[T any] struct {
	levels    []level
	leafValid bool
}

// newIterator creates an iterator spanning [first, last), positioned at first and invalid.
func newIterator[T any](first, last ranges.Pos, dims int) *Iterator[T] {
	it := &Iterator[T]{levels: make([]level, dims)}
	it.levels[0] = level{begin: first, cur: first, end: last}
	return it
}

// makeBegin returns an iterator at the first scalar of [first, last), or at the end if there is none.
func makeBegin[T any](first, last ranges.Pos, dims int) *Iterator[T] {
	it := newIterator[T](first, last, dims)
	it.increment(0)
	return it
}

// makeEnd returns an iterator one past the last scalar of [first, last). It does no seeking.
func makeEnd[T any](first, last ranges.Pos, dims int) *Iterator[T] {
	it := newIterator[T](first, last, dims)
	it.levels[0].cur = last
	return it
}

// Clone returns an independent copy of the iterator.
func (it *Iterator[T]) Clone() *Iterator[T] {
	return &Iterator[T]{
		levels:    append([]level(nil), it.levels...),
		leafValid: it.leafValid,
	}
}

func (it *Iterator[T]) leaf() int { return len(it.levels) - 1 }

// valid reports whether the levels from k down point to a scalar.
//
// Levels below a reset are only set up once the leaf is valid again, so leafValid is checked first.
func (it *Iterator[T]) valid(k int) bool {
	if !it.leafValid {
		return false
	}
	for ; k < it.leaf(); k++ {
		if it.levels[k].cur.Equal(it.levels[k].end) {
			return false
		}
	}
	return it.leafValid
}

// Valid returns whether the iterator points to a scalar. It is false before the first and past the last scalar.
func (it *Iterator[T]) Valid() bool { return it.valid(0) }

// descend resets level k+1 to span the subrange at the current position of level k.
// Resetting any level invalidates the whole iterator, until it is moved.
func (it *Iterator[T]) descend(k int, atEnd bool) {
	sub, err := it.levels[k].cur.Sub()
	if err != nil {
		panic(err)
	}
	first, last := sub.Begin(), sub.End()
	cur := first
	if atEnd {
		cur = last
	}
	it.levels[k+1] = level{begin: first, cur: cur, end: last}
	it.leafValid = false
}

// increment moves level k (and the levels below it) to the next scalar.
func (it *Iterator[T]) increment(k int) {
	lv := &it.levels[k]
	if k == it.leaf() {
		if it.leafValid {
			lv.cur = lv.cur.Next()
		}
		it.leafValid = !lv.cur.Equal(lv.end)
		return
	}

	if it.valid(k) {
		it.increment(k + 1)
		if it.valid(k + 1) {
			return
		}
		lv.cur = lv.cur.Next()
	}
	// Skip subranges with no scalars.
	for !lv.cur.Equal(lv.end) {
		it.descend(k, false)
		it.increment(k + 1)
		if it.valid(k + 1) {
			return
		}
		lv.cur = lv.cur.Next()
	}
}

// decrement moves level k (and the levels below it) to the previous scalar.
func (it *Iterator[T]) decrement(k int) {
	lv := &it.levels[k]
	if k == it.leaf() {
		if lv.cur.Equal(lv.begin) {
			it.leafValid = false
			return
		}
		lv.cur = lv.cur.Prev()
		it.leafValid = true
		return
	}

	if it.valid(k) {
		it.decrement(k + 1)
		if it.valid(k + 1) {
			return
		}
	}
	for !lv.cur.Equal(lv.begin) {
		lv.cur = lv.cur.Prev()
		it.descend(k, true)
		it.decrement(k + 1)
		if it.valid(k + 1) {
			return
		}
	}
}

// Next moves the iterator to the next scalar. Past the last scalar it is a no-op.
func (it *Iterator[T]) Next() *Iterator[T] {
	it.increment(0)
	return it
}

// Prev moves the iterator to the previous scalar. Before the first scalar it is a no-op.
func (it *Iterator[T]) Prev() *Iterator[T] {
	it.decrement(0)
	return it
}

// Advance moves the iterator n scalars forward (backward, if n is negative), one at a time.
func (it *Iterator[T]) Advance(n int) *Iterator[T] {
	for ; n > 0; n-- {
		it.increment(0)
	}
	for ; n < 0; n++ {
		it.decrement(0)
	}
	return it
}

// atBegin returns whether the iterator is one before the first scalar.
func (it *Iterator[T]) atBegin() bool {
	top := it.levels[0]
	return top.cur.Equal(top.begin) && !it.valid(0)
}

// atEnd returns whether the iterator is one past the last scalar.
func (it *Iterator[T]) atEnd() bool {
	top := it.levels[0]
	return top.cur.Equal(top.end)
}

// Slot returns the accessor to the current scalar.
//
// It panics with an error wrapping shapes.ErrOutOfBounds if the iterator is not Valid.
func (it *Iterator[T]) Slot() ranges.Slot {
	if !it.valid(0) {
		state := "one before the first"
		if it.atEnd() {
			state = "one past the last"
		}
		panic(errors.Wrapf(shapes.ErrOutOfBounds, "flatview: dereferencing iterator positioned %s scalar", state))
	}
	return it.levels[it.leaf()].cur.Slot()
}

// Value returns the current scalar. It panics with shapes.ErrOutOfBounds if the iterator is not Valid.
func (it *Iterator[T]) Value() T {
	return ranges.Load[T](it.Slot())
}

// Set the current scalar, in place.
//
// It panics with shapes.ErrOutOfBounds if the iterator is not Valid, or with shapes.ErrReadOnly if
// the scalar can't be written (e.g., a byte of a string).
func (it *Iterator[T]) Set(value T) {
	ranges.Store(it.Slot(), value)
}

// Ptr returns a pointer to the current scalar, or nil if the scalar is not addressable (e.g.,
// a bit of a bitset.BitSet) or is not of type T.
func (it *Iterator[T]) Ptr() *T {
	return ranges.Pointer[T](it.Slot())
}

// Equal returns whether both iterators point to the same scalar, or are in the same invalid state.
func (it *Iterator[T]) Equal(other *Iterator[T]) bool {
	if len(it.levels) != len(other.levels) {
		return false
	}
	return it.equalFrom(other, 0)
}

func (it *Iterator[T]) equalFrom(other *Iterator[T], k int) bool {
	a, b := it.levels[k], other.levels[k]
	if !a.begin.Equal(b.begin) || !a.cur.Equal(b.cur) || !a.end.Equal(b.end) {
		return false
	}
	if k == it.leaf() {
		return it.leafValid == other.leafValid
	}
	aValid, bValid := it.valid(k), other.valid(k)
	if !aValid || !bValid {
		return aValid == bValid
	}
	return it.equalFrom(other, k+1)
}

// Distance returns the number of scalars from it to other: positive if other comes after it.
//
// Since subranges can have any length, it searches other by moving forward and then backward
// from it, in linear time. It panics with an error wrapping shapes.ErrUnrelatedIterators if the
// iterators don't belong to the same View.
func (it *Iterator[T]) Distance(other *Iterator[T]) int {
	if it.Equal(other) {
		return 0
	}
	if len(it.levels) == len(other.levels) {
		top, otherTop := it.levels[0], other.levels[0]
		if top.begin.Equal(otherTop.begin) && top.end.Equal(otherTop.end) {
			n := 0
			for tmp := it.Clone(); !tmp.atEnd(); {
				tmp.increment(0)
				n++
				if tmp.Equal(other) {
					return n
				}
			}
			n = 0
			for tmp := it.Clone(); !tmp.atBegin(); {
				tmp.decrement(0)
				n--
				if tmp.Equal(other) {
					return n
				}
			}
		}
	}
	panic(errors.Wrap(shapes.ErrUnrelatedIterators, "flatview: distance between iterators of different views"))
}

// Less returns whether it comes before other. See Distance.
func (it *Iterator[T]) Less(other *Iterator[T]) bool {
	return it.Distance(other) > 0
}

// Const returns a read-only copy of the iterator.
func (it *Iterator[T]) Const() *ConstIterator[T] {
	return &ConstIterator[T]{it: it.Clone()}
}

// ConstIterator is a read-only Iterator.
//
// It can be created from an Iterator (see Iterator.Const), but not the other way around.
type ConstIterator[T any] struct {
	it *Iterator[T]
}

// Clone returns an independent copy of the iterator.
func (c *ConstIterator[T]) Clone() *ConstIterator[T] { return &ConstIterator[T]{it: c.it.Clone()} }

// Valid returns whether the iterator points to a scalar.
func (c *ConstIterator[T]) Valid() bool { return c.it.Valid() }

// Next moves the iterator to the next scalar.
func (c *ConstIterator[T]) Next() *ConstIterator[T] {
	c.it.Next()
	return c
}

// Prev moves the iterator to the previous scalar.
func (c *ConstIterator[T]) Prev() *ConstIterator[T] {
	c.it.Prev()
	return c
}

// Advance moves the iterator n scalars.
func (c *ConstIterator[T]) Advance(n int) *ConstIterator[T] {
	c.it.Advance(n)
	return c
}

// Value returns the current scalar.
func (c *ConstIterator[T]) Value() T { return c.it.Value() }

// Equal returns whether both iterators are at the same position.
func (c *ConstIterator[T]) Equal(other *ConstIterator[T]) bool { return c.it.Equal(other.it) }

// Distance returns the number of scalars from c to other.
func (c *ConstIterator[T]) Distance(other *ConstIterator[T]) int { return c.it.Distance(other.it) }

// Less returns whether c comes before other.
func (c *ConstIterator[T]) Less(other *ConstIterator[T]) bool { return c.it.Less(other.it) }

// ReverseIterator walks an Iterator backwards.
//
// Like reverse iterators in other languages, it holds the position one after the scalar it
// points to: the reverse iterator built on View.End points to the last scalar.
type ReverseIterator[T any] struct {
	base *Iterator[T]
}

// Base returns a copy of the underlying forward iterator.
func (r *ReverseIterator[T]) Base() *Iterator[T] { return r.base.Clone() }

// Clone returns an independent copy of the iterator.
func (r *ReverseIterator[T]) Clone() *ReverseIterator[T] { return &ReverseIterator[T]{base: r.base.Clone()} }

// Valid returns whether the iterator points to a scalar.
func (r *ReverseIterator[T]) Valid() bool { return r.current().Valid() }

func (r *ReverseIterator[T]) current() *Iterator[T] { return r.base.Clone().Prev() }

// Next moves the iterator to the previous scalar of the View.
func (r *ReverseIterator[T]) Next() *ReverseIterator[T] {
	r.base.Prev()
	return r
}

// Prev moves the iterator to the next scalar of the View.
func (r *ReverseIterator[T]) Prev() *ReverseIterator[T] {
	r.base.Next()
	return r
}

// Value returns the current scalar.
func (r *ReverseIterator[T]) Value() T { return r.current().Value() }

// Set the current scalar.
func (r *ReverseIterator[T]) Set(value T) { r.current().Set(value) }

// Equal returns whether both iterators are at the same position.
func (r *ReverseIterator[T]) Equal(other *ReverseIterator[T]) bool { return r.base.Equal(other.base) }
