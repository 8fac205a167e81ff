// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package linked implements a generic doubly linked list.
//
// List[T] has no random access: multidim traverses it as a bidirectional chain (it implements
// shapes.Chain), and its element type is known statically, so a List[[]float32] is
// a range of dimensionality 2.
package linked

import (
	"iter"
	"reflect"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/multidim/pkg/core/shapes"
)

// Node holds one value of a List.
type Node[T any] struct {
	Value      T
	next, prev *Node[T]
	list       *List[T]
}

// List is a doubly linked list of T. The zero value is an empty list ready to use.
type List[T any] struct {
	front, back *Node[T]
	length      int
}

// New returns a List with the given values.
func New[T any](values ...T) *List[T] {
	l := &List[T]{}
	for _, v := range values {
		l.PushBack(v)
	}
	return l
}

// Len returns the number of nodes, in constant time.
func (l *List[T]) Len() int {
	if l == nil {
		return 0
	}
	return l.length
}

// PushBack appends value to the list and returns its node.
func (l *List[T]) PushBack(value T) *Node[T] {
	n := &Node[T]{Value: value, prev: l.back, list: l}
	if l.back == nil {
		l.front = n
	} else {
		l.back.next = n
	}
	l.back = n
	l.length++
	return n
}

// PushFront prepends value to the list and returns its node.
func (l *List[T]) PushFront(value T) *Node[T] {
	n := &Node[T]{Value: value, next: l.front, list: l}
	if l.front == nil {
		l.back = n
	} else {
		l.front.prev = n
	}
	l.front = n
	l.length++
	return n
}

// Remove node n from the list. It panics if n belongs to another list.
func (l *List[T]) Remove(n *Node[T]) T {
	if n.list != l {
		exceptions.Panicf("linked.List.Remove: node doesn't belong to the list")
	}
	if n.prev == nil {
		l.front = n.next
	} else {
		n.prev.next = n.next
	}
	if n.next == nil {
		l.back = n.prev
	} else {
		n.next.prev = n.prev
	}
	n.next, n.prev, n.list = nil, nil, nil
	l.length--
	return n.Value
}

// FrontNode returns the first node, or nil.
func (l *List[T]) FrontNode() *Node[T] { return l.front }

// BackNode returns the last node, or nil.
func (l *List[T]) BackNode() *Node[T] { return l.back }

// All iterates over the values from front to back.
func (l *List[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.front; n != nil; n = n.next {
			if !yield(n.Value) {
				return
			}
		}
	}
}

// Backward iterates over the values from back to front.
func (l *List[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.back; n != nil; n = n.prev {
			if !yield(n.Value) {
				return
			}
		}
	}
}

// ElemType implements shapes.Chain. It works on a nil *List.
func (l *List[T]) ElemType() reflect.Type { return reflect.TypeFor[T]() }

// Front implements shapes.Chain.
func (l *List[T]) Front() shapes.Link {
	if l == nil || l.front == nil {
		return nil
	}
	return l.front
}

// Back implements shapes.Chain.
func (l *List[T]) Back() shapes.Link {
	if l == nil || l.back == nil {
		return nil
	}
	return l.back
}

// Next implements shapes.Link.
func (n *Node[T]) Next() shapes.Link {
	if n.next == nil {
		return nil
	}
	return n.next
}

// Prev implements shapes.Link.
func (n *Node[T]) Prev() shapes.Link {
	if n.prev == nil {
		return nil
	}
	return n.prev
}

// Get implements shapes.Link.
func (n *Node[T]) Get() any { return n.Value }

// Set implements shapes.Link. It panics if value is not a T.
func (n *Node[T]) Set(value any) {
	v, ok := value.(T)
	if !ok && value != nil {
		exceptions.Panicf("linked.Node[%s].Set(%T): incompatible value", reflect.TypeFor[T](), value)
	}
	n.Value = v
}
