// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package linked

import (
	"reflect"
	"slices"
	"testing"

	"github.com/gomlx/multidim/pkg/core/shapes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ shapes.Chain = (*List[int])(nil)

func TestList(t *testing.T) {
	l := New(2, 3)
	l.PushFront(1)
	last := l.PushBack(4)
	assert.Equal(t, 4, l.Len())
	assert.Equal(t, []int{1, 2, 3, 4}, slices.Collect(l.All()))
	assert.Equal(t, []int{4, 3, 2, 1}, slices.Collect(l.Backward()))

	assert.Equal(t, 4, l.Remove(last))
	assert.Equal(t, 3, l.Len())
	assert.Equal(t, 3, l.BackNode().Value)
	assert.Panics(t, func() { l.Remove(last) })
	assert.Equal(t, 1, l.Remove(l.FrontNode()))
	assert.Equal(t, []int{2, 3}, slices.Collect(l.All()))
}

func TestListAsChain(t *testing.T) {
	var nilList *List[[]float32]
	assert.Equal(t, reflect.TypeOf([]float32(nil)), nilList.ElemType())
	assert.Nil(t, nilList.Front())

	var empty List[string]
	assert.Nil(t, empty.Front())
	assert.Nil(t, empty.Back())

	l := New("a", "b")
	var chain shapes.Chain = l
	front := chain.Front()
	require.NotNil(t, front)
	assert.Nil(t, front.Prev())
	assert.Equal(t, "a", front.Get())
	back := front.Next()
	assert.Equal(t, "b", back.Get())
	assert.Nil(t, back.Next())
	back.Set("c")
	assert.Equal(t, []string{"a", "c"}, slices.Collect(l.All()))
	assert.Panics(t, func() { back.Set(1) })
}
