// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package shapes_test

import (
	"container/list"
	"fmt"
	"reflect"
	"testing"

	"github.com/gomlx/multidim/pkg/core/dtypes"
	. "github.com/gomlx/multidim/pkg/core/shapes"
	"github.com/gomlx/multidim/pkg/support/bitset"
	"github.com/gomlx/multidim/pkg/support/linked"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type (
	recursive    []recursive
	recursivePtr struct{ next *recursivePtr }
	point        struct{ X, Y float64 }
	vec3         [3]float32
)

// badSequence reports no element type.
type badSequence struct{}

func (badSequence) ElemType() reflect.Type { return nil }
func (badSequence) Len() int               { return 0 }
func (badSequence) At(int) any             { return nil }
func (badSequence) SetAt(int, any)         {}

// derefSequence dereferences its receiver in ElemType, which fails on a nil pointer.
type derefSequence struct{ elem reflect.Type }

func (s *derefSequence) ElemType() reflect.Type { return s.elem }
func (s *derefSequence) Len() int               { return 0 }
func (s *derefSequence) At(int) any             { return nil }
func (s *derefSequence) SetAt(int, any)         {}

// valueSequence has value receivers: a pointer to it is followed.
type valueSequence struct{}

func (valueSequence) ElemType() reflect.Type { return reflect.TypeFor[[]int]() }
func (valueSequence) Len() int               { return 0 }
func (valueSequence) At(int) any             { return nil }
func (valueSequence) SetAt(int, any)         {}

func TestDimensionality(t *testing.T) {
	testCases := []struct {
		name   string
		t      reflect.Type
		dims   int
		scalar reflect.Type
	}{
		{"int", reflect.TypeFor[int](), 0, reflect.TypeFor[int]()},
		{"[]float32", reflect.TypeFor[[]float32](), 1, reflect.TypeFor[float32]()},
		{"[][]int", reflect.TypeFor[[][]int](), 2, reflect.TypeFor[int]()},
		{"[2][3]int", reflect.TypeFor[[2][3]int](), 2, reflect.TypeFor[int]()},
		{"*[][]int", reflect.TypeFor[*[][]int](), 2, reflect.TypeFor[int]()},
		{"[]*[]int", reflect.TypeFor[[]*[]int](), 2, reflect.TypeFor[int]()},
		{"[]string", reflect.TypeFor[[]string](), 2, reflect.TypeFor[byte]()},
		{"[][]point", reflect.TypeFor[[][]point](), 2, reflect.TypeFor[point]()},
		{"[]map[string]int", reflect.TypeFor[[]map[string]int](), 1, reflect.TypeFor[map[string]int]()},
		{"[]any", reflect.TypeFor[[]any](), 1, reflect.TypeFor[any]()},
		{"[]*int", reflect.TypeFor[[]*int](), 1, reflect.TypeFor[*int]()},
		{"[]vec3", reflect.TypeFor[[]vec3](), 2, reflect.TypeFor[float32]()},
		{"[]*bitset.BitSet", reflect.TypeFor[[]*bitset.BitSet](), 2, reflect.TypeFor[bool]()},
		{"*linked.List[[]int]", reflect.TypeFor[*linked.List[[]int]](), 2, reflect.TypeFor[int]()},
		{"*valueSequence", reflect.TypeFor[*valueSequence](), 2, reflect.TypeFor[int]()},
		{"*list.List", reflect.TypeFor[*list.List](), 0, reflect.TypeFor[*list.List]()},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := Describe(tc.t)
			require.NoError(t, err)
			assert.Equal(t, tc.dims, d.Dimensionality)
			assert.Equal(t, tc.scalar, d.Scalar)
			assert.Equal(t, tc.dims, Dimensionality(tc.t))
			assert.Equal(t, tc.scalar, ScalarType(tc.t))
			assert.Equal(t, tc.dims == 0, IsScalar(tc.t))
		})
	}
}

func TestDescriptor(t *testing.T) {
	d, err := DescriptorFor[*[]*linked.List[string]]()
	require.NoError(t, err)
	assert.Equal(t, 1, d.Indirect)
	assert.Equal(t, []RangeKind{KindSlice, KindChain, KindString, KindScalar}, d.Kinds())
	assert.Equal(t, 0, d.Elem.Indirect, "*linked.List implements Chain itself")
	assert.True(t, d.RandomAccess())
	assert.False(t, d.Elem.RandomAccess())
	assert.True(t, d.YieldsReferences())
	assert.False(t, d.Elem.YieldsReferences())
	assert.False(t, d.Elem.Elem.YieldsReferences())
	assert.Equal(t, dtypes.Uint8, d.DType())
	assert.Contains(t, d.String(), "dims=3")

	// Descriptors are cached.
	d2, err := DescriptorFor[*[]*linked.List[string]]()
	require.NoError(t, err)
	assert.Same(t, d, d2)

	// Describe on a descriptor uses the same classifier.
	d, err = DescriptorFor[[]string](StringsAsScalars{})
	require.NoError(t, err)
	sub, err := d.Describe(reflect.TypeFor[[][]string]())
	require.NoError(t, err)
	assert.Equal(t, 2, sub.Dimensionality)
	assert.Equal(t, StringsAsScalars{}, sub.Classifier())
}

func TestYieldsReferences(t *testing.T) {
	assert.True(t, YieldsReferences(reflect.TypeFor[[]bool]()))
	assert.False(t, YieldsReferences(reflect.TypeFor[*bitset.BitSet]()))
	assert.False(t, YieldsReferences(reflect.TypeFor[string]()))
	assert.False(t, YieldsReferences(reflect.TypeFor[float64]()))
}

func TestIsRange(t *testing.T) {
	assert.True(t, IsRange(reflect.TypeFor[string]()))
	assert.True(t, IsRange(reflect.TypeFor[*[4]int]()))
	assert.True(t, IsRange(reflect.TypeFor[*bitset.BitSet]()))
	assert.False(t, IsRange(reflect.TypeFor[map[int]int]()))
	assert.False(t, IsRange(reflect.TypeFor[chan int]()))
	// IsRange ignores classifiers: a string is still a range, even if classified as a scalar.
	assert.True(t, IsScalar(reflect.TypeFor[string](), StringsAsScalars{}))
}

func TestClassifiers(t *testing.T) {
	table := reflect.TypeFor[[][]string]()
	assert.Equal(t, 3, Dimensionality(table))
	assert.Equal(t, 2, Dimensionality(table, StringsAsScalars{}))
	assert.Equal(t, reflect.TypeFor[string](), ScalarType(table, StringsAsScalars{}))

	// Collapsing one level of a custom type.
	assert.Equal(t, 2, Dimensionality(reflect.TypeFor[[]vec3]()))
	vecs := TypesAsScalars(reflect.TypeFor[vec3]())
	assert.Equal(t, 1, Dimensionality(reflect.TypeFor[[]vec3](), vecs))
	assert.Equal(t, reflect.TypeFor[vec3](), ScalarType(reflect.TypeFor[[]vec3](), vecs))

	// Classifying the whole type as a scalar.
	assert.Equal(t, 0, Dimensionality(table, TypesAsScalars(table)))

	// ClassifierFunc: treat any array as a scalar.
	arraysAsScalars := ClassifierFunc(func(t reflect.Type) bool { return t.Kind() == reflect.Array })
	assert.Equal(t, 1, Dimensionality(reflect.TypeFor[[][4]int](), arraysAsScalars))
	assert.Equal(t, 2, Dimensionality(reflect.TypeFor[[][]int](), arraysAsScalars))

	assert.Panics(t, func() { Dimensionality(table, StringsAsScalars{}, NoCustomScalars{}) })
}

func TestIntrospectorCache(t *testing.T) {
	assert.Same(t, For(nil), For(NoCustomScalars{}))
	assert.Same(t, For(StringsAsScalars{}), For(StringsAsScalars{}))
	fn := ClassifierFunc(func(reflect.Type) bool { return false })
	assert.NotSame(t, For(fn), For(fn))
	assert.Equal(t, StringsAsScalars{}, For(StringsAsScalars{}).Classifier())
}

func TestMalformedTypes(t *testing.T) {
	_, err := Describe(reflect.TypeFor[recursive]())
	require.ErrorIs(t, err, ErrRecursiveType)
	assert.Panics(t, func() { Dimensionality(reflect.TypeFor[[]recursive]()) })

	// A pointer in a struct is not traversed: the struct is a scalar.
	assert.Equal(t, 0, Dimensionality(reflect.TypeFor[recursivePtr]()))

	_, err = Describe(reflect.TypeFor[badSequence]())
	require.ErrorIs(t, err, ErrNoElementType)

	_, err = Describe(reflect.TypeFor[[]*derefSequence]())
	require.ErrorIs(t, err, ErrNoElementType)

	_, err = Describe(reflect.TypeFor[Sequence]())
	require.ErrorIs(t, err, ErrNoElementType)

	_, err = Describe(nil)
	require.Error(t, err)
}

func TestRangeKindString(t *testing.T) {
	assert.Equal(t, "Chain", KindChain.String())
	kind, err := RangeKindString("sequence")
	require.NoError(t, err)
	assert.Equal(t, KindSequence, kind)
	assert.Len(t, RangeKindValues(), 6)
}

func TestCheckScalarType(t *testing.T) {
	d, err := DescriptorFor[[][]point]()
	require.NoError(t, err)
	require.NoError(t, d.CheckScalarType(reflect.TypeFor[point]()))
	require.NoError(t, d.CheckScalarType(reflect.TypeFor[any]()))
	require.ErrorIs(t, d.CheckScalarType(reflect.TypeFor[*point]()), ErrScalarType)
	require.ErrorIs(t, d.CheckScalarType(reflect.TypeFor[fmt.Stringer]()), ErrScalarType)
}
