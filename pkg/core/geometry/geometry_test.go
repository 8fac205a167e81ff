// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package geometry_test

import (
	"reflect"
	"testing"

	. "github.com/gomlx/multidim/pkg/core/geometry"
	"github.com/gomlx/multidim/pkg/core/ranges"
	"github.com/gomlx/multidim/pkg/core/shapes"
	"github.com/gomlx/multidim/pkg/support/bitset"
	"github.com/gomlx/multidim/pkg/support/linked"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// anySequence is a Sequence of rows declared as []int, holding values of any type.
type anySequence []any

func (s anySequence) ElemType() reflect.Type { return reflect.TypeFor[[]int]() }
func (s anySequence) Len() int               { return len(s) }
func (s anySequence) At(i int) any           { return s[i] }
func (s anySequence) SetAt(i int, v any)     { s[i] = v }

var riddled = [][][]float32{
	{{}, {1.223, 4.56}, {}, {}, {3.141333}},
	{},
	{{0.1, 3.4}},
	{{}},
	{{}, {-4, 42.0}},
}

func TestOf(t *testing.T) {
	table := []*linked.List[string]{linked.New("Aaa", "Bb"), linked.New("C", "")}
	testCases := []struct {
		name       string
		value      any
		classifier []shapes.ScalarClassifier
		bounds     []int
		numScalars int
	}{
		{"scalar", 7, nil, []int{}, 1},
		{"vector", make([]int, 8), nil, []int{8}, 8},
		{"array", [2][3]int{{1, 2, 3}, {4, 5, 6}}, nil, []int{2, 3}, 6},
		{"pointer to array", &[2][3]int{}, nil, []int{2, 3}, 6},
		{"map is a scalar", map[int][]int{}, nil, []int{}, 1},
		{"empty nested", [][][][5]int{}, nil, []int{0, 0, 0, 0}, 0},
		{"table", table, nil, []int{2, 2, 3}, 6},
		{"table of strings", table, []shapes.ScalarClassifier{shapes.StringsAsScalars{}}, []int{2, 2}, 4},
		{"riddled", riddled, nil, []int{5, 5, 2}, 7},
		{"bools", bitset.FromBools(true, false, true), nil, []int{3}, 3},
		{"rows of bools", []*bitset.BitSet{bitset.FromBools(true, false, true), bitset.FromBools(true, false, true)}, nil, []int{2, 3}, 6},
		{"jagged last dimension", [][]int{{1, 2, 3}, {4, 5}}, nil, []int{2, 3}, 5},
		{"jagged internally", [][][]int{{{1, 2, 3}, {4, 5, 6}}, {{1, 2, 3}, {4, 5}}}, nil, []int{2, 2, 3}, 11},
		{"dynamic rows", anySequence{[]int{1}, nil, []int{2, 3, 4}}, nil, []int{3, 3}, 4},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := Of(tc.value, tc.classifier...)
			require.NoError(t, err)
			assert.Equal(t, tc.bounds, g.Bounds)
			assert.Equal(t, tc.numScalars, g.NumScalars)
			assert.Equal(t, len(tc.bounds), g.Dimensionality())
		})
	}
}

func TestComputeRange(t *testing.T) {
	r := must.M1(ranges.Of(riddled))
	g, err := ComputeRange(r.Begin(), r.Begin().Advance(2))
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 2}, g.Bounds)
	assert.Equal(t, 3, g.NumScalars)

	v := must.M1(ranges.Of(make([]int, 8)))
	bounds, err := ComputeBounds(v)
	require.NoError(t, err)
	assert.Equal(t, []int{8}, bounds)
	g, err = ComputeRange(v.Begin(), v.Begin().Advance(2))
	require.NoError(t, err)
	assert.Equal(t, []int{2}, g.Bounds)
	assert.Equal(t, 2, g.NumScalars)

	count, err := ComputeScalarCount(r)
	require.NoError(t, err)
	assert.Equal(t, 7, count)

	// Empty sub-range.
	g, err = ComputeRange(r.Begin(), r.Begin())
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, g.Bounds)
	assert.Equal(t, 0, g.NumScalars)
}

func TestShapeMismatch(t *testing.T) {
	_, err := Of(anySequence{[]int{1}, [][]int{{2}}})
	require.ErrorIs(t, err, shapes.ErrShapeMismatch)

	// Deeper in the structure.
	_, err = Of([]anySequence{{[]int{1}}, {[]int{2}, [][]int{{3}}}})
	require.ErrorIs(t, err, shapes.ErrShapeMismatch)

	_, err = Of(nil)
	require.Error(t, err)
}

func TestCapacity(t *testing.T) {
	g := must.M1(Of(riddled))
	assert.Equal(t, 50, g.Capacity())
	assert.True(t, g.IsJagged())
	assert.Equal(t, "bounds=[5 5 2], scalars=7", g.String())

	g = must.M1(Of([2][3]int{}))
	assert.Equal(t, 6, g.Capacity())
	assert.False(t, g.IsJagged())

	g = must.M1(Of(3.0))
	assert.Equal(t, 1, g.Capacity())
	assert.False(t, g.IsJagged())
}

func TestStrides(t *testing.T) {
	assert.Equal(t, []int{6, 3, 1}, Strides([]int{4, 2, 3}))
	assert.Nil(t, Strides(nil))
	assert.Equal(t, []int{3, 1}, Geometry{Bounds: []int{2, 3}}.Strides())
	assert.Equal(t, []int{1, 1, 2}, Unflatten(11, []int{6, 3, 1}, nil))
	coords := make([]int, 2)
	Unflatten(5, []int{3, 1}, coords)
	assert.Equal(t, []int{1, 2}, coords)
}

func TestIter(t *testing.T) {
	var got [][]int
	var flat []int
	for flatIdx, coords := range Iter([]int{2, 3}) {
		flat = append(flat, flatIdx)
		got = append(got, append([]int(nil), coords...))
	}
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5}, flat)
	assert.Equal(t, [][]int{{0, 0}, {0, 1}, {0, 2}, {1, 0}, {1, 1}, {1, 2}}, got)

	// Consistent with Unflatten.
	strides := Strides([]int{3, 2, 4})
	for flatIdx, coords := range Iter([]int{3, 2, 4}) {
		require.Equal(t, coords, Unflatten(flatIdx, strides, nil))
	}

	// Early break.
	count := 0
	for range Iter([]int{10, 10}) {
		count++
		if count == 5 {
			break
		}
	}
	assert.Equal(t, 5, count)

	// Scalars yield once, empty hyperrectangles never.
	count = 0
	for range Iter(nil) {
		count++
	}
	assert.Equal(t, 1, count)
	count = 0
	for range Iter([]int{3, 0}) {
		count++
	}
	assert.Equal(t, 0, count)
	assert.Panics(t, func() { IterOn([]int{2}, make([]int, 2)) })
}
