// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package main

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/gomlx/multidim/pkg/core/dtypes"
	"github.com/gomlx/multidim/pkg/core/shapes"
	"github.com/janpfeifer/must"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestDecode(t *testing.T) {
	assert.Equal(t, [][]float64{{1, 2}, {3}}, must.M1(decode([]byte("[[1, 2], [3]]"), dtypes.Float64)))
	assert.Equal(t, [][]int32{{}, {-4}}, must.M1(decode([]byte("[[], [-4]]"), dtypes.Int32)))
	assert.Equal(t, [][][]bool{{{true}}, {}, {{}, {false}}}, must.M1(decode([]byte("[[[true]], [], [[], [false]]]"), dtypes.Bool)))
	assert.Equal(t, []string{"ab", ""}, must.M1(decode([]byte(`["ab", null]`), dtypes.String)))
	assert.Equal(t, []float16.Float16{float16.Fromfloat32(0.5)}, must.M1(decode([]byte("[0.5]"), dtypes.Float16)))

	// Only empty arrays: the depth is the deepest one.
	assert.Equal(t, [][]float64{{}, {}}, must.M1(decode([]byte("[[], []]"), dtypes.Float64)))

	_, err := decode([]byte("[[1], 2]"), dtypes.Float64)
	require.ErrorIs(t, err, shapes.ErrShapeMismatch)
	_, err = decode([]byte("[[1], [[]]]"), dtypes.Float64)
	require.ErrorIs(t, err, shapes.ErrShapeMismatch)
	_, err = decode([]byte("3"), dtypes.Float64)
	require.ErrorIs(t, err, shapes.ErrNotRange)
	_, err = decode([]byte(`[true]`), dtypes.Float64)
	require.Error(t, err)
	_, err = decode([]byte(`[[1`), dtypes.Float64)
	require.Error(t, err)
}

func TestParseScalar(t *testing.T) {
	assert.Equal(t, int8(-3), must.M1(parseScalar("-3", dtypes.Int8)))
	assert.Equal(t, true, must.M1(parseScalar("true", dtypes.Bool)))
	assert.Equal(t, "-", must.M1(parseScalar("-", dtypes.String)))
	assert.Equal(t, complex128(2), must.M1(parseScalar("2", dtypes.Complex128)))
	_, err := parseScalar("x", dtypes.Float32)
	require.Error(t, err)
}

func TestRender(t *testing.T) {
	value := must.M1(decode([]byte("[[1, 2], [3]]"), dtypes.Int64))
	cfg := &config{dtype: dtypes.Int64, defaultValue: int64(99), bounds: []int{3, 3}}

	geometryTable := must.M1(renderGeometry(value, cfg))
	assert.Contains(t, geometryTable, "[2 2]")
	assert.Contains(t, geometryTable, "[][]int64")
	assert.Contains(t, geometryTable, "true")

	assert.Equal(t, "3 scalars: [1, 2, 3]", must.M1(renderFlat(value, cfg)))

	boxed := must.M1(renderBoxed(value, cfg))
	assert.Contains(t, boxed, "99")
	assert.NotContains(t, boxed, "coordinates")

	// Strings as scalars, rendered one cell per row since it is 1-dimensional.
	words := must.M1(decode([]byte(`["ab", "c"]`), dtypes.String))
	cfg = &config{
		dtype:        dtypes.String,
		classifier:   []shapes.ScalarClassifier{shapes.StringsAsScalars{}},
		defaultValue: "-",
		bounds:       []int{3},
	}
	assert.Equal(t, `2 scalars: ["ab", "c"]`, must.M1(renderFlat(words, cfg)))
	boxed = must.M1(renderBoxed(words, cfg))
	assert.Contains(t, boxed, "coordinates")
	assert.Contains(t, boxed, `"-"`)

	// Strings as ranges of bytes.
	cfg = &config{dtype: dtypes.String, defaultValue: uint8(0)}
	assert.Equal(t, "3 scalars: [97, 98, 99]", must.M1(renderFlat(words, cfg)))

	cfg = &config{dtype: dtypes.Int64, defaultValue: int64(0), bounds: []int{3}}
	_, err := renderBoxed(value, cfg)
	require.ErrorIs(t, err, shapes.ErrBoundsMismatch)
}

func TestRender3D(t *testing.T) {
	value := must.M1(decode([]byte("[[[1], [2, 3]], [[4]]]"), dtypes.Int64))
	cfg := &config{dtype: dtypes.Int64, defaultValue: int64(99), bounds: []int{2, 2, 2}}

	geometryTable := must.M1(renderGeometry(value, cfg))
	assert.Contains(t, geometryTable, "[2 2 2]")
	assert.Contains(t, geometryTable, "[][][]int64")
	assert.Contains(t, geometryTable, "Int64")

	assert.Equal(t, "4 scalars: [1, 2, 3, 4]", must.M1(renderFlat(value, cfg)))

	boxed := must.M1(renderBoxed(value, cfg))
	assert.Contains(t, boxed, "coordinates")
	// Value column of the row of each coordinate.
	values := make(map[string]string)
	for _, line := range strings.Split(boxed, "\n") {
		cells := strings.Split(line, "│")
		if len(cells) < 4 {
			continue
		}
		values[strings.TrimSpace(cells[len(cells)-3])] = strings.TrimSpace(cells[len(cells)-2])
	}
	assert.Equal(t, "1", values["[0 0 0]"])
	assert.Equal(t, "99", values["[0 0 1]"])
	assert.Equal(t, "3", values["[0 1 1]"])
	assert.Equal(t, "4", values["[1 0 0]"])
	assert.Equal(t, "99", values["[1 1 1]"])
}
