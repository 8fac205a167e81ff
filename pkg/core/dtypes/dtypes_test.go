// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

package dtypes

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

type celsius float32

func TestFromGoType(t *testing.T) {
	assert.Equal(t, Float16, FromGoType(reflect.TypeOf(float16.Float16(0))))
	assert.Equal(t, Float32, FromGoType(reflect.TypeOf(celsius(0))))
	assert.Equal(t, Float64, FromGoType(reflect.TypeFor[float64]()))
	assert.Equal(t, Bool, FromGoType(reflect.TypeFor[bool]()))
	assert.Equal(t, String, FromGoType(reflect.TypeFor[string]()))
	assert.Equal(t, Uint8, FromGoType(reflect.TypeFor[byte]()))
	assert.Equal(t, InvalidDType, FromGoType(reflect.TypeFor[map[int]int]()))
	assert.Equal(t, InvalidDType, FromGoType(nil))
	assert.Contains(t, []DType{Int32, Int64}, FromGoType(reflect.TypeFor[int]()))
}

func TestGoType(t *testing.T) {
	for _, dtype := range DTypeValues() {
		if dtype == InvalidDType {
			assert.Panics(t, func() { _ = dtype.GoType() })
			continue
		}
		assert.Equalf(t, dtype, FromGoType(dtype.GoType()), "round trip of %s", dtype)
	}
	assert.Equal(t, "float16.Float16", Float16.GoType().String())
}

func TestMapOfNames(t *testing.T) {
	assert.Equal(t, Float16, MapOfNames["Float16"])
	assert.Equal(t, Float16, MapOfNames["float16"])
	assert.Equal(t, Float16, MapOfNames["f16"])
	assert.Equal(t, String, MapOfNames["string"])
	assert.Equal(t, FromGoType(reflect.TypeFor[int]()), MapOfNames["int"])
}

func TestDTypeString(t *testing.T) {
	assert.Equal(t, "Complex128", Complex128.String())
	assert.Equal(t, "DType(99)", DType(99).String())
	dtype, err := DTypeString("uint16")
	require.NoError(t, err)
	assert.Equal(t, Uint16, dtype)
	_, err = DTypeString("bfloat16")
	require.Error(t, err)
	assert.True(t, Bool.IsADType())
	assert.False(t, DType(-1).IsADType())
}

func TestPredicates(t *testing.T) {
	assert.True(t, Float16.IsFloat())
	assert.False(t, Complex64.IsFloat())
	assert.True(t, Complex64.IsComplex())
	assert.True(t, Uint32.IsInt())
	assert.True(t, Uint32.IsUnsigned())
	assert.True(t, Int8.IsInt())
	assert.False(t, Int8.IsUnsigned())
	assert.False(t, String.IsInt())
}

func TestFromFloat64(t *testing.T) {
	v, err := Float16.FromFloat64(1.5)
	require.NoError(t, err)
	assert.Equal(t, float16.Fromfloat32(1.5), v)

	v, err = Int16.FromFloat64(3)
	require.NoError(t, err)
	assert.Equal(t, int16(3), v)

	v, err = Complex64.FromFloat64(2)
	require.NoError(t, err)
	assert.Equal(t, complex64(2), v)

	v, err = Complex128.FromFloat64(-0.5)
	require.NoError(t, err)
	assert.Equal(t, complex128(-0.5), v)

	_, err = Bool.FromFloat64(1)
	require.Error(t, err)
}
