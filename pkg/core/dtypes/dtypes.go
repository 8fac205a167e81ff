// Copyright 2023-2026 The GoMLX Authors. SPDX-License-Identifier: Apache-2.0

// Package dtypes includes the DType enum for the scalar types found at the bottom of nested values.
//
// It is a trimmed fork of the GoMLX dtypes: it only knows about Go native scalar types (plus
// float16.Float16), and adds String, since strings can be classified as scalars.
//
// It includes converters to/from Go native types (and reflect.Type).
package dtypes

import (
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// DType enumerates the scalar types a nested value can bottom out on.
type DType int32

const (
	// InvalidDType is used for scalar types without a corresponding DType, like structs or maps.
	InvalidDType DType = iota

	// Bool is the DType for Go's bool.
	Bool

	// Int8 and the following are signed integral values of fixed width.
	Int8
	Int16
	Int32
	Int64

	// Uint8 and the following are unsigned integral values of fixed width.
	Uint8
	Uint16
	Uint32
	Uint64

	// Float16 is github.com/x448/float16.Float16.
	Float16
	Float32
	Float64

	// Complex64 is paired F32 (real, imag).
	Complex64
	Complex128

	// String is any Go string, only a scalar if classified as one.
	String
)

//go:generate go tool enumer -type DType -output=gen_dtype_enumer.go dtypes.go

// panicf panics with the formatted description.
//
// It is only used for "bugs in the code" -- when parameters don't follow the documented contract.
func panicf(format string, args ...any) {
	panic(errors.Errorf(format, args...))
}

// MapOfNames to their dtypes. It includes also aliases to the various dtypes.
// It is also later initialized to include the lower-case version of the names.
var MapOfNames = map[string]DType{
	"InvalidDType": InvalidDType,
	"Bool":         Bool,
	"Int8":         Int8,
	"Int16":        Int16,
	"Int32":        Int32,
	"Int64":        Int64,
	"Int":          Int64,
	"Uint8":        Uint8,
	"Uint16":       Uint16,
	"Uint32":       Uint32,
	"Uint64":       Uint64,
	"Float16":      Float16,
	"F16":          Float16,
	"Float32":      Float32,
	"F32":          Float32,
	"Float64":      Float64,
	"F64":          Float64,
	"Complex64":    Complex64,
	"Complex128":   Complex128,
	"String":       String,
}

func init() {
	// Only works for 32 and 64 bits platforms.
	if strconv.IntSize != 32 && strconv.IntSize != 64 {
		panicf("cannot use int of %d bits -- only platforms with int32 or int64 are supported", strconv.IntSize)
	}
	if strconv.IntSize == 32 {
		MapOfNames["Int"] = Int32
	}

	// Add a mapping to the lower-case version of dtypes.
	keys := slices.Collect(maps.Keys(MapOfNames))
	for _, key := range keys {
		lowerKey := strings.ToLower(key)
		if lowerKey == key {
			continue
		}
		if _, found := MapOfNames[lowerKey]; found {
			continue
		}
		MapOfNames[lowerKey] = MapOfNames[key]
	}
}

// Pre-generate constant reflect.TypeOf for convenience.
var (
	float16Type = reflect.TypeOf(float16.Float16(0))
	stringType  = reflect.TypeOf("")
)

// FromGoType returns the DType for the given "reflect.Type".
// Named types are mapped by their kind, except float16.Float16 which has its own DType.
// It returns InvalidDType for types without a DType, and for nil.
func FromGoType(t reflect.Type) DType {
	if t == nil {
		return InvalidDType
	}
	if t == float16Type {
		return Float16
	}
	switch t.Kind() {
	case reflect.Int:
		if strconv.IntSize == 32 {
			return Int32
		}
		return Int64
	case reflect.Int64:
		return Int64
	case reflect.Int32:
		return Int32
	case reflect.Int16:
		return Int16
	case reflect.Int8:
		return Int8

	case reflect.Uint:
		if strconv.IntSize == 32 {
			return Uint32
		}
		return Uint64
	case reflect.Uint64:
		return Uint64
	case reflect.Uint32:
		return Uint32
	case reflect.Uint16:
		return Uint16
	case reflect.Uint8:
		return Uint8

	case reflect.Bool:
		return Bool

	case reflect.Float32:
		return Float32
	case reflect.Float64:
		return Float64

	case reflect.Complex64:
		return Complex64
	case reflect.Complex128:
		return Complex128

	case reflect.String:
		return String
	default:
		return InvalidDType
	}
}

// GoType returns the Go `reflect.Type` corresponding to the DType.
func (dtype DType) GoType() reflect.Type {
	switch dtype {
	case Int64:
		return reflect.TypeOf(int64(0))
	case Int32:
		return reflect.TypeOf(int32(0))
	case Int16:
		return reflect.TypeOf(int16(0))
	case Int8:
		return reflect.TypeOf(int8(0))

	case Uint64:
		return reflect.TypeOf(uint64(0))
	case Uint32:
		return reflect.TypeOf(uint32(0))
	case Uint16:
		return reflect.TypeOf(uint16(0))
	case Uint8:
		return reflect.TypeOf(uint8(0))

	case Bool:
		return reflect.TypeOf(true)

	case Float16:
		return float16Type
	case Float32:
		return reflect.TypeOf(float32(0))
	case Float64:
		return reflect.TypeOf(float64(0))

	case Complex64:
		return reflect.TypeOf(complex64(0))
	case Complex128:
		return reflect.TypeOf(complex128(0))

	case String:
		return stringType

	default:
		panicf("unknown dtype %q (%d) in DType.GoType", dtype, dtype)
		panic(nil)
	}
}

// IsFloat returns whether dtype is a float. It returns false for complex numbers.
func (dtype DType) IsFloat() bool {
	return dtype == Float16 || dtype == Float32 || dtype == Float64
}

// IsComplex returns whether dtype is a complex number type.
func (dtype DType) IsComplex() bool {
	return dtype == Complex64 || dtype == Complex128
}

// IsInt returns whether dtype is an integer type, signed or unsigned.
func (dtype DType) IsInt() bool {
	return (dtype >= Int8 && dtype <= Int64) || dtype.IsUnsigned()
}

// IsUnsigned returns whether dtype is one of the unsigned integer types.
func (dtype DType) IsUnsigned() bool {
	return dtype >= Uint8 && dtype <= Uint64
}

// FromFloat64 converts a float64 (e.g., decoded from JSON) to a value of the Go type of the dtype.
// Complex dtypes take x as the real part.
// It returns an error for Bool, String and InvalidDType.
func (dtype DType) FromFloat64(x float64) (any, error) {
	switch {
	case dtype == Float16:
		return float16.Fromfloat32(float32(x)), nil
	case dtype.IsFloat() || dtype.IsInt():
		return reflect.ValueOf(x).Convert(dtype.GoType()).Interface(), nil
	case dtype.IsComplex():
		return reflect.ValueOf(complex(x, 0)).Convert(dtype.GoType()).Interface(), nil
	}
	return nil, errors.Errorf("cannot convert number %g to dtype %s", x, dtype)
}
