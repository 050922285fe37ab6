// Package tensors implements the immutable multi-dimensional arrays fed to
// and returned by MIR programs: a flat data buffer plus a fully defined
// shape.
//
// Values are stored in their native Go representation per dtype; float16 uses
// github.com/x448/float16.
package tensors

import (
	"fmt"
	"reflect"

	"github.com/gomlx/go-mir/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"github.com/x448/float16"
)

// Tensor is an immutable multi-dimensional array of numeric values with a
// concrete shape and element dtype.
//
// Construct one with FromFlatAndDimensions or FromAnyValue; once constructed
// it should not be modified.
type Tensor struct {
	shape shapes.Shape
	flat  any
}

// supportedDTypes are the element types a Tensor can hold.
var supportedDTypes = map[dtypes.DType]bool{
	dtypes.Float16: true,
	dtypes.Float32: true,
	dtypes.Float64: true,
	dtypes.Int16:   true,
	dtypes.Int32:   true,
	dtypes.Int64:   true,
	dtypes.Uint16:  true,
}

// IsSupportedDType returns whether dtype can be stored in a Tensor.
func IsSupportedDType(dtype dtypes.DType) bool { return supportedDTypes[dtype] }

// FromFlatAndDimensions creates a Tensor from a flat slice with the raw
// values and the dimensions of the shape. The dtype is inferred from the
// slice element type ([]float16.Float16 for Float16).
func FromFlatAndDimensions(flat any, dimensions ...int) (*Tensor, error) {
	flatV := reflect.ValueOf(flat)
	if flatV.Kind() != reflect.Slice {
		return nil, errors.Errorf("FromFlatAndDimensions expects a flat slice, got %T", flat)
	}
	dtype := dtypes.FromGoType(flatV.Type().Elem())
	if dtype == dtypes.InvalidDType || !supportedDTypes[dtype] {
		return nil, errors.Errorf("unsupported flat values type %T for a tensor", flat)
	}
	shape := shapes.Make(dtype, dimensions...)
	if !shape.IsFullyDefined() {
		return nil, errors.Errorf("tensors require fully defined shapes, got %s", shape)
	}
	if shape.Size() != flatV.Len() {
		return nil, errors.Errorf("flat values size %d doesn't match shape size %d (%s)", flatV.Len(), shape.Size(), shape)
	}
	stored := reflect.MakeSlice(flatV.Type(), flatV.Len(), flatV.Len())
	reflect.Copy(stored, flatV)
	return &Tensor{shape: shape, flat: stored.Interface()}, nil
}

// FromAnyValue creates a Tensor from a Go value: a plain-old-data scalar or
// (multiple levels of) slices of them. The shape is inferred from the nesting.
//
// Example:
//
//	t, err := tensors.FromAnyValue([][]float32{{-1, 2, -3}, {4, -5, 6}})
func FromAnyValue(value any) (*Tensor, error) {
	shape, err := shapes.FromAnyValue(value)
	if err != nil {
		return nil, err
	}
	if !supportedDTypes[shape.DType] {
		return nil, errors.Errorf("unsupported tensor dtype %s (from %T)", shape.DType, value)
	}
	flatV := reflect.MakeSlice(reflect.SliceOf(shape.DType.GoType()), 0, shape.Size())
	flatV = flattenRecursive(flatV, reflect.ValueOf(value))
	return &Tensor{shape: shape, flat: flatV.Interface()}, nil
}

func flattenRecursive(flat, v reflect.Value) reflect.Value {
	if v.Kind() != reflect.Slice {
		return reflect.Append(flat, v)
	}
	for i := 0; i < v.Len(); i++ {
		flat = flattenRecursive(flat, v.Index(i))
	}
	return flat
}

// FromScalar creates a scalar (rank-0) Tensor from the given value.
func FromScalar(value any) (*Tensor, error) {
	return FromAnyValue(value)
}

// Shape of the tensor.
func (t *Tensor) Shape() shapes.Shape { return t.shape }

// DType of the tensor elements.
func (t *Tensor) DType() dtypes.DType { return t.shape.DType }

// Dimensions of the tensor shape.
func (t *Tensor) Dimensions() []int { return t.shape.Clone().Dimensions }

// Size is the number of elements stored.
func (t *Tensor) Size() int { return t.shape.Size() }

// Flat returns a copy of the flattened values, as a slice of the Go type
// corresponding to the tensor dtype (row-major order).
func (t *Tensor) Flat() any {
	flatV := reflect.ValueOf(t.flat)
	out := reflect.MakeSlice(flatV.Type(), flatV.Len(), flatV.Len())
	reflect.Copy(out, flatV)
	return out.Interface()
}

// Float64s returns the flattened values converted to float64, row-major.
func (t *Tensor) Float64s() []float64 {
	out := make([]float64, t.Size())
	switch flat := t.flat.(type) {
	case []float16.Float16:
		for i, v := range flat {
			out[i] = float64(v.Float32())
		}
	case []float32:
		for i, v := range flat {
			out[i] = float64(v)
		}
	case []float64:
		copy(out, flat)
	case []int16:
		for i, v := range flat {
			out[i] = float64(v)
		}
	case []int32:
		for i, v := range flat {
			out[i] = float64(v)
		}
	case []int64:
		for i, v := range flat {
			out[i] = float64(v)
		}
	case []uint16:
		for i, v := range flat {
			out[i] = float64(v)
		}
	}
	return out
}

// Int64s returns the flattened values converted to int64 (truncation toward
// zero for float dtypes), row-major.
func (t *Tensor) Int64s() []int64 {
	out := make([]int64, t.Size())
	switch flat := t.flat.(type) {
	case []float16.Float16:
		for i, v := range flat {
			out[i] = int64(v.Float32())
		}
	case []float32:
		for i, v := range flat {
			out[i] = int64(v)
		}
	case []float64:
		for i, v := range flat {
			out[i] = int64(v)
		}
	case []int16:
		for i, v := range flat {
			out[i] = int64(v)
		}
	case []int32:
		for i, v := range flat {
			out[i] = int64(v)
		}
	case []int64:
		copy(out, flat)
	case []uint16:
		for i, v := range flat {
			out[i] = int64(v)
		}
	}
	return out
}

// FromInt64s creates a Tensor of the given integer dtype and dimensions from
// int64 values.
func FromInt64s(values []int64, dtype dtypes.DType, dimensions ...int) (*Tensor, error) {
	if !supportedDTypes[dtype] || !dtype.IsInt() {
		return nil, errors.Errorf("FromInt64s requires a supported integer dtype, got %s", dtype)
	}
	shape := shapes.Make(dtype, dimensions...)
	if shape.Size() != len(values) {
		return nil, errors.Errorf("got %d values for shape %s of size %d", len(values), shape, shape.Size())
	}
	var flat any
	switch dtype {
	case dtypes.Int16:
		s := make([]int16, len(values))
		for i, v := range values {
			s[i] = int16(v)
		}
		flat = s
	case dtypes.Int32:
		s := make([]int32, len(values))
		for i, v := range values {
			s[i] = int32(v)
		}
		flat = s
	case dtypes.Int64:
		s := make([]int64, len(values))
		copy(s, values)
		flat = s
	case dtypes.Uint16:
		s := make([]uint16, len(values))
		for i, v := range values {
			s[i] = uint16(v)
		}
		flat = s
	}
	return &Tensor{shape: shape, flat: flat}, nil
}

// FromFloat64s creates a Tensor of the given dtype and dimensions from
// float64 values, applying standard numeric conversion rules (truncation
// toward zero for integer dtypes, rounding to nearest for float16).
func FromFloat64s(values []float64, dtype dtypes.DType, dimensions ...int) (*Tensor, error) {
	if !supportedDTypes[dtype] {
		return nil, errors.Errorf("unsupported tensor dtype %s", dtype)
	}
	shape := shapes.Make(dtype, dimensions...)
	if shape.Size() != len(values) {
		return nil, errors.Errorf("got %d values for shape %s of size %d", len(values), shape, shape.Size())
	}
	var flat any
	switch dtype {
	case dtypes.Float16:
		s := make([]float16.Float16, len(values))
		for i, v := range values {
			s[i] = float16.Fromfloat32(float32(v))
		}
		flat = s
	case dtypes.Float32:
		s := make([]float32, len(values))
		for i, v := range values {
			s[i] = float32(v)
		}
		flat = s
	case dtypes.Float64:
		s := make([]float64, len(values))
		copy(s, values)
		flat = s
	case dtypes.Int16:
		s := make([]int16, len(values))
		for i, v := range values {
			s[i] = int16(v)
		}
		flat = s
	case dtypes.Int32:
		s := make([]int32, len(values))
		for i, v := range values {
			s[i] = int32(v)
		}
		flat = s
	case dtypes.Int64:
		s := make([]int64, len(values))
		for i, v := range values {
			s[i] = int64(v)
		}
		flat = s
	case dtypes.Uint16:
		s := make([]uint16, len(values))
		for i, v := range values {
			s[i] = uint16(v)
		}
		flat = s
	}
	return &Tensor{shape: shape, flat: flat}, nil
}

// ConvertDType returns a tensor with the same values reinterpreted into the
// target dtype, with truncation/rounding per standard numeric conversion
// rules. Converting to the tensor's own dtype returns the tensor itself.
func (t *Tensor) ConvertDType(dtype dtypes.DType) (*Tensor, error) {
	if dtype == t.shape.DType {
		return t, nil
	}
	if t.shape.DType.IsInt() && dtype.IsInt() {
		// Integer-to-integer conversions stay exact.
		return FromInt64s(t.Int64s(), dtype, t.shape.Dimensions...)
	}
	return FromFloat64s(t.Float64s(), dtype, t.shape.Dimensions...)
}

// Equal reports whether both tensors have the same shape and exactly the same values.
func (t *Tensor) Equal(other *Tensor) bool {
	if !t.shape.Equal(other.shape) {
		return false
	}
	a, b := t.Float64s(), other.Float64s()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// String implements fmt.Stringer.
func (t *Tensor) String() string {
	return fmt.Sprintf("%s: %v", t.shape, t.flat)
}
