// Package shapes defines Shape: the data type and dimensions of a tensor
// value, either a concrete tensor or the declared type of a value in a MIR
// program.
//
// Dimensions may be symbolic: a placeholder for a dimension whose size is not
// yet bound. Symbolic dimensions are created with NewSymbolicDim and are
// encoded as negative sentinels, so a Shape with only positive dimensions is
// fully defined.
package shapes

import (
	"fmt"
	"slices"
	"strings"
	"sync/atomic"

	"github.com/gomlx/exceptions"
	"github.com/gomlx/gopjrt/dtypes"
)

// Shape represents the shape of either a concrete tensor or the declared
// output type of a value in a MIR program.
//
// Use Make to create a new shape.
type Shape struct {
	DType      dtypes.DType
	Dimensions []int
}

// Make returns a Shape structure filled with the values given.
//
// Dimensions must be positive or symbolic (see NewSymbolicDim); a zero
// dimension is invalid.
func Make(dtype dtypes.DType, dimensions ...int) Shape {
	s := Shape{DType: dtype, Dimensions: slices.Clone(dimensions)}
	for _, dim := range dimensions {
		if dim == 0 {
			exceptions.Panicf("shapes.Make(%s): cannot create a shape with a zero dimension", s)
		}
	}
	return s
}

// Scalar returns a scalar Shape for the given type.
func Scalar[T dtypes.Supported]() Shape {
	return Shape{DType: dtypes.FromGenericsType[T]()}
}

// Invalid returns an invalid shape.
//
// Invalid().Ok() == false.
func Invalid() Shape {
	return Shape{DType: dtypes.InvalidDType}
}

// Ok returns whether this is a valid Shape. A "zero" shape, that is just
// instantiating it with Shape{}, will be invalid.
func (s Shape) Ok() bool { return s.DType != dtypes.InvalidDType }

// Rank of the shape, that is, the number of axes.
func (s Shape) Rank() int { return len(s.Dimensions) }

// IsScalar returns whether the shape represents a scalar: no dimensions, a single value.
func (s Shape) IsScalar() bool { return s.Ok() && s.Rank() == 0 }

// IsFullyDefined returns whether all dimensions are concrete (no symbolic dimensions).
func (s Shape) IsFullyDefined() bool {
	for _, dim := range s.Dimensions {
		if IsSymbolic(dim) {
			return false
		}
	}
	return true
}

// Size returns the number of elements a tensor of this shape holds.
// It returns -1 if the shape is not fully defined.
func (s Shape) Size() int {
	size := 1
	for _, dim := range s.Dimensions {
		if IsSymbolic(dim) {
			return -1
		}
		size *= dim
	}
	return size
}

// Clone makes a deep copy of the shape.
func (s Shape) Clone() Shape {
	return Shape{DType: s.DType, Dimensions: slices.Clone(s.Dimensions)}
}

// Equal compares dtype and dimensions. Symbolic dimensions only compare equal
// to the same symbol.
func (s Shape) Equal(other Shape) bool {
	return s.DType == other.DType && slices.Equal(s.Dimensions, other.Dimensions)
}

// WithDType returns a copy of the shape with the dtype replaced.
func (s Shape) WithDType(dtype dtypes.DType) Shape {
	return Shape{DType: dtype, Dimensions: slices.Clone(s.Dimensions)}
}

// String implements fmt.Stringer. Symbolic dimensions print as "s<id>".
func (s Shape) String() string {
	if !s.Ok() {
		return "(invalid shape)"
	}
	if s.IsScalar() {
		return fmt.Sprintf("(%s)", s.DType)
	}
	parts := make([]string, len(s.Dimensions))
	for i, dim := range s.Dimensions {
		parts[i] = DimString(dim)
	}
	return fmt.Sprintf("(%s)[%s]", s.DType, strings.Join(parts, " "))
}

// symbolCounter generates fresh symbolic dimension ids.
var symbolCounter atomic.Int64

// NewSymbolicDim returns a fresh symbolic dimension: a placeholder for an
// unknown, unbound dimension size. Each call returns a distinct symbol.
func NewSymbolicDim() int {
	return -int(symbolCounter.Add(1))
}

// IsSymbolic returns whether the dimension value encodes a symbolic dimension.
func IsSymbolic(dim int) bool { return dim < 0 }

// DimString returns the string representation of one dimension: the number
// itself, or "s<id>" for a symbolic dimension.
func DimString(dim int) string {
	if IsSymbolic(dim) {
		return fmt.Sprintf("s%d", -dim)
	}
	return fmt.Sprintf("%d", dim)
}
