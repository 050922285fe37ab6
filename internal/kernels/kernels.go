// Package kernels implements the elementwise numeric kernels shared by the
// builder's value inference and the interpreting backend.
//
// All float math is computed in float64 and converted back to the operand
// dtype (float16 through github.com/x448/float16), so value inference and
// backend execution agree bit-for-bit.
package kernels

import (
	"math"

	"github.com/gomlx/go-mir/internal/optypes"
	"github.com/gomlx/go-mir/types/tensors"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// Params carries the scalar parameters of elementwise operations. Only the
// fields an operation consumes are read: Epsilon for inverse/log/rsqrt,
// Alpha for threshold and clip, Beta for clip, DType for cast.
type Params struct {
	Epsilon float64
	Alpha   float64
	Beta    float64
	DType   dtypes.DType
}

// Unary applies the elementwise operation op to x and returns a fresh tensor
// of the same dimensions. The output dtype equals the input's, except for
// Cast which converts to Params.DType.
func Unary(op optypes.OpType, x *tensors.Tensor, p Params) (*tensors.Tensor, error) {
	switch op {
	case optypes.Identity:
		return x, nil
	case optypes.Cast:
		return x.ConvertDType(p.DType)
	case optypes.Shape:
		return ShapeVector(x)
	}
	if x.DType().IsInt() {
		return unaryInt(op, x)
	}
	f, err := scalarFunc(op, p)
	if err != nil {
		return nil, err
	}
	in := x.Float64s()
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return tensors.FromFloat64s(out, x.DType(), x.Shape().Dimensions...)
}

// ShapeVector returns the dimensions of x as an int32 vector of length rank.
func ShapeVector(x *tensors.Tensor) (*tensors.Tensor, error) {
	dims := x.Shape().Dimensions
	if len(dims) == 0 {
		return nil, errors.Errorf("shape of a scalar tensor is not defined")
	}
	out := make([]int64, len(dims))
	for i, dim := range dims {
		out[i] = int64(dim)
	}
	return tensors.FromInt64s(out, dtypes.Int32, len(dims))
}

// scalarFunc returns the float64 function computed elementwise by op.
func scalarFunc(op optypes.OpType, p Params) (func(float64) float64, error) {
	switch op {
	case optypes.Abs:
		return math.Abs, nil
	case optypes.Acos:
		return math.Acos, nil
	case optypes.Asin:
		return math.Asin, nil
	case optypes.Atan:
		return math.Atan, nil
	case optypes.Atanh:
		return math.Atanh, nil
	case optypes.Ceil:
		return math.Ceil, nil
	case optypes.Clip:
		return func(v float64) float64 { return math.Min(math.Max(v, p.Alpha), p.Beta) }, nil
	case optypes.Cos:
		return math.Cos, nil
	case optypes.Cosh:
		return math.Cosh, nil
	case optypes.Erf:
		return math.Erf, nil
	case optypes.Exp:
		return math.Exp, nil
	case optypes.Exp2:
		return math.Exp2, nil
	case optypes.Floor:
		return math.Floor, nil
	case optypes.Inverse:
		return func(v float64) float64 { return 1 / (v + p.Epsilon) }, nil
	case optypes.Log:
		return func(v float64) float64 { return math.Log(v + p.Epsilon) }, nil
	case optypes.Round:
		return math.Round, nil
	case optypes.Rsqrt:
		return func(v float64) float64 { return 1 / math.Sqrt(v+p.Epsilon) }, nil
	case optypes.Sign:
		return sign, nil
	case optypes.Sin:
		return math.Sin, nil
	case optypes.Sinh:
		return math.Sinh, nil
	case optypes.Sqrt:
		return math.Sqrt, nil
	case optypes.Square:
		return func(v float64) float64 { return v * v }, nil
	case optypes.Tan:
		return math.Tan, nil
	case optypes.Tanh:
		return math.Tanh, nil
	case optypes.Threshold:
		return func(v float64) float64 { return math.Max(v, p.Alpha) }, nil
	}
	return nil, errors.Errorf("no elementwise kernel for operation %s", op)
}

func sign(v float64) float64 {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return v // Preserves 0 and NaN.
}
