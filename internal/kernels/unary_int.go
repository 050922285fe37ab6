package kernels

import (
	"github.com/gomlx/go-mir/internal/optypes"
	"github.com/gomlx/go-mir/types/tensors"
	"github.com/pkg/errors"
)

// unaryInt executes the elementwise operations defined on integer dtypes,
// keeping the math in int64 so values outside the float64 exact-integer
// range stay exact.
func unaryInt(op optypes.OpType, x *tensors.Tensor) (*tensors.Tensor, error) {
	var f func(int64) int64
	switch op {
	case optypes.Abs:
		f = func(v int64) int64 {
			if v < 0 {
				return -v
			}
			return v
		}
	case optypes.Sign:
		f = func(v int64) int64 {
			if v > 0 {
				return 1
			}
			if v < 0 {
				return -1
			}
			return 0
		}
	case optypes.Square:
		f = func(v int64) int64 { return v * v }
	default:
		return nil, errors.Errorf("operation %s is not defined for integer dtype %s", op, x.DType())
	}
	in := x.Int64s()
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = f(v)
	}
	return tensors.FromInt64s(out, x.DType(), x.Shape().Dimensions...)
}
