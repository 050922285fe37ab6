// Package shapeinference calculates the output shapes of MIR operations and
// validates that the operand dtypes are valid for each operation.
//
// It is used by the builder when constructing a program: every operation goes
// through here before a statement is added, so an invalid graph is rejected
// at construction time, not at compile or run time.
//
// Symbolic dimensions pass through inference untouched: an elementwise
// operation over a shape with an unresolved dimension produces an output
// shape carrying the same unresolved dimension.
package shapeinference

import (
	"github.com/gomlx/go-mir/internal/optypes"
	"github.com/gomlx/go-mir/internal/utils"
	"github.com/gomlx/go-mir/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

var (
	// FloatOperations require a float dtype (fp16, fp32, fp64) operand.
	FloatOperations = utils.SetWith(
		optypes.Acos,
		optypes.Asin,
		optypes.Atan,
		optypes.Atanh,
		optypes.Ceil,
		optypes.Clip,
		optypes.Cos,
		optypes.Cosh,
		optypes.Erf,
		optypes.Exp,
		optypes.Exp2,
		optypes.Floor,
		optypes.Inverse,
		optypes.Log,
		optypes.Round,
		optypes.Rsqrt,
		optypes.Sin,
		optypes.Sinh,
		optypes.Sqrt,
		optypes.Tan,
		optypes.Tanh,
		optypes.Threshold,
	)

	// NumberOperations accept any numeric dtype (float or integer).
	NumberOperations = utils.SetWith(
		optypes.Abs,
		optypes.Sign,
		optypes.Square,
	)

	// StandardUnaryOperations include all elementwise operations with a single
	// tensor operand whose output shape and dtype equal the operand's.
	StandardUnaryOperations = func() utils.Set[optypes.OpType] {
		s := utils.MakeSet[optypes.OpType](len(FloatOperations) + len(NumberOperations))
		for op := range FloatOperations {
			s.Insert(op)
		}
		for op := range NumberOperations {
			s.Insert(op)
		}
		return s
	}()
)

// UnaryOp checks the validity of the operand dtype for the elementwise
// operations in StandardUnaryOperations and returns either an error or the
// output shape, which is the same as the operand -- including any symbolic
// dimensions.
func UnaryOp(opType optypes.OpType, operand shapes.Shape) (output shapes.Shape, err error) {
	if !StandardUnaryOperations.Has(opType) {
		err = errors.Errorf("operation %s is not in the StandardUnaryOperations set, cannot process it with UnaryOp", opType)
		return
	}
	if operand.DType == dtypes.InvalidDType {
		err = errors.Errorf("invalid shape %s for UnaryOp %s", operand, opType)
		return
	}
	if FloatOperations.Has(opType) && !operand.DType.IsFloat() {
		err = errors.Errorf("float UnaryOp %s must have a float (Float16, Float32, Float64) data type as input, got %s", opType, operand)
		return
	}
	if NumberOperations.Has(opType) && !(operand.DType.IsInt() || operand.DType.IsFloat()) {
		err = errors.Errorf("numeric UnaryOp %s must have a number (Int32, Float32, ...) data type as input, got %s", opType, operand)
		return
	}
	output = operand.Clone()
	return
}

// CastOp returns the output shape of a cast: the operand shape with the
// dtype replaced by the target dtype.
func CastOp(operand shapes.Shape, dtype dtypes.DType) (shapes.Shape, error) {
	if operand.DType == dtypes.InvalidDType {
		return shapes.Invalid(), errors.Errorf("invalid shape %s for Cast", operand)
	}
	if dtype == dtypes.InvalidDType {
		return shapes.Invalid(), errors.Errorf("invalid target dtype for Cast of %s", operand)
	}
	return operand.WithDType(dtype), nil
}

// ShapeOp returns the output shape of the shape-extraction operation: a
// rank-length vector of int32, regardless of whether the operand dimensions
// are concrete or symbolic.
func ShapeOp(operand shapes.Shape) (shapes.Shape, error) {
	if operand.DType == dtypes.InvalidDType {
		return shapes.Invalid(), errors.Errorf("invalid shape %s for Shape", operand)
	}
	if operand.IsScalar() {
		return shapes.Invalid(), errors.Errorf("Shape of a scalar is not defined, got %s", operand)
	}
	return shapes.Make(dtypes.Int32, operand.Rank()), nil
}
