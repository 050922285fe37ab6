package mir

import (
	"github.com/gomlx/go-mir/internal/kernels"
	"github.com/gomlx/go-mir/internal/optypes"
	"github.com/gomlx/go-mir/shapeinference"
	"github.com/gomlx/go-mir/types"
	"github.com/gomlx/go-mir/types/shapes"
	"github.com/gomlx/go-mir/types/tensors"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// addOp adds a new operation to the function.
func (fn *Function) addOp(opType optypes.OpType, outputShape shapes.Shape, attributes map[string]any, inputs ...*Value) *Statement {
	stmt := &Statement{
		Function:   fn,
		OpType:     opType,
		Inputs:     inputs,
		Attributes: attributes,
		Outputs:    []*Value{fn.NewValue(outputShape)},
	}
	fn.Statements = append(fn.Statements, stmt)
	return stmt
}

// unaryOp adds a new elementwise unary operation to the function.
//
// If the operand value is known at build time, the output value is eagerly
// evaluated with the same kernels the backend uses, and recorded in the
// output (see Value.Inferred).
func (fn *Function) unaryOp(op optypes.OpType, operand *Value, attributes map[string]any) (*Value, error) {
	if fn.Returned {
		return nil, errors.Errorf("cannot add operation %s after returning, in function %q",
			op, fn.Name)
	}
	if operand.fn != fn {
		return nil, errors.Errorf("cannot add operation %s to function %q, because the operand is not part of the function",
			op, fn.Name)
	}
	outputShape, err := shapeinference.UnaryOp(op, operand.shape)
	if err != nil {
		return nil, err
	}
	stmt := fn.addOp(op, outputShape, attributes, operand)
	if err := inferStatementValue(stmt); err != nil {
		return nil, err
	}
	return stmt.Outputs[0], nil
}

// inferStatementValue eagerly evaluates the statement when its operand value
// is known at build time.
func inferStatementValue(stmt *Statement) error {
	operand := stmt.Inputs[0]
	if operand.inferred == nil {
		return nil
	}
	params, err := kernels.ParamsFromAttributes(stmt.Attributes)
	if err != nil {
		return err
	}
	result, err := kernels.Unary(stmt.OpType, operand.inferred, params)
	if err != nil {
		return errors.WithMessagef(err, "while inferring the value of %s", stmt.OpType)
	}
	stmt.Outputs[0].inferred = result
	return nil
}

// Abs returns the element-wise absolute value of x. It accepts float and
// integer dtypes.
func Abs(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Abs, x, nil)
}

// Acos returns the element-wise arccosine of x, in radians.
func Acos(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Acos, x, nil)
}

// Asin returns the element-wise arcsine of x, in radians.
func Asin(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Asin, x, nil)
}

// Atan returns the element-wise arctangent of x, in radians.
func Atan(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Atan, x, nil)
}

// Atanh returns the element-wise inverse hyperbolic tangent of x.
// Values at ±1 yield ±infinity, and values outside [-1, 1] yield NaN.
func Atanh(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Atanh, x, nil)
}

// Ceil returns x rounded element-wise towards positive infinity.
func Ceil(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Ceil, x, nil)
}

// Clip limits x element-wise to the closed interval [alpha, beta].
func Clip(x *Value, alpha, beta float64) (*Value, error) {
	if alpha > beta {
		return nil, errors.Errorf("Clip requires alpha <= beta, got alpha=%g, beta=%g", alpha, beta)
	}
	return x.fn.unaryOp(optypes.Clip, x, map[string]any{
		"alpha": alpha,
		"beta":  beta,
	})
}

// Cos returns the element-wise cosine of x, with x in radians.
func Cos(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Cos, x, nil)
}

// Cosh returns the element-wise hyperbolic cosine of x.
func Cosh(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Cosh, x, nil)
}

// Erf returns the element-wise Gauss error function of x.
func Erf(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Erf, x, nil)
}

// Exp returns the element-wise natural exponential of x.
func Exp(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Exp, x, nil)
}

// Exp2 returns the element-wise base-2 exponential of x.
func Exp2(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Exp2, x, nil)
}

// Floor returns x rounded element-wise towards negative infinity.
func Floor(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Floor, x, nil)
}

// Identity returns a new value aliasing x. It accepts any dtype.
func Identity(x *Value) (*Value, error) {
	fn := x.fn
	if fn.Returned {
		return nil, errors.Errorf("cannot add operation %s after returning, in function %q",
			optypes.Identity, fn.Name)
	}
	stmt := fn.addOp(optypes.Identity, x.shape.Clone(), nil, x)
	stmt.Outputs[0].inferred = x.inferred
	stmt.Outputs[0].symval = x.SymbolicValue()
	return stmt.Outputs[0], nil
}

// Inverse returns the element-wise reciprocal 1/(x+epsilon).
//
// Epsilon stabilizes inputs close to zero; pass 0 for the exact reciprocal.
func Inverse(x *Value, epsilon float64) (*Value, error) {
	return x.fn.unaryOp(optypes.Inverse, x, map[string]any{
		"epsilon": epsilon,
	})
}

// Log returns the element-wise natural logarithm log(x+epsilon).
//
// Epsilon stabilizes inputs close to zero; pass 0 for the exact logarithm.
func Log(x *Value, epsilon float64) (*Value, error) {
	return x.fn.unaryOp(optypes.Log, x, map[string]any{
		"epsilon": epsilon,
	})
}

// Round returns x rounded element-wise to the nearest integer, with ties
// rounded away from zero.
func Round(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Round, x, nil)
}

// Rsqrt returns the element-wise reciprocal square root 1/sqrt(x+epsilon).
//
// Epsilon stabilizes inputs close to zero; pass 0 for the exact value.
func Rsqrt(x *Value, epsilon float64) (*Value, error) {
	return x.fn.unaryOp(optypes.Rsqrt, x, map[string]any{
		"epsilon": epsilon,
	})
}

// Sign returns the element-wise sign of x: -1, 0 or 1. Zero and NaN inputs
// are returned unchanged.
func Sign(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Sign, x, nil)
}

// Sin returns the element-wise sine of x, with x in radians.
func Sin(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Sin, x, nil)
}

// Sinh returns the element-wise hyperbolic sine of x.
func Sinh(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Sinh, x, nil)
}

// Sqrt returns the element-wise square root of x.
func Sqrt(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Sqrt, x, nil)
}

// Square returns the element-wise square of x. It accepts float and integer
// dtypes.
func Square(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Square, x, nil)
}

// Tan returns the element-wise tangent of x, with x in radians.
func Tan(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Tan, x, nil)
}

// Tanh returns the element-wise hyperbolic tangent of x.
func Tanh(x *Value) (*Value, error) {
	return x.fn.unaryOp(optypes.Tanh, x, nil)
}

// Threshold returns max(x, alpha) element-wise.
func Threshold(x *Value, alpha float64) (*Value, error) {
	return x.fn.unaryOp(optypes.Threshold, x, map[string]any{
		"alpha": alpha,
	})
}

// Cast converts x element-wise to the given dtype: the output has the
// operand's dimensions with the new element type.
//
// Float-to-integer casts truncate towards zero. If x is a symbolic shape
// vector (see Shape) and the target is an integer dtype, the symbolic value
// is carried through the cast.
func Cast(x *Value, dtype dtypes.DType) (*Value, error) {
	fn := x.fn
	if fn.Returned {
		return nil, errors.Errorf("cannot add operation %s after returning, in function %q",
			optypes.Cast, fn.Name)
	}
	outputShape, err := shapeinference.CastOp(x.shape, dtype)
	if err != nil {
		return nil, err
	}
	if !tensors.IsSupportedDType(dtype) {
		return nil, errors.Errorf("unsupported target dtype %s for %s", dtype, optypes.Cast)
	}
	stmt := fn.addOp(optypes.Cast, outputShape, map[string]any{
		"dtype": types.DTypeName(dtype),
	}, x)
	if err := inferStatementValue(stmt); err != nil {
		return nil, err
	}
	if x.symval != nil && dtype.IsInt() {
		stmt.Outputs[0].symval = x.SymbolicValue()
	}
	return stmt.Outputs[0], nil
}

// Shape returns the dimensions of x as an int32 vector of length rank(x).
//
// If x has symbolic dimensions, the returned value carries them symbolically
// (see Value.SymbolicValue), and they are resolved during execution; otherwise
// the vector is a build-time constant.
func Shape(x *Value) (*Value, error) {
	fn := x.fn
	if fn.Returned {
		return nil, errors.Errorf("cannot add operation %s after returning, in function %q",
			optypes.Shape, fn.Name)
	}
	outputShape, err := shapeinference.ShapeOp(x.shape)
	if err != nil {
		return nil, err
	}
	stmt := fn.addOp(optypes.Shape, outputShape, nil, x)
	output := stmt.Outputs[0]
	output.symval = append([]int(nil), x.shape.Dimensions...)
	if x.shape.IsFullyDefined() {
		dims := make([]int32, x.shape.Rank())
		for i, dim := range x.shape.Dimensions {
			dims[i] = int32(dim)
		}
		t, err := tensors.FromFlatAndDimensions(dims, len(dims))
		if err != nil {
			return nil, err
		}
		output.inferred = t
	}
	return output, nil
}
