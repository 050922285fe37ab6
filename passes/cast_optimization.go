package passes

import (
	"slices"

	"github.com/gomlx/go-mir"
	"github.com/gomlx/go-mir/internal/optypes"
	"github.com/gomlx/gopjrt/dtypes"
	"k8s.io/klog/v2"
)

type castOptimization struct{}

// CastOptimization returns the "common::cast_optimization" pass: it removes
// casts to the operand's own dtype, and collapses cast chains whose
// intermediate dtype preserves every operand value (for example
// fp16 -> fp32 -> fp16 collapses to no cast at all).
func CastOptimization() Pass {
	return castOptimization{}
}

func (castOptimization) Name() string {
	return "common::cast_optimization"
}

func (castOptimization) Apply(fn *mir.Function, ctx *Context) error {
	for {
		changed := false
		producers := castProducers(fn)
		var removed []*mir.Statement
		for _, stmt := range fn.FindOps(optypes.Cast) {
			input, output := stmt.Inputs[0], stmt.Outputs[0]

			// Collapse cast(cast(x, mid), dst) into cast(x, dst) when mid can
			// represent every value of x's dtype.
			if producer := producers[input]; producer != nil {
				orig := producer.Inputs[0]
				if isLosslessCast(orig.DType(), input.DType()) {
					stmt.Inputs[0] = orig
					changed = true
					continue
				}
			}

			// A cast to the operand's own dtype is a no-op.
			if input.DType() == output.DType() {
				fn.ReplaceAllUses(output, input)
				removed = append(removed, stmt)
				changed = true
			}
		}
		if len(removed) > 0 {
			klog.V(1).Infof("cast_optimization: removed %d redundant cast(s) from function %q", len(removed), fn.Name)
			fn.Statements = slices.DeleteFunc(fn.Statements, func(s *mir.Statement) bool {
				return slices.Contains(removed, s)
			})
		}
		if !changed {
			return nil
		}
	}
}

// castProducers maps each value produced by a cast statement to its statement.
func castProducers(fn *mir.Function) map[*mir.Value]*mir.Statement {
	producers := make(map[*mir.Value]*mir.Statement)
	for _, stmt := range fn.FindOps(optypes.Cast) {
		producers[stmt.Outputs[0]] = stmt
	}
	return producers
}

// isLosslessCast reports whether casting from src to dst preserves every
// representable src value.
func isLosslessCast(src, dst dtypes.DType) bool {
	if src == dst {
		return true
	}
	switch {
	case src.IsFloat() && dst.IsFloat():
		return dst.Memory() >= src.Memory()
	case src.IsInt() && dst.IsFloat():
		// The float mantissa must cover the integer range.
		return floatMantissaBits(dst) >= 8*int(src.Memory())
	case src.IsInt() && dst.IsInt():
		if src.IsUnsigned() == dst.IsUnsigned() {
			return dst.Memory() >= src.Memory()
		}
		if src.IsUnsigned() {
			// Unsigned fits in a strictly wider signed integer.
			return dst.Memory() > src.Memory()
		}
		return false
	}
	return false
}

func floatMantissaBits(dtype dtypes.DType) int {
	switch dtype {
	case dtypes.Float16:
		return 11
	case dtypes.Float32:
		return 24
	case dtypes.Float64:
		return 53
	}
	return 0
}
