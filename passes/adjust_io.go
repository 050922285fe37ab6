package passes

import (
	"slices"

	"github.com/gomlx/go-mir"
	"github.com/gomlx/go-mir/internal/optypes"
	"github.com/gomlx/go-mir/internal/utils"
	"github.com/gomlx/go-mir/types"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

type adjustIOToSupportedTypes struct{}

// AdjustIOToSupportedTypes returns the "backend::adjust_io_to_supported_types"
// pass: it legalizes the function's I/O boundary for the deployment target.
//
// Inputs with a dtype the target cannot feed are redeclared with the nearest
// supported dtype (integers to int32, floats to fp32) and a cast back to the
// original dtype is inserted, so the function body is unchanged. Returned
// values with an unsupported dtype get a cast to the nearest supported dtype
// before the return.
//
// With an unrestricted target (types.TargetNone) the pass is a no-op.
func AdjustIOToSupportedTypes() Pass {
	return adjustIOToSupportedTypes{}
}

func (adjustIOToSupportedTypes) Name() string {
	return "backend::adjust_io_to_supported_types"
}

func (adjustIOToSupportedTypes) Apply(fn *mir.Function, ctx *Context) error {
	supported := ctx.Target.SupportedIODTypes()
	if supported == nil {
		return nil
	}

	// Legalize inputs: redeclare with the supported dtype and cast back to the
	// original dtype for the body.
	for _, input := range fn.Inputs {
		if supported.Has(input.DType()) {
			continue
		}
		original := input.DType()
		legal, err := nearestSupported(original, supported)
		if err != nil {
			return errors.WithMessagef(err, "legalizing input %s of function %q for target %s", input, fn.Name, ctx.Target)
		}
		input.RebindDType(legal)
		cast := &mir.Statement{
			Function: fn,
			OpType:   optypes.Cast,
			Inputs:   []*mir.Value{input},
			Attributes: map[string]any{
				"dtype": types.DTypeName(original),
			},
			Outputs: []*mir.Value{fn.NewValue(input.Shape().WithDType(original))},
		}
		fn.ReplaceAllUses(input, cast.Outputs[0])
		fn.Statements = slices.Insert(fn.Statements, 0, cast)
		klog.V(1).Infof("adjust_io_to_supported_types: input %s of %q legalized %s -> %s for target %s",
			input, fn.Name, original, legal, ctx.Target)
	}

	// Legalize outputs: cast returned values to a supported dtype.
	ret := fn.ReturnStatement()
	if ret == nil {
		return nil
	}
	for i, value := range ret.Inputs {
		if supported.Has(value.DType()) {
			continue
		}
		original := value.DType()
		legal, err := nearestSupported(original, supported)
		if err != nil {
			return errors.WithMessagef(err, "legalizing output #%d of function %q for target %s", i, fn.Name, ctx.Target)
		}
		cast := &mir.Statement{
			Function: fn,
			OpType:   optypes.Cast,
			Inputs:   []*mir.Value{value},
			Attributes: map[string]any{
				"dtype": types.DTypeName(legal),
			},
			Outputs: []*mir.Value{fn.NewValue(value.Shape().WithDType(legal))},
		}
		retPos := slices.Index(fn.Statements, ret)
		fn.Statements = slices.Insert(fn.Statements, retPos, cast)
		ret.Inputs[i] = cast.Outputs[0]
		klog.V(1).Infof("adjust_io_to_supported_types: output #%d of %q legalized %s -> %s for target %s",
			i, fn.Name, original, legal, ctx.Target)
	}
	fn.RefreshOutputs()
	return nil
}

// nearestSupported picks the supported dtype an unsupported I/O dtype is
// legalized to: integers map to the supported integer type, floats to the
// widest supported float.
func nearestSupported(dtype dtypes.DType, supported utils.Set[dtypes.DType]) (dtypes.DType, error) {
	wantFloat := dtype.IsFloat()
	best := dtypes.InvalidDType
	for candidate := range supported {
		if candidate.IsFloat() != wantFloat {
			continue
		}
		if best == dtypes.InvalidDType || candidate.Memory() > best.Memory() {
			best = candidate
		}
	}
	if best == dtypes.InvalidDType {
		return best, errors.Errorf("no supported I/O dtype to legalize %s (supported: %v)", dtype, supported)
	}
	return best, nil
}
