package backend

import (
	"github.com/gomlx/go-mir"
	"github.com/gomlx/go-mir/internal/kernels"
	"github.com/gomlx/go-mir/internal/optypes"
	"github.com/gomlx/go-mir/types"
	"github.com/gomlx/go-mir/types/shapes"
	"github.com/gomlx/go-mir/types/tensors"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Executable is a compiled MIR program, ready to run. It is created by
// Compiler.Compile.
type Executable struct {
	program      *mir.Program
	main         *mir.Function
	computeUnits types.ComputeUnits
	target       types.DeploymentTarget
}

// Program returns the optimized program backing the executable, after the
// pass pipeline rewrites. It must not be modified.
func (e *Executable) Program() *mir.Program {
	return e.program
}

// Main returns the optimized main function, after the pass pipeline rewrites.
// It must not be modified.
func (e *Executable) Main() *mir.Function {
	return e.main
}

// Target returns the deployment target the program was compiled for.
func (e *Executable) Target() types.DeploymentTarget {
	return e.target
}

// ComputeUnits returns the compute units the executable was configured with.
func (e *Executable) ComputeUnits() types.ComputeUnits {
	return e.computeUnits
}

// Run executes the program's main function with the given inputs, keyed by
// input name, and returns the output tensors in return order.
//
// Input tensors are converted to the declared input dtype when they differ --
// the I/O legalization pass may have redeclared an input for the deployment
// target. Symbolic input dimensions are resolved from the fed tensors.
func (e *Executable) Run(inputs map[string]*tensors.Tensor) ([]*tensors.Tensor, error) {
	env := make(map[*mir.Value]*tensors.Tensor, len(e.main.Statements)+len(e.main.Inputs))
	if len(inputs) != len(e.main.Inputs) {
		return nil, errors.Errorf("program %q takes %d input(s), got %d", e.program.Name, len(e.main.Inputs), len(inputs))
	}
	for _, input := range e.main.Inputs {
		fed, ok := inputs[input.Name()]
		if !ok {
			return nil, errors.Errorf("missing input %q for program %q", input.Name(), e.program.Name)
		}
		if err := checkInputDimensions(input.Name(), input.Shape(), fed.Shape()); err != nil {
			return nil, err
		}
		if fed.DType() != input.DType() {
			klog.V(2).Infof("run %q: converting input %q from %s to declared dtype %s",
				e.program.Name, input.Name(), fed.DType(), input.DType())
			converted, err := fed.ConvertDType(input.DType())
			if err != nil {
				return nil, errors.WithMessagef(err, "converting input %q", input.Name())
			}
			fed = converted
		}
		env[input] = fed
	}

	var outputs []*tensors.Tensor
	for _, stmt := range e.main.Statements {
		switch stmt.OpType {
		case optypes.Const:
			value, ok := stmt.Attributes["value"].(*tensors.Tensor)
			if !ok {
				return nil, errors.Errorf("const statement in %q has no value tensor", e.main.Name)
			}
			env[stmt.Outputs[0]] = value

		case optypes.FuncReturn:
			outputs = make([]*tensors.Tensor, len(stmt.Inputs))
			for i, value := range stmt.Inputs {
				result, ok := env[value]
				if !ok {
					return nil, errors.Errorf("returned value %s was never computed", value)
				}
				outputs[i] = result
			}

		default:
			operand, ok := env[stmt.Inputs[0]]
			if !ok {
				return nil, errors.Errorf("operand %s of %s was never computed", stmt.Inputs[0], stmt.OpType)
			}
			params, err := kernels.ParamsFromAttributes(stmt.Attributes)
			if err != nil {
				return nil, errors.WithMessagef(err, "executing %s", stmt.OpType)
			}
			result, err := kernels.Unary(stmt.OpType, operand, params)
			if err != nil {
				return nil, errors.WithMessagef(err, "executing %s", stmt.OpType)
			}
			env[stmt.Outputs[0]] = result
		}
	}
	if outputs == nil {
		return nil, errors.Errorf("function %q has no return statement", e.main.Name)
	}
	return outputs, nil
}

// checkInputDimensions validates a fed tensor against the declared input
// shape: ranks must match and concrete dimensions must be equal; symbolic
// dimensions accept any size.
func checkInputDimensions(name string, declared, fed shapes.Shape) error {
	if fed.Rank() != declared.Rank() {
		return errors.Errorf("input %q declared with rank %d, got tensor of rank %d", name, declared.Rank(), fed.Rank())
	}
	for axis, dim := range declared.Dimensions {
		if shapes.IsSymbolic(dim) {
			continue
		}
		if fed.Dimensions[axis] != dim {
			return errors.Errorf("input %q declared with shape %s, got tensor of shape %s", name, declared, fed)
		}
	}
	return nil
}
