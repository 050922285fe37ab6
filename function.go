package mir

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"

	"github.com/gomlx/go-mir/internal/optypes"
	"github.com/gomlx/go-mir/types/shapes"
	"github.com/gomlx/go-mir/types/tensors"
	"github.com/pkg/errors"
)

// Function represents a function in a MIR program: an ordered list of
// statements in SSA form, with named inputs and a final return statement.
type Function struct {
	Builder *Builder

	// Name of the function. It should not include the "@" prefix.
	Name string

	// Inputs to the function.
	Inputs []*Value

	// Outputs types of the function, set by Return.
	Outputs []shapes.Shape

	// Statements in the function body.
	Statements []*Statement

	// values holds all the values (e.g., %0, %x) created in the function's scope.
	values []*Value

	// nextArgID is the next ID to be assigned to new input arguments.
	nextArgID int

	// nextTmpID is the next ID to be assigned to new intermediary values.
	nextTmpID int

	// Returned indicates if the function has a return statement, so it can no longer be changed.
	Returned bool
}

// NewValue creates a new value with the given shape and assigns it the next
// available id. It is used by the operation constructors and by optimization
// passes that create statements directly.
func (fn *Function) NewValue(shape shapes.Shape) (v *Value) {
	v = &Value{
		fn:    fn,
		name:  strconv.Itoa(fn.nextTmpID),
		shape: shape,
	}
	fn.nextTmpID++
	fn.values = append(fn.values, v)
	return v
}

// Input creates a new input parameter for the function.
//
// If creating multiple inputs (one at a time), the order matters, since during
// execution of a compiled function the input tensors must be given in the same
// order they were created.
//
// It picks a default unique name for the input parameter; you can also provide
// a name with NamedInput.
func (fn *Function) Input(shape shapes.Shape) *Value {
	value := fn.NamedInput(fmt.Sprintf("arg%d", fn.nextArgID), shape)
	fn.nextArgID++
	return value
}

// NamedInput creates a new input parameter for the function with the given
// name -- it must be unique among the function's inputs, which is verified by
// Builder.Build.
//
// The name is passed through NormalizeIdentifier, which converts any
// non-digit or ASCII letter to an underscore.
//
// The input shape may contain symbolic dimensions (see shapes.NewSymbolicDim)
// for dimensions only known at execution time.
func (fn *Function) NamedInput(name string, shape shapes.Shape) *Value {
	value := &Value{
		fn:    fn,
		name:  NormalizeIdentifier(name),
		shape: shape,
	}
	fn.Inputs = append(fn.Inputs, value)
	fn.values = append(fn.values, value)
	return value
}

// ConstantFromScalar creates a new constant statement from a scalar value and
// returns the resulting value.
func (fn *Function) ConstantFromScalar(value any) (*Value, error) {
	t, err := tensors.FromScalar(value)
	if err != nil {
		return nil, err
	}
	return fn.ConstantFromTensor(t)
}

// ConstantFromFlatAndDimensions creates a new constant statement from a flat
// slice with the raw values and the dimensions of the shape.
func (fn *Function) ConstantFromFlatAndDimensions(flat any, dimensions ...int) (*Value, error) {
	t, err := tensors.FromFlatAndDimensions(flat, dimensions...)
	if err != nil {
		return nil, err
	}
	return fn.ConstantFromTensor(t)
}

// ConstantFromTensor creates a new constant statement holding the given
// tensor and returns the resulting value. The value's inferred tensor is the
// constant itself.
func (fn *Function) ConstantFromTensor(t *tensors.Tensor) (*Value, error) {
	if fn.Returned {
		return nil, errors.Errorf("Function.Return already called for %q", fn.Name)
	}
	stmt := &Statement{
		Function: fn,
		OpType:   optypes.Const,
		Attributes: map[string]any{
			"value": t,
		},
		Outputs: []*Value{fn.NewValue(t.Shape())},
	}
	stmt.Outputs[0].inferred = t
	fn.Statements = append(fn.Statements, stmt)
	return stmt.Outputs[0], nil
}

// Return adds a return statement to the function with the given return
// values. There must be at least one return value.
//
// There can be only one return statement in a function, and it must be the
// last operation.
func (fn *Function) Return(firstValue *Value, otherValues ...*Value) error {
	if fn.Returned {
		return errors.Errorf("Function.Return already called for %q", fn.Name)
	}
	allValues := make([]*Value, 1, len(otherValues)+1)
	allValues[0] = firstValue
	allValues = append(allValues, otherValues...)
	outputShapes := make([]shapes.Shape, len(allValues))
	for i, value := range allValues {
		if value.fn != fn {
			return errors.New("Function.Return given values that are not owned by the function")
		}
		outputShapes[i] = value.shape
	}
	fn.Returned = true
	fn.Outputs = outputShapes

	stmt := &Statement{
		Function: fn,
		OpType:   optypes.FuncReturn,
		Inputs:   allValues,
	}
	fn.Statements = append(fn.Statements, stmt)
	return nil
}

// ReturnStatement returns the function's return statement, or nil if Return
// was not called yet.
func (fn *Function) ReturnStatement() *Statement {
	for i := len(fn.Statements) - 1; i >= 0; i-- {
		if fn.Statements[i].OpType == optypes.FuncReturn {
			return fn.Statements[i]
		}
	}
	return nil
}

// FindOps returns the statements of the given operation type, in program order.
func (fn *Function) FindOps(opType optypes.OpType) []*Statement {
	var found []*Statement
	for _, stmt := range fn.Statements {
		if stmt.OpType == opType {
			found = append(found, stmt)
		}
	}
	return found
}

// ReplaceAllUses rewires every statement input that consumes old to consume
// new instead, and refreshes the function output shapes if the return
// statement was affected.
func (fn *Function) ReplaceAllUses(old, new *Value) {
	for _, stmt := range fn.Statements {
		for i, input := range stmt.Inputs {
			if input == old {
				stmt.Inputs[i] = new
			}
		}
	}
	if ret := fn.ReturnStatement(); ret != nil {
		fn.Outputs = make([]shapes.Shape, len(ret.Inputs))
		for i, value := range ret.Inputs {
			fn.Outputs[i] = value.shape
		}
	}
}

// RefreshOutputs recomputes the function output shapes from the return
// statement. Passes that change the dtype of returned values call this to
// keep the function signature consistent.
func (fn *Function) RefreshOutputs() {
	ret := fn.ReturnStatement()
	if ret == nil {
		return
	}
	fn.Outputs = make([]shapes.Shape, len(ret.Inputs))
	for i, value := range ret.Inputs {
		fn.Outputs[i] = value.shape
	}
}

// Clone returns a deep copy of the function: fresh values and statements,
// sharing only the immutable tensors. It is used by the backend so
// optimization passes never mutate the program being built.
func (fn *Function) Clone() *Function {
	clone := &Function{
		Builder:   fn.Builder,
		Name:      fn.Name,
		Outputs:   slices.Clone(fn.Outputs),
		nextArgID: fn.nextArgID,
		nextTmpID: fn.nextTmpID,
		Returned:  fn.Returned,
	}
	mapping := make(map[*Value]*Value, len(fn.values))
	cloneValue := func(v *Value) *Value {
		if v == nil {
			return nil
		}
		if c, ok := mapping[v]; ok {
			return c
		}
		c := &Value{
			fn:       clone,
			name:     v.name,
			shape:    v.shape.Clone(),
			inferred: v.inferred,
			symval:   slices.Clone(v.symval),
		}
		mapping[v] = c
		clone.values = append(clone.values, c)
		return c
	}
	for _, input := range fn.Inputs {
		clone.Inputs = append(clone.Inputs, cloneValue(input))
	}
	for _, stmt := range fn.Statements {
		cloned := &Statement{
			Function:   clone,
			OpType:     stmt.OpType,
			Attributes: maps.Clone(stmt.Attributes),
		}
		for _, input := range stmt.Inputs {
			cloned.Inputs = append(cloned.Inputs, cloneValue(input))
		}
		for _, output := range stmt.Outputs {
			cloned.Outputs = append(cloned.Outputs, cloneValue(output))
		}
		clone.Statements = append(clone.Statements, cloned)
	}
	return clone
}

// Write the function as MIR text, with the given indentation.
func (fn *Function) Write(writer io.Writer, indentation string) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	nextIndent := indentation + IndentationStep

	w("%sfunc @%s(", indentation, fn.Name)
	for i, input := range fn.Inputs {
		if i > 0 {
			w(", ")
		}
		w("%s: %s", input, input.shape)
	}
	w(") -> ")
	if len(fn.Outputs) > 1 {
		w("(")
	}
	for i, output := range fn.Outputs {
		if i > 0 {
			w(", ")
		}
		w("%s", output)
	}
	if len(fn.Outputs) > 1 {
		w(")")
	}
	w(" {\n")

	for _, stmt := range fn.Statements {
		if err != nil {
			break
		}
		err = stmt.Write(writer, nextIndent)
		w("\n")
	}

	w("%s}", indentation)
	return err
}
