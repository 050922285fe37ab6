package mir

import (
	"fmt"
	"slices"

	"github.com/gomlx/go-mir/types/shapes"
	"github.com/gomlx/go-mir/types/tensors"
	"github.com/gomlx/gopjrt/dtypes"
)

// Value represents a value in a MIR program, like `%0` or `%x`: the output of
// an operation, a function input, or a constant.
// It has a name, a shape, and optionally an inferred tensor value when it is
// the output of a constant subgraph.
type Value struct {
	fn    *Function
	name  string // Optional name composed of letters, digits and underscore.
	shape shapes.Shape

	// inferred is the eagerly evaluated value, set when all the operation
	// inputs were known at build time.
	inferred *tensors.Tensor

	// symval is the symbolic vector value for shape-derived values: one entry
	// per element, negative entries denoting symbolic dimensions.
	symval []int
}

// Name of the value, without the "%" prefix.
func (v *Value) Name() string {
	return v.name
}

// Shape returns the declared shape of the value.
func (v *Value) Shape() shapes.Shape {
	return v.shape
}

// DType returns the element dtype of the value.
func (v *Value) DType() dtypes.DType {
	return v.shape.DType
}

// Inferred returns the tensor value inferred at build time, or nil when the
// value depends on a function input.
func (v *Value) Inferred() *tensors.Tensor {
	return v.inferred
}

// SymbolicValue returns the symbolic vector value of a shape-derived value:
// one entry per element, with negative entries standing for unresolved
// symbolic dimensions (see shapes.IsSymbolic). It returns nil for values that
// are not shape-derived.
func (v *Value) SymbolicValue() []int {
	return slices.Clone(v.symval)
}

// RebindDType changes the declared dtype of the value in place. It is meant
// for backend passes that legalize I/O dtypes; uses of the value are not
// updated.
func (v *Value) RebindDType(dtype dtypes.DType) {
	v.shape = v.shape.WithDType(dtype)
	v.inferred = nil
}

// String implements fmt.Stringer.
func (v *Value) String() string {
	return fmt.Sprintf("%%%s", v.name)
}
