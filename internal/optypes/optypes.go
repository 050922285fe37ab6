// Package optypes defines OpType and lists the operations supported by the MIR builder.
package optypes

import (
	"github.com/gomlx/go-mir/internal/utils"
)

// OpType is an enum of all operations a MIR program can hold.
type OpType int

//go:generate go tool enumer -type=OpType optypes.go

const (
	Invalid OpType = iota
	FuncReturn
	Const
	Identity

	Abs
	Acos
	Asin
	Atan
	Atanh
	Cast
	Ceil
	Clip
	Cos
	Cosh
	Erf
	Exp
	Exp2
	Floor
	Inverse
	Log
	Round
	Rsqrt
	Shape
	Sign
	Sin
	Sinh
	Sqrt
	Square
	Tan
	Tanh
	Threshold

	// Last should always be kept the last, it is used as a counter/marker.
	Last
)

var (
	// milMappings maps OpType to the corresponding MIL operation name, when the
	// default "snake case" doesn't work.
	milMappings = map[OpType]string{
		FuncReturn: "return",
	}
)

// ToMIL returns the MIL name of the operation, e.g. Exp2 -> "exp2".
func (op OpType) ToMIL() string {
	name, ok := milMappings[op]
	if !ok {
		name = utils.ToSnakeCase(op.String())
	}
	return name
}
