package mir

import (
	"fmt"
	"io"
	"sort"

	"github.com/gomlx/go-mir/internal/optypes"
	"github.com/gomlx/go-mir/types/tensors"
)

// Statement represents a single operation in a MIR function.
type Statement struct {
	// Function owning the statement.
	Function *Function

	// OpType is the type of the operation.
	OpType optypes.OpType

	// Inputs to the operation.
	Inputs []*Value

	// Attributes of the operation: scalar parameters like "epsilon", "alpha",
	// "beta", the "dtype" name of a cast, or the "value" tensor of a const.
	Attributes map[string]any

	// Outputs of the operation. It is nil for the return statement.
	Outputs []*Value
}

// Write writes a string representation of the statement to the given writer.
func (s *Statement) Write(writer io.Writer, indentation string) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}

	// Output values are written first:
	w("%s", indentation)
	if len(s.Outputs) > 0 {
		for i, output := range s.Outputs {
			if i > 0 {
				w(", ")
			}
			w("%s", output)
		}
		w(" = ")
	}

	// Write op name and arguments:
	w("%s(", s.OpType.ToMIL())
	for i, input := range s.Inputs {
		if i > 0 {
			w(", ")
		}
		w("%s", input)
	}
	w(")")

	// Write attributes in a deterministic order:
	if len(s.Attributes) > 0 {
		keys := make([]string, 0, len(s.Attributes))
		for key := range s.Attributes {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		w("{")
		for i, key := range keys {
			if i > 0 {
				w(", ")
			}
			w("%s = %s", key, attributeToString(s.Attributes[key]))
		}
		w("}")
	}

	// Write output types:
	if len(s.Outputs) > 0 {
		w(" : ")
		for i, output := range s.Outputs {
			if i > 0 {
				w(", ")
			}
			w("%s", output.shape)
		}
	}
	return err
}

// attributeToString converts an attribute value to its text representation.
func attributeToString(attr any) string {
	switch v := attr.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case float32, float64:
		return fmt.Sprintf("%g", v)
	case *tensors.Tensor:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", v)
	}
}
