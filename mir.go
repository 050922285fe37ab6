// Package mir implements a builder for MIL-style model intermediate
// representation (MIR) programs: tensor-typed values transformed by named
// operations, organized in functions, to then be optimized by a pass
// pipeline and compiled for a backend (see the passes and backend packages).
//
// Among its features:
//
//   - A fluent API: operations are created one at a time and validated as the
//     graph is constructed.
//   - Shape and dtype inference: it calculates the output shapes for
//     operations, propagating symbolic (unresolved) dimensions.
//   - Value inference: operations over constants are evaluated eagerly, so a
//     constant subgraph's result can be inspected without compiling.
//   - Written purely in Go, no C/C++ external dependencies.
package mir

import "github.com/gomlx/go-mir/internal/utils"

// NormalizeIdentifier converts the name of an identifier (function name or function input parameter
// name, etc.) to a valid one: only letters, digits, and underscores are allowed.
//
// Invalid characters are replaced with underscores.
// If the name starts with a digit, it is prefixed with an underscore.
func NormalizeIdentifier(name string) string {
	return utils.NormalizeIdentifier(name)
}
