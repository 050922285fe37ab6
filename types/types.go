// Package types defines the enumerations and naming utilities shared by the
// MIR builder, the optimization passes and the backend: compute units,
// deployment targets and dtype names.
package types

import (
	"github.com/gomlx/go-mir/internal/utils"
	"github.com/gomlx/gopjrt/dtypes"
)

// ComputeUnits selects the execution units a compiled program may use.
type ComputeUnits int

const (
	// ComputeUnitsAll lets the backend pick any available unit.
	ComputeUnitsAll ComputeUnits = iota

	// ComputeUnitsCPUOnly restricts execution to the CPU.
	ComputeUnitsCPUOnly

	// ComputeUnitsCPUAndGPU allows CPU and GPU but not dedicated accelerators.
	ComputeUnitsCPUAndGPU
)

// String implements fmt.Stringer.
func (c ComputeUnits) String() string {
	switch c {
	case ComputeUnitsAll:
		return "ALL"
	case ComputeUnitsCPUOnly:
		return "CPU_ONLY"
	case ComputeUnitsCPUAndGPU:
		return "CPU_AND_GPU"
	}
	return "UNKNOWN"
}

// DeploymentTarget is a versioned capability profile: it restricts which
// dtypes a compiled program accepts at its input/output boundary.
// Unsupported I/O dtypes get an implicit cast inserted by the
// backend::adjust_io_to_supported_types pass.
type DeploymentTarget int

const (
	// TargetNone places no restriction on I/O dtypes.
	TargetNone DeploymentTarget = iota

	TargetIOS15
	TargetIOS16
	TargetIOS17
)

// String implements fmt.Stringer.
func (t DeploymentTarget) String() string {
	switch t {
	case TargetNone:
		return "none"
	case TargetIOS15:
		return "iOS15"
	case TargetIOS16:
		return "iOS16"
	case TargetIOS17:
		return "iOS17"
	}
	return "unknown"
}

// SupportedIODTypes returns the set of dtypes the target accepts at the
// program input/output boundary. A nil set means unrestricted.
func (t DeploymentTarget) SupportedIODTypes() utils.Set[dtypes.DType] {
	switch t {
	case TargetIOS15:
		return utils.SetWith(dtypes.Float32, dtypes.Int32)
	case TargetIOS16, TargetIOS17:
		return utils.SetWith(dtypes.Float16, dtypes.Float32, dtypes.Int32)
	}
	return nil
}
