package types

import (
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/pkg/errors"
)

// dtypeNames maps the dtype enumeration to the string identifiers used in
// MIR programs (e.g. the "dtype" attribute of a cast operation).
var dtypeNames = map[dtypes.DType]string{
	dtypes.Float16: "fp16",
	dtypes.Float32: "fp32",
	dtypes.Float64: "fp64",
	dtypes.Int16:   "int16",
	dtypes.Int32:   "int32",
	dtypes.Int64:   "int64",
	dtypes.Uint16:  "uint16",
	dtypes.Bool:    "bool",
}

var namesToDType = func() map[string]dtypes.DType {
	m := make(map[string]dtypes.DType, len(dtypeNames))
	for dtype, name := range dtypeNames {
		m[name] = dtype
	}
	return m
}()

// DTypeName returns the MIR string identifier of the dtype, e.g.
// dtypes.Float32 -> "fp32".
func DTypeName(dtype dtypes.DType) string {
	if name, ok := dtypeNames[dtype]; ok {
		return name
	}
	return dtype.String()
}

// ParseDType converts a MIR dtype identifier (e.g. "int32") back to the
// dtype enumeration.
func ParseDType(name string) (dtypes.DType, error) {
	dtype, ok := namesToDType[name]
	if !ok {
		return dtypes.InvalidDType, errors.Errorf("unknown dtype name %q", name)
	}
	return dtype, nil
}
