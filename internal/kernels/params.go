package kernels

import (
	"github.com/gomlx/go-mir/types"
	"github.com/pkg/errors"
)

// ParamsFromAttributes extracts the kernel parameters from a statement's
// attributes map: "epsilon", "alpha" and "beta" are float64 scalars, "dtype"
// is a dtype name like "fp16" or "int32".
func ParamsFromAttributes(attrs map[string]any) (Params, error) {
	var p Params
	for key, attr := range attrs {
		switch key {
		case "epsilon", "alpha", "beta":
			v, ok := attr.(float64)
			if !ok {
				return p, errors.Errorf("attribute %q must be a float64, got %T", key, attr)
			}
			switch key {
			case "epsilon":
				p.Epsilon = v
			case "alpha":
				p.Alpha = v
			case "beta":
				p.Beta = v
			}
		case "dtype":
			name, ok := attr.(string)
			if !ok {
				return p, errors.Errorf("attribute \"dtype\" must be a string, got %T", attr)
			}
			dtype, err := types.ParseDType(name)
			if err != nil {
				return p, err
			}
			p.DType = dtype
		}
	}
	return p, nil
}
