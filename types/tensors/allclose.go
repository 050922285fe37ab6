package tensors

import (
	"math"

	"github.com/pkg/errors"
)

// AllClose checks that got has the same shape as want and that every element
// is within the given absolute and relative tolerances of the corresponding
// want element: |got - want| <= atol + rtol*|want|. A NaN element matches
// only a NaN in the same position.
//
// It returns a descriptive error on the first violating element, nil when the
// tensors match.
func AllClose(want, got *Tensor, atol, rtol float64) error {
	if !want.shape.Equal(got.shape) {
		return errors.Errorf("shape mismatch: want %s, got %s", want.shape, got.shape)
	}
	wantFlat, gotFlat := want.Float64s(), got.Float64s()
	for i := range wantFlat {
		if wantNaN, gotNaN := math.IsNaN(wantFlat[i]), math.IsNaN(gotFlat[i]); wantNaN || gotNaN {
			if wantNaN == gotNaN {
				continue
			}
			return errors.Errorf("values differ at flat index %d: want %v, got %v", i, wantFlat[i], gotFlat[i])
		}
		diff := math.Abs(gotFlat[i] - wantFlat[i])
		if diff > atol+rtol*math.Abs(wantFlat[i]) {
			return errors.Errorf("values differ at flat index %d: want %v, got %v (|diff|=%g > atol=%g + rtol=%g*|want|)",
				i, wantFlat[i], gotFlat[i], diff, atol, rtol)
		}
	}
	return nil
}
