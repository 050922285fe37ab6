package tensors

import (
	"math"
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}

func TestFromFlatAndDimensions(t *testing.T) {
	x := must(FromFlatAndDimensions([]float32{1, 2, 3, 4, 5, 6}, 2, 3))
	assert.Equal(t, dtypes.Float32, x.DType())
	assert.Equal(t, []int{2, 3}, x.Dimensions())
	assert.Equal(t, 6, x.Size())

	_, err := FromFlatAndDimensions([]float32{1, 2, 3}, 2, 3)
	require.Error(t, err, "flat size must match the shape size")

	_, err = FromFlatAndDimensions([]bool{true}, 1)
	require.Error(t, err, "bool tensors are not supported")
}

func TestFromAnyValue(t *testing.T) {
	x := must(FromAnyValue([][]float32{{-1, 2, -3}, {4, -5, 6}}))
	assert.Equal(t, []int{2, 3}, x.Dimensions())
	assert.Equal(t, []float32{-1, 2, -3, 4, -5, 6}, x.Flat())

	scalar := must(FromScalar(int32(7)))
	assert.True(t, scalar.Shape().IsScalar())
	assert.Equal(t, []int64{7}, scalar.Int64s())
}

func TestFlatIsACopy(t *testing.T) {
	original := []float32{1, 2, 3}
	x := must(FromFlatAndDimensions(original, 3))
	original[0] = 100
	assert.Equal(t, []float32{1, 2, 3}, x.Flat(), "tensor must copy its input")

	flat := x.Flat().([]float32)
	flat[1] = 100
	assert.Equal(t, []float32{1, 2, 3}, x.Flat(), "Flat must return a copy")
}

func TestConvertDType(t *testing.T) {
	t.Run("float to int truncates toward zero", func(t *testing.T) {
		x := must(FromFlatAndDimensions([]float32{-1.2, 2, -3.6, 4.5}, 4))
		y := must(x.ConvertDType(dtypes.Int32))
		assert.Equal(t, []int32{-1, 2, -3, 4}, y.Flat())
	})

	t.Run("int to int is exact", func(t *testing.T) {
		// 16777217 = 2^24+1 is not representable in float32, so an exact
		// integer path is required.
		x := must(FromFlatAndDimensions([]int64{16777217}, 1))
		y := must(x.ConvertDType(dtypes.Int32))
		assert.Equal(t, []int32{16777217}, y.Flat())
	})

	t.Run("float16 rounds to nearest", func(t *testing.T) {
		x := must(FromFlatAndDimensions([]float32{0.1}, 1))
		y := must(x.ConvertDType(dtypes.Float16))
		h := y.Flat().([]float16.Float16)
		assert.InDelta(t, 0.1, float64(h[0].Float32()), 1e-3)
	})

	t.Run("same dtype returns the tensor", func(t *testing.T) {
		x := must(FromFlatAndDimensions([]float32{1}, 1))
		y := must(x.ConvertDType(dtypes.Float32))
		assert.Same(t, x, y)
	})
}

func TestAllClose(t *testing.T) {
	a := must(FromFlatAndDimensions([]float32{1, 2, 3}, 3))
	b := must(FromFlatAndDimensions([]float32{1, 2, 3.00001}, 3))
	require.NoError(t, AllClose(a, b, 1e-4, 1e-5))

	c := must(FromFlatAndDimensions([]float32{1, 2, 4}, 3))
	err := AllClose(a, c, 1e-4, 1e-5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "flat index 2")

	d := must(FromFlatAndDimensions([]float32{1, 2, 3}, 1, 3))
	require.Error(t, AllClose(a, d, 1e-4, 1e-5), "shapes must match")
}

func TestAllClose_NaN(t *testing.T) {
	nan := float32(math.NaN())
	finite := must(FromFlatAndDimensions([]float32{1, 2, 3}, 3))
	withNaN := must(FromFlatAndDimensions([]float32{1, nan, 3}, 3))
	allNaN := must(FromFlatAndDimensions([]float32{1, nan, 3}, 3))

	require.NoError(t, AllClose(withNaN, allNaN, 1e-4, 1e-5), "NaN in the same position matches")

	err := AllClose(finite, withNaN, 1e-4, 1e-5)
	require.Error(t, err, "a NaN result where a finite value is expected must fail")
	assert.Contains(t, err.Error(), "flat index 1")

	err = AllClose(withNaN, finite, 1e-4, 1e-5)
	require.Error(t, err, "a finite result where NaN is expected must fail")
	assert.Contains(t, err.Error(), "flat index 1")
}

func TestEqual(t *testing.T) {
	a := must(FromFlatAndDimensions([]float32{1, 2}, 2))
	b := must(FromFlatAndDimensions([]float32{1, 2}, 2))
	c := must(FromFlatAndDimensions([]float32{1, 3}, 2))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}
