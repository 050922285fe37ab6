package shapes

import (
	"testing"

	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShape(t *testing.T) {
	s := Make(dtypes.Float32, 2, 3)
	assert.Equal(t, 2, s.Rank())
	assert.Equal(t, 6, s.Size())
	assert.True(t, s.IsFullyDefined())
	assert.Equal(t, "(Float32)[2 3]", s.String())

	scalar := Scalar[float64]()
	assert.True(t, scalar.IsScalar())
	assert.Equal(t, 1, scalar.Size())
	assert.Equal(t, dtypes.Float64, scalar.DType)

	assert.False(t, Invalid().Ok())
}

func TestShape_Symbolic(t *testing.T) {
	dim := NewSymbolicDim()
	require.True(t, IsSymbolic(dim))
	require.NotEqual(t, dim, NewSymbolicDim(), "each symbolic dimension is distinct")

	s := Make(dtypes.Float32, dim, 3)
	assert.False(t, s.IsFullyDefined())
	assert.Equal(t, -1, s.Size())
	assert.Contains(t, s.String(), "s")
	assert.False(t, IsSymbolic(3))
}

func TestShape_CloneAndEqual(t *testing.T) {
	s := Make(dtypes.Int32, 4, 5)
	clone := s.Clone()
	require.True(t, s.Equal(clone))
	clone.Dimensions[0] = 7
	assert.Equal(t, 4, s.Dimensions[0], "clone must not share dimensions")
	assert.False(t, s.Equal(clone))

	assert.False(t, s.Equal(s.WithDType(dtypes.Float32)))
	assert.Equal(t, dtypes.Float32, s.WithDType(dtypes.Float32).DType)
}

func TestShape_MakePanicsOnZeroDim(t *testing.T) {
	require.Panics(t, func() { Make(dtypes.Float32, 2, 0) })
}

func TestFromAnyValue(t *testing.T) {
	s, err := FromAnyValue([][]float32{{1, 2, 3}, {4, 5, 6}})
	require.NoError(t, err)
	assert.Equal(t, Make(dtypes.Float32, 2, 3), s)

	s, err = FromAnyValue(int32(7))
	require.NoError(t, err)
	assert.True(t, s.IsScalar())
	assert.Equal(t, dtypes.Int32, s.DType)

	_, err = FromAnyValue([][]float32{{1, 2}, {3}})
	require.Error(t, err, "ragged nesting is not a valid shape")
}
