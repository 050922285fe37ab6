package passes

import (
	"testing"

	"github.com/gomlx/go-mir"
	"github.com/gomlx/go-mir/internal/optypes"
	"github.com/gomlx/go-mir/types"
	"github.com/gomlx/go-mir/types/shapes"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}

func TestPipeline_Editing(t *testing.T) {
	p := Default()
	require.Equal(t, []string{
		"common::cast_optimization",
		"common::dead_code_elimination",
		"backend::adjust_io_to_supported_types",
	}, p.Passes())

	require.NoError(t, p.RemovePasses("common::cast_optimization"))
	require.Equal(t, []string{
		"common::dead_code_elimination",
		"backend::adjust_io_to_supported_types",
	}, p.Passes())

	err := p.RemovePasses("common::no_such_pass")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not in pipeline")

	p.Append(CastOptimization())
	require.Equal(t, "common::cast_optimization", p.Passes()[2])
}

func TestCastOptimization(t *testing.T) {
	t.Run("same dtype cast is removed", func(t *testing.T) {
		b := mir.New("noop_cast")
		fn := b.Main()
		x := fn.Input(shapes.Make(dtypes.Float32, 2))
		y := must(mir.Cast(x, dtypes.Float32))
		require.NoError(t, fn.Return(y))

		require.NoError(t, CastOptimization().Apply(fn, &Context{}))
		assert.Empty(t, fn.FindOps(optypes.Cast))
		assert.Equal(t, x, fn.ReturnStatement().Inputs[0])
	})

	t.Run("lossless widening chain collapses", func(t *testing.T) {
		b := mir.New("widen_chain")
		fn := b.Main()
		x := fn.Input(shapes.Make(dtypes.Float16, 2))
		wide := must(mir.Cast(x, dtypes.Float32))
		back := must(mir.Cast(wide, dtypes.Float16))
		require.NoError(t, fn.Return(back))

		require.NoError(t, CastOptimization().Apply(fn, &Context{}))
		require.NoError(t, DeadCodeElimination().Apply(fn, &Context{}))
		assert.Empty(t, fn.FindOps(optypes.Cast),
			"fp16 -> fp32 -> fp16 must collapse to no cast at all")
		assert.Equal(t, x, fn.ReturnStatement().Inputs[0])
	})

	t.Run("lossy cast is kept", func(t *testing.T) {
		b := mir.New("lossy_cast")
		fn := b.Main()
		x := fn.Input(shapes.Make(dtypes.Float32, 2))
		narrow := must(mir.Cast(x, dtypes.Float16))
		back := must(mir.Cast(narrow, dtypes.Float32))
		require.NoError(t, fn.Return(back))

		require.NoError(t, CastOptimization().Apply(fn, &Context{}))
		assert.Len(t, fn.FindOps(optypes.Cast), 2,
			"fp32 -> fp16 -> fp32 loses precision, both casts must stay")
	})
}

func TestDeadCodeElimination(t *testing.T) {
	b := mir.New("dce")
	fn := b.Main()
	x := fn.Input(shapes.Make(dtypes.Float32, 2))
	live := must(mir.Tanh(x))
	_ = must(mir.Exp(x))     // Dead.
	_ = must(mir.Sqrt(live)) // Dead.
	require.NoError(t, fn.Return(live))

	require.NoError(t, DeadCodeElimination().Apply(fn, &Context{}))
	assert.Len(t, fn.Statements, 2) // tanh + return.
	assert.Empty(t, fn.FindOps(optypes.Exp))
	assert.Empty(t, fn.FindOps(optypes.Sqrt))
	assert.Len(t, fn.FindOps(optypes.Tanh), 1)
}

func TestAdjustIOToSupportedTypes(t *testing.T) {
	t.Run("unrestricted target is a no-op", func(t *testing.T) {
		b := mir.New("unrestricted")
		fn := b.Main()
		x := fn.Input(shapes.Make(dtypes.Int16, 2))
		require.NoError(t, fn.Return(x))

		require.NoError(t, AdjustIOToSupportedTypes().Apply(fn, &Context{Target: types.TargetNone}))
		assert.Empty(t, fn.FindOps(optypes.Cast))
		assert.Equal(t, dtypes.Int16, fn.Outputs[0].DType)
	})

	t.Run("unsupported input and output are legalized", func(t *testing.T) {
		b := mir.New("legalize_io")
		fn := b.Main()
		x := fn.Input(shapes.Make(dtypes.Int16, 2, 3))
		y := must(mir.Abs(x))
		require.NoError(t, fn.Return(y))

		require.NoError(t, AdjustIOToSupportedTypes().Apply(fn, &Context{Target: types.TargetIOS17}))

		// Input redeclared as int32, cast back to int16 for the body, and the
		// int16 result cast to int32 before the return.
		assert.Equal(t, dtypes.Int32, fn.Inputs[0].DType())
		assert.Len(t, fn.FindOps(optypes.Cast), 2)
		assert.Equal(t, dtypes.Int32, fn.Outputs[0].DType)
	})

	t.Run("fp64 output goes to fp32", func(t *testing.T) {
		b := mir.New("legalize_fp64")
		fn := b.Main()
		x := fn.Input(shapes.Make(dtypes.Float64, 2))
		require.NoError(t, fn.Return(x))

		require.NoError(t, AdjustIOToSupportedTypes().Apply(fn, &Context{Target: types.TargetIOS17}))
		assert.Equal(t, dtypes.Float32, fn.Inputs[0].DType())
		assert.Equal(t, dtypes.Float32, fn.Outputs[0].DType)
	})

	t.Run("iOS15 has no fp16 io", func(t *testing.T) {
		b := mir.New("legalize_ios15")
		fn := b.Main()
		x := fn.Input(shapes.Make(dtypes.Float16, 2))
		require.NoError(t, fn.Return(x))

		require.NoError(t, AdjustIOToSupportedTypes().Apply(fn, &Context{Target: types.TargetIOS15}))
		assert.Equal(t, dtypes.Float32, fn.Inputs[0].DType())
		assert.Equal(t, dtypes.Float32, fn.Outputs[0].DType)
		assert.Len(t, fn.FindOps(optypes.Cast), 2)
	})
}
