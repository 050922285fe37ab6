package backend_test

import (
	"fmt"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/gomlx/go-mir"
	"github.com/gomlx/go-mir/backend"
	"github.com/gomlx/go-mir/internal/optypes"
	"github.com/gomlx/go-mir/passes"
	"github.com/gomlx/go-mir/types"
	"github.com/gomlx/go-mir/types/shapes"
	"github.com/gomlx/go-mir/types/tensors"
	"github.com/gomlx/gopjrt/dtypes"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runUnary compiles a single-input program applying op and runs it over input.
func runUnary(t *testing.T, target types.DeploymentTarget, input *tensors.Tensor,
	op func(*mir.Value) (*mir.Value, error)) *tensors.Tensor {
	t.Helper()
	b := mir.New(t.Name())
	fn := b.Main()
	x := fn.NamedInput("x", input.Shape())
	y := must.M1(op(x))
	must.M(fn.Return(y))

	exec := must.M1(backend.New(
		backend.WithDeploymentTarget(target),
		backend.WithComputeUnits(types.ComputeUnitsCPUOnly),
	).Compile(b))
	outputs := must.M1(exec.Run(map[string]*tensors.Tensor{"x": input}))
	require.Len(t, outputs, 1)
	return outputs[0]
}

// inferUnary evaluates op eagerly, over a constant, with the builder's value
// inference.
func inferUnary(t *testing.T, input *tensors.Tensor, op func(*mir.Value) (*mir.Value, error)) *tensors.Tensor {
	t.Helper()
	b := mir.New(t.Name() + "_eager")
	fn := b.Main()
	x := must.M1(fn.ConstantFromTensor(input))
	y := must.M1(op(x))
	must.M(fn.Return(y))
	require.NotNil(t, y.Inferred())
	return y.Inferred()
}

func requireAllClose(t *testing.T, want, got *tensors.Tensor, atol, rtol float64) {
	t.Helper()
	require.NoError(t, tensors.AllClose(want, got, atol, rtol))
}

// TestCompiledVsEager checks that the compiled interpreter and the builder's
// eager value inference agree for every elementwise operation.
func TestCompiledVsEager(t *testing.T) {
	positive := must.M1(tensors.FromAnyValue([][]float32{{0.1, 0.5, 1}, {2, 4, 8}}))
	mixed := must.M1(tensors.FromAnyValue([][]float32{{-1.2, 2, -3.4}, {4.5, -5, 6.7}}))
	unit := must.M1(tensors.FromAnyValue([][]float32{{-0.8, -0.5, 0}, {0.4, 0.5, 0.8}}))

	testCases := []struct {
		name  string
		input *tensors.Tensor
		op    func(*mir.Value) (*mir.Value, error)
	}{
		{"abs", mixed, mir.Abs},
		{"acos", unit, mir.Acos},
		{"asin", unit, mir.Asin},
		{"atan", mixed, mir.Atan},
		{"atanh", unit, mir.Atanh},
		{"ceil", mixed, mir.Ceil},
		{"clip", mixed, func(x *mir.Value) (*mir.Value, error) { return mir.Clip(x, 0, 5) }},
		{"cos", mixed, mir.Cos},
		{"cosh", mixed, mir.Cosh},
		{"erf", unit, mir.Erf},
		{"exp", mixed, mir.Exp},
		{"exp2", mixed, mir.Exp2},
		{"floor", mixed, mir.Floor},
		{"inverse", positive, func(x *mir.Value) (*mir.Value, error) { return mir.Inverse(x, 1e-3) }},
		{"log", positive, func(x *mir.Value) (*mir.Value, error) { return mir.Log(x, 1e-3) }},
		{"round", mixed, mir.Round},
		{"rsqrt", positive, func(x *mir.Value) (*mir.Value, error) { return mir.Rsqrt(x, 1e-3) }},
		{"sign", mixed, mir.Sign},
		{"sin", mixed, mir.Sin},
		{"sinh", mixed, mir.Sinh},
		{"sqrt", positive, mir.Sqrt},
		{"square", mixed, mir.Square},
		{"tan", mixed, mir.Tan},
		{"tanh", mixed, mir.Tanh},
		{"threshold", mixed, func(x *mir.Value) (*mir.Value, error) { return mir.Threshold(x, 1) }},
		{"cast_int32", mixed, func(x *mir.Value) (*mir.Value, error) { return mir.Cast(x, dtypes.Int32) }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			want := inferUnary(t, tc.input, tc.op)
			got := runUnary(t, types.TargetNone, tc.input, tc.op)
			requireAllClose(t, want, got, 1e-4, 1e-5)
		})
	}
}

func TestEpsilonStress(t *testing.T) {
	input := must.M1(tensors.FromAnyValue([][]float32{{0, 1e-3, 0.5}, {1, 2, 100}}))
	for _, epsilon := range []float64{1e-3, 1e-1, 1.0} {
		for _, opName := range []string{"inverse", "log", "rsqrt"} {
			t.Run(fmt.Sprintf("%s_eps_%g", opName, epsilon), func(t *testing.T) {
				op := func(x *mir.Value) (*mir.Value, error) {
					switch opName {
					case "inverse":
						return mir.Inverse(x, epsilon)
					case "log":
						return mir.Log(x, epsilon)
					default:
						return mir.Rsqrt(x, epsilon)
					}
				}
				want := inferUnary(t, input, op)
				got := runUnary(t, types.TargetNone, input, op)
				requireAllClose(t, want, got, 1e-4, 1e-5)
			})
		}
	}
}

// TestCastChainStress pushes values through square/sqrt with casts between
// fp16 and fp32 at every step, and checks the compiled result against eager
// evaluation.
func TestCastChainStress(t *testing.T) {
	input := must.M1(tensors.FromAnyValue([][]float32{{0.25, 1, 2}, {3.5, 7, 11}}))
	floats := []dtypes.DType{dtypes.Float16, dtypes.Float32}
	for _, src := range floats {
		for _, dst := range floats {
			t.Run(fmt.Sprintf("%s_to_%s", src, dst), func(t *testing.T) {
				op := func(x *mir.Value) (*mir.Value, error) {
					v, err := mir.Cast(x, src)
					if err != nil {
						return nil, err
					}
					if v, err = mir.Square(v); err != nil {
						return nil, err
					}
					if v, err = mir.Cast(v, dst); err != nil {
						return nil, err
					}
					if v, err = mir.Sqrt(v); err != nil {
						return nil, err
					}
					return mir.Cast(v, dtypes.Float32)
				}
				want := inferUnary(t, input, op)
				got := runUnary(t, types.TargetNone, input, op)
				atol := 1e-4
				if src == dtypes.Float16 || dst == dtypes.Float16 {
					atol = 1e-2
				}
				requireAllClose(t, want, got, atol, 1e-3)
			})
		}
	}
}

// TestIOS17CastCounts builds a single explicit cast from src to dst and
// compiles it for iOS17 with cast optimization disabled, checking how many
// casts the I/O legalization adds: one per unsupported boundary dtype.
func TestIOS17CastCounts(t *testing.T) {
	supported := map[dtypes.DType]bool{
		dtypes.Float16: true,
		dtypes.Float32: true,
		dtypes.Int32:   true,
	}
	allDTypes := []dtypes.DType{dtypes.Float16, dtypes.Float32, dtypes.Int16, dtypes.Int32, dtypes.Uint16}
	input := must.M1(tensors.FromAnyValue([][]float32{{1, 2, 3}, {4, 5, 6}}))

	for _, src := range allDTypes {
		for _, dst := range allDTypes {
			t.Run(fmt.Sprintf("%s_to_%s", src, dst), func(t *testing.T) {
				b := mir.New(t.Name())
				fn := b.Main()
				x := fn.NamedInput("x", shapes.Make(src, 2, 3))
				y := must.M1(mir.Cast(x, dst))
				must.M(fn.Return(y))

				pipeline := passes.Default()
				must.M(pipeline.RemovePasses("common::cast_optimization"))
				exec := must.M1(backend.New(
					backend.WithDeploymentTarget(types.TargetIOS17),
					backend.WithPipeline(pipeline),
				).Compile(b))

				wantCasts := 1
				if !supported[src] {
					wantCasts++
				}
				if !supported[dst] {
					wantCasts++
				}
				assert.Len(t, exec.Main().FindOps(optypes.Cast), wantCasts)

				// The executable's output dtype is dst, or its legalized
				// stand-in when dst cannot cross the boundary.
				wantOutput := dst
				if !supported[dst] {
					wantOutput = dtypes.Int32
				}
				require.Equal(t, wantOutput, exec.Main().Outputs[0].DType)

				// The fed tensor is converted to the legalized input dtype
				// automatically; values must survive the round trip.
				fed := must.M1(input.ConvertDType(src))
				outputs := must.M1(exec.Run(map[string]*tensors.Tensor{"x": fed}))
				want := must.M1(must.M1(fed.ConvertDType(dst)).ConvertDType(wantOutput))
				requireAllClose(t, want, outputs[0], 1e-3, 1e-3)
			})
		}
	}
}

// TestSymbolicDimensions runs a program whose input has a symbolic leading
// dimension, resolved only when the tensor is fed.
func TestSymbolicDimensions(t *testing.T) {
	dim := shapes.NewSymbolicDim()
	b := mir.New("symbolic_run")
	fn := b.Main()
	x := fn.NamedInput("x", shapes.Make(dtypes.Float32, dim, 1))
	s := must.M1(mir.Shape(x))
	y := must.M1(mir.Cast(s, dtypes.Int32))
	must.M(fn.Return(y))
	require.Equal(t, []int{dim, 1}, y.SymbolicValue())

	exec := must.M1(backend.New().Compile(b))
	for _, batch := range []int{1, 3, 17} {
		flat := make([]float32, batch)
		input := must.M1(tensors.FromFlatAndDimensions(flat, batch, 1))
		outputs := must.M1(exec.Run(map[string]*tensors.Tensor{"x": input}))
		require.Len(t, outputs, 1)
		assert.Equal(t, []int32{int32(batch), 1}, outputs[0].Flat())
	}

	t.Run("rank mismatch", func(t *testing.T) {
		input := must.M1(tensors.FromFlatAndDimensions([]float32{1, 2}, 2))
		_, err := exec.Run(map[string]*tensors.Tensor{"x": input})
		require.Error(t, err)
	})

	t.Run("concrete dim mismatch", func(t *testing.T) {
		input := must.M1(tensors.FromFlatAndDimensions([]float32{1, 2, 3, 4}, 2, 2))
		_, err := exec.Run(map[string]*tensors.Tensor{"x": input})
		require.Error(t, err)
	})
}

// TestErfRandom compares compiled vs eager erf over random inputs, the same
// way a numerical backend is validated against a reference.
func TestErfRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	flat := make([]float32, 2*3*5)
	for i := range flat {
		flat[i] = float32(rng.NormFloat64())
	}
	input := must.M1(tensors.FromFlatAndDimensions(flat, 2, 3, 5))

	want := inferUnary(t, input, mir.Erf)
	got := runUnary(t, types.TargetNone, input, mir.Erf)
	requireAllClose(t, want, got, 1e-4, 1e-5)

	for i, v := range got.Float64s() {
		require.InDelta(t, math.Erf(float64(flat[i])), v, 1e-4)
	}
}

func TestDefaultPipelineRemovesRedundantCasts(t *testing.T) {
	b := mir.New("redundant_casts")
	fn := b.Main()
	x := fn.NamedInput("x", shapes.Make(dtypes.Float32, 2))
	y := must.M1(mir.Cast(x, dtypes.Float32))
	z := must.M1(mir.Tanh(y))
	must.M(fn.Return(z))

	exec := must.M1(backend.New(backend.WithDeploymentTarget(types.TargetIOS17)).Compile(b))
	assert.Empty(t, exec.Main().FindOps(optypes.Cast))
}
