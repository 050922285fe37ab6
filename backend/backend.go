// Package backend compiles a MIR program and executes it.
//
// The compiler runs the pass pipeline (see the passes package) over a clone
// of the program, legalizing the I/O boundary for the configured deployment
// target, and returns an Executable that interprets the optimized program
// with the same numeric kernels used by the builder's value inference.
//
// Written purely in Go, no C/C++ external dependencies.
package backend

import (
	"github.com/gomlx/go-mir"
	"github.com/gomlx/go-mir/passes"
	"github.com/gomlx/go-mir/types"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Compiler compiles MIR programs for execution. Create one with New and the
// desired options.
type Compiler struct {
	computeUnits types.ComputeUnits
	target       types.DeploymentTarget
	pipeline     *passes.Pipeline
}

// Option configures a Compiler. See WithComputeUnits, WithDeploymentTarget
// and WithPipeline.
type Option func(*Compiler)

// WithComputeUnits selects the compute units the compiled program may use.
// The interpreter always executes on CPU; the setting is recorded in the
// executable for API parity with hardware backends.
func WithComputeUnits(units types.ComputeUnits) Option {
	return func(c *Compiler) {
		c.computeUnits = units
	}
}

// WithDeploymentTarget sets the deployment target, which restricts the dtypes
// allowed on the program I/O boundary. The default is types.TargetNone, which
// is unrestricted.
func WithDeploymentTarget(target types.DeploymentTarget) Option {
	return func(c *Compiler) {
		c.target = target
	}
}

// WithPipeline replaces the default pass pipeline (passes.Default) with a
// custom one.
func WithPipeline(pipeline *passes.Pipeline) Option {
	return func(c *Compiler) {
		c.pipeline = pipeline
	}
}

// New creates a Compiler with the given options.
func New(options ...Option) *Compiler {
	c := &Compiler{
		computeUnits: types.ComputeUnitsAll,
		target:       types.TargetNone,
		pipeline:     passes.Default(),
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Compile builds the program from the builder, runs the pass pipeline over a
// clone of it and returns an Executable. The builder's program is not
// changed.
func (c *Compiler) Compile(builder *mir.Builder) (*Executable, error) {
	program, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return c.CompileProgram(program)
}

// CompileProgram is like Compile, for an already built program.
func (c *Compiler) CompileProgram(program *mir.Program) (*Executable, error) {
	optimized := program.Clone()
	ctx := &passes.Context{Target: c.target}
	if err := c.pipeline.Run(optimized, ctx); err != nil {
		return nil, err
	}
	main := optimized.Main()
	if main == nil {
		return nil, errors.Errorf("program %q has no main function", program.Name)
	}
	klog.V(1).Infof("compiled program %q for target %s (compute units %s): %d statement(s) in main",
		program.Name, c.target, c.computeUnits, len(main.Statements))
	return &Executable{
		program:      optimized,
		main:         main,
		computeUnits: c.computeUnits,
		target:       c.target,
	}, nil
}
