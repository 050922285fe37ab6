// Package passes implements the program optimization passes and the pipeline
// that runs them before a program is handed to a backend.
//
// Passes are named "<namespace>::<name>", like "common::dead_code_elimination"
// or "backend::adjust_io_to_supported_types". The default pipeline can be
// edited -- see Pipeline.RemovePasses and Pipeline.Append -- to control which
// rewrites are applied.
package passes

import (
	"slices"

	"github.com/gomlx/go-mir"
	"github.com/gomlx/go-mir/types"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Context carries the compilation parameters the passes depend on.
type Context struct {
	// Target is the deployment target the program is being compiled for. It
	// restricts the dtypes allowed on the program I/O boundary (see
	// types.DeploymentTarget.SupportedIODTypes).
	Target types.DeploymentTarget
}

// Pass is a program rewrite applied to one function at a time.
type Pass interface {
	// Name of the pass, like "common::dead_code_elimination".
	Name() string

	// Apply rewrites the function in place.
	Apply(fn *mir.Function, ctx *Context) error
}

// Pipeline is an ordered list of passes applied to every function of a
// program.
type Pipeline struct {
	name   string
	passes []Pass
}

// NewPipeline creates a pipeline with the given passes, run in order.
func NewPipeline(name string, passes ...Pass) *Pipeline {
	return &Pipeline{
		name:   name,
		passes: passes,
	}
}

// Default returns the default pipeline:
//
//	common::cast_optimization
//	common::dead_code_elimination
//	backend::adjust_io_to_supported_types
func Default() *Pipeline {
	return NewPipeline("default",
		CastOptimization(),
		DeadCodeElimination(),
		AdjustIOToSupportedTypes(),
	)
}

// Name of the pipeline.
func (p *Pipeline) Name() string {
	return p.name
}

// Passes returns the names of the passes in the pipeline, in run order.
func (p *Pipeline) Passes() []string {
	names := make([]string, len(p.passes))
	for i, pass := range p.passes {
		names[i] = pass.Name()
	}
	return names
}

// RemovePasses removes the named passes from the pipeline. It returns an
// error if any of the names is not in the pipeline.
func (p *Pipeline) RemovePasses(names ...string) error {
	for _, name := range names {
		idx := slices.IndexFunc(p.passes, func(pass Pass) bool {
			return pass.Name() == name
		})
		if idx < 0 {
			return errors.Errorf("pass %q is not in pipeline %q (passes: %v)", name, p.name, p.Passes())
		}
		p.passes = slices.Delete(p.passes, idx, idx+1)
	}
	return nil
}

// Append adds passes to the end of the pipeline.
func (p *Pipeline) Append(passes ...Pass) *Pipeline {
	p.passes = append(p.passes, passes...)
	return p
}

// Run applies the pipeline to every function of the program, in place.
func (p *Pipeline) Run(program *mir.Program, ctx *Context) error {
	for _, pass := range p.passes {
		for _, fn := range program.Functions {
			klog.V(1).Infof("pipeline %q: applying %s to function %q", p.name, pass.Name(), fn.Name)
			if err := pass.Apply(fn, ctx); err != nil {
				return errors.WithMessagef(err, "pipeline %q failed in pass %s, function %q", p.name, pass.Name(), fn.Name)
			}
		}
	}
	return nil
}
