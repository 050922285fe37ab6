package mir

import (
	"fmt"
	"io"

	"github.com/gomlx/go-mir/internal/utils"
	"github.com/pkg/errors"
)

// Builder is used to construct a MIR program.
// See details in New.
type Builder struct {
	name string

	// functions holds all the functions created in the builder's scope.
	functions []*Function
}

// New creates a new Builder object holding a program in construction.
//
// From a builder you can create functions.
// For each function you create operations (ops) one by one, until you defined the desired computation.
//
// You have to define the "main" function for your program: you can use Builder.Main to do so, or
// Builder.NewFunction("main"), it's the same.
//
// Once you are all set, call Builder.Build and it will return the finished Program, which can be
// optimized by a pass pipeline and compiled for a backend (see the passes and backend packages).
func New(name string) *Builder {
	return &Builder{
		name: name,
	}
}

// Name of the program being built.
func (b *Builder) Name() string {
	return b.name
}

// elementWriter represents elements of the program text that know how to write themselves.
type elementWriter interface {
	Write(w io.Writer, indentation string) error
}

// NewFunction creates a new function and adds it to the program.
//
// The function name must be unique in the program.
//
// Inputs are added by calling Function.Input or Function.NamedInput, and the
// function body is defined by calling ops on the function object.
//
// See Function.
func (b *Builder) NewFunction(name string) *Function {
	fn := &Function{
		Builder: b,
		Name:    NormalizeIdentifier(name),
	}
	b.functions = append(b.functions, fn)
	return fn
}

const MainFunctionName = "main"

// Main creates the main function of the program.
// It is an alias to Builder.NewFunction("main").
//
// The main function is the entry point of the program, and it's the only function that can be called from outside the program.
//
// Every program must have a main function.
func (b *Builder) Main() *Function {
	return b.NewFunction(MainFunctionName)
}

const IndentationStep = "  "

// Write the program (a readable string) to the given writer.
//
// It will write incomplete programs (without a main function or without a return statement)
// without an error to help debugging.
//
// See Builder.Build to check and finish the program.
func (b *Builder) Write(writer io.Writer) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	we := func(e elementWriter, indentation string) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		err = e.Write(writer, indentation)
	}

	w("program @%s {\n", NormalizeIdentifier(b.name))
	for i, fn := range b.functions {
		if i > 0 {
			w("\n\n")
		}
		we(fn, IndentationStep) // Indent functions inside the program
	}
	w("\n}\n") // Close program block
	return err
}

// Build checks the validity of the program under construction and returns it
// as a Program.
//
// The builder keeps ownership of the functions: the returned program shares
// them, so further changes to the builder also change the program. The
// backend clones the program before running the optimization passes.
//
// If you want the text of an incomplete program (without the checking), use Builder.Write instead.
func (b *Builder) Build() (*Program, error) {
	hasMain := false
	for _, fn := range b.functions {
		if fn.Name == MainFunctionName {
			hasMain = true
		}
		if !fn.Returned {
			return nil, errors.Errorf("function %q has no return statement", fn.Name)
		}
		inputNames := utils.MakeSet[string](len(fn.Inputs))
		for _, input := range fn.Inputs {
			if inputNames.Has(input.Name()) {
				return nil, errors.Errorf("function %q has duplicate input name %q", fn.Name, input.Name())
			}
			inputNames.Insert(input.Name())
		}
	}
	if !hasMain {
		return nil, errors.New("program must have a main function")
	}
	return &Program{
		Name:      b.name,
		Functions: b.functions,
	}, nil
}
