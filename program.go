package mir

import (
	"bytes"
	"fmt"
	"io"
)

// Program is a finished MIR program, as returned by Builder.Build: a set of
// functions, one of them named "main".
//
// Optimization passes (see the passes package) rewrite programs in place, so
// callers that want to keep the original should Clone first -- the backend
// compiler does that automatically.
type Program struct {
	// Name of the program.
	Name string

	// Functions of the program, in creation order. One of them is named "main".
	Functions []*Function
}

// Main returns the program's main function.
func (p *Program) Main() *Function {
	for _, fn := range p.Functions {
		if fn.Name == MainFunctionName {
			return fn
		}
	}
	return nil
}

// Clone returns a deep copy of the program, so passes can rewrite it without
// affecting the original.
func (p *Program) Clone() *Program {
	clone := &Program{Name: p.Name}
	clone.Functions = make([]*Function, len(p.Functions))
	for i, fn := range p.Functions {
		clone.Functions[i] = fn.Clone()
	}
	return clone
}

// Write the program (a readable string) to the given writer.
func (p *Program) Write(writer io.Writer) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}

	w("program @%s {\n", NormalizeIdentifier(p.Name))
	for i, fn := range p.Functions {
		if err != nil {
			break
		}
		if i > 0 {
			w("\n\n")
		}
		err = fn.Write(writer, IndentationStep)
	}
	w("\n}\n")
	return err
}

// String implements fmt.Stringer, and returns the program text.
func (p *Program) String() string {
	var buf bytes.Buffer
	if err := p.Write(&buf); err != nil {
		return fmt.Sprintf("<error writing program: %v>", err)
	}
	return buf.String()
}
