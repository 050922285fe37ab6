package passes

import (
	"slices"

	"github.com/gomlx/go-mir"
	"github.com/gomlx/go-mir/internal/optypes"
	"github.com/gomlx/go-mir/internal/utils"
	"k8s.io/klog/v2"
)

type deadCodeElimination struct{}

// DeadCodeElimination returns the "common::dead_code_elimination" pass: it
// removes statements whose outputs are not (transitively) consumed by the
// function's return statement.
func DeadCodeElimination() Pass {
	return deadCodeElimination{}
}

func (deadCodeElimination) Name() string {
	return "common::dead_code_elimination"
}

func (deadCodeElimination) Apply(fn *mir.Function, ctx *Context) error {
	live := utils.MakeSet[*mir.Value](len(fn.Statements))
	if ret := fn.ReturnStatement(); ret != nil {
		for _, value := range ret.Inputs {
			live.Insert(value)
		}
	}

	// Statements are in SSA order, so a single reverse sweep finds all live values.
	removedCount := 0
	for i := len(fn.Statements) - 1; i >= 0; i-- {
		stmt := fn.Statements[i]
		if stmt.OpType == optypes.FuncReturn {
			continue
		}
		isLive := slices.ContainsFunc(stmt.Outputs, live.Has)
		if !isLive {
			fn.Statements = slices.Delete(fn.Statements, i, i+1)
			removedCount++
			continue
		}
		for _, input := range stmt.Inputs {
			live.Insert(input)
		}
	}
	if removedCount > 0 {
		klog.V(1).Infof("dead_code_elimination: removed %d statement(s) from function %q", removedCount, fn.Name)
	}
	return nil
}
