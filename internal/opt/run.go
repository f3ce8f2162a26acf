package opt

import (
	"github.com/holiman/uint256"

	"github.com/iley/yulopt/internal/ast"
)

// Settings describe which variables are moved to memory and where the reserved memory area is.
// They are computed by an earlier stage of the compiler.
type Settings struct {
	ReservedMemory   uint256.Int
	MemorySlots      map[string]uint64
	NumRequiredSlots uint64
}

// Result summarizes the changes made by Run.
type Result struct {
	Trampolines []*ast.FunctionDefinition
}

// Run applies the optimiser steps to the program in place.
func Run(ctx *StepContext, settings Settings, program *ast.Block) Result {
	result := Result{}
	if len(settings.MemorySlots) > 0 {
		result.Trampolines = MoveStackToMemory(ctx, &settings.ReservedMemory, settings.MemorySlots, settings.NumRequiredSlots, program)
	}
	return result
}
