package opt

import (
	"github.com/iley/yulopt/internal/ast"
	"github.com/iley/yulopt/internal/dialect"
)

// StepContext is shared by all optimiser steps run over one program.
type StepContext struct {
	Dialect   dialect.Dialect
	Dispenser *NameDispenser
}

func NewStepContext(d dialect.Dialect, program *ast.Block) *StepContext {
	return &StepContext{
		Dialect:   d,
		Dispenser: NewNameDispenser(d, program),
	}
}
