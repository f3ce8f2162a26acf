package functions

import (
	"maps"
	"slices"

	"github.com/iley/yulopt/internal/ast"
)

// Table maps function names to their definitions.
type Table map[string]*ast.FunctionDefinition

// GetFunctionTable collects all function definitions in the program, including the ones nested
// inside other functions and blocks. Function names are unique across the program.
func GetFunctionTable(program *ast.Block) Table {
	table := make(Table)
	ast.Walk(program, func(node ast.AstNode) bool {
		if fn, ok := node.(*ast.FunctionDefinition); ok {
			table[fn.Name] = fn
		}
		return true
	})
	return table
}

// Names returns the function names in sorted order.
func (t Table) Names() []string {
	return slices.Sorted(maps.Keys(t))
}
