package opt

import (
	"fmt"

	"github.com/iley/yulopt/internal/ast"
	"github.com/iley/yulopt/internal/dialect"
)

// NameDispenser hands out names that do not collide with any name used in the program or with a builtin.
type NameDispenser struct {
	dialect dialect.Dialect
	used    map[string]bool
	counter int
}

func NewNameDispenser(d dialect.Dialect, program *ast.Block) *NameDispenser {
	nd := &NameDispenser{
		dialect: d,
		used:    make(map[string]bool),
	}
	ast.Walk(program, func(node ast.AstNode) bool {
		switch n := node.(type) {
		case ast.TypedName:
			nd.used[n.Name] = true
		case *ast.Identifier:
			nd.used[n.Name] = true
		case *ast.FunctionDefinition:
			nd.used[n.Name] = true
		}
		return true
	})
	return nd
}

// NewName returns hint itself if it is free, otherwise hint with a numeric suffix.
func (nd *NameDispenser) NewName(hint string) string {
	name := hint
	for nd.illegal(name) {
		nd.counter++
		name = fmt.Sprintf("%s_%d", hint, nd.counter)
	}
	nd.used[name] = true
	return name
}

func (nd *NameDispenser) illegal(name string) bool {
	if name == "" || nd.used[name] {
		return true
	}
	return nd.dialect != nil && nd.dialect.Builtin(name) != nil
}
