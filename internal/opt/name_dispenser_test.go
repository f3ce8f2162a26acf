package opt

import (
	"testing"

	"github.com/iley/yulopt/internal/ast"
	"github.com/iley/yulopt/internal/dialect"
)

func TestNameDispenser(t *testing.T) {
	program := &ast.Block{
		Statements: []ast.Statement{
			&ast.FunctionDefinition{
				Name:            "f",
				Parameters:      []ast.TypedName{{Name: "a"}},
				ReturnVariables: []ast.TypedName{{Name: "r"}},
				Body: &ast.Block{Statements: []ast.Statement{
					&ast.Assignment{
						VariableNames: []*ast.Identifier{{Name: "r"}},
						Value:         &ast.Identifier{Name: "a"},
					},
				}},
			},
		},
	}
	nd := NewNameDispenser(dialect.NewEVMDialect(true), program)

	tests := []struct {
		hint     string
		expected string
	}{
		{"x", "x"},
		{"x", "x_1"},
		{"a", "a_2"},
		{"f", "f_3"},
		{"in", "in"},
		{"out", "out"},
		{"in", "in_4"},
		// Builtin names are never handed out.
		{"mload", "mload_5"},
	}
	for _, tt := range tests {
		got := nd.NewName(tt.hint)
		if got != tt.expected {
			t.Errorf("NewName(%q) = %q, want %q", tt.hint, got, tt.expected)
		}
	}
}
