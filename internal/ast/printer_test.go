package ast

import (
	"fmt"
	"strings"
	"testing"
)

func call(name string, args ...Expression) *FunctionCall {
	return &FunctionCall{FunctionName: Identifier{Name: name}, Arguments: args}
}

func id(name string) *Identifier {
	return &Identifier{Name: name}
}

func num(value string) *Literal {
	return NewNumberLiteral(Location{}, value)
}

func TestPrinter(t *testing.T) {
	tests := []struct {
		name     string
		program  *Block
		expected string
	}{
		{
			name:     "empty program",
			program:  &Block{},
			expected: "{ }\n",
		},
		{
			name: "function and declarations",
			program: &Block{Statements: []Statement{
				&FunctionDefinition{
					Name:            "f",
					Parameters:      []TypedName{{Name: "a"}, {Name: "b", Type: "u256"}},
					ReturnVariables: []TypedName{{Name: "r"}},
					Body: &Block{Statements: []Statement{
						&Assignment{VariableNames: []*Identifier{id("r")}, Value: call("add", id("a"), id("b"))},
					}},
				},
				&VariableDeclaration{Variables: []TypedName{{Name: "x"}}, Value: call("f", num("1"), num("0x20"))},
				&VariableDeclaration{Variables: []TypedName{{Name: "y"}, {Name: "z"}}},
				&If{Condition: id("x"), Body: &Block{}},
			}},
			expected: `{
  function f(a, b:u256) -> r {
    r := add(a, b)
  }
  let x := f(1, 0x20)
  let y, z
  if x { }
}
`,
		},
		{
			name: "function without return variables",
			program: &Block{Statements: []Statement{
				&FunctionDefinition{Name: "g", Body: &Block{Statements: []Statement{&Leave{}}}},
			}},
			expected: `{
  function g() {
    leave
  }
}
`,
		},
		{
			name: "control flow",
			program: &Block{Statements: []Statement{
				&Switch{
					Expression: id("x"),
					Cases: []*Case{
						{Value: num("0"), Body: &Block{Statements: []Statement{&ExpressionStatement{Expression: call("pop", NewStringLiteral(Location{}, "a\"b"))}}}},
						{Body: &Block{}},
					},
				},
				&ForLoop{
					Pre:       &Block{Statements: []Statement{&VariableDeclaration{Variables: []TypedName{{Name: "i"}}, Value: num("0")}}},
					Condition: call("lt", id("i"), num("10")),
					Post:      &Block{},
					Body:      &Block{Statements: []Statement{&Break{}, &Continue{}}},
				},
				&Block{},
			}},
			expected: `{
  switch x
  case 0 {
    pop("a\"b")
  }
  default { }
  for {
    let i := 0
  } lt(i, 10) { } {
    break
    continue
  }
  { }
}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var sb strings.Builder
			NewPrinter(&sb).PrintProgram(tt.program)
			if sb.String() != tt.expected {
				t.Errorf("expected:\n%s\ngot:\n%s", tt.expected, sb.String())
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		name     string
		node     fmt.Stringer
		expected string
	}{
		{"identifier", id("x"), "x"},
		{"number", num("0x80"), "0x80"},
		{"bool", NewBoolLiteral(Location{}, true), "true"},
		{"string", NewStringLiteral(Location{}, "a\nb"), `"a\nb"`},
		{"call", call("mstore", num("0"), id("v")), "(mstore 0 v)"},
		{"typed name", TypedName{Name: "x", Type: "u256"}, "x:u256"},
		{
			"multi assignment",
			&Assignment{VariableNames: []*Identifier{id("a"), id("b")}, Value: call("f")},
			"(= (a b) (f))",
		},
		{
			"declaration without value",
			&VariableDeclaration{Variables: []TypedName{{Name: "a"}}},
			"(let (a))",
		},
		{
			"function",
			&FunctionDefinition{
				Name:            "f",
				Parameters:      []TypedName{{Name: "a"}},
				ReturnVariables: []TypedName{{Name: "r"}, {Name: "s"}},
				Body:            &Block{},
			},
			"(function f (a) (r s) (block))",
		},
		{"location", Location{Line: 3, Col: 7}, "3:7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.node.String() != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, tt.node.String())
			}
		})
	}
}
