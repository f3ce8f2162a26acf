package loader

import (
	"strings"
	"testing"

	"github.com/iley/yulopt/internal/ast"
)

func TestLoad(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty document",
			input:    "",
			expected: "(block)",
		},
		{
			name:     "empty program",
			input:    "[]",
			expected: "(block)",
		},
		{
			name: "function definition",
			input: `
- function: f
  params: [a, b:u256]
  returns: [r, s]
  body:
    - assign: [r]
      value: {call: add, args: [a, b]}
`,
			expected: "(block (function f (a b:u256) (r s) (block (= (r) (add a b)))))",
		},
		{
			name: "declarations and literals",
			input: `
- let: [x]
- let: [y, z]
  value: {call: g, args: [0x20, 7, true, "str"]}
`,
			expected: `(block (let (x)) (let (y z) (g 0x20 7 true "str")))`,
		},
		{
			name: "control flow",
			input: `
- if: c
  body:
    - break
- switch: x
  cases:
    - case: 0
      body: [continue]
    - default: [leave]
- for:
    pre:
      - let: [i]
        value: 0
    cond: {call: lt, args: [i, 10]}
    post:
      - assign: [i]
        value: {call: add, args: [i, 1]}
    body: []
- block:
    - expr: {call: pop, args: [x]}
`,
			expected: "(block (if c (block (break))) (switch x (case 0 (block (continue))) (default (block (leave)))) " +
				"(for (block (let (i) 0)) (lt i 10) (block (= (i) (add i 1))) (block)) (block (pop x)))",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			program, err := Load(strings.NewReader(tc.input), "test.yaml")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if program.String() != tc.expected {
				t.Errorf("expected:\n%s\ngot:\n%s", tc.expected, program.String())
			}
		})
	}
}

func TestLoadLocations(t *testing.T) {
	input := `- let: [x]
  value: 1
- expr: {call: pop, args: [x]}
`
	program, err := Load(strings.NewReader(input), "test.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(program.Statements) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(program.Statements))
	}
	decl := program.Statements[0].(*ast.VariableDeclaration)
	if decl.Loc != (ast.Location{Line: 1, Col: 3}) {
		t.Errorf("unexpected declaration location %s", decl.Loc)
	}
	if decl.Variables[0].Loc != (ast.Location{Line: 1, Col: 9}) {
		t.Errorf("unexpected variable location %s", decl.Variables[0].Loc)
	}
	stmt := program.Statements[1].(*ast.ExpressionStatement)
	if stmt.Loc.Line != 3 {
		t.Errorf("unexpected statement line %d", stmt.Loc.Line)
	}
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		err   string
	}{
		{
			name:  "not a sequence",
			input: "function: f",
			err:   "test.yaml:1:1: expected a sequence of statements",
		},
		{
			name:  "unknown keyword",
			input: "- goto",
			err:   "test.yaml:1:3: unknown statement goto",
		},
		{
			name:  "unknown key",
			input: "- let: [x]\n  init: 1",
			err:   "test.yaml:2:3: unexpected key init",
		},
		{
			name:  "assignment without value",
			input: "- assign: [x]",
			err:   "test.yaml:1:3: assignment without a value",
		},
		{
			name:  "invalid name",
			input: "- let: [1x]",
			err:   "test.yaml:1:9: invalid name 1x",
		},
		{
			name:  "invalid expression",
			input: "- expr: a-b",
			err:   "test.yaml:1:9: invalid expression a-b",
		},
		{
			name:  "non literal case",
			input: "- switch: x\n  cases:\n    - case: y",
			err:   "test.yaml:3:13: case value must be a literal",
		},
		{
			name:  "malformed yaml",
			input: "- [",
			err:   "test.yaml: yaml:",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tc.input), "test.yaml")
			if err == nil {
				t.Fatalf("expected error %q, got none", tc.err)
			}
			if !strings.HasPrefix(err.Error(), tc.err) {
				t.Errorf("expected error starting with %q, got %q", tc.err, err.Error())
			}
		})
	}
}
