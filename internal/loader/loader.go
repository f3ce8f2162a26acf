package loader

import (
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/iley/yulopt/internal/ast"
)

/*
Programs are exchanged between compiler stages as YAML documents. A program is a sequence of statements:

  - function: f
    params: [a, b]
    returns: [r]
    body:
      - let: [x]
        value: {call: add, args: [a, 1]}
      - assign: [r]
        value: x
  - expr: {call: sstore, args: [0, {call: f, args: [1, 2]}]}
  - if: c
    body: [...]
  - switch: x
    cases:
      - case: 0
        body: [...]
      - default: [...]
  - for: {pre: [...], cond: c, post: [...], body: [...]}
  - block: [...]
  - break / continue / leave

Expressions are plain scalars (identifiers), numbers, booleans, double-quoted strings or calls.
Variable names may carry a type suffix, e.g. "x:u256".
*/

var identifierRe = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$.]*$`)
var numberRe = regexp.MustCompile(`^(0x[0-9a-fA-F]+|[0-9]+)$`)

type loader struct {
	filename string
}

// Load reads a program from YAML.
func Load(r io.Reader, filename string) (*ast.Block, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", filename, err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}

	l := &loader{filename: filename}
	if len(doc.Content) == 0 {
		return &ast.Block{Loc: ast.Location{Line: 1, Col: 1}}, nil
	}
	return l.block(doc.Content[0])
}

func (l *loader) errorf(node *yaml.Node, format string, args ...any) error {
	return fmt.Errorf("%s:%d:%d: %s", l.filename, node.Line, node.Column, fmt.Sprintf(format, args...))
}

func location(node *yaml.Node) ast.Location {
	return ast.Location{Line: node.Line, Col: node.Column}
}

func (l *loader) block(node *yaml.Node) (*ast.Block, error) {
	block := &ast.Block{Loc: location(node), Statements: []ast.Statement{}}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return block, nil
	}
	if node.Kind != yaml.SequenceNode {
		return nil, l.errorf(node, "expected a sequence of statements")
	}
	for _, child := range node.Content {
		stmt, err := l.statement(child)
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	return block, nil
}

// fields returns the keys of a mapping node.
func (l *loader) fields(node *yaml.Node) (map[string]*yaml.Node, error) {
	result := make(map[string]*yaml.Node)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i]
		if key.Kind != yaml.ScalarNode {
			return nil, l.errorf(key, "expected a scalar key")
		}
		if _, ok := result[key.Value]; ok {
			return nil, l.errorf(key, "duplicate key %s", key.Value)
		}
		result[key.Value] = node.Content[i+1]
	}
	return result, nil
}

func (l *loader) checkFields(node *yaml.Node, allowed ...string) error {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if !slices.Contains(allowed, node.Content[i].Value) {
			return l.errorf(node.Content[i], "unexpected key %s", node.Content[i].Value)
		}
	}
	return nil
}

func (l *loader) statement(node *yaml.Node) (ast.Statement, error) {
	loc := location(node)

	if node.Kind == yaml.ScalarNode {
		switch node.Value {
		case "break":
			return &ast.Break{Loc: loc}, nil
		case "continue":
			return &ast.Continue{Loc: loc}, nil
		case "leave":
			return &ast.Leave{Loc: loc}, nil
		}
		return nil, l.errorf(node, "unknown statement %s", node.Value)
	}
	if node.Kind != yaml.MappingNode {
		return nil, l.errorf(node, "expected a statement")
	}

	fields, err := l.fields(node)
	if err != nil {
		return nil, err
	}

	if name, ok := fields["function"]; ok {
		return l.functionDefinition(node, fields, name)
	} else if vars, ok := fields["let"]; ok {
		if err := l.checkFields(node, "let", "value"); err != nil {
			return nil, err
		}
		variables, err := l.typedNames(vars)
		if err != nil {
			return nil, err
		}
		decl := &ast.VariableDeclaration{Loc: loc, Variables: variables}
		if value, ok := fields["value"]; ok {
			decl.Value, err = l.expression(value)
			if err != nil {
				return nil, err
			}
		}
		return decl, nil
	} else if vars, ok := fields["assign"]; ok {
		if err := l.checkFields(node, "assign", "value"); err != nil {
			return nil, err
		}
		names, err := l.typedNames(vars)
		if err != nil {
			return nil, err
		}
		valueNode, ok := fields["value"]
		if !ok {
			return nil, l.errorf(node, "assignment without a value")
		}
		value, err := l.expression(valueNode)
		if err != nil {
			return nil, err
		}
		assignment := &ast.Assignment{Loc: loc, Value: value}
		for _, name := range names {
			if name.Type != "" {
				return nil, l.errorf(vars, "assignment target %s cannot have a type", name.Name)
			}
			assignment.VariableNames = append(assignment.VariableNames, &ast.Identifier{Loc: name.Loc, Name: name.Name})
		}
		return assignment, nil
	} else if exprNode, ok := fields["expr"]; ok {
		if err := l.checkFields(node, "expr"); err != nil {
			return nil, err
		}
		expr, err := l.expression(exprNode)
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Loc: loc, Expression: expr}, nil
	} else if cond, ok := fields["if"]; ok {
		if err := l.checkFields(node, "if", "body"); err != nil {
			return nil, err
		}
		condition, err := l.expression(cond)
		if err != nil {
			return nil, err
		}
		body, err := l.optionalBlock(node, fields["body"])
		if err != nil {
			return nil, err
		}
		return &ast.If{Loc: loc, Condition: condition, Body: body}, nil
	} else if exprNode, ok := fields["switch"]; ok {
		return l.switchStatement(node, fields, exprNode)
	} else if forNode, ok := fields["for"]; ok {
		if err := l.checkFields(node, "for"); err != nil {
			return nil, err
		}
		return l.forLoop(forNode)
	} else if blockNode, ok := fields["block"]; ok {
		if err := l.checkFields(node, "block"); err != nil {
			return nil, err
		}
		return l.block(blockNode)
	}

	return nil, l.errorf(node, "unknown statement")
}

func (l *loader) functionDefinition(node *yaml.Node, fields map[string]*yaml.Node, nameNode *yaml.Node) (ast.Statement, error) {
	if err := l.checkFields(node, "function", "params", "returns", "body"); err != nil {
		return nil, err
	}
	name, err := l.identifier(nameNode)
	if err != nil {
		return nil, err
	}
	fn := &ast.FunctionDefinition{
		Loc:             location(node),
		Name:            name,
		Parameters:      []ast.TypedName{},
		ReturnVariables: []ast.TypedName{},
	}
	if params, ok := fields["params"]; ok {
		if fn.Parameters, err = l.typedNames(params); err != nil {
			return nil, err
		}
	}
	if returns, ok := fields["returns"]; ok {
		if fn.ReturnVariables, err = l.typedNames(returns); err != nil {
			return nil, err
		}
	}
	if fn.Body, err = l.optionalBlock(node, fields["body"]); err != nil {
		return nil, err
	}
	return fn, nil
}

func (l *loader) switchStatement(node *yaml.Node, fields map[string]*yaml.Node, exprNode *yaml.Node) (ast.Statement, error) {
	if err := l.checkFields(node, "switch", "cases"); err != nil {
		return nil, err
	}
	expr, err := l.expression(exprNode)
	if err != nil {
		return nil, err
	}
	sw := &ast.Switch{Loc: location(node), Expression: expr}

	casesNode, ok := fields["cases"]
	if !ok || casesNode.Kind != yaml.SequenceNode {
		return nil, l.errorf(node, "switch requires a sequence of cases")
	}
	for _, caseNode := range casesNode.Content {
		if caseNode.Kind != yaml.MappingNode {
			return nil, l.errorf(caseNode, "expected a case")
		}
		caseFields, err := l.fields(caseNode)
		if err != nil {
			return nil, err
		}
		c := &ast.Case{Loc: location(caseNode)}
		if defaultNode, ok := caseFields["default"]; ok {
			if err := l.checkFields(caseNode, "default"); err != nil {
				return nil, err
			}
			if c.Body, err = l.block(defaultNode); err != nil {
				return nil, err
			}
		} else if valueNode, ok := caseFields["case"]; ok {
			if err := l.checkFields(caseNode, "case", "body"); err != nil {
				return nil, err
			}
			value, err := l.expression(valueNode)
			if err != nil {
				return nil, err
			}
			literal, ok := value.(*ast.Literal)
			if !ok {
				return nil, l.errorf(valueNode, "case value must be a literal")
			}
			c.Value = literal
			if c.Body, err = l.optionalBlock(caseNode, caseFields["body"]); err != nil {
				return nil, err
			}
		} else {
			return nil, l.errorf(caseNode, "expected case or default")
		}
		sw.Cases = append(sw.Cases, c)
	}
	return sw, nil
}

func (l *loader) forLoop(node *yaml.Node) (ast.Statement, error) {
	if node.Kind != yaml.MappingNode {
		return nil, l.errorf(node, "expected a mapping with pre, cond, post and body")
	}
	fields, err := l.fields(node)
	if err != nil {
		return nil, err
	}
	if err := l.checkFields(node, "pre", "cond", "post", "body"); err != nil {
		return nil, err
	}
	loop := &ast.ForLoop{Loc: location(node)}
	if loop.Pre, err = l.optionalBlock(node, fields["pre"]); err != nil {
		return nil, err
	}
	condNode, ok := fields["cond"]
	if !ok {
		return nil, l.errorf(node, "for loop without a condition")
	}
	if loop.Condition, err = l.expression(condNode); err != nil {
		return nil, err
	}
	if loop.Post, err = l.optionalBlock(node, fields["post"]); err != nil {
		return nil, err
	}
	if loop.Body, err = l.optionalBlock(node, fields["body"]); err != nil {
		return nil, err
	}
	return loop, nil
}

// optionalBlock returns an empty block located at parent if node is missing.
func (l *loader) optionalBlock(parent *yaml.Node, node *yaml.Node) (*ast.Block, error) {
	if node == nil {
		return &ast.Block{Loc: location(parent), Statements: []ast.Statement{}}, nil
	}
	return l.block(node)
}

func (l *loader) typedNames(node *yaml.Node) ([]ast.TypedName, error) {
	if node.Kind != yaml.SequenceNode {
		return nil, l.errorf(node, "expected a sequence of names")
	}
	names := []ast.TypedName{}
	for _, child := range node.Content {
		if child.Kind != yaml.ScalarNode {
			return nil, l.errorf(child, "expected a name")
		}
		name, typ, _ := strings.Cut(child.Value, ":")
		if !identifierRe.MatchString(name) || (typ != "" && !identifierRe.MatchString(typ)) {
			return nil, l.errorf(child, "invalid name %s", child.Value)
		}
		names = append(names, ast.TypedName{Loc: location(child), Name: name, Type: typ})
	}
	return names, nil
}

func (l *loader) identifier(node *yaml.Node) (string, error) {
	if node.Kind != yaml.ScalarNode || !identifierRe.MatchString(node.Value) {
		return "", l.errorf(node, "expected an identifier")
	}
	return node.Value, nil
}

func (l *loader) expression(node *yaml.Node) (ast.Expression, error) {
	loc := location(node)

	switch node.Kind {
	case yaml.ScalarNode:
		if node.Style == yaml.DoubleQuotedStyle {
			return ast.NewStringLiteral(loc, node.Value), nil
		}
		value, typ, _ := strings.Cut(node.Value, ":")
		if numberRe.MatchString(value) {
			literal := ast.NewNumberLiteral(loc, value)
			literal.Type = typ
			return literal, nil
		}
		if value == "true" || value == "false" {
			literal := ast.NewBoolLiteral(loc, value == "true")
			literal.Type = typ
			return literal, nil
		}
		if typ == "" && identifierRe.MatchString(value) {
			return &ast.Identifier{Loc: loc, Name: value}, nil
		}
		return nil, l.errorf(node, "invalid expression %s", node.Value)
	case yaml.MappingNode:
		fields, err := l.fields(node)
		if err != nil {
			return nil, err
		}
		if err := l.checkFields(node, "call", "args"); err != nil {
			return nil, err
		}
		nameNode, ok := fields["call"]
		if !ok {
			return nil, l.errorf(node, "expected a function call")
		}
		name, err := l.identifier(nameNode)
		if err != nil {
			return nil, err
		}
		call := &ast.FunctionCall{
			Loc:          loc,
			FunctionName: ast.Identifier{Loc: location(nameNode), Name: name},
			Arguments:    []ast.Expression{},
		}
		if argsNode, ok := fields["args"]; ok {
			if argsNode.Kind != yaml.SequenceNode {
				return nil, l.errorf(argsNode, "expected a sequence of arguments")
			}
			for _, argNode := range argsNode.Content {
				arg, err := l.expression(argNode)
				if err != nil {
					return nil, err
				}
				call.Arguments = append(call.Arguments, arg)
			}
		}
		return call, nil
	}
	return nil, l.errorf(node, "expected an expression")
}
