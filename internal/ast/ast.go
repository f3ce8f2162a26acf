package ast

import (
	"fmt"
	"strings"

	"github.com/iley/yulopt/internal/util"
)

/*
Tree-shaped intermediate representation consumed by the optimiser steps.
It mirrors the Yul language: a program is a single Block whose statements may
contain function definitions, nested blocks and control flow. Expressions are
literals, identifiers and function calls. There are no operators: everything
that computes a value is a call to a builtin or a user-defined function.
*/

type Location struct {
	Line int
	Col  int
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Col)
}

type AstNode interface {
	fmt.Stringer
	GetLocation() Location
}

// TypedName is a declared variable, parameter or return variable.
type TypedName struct {
	Loc  Location
	Name string
	Type string // empty for the dialect default type
}

func (n TypedName) GetLocation() Location {
	return n.Loc
}

func (n TypedName) String() string {
	if n.Type == "" {
		return n.Name
	}
	return n.Name + ":" + n.Type
}

func typedNamesString(names []TypedName) string {
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name.String()
	}
	return strings.Join(parts, " ")
}

type Block struct {
	Loc        Location
	Statements []Statement
}

func (b *Block) GetLocation() Location {
	return b.Loc
}

func (b *Block) isStatement() {}

func (b *Block) String() string {
	var sb strings.Builder
	sb.WriteString("(block")
	for _, stmt := range b.Statements {
		sb.WriteString(" ")
		sb.WriteString(stmt.String())
	}
	sb.WriteString(")")
	return sb.String()
}

// Statement types.

type Statement interface {
	AstNode
	isStatement()
}

type ExpressionStatement struct {
	Loc        Location
	Expression Expression
}

func (s *ExpressionStatement) GetLocation() Location {
	return s.Loc
}

func (s *ExpressionStatement) isStatement() {}

func (s *ExpressionStatement) String() string {
	return s.Expression.String()
}

type Assignment struct {
	Loc           Location
	VariableNames []*Identifier
	Value         Expression
}

func (a *Assignment) GetLocation() Location {
	return a.Loc
}

func (a *Assignment) isStatement() {}

func (a *Assignment) String() string {
	names := make([]string, len(a.VariableNames))
	for i, id := range a.VariableNames {
		names[i] = id.Name
	}
	return fmt.Sprintf("(= (%s) %s)", strings.Join(names, " "), a.Value.String())
}

type VariableDeclaration struct {
	Loc       Location
	Variables []TypedName
	Value     Expression // optional initial value
}

func (d *VariableDeclaration) GetLocation() Location {
	return d.Loc
}

func (d *VariableDeclaration) isStatement() {}

func (d *VariableDeclaration) String() string {
	if d.Value == nil {
		return fmt.Sprintf("(let (%s))", typedNamesString(d.Variables))
	}
	return fmt.Sprintf("(let (%s) %s)", typedNamesString(d.Variables), d.Value.String())
}

type FunctionDefinition struct {
	Loc             Location
	Name            string
	Parameters      []TypedName
	ReturnVariables []TypedName
	Body            *Block
}

func (f *FunctionDefinition) GetLocation() Location {
	return f.Loc
}

func (f *FunctionDefinition) isStatement() {}

func (f *FunctionDefinition) String() string {
	return fmt.Sprintf("(function %s (%s) (%s) %s)",
		f.Name, typedNamesString(f.Parameters), typedNamesString(f.ReturnVariables), f.Body.String())
}

type If struct {
	Loc       Location
	Condition Expression
	Body      *Block
}

func (i *If) GetLocation() Location {
	return i.Loc
}

func (i *If) isStatement() {}

func (i *If) String() string {
	return fmt.Sprintf("(if %s %s)", i.Condition.String(), i.Body.String())
}

type Case struct {
	Loc   Location
	Value *Literal // nil for the default case
	Body  *Block
}

func (c *Case) GetLocation() Location {
	return c.Loc
}

func (c *Case) String() string {
	if c.Value == nil {
		return fmt.Sprintf("(default %s)", c.Body.String())
	}
	return fmt.Sprintf("(case %s %s)", c.Value.String(), c.Body.String())
}

type Switch struct {
	Loc        Location
	Expression Expression
	Cases      []*Case
}

func (s *Switch) GetLocation() Location {
	return s.Loc
}

func (s *Switch) isStatement() {}

func (s *Switch) String() string {
	var sb strings.Builder
	sb.WriteString("(switch ")
	sb.WriteString(s.Expression.String())
	for _, c := range s.Cases {
		sb.WriteString(" ")
		sb.WriteString(c.String())
	}
	sb.WriteString(")")
	return sb.String()
}

type ForLoop struct {
	Loc       Location
	Pre       *Block
	Condition Expression
	Post      *Block
	Body      *Block
}

func (f *ForLoop) GetLocation() Location {
	return f.Loc
}

func (f *ForLoop) isStatement() {}

func (f *ForLoop) String() string {
	return fmt.Sprintf("(for %s %s %s %s)", f.Pre.String(), f.Condition.String(), f.Post.String(), f.Body.String())
}

type Break struct {
	Loc Location
}

func (b *Break) GetLocation() Location {
	return b.Loc
}

func (b *Break) isStatement() {}

func (b *Break) String() string {
	return "(break)"
}

type Continue struct {
	Loc Location
}

func (c *Continue) GetLocation() Location {
	return c.Loc
}

func (c *Continue) isStatement() {}

func (c *Continue) String() string {
	return "(continue)"
}

type Leave struct {
	Loc Location
}

func (l *Leave) GetLocation() Location {
	return l.Loc
}

func (l *Leave) isStatement() {}

func (l *Leave) String() string {
	return "(leave)"
}

// Expression types.

type Expression interface {
	AstNode
	isExpression()
}

type LiteralKind int

const (
	LiteralNumber LiteralKind = iota
	LiteralBool
	LiteralString
)

type Literal struct {
	Loc   Location
	Kind  LiteralKind
	Value string
	Type  string
}

func (l *Literal) GetLocation() Location {
	return l.Loc
}

func (l *Literal) isExpression() {}

func (l *Literal) String() string {
	if l.Kind == LiteralString {
		return fmt.Sprintf("\"%s\"", util.EscapeString(l.Value))
	}
	return l.Value
}

// Helper functions for creating Literal values
func NewNumberLiteral(loc Location, value string) *Literal {
	return &Literal{Loc: loc, Kind: LiteralNumber, Value: value}
}

func NewBoolLiteral(loc Location, value bool) *Literal {
	return &Literal{Loc: loc, Kind: LiteralBool, Value: fmt.Sprintf("%v", value)}
}

func NewStringLiteral(loc Location, value string) *Literal {
	return &Literal{Loc: loc, Kind: LiteralString, Value: value}
}

type Identifier struct {
	Loc  Location
	Name string
}

func (i *Identifier) GetLocation() Location {
	return i.Loc
}

func (i *Identifier) isExpression() {}

func (i *Identifier) String() string {
	return i.Name
}

type FunctionCall struct {
	Loc          Location
	FunctionName Identifier
	Arguments    []Expression
}

func (f *FunctionCall) GetLocation() Location {
	return f.Loc
}

func (f *FunctionCall) isExpression() {}

func (f *FunctionCall) String() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("(%s", f.FunctionName.Name))
	for _, arg := range f.Arguments {
		sb.WriteString(" ")
		sb.WriteString(arg.String())
	}
	sb.WriteString(")")
	return sb.String()
}
