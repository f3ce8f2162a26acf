package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer renders the tree as Yul source text.
type Printer struct {
	output      io.Writer
	indentLevel int
}

func NewPrinter(output io.Writer) *Printer {
	return &Printer{output: output}
}

func (p *Printer) write(line string) {
	fmt.Fprint(p.output, line)
}

func (p *Printer) writeln(line string) {
	p.write(line)
	p.write("\n")
}

func (p *Printer) indent() {
	p.indentLevel++
}

func (p *Printer) dedent() {
	p.indentLevel--
}

func (p *Printer) writeIndent() {
	p.write(strings.Repeat("  ", p.indentLevel))
}

func (p *Printer) PrintProgram(block *Block) {
	p.printBlock(block)
	p.writeln("")
}

// printBlock writes the braces and statements of a block. The caller is responsible for the leading indentation.
func (p *Printer) printBlock(block *Block) {
	if len(block.Statements) == 0 {
		p.write("{ }")
		return
	}
	p.writeln("{")
	p.indent()
	for _, stmt := range block.Statements {
		p.writeIndent()
		p.printStatement(stmt)
		p.writeln("")
	}
	p.dedent()
	p.writeIndent()
	p.write("}")
}

func (p *Printer) printStatement(stmt Statement) {
	switch s := stmt.(type) {
	case *Block:
		p.printBlock(s)
	case *ExpressionStatement:
		p.write(FormatExpression(s.Expression))
	case *Assignment:
		names := make([]string, len(s.VariableNames))
		for i, id := range s.VariableNames {
			names[i] = id.Name
		}
		p.write(strings.Join(names, ", ") + " := " + FormatExpression(s.Value))
	case *VariableDeclaration:
		p.write("let " + formatTypedNames(s.Variables))
		if s.Value != nil {
			p.write(" := " + FormatExpression(s.Value))
		}
	case *FunctionDefinition:
		p.write("function " + s.Name + "(" + formatTypedNames(s.Parameters) + ")")
		if len(s.ReturnVariables) > 0 {
			p.write(" -> " + formatTypedNames(s.ReturnVariables))
		}
		p.write(" ")
		p.printBlock(s.Body)
	case *If:
		p.write("if " + FormatExpression(s.Condition) + " ")
		p.printBlock(s.Body)
	case *Switch:
		p.write("switch " + FormatExpression(s.Expression))
		for _, c := range s.Cases {
			p.writeln("")
			p.writeIndent()
			if c.Value == nil {
				p.write("default ")
			} else {
				p.write("case " + FormatExpression(c.Value) + " ")
			}
			p.printBlock(c.Body)
		}
	case *ForLoop:
		p.write("for ")
		p.printBlock(s.Pre)
		p.write(" " + FormatExpression(s.Condition) + " ")
		p.printBlock(s.Post)
		p.write(" ")
		p.printBlock(s.Body)
	case *Break:
		p.write("break")
	case *Continue:
		p.write("continue")
	case *Leave:
		p.write("leave")
	default:
		panic(fmt.Sprintf("unknown statement type: %T", stmt))
	}
}

// FormatExpression returns the Yul source form of an expression.
func FormatExpression(expr Expression) string {
	switch e := expr.(type) {
	case *Literal:
		if e.Type != "" {
			return e.String() + ":" + e.Type
		}
		return e.String()
	case *Identifier:
		return e.Name
	case *FunctionCall:
		args := make([]string, len(e.Arguments))
		for i, arg := range e.Arguments {
			args[i] = FormatExpression(arg)
		}
		return e.FunctionName.Name + "(" + strings.Join(args, ", ") + ")"
	}
	panic(fmt.Sprintf("unknown expression type: %T", expr))
}

func formatTypedNames(names []TypedName) string {
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = name.String()
	}
	return strings.Join(parts, ", ")
}
