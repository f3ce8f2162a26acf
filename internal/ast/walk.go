package ast

import "fmt"

// Walk traverses the tree in pre-order. If visit returns false, children of the node are skipped.
// Typed names are visited as well so that callers can collect declared names.
func Walk(node AstNode, visit func(AstNode) bool) {
	if !visit(node) {
		return
	}

	switch n := node.(type) {
	case *Block:
		for _, stmt := range n.Statements {
			Walk(stmt, visit)
		}
	case *ExpressionStatement:
		Walk(n.Expression, visit)
	case *Assignment:
		for _, id := range n.VariableNames {
			Walk(id, visit)
		}
		Walk(n.Value, visit)
	case *VariableDeclaration:
		for _, v := range n.Variables {
			Walk(v, visit)
		}
		if n.Value != nil {
			Walk(n.Value, visit)
		}
	case *FunctionDefinition:
		for _, p := range n.Parameters {
			Walk(p, visit)
		}
		for _, r := range n.ReturnVariables {
			Walk(r, visit)
		}
		Walk(n.Body, visit)
	case *If:
		Walk(n.Condition, visit)
		Walk(n.Body, visit)
	case *Switch:
		Walk(n.Expression, visit)
		for _, c := range n.Cases {
			if c.Value != nil {
				Walk(c.Value, visit)
			}
			Walk(c.Body, visit)
		}
	case *ForLoop:
		Walk(n.Pre, visit)
		Walk(n.Condition, visit)
		Walk(n.Post, visit)
		Walk(n.Body, visit)
	case *FunctionCall:
		Walk(&n.FunctionName, visit)
		for _, arg := range n.Arguments {
			Walk(arg, visit)
		}
	case TypedName, *Identifier, *Literal, *Break, *Continue, *Leave:
		// Leaves.
	default:
		panic(fmt.Sprintf("unknown node type: %T", node))
	}
}
