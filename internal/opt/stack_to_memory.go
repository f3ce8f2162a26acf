package opt

import (
	"fmt"
	"slices"

	"github.com/holiman/uint256"

	"github.com/iley/yulopt/internal/ast"
	"github.com/iley/yulopt/internal/functions"
	"github.com/iley/yulopt/internal/util"
)

/*
Stack to memory mover.

The EVM can only reach the topmost 16 stack slots, so a function whose parameters and return
variables add up to more than 16 cannot be compiled. Given a memory slot for each variable that
has to leave the stack, this step rewrites the program so that those variables live in a reserved
memory area instead:

 * Every read of a moved variable becomes mload(addr), every write becomes mstore(addr, value).
 * Trailing return variables with a slot are dropped from the signature of functions with more
   than one return variable. Callers read them from memory after the call.
 * Trailing parameters with a slot are dropped from the signature. Each group of up to 14 of them
   is passed through a synthesized trampoline function which stores them to memory and forwards
   one more argument, so that call sites keep the arity of the trimmed signature:

     f(a1, ..., a15, a16, ..., a19)  ->  f(a1, ..., a14, f_1(a15, a16, ..., a19))
*/

// Maximum number of parameters and return variables of a function reachable on the stack.
const maxStackArguments = 16

// Trampolines take the passthrough value plus up to 14 moved parameters.
const maxTrampolineParameters = 15

type functionMoveInfo struct {
	// One entry per return variable, nil for return variables staying on the stack.
	// Empty if no return variable is moved.
	returnVariableSlots []*string
	// Trampolines in the order they are applied to call arguments, i.e. rightmost parameters first.
	parameterTrampolines []*ast.FunctionDefinition
}

// MoveStackToMemory moves the variables listed in memorySlots to memory and returns the trampoline
// functions appended to the program. Slot i is located at reservedMemory + 32 * (numRequiredSlots - i - 1).
// The program is modified in place.
func MoveStackToMemory(ctx *StepContext, reservedMemory *uint256.Int, memorySlots map[string]uint64, numRequiredSlots uint64, program *ast.Block) []*ast.FunctionDefinition {
	d := ctx.Dialect
	util.Assert(d.ProvidesObjectAccess(), "stack to memory mover can only be run on dialects with object access, got %s", d.Name())
	util.Assert(d.MemoryStoreFunction(d.DefaultType()) != nil && d.MemoryLoadFunction(d.DefaultType()) != nil,
		"stack to memory mover requires memory load and store builtins in dialect %s", d.Name())

	offsets := newMemoryOffsetTracker(reservedMemory, memorySlots, numRequiredSlots)
	moveInfos, trampolines := buildMoveInfos(ctx, offsets, functions.GetFunctionTable(program))

	m := &stackToMemoryMover{
		ctx:       ctx,
		offsets:   offsets,
		moveInfos: moveInfos,
	}
	m.visitBlock(program)

	// Trampolines are added after rewriting: their parameters are moved variables and must stay on the stack.
	for _, trampoline := range trampolines {
		program.Statements = append(program.Statements, trampoline)
	}
	return trampolines
}

func buildMoveInfos(ctx *StepContext, offsets *memoryOffsetTracker, table functions.Table) (map[string]*functionMoveInfo, []*ast.FunctionDefinition) {
	moveInfos := make(map[string]*functionMoveInfo)
	trampolines := []*ast.FunctionDefinition{}

	for _, name := range table.Names() {
		fn := table[name]
		info := &functionMoveInfo{}
		moveInfos[name] = info

		argumentCount := len(fn.ReturnVariables) + len(fn.Parameters)

		// A function with a single return variable may be called inside an expression, so it keeps its return
		// variable on the stack. Otherwise return variables with slots are moved from right to left.
		if len(fn.ReturnVariables) > 1 {
			for i := len(fn.ReturnVariables) - 1; i >= 0 && argumentCount > maxStackArguments; i-- {
				slot, ok := offsets.offset(fn.ReturnVariables[i].Name)
				if !ok {
					// Moved return variables must be a suffix.
					break
				}
				argumentCount--
				info.returnVariableSlots = append(info.returnVariableSlots, &slot)
			}
			if len(info.returnVariableSlots) > 0 {
				for len(info.returnVariableSlots) < len(fn.ReturnVariables) {
					info.returnVariableSlots = append(info.returnVariableSlots, nil)
				}
				util.Reverse(info.returnVariableSlots)
			}
		}

		var current *ast.FunctionDefinition
		for i := len(fn.Parameters) - 1; i >= 0 && argumentCount > maxStackArguments; i-- {
			param := fn.Parameters[i]
			slot, ok := offsets.offset(param.Name)
			util.Assert(ok, "parameter %s of function %s needs to be moved to memory but has no slot", param.Name, fn.Name)

			if current == nil {
				current = newTrampoline(ctx, fn)
				trampolines = append(trampolines, current)
				info.parameterTrampolines = append(info.parameterTrampolines, current)
			}
			current.Parameters = slices.Insert(current.Parameters, 1, param)
			current.Body.Statements = append(current.Body.Statements,
				generateMemoryStore(ctx.Dialect, param.Loc, slot, &ast.Identifier{Loc: param.Loc, Name: param.Name}))
			argumentCount--

			if len(current.Parameters) == maxTrampolineParameters {
				current = nil
			}
		}
	}

	return moveInfos, trampolines
}

// newTrampoline creates `function f_N(in) -> out { out := in }`. Moved parameters are inserted after `in`.
func newTrampoline(ctx *StepContext, fn *ast.FunctionDefinition) *ast.FunctionDefinition {
	loc := fn.Loc
	inName := ctx.Dispenser.NewName("in")
	outName := ctx.Dispenser.NewName("out")
	return &ast.FunctionDefinition{
		Loc:             loc,
		Name:            ctx.Dispenser.NewName(fn.Name),
		Parameters:      []ast.TypedName{{Loc: loc, Name: inName}},
		ReturnVariables: []ast.TypedName{{Loc: loc, Name: outName}},
		Body: &ast.Block{
			Loc: loc,
			Statements: []ast.Statement{
				&ast.Assignment{
					Loc:           loc,
					VariableNames: []*ast.Identifier{{Loc: loc, Name: outName}},
					Value:         &ast.Identifier{Loc: loc, Name: inName},
				},
			},
		},
	}
}

type stackToMemoryMover struct {
	ctx       *StepContext
	offsets   *memoryOffsetTracker
	moveInfos map[string]*functionMoveInfo
}

func (m *stackToMemoryMover) visitBlock(block *ast.Block) {
	statements := make([]ast.Statement, 0, len(block.Statements))
	for _, stmt := range block.Statements {
		switch s := stmt.(type) {
		case *ast.Assignment:
			statements = append(statements, m.rewriteAssignment(s)...)
		case *ast.VariableDeclaration:
			statements = append(statements, m.rewriteVariableDeclaration(s)...)
		default:
			m.visitStatement(stmt)
			statements = append(statements, stmt)
		}
	}
	block.Statements = statements
}

func (m *stackToMemoryMover) visitStatement(stmt ast.Statement) {
	switch s := stmt.(type) {
	case *ast.Block:
		m.visitBlock(s)
	case *ast.ExpressionStatement:
		s.Expression = m.visitExpression(s.Expression)
	case *ast.FunctionDefinition:
		m.visitFunctionDefinition(s)
	case *ast.If:
		s.Condition = m.visitExpression(s.Condition)
		m.visitBlock(s.Body)
	case *ast.Switch:
		s.Expression = m.visitExpression(s.Expression)
		for _, c := range s.Cases {
			m.visitBlock(c.Body)
		}
	case *ast.ForLoop:
		m.visitBlock(s.Pre)
		s.Condition = m.visitExpression(s.Condition)
		m.visitBlock(s.Body)
		m.visitBlock(s.Post)
	case *ast.Break, *ast.Continue, *ast.Leave:
		// Nothing to do.
	default:
		panic(fmt.Sprintf("unexpected statement type: %T", stmt))
	}
}

func (m *stackToMemoryMover) visitFunctionDefinition(fn *ast.FunctionDefinition) {
	// The body has to be visited first, otherwise the memory initialization generated below would be rewritten.
	m.visitBlock(fn.Body)

	info, ok := m.moveInfos[fn.Name]
	if !ok {
		return
	}

	for _, trampoline := range info.parameterTrampolines {
		util.Assert(trampoline != nil && len(trampoline.Parameters) >= 1, "invalid trampoline for function %s", fn.Name)
		moved := len(trampoline.Parameters) - 1
		util.Assert(len(fn.Parameters) >= moved, "function %s has fewer parameters than its trampoline %s absorbs", fn.Name, trampoline.Name)
		fn.Parameters = fn.Parameters[:len(fn.Parameters)-moved]
	}

	memoryVariableInits := []ast.Statement{}

	// Parameters left in the signature but assigned a slot are copied to memory on entry.
	for _, param := range fn.Parameters {
		if slot, ok := m.offsets.offset(param.Name); ok {
			memoryVariableInits = append(memoryVariableInits,
				generateMemoryStore(m.ctx.Dialect, param.Loc, slot, &ast.Identifier{Loc: param.Loc, Name: param.Name}))
		}
	}

	// Return variables in memory have to be zero-initialized explicitly.
	for _, returnVariable := range fn.ReturnVariables {
		if slot, ok := m.offsets.offset(returnVariable.Name); ok {
			memoryVariableInits = append(memoryVariableInits,
				generateMemoryStore(m.ctx.Dialect, returnVariable.Loc, slot, ast.NewNumberLiteral(returnVariable.Loc, "0")))
		}
	}

	if len(memoryVariableInits) > 0 {
		fn.Body.Statements = append(memoryVariableInits, fn.Body.Statements...)
	}

	for _, slot := range info.returnVariableSlots {
		if slot != nil {
			fn.ReturnVariables = fn.ReturnVariables[:len(fn.ReturnVariables)-1]
		}
	}

	// Return variables kept in the signature but living in memory are loaded back before returning.
	for _, returnVariable := range fn.ReturnVariables {
		if slot, ok := m.offsets.offset(returnVariable.Name); ok {
			fn.Body.Statements = append(fn.Body.Statements, &ast.Assignment{
				Loc:           returnVariable.Loc,
				VariableNames: []*ast.Identifier{{Loc: returnVariable.Loc, Name: returnVariable.Name}},
				Value:         generateMemoryLoad(m.ctx.Dialect, returnVariable.Loc, slot),
			})
		}
	}
}

// visitExpression rewrites an expression whose value is consumed as a single stack value.
func (m *stackToMemoryMover) visitExpression(expr ast.Expression) ast.Expression {
	result, returnSlots := m.visitValue(expr)
	util.Assert(returnSlots == nil, "call with return variables in memory used outside of an assignment or declaration: %s", expr)
	return result
}

// visitValue rewrites an expression and, if it is a call to a function with moved return variables,
// also returns their slots. The slots must be consumed by the enclosing assignment or declaration.
func (m *stackToMemoryMover) visitValue(expr ast.Expression) (ast.Expression, []*string) {
	switch e := expr.(type) {
	case *ast.Identifier:
		if offset, ok := m.offsets.offset(e.Name); ok {
			return generateMemoryLoad(m.ctx.Dialect, e.Loc, offset), nil
		}
		return e, nil
	case *ast.Literal:
		return e, nil
	case *ast.FunctionCall:
		return e, m.visitFunctionCall(e)
	}
	panic(fmt.Sprintf("unexpected expression type: %T", expr))
}

func (m *stackToMemoryMover) visitFunctionCall(call *ast.FunctionCall) []*string {
	for i, arg := range call.Arguments {
		call.Arguments[i] = m.visitExpression(arg)
	}

	info, ok := m.moveInfos[call.FunctionName.Name]
	if !ok {
		return nil
	}

	// Each trampoline takes the trailing arguments it absorbs plus the one before them, which it passes
	// through. The trampoline call then takes the place of those arguments.
	for _, trampoline := range info.parameterTrampolines {
		count := len(trampoline.Parameters)
		util.Assert(len(call.Arguments) >= count, "call to %s has too few arguments for trampoline %s", call.FunctionName.Name, trampoline.Name)
		split := len(call.Arguments) - count
		subCall := &ast.FunctionCall{
			Loc:          call.Loc,
			FunctionName: ast.Identifier{Loc: call.Loc, Name: trampoline.Name},
			Arguments:    slices.Clone(call.Arguments[split:]),
		}
		call.Arguments = append(call.Arguments[:split], subCall)
	}

	if len(info.returnVariableSlots) > 0 {
		return info.returnVariableSlots
	}
	return nil
}

func (m *stackToMemoryMover) rewriteAssignment(a *ast.Assignment) []ast.Statement {
	value, returnSlots := m.visitValue(a.Value)
	a.Value = value

	targets := make([]ast.TypedName, len(a.VariableNames))
	for i, id := range a.VariableNames {
		targets[i] = ast.TypedName{Loc: id.Loc, Name: id.Name}
	}
	build := func(targets []ast.TypedName, value ast.Expression) ast.Statement {
		names := make([]*ast.Identifier, len(targets))
		for i, target := range targets {
			names[i] = &ast.Identifier{Loc: target.Loc, Name: target.Name}
		}
		return &ast.Assignment{Loc: a.Loc, VariableNames: names, Value: value}
	}

	if result := m.relocateTargets(a.Loc, targets, value, returnSlots, build); result != nil {
		return result
	}
	return []ast.Statement{a}
}

func (m *stackToMemoryMover) rewriteVariableDeclaration(d *ast.VariableDeclaration) []ast.Statement {
	var returnSlots []*string
	if d.Value != nil {
		d.Value, returnSlots = m.visitValue(d.Value)
	}

	build := func(targets []ast.TypedName, value ast.Expression) ast.Statement {
		return &ast.VariableDeclaration{Loc: d.Loc, Variables: slices.Clone(targets), Value: value}
	}

	if result := m.relocateTargets(d.Loc, d.Variables, d.Value, returnSlots, build); result != nil {
		return result
	}
	return []ast.Statement{d}
}

// relocateTargets rewrites an assignment or declaration of value to targets, where value has already been visited.
// returnSlots are the moved return variables of value if it is a call. build creates a statement of the original
// kind. Returns nil if the statement does not need to change.
func (m *stackToMemoryMover) relocateTargets(
	loc ast.Location,
	targets []ast.TypedName,
	value ast.Expression,
	returnSlots []*string,
	build func(targets []ast.TypedName, value ast.Expression) ast.Statement,
) []ast.Statement {
	needsMoving := slices.ContainsFunc(targets, func(target ast.TypedName) bool {
		_, ok := m.offsets.offset(target.Name)
		return ok
	})
	if returnSlots == nil && !needsMoving {
		return nil
	}

	if len(targets) == 1 {
		util.Assert(returnSlots == nil, "%s: single variable assigned from a call with return variables in memory", loc)
		offset, ok := m.offsets.offset(targets[0].Name)
		util.Assert(ok, "%s: variable %s has no memory slot", loc, targets[0].Name)
		if value == nil {
			value = ast.NewNumberLiteral(loc, "0")
		}
		return []ast.Statement{generateMemoryStore(m.ctx.Dialect, loc, offset, value)}
	}
	util.Assert(value != nil, "%s: declaration of multiple variables in memory without a value", loc)
	util.Assert(returnSlots == nil || len(returnSlots) == len(targets),
		"%s: %d variables assigned from a call returning %d values", loc, len(targets), len(returnSlots))

	result := []ast.Statement{}
	tempDecls := []*ast.VariableDeclaration{}
	memoryAssignments := []ast.Statement{}
	variableAssignments := []ast.Statement{}

	if needsMoving {
		// Values are first stored in fresh variables, then copied to their targets.
		// Values returned in memory are read right after the call.
		if len(returnSlots) == 0 || returnSlots[0] == nil {
			tempDecls = append(tempDecls, &ast.VariableDeclaration{Loc: loc, Value: value})
		} else {
			result = append(result, &ast.ExpressionStatement{Loc: loc, Expression: value})
		}
		for i, target := range targets {
			if len(returnSlots) > 0 && returnSlots[i] != nil {
				tempDecls = append(tempDecls, &ast.VariableDeclaration{
					Loc:   loc,
					Value: generateMemoryLoad(m.ctx.Dialect, loc, *returnSlots[i]),
				})
			}
			tempName := m.ctx.Dispenser.NewName(target.Name)
			decl := tempDecls[len(tempDecls)-1]
			decl.Variables = append(decl.Variables, ast.TypedName{Loc: target.Loc, Name: tempName})
			temp := &ast.Identifier{Loc: loc, Name: tempName}

			if offset, ok := m.offsets.offset(target.Name); ok {
				memoryAssignments = append(memoryAssignments, generateMemoryStore(m.ctx.Dialect, loc, offset, temp))
			} else {
				variableAssignments = append(variableAssignments, build([]ast.TypedName{target}, temp))
			}
		}
	} else {
		// Only the call returns values in memory: the trailing targets are read from there.
		for i := len(returnSlots) - 1; i >= 0; i-- {
			if returnSlots[i] == nil {
				continue
			}
			target := targets[len(targets)-1]
			targets = targets[:len(targets)-1]
			variableAssignments = append(variableAssignments,
				build([]ast.TypedName{target}, generateMemoryLoad(m.ctx.Dialect, loc, *returnSlots[i])))
		}
		if len(targets) == 0 {
			result = append(result, &ast.ExpressionStatement{Loc: loc, Expression: value})
		} else {
			result = append(result, build(targets, value))
		}
	}

	for _, decl := range tempDecls {
		result = append(result, decl)
	}
	util.Reverse(memoryAssignments)
	result = append(result, memoryAssignments...)
	util.Reverse(variableAssignments)
	result = append(result, variableAssignments...)
	return result
}
