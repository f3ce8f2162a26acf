package opt

import (
	"github.com/holiman/uint256"

	"github.com/iley/yulopt/internal/ast"
	"github.com/iley/yulopt/internal/dialect"
	"github.com/iley/yulopt/internal/util"
)

// Size of a memory slot in bytes.
const wordSize = 32

// memoryOffsetTracker maps variables that were assigned a memory slot to their address.
// Slots are packed in reverse: slot 0 is the last word of the reserved area.
type memoryOffsetTracker struct {
	reservedMemory   uint256.Int
	memorySlots      map[string]uint64
	numRequiredSlots uint64
}

func newMemoryOffsetTracker(reservedMemory *uint256.Int, memorySlots map[string]uint64, numRequiredSlots uint64) *memoryOffsetTracker {
	t := &memoryOffsetTracker{
		memorySlots:      memorySlots,
		numRequiredSlots: numRequiredSlots,
	}
	if reservedMemory != nil {
		t.reservedMemory.Set(reservedMemory)
	}
	return t
}

// offset returns the memory address of the variable as a hex literal value,
// or false if the variable stays on the stack.
func (t *memoryOffsetTracker) offset(name string) (string, bool) {
	slot, ok := t.memorySlots[name]
	if !ok {
		return "", false
	}
	util.Assert(slot < t.numRequiredSlots, "memory slot %d of variable %s is out of range, only %d slots are reserved", slot, name, t.numRequiredSlots)

	addr := uint256.NewInt(wordSize)
	addr.Mul(addr, uint256.NewInt(t.numRequiredSlots-slot-1))
	addr.Add(addr, &t.reservedMemory)
	return addr.Hex(), true
}

func generateMemoryStore(d dialect.Dialect, loc ast.Location, mpos string, value ast.Expression) ast.Statement {
	store := d.MemoryStoreFunction(d.DefaultType())
	util.Assert(store != nil, "dialect %s has no memory store builtin", d.Name())
	return &ast.ExpressionStatement{
		Loc: loc,
		Expression: &ast.FunctionCall{
			Loc:          loc,
			FunctionName: ast.Identifier{Loc: loc, Name: store.Name},
			Arguments: []ast.Expression{
				ast.NewNumberLiteral(loc, mpos),
				value,
			},
		},
	}
}

func generateMemoryLoad(d dialect.Dialect, loc ast.Location, mpos string) *ast.FunctionCall {
	load := d.MemoryLoadFunction(d.DefaultType())
	util.Assert(load != nil, "dialect %s has no memory load builtin", d.Name())
	return &ast.FunctionCall{
		Loc:          loc,
		FunctionName: ast.Identifier{Loc: loc, Name: load.Name},
		Arguments: []ast.Expression{
			ast.NewNumberLiteral(loc, mpos),
		},
	}
}
