package dialect

import (
	"maps"
	"slices"
)

type EVMDialect struct {
	objectAccess bool
	builtins     map[string]*BuiltinFunction
}

func NewEVMDialect(objectAccess bool) *EVMDialect {
	d := &EVMDialect{
		objectAccess: objectAccess,
		builtins:     make(map[string]*BuiltinFunction),
	}
	for _, b := range getOpcodeBuiltins() {
		d.builtins[b.Name] = &b
	}
	if objectAccess {
		for _, b := range getObjectAccessBuiltins() {
			d.builtins[b.Name] = &b
		}
	}
	return d
}

func (d *EVMDialect) Name() string {
	if d.objectAccess {
		return "evm-object"
	}
	return "evm"
}

func (d *EVMDialect) DefaultType() string {
	return ""
}

func (d *EVMDialect) Builtin(name string) *BuiltinFunction {
	return d.builtins[name]
}

func (d *EVMDialect) BuiltinNames() []string {
	return slices.Sorted(maps.Keys(d.builtins))
}

func (d *EVMDialect) MemoryStoreFunction(typ string) *BuiltinFunction {
	return d.builtins["mstore"]
}

func (d *EVMDialect) MemoryLoadFunction(typ string) *BuiltinFunction {
	return d.builtins["mload"]
}

func (d *EVMDialect) ProvidesObjectAccess() bool {
	return d.objectAccess
}
