package dialect

import "fmt"

// BuiltinFunction describes a builtin operation provided by the target.
type BuiltinFunction struct {
	Name       string
	NumArgs    int
	NumReturns int
	// Builtins with side effects cannot be removed or reordered.
	SideEffects bool
}

// Dialect describes the builtin operations of a target machine.
type Dialect interface {
	Name() string
	// DefaultType is the type of variables and literals declared without a type.
	DefaultType() string
	// Builtin returns the builtin with the given name or nil.
	Builtin(name string) *BuiltinFunction
	// BuiltinNames returns the names of all builtins in sorted order.
	BuiltinNames() []string
	// MemoryStoreFunction returns the builtin that stores a value of the given type into memory or nil.
	MemoryStoreFunction(typ string) *BuiltinFunction
	// MemoryLoadFunction returns the builtin that loads a value of the given type from memory or nil.
	MemoryLoadFunction(typ string) *BuiltinFunction
	// ProvidesObjectAccess reports whether the dialect is used in an object context,
	// i.e. supports object-relative addressing (datasize, dataoffset, ...) and a reserved memory area.
	ProvidesObjectAccess() bool
}

// ByName resolves a dialect from its configuration name.
func ByName(name string) (Dialect, error) {
	switch name {
	case "evm":
		return NewEVMDialect(false), nil
	case "evm-object", "":
		return NewEVMDialect(true), nil
	}
	return nil, fmt.Errorf("unknown dialect: %s", name)
}
