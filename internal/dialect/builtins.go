package dialect

func getOpcodeBuiltins() []BuiltinFunction {
	return []BuiltinFunction{
		{Name: "stop", SideEffects: true},
		{Name: "add", NumArgs: 2, NumReturns: 1},
		{Name: "sub", NumArgs: 2, NumReturns: 1},
		{Name: "mul", NumArgs: 2, NumReturns: 1},
		{Name: "div", NumArgs: 2, NumReturns: 1},
		{Name: "sdiv", NumArgs: 2, NumReturns: 1},
		{Name: "mod", NumArgs: 2, NumReturns: 1},
		{Name: "smod", NumArgs: 2, NumReturns: 1},
		{Name: "exp", NumArgs: 2, NumReturns: 1},
		{Name: "not", NumArgs: 1, NumReturns: 1},
		{Name: "lt", NumArgs: 2, NumReturns: 1},
		{Name: "gt", NumArgs: 2, NumReturns: 1},
		{Name: "slt", NumArgs: 2, NumReturns: 1},
		{Name: "sgt", NumArgs: 2, NumReturns: 1},
		{Name: "eq", NumArgs: 2, NumReturns: 1},
		{Name: "iszero", NumArgs: 1, NumReturns: 1},
		{Name: "and", NumArgs: 2, NumReturns: 1},
		{Name: "or", NumArgs: 2, NumReturns: 1},
		{Name: "xor", NumArgs: 2, NumReturns: 1},
		{Name: "byte", NumArgs: 2, NumReturns: 1},
		{Name: "shl", NumArgs: 2, NumReturns: 1},
		{Name: "shr", NumArgs: 2, NumReturns: 1},
		{Name: "sar", NumArgs: 2, NumReturns: 1},
		{Name: "addmod", NumArgs: 3, NumReturns: 1},
		{Name: "mulmod", NumArgs: 3, NumReturns: 1},
		{Name: "signextend", NumArgs: 2, NumReturns: 1},
		{Name: "keccak256", NumArgs: 2, NumReturns: 1},
		{Name: "address", NumReturns: 1},
		{Name: "balance", NumArgs: 1, NumReturns: 1},
		{Name: "origin", NumReturns: 1},
		{Name: "caller", NumReturns: 1},
		{Name: "callvalue", NumReturns: 1},
		{Name: "calldataload", NumArgs: 1, NumReturns: 1},
		{Name: "calldatasize", NumReturns: 1},
		{Name: "calldatacopy", NumArgs: 3, SideEffects: true},
		{Name: "codesize", NumReturns: 1},
		{Name: "codecopy", NumArgs: 3, SideEffects: true},
		{Name: "gasprice", NumReturns: 1},
		{Name: "extcodesize", NumArgs: 1, NumReturns: 1},
		{Name: "extcodecopy", NumArgs: 4, SideEffects: true},
		{Name: "returndatasize", NumReturns: 1},
		{Name: "returndatacopy", NumArgs: 3, SideEffects: true},
		{Name: "extcodehash", NumArgs: 1, NumReturns: 1},
		{Name: "blockhash", NumArgs: 1, NumReturns: 1},
		{Name: "coinbase", NumReturns: 1},
		{Name: "timestamp", NumReturns: 1},
		{Name: "number", NumReturns: 1},
		{Name: "difficulty", NumReturns: 1},
		{Name: "gaslimit", NumReturns: 1},
		{Name: "chainid", NumReturns: 1},
		{Name: "selfbalance", NumReturns: 1},
		{Name: "pop", NumArgs: 1},
		{Name: "mload", NumArgs: 1, NumReturns: 1},
		{Name: "mstore", NumArgs: 2, SideEffects: true},
		{Name: "mstore8", NumArgs: 2, SideEffects: true},
		{Name: "sload", NumArgs: 1, NumReturns: 1},
		{Name: "sstore", NumArgs: 2, SideEffects: true},
		{Name: "msize", NumReturns: 1},
		{Name: "gas", NumReturns: 1},
		{Name: "log0", NumArgs: 2, SideEffects: true},
		{Name: "log1", NumArgs: 3, SideEffects: true},
		{Name: "log2", NumArgs: 4, SideEffects: true},
		{Name: "log3", NumArgs: 5, SideEffects: true},
		{Name: "log4", NumArgs: 6, SideEffects: true},
		{Name: "create", NumArgs: 3, NumReturns: 1, SideEffects: true},
		{Name: "call", NumArgs: 7, NumReturns: 1, SideEffects: true},
		{Name: "callcode", NumArgs: 7, NumReturns: 1, SideEffects: true},
		{Name: "return", NumArgs: 2, SideEffects: true},
		{Name: "delegatecall", NumArgs: 6, NumReturns: 1, SideEffects: true},
		{Name: "staticcall", NumArgs: 6, NumReturns: 1, SideEffects: true},
		{Name: "create2", NumArgs: 4, NumReturns: 1, SideEffects: true},
		{Name: "revert", NumArgs: 2, SideEffects: true},
		{Name: "invalid", SideEffects: true},
		{Name: "selfdestruct", NumArgs: 1, SideEffects: true},
	}
}

// Builtins only available when compiling inside an object.
func getObjectAccessBuiltins() []BuiltinFunction {
	return []BuiltinFunction{
		{Name: "datasize", NumArgs: 1, NumReturns: 1},
		{Name: "dataoffset", NumArgs: 1, NumReturns: 1},
		{Name: "datacopy", NumArgs: 3, SideEffects: true},
		{Name: "setimmutable", NumArgs: 3, SideEffects: true},
		{Name: "loadimmutable", NumArgs: 1, NumReturns: 1},
		{Name: "linkersymbol", NumArgs: 1, NumReturns: 1},
		{Name: "memoryguard", NumArgs: 1, NumReturns: 1},
	}
}
