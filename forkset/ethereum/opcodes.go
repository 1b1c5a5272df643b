package ethereum

import (
	"github.com/ethereum/go-ethereum/core/vm"
)

// Opcodes introduced after the vendored go-ethereum vm package. The values
// are the assigned instruction bytes; only the identity matters here, the
// engine never executes them.
const (
	opTload       = vm.OpCode(0x5c) // EIP-1153
	opTstore      = vm.OpCode(0x5d) // EIP-1153
	opMcopy       = vm.OpCode(0x5e) // EIP-5656
	opPush0       = vm.OpCode(0x5f) // EIP-3855
	opBlobhash    = vm.OpCode(0x49) // EIP-4844
	opBlobbasefee = vm.OpCode(0x4a) // EIP-7516
)

// frontierOpcodes enumerates the instruction set of the genesis rule set.
func frontierOpcodes() []vm.OpCode {
	ops := []vm.OpCode{
		vm.STOP, vm.ADD, vm.MUL, vm.SUB, vm.DIV, vm.SDIV, vm.MOD, vm.SMOD,
		vm.ADDMOD, vm.MULMOD, vm.EXP, vm.SIGNEXTEND,
		vm.LT, vm.GT, vm.SLT, vm.SGT, vm.EQ, vm.ISZERO,
		vm.AND, vm.OR, vm.XOR, vm.NOT, vm.BYTE,
		vm.SHA3,
		vm.ADDRESS, vm.BALANCE, vm.ORIGIN, vm.CALLER, vm.CALLVALUE,
		vm.CALLDATALOAD, vm.CALLDATASIZE, vm.CALLDATACOPY,
		vm.CODESIZE, vm.CODECOPY, vm.GASPRICE,
		vm.EXTCODESIZE, vm.EXTCODECOPY,
		vm.BLOCKHASH, vm.COINBASE, vm.TIMESTAMP, vm.NUMBER,
		vm.DIFFICULTY, vm.GASLIMIT,
		vm.POP, vm.MLOAD, vm.MSTORE, vm.MSTORE8,
		vm.SLOAD, vm.SSTORE, vm.JUMP, vm.JUMPI, vm.PC, vm.MSIZE, vm.GAS,
		vm.JUMPDEST,
	}
	for op := vm.PUSH1; op <= vm.PUSH32; op++ {
		ops = append(ops, op)
	}
	for op := vm.DUP1; op <= vm.DUP16; op++ {
		ops = append(ops, op)
	}
	for op := vm.SWAP1; op <= vm.SWAP16; op++ {
		ops = append(ops, op)
	}
	ops = append(ops,
		vm.LOG0, vm.LOG1, vm.LOG2, vm.LOG3, vm.LOG4,
		vm.CREATE, vm.CALL, vm.CALLCODE, vm.RETURN, vm.SELFDESTRUCT,
	)
	return ops
}

func homesteadOpcodes() []vm.OpCode {
	return append(frontierOpcodes(), vm.DELEGATECALL)
}

func byzantiumOpcodes() []vm.OpCode {
	return append(homesteadOpcodes(),
		vm.RETURNDATASIZE, vm.RETURNDATACOPY, vm.STATICCALL, vm.REVERT)
}

func constantinopleOpcodes() []vm.OpCode {
	return append(byzantiumOpcodes(),
		vm.SHL, vm.SHR, vm.SAR, vm.EXTCODEHASH, vm.CREATE2)
}

func istanbulOpcodes() []vm.OpCode {
	return append(constantinopleOpcodes(), vm.CHAINID, vm.SELFBALANCE)
}

func londonOpcodes() []vm.OpCode {
	return append(istanbulOpcodes(), vm.BASEFEE)
}

func shanghaiOpcodes() []vm.OpCode {
	return append(londonOpcodes(), opPush0)
}

func cancunOpcodes() []vm.OpCode {
	return append(shanghaiOpcodes(),
		opTload, opTstore, opMcopy, opBlobhash, opBlobbasefee)
}
