package cpu

import (
	"fmt"
	"slices"
)

// CodeOp is an operation code.
type CodeOp int

//go:generate go tool stringer -linecomment -type=CodeOp,CodeMode,State
const (
	OP_NOP   = CodeOp(0x00) // NOP
	OP_LOAD  = CodeOp(0x01) // LOAD
	OP_STORE = CodeOp(0x02) // STORE
	OP_LOADI = CodeOp(0x03) // LOADI
	OP_ADD   = CodeOp(0x04) // ADD
	OP_SUB   = CodeOp(0x05) // SUB
	OP_INC   = CodeOp(0x06) // INC
	OP_DEC   = CodeOp(0x07) // DEC
	OP_AND   = CodeOp(0x08) // AND
	OP_OR    = CodeOp(0x09) // OR
	OP_XOR   = CodeOp(0x0a) // XOR
	OP_NOT   = CodeOp(0x0b) // NOT
	OP_SHL   = CodeOp(0x0c) // SHL
	OP_SHR   = CodeOp(0x0d) // SHR
	OP_JMP   = CodeOp(0x0e) // JMP
	OP_JZ    = CodeOp(0x0f) // JZ
	OP_JNZ   = CodeOp(0x10) // JNZ
	OP_JC    = CodeOp(0x11) // JC
	OP_JNC   = CodeOp(0x12) // JNC
	OP_HLT   = CodeOp(0x13) // HLT
)

// CodeMode is the operand addressing mode.
type CodeMode int

const (
	MODE_IMMEDIATE = CodeMode(0) // immediate
	MODE_INDIRECT  = CodeMode(1) // indirect
)

// Instruction word layout.
const (
	CODE_OP_SHIFT      = 11
	CODE_OP_MASK       = 0x1f
	CODE_MODE_SHIFT    = 10
	CODE_MODE_MASK     = 0x1
	CODE_OPERAND_BITS  = 10
	CODE_OPERAND_MASK  = (1 << CODE_OPERAND_BITS) - 1
	INDIRECT_MARKER    = '*'
	COMMENT_MARKER     = '#'
	OPCODE_TABLE_COUNT = 20
)

// OpcodeDesc describes a mnemonic, its operation code, and its operand count.
type OpcodeDesc struct {
	Mnemonic string
	Op       CodeOp
	Arity    int
}

// opcodeTable is indexed by CodeOp.
var opcodeTable = [OPCODE_TABLE_COUNT]OpcodeDesc{
	{"NOP", OP_NOP, 0},
	{"LOAD", OP_LOAD, 1},
	{"STORE", OP_STORE, 1},
	{"LOADI", OP_LOADI, 1},
	{"ADD", OP_ADD, 1},
	{"SUB", OP_SUB, 1},
	{"INC", OP_INC, 0},
	{"DEC", OP_DEC, 0},
	{"AND", OP_AND, 1},
	{"OR", OP_OR, 1},
	{"XOR", OP_XOR, 1},
	{"NOT", OP_NOT, 0},
	{"SHL", OP_SHL, 1},
	{"SHR", OP_SHR, 1},
	{"JMP", OP_JMP, 1},
	{"JZ", OP_JZ, 1},
	{"JNZ", OP_JNZ, 1},
	{"JC", OP_JC, 1},
	{"JNC", OP_JNC, 1},
	{"HLT", OP_HLT, 0},
}

// mnemonicMap maps mnemonic text to its descriptor.
var mnemonicMap = func() map[string]OpcodeDesc {
	mnemonics := make(map[string]OpcodeDesc, len(opcodeTable))
	for _, desc := range opcodeTable {
		mnemonics[desc.Mnemonic] = desc
	}
	return mnemonics
}()

// LookupOpcode finds the descriptor for a mnemonic. The match is case sensitive.
func LookupOpcode(mnemonic string) (desc OpcodeDesc, ok bool) {
	desc, ok = mnemonicMap[mnemonic]
	return
}

// Opcodes returns a copy of the opcode table, in operation code order.
func Opcodes() []OpcodeDesc {
	return slices.Clone(opcodeTable[:])
}

// Valid returns true if the operation code is in the opcode table.
func (op CodeOp) Valid() bool {
	return op >= 0 && int(op) < len(opcodeTable)
}

// Arity returns the number of operand tokens the operation requires.
// Operations outside the table have no operands.
func (op CodeOp) Arity() int {
	if !op.Valid() {
		return 0
	}
	return opcodeTable[op].Arity
}

// Code is a single 16-bit instruction word.
//
//	15      11 10  9            0
//	+---------+--+---------------+
//	|   op    |md|    operand    |
//	+---------+--+---------------+
type Code uint16

// MakeCode packs an operation, addressing mode, and operand into a Code.
// The operand is masked to 10 bits; callers validate range beforehand.
func MakeCode(op CodeOp, mode CodeMode, operand uint16) Code {
	return Code(((uint16(op) & CODE_OP_MASK) << CODE_OP_SHIFT) |
		((uint16(mode) & CODE_MODE_MASK) << CODE_MODE_SHIFT) |
		(operand & CODE_OPERAND_MASK))
}

// Op returns the operation code.
func (code Code) Op() CodeOp {
	return CodeOp((uint16(code) >> CODE_OP_SHIFT) & CODE_OP_MASK)
}

// Mode returns the addressing mode.
func (code Code) Mode() CodeMode {
	return CodeMode((uint16(code) >> CODE_MODE_SHIFT) & CODE_MODE_MASK)
}

// Operand returns the 10-bit operand field.
func (code Code) Operand() uint16 {
	return uint16(code) & CODE_OPERAND_MASK
}

// Decode returns all three fields of the instruction word.
func (code Code) Decode() (op CodeOp, mode CodeMode, operand uint16) {
	op = code.Op()
	mode = code.Mode()
	operand = code.Operand()
	return
}

// Valid returns true if the instruction's operation is in the opcode table.
func (code Code) Valid() bool {
	return code.Op().Valid()
}

// String returns the assembly language representation of this instruction.
func (code Code) String() (out string) {
	op, mode, operand := code.Decode()

	if !op.Valid() {
		return fmt.Sprintf("UNK(%d)", int(op))
	}

	out = op.String()
	if op.Arity() == 0 {
		return
	}

	marker := ""
	if mode == MODE_INDIRECT {
		marker = string(INDIRECT_MARKER)
	}

	out = fmt.Sprintf("%v %v%d", out, marker, operand)

	return
}
