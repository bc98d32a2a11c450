package cpu

import (
	"iter"
)

// Opcode represents a line of assembled code with its source location and generated instruction.
type Opcode struct {
	LineNo int      // 0-based source line.
	Ip     int      // Instruction memory index.
	Words  []string // Source words, without comments.
	Code   Code     // Encoded instruction.
}

type Program struct {
	Opcodes []Opcode
}

// Debug returns the source opcode at ip, or nil if ip has no source line.
func (prog *Program) Debug(ip uint32) (op *Opcode) {
	for n := range prog.Opcodes {
		if uint32(prog.Opcodes[n].Ip) == ip {
			op = &prog.Opcodes[n]
			break
		}
	}

	return
}

// Binary returns the encoded instruction sequence.
func (prog *Program) Binary() (bins []Code) {
	bins = make([]Code, 0, len(prog.Opcodes))
	for _, code := range prog.Codes() {
		bins = append(bins, code)
	}

	return
}

// Image returns a fixed size instruction memory image, with the unused
// trailing slots set to NOP.
func (prog *Program) Image(size int) (image []Code, err error) {
	if len(prog.Opcodes) > size {
		err = ErrLoadSize
		return
	}

	image = make([]Code, size)
	for ip, code := range prog.Codes() {
		image[ip] = code
	}

	return
}

// Codes iterates over the instruction memory index and encoded instruction.
func (prog *Program) Codes() iter.Seq2[uint32, Code] {
	return func(yield func(ip uint32, code Code) bool) {
		for _, op := range prog.Opcodes {
			if !yield(uint32(op.Ip), op.Code) {
				return
			}
		}
	}
}
