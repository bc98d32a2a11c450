// Package cpu implements the accumulator processor and assembler.
//
// The CPU consists of a program counter, a 32-bit accumulator, zero and
// carry flags, an instruction memory of 16-bit words, and a data memory of
// 32-bit words. Each instruction word packs a 5-bit operation code, a 1-bit
// addressing mode (immediate or indirect through data memory), and a 10-bit
// operand.
//
// The assembler translates one mnemonic per line into instruction words,
// reporting the 0-based source line of the first error it finds.
package cpu
