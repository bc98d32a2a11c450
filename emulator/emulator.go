// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"maps"

	"github.com/sirupsen/logrus"

	"github.com/ezrec/accum/cpu"
	"github.com/ezrec/accum/internal"
)

var _emulator_defines = map[string]string{
	"INSTRUCTION_LIMIT": fmt.Sprintf("%v", cpu.INSTRUCTION_LIMIT),
}

// Emulator state. CPU + program listing.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Program  *cpu.Program // Reference to the currently running program listing.
}

// NewEmulator creates a new emulator with the default memory sizes.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu:     cpu.NewCpu(cpu.IMEM_SIZE, cpu.DMEM_SIZE),
		Program: &cpu.Program{},
	}

	return
}

// Defines returns an iterator over all of the defines, in name order.
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.Sorted(internal.Concat2(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	))
}

// Assemble parses source text into a program, with the emulator defines
// visible to $(...) expressions.
func (emu *Emulator) Assemble(input io.Reader) (prog *cpu.Program, err error) {
	asm := &cpu.Assembler{
		Verbose: emu.Verbose,
		Limit:   len(emu.Cpu.Imem),
	}
	for key, value := range emu.Defines() {
		asm.Predefine(key, value)
	}

	prog, err = asm.Parse(input)

	return
}

// BinaryProgram wraps an instruction image that has no source listing.
func BinaryProgram(codes []cpu.Code) (prog *cpu.Program) {
	prog = &cpu.Program{}
	for ip, code := range codes {
		prog.Opcodes = append(prog.Opcodes, cpu.Opcode{LineNo: -1, Ip: ip, Code: code})
	}

	return
}

// Load replaces the program and data memory. A running CPU is stopped
// first; call Start() to begin execution.
func (emu *Emulator) Load(prog *cpu.Program, data []uint32) (err error) {
	if prog == nil {
		err = ErrNoProgram
		return
	}

	image, err := prog.Image(len(emu.Cpu.Imem))
	if err != nil {
		return
	}
	if len(data) > len(emu.Cpu.Dmem) {
		err = cpu.ErrLoadSize
		return
	}

	if emu.Running() {
		emu.Cpu.Stop()
	}

	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.LoadImem(image)
	emu.Cpu.LoadDmem(data)
	emu.Program = prog

	if emu.Verbose {
		logrus.WithFields(logrus.Fields{
			"opcodes": len(prog.Opcodes),
			"data":    len(data),
		}).Debug("emulator: load")
	}

	return
}

// Ticks returns the total ticks since a reset.
func (emu *Emulator) Ticks() int {
	return emu.Cpu.Steps()
}

// Ip returns current instruction pointer.
func (emu *Emulator) Ip() int {
	return int(emu.Cpu.Pc)
}

// Code returns the most recently fetched instruction code.
func (emu *Emulator) Code() cpu.Code {
	return emu.Cpu.Ir
}

// LineNo returns the source line number for the opcode at the program
// counter, or -1 if it has none.
func (emu *Emulator) LineNo() int {
	op := emu.Program.Debug(emu.Cpu.Pc)
	if op == nil {
		return -1
	}

	return op.LineNo
}

// Running returns true if the CPU is running.
func (emu *Emulator) Running() bool {
	return emu.Cpu.State() == cpu.STATE_RUNNING
}

// Tick performs a single tick of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	lineno := emu.LineNo()
	ip := emu.Cpu.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{LineNo: lineno, Ip: ip, Err: err}
		}
	}()

	more, err := emu.Cpu.Step()
	done = !more

	return
}
