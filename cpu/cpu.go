package cpu

import (
	"errors"
	"fmt"
	"iter"
	"maps"

	"github.com/sirupsen/logrus"
)

// Default memory sizes.
const (
	IMEM_SIZE = 1024 // Instruction memory words.
	DMEM_SIZE = 1024 // Data memory words.
)

// State is the engine run state.
type State int

const (
	STATE_STOPPED = State(0) // stopped
	STATE_RUNNING = State(1) // running
)

var _cpu_defines = map[string]string{
	"OPCODE_COUNT": fmt.Sprintf("%v", OPCODE_TABLE_COUNT),
	"OPERAND_MAX":  fmt.Sprintf("%v", CODE_OPERAND_MASK),
}

// Cpu is the simulation context for the accumulator CPU.
//
// A Cpu is not safe for concurrent use; its single caller drives Step().
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Pc    uint32 // Program counter.
	Acc   uint32 // Accumulator.
	Zero  bool   // Zero flag, always Acc == 0 after an accumulator write.
	Carry bool   // Carry flag, written only by arithmetic and shift operations.
	Ir    Code   // Current instruction.

	Imem []Code   // Instruction memory.
	Dmem []uint32 // Data memory.

	state State
	steps int
}

// NewCpu creates a new CPU with specifically sized instruction and data memories.
func NewCpu(imemSize, dmemSize uint) (cpu *Cpu) {
	cpu = &Cpu{
		Imem: make([]Code, imemSize),
		Dmem: make([]uint32, dmemSize),
	}

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, string] {
	defines := maps.Clone(_cpu_defines)
	defines["IMEM_SIZE"] = fmt.Sprintf("%v", len(cpu.Imem))
	defines["DMEM_SIZE"] = fmt.Sprintf("%v", len(cpu.Dmem))
	return maps.All(defines)
}

// State returns the run state.
func (cpu *Cpu) State() State {
	return cpu.state
}

// Steps returns the number of completed steps since Start().
func (cpu *Cpu) Steps() int {
	return cpu.steps
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	regs := []string{
		"state", "step", "pc", "acc", "ir", "zero", "carry",
	}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "state":
			strval = cpu.state.String()
		case "step":
			strval = fmt.Sprintf("%d", cpu.steps)
		case "pc":
			strval = fmt.Sprintf("%03X", cpu.Pc)
		case "acc":
			val := cpu.Acc
			strval = fmt.Sprintf("%04X_%04X", val>>16, val&0xffff)
		case "ir":
			strval = fmt.Sprintf("%04X %v", uint16(cpu.Ir), cpu.Ir)
		case "zero":
			strval = flagString(cpu.Zero)
		case "carry":
			strval = flagString(cpu.Carry)
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}

func flagString(flag bool) string {
	if flag {
		return "set"
	}
	return "clear"
}

// Reset the CPU registers, flags, and step counter.
// Memory contents are left alone.
func (cpu *Cpu) Reset() {
	cpu.Pc = 0
	cpu.Acc = 0
	cpu.Zero = false
	cpu.Carry = false
	cpu.Ir = 0
	cpu.steps = 0
}

// LoadImem replaces the instruction memory. Unused trailing slots are NOP.
func (cpu *Cpu) LoadImem(codes []Code) {
	if cpu.state != STATE_STOPPED {
		usageFault(ErrLoadRunning)
	}
	if len(codes) > len(cpu.Imem) {
		usageFault(ErrLoadSize)
	}

	n := copy(cpu.Imem, codes)
	clear(cpu.Imem[n:])
}

// LoadDmem replaces the data memory. Unused trailing words are zero.
func (cpu *Cpu) LoadDmem(data []uint32) {
	if cpu.state != STATE_STOPPED {
		usageFault(ErrLoadRunning)
	}
	if len(data) > len(cpu.Dmem) {
		usageFault(ErrLoadSize)
	}

	n := copy(cpu.Dmem, data)
	clear(cpu.Dmem[n:])
}

// Start resets the CPU and begins execution at instruction 0.
func (cpu *Cpu) Start() {
	if cpu.state == STATE_RUNNING {
		usageFault(ErrAlreadyRunning)
	}

	if cpu.Verbose {
		logrus.Debug("cpu: start")
	}

	cpu.Reset()
	cpu.state = STATE_RUNNING
}

// Stop forces the CPU out of the running state.
func (cpu *Cpu) Stop() {
	if cpu.state == STATE_STOPPED {
		usageFault(ErrAlreadyStopped)
	}

	if cpu.Verbose {
		logrus.WithField("steps", cpu.steps).Debug("cpu: stop")
	}

	cpu.state = STATE_STOPPED
}

// Step executes a single CPU instruction cycle.
// It returns false when no further steps should be taken; the CPU has
// either halted or faulted. Faults are returned as errors and leave the
// CPU stopped.
func (cpu *Cpu) Step() (more bool, err error) {
	if cpu.state != STATE_RUNNING {
		usageFault(ErrNotRunning)
	}

	if uint64(cpu.Pc) >= uint64(len(cpu.Imem)) {
		cpu.state = STATE_STOPPED
		err = fmt.Errorf("%w: 0x%x", ErrPcRange, cpu.Pc)
		return
	}

	cpu.Ir = cpu.Imem[cpu.Pc]

	err = cpu.Execute(cpu.Ir)
	if err != nil {
		cpu.state = STATE_STOPPED
		return
	}

	cpu.Pc++

	if cpu.state == STATE_STOPPED {
		return
	}

	cpu.steps++
	more = true

	return
}

// Execute executes a single decoded instruction.
func (cpu *Cpu) Execute(code Code) (err error) {
	defer func() {
		if err != nil {
			err = errors.Join(ErrOpcodeFault(code), err)
		}
	}()

	if cpu.Verbose {
		logrus.WithFields(logrus.Fields{
			"pc":   fmt.Sprintf("%03x", cpu.Pc),
			"code": code.String(),
			"acc":  cpu.Acc,
		}).Debug("cpu: execute")
	}

	op, mode, field := code.Decode()

	// Zero operand operations never read the operand.
	var operand uint32
	if op.Arity() != 0 {
		operand, err = cpu.getOperand(mode, field)
		if err != nil {
			return
		}
	}

	switch op {
	case OP_NOP:
		// pass
	case OP_LOAD:
		cpu.setAcc(operand)
	case OP_STORE:
		err = cpu.store(operand, cpu.Acc)
	case OP_LOADI:
		var value uint32
		value, err = cpu.load(operand)
		if err != nil {
			return
		}
		cpu.setAcc(value)
	case OP_ADD:
		result := cpu.Acc + operand
		cpu.Carry = result < cpu.Acc
		cpu.setAcc(result)
	case OP_SUB:
		result := cpu.Acc - operand
		cpu.Carry = result > cpu.Acc
		cpu.setAcc(result)
	case OP_INC:
		result := cpu.Acc + 1
		cpu.Carry = result < cpu.Acc
		cpu.setAcc(result)
	case OP_DEC:
		result := cpu.Acc - 1
		cpu.Carry = result > cpu.Acc
		cpu.setAcc(result)
	case OP_AND:
		cpu.setAcc(cpu.Acc & operand)
	case OP_OR:
		cpu.setAcc(cpu.Acc | operand)
	case OP_XOR:
		cpu.setAcc(cpu.Acc ^ operand)
	case OP_NOT:
		// Logical, not bitwise, negation.
		if cpu.Acc == 0 {
			cpu.setAcc(1)
		} else {
			cpu.setAcc(0)
		}
	case OP_SHL:
		count := operand & 0x1f // clamp to 31 bits of shift
		cpu.Carry = count > 0 && ((cpu.Acc>>(32-count))&1) != 0
		cpu.setAcc(cpu.Acc << count)
	case OP_SHR:
		count := operand & 0x1f // clamp to 31 bits of shift
		cpu.Carry = count > 0 && ((cpu.Acc>>(count-1))&1) != 0
		cpu.setAcc(cpu.Acc >> count)
	case OP_JMP:
		cpu.jump(operand)
	case OP_JZ:
		if cpu.Zero {
			cpu.jump(operand)
		}
	case OP_JNZ:
		if !cpu.Zero {
			cpu.jump(operand)
		}
	case OP_JC:
		// NOTE: JC tests carry clear, the same as JNC.
		if !cpu.Carry {
			cpu.jump(operand)
		}
	case OP_JNC:
		if !cpu.Carry {
			cpu.jump(operand)
		}
	case OP_HLT:
		cpu.state = STATE_STOPPED
	default:
		err = ErrOpcode
	}

	return
}

// getOperand resolves the operand field through the addressing mode.
func (cpu *Cpu) getOperand(mode CodeMode, field uint16) (value uint32, err error) {
	switch mode {
	case MODE_IMMEDIATE:
		value = uint32(field)
	case MODE_INDIRECT:
		value, err = cpu.load(uint32(field))
	}

	return
}

// load reads a data memory word.
func (cpu *Cpu) load(addr uint32) (value uint32, err error) {
	if uint64(addr) >= uint64(len(cpu.Dmem)) {
		err = fmt.Errorf("%w: 0x%x", ErrDmemRange, addr)
		return
	}

	value = cpu.Dmem[addr]
	return
}

// store writes a data memory word.
func (cpu *Cpu) store(addr uint32, value uint32) (err error) {
	if uint64(addr) >= uint64(len(cpu.Dmem)) {
		err = fmt.Errorf("%w: 0x%x", ErrDmemRange, addr)
		return
	}

	cpu.Dmem[addr] = value
	return
}

// setAcc writes the accumulator and recomputes the zero flag.
func (cpu *Cpu) setAcc(value uint32) {
	cpu.Acc = value
	cpu.Zero = value == 0
}

// jump sets the program counter so that the post-step increment lands on target.
func (cpu *Cpu) jump(target uint32) {
	cpu.Pc = target - 1
}
