package emulator

import (
	"fmt"
	"io"
	"strings"
)

// Display renders emulator state.
type Display interface {
	Begin()             // Called once before the first tick.
	Show(emu *Emulator) // Called per the clock display mode.
	End()               // Called once after the last tick.
}

// rowFields splits the current state into display columns.
func rowFields(emu *Emulator) (mnemonic, operand string, flags string) {
	text := emu.Code().String()
	mnemonic, operand, _ = strings.Cut(text, " ")

	zero := ' '
	if emu.Cpu.Zero {
		zero = 'Z'
	}
	carry := ' '
	if emu.Cpu.Carry {
		carry = 'C'
	}
	flags = string([]rune{zero, carry})

	return
}

// Table renders a bordered table, one row per display.
type Table struct {
	Output   io.Writer
	ShowStep bool // If set, adds a step counter column.
}

var _ Display = (*Table)(nil)

func (tbl *Table) rule() {
	if tbl.ShowStep {
		fmt.Fprintln(tbl.Output, "+------+------+-------------+------------+-------+")
	} else {
		fmt.Fprintln(tbl.Output, "+------+-------------+------------+-------+")
	}
}

func (tbl *Table) Begin() {
	tbl.rule()
	if tbl.ShowStep {
		fmt.Fprintf(tbl.Output, "| %4s | %4s | %-11s | %10s | %-5s |\n",
			f("STEP"), f("PC"), f("INSTR"), f("ACC"), f("FLAGS"))
	} else {
		fmt.Fprintf(tbl.Output, "| %4s | %-11s | %10s | %-5s |\n",
			f("PC"), f("INSTR"), f("ACC"), f("FLAGS"))
	}
	tbl.rule()
}

func (tbl *Table) Show(emu *Emulator) {
	mnemonic, operand, flags := rowFields(emu)
	if tbl.ShowStep {
		fmt.Fprintf(tbl.Output, "| %4d | %4d | %-5s %5s | %10d |  %s   |\n",
			emu.Ticks(), emu.Cpu.Pc, mnemonic, operand, emu.Cpu.Acc, flags)
	} else {
		fmt.Fprintf(tbl.Output, "| %4d | %-5s %5s | %10d |  %s   |\n",
			emu.Cpu.Pc, mnemonic, operand, emu.Cpu.Acc, flags)
	}
}

func (tbl *Table) End() {
	tbl.rule()
}

// Short renders one compact line per display.
type Short struct {
	Output io.Writer
}

var _ Display = (*Short)(nil)

func (sh *Short) Begin() {}

func (sh *Short) Show(emu *Emulator) {
	mnemonic, operand, flags := rowFields(emu)
	fmt.Fprintf(sh.Output, "[%3d] %-5s %5s %10d %s\n",
		emu.Cpu.Pc, mnemonic, operand, emu.Cpu.Acc, flags)
}

func (sh *Short) End() {}
