package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ezrec/accum/cpu"
	"github.com/ezrec/accum/emulator"
	"github.com/ezrec/accum/io"
)

// ROM_EXT marks instruction image files; anything else is source text.
const ROM_EXT = ".rom"

func newEmulator() (emu *emulator.Emulator) {
	emu = emulator.NewEmulator()
	emu.Verbose = verbose
	return
}

// assemble parses a source file.
func assemble(path string) (prog *cpu.Program, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	prog, err = newEmulator().Assemble(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}

	return
}

// readRom reads an instruction image file.
func readRom(path string) (rom *io.Rom, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	rom = &io.Rom{Capacity: cpu.IMEM_SIZE}
	err = rom.Unmarshal(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
		rom = nil
	}

	return
}

// readProgram reads an image or assembles a source file, by extension.
func readProgram(path string) (prog *cpu.Program, err error) {
	if filepath.Ext(path) != ROM_EXT {
		prog, err = assemble(path)
		return
	}

	rom, err := readRom(path)
	if err != nil {
		return
	}

	codes := make([]cpu.Code, len(rom.Data))
	for n, word := range rom.Words() {
		codes[n] = cpu.Code(word)
	}
	prog = emulator.BinaryProgram(codes)

	return
}

// readData reads a data memory initializer file.
func readData(path string) (data []uint32, err error) {
	if len(path) == 0 {
		return
	}

	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	data, err = io.ParseData(inf, cpu.DMEM_SIZE)
	if err != nil {
		err = fmt.Errorf("%v: %w", path, err)
	}

	return
}
