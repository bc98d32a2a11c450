package cpu

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembler(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	prog, err := asm.Parse(strings.NewReader(""))
	assert.NoError(err)
	assert.Equal(0, len(prog.Opcodes))

	assert.Equal(fmt.Sprintf("%v", IMEM_SIZE), asm.Equate["IMEM_SIZE"])
	assert.Equal(fmt.Sprintf("%v", DMEM_SIZE), asm.Equate["DMEM_SIZE"])
}

func opEqual(t *testing.T, expected, opcodes []Opcode) {
	assert := assert.New(t)

	assert.Equal(len(expected), len(opcodes))
	if len(expected) == len(opcodes) {
		for n := range len(expected) {
			assert.Equal(expected[n], opcodes[n])
		}
	}
}

func TestAssemblerProgram(t *testing.T) {
	asm := &Assembler{}

	program := []string{
		"# sum two values",
		"LOAD 5      # immediate",
		"",
		"ADD *0x10",
		"  STORE   0b11  ",
		"\tINC",
		"JNZ 0o7",
		"HLT",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	require.NoError(t, err)

	expected := []Opcode{
		{1, 0, []string{"LOAD", "5"}, MakeCode(OP_LOAD, MODE_IMMEDIATE, 5)},
		{3, 1, []string{"ADD", "*0x10"}, MakeCode(OP_ADD, MODE_INDIRECT, 16)},
		{4, 2, []string{"STORE", "0b11"}, MakeCode(OP_STORE, MODE_IMMEDIATE, 3)},
		{5, 3, []string{"INC"}, MakeCode(OP_INC, MODE_IMMEDIATE, 0)},
		{6, 4, []string{"JNZ", "0o7"}, MakeCode(OP_JNZ, MODE_IMMEDIATE, 7)},
		{7, 5, []string{"HLT"}, MakeCode(OP_HLT, MODE_IMMEDIATE, 0)},
	}

	opEqual(t, expected, prog.Opcodes)
}

func TestAssemblerLoadRange(t *testing.T) {
	assert := assert.New(t)

	for v := range 1024 {
		codes, err := Translate(fmt.Sprintf("LOAD %d", v), INSTRUCTION_LIMIT)
		assert.NoError(err)
		if assert.Len(codes, 1) {
			assert.Equal(OP_LOAD, codes[0].Op())
			assert.Equal(MODE_IMMEDIATE, codes[0].Mode())
			assert.Equal(uint16(v), codes[0].Operand())
		}
	}

	for _, v := range []string{"1024", "2047", "65536", "0x400", "18446744073709551615", "99999999999999999999999"} {
		_, err := Translate("LOAD "+v, INSTRUCTION_LIMIT)
		assert.ErrorIs(err, ErrValueRange, v)
	}
}

func TestAssemblerErrors(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source []string
		lineno int
		kind   error
	}){
		{"mnemonic", []string{"FOO 1"}, 0, ErrMnemonic},
		{"mnemonic_case", []string{"LOAD 1", "", "load 1"}, 2, ErrMnemonic},
		{"mnemonic_after_comment", []string{"# header", "NOP", "BAR"}, 2, ErrMnemonic},
		{"extra", []string{"HLT 5"}, 0, ErrExtraToken},
		{"extra_one", []string{"NOP", "LOAD 5 6"}, 1, ErrExtraToken},
		{"missing", []string{"LOAD"}, 0, ErrMissingToken},
		{"missing_comment", []string{"NOP", "", "JMP # where?"}, 2, ErrMissingToken},
		{"number", []string{"LOAD abc"}, 0, ErrNumber},
		{"number_marker_only", []string{"LOAD *"}, 0, ErrNumber},
		{"number_signed", []string{"LOAD -1"}, 0, ErrNumber},
		{"number_before_extra", []string{"HLT x"}, 0, ErrNumber},
		{"range", []string{"NOP", "SUB *1024"}, 1, ErrValueRange},
		{"range_before_extra", []string{"INC 5000"}, 0, ErrValueRange},
	}

	for _, entry := range table {
		asm := &Assembler{}
		_, err := asm.Parse(strings.NewReader(strings.Join(entry.source, "\n")))
		assert.ErrorIs(err, entry.kind, entry.name)

		var syntax *ErrSyntax
		if assert.True(errors.As(err, &syntax), entry.name) {
			assert.Equal(entry.lineno, syntax.LineNo, entry.name)
			assert.Equal(entry.source[entry.lineno], syntax.Line, entry.name)
			assert.Equal(entry.kind, syntax.Kind(), entry.name)
		}
	}
}

func TestAssemblerSizeLimit(t *testing.T) {
	assert := assert.New(t)

	program := []string{
		"LOAD 1",
		"",
		"ADD 1",
		"   ",
		"# comment lines count",
		"HLT",
	}
	source := strings.Join(program, "\n")

	codes, err := Translate(source, 4)
	assert.NoError(err)
	assert.Len(codes, 3)

	_, err = Translate(source, 3)
	assert.ErrorIs(err, ErrSizeLimit)

	var syntax *ErrSyntax
	if assert.True(errors.As(err, &syntax)) {
		assert.Equal(4, syntax.LineNo)
		assert.Equal(ErrSizeLimit, syntax.Kind())
	}

	// The limit is checked before any line is parsed.
	_, err = Translate("FOO\nBAR\nBAZ", 2)
	assert.ErrorIs(err, ErrSizeLimit)
	assert.NotErrorIs(err, ErrMnemonic)
}

func TestAssemblerDefaultLimit(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}

	source := strings.Repeat("NOP\n", INSTRUCTION_LIMIT)
	codes, err := asm.Translate(source)
	assert.NoError(err)
	assert.Len(codes, INSTRUCTION_LIMIT)

	_, err = asm.Translate(source + "HLT\n")
	assert.ErrorIs(err, ErrSizeLimit)
}

func TestAssemblerExpression(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{}
	asm.Predefine("BASE", "0x100")

	program := []string{
		"LOAD $(BASE + 4)",
		"STORE *$(DMEM_SIZE - 1)",
		"JMP $(LINENO)",
		"ADD $( 2 * 3 )",
	}

	prog, err := asm.Parse(strings.NewReader(strings.Join(program, "\n")))
	assert.NoError(err)

	expected := []Code{
		MakeCode(OP_LOAD, MODE_IMMEDIATE, 0x104),
		MakeCode(OP_STORE, MODE_INDIRECT, 1023),
		MakeCode(OP_JMP, MODE_IMMEDIATE, 2),
		MakeCode(OP_ADD, MODE_IMMEDIATE, 6),
	}
	assert.Equal(expected, prog.Binary())

	_, err = asm.Translate("LOAD $(1 +)")
	assert.ErrorIs(err, ErrNumber)

	_, err = asm.Translate("LOAD $(IMEM_SIZE)")
	assert.ErrorIs(err, ErrValueRange)

	_, err = asm.Translate("LOAD $(0 - 5)")
	assert.ErrorIs(err, ErrValueRange)
	assert.ErrorIs(err, ErrParseSigned("-5"))
	assert.Contains(err.Error(), "-5 is negative")

	// Comments are not evaluated.
	_, err = asm.Translate("LOAD 1 # $(1 +)")
	assert.NoError(err)
}

func TestAssemblerVerbose(t *testing.T) {
	assert := assert.New(t)

	asm := &Assembler{Verbose: true}
	codes, err := asm.Translate("LOAD 1\nHLT")
	assert.NoError(err)
	assert.Len(codes, 2)
}

func TestAssemblerCommentSeparators(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name   string
		source string
		codes  []Code
	}){
		{"vtab", "LOAD 5\v# note", []Code{MakeCode(OP_LOAD, MODE_IMMEDIATE, 5)}},
		{"nbsp", "HLT\u00a0# note", []Code{MakeCode(OP_HLT, MODE_IMMEDIATE, 0)}},
		{"nel", "LOAD 5\u0085#x", []Code{MakeCode(OP_LOAD, MODE_IMMEDIATE, 5)}},
		{"formfeed", "\f#\fLOAD 1\nINC", []Code{MakeCode(OP_INC, MODE_IMMEDIATE, 0)}},
		{"tab", "ADD *3\t#", []Code{MakeCode(OP_ADD, MODE_INDIRECT, 3)}},
	}

	for _, entry := range table {
		codes, err := Translate(entry.source, 4)
		assert.NoError(err, entry.name)
		assert.Equal(entry.codes, codes, entry.name)
	}

	// '#' inside a word is not a comment.
	_, err := Translate("LOAD 5#x", 4)
	assert.ErrorIs(err, ErrNumber)
}

func TestAssemblerLongLine(t *testing.T) {
	assert := assert.New(t)

	source := "# " + strings.Repeat("x", 100_000) + "\r\nLOAD 1\r\nHLT\r\n"
	codes, err := Translate(source, 4)
	assert.NoError(err)
	assert.Equal([]Code{
		MakeCode(OP_LOAD, MODE_IMMEDIATE, 1),
		MakeCode(OP_HLT, MODE_IMMEDIATE, 0),
	}, codes)

	_, err = Translate("LOAD "+strings.Repeat(" ", 100_000)+"1024", 4)
	assert.ErrorIs(err, ErrValueRange)
}

func TestAssemblerReadError(t *testing.T) {
	assert := assert.New(t)

	failure := errors.New("read failure")

	asm := &Assembler{}
	_, err := asm.Parse(iotest.ErrReader(failure))
	assert.ErrorIs(err, failure)

	var syntax *ErrSyntax
	if assert.True(errors.As(err, &syntax)) {
		assert.Equal(0, syntax.LineNo)
	}
}
