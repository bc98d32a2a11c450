// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/sirupsen/logrus"
	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

const (
	INSTRUCTION_LIMIT = IMEM_SIZE // Default maximum program length.
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":    "0",
	"IMEM_SIZE": fmt.Sprintf("%v", IMEM_SIZE),
	"DMEM_SIZE": fmt.Sprintf("%v", DMEM_SIZE),
}

var reExpression = regexp.MustCompile(`\$\([^\$]*\)`)

// Assembler is a single pass, line oriented assembler for the accumulator CPU.
type Assembler struct {
	Verbose bool     // If set, verbosely logs the assembler actions.
	Limit   int      // Maximum non-blank lines. INSTRUCTION_LIMIT if zero.
	Opcode  []Opcode // List of generated opcodes.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates visible to $(...) expressions.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// sourceLine is a line of source text and its 0-based index.
type sourceLine struct {
	LineNo int
	Text   string
}

// fail wraps err with the location of the line.
func (sl sourceLine) fail(err error) error {
	return &ErrSyntax{LineNo: sl.LineNo, Line: sl.Text, Err: err}
}

// countLines returns the number of non-blank lines.
func countLines(lines []string) (count int) {
	for _, line := range lines {
		if len(strings.TrimSpace(line)) != 0 {
			count++
		}
	}
	return
}

// Translate assembles source text into an instruction sequence, with at most
// limit non-blank lines.
func Translate(source string, limit int) (codes []Code, err error) {
	asm := &Assembler{Limit: limit}
	return asm.Translate(source)
}

// Translate assembles source text into an instruction sequence.
func (asm *Assembler) Translate(source string) (codes []Code, err error) {
	prog, err := asm.Parse(strings.NewReader(source))
	if err != nil {
		return
	}

	codes = prog.Binary()
	return
}

// Parse parses an input stream into a Program containing opcodes.
func (asm *Assembler) Parse(input io.Reader) (prog *Program, err error) {
	var lines []string

	reader := bufio.NewReader(input)
	for {
		text, rerr := reader.ReadString('\n')
		if len(text) != 0 {
			text = strings.TrimSuffix(text, "\n")
			text = strings.TrimSuffix(text, "\r")
			lines = append(lines, text)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			err = &ErrSyntax{LineNo: len(lines), Err: rerr}
			return
		}
	}

	limit := asm.Limit
	if limit == 0 {
		limit = INSTRUCTION_LIMIT
	}

	// The size check precedes all per-line parsing.
	count := countLines(lines)
	if count > limit {
		err = &ErrSyntax{LineNo: count, Err: ErrSizeLimit}
		return
	}

	asm.Opcode = make([]Opcode, 0, count)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for lineno, text := range lines {
		sl := sourceLine{LineNo: lineno, Text: text}

		if asm.Verbose {
			logrus.WithFields(logrus.Fields{"line": lineno, "text": text}).Debug("asm")
		}

		var words []string
		words, err = asm.parseLine(sl)
		if err != nil {
			return
		}

		err = asm.parseWords(sl, words)
		if err != nil {
			return
		}
	}

	prog = &Program{
		Opcodes: asm.Opcode,
	}

	return
}

// parseLine removes the comment, expands $(...) expressions, and splits
// the line into words.
func (asm *Assembler) parseLine(sl sourceLine) (words []string, err error) {
	line := sl.Text

	line = stripComment(line)

	asm.Equate["LINENO"] = fmt.Sprintf("%v", sl.LineNo)

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil && err == nil {
			err = sl.fail(_err)
		}
		return fmt.Sprintf("%d", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	return
}

// stripComment cuts the line at the first word starting with '#'.
// Word boundaries are the same as strings.Fields.
func stripComment(line string) string {
	space := true
	for n, r := range line {
		if r == COMMENT_MARKER && space {
			return line[:n]
		}
		space = unicode.IsSpace(r)
	}

	return line
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint64, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v64 uint64
		v64, err = strconv.ParseUint(str, 0, 64)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeUint64(v64)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = errors.Join(ErrParseExpression(expr), err)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	if st_int.Sign() < 0 {
		err = ErrParseSigned(st_int.String())
		return
	}
	value, ok = st_int.Uint64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	return
}

// valueOf parses an unsigned operand literal that must fit the operand field.
func (asm *Assembler) valueOf(word string) (value uint16, err error) {
	v64, err := strconv.ParseUint(word, 0, 64)
	if errors.Is(err, strconv.ErrRange) {
		err = ErrParseRange(v64)
		return
	}
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	if (v64 & CODE_OPERAND_MASK) != v64 {
		err = ErrParseRange(v64)
		return
	}

	value = uint16(v64 & CODE_OPERAND_MASK)

	return
}

// operandOf determines the addressing mode and value of an operand word.
func (asm *Assembler) operandOf(word string) (mode CodeMode, value uint16, err error) {
	mode = MODE_IMMEDIATE
	if word[0] == INDIRECT_MARKER {
		mode = MODE_INDIRECT
		word = word[1:]
	}

	value, err = asm.valueOf(word)

	return
}

// currentIp gets the current Ip
func (asm *Assembler) currentIp() int {
	return len(asm.Opcode)
}

// parseWords evaluates the words in a line of assembly text.
func (asm *Assembler) parseWords(sl sourceLine, words []string) (err error) {
	// no-op
	if len(words) == 0 {
		return
	}

	desc, ok := LookupOpcode(words[0])
	if !ok {
		err = sl.fail(ErrMnemonic)
		return
	}

	expected := 1 + desc.Arity

	mode := MODE_IMMEDIATE
	var value uint16
	if len(words) > 1 {
		mode, value, err = asm.operandOf(words[1])
		if err != nil {
			err = sl.fail(err)
			return
		}
	}

	if len(words) > expected {
		err = sl.fail(ErrExtraToken)
		return
	}

	if len(words) < expected {
		err = sl.fail(ErrMissingToken)
		return
	}

	opcode := Opcode{
		LineNo: sl.LineNo,
		Ip:     asm.currentIp(),
		Words:  words,
		Code:   MakeCode(desc.Op, mode, value),
	}
	asm.Opcode = append(asm.Opcode, opcode)

	return
}
