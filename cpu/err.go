package cpu

import (
	"errors"

	"github.com/ezrec/accum/translate"
)

var f = translate.From

var (
	// Engine usage faults. These are raised with panic().
	ErrUsage          = errors.New(f("usage"))
	ErrAlreadyRunning = errors.New(f("already running"))
	ErrAlreadyStopped = errors.New(f("already stopped"))
	ErrNotRunning     = errors.New(f("not running"))
	ErrLoadRunning    = errors.New(f("load while running"))
	ErrLoadSize       = errors.New(f("load exceeds memory"))

	// Engine faults
	ErrPcRange   = errors.New(f("program counter out of range"))
	ErrDmemRange = errors.New(f("data address out of range"))
	ErrOpcode    = errors.New(f("opcode invalid"))

	// Assembler errors
	ErrSizeLimit    = errors.New(f("size limit exceeded"))
	ErrValueRange   = errors.New(f("value out of range"))
	ErrMnemonic     = errors.New(f("unrecognized mnemonic"))
	ErrExtraToken   = errors.New(f("unexpected extra token"))
	ErrMissingToken = errors.New(f("missing required token"))
	ErrNumber       = errors.New(f("malformed numeric literal"))
)

// ErrOpcodeFault attaches the faulting instruction word to an engine fault.
type ErrOpcodeFault Code

func (eo ErrOpcodeFault) Error() string {
	return f("bad opcode 0x%04x %v", uint16(eo), Code(eo).String())
}

func (eo ErrOpcodeFault) Is(err error) (ok bool) {
	_, ok = err.(ErrOpcodeFault)
	return
}

// usageFault panics with a usage fault.
func usageFault(err error) {
	panic(errors.Join(ErrUsage, err))
}

// ErrSyntax is a translation error, with the 0-based line it originated on.
type ErrSyntax struct {
	LineNo int
	Line   string
	Err    error
}

func (err *ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrSyntax) Unwrap() error {
	return err.Err
}

// Kind returns the translation error category, or nil if the
// wrapped error is not one of the assembler categories.
func (err *ErrSyntax) Kind() error {
	for _, kind := range []error{
		ErrSizeLimit,
		ErrValueRange,
		ErrMnemonic,
		ErrExtraToken,
		ErrMissingToken,
		ErrNumber,
	} {
		if errors.Is(err.Err, kind) {
			return kind
		}
	}
	return nil
}

type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("'%v' is not a number", string(err))
}

func (err ErrParseNumber) Unwrap() error {
	return ErrNumber
}

type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

func (err ErrParseExpression) Unwrap() error {
	return ErrNumber
}

type ErrParseRange uint64

func (err ErrParseRange) Error() string {
	return f("%d does not fit in %d bits", uint64(err), CODE_OPERAND_BITS)
}

func (err ErrParseRange) Unwrap() error {
	return ErrValueRange
}

// ErrParseSigned is a negative expression result, as its decimal text.
type ErrParseSigned string

func (err ErrParseSigned) Error() string {
	return f("%v is negative", string(err))
}

func (err ErrParseSigned) Unwrap() error {
	return ErrValueRange
}
