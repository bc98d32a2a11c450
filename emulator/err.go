package emulator

import (
	"errors"

	"github.com/ezrec/accum/translate"
)

var f = translate.From

var (
	ErrFrequency = errors.New(f("frequency must be positive"))
	ErrNoProgram = errors.New(f("no program loaded"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	LineNo int // 0-based source line, or -1 if the instruction has no source.
	Ip     uint32
	Err    error
}

func (err *ErrRuntime) Error() string {
	if err.LineNo < 0 {
		return f("ip 0x%03x %v", err.Ip, err.Err)
	}
	return f("line %d ip 0x%03x %v", err.LineNo, err.Ip, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}
