package io

import (
	"errors"

	"github.com/ezrec/accum/translate"
)

var f = translate.From

var (
	// Rom errors
	ErrRomSize = errors.New(f("rom image has a partial word"))
	ErrRomFull = errors.New(f("rom image exceeds capacity"))

	// Data initializer errors
	ErrDataFormat       = errors.New(f("invalid format: expected 'ADDRESS VALUE'"))
	ErrDataAddress      = errors.New(f("invalid address format"))
	ErrDataValue        = errors.New(f("invalid value format"))
	ErrDataAddressRange = errors.New(f("address out of range"))
	ErrDataValueRange   = errors.New(f("value out of uint32 range"))
	ErrDataDuplicate    = errors.New(f("duplicate address"))
)

// ErrData is a data initializer error, with the 1-based line it originated on.
type ErrData struct {
	LineNo int
	Err    error
}

func (err *ErrData) Error() string {
	return f("data line %d %v", err.LineNo, err.Err)
}

func (err *ErrData) Unwrap() error {
	return err.Err
}
