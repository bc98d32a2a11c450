package io

import (
	"bufio"
	"errors"
	"io"
	"math"
	"strconv"
	"strings"
)

// ParseData parses a data-memory initializer into a data memory of size words.
//
// Each line is an 'ADDRESS VALUE' pair. Blank lines and lines starting with
// '#' are skipped. Both numbers accept 0x, 0o and 0b prefixes. Each address
// may be given at most once; unlisted addresses are zero.
func ParseData(r io.Reader, size int) (data []uint32, err error) {
	data = make([]uint32, size)
	used := make([]bool, size)

	var lineno int
	defer func() {
		if err != nil {
			data = nil
			err = &ErrData{LineNo: lineno, Err: err}
		}
	}()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineno++
		line := strings.TrimSpace(scanner.Text())

		if len(line) == 0 || line[0] == '#' {
			continue
		}

		words := strings.Fields(line)
		if len(words) != 2 {
			err = ErrDataFormat
			return
		}

		var addr uint64
		addr, err = strconv.ParseUint(words[0], 0, 64)
		if errors.Is(err, strconv.ErrRange) {
			err = ErrDataAddressRange
			return
		}
		if err != nil {
			err = ErrDataAddress
			return
		}

		if addr >= uint64(size) {
			err = ErrDataAddressRange
			return
		}

		if used[addr] {
			err = ErrDataDuplicate
			return
		}

		var value uint64
		value, err = strconv.ParseUint(words[1], 0, 64)
		if errors.Is(err, strconv.ErrRange) {
			err = ErrDataValueRange
			return
		}
		if err != nil {
			err = ErrDataValue
			return
		}

		if value > math.MaxUint32 {
			err = ErrDataValueRange
			return
		}

		data[addr] = uint32(value)
		used[addr] = true
	}

	err = scanner.Err()

	return
}
