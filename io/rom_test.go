package io

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRom_Marshal(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []uint16{0x0805, 0x2003, 0x9800}}

	buff := &bytes.Buffer{}
	err := rom.Marshal(buff)
	assert.NoError(err)
	assert.Equal([]byte{0x05, 0x08, 0x03, 0x20, 0x00, 0x98}, buff.Bytes())

	other := &Rom{}
	err = other.Unmarshal(bytes.NewReader(buff.Bytes()))
	assert.NoError(err)
	assert.Equal(rom.Data, other.Data)
}

func TestRom_Unmarshal_Errors(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{}
	err := rom.Unmarshal(bytes.NewReader([]byte{1, 2, 3}))
	assert.ErrorIs(err, ErrRomSize)

	rom = &Rom{Capacity: 1}
	err = rom.Unmarshal(bytes.NewReader([]byte{1, 2, 3, 4}))
	assert.ErrorIs(err, ErrRomFull)

	err = rom.Unmarshal(bytes.NewReader([]byte{1, 2}))
	assert.NoError(err)
	assert.Equal([]uint16{0x0201}, rom.Data)
}

func TestRom_Words(t *testing.T) {
	assert := assert.New(t)

	rom := &Rom{Data: []uint16{1, 2, 3}}

	var words []uint16
	for n, word := range rom.Words() {
		assert.Equal(len(words), n)
		words = append(words, word)
		if n == 1 {
			break
		}
	}
	assert.Equal([]uint16{1, 2}, words)

	count := 0
	for range (&Rom{}).Words() {
		count++
	}
	assert.Equal(0, count)
}
