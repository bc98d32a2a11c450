package io

import (
	"encoding/binary"
	"io"
	"iter"
)

// Rom is a program image of 16-bit instruction words.
// The serialized form is a sequence of little-endian words.
type Rom struct {
	Capacity int // Maximum words on Unmarshal; unlimited if zero.
	Data     []uint16
}

// Words returns an iterator over the image words.
func (rc *Rom) Words() iter.Seq2[int, uint16] {
	return func(yield func(index int, word uint16) bool) {
		for n, word := range rc.Data {
			if !yield(n, word) {
				return
			}
		}
	}
}

// Marshal writes the image.
func (rc *Rom) Marshal(w io.Writer) (err error) {
	buff := make([]byte, 0, 2*len(rc.Data))
	for _, word := range rc.Data {
		buff = binary.LittleEndian.AppendUint16(buff, word)
	}

	_, err = w.Write(buff)
	return
}

// Unmarshal replaces the image with the words read from r.
func (rc *Rom) Unmarshal(r io.Reader) (err error) {
	buff, err := io.ReadAll(r)
	if err != nil {
		return
	}

	if len(buff)%2 != 0 {
		err = ErrRomSize
		return
	}

	words := len(buff) / 2
	if rc.Capacity != 0 && words > rc.Capacity {
		err = ErrRomFull
		return
	}

	rc.Data = make([]uint16, words)
	for n := range rc.Data {
		rc.Data[n] = binary.LittleEndian.Uint16(buff[2*n:])
	}

	return
}
