// Package bitio provides single-bit readers and writers over byte streams.
// Bits are packed into bytes least significant bit first, following the bit
// ordering of the gzip format.
package bitio

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// A Writer writes individual bits to an underlying io.Writer.
// A byte is emitted once 8 bits have been accumulated.
type Writer struct {
	buf     *bufio.Writer
	curByte byte
	nbits   uint
}

// NewWriter creates a bit writer backed by the given io.Writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{buf: bufio.NewWriter(w)}
}

// WriteBit writes a single bit, given as the low bit of b.
func (bw *Writer) WriteBit(b byte) error {
	bw.curByte |= (b & 1) << bw.nbits
	bw.nbits++
	if bw.nbits == 8 {
		if err := bw.buf.WriteByte(bw.curByte); err != nil {
			return errors.Wrap(err, "")
		}
		bw.curByte = 0
		bw.nbits = 0
	}
	return nil
}

// Flush pads any partially filled byte with copies of pad, emits it, and
// flushes the underlying writer. After Flush the writer is byte aligned.
func (bw *Writer) Flush(pad byte) error {
	for bw.nbits > 0 {
		if err := bw.WriteBit(pad); err != nil {
			return err
		}
	}
	return errors.Wrap(bw.buf.Flush(), "")
}

// A Reader reads individual bits from an underlying io.Reader.
//
// Once the underlying reader is exhausted, ReadBit returns the last bit it
// actually read, forever. Arithmetic decoding relies on this to terminate:
// a stream ending in a 1 bit behaves as if followed by infinitely many 1s.
type Reader struct {
	buf     *bufio.Reader
	curByte byte
	nbits   uint
	done    bool
	lastBit byte
	err     error
}

// NewReader creates a bit reader backed by the given io.Reader.
func NewReader(r io.Reader) *Reader {
	return &Reader{buf: bufio.NewReader(r), nbits: 8}
}

// ReadBit reads a single bit, returned as the low bit of a byte.
// At end of input it repeats the last real bit seen (0 if none was).
func (br *Reader) ReadBit() byte {
	if br.nbits == 8 && !br.done {
		by, err := br.buf.ReadByte()
		if err != nil {
			br.done = true
			if err != io.EOF && br.err == nil {
				br.err = errors.Wrap(err, "")
			}
		} else {
			br.curByte = by
			br.nbits = 0
		}
	}
	if !br.done {
		br.lastBit = (br.curByte >> br.nbits) & 1
		br.nbits++
	}
	return br.lastBit
}

// Err reports the first non-EOF error encountered by the underlying reader.
// Exhausting the input is not an error.
func (br *Reader) Err() error {
	return br.err
}
