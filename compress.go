// Package arith32 implements a static arithmetic coder over bytes, with a
// 32-bit coding interval and an order-0 frequency model fixed before coding
// begins. The alphabet is the 256 byte values plus one end-of-stream marker,
// so the compressed stream is self-terminating and carries no header or
// length field.
//
// Below is an example of compressing and restoring a text file:
//
//	go run compress/main.go < gettysburg.txt > gettys.ac
//	go run decompress/main.go < gettys.ac > gettys.dac
//	diff gettysburg.txt gettys.dac
//
// Reference:
// Witten, Ian H.; Neal, Radford M.; Cleary, John G. (June 1987). "Arithmetic Coding for Data Compression". Communications of the ACM 30 (6): 520-540.
package arith32

import (
	"bufio"
	"io"

	"github.com/pkg/errors"

	"github.com/billbird/arith32/bitio"
)

// Compress arithmetic-codes the bytes of src onto dst under model m,
// appending the EOF symbol after the last input byte. Memory use is
// constant in the input size.
func Compress(dst io.Writer, src io.Reader, m *Model) error {
	enc := NewEncoder(m, bitio.NewWriter(dst))
	br := bufio.NewReader(src)
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrap(err, "")
		}
		if err := enc.Encode(Symbol(b)); err != nil {
			return err
		}
	}
	if err := enc.Encode(EOFSymbol); err != nil {
		return err
	}
	return enc.Finish()
}

// Decompress decodes a stream produced by Compress, writing the recovered
// bytes to dst. The model must match the one used to compress.
func Decompress(dst io.Writer, src io.Reader, m *Model) error {
	br := bitio.NewReader(src)
	dec := NewDecoder(m, br)
	bw := bufio.NewWriter(dst)
	for {
		s := dec.Decode()
		if s == EOFSymbol {
			break
		}
		if err := bw.WriteByte(byte(s)); err != nil {
			return errors.Wrap(err, "")
		}
	}
	if err := br.Err(); err != nil {
		return err
	}
	return errors.Wrap(bw.Flush(), "")
}
