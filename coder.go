package arith32

import (
	"sort"

	"github.com/billbird/arith32/bitio"
)

// codeValueBits is the width of the coding registers. The interval bounds,
// and the decoder's window onto the compressed stream, are 32-bit values;
// intermediate products are computed in 64 bits so they cannot overflow.
const codeValueBits = 32

// An interval is the coder's current range [lower, upper+1), the binary
// fraction prefix shared by every message consistent with the symbols coded
// so far. Encoder and decoder hold identical interval state after each
// symbol; any divergence between the two is a correctness bug.
type interval struct {
	lower uint32
	upper uint32
}

func newInterval() interval {
	return interval{lower: 0, upper: 0xFFFFFFFF}
}

// narrow shrinks the interval to the sub-range [low/total, high/total) of
// its current extent. Division truncates; the decoder's scaled-position
// formula depends on exactly this rounding.
func (iv *interval) narrow(low, high, total uint64) {
	rng := uint64(iv.upper) - uint64(iv.lower) + 1
	lo := uint64(iv.lower)
	iv.upper = uint32(lo + rng*high/total - 1)
	iv.lower = uint32(lo + rng*low/total)
}

// renormalize rescales the interval until its bounds disagree on both of
// their top two bits, so that no further bit of the result is determined.
// onBit fires when the bounds share their most significant bit b, which is
// then shifted out of both. onUnderflow fires when the bounds straddle the
// midpoint as 01.../10...; the redundant second bit is spliced out of both,
// preserving the leading 0 and 1. The encoder and decoder supply different
// callbacks but drive this exact loop, which keeps them mirror images.
func (iv *interval) renormalize(onBit func(b byte) error, onUnderflow func() error) error {
	for {
		switch {
		case iv.upper>>31 == iv.lower>>31:
			if err := onBit(byte(iv.upper >> 31)); err != nil {
				return err
			}
			iv.upper = iv.upper<<1 | 1
			iv.lower = iv.lower << 1
		case iv.lower>>30&1 == 1 && iv.upper>>30&1 == 0:
			if err := onUnderflow(); err != nil {
				return err
			}
			iv.upper = iv.upper<<1 | 1<<31 | 1
			iv.lower = iv.lower << 1 & (1<<31 - 1)
		default:
			return nil
		}
	}
}

// An Encoder arithmetic-codes symbols onto a bit stream.
// Create one with NewEncoder, call Encode once per symbol ending with
// EOFSymbol, then call Finish exactly once.
type Encoder struct {
	model *Model
	w     *bitio.Writer
	iv    interval

	// pending counts opposite bits owed after the next determinate bit,
	// accumulated while the interval straddles the midpoint.
	pending uint64
}

// NewEncoder creates an encoder that codes symbols under m and writes the
// resulting bits to w.
func NewEncoder(m *Model, w *bitio.Writer) *Encoder {
	return &Encoder{model: m, w: w, iv: newInterval()}
}

// bitPlusPending writes b followed by the deferred underflow bits, which
// all take the opposite value.
func (e *Encoder) bitPlusPending(b byte) error {
	if err := e.w.WriteBit(b); err != nil {
		return err
	}
	for ; e.pending > 0; e.pending-- {
		if err := e.w.WriteBit(b ^ 1); err != nil {
			return err
		}
	}
	return nil
}

// Encode codes a single symbol, emitting however many bits become
// determinate as a result.
func (e *Encoder) Encode(s Symbol) error {
	low, high := e.model.Range(s)
	e.iv.narrow(low, high, e.model.Total())
	return e.iv.renormalize(e.bitPlusPending, func() error {
		e.pending++
		return nil
	})
}

// Finish flushes the bits that pin down the final interval. At this point
// lower begins with a 0 bit and upper with a 1, so the string 0111... lies
// strictly inside the interval: emitting 01 and padding the last byte with
// ones is enough, because the decoder's bit source repeats the final 1
// indefinitely once the stream runs out.
func (e *Encoder) Finish() error {
	if err := e.w.WriteBit(0); err != nil {
		return err
	}
	if err := e.w.WriteBit(1); err != nil {
		return err
	}
	return e.w.Flush(1)
}

// A Decoder recovers the symbol sequence from an arithmetic-coded bit
// stream. It mirrors the encoder's interval state, with a 32-bit window
// onto the compressed stream in place of bit emission.
//
// A stream truncated before its EOF symbol, including one too short to fill
// the initial window, decodes to unspecified output: the format carries no
// redundancy with which to detect corruption.
type Decoder struct {
	model  *Model
	r      *bitio.Reader
	iv     interval
	window uint32
}

// NewDecoder creates a decoder reading from r, priming the window with the
// first 32 bits of the stream.
func NewDecoder(m *Model, r *bitio.Reader) *Decoder {
	d := &Decoder{model: m, r: r, iv: newInterval()}
	for i := 0; i < codeValueBits; i++ {
		d.window = d.window<<1 | uint32(r.ReadBit())
	}
	return d
}

// Decode returns the next symbol in the stream. After EOFSymbol is
// returned, the stream is finished and Decode must not be called again.
func (d *Decoder) Decode() Symbol {
	total := d.model.Total()
	rng := uint64(d.iv.upper) - uint64(d.iv.lower) + 1

	// Scale the window back to a cumulative frequency in [0, total). The
	// +1 and -1 terms compensate for the truncation in narrow, so the
	// result lands in exactly the range the encoder used.
	scaled := min(total-1, ((uint64(d.window)-uint64(d.iv.lower)+1)*total-1)/rng)

	s := Symbol(sort.Search(NumSymbols, func(i int) bool {
		return d.model.cf[i+1] > scaled
	}))
	if s == EOFSymbol {
		return s
	}

	low, high := d.model.Range(s)
	d.iv.narrow(low, high, total)
	d.iv.renormalize(func(byte) error {
		d.window = d.window<<1 | uint32(d.r.ReadBit())
		return nil
	}, func() error {
		// Splice out the window's second bit, as renormalize does to the
		// bounds, and pull a fresh bit in at the bottom.
		msb := d.window >> 31
		rest := d.window & 0x3FFFFFFF
		d.window = msb<<31 | rest<<1 | uint32(d.r.ReadBit())
		return nil
	})
	return s
}
