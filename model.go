package arith32

import (
	"math"

	"github.com/pkg/errors"
)

// A Symbol is one unit of the coded alphabet: a byte value in [0, 255],
// or EOFSymbol marking the end of the stream.
type Symbol = uint32

const (
	// EOFSymbol is the synthetic end-of-stream marker.
	EOFSymbol Symbol = 256

	// NumSymbols is the size of the alphabet, including EOFSymbol.
	NumSymbols = 257
)

// A Model is a static frequency distribution over the symbol alphabet.
// It is immutable after construction; encoder and decoder must be given
// models built from identical weights, since the weights are not
// transmitted in the compressed stream.
type Model struct {
	// cf[s] is the cumulative frequency of all symbols below s, so the
	// frequency range of symbol s is [cf[s], cf[s+1]).
	cf [NumSymbols + 1]uint64
}

// NewModel builds a Model from per-symbol weights.
// Every symbol must have weight at least 1, and the weights must sum to at
// most 2^32-1 as required by the coder's fixed-point arithmetic; weights
// violating either constraint must be rescaled by the caller.
func NewModel(weights []uint32) (*Model, error) {
	if len(weights) != NumSymbols {
		return nil, errors.Errorf("expected %d weights, got %d", NumSymbols, len(weights))
	}
	m := &Model{}
	for i, w := range weights {
		if w == 0 {
			return nil, errors.Errorf("symbol %d has zero weight", i)
		}
		m.cf[i+1] = m.cf[i] + uint64(w)
	}
	if m.cf[NumSymbols] > math.MaxUint32 {
		return nil, errors.Errorf("total frequency %d exceeds 32 bits, weights must be scaled down", m.cf[NumSymbols])
	}
	return m, nil
}

// TextModel returns the fixed model used by the compress and decompress
// programs: weight 4 for the ten ASCII vowels, weight 2 for the rest of the
// range 'A'-'z', and weight 1 for every other symbol including EOFSymbol.
func TextModel() *Model {
	weights := make([]uint32, NumSymbols)
	for i := range weights {
		weights[i] = 1
	}
	for i := 'A'; i <= 'z'; i++ {
		weights[i] = 2
	}
	for _, c := range "AEIOUaeiou" {
		weights[c] = 4
	}
	m, err := NewModel(weights)
	if err != nil {
		panic(err)
	}
	return m
}

// Range returns the cumulative frequency range [low, high) of s.
func (m *Model) Range(s Symbol) (low, high uint64) {
	return m.cf[s], m.cf[s+1]
}

// Total returns the sum of all symbol weights.
func (m *Model) Total() uint64 {
	return m.cf[NumSymbols]
}
