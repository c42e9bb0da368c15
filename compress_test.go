package arith32

import (
	"bytes"
	"math/rand"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressFile(t *testing.T) {
	const name = "gettysburg.txt"

	// Compress
	src, err := os.Open(name)
	require.NoError(t, err)
	defer src.Close()
	f, err := os.CreateTemp("", "arith32.TestCompressFile.Compress")
	require.NoError(t, err)
	defer f.Close()
	defer os.Remove(f.Name())
	require.NoError(t, Compress(f, src, TextModel()))

	// Decompress
	_, err = f.Seek(0, 0)
	require.NoError(t, err)
	df, err := os.CreateTemp("", "arith32.TestCompressFile.Decompress")
	require.NoError(t, err)
	defer df.Close()
	defer os.Remove(df.Name())
	require.NoError(t, Decompress(df, f, TextModel()))

	// Check that the decompressed result is the same as the original file
	_, err = df.Seek(0, 0)
	require.NoError(t, err)
	decom, err := os.ReadFile(df.Name())
	require.NoError(t, err)
	gettys, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, gettys, decom)
}

func roundTrip(t *testing.T, m *Model, data []byte) []byte {
	t.Helper()
	compressed := &bytes.Buffer{}
	require.NoError(t, Compress(compressed, bytes.NewReader(data), m))
	decompressed := &bytes.Buffer{}
	require.NoError(t, Decompress(decompressed, bytes.NewReader(compressed.Bytes()), m))
	if !bytes.Equal(data, decompressed.Bytes()) {
		t.Fatalf("round trip mismatch: %d bytes in, %d bytes out", len(data), decompressed.Len())
	}
	return compressed.Bytes()
}

func TestRoundTrip(t *testing.T) {
	allBytes := make([]byte, 256)
	for i := range allBytes {
		allBytes[i] = byte(i)
	}
	rng := rand.New(rand.NewSource(4))
	random := make([]byte, 4096)
	rng.Read(random)

	cases := map[string][]byte{
		"empty":    {},
		"AAAA":     []byte("AAAA"),
		"AEIOU":    []byte("AEIOU"),
		"oneByte":  {0x00},
		"allBytes": allBytes,
		"random":   random,
		"text":     []byte("Now we are engaged in a great civil war."),
	}
	m := TextModel()
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			roundTrip(t, m, data)
		})
	}
}

func TestRoundTripUnderflow(t *testing.T) {
	// Under a uniform model, byte 128 maps to the range straddling the
	// binary midpoint, so long runs of it hold the interval in the
	// 01.../10... shape for many consecutive symbols.
	weights := make([]uint32, NumSymbols)
	for i := range weights {
		weights[i] = 1
	}
	m, err := NewModel(weights)
	require.NoError(t, err)

	roundTrip(t, m, bytes.Repeat([]byte{128}, 1000))

	rng := rand.New(rand.NewSource(5))
	mixed := make([]byte, 1000)
	for i := range mixed {
		if rng.Intn(4) > 0 {
			mixed[i] = 128
		} else {
			mixed[i] = byte(rng.Intn(256))
		}
	}
	roundTrip(t, m, mixed)
}

func TestDeterminism(t *testing.T) {
	data, err := os.ReadFile("gettysburg.txt")
	require.NoError(t, err)

	m := TextModel()
	first := roundTrip(t, m, data)
	second := roundTrip(t, m, data)
	assert.Equal(t, first, second)
}

func TestCompressionRatio(t *testing.T) {
	m := TextModel()

	// Weight-2 letters code in fewer bits than weight-1 symbols,
	// and weight-4 vowels in fewer still.
	letters := roundTrip(t, m, []byte(strings.Repeat("N", 256)))
	vowels := roundTrip(t, m, []byte(strings.Repeat("AEIOU", 52)[:256]))
	other := roundTrip(t, m, []byte(strings.Repeat("#", 256)))
	assert.Less(t, len(letters), len(other))
	assert.Less(t, len(vowels), len(letters))

	// English text stays under one byte per input byte.
	gettys, err := os.ReadFile("gettysburg.txt")
	require.NoError(t, err)
	compressed := roundTrip(t, m, gettys)
	assert.Less(t, len(compressed), len(gettys))
}
