package snapshot

import (
	"bytes"
	"testing"

	"github.com/hupe1980/sievego/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCompression("brotli")
	assert.ErrorIs(t, err, ErrUnknownCompression)
	assert.Equal(t, "compression(9)", Compression(9).String())
}

func TestCompress_RoundTrip(t *testing.T) {
	compressible := bytes.Repeat([]byte("2357111317192329"), 4096)

	rng := testutil.NewRNG(7)
	random := make([]byte, 4096)
	for i := range random {
		random[i] = byte(rng.Intn(256))
	}

	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		for name, data := range map[string][]byte{
			"compressible": compressible,
			"random":       random,
			"empty":        {},
		} {
			block, err := compress(data, c)
			require.NoError(t, err, "%s/%s", c, name)

			out, err := decompress(block, c)
			require.NoError(t, err, "%s/%s", c, name)
			assert.Equal(t, len(data), len(out), "%s/%s", c, name)
			assert.True(t, bytes.Equal(data, out), "%s/%s", c, name)
		}
	}
}

func TestCompress_ShrinksRepetitiveData(t *testing.T) {
	data := bytes.Repeat([]byte{0xAA, 0x55}, 1<<15)
	for _, c := range []Compression{CompressionLZ4, CompressionZSTD} {
		block, err := compress(data, c)
		require.NoError(t, err)
		assert.Less(t, len(block), len(data)/4, c.String())
	}
}

func TestDecompress_Corrupt(t *testing.T) {
	_, err := decompress([]byte{1, 2, 3}, CompressionZSTD)
	assert.ErrorIs(t, err, ErrCorrupt)

	block, err := compress(bytes.Repeat([]byte("x"), 1024), CompressionZSTD)
	require.NoError(t, err)
	_, err = decompress(block[:len(block)-1], CompressionZSTD)
	assert.ErrorIs(t, err, ErrCorrupt)
}
