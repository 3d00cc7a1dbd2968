package compressor

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/deploymenttheory/go-javaseis/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloat32RoundTrip(t *testing.T) {
	c := Float32Codec{}
	src := [][]float32{
		{1, 2, 3, 4},
		{-1.5, 0, 100.25, -7},
	}
	buf := c.AllocFrameBuffer(len(src), 4)
	require.NoError(t, c.Encode(buf, src))

	dst := [][]float32{make([]float32, 4), make([]float32, 4)}
	require.NoError(t, c.Decode(dst, buf))
	assert.Equal(t, src, dst)
}

func TestInt16RoundTripWithinTolerance(t *testing.T) {
	// scenario 6 of spec.md §8: peaks {0.0, 1.0, 1e6}.
	c := Int16Codec{}
	src := [][]float32{
		{0, 0, 0, 0},
		{1, -1, 0.5, -0.25},
		{1e6, -1e6, 5e5, 0},
	}
	samplesPerTrace := 4
	buf := c.AllocFrameBuffer(len(src), samplesPerTrace)
	require.NoError(t, c.Encode(buf, src))

	dst := make([][]float32, len(src))
	for i := range dst {
		dst[i] = make([]float32, samplesPerTrace)
	}
	require.NoError(t, c.Decode(dst, buf))

	for i, trace := range src {
		peak := float32(0)
		for _, v := range trace {
			if a := float32(math.Abs(float64(v))); a > peak {
				peak = a
			}
		}
		tolerance := float64(peak) / 32767
		if tolerance == 0 {
			tolerance = 1e-9
		}
		for s, want := range trace {
			got := dst[i][s]
			assert.InDeltaf(t, want, got, tolerance+1e-6, "trace %d sample %d", i, s)
		}
	}
}

func TestInt16DecodeClampsCorruptScaler(t *testing.T) {
	c := Int16Codec{}
	buf := c.AllocFrameBuffer(1, 2)
	// Write a NaN scaler directly.
	nanBits := math.Float32bits(float32(math.NaN()))
	buf[0] = byte(nanBits)
	buf[1] = byte(nanBits >> 8)
	buf[2] = byte(nanBits >> 16)
	buf[3] = byte(nanBits >> 24)

	dst := [][]float32{make([]float32, 2)}
	require.NoError(t, c.Decode(dst, buf))
	assert.False(t, math.IsNaN(float64(dst[0][0])))
}

func TestForRejectsCompressedInt32(t *testing.T) {
	_, err := For(types.SampleCompressedInt32)
	require.Error(t, err)
}

func TestForSupportedFormats(t *testing.T) {
	c, err := For(types.SampleFloat32)
	require.NoError(t, err)
	assert.Equal(t, types.SampleFloat32, c.Format())

	c, err = For(types.SampleCompressedInt16)
	require.NoError(t, err)
	assert.Equal(t, types.SampleCompressedInt16, c.Format())

	c, err = For(types.SampleDouble)
	require.NoError(t, err)
	assert.Equal(t, types.SampleDouble, c.Format())
}

func TestDoubleCodecDecodesRoundTrip(t *testing.T) {
	c := DoubleCodec{}
	samplesPerTrace := 3
	src := [][]float32{{1, -2.5, 3}, {0, 100.125, -7}}
	buf := c.AllocFrameBuffer(len(src), samplesPerTrace)
	for i, trace := range src {
		base := i * c.RecordSize(samplesPerTrace)
		for s, v := range trace {
			binary.LittleEndian.PutUint64(buf[base+s*8:], math.Float64bits(float64(v)))
		}
	}

	dst := make([][]float32, len(src))
	for i := range dst {
		dst[i] = make([]float32, samplesPerTrace)
	}
	require.NoError(t, c.Decode(dst, buf))
	assert.Equal(t, src, dst)
}

func TestDoubleCodecEncodeRejected(t *testing.T) {
	c := DoubleCodec{}
	err := c.Encode(make([]byte, 24), [][]float32{{1, 2, 3}})
	require.Error(t, err)
}
