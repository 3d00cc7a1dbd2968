package frame

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deploymenttheory/go-javaseis/internal/compressor"
	"github.com/deploymenttheory/go-javaseis/internal/extent"
	"github.com/deploymenttheory/go-javaseis/internal/interfaces"
	"github.com/deploymenttheory/go-javaseis/internal/tracemap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestCodec builds a codec for a dataset with tracesPerFrame traces of
// samplesPerTrace float32 samples each, totalFrames frames, a single
// extent per stream, and the given compressor.
func newTestCodec(t *testing.T, tracesPerFrame, samplesPerTrace int, totalFrames int64, comp interfaces.TraceCompressor) *Codec {
	t.Helper()
	dir := t.TempDir()
	primary := filepath.Join(dir, "ds.js")
	require.NoError(t, os.MkdirAll(primary, 0o755))

	recordSize := comp.RecordSize(samplesPerTrace)
	totalTraceBytes := totalFrames * int64(tracesPerFrame) * int64(recordSize)
	traceSet, err := extent.Build("TraceFile", totalTraceBytes, 1, totalTraceBytes, []string{"."}, primary)
	require.NoError(t, err)

	headerLen := 8
	totalHeaderBytes := totalFrames * int64(tracesPerFrame) * int64(headerLen)
	headerSet, err := extent.Build("TraceHeaders", totalHeaderBytes, 1, totalHeaderBytes, []string{"."}, primary)
	require.NoError(t, err)

	require.NoError(t, tracemap.Create(primary, totalFrames))
	tm, err := tracemap.Open(primary, true, int32(tracesPerFrame), totalFrames, totalFrames, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tm.Close() })

	return &Codec{
		TraceLayout:     extent.NewLayout(traceSet),
		HeaderLayout:    extent.NewLayout(headerSet),
		Mapper:          tm,
		Compressor:      comp,
		TracesPerFrame:  tracesPerFrame,
		SamplesPerTrace: samplesPerTrace,
		HeaderLength:    headerLen,
	}
}

func TestReadEmptyFrameReturnsZero(t *testing.T) {
	c := newTestCodec(t, 4, 8, 10, compressor.Float32Codec{})
	fold, err := c.ReadFrame(1, make([][]float32, 4), make([]byte, 4*8))
	require.NoError(t, err)
	assert.Zero(t, fold)
}

func TestWriteThenReadFullFrame(t *testing.T) {
	// scenario 2 of spec.md §8: full frame, value = 100*trace + sample.
	tracesPerFrame, samplesPerTrace := 64, 10
	c := newTestCodec(t, tracesPerFrame, samplesPerTrace, 1, compressor.Float32Codec{})

	traces := make([][]float32, tracesPerFrame)
	headers := make([]byte, tracesPerFrame*8)
	for trace := 0; trace < tracesPerFrame; trace++ {
		traces[trace] = make([]float32, samplesPerTrace)
		for sample := 0; sample < samplesPerTrace; sample++ {
			traces[trace][sample] = float32(100*trace + sample)
		}
	}

	require.NoError(t, c.WriteFrame(1, int32(tracesPerFrame), traces, headers))

	readTraces := make([][]float32, tracesPerFrame)
	readHeaders := make([]byte, tracesPerFrame*8)
	fold, err := c.ReadFrame(1, readTraces, readHeaders)
	require.NoError(t, err)
	require.EqualValues(t, tracesPerFrame, fold)
	for trace := 0; trace < tracesPerFrame; trace++ {
		assert.Equal(t, traces[trace], readTraces[trace])
	}
	assert.Equal(t, headers, readHeaders)

	gotFold, err := c.Mapper.Fold(1)
	require.NoError(t, err)
	assert.EqualValues(t, tracesPerFrame, gotFold)
}

func TestWriteSparseFrame(t *testing.T) {
	// scenario 3 of spec.md §8: frame 5 with 3 live traces.
	tracesPerFrame, samplesPerTrace := 64, 4
	c := newTestCodec(t, tracesPerFrame, samplesPerTrace, 10, compressor.Float32Codec{})

	fold := int32(3)
	traces := make([][]float32, fold)
	headers := make([]byte, int(fold)*8)
	for i := range traces {
		traces[i] = []float32{float32(i), float32(i + 1), float32(i + 2), float32(i + 3)}
	}

	require.NoError(t, c.WriteFrame(5, fold, traces, headers))

	gotFold, err := c.Mapper.Fold(5)
	require.NoError(t, err)
	assert.EqualValues(t, 3, gotFold)

	readTraces := make([][]float32, tracesPerFrame)
	readHeaders := make([]byte, tracesPerFrame*8)
	readFold, err := c.ReadFrame(5, readTraces, readHeaders)
	require.NoError(t, err)
	require.EqualValues(t, 3, readFold)
	for i := 0; i < int(readFold); i++ {
		assert.Equal(t, traces[i], readTraces[i])
	}
}

func TestWriteFrameRejectsReadOnly(t *testing.T) {
	c := newTestCodec(t, 4, 4, 2, compressor.Float32Codec{})
	c.ReadOnly = true
	err := c.WriteFrame(1, 1, [][]float32{{1, 2, 3, 4}}, make([]byte, 8))
	require.Error(t, err)
}

func TestInt16CompressedRoundTrip(t *testing.T) {
	tracesPerFrame, samplesPerTrace := 8, 4
	c := newTestCodec(t, tracesPerFrame, samplesPerTrace, 1, compressor.Int16Codec{})

	traces := make([][]float32, tracesPerFrame)
	headers := make([]byte, tracesPerFrame*8)
	for i := range traces {
		traces[i] = []float32{float32(i) * 10, -float32(i), 0.5, 1000}
	}
	require.NoError(t, c.WriteFrame(1, int32(tracesPerFrame), traces, headers))

	readTraces := make([][]float32, tracesPerFrame)
	readHeaders := make([]byte, tracesPerFrame*8)
	fold, err := c.ReadFrame(1, readTraces, readHeaders)
	require.NoError(t, err)
	require.EqualValues(t, tracesPerFrame, fold)
	for i := range traces {
		for s := range traces[i] {
			assert.InDelta(t, traces[i][s], readTraces[i][s], 1000.0/32767+1e-3)
		}
	}
}
