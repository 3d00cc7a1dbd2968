package rangeio

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-javaseis/internal/types"
	"github.com/deploymenttheory/go-javaseis/pkg/dataset"
)

func newTestDataset(t *testing.T) *dataset.Dataset {
	t.Helper()
	primary := filepath.Join(t.TempDir(), "ds.js")
	// The trace axis is indexed by the stock TRC_NUM property so partial
	// frames can be regularized on read.
	trcNum := &types.TraceProperty{TracePropertyDefinition: types.TracePropertyDefinition{
		Label: types.PropTraceNumber, Format: types.Int32, ElementCount: 1}}
	axes := []types.Axis{
		{Length: 10, Unit: "sec", Domain: "time", LogicalDelta: 1},
		{Length: 8, Unit: "index", Domain: "space", LogicalOrigin: 1, LogicalDelta: 1, Property: trcNum},
		{Length: 3, Unit: "index", Domain: "space", LogicalOrigin: 1, LogicalDelta: 1},
	}
	ds, err := dataset.Create(primary, dataset.CreateOptions{Axes: axes})
	require.NoError(t, err)
	t.Cleanup(func() { _ = ds.Close() })
	return ds
}

func writeFullFrame(t *testing.T, ds *dataset.Dataset, frame int64) {
	t.Helper()
	tracesPerFrame := ds.Descriptor.TracesPerFrame()
	samplesPerTrace := ds.Descriptor.SamplesPerTrace()
	headerLen := ds.Descriptor.Schema.Length()
	traces := make([][]float32, tracesPerFrame)
	headers := make([]byte, tracesPerFrame*headerLen)
	acc := ds.Accessor()
	for trace := 0; trace < tracesPerFrame; trace++ {
		traces[trace] = make([]float32, samplesPerTrace)
		for sample := 0; sample < samplesPerTrace; sample++ {
			traces[trace][sample] = float32(100*trace + sample)
		}
		row := headers[trace*headerLen : (trace+1)*headerLen]
		require.NoError(t, acc.SetScalar(row, types.PropTraceType, float64(types.TraceLive)))
	}
	require.NoError(t, ds.WriteFrame(frame, int32(tracesPerFrame), traces, headers))
}

func TestReadFullFrameFastPath(t *testing.T) {
	ds := newTestDataset(t)
	writeFullFrame(t, ds, 1)

	selectors := []Selector{AllSelector(), AllSelector(), IndexSelector(1)}
	res, err := Read(ds, selectors)
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	require.Len(t, res.Data[0], 8)
	// trace grid index 3, sample grid index 5 -> 100*3+5.
	assert.Equal(t, float32(305), res.Data[0][3][5])
}

func TestReadSelectsSubrange(t *testing.T) {
	ds := newTestDataset(t)
	writeFullFrame(t, ds, 1)

	// sample logical [1,2] -> grid [0,1] (origin defaults to 1), trace
	// logical 2 -> grid index 1 (origin 1, delta 1).
	selectors := []Selector{RangeSelector(1, 2, 1), IndexSelector(2), IndexSelector(1)}
	res, err := Read(ds, selectors)
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	require.Len(t, res.Data[0], 1)
	assert.Equal(t, []float32{100, 101}, res.Data[0][0])
}

func TestWriteThenReadRoundTrip(t *testing.T) {
	ds := newTestDataset(t)

	selectors := []Selector{RangeSelector(1, 4, 1), RangeSelector(1, 3, 1), IndexSelector(2)}
	data := [][][]float32{
		{
			{1, 2, 3, 4},
			{5, 6, 7, 8},
			{9, 10, 11, 12},
		},
	}
	require.NoError(t, Write(ds, selectors, data))

	res, err := Read(ds, selectors)
	require.NoError(t, err)
	assert.Equal(t, data, res.Data)

	fullRead, err := Read(ds, []Selector{AllSelector(), AllSelector(), IndexSelector(2)})
	require.NoError(t, err)
	// trace logical 8 (grid index 7) was never written, stays dead/zero.
	assert.Equal(t, make([]float32, 10), fullRead.Data[0][7])
}
