package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deploymenttheory/go-javaseis/internal/types"
)

func defaultAxes(samples, traces, frames int) []types.Axis {
	return []types.Axis{
		{Length: samples, Unit: "sec", Domain: "time", LogicalDelta: 1, PhysicalDelta: 0.002},
		{Length: traces, Unit: "index", Domain: "space", LogicalOrigin: 1, LogicalDelta: 1},
		{Length: frames, Unit: "index", Domain: "space", LogicalOrigin: 1, LogicalDelta: 1},
	}
}

func TestCreateScenario1(t *testing.T) {
	// spec.md §8 scenario 1: 3-D float32, mapped, axes [128,64,10] (10 frames).
	dir := t.TempDir()
	primary := filepath.Join(dir, "ds.js")

	ds, err := Create(primary, CreateOptions{Axes: defaultAxes(128, 64, 10)})
	require.NoError(t, err)
	defer ds.Close()

	info, err := os.Stat(filepath.Join(primary, "TraceMap"))
	require.NoError(t, err)
	assert.EqualValues(t, 40, info.Size())

	require.NoError(t, ds.Validate())

	headerLen := ds.Descriptor.Schema.Length()
	assert.Greater(t, headerLen, 0)
}

func TestWriteThenReadFrameScenario2(t *testing.T) {
	dir := t.TempDir()
	primary := filepath.Join(dir, "ds.js")
	ds, err := Create(primary, CreateOptions{Axes: defaultAxes(10, 64, 1)})
	require.NoError(t, err)
	defer ds.Close()

	tracesPerFrame, samplesPerTrace := 64, 10
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

	require.NoError(t, ds.WriteFrame(1, int32(tracesPerFrame), traces, headers))

	readTraces := make([][]float32, tracesPerFrame)
	readHeaders := make([]byte, tracesPerFrame*headerLen)
	fold, err := ds.ReadFrame(1, readTraces, readHeaders)
	require.NoError(t, err)
	require.EqualValues(t, tracesPerFrame, fold)
	for trace := 0; trace < tracesPerFrame; trace++ {
		assert.Equal(t, traces[trace], readTraces[trace])
	}
	assert.True(t, ds.Descriptor.HasTraces)
}

func TestSimilarToPropertyEditsScenario5(t *testing.T) {
	dirA := filepath.Join(t.TempDir(), "a.js")
	a, err := Create(dirA, CreateOptions{Axes: defaultAxes(10, 8, 2)})
	require.NoError(t, err)
	defer a.Close()
	baseLen := a.Descriptor.Schema.Length()

	dirB := filepath.Join(t.TempDir(), "b.js")
	b, err := CreateSimilarTo(dirB, a, SimilarToOptions{
		PropertiesAdd: []types.TracePropertyDefinition{{Label: "CDP", Format: types.Int32, ElementCount: 1}},
		PropertiesRm:  []string{types.PropStatic},
	})
	require.NoError(t, err)
	defer b.Close()

	skewstat, ok := a.Descriptor.Schema.ByLabel(types.PropStatic)
	require.True(t, ok)

	assert.Equal(t, baseLen+4-skewstat.Size(), b.Descriptor.Schema.Length())
	assert.Equal(t, baseLen, a.Descriptor.Schema.Length())

	_, stillThere := a.Descriptor.Schema.ByLabel(types.PropStatic)
	assert.True(t, stillThere)
	_, removed := b.Descriptor.Schema.ByLabel(types.PropStatic)
	assert.False(t, removed)
	_, added := b.Descriptor.Schema.ByLabel("CDP")
	assert.True(t, added)
}

func TestCreateRejectsDoubleFormat(t *testing.T) {
	primary := filepath.Join(t.TempDir(), "ds.js")
	_, err := Create(primary, CreateOptions{Axes: defaultAxes(4, 4, 2), SampleFormat: types.SampleDouble})
	require.Error(t, err)
}

func TestCreateRejectsInvalidAxis(t *testing.T) {
	// applyCreateDefaults fills a zero LogicalDelta back to 1, so a zero
	// axis Length is the defaulting-proof way to exercise Axis.Validate.
	primary := filepath.Join(t.TempDir(), "ds.js")
	axes := defaultAxes(4, 4, 2)
	axes[1].Length = 0
	_, err := Create(primary, CreateOptions{Axes: axes})
	require.Error(t, err)
}

func TestCreateAppliesPerAxisDefaults(t *testing.T) {
	primary := filepath.Join(t.TempDir(), "ds.js")
	axes := []types.Axis{
		{Length: 4, Unit: "sec", Domain: "time"},
		{Length: 4, Unit: "index", Domain: "space"},
		{Length: 2, Unit: "index", Domain: "space"},
	}
	ds, err := Create(primary, CreateOptions{Axes: axes})
	require.NoError(t, err)
	defer ds.Close()

	for i, ax := range ds.Descriptor.Axes {
		assert.EqualValuesf(t, 1, ax.LogicalOrigin, "axis %d", i)
		assert.EqualValuesf(t, 1, ax.LogicalDelta, "axis %d", i)
		assert.EqualValuesf(t, 0.0, ax.PhysicalOrigin, "axis %d", i)
		assert.EqualValuesf(t, 1.0, ax.PhysicalDelta, "axis %d", i)
	}
}

func TestCreateSimilarToDataPropertiesRoundTrip(t *testing.T) {
	dirA := filepath.Join(t.TempDir(), "a.js")
	a, err := Create(dirA, CreateOptions{
		Axes:           defaultAxes(4, 4, 2),
		DataProperties: map[string]string{"Client": "Acme", "Area": "GulfOfMexico"},
	})
	require.NoError(t, err)
	defer a.Close()

	got, err := a.Descriptor.DataProperty("Client")
	require.NoError(t, err)
	assert.Equal(t, "Acme", got)

	dirB := filepath.Join(t.TempDir(), "b.js")
	b, err := CreateSimilarTo(dirB, a, SimilarToOptions{
		DataPropertiesAdd: map[string]string{"Processor": "go-javaseis"},
		DataPropertiesRm:  []string{"Area"},
	})
	require.NoError(t, err)
	defer b.Close()

	v, err := b.Descriptor.DataProperty("Client")
	require.NoError(t, err)
	assert.Equal(t, "Acme", v)
	v, err = b.Descriptor.DataProperty("Processor")
	require.NoError(t, err)
	assert.Equal(t, "go-javaseis", v)
	_, err = b.Descriptor.DataProperty("Area")
	require.Error(t, err)

	// the reference dataset's own properties are untouched by the clone.
	_, err = a.Descriptor.DataProperty("Area")
	require.NoError(t, err)
}

func TestCreateSimilarToRejectsDataPropertiesConflict(t *testing.T) {
	dirA := filepath.Join(t.TempDir(), "a.js")
	a, err := Create(dirA, CreateOptions{Axes: defaultAxes(4, 4, 2)})
	require.NoError(t, err)
	defer a.Close()

	dirB := filepath.Join(t.TempDir(), "b.js")
	_, err = CreateSimilarTo(dirB, a, SimilarToOptions{
		DataProperties:    map[string]string{"Client": "Acme"},
		DataPropertiesAdd: map[string]string{"Processor": "go-javaseis"},
	})
	require.Error(t, err)
}

func TestCopyThenRemove(t *testing.T) {
	srcPrimary := filepath.Join(t.TempDir(), "src.js")
	src, err := Create(srcPrimary, CreateOptions{Axes: defaultAxes(4, 4, 2)})
	require.NoError(t, err)

	headerLen := src.Descriptor.Schema.Length()
	traces := [][]float32{{1, 2, 3, 4}}
	headers := make([]byte, headerLen)
	require.NoError(t, src.Accessor().SetScalar(headers, types.PropTraceType, float64(types.TraceLive)))
	require.NoError(t, src.WriteFrame(1, 1, traces, headers))
	require.NoError(t, src.Close())

	dstPrimary := filepath.Join(t.TempDir(), "dst.js")
	require.NoError(t, Copy(srcPrimary, dstPrimary))

	dst, err := Open(dstPrimary, true, nil)
	require.NoError(t, err)
	fold, err := dst.ReadFrame(1, make([][]float32, 4), make([]byte, 4*headerLen))
	require.NoError(t, err)
	assert.EqualValues(t, 1, fold)
	require.NoError(t, dst.Close())

	require.NoError(t, Remove(dstPrimary))
	_, err = os.Stat(dstPrimary)
	assert.True(t, os.IsNotExist(err))
}

func TestEmptyClearsTracesAndStatus(t *testing.T) {
	primary := filepath.Join(t.TempDir(), "ds.js")
	ds, err := Create(primary, CreateOptions{Axes: defaultAxes(4, 4, 2)})
	require.NoError(t, err)
	defer ds.Close()

	headerLen := ds.Descriptor.Schema.Length()
	traces := [][]float32{{1, 2, 3, 4}}
	headers := make([]byte, headerLen)
	require.NoError(t, ds.Accessor().SetScalar(headers, types.PropTraceType, float64(types.TraceLive)))
	require.NoError(t, ds.WriteFrame(1, 1, traces, headers))
	require.True(t, ds.Descriptor.HasTraces)

	require.NoError(t, ds.Empty())
	assert.False(t, ds.Descriptor.HasTraces)

	hasTraces, err := os.ReadFile(filepath.Join(primary, "Status.properties"))
	require.NoError(t, err)
	assert.Contains(t, string(hasTraces), "HasTraces=false")
}
