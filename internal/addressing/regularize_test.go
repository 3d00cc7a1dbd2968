package addressing

import (
	"testing"

	"github.com/deploymenttheory/go-javaseis/internal/header"
	"github.com/deploymenttheory/go-javaseis/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *types.HeaderSchema {
	s := types.NewHeaderSchema()
	s.Add(types.TracePropertyDefinition{Label: types.PropTraceType, Format: types.Int32, ElementCount: 1})
	s.Add(types.TracePropertyDefinition{Label: "TRACE_NO", Format: types.Int32, ElementCount: 1})
	return s
}

func buildFrame(n, samples int) ([][]float32, []byte, *types.HeaderSchema) {
	schema := testSchema()
	traces := make([][]float32, n)
	for i := range traces {
		traces[i] = make([]float32, samples)
	}
	headers := make([]byte, n*schema.Length())
	return traces, headers, schema
}

func TestLeftJustifyMovesLiveToFront(t *testing.T) {
	n, samples := 8, 4
	traces, headers, schema := buildFrame(n, samples)
	acc := header.New(schema, types.LittleEndian)

	liveCols := []int{1, 3, 6}
	for _, c := range liveCols {
		row := headers[c*schema.Length() : (c+1)*schema.Length()]
		require.NoError(t, acc.SetScalar(row, types.PropTraceType, float64(types.TraceLive)))
		require.NoError(t, acc.SetScalar(row, "TRACE_NO", float64(c+1)))
		for s := range traces[c] {
			traces[c][s] = float32(100*c + s)
		}
	}
	for i := 0; i < n; i++ {
		if i != 1 && i != 3 && i != 6 {
			row := headers[i*schema.Length() : (i+1)*schema.Length()]
			require.NoError(t, acc.SetScalar(row, types.PropTraceType, float64(types.TraceDead)))
		}
	}

	fold, err := LeftJustify(traces, headers, schema.Length(), acc)
	require.NoError(t, err)
	assert.EqualValues(t, 3, fold)

	for i := 0; i < int(fold); i++ {
		row := headers[i*schema.Length() : (i+1)*schema.Length()]
		tt, err := acc.GetScalar(row, types.PropTraceType)
		require.NoError(t, err)
		assert.Equal(t, float64(types.TraceLive), tt)
	}
	// relative order preserved: TRACE_NO values should be 2,4,7 in that order.
	var traceNos []float64
	for i := 0; i < int(fold); i++ {
		row := headers[i*schema.Length() : (i+1)*schema.Length()]
		v, err := acc.GetScalar(row, "TRACE_NO")
		require.NoError(t, err)
		traceNos = append(traceNos, v)
	}
	assert.Equal(t, []float64{2, 4, 7}, traceNos)
}

func TestLeftJustifyNoOpWhenFull(t *testing.T) {
	n, samples := 4, 2
	traces, headers, schema := buildFrame(n, samples)
	acc := header.New(schema, types.LittleEndian)
	for i := 0; i < n; i++ {
		row := headers[i*schema.Length() : (i+1)*schema.Length()]
		require.NoError(t, acc.SetScalar(row, types.PropTraceType, float64(types.TraceLive)))
		require.NoError(t, acc.SetScalar(row, "TRACE_NO", float64(i+1)))
	}
	before := append([]byte{}, headers...)
	fold, err := LeftJustify(traces, headers, schema.Length(), acc)
	require.NoError(t, err)
	assert.EqualValues(t, n, fold)
	assert.Equal(t, before, headers)
}

func TestRegularizeScenario3(t *testing.T) {
	// spec.md §8 scenario 3: fold 3 at logical trace indices 1, 17, 33 out
	// of a 64-trace frame.
	n, samples := 64, 2
	traces, headers, schema := buildFrame(n, samples)
	acc := header.New(schema, types.LittleEndian)

	dest := []int64{1, 17, 33}
	for i, d := range dest {
		row := headers[i*schema.Length() : (i+1)*schema.Length()]
		require.NoError(t, acc.SetScalar(row, types.PropTraceType, float64(types.TraceLive)))
		require.NoError(t, acc.SetScalar(row, "TRACE_NO", float64(d)))
		for s := range traces[i] {
			traces[i][s] = float32(d*1000 + int64(s))
		}
	}

	traceAxis := types.Axis{Length: n, LogicalOrigin: 1, LogicalDelta: 1}
	require.NoError(t, Regularize(traces, headers, schema.Length(), acc, traceAxis, "TRACE_NO", 3))

	for _, d := range dest {
		col := int(d - 1)
		row := headers[col*schema.Length() : (col+1)*schema.Length()]
		tt, err := acc.GetScalar(row, types.PropTraceType)
		require.NoError(t, err)
		assert.Equal(t, float64(types.TraceLive), tt)
		assert.Equal(t, float32(d*1000), traces[col][0])
	}

	liveSet := map[int64]bool{1: true, 17: true, 33: true}
	for c := 0; c < n; c++ {
		if liveSet[int64(c+1)] {
			continue
		}
		row := headers[c*schema.Length() : (c+1)*schema.Length()]
		tt, err := acc.GetScalar(row, types.PropTraceType)
		require.NoError(t, err)
		assert.Equal(t, float64(types.TraceDead), tt)
		traceNo, err := acc.GetScalar(row, "TRACE_NO")
		require.NoError(t, err)
		assert.Equal(t, float64(c+1), traceNo)
		for _, v := range traces[c] {
			assert.Equal(t, float32(0), v)
		}
	}
}

func TestRegularizeThenLeftJustifyThenRegularizeIsIdempotent(t *testing.T) {
	n, samples := 16, 1
	traces, headers, schema := buildFrame(n, samples)
	acc := header.New(schema, types.LittleEndian)
	dest := []int64{2, 9}
	for i, d := range dest {
		row := headers[i*schema.Length() : (i+1)*schema.Length()]
		require.NoError(t, acc.SetScalar(row, types.PropTraceType, float64(types.TraceLive)))
		require.NoError(t, acc.SetScalar(row, "TRACE_NO", float64(d)))
	}
	traceAxis := types.Axis{Length: n, LogicalOrigin: 1, LogicalDelta: 1}
	require.NoError(t, Regularize(traces, headers, schema.Length(), acc, traceAxis, "TRACE_NO", 2))
	firstPass := append([]byte{}, headers...)

	fold, err := LeftJustify(traces, headers, schema.Length(), acc)
	require.NoError(t, err)
	require.NoError(t, Regularize(traces, headers, schema.Length(), acc, traceAxis, "TRACE_NO", fold))

	assert.Equal(t, firstPass, headers)
}
