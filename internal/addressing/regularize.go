package addressing

import (
	"fmt"

	"github.com/deploymenttheory/go-javaseis/internal/header"
	"github.com/deploymenttheory/go-javaseis/internal/types"
)

// LeftJustify moves every live trace in traces/headers leftward (stable,
// preserving relative order) and pushes dead traces to the right end,
// swapping the corresponding header rows. It is a no-op when the fold
// equals the frame width. spec.md §4.6.
func LeftJustify(traces [][]float32, headers []byte, headerLen int, acc *header.Accessor) (int32, error) {
	n := len(traces)
	if headerLen*n != len(headers) {
		return 0, types.Precondition("addressing.LeftJustify", fmt.Errorf(
			"header buffer length %d does not match %d traces of %d bytes", len(headers), n, headerLen))
	}

	order := make([]int, 0, n)
	var deadOrder []int
	for i := 0; i < n; i++ {
		row := headers[i*headerLen : (i+1)*headerLen]
		tt, err := acc.GetScalar(row, types.PropTraceType)
		if err != nil {
			return 0, err
		}
		if types.TraceType(int32(tt)) == types.TraceDead {
			deadOrder = append(deadOrder, i)
		} else {
			order = append(order, i)
		}
	}
	fold := int32(len(order))
	if int(fold) == n {
		return fold, nil
	}
	order = append(order, deadOrder...)

	newTraces := make([][]float32, n)
	newHeaders := make([]byte, len(headers))
	for newPos, oldPos := range order {
		newTraces[newPos] = traces[oldPos]
		copy(newHeaders[newPos*headerLen:(newPos+1)*headerLen], headers[oldPos*headerLen:(oldPos+1)*headerLen])
	}
	copy(traces, newTraces)
	copy(headers, newHeaders)
	return fold, nil
}

// Regularize is the inverse of LeftJustify against an indexing property
// (default: the trace-axis property). It reads a left-justified buffer
// (fold live traces in columns [0,fold)) and produces a buffer where
// every live trace sits at the column its property value declares;
// unfilled columns are set to {axis-prop: column, trace-type: dead} with
// a zeroed trace body. spec.md §4.6.
//
// Unlike the in-place backward-iteration algorithm spec.md describes (a
// single destination can only be safely overwritten after its occupant
// has been relocated), this builds the result into a fresh destination
// buffer in one forward pass, which sidesteps the overwrite hazard
// entirely and needs no particular iteration order.
func Regularize(traces [][]float32, headers []byte, headerLen int, acc *header.Accessor, traceAxis types.Axis, property string, fold int32) error {
	n := len(traces)
	if headerLen*n != len(headers) {
		return types.Precondition("addressing.Regularize", fmt.Errorf(
			"header buffer length %d does not match %d traces of %d bytes", len(headers), n, headerLen))
	}
	label := property
	if label == "" {
		if traceAxis.Property == nil {
			return types.Precondition("addressing.Regularize", fmt.Errorf("no indexing property given and trace axis has none"))
		}
		label = traceAxis.Property.Label
	}
	if _, ok := acc.Schema().ByLabel(label); !ok {
		return types.Precondition("addressing.Regularize", fmt.Errorf("unknown indexing property %q", label))
	}

	newTraces := make([][]float32, n)
	newHeaders := make([]byte, len(headers))
	mask := make([]bool, n)

	for i := 0; i < int(fold); i++ {
		row := headers[i*headerLen : (i+1)*headerLen]
		pval, err := acc.GetInt64(row, label)
		if err != nil {
			return err
		}
		delta := pval - traceAxis.LogicalOrigin
		if traceAxis.LogicalDelta == 0 || delta%traceAxis.LogicalDelta != 0 {
			return types.Precondition("addressing.Regularize", fmt.Errorf(
				"trace %d property %q value %d is not aligned to origin %d / delta %d",
				i, label, pval, traceAxis.LogicalOrigin, traceAxis.LogicalDelta))
		}
		c := delta/traceAxis.LogicalDelta + 1
		if c < 1 || c > int64(n) {
			return types.Precondition("addressing.Regularize", fmt.Errorf(
				"trace %d destination column %d is outside [1,%d]", i, c, n))
		}
		if mask[c-1] {
			return types.Malformed("addressing.Regularize", fmt.Errorf(
				"two live traces both target destination column %d", c))
		}
		mask[c-1] = true
		newTraces[c-1] = traces[i]
		copy(newHeaders[int(c-1)*headerLen:int(c)*headerLen], row)
	}

	samplesPerTrace := 0
	for i := 0; i < int(fold); i++ {
		if traces[i] != nil {
			samplesPerTrace = len(traces[i])
			break
		}
	}
	for c := 0; c < n; c++ {
		if mask[c] {
			continue
		}
		newTraces[c] = make([]float32, samplesPerTrace)
		row := newHeaders[c*headerLen : (c+1)*headerLen]
		if err := acc.SetInt64(row, label, int64(c+1)); err != nil {
			return err
		}
		if err := acc.SetScalar(row, types.PropTraceType, float64(types.TraceDead)); err != nil {
			return err
		}
	}

	copy(traces, newTraces)
	copy(headers, newHeaders)
	return nil
}
