// Package rangeio implements bulk rectangular-subgrid reads and writes
// over an open dataset, composing the frame codec and addressing
// packages. spec.md §4.8.
package rangeio

import (
	"fmt"

	"github.com/deploymenttheory/go-javaseis/internal/addressing"
	"github.com/deploymenttheory/go-javaseis/internal/types"
	"github.com/deploymenttheory/go-javaseis/pkg/dataset"
)

// Selector picks one axis's coordinates in the user-facing logical
// system: either every grid position (All), or an explicit list of
// logical values (a single index, or an arithmetic progression).
// spec.md §4.8.
type Selector struct {
	All    bool
	Values []int64
}

// AllSelector selects every logical position along an axis.
func AllSelector() Selector { return Selector{All: true} }

// IndexSelector selects a single logical position.
func IndexSelector(v int64) Selector { return Selector{Values: []int64{v}} }

// RangeSelector selects the arithmetic progression start, start+step, …
// up to and including stop (or down to it, for a negative step).
func RangeSelector(start, stop, step int64) Selector {
	if step == 0 {
		step = 1
	}
	var vals []int64
	if step > 0 {
		for v := start; v <= stop; v += step {
			vals = append(vals, v)
		}
	} else {
		for v := start; v >= stop; v += step {
			vals = append(vals, v)
		}
	}
	return Selector{Values: vals}
}

// expand resolves sel against ax into parallel logical-value and
// 0-based grid-index slices, converting user coordinates via
// (user-origin)/increment per spec.md §4.8.
func expand(op string, ax types.Axis, sel Selector) (logical []int64, grid []int, err error) {
	if sel.All {
		logical = make([]int64, ax.Length)
		grid = make([]int, ax.Length)
		for i := 0; i < ax.Length; i++ {
			grid[i] = i
			logical[i] = ax.LogicalOrigin + int64(i)*ax.LogicalDelta
		}
		return logical, grid, nil
	}
	for _, v := range sel.Values {
		delta := v - ax.LogicalOrigin
		if ax.LogicalDelta == 0 || delta%ax.LogicalDelta != 0 {
			return nil, nil, types.Precondition(op, fmt.Errorf(
				"logical value %d is not aligned to origin %d / delta %d", v, ax.LogicalOrigin, ax.LogicalDelta))
		}
		g := delta / ax.LogicalDelta
		if g < 0 || g >= int64(ax.Length) {
			return nil, nil, types.Precondition(op, fmt.Errorf(
				"logical value %d is outside axis range [%d,%d]", v, ax.LogicalOrigin, ax.MaxLogical()))
		}
		grid = append(grid, int(g))
		logical = append(logical, v)
	}
	return logical, grid, nil
}

// outerCombinations enumerates every logical address over the outer
// (frame, volume, hypercube) axes selected by selectors, in column-major
// order (frame axis fastest), matching addressing.AddressToLinear's
// convention.
func outerCombinations(axes []types.Axis, selectors []Selector) ([][]int64, error) {
	lists := make([][]int64, len(axes))
	for k, ax := range axes {
		logical, _, err := expand("rangeio.outerCombinations", ax, selectors[k])
		if err != nil {
			return nil, err
		}
		lists[k] = logical
	}
	total := 1
	for _, l := range lists {
		total *= len(l)
	}
	combos := make([][]int64, 0, total)
	idx := make([]int, len(lists))
	for {
		addr := make([]int64, len(lists))
		for k, l := range lists {
			addr[k] = l[idx[k]]
		}
		combos = append(combos, addr)

		k := 0
		for ; k < len(idx); k++ {
			idx[k]++
			if idx[k] < len(lists[k]) {
				break
			}
			idx[k] = 0
		}
		if k == len(idx) {
			break
		}
	}
	return combos, nil
}

// Result holds a range read's selected logical coordinates and data,
// shaped [outer-combination][trace][sample].
type Result struct {
	FrameAddresses [][]int64
	SampleValues   []int64
	TraceValues    []int64
	Data           [][][]float32
}

func loadFullWidth(ds *dataset.Dataset, linear int64) ([][]float32, []byte, int32, error) {
	tracesPerFrame := ds.Descriptor.TracesPerFrame()
	samplesPerTrace := ds.Descriptor.SamplesPerTrace()
	headerLen := ds.Descriptor.Schema.Length()

	traceBuf := make([][]float32, tracesPerFrame)
	for i := range traceBuf {
		traceBuf[i] = make([]float32, samplesPerTrace)
	}
	headerBuf := make([]byte, tracesPerFrame*headerLen)

	fold, err := ds.ReadFrame(linear, traceBuf, headerBuf)
	if err != nil {
		return nil, nil, 0, err
	}
	if fold == int32(tracesPerFrame) || fold == 0 {
		// Full frames are already regularized by construction (spec.md
		// §4.8 fast path); empty frames have nothing to scatter.
		return traceBuf, headerBuf, fold, nil
	}
	if err := addressing.Regularize(traceBuf, headerBuf, headerLen, ds.Accessor(), ds.Descriptor.Axes[1], "", fold); err != nil {
		return nil, nil, 0, err
	}
	return traceBuf, headerBuf, fold, nil
}

// Read performs a rectangular-subgrid range read. selectors must have
// exactly ds.Descriptor.Ndim() entries, ordered [sample, trace, frame,
// (volume), (hypercube)]. spec.md §4.8.
func Read(ds *dataset.Dataset, selectors []Selector) (*Result, error) {
	axes := ds.Descriptor.Axes
	if len(selectors) != len(axes) {
		return nil, types.Precondition("rangeio.Read", fmt.Errorf(
			"expected %d selectors, got %d", len(axes), len(selectors)))
	}

	sampleLogical, sampleGrid, err := expand("rangeio.Read", axes[0], selectors[0])
	if err != nil {
		return nil, err
	}
	traceLogical, traceGrid, err := expand("rangeio.Read", axes[1], selectors[1])
	if err != nil {
		return nil, err
	}
	combos, err := outerCombinations(axes[2:], selectors[2:])
	if err != nil {
		return nil, err
	}

	data := make([][][]float32, len(combos))
	for ci, addr := range combos {
		linear, err := addressing.AddressToLinear(axes[2:], addr)
		if err != nil {
			return nil, err
		}
		traceBuf, _, _, err := loadFullWidth(ds, linear)
		if err != nil {
			return nil, err
		}
		rows := make([][]float32, len(traceGrid))
		for ti, tg := range traceGrid {
			row := make([]float32, len(sampleGrid))
			for si, sg := range sampleGrid {
				if traceBuf[tg] != nil {
					row[si] = traceBuf[tg][sg]
				}
			}
			rows[ti] = row
		}
		data[ci] = rows
	}

	return &Result{
		FrameAddresses: combos,
		SampleValues:   sampleLogical,
		TraceValues:    traceLogical,
		Data:           data,
	}, nil
}

// Write performs a rectangular-subgrid range write. data must be shaped
// [len(combos)][len(traceGrid)][len(sampleGrid)] matching the selectors.
// A write that is partial in samples or traces triggers a read-modify-
// write on the affected frame; the frame is left-justified before being
// handed to the frame codec. spec.md §4.8.
func Write(ds *dataset.Dataset, selectors []Selector, data [][][]float32) error {
	axes := ds.Descriptor.Axes
	if len(selectors) != len(axes) {
		return types.Precondition("rangeio.Write", fmt.Errorf(
			"expected %d selectors, got %d", len(axes), len(selectors)))
	}

	_, sampleGrid, err := expand("rangeio.Write", axes[0], selectors[0])
	if err != nil {
		return err
	}
	_, traceGrid, err := expand("rangeio.Write", axes[1], selectors[1])
	if err != nil {
		return err
	}
	combos, err := outerCombinations(axes[2:], selectors[2:])
	if err != nil {
		return err
	}
	if len(data) != len(combos) {
		return types.Precondition("rangeio.Write", fmt.Errorf(
			"data has %d frame entries, want %d", len(data), len(combos)))
	}

	acc := ds.Accessor()
	traceAxis := axes[1]
	headerLen := ds.Descriptor.Schema.Length()

	for ci, addr := range combos {
		linear, err := addressing.AddressToLinear(axes[2:], addr)
		if err != nil {
			return err
		}
		traceBuf, headerBuf, _, err := loadFullWidth(ds, linear)
		if err != nil {
			return err
		}

		for ti, tg := range traceGrid {
			if ti >= len(data[ci]) {
				return types.Precondition("rangeio.Write", fmt.Errorf(
					"data entry %d has %d traces, want %d", ci, len(data[ci]), len(traceGrid)))
			}
			row := traceBuf[tg]
			for si, sg := range sampleGrid {
				row[sg] = data[ci][ti][si]
			}
			hrow := headerBuf[tg*headerLen : (tg+1)*headerLen]
			if err := acc.SetScalar(hrow, types.PropTraceType, float64(types.TraceLive)); err != nil {
				return err
			}
			if traceAxis.Property != nil {
				if err := acc.SetInt64(hrow, traceAxis.Property.Label, traceAxis.LogicalOrigin+int64(tg)*traceAxis.LogicalDelta); err != nil {
					return err
				}
			}
		}

		fold, err := addressing.LeftJustify(traceBuf, headerBuf, headerLen, acc)
		if err != nil {
			return err
		}
		if err := ds.WriteFrame(linear, fold, traceBuf[:fold], headerBuf[:int(fold)*headerLen]); err != nil {
			return err
		}
	}
	return nil
}
