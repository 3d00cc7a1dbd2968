package types

import "fmt"

// Extent describes one contiguous file carrying a slice of a dataset's
// trace or header byte stream. spec.md §3.
type Extent struct {
	Name  string
	Path  string
	Index int
	Start int64
	Size  int64
}

// ExtentSet is the ordered collection of extents for one stream (trace
// data or header data). Extent i covers byte range
// [extents[i].Start, extents[i].Start+extents[i].Size).
type ExtentSet struct {
	Extents []Extent
}

// TotalSize returns the sum of every extent's size.
func (s ExtentSet) TotalSize() int64 {
	var total int64
	for _, e := range s.Extents {
		total += e.Size
	}
	return total
}

// Lookup resolves a byte offset in the stream to its backing extent.
// Rests on the uniform-size invariant of spec.md §4.1: every extent but
// possibly the last has the same size as extents[0].
func (s ExtentSet) Lookup(offset int64) (Extent, error) {
	if len(s.Extents) == 0 {
		return Extent{}, Malformed("ExtentSet.Lookup", fmt.Errorf("empty extent set"))
	}
	unit := s.Extents[0].Size
	if unit <= 0 {
		return Extent{}, Malformed("ExtentSet.Lookup", fmt.Errorf("invalid extent size %d", unit))
	}
	idx := int(offset / unit)
	if idx < 0 || idx >= len(s.Extents) {
		return Extent{}, IOFail("ExtentSet.Lookup", fmt.Errorf(
			"offset %d (extent index %d) is outside extent set of length %d", offset, idx, len(s.Extents)))
	}
	return s.Extents[idx], nil
}

// Validate checks the extent-coverage invariant of spec.md §3/§8: extents
// cover [0, TotalSize) contiguously in index order, and every extent but
// possibly the last shares the same size.
func (s ExtentSet) Validate() error {
	if len(s.Extents) == 0 {
		return Malformed("ExtentSet.Validate", fmt.Errorf("empty extent set"))
	}
	unit := s.Extents[0].Size
	var cursor int64
	for i, e := range s.Extents {
		if e.Index != i {
			return Malformed("ExtentSet.Validate", fmt.Errorf("extent %d has index %d", i, e.Index))
		}
		if e.Start != cursor {
			return Malformed("ExtentSet.Validate", fmt.Errorf(
				"extent %d starts at %d, want %d", i, e.Start, cursor))
		}
		if i < len(s.Extents)-1 && e.Size != unit {
			return Malformed("ExtentSet.Validate", fmt.Errorf(
				"extent %d has size %d, want uniform size %d", i, e.Size, unit))
		}
		if e.Size <= 0 {
			return Malformed("ExtentSet.Validate", fmt.Errorf("extent %d has non-positive size %d", i, e.Size))
		}
		cursor += e.Size
	}
	return nil
}
