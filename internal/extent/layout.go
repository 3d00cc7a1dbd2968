package extent

import (
	"fmt"
	"path/filepath"

	"github.com/deploymenttheory/go-javaseis/internal/types"
)

const (
	giB             = 1 << 30
	minExtentCount  = 1
	maxExtentCount  = 256
	bytesPerGiBStep = 2 * giB
)

// Count applies the extent-count heuristic of spec.md §4.1:
//
//	clamp(10 + ceil(totalBytes/2GiB), 1, 256), capped at totalFrames.
//
// override, when > 0, is used verbatim (still capped at totalFrames).
func Count(totalBytes int64, totalFrames int64, override int) int {
	if override > 0 {
		n := override
		if int64(n) > totalFrames {
			n = int(totalFrames)
		}
		return n
	}
	n := 10 + ceilDiv(totalBytes, bytesPerGiBStep)
	if n < minExtentCount {
		n = minExtentCount
	}
	if n > maxExtentCount {
		n = maxExtentCount
	}
	if int64(n) > totalFrames {
		n = int(totalFrames)
	}
	if n < 1 {
		n = 1
	}
	return n
}

func ceilDiv(a, b int64) int {
	if a <= 0 {
		return 0
	}
	return int((a + b - 1) / b)
}

// Size computes the per-extent byte capacity, per spec.md §4.1:
//
//	extentSize = ceil(framesPerDataset/nextents) * tracesPerFrame * bytesPerTraceRecord
func Size(framesPerDataset int64, nextents int, tracesPerFrame int, bytesPerTraceRecord int) int64 {
	if nextents <= 0 {
		nextents = 1
	}
	framesPerExtent := (framesPerDataset + int64(nextents) - 1) / int64(nextents)
	return framesPerExtent * int64(tracesPerFrame) * int64(bytesPerTraceRecord)
}

// Build constructs the ExtentSet for one stream. totalBytes is the full
// stream length (sum of all extents' capacities); extentSize is the
// uniform per-extent size from Size(); secondaries round-robin in order,
// and a single "." entry places every extent under the primary
// directory's own stream name.
func Build(streamName string, totalBytes int64, nextents int, extentSize int64, secondaries []string, datasetPath string) (types.ExtentSet, error) {
	if nextents < 1 {
		return types.ExtentSet{}, types.Precondition("extent.Build", fmt.Errorf("nextents must be >= 1, got %d", nextents))
	}
	if len(secondaries) == 0 {
		secondaries = []string{"."}
	}
	extents := make([]types.Extent, nextents)
	var cursor int64
	for i := 0; i < nextents; i++ {
		size := extentSize
		if i == nextents-1 {
			size = totalBytes - cursor
		}
		if size <= 0 {
			return types.ExtentSet{}, types.Malformed("extent.Build", fmt.Errorf(
				"extent %d computed non-positive size %d (totalBytes=%d, extentSize=%d, nextents=%d)",
				i, size, totalBytes, extentSize, nextents))
		}
		secondary := secondaries[i%len(secondaries)]
		dir, err := ResolveSecondaryDir(secondary, datasetPath)
		if err != nil {
			return types.ExtentSet{}, err
		}
		name := fmt.Sprintf("%s%d", streamName, i)
		extents[i] = types.Extent{
			Name:  name,
			Path:  filepath.Join(dir, name),
			Index: i,
			Start: cursor,
			Size:  size,
		}
		cursor += size
	}
	set := types.ExtentSet{Extents: extents}
	if err := set.Validate(); err != nil {
		return types.ExtentSet{}, err
	}
	return set, nil
}

// Layout implements interfaces.ExtentLayout over a pre-built ExtentSet.
type Layout struct {
	set types.ExtentSet
}

// NewLayout wraps a pre-built ExtentSet.
func NewLayout(set types.ExtentSet) *Layout { return &Layout{set: set} }

// Extents returns the wrapped extent set.
func (l *Layout) Extents() types.ExtentSet { return l.set }

// Resolve returns the extent backing offset and its on-disk path.
func (l *Layout) Resolve(offset int64) (types.Extent, string, error) {
	e, err := l.set.Lookup(offset)
	if err != nil {
		return types.Extent{}, "", err
	}
	return e, e.Path, nil
}
