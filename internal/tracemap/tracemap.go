// Package tracemap implements the on-disk fold map: one int32 live-trace
// count per frame, lazily paged a volume at a time. spec.md §4.2.
package tracemap

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/deploymenttheory/go-javaseis/internal/types"
)

// FileName is the TraceMap sidecar's fixed name under the primary
// directory. spec.md §6.
const FileName = "TraceMap"

const entrySize = 4 // int32

// TraceMap is the single-slot volume cache over the on-disk fold array.
// spec.md §4.2, §9 ("implement as a single-slot cache").
type TraceMap struct {
	path            string
	mapped          bool
	tracesPerFrame  int32
	framesPerVolume int64
	totalFrames     int64
	readOnly        bool

	file *os.File

	cachedVolume int64 // 1-based; 0 means "none cached"
	cache        []int32
}

// Open opens an existing TraceMap file for a dataset; it does not create
// one (Create writes the file). For unmapped datasets the file is never touched; Fold always
// returns tracesPerFrame.
func Open(primary string, mapped bool, tracesPerFrame int32, framesPerVolume, totalFrames int64, readOnly bool) (*TraceMap, error) {
	tm := &TraceMap{
		path:            primary + string(os.PathSeparator) + FileName,
		mapped:          mapped,
		tracesPerFrame:  tracesPerFrame,
		framesPerVolume: framesPerVolume,
		totalFrames:     totalFrames,
		readOnly:        readOnly,
	}
	if !mapped {
		return tm, nil
	}
	flag := os.O_RDWR
	if readOnly {
		flag = os.O_RDONLY
	}
	f, err := os.OpenFile(tm.path, flag, 0o644)
	if err != nil {
		return nil, types.IOFail("tracemap.Open", err)
	}
	tm.file = f
	return tm, nil
}

// Create writes a fresh all-zero TraceMap file of totalFrames entries
// under primary. spec.md §4.7 "Open for write (new)" step 4.
func Create(primary string, totalFrames int64) error {
	path := primary + string(os.PathSeparator) + FileName
	f, err := os.Create(path)
	if err != nil {
		return types.IOFail("tracemap.Create", err)
	}
	defer f.Close()
	if err := f.Truncate(totalFrames * entrySize); err != nil {
		return types.IOFail("tracemap.Create", err)
	}
	return nil
}

// volumeOf returns the 1-based volume index and 1-based position within
// it for a 1-based frame index. spec.md §4.2.
func (tm *TraceMap) volumeOf(frame int64) (volume, pos int64) {
	volume = (frame-1)/tm.framesPerVolume + 1
	pos = frame - (volume-1)*tm.framesPerVolume
	return
}

// Fold returns the live-trace count for frame (1-based).
func (tm *TraceMap) Fold(frame int64) (int32, error) {
	if !tm.mapped {
		return tm.tracesPerFrame, nil
	}
	if frame < 1 || frame > tm.totalFrames {
		return 0, types.Precondition("TraceMap.Fold", fmt.Errorf("frame %d out of range [1,%d]", frame, tm.totalFrames))
	}
	volume, pos := tm.volumeOf(frame)
	if err := tm.ensureCached(volume); err != nil {
		return 0, err
	}
	return tm.cache[pos-1], nil
}

// SetFold updates frame's live-trace count. Unmapped datasets ignore the
// call.
func (tm *TraceMap) SetFold(frame int64, fold int32) error {
	if !tm.mapped {
		return nil
	}
	if tm.readOnly {
		return types.Precondition("TraceMap.SetFold", fmt.Errorf("trace map is read-only"))
	}
	if frame < 1 || frame > tm.totalFrames {
		return types.Precondition("TraceMap.SetFold", fmt.Errorf("frame %d out of range [1,%d]", frame, tm.totalFrames))
	}
	buf := make([]byte, entrySize)
	binary.LittleEndian.PutUint32(buf, uint32(fold))
	offset := (frame - 1) * entrySize
	if _, err := tm.file.WriteAt(buf, offset); err != nil {
		return types.IOFail("TraceMap.SetFold", err)
	}
	// Keep the in-memory cache coherent if this frame's volume is loaded.
	volume, pos := tm.volumeOf(frame)
	if tm.cachedVolume == volume {
		tm.cache[pos-1] = fold
	}
	return nil
}

// ensureCached pages in volume if it is not already the cached one.
func (tm *TraceMap) ensureCached(volume int64) error {
	if tm.cachedVolume == volume && tm.cache != nil {
		return nil
	}
	buf := make([]byte, tm.framesPerVolume*entrySize)
	offset := (volume - 1) * tm.framesPerVolume * entrySize
	n, err := tm.file.ReadAt(buf, offset)
	if err != nil && n != len(buf) {
		return types.IOFail("TraceMap.ensureCached", err)
	}
	entries := make([]int32, tm.framesPerVolume)
	for i := range entries {
		entries[i] = int32(binary.LittleEndian.Uint32(buf[i*entrySize : i*entrySize+entrySize]))
	}
	tm.cache = entries
	tm.cachedVolume = volume
	return nil
}

// Close releases the underlying file handle.
func (tm *TraceMap) Close() error {
	if tm.file == nil {
		return nil
	}
	err := tm.file.Close()
	tm.file = nil
	if err != nil {
		return types.IOFail("TraceMap.Close", err)
	}
	return nil
}
