// Package interfaces declares the contracts each storage-engine component
// exposes to its neighbors, so implementations in internal/extent,
// internal/tracemap, internal/compressor, internal/header, internal/frame,
// internal/addressing and internal/metadata can be wired together, mocked
// in tests, and swapped without their callers knowing the concrete type.
package interfaces

import "github.com/deploymenttheory/go-javaseis/internal/types"

// ExtentLayout resolves byte offsets within one logical stream (all trace
// data, or all header data) to the extent file that backs them. spec.md
// §4.1.
type ExtentLayout interface {
	// Extents returns the ordered extent set for this stream.
	Extents() types.ExtentSet
	// Resolve returns the extent backing byte offset and the path to its
	// backing file on disk.
	Resolve(offset int64) (types.Extent, string, error)
}

// TraceMapper is the fold/empty-frame discipline for mapped datasets.
// spec.md §4.2.
type TraceMapper interface {
	// Fold returns the live-trace count for the given 1-based frame
	// index. Unmapped datasets always return TracesPerFrame.
	Fold(frame int64) (int32, error)
	// SetFold updates the live-trace count for frame. Unmapped datasets
	// ignore the call.
	SetFold(frame int64, fold int32) error
	// Close releases any open file handle.
	Close() error
}

// TraceCompressor encodes/decodes a frame of float32 samples to/from its
// on-disk representation. spec.md §4.3.
type TraceCompressor interface {
	// Format reports the on-disk sample format this compressor handles.
	Format() types.SampleFormat
	// RecordSize returns the on-disk byte size of one trace's sample
	// record (header prefix included, where applicable).
	RecordSize(samplesPerTrace int) int
	// Encode writes fold traces of samplesPerTrace float32 samples each
	// (row-major, trace-major in src) into dst, which must be sized
	// fold*RecordSize(samplesPerTrace).
	Encode(dst []byte, src [][]float32) error
	// Decode reads fold traces out of src into dst, each a
	// samplesPerTrace-length float32 slice.
	Decode(dst [][]float32, src []byte) error
	// AllocFrameBuffer returns a zeroed byte buffer sized for fold traces
	// of samplesPerTrace samples each in this format.
	AllocFrameBuffer(fold int, samplesPerTrace int) []byte
}

// HeaderAccessor reads and writes typed fields inside a header record
// buffer at the offsets declared by a types.HeaderSchema. spec.md §4.4.
type HeaderAccessor interface {
	Schema() *types.HeaderSchema
	GetScalar(record []byte, label string) (float64, error)
	SetScalar(record []byte, label string, v float64) error
	GetVector(record []byte, label string) ([]float64, error)
	SetVector(record []byte, label string, v []float64) error
	GetString(record []byte, label string) (string, error)
	SetString(record []byte, label string, v string) error
}

// FrameCodec reads and writes one frame (traces + headers) at a given
// logical frame index. spec.md §4.5.
type FrameCodec interface {
	// ReadFrame fills traceBuf/headerBuf (each sized for TracesPerFrame
	// columns) with the frame's live traces, left-justified, and returns
	// the fold. A fold of 0 means the frame is empty; buffer contents
	// beyond what the caller supplied are left untouched.
	ReadFrame(frame int64, traceBuf [][]float32, headerBuf []byte) (int32, error)
	// WriteFrame writes the first fold columns of traceBuf/headerBuf
	// (assumed left-justified) as frame's live traces.
	WriteFrame(frame int64, fold int32, traceBuf [][]float32, headerBuf []byte) error
}

// MetadataStore is the out-of-scope XML/properties sidecar collaborator:
// spec.md §1 places the XML reader/writer outside this spec, to be
// described only at its interface.
type MetadataStore interface {
	// Read parses every sidecar file under primary and returns the
	// resulting descriptor. Status.properties may be absent (legacy
	// compatibility, spec.md §7): HasTraces defaults to false.
	Read(primary string) (*types.Descriptor, error)
	// Write emits every sidecar file under primary from d.
	Write(primary string, d *types.Descriptor) error
	// WriteStatus rewrites only Status.properties.
	WriteStatus(primary string, hasTraces bool) error
}

// PropertyDictionary translates axis/property labels between this
// format's local vocabulary and the parent processing system's dialect.
// spec.md §1, §9 ("model as an injected lookup table, not a global").
type PropertyDictionary interface {
	// ToLocal maps a parent-system label to this format's local label. If
	// label is unknown to the dictionary, it is returned unchanged.
	ToLocal(label string) string
	// ToForeign maps a local label to the parent-system's canonical
	// label. If label is unknown to the dictionary, it is returned
	// unchanged.
	ToForeign(label string) string
}
