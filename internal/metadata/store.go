// Package metadata implements the out-of-scope XML/properties sidecar
// collaborator spec.md §1 describes only at its interface.
package metadata

import (
	"path/filepath"

	"github.com/deploymenttheory/go-javaseis/internal/compressor"
	"github.com/deploymenttheory/go-javaseis/internal/dictionary"
	"github.com/deploymenttheory/go-javaseis/internal/extent"
	"github.com/deploymenttheory/go-javaseis/internal/interfaces"
	"github.com/deploymenttheory/go-javaseis/internal/types"
)

// File names of the sidecar documents living under a dataset's primary
// directory. spec.md §6.
const (
	FilePropertiesFile = "FileProperties.xml"
	TraceFileXML        = "TraceFile.xml"
	TraceHeadersXML     = "TraceHeaders.xml"
)

// Store implements interfaces.MetadataStore over the on-disk sidecar
// documents of a single dataset's primary directory. It owns no trace
// or header bytes; internal/extent and internal/tracemap own those.
type Store struct {
	Dictionary interfaces.PropertyDictionary
}

// NewStore returns a Store using dict for axis-label translation, or
// dictionary.Identity() if dict is nil.
func NewStore(dict interfaces.PropertyDictionary) *Store {
	if dict == nil {
		dict = dictionary.Identity()
	}
	return &Store{Dictionary: dict}
}

// Read loads a Descriptor from primary's sidecar documents. spec.md §4.7
// "Open for read".
func (s *Store) Read(primary string) (*types.Descriptor, error) {
	fpRoot, err := ReadDocument(filepath.Join(primary, FilePropertiesFile))
	if err != nil {
		return nil, err
	}
	d, err := ParseFileProperties(fpRoot, s.Dictionary)
	if err != nil {
		return nil, err
	}

	_, traceInfo, err := ReadExtentManager(filepath.Join(primary, TraceFileXML), primary)
	if err != nil {
		return nil, err
	}
	d.NExtents = traceInfo.NExtents

	// VirtualFolders.xml is the canonical source of the dataset's
	// declared secondary roots (spec.md §6); TraceFile.xml's
	// VFIO_EXTFILE-N entries are the per-extent round-robin assignment
	// derived from that same list, not a second source of truth.
	secondaries, err := ReadVirtualFolders(filepath.Join(primary, VirtualFoldersFile))
	if err != nil {
		return nil, err
	}
	d.Secondaries = secondaries

	name, err := ReadNameProperties(filepath.Join(primary, NamePropertiesFile))
	if err != nil {
		return nil, err
	}
	d.DescriptiveName = name

	hasTraces, err := ReadStatusProperties(filepath.Join(primary, StatusPropertiesFile))
	if err != nil {
		return nil, err
	}
	d.HasTraces = hasTraces

	return d, nil
}

// Write persists d's sidecar documents under primary, sizing the two
// extent managers from d's axes, schema and sample format. spec.md §4.1,
// §4.6 "Create".
func (s *Store) Write(primary string, d *types.Descriptor) error {
	comp, err := compressor.For(d.SampleFmt)
	if err != nil {
		return err
	}

	tracesPerFrame := d.TracesPerFrame()
	totalFrames := d.TotalFrames()
	recordSize := comp.RecordSize(d.SamplesPerTrace())
	headerLen := d.Schema.Length()

	secondaries := d.Secondaries
	if len(secondaries) == 0 {
		secondaries = []string{"."}
	}

	nextents := extent.Count(totalFrames*int64(tracesPerFrame)*int64(recordSize), totalFrames, d.NExtents)

	traceExtentSize := extent.Size(totalFrames, nextents, tracesPerFrame, recordSize)
	totalTraceBytes := totalFrames * int64(tracesPerFrame) * int64(recordSize)
	if err := WriteExtentManager(filepath.Join(primary, TraceFileXML), ExtentManagerInfo{
		StreamName:  "TraceFile",
		ExtentSize:  traceExtentSize,
		MaxFileSize: totalTraceBytes,
		NExtents:    nextents,
		Secondaries: secondaries,
	}); err != nil {
		return err
	}

	headerExtentSize := extent.Size(totalFrames, nextents, tracesPerFrame, headerLen)
	totalHeaderBytes := totalFrames * int64(tracesPerFrame) * int64(headerLen)
	if err := WriteExtentManager(filepath.Join(primary, TraceHeadersXML), ExtentManagerInfo{
		StreamName:  "TraceHeaders",
		ExtentSize:  headerExtentSize,
		MaxFileSize: totalHeaderBytes,
		NExtents:    nextents,
		Secondaries: secondaries,
	}); err != nil {
		return err
	}

	if err := WriteVirtualFolders(filepath.Join(primary, VirtualFoldersFile), secondaries); err != nil {
		return err
	}

	fpRoot := BuildFileProperties(d, s.Dictionary)
	if err := WriteDocument(filepath.Join(primary, FilePropertiesFile), fpRoot); err != nil {
		return err
	}

	if err := WriteNameProperties(filepath.Join(primary, NamePropertiesFile), d.DescriptiveName); err != nil {
		return err
	}

	return WriteStatusProperties(filepath.Join(primary, StatusPropertiesFile), d.HasTraces)
}

// WriteStatus updates Status.properties only, without touching any
// other sidecar. Called after the first successful frame write converts
// a dataset from empty to non-empty. spec.md §7.
func (s *Store) WriteStatus(primary string, hasTraces bool) error {
	return WriteStatusProperties(filepath.Join(primary, StatusPropertiesFile), hasTraces)
}
