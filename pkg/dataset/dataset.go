// Package dataset implements the JavaSeis dataset object lifecycle:
// open, create, clone ("similar-to"), copy, move, remove, empty, and the
// per-frame read/write operations that compose the other packages into
// one handle. spec.md §4.7.
package dataset

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/deploymenttheory/go-javaseis/internal/compressor"
	"github.com/deploymenttheory/go-javaseis/internal/dictionary"
	"github.com/deploymenttheory/go-javaseis/internal/extent"
	"github.com/deploymenttheory/go-javaseis/internal/frame"
	"github.com/deploymenttheory/go-javaseis/internal/header"
	"github.com/deploymenttheory/go-javaseis/internal/interfaces"
	"github.com/deploymenttheory/go-javaseis/internal/metadata"
	"github.com/deploymenttheory/go-javaseis/internal/tracemap"
	"github.com/deploymenttheory/go-javaseis/internal/types"
)

// Dataset is an open handle onto one JavaSeis dataset: its parsed
// metadata plus the live extent layouts, trace map and frame codec
// backing it. Not safe for concurrent use by multiple goroutines.
// spec.md §5.
type Dataset struct {
	Primary    string
	Descriptor *types.Descriptor

	store interfaces.MetadataStore
	dict  interfaces.PropertyDictionary

	traceLayout  interfaces.ExtentLayout
	headerLayout interfaces.ExtentLayout
	mapper       interfaces.TraceMapper
	compressor   interfaces.TraceCompressor
	accessor     *header.Accessor
	codec        *frame.Codec

	readOnly bool
}

// CreateOptions supplies the caller-visible knobs of "Open for write
// (new)". Fields left zero take the defaults of spec.md §4.7 step 1.
type CreateOptions struct {
	DescriptiveName string
	Comments        string
	DataType        string

	// Axes must have 3..5 entries: [sample, trace, frame, (volume),
	// (hypercube)]. Axis[1].Property, when set, names the trace-indexing
	// property used by Regularize.
	Axes []types.Axis

	UserProperties []types.TracePropertyDefinition

	SampleFormat types.SampleFormat // zero value defaults to SampleFloat32
	ByteOrder    types.ByteOrder    // zero value defaults to LittleEndian
	Mapped       *bool              // nil defaults to true
	Secondaries  []string           // nil defaults to ["."]
	NExtents     int                // 0 selects the heuristic
	Geometry     *types.Geometry

	// DataProperties holds the dataset's per-dataset custom properties
	// (FileProperties.xml's CustomProperties parset). spec.md §4.7.
	DataProperties map[string]string
}

func applyCreateDefaults(opts CreateOptions) CreateOptions {
	if opts.SampleFormat == 0 {
		opts.SampleFormat = types.SampleFloat32
	}
	if opts.Mapped == nil {
		yes := true
		opts.Mapped = &yes
	}
	if len(opts.Secondaries) == 0 {
		opts.Secondaries = []string{"."}
	}
	// spec.md §4.7 "Open for write (new)" step 1: logical origins/deltas
	// default to 1, physical origins default to 0.0, physical deltas
	// default to 1.0, for every axis. Copied first so this never mutates
	// the caller's (or a source dataset's) backing Axes slice.
	axes := make([]types.Axis, len(opts.Axes))
	copy(axes, opts.Axes)
	for i := range axes {
		if axes[i].LogicalOrigin == 0 {
			axes[i].LogicalOrigin = 1
		}
		if axes[i].LogicalDelta == 0 {
			axes[i].LogicalDelta = 1
		}
		if axes[i].PhysicalDelta == 0 {
			axes[i].PhysicalDelta = 1.0
		}
	}
	opts.Axes = axes
	return opts
}

// Create builds a brand-new dataset at primary, replacing any existing
// directory of the same name, per spec.md §4.7 "Open for write (new)".
func Create(primary string, opts CreateOptions) (*Dataset, error) {
	opts = applyCreateDefaults(opts)
	if len(opts.Axes) < 3 || len(opts.Axes) > 5 {
		return nil, types.Precondition("dataset.Create", fmt.Errorf(
			"dataset dimensionality must be 3..5, got %d axes", len(opts.Axes)))
	}
	// DOUBLE is readable on disk (spec.md "read-only tolerance") but
	// compressor.For accepts it for both read and write construction;
	// only the write path can tell the difference, so it is rejected
	// here rather than in compressor.For.
	if opts.SampleFormat == types.SampleDouble {
		return nil, types.Precondition("dataset.Create", fmt.Errorf(
			"%s is readable-on-disk only in this engine and cannot be selected for a new dataset", opts.SampleFormat))
	}
	for i, ax := range opts.Axes {
		if err := ax.Validate(); err != nil {
			return nil, fmt.Errorf("dataset.Create: axis %d: %w", i, err)
		}
	}

	var axisProps []types.TracePropertyDefinition
	for i, ax := range opts.Axes {
		if i < 2 || ax.Property == nil {
			continue
		}
		axisProps = append(axisProps, ax.Property.TracePropertyDefinition)
	}
	schema := header.Build(opts.UserProperties, axisProps)

	d := &types.Descriptor{
		DescriptiveName: opts.DescriptiveName,
		Comments:        opts.Comments,
		DataType:        opts.DataType,
		Mapped:          *opts.Mapped,
		ByteOrder:       opts.ByteOrder,
		SampleFmt:       opts.SampleFormat,
		Axes:            opts.Axes,
		Schema:          schema,
		Secondaries:     opts.Secondaries,
		NExtents:        opts.NExtents,
		Geometry:        opts.Geometry,
		DataProperties:  opts.DataProperties,
	}

	comp, err := compressor.For(d.SampleFmt)
	if err != nil {
		return nil, err
	}

	stagingSuffix := uuid.NewString()
	staging := primary + ".tmp-" + stagingSuffix
	if err := os.RemoveAll(staging); err != nil {
		return nil, types.IOFail("dataset.Create", err)
	}
	if err := os.MkdirAll(staging, 0o755); err != nil {
		return nil, types.IOFail("dataset.Create", err)
	}

	tracesPerFrame := d.TracesPerFrame()
	totalFrames := d.TotalFrames()
	recordSize := comp.RecordSize(d.SamplesPerTrace())
	headerLen := d.Schema.Length()

	totalTraceBytes := totalFrames * int64(tracesPerFrame) * int64(recordSize)
	totalHeaderBytes := totalFrames * int64(tracesPerFrame) * int64(headerLen)
	nextents := extent.Count(totalTraceBytes, totalFrames, d.NExtents)
	traceExtentSize := extent.Size(totalFrames, nextents, tracesPerFrame, recordSize)
	headerExtentSize := extent.Size(totalFrames, nextents, tracesPerFrame, headerLen)

	traceSet, err := extent.Build("TraceFile", totalTraceBytes, nextents, traceExtentSize, d.Secondaries, staging)
	if err != nil {
		return nil, err
	}
	headerSet, err := extent.Build("TraceHeaders", totalHeaderBytes, nextents, headerExtentSize, d.Secondaries, staging)
	if err != nil {
		return nil, err
	}
	if err := materializeExtents(traceSet); err != nil {
		return nil, err
	}
	if err := materializeExtents(headerSet); err != nil {
		return nil, err
	}

	if err := tracemap.Create(staging, totalFrames); err != nil {
		return nil, err
	}

	store := metadata.NewStore(dictionary.Identity())
	if err := store.Write(staging, d); err != nil {
		return nil, err
	}

	if err := os.RemoveAll(primary); err != nil {
		return nil, types.IOFail("dataset.Create", err)
	}
	if err := os.Rename(staging, primary); err != nil {
		return nil, types.IOFail("dataset.Create", err)
	}

	return openWith(primary, d, store, dictionary.Identity(), false)
}

// materializeExtents creates (or truncates) every extent's backing file
// to its declared size.
func materializeExtents(set types.ExtentSet) error {
	for _, e := range set.Extents {
		if err := os.MkdirAll(filepath.Dir(e.Path), 0o755); err != nil {
			return types.IOFail("dataset.materializeExtents", err)
		}
		f, err := os.Create(e.Path)
		if err != nil {
			return types.IOFail("dataset.materializeExtents", err)
		}
		err = f.Truncate(e.Size)
		closeErr := f.Close()
		if err != nil {
			return types.IOFail("dataset.materializeExtents", err)
		}
		if closeErr != nil {
			return types.IOFail("dataset.materializeExtents", closeErr)
		}
	}
	return nil
}

// Open opens an existing dataset for read or (read-write) update.
// dict translates axis labels between this format's dialect and the
// embedding system's; nil selects the identity dictionary. spec.md §4.7
// "Open for read".
func Open(primary string, readOnly bool, dict interfaces.PropertyDictionary) (*Dataset, error) {
	if dict == nil {
		dict = dictionary.Identity()
	}
	store := metadata.NewStore(dict)
	d, err := store.Read(primary)
	if err != nil {
		return nil, err
	}
	return openWith(primary, d, store, dict, readOnly)
}

func openWith(primary string, d *types.Descriptor, store interfaces.MetadataStore, dict interfaces.PropertyDictionary, readOnly bool) (*Dataset, error) {
	comp, err := compressor.For(d.SampleFmt)
	if err != nil {
		return nil, err
	}

	tracesPerFrame := d.TracesPerFrame()
	totalFrames := d.TotalFrames()
	recordSize := comp.RecordSize(d.SamplesPerTrace())
	headerLen := d.Schema.Length()

	totalTraceBytes := totalFrames * int64(tracesPerFrame) * int64(recordSize)
	totalHeaderBytes := totalFrames * int64(tracesPerFrame) * int64(headerLen)
	secondaries := d.Secondaries
	if len(secondaries) == 0 {
		secondaries = []string{"."}
	}
	nextents := extent.Count(totalTraceBytes, totalFrames, d.NExtents)
	traceExtentSize := extent.Size(totalFrames, nextents, tracesPerFrame, recordSize)
	headerExtentSize := extent.Size(totalFrames, nextents, tracesPerFrame, headerLen)

	traceSet, err := extent.Build("TraceFile", totalTraceBytes, nextents, traceExtentSize, secondaries, primary)
	if err != nil {
		return nil, err
	}
	headerSet, err := extent.Build("TraceHeaders", totalHeaderBytes, nextents, headerExtentSize, secondaries, primary)
	if err != nil {
		return nil, err
	}

	tm, err := tracemap.Open(primary, d.Mapped, int32(tracesPerFrame), d.FramesPerVolume(), totalFrames, readOnly)
	if err != nil {
		return nil, err
	}

	acc := header.New(d.Schema, d.ByteOrder)
	ds := &Dataset{
		Primary:      primary,
		Descriptor:   d,
		store:        store,
		dict:         dict,
		traceLayout:  extent.NewLayout(traceSet),
		headerLayout: extent.NewLayout(headerSet),
		mapper:       tm,
		compressor:   comp,
		accessor:     acc,
		readOnly:     readOnly,
	}
	ds.codec = &frame.Codec{
		TraceLayout:     ds.traceLayout,
		HeaderLayout:    ds.headerLayout,
		Mapper:          ds.mapper,
		Compressor:      ds.compressor,
		TracesPerFrame:  tracesPerFrame,
		SamplesPerTrace: d.SamplesPerTrace(),
		HeaderLength:    headerLen,
		ReadOnly:        readOnly,
	}
	return ds, nil
}

// Accessor returns the header accessor bound to this dataset's schema
// and byte order.
func (ds *Dataset) Accessor() *header.Accessor { return ds.accessor }

// ReadFrame reads one frame's live traces and headers, left-justified.
// spec.md §4.5.
func (ds *Dataset) ReadFrame(frame int64, traceBuf [][]float32, headerBuf []byte) (int32, error) {
	return ds.codec.ReadFrame(frame, traceBuf, headerBuf)
}

// WriteFrame writes one frame's live traces and headers, then flips
// Status.properties to HasTraces=true on the dataset's first write.
// spec.md §4.5, §7.
func (ds *Dataset) WriteFrame(frame int64, fold int32, traceBuf [][]float32, headerBuf []byte) error {
	if ds.readOnly {
		return types.Precondition("Dataset.WriteFrame", fmt.Errorf("dataset %s is read-only", ds.Primary))
	}
	if err := ds.codec.WriteFrame(frame, fold, traceBuf, headerBuf); err != nil {
		return err
	}
	if !ds.Descriptor.HasTraces {
		if err := ds.store.WriteStatus(ds.Primary, true); err != nil {
			return err
		}
		ds.Descriptor.HasTraces = true
	}
	return nil
}

// Close releases the dataset's trace-map file handle.
func (ds *Dataset) Close() error {
	if ds.mapper == nil {
		return nil
	}
	return ds.mapper.Close()
}

// Copy iterates every frame of src in linear order, reading then (if
// fold>0) writing it into a freshly created dataset at dstPrimary.
// spec.md §4.7 "Copy".
func Copy(srcPrimary, dstPrimary string) error {
	src, err := Open(srcPrimary, true, nil)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil {
			log.Printf("dataset.Copy: closing source %s: %v", srcPrimary, cerr)
		}
	}()

	dst, err := Create(dstPrimary, createOptionsFrom(src.Descriptor))
	if err != nil {
		return err
	}
	defer func() {
		if cerr := dst.Close(); cerr != nil {
			log.Printf("dataset.Copy: closing destination %s: %v", dstPrimary, cerr)
		}
	}()

	tracesPerFrame := src.Descriptor.TracesPerFrame()
	samplesPerTrace := src.Descriptor.SamplesPerTrace()
	headerLen := src.Descriptor.Schema.Length()
	totalFrames := src.Descriptor.TotalFrames()

	traceBuf := make([][]float32, tracesPerFrame)
	for i := range traceBuf {
		traceBuf[i] = make([]float32, samplesPerTrace)
	}
	headerBuf := make([]byte, tracesPerFrame*headerLen)

	for f := int64(1); f <= totalFrames; f++ {
		fold, err := src.ReadFrame(f, traceBuf, headerBuf)
		if err != nil {
			return err
		}
		if fold == 0 {
			continue
		}
		if err := dst.WriteFrame(f, fold, traceBuf[:fold], headerBuf[:int(fold)*headerLen]); err != nil {
			return err
		}
	}
	return nil
}

// Move copies srcPrimary to dstPrimary, then removes srcPrimary. spec.md
// §4.7 "Move = copy + remove".
func Move(srcPrimary, dstPrimary string) error {
	if err := Copy(srcPrimary, dstPrimary); err != nil {
		return err
	}
	return Remove(srcPrimary)
}

func createOptionsFrom(d *types.Descriptor) CreateOptions {
	mapped := d.Mapped
	var userProps []types.TracePropertyDefinition
	stock := make(map[string]bool)
	for _, p := range header.StockProperties() {
		stock[p.Label] = true
	}
	axisLabels := make(map[string]bool)
	for _, ax := range d.Axes {
		if ax.Property != nil {
			axisLabels[ax.Property.Label] = true
		}
	}
	for _, p := range d.Schema.Properties() {
		if stock[p.Label] || axisLabels[p.Label] {
			continue
		}
		userProps = append(userProps, p.TracePropertyDefinition)
	}
	dataProps := make(map[string]string, len(d.DataProperties))
	for k, v := range d.DataProperties {
		dataProps[k] = v
	}
	return CreateOptions{
		DescriptiveName: d.DescriptiveName,
		Comments:        d.Comments,
		DataType:        d.DataType,
		Axes:            d.Axes,
		UserProperties:  userProps,
		SampleFormat:    d.SampleFmt,
		ByteOrder:       d.ByteOrder,
		Mapped:          &mapped,
		Secondaries:     d.Secondaries,
		NExtents:        d.NExtents,
		Geometry:        d.Geometry,
		DataProperties:  dataProps,
	}
}

// SimilarToOptions narrows or extends the schema and axes inherited from
// a reference dataset. Properties and PropertiesAdd/PropertiesRm are
// mutually exclusive, as are DataProperties and
// DataPropertiesAdd/DataPropertiesRm — spec.md §9's resolution of the
// similar-to open question, applied identically to data properties per
// spec.md §4.7 "Same rules for data properties".
type SimilarToOptions struct {
	DescriptiveName string
	Axes            []types.Axis // nil inherits the reference's axes

	Properties    []types.TracePropertyDefinition // explicit full replacement
	PropertiesAdd []types.TracePropertyDefinition
	PropertiesRm  []string

	DataProperties    map[string]string // explicit full replacement
	DataPropertiesAdd map[string]string
	DataPropertiesRm  []string

	SampleFormat *types.SampleFormat
	ByteOrder    *types.ByteOrder
	Secondaries  []string
	NExtents     int
}

// CreateSimilarTo opens src for read, inherits its metadata, applies
// overrides, and creates a new dataset at primary. spec.md §4.7 "Open
// for write with similar-to".
func CreateSimilarTo(primary string, src *Dataset, overrides SimilarToOptions) (*Dataset, error) {
	if len(overrides.Properties) > 0 && (len(overrides.PropertiesAdd) > 0 || len(overrides.PropertiesRm) > 0) {
		return nil, types.Precondition("dataset.CreateSimilarTo", fmt.Errorf(
			"properties cannot be combined with properties_add/properties_rm"))
	}
	if len(overrides.DataProperties) > 0 && (len(overrides.DataPropertiesAdd) > 0 || len(overrides.DataPropertiesRm) > 0) {
		return nil, types.Precondition("dataset.CreateSimilarTo", fmt.Errorf(
			"data_properties cannot be combined with data_properties_add/data_properties_rm"))
	}

	opts := createOptionsFrom(src.Descriptor)
	if overrides.DescriptiveName != "" {
		opts.DescriptiveName = overrides.DescriptiveName
	}
	if overrides.Axes != nil {
		opts.Axes = overrides.Axes
	}
	if overrides.SampleFormat != nil {
		opts.SampleFormat = *overrides.SampleFormat
	}
	if overrides.ByteOrder != nil {
		opts.ByteOrder = *overrides.ByteOrder
	}
	if overrides.Secondaries != nil {
		opts.Secondaries = overrides.Secondaries
	}
	if overrides.NExtents != 0 {
		opts.NExtents = overrides.NExtents
	}

	switch {
	case len(overrides.Properties) > 0:
		opts.UserProperties = overrides.Properties
	case len(overrides.PropertiesAdd) > 0 || len(overrides.PropertiesRm) > 0:
		schema := src.Descriptor.Schema.Clone()
		for _, label := range overrides.PropertiesRm {
			schema.Remove(label)
		}
		for _, def := range overrides.PropertiesAdd {
			schema.Add(def)
		}
		var kept []types.TracePropertyDefinition
		stock := make(map[string]bool)
		for _, p := range header.StockProperties() {
			stock[p.Label] = true
		}
		axisLabels := make(map[string]bool)
		for _, ax := range opts.Axes {
			if ax.Property != nil {
				axisLabels[ax.Property.Label] = true
			}
		}
		for _, p := range schema.Properties() {
			if stock[p.Label] || axisLabels[p.Label] {
				continue
			}
			kept = append(kept, p.TracePropertyDefinition)
		}
		opts.UserProperties = kept
	}

	switch {
	case overrides.DataProperties != nil:
		opts.DataProperties = overrides.DataProperties
	case len(overrides.DataPropertiesAdd) > 0 || len(overrides.DataPropertiesRm) > 0:
		merged := make(map[string]string, len(src.Descriptor.DataProperties))
		for k, v := range src.Descriptor.DataProperties {
			merged[k] = v
		}
		for _, label := range overrides.DataPropertiesRm {
			delete(merged, label)
		}
		for k, v := range overrides.DataPropertiesAdd {
			merged[k] = v
		}
		opts.DataProperties = merged
	}

	return Create(primary, opts)
}

// Remove deletes every secondary's extent directory, then the primary
// directory. spec.md §4.7 "Remove".
func Remove(primary string) error {
	store := metadata.NewStore(dictionary.Identity())
	d, err := store.Read(primary)
	if err == nil {
		secondaries := d.Secondaries
		if len(secondaries) == 0 {
			secondaries = []string{"."}
		}
		for _, s := range secondaries {
			if s == "." {
				continue // extents under "." live inside primary itself
			}
			dir, rerr := extent.ResolveSecondaryDir(s, primary)
			if rerr != nil {
				continue
			}
			if rerr := os.RemoveAll(dir); rerr != nil {
				return types.IOFail("dataset.Remove", rerr)
			}
		}
	}
	if err := os.RemoveAll(primary); err != nil {
		return types.IOFail("dataset.Remove", err)
	}
	return nil
}

// Empty deletes this dataset's TraceFile*/TraceHeaders* extent files
// (keeping the XML sidecars), zeroes the trace map, and records
// HasTraces=false. spec.md §4.7 "Empty".
func (ds *Dataset) Empty() error {
	if ds.readOnly {
		return types.Precondition("Dataset.Empty", fmt.Errorf("dataset %s is read-only", ds.Primary))
	}
	for _, set := range []types.ExtentSet{ds.traceLayout.Extents(), ds.headerLayout.Extents()} {
		for _, e := range set.Extents {
			if err := os.Remove(e.Path); err != nil && !os.IsNotExist(err) {
				return types.IOFail("Dataset.Empty", err)
			}
		}
	}
	if err := tracemap.Create(ds.Primary, ds.Descriptor.TotalFrames()); err != nil {
		return err
	}
	// Reopen the map so no volume cached before the reset is served again.
	if err := ds.mapper.Close(); err != nil {
		return err
	}
	d := ds.Descriptor
	tm, err := tracemap.Open(ds.Primary, d.Mapped, int32(d.TracesPerFrame()), d.FramesPerVolume(), d.TotalFrames(), ds.readOnly)
	if err != nil {
		return err
	}
	ds.mapper = tm
	ds.codec.Mapper = tm
	if err := ds.store.WriteStatus(ds.Primary, false); err != nil {
		return err
	}
	ds.Descriptor.HasTraces = false
	return nil
}

// Info is a read-only structural summary of an open dataset, mirroring
// spec.md §8's testable invariants rather than inventing new metrics.
type Info struct {
	DescriptiveName string
	DataType        string
	SampleFormat    string
	ByteOrder       string
	Dimensions      int
	AxisLengths     []int
	TracesPerFrame  int
	SamplesPerTrace int
	TotalFrames     int64
	HeaderLength    int
	NExtents        int
	HasTraces       bool
}

// Info reports the dataset's structural summary for diagnostic and CLI
// use. spec.md §4.7 supplemental "dataset.Info".
func (ds *Dataset) Info() Info {
	d := ds.Descriptor
	lengths := make([]int, len(d.Axes))
	for i, ax := range d.Axes {
		lengths[i] = ax.Length
	}
	return Info{
		DescriptiveName: d.DescriptiveName,
		DataType:        d.DataType,
		SampleFormat:    d.SampleFmt.String(),
		ByteOrder:       d.ByteOrder.String(),
		Dimensions:      d.Ndim(),
		AxisLengths:     lengths,
		TracesPerFrame:  d.TracesPerFrame(),
		SamplesPerTrace: d.SamplesPerTrace(),
		TotalFrames:     d.TotalFrames(),
		HeaderLength:    d.Schema.Length(),
		NExtents:        d.NExtents,
		HasTraces:       d.HasTraces,
	}
}

// Validate walks the dataset's structural invariants: extent coverage
// (spec.md §8 "Extent coverage") and header schema disjointness (spec.md
// §8 "Header disjointness"). It does not touch trace data. spec.md §4.7
// supplemental "dataset.Validate".
func (ds *Dataset) Validate() error {
	comp := ds.compressor
	recordSize := comp.RecordSize(ds.Descriptor.SamplesPerTrace())
	wantTraceBytes := ds.Descriptor.TotalFrames() * int64(ds.Descriptor.TracesPerFrame()) * int64(recordSize)
	if got := ds.traceLayout.Extents().TotalSize(); got != wantTraceBytes {
		return types.Malformed("Dataset.Validate", fmt.Errorf(
			"trace extent coverage %d does not match expected %d", got, wantTraceBytes))
	}
	wantHeaderBytes := ds.Descriptor.TotalFrames() * int64(ds.Descriptor.TracesPerFrame()) * int64(ds.Descriptor.Schema.Length())
	if got := ds.headerLayout.Extents().TotalSize(); got != wantHeaderBytes {
		return types.Malformed("Dataset.Validate", fmt.Errorf(
			"header extent coverage %d does not match expected %d", got, wantHeaderBytes))
	}
	if err := ds.traceLayout.Extents().Validate(); err != nil {
		return err
	}
	if err := ds.headerLayout.Extents().Validate(); err != nil {
		return err
	}
	for i, ax := range ds.Descriptor.Axes {
		if err := ax.Validate(); err != nil {
			return types.Malformed("Dataset.Validate", fmt.Errorf("axis %d: %w", i, err))
		}
	}
	return ds.Descriptor.Schema.ValidateDisjoint()
}
