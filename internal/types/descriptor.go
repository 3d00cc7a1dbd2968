package types

// Descriptor is the full in-memory metadata envelope of a dataset: the
// union of everything spec.md §6 persists across FileProperties.xml,
// TraceFile.xml, TraceHeaders.xml, VirtualFolders.xml, Name.properties
// and Status.properties.
type Descriptor struct {
	DescriptiveName string
	Comments        string
	DataType        string

	Mapped     bool
	HasTraces  bool
	ByteOrder  ByteOrder
	SampleFmt  SampleFormat

	Axes   []Axis // index 0 = sample axis .. len-1 = outermost axis
	Schema *HeaderSchema

	Secondaries []string // secondary storage roots, "." meaning under primary
	NExtents    int      // 0 means "use the heuristic"

	Geometry *Geometry // nil when absent

	// DataProperties holds the dataset's per-dataset custom properties
	// (FileProperties.xml's CustomProperties parset, excluding the
	// nested Geometry parset, which has its own typed field). spec.md
	// §4.7 "Same rules for data properties" as for trace properties.
	DataProperties map[string]string
}

// DataProperty looks up a data property by label, per spec.md §7
// "NotFound — ... data property by label".
func (d *Descriptor) DataProperty(label string) (string, error) {
	v, ok := d.DataProperties[label]
	if !ok {
		return "", NotFoundf("Descriptor.DataProperty", "no such data property %q", label)
	}
	return v, nil
}

// Ndim returns the dataset's dimensionality (3..5 per spec.md §3).
func (d *Descriptor) Ndim() int { return len(d.Axes) }

// FramesPerVolume returns the frame axis (index 2) length: the number of
// trace-map entries cached per paged-in volume.
func (d *Descriptor) FramesPerVolume() int64 {
	if len(d.Axes) < 3 {
		return 1
	}
	return int64(d.Axes[2].Length)
}

// TotalFrames returns the product of every axis length from the frame
// axis (index 2) outward: frames * volumes * hypercubes.
func (d *Descriptor) TotalFrames() int64 {
	total := int64(1)
	for k := 2; k < len(d.Axes); k++ {
		total *= int64(d.Axes[k].Length)
	}
	return total
}

// TracesPerFrame returns the trace axis (index 1) length.
func (d *Descriptor) TracesPerFrame() int {
	if len(d.Axes) < 2 {
		return 0
	}
	return d.Axes[1].Length
}

// SamplesPerTrace returns the sample axis (index 0) length.
func (d *Descriptor) SamplesPerTrace() int {
	if len(d.Axes) < 1 {
		return 0
	}
	return d.Axes[0].Length
}
