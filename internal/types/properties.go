package types

import "fmt"

// Stock trace property labels. spec.md §3 requires a minimal stock set
// (sequence number, trace number, trace type, live/end markers, fold,
// static, line) be present in every header schema.
const (
	PropSequenceNumber  = "SEQNO"
	PropTraceNumber     = "TRC_NUM"
	PropTraceType       = "TRC_TYPE"
	PropLiveSampleStart = "TLIVE_S"
	PropFullSampleStart = "TFULL_S"
	PropLiveSampleEnd   = "TLIVE_E"
	PropFullSampleEnd   = "TFULL_E"
	PropFold            = "FOLD"
	PropStatic          = "SKEWSTAT"
	PropLine            = "LINE_NO"
)

// TracePropertyDefinition describes a field's shape, independent of where
// it sits in a header record. spec.md §3.
type TracePropertyDefinition struct {
	Label        string
	Description  string
	Format       ScalarFormat
	ElementCount int
}

// Size returns the byte size of the field: scalar size * element count.
func (d TracePropertyDefinition) Size() int {
	return d.Format.Size() * d.ElementCount
}

// Equal reports label equality only, per spec.md §3 ("two properties are
// equal iff their labels are equal").
func (d TracePropertyDefinition) Equal(o TracePropertyDefinition) bool {
	return d.Label == o.Label
}

// TraceProperty pairs a definition with its byte offset inside the header
// record.
type TraceProperty struct {
	TracePropertyDefinition
	ByteOffset int
}

func (p TraceProperty) String() string {
	return fmt.Sprintf("%s[%s x%d]@%d", p.Label, p.Format, p.ElementCount, p.ByteOffset)
}

// Geometry is the optional three-point orientation record. spec.md §3.
type Geometry struct {
	MinILine     int32
	MaxILine     int32
	MinXLine     int32
	MaxXLine     int32
	XILine1Start float64
	XILine1End   float64
	YILine1Start float64
	YILine1End   float64
	XXLine1End   float64
	YXLine1End   float64
}

// Axis describes one framework dimension. spec.md §3.
type Axis struct {
	Length int

	// Property is the header field that indexes this axis. It may be nil
	// for the sample and trace axes, which need not have a backing trace
	// property.
	Property *TraceProperty

	Unit   string
	Domain string

	LogicalOrigin  int64
	LogicalDelta   int64
	PhysicalOrigin float64
	PhysicalDelta  float64
}

// Validate checks the axis invariants from spec.md §3: length >= 1,
// logical delta != 0, and (when a property is attached) that its format
// is a 32- or 64-bit signed integer.
func (a Axis) Validate() error {
	if a.Length < 1 {
		return Precondition("Axis.Validate", fmt.Errorf("axis length %d must be >= 1", a.Length))
	}
	if a.LogicalDelta == 0 {
		return Precondition("Axis.Validate", fmt.Errorf("axis logical delta must be non-zero"))
	}
	if a.Property != nil && !a.Property.Format.IsInteger32Or64() {
		return Malformed("Axis.Validate", fmt.Errorf(
			"axis property %q has format %s, want a 32- or 64-bit signed integer",
			a.Property.Label, a.Property.Format))
	}
	return nil
}

// MaxLogical returns the highest logical coordinate this axis can address.
func (a Axis) MaxLogical() int64 {
	return a.LogicalOrigin + a.LogicalDelta*int64(a.Length-1)
}
