package types

import "encoding/binary"

// ScalarFormat is the wire format of a single scalar element inside a
// trace property. spec.md §3.
type ScalarFormat int

const (
	Int16 ScalarFormat = iota
	Int32
	Int64
	Float32
	Float64
	ByteStringFormat
)

// Size returns the byte size of one scalar element in this format.
func (f ScalarFormat) Size() int {
	switch f {
	case Int16:
		return 2
	case Int32, Float32:
		return 4
	case Int64, Float64:
		return 8
	case ByteStringFormat:
		return 1
	default:
		return 0
	}
}

func (f ScalarFormat) String() string {
	switch f {
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case ByteStringFormat:
		return "byte-string"
	default:
		return "unknown"
	}
}

// IsInteger32Or64 reports whether f is a 32- or 64-bit signed integer
// format, the constraint spec.md §3 places on every axis property.
func (f ScalarFormat) IsInteger32Or64() bool {
	return f == Int32 || f == Int64
}

// SampleFormat names an on-disk trace sample encoding (spec.md §6
// "TraceFormat" strings).
type SampleFormat int

const (
	SampleFloat32 SampleFormat = iota
	SampleDouble
	SampleCompressedInt32
	SampleCompressedInt16
)

// String returns the on-disk TraceFormat token for f.
func (f SampleFormat) String() string {
	switch f {
	case SampleFloat32:
		return "FLOAT"
	case SampleDouble:
		return "DOUBLE"
	case SampleCompressedInt32:
		return "COMPRESSED_INT32"
	case SampleCompressedInt16:
		return "COMPRESSED_INT16"
	default:
		return "UNKNOWN"
	}
}

// ParseSampleFormat maps an on-disk TraceFormat token back to a
// SampleFormat. Unknown tokens are a precondition violation.
func ParseSampleFormat(s string) (SampleFormat, error) {
	switch s {
	case "FLOAT":
		return SampleFloat32, nil
	case "DOUBLE":
		return SampleDouble, nil
	case "COMPRESSED_INT32":
		return SampleCompressedInt32, nil
	case "COMPRESSED_INT16":
		return SampleCompressedInt16, nil
	default:
		return 0, Precondition("ParseSampleFormat", errUnknownFormat(s))
	}
}

type errUnknownFormat string

func (e errUnknownFormat) Error() string { return "unknown trace format: " + string(e) }

// TraceType is the stock header field discriminating live traces from
// dead/aux ones. spec.md §3.
type TraceType int32

const (
	TraceDead TraceType = 0
	TraceLive TraceType = 1
	TraceAux  TraceType = 2
)

// ByteOrder names the declared header byte order and resolves it to the
// stdlib codec. The bulk trace stream and trace map are always
// little-endian regardless of this setting (spec.md §9).
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

// Codec returns the binary.ByteOrder implementation for b.
func (b ByteOrder) Codec() binary.ByteOrder {
	if b == BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func (b ByteOrder) String() string {
	if b == BigEndian {
		return "BIG_ENDIAN"
	}
	return "LITTLE_ENDIAN"
}

// ParseByteOrder maps an on-disk ByteOrder token to a ByteOrder.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch s {
	case "LITTLE_ENDIAN", "":
		return LittleEndian, nil
	case "BIG_ENDIAN":
		return BigEndian, nil
	default:
		return 0, Precondition("ParseByteOrder", errUnknownFormat(s))
	}
}
