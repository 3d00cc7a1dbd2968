// Package compressor encodes/decodes a frame of float32 trace samples
// to/from their on-disk representation: verbatim float32, or a fixed-
// point int16 codec with a per-trace scale. spec.md §4.3.
package compressor

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/deploymenttheory/go-javaseis/internal/interfaces"
	"github.com/deploymenttheory/go-javaseis/internal/types"
)

// Float32Codec is the no-compression codec: trace bytes are written verbatim,
// little-endian.
type Float32Codec struct{}

func (Float32Codec) Format() types.SampleFormat { return types.SampleFloat32 }

func (Float32Codec) RecordSize(samplesPerTrace int) int { return samplesPerTrace * 4 }

func (c Float32Codec) Encode(dst []byte, src [][]float32) error {
	if len(src) == 0 {
		return nil
	}
	samplesPerTrace := len(src[0])
	recSize := c.RecordSize(samplesPerTrace)
	if len(dst) < len(src)*recSize {
		return types.Precondition("Float32Codec.Encode", fmt.Errorf(
			"dst too small: have %d, need %d", len(dst), len(src)*recSize))
	}
	for i, trace := range src {
		if len(trace) != samplesPerTrace {
			return types.Precondition("Float32Codec.Encode", fmt.Errorf(
				"trace %d has %d samples, want %d", i, len(trace), samplesPerTrace))
		}
		base := i * recSize
		for s, v := range trace {
			binary.LittleEndian.PutUint32(dst[base+s*4:], math.Float32bits(v))
		}
	}
	return nil
}

func (c Float32Codec) Decode(dst [][]float32, src []byte) error {
	if len(dst) == 0 {
		return nil
	}
	samplesPerTrace := len(dst[0])
	recSize := c.RecordSize(samplesPerTrace)
	if len(src) < len(dst)*recSize {
		return types.IOFail("Float32Codec.Decode", fmt.Errorf(
			"src too small: have %d, need %d", len(src), len(dst)*recSize))
	}
	for i := range dst {
		base := i * recSize
		for s := 0; s < samplesPerTrace; s++ {
			dst[i][s] = math.Float32frombits(binary.LittleEndian.Uint32(src[base+s*4:]))
		}
	}
	return nil
}

func (c Float32Codec) AllocFrameBuffer(fold int, samplesPerTrace int) []byte {
	return make([]byte, fold*c.RecordSize(samplesPerTrace))
}

// int16FullScale is the largest magnitude representable by a signed
// 16-bit sample.
const int16FullScale = 32767.0

// Int16Codec is the fixed-point compressor. Each trace is prefixed with
// an 8-byte header {float32 scale, int32 reserved (0)} followed by
// samplesPerTrace int16 quantized samples. The scale is the trace's peak
// absolute amplitude divided by 32767 (1 for an all-zero trace) and is
// stored as a float32 multiplier, not as an integer scaler exponent.
// spec.md §4.3.
type Int16Codec struct{}

func (Int16Codec) Format() types.SampleFormat { return types.SampleCompressedInt16 }

func (Int16Codec) RecordSize(samplesPerTrace int) int { return 8 + samplesPerTrace*2 }

func (c Int16Codec) Encode(dst []byte, src [][]float32) error {
	if len(src) == 0 {
		return nil
	}
	samplesPerTrace := len(src[0])
	recSize := c.RecordSize(samplesPerTrace)
	if len(dst) < len(src)*recSize {
		return types.Precondition("Int16Codec.Encode", fmt.Errorf(
			"dst too small: have %d, need %d", len(dst), len(src)*recSize))
	}
	for i, trace := range src {
		if len(trace) != samplesPerTrace {
			return types.Precondition("Int16Codec.Encode", fmt.Errorf(
				"trace %d has %d samples, want %d", i, len(trace), samplesPerTrace))
		}
		base := i * recSize
		peak := float32(0)
		for _, v := range trace {
			a := float32(math.Abs(float64(v)))
			if a > peak {
				peak = a
			}
		}
		scale := float64(1)
		if peak > 0 {
			scale = float64(peak) / int16FullScale
		}
		binary.LittleEndian.PutUint32(dst[base:], math.Float32bits(float32(scale)))
		binary.LittleEndian.PutUint32(dst[base+4:], 0) // reserved
		for s, v := range trace {
			q := int32(math.Round(float64(v) / scale))
			if q > math.MaxInt16 {
				q = math.MaxInt16
			} else if q < math.MinInt16 {
				q = math.MinInt16
			}
			binary.LittleEndian.PutUint16(dst[base+8+s*2:], uint16(int16(q)))
		}
	}
	return nil
}

func (c Int16Codec) Decode(dst [][]float32, src []byte) error {
	if len(dst) == 0 {
		return nil
	}
	samplesPerTrace := len(dst[0])
	recSize := c.RecordSize(samplesPerTrace)
	if len(src) < len(dst)*recSize {
		return types.IOFail("Int16Codec.Decode", fmt.Errorf(
			"src too small: have %d, need %d", len(src), len(dst)*recSize))
	}
	for i := range dst {
		base := i * recSize
		scale := math.Float32frombits(binary.LittleEndian.Uint32(src[base:]))
		if math.IsNaN(float64(scale)) || math.IsInf(float64(scale), 0) || scale < 0 {
			scale = 1 // clamp a corrupted scaler, per spec.md §4.3 failure semantics
		}
		for s := 0; s < samplesPerTrace; s++ {
			q := int16(binary.LittleEndian.Uint16(src[base+8+s*2:]))
			dst[i][s] = float32(float64(q) * float64(scale))
		}
	}
	return nil
}

func (c Int16Codec) AllocFrameBuffer(fold int, samplesPerTrace int) []byte {
	return make([]byte, fold*c.RecordSize(samplesPerTrace))
}

// DoubleCodec is a read-only tolerance codec for the on-disk DOUBLE
// format (spec.md: "DOUBLE (float64, read-only tolerance)"): trace
// bytes are float64, little-endian, verbatim. Only Decode is supported;
// nothing in this engine ever selects DOUBLE as a write target.
type DoubleCodec struct{}

func (DoubleCodec) Format() types.SampleFormat { return types.SampleDouble }

func (DoubleCodec) RecordSize(samplesPerTrace int) int { return samplesPerTrace * 8 }

func (c DoubleCodec) Encode(dst []byte, src [][]float32) error {
	return types.Precondition("DoubleCodec.Encode", fmt.Errorf(
		"%s is readable-on-disk only in this engine and cannot be written", types.SampleDouble))
}

func (c DoubleCodec) Decode(dst [][]float32, src []byte) error {
	if len(dst) == 0 {
		return nil
	}
	samplesPerTrace := len(dst[0])
	recSize := c.RecordSize(samplesPerTrace)
	if len(src) < len(dst)*recSize {
		return types.IOFail("DoubleCodec.Decode", fmt.Errorf(
			"src too small: have %d, need %d", len(src), len(dst)*recSize))
	}
	for i := range dst {
		base := i * recSize
		for s := 0; s < samplesPerTrace; s++ {
			dst[i][s] = float32(math.Float64frombits(binary.LittleEndian.Uint64(src[base+s*8:])))
		}
	}
	return nil
}

func (c DoubleCodec) AllocFrameBuffer(fold int, samplesPerTrace int) []byte {
	return make([]byte, fold*c.RecordSize(samplesPerTrace))
}

// For returns the codec implementing format, or a precondition error for
// an unsupported format. DOUBLE is a main-body read requirement (spec.md
// "DOUBLE (float64, read-only tolerance)") so it is constructible here
// for both read and write callers; dataset.Create is the one that must
// refuse to select it as a write target, since the codec alone cannot
// tell a read-path open from a create-path open. COMPRESSED_INT32
// remains the spec.md §9 open question resolved as reject-everywhere:
// no codec models it.
func For(format types.SampleFormat) (interfaces.TraceCompressor, error) {
	switch format {
	case types.SampleFloat32:
		return Float32Codec{}, nil
	case types.SampleCompressedInt16:
		return Int16Codec{}, nil
	case types.SampleDouble:
		return DoubleCodec{}, nil
	case types.SampleCompressedInt32:
		return nil, types.Precondition("compressor.For", fmt.Errorf(
			"%s is not supported by this engine for reading or writing", format))
	default:
		return nil, types.Precondition("compressor.For", fmt.Errorf("unknown sample format %v", format))
	}
}
