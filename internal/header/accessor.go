// Package header implements fixed-layout per-trace header records: byte-
// offset accessors for typed fields declared by a types.HeaderSchema.
// spec.md §4.4.
package header

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/deploymenttheory/go-javaseis/internal/types"
)

// Accessor reads and writes typed fields inside a header record buffer.
type Accessor struct {
	schema *types.HeaderSchema
	order  binary.ByteOrder
}

// New builds an Accessor bound to schema, using byteOrder for all numeric
// fields (spec.md §9 "honor ByteOrder for all numeric fields in
// headers").
func New(schema *types.HeaderSchema, byteOrder types.ByteOrder) *Accessor {
	return &Accessor{schema: schema, order: byteOrder.Codec()}
}

func (a *Accessor) Schema() *types.HeaderSchema { return a.schema }

func (a *Accessor) property(op, label string) (types.TraceProperty, error) {
	p, ok := a.schema.ByLabel(label)
	if !ok {
		return types.TraceProperty{}, types.NotFoundf(op, "no such header property %q", label)
	}
	return p, nil
}

func (a *Accessor) field(record []byte, p types.TraceProperty) ([]byte, error) {
	end := p.ByteOffset + p.Size()
	if end > len(record) {
		return nil, types.Precondition("header.field", fmt.Errorf(
			"property %q range [%d,%d) exceeds record length %d", p.Label, p.ByteOffset, end, len(record)))
	}
	return record[p.ByteOffset:end], nil
}

// GetScalar reads a single-element numeric field as a float64.
func (a *Accessor) GetScalar(record []byte, label string) (float64, error) {
	p, err := a.property("Accessor.GetScalar", label)
	if err != nil {
		return 0, err
	}
	if p.ElementCount != 1 {
		return 0, types.Precondition("Accessor.GetScalar", fmt.Errorf(
			"property %q has element count %d, want 1", label, p.ElementCount))
	}
	buf, err := a.field(record, p)
	if err != nil {
		return 0, err
	}
	return a.decodeScalar(p.Format, buf)
}

// SetScalar writes v into a single-element numeric field, converting to
// the field's declared format.
func (a *Accessor) SetScalar(record []byte, label string, v float64) error {
	p, err := a.property("Accessor.SetScalar", label)
	if err != nil {
		return err
	}
	if p.ElementCount != 1 {
		return types.Precondition("Accessor.SetScalar", fmt.Errorf(
			"property %q has element count %d, want 1", label, p.ElementCount))
	}
	buf, err := a.field(record, p)
	if err != nil {
		return err
	}
	return a.encodeScalar(p.Format, buf, v)
}

// GetVector reads an N-element numeric field as a []float64 of length N.
func (a *Accessor) GetVector(record []byte, label string) ([]float64, error) {
	p, err := a.property("Accessor.GetVector", label)
	if err != nil {
		return nil, err
	}
	buf, err := a.field(record, p)
	if err != nil {
		return nil, err
	}
	out := make([]float64, p.ElementCount)
	step := p.Format.Size()
	for i := 0; i < p.ElementCount; i++ {
		v, err := a.decodeScalar(p.Format, buf[i*step:(i+1)*step])
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// SetVector writes v (length must equal the field's element count) into
// an N-element numeric field.
func (a *Accessor) SetVector(record []byte, label string, v []float64) error {
	p, err := a.property("Accessor.SetVector", label)
	if err != nil {
		return err
	}
	if len(v) != p.ElementCount {
		return types.Precondition("Accessor.SetVector", fmt.Errorf(
			"property %q expects %d elements, got %d", label, p.ElementCount, len(v)))
	}
	buf, err := a.field(record, p)
	if err != nil {
		return err
	}
	step := p.Format.Size()
	for i, val := range v {
		if err := a.encodeScalar(p.Format, buf[i*step:(i+1)*step], val); err != nil {
			return err
		}
	}
	return nil
}

// GetString reads a byte-string field trimmed of trailing NULs.
func (a *Accessor) GetString(record []byte, label string) (string, error) {
	p, err := a.property("Accessor.GetString", label)
	if err != nil {
		return "", err
	}
	if p.Format != types.ByteStringFormat {
		return "", types.Precondition("Accessor.GetString", fmt.Errorf(
			"property %q is not a byte-string field", label))
	}
	buf, err := a.field(record, p)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(buf), "\x00"), nil
}

// SetString writes a NUL-padded byte-string field. s must be shorter than
// the field's element count.
func (a *Accessor) SetString(record []byte, label string, s string) error {
	p, err := a.property("Accessor.SetString", label)
	if err != nil {
		return err
	}
	if p.Format != types.ByteStringFormat {
		return types.Precondition("Accessor.SetString", fmt.Errorf(
			"property %q is not a byte-string field", label))
	}
	if len(s) >= p.ElementCount {
		return types.Precondition("Accessor.SetString", fmt.Errorf(
			"string of length %d does not fit in %d-byte field %q", len(s), p.ElementCount, label))
	}
	buf, err := a.field(record, p)
	if err != nil {
		return err
	}
	for i := range buf {
		buf[i] = 0
	}
	copy(buf, s)
	return nil
}

// GetInt64 reads a single-element integer field as an int64, used by the
// addressing package to derive frame/trace coordinates from axis
// properties. The value passes through GetScalar's float64, so integers
// beyond 2^53 in magnitude are not represented exactly.
func (a *Accessor) GetInt64(record []byte, label string) (int64, error) {
	v, err := a.GetScalar(record, label)
	if err != nil {
		return 0, err
	}
	return int64(v), nil
}

// SetInt64 writes v into a single-element integer field.
func (a *Accessor) SetInt64(record []byte, label string, v int64) error {
	return a.SetScalar(record, label, float64(v))
}

func (a *Accessor) decodeScalar(format types.ScalarFormat, buf []byte) (float64, error) {
	switch format {
	case types.Int16:
		return float64(int16(a.order.Uint16(buf))), nil
	case types.Int32:
		return float64(int32(a.order.Uint32(buf))), nil
	case types.Int64:
		return float64(int64(a.order.Uint64(buf))), nil
	case types.Float32:
		return float64(float32FromBits(a.order.Uint32(buf))), nil
	case types.Float64:
		return float64FromBits(a.order.Uint64(buf)), nil
	default:
		return 0, types.Precondition("header.decodeScalar", fmt.Errorf("unsupported scalar format %s", format))
	}
}

func (a *Accessor) encodeScalar(format types.ScalarFormat, buf []byte, v float64) error {
	switch format {
	case types.Int16:
		a.order.PutUint16(buf, uint16(int16(v)))
	case types.Int32:
		a.order.PutUint32(buf, uint32(int32(v)))
	case types.Int64:
		a.order.PutUint64(buf, uint64(int64(v)))
	case types.Float32:
		a.order.PutUint32(buf, float32Bits(float32(v)))
	case types.Float64:
		a.order.PutUint64(buf, float64Bits(v))
	default:
		return types.Precondition("header.encodeScalar", fmt.Errorf("unsupported scalar format %s", format))
	}
	return nil
}
