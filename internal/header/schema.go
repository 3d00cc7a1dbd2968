package header

import "github.com/deploymenttheory/go-javaseis/internal/types"

// StockProperties returns the minimal stock set spec.md §3 requires in
// every header schema: sequence number, trace number, trace type,
// live/end markers, fold, static, line.
func StockProperties() []types.TracePropertyDefinition {
	return []types.TracePropertyDefinition{
		{Label: types.PropSequenceNumber, Description: "trace sequence number", Format: types.Int32, ElementCount: 1},
		{Label: types.PropTraceNumber, Description: "trace number within frame", Format: types.Int32, ElementCount: 1},
		{Label: types.PropTraceType, Description: "trace type: dead, live, aux", Format: types.Int32, ElementCount: 1},
		{Label: types.PropLiveSampleStart, Description: "first live sample index", Format: types.Int32, ElementCount: 1},
		{Label: types.PropFullSampleStart, Description: "first recorded sample index", Format: types.Int32, ElementCount: 1},
		{Label: types.PropLiveSampleEnd, Description: "last live sample index", Format: types.Int32, ElementCount: 1},
		{Label: types.PropFullSampleEnd, Description: "last recorded sample index", Format: types.Int32, ElementCount: 1},
		{Label: types.PropFold, Description: "live trace count for this frame", Format: types.Int32, ElementCount: 1},
		{Label: types.PropStatic, Description: "applied static correction", Format: types.Int32, ElementCount: 1},
		{Label: types.PropLine, Description: "line number", Format: types.Int32, ElementCount: 1},
	}
}

// Build assembles a schema in the order [stock-set, user-defined,
// per-axis], skipping duplicates by label. spec.md §4.7 "Open for write
// (new)" step 2.
func Build(userDefined, axisProps []types.TracePropertyDefinition) *types.HeaderSchema {
	s := types.NewHeaderSchema()
	for _, d := range StockProperties() {
		s.Add(d)
	}
	for _, d := range userDefined {
		s.Add(d)
	}
	for _, d := range axisProps {
		s.Add(d)
	}
	return s
}

// CopyRecord copies every property in src's schema that also exists (by
// label) in dst's schema, from srcRecord into dstRecord. Properties
// missing from the destination schema are silently skipped. spec.md
// §4.4.
func CopyRecord(dst *Accessor, dstRecord []byte, src *Accessor, srcRecord []byte) error {
	for _, p := range src.Schema().Properties() {
		if _, ok := dst.Schema().ByLabel(p.Label); !ok {
			continue
		}
		if err := copyProperty(dst, dstRecord, src, srcRecord, p); err != nil {
			return err
		}
	}
	return nil
}

func copyProperty(dst *Accessor, dstRecord []byte, src *Accessor, srcRecord []byte, p types.TraceProperty) error {
	if p.Format == types.ByteStringFormat {
		v, err := src.GetString(srcRecord, p.Label)
		if err != nil {
			return err
		}
		return dst.SetString(dstRecord, p.Label, v)
	}
	if p.ElementCount == 1 {
		v, err := src.GetScalar(srcRecord, p.Label)
		if err != nil {
			return err
		}
		return dst.SetScalar(dstRecord, p.Label, v)
	}
	v, err := src.GetVector(srcRecord, p.Label)
	if err != nil {
		return err
	}
	return dst.SetVector(dstRecord, p.Label, v)
}
