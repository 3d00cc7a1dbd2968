package metadata

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/deploymenttheory/go-javaseis/internal/interfaces"
	"github.com/deploymenttheory/go-javaseis/internal/types"
)

// sortedKeys returns m's keys in lexical order, for deterministic XML
// output.
func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Parset names used in FileProperties.xml: the document root
// (rootName) and its inner sub-parsets. spec.md §6.
const (
	rootName            = "JavaSeis Metadata"
	filePropertiesName  = "FileProperties"
	tracePropertiesName = "TraceProperties"
	customPropertiesName = "CustomProperties"
	geometryName        = "Geometry"
)

func scalarFormatToken(f types.ScalarFormat) string {
	switch f {
	case types.Int16:
		return "INT16"
	case types.Int32:
		return "INT32"
	case types.Int64:
		return "INT64"
	case types.Float32:
		return "FLOAT32"
	case types.Float64:
		return "FLOAT64"
	case types.ByteStringFormat:
		return "BYTE_STRING"
	default:
		return "UNKNOWN"
	}
}

func parseScalarFormatToken(s string) (types.ScalarFormat, error) {
	switch s {
	case "INT16":
		return types.Int16, nil
	case "INT32":
		return types.Int32, nil
	case "INT64":
		return types.Int64, nil
	case "FLOAT32":
		return types.Float32, nil
	case "FLOAT64":
		return types.Float64, nil
	case "BYTE_STRING":
		return types.ByteStringFormat, nil
	default:
		return 0, fmt.Errorf("unknown trace property format %q", s)
	}
}

func joinInts(vals []int64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatInt(v, 10)
	}
	return strings.Join(parts, ", ")
}

func joinFloats(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ", ")
}

func parseInts(p Par) ([]int64, error) {
	fields := p.CSV()
	out := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseFloats(p Par) ([]float64, error) {
	fields := p.CSV()
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// BuildFileProperties renders d into the FileProperties.xml document
// shape. dict translates local axis labels to the parent system's
// dialect on the way out. spec.md §6.
func BuildFileProperties(d *types.Descriptor, dict interfaces.PropertyDictionary) *Parset {
	root := &Parset{Name: rootName}
	fp := root.AddSub(filePropertiesName)

	fp.Set("Comments", "string", d.Comments)
	fp.Set("JavaSeisVersion", "string", "2006.3")
	fp.Set("DataType", "string", d.DataType)
	fp.Set("TraceFormat", "string", d.SampleFmt.String())
	fp.Set("ByteOrder", "string", d.ByteOrder.String())
	fp.Set("Mapped", "string", strconv.FormatBool(d.Mapped))
	fp.Set("DataDimensions", "int", strconv.Itoa(d.Ndim()))

	labels := make([]string, d.Ndim())
	units := make([]string, d.Ndim())
	domains := make([]string, d.Ndim())
	lengths := make([]int64, d.Ndim())
	logicalOrigins := make([]int64, d.Ndim())
	logicalDeltas := make([]int64, d.Ndim())
	physicalOrigins := make([]float64, d.Ndim())
	physicalDeltas := make([]float64, d.Ndim())
	for i, ax := range d.Axes {
		label := ""
		if ax.Property != nil {
			label = dict.ToForeign(ax.Property.Label)
		}
		labels[i] = label
		units[i] = ax.Unit
		domains[i] = ax.Domain
		lengths[i] = int64(ax.Length)
		logicalOrigins[i] = ax.LogicalOrigin
		logicalDeltas[i] = ax.LogicalDelta
		physicalOrigins[i] = ax.PhysicalOrigin
		physicalDeltas[i] = ax.PhysicalDelta
	}
	fp.Set("AxisLabels", "string", strings.Join(labels, ", "))
	fp.Set("AxisUnits", "string", strings.Join(units, ", "))
	fp.Set("AxisDomains", "string", strings.Join(domains, ", "))
	fp.Set("AxisLengths", "long", joinInts(lengths))
	fp.Set("LogicalOrigins", "long", joinInts(logicalOrigins))
	fp.Set("LogicalDeltas", "long", joinInts(logicalDeltas))
	fp.Set("PhysicalOrigins", "double", joinFloats(physicalOrigins))
	fp.Set("PhysicalDeltas", "double", joinFloats(physicalDeltas))
	fp.Set("HeaderLengthBytes", "int", strconv.Itoa(d.Schema.Length()))

	tp := fp.AddSub(tracePropertiesName)
	for i, p := range d.Schema.Properties() {
		entry := fmt.Sprintf("%s, %s, %s, %d, %d", p.Label, p.Description, scalarFormatToken(p.Format), p.ElementCount, p.ByteOffset)
		tp.Set(fmt.Sprintf("entry_%d", i), "string", entry)
	}

	cp := fp.AddSub(customPropertiesName)
	for _, label := range sortedKeys(d.DataProperties) {
		cp.Set(label, "string", d.DataProperties[label])
	}
	if d.Geometry != nil {
		g := cp.AddSub(geometryName)
		g.Set("MinILine", "int", strconv.Itoa(int(d.Geometry.MinILine)))
		g.Set("MaxILine", "int", strconv.Itoa(int(d.Geometry.MaxILine)))
		g.Set("MinXLine", "int", strconv.Itoa(int(d.Geometry.MinXLine)))
		g.Set("MaxXLine", "int", strconv.Itoa(int(d.Geometry.MaxXLine)))
		g.Set("XILine1Start", "double", strconv.FormatFloat(d.Geometry.XILine1Start, 'g', -1, 64))
		g.Set("XILine1End", "double", strconv.FormatFloat(d.Geometry.XILine1End, 'g', -1, 64))
		g.Set("YILine1Start", "double", strconv.FormatFloat(d.Geometry.YILine1Start, 'g', -1, 64))
		g.Set("YILine1End", "double", strconv.FormatFloat(d.Geometry.YILine1End, 'g', -1, 64))
		g.Set("XXLine1End", "double", strconv.FormatFloat(d.Geometry.XXLine1End, 'g', -1, 64))
		g.Set("YXLine1End", "double", strconv.FormatFloat(d.Geometry.YXLine1End, 'g', -1, 64))
	}

	return root
}

// ParseFileProperties reconstructs a Descriptor from a parsed
// FileProperties.xml document. dict translates the parent system's axis
// labels back to this format's local dialect. spec.md §4.7 "Open for
// read" step 2.
func ParseFileProperties(root *Parset, dict interfaces.PropertyDictionary) (*types.Descriptor, error) {
	fp, ok := root.Sub(filePropertiesName)
	if !ok {
		return nil, types.Malformed("metadata.ParseFileProperties", fmt.Errorf("missing FileProperties parset"))
	}

	d := &types.Descriptor{Schema: types.NewHeaderSchema()}

	get := func(name string) (Par, error) {
		p, ok := fp.Par(name)
		if !ok {
			return Par{}, types.Malformed("metadata.ParseFileProperties", fmt.Errorf("missing field %q", name))
		}
		return p, nil
	}

	if p, ok := fp.Par("Comments"); ok {
		d.Comments = p.String()
	}
	if p, ok := fp.Par("DataType"); ok {
		d.DataType = p.String()
	}

	traceFormatPar, err := get("TraceFormat")
	if err != nil {
		return nil, err
	}
	sampleFmt, err := types.ParseSampleFormat(traceFormatPar.String())
	if err != nil {
		return nil, types.Malformed("metadata.ParseFileProperties", err)
	}
	d.SampleFmt = sampleFmt

	byteOrderPar, err := get("ByteOrder")
	if err != nil {
		return nil, err
	}
	byteOrder, err := types.ParseByteOrder(byteOrderPar.String())
	if err != nil {
		return nil, types.Malformed("metadata.ParseFileProperties", err)
	}
	d.ByteOrder = byteOrder

	mappedPar, err := get("Mapped")
	if err != nil {
		return nil, err
	}
	mapped, err := mappedPar.Bool()
	if err != nil {
		return nil, types.Malformed("metadata.ParseFileProperties", err)
	}
	d.Mapped = mapped

	ndimPar, err := get("DataDimensions")
	if err != nil {
		return nil, err
	}
	ndim, err := ndimPar.Int()
	if err != nil {
		return nil, types.Malformed("metadata.ParseFileProperties", err)
	}

	labelsPar, err := get("AxisLabels")
	if err != nil {
		return nil, err
	}
	unitsPar, err := get("AxisUnits")
	if err != nil {
		return nil, err
	}
	domainsPar, err := get("AxisDomains")
	if err != nil {
		return nil, err
	}
	lengthsPar, err := get("AxisLengths")
	if err != nil {
		return nil, err
	}
	lengths, err := parseInts(lengthsPar)
	if err != nil {
		return nil, types.Malformed("metadata.ParseFileProperties", err)
	}
	logicalOriginsPar, err := get("LogicalOrigins")
	if err != nil {
		return nil, err
	}
	logicalOrigins, err := parseInts(logicalOriginsPar)
	if err != nil {
		return nil, types.Malformed("metadata.ParseFileProperties", err)
	}
	logicalDeltasPar, err := get("LogicalDeltas")
	if err != nil {
		return nil, err
	}
	logicalDeltas, err := parseInts(logicalDeltasPar)
	if err != nil {
		return nil, types.Malformed("metadata.ParseFileProperties", err)
	}
	physicalOriginsPar, err := get("PhysicalOrigins")
	if err != nil {
		return nil, err
	}
	physicalOrigins, err := parseFloats(physicalOriginsPar)
	if err != nil {
		return nil, types.Malformed("metadata.ParseFileProperties", err)
	}
	physicalDeltasPar, err := get("PhysicalDeltas")
	if err != nil {
		return nil, err
	}
	physicalDeltas, err := parseFloats(physicalDeltasPar)
	if err != nil {
		return nil, types.Malformed("metadata.ParseFileProperties", err)
	}

	labels := labelsPar.CSV()
	units := unitsPar.CSV()
	domains := domainsPar.CSV()
	if int64(len(labels)) != ndim || int64(len(lengths)) != ndim {
		return nil, types.Malformed("metadata.ParseFileProperties", fmt.Errorf(
			"axis field length mismatch against DataDimensions=%d", ndim))
	}

	tp, hasTP := fp.Sub(tracePropertiesName)
	if !hasTP {
		return nil, types.Malformed("metadata.ParseFileProperties", fmt.Errorf("missing TraceProperties parset"))
	}
	for _, par := range tp.Pars {
		fields := par.CSV()
		if len(fields) != 5 {
			return nil, types.Malformed("metadata.ParseFileProperties", fmt.Errorf("malformed trace property entry %q", par.Name))
		}
		format, err := parseScalarFormatToken(fields[2])
		if err != nil {
			return nil, types.Malformed("metadata.ParseFileProperties", err)
		}
		elementCount, err := strconv.Atoi(fields[3])
		if err != nil {
			return nil, types.Malformed("metadata.ParseFileProperties", err)
		}
		d.Schema.Add(types.TracePropertyDefinition{
			Label:        fields[0],
			Description:  fields[1],
			Format:       format,
			ElementCount: elementCount,
		})
	}

	d.Axes = make([]types.Axis, ndim)
	for i := int64(0); i < ndim; i++ {
		ax := types.Axis{
			Length:         int(lengths[i]),
			Unit:           units[i],
			Domain:         domains[i],
			LogicalOrigin:  logicalOrigins[i],
			LogicalDelta:   logicalDeltas[i],
			PhysicalOrigin: physicalOrigins[i],
			PhysicalDelta:  physicalDeltas[i],
		}
		if local := dict.ToLocal(labels[i]); local != "" {
			if prop, ok := d.Schema.ByLabel(local); ok {
				ax.Property = &prop
			} else if i > 1 {
				return nil, types.Malformed("metadata.ParseFileProperties", fmt.Errorf(
					"axis %d property %q has no matching trace property", i, local))
			}
		}
		d.Axes[i] = ax
	}

	if cp, ok := fp.Sub(customPropertiesName); ok {
		if g, ok := cp.Sub(geometryName); ok {
			geom := &types.Geometry{}
			if err := parseGeometry(g, geom); err != nil {
				return nil, err
			}
			d.Geometry = geom
		}
		if len(cp.Pars) > 0 {
			d.DataProperties = make(map[string]string, len(cp.Pars))
			for _, p := range cp.Pars {
				d.DataProperties[p.Name] = p.String()
			}
		}
	}

	return d, nil
}

func parseGeometry(g *Parset, out *types.Geometry) error {
	ints := map[string]*int32{
		"MinILine": &out.MinILine, "MaxILine": &out.MaxILine,
		"MinXLine": &out.MinXLine, "MaxXLine": &out.MaxXLine,
	}
	for name, dst := range ints {
		p, ok := g.Par(name)
		if !ok {
			continue
		}
		v, err := p.Int()
		if err != nil {
			return types.Malformed("metadata.parseGeometry", err)
		}
		*dst = int32(v)
	}
	floats := map[string]*float64{
		"XILine1Start": &out.XILine1Start, "XILine1End": &out.XILine1End,
		"YILine1Start": &out.YILine1Start, "YILine1End": &out.YILine1End,
		"XXLine1End": &out.XXLine1End, "YXLine1End": &out.YXLine1End,
	}
	for name, dst := range floats {
		p, ok := g.Par(name)
		if !ok {
			continue
		}
		v, err := p.Float()
		if err != nil {
			return types.Malformed("metadata.parseGeometry", err)
		}
		*dst = v
	}
	return nil
}
