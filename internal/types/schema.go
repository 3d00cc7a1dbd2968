package types

import "fmt"

// HeaderSchema is an ordered list of trace properties whose byte ranges
// partition [0, Length). spec.md §3, §4.4.
type HeaderSchema struct {
	props  []TraceProperty
	byName map[string]int // label -> index into props
	length int
}

// NewHeaderSchema returns an empty schema.
func NewHeaderSchema() *HeaderSchema {
	return &HeaderSchema{byName: make(map[string]int)}
}

// Add appends def to the schema at the next contiguous byte offset.
// Adding a label already present is a no-op (duplicate detection by
// label, per spec.md §4.7 "Open for write (new)" step 2).
func (s *HeaderSchema) Add(def TracePropertyDefinition) TraceProperty {
	if idx, ok := s.byName[def.Label]; ok {
		return s.props[idx]
	}
	p := TraceProperty{TracePropertyDefinition: def, ByteOffset: s.length}
	s.byName[def.Label] = len(s.props)
	s.props = append(s.props, p)
	s.length += def.Size()
	return p
}

// Remove deletes the property with label from the schema and recomputes
// every subsequent byte offset, preserving relative order. It is a no-op
// if label is absent — an exact set difference per spec.md §9's
// resolution of the properties_rm open question.
func (s *HeaderSchema) Remove(label string) {
	idx, ok := s.byName[label]
	if !ok {
		return
	}
	s.props = append(s.props[:idx], s.props[idx+1:]...)
	s.rebuild()
}

func (s *HeaderSchema) rebuild() {
	s.byName = make(map[string]int, len(s.props))
	offset := 0
	for i := range s.props {
		s.props[i].ByteOffset = offset
		s.byName[s.props[i].Label] = i
		offset += s.props[i].Size()
	}
	s.length = offset
}

// ByLabel returns the property named label.
func (s *HeaderSchema) ByLabel(label string) (TraceProperty, bool) {
	idx, ok := s.byName[label]
	if !ok {
		return TraceProperty{}, false
	}
	return s.props[idx], true
}

// Properties returns the schema's properties in byte-offset order. The
// returned slice is a copy; mutating it does not affect the schema.
func (s *HeaderSchema) Properties() []TraceProperty {
	out := make([]TraceProperty, len(s.props))
	copy(out, s.props)
	return out
}

// Length returns the total header record length in bytes.
func (s *HeaderSchema) Length() int { return s.length }

// Clone returns a deep copy of the schema.
func (s *HeaderSchema) Clone() *HeaderSchema {
	c := NewHeaderSchema()
	for _, p := range s.props {
		c.Add(p.TracePropertyDefinition)
	}
	return c
}

// ValidateDisjoint confirms the header-disjointness invariant of spec.md
// §8: every two distinct properties occupy disjoint byte ranges and their
// union is [0, Length()).
func (s *HeaderSchema) ValidateDisjoint() error {
	offset := 0
	for _, p := range s.props {
		if p.ByteOffset != offset {
			return Malformed("HeaderSchema.ValidateDisjoint", fmt.Errorf(
				"property %q at offset %d, want contiguous offset %d", p.Label, p.ByteOffset, offset))
		}
		offset += p.Size()
	}
	if offset != s.length {
		return Malformed("HeaderSchema.ValidateDisjoint", fmt.Errorf(
			"schema length %d does not match sum of property sizes %d", s.length, offset))
	}
	return nil
}
