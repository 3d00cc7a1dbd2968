// Package dictionary provides property-label translation between this
// format's local trace-property dialect and a parent application's
// foreign dialect, so FileProperties.xml axis labels round-trip through
// whatever naming convention the embedding system uses. spec.md §9
// resolves this as an injected collaborator, never a package-level
// global table.
package dictionary

import "github.com/deploymenttheory/go-javaseis/internal/interfaces"

// identity is a PropertyDictionary that performs no translation.
type identity struct{}

// Identity returns a PropertyDictionary whose ToLocal/ToForeign are the
// identity function. It is the default used when no embedding system
// dialect is configured.
func Identity() interfaces.PropertyDictionary { return identity{} }

func (identity) ToLocal(label string) string   { return label }
func (identity) ToForeign(label string) string { return label }

// Map is a PropertyDictionary backed by an explicit local<->foreign
// label table, for embedding systems that rename stock properties (e.g.
// ProMAX's "CDP" vs. this format's "CDP_NUM").
type Map struct {
	localToForeign map[string]string
	foreignToLocal map[string]string
}

// NewMap builds a Map from a local-label -> foreign-label table. The
// table need not be exhaustive: labels absent from it pass through
// unchanged.
func NewMap(localToForeign map[string]string) *Map {
	m := &Map{
		localToForeign: make(map[string]string, len(localToForeign)),
		foreignToLocal: make(map[string]string, len(localToForeign)),
	}
	for local, foreign := range localToForeign {
		m.localToForeign[local] = foreign
		m.foreignToLocal[foreign] = local
	}
	return m
}

// ToLocal translates a foreign label to its local equivalent, or returns
// it unchanged if the table has no entry for it.
func (m *Map) ToLocal(label string) string {
	if local, ok := m.foreignToLocal[label]; ok {
		return local
	}
	return label
}

// ToForeign translates a local label to its foreign equivalent, or
// returns it unchanged if the table has no entry for it.
func (m *Map) ToForeign(label string) string {
	if foreign, ok := m.localToForeign[label]; ok {
		return foreign
	}
	return label
}
