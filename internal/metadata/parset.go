// Package metadata implements the out-of-scope XML/properties sidecar
// collaborator spec.md §1 describes only at its interface: reading and
// writing FileProperties.xml, TraceFile.xml, TraceHeaders.xml,
// VirtualFolders.xml, Name.properties and Status.properties. spec.md §6.
package metadata

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/deploymenttheory/go-javaseis/internal/types"
)

// Par is one typed, named leaf value inside a parset document.
type Par struct {
	XMLName xml.Name `xml:"par"`
	Name    string   `xml:"name,attr"`
	Type    string   `xml:"type,attr"`
	Value   string   `xml:",chardata"`
}

// Parset is a named group of pars and nested parsets. spec.md §6.
type Parset struct {
	XMLName xml.Name `xml:"parset"`
	Name    string   `xml:"name,attr"`
	Pars    []Par    `xml:"par"`
	Parsets []Parset `xml:"parset"`
}

// Par looks up a direct child par by name.
func (p *Parset) Par(name string) (Par, bool) {
	for _, c := range p.Pars {
		if c.Name == name {
			return c, true
		}
	}
	return Par{}, false
}

// Sub looks up a direct child parset by name.
func (p *Parset) Sub(name string) (*Parset, bool) {
	for i := range p.Parsets {
		if p.Parsets[i].Name == name {
			return &p.Parsets[i], true
		}
	}
	return nil, false
}

// Set adds or overwrites a par value by name.
func (p *Parset) Set(name, typ, value string) {
	for i := range p.Pars {
		if p.Pars[i].Name == name {
			p.Pars[i].Type = typ
			p.Pars[i].Value = value
			return
		}
	}
	p.Pars = append(p.Pars, Par{Name: name, Type: typ, Value: value})
}

// AddSub appends a nested parset and returns a pointer to it.
func (p *Parset) AddSub(name string) *Parset {
	p.Parsets = append(p.Parsets, Parset{Name: name})
	return &p.Parsets[len(p.Parsets)-1]
}

// String returns the par's raw text value, trimmed.
func (p Par) String() string { return strings.TrimSpace(p.Value) }

// Int returns the par's value parsed as an int64.
func (p Par) Int() (int64, error) { return strconv.ParseInt(p.String(), 10, 64) }

// Float returns the par's value parsed as a float64.
func (p Par) Float() (float64, error) { return strconv.ParseFloat(p.String(), 64) }

// Bool returns the par's value parsed as a bool ("true"/"false").
func (p Par) Bool() (bool, error) { return strconv.ParseBool(p.String()) }

// CSV splits the par's value on commas, trimming whitespace from each
// field.
func (p Par) CSV() []string {
	raw := strings.Split(p.String(), ",")
	out := make([]string, len(raw))
	for i, f := range raw {
		out[i] = strings.TrimSpace(f)
	}
	return out
}

// WriteDocument marshals root as an indented XML document and writes it
// to path. Per spec.md §6, the writer emits the document complete with
// its XML declaration, then rewrites the bytes to drop that leading
// declaration before the final write.
func WriteDocument(path string, root *Parset) error {
	body, err := xml.MarshalIndent(root, "", "  ")
	if err != nil {
		return types.Malformed("metadata.WriteDocument", err)
	}
	doc := append([]byte(xml.Header), body...)
	doc = bytes.TrimPrefix(doc, []byte(xml.Header))
	doc = append(doc, '\n')
	if err := os.WriteFile(path, doc, 0o644); err != nil {
		return types.IOFail("metadata.WriteDocument", err)
	}
	return nil
}

// ReadDocument parses the parset document at path.
func ReadDocument(path string) (*Parset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, types.IOFail("metadata.ReadDocument", err)
	}
	var root Parset
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, types.Malformed("metadata.ReadDocument", fmt.Errorf("parsing %s: %w", path, err))
	}
	return &root, nil
}
