// Package collada reads the geometry subset of COLLADA (.dae) documents.
package collada

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Faultbox/dae2json/pkg/encoding"
)

// Document errors.
var (
	ErrMalformedXML     = errors.New("malformed COLLADA document")
	ErrNoGeometry       = errors.New("document has no geometry")
	ErrGeometryNotFound = errors.New("geometry not found")
	ErrMissingID        = errors.New("geometry has no id")
	ErrMissingMesh      = errors.New("geometry has no mesh")
)

// Document is the root <COLLADA> element, reduced to the parts used for
// mesh conversion.
type Document struct {
	XMLName    xml.Name   `xml:"COLLADA"`
	Version    string     `xml:"version,attr"`
	Geometries []Geometry `xml:"library_geometries>geometry"`
}

// Geometry is a <geometry> element.
type Geometry struct {
	ID   string `xml:"id,attr"`
	Name string `xml:"name,attr"`
	Mesh *Mesh  `xml:"mesh"`
}

// Mesh is a <mesh> element.
type Mesh struct {
	Sources   []Source   `xml:"source"`
	Triangles *Triangles `xml:"triangles"`
}

// Source is a <source> element holding a float array.
type Source struct {
	ID         string      `xml:"id,attr"`
	FloatArray *FloatArray `xml:"float_array"`
}

// FloatArray is a <float_array> element. Text holds the unparsed values.
type FloatArray struct {
	ID    string `xml:"id,attr"`
	Count string `xml:"count,attr"`
	Text  string `xml:",chardata"`
}

// Triangles is a <triangles> primitive.
type Triangles struct {
	Count    string  `xml:"count,attr"`
	Material string  `xml:"material,attr"`
	Inputs   []Input `xml:"input"`
	P        *string `xml:"p"`
}

// Input is an <input> element of a primitive.
type Input struct {
	Semantic string `xml:"semantic,attr"`
	Source   string `xml:"source,attr"`
	Offset   string `xml:"offset,attr"`
}

// Parse decodes a COLLADA document. Byte order marks and encodings declared
// in the XML prolog are handled.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(encoding.StripBOM(r))
	dec.CharsetReader = encoding.CharsetReader

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedXML, err)
	}
	return &doc, nil
}

// Geometry returns the geometry with the given id, or the first geometry
// when id is empty.
func (d *Document) Geometry(id string) (*Geometry, error) {
	if len(d.Geometries) == 0 {
		return nil, ErrNoGeometry
	}
	if id == "" {
		return &d.Geometries[0], nil
	}
	for i := range d.Geometries {
		if d.Geometries[i].ID == id {
			return &d.Geometries[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrGeometryNotFound, id)
}

// Source returns the source with the given id, or nil.
func (m *Mesh) Source(id string) *Source {
	for i := range m.Sources {
		if m.Sources[i].ID == id {
			return &m.Sources[i]
		}
	}
	return nil
}

// DeclaredCount returns the triangle count attribute, or -1 if it is absent.
func (t *Triangles) DeclaredCount() (int, error) {
	s := strings.TrimSpace(t.Count)
	if s == "" {
		return -1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: triangles count %q", ErrInvalidNumber, t.Count)
	}
	return n, nil
}
