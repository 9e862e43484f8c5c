// Package meshjson writes compact meshes as JSON documents of the form
// {"name": ..., "indices": [...], "vertices": [...], "normals": [...]}.
package meshjson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Faultbox/dae2json/internal/atomicfile"
	"github.com/Faultbox/dae2json/pkg/mesh"
)

// Options controls JSON formatting.
type Options struct {
	Indent string // empty writes a single line
}

// document is the on-disk layout. Field order is fixed.
type document struct {
	Name     string    `json:"name"`
	Indices  []uint32  `json:"indices"`
	Vertices []float32 `json:"vertices"`
	Normals  []float32 `json:"normals"`
}

func newDocument(m *mesh.CompactMesh) document {
	doc := document{
		Name:     m.Name,
		Indices:  m.Indices,
		Vertices: m.Vertices,
		Normals:  m.Normals,
	}
	// Empty buffers are written as [] rather than null.
	if doc.Indices == nil {
		doc.Indices = []uint32{}
	}
	if doc.Vertices == nil {
		doc.Vertices = []float32{}
	}
	if doc.Normals == nil {
		doc.Normals = []float32{}
	}
	return doc
}

// Write encodes m to w.
func Write(w io.Writer, m *mesh.CompactMesh, opts Options) error {
	if err := m.Validate(); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if opts.Indent != "" {
		enc.SetIndent("", opts.Indent)
	}
	return enc.Encode(newDocument(m))
}

// WriteFile encodes m to path. Output goes to a temporary file in the same
// directory which replaces path only once it is complete; on error path is
// left as it was. An existing path keeps its permissions.
func WriteFile(path string, m *mesh.CompactMesh, opts Options) error {
	return atomicfile.WriteFile(path, func(w io.Writer) error {
		if err := Write(w, m, opts); err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		return nil
	})
}

// Read decodes a mesh written by Write.
func Read(r io.Reader) (*mesh.CompactMesh, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding mesh JSON: %w", err)
	}
	m := &mesh.CompactMesh{
		Name:     doc.Name,
		Indices:  doc.Indices,
		Vertices: doc.Vertices,
		Normals:  doc.Normals,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

// ReadFile decodes the mesh stored at path.
func ReadFile(path string) (*mesh.CompactMesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading mesh file: %w", err)
	}
	defer f.Close()
	return Read(f)
}
