// Package meshcbor writes compact meshes as CBOR maps with the same four keys
// as the JSON form: name, indices, vertices and normals, in that order.
// Floats are stored as single-precision CBOR floats.
package meshcbor

import (
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"

	"github.com/Faultbox/dae2json/internal/atomicfile"
	"github.com/Faultbox/dae2json/pkg/mesh"
)

type document struct {
	Name     string    `cbor:"name"`
	Indices  []uint32  `cbor:"indices"`
	Vertices []float32 `cbor:"vertices"`
	Normals  []float32 `cbor:"normals"`
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	var err error
	// Empty buffers are written as empty arrays rather than null.
	encMode, err = cbor.EncOptions{NilContainers: cbor.NilContainerAsEmpty}.EncMode()
	if err != nil {
		panic(err)
	}
	decMode, err = cbor.DecOptions{DupMapKey: cbor.DupMapKeyEnforcedAPF}.DecMode()
	if err != nil {
		panic(err)
	}
}

// Write encodes m to w.
func Write(w io.Writer, m *mesh.CompactMesh) error {
	if err := m.Validate(); err != nil {
		return err
	}
	return encMode.NewEncoder(w).Encode(document{
		Name:     m.Name,
		Indices:  m.Indices,
		Vertices: m.Vertices,
		Normals:  m.Normals,
	})
}

// WriteFile encodes m to path, replacing path only once the output is
// complete.
func WriteFile(path string, m *mesh.CompactMesh) error {
	return atomicfile.WriteFile(path, func(w io.Writer) error {
		if err := Write(w, m); err != nil {
			return fmt.Errorf("encoding %s: %w", path, err)
		}
		return nil
	})
}

// Read decodes a mesh written by Write.
func Read(r io.Reader) (*mesh.CompactMesh, error) {
	var doc document
	if err := decMode.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding mesh CBOR: %w", err)
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
