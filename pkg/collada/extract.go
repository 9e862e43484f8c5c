package collada

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Faultbox/dae2json/pkg/mesh"
)

// Extraction errors.
var (
	ErrMissingSource      = errors.New("mesh source not found")
	ErrMissingFloatArray  = errors.New("source has no float_array")
	ErrMissingTriangles   = errors.New("mesh has no triangles")
	ErrMissingIndices     = errors.New("triangles have no index list")
	ErrInvalidNumber      = errors.New("invalid number")
	ErrOddIndexCount      = errors.New("index list does not hold position/normal pairs")
	ErrIncompleteTriangle = errors.New("face vertex count is not a multiple of 3")
)

// Source id suffixes. A geometry "Cube-mesh" keeps its positions in source
// "Cube-mesh-positions".
const (
	PositionsSuffix = "-positions"
	NormalsSuffix   = "-normals"
)

// ExtractOptions controls geometry selection.
type ExtractOptions struct {
	GeometryID string // empty selects the first geometry
	Name       string // overrides the mesh name, which defaults to the geometry id
}

// Extract reads positions, normals and the triangle index list of one
// geometry. The index list is read as interleaved position/normal pairs.
func Extract(doc *Document, opts ExtractOptions) (*mesh.RawMesh, error) {
	geom, err := doc.Geometry(opts.GeometryID)
	if err != nil {
		return nil, err
	}
	if geom.ID == "" {
		return nil, ErrMissingID
	}
	if geom.Mesh == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingMesh, geom.ID)
	}

	positions, err := sourceFloats(geom.Mesh, geom.ID+PositionsSuffix)
	if err != nil {
		return nil, err
	}
	normals, err := sourceFloats(geom.Mesh, geom.ID+NormalsSuffix)
	if err != nil {
		return nil, err
	}

	tris := geom.Mesh.Triangles
	if tris == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingTriangles, geom.ID)
	}
	if tris.P == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingIndices, geom.ID)
	}
	if _, err := tris.DeclaredCount(); err != nil {
		return nil, err
	}

	faces, err := parseFaces(*tris.P)
	if err != nil {
		return nil, err
	}

	name := geom.ID
	if opts.Name != "" {
		name = opts.Name
	}

	return &mesh.RawMesh{
		Name:      name,
		Positions: positions,
		Normals:   normals,
		Faces:     faces,
	}, nil
}

func sourceFloats(m *Mesh, id string) ([]float32, error) {
	src := m.Source(id)
	if src == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingSource, id)
	}
	if src.FloatArray == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingFloatArray, id)
	}
	return parseFloats(src.FloatArray.Text, id)
}

// parseFloats parses whitespace-separated values at float32 precision.
// NaN and infinities are rejected.
func parseFloats(text, what string) ([]float32, error) {
	fields := strings.Fields(text)
	out := make([]float32, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 32)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: %s value %d %q", ErrInvalidNumber, what, i, f)
		}
		out[i] = float32(v)
	}
	return out, nil
}

// parseFaces parses a <p> list as position/normal index pairs.
func parseFaces(text string) ([]mesh.FaceVertex, error) {
	fields := strings.Fields(text)
	if len(fields)%2 != 0 {
		return nil, fmt.Errorf("%w: %d indices", ErrOddIndexCount, len(fields))
	}
	faces := make([]mesh.FaceVertex, len(fields)/2)
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("%w: %d face vertices", ErrIncompleteTriangle, len(faces))
	}

	for i := range faces {
		pos, err := parseIndex(fields, 2*i)
		if err != nil {
			return nil, err
		}
		nrm, err := parseIndex(fields, 2*i+1)
		if err != nil {
			return nil, err
		}
		faces[i] = mesh.FaceVertex{Position: pos, Normal: nrm}
	}
	return faces, nil
}

func parseIndex(fields []string, i int) (uint32, error) {
	v, err := strconv.ParseUint(fields[i], 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: index %d %q", ErrInvalidNumber, i, fields[i])
	}
	return uint32(v), nil
}
