// Package mesh provides the in-memory mesh types and vertex deduplication.
package mesh

import (
	"errors"
	"fmt"
)

// Mesh errors.
var (
	ErrIndexOutOfRange   = errors.New("face index out of range")
	ErrBufferMismatch    = errors.New("vertex and normal buffer lengths differ")
	ErrBufferNotTriplets = errors.New("buffer length is not a multiple of 3")
	ErrInvalidIndex      = errors.New("index references missing vertex")
)

// Channel identifies which source buffer a face index points into.
type Channel int

const (
	ChannelPosition Channel = iota
	ChannelNormal
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case ChannelPosition:
		return "position"
	case ChannelNormal:
		return "normal"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// FaceVertex is one corner of a triangle, referencing a position and a normal.
type FaceVertex struct {
	Position uint32
	Normal   uint32
}

// RawMesh is a mesh as extracted from a source document.
type RawMesh struct {
	Name      string
	Positions []float32    // 3 floats per position
	Normals   []float32    // 3 floats per normal
	Faces     []FaceVertex // 3 per triangle
}

// PositionCount returns the number of complete positions in the buffer.
func (m *RawMesh) PositionCount() int {
	return len(m.Positions) / 3
}

// NormalCount returns the number of complete normals in the buffer.
func (m *RawMesh) NormalCount() int {
	return len(m.Normals) / 3
}

// TriangleCount returns the number of triangles described by Faces.
func (m *RawMesh) TriangleCount() int {
	return len(m.Faces) / 3
}

// CompactMesh is an indexed mesh where every vertex has a unique
// position/normal pair.
type CompactMesh struct {
	Name     string
	Vertices []float32
	Normals  []float32
	Indices  []uint32
}

// VertexCount returns the number of unique vertices.
func (m *CompactMesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// Validate checks the buffer invariants of m.
func (m *CompactMesh) Validate() error {
	if len(m.Vertices) != len(m.Normals) {
		return fmt.Errorf("%w: %d vertices, %d normals", ErrBufferMismatch, len(m.Vertices), len(m.Normals))
	}
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("%w: %d", ErrBufferNotTriplets, len(m.Vertices))
	}
	count := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= count {
			return fmt.Errorf("%w: indices[%d] = %d, vertex count %d", ErrInvalidIndex, i, idx, count)
		}
	}
	return nil
}

// IndexError reports a face vertex referencing data outside its buffer.
type IndexError struct {
	Face    int     // position in RawMesh.Faces
	Channel Channel // buffer the index points into
	Index   uint32  // offending index
	Count   int     // number of entries available in the buffer
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("face vertex %d: %s index %d out of range (have %d)", e.Face, e.Channel, e.Index, e.Count)
}

// Unwrap allows errors.Is(err, ErrIndexOutOfRange).
func (e *IndexError) Unwrap() error {
	return ErrIndexOutOfRange
}
