package mesh

import "math"

// Key identifies a vertex by the bit patterns of its position and normal.
// Values are compared at float32 precision, so -0 and +0 are distinct.
type Key [6]uint32

// MakeKey builds the key for a position/normal pair.
func MakeKey(position, normal []float32) Key {
	var k Key
	for i := 0; i < 3; i++ {
		k[i] = math.Float32bits(position[i])
		k[i+3] = math.Float32bits(normal[i])
	}
	return k
}

// Observer is called for every face vertex as it is processed.
// index is the compact vertex the face vertex was mapped to; added reports
// whether that vertex was created by this face vertex.
type Observer func(face int, fv FaceVertex, index uint32, added bool)

// Deduplicate converts raw into an indexed mesh with one vertex per
// distinct position/normal pair. Vertices are numbered in order of first
// appearance in raw.Faces.
func Deduplicate(raw *RawMesh) (*CompactMesh, error) {
	return DeduplicateWith(raw, nil)
}

// DeduplicateWith is Deduplicate with a per-face-vertex observer.
// A nil observer is allowed.
func DeduplicateWith(raw *RawMesh, observe Observer) (*CompactMesh, error) {
	out := &CompactMesh{
		Name:     raw.Name,
		Vertices: make([]float32, 0),
		Normals:  make([]float32, 0),
		Indices:  make([]uint32, 0, len(raw.Faces)),
	}
	seen := make(map[Key]uint32)

	positions := raw.PositionCount()
	normals := raw.NormalCount()

	for i, fv := range raw.Faces {
		if int64(fv.Position) >= int64(positions) {
			return nil, &IndexError{Face: i, Channel: ChannelPosition, Index: fv.Position, Count: positions}
		}
		if int64(fv.Normal) >= int64(normals) {
			return nil, &IndexError{Face: i, Channel: ChannelNormal, Index: fv.Normal, Count: normals}
		}

		p := raw.Positions[fv.Position*3 : fv.Position*3+3]
		n := raw.Normals[fv.Normal*3 : fv.Normal*3+3]
		key := MakeKey(p, n)

		idx, ok := seen[key]
		if !ok {
			idx = uint32(len(out.Vertices) / 3)
			out.Vertices = append(out.Vertices, p...)
			out.Normals = append(out.Normals, n...)
			seen[key] = idx
		}
		out.Indices = append(out.Indices, idx)

		if observe != nil {
			observe(i, fv, idx, !ok)
		}
	}

	return out, nil
}
