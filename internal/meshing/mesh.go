package meshing

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Vertex is a mesh corner. Position is (x, elevation, y): elevation is the
// second component, the grid plane the first and third.
type Vertex struct {
	Position mgl64.Vec3
	Color    mgl64.Vec3
}

// Face is a triangle of 0-based vertex indices. Winding decides the visible side.
type Face [3]int

// Layer locates one vertex block and the faces built from it.
type Layer struct {
	Grid      Grid
	FirstFace int
	Faces     int
}

// Mesh is an append-only triangle mesh with per-vertex colors.
type Mesh struct {
	Vertices []Vertex
	Faces    []Face

	// Terrain is the heightmap surface; SeaFloor the cap under the sea,
	// zero-valued when the cap is disabled.
	Terrain  Layer
	SeaFloor Layer
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int { return len(m.Vertices) }

// FaceCount returns the number of triangles.
func (m *Mesh) FaceCount() int { return len(m.Faces) }

// HasSeaFloor reports whether the sea-floor cap was built.
func (m *Mesh) HasSeaFloor() bool { return m.SeaFloor.Grid.Len() > 0 }

func (m *Mesh) addVertex(pos, color mgl64.Vec3) {
	m.Vertices = append(m.Vertices, Vertex{Position: pos, Color: color})
}

func (m *Mesh) addFace(a, b, c int) {
	m.Faces = append(m.Faces, Face{a, b, c})
}

// Validate checks that every face references an existing vertex.
func (m *Mesh) Validate() error {
	n := len(m.Vertices)
	for i, f := range m.Faces {
		for _, idx := range f {
			if idx < 0 || idx >= n {
				return fmt.Errorf("face %d references vertex %d, mesh has %d vertices", i, idx, n)
			}
		}
	}
	return nil
}

// FaceNormal returns the unnormalized geometric normal of face i following
// its winding order. Degenerate faces yield the zero vector.
func (m *Mesh) FaceNormal(i int) mgl64.Vec3 {
	f := m.Faces[i]
	a := m.Vertices[f[0]].Position
	b := m.Vertices[f[1]].Position
	c := m.Vertices[f[2]].Position
	return b.Sub(a).Cross(c.Sub(a))
}

// Bounds returns the axis-aligned bounding box of all vertex positions.
func (m *Mesh) Bounds() (lo, hi mgl64.Vec3) {
	if len(m.Vertices) == 0 {
		return lo, hi
	}
	lo = m.Vertices[0].Position
	hi = lo
	for _, v := range m.Vertices[1:] {
		for k := 0; k < 3; k++ {
			lo[k] = min(lo[k], v.Position[k])
			hi[k] = max(hi[k], v.Position[k])
		}
	}
	return lo, hi
}
