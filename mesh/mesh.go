// Package mesh converts voxel grids into quad surface meshes.
//
// Two extractors are provided: a naive one emitting one quad per exposed
// voxel face, and a greedy one merging coplanar same-colored faces into
// larger rectangles. Both wind every quad so that its normal points out of
// the solid.
package mesh

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"
)

// Quad holds four indices into SurfaceMesh.Vertices.
type Quad [4]int

// SurfaceMesh is a renderable quad mesh. FaceColors parallels Quads and
// holds one palette index per quad.
type SurfaceMesh struct {
	Vertices   []mgl32.Vec3
	Quads      []Quad
	FaceColors []int
}

// FaceCount returns the number of quads.
func (m *SurfaceMesh) FaceCount() int {
	if m == nil {
		return 0
	}
	return len(m.Quads)
}

// AddQuad appends a quad with its own four vertices.
func (m *SurfaceMesh) AddQuad(corners [4]mgl32.Vec3, colorIndex int) {
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices, corners[:]...)
	m.Quads = append(m.Quads, Quad{base, base + 1, base + 2, base + 3})
	m.FaceColors = append(m.FaceColors, colorIndex)
}

// QuadVertices returns the four corner positions of quad i.
func (m *SurfaceMesh) QuadVertices(i int) [4]mgl32.Vec3 {
	q := m.Quads[i]
	return [4]mgl32.Vec3{m.Vertices[q[0]], m.Vertices[q[1]], m.Vertices[q[2]], m.Vertices[q[3]]}
}

// QuadNormal returns the (unnormalized) normal of quad i: the cross
// product of its first two edges.
func (m *SurfaceMesh) QuadNormal(i int) mgl32.Vec3 {
	v := m.QuadVertices(i)
	return v[1].Sub(v[0]).Cross(v[2].Sub(v[1]))
}

// QuadCenter returns the centroid of quad i.
func (m *SurfaceMesh) QuadCenter(i int) mgl32.Vec3 {
	v := m.QuadVertices(i)
	return v[0].Add(v[1]).Add(v[2]).Add(v[3]).Mul(0.25)
}

// Merge concatenates meshes, reindexing the quads of each one.
func Merge(meshes ...*SurfaceMesh) *SurfaceMesh {
	out := &SurfaceMesh{}
	for _, m := range meshes {
		if m == nil {
			continue
		}
		base := len(out.Vertices)
		out.Vertices = append(out.Vertices, m.Vertices...)
		for _, q := range m.Quads {
			out.Quads = append(out.Quads, Quad{q[0] + base, q[1] + base, q[2] + base, q[3] + base})
		}
		out.FaceColors = append(out.FaceColors, m.FaceColors...)
	}
	return out
}

// FaceKey identifies a quad by its sorted corner positions, independent of
// vertex order and indexing.
type FaceKey [4]mgl32.Vec3

// Signature returns the multiset of quads in m keyed by position.
// Two meshes covering the same faces with the same quads have equal
// signatures regardless of quad order.
func (m *SurfaceMesh) Signature() map[FaceKey]int {
	sig := map[FaceKey]int{}
	if m == nil {
		return sig
	}
	for i := range m.Quads {
		corners := m.QuadVertices(i)
		sort.Slice(corners[:], func(a, b int) bool {
			for k := 0; k < 3; k++ {
				if corners[a][k] != corners[b][k] {
					return corners[a][k] < corners[b][k]
				}
			}
			return false
		})
		sig[FaceKey(corners)]++
	}
	return sig
}
