package stl

import (
	"fmt"

	"github.com/gmlewis/voxel-editor/mesh"
)

// Triangles splits every quad of m into two triangles scaled by
// voxelSize (model units per voxel). Facet normals are unit length and
// follow the quad winding.
func Triangles(m *mesh.SurfaceMesh, voxelSize float32) []Tri {
	tris := make([]Tri, 0, 2*m.FaceCount())
	for i := 0; i < m.FaceCount(); i++ {
		v := m.QuadVertices(i)
		n := m.QuadNormal(i)
		if n.Len() > 0 {
			n = n.Normalize()
		}
		for k := range v {
			v[k] = v[k].Mul(voxelSize)
		}
		tris = append(tris,
			Tri{N: n, V1: v[0], V2: v[1], V3: v[2]},
			Tri{N: n, V1: v[0], V2: v[2], V3: v[3]},
		)
	}
	return tris
}

// WriteMesh writes m to filename as a binary STL.
func WriteMesh(filename string, m *mesh.SurfaceMesh, voxelSize float32) error {
	c, err := New(filename)
	if err != nil {
		return err
	}
	return writeMesh(c, m, voxelSize)
}

func writeMesh(c *Client, m *mesh.SurfaceMesh, voxelSize float32) error {
	for i, t := range Triangles(m, voxelSize) {
		if err := c.Write(&t); err != nil {
			c.Close()
			return fmt.Errorf("triangle %v: %w", i, err)
		}
	}
	return c.Close()
}
