// Package stats reports mesh and material statistics for a project.
package stats

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gmlewis/voxel-editor/mesh"
	"github.com/gmlewis/voxel-editor/scene"
	"github.com/gmlewis/voxel-editor/voxels"
)

// Part holds the statistics of one part.
type Part struct {
	PartID   string
	PartName string

	Triangles int
	Faces     int
	Edges     int
	Vertices  int

	BoundsSize    [3]int
	MaterialsUsed int
	Islands       int // separate 6-connected groups of voxels
}

// Scene holds per-part statistics and their totals. MaterialsUsed counts
// distinct colors across all parts rather than summing.
type Scene struct {
	Parts []Part

	Triangles int
	Faces     int
	Edges     int
	Vertices  int
	Islands   int

	MaterialsUsed int
}

// ComputeScene gathers statistics for every part of project, in part
// order.
func ComputeScene(project *scene.Project, greedy bool) Scene {
	var s Scene
	materials := map[int]struct{}{}
	for _, p := range project.Scene.Parts() {
		ps := ComputePart(p, greedy)
		s.Parts = append(s.Parts, ps)
		s.Triangles += ps.Triangles
		s.Faces += ps.Faces
		s.Edges += ps.Edges
		s.Vertices += ps.Vertices
		s.Islands += ps.Islands
		for _, c := range p.Voxels.Colors() {
			materials[c] = struct{}{}
		}
	}
	s.MaterialsUsed = len(materials)
	return s
}

// ComputePart gathers statistics for p. The part's mesh cache is used
// when present, even if it is stale; otherwise a mesh is built without
// touching the cache.
func ComputePart(p *scene.Part, greedy bool) Part {
	m := p.MeshCache
	if m == nil {
		m = mesh.BuildSolidMesh(p.Voxels, greedy)
	}

	ps := Part{
		PartID:        p.ID,
		PartName:      p.Name,
		Faces:         m.FaceCount(),
		Triangles:     2 * m.FaceCount(),
		MaterialsUsed: len(p.Voxels.Colors()),
		Islands:       len(voxels.Components(p.Voxels)),
	}
	ps.Edges, ps.Vertices = topology(m)
	if b, ok := p.Voxels.Bounds(); ok {
		ps.BoundsSize = b.Size()
	}
	return ps
}

type edge [2]mgl32.Vec3

// topology counts unique edges and vertices by position, so corners shared
// between neighboring quads count once.
func topology(m *mesh.SurfaceMesh) (edges, vertices int) {
	verts := map[mgl32.Vec3]struct{}{}
	edgeSet := map[edge]struct{}{}
	for i := 0; i < m.FaceCount(); i++ {
		corners := m.QuadVertices(i)
		for j, v := range corners {
			verts[v] = struct{}{}
			edgeSet[makeEdge(v, corners[(j+1)%4])] = struct{}{}
		}
	}
	return len(edgeSet), len(verts)
}

func makeEdge(a, b mgl32.Vec3) edge {
	for k := 0; k < 3; k++ {
		if a[k] != b[k] {
			if b[k] < a[k] {
				a, b = b, a
			}
			break
		}
	}
	return edge{a, b}
}
