package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gmlewis/voxel-editor/voxels"
)

// IncrementalVolumeLimit caps the padded dirty volume, in cells, that
// Rebuild will patch incrementally. Larger edits fall back to a full
// rebuild.
const IncrementalVolumeLimit = 4096

// BuildSolidMesh meshes the whole grid with the greedy or the naive
// extractor. It keeps no state.
func BuildSolidMesh(grid *voxels.Grid, greedy bool) *SurfaceMesh {
	if greedy {
		return ExtractGreedy(grid)
	}
	return ExtractSurface(grid)
}

// occupancy is the grid lookup used while patching a mesh.
type occupancy interface {
	At(c voxels.Cell) (colorIndex int, ok bool)
}

// Rebuild returns the mesh of grid, reusing cached when it can.
//
// cached must have been built from an earlier state of grid with the same
// greedy setting, and dirty must cover every cell changed since then.
// When both are present and the dirty box padded by one cell holds at
// most IncrementalVolumeLimit cells, only the cells of the padded box are
// looked up again. The result has exactly the quads of a full rebuild.
//
// incremental reports whether the cached mesh was reused.
func Rebuild(grid *voxels.Grid, cached *SurfaceMesh, dirty *voxels.Bounds, greedy bool) (m *SurfaceMesh, incremental bool) {
	if cached == nil || dirty == nil {
		return BuildSolidMesh(grid, greedy), false
	}

	region := dirty.Pad(1)
	if region.Volume() > IncrementalVolumeLimit {
		return BuildSolidMesh(grid, greedy), false
	}
	if greedy {
		return patchGreedy(grid, cached, region), true
	}
	return patchSurface(grid, cached, region), true
}

// exposedFace is one voxel face with no occupied neighbor.
type exposedFace struct {
	cell  voxels.Cell
	dir   direction
	color int
}

// regionFaces returns the exposed faces of the occupied cells in region.
// A cell outside the padded box of an edit keeps all of its faces, since
// none of its neighbors changed.
func regionFaces(grid occupancy, region voxels.Bounds) []exposedFace {
	var faces []exposedFace
	for x := region.Min.X; x <= region.Max.X; x++ {
		for y := region.Min.Y; y <= region.Max.Y; y++ {
			for z := region.Min.Z; z <= region.Max.Z; z++ {
				c := voxels.Cell{X: x, Y: y, Z: z}
				colorIndex, ok := grid.At(c)
				if !ok {
					continue
				}
				for _, d := range directions {
					if _, occupied := grid.At(d.neighbor(c)); occupied {
						continue
					}
					faces = append(faces, exposedFace{cell: c, dir: d, color: colorIndex})
				}
			}
		}
	}
	return faces
}

// patchSurface drops the cached quads owned by cells in region and emits
// the region's faces again.
func patchSurface(grid occupancy, cached *SurfaceMesh, region voxels.Bounds) *SurfaceMesh {
	out := &SurfaceMesh{}
	for i := range cached.Quads {
		g, r, ok := cached.quadRect(i)
		if ok && region.Contains(g.owner(uv{r.u0, r.v0})) {
			continue
		}
		out.AddQuad(cached.QuadVertices(i), cached.FaceColors[i])
	}
	for _, f := range regionFaces(grid, region) {
		out.AddQuad(f.dir.quad(f.cell), f.color)
	}
	return out
}

// patchGreedy re-merges the face planes crossing region. A cell's
// positive faces sit one unit past it, so on each axis the planes from
// region.Min to region.Max+1 are stale. Cached rectangles on stale planes
// are split back into unit faces; those owned by cells outside region are
// still valid and are merged again with the region's fresh faces. Quads
// on every other plane are kept as they are.
func patchGreedy(grid occupancy, cached *SurfaceMesh, region voxels.Bounds) *SurfaceMesh {
	stale := func(axis, plane int) bool {
		return plane >= region.Min.Axis(axis) && plane <= region.Max.Axis(axis)+1
	}

	kept := &SurfaceMesh{}
	groups := map[faceGroup][]uv{}
	for i := range cached.Quads {
		g, r, ok := cached.quadRect(i)
		if !ok || !stale(g.axis, g.plane) {
			kept.AddQuad(cached.QuadVertices(i), cached.FaceColors[i])
			continue
		}
		for v := r.v0; v < r.v1; v++ {
			for u := r.u0; u < r.u1; u++ {
				p := uv{u, v}
				if !region.Contains(g.owner(p)) {
					groups[g] = append(groups[g], p)
				}
			}
		}
	}

	for _, f := range regionFaces(grid, region) {
		g := faceGroup{axis: f.dir.axis, sign: f.dir.sign, plane: f.dir.plane(f.cell), color: f.color}
		groups[g] = append(groups[g], footprint(g.axis, f.cell))
	}
	return Merge(kept, mergeGroups(groups))
}

// quadRect recovers the face group and footprint rectangle of quad i.
// ok is false for a quad that is not axis-aligned.
func (m *SurfaceMesh) quadRect(i int) (g faceGroup, r rect, ok bool) {
	corners := m.QuadVertices(i)
	axis, plane, ok := quadPlane(corners)
	if !ok {
		return g, r, false
	}
	sign := 1
	if m.QuadNormal(i)[axis] < 0 {
		sign = -1
	}
	g = faceGroup{axis: axis, sign: sign, plane: plane, color: m.FaceColors[i]}

	first := footprint(axis, vecCell(corners[0]))
	r = rect{u0: first.u, v0: first.v, u1: first.u, v1: first.v}
	for _, c := range corners[1:] {
		p := footprint(axis, vecCell(c))
		r.u0, r.v0 = min(r.u0, p.u), min(r.v0, p.v)
		r.u1, r.v1 = max(r.u1, p.u), max(r.v1, p.v)
	}
	return g, r, true
}

func vecCell(v mgl32.Vec3) voxels.Cell {
	return voxels.Cell{X: int(v[0]), Y: int(v[1]), Z: int(v[2])}
}

// quadPlane returns the axis a quad is perpendicular to and the plane
// coordinate it lies on. ok is false for a quad that is not axis-aligned.
func quadPlane(corners [4]mgl32.Vec3) (axis, plane int, ok bool) {
	for axis = 0; axis < 3; axis++ {
		p := corners[0][axis]
		if corners[1][axis] == p && corners[2][axis] == p && corners[3][axis] == p {
			return axis, int(p), true
		}
	}
	return 0, 0, false
}
