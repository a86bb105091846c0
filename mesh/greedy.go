package mesh

import (
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gmlewis/voxel-editor/voxels"
)

// faceGroup collects exposed faces that may be merged together: same
// direction, same plane and same color.
type faceGroup struct {
	axis, sign, plane, color int
}

func (g faceGroup) less(o faceGroup) bool {
	switch {
	case g.axis != o.axis:
		return g.axis < o.axis
	case g.sign != o.sign:
		return g.sign < o.sign
	case g.plane != o.plane:
		return g.plane < o.plane
	}
	return g.color < o.color
}

// uv is a face footprint within its plane. For faces along x, (u,v) is
// (y,z); along y it is (x,z); along z it is (x,y).
type uv struct{ u, v int }

func footprint(axis int, c voxels.Cell) uv {
	switch axis {
	case 0:
		return uv{c.Y, c.Z}
	case 1:
		return uv{c.X, c.Z}
	}
	return uv{c.X, c.Y}
}

// cellAt is the inverse of footprint: the cell at along on axis whose
// footprint is p.
func cellAt(axis, along int, p uv) voxels.Cell {
	switch axis {
	case 0:
		return voxels.Cell{X: along, Y: p.u, Z: p.v}
	case 1:
		return voxels.Cell{X: p.u, Y: along, Z: p.v}
	}
	return voxels.Cell{X: p.u, Y: p.v, Z: along}
}

// owner returns the cell whose face at p lies in the group's plane.
func (g faceGroup) owner(p uv) voxels.Cell {
	along := g.plane
	if g.sign > 0 {
		along--
	}
	return cellAt(g.axis, along, p)
}

// rect is a half-open rectangle [u0,u1) x [v0,v1) in a face plane.
type rect struct{ u0, v0, u1, v1 int }

// ExtractGreedy builds a mesh whose coplanar, same-colored exposed faces
// are merged into larger rectangles.
func ExtractGreedy(grid *voxels.Grid) *SurfaceMesh {
	groups := map[faceGroup][]uv{}
	grid.Each(func(c voxels.Cell, colorIndex int) {
		for _, d := range directions {
			if _, occupied := grid.At(d.neighbor(c)); occupied {
				continue
			}
			key := faceGroup{axis: d.axis, sign: d.sign, plane: d.plane(c), color: colorIndex}
			groups[key] = append(groups[key], footprint(d.axis, c))
		}
	})
	return mergeGroups(groups)
}

// mergeGroups emits the greedy rectangles of every group, in group order.
func mergeGroups(groups map[faceGroup][]uv) *SurfaceMesh {
	keys := make([]faceGroup, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(a, b int) bool { return keys[a].less(keys[b]) })

	m := &SurfaceMesh{}
	for _, key := range keys {
		for _, r := range greedyRects(groups[key]) {
			m.AddQuad(quadFromRect(key, r), key.color)
		}
	}
	return m
}

// greedyRects covers cells with rectangles. Starting from the smallest
// remaining (u,v), each rectangle grows along u as far as it can, then
// along v while every cell of the next row is still uncovered.
func greedyRects(cells []uv) []rect {
	sort.Slice(cells, func(a, b int) bool {
		if cells[a].u != cells[b].u {
			return cells[a].u < cells[b].u
		}
		return cells[a].v < cells[b].v
	})
	pending := make(map[uv]bool, len(cells))
	for _, c := range cells {
		pending[c] = true
	}

	var rects []rect
	for _, start := range cells {
		if !pending[start] {
			continue
		}

		width := 1
		for pending[uv{start.u + width, start.v}] {
			width++
		}

		height := 1
	grow:
		for {
			for u := start.u; u < start.u+width; u++ {
				if !pending[uv{u, start.v + height}] {
					break grow
				}
			}
			height++
		}

		for v := start.v; v < start.v+height; v++ {
			for u := start.u; u < start.u+width; u++ {
				delete(pending, uv{u, v})
			}
		}
		rects = append(rects, rect{u0: start.u, v0: start.v, u1: start.u + width, v1: start.v + height})
	}
	return rects
}

// quadFromRect returns the corners of r lying on the group's plane, wound
// so the normal points along the group's direction.
func quadFromRect(g faceGroup, r rect) [4]mgl32.Vec3 {
	p := float32(g.plane)
	u0, v0, u1, v1 := float32(r.u0), float32(r.v0), float32(r.u1), float32(r.v1)

	switch g.axis {
	case 0:
		if g.sign > 0 {
			return [4]mgl32.Vec3{{p, u0, v0}, {p, u1, v0}, {p, u1, v1}, {p, u0, v1}}
		}
		return [4]mgl32.Vec3{{p, u0, v1}, {p, u1, v1}, {p, u1, v0}, {p, u0, v0}}
	case 1:
		if g.sign > 0 {
			return [4]mgl32.Vec3{{u1, p, v0}, {u0, p, v0}, {u0, p, v1}, {u1, p, v1}}
		}
		return [4]mgl32.Vec3{{u0, p, v0}, {u1, p, v0}, {u1, p, v1}, {u0, p, v1}}
	}
	if g.sign > 0 {
		return [4]mgl32.Vec3{{u0, v0, p}, {u1, v0, p}, {u1, v1, p}, {u0, v1, p}}
	}
	return [4]mgl32.Vec3{{u1, v0, p}, {u0, v0, p}, {u0, v1, p}, {u1, v1, p}}
}
