package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/gmlewis/voxel-editor/voxels"
)

// direction describes one of the six face directions of a voxel.
type direction struct {
	axis int // 0=x, 1=y, 2=z
	sign int // +1 or -1

	// corners of the unit face as offsets from the voxel's minimum
	// corner, wound so the face normal points along axis*sign.
	corners [4]voxels.Cell
}

var directions = [6]direction{
	{axis: 2, sign: -1, corners: [4]voxels.Cell{{X: 0, Y: 0, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 1, Y: 0, Z: 0}}},
	{axis: 2, sign: 1, corners: [4]voxels.Cell{{X: 0, Y: 0, Z: 1}, {X: 1, Y: 0, Z: 1}, {X: 1, Y: 1, Z: 1}, {X: 0, Y: 1, Z: 1}}},
	{axis: 1, sign: -1, corners: [4]voxels.Cell{{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 1}, {X: 0, Y: 0, Z: 1}}},
	{axis: 0, sign: 1, corners: [4]voxels.Cell{{X: 1, Y: 0, Z: 0}, {X: 1, Y: 1, Z: 0}, {X: 1, Y: 1, Z: 1}, {X: 1, Y: 0, Z: 1}}},
	{axis: 1, sign: 1, corners: [4]voxels.Cell{{X: 1, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 0}, {X: 0, Y: 1, Z: 1}, {X: 1, Y: 1, Z: 1}}},
	{axis: 0, sign: -1, corners: [4]voxels.Cell{{X: 0, Y: 1, Z: 0}, {X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1}, {X: 0, Y: 1, Z: 1}}},
}

// neighbor returns the cell on the far side of the face.
func (d direction) neighbor(c voxels.Cell) voxels.Cell {
	return c.WithAxis(d.axis, c.Axis(d.axis)+d.sign)
}

// plane returns the coordinate, along d.axis, of the plane the face of c
// lies on. A positive face sits one unit past the cell.
func (d direction) plane(c voxels.Cell) int {
	if d.sign > 0 {
		return c.Axis(d.axis) + 1
	}
	return c.Axis(d.axis)
}

// quad returns the corners of the face of c, wound outward.
func (d direction) quad(c voxels.Cell) [4]mgl32.Vec3 {
	var corners [4]mgl32.Vec3
	for i, off := range d.corners {
		corners[i] = cellVec(c.Add(off))
	}
	return corners
}

// ExtractSurface builds a mesh with one quad per exposed voxel face.
func ExtractSurface(grid *voxels.Grid) *SurfaceMesh {
	m := &SurfaceMesh{}
	for _, c := range grid.Cells() {
		colorIndex, _ := grid.At(c)
		for _, d := range directions {
			if _, occupied := grid.At(d.neighbor(c)); occupied {
				continue
			}
			m.AddQuad(d.quad(c), colorIndex)
		}
	}
	return m
}

func cellVec(c voxels.Cell) mgl32.Vec3 {
	return mgl32.Vec3{float32(c.X), float32(c.Y), float32(c.Z)}
}
