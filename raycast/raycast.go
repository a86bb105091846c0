// Package raycast resolves which voxel cell a view ray points at.
package raycast

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gmlewis/voxel-editor/voxels"
)

// Default marching parameters for VoxelSurface.
const (
	DefaultMaxDistance = 200
	DefaultStep        = 0.1
)

const epsilon = 1e-6

// Occupancy is the part of a voxel grid a ray needs.
type Occupancy interface {
	At(c voxels.Cell) (colorIndex int, ok bool)
}

// IntersectAxisPlane returns where the ray from origin along dir crosses the
// plane where coordinate axis (0, 1 or 2) equals value. Rays parallel to the
// plane, or crossing it at or behind the origin, do not hit.
func IntersectAxisPlane(origin, dir mgl32.Vec3, axis int, value float32) (mgl32.Vec3, bool) {
	if axis < 0 || axis > 2 {
		return mgl32.Vec3{}, false
	}
	denom := dir[axis]
	if math.Abs(float64(denom)) < epsilon {
		return mgl32.Vec3{}, false
	}
	t := (value - origin[axis]) / denom
	if t <= 0 {
		return mgl32.Vec3{}, false
	}
	return origin.Add(dir.Mul(t)), true
}

// Hit is the result of a surface raycast.
type Hit struct {
	// Cell is the first occupied cell along the ray.
	Cell voxels.Cell
	// Previous is the last empty cell visited before Cell. It is only
	// meaningful when HasPrevious is set; a ray starting inside a voxel
	// has none.
	Previous    voxels.Cell
	HasPrevious bool
}

// VoxelSurface marches along the ray in fixed steps up to maxDistance and
// returns the first occupied cell. Cells are centered on integer
// coordinates.
func VoxelSurface(grid Occupancy, origin, dir mgl32.Vec3, maxDistance, step float32) (Hit, bool) {
	if dir.Len() <= 1e-9 || step <= 0 {
		return Hit{}, false
	}
	dir = dir.Normalize()

	var hit Hit
	visited := voxels.CellSet{}
	for i := 0; ; i++ {
		t := float32(i) * step
		if t > maxDistance {
			break
		}
		cell := cellAt(origin.Add(dir.Mul(t)))
		if visited.Has(cell) {
			continue
		}
		visited.Add(cell)
		if _, ok := grid.At(cell); ok {
			hit.Cell = cell
			return hit, true
		}
		hit.Previous = cell
		hit.HasPrevious = true
	}
	return Hit{}, false
}

func cellAt(p mgl32.Vec3) voxels.Cell {
	return voxels.Cell{
		X: int(math.Floor(float64(p[0]) + 0.5)),
		Y: int(math.Floor(float64(p[1]) + 0.5)),
		Z: int(math.Floor(float64(p[2]) + 0.5)),
	}
}

// TargetKind says how a target cell was found.
type TargetKind string

const (
	Surface         TargetKind = "surface"
	SurfaceAdjacent TargetKind = "surface-adjacent"
	PlaneFallback   TargetKind = "plane-fallback"
)

// Target is a resolved tool target.
type Target struct {
	Cell voxels.Cell
	Kind TargetKind
}

// ResolveBrushTarget picks the cell a brush acts on. Erasing requires a
// surface hit. Painting prefers the empty cell in front of the hit surface
// and otherwise uses fallback (typically the work-plane cell under the
// cursor), if any.
func ResolveBrushTarget(grid Occupancy, origin, dir mgl32.Vec3, erase bool, fallback *voxels.Cell) (Target, bool) {
	hit, ok := VoxelSurface(grid, origin, dir, DefaultMaxDistance, DefaultStep)
	if erase {
		if !ok {
			return Target{}, false
		}
		return Target{Cell: hit.Cell, Kind: Surface}, true
	}
	if ok && hit.HasPrevious {
		return Target{Cell: hit.Previous, Kind: SurfaceAdjacent}, true
	}
	if fallback != nil {
		return Target{Cell: *fallback, Kind: PlaneFallback}, true
	}
	return Target{}, false
}

// ResolveShapeTarget picks the anchor cell for box, line and fill tools.
// Unlike a brush, a surface hit with no empty cell in front of it still
// resolves to the hit cell.
func ResolveShapeTarget(grid Occupancy, origin, dir mgl32.Vec3, erase bool, fallback *voxels.Cell) (Target, bool) {
	hit, ok := VoxelSurface(grid, origin, dir, DefaultMaxDistance, DefaultStep)
	if !ok {
		if fallback == nil {
			return Target{}, false
		}
		return Target{Cell: *fallback, Kind: PlaneFallback}, true
	}
	if !erase && hit.HasPrevious {
		return Target{Cell: hit.Previous, Kind: SurfaceAdjacent}, true
	}
	return Target{Cell: hit.Cell, Kind: Surface}, true
}

// PlaneCell returns the cell on the z=value work plane the ray points at.
func PlaneCell(origin, dir mgl32.Vec3, z float32) (voxels.Cell, bool) {
	p, ok := IntersectAxisPlane(origin, dir, 2, z)
	if !ok {
		return voxels.Cell{}, false
	}
	return cellAt(p), true
}
