package shapes

import (
	"math"

	"github.com/gmlewis/voxel-editor/voxels"
)

// BoxPlaneCells returns every cell of the rectangle spanned by (x0,y0) and
// (x1,y1) on plane z, corners inclusive and in either order.
func BoxPlaneCells(x0, y0, x1, y1, z int) voxels.CellSet {
	minX, maxX := min(x0, x1), max(x0, x1)
	minY, maxY := min(y0, y1), max(y0, y1)

	cells := make(voxels.CellSet, (maxX-minX+1)*(maxY-minY+1))
	for x := minX; x <= maxX; x++ {
		for y := minY; y <= maxY; y++ {
			cells.Add(voxels.Cell{X: x, Y: y, Z: z})
		}
	}
	return cells
}

// LinePlaneCells rasterizes the line from (x0,y0) to (x1,y1) on plane z
// with Bresenham's algorithm. The result is 8-connected and includes
// both endpoints.
func LinePlaneCells(x0, y0, x1, y1, z int) voxels.CellSet {
	cells := voxels.CellSet{}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}

	x, y := x0, y0
	e := dx + dy
	for {
		cells.Add(voxels.Cell{X: x, Y: y, Z: z})
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
	}
	return cells
}

// StrokeSegment returns the ordered, de-duplicated path between two brush
// drag samples. It takes max(|dx|,|dy|,|dz|) interpolation steps and always
// returns at least the start cell.
func StrokeSegment(start, end voxels.Cell) []voxels.Cell {
	dx, dy, dz := end.X-start.X, end.Y-start.Y, end.Z-start.Z
	steps := max(abs(dx), abs(dy), abs(dz))
	if steps == 0 {
		return []voxels.Cell{start}
	}

	path := make([]voxels.Cell, 0, steps+1)
	seen := voxels.CellSet{}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		c := voxels.Cell{
			X: start.X + int(math.Round(float64(dx)*t)),
			Y: start.Y + int(math.Round(float64(dy)*t)),
			Z: start.Z + int(math.Round(float64(dz)*t)),
		}
		if seen.Has(c) {
			continue
		}
		seen.Add(c)
		path = append(path, c)
	}
	return path
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
