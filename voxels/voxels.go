// Package voxels holds the sparse voxel grid that backs each part of a model.
package voxels

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidRow is returned by FromList and Load for a malformed row.
var ErrInvalidRow = errors.New("each voxel row must have 4 integer values")

// Grid represents one part's voxel occupancy: a sparse mapping from
// integer cell coordinate to a palette color index.
//
// Revision starts at 0 and increases by exactly one on every call that
// actually changes the grid, so callers can detect edits without
// comparing contents.
type Grid struct {
	data     map[Cell]int
	revision int
}

// New returns an empty grid.
func New() *Grid {
	return &Grid{data: map[Cell]int{}}
}

// Set inserts or overwrites the color at (x,y,z).
func (g *Grid) Set(x, y, z, colorIndex int) {
	if g.data == nil {
		g.data = map[Cell]int{}
	}
	c := Cell{X: x, Y: y, Z: z}
	if old, ok := g.data[c]; ok && old == colorIndex {
		return
	}
	g.data[c] = colorIndex
	g.revision++
}

// Remove deletes the voxel at (x,y,z) if present.
func (g *Grid) Remove(x, y, z int) {
	c := Cell{X: x, Y: y, Z: z}
	if _, ok := g.data[c]; !ok {
		return
	}
	delete(g.data, c)
	g.revision++
}

// Clear empties the grid.
func (g *Grid) Clear() {
	if len(g.data) == 0 {
		return
	}
	g.data = map[Cell]int{}
	g.revision++
}

// Get returns the color at (x,y,z) and whether the cell is occupied.
func (g *Grid) Get(x, y, z int) (int, bool) {
	color, ok := g.data[Cell{X: x, Y: y, Z: z}]
	return color, ok
}

// At is Get keyed by Cell.
func (g *Grid) At(c Cell) (int, bool) {
	color, ok := g.data[c]
	return color, ok
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int { return len(g.data) }

// Revision returns the mutation counter.
func (g *Grid) Revision() int { return g.revision }

// Each calls fn for every occupied cell in unspecified order.
func (g *Grid) Each(fn func(c Cell, colorIndex int)) {
	for c, color := range g.data {
		fn(c, color)
	}
}

// Cells returns the occupied cells sorted ascending by (x,y,z).
func (g *Grid) Cells() []Cell {
	cells := make([]Cell, 0, len(g.data))
	for c := range g.data {
		cells = append(cells, c)
	}
	sortCells(cells)
	return cells
}

// Bounds returns the bounding box of all occupied cells.
// ok is false for an empty grid.
func (g *Grid) Bounds() (b Bounds, ok bool) {
	for c := range g.data {
		if !ok {
			b, ok = Bounds{Min: c, Max: c}, true
			continue
		}
		b = b.Include(c)
	}
	return b, ok
}

// Colors returns the distinct color indices in use, ascending.
func (g *Grid) Colors() []int {
	seen := map[int]struct{}{}
	for _, color := range g.data {
		seen[color] = struct{}{}
	}
	colors := make([]int, 0, len(seen))
	for color := range seen {
		colors = append(colors, color)
	}
	sort.Ints(colors)
	return colors
}

// ToList serializes the grid as [x,y,z,color] rows sorted by coordinate.
func (g *Grid) ToList() [][]int {
	cells := g.Cells()
	rows := make([][]int, 0, len(cells))
	for _, c := range cells {
		rows = append(rows, []int{c.X, c.Y, c.Z, g.data[c]})
	}
	return rows
}

// FromList builds a new grid from rows produced by ToList.
func FromList(rows [][]int) (*Grid, error) {
	if err := validateRows(rows); err != nil {
		return nil, err
	}
	g := New()
	for _, row := range rows {
		g.Set(row[0], row[1], row[2], row[3])
	}
	return g, nil
}

// Load replaces the grid contents in place with rows produced by ToList.
// The grid is left untouched when any row is invalid.
func (g *Grid) Load(rows [][]int) error {
	if err := validateRows(rows); err != nil {
		return err
	}
	g.Clear()
	for _, row := range rows {
		g.Set(row[0], row[1], row[2], row[3])
	}
	return nil
}

func validateRows(rows [][]int) error {
	for i, row := range rows {
		if len(row) != 4 {
			return fmt.Errorf("voxel row %v: %w", i, ErrInvalidRow)
		}
	}
	return nil
}
