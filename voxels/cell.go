package voxels

import "sort"

// Cell is an integer voxel coordinate.
type Cell struct {
	X, Y, Z int
}

// Add returns c offset by d.
func (c Cell) Add(d Cell) Cell {
	return Cell{X: c.X + d.X, Y: c.Y + d.Y, Z: c.Z + d.Z}
}

// Axis returns the coordinate along axis 0 (x), 1 (y) or 2 (z).
func (c Cell) Axis(axis int) int {
	switch axis {
	case 0:
		return c.X
	case 1:
		return c.Y
	}
	return c.Z
}

// WithAxis returns c with the coordinate along axis replaced by v.
func (c Cell) WithAxis(axis, v int) Cell {
	switch axis {
	case 0:
		c.X = v
	case 1:
		c.Y = v
	default:
		c.Z = v
	}
	return c
}

// Less orders cells by x, then y, then z.
func (c Cell) Less(o Cell) bool {
	if c.X != o.X {
		return c.X < o.X
	}
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.Z < o.Z
}

func sortCells(cells []Cell) {
	sort.Slice(cells, func(a, b int) bool { return cells[a].Less(cells[b]) })
}

// CellSet is an unordered set of cells.
type CellSet map[Cell]struct{}

// NewCellSet returns a set holding cells.
func NewCellSet(cells ...Cell) CellSet {
	s := make(CellSet, len(cells))
	for _, c := range cells {
		s[c] = struct{}{}
	}
	return s
}

// Add inserts c.
func (s CellSet) Add(c Cell) { s[c] = struct{}{} }

// Has reports whether c is in the set.
func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

// Len returns the set size.
func (s CellSet) Len() int { return len(s) }

// Sorted returns the members ascending by (x,y,z).
func (s CellSet) Sorted() []Cell {
	cells := make([]Cell, 0, len(s))
	for c := range s {
		cells = append(cells, c)
	}
	sortCells(cells)
	return cells
}

// Bounds returns the bounding box of the set; ok is false when empty.
func (s CellSet) Bounds() (b Bounds, ok bool) {
	for c := range s {
		if !ok {
			b, ok = Bounds{Min: c, Max: c}, true
			continue
		}
		b = b.Include(c)
	}
	return b, ok
}
