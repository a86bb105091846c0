package voxels

// Bounds is an inclusive axis-aligned box of cells.
type Bounds struct {
	Min, Max Cell
}

// Include grows b to contain c.
func (b Bounds) Include(c Cell) Bounds {
	b.Min = Cell{X: min(b.Min.X, c.X), Y: min(b.Min.Y, c.Y), Z: min(b.Min.Z, c.Z)}
	b.Max = Cell{X: max(b.Max.X, c.X), Y: max(b.Max.Y, c.Y), Z: max(b.Max.Z, c.Z)}
	return b
}

// Union returns the smallest box containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	return b.Include(o.Min).Include(o.Max)
}

// Pad grows b by n cells on every side.
func (b Bounds) Pad(n int) Bounds {
	d := Cell{X: n, Y: n, Z: n}
	return Bounds{
		Min: Cell{X: b.Min.X - d.X, Y: b.Min.Y - d.Y, Z: b.Min.Z - d.Z},
		Max: b.Max.Add(d),
	}
}

// Size returns the number of cells spanned along each axis.
func (b Bounds) Size() [3]int {
	return [3]int{b.Max.X - b.Min.X + 1, b.Max.Y - b.Min.Y + 1, b.Max.Z - b.Min.Z + 1}
}

// Volume returns the number of cells inside b.
func (b Bounds) Volume() int {
	s := b.Size()
	return s[0] * s[1] * s[2]
}

// Contains reports whether c lies inside b.
func (b Bounds) Contains(c Cell) bool {
	return c.X >= b.Min.X && c.X <= b.Max.X &&
		c.Y >= b.Min.Y && c.Y <= b.Max.Y &&
		c.Z >= b.Min.Z && c.Z <= b.Max.Z
}
