package commands

// gridSnapshot restores a whole grid on undo. It is used by commands that
// replace most of the grid, where per-cell bookkeeping costs more than a copy.
type gridSnapshot struct {
	rows [][]int
}

func (s *gridSnapshot) take(ctx EditContext) {
	s.rows = ctx.Voxels().ToList()
}

func (s *gridSnapshot) restore(ctx EditContext) error {
	if s.rows == nil {
		return nil
	}
	if err := ctx.Voxels().Load(s.rows); err != nil {
		return err
	}
	s.rows = nil
	ctx.InvalidateMesh()
	return nil
}

// ClearVoxels removes every voxel from the active part.
type ClearVoxels struct {
	snapshot gridSnapshot
}

func (c *ClearVoxels) Name() string { return "Clear Voxels" }

func (c *ClearVoxels) Do(ctx EditContext) error {
	c.snapshot.take(ctx)
	ctx.Voxels().Clear()
	ctx.InvalidateMesh()
	return nil
}

func (c *ClearVoxels) Undo(ctx EditContext) error {
	return c.snapshot.restore(ctx)
}

// DefaultTestPatternSize is the footprint of CreateTestPattern when Size
// is not positive.
const DefaultTestPatternSize = 8

// CreateTestPattern replaces the active part with a colored floor and a
// central column, handy for exercising meshing and export.
type CreateTestPattern struct {
	Size int

	snapshot gridSnapshot
}

func (c *CreateTestPattern) Name() string { return "Create Test Pattern" }

func (c *CreateTestPattern) Do(ctx EditContext) error {
	size := c.Size
	if size <= 0 {
		size = DefaultTestPatternSize
	}

	c.snapshot.take(ctx)
	grid := ctx.Voxels()
	grid.Clear()
	for x := 0; x < size; x++ {
		for y := 0; y < size; y++ {
			grid.Set(x, y, 0, (x+y)%8)
		}
	}
	mid := size / 2
	for z := 1; z <= mid; z++ {
		grid.Set(mid, mid, z, 4)
	}
	ctx.InvalidateMesh()
	return nil
}

func (c *CreateTestPattern) Undo(ctx EditContext) error {
	return c.snapshot.restore(ctx)
}
