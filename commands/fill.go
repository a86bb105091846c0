package commands

import (
	"fmt"

	"github.com/gmlewis/voxel-editor/shapes"
	"github.com/gmlewis/voxel-editor/voxels"
)

// FillVoxels flood-fills (or flood-erases) the region connected to a seed
// cell, using the context's connectivity and cell limit.
//
// When the region is larger than the limit nothing is changed and
// AbortedByThreshold is set; the command still succeeds. The outcome of
// the first Do is kept, so redoing an aborted fill changes nothing either.
type FillVoxels struct {
	X, Y, Z    int
	Mode       Mode
	ColorIndex int

	AbortedByThreshold    bool
	AbortedThresholdLimit int

	done  bool
	cells voxels.CellSet
	edit  cellEdit
}

// NewFillVoxels returns a fill command seeded at (x,y,z).
func NewFillVoxels(x, y, z int, mode Mode, colorIndex int) *FillVoxels {
	return &FillVoxels{X: x, Y: y, Z: z, Mode: mode, ColorIndex: colorIndex}
}

func (c *FillVoxels) Name() string { return fmt.Sprintf("Fill %v", c.Mode.title()) }

func (c *FillVoxels) Do(ctx EditContext) error {
	if err := c.Mode.validate(); err != nil {
		return err
	}
	if !c.done {
		limit := ctx.FillMaxCells()
		seed := voxels.Cell{X: c.X, Y: c.Y, Z: c.Z}
		region, ok := shapes.FloodFill(ctx.Voxels(), seed, ctx.FillConnectivity(), limit)
		c.done = true
		if !ok {
			c.AbortedByThreshold = true
			c.AbortedThresholdLimit = limit
			return nil
		}
		c.cells = ctx.ExpandMirroredCells(region)
	}
	if c.AbortedByThreshold {
		return nil
	}
	c.edit.apply(ctx, c.cells, c.Mode, c.ColorIndex)
	return nil
}

func (c *FillVoxels) Undo(ctx EditContext) error {
	c.edit.undo(ctx)
	return nil
}
