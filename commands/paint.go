package commands

import (
	"fmt"

	"github.com/gmlewis/voxel-editor/shapes"
	"github.com/gmlewis/voxel-editor/voxels"
)

// brushCells expands center through the context's brush and mirrors.
func brushCells(ctx EditContext, center voxels.Cell) (voxels.CellSet, error) {
	cells, err := ctx.Brush().Cells(center)
	if err != nil {
		return nil, err
	}
	return ctx.ExpandMirroredCells(cells), nil
}

// PaintVoxel paints the brush footprint around one cell.
type PaintVoxel struct {
	X, Y, Z    int
	ColorIndex int

	cells voxels.CellSet
	edit  cellEdit
}

// NewPaintVoxel returns a command painting colorIndex at (x,y,z).
func NewPaintVoxel(x, y, z, colorIndex int) *PaintVoxel {
	return &PaintVoxel{X: x, Y: y, Z: z, ColorIndex: colorIndex}
}

func (c *PaintVoxel) Name() string { return "Paint Voxel" }

// Do paints the cells. The brush and mirror settings are captured on the
// first call so a redo repeats the original footprint.
func (c *PaintVoxel) Do(ctx EditContext) error {
	if c.cells == nil {
		cells, err := brushCells(ctx, voxels.Cell{X: c.X, Y: c.Y, Z: c.Z})
		if err != nil {
			return err
		}
		c.cells = cells
	}
	c.edit.apply(ctx, c.cells, Paint, c.ColorIndex)
	return nil
}

func (c *PaintVoxel) Undo(ctx EditContext) error {
	c.edit.undo(ctx)
	return nil
}

// RemoveVoxel erases the brush footprint around one cell.
type RemoveVoxel struct {
	X, Y, Z int

	cells voxels.CellSet
	edit  cellEdit
}

// NewRemoveVoxel returns a command erasing (x,y,z).
func NewRemoveVoxel(x, y, z int) *RemoveVoxel {
	return &RemoveVoxel{X: x, Y: y, Z: z}
}

func (c *RemoveVoxel) Name() string { return "Erase Voxel" }

func (c *RemoveVoxel) Do(ctx EditContext) error {
	if c.cells == nil {
		cells, err := brushCells(ctx, voxels.Cell{X: c.X, Y: c.Y, Z: c.Z})
		if err != nil {
			return err
		}
		c.cells = cells
	}
	c.edit.apply(ctx, c.cells, Erase, 0)
	return nil
}

func (c *RemoveVoxel) Undo(ctx EditContext) error {
	c.edit.undo(ctx)
	return nil
}

// BoxVoxels paints or erases a rectangle on a z plane.
type BoxVoxels struct {
	X0, Y0, X1, Y1, Z int
	Mode              Mode
	ColorIndex        int

	cells voxels.CellSet
	edit  cellEdit
}

// NewBoxVoxels returns a box command between corners (x0,y0) and (x1,y1).
func NewBoxVoxels(x0, y0, x1, y1, z int, mode Mode, colorIndex int) *BoxVoxels {
	return &BoxVoxels{X0: x0, Y0: y0, X1: x1, Y1: y1, Z: z, Mode: mode, ColorIndex: colorIndex}
}

func (c *BoxVoxels) Name() string { return fmt.Sprintf("Box %v", c.Mode.title()) }

func (c *BoxVoxels) Do(ctx EditContext) error {
	if err := c.Mode.validate(); err != nil {
		return err
	}
	if c.cells == nil {
		c.cells = ctx.ExpandMirroredCells(shapes.BoxPlaneCells(c.X0, c.Y0, c.X1, c.Y1, c.Z))
	}
	c.edit.apply(ctx, c.cells, c.Mode, c.ColorIndex)
	return nil
}

func (c *BoxVoxels) Undo(ctx EditContext) error {
	c.edit.undo(ctx)
	return nil
}

// LineVoxels paints or erases a Bresenham line on a z plane.
type LineVoxels struct {
	X0, Y0, X1, Y1, Z int
	Mode              Mode
	ColorIndex        int

	cells voxels.CellSet
	edit  cellEdit
}

// NewLineVoxels returns a line command from (x0,y0) to (x1,y1).
func NewLineVoxels(x0, y0, x1, y1, z int, mode Mode, colorIndex int) *LineVoxels {
	return &LineVoxels{X0: x0, Y0: y0, X1: x1, Y1: y1, Z: z, Mode: mode, ColorIndex: colorIndex}
}

func (c *LineVoxels) Name() string { return fmt.Sprintf("Line %v", c.Mode.title()) }

func (c *LineVoxels) Do(ctx EditContext) error {
	if err := c.Mode.validate(); err != nil {
		return err
	}
	if c.cells == nil {
		c.cells = ctx.ExpandMirroredCells(shapes.LinePlaneCells(c.X0, c.Y0, c.X1, c.Y1, c.Z))
	}
	c.edit.apply(ctx, c.cells, c.Mode, c.ColorIndex)
	return nil
}

func (c *LineVoxels) Undo(ctx EditContext) error {
	c.edit.undo(ctx)
	return nil
}
