package commands

import (
	"github.com/gmlewis/voxel-editor/voxels"
)

// MoveSelectedVoxels shifts the selected voxels by a fixed offset.
//
// If any destination is occupied by a voxel that is not itself moving,
// nothing changes and CollisionBlocked is set. On success the selection
// follows the voxels to their new cells.
type MoveSelectedVoxels struct {
	DX, DY, DZ int

	CollisionBlocked bool

	sources []cellState
	before  []cellState
}

// NewMoveSelectedVoxels returns a command moving the selection by (dx,dy,dz).
func NewMoveSelectedVoxels(dx, dy, dz int) *MoveSelectedVoxels {
	return &MoveSelectedVoxels{DX: dx, DY: dy, DZ: dz}
}

func (c *MoveSelectedVoxels) Name() string { return "Move Selection" }

func (c *MoveSelectedVoxels) delta() voxels.Cell {
	return voxels.Cell{X: c.DX, Y: c.DY, Z: c.DZ}
}

// Do moves the voxels. The selection is captured on the first call so a
// redo moves the same voxels.
func (c *MoveSelectedVoxels) Do(ctx EditContext) error {
	grid := ctx.Voxels()
	if c.sources == nil {
		c.sources = []cellState{}
		for _, cell := range ctx.SelectedVoxels().Sorted() {
			if color, ok := grid.At(cell); ok {
				c.sources = append(c.sources, cellState{cell: cell, color: color, occupied: true})
			}
		}
	}

	c.CollisionBlocked = false
	d := c.delta()
	if len(c.sources) == 0 || d == (voxels.Cell{}) {
		return nil
	}

	moving := voxels.CellSet{}
	for _, s := range c.sources {
		moving.Add(s.cell)
	}
	for _, s := range c.sources {
		target := s.cell.Add(d)
		if _, occupied := grid.At(target); occupied && !moving.Has(target) {
			c.CollisionBlocked = true
			return nil
		}
	}

	final := map[voxels.Cell]cellState{}
	for _, s := range c.sources {
		final[s.cell] = cellState{cell: s.cell}
	}
	targets := voxels.CellSet{}
	for _, s := range c.sources {
		target := s.cell.Add(d)
		final[target] = cellState{cell: target, color: s.color, occupied: true}
		targets.Add(target)
	}
	states := make([]cellState, 0, len(final))
	for _, cell := range voxels.CellSet(cellKeys(final)).Sorted() {
		states = append(states, final[cell])
	}

	c.before = applyStates(ctx, states)
	ctx.SetSelectedVoxels(targets)
	return nil
}

func (c *MoveSelectedVoxels) Undo(ctx EditContext) error {
	if c.before == nil {
		return nil
	}
	applyStates(ctx, c.before)
	c.before = nil

	selection := voxels.CellSet{}
	for _, s := range c.sources {
		selection.Add(s.cell)
	}
	ctx.SetSelectedVoxels(selection)
	return nil
}

func cellKeys(m map[voxels.Cell]cellState) map[voxels.Cell]struct{} {
	keys := make(map[voxels.Cell]struct{}, len(m))
	for k := range m {
		keys[k] = struct{}{}
	}
	return keys
}
