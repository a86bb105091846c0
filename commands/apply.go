package commands

import (
	"github.com/gmlewis/voxel-editor/voxels"
)

// cellState is the content of one cell: a color, or empty.
type cellState struct {
	cell     voxels.Cell
	color    int
	occupied bool
}

// applyStates writes states into the active grid and returns what each
// cell held before, in the same order. Every cell written is marked dirty.
// Cells in states must be distinct.
//
// All voxel mutations made by commands go through here.
func applyStates(ctx EditContext, states []cellState) []cellState {
	if len(states) == 0 {
		return nil
	}

	grid := ctx.Voxels()
	before := make([]cellState, len(states))
	touched := make(voxels.CellSet, len(states))
	for i, s := range states {
		color, ok := grid.At(s.cell)
		before[i] = cellState{cell: s.cell, color: color, occupied: ok}
		if s.occupied {
			grid.Set(s.cell.X, s.cell.Y, s.cell.Z, s.color)
		} else {
			grid.Remove(s.cell.X, s.cell.Y, s.cell.Z)
		}
		touched.Add(s.cell)
	}
	ctx.MarkDirtyCells(touched)
	return before
}

// cellEdit is the shared body of commands that paint or erase a fixed
// cell set.
type cellEdit struct {
	before []cellState
}

func (e *cellEdit) apply(ctx EditContext, cells voxels.CellSet, mode Mode, colorIndex int) {
	states := make([]cellState, 0, len(cells))
	for _, c := range cells.Sorted() {
		states = append(states, cellState{cell: c, color: colorIndex, occupied: mode == Paint})
	}
	e.before = applyStates(ctx, states)
}

func (e *cellEdit) undo(ctx EditContext) {
	applyStates(ctx, e.before)
	e.before = nil
}
