// Package binvox writes voxel grids as binvox files.
package binvox

import (
	"errors"
	"fmt"
	"log"

	"github.com/gmlewis/stldice/v4/binvox"
	"github.com/gmlewis/voxel-editor/voxels"
)

// ErrEmptyGrid is returned when there is nothing to write.
var ErrEmptyGrid = errors.New("grid has no voxels")

// New returns a binvox model holding the voxels of grid for which keep
// returns true (all of them when keep is nil). Cells are shifted so the
// grid's minimum corner is at index (0,0,0); voxelSize is the edge length
// of one voxel in model units.
func New(grid *voxels.Grid, voxelSize float64, keep func(colorIndex int) bool) (*binvox.BinVOX, error) {
	bounds, ok := grid.Bounds()
	if !ok {
		return nil, ErrEmptyGrid
	}
	size := bounds.Size()
	scale := voxelSize * float64(max(size[0], size[1], size[2]))
	b := binvox.New(
		size[0],
		size[1],
		size[2],
		voxelSize*float64(bounds.Min.X),
		voxelSize*float64(bounds.Min.Y),
		voxelSize*float64(bounds.Min.Z),
		scale,
		false,
	)

	grid.Each(func(c voxels.Cell, colorIndex int) {
		if keep != nil && !keep(colorIndex) {
			return
		}
		b.Add(c.X-bounds.Min.X, c.Y-bounds.Min.Y, c.Z-bounds.Min.Z)
	})
	return b, nil
}

// Write writes every voxel of grid to filename.
func Write(filename string, grid *voxels.Grid, voxelSize float64) error {
	b, err := New(grid, voxelSize, nil)
	if err != nil {
		return err
	}
	log.Printf("Writing: %v", filename)
	if err := b.Write(filename, 0, 0, 0, b.NX, b.NY, b.NZ); err != nil {
		return fmt.Errorf("Write: %w", err)
	}
	return nil
}

// WriteByColor writes one binvox file per color used in grid, named
// <baseFilename>-mat<NN>.binvox, and returns the file names. All files
// share the grid's bounds so they line up when loaded together.
func WriteByColor(baseFilename string, grid *voxels.Grid, voxelSize float64) ([]string, error) {
	if grid.Count() == 0 {
		return nil, ErrEmptyGrid
	}

	var filenames []string
	for _, color := range grid.Colors() {
		filename := fmt.Sprintf("%v-mat%02d.binvox", baseFilename, color)
		b, err := New(grid, voxelSize, func(c int) bool { return c == color })
		if err != nil {
			return filenames, err
		}
		log.Printf("Writing: %v", filename)
		if err := b.Write(filename, 0, 0, 0, b.NX, b.NY, b.NZ); err != nil {
			return filenames, fmt.Errorf("Write: %w", err)
		}
		filenames = append(filenames, filename)
	}
	return filenames, nil
}
