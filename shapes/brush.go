// Package shapes computes the cell sets touched by editing tools:
// brushes, boxes, lines, drag strokes, flood fills and mirror expansion.
//
// Everything here is pure; the functions can be called to draw a preview
// before a command commits the same cells.
package shapes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gmlewis/voxel-editor/voxels"
)

// BrushShape is the footprint of a brush.
type BrushShape string

const (
	Cube   BrushShape = "cube"
	Sphere BrushShape = "sphere"
)

// MinBrushSize and MaxBrushSize bound the brush size.
const (
	MinBrushSize = 1
	MaxBrushSize = 3
)

var (
	ErrInvalidBrushSize  = errors.New("brush size must be 1, 2 or 3")
	ErrInvalidBrushShape = errors.New("brush shape must be cube or sphere")
)

// Brush is a brush profile.
type Brush struct {
	Size  int
	Shape BrushShape
}

// DefaultBrush is a single-cell cube.
var DefaultBrush = Brush{Size: 1, Shape: Cube}

// Validate checks the size and shape.
func (b Brush) Validate() error {
	if b.Size < MinBrushSize || b.Size > MaxBrushSize {
		return fmt.Errorf("%w: got %v", ErrInvalidBrushSize, b.Size)
	}
	if b.Shape != Cube && b.Shape != Sphere {
		return fmt.Errorf("%w: got %q", ErrInvalidBrushShape, b.Shape)
	}
	return nil
}

// ParseBrushShape parses "cube" or "sphere" (case-insensitive).
func ParseBrushShape(s string) (BrushShape, error) {
	switch shape := BrushShape(strings.ToLower(strings.TrimSpace(s))); shape {
	case Cube, Sphere:
		return shape, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidBrushShape, s)
}

// NextBrushSize cycles 1 -> 2 -> 3 -> 1. Invalid sizes restart at 1.
func NextBrushSize(size int) int {
	if size < MinBrushSize || size >= MaxBrushSize {
		return MinBrushSize
	}
	return size + 1
}

// BrushCells returns the cells covered by a brush centered on center.
// The radius is size-1: a cube brush covers a (2r+1)^3 block and a sphere
// brush keeps the cells of that block within distance r of the center,
// so size 1 is always exactly one cell.
func BrushCells(center voxels.Cell, size int, shape BrushShape) (voxels.CellSet, error) {
	if err := (Brush{Size: size, Shape: shape}).Validate(); err != nil {
		return nil, err
	}

	r := size - 1
	cells := voxels.CellSet{}
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			for dz := -r; dz <= r; dz++ {
				if shape == Sphere && dx*dx+dy*dy+dz*dz > r*r {
					continue
				}
				cells.Add(center.Add(voxels.Cell{X: dx, Y: dy, Z: dz}))
			}
		}
	}
	return cells, nil
}

// Cells applies the brush at center.
func (b Brush) Cells(center voxels.Cell) (voxels.CellSet, error) {
	return BrushCells(center, b.Size, b.Shape)
}
