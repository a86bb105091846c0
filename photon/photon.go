// Package photon writes voxel grids to ChiTuBox .cbddlp files (which are
// identical to AnyCubic .photon files), one file per material.
//
// The file layout follows github.com/Andoryuuta/photon. Layers are encoded
// straight from the grid and streamed to the output file; only the layer
// table is patched at the end.
package photon

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/gmlewis/voxel-editor/voxels"
)

// Default printer resolution in microns.
const (
	DefaultXYRes = 47.25
	DefaultZRes  = 50
)

// ErrEmptyGrid is returned when there is nothing to print.
var ErrEmptyGrid = errors.New("empty voxel grid")

// Resolution is the printer resolution in microns: XY per screen pixel
// and Z per layer.
type Resolution struct {
	XY float32
	Z  float32
}

// Slice writes one .cbddlp file per color used by grid, named
// "<base>-matNN.cbddlp", and returns the names written. Each voxel is
// voxelSize millimeters on a side.
func Slice(baseFilename string, grid *voxels.Grid, voxelSize float32, res Resolution) ([]string, error) {
	b, ok := grid.Bounds()
	if !ok {
		return nil, ErrEmptyGrid
	}
	l := newLayout(b, voxelSize, res)
	log.Printf("MBB=(%v,%v,%v)-(%v,%v,%v), %v slices, %v pixels per voxel",
		b.Min.X, b.Min.Y, b.Min.Z, b.Max.X, b.Max.Y, b.Max.Z, l.numSlices, l.pixels)

	var names []string
	for _, colorIndex := range grid.Colors() {
		dlpName := fmt.Sprintf("%v-mat%02d.cbddlp", baseFilename, colorIndex)
		w, err := os.Create(dlpName)
		if err != nil {
			return names, fmt.Errorf("Create: %w", err)
		}
		if err := write(w, grid, colorIndex, l); err != nil {
			w.Close()
			return names, fmt.Errorf("%v: %w", dlpName, err)
		}
		if err := w.Close(); err != nil {
			return names, fmt.Errorf("Unable to close file: %w", err)
		}
		names = append(names, dlpName)
	}
	return names, nil
}

// layout maps grid cells onto printer pixels and layers.
type layout struct {
	bounds    voxels.Bounds
	pixels    int // screen pixels per voxel edge
	layers    int // print layers per voxel
	numSlices int
	zRes      float32
}

func newLayout(b voxels.Bounds, voxelSize float32, res Resolution) layout {
	perVoxel := func(micronsPerStep float32) int {
		return max(1, int(math.Round(float64(voxelSize*1000/micronsPerStep))))
	}
	l := layout{bounds: b, pixels: perVoxel(res.XY), layers: perVoxel(res.Z), zRes: res.Z}
	l.numSlices = b.Size()[2] * l.layers
	return l
}

// mask marks the cells of one color in an x-y plane of the grid bounds.
// Row 0 is the maximum y, matching the printer's screen orientation.
type mask struct {
	width, height int
	lit           []bool
}

func (l layout) newMask() mask {
	size := l.bounds.Size()
	return mask{width: size[0], height: size[1], lit: make([]bool, size[0]*size[1])}
}

func (m mask) set(l layout, c voxels.Cell) {
	m.lit[(l.bounds.Max.Y-c.Y)*m.width+c.X-l.bounds.Min.X] = true
}

func (m mask) at(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.width && y < m.height && m.lit[y*m.width+x]
}

// layerMask returns the voxel layer printed by slice n.
func (l layout) layerMask(grid *voxels.Grid, colorIndex, n int) mask {
	m := l.newMask()
	z := l.bounds.Min.Z + n/l.layers
	for y := l.bounds.Min.Y; y <= l.bounds.Max.Y; y++ {
		for x := l.bounds.Min.X; x <= l.bounds.Max.X; x++ {
			if v, ok := grid.Get(x, y, z); ok && v == colorIndex {
				m.set(l, voxels.Cell{X: x, Y: y, Z: z})
			}
		}
	}
	return m
}

// footprint returns every column holding colorIndex at any height.
func (l layout) footprint(grid *voxels.Grid, colorIndex int) mask {
	m := l.newMask()
	grid.Each(func(c voxels.Cell, v int) {
		if v == colorIndex {
			m.set(l, c)
		}
	})
	return m
}
