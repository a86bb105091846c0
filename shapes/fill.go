package shapes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gmlewis/voxel-editor/voxels"
)

// Connectivity selects the neighborhood a flood fill spreads through.
type Connectivity string

const (
	// Plane spreads 4-connected within the seed's z plane.
	Plane Connectivity = "plane"
	// Volume spreads 6-connected through the whole volume.
	Volume Connectivity = "volume"
)

// ErrInvalidConnectivity is returned for an unknown fill connectivity.
var ErrInvalidConnectivity = errors.New("fill connectivity must be plane or volume")

// ParseConnectivity parses "plane" or "volume" (case-insensitive).
func ParseConnectivity(s string) (Connectivity, error) {
	switch c := Connectivity(strings.ToLower(strings.TrimSpace(s))); c {
	case Plane, Volume:
		return c, nil
	}
	return "", fmt.Errorf("%w: got %q", ErrInvalidConnectivity, s)
}

var (
	planeNeighbors = []voxels.Cell{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1},
	}
	volumeNeighbors = []voxels.Cell{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
	}
)

// Occupancy is the read-only view of a grid a flood fill needs.
type Occupancy interface {
	At(c voxels.Cell) (int, bool)
	Bounds() (voxels.Bounds, bool)
}

// FloodFill returns the region connected to seed whose cells match the
// seed's current state: the same color when the seed is occupied, or
// empty when it is not. The search never leaves the grid's occupied
// bounds expanded to include the seed.
//
// If the region grows beyond maxCells the search stops and ok is false;
// that is an expected outcome, not an error. maxCells <= 0 disables
// the limit.
func FloodFill(grid Occupancy, seed voxels.Cell, connectivity Connectivity, maxCells int) (region voxels.CellSet, ok bool) {
	neighbors := volumeNeighbors
	if connectivity == Plane {
		neighbors = planeNeighbors
	}

	limits := voxels.Bounds{Min: seed, Max: seed}
	if b, occupied := grid.Bounds(); occupied {
		limits = b.Include(seed)
	}

	targetColor, targetOccupied := grid.At(seed)
	matches := func(c voxels.Cell) bool {
		color, occupied := grid.At(c)
		return occupied == targetOccupied && (!occupied || color == targetColor)
	}

	region = voxels.NewCellSet(seed)
	queue := []voxels.Cell{seed}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		for _, d := range neighbors {
			n := c.Add(d)
			if region.Has(n) || !limits.Contains(n) || !matches(n) {
				continue
			}
			region.Add(n)
			if maxCells > 0 && region.Len() > maxCells {
				return nil, false
			}
			queue = append(queue, n)
		}
	}
	return region, true
}
