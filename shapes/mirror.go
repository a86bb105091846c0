package shapes

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gmlewis/voxel-editor/voxels"
)

// ErrInvalidAxis is returned for an axis name other than x, y or z.
var ErrInvalidAxis = errors.New("axis must be x, y or z")

// ParseAxis maps "x", "y" and "z" (case-insensitive) to 0, 1 and 2.
func ParseAxis(name string) (int, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "x":
		return 0, nil
	case "y":
		return 1, nil
	case "z":
		return 2, nil
	}
	return 0, fmt.Errorf("%w: got %q", ErrInvalidAxis, name)
}

// Mirror holds the mirror planes. A cell coordinate c on an enabled axis
// reflects to 2*Offset-c.
type Mirror struct {
	Enabled [3]bool
	Offset  [3]int
}

// Any reports whether at least one axis is mirrored.
func (m Mirror) Any() bool {
	return m.Enabled[0] || m.Enabled[1] || m.Enabled[2]
}

// Expand returns cells plus every reflection of them across each
// combination of enabled planes. Coincident reflections collapse.
func (m Mirror) Expand(cells voxels.CellSet) voxels.CellSet {
	out := make(voxels.CellSet, len(cells))
	for c := range cells {
		out.Add(c)
	}
	for axis := 0; axis < 3; axis++ {
		if !m.Enabled[axis] {
			continue
		}
		reflected := make([]voxels.Cell, 0, len(out))
		for c := range out {
			reflected = append(reflected, c.WithAxis(axis, 2*m.Offset[axis]-c.Axis(axis)))
		}
		for _, c := range reflected {
			out.Add(c)
		}
	}
	return out
}
