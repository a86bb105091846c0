// voxel-mesh-stats is a program to generate a list of grid sizes and
// the resulting face counts and binary STL file sizes of the naive and
// greedy meshers so that a correlation might be inferred.
//
// Each size is meshed as a solid sphere of that diameter. With -colors,
// voxels are striped through the palette so greedy merging is limited
// by color changes.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/gmlewis/voxel-editor/mesh"
	"github.com/gmlewis/voxel-editor/voxels"
)

const (
	stlHeaderSize = 84 // 80-byte header plus triangle count
	stlTriSize    = 50
)

var (
	maxSize = flag.Int64("max", 50000000, "Stop once the naive STL size exceeds max")
	colors  = flag.Bool("colors", false, "Stripe voxels through the palette")
)

func main() {
	flag.Parse()

	inputs := []int{4, 8, 12, 16, 24, 32, 48, 64, 96, 128}

	pts := []string{"size\tvoxels\tnaive\tgreedy\tnaive-stl\tgreedy-stl\tgreedy-time"}
	for _, size := range inputs {
		grid := sphere(size, *colors)
		log.Printf("Meshing size %v (%v voxels)...", size, grid.Count())

		naive := mesh.BuildSolidMesh(grid, false)
		start := time.Now()
		greedy := mesh.BuildSolidMesh(grid, true)
		elapsed := time.Since(start)

		naiveSTL := stlSize(naive)
		pts = append(pts, fmt.Sprintf("%v\t%v\t%v\t%v\t%v\t%v\t%v",
			size, grid.Count(), naive.FaceCount(), greedy.FaceCount(), naiveSTL, stlSize(greedy), elapsed))

		if naiveSTL >= *maxSize {
			break
		}
	}

	fmt.Printf("%v\n", strings.Join(pts, "\n"))
	log.Printf("Done.")
}

// sphere returns a solid sphere of the given diameter centered on the origin.
func sphere(diameter int, striped bool) *voxels.Grid {
	r := diameter / 2
	grid := voxels.New()
	for x := -r; x <= r; x++ {
		for y := -r; y <= r; y++ {
			for z := -r; z <= r; z++ {
				if x*x+y*y+z*z > r*r {
					continue
				}
				color := 1
				if striped {
					color = (z + r) % len(voxels.DefaultPalette)
				}
				grid.Set(x, y, z, color)
			}
		}
	}
	return grid
}

func stlSize(m *mesh.SurfaceMesh) int64 {
	return stlHeaderSize + stlTriSize*2*int64(m.FaceCount())
}
