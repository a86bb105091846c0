// -*- compile-command: "go run main.go"; -*-

// test-voxels writes out simple STL example files.
package main

import (
	"log"

	"github.com/gmlewis/voxel-editor/mesh"
	"github.com/gmlewis/voxel-editor/stl"
	"github.com/gmlewis/voxel-editor/voxels"
)

func main() {
	cube := voxels.New()
	cube.Set(0, 0, 0, 1)
	err := stl.WriteMesh("cube.stl", mesh.ExtractSurface(cube), 10)
	check("stl.WriteMesh: %v", err)

	// An L-shaped plate shows greedy merging across neighboring voxels.
	plate := voxels.New()
	for x := 0; x < 4; x++ {
		plate.Set(x, 0, 0, 1)
	}
	for y := 1; y < 3; y++ {
		plate.Set(0, y, 0, 1)
	}
	err = stl.WriteMesh("plate-naive.stl", mesh.BuildSolidMesh(plate, false), 10)
	check("stl.WriteMesh: %v", err)
	err = stl.WriteMesh("plate-greedy.stl", mesh.BuildSolidMesh(plate, true), 10)
	check("stl.WriteMesh: %v", err)

	log.Printf("Done.")
}

func check(fmtStr string, args ...interface{}) {
	if err := args[len(args)-1]; err != nil {
		log.Fatalf(fmtStr, args...)
	}
}
