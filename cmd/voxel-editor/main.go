// voxel-editor runs one or more edit scripts against a voxel project
// without a GUI and writes the result.
//
// It can write an STL of the meshed active part, binvox files and
// ChiTuBox .cbddlp files (one per color), a ZIP of PNG layer slices, an
// SVX archive, and a recovery snapshot, in any combination.
//
// By default, voxel-editor only runs the scripts and reports statistics.
// To generate output, at least one of -stl, -binvox, -dlp, -zip, -svx or
// -snapshot must be supplied.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/gmlewis/voxel-editor/binvox"
	"github.com/gmlewis/voxel-editor/config"
	"github.com/gmlewis/voxel-editor/editor"
	"github.com/gmlewis/voxel-editor/photon"
	"github.com/gmlewis/voxel-editor/scene"
	"github.com/gmlewis/voxel-editor/snapshot"
	"github.com/gmlewis/voxel-editor/stl"
	"github.com/gmlewis/voxel-editor/voxels"
	"github.com/gmlewis/voxel-editor/zipper"
)

const defaultVoxelSize = 1.0

var (
	configFile = flag.String("config", "", "YAML editor settings (defaults are used when empty)")
	recoverArg = flag.String("recover", "", "Start from this recovery snapshot instead of an empty project")
	name       = flag.String("name", "Untitled", "Project name of a new project")
	voxelSize  = flag.Float64("size", defaultVoxelSize, "Voxel edge length in millimeters")
	naive      = flag.Bool("naive", false, "Mesh one quad per voxel face instead of merging faces")
	uuids      = flag.Bool("uuid", false, "Use random UUIDs for new part IDs")

	writeBinvox   = flag.Bool("binvox", false, "Write binvox files, one per color")
	writeDLP      = flag.Bool("dlp", false, "Write ChiTuBox .cbddlp files, one per color")
	res           = flag.Float64("res", photon.DefaultXYRes, "Printer XY resolution in microns for -dlp")
	zRes          = flag.Float64("zres", photon.DefaultZRes, "Printer layer height in microns for -dlp")
	writeSTL      = flag.Bool("stl", false, "Write an stl file of the active part")
	writeSVX      = flag.Bool("svx", false, "Write layer slices to an svx voxel file")
	writeZip      = flag.Bool("zip", false, "Write layer slices to a zip file")
	writeSnapshot = flag.Bool("snapshot", false, "Write a recovery snapshot of the whole project")
	out           = flag.String("out", "", "Base name of output files (default is the first script name)")
)

func main() {
	flag.Parse()

	if !*writeBinvox && !*writeDLP && !*writeSTL && !*writeSVX && !*writeZip && !*writeSnapshot {
		log.Printf("-binvox, -dlp, -stl, -svx, -zip, or -snapshot must be supplied to generate output. Running scripts only.")
	}

	cfg := config.Default()
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		check("config.Load: %v", err)
	}
	if *naive {
		cfg.GreedyMeshing = false
	}

	var ids scene.IDGenerator = &scene.CounterIDs{}
	if *uuids {
		ids = scene.UUIDIDs{}
	}

	var project *scene.Project
	if *recoverArg != "" {
		log.Printf("Recovering project from %q...", *recoverArg)
		var err error
		project, err = snapshot.Read(*recoverArg, ids)
		check("snapshot.Read: %v", err)
	} else {
		project = scene.NewProject(*name, ids)
	}

	session, err := editor.New(project, cfg)
	check("editor.New: %v", err)

	for _, arg := range flag.Args() {
		log.Printf("Running edit script %q...", arg)
		f, err := os.Open(arg)
		check("Open: %v", err)
		err = session.Run(f)
		f.Close()
		check("%v: %v", arg, err)
	}

	baseName := *out
	if baseName == "" && flag.NArg() > 0 {
		baseName = strings.TrimSuffix(flag.Arg(0), ".txt")
	}
	if baseName == "" {
		baseName = strings.ReplaceAll(project.Name, " ", "-")
	}

	part := session.ActivePart()
	grid := part.Voxels
	log.Printf("Active part %q (%v): %v voxels", part.Name, part.ID, grid.Count())

	if *writeSTL {
		m := session.RebuildActiveMesh()
		filename := baseName + ".stl"
		log.Printf("Writing %v faces to %v...", m.FaceCount(), filename)
		err = stl.WriteMesh(filename, m, float32(*voxelSize))
		check("stl.WriteMesh: %v", err)
	}

	if *writeBinvox {
		log.Printf("Writing %v colors into separate binvox files...", len(grid.Colors()))
		_, err = binvox.WriteByColor(baseName, grid, *voxelSize)
		check("binvox.WriteByColor: %v", err)
	}

	if *writeDLP {
		log.Printf("Writing %v colors into separate cbddlp files...", len(grid.Colors()))
		_, err = photon.Slice(baseName, grid, float32(*voxelSize), photon.Resolution{XY: float32(*res), Z: float32(*zRes)})
		check("photon.Slice: %v", err)
	}

	if *writeSVX {
		filename := baseName + ".svx"
		log.Printf("Slicing into %v...", filename)
		err = zipper.SVXSlice(filename, grid, *voxelSize, os.Getenv("USER"))
		check("zipper.SVXSlice: %v", err)
	}

	if *writeZip {
		filename := baseName + ".zip"
		log.Printf("Slicing into %v...", filename)
		err = zipper.Slice(filename, grid, voxels.DefaultPalette)
		check("zipper.Slice: %v", err)
	}

	if *writeSnapshot {
		filename := baseName + "-" + snapshot.FileName
		log.Printf("Writing recovery snapshot %v...", filename)
		err = snapshot.Write(filename, project)
		check("snapshot.Write: %v", err)
	}

	st := session.Stats()
	for _, ps := range st.Parts {
		log.Printf("%v: faces=%v triangles=%v edges=%v vertices=%v bounds=%v materials=%v islands=%v",
			ps.PartName, ps.Faces, ps.Triangles, ps.Edges, ps.Vertices, ps.BoundsSize, ps.MaterialsUsed, ps.Islands)
	}
	log.Printf("Scene: faces=%v triangles=%v materials=%v islands=%v", st.Faces, st.Triangles, st.MaterialsUsed, st.Islands)

	log.Println("Done.")
}

func check(fmtStr string, args ...interface{}) {
	err := args[len(args)-1]
	if err != nil {
		log.Fatalf(fmtStr, args...)
	}
}
