// Package zipper writes a voxel grid as a ZIP file of per-layer PNG slices.
package zipper

import (
	"archive/zip"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"log"
	"os"
	"time"

	"github.com/gmlewis/voxel-editor/voxels"
)

// ErrEmptyGrid is returned when there is nothing to slice.
var ErrEmptyGrid = errors.New("grid has no voxels")

// Layer renders z layer of grid over the grid's x/y bounds. Occupied
// cells take their palette color; empty cells are transparent. Image row
// 0 is the highest y so the slice reads like a top view.
func Layer(grid *voxels.Grid, bounds voxels.Bounds, z int, palette []color.RGBA) *image.NRGBA {
	size := bounds.Size()
	img := image.NewNRGBA(image.Rect(0, 0, size[0], size[1]))
	for y := bounds.Min.Y; y <= bounds.Max.Y; y++ {
		for x := bounds.Min.X; x <= bounds.Max.X; x++ {
			idx, ok := grid.Get(x, y, z)
			if !ok {
				continue
			}
			c := voxels.PaletteColor(palette, idx)
			img.SetNRGBA(x-bounds.Min.X, bounds.Max.Y-y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return img
}

// Slice writes grid to filename as a ZIP holding one PNG per z layer,
// lowest layer first.
func Slice(filename string, grid *voxels.Grid, palette []color.RGBA) error {
	zf, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	if err := write(zf, grid, &zipper{fmtStr: "out%04d.png", palette: palette}); err != nil {
		zf.Close()
		return err
	}
	if err := zf.Close(); err != nil {
		return fmt.Errorf("Unable to close ZIP file: %w", err)
	}
	return nil
}

// zipper writes the layers of one grid to a ZIP archive.
type zipper struct {
	w *zip.Writer

	fmtStr   string
	palette  []color.RGBA
	density  bool
	manifest func(w io.Writer, size [3]int) error
}

func write(out io.Writer, grid *voxels.Grid, zp *zipper) error {
	bounds, ok := grid.Bounds()
	if !ok {
		return ErrEmptyGrid
	}
	log.Printf("Bounds=(%v,%v,%v)-(%v,%v,%v)",
		bounds.Min.X, bounds.Min.Y, bounds.Min.Z, bounds.Max.X, bounds.Max.Y, bounds.Max.Z)

	zp.w = zip.NewWriter(out)
	if zp.manifest != nil {
		f, err := zp.create("manifest.xml", "")
		if err != nil {
			return err
		}
		if err := zp.manifest(f, bounds.Size()); err != nil {
			return err
		}
	}

	for z := bounds.Min.Z; z <= bounds.Max.Z; z++ {
		var img image.Image = Layer(grid, bounds, z, zp.palette)
		if zp.density {
			img = density(img.(*image.NRGBA))
		}
		if err := zp.processLayer(z-bounds.Min.Z, z, img); err != nil {
			return err
		}
	}

	if err := zp.w.Close(); err != nil {
		return fmt.Errorf("Unable to close ZIP writer: %w", err)
	}
	return nil
}

func (zp *zipper) create(name, comment string) (io.Writer, error) {
	fh := &zip.FileHeader{
		Name:     name,
		Comment:  comment,
		Method:   zip.Deflate,
		Modified: time.Now(),
	}
	f, err := zp.w.CreateHeader(fh)
	if err != nil {
		return nil, fmt.Errorf("Unable to create ZIP file %q: %w", name, err)
	}
	return f, nil
}

func (zp *zipper) processLayer(n, z int, img image.Image) error {
	f, err := zp.create(fmt.Sprintf(zp.fmtStr, n), fmt.Sprintf("z=%v", z))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("PNG encode: %w", err)
	}
	return nil
}
