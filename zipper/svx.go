package zipper

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/gmlewis/voxel-editor/voxels"
)

// SVXSlice writes grid to filename as an SVX archive: a manifest plus
// one 8-bit density PNG per z layer. voxelSize is in millimeters.
func SVXSlice(filename string, grid *voxels.Grid, voxelSize float64, author string) error {
	zf, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	zp := &zipper{
		fmtStr:  "density/slice%04d.png",
		density: true,
		manifest: func(w io.Writer, size [3]int) error {
			_, err := fmt.Fprintf(w, manifestFmt,
				size[0],
				size[1],
				size[2],
				voxelSize/1000.0, // voxelSize in meters
				author)
			return err
		},
	}
	if err := write(zf, grid, zp); err != nil {
		zf.Close()
		return err
	}
	if err := zf.Close(); err != nil {
		return fmt.Errorf("Unable to close ZIP file: %w", err)
	}
	return nil
}

// density converts a color layer to grayscale occupancy: 255 where a
// voxel is present, 0 elsewhere.
func density(img *image.NRGBA) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.NRGBAAt(x, y).A != 0 {
				out.SetGray(x, y, color.Gray{Y: 255})
			}
		}
	}
	return out
}

var manifestFmt = `<?xml version="1.0"?>

<grid version="1.0" gridSizeX="%v" gridSizeY="%v" gridSizeZ="%v"
   voxelSize="%v" subvoxelBits="8" slicesOrientation="Z" >

    <channels>
        <channel type="DENSITY" bits="8" slices="density/slice%%04d.png" />
    </channels>

    <materials>
        <material id="1" urn="urn:shapeways:materials/1" />
    </materials>

    <metadata>
        <entry key="author" value=%q />
    </metadata>
</grid>`
