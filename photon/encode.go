package photon

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"io"

	"github.com/gmlewis/voxel-editor/voxels"
)

// ChiTuBox defaults.
const (
	screenWidth     = 0xa00
	screenHeight    = 0x5a0
	previewWidth    = 0x190
	previewHeight   = 0x12c
	thumbnailWidth  = 0xc8
	thumbnailHeight = 0x7d

	fileMagic1      = 0x12FD0019
	fileMagic2      = 0x01
	plateX          = 68.04
	plateY          = 120.96
	plateZ          = 150.0
	normalExposure  = 6
	bottomExposure  = 50
	bottomLayers    = 8
	lightCuringType = 1
)

// Layer image encoding: one byte per run, the high bit set for lit pixels.
// ChiTuBox stops runs short of 0x7f.
const (
	litFlag = 0x80
	maxRun  = 0x7f - 2
)

// Preview encoding: RGB555 words with bit 5 marking a repeated color,
// followed by a count word.
const (
	previewRepeat = 0x20
	previewCount  = 0x3000
	maxPreviewRun = 0xfff
	minPreviewRun = 3
)

// write streams the .cbddlp file of one color.
func write(w io.WriteSeeker, grid *voxels.Grid, colorIndex int, l layout) error {
	shape := l.footprint(grid, colorIndex)
	c := voxels.PaletteColor(voxels.DefaultPalette, colorIndex)
	preview := encodePreview(shape, c, previewWidth, previewHeight)
	thumbnail := encodePreview(shape, c, thumbnailWidth, thumbnailHeight)

	previewOffset := binary.Size(binCompatFileHeader{})
	previewDataOffset := previewOffset + binary.Size(binCompatPreviewHeader{})
	thumbnailOffset := previewDataOffset + len(preview)
	thumbnailDataOffset := thumbnailOffset + binary.Size(binCompatPreviewHeader{})
	tableOffset := thumbnailDataOffset + len(thumbnail)
	dataOffset := tableOffset + l.numSlices*binary.Size(binCompatLayerHeader{})

	header := binCompatFileHeader{
		Magic1:                       fileMagic1,
		Magic2:                       fileMagic2,
		PlateX:                       plateX,
		PlateY:                       plateY,
		PlateZ:                       plateZ,
		LayerThickness:               l.zRes / 1000,
		NormalExposureTime:           normalExposure,
		BottomExposureTime:           bottomExposure,
		BottomLayers:                 bottomLayers,
		ScreenHeight:                 screenHeight,
		ScreenWidth:                  screenWidth,
		PreviewHeaderOffset:          uint32(previewOffset),
		LayerHeadersOffset:           uint32(tableOffset),
		TotalLayers:                  uint32(l.numSlices),
		PreviewThumbnailHeaderOffset: uint32(thumbnailOffset),
		LightCuringType:              lightCuringType,
	}

	table := make([]binCompatLayerHeader, l.numSlices)
	for i := range table {
		table[i].AbsoluteHeight = float32(i) * l.zRes / 1000
		table[i].ExposureTime = normalExposure
		if i < bottomLayers {
			table[i].ExposureTime = bottomExposure
		}
	}

	parts := []interface{}{
		header,
		binCompatPreviewHeader{Width: previewWidth, Height: previewHeight, PreviewDataOffset: uint32(previewDataOffset), PreviewDataSize: uint32(len(preview))},
		preview,
		binCompatPreviewHeader{Width: thumbnailWidth, Height: thumbnailHeight, PreviewDataOffset: uint32(thumbnailDataOffset), PreviewDataSize: uint32(len(thumbnail))},
		thumbnail,
		table,
	}
	for _, p := range parts {
		if err := binary.Write(w, binary.LittleEndian, p); err != nil {
			return err
		}
	}

	// Every print layer of one voxel layer has the same image.
	offset := dataOffset
	var data []byte
	for n := range table {
		if n%l.layers == 0 {
			data = encodeLayer(l.layerMask(grid, colorIndex, n), l.pixels)
		}
		if _, err := w.Write(data); err != nil {
			return fmt.Errorf("layer %v: %w", n, err)
		}
		table[n].ImageDataOffset = uint32(offset)
		table[n].ImageDataSize = uint32(len(data))
		offset += len(data)
	}

	if _, err := w.Seek(int64(tableOffset), io.SeekStart); err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	return binary.Write(w, binary.LittleEndian, table)
}

// runWriter collects the runs of a layer image.
type runWriter struct {
	out []byte
	lit bool
	n   int
}

func (rw *runWriter) add(lit bool, count int) {
	if count <= 0 {
		return
	}
	if lit != rw.lit {
		rw.flush()
		rw.lit = lit
	}
	rw.n += count
	for rw.n >= maxRun {
		rw.emit(maxRun)
		rw.n -= maxRun
	}
}

func (rw *runWriter) flush() {
	if rw.n > 0 {
		rw.emit(rw.n)
		rw.n = 0
	}
}

func (rw *runWriter) emit(n int) {
	b := byte(n)
	if rw.lit {
		b |= litFlag
	}
	rw.out = append(rw.out, b)
}

// encodeLayer encodes m over the whole screen, one screen column at a
// time, scaling each voxel to pixels x pixels and centering the model.
// Anything past the screen edge is clipped.
func encodeLayer(m mask, pixels int) []byte {
	w, h := m.width*pixels, m.height*pixels
	xOffset := max(0, (screenWidth-w)>>1)
	yOffset := min(screenHeight, max(0, (screenHeight-h)>>1))

	rw := &runWriter{}
	for x := 0; x < screenWidth; x++ {
		px := x - xOffset
		if px < 0 || px >= w {
			rw.add(false, screenHeight)
			continue
		}
		rw.add(false, yOffset)
		y := yOffset
		for py := 0; py < h && y < screenHeight; py++ {
			rw.add(m.at(px/pixels, py/pixels), 1)
			y++
		}
		rw.add(false, screenHeight-y)
	}
	rw.flush()
	return rw.out
}

// encodePreview scales m to width x height, colored c where lit and black
// elsewhere. Runs of minPreviewRun or more equal pixels are written as a
// repeat word and a count word.
func encodePreview(m mask, c color.RGBA, width, height int) []byte {
	litWord := rgb555(c)
	pixel := func(i int) uint16 {
		if m.at(i%width*m.width/width, i/width*m.height/height) {
			return litWord
		}
		return 0
	}

	var out []byte
	word := func(v uint16) { out = append(out, byte(v), byte(v>>8)) }
	total := width * height
	for i := 0; i < total; {
		p := pixel(i)
		n := 1
		for i+n < total && n < maxPreviewRun && pixel(i+n) == p {
			n++
		}
		if n < minPreviewRun {
			for k := 0; k < n; k++ {
				word(p)
			}
		} else {
			word(p | previewRepeat)
			word(uint16(n-1) | previewCount)
		}
		i += n
	}
	return out
}

// rgb555 packs c into the preview pixel format, leaving bit 5 clear.
func rgb555(c color.RGBA) uint16 {
	return uint16(c.R>>3) | uint16(c.G>>3)<<6 | uint16(c.B>>3)<<11
}
