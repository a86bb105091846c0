package voxels

import "image/color"

// DefaultPalette is the palette new projects start with.
// Color indices stored in a Grid index into a palette like this one.
var DefaultPalette = []color.RGBA{
	{R: 230, G: 80, B: 80, A: 255},
	{R: 240, G: 150, B: 70, A: 255},
	{R: 240, G: 220, B: 80, A: 255},
	{R: 110, G: 210, B: 110, A: 255},
	{R: 90, G: 170, B: 230, A: 255},
	{R: 140, G: 130, B: 230, A: 255},
	{R: 210, G: 110, B: 200, A: 255},
	{R: 220, G: 220, B: 220, A: 255},
}

// PaletteColor returns palette[index], wrapping out-of-range indices.
func PaletteColor(palette []color.RGBA, index int) color.RGBA {
	if len(palette) == 0 {
		return color.RGBA{A: 255}
	}
	index %= len(palette)
	if index < 0 {
		index += len(palette)
	}
	return palette[index]
}
