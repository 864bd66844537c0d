package gui

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Font atlas layout shared with the renderer: printable ASCII 32-127 laid
// out left to right, top to bottom in a FontAtlasCols x FontAtlasRows grid
// of FontCellWidth x FontCellHeight cells.
const (
	FontAtlasCols  = 16
	FontAtlasRows  = 6
	FontCellWidth  = 7
	FontCellHeight = 13
)

// BuildFontAtlas rasterises the 7x13 fixed bitmap font into a single
// channel coverage image laid out as DrawList.AddText expects.
func BuildFontAtlas() *image.Alpha {
	img := image.NewAlpha(image.Rect(0, 0, FontAtlasCols*FontCellWidth, FontAtlasRows*FontCellHeight))
	face := basicfont.Face7x13
	d := font.Drawer{Dst: img, Src: image.Opaque, Face: face}
	for ch := rune(32); ch < 127; ch++ {
		idx := int(ch - 32)
		col, row := idx%FontAtlasCols, idx/FontAtlasCols
		d.Dot = fixed.P(col*FontCellWidth, row*FontCellHeight+face.Ascent)
		d.DrawString(string(ch))
	}
	return img
}
