package gui

import (
	"math"
	"slices"
	"sync"

	"github.com/mattn/go-runewidth"
)

// The whole UI is rebuilt every frame; pooled lists keep their buffers.
var drawListPool = sync.Pool{
	New: func() any {
		return &DrawList{
			VtxBuffer: make([]Vertex, 0, 1024),
			IdxBuffer: make([]uint16, 0, 2048),
			CmdBuffer: make([]DrawCmd, 0, 16),
			clipStack: make([][4]float32, 0, 8),
		}
	},
}

// AcquireDrawList takes an empty DrawList from the pool.
func AcquireDrawList() *DrawList {
	dl := drawListPool.Get().(*DrawList)
	dl.Clear()
	return dl
}

// ReleaseDrawList hands dl back to the pool.
func ReleaseDrawList(dl *DrawList) {
	if dl != nil {
		drawListPool.Put(dl)
	}
}

// noClip is the clip rectangle of an unclipped list.
var noClip = [4]float32{-1e9, -1e9, 1e9, 1e9}

// DrawList collects one layer of a frame as indexed triangles. A new DrawCmd
// starts whenever the texture or clip rectangle changes; indices are
// relative to their command's VertexOffset.
type DrawList struct {
	CmdBuffer []DrawCmd
	VtxBuffer []Vertex
	IdxBuffer []uint16

	clipStack [][4]float32
	clip      [4]float32
	texture   uint32

	// Where the open command's vertices and indices begin
	vtxBase uint32
	idxBase uint32
}

// Clear empties the list, keeping its buffers.
func (dl *DrawList) Clear() {
	dl.CmdBuffer = dl.CmdBuffer[:0]
	dl.VtxBuffer = dl.VtxBuffer[:0]
	dl.IdxBuffer = dl.IdxBuffer[:0]
	dl.clipStack = dl.clipStack[:0]
	dl.clip = noClip
	dl.texture = 0
	dl.vtxBase, dl.idxBase = 0, 0
}

// PushClipRect clips what follows to (x1, y1)-(x2, y2), intersected with
// the enclosing clip.
func (dl *DrawList) PushClipRect(x1, y1, x2, y2 float32) {
	if len(dl.clipStack) > 0 {
		c := dl.clip
		x1, y1 = maxf(x1, c[0]), maxf(y1, c[1])
		x2, y2 = maxf(x1, minf(x2, c[2])), maxf(y1, minf(y2, c[3]))
	}
	dl.clipStack = append(dl.clipStack, dl.clip)
	dl.clip = [4]float32{x1, y1, x2, y2}
	dl.openCmd()
}

// PopClipRect restores the clip in effect before the last push.
func (dl *DrawList) PopClipRect() {
	n := len(dl.clipStack)
	if n == 0 {
		return
	}
	dl.clip = dl.clipStack[n-1]
	dl.clipStack = dl.clipStack[:n-1]
	dl.openCmd()
}

// SetTexture binds textureID for what follows; 0 draws untextured.
func (dl *DrawList) SetTexture(textureID uint32) {
	if dl.texture == textureID {
		return
	}
	dl.texture = textureID
	dl.openCmd()
}

// closeCmd fixes the element count of the open command.
func (dl *DrawList) closeCmd() {
	if n := len(dl.CmdBuffer); n > 0 {
		dl.CmdBuffer[n-1].ElemCount = uint32(len(dl.IdxBuffer)) - dl.idxBase
	}
}

// openCmd closes the current command and starts one with the current
// texture and clip.
func (dl *DrawList) openCmd() {
	dl.closeCmd()
	dl.vtxBase = uint32(len(dl.VtxBuffer))
	dl.idxBase = uint32(len(dl.IdxBuffer))
	dl.CmdBuffer = append(dl.CmdBuffer, DrawCmd{
		ClipRect:     dl.clip,
		TextureID:    dl.texture,
		VertexOffset: dl.vtxBase,
		IndexOffset:  dl.idxBase,
	})
}

// reserve makes room for n more vertices in the open command and returns
// the index of the first one.
func (dl *DrawList) reserve(n int) uint16 {
	// 16-bit indices address at most 64K vertices per command
	if len(dl.CmdBuffer) == 0 || len(dl.VtxBuffer)-int(dl.vtxBase)+n > math.MaxUint16 {
		dl.openCmd()
	}
	return uint16(len(dl.VtxBuffer) - int(dl.vtxBase))
}

func (dl *DrawList) quad(a, b, c, d Vertex) {
	i := dl.reserve(4)
	dl.VtxBuffer = append(dl.VtxBuffer, a, b, c, d)
	dl.IdxBuffer = append(dl.IdxBuffer, i, i+1, i+2, i, i+2, i+3)
}

func hasAlpha(color uint32) bool { return color>>24 != 0 }

func vtx(x, y float32, color uint32) Vertex {
	return Vertex{Pos: [2]float32{x, y}, Color: color}
}

// AddRect fills a rectangle.
func (dl *DrawList) AddRect(x, y, w, h float32, color uint32) {
	if !hasAlpha(color) {
		return
	}
	dl.quad(vtx(x, y, color), vtx(x+w, y, color), vtx(x+w, y+h, color), vtx(x, y+h, color))
}

// AddRectOutline strokes the inside edge of a rectangle.
func (dl *DrawList) AddRectOutline(x, y, w, h float32, color uint32, thickness float32) {
	if !hasAlpha(color) {
		return
	}
	t := thickness
	dl.AddRect(x, y, w, t, color)
	dl.AddRect(x, y+h-t, w, t, color)
	dl.AddRect(x, y+t, t, h-2*t, color)
	dl.AddRect(x+w-t, y+t, t, h-2*t, color)
}

// AddLine draws a segment thickness pixels wide as a quad.
func (dl *DrawList) AddLine(x1, y1, x2, y2 float32, color uint32, thickness float32) {
	if !hasAlpha(color) {
		return
	}
	dx, dy := x2-x1, y2-y1
	scale := thickness / 2
	if l := float32(math.Hypot(float64(dx), float64(dy))); l > 0 {
		scale /= l
	}
	nx, ny := -dy*scale, dx*scale
	dl.quad(vtx(x1+nx, y1+ny, color), vtx(x2+nx, y2+ny, color), vtx(x2-nx, y2-ny, color), vtx(x1-nx, y1-ny, color))
}

// AddTriangle fills a triangle.
func (dl *DrawList) AddTriangle(x1, y1, x2, y2, x3, y3 float32, color uint32) {
	if !hasAlpha(color) {
		return
	}
	i := dl.reserve(3)
	dl.VtxBuffer = append(dl.VtxBuffer, vtx(x1, y1, color), vtx(x2, y2, color), vtx(x3, y3, color))
	dl.IdxBuffer = append(dl.IdxBuffer, i, i+1, i+2)
}

// asciiFallback stands in for symbols the built-in font lacks.
var asciiFallback = map[rune]rune{
	'►': '>', '▶': '>', '▸': '>', '→': '>', '⯈': '>',
	'◄': '<', '◀': '<', '◂': '<', '←': '<', '⯇': '<',
	'▼': 'v', '▾': 'v', '↓': 'v',
	'▲': '^', '▴': '^', '↑': '^',
	'●': '*', '•': '*', '◆': '*',
	'✓': '+', '✔': '+',
	'✗': 'x', '✘': 'x',
	'—': '-', '–': '-',
}

// glyph returns the font atlas cell drawn for r.
func glyph(r rune) rune {
	if sub, ok := asciiFallback[r]; ok {
		r = sub
	}
	if r < 32 || r > 127 {
		return '?'
	}
	return r
}

// AddText draws one line of text from the font atlas, scale times the
// charWidth x charHeight cell. Runes advance by their terminal width: wide
// runes take two cells and combining marks none.
func (dl *DrawList) AddText(x, y float32, text string, color uint32, scale float32, charWidth, charHeight float32) {
	if !hasAlpha(color) {
		return
	}
	cellW, cellH := charWidth*scale, charHeight*scale
	for _, r := range text {
		cells := runewidth.RuneWidth(r)
		if cells == 0 {
			continue
		}
		cell := int(glyph(r) - 32)
		u0 := float32(cell%FontAtlasCols) / FontAtlasCols
		v0 := float32(cell/FontAtlasCols) / FontAtlasRows
		u1, v1 := u0+1.0/FontAtlasCols, v0+1.0/FontAtlasRows

		w := cellW * float32(cells)
		dl.quad(
			Vertex{Pos: [2]float32{x, y}, TexCoord: [2]float32{u0, v0}, Color: color},
			Vertex{Pos: [2]float32{x + w, y}, TexCoord: [2]float32{u1, v0}, Color: color},
			Vertex{Pos: [2]float32{x + w, y + cellH}, TexCoord: [2]float32{u1, v1}, Color: color},
			Vertex{Pos: [2]float32{x, y + cellH}, TexCoord: [2]float32{u0, v1}, Color: color},
		)
		x += w
	}
}

// InsertRect fills a rectangle underneath everything already in the list,
// for containers whose size is known only after their contents were drawn.
func (dl *DrawList) InsertRect(x, y, w, h float32, color uint32) {
	if !hasAlpha(color) {
		return
	}
	const nv, ni = 4, 6
	if len(dl.CmdBuffer) == 0 {
		// Later primitives need an open command of their own
		dl.openCmd()
	}
	dl.VtxBuffer = slices.Insert(dl.VtxBuffer, 0,
		vtx(x, y, color), vtx(x+w, y, color), vtx(x+w, y+h, color), vtx(x, y+h, color))
	dl.IdxBuffer = slices.Insert(dl.IdxBuffer, 0, 0, 1, 2, 0, 2, 3)

	// Indices are relative, so only the offsets move.
	for i := range dl.CmdBuffer {
		dl.CmdBuffer[i].VertexOffset += nv
		dl.CmdBuffer[i].IndexOffset += ni
	}
	dl.vtxBase += nv
	dl.idxBase += ni
	dl.CmdBuffer = slices.Insert(dl.CmdBuffer, 0, DrawCmd{ElemCount: ni, ClipRect: dl.clip})
}

// Finalize closes the last command and drops empty ones. Renderers call it
// before uploading.
func (dl *DrawList) Finalize() {
	dl.closeCmd()
	dl.CmdBuffer = slices.DeleteFunc(dl.CmdBuffer, func(c DrawCmd) bool { return c.ElemCount == 0 })
}
