package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeItem struct {
	name     string
	selected bool
}

func (f *fakeItem) IsSelected() bool   { return f.selected }
func (f *fakeItem) SetSelected(v bool) { f.selected = v }

// dragBox presses at from and drags to to, leaving the button held.
func dragBox(b *SelectionBox, in *InputState, from, to Vec2) {
	in.Reset()
	in.SetMousePos(from.X, from.Y)
	in.SetMouseButton(MouseButtonLeft, true)
	b.Update(in)
	in.Reset()
	in.SetMousePos(to.X, to.Y)
	b.Update(in)
}

func TestSelectionBox_SelectsOverlapping(t *testing.T) {
	b := NewSelectionBox()
	in := NewInputState()
	started := 0
	b.OnSelectionStart(func() { started++ })

	a := &fakeItem{name: "a"}
	bItem := &fakeItem{name: "b"}
	c := &fakeItem{name: "c"}
	rects := map[*fakeItem]Rect{
		a:     {X: 10, Y: 10, W: 10, H: 10},
		bItem: {X: 200, Y: 200, W: 10, H: 10},
		c:     {X: 50, Y: 50, W: 10, H: 10},
	}

	dragBox(b, in, Vec2{0, 0}, Vec2{100, 100})
	require.True(t, b.IsActive())
	assert.Equal(t, 1, started)

	for it, r := range rects {
		b.CheckFrameSelection(it, r, false)
	}
	assert.True(t, a.selected)
	assert.False(t, bItem.selected)
	assert.True(t, c.selected)

	// Checking again in the same region changes nothing
	a.selected = false
	b.CheckFrameSelection(a, rects[a], false)
	assert.False(t, a.selected, "one change per overlap transition")
}

func TestSelectionBox_LeavingDeselects(t *testing.T) {
	b := NewSelectionBox()
	in := NewInputState()
	item := &fakeItem{}
	r := Rect{X: 50, Y: 50, W: 10, H: 10}

	dragBox(b, in, Vec2{0, 0}, Vec2{100, 100})
	b.CheckFrameSelection(item, r, false)
	require.True(t, item.selected)

	in.Reset()
	in.SetMousePos(20, 20)
	b.Update(in)
	b.CheckFrameSelection(item, r, false)
	assert.False(t, item.selected)
}

func TestSelectionBox_InvertFlips(t *testing.T) {
	b := NewSelectionBox()
	in := NewInputState()
	on := &fakeItem{selected: true}
	off := &fakeItem{}
	onRect := Rect{X: 10, Y: 10, W: 10, H: 10}
	offRect := Rect{X: 30, Y: 30, W: 10, H: 10}

	dragBox(b, in, Vec2{0, 0}, Vec2{100, 100})
	b.CheckFrameSelection(on, onRect, true)
	b.CheckFrameSelection(off, offRect, true)
	assert.False(t, on.selected)
	assert.True(t, off.selected)

	// Shrink away from both: they flip back
	in.Reset()
	in.SetMousePos(5, 5)
	b.Update(in)
	b.CheckFrameSelection(on, onRect, true)
	b.CheckFrameSelection(off, offRect, true)
	assert.True(t, on.selected)
	assert.False(t, off.selected)
}

func TestSelectionBox_DegenerateDoesNothing(t *testing.T) {
	b := NewSelectionBox()
	in := NewInputState()
	started := false
	b.OnSelectionStart(func() { started = true })
	item := &fakeItem{}

	dragBox(b, in, Vec2{10, 10}, Vec2{10, 10})
	b.CheckFrameSelection(item, Rect{X: 0, Y: 0, W: 50, H: 50}, false)
	assert.False(t, item.selected)
	assert.False(t, started)
	assert.False(t, b.HasChange())
}

func TestSelectionBox_ReleaseApplies(t *testing.T) {
	b := NewSelectionBox()
	in := NewInputState()
	applied := 0
	b.OnSelectionApplied(func() { applied++ })

	dragBox(b, in, Vec2{0, 0}, Vec2{40, 40})
	_, ok := b.Region()
	assert.True(t, ok)

	in.Reset()
	in.SetMouseButton(MouseButtonLeft, false)
	b.Update(in)
	assert.Equal(t, 1, applied)
	assert.False(t, b.IsActive())
	_, ok = b.Region()
	assert.False(t, ok)
}

func TestSelectionBox_DisabledMidDragResets(t *testing.T) {
	b := NewSelectionBox()
	in := NewInputState()
	dragBox(b, in, Vec2{0, 0}, Vec2{40, 40})
	require.True(t, b.IsActive())

	b.Enabled = false
	in.Reset()
	b.Update(in)
	assert.False(t, b.IsActive())

	// Disabled boxes do not start
	dragBox(b, in, Vec2{0, 0}, Vec2{40, 40})
	assert.False(t, b.IsActive())
}

func TestSelectionBox_ResetWhileIdle(t *testing.T) {
	b := NewSelectionBox()
	b.Reset()
	assert.False(t, b.IsActive())
}

func TestBoundingBox(t *testing.T) {
	bb := NewBoundingBox(Vec2{10, 20}, Vec2{0, 5})
	assert.Equal(t, Vec2{0, 5}, bb.Min)
	assert.Equal(t, Vec2{10, 20}, bb.Max)
	assert.Equal(t, Rect{X: 0, Y: 5, W: 10, H: 15}, bb.Rect())
	assert.Equal(t, "Min: (0, 5) Max: (10, 20)", bb.String())

	touching := BoundingBoxFromRect(Rect{X: 10, Y: 5, W: 5, H: 5})
	assert.False(t, bb.Overlaps(touching), "shared edges do not overlap")
	inside := BoundingBoxFromRect(Rect{X: 2, Y: 6, W: 1, H: 1})
	assert.True(t, bb.Overlaps(inside))
	assert.True(t, inside.Overlaps(bb))

	bb.Set(Vec2{1, 1}, Vec2{2, 2})
	assert.Equal(t, Vec2{1, 1}, bb.Size())
}
