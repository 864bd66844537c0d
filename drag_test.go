package gui

import "testing"

func newDragContext() *Context {
	ctx := NewContext()
	ctx.SetStyle(DefaultStyle())
	ctx.Input = NewInputState()
	ctx.DisplaySize = Vec2{X: 800, Y: 600}
	return ctx
}

// nextFrame clears the per-frame input edges like a backend would.
func nextFrame(ctx *Context, x, y float32, down bool) {
	ctx.Input.Reset()
	ctx.Input.SetMousePos(x, y)
	ctx.Input.SetMouseButton(MouseButtonLeft, down)
}

func TestDragSource_StartsPastThreshold(t *testing.T) {
	ctx := newDragContext()
	src := Rect{X: 10, Y: 10, W: 100, H: 20}

	nextFrame(ctx, 20, 15, true)
	if ctx.DragSource(1, src, "row", "payload", "Row") {
		t.Error("drag should not be active on the press frame")
	}
	if ctx.IsDragging() {
		t.Error("armed drag should not count as dragging")
	}

	// Below threshold
	nextFrame(ctx, 22, 16, true)
	if ctx.DragSource(1, src, "row", "payload", "Row") {
		t.Error("drag should not start below DragThreshold")
	}

	nextFrame(ctx, 40, 30, true)
	if !ctx.DragSource(1, src, "row", "payload", "Row") {
		t.Fatal("drag should start past DragThreshold")
	}
	d := ctx.ActiveDrag("row")
	if d == nil {
		t.Fatal("expected an active drag of type row")
	}
	if d.Data != "payload" || d.Label != "Row" || d.Source != 1 {
		t.Errorf("unexpected payload %+v", d)
	}
	if d.StartPos != (Vec2{X: 20, Y: 15}) {
		t.Errorf("StartPos = %v, want press position", d.StartPos)
	}
	if ctx.ActiveDrag("other") != nil {
		t.Error("ActiveDrag should filter by type")
	}
	if ctx.ActiveDrag("") == nil {
		t.Error("empty type should match any payload")
	}
}

func TestDragSource_PlainClickClears(t *testing.T) {
	ctx := newDragContext()
	src := Rect{X: 0, Y: 0, W: 50, H: 50}

	nextFrame(ctx, 10, 10, true)
	ctx.DragSource(7, src, "row", nil, "")
	if ctx.drag == nil {
		t.Fatal("press inside the source should arm a drag")
	}

	nextFrame(ctx, 10, 10, false)
	ctx.DragSource(7, src, "row", nil, "")
	if ctx.drag != nil {
		t.Error("release without movement should discard the armed drag")
	}
}

func TestDragSource_PressOutside(t *testing.T) {
	ctx := newDragContext()
	nextFrame(ctx, 200, 200, true)
	ctx.DragSource(1, Rect{X: 0, Y: 0, W: 50, H: 50}, "row", nil, "")
	if ctx.drag != nil {
		t.Error("press outside the source should not arm a drag")
	}
}

func TestDragSource_OtherSourceIgnored(t *testing.T) {
	ctx := newDragContext()
	a := Rect{X: 0, Y: 0, W: 50, H: 20}
	b := Rect{X: 0, Y: 20, W: 50, H: 20}

	nextFrame(ctx, 10, 10, true)
	ctx.DragSource(1, a, "row", "a", "")
	// The press is inside a only, but b must not steal an armed drag.
	ctx.DragSource(2, b, "row", "b", "")

	nextFrame(ctx, 10, 35, true)
	if ctx.DragSource(2, b, "row", "b", "") {
		t.Error("source 2 should not report source 1's drag")
	}
	if !ctx.DragSource(1, a, "row", "a", "") {
		t.Error("source 1 should be dragging")
	}
}

func TestAcceptDrop(t *testing.T) {
	ctx := newDragContext()
	src := Rect{X: 0, Y: 0, W: 50, H: 20}
	target := Rect{X: 100, Y: 100, W: 50, H: 50}

	nextFrame(ctx, 10, 10, true)
	ctx.DragSource(1, src, "row", 42, "")
	nextFrame(ctx, 120, 120, true)
	ctx.DragSource(1, src, "row", 42, "")

	if !ctx.DragHovering("row", target) {
		t.Error("DragHovering should report the drag over target")
	}
	// Still held: nothing to accept yet
	if _, ok := ctx.AcceptDrop("row", target); ok {
		t.Error("drop should not be accepted while the button is down")
	}

	nextFrame(ctx, 120, 120, false)
	if _, ok := ctx.AcceptDrop("other", target); ok {
		t.Error("drop of the wrong type should be refused")
	}
	if _, ok := ctx.AcceptDrop("row", Rect{X: 300, Y: 300, W: 10, H: 10}); ok {
		t.Error("drop outside the target should be refused")
	}
	d, ok := ctx.AcceptDrop("row", target)
	if !ok {
		t.Fatal("drop over the target should be accepted")
	}
	if d.Data != 42 || !d.Delivered {
		t.Errorf("unexpected delivered payload %+v", d)
	}
	if ctx.IsDragging() {
		t.Error("a delivered drag is no longer in flight")
	}

	ctx.Reset(Vec2{X: 800, Y: 600}, 0.016)
	if ctx.drag != nil {
		t.Error("Reset should drop a delivered payload")
	}
}

func TestCancelDrag(t *testing.T) {
	ctx := newDragContext()
	src := Rect{X: 0, Y: 0, W: 50, H: 20}
	nextFrame(ctx, 10, 10, true)
	ctx.DragSource(1, src, "row", nil, "")
	nextFrame(ctx, 40, 40, true)
	ctx.DragSource(1, src, "row", nil, "")

	ctx.CancelDrag()
	if ctx.IsDragging() {
		t.Error("CancelDrag should end the drag")
	}
}

func TestGUIEnd_DiscardsUndeliveredDrag(t *testing.T) {
	ui := New(nil)
	in := NewInputState()
	src := Rect{X: 0, Y: 0, W: 50, H: 20}

	in.SetMousePos(10, 10)
	in.SetMouseButton(MouseButtonLeft, true)
	ctx := ui.Begin(in, Vec2{X: 800, Y: 600}, 0.016)
	ctx.DragSource(1, src, "row", nil, "")
	if err := ui.End(); err != nil {
		t.Fatal(err)
	}

	in.Reset()
	in.SetMousePos(60, 60)
	ctx = ui.Begin(in, Vec2{X: 800, Y: 600}, 0.016)
	if !ctx.DragSource(1, src, "row", nil, "") {
		t.Fatal("expected drag to be active")
	}
	_ = ui.End()

	in.Reset()
	in.SetMouseButton(MouseButtonLeft, false)
	ctx = ui.Begin(in, Vec2{X: 800, Y: 600}, 0.016)
	_ = ui.End()
	if ctx.drag != nil {
		t.Error("End should discard a drag released over nothing")
	}
}
