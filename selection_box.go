package gui

// Selectable is anything a SelectionBox can select.
// Implementations must be comparable (pointer receivers work).
type Selectable interface {
	IsSelected() bool
	SetSelected(selected bool)
}

// SelectionBox is a rubber-band selector. Press the left button and drag to
// span a region; every item checked against the region while it overlaps gets
// selected (or flipped in invert mode) once per overlap transition.
//
// Per frame: call CheckFrameSelection for each drawn item, then Update with the
// frame's input, then Draw.
type SelectionBox struct {
	// Enabled gates starting a new drag. Disabling an active box resets it
	// on the next Update.
	Enabled bool

	active     bool
	start, end Vec2
	region     BoundingBox
	hasRegion  bool
	overlapped map[Selectable]struct{}

	startListeners   []func()
	appliedListeners []func()
}

// NewSelectionBox creates an enabled, idle selection box.
func NewSelectionBox() *SelectionBox {
	return &SelectionBox{
		Enabled:    true,
		overlapped: make(map[Selectable]struct{}),
	}
}

// IsActive reports whether a drag is in progress.
func (b *SelectionBox) IsActive() bool { return b.active }

// HasChange reports whether the drag has moved away from its start point.
func (b *SelectionBox) HasChange() bool { return b.start != b.end }

// Region returns the current drag region, if one has formed.
func (b *SelectionBox) Region() (BoundingBox, bool) {
	return b.region, b.active && b.hasRegion
}

// OnSelectionStart registers fn to run on the first frame the drag forms a
// non-degenerate box.
func (b *SelectionBox) OnSelectionStart(fn func()) {
	b.startListeners = append(b.startListeners, fn)
}

// OnSelectionApplied registers fn to run when the drag ends.
func (b *SelectionBox) OnSelectionApplied(fn func()) {
	b.appliedListeners = append(b.appliedListeners, fn)
}

// Update resets the box if it was disabled mid-drag, otherwise advances the
// drag state machine.
func (b *SelectionBox) Update(in *InputState) {
	if !b.Enabled && b.active {
		b.Reset()
		return
	}
	b.HandleInput(in)
}

// HandleInput advances the drag state machine from the frame's input.
func (b *SelectionBox) HandleInput(in *InputState) {
	if in == nil {
		return
	}
	mouse := in.MousePos()
	down := in.MouseDown(MouseButtonLeft)

	switch {
	case in.MouseClicked(MouseButtonLeft) && !b.active && b.Enabled:
		b.start, b.end = mouse, mouse
		b.active = true
	case down && b.active:
		wasDegenerate := !b.HasChange()
		b.end = mouse
		if wasDegenerate && b.HasChange() {
			guiLogger.Debug("selection box started", "start", b.start)
			for _, fn := range b.startListeners {
				fn()
			}
		}
		b.region = NewBoundingBox(b.start, b.end)
		b.hasRegion = true
	}

	if (!down || in.MouseReleased(MouseButtonLeft)) && b.active {
		guiLogger.Debug("selection box applied", "region", b.region, "items", len(b.overlapped))
		for _, fn := range b.appliedListeners {
			fn()
		}
		b.Reset()
	}
}

// Reset clears the drag. It is a no-op while idle.
func (b *SelectionBox) Reset() {
	if !b.active {
		return
	}
	clear(b.overlapped)
	b.start, b.end = Vec2{}, Vec2{}
	b.region = BoundingBox{}
	b.hasRegion = false
	b.active = false
}

// CheckFrameSelection tests item's screen rectangle against the drag region.
// Selection changes only when the item's overlap status changes: entering
// selects (or flips when invert is set), leaving deselects (or flips back).
func (b *SelectionBox) CheckFrameSelection(item Selectable, rect Rect, invert bool) {
	if !b.active || !b.hasRegion || !b.HasChange() {
		return
	}

	overlapping := b.region.Overlaps(BoundingBoxFromRect(rect))
	_, was := b.overlapped[item]

	switch {
	case overlapping && !was:
		b.overlapped[item] = struct{}{}
		if invert {
			item.SetSelected(!item.IsSelected())
		} else {
			item.SetSelected(true)
		}
	case !overlapping && was:
		delete(b.overlapped, item)
		if invert {
			item.SetSelected(!item.IsSelected())
		} else {
			item.SetSelected(false)
		}
	}
}

// Draw renders the region as a translucent fill with a one pixel border.
// Nothing is drawn while idle or disabled.
func (b *SelectionBox) Draw(ctx *Context) {
	if !b.active || !b.Enabled || !b.HasChange() || ctx.DrawList == nil {
		return
	}
	r := NewBoundingBox(b.start, b.end).Rect()
	fill := ctx.style.SelectionBoxFillColor
	border := ctx.style.SelectionBoxBorderColor
	if fill == 0 {
		fill = WithAlpha(ctx.style.SelectedBgColor, 128)
	}
	if border == 0 {
		border = WithAlpha(ctx.style.SelectedBgColor, 255)
	}
	ctx.DrawList.AddRect(r.X, r.Y, r.W, r.H, fill)
	ctx.DrawList.AddRectOutline(r.X, r.Y, r.W, r.H, border, 1)
}
