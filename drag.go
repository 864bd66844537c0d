package gui

// DragThreshold is the distance in pixels the mouse must travel with the
// button held before a press on a drag source turns into a drag.
const DragThreshold float32 = 4

// DragPayload is the data carried by an in-flight drag operation.
// Only one drag can be in flight at a time.
type DragPayload struct {
	Type     string // Payload kind, matched by drop targets
	Data     any    // Payload value
	Source   ID     // Widget the drag started from
	Label    string // Text drawn next to the cursor while dragging
	StartPos Vec2   // Mouse position at press

	// Active is false between the press and crossing DragThreshold.
	Active bool
	// Delivered is set once a drop target accepted the payload.
	Delivered bool
}

// DragSource registers rect as a drag source for this frame.
// A left press inside rect arms the source; moving past DragThreshold with the
// button held starts the drag. Returns true while this source's drag is active.
func (ctx *Context) DragSource(id ID, rect Rect, typ string, data any, label string) bool {
	if ctx.Input == nil {
		return false
	}
	input := ctx.Input
	mouse := input.MousePos()

	if input.MouseClicked(MouseButtonLeft) && rect.Contains(mouse) && ctx.drag == nil {
		ctx.drag = &DragPayload{
			Type:     typ,
			Data:     data,
			Source:   id,
			Label:    label,
			StartPos: mouse,
		}
		return false
	}

	d := ctx.drag
	if d == nil || d.Source != id {
		return false
	}

	if !input.MouseDown(MouseButtonLeft) {
		if !d.Active {
			// Plain click, never became a drag
			ctx.drag = nil
		}
		return false
	}

	if !d.Active {
		delta := mouse.Sub(d.StartPos)
		if delta.X*delta.X+delta.Y*delta.Y < DragThreshold*DragThreshold {
			return false
		}
		d.Active = true
		guiLogger.Debug("drag started", "type", d.Type, "source", id)
	}
	// Keep the payload current in case the source changed it
	d.Data = data
	d.Label = label
	return true
}

// ActiveDrag returns the in-flight drag if it has the given type.
// An empty type matches any payload.
func (ctx *Context) ActiveDrag(typ string) *DragPayload {
	d := ctx.drag
	if d == nil || !d.Active || d.Delivered {
		return nil
	}
	if typ != "" && d.Type != typ {
		return nil
	}
	return d
}

// IsDragging returns true while any drag is in flight.
func (ctx *Context) IsDragging() bool {
	return ctx.ActiveDrag("") != nil
}

// DragHovering returns true if a drag of the given type is over rect.
func (ctx *Context) DragHovering(typ string, rect Rect) bool {
	return ctx.ActiveDrag(typ) != nil && ctx.isHovered(rect)
}

// AcceptDrop delivers the in-flight payload if it has the given type and the
// mouse button was released over rect this frame.
func (ctx *Context) AcceptDrop(typ string, rect Rect) (*DragPayload, bool) {
	d := ctx.ActiveDrag(typ)
	if d == nil || ctx.Input == nil {
		return nil, false
	}
	if !ctx.Input.MouseReleased(MouseButtonLeft) || !ctx.isHovered(rect) {
		return nil, false
	}
	d.Delivered = true
	guiLogger.Debug("drop accepted", "type", d.Type, "source", d.Source)
	return d, true
}

// CancelDrag abandons the in-flight drag.
func (ctx *Context) CancelDrag() {
	ctx.drag = nil
}

// DrawDragPreview draws the payload label next to the cursor on the
// foreground layer. Call once per frame after all drop targets.
func (ctx *Context) DrawDragPreview() {
	d := ctx.ActiveDrag("")
	if d == nil || d.Label == "" || ctx.ForegroundDrawList == nil {
		return
	}
	pad := ctx.style.InputPadding + 2
	size := ctx.MeasureText(d.Label)
	x := ctx.Input.MouseX + 12
	y := ctx.Input.MouseY + 4
	dl := ctx.ForegroundDrawList
	dl.AddRect(x, y, size.X+pad*2, size.Y+pad*2, ctx.style.DropdownBgColor)
	dl.AddRectOutline(x, y, size.X+pad*2, size.Y+pad*2, ctx.style.PanelBorderColor, 1)
	ctx.AddTextTo(dl, x+pad, y+pad, d.Label, ctx.style.TextColor)
}
