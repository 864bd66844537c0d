package gui

// widgetID keys a widget by label, or by its WithID key. A WithID key does
// not depend on the widgets drawn before it, so its state survives frames
// where those change.
func (ctx *Context) widgetID(label string, o options) ID {
	if key := GetOpt(o, OptID); key != "" {
		return ctx.GetIDStable(hashLabel(key))
	}
	return ctx.GetID(label)
}

func (ctx *Context) textItem(text string, color uint32) {
	pos := ctx.ItemPos()
	ctx.addText(pos.X, pos.Y, text, color)
	ctx.advanceCursor(ctx.MeasureText(text))
}

// Text draws a line of text.
func (ctx *Context) Text(text string) { ctx.textItem(text, ctx.style.TextColor) }

// TextColored draws a line of text in color.
func (ctx *Context) TextColored(text string, color uint32) { ctx.textItem(text, color) }

// TextDisabled draws a line of greyed-out text.
func (ctx *Context) TextDisabled(text string) { ctx.textItem(text, ctx.style.TextDisabledColor) }

// LabelText draws a dim label followed by its value on one line.
func (ctx *Context) LabelText(label, value string) {
	ctx.HStack()(func() {
		ctx.TextDisabled(label)
		ctx.Text(value)
	})
}

// Button draws a push button and reports a click on it this frame.
func (ctx *Context) Button(label string, opts ...Option) bool {
	o := applyOptions(opts)
	pos := ctx.ItemPos()
	id := ctx.widgetID(label, o)
	disabled := GetOpt(o, OptDisabled)

	pad := ctx.style.ButtonPadding
	ts := ctx.MeasureText(label)
	size := Vec2{X: ts.X + pad*2, Y: ts.Y + pad*2}
	if w := GetOpt(o, OptWidth); w > 0 {
		size.X = w
	}
	if h := GetOpt(o, OptHeight); h > 0 {
		size.Y = h
	}
	r := Rect{X: pos.X, Y: pos.Y, W: size.X, H: size.Y}

	bg, fg := ctx.style.ButtonColor, ctx.style.TextColor
	switch {
	case disabled:
		fg = ctx.style.TextDisabledColor
	case ctx.isHovered(r) && ctx.Input.MouseDown(MouseButtonLeft):
		bg = ctx.style.ButtonActiveColor
	case ctx.isHovered(r):
		bg = ctx.style.ButtonHoveredColor
	}
	ctx.DrawList.AddRect(r.X, r.Y, r.W, r.H, bg)
	ctx.addText(r.X+(r.W-ts.X)/2, r.Y+(r.H-ts.Y)/2, label, fg)

	ctx.advanceCursor(size)
	return !disabled && ctx.isClicked(id, r)
}

// CheckState is the display state of a checkbox.
type CheckState uint8

const (
	Unchecked CheckState = iota
	Checked
	Mixed // Some but not all descendants are checked
)

func (s CheckState) String() string {
	switch s {
	case Checked:
		return "checked"
	case Mixed:
		return "mixed"
	}
	return "unchecked"
}

// Checkbox draws a labelled checkbox bound to value and reports whether a
// click toggled it. WithIndeterminate draws the mixed mark whatever value
// holds; a click still toggles value.
func (ctx *Context) Checkbox(label string, value *bool, opts ...Option) bool {
	o := applyOptions(opts)
	pos := ctx.ItemPos()
	id := ctx.widgetID(label, o)
	disabled := GetOpt(o, OptDisabled)

	box := ctx.lineHeight()
	size := Vec2{X: box, Y: box}
	if label != "" {
		size.X += ctx.style.ItemSpacing + ctx.MeasureText(label).X
	}
	hit := Rect{X: pos.X, Y: pos.Y, W: size.X, H: size.Y}

	state := Unchecked
	if GetOpt(o, OptMixed) {
		state = Mixed
	} else if *value {
		state = Checked
	}
	ctx.drawCheckBox(ctx.DrawList, Rect{X: pos.X, Y: pos.Y, W: box, H: box}, state, !disabled && ctx.isHovered(hit))

	if label != "" {
		fg := ctx.style.TextColor
		if disabled {
			fg = ctx.style.TextDisabledColor
		}
		ctx.addText(pos.X+box+ctx.style.ItemSpacing, pos.Y, label, fg)
	}
	ctx.advanceCursor(size)

	if disabled || !ctx.isClicked(id, hit) {
		return false
	}
	*value = !*value
	return true
}

// CheckBoxAt draws a bare checkbox in rect without moving the layout cursor
// and reports a click on it.
func (ctx *Context) CheckBoxAt(id ID, rect Rect, state CheckState) bool {
	ctx.drawCheckBox(ctx.DrawList, rect, state, ctx.isHovered(rect))
	return ctx.isClicked(id, rect)
}

func (ctx *Context) drawCheckBox(dl *DrawList, box Rect, state CheckState, hovered bool) {
	s := &ctx.style
	fill := s.InputBgColor
	if hovered {
		fill = s.InputFocusedBgColor
	}
	dl.AddRect(box.X, box.Y, box.W, box.H, fill)
	dl.AddRectOutline(box.X, box.Y, box.W, box.H, s.InputBorderColor, 1)

	switch state {
	case Checked:
		drawCheckMark(dl, box, s.CheckMarkColor)
	case Mixed:
		inset := box.W / 4
		dl.AddRect(box.X+inset, box.Y+box.H/2-1, box.W-inset*2, 2, s.CheckMarkColor)
	}
}

// Tooltip draws text in a box next to the mouse on the foreground layer.
// The caller decides when it shows, usually while a widget is hovered.
func (ctx *Context) Tooltip(text string) {
	if ctx.Input == nil || text == "" {
		return
	}
	dl := ctx.ForegroundDrawList
	if dl == nil {
		dl = ctx.DrawList
	}

	const pad, offset = 4, 10
	size := MeasureWrappedText(ctx, text, tooltipMaxWidth)
	r := Rect{
		X: ctx.Input.MouseX + offset,
		Y: ctx.Input.MouseY + offset,
		W: size.X + pad*2,
		H: size.Y + pad*2,
	}
	r.X = minf(r.X, ctx.DisplaySize.X-r.W)
	r.Y = minf(r.Y, ctx.DisplaySize.Y-r.H)

	dl.AddRect(r.X, r.Y, r.W, r.H, ctx.style.DropdownBgColor)
	dl.AddRectOutline(r.X, r.Y, r.W, r.H, ctx.style.PanelBorderColor, 1)
	y := r.Y + pad
	for _, line := range WrapText(ctx, text, tooltipMaxWidth) {
		ctx.AddTextTo(dl, r.X+pad, y, line, ctx.style.TextColor)
		y += ctx.lineHeight()
	}
}
