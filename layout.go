package gui

// LayoutType is the direction a layout stacks its items in.
type LayoutType uint8

const (
	LayoutVertical LayoutType = iota
	LayoutHorizontal
)

// Layout is one level of the layout stack. Items placed inside it advance
// the cursor along its direction and grow its content size.
type Layout struct {
	Type LayoutType

	Start         Vec2    // Top-left corner
	Width, Height float32 // Space available to items (0 = inherit)
	Content       Vec2    // Extent of the items placed so far

	Gap     float32 // Space between items
	Padding float32 // Inner padding, consumed by the container that pushed it

	items int
}

// space reports the room left for items, after padding.
func (l *Layout) space() Vec2 {
	return Vec2{X: l.Width - l.Padding*2, Y: l.Height - l.Padding*2}
}

// LayoutOption configures a layout container.
type LayoutOption func(*Layout)

// Gap sets the space between items.
func Gap(px float32) LayoutOption {
	return func(l *Layout) { l.Gap = px }
}

// Padding sets the inner padding.
func Padding(px float32) LayoutOption {
	return func(l *Layout) { l.Padding = px }
}

// Width fixes the container width.
func Width(w float32) LayoutOption {
	return func(l *Layout) { l.Width = w }
}

// Height fixes the container height.
func Height(h float32) LayoutOption {
	return func(l *Layout) { l.Height = h }
}

func (ctx *Context) pushLayout(l *Layout) {
	l.Start = ctx.cursor
	if l.Width == 0 {
		l.Width = ctx.currentLayoutWidth()
	}
	if l.Height == 0 {
		l.Height = ctx.currentLayoutHeight()
	}
	ctx.layoutStack = append(ctx.layoutStack, l)
}

// dropLayout removes the top layout and returns it.
func (ctx *Context) dropLayout() *Layout {
	n := len(ctx.layoutStack)
	if n == 0 {
		return nil
	}
	l := ctx.layoutStack[n-1]
	ctx.layoutStack = ctx.layoutStack[:n-1]
	return l
}

// popLayout removes the top layout and places its content as one item of
// the layout below.
func (ctx *Context) popLayout() {
	l := ctx.dropLayout()
	if l == nil {
		return
	}
	parent := ctx.currentLayout()
	if parent == nil {
		ctx.cursor = l.Start
		ctx.advanceCursor(l.Content)
		return
	}
	// The child already consumed the gap through beginItem at push time.
	if parent.Type == LayoutVertical {
		ctx.cursor = Vec2{X: parent.Start.X + parent.Padding, Y: l.Start.Y + l.Content.Y}
	} else {
		ctx.cursor = Vec2{X: l.Start.X + l.Content.X, Y: parent.Start.Y + parent.Padding}
	}
	parent.grow(ctx.cursor, l.Content)
}

// grow records an item that ended at cursor with the given size.
func (l *Layout) grow(cursor, size Vec2) {
	if l.Type == LayoutVertical {
		l.Content.X = maxf(l.Content.X, size.X)
		l.Content.Y = cursor.Y - l.Start.Y
	} else {
		l.Content.X = cursor.X - l.Start.X
		l.Content.Y = maxf(l.Content.Y, size.Y)
	}
	l.items++
}

// stack runs contents inside a new layout of the given type.
func (ctx *Context) stack(typ LayoutType, opts []LayoutOption) func(func()) {
	return func(contents func()) {
		l := &Layout{Type: typ, Gap: ctx.style.ItemSpacing}
		for _, opt := range opts {
			opt(l)
		}
		ctx.beginItem()
		ctx.pushLayout(l)
		contents()
		ctx.popLayout()
	}
}

// VStack stacks its contents top to bottom.
//
//	ctx.VStack(gui.Gap(8))(func() {
//	    ctx.Text("Name")
//	    ctx.Text("Kind")
//	})
func (ctx *Context) VStack(opts ...LayoutOption) func(func()) {
	return ctx.stack(LayoutVertical, opts)
}

// HStack places its contents left to right.
func (ctx *Context) HStack(opts ...LayoutOption) func(func()) {
	return ctx.stack(LayoutHorizontal, opts)
}

// Panel draws a titled, filled container around its contents. A zero Width
// or Height sizes the panel to its contents.
//
//	ctx.Panel("Outliner", gui.Width(320))(func() {
//	    tree.Draw(ctx)
//	})
func (ctx *Context) Panel(title string, opts ...LayoutOption) func(func()) {
	return func(contents func()) {
		l := &Layout{
			Type:    LayoutVertical,
			Padding: ctx.style.PanelPadding,
			Gap:     ctx.style.ItemSpacing,
		}
		for _, opt := range opts {
			opt(l)
		}
		pad := l.Padding
		fixed := Vec2{X: l.Width, Y: l.Height}
		origin := ctx.ItemPos()

		var headerH float32
		if title != "" {
			headerH = ctx.lineHeight() + pad*2
		}

		ctx.cursor = Vec2{X: origin.X + pad, Y: origin.Y + pad + headerH}
		if fixed.X > 0 {
			l.Width = fixed.X - pad*2
		}
		if fixed.Y > 0 {
			l.Height = fixed.Y - pad*2 - headerH
		}
		ctx.pushLayout(l)
		l.Padding = 0
		contents()
		body := ctx.dropLayout().Content

		size := Vec2{
			X: maxf(body.X+pad*2, fixed.X),
			Y: maxf(body.Y+pad*2+headerH, fixed.Y),
		}
		panel := Rect{X: origin.X, Y: origin.Y, W: size.X, H: size.Y}
		ctx.drawPanelFrame(panel, title, headerH, pad)
		if ctx.isHovered(panel) {
			ctx.WantCaptureMouse = true
		}
		ctx.cursor = origin
		ctx.advanceCursor(size)
	}
}

func (ctx *Context) drawPanelFrame(r Rect, title string, headerH, pad float32) {
	s := &ctx.style
	// Contents were emitted first, so the fill goes underneath them
	ctx.DrawList.InsertRect(r.X, r.Y, r.W, r.H, s.PanelColor)
	if title != "" {
		bg := s.PanelHeaderBgColor
		if bg == 0 {
			bg = s.ButtonColor
		}
		fg := s.PanelHeaderTextColor
		if fg == 0 {
			fg = s.TextColor
		}
		ctx.DrawList.AddRect(r.X, r.Y, r.W, headerH, bg)
		ctx.addText(r.X+pad, r.Y+(headerH-ctx.lineHeight())/2, title, fg)
	}
	if s.BorderSize > 0 {
		ctx.DrawList.AddRectOutline(r.X, r.Y, r.W, r.H, s.PanelBorderColor, s.BorderSize)
	}
}

// Separator draws a horizontal rule across the layout.
func (ctx *Context) Separator() {
	pos := ctx.ItemPos()
	w := ctx.currentLayoutWidth()
	ctx.DrawList.AddLine(pos.X, pos.Y+2, pos.X+w, pos.Y+2, ctx.style.SeparatorColor, 1)
	ctx.advanceCursor(Vec2{X: w, Y: 4})
}
