package gui

// ContextMenu is a popup list of MenuItems opened at the pointer.
// It draws on the foreground layer and closes on activation, Escape, or a
// click outside of it. Entries with sub-items expand inline below themselves.
type ContextMenu struct {
	id    ID
	items []*MenuItem
	pos   Vec2

	open       bool
	justOpened bool
	expanded   map[*MenuItem]bool

	// Screen rectangle from the last Draw, for click-through tests.
	rect Rect
}

// menuRow is one laid out entry of an open menu.
type menuRow struct {
	item  *MenuItem
	depth int
	y, h  float32
}

const (
	menuPadding      float32 = 4
	menuSeparatorH   float32 = 5
	menuCheckColumn  float32 = 14
	menuArrowColumn  float32 = 14
	menuSubIndent    float32 = 10
	menuMinimumWidth float32 = 80
)

// NewContextMenu creates a closed menu. id must be unique among popups.
func NewContextMenu(id ID) *ContextMenu {
	return &ContextMenu{id: id, expanded: make(map[*MenuItem]bool)}
}

// Open shows items with the top-left corner at pos.
func (m *ContextMenu) Open(pos Vec2, items []*MenuItem) {
	m.items = items
	m.pos = pos
	m.open = true
	m.justOpened = true
	clear(m.expanded)
	m.rect = Rect{}
	guiLogger.Debug("context menu opened", "id", m.id, "items", len(items))
}

// Close hides the menu.
func (m *ContextMenu) Close() {
	m.open = false
	m.items = nil
	m.rect = Rect{}
}

// IsOpen reports whether the menu is showing.
func (m *ContextMenu) IsOpen() bool { return m.open }

// Rect returns the menu's screen rectangle from the last frame it was drawn.
func (m *ContextMenu) Rect() Rect { return m.rect }

// Contains reports whether p is over the open menu.
func (m *ContextMenu) Contains(p Vec2) bool {
	return m.open && m.rect.Contains(p)
}

func (m *ContextMenu) layout(ctx *Context) ([]menuRow, float32) {
	rows := make([]menuRow, 0, len(m.items))
	lh := ctx.lineHeight() + menuPadding*2
	var y, w float32
	var add func(items []*MenuItem, depth int)
	add = func(items []*MenuItem, depth int) {
		for _, it := range items {
			h := lh
			if it.IsSeparator() {
				h = menuSeparatorH
			}
			rows = append(rows, menuRow{item: it, depth: depth, y: y, h: h})
			y += h
			tw := ctx.MeasureText(it.Header).X + float32(depth)*menuSubIndent
			if it.Icon != "" {
				tw += ctx.MeasureText(it.Icon).X + menuPadding
			}
			w = maxf(w, tw)
			if it.HasItems() && m.expanded[it] {
				add(it.Items, depth+1)
			}
		}
	}
	add(m.items, 0)
	w += menuCheckColumn + menuArrowColumn + menuPadding*2
	return rows, maxf(w, menuMinimumWidth)
}

// Draw renders the open menu and processes its input. It returns the item
// activated this frame, or nil.
func (m *ContextMenu) Draw(ctx *Context) *MenuItem {
	if !m.open {
		return nil
	}
	defer func() { m.justOpened = false }()

	rows, w := m.layout(ctx)
	var h float32
	if n := len(rows); n > 0 {
		h = rows[n-1].y + rows[n-1].h
	}
	h += menuPadding * 2

	// Keep on screen
	x, y := m.pos.X, m.pos.Y
	if ctx.DisplaySize.X > 0 && x+w > ctx.DisplaySize.X {
		x = maxf(0, ctx.DisplaySize.X-w)
	}
	if ctx.DisplaySize.Y > 0 && y+h > ctx.DisplaySize.Y {
		y = maxf(0, ctx.DisplaySize.Y-h)
	}
	m.rect = Rect{X: x, Y: y, W: w, H: h}
	ctx.SetActivePopup(m.id)
	ctx.WantCaptureMouse = ctx.WantCaptureMouse || ctx.isHovered(m.rect)

	dl := ctx.ForegroundDrawList
	if dl == nil {
		dl = ctx.DrawList
	}
	style := ctx.style
	dl.AddRect(x, y, w, h, style.DropdownBgColor)
	dl.AddRectOutline(x, y, w, h, style.PanelBorderColor, 1)

	var hovered *MenuItem
	for _, r := range rows {
		top := y + menuPadding + r.y
		rowRect := Rect{X: x + 1, Y: top, W: w - 2, H: r.h}
		if r.item.IsSeparator() {
			dl.AddLine(x+menuPadding, top+r.h/2, x+w-menuPadding, top+r.h/2, style.SeparatorColor, 1)
			continue
		}
		if ctx.isHovered(rowRect) {
			hovered = r.item
			dl.AddRect(rowRect.X, rowRect.Y, rowRect.W, rowRect.H, style.HoveredBgColor)
		}

		tx := x + menuPadding + float32(r.depth)*menuSubIndent
		ty := top + menuPadding
		if r.item.CanCheck && r.item.Checked {
			s := ctx.lineHeight() * 0.7
			drawCheckMark(dl, Rect{X: tx, Y: ty + (ctx.lineHeight()-s)/2, W: s, H: s}, style.CheckMarkColor)
		}
		tx += menuCheckColumn
		if r.item.Icon != "" {
			ctx.AddTextTo(dl, tx, ty, r.item.Icon, style.TextHighlightColor)
			tx += ctx.MeasureText(r.item.Icon).X + menuPadding
		}
		ctx.AddTextTo(dl, tx, ty, r.item.Header, style.TextColor)

		if r.item.HasItems() {
			ax := x + w - menuArrowColumn
			ay := ty + ctx.lineHeight()/2
			if m.expanded[r.item] {
				dl.AddTriangle(ax, ay-3, ax+8, ay-3, ax+4, ay+3, style.TreeArrowColor)
			} else {
				dl.AddTriangle(ax+2, ay-4, ax+2, ay+4, ax+7, ay, style.TreeArrowColor)
			}
		}
	}

	if hovered != nil && hovered.ToolTip != "" {
		ctx.Tooltip(hovered.ToolTip)
	}

	return m.handleInput(ctx, hovered)
}

func (m *ContextMenu) handleInput(ctx *Context, hovered *MenuItem) *MenuItem {
	in := ctx.Input
	if in == nil {
		return nil
	}
	if in.KeyPressed(KeyEscape) {
		m.Close()
		return nil
	}
	if m.justOpened {
		return nil
	}

	clicked := in.MouseClicked(MouseButtonLeft) || in.MouseClicked(MouseButtonRight)
	if !clicked {
		return nil
	}
	if !ctx.isHovered(m.rect) {
		m.Close()
		return nil
	}
	if hovered == nil || !in.MouseClicked(MouseButtonLeft) {
		return nil
	}
	if hovered.HasItems() {
		m.expanded[hovered] = !m.expanded[hovered]
		return nil
	}

	guiLogger.Debug("context menu activated", "id", m.id, "item", hovered.Header)
	hovered.activate()
	m.Close()
	return hovered
}

// drawCheckMark draws a tick inside box.
func drawCheckMark(dl *DrawList, box Rect, color uint32) {
	padding := box.W * 0.2
	x1, y1 := box.X+padding, box.Y+box.H*0.5
	x2, y2 := box.X+box.W*0.45, box.Y+box.H-padding
	x3, y3 := box.X+box.W-padding, box.Y+padding
	dl.AddLine(x1, y1, x2, y2, color, 2)
	dl.AddLine(x2, y2, x3, y3, color, 2)
}
