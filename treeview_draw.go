package gui

// searchKey is the GetIDStable key of the search field.
const searchKey = ^uint64(0) - 1

// checkKeyBit marks checkbox IDs derived from node IDs.
const checkKeyBit = uint64(1) << 63

// hoverFadeSpeed is how fast the row hover highlight fades, per second.
const hoverFadeSpeed = 12

// Draw renders the tree at the layout cursor and resolves this frame's input.
// WithWidth and WithHeight override the size; by default the tree fills the
// rest of the current layout.
func (tv *TreeView) Draw(ctx *Context, opts ...Option) {
	tv.frame++
	o := applyOptions(opts)
	in := ctx.Input
	style := ctx.style

	tv.itemHeight = itemHeightFor(style)
	tv.ctrlHeld = in != nil && in.ModCtrl

	tv.reconcile()
	tv.updateRename(in)
	tv.releaseRenameFocus(ctx)
	tv.rows.Advance()

	pos := ctx.ItemPos()
	w := GetOpt(o, OptWidth)
	if w <= 0 {
		w = ctx.currentLayoutWidth()
	}
	h := GetOpt(o, OptHeight)
	if h <= 0 {
		h = tv.availableHeight(ctx, pos)
	}
	bounds := Rect{X: pos.X, Y: pos.Y, W: w, H: h}

	ctx.PushRawID(ctx.GetIDStable(hashLabel(tv.label)))
	defer ctx.PopID()

	y := pos.Y
	if tv.DisplaySearchBox {
		y += tv.drawSearchBox(ctx, pos, w) + style.ItemSpacing
	}
	view := Rect{X: pos.X, Y: y, W: w, H: maxf(0, pos.Y+h-y)}

	var mouse Vec2
	if in != nil {
		mouse = in.MousePos()
		if in.AnyMouseClicked() && !tv.menu.Contains(mouse) {
			tv.hasFocus = bounds.Contains(mouse)
		}
	}
	hovered := ctx.isHovered(view) && !tv.menu.Contains(mouse)
	if ctx.isHovered(bounds) {
		ctx.WantCaptureMouse = true
	}

	tv.order = tv.buildOrder()
	tv.viewHeight = view.H
	tv.contentHeight = float32(len(tv.order)) * tv.itemHeight
	if tv.hasFocus && tv.handleKeyboard(ctx) {
		tv.order = tv.buildOrder()
		tv.contentHeight = float32(len(tv.order)) * tv.itemHeight
	}
	clip := tv.applyScroll(in, hovered)

	tv.box.Enabled = tv.UseSelectionBox && (tv.box.IsActive() || (view.Contains(mouse) && !tv.menu.Contains(mouse)))

	indent := tv.Indent
	if indent <= 0 {
		indent = style.IndentSpacing
	}
	ctx.DrawList.PushClipRect(view.X, view.Y, view.X+view.W, view.Y+view.H)
	rowHovered := false
	for i, row := range tv.order {
		if tv.drawRow(ctx, row, i, clip, view, indent) {
			rowHovered = true
		}
	}
	// A release anywhere else disarms the pending menu
	if in != nil && in.MouseReleased(MouseButtonRight) {
		tv.menuArmed = nil
	}

	if rowHovered || ctx.IsDragging() {
		if !tv.box.IsActive() {
			tv.box.Enabled = false
		}
	}
	if tv.UseSelectionBox {
		boxFocus := tv.hasFocus || hovered
		switch {
		case tv.rename.state != RenameEditing && boxFocus:
			tv.box.Update(in)
			tv.box.Draw(ctx)
		case tv.box.IsActive() && !boxFocus:
			tv.box.Reset()
		}
	}
	ctx.DrawList.PopClipRect()

	// The edited row scrolled away or was collapsed: keep what was typed.
	if tv.rename.state == RenameEditing && !tv.rename.drawn {
		tv.commitRename()
	}
	tv.releaseRenameFocus(ctx)

	tv.drawScrollbar(ctx, view)

	if item := tv.menu.Draw(ctx); item != nil && tv.menuOwner != nil {
		guiLogger.Debug("tree context action", "tree", tv.label, "node", tv.menuOwner.id, "item", item.Header)
	}
	if !tv.menu.IsOpen() {
		tv.menuOwner = nil
	}

	if d := ctx.ActiveDrag(OutlinerItemPayload); d != nil && tv.dragged != nil && d.Data == tv.dragged {
		ctx.DrawDragPreview()
	}

	ctx.advanceCursor(Vec2{X: w, Y: h})
}

// availableHeight returns the height left in the current layout below pos.
func (tv *TreeView) availableHeight(ctx *Context, pos Vec2) float32 {
	h := ctx.DisplaySize.Y - pos.Y
	if l := ctx.currentLayout(); l != nil && l.Height > 0 {
		h = l.Start.Y + l.Height - l.Padding - pos.Y
	}
	return maxf(h, tv.itemHeight*3)
}

// drawSearchBox draws the filter field and returns its height.
func (tv *TreeView) drawSearchBox(ctx *Context, pos Vec2, w float32) float32 {
	text := tv.searchText
	res := ctx.InputTextAt(ctx.GetIDStable(searchKey), pos, w, &text, WithPlaceholder("Search..."))
	if res.Changed {
		tv.SetSearchText(text)
	}
	return res.Rect.H
}

// drawRow draws one row and resolves its input. Reports whether the row is
// hovered.
func (tv *TreeView) drawRow(ctx *Context, row displayRow, i int, clip rowClipper, view Rect, indent float32) bool {
	n := row.node
	in := ctx.Input
	style := ctx.style
	h := tv.itemHeight
	lineH := ctx.lineHeight()
	filtering := tv.IsFiltering()
	renaming := tv.rename.state == RenameEditing && tv.rename.target == n

	rowRect := Rect{X: view.X, Y: clip.RowY(i, view.Y, tv.scroll.Y), W: view.W, H: h}
	if tv.contentHeight > view.H {
		rowRect.W -= style.ScrollbarSize
	}
	visible := clip.Visible(i)
	rowID := ctx.GetIDStable(uint64(n.id))

	// Row geometry: arrow, checkbox, icon, header
	x := view.X + 2 + float32(row.depth)*indent - tv.scroll.X
	arrowRect := Rect{X: x, Y: rowRect.Y, W: indent, H: h}
	x += indent
	var checkRect Rect
	if n.HasCheckbox {
		checkRect = Rect{X: x, Y: rowRect.Y + (h-lineH)/2, W: lineH, H: lineH}
		x += lineH + 5
	}
	textY := rowRect.Y + (h-lineH)/2

	var mouse Vec2
	hovered := false
	if in != nil && visible {
		mouse = in.MousePos()
		otherPopup := ctx.HasActivePopup() && ctx.ActivePopupID() != tv.menu.id
		hovered = rowRect.Contains(mouse) && view.Contains(mouse) &&
			!tv.menu.Contains(mouse) && !tv.box.IsActive() && !otherPopup
	}

	var st *rowState
	if visible {
		st = tv.rows.Get(rowID, rowState{})
		target := float32(0)
		if hovered {
			target = 1
		}
		if ctx.DeltaTime <= 0 {
			st.hover = target
		} else {
			st.hover += (target - st.hover) * minf(1, ctx.DeltaTime*hoverFadeSpeed)
		}
		switch {
		case n.selected && !renaming:
			ctx.DrawList.AddRect(rowRect.X, rowRect.Y, rowRect.W, rowRect.H, style.SelectedBgColor)
		case st.hover > 0.01:
			_, _, _, a := UnpackRGBA(style.HoveredBgColor)
			ctx.DrawList.AddRect(rowRect.X, rowRect.Y, rowRect.W, rowRect.H,
				WithAlpha(style.HoveredBgColor, uint8(float32(a)*st.hover)))
		}
		// Ctrl+click can leave keyboard focus on a row outside the selection
		if tv.hasFocus && n == tv.focused && !n.selected {
			ctx.DrawList.AddRectOutline(rowRect.X, rowRect.Y, rowRect.W, rowRect.H, style.FocusColor, 1)
		}
	}

	var leftClicked, rightClicked, doubleClicked bool
	if hovered {
		leftClicked = in.MouseClicked(MouseButtonLeft)
		rightClicked = in.MouseClicked(MouseButtonRight)
		doubleClicked = in.MouseDoubleClicked(MouseButtonLeft)
	}
	ctrl := in != nil && in.ModCtrl
	shift := in != nil && in.ModShift

	toggled := false
	if !filtering && n.HasChildren() && !renaming {
		if (leftClicked && arrowRect.Contains(mouse)) || doubleClicked {
			n.SetExpanded(!n.expanded)
			toggled = true
		}
	}

	// Drag source
	if n.CanDrag && !renaming && visible {
		label := n.header
		if n.Icon != "" {
			label = n.Icon + " " + label
		}
		if ctx.DragSource(rowID, rowRect, OutlinerItemPayload, n, label) {
			if tv.dragged != n {
				guiLogger.Debug("tree drag started", "tree", tv.label, "node", n.id)
			}
			tv.dragged = n
			tv.box.Enabled = false
		}
	}

	// Context menu, offered on release for an already selected node
	if rightClicked {
		tv.menuArmed = n
	}
	if hovered && in.MouseReleased(MouseButtonRight) && tv.menuArmed == n {
		tv.menuArmed = nil
		if n.selected && len(n.MenuItems) > 0 {
			tv.menu.Open(mouse, n.MenuItems)
			tv.menuOwner = n
		}
	}

	// Checkbox
	consumed := false
	if n.HasCheckbox && visible {
		clicked := ctx.CheckBoxAt(ctx.GetIDStable(uint64(n.id)|checkKeyBit), checkRect, n.CheckState())
		if clicked && hovered {
			tv.toggleChecked(n)
			consumed = true
		}
	}

	// Icon
	if n.Hooks.IconDrawer != nil {
		x += n.Hooks.IconDrawer(ctx, n, Vec2{X: x, Y: textY})
	} else if n.Icon != "" {
		if visible {
			ctx.addText(x, textY, n.Icon, style.TextHighlightColor)
		}
		x += ctx.MeasureText(n.Icon).X + 3
	}

	// Rename hit area hugs the header text
	textSize := ctx.MeasureText(n.header)
	renameHit := Rect{X: x - 5, Y: textY + 2, W: textSize.X + 30, H: textSize.Y + 3}
	initiateRename := leftClicked && renameHit.Contains(mouse)

	// Selection
	if !renaming {
		if n.selected && n.CanRename && !tv.box.IsActive() && initiateRename &&
			!doubleClicked && !toggled && !ctrl && !shift {
			tv.armRename(n, in.Time)
		}
		switch {
		case leftClicked && ctrl && n.selected:
			tv.RemoveSelection(n)
			tv.focused = n
		case (leftClicked || rightClicked) && !toggled && !consumed:
			tv.clickSelect(n, ctrl, shift)
			tv.focused = n
		}
		if leftClicked && n.selected {
			tv.emitLeftClicked(n)
		}
		if doubleClicked && !toggled && n.selected && n.Hooks.OnDoubleClick != nil {
			n.Hooks.OnDoubleClick(n)
		}
	}

	// Drop target for rows dragged within this tree
	if d := ctx.ActiveDrag(OutlinerItemPayload); d != nil && visible {
		if src, ok := d.Data.(*TreeNode); ok && src != n && !src.IsAncestorOf(n) && tv.Contains(src) {
			if rowRect.Contains(mouse) && view.Contains(mouse) {
				ctx.DrawList.AddRectOutline(rowRect.X, rowRect.Y, rowRect.W, rowRect.H, style.DropTargetColor, 1)
			}
			if _, ok := ctx.AcceptDrop(OutlinerItemPayload, rowRect); ok {
				guiLogger.Debug("tree node dropped", "tree", tv.label, "node", src.id, "target", n.id)
				for _, fn := range tv.dropListeners {
					fn(src, n)
				}
			}
		}
	}

	tv.box.CheckFrameSelection(treeSelectable{tv: tv, n: n}, rowRect, tv.ctrlHeld)

	if renaming {
		inputH := lineH + style.InputPadding*2
		tv.drawRenameField(ctx, Vec2{X: x, Y: rowRect.Y + (h-inputH)/2}, rowRect.X+rowRect.W-x)
	}
	if !visible {
		return false
	}

	if !filtering {
		tv.drawGuides(ctx, rowRect, row.depth, indent)
		if n.HasChildren() {
			tv.drawArrow(ctx, arrowRect, n.expanded)
		}
	}

	columns := max(1, tv.Columns)
	colW := rowRect.W / float32(columns)
	if !renaming {
		if n.Hooks.RenderOverride != nil {
			n.Hooks.RenderOverride(ctx, n, NodeRenderArgs{
				Row:         rowRect,
				Content:     Vec2{X: x, Y: textY},
				Columns:     columns,
				ColumnWidth: colW,
				Selected:    n.selected,
				Hovered:     hovered,
			})
		} else {
			color := style.TextColor
			if n.selected {
				color = style.SelectedTextColor
			}
			ctx.addText(x, textY, Ellipsize(ctx, n.header, rowRect.X+colW-x-4), color)
		}
	}
	for c := 1; c < columns; c++ {
		cx := rowRect.X + colW*float32(c)
		ctx.DrawList.AddLine(cx, rowRect.Y, cx, rowRect.Y+rowRect.H, style.SeparatorColor, 1)
	}

	if hovered && n.ToolTip != "" && st.hover > 0.95 && !ctx.IsDragging() {
		ctx.Tooltip(n.ToolTip)
	}
	return hovered
}

// toggleChecked flips n's checkbox and applies the new value to every
// selected node as well.
func (tv *TreeView) toggleChecked(n *TreeNode) {
	v := !n.checked
	n.SetChecked(v)
	for _, s := range tv.selected {
		if s != n {
			s.SetChecked(v)
		}
	}
	guiLogger.Debug("tree node checked", "tree", tv.label, "node", n.id, "checked", v, "selected", len(tv.selected))
	tv.emitNodeChecked(n)
}

// drawArrow draws the expand arrow centred in r.
func (tv *TreeView) drawArrow(ctx *Context, r Rect, expanded bool) {
	cx, cy := r.X+r.W/2, r.Y+r.H/2
	s := minf(r.W, r.H) * 0.25
	color := ctx.style.TreeArrowColor
	if expanded {
		ctx.DrawList.AddTriangle(cx-s, cy-s/2, cx+s, cy-s/2, cx, cy+s, color)
	} else {
		ctx.DrawList.AddTriangle(cx-s/2, cy-s, cx-s/2, cy+s, cx+s, cy, color)
	}
}

// drawGuides draws the vertical indent guides of a row.
func (tv *TreeView) drawGuides(ctx *Context, row Rect, depth int, indent float32) {
	color := ctx.style.TreeGuideColor
	if color == 0 {
		return
	}
	for d := 0; d < depth; d++ {
		gx := row.X + 2 + float32(d)*indent + indent/2 - tv.scroll.X
		ctx.DrawList.AddLine(gx, row.Y, gx, row.Y+row.H, color, 1)
	}
}

// handleKeyboard applies navigation keys. Reports whether expansion changed.
func (tv *TreeView) handleKeyboard(ctx *Context) bool {
	in := ctx.Input
	if in == nil || ctx.HasWidgetFocus() || tv.rename.state == RenameEditing || tv.menu.IsOpen() {
		return false
	}
	ctrl, shift := in.ModCtrl, in.ModShift

	if ctrl && in.KeyPressed(KeyA) {
		tv.SelectAll()
		return false
	}

	cur := tv.rowIndex(tv.focused)
	if cur < 0 && len(tv.selected) > 0 {
		cur = tv.rowIndex(tv.selected[len(tv.selected)-1])
	}
	var focused *TreeNode
	if cur >= 0 {
		focused = tv.order[cur].node
	}

	if in.KeyPressed(KeyF2) {
		target := focused
		if len(tv.selected) == 1 {
			target = tv.selected[0]
		}
		tv.activateRename(target)
		return false
	}

	last := len(tv.order) - 1
	page := max(1, int(tv.viewHeight/tv.itemHeight)-1)
	next := -1
	switch {
	case in.KeyRepeated(KeyUp):
		next = max(0, cur-1)
	case in.KeyRepeated(KeyDown):
		next = cur + 1
	case in.KeyRepeated(KeyPageUp):
		next = max(0, cur-page)
	case in.KeyRepeated(KeyPageDown):
		next = cur + page
	case in.KeyPressed(KeyHome):
		next = 0
	case in.KeyPressed(KeyEnd):
		next = last
	case in.KeyRepeated(KeyLeft) && focused != nil:
		if focused.expanded && focused.HasChildren() && !tv.IsFiltering() {
			focused.SetExpanded(false)
			return true
		}
		if p := focused.parent; p != nil {
			next = tv.rowIndex(p)
		}
	case in.KeyRepeated(KeyRight) && focused != nil:
		if !focused.HasChildren() || tv.IsFiltering() {
			break
		}
		if !focused.expanded {
			focused.SetExpanded(true)
			return true
		}
		next = cur + 1
	case in.KeyPressed(KeyEnter) && focused != nil:
		if focused.selected && focused.Hooks.OnDoubleClick != nil {
			focused.Hooks.OnDoubleClick(focused)
		}
	case in.KeyPressed(KeyEscape):
		if tv.rename.state == RenameArmed {
			tv.CancelRename()
		}
	}

	if next >= 0 && last >= 0 {
		tv.focusNode(tv.order[min(next, last)].node, ctrl, shift)
	}
	return false
}
