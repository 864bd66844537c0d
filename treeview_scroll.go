package gui

// itemHeightFor returns the row height for a style: one text line plus the
// item spacing and a small gap.
func itemHeightFor(style Style) float32 {
	return style.CharHeight*style.FontScale + style.ItemSpacing + 3
}

// ItemHeight returns the row height used by the last Draw (or the default
// style's before the first one).
func (tv *TreeView) ItemHeight() float32 {
	if tv.itemHeight > 0 {
		return tv.itemHeight
	}
	return itemHeightFor(DefaultStyle())
}

// Scroll returns the current scroll offset.
func (tv *TreeView) Scroll() Vec2 { return tv.scroll }

// SetScroll sets the scroll offset. It is clamped to the content on the
// next Draw.
func (tv *TreeView) SetScroll(x, y float32) {
	tv.scroll = Vec2{X: x, Y: y}
	tv.pendingScroll = -1
}

// NodeOffset returns the vertical offset of n's row from the top of the
// content, counting one itemHeight per displayed row before it. It reports
// false when n is not displayed: hidden under a collapsed ancestor, not in
// this tree, or filtered out.
func (tv *TreeView) NodeOffset(n *TreeNode, itemHeight float32) (float32, bool) {
	i, ok := tv.visibleIndex(n)
	if !ok {
		return 0, false
	}
	return float32(i) * itemHeight, true
}

// visibleIndex walks the forest depth-first counting displayed rows until it
// reaches target. Rows hidden by the filter are not counted but their
// children are still walked.
func (tv *TreeView) visibleIndex(target *TreeNode) (int, bool) {
	if target == nil {
		return 0, false
	}
	filtering := tv.IsFiltering()
	count := 0
	var walk func(n *TreeNode) (found, done bool)
	walk = func(n *TreeNode) (bool, bool) {
		visible := !filtering || matchHeader(tv.FilterMode, tv.searchText, n.header)
		if n == target {
			return visible, true
		}
		if visible {
			count++
		}
		if filtering || n.expanded {
			for _, c := range n.children {
				if found, done := walk(c); done {
					return found, true
				}
			}
		}
		return false, false
	}
	for _, r := range tv.roots {
		if found, done := walk(r); done {
			return count, found
		}
	}
	return 0, false
}

// ScrollToNode expands n's ancestors and scrolls so n's row is at the top of
// the view on the next Draw. A node that is already selected is assumed to be
// in view and is left alone.
func (tv *TreeView) ScrollToNode(n *TreeNode) {
	if n == nil || !tv.Contains(n) || tv.IsNodeSelected(n) {
		return
	}
	n.ExpandParents()
	i, ok := tv.visibleIndex(n)
	if !ok {
		return
	}
	tv.pendingScroll = i
	guiLogger.Debug("tree scroll to node", "tree", tv.label, "node", n.id, "row", i)
}

// scrollIntoView adjusts the scroll by the least amount that shows n's row.
func (tv *TreeView) scrollIntoView(n *TreeNode) {
	i, ok := tv.visibleIndex(n)
	if !ok || tv.viewHeight <= 0 {
		return
	}
	clip := newRowClipper(max(len(tv.order), i+1), tv.ItemHeight(), tv.viewHeight, tv.scroll.Y)
	tv.scroll.Y = clip.ScrollToRow(i, tv.scroll.Y, tv.viewHeight)
}

// applyScroll resolves a pending ScrollToNode, wheel input and clamping, and
// returns the visible row range for the resulting offset.
func (tv *TreeView) applyScroll(in *InputState, hovered bool) rowClipper {
	h := tv.itemHeight
	if tv.pendingScroll >= 0 {
		tv.scroll.Y = float32(tv.pendingScroll) * h
		tv.pendingScroll = -1
	}
	if hovered && in != nil && in.MouseWheelY != 0 {
		tv.scroll.Y -= in.MouseWheelY * h * 3
	}
	clip := newRowClipper(len(tv.order), h, tv.viewHeight, 0)
	tv.scroll.Y = clampf(tv.scroll.Y, 0, clip.MaxScroll(tv.viewHeight))
	tv.scroll.X = maxf(0, tv.scroll.X)
	return newRowClipper(len(tv.order), h, tv.viewHeight, tv.scroll.Y)
}

// drawScrollbar draws a vertical scrollbar when the content overflows.
func (tv *TreeView) drawScrollbar(ctx *Context, view Rect) {
	if tv.contentHeight <= view.H || view.H <= 0 {
		return
	}
	style := ctx.style
	w := style.ScrollbarSize
	x := view.X + view.W - w
	ctx.DrawList.AddRect(x, view.Y, w, view.H, style.ScrollbarBgColor)

	grabH := maxf(view.H*view.H/tv.contentHeight, 12)
	maxScroll := tv.contentHeight - view.H
	grabY := view.Y + (view.H-grabH)*(tv.scroll.Y/maxScroll)
	ctx.DrawList.AddRect(x+1, grabY, w-2, grabH, style.ScrollbarGrabColor)
}
