package gui

// AddSelection adds n to the selection set and sets its flag.
// Nodes not attached to this tree are ignored.
func (tv *TreeView) AddSelection(n *TreeNode) {
	if n == nil || !tv.Contains(n) {
		return
	}
	if _, ok := tv.selectedSet[n]; ok {
		n.SetSelected(true)
		return
	}
	tv.selectedSet[n] = struct{}{}
	tv.selected = append(tv.selected, n)
	n.SetSelected(true)
	guiLogger.Debug("tree selection added", "tree", tv.label, "node", n.id, "header", n.header)
	tv.emitSelectionChanged(n)
}

// RemoveSelection removes n from the selection set and clears its flag.
func (tv *TreeView) RemoveSelection(n *TreeNode) {
	if n == nil {
		return
	}
	if _, ok := tv.selectedSet[n]; !ok {
		return
	}
	tv.dropFromSet(n)
	n.SetSelected(false)
	guiLogger.Debug("tree selection removed", "tree", tv.label, "node", n.id, "header", n.header)
	tv.emitSelectionChanged(n)
}

func (tv *TreeView) dropFromSet(n *TreeNode) {
	delete(tv.selectedSet, n)
	for i, s := range tv.selected {
		if s == n {
			tv.selected = append(tv.selected[:i], tv.selected[i+1:]...)
			break
		}
	}
}

// DeselectAll empties the selection set and notifies once with a nil node.
func (tv *TreeView) DeselectAll() {
	if len(tv.selected) == 0 {
		return
	}
	for _, n := range tv.selected {
		n.SetSelected(false)
	}
	guiLogger.Debug("tree selection cleared", "tree", tv.label, "count", len(tv.selected))
	tv.selected = tv.selected[:0]
	clear(tv.selectedSet)
	tv.emitSelectionChanged(nil)
}

// SelectedNodes returns the selection in the order nodes were selected.
func (tv *TreeView) SelectedNodes() []*TreeNode {
	out := make([]*TreeNode, len(tv.selected))
	copy(out, tv.selected)
	return out
}

// IsNodeSelected reports whether n is in the selection set.
func (tv *TreeView) IsNodeSelected(n *TreeNode) bool {
	_, ok := tv.selectedSet[n]
	return ok
}

// SelectAll selects every node currently displayed.
func (tv *TreeView) SelectAll() {
	for _, n := range tv.DisplayOrder() {
		tv.AddSelection(n)
	}
}

// selectOnly makes n the only selected node.
func (tv *TreeView) selectOnly(n *TreeNode) {
	if len(tv.selected) == 1 && tv.selected[0] == n {
		return
	}
	tv.DeselectAll()
	tv.AddSelection(n)
}

// selectRange selects every displayed node between the anchor and target,
// both included. The anchor does not move. Without a usable anchor only
// target is selected.
func (tv *TreeView) selectRange(target *TreeNode) {
	anchor := tv.anchor
	if anchor == nil || anchor == target || !tv.Contains(anchor) {
		tv.AddSelection(target)
		return
	}
	order := tv.DisplayOrder()
	from, to := -1, -1
	for i, n := range order {
		switch n {
		case anchor:
			from = i
		case target:
			to = i
		}
	}
	if from < 0 || to < 0 {
		tv.AddSelection(target)
		return
	}
	if from > to {
		from, to = to, from
	}
	guiLogger.Debug("tree range select", "tree", tv.label, "anchor", anchor.id, "target", target.id, "count", to-from+1)
	for _, n := range order[from : to+1] {
		tv.AddSelection(n)
	}
}

// clickSelect applies the click policy to n: a plain click selects only n
// and moves the anchor, shift selects the range from the anchor, ctrl adds n.
func (tv *TreeView) clickSelect(n *TreeNode, ctrl, shift bool) {
	if !ctrl && !shift {
		tv.selectOnly(n)
		tv.anchor = n
		return
	}
	if shift {
		tv.selectRange(n)
		return
	}
	tv.anchor = n
	tv.AddSelection(n)
}

// focusNode moves keyboard focus to n. Selection follows only when focus
// actually changes and n is not already selected.
func (tv *TreeView) focusNode(n *TreeNode, ctrl, shift bool) {
	if n == nil || n == tv.focused {
		return
	}
	tv.focused = n
	tv.scrollIntoView(n)
	if n.selected {
		return
	}
	switch {
	case shift:
		tv.selectRange(n)
	case ctrl:
		tv.AddSelection(n)
	default:
		tv.selectOnly(n)
		tv.anchor = n
	}
}

// pruneSelection drops selected nodes that are no longer in the tree.
func (tv *TreeView) pruneSelection() {
	for i := len(tv.selected) - 1; i >= 0; i-- {
		n := tv.selected[i]
		if tv.Contains(n) {
			continue
		}
		guiLogger.Debug("tree selection pruned detached node", "tree", tv.label, "node", n.id)
		tv.RemoveSelection(n)
	}
	if tv.anchor != nil && !tv.Contains(tv.anchor) {
		tv.anchor = nil
	}
	if tv.focused != nil && !tv.Contains(tv.focused) {
		tv.focused = nil
	}
}

// reconcile brings the selection set in line with node flags changed from
// outside the tree since the last frame, and picks up rename requests.
func (tv *TreeView) reconcile() {
	tv.pruneSelection()
	for i := len(tv.selected) - 1; i >= 0; i-- {
		if n := tv.selected[i]; !n.selected {
			tv.dropFromSet(n)
			guiLogger.Debug("tree selection reconciled", "tree", tv.label, "node", n.id, "selected", false)
			tv.emitSelectionChanged(n)
		}
	}
	var requested *TreeNode
	tv.Walk(func(n *TreeNode) bool {
		if n.selected {
			if _, ok := tv.selectedSet[n]; !ok {
				guiLogger.Debug("tree selection reconciled", "tree", tv.label, "node", n.id, "selected", true)
				tv.AddSelection(n)
			}
		}
		if n.renameRequested {
			n.renameRequested = false
			requested = n
		}
		return true
	})
	if requested != nil {
		tv.activateRename(requested)
	}
}

// treeSelectable routes selection box changes through the selection set.
type treeSelectable struct {
	tv *TreeView
	n  *TreeNode
}

func (s treeSelectable) IsSelected() bool { return s.tv.IsNodeSelected(s.n) }

func (s treeSelectable) SetSelected(v bool) {
	if v {
		s.tv.AddSelection(s.n)
	} else {
		s.tv.RemoveSelection(s.n)
	}
}
