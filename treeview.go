package gui

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// OutlinerItemPayload is the drag payload type for tree rows.
// The payload Data is the dragged *TreeNode.
const OutlinerItemPayload = "OUTLINER_ITEM"

// DefaultRenameDelay is the time in seconds between a click on a selected
// node and its rename field opening.
const DefaultRenameDelay = 0.5

// FilterMode selects how search text matches node headers.
type FilterMode uint8

const (
	// FilterSubstring keeps headers containing the text, ignoring case.
	FilterSubstring FilterMode = iota
	// FilterFuzzy keeps headers containing the text's runes in order.
	FilterFuzzy
)

// String returns the mode name.
func (m FilterMode) String() string {
	if m == FilterFuzzy {
		return "fuzzy"
	}
	return "substring"
}

// TreeOption configures a TreeView.
type TreeOption func(*TreeView)

// WithSearchBox shows or hides the search field above the rows.
func WithSearchBox(show bool) TreeOption {
	return func(tv *TreeView) { tv.DisplaySearchBox = show }
}

// WithSelectionBox enables or disables rubber-band selection.
func WithSelectionBox(enabled bool) TreeOption {
	return func(tv *TreeView) { tv.UseSelectionBox = enabled }
}

// WithFilterMode sets how the search text matches headers.
func WithFilterMode(m FilterMode) TreeOption {
	return func(tv *TreeView) { tv.FilterMode = m }
}

// WithColumns sets the column count handed to render overrides.
func WithColumns(n int) TreeOption {
	return func(tv *TreeView) { tv.Columns = max(1, n) }
}

// WithRenameDelay sets the click-to-rename delay in seconds.
func WithRenameDelay(seconds float64) TreeOption {
	return func(tv *TreeView) { tv.RenameDelay = seconds }
}

// WithIndent sets the per-depth indent in pixels (0 uses the style's).
func WithIndent(px float32) TreeOption {
	return func(tv *TreeView) { tv.Indent = px }
}

// WithTreeID sets the label the tree's widget IDs derive from. Trees drawn in
// the same ID scope need distinct labels.
func WithTreeID(label string) TreeOption {
	return func(tv *TreeView) { tv.label = label }
}

// rowState is per-row widget state that survives between frames.
type rowState struct {
	hover float32 // 0..1 hover highlight fade
}

// displayRow is a node in draw order with its indent depth.
type displayRow struct {
	node  *TreeNode
	depth int
}

// TreeView is a hierarchical list control with multi-selection, range and
// rubber-band selection, inline rename, search filtering, checkboxes, context
// menus and drag and drop.
//
// The tree owns its nodes, the selection set and all interaction state. Draw
// it once per frame from the GUI thread; nothing here is safe for concurrent
// use.
type TreeView struct {
	// DisplaySearchBox draws a search field above the rows.
	DisplaySearchBox bool
	// UseSelectionBox enables rubber-band selection.
	UseSelectionBox bool
	FilterMode      FilterMode
	// Columns is the column count handed to render overrides.
	Columns int
	// RenameDelay is the click-to-rename delay in seconds.
	RenameDelay float64
	// Indent is the per-depth indent in pixels (0 uses Style.IndentSpacing).
	Indent float32

	label string
	ids   NodeIDSource
	roots []*TreeNode

	// Selection set, in selection order. The node flags mirror it.
	selected    []*TreeNode
	selectedSet map[*TreeNode]struct{}
	anchor      *TreeNode // range selection anchor

	searchText string

	// Interaction
	frame     uint64
	focused   *TreeNode // keyboard focus
	hasFocus  bool      // the control has keyboard focus
	ctrlHeld  bool
	box       *SelectionBox
	rename    renameMachine
	dragged   *TreeNode
	menu      *ContextMenu
	menuOwner *TreeNode
	menuArmed *TreeNode // right-pressed row, opens the menu on release

	// Scrolling
	scroll        Vec2
	pendingScroll int // row index to scroll to, or -1
	contentHeight float32
	viewHeight    float32
	itemHeight    float32

	order []displayRow // display order of the current frame
	rows  *FrameStore[rowState]

	selectionListeners []func(n *TreeNode)
	checkedListeners   []func(n *TreeNode)
	clickedListeners   []func(n *TreeNode)
	dropListeners      []func(dragged, target *TreeNode)
}

// NewTreeView creates an empty tree. By default the search box and the
// selection box are on and the rename delay is DefaultRenameDelay.
func NewTreeView(opts ...TreeOption) *TreeView {
	tv := &TreeView{
		DisplaySearchBox: true,
		UseSelectionBox:  true,
		Columns:          1,
		RenameDelay:      DefaultRenameDelay,
		label:            "##tree_view",
		selectedSet:      make(map[*TreeNode]struct{}),
		box:              NewSelectionBox(),
		pendingScroll:    -1,
		rows:             NewFrameStore[rowState](),
	}
	for _, opt := range opts {
		opt(tv)
	}
	tv.menu = NewContextMenu(ID(hashLabel(tv.label + "##menu")))
	tv.box.OnSelectionStart(func() {
		if !tv.ctrlHeld {
			tv.DeselectAll()
		}
	})
	return tv
}

// IDSource returns the tree's node ID source.
func (tv *TreeView) IDSource() *NodeIDSource { return &tv.ids }

// NewNode creates a detached node with an ID from this tree's source.
func (tv *TreeView) NewNode(header string) *TreeNode {
	return NewTreeNode(&tv.ids, header)
}

// Roots returns a copy of the root list.
func (tv *TreeView) Roots() []*TreeNode {
	out := make([]*TreeNode, len(tv.roots))
	copy(out, tv.roots)
	return out
}

// AddRoot appends n as a root node, detaching it from any previous parent.
func (tv *TreeView) AddRoot(n *TreeNode) bool {
	return tv.InsertRoot(len(tv.roots), n)
}

// InsertRoot inserts n as a root at index i (clamped). Nodes of the subtree
// that were not created by this tree get fresh IDs from its source.
func (tv *TreeView) InsertRoot(i int, n *TreeNode) bool {
	if n == nil {
		return false
	}
	n.detach()
	n.adopt(&tv.ids)
	i = max(0, min(i, len(tv.roots)))
	tv.roots = append(tv.roots, nil)
	copy(tv.roots[i+1:], tv.roots[i:])
	tv.roots[i] = n
	n.tree = tv
	tv.reindexRoots(i)
	return true
}

// RemoveRoot detaches a root node and its subtree. Selected nodes of the
// subtree leave the selection set.
func (tv *TreeView) RemoveRoot(n *TreeNode) bool {
	if !tv.removeRoot(n) {
		return false
	}
	tv.pruneSelection()
	return true
}

func (tv *TreeView) removeRoot(n *TreeNode) bool {
	if n == nil || n.tree != tv || n.parent != nil {
		return false
	}
	i := n.index
	if i >= len(tv.roots) || tv.roots[i] != n {
		return false
	}
	tv.roots = append(tv.roots[:i], tv.roots[i+1:]...)
	n.tree = nil
	n.index = 0
	tv.reindexRoots(i)
	return true
}

// ClearRoots removes every node and clears the selection.
func (tv *TreeView) ClearRoots() {
	for _, r := range tv.roots {
		r.tree = nil
		r.index = 0
	}
	tv.roots = nil
	tv.pruneSelection()
}

func (tv *TreeView) reindexRoots(from int) {
	for i := from; i < len(tv.roots); i++ {
		tv.roots[i].index = i
	}
}

// Contains reports whether n is attached to this tree.
func (tv *TreeView) Contains(n *TreeNode) bool {
	return n != nil && n.TreeView() == tv
}

// Walk visits every node depth-first in hierarchy order, ignoring
// expansion and filtering. Returning false from fn stops the walk.
func (tv *TreeView) Walk(fn func(*TreeNode) bool) {
	for _, r := range tv.roots {
		if !r.Walk(fn) {
			return
		}
	}
}

// FindByID returns the attached node with the given ID, or nil.
func (tv *TreeView) FindByID(id NodeID) *TreeNode {
	var found *TreeNode
	tv.Walk(func(n *TreeNode) bool {
		if n.id == id {
			found = n
			return false
		}
		return true
	})
	return found
}

// OnSelectionChanged registers fn to run whenever the selection set changes.
// n is the node added or removed, or nil when the selection was cleared.
func (tv *TreeView) OnSelectionChanged(fn func(n *TreeNode)) {
	tv.selectionListeners = append(tv.selectionListeners, fn)
}

// OnNodeChecked registers fn to run after a row checkbox is toggled.
func (tv *TreeView) OnNodeChecked(fn func(n *TreeNode)) {
	tv.checkedListeners = append(tv.checkedListeners, fn)
}

// OnNodeLeftClicked registers fn to run when a selected node is left-clicked.
func (tv *TreeView) OnNodeLeftClicked(fn func(n *TreeNode)) {
	tv.clickedListeners = append(tv.clickedListeners, fn)
}

// OnNodeDropped registers fn to run when a dragged row is dropped on another
// row of this tree. The tree does not move nodes itself.
func (tv *TreeView) OnNodeDropped(fn func(dragged, target *TreeNode)) {
	tv.dropListeners = append(tv.dropListeners, fn)
}

func (tv *TreeView) emitSelectionChanged(n *TreeNode) {
	for _, fn := range tv.selectionListeners {
		fn(n)
	}
}

func (tv *TreeView) emitNodeChecked(n *TreeNode) {
	for _, fn := range tv.checkedListeners {
		fn(n)
	}
}

func (tv *TreeView) emitLeftClicked(n *TreeNode) {
	for _, fn := range tv.clickedListeners {
		fn(n)
	}
}

// SetSearchText sets the filter text. Non-blank text switches the tree to a
// flat list of matching nodes.
func (tv *TreeView) SetSearchText(text string) {
	if tv.searchText == text {
		return
	}
	tv.searchText = text
	guiLogger.Debug("tree filter changed", "tree", tv.label, "text", text, "mode", tv.FilterMode)
}

// SearchText returns the filter text.
func (tv *TreeView) SearchText() string { return tv.searchText }

// IsFiltering reports whether the search text is non-blank.
func (tv *TreeView) IsFiltering() bool {
	return strings.TrimSpace(tv.searchText) != ""
}

// Matches reports whether n passes the current filter.
func (tv *TreeView) Matches(n *TreeNode) bool {
	if !tv.IsFiltering() {
		return true
	}
	return matchHeader(tv.FilterMode, tv.searchText, n.header)
}

func matchHeader(mode FilterMode, query, header string) bool {
	if mode == FilterFuzzy {
		return fuzzy.MatchFold(query, header)
	}
	return strings.Contains(strings.ToLower(header), strings.ToLower(query))
}

// DraggedNode returns the node of the most recent drag started in this
// tree. It stays set after the drop so drop targets can read it.
func (tv *TreeView) DraggedNode() *TreeNode { return tv.dragged }

// ClearDraggedNode forgets the dragged node.
func (tv *TreeView) ClearDraggedNode() { tv.dragged = nil }

// AcceptDrop lets a widget outside the tree accept a row dragged from it.
// It returns the dropped node when the drag is released over rect.
func (tv *TreeView) AcceptDrop(ctx *Context, rect Rect) (*TreeNode, bool) {
	d := ctx.ActiveDrag(OutlinerItemPayload)
	if d == nil {
		return nil, false
	}
	n, ok := d.Data.(*TreeNode)
	if !ok || !tv.Contains(n) {
		return nil, false
	}
	if _, ok := ctx.AcceptDrop(OutlinerItemPayload, rect); !ok {
		return nil, false
	}
	return n, true
}

// Focused returns the node with keyboard focus, or nil.
func (tv *TreeView) Focused() *TreeNode { return tv.focused }

// HasFocus reports whether the control has keyboard focus.
func (tv *TreeView) HasFocus() bool { return tv.hasFocus }

// SetFocus gives or takes keyboard focus.
func (tv *TreeView) SetFocus(focused bool) { tv.hasFocus = focused }

// SelectionBox returns the tree's rubber-band selector.
func (tv *TreeView) SelectionBox() *SelectionBox { return tv.box }

// ContextMenu returns the tree's context menu popup.
func (tv *TreeView) ContextMenu() *ContextMenu { return tv.menu }

// buildOrder computes the display order: expanded hierarchy normally, or the
// flat list of matches while filtering.
func (tv *TreeView) buildOrder() []displayRow {
	order := make([]displayRow, 0, len(tv.order))
	filtering := tv.IsFiltering()
	var visit func(n *TreeNode, depth int)
	visit = func(n *TreeNode, depth int) {
		if !filtering {
			order = append(order, displayRow{node: n, depth: depth})
			if n.expanded {
				for _, c := range n.children {
					visit(c, depth+1)
				}
			}
			return
		}
		// Children of a filtered out node are still tested on their own
		if matchHeader(tv.FilterMode, tv.searchText, n.header) {
			order = append(order, displayRow{node: n})
		}
		for _, c := range n.children {
			visit(c, 0)
		}
	}
	for _, r := range tv.roots {
		visit(r, 0)
	}
	return order
}

// DisplayOrder returns the nodes as they are laid out right now.
func (tv *TreeView) DisplayOrder() []*TreeNode {
	rows := tv.buildOrder()
	tv.order = rows
	out := make([]*TreeNode, len(rows))
	for i, r := range rows {
		out[i] = r.node
	}
	return out
}

func (tv *TreeView) rowIndex(n *TreeNode) int {
	for i, r := range tv.order {
		if r.node == n {
			return i
		}
	}
	return -1
}
