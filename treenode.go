package gui

import (
	"cmp"
	"slices"
	"strings"
)

// NodeID identifies a tree node. IDs are handed out by a NodeIDSource and are
// never reused, so they can key per-row widget state across frames.
type NodeID uint64

// NodeIDSource is a monotonic NodeID generator. Each TreeView owns one.
// The zero value is ready to use. Not safe for concurrent use.
type NodeIDSource struct {
	last uint64
}

// Next returns a fresh NodeID.
func (s *NodeIDSource) Next() NodeID {
	s.last++
	return NodeID(s.last)
}

// Issued returns how many IDs this source has handed out.
func (s *NodeIDSource) Issued() uint64 {
	return s.last
}

// NodeRenderArgs is passed to a node's RenderOverride.
type NodeRenderArgs struct {
	Row         Rect    // Full row rectangle in screen space
	Content     Vec2    // Where the default header text would start
	Columns     int     // Column count of the owning tree (>= 1)
	ColumnWidth float32 // Width of each extra column
	Selected    bool
	Hovered     bool
}

// NodeHooks are optional behaviours attached to a node.
// A nil hook falls back to the default behaviour.
type NodeHooks struct {
	// RenderOverride replaces the default header text draw.
	RenderOverride func(ctx *Context, n *TreeNode, args NodeRenderArgs)
	// IconDrawer draws a custom icon at pos and returns the width it used.
	IconDrawer func(ctx *Context, n *TreeNode, pos Vec2) float32
	// OnDoubleClick runs on a double-click of a selected node that did not
	// toggle expansion.
	OnDoubleClick func(n *TreeNode)
	// OnBeforeExpand and OnAfterExpand run around an expand state change.
	OnBeforeExpand func(n *TreeNode, expanding bool)
	OnAfterExpand  func(n *TreeNode, expanded bool)
}

// TreeNode is one entry of a TreeView. A node owns its children; the parent
// link is a non-owning back reference maintained by the mutation methods.
type TreeNode struct {
	id     NodeID
	src    *NodeIDSource
	header string

	parent   *TreeNode
	tree     *TreeView // Set while the node is a root of a tree
	children []*TreeNode
	index    int

	expanded bool
	checked  bool
	selected bool

	renameRequested bool

	// Capabilities
	CanRename   bool
	CanDrag     bool
	HasCheckbox bool

	Icon      string // Single glyph drawn before the header
	ToolTip   string
	Tag       any // Application payload, read by property panels
	MenuItems []*MenuItem
	Hooks     NodeHooks

	headerListeners   []func(n *TreeNode)
	selectedListeners []func(n *TreeNode)
	checkedListeners  []func(n *TreeNode, checked bool)
	renamedListeners  []func(n *TreeNode, oldHeader string)
}

// NewTreeNode creates a detached node whose ID comes from src. A nil src
// leaves the ID unassigned (zero) until the node joins a tree.
func NewTreeNode(src *NodeIDSource, header string) *TreeNode {
	n := &TreeNode{header: header, checked: true}
	if src != nil {
		n.src = src
		n.id = src.Next()
	}
	return n
}

// NewChild creates a node with the same ID source and appends it.
func (n *TreeNode) NewChild(header string) *TreeNode {
	c := NewTreeNode(n.src, header)
	n.AddChild(c)
	return c
}

// ID returns the node's identifier. Every node attached to a tree draws its
// ID from that tree's source, so IDs never collide within one tree. A node
// that arrives from another source (or none) is given a fresh ID when it is
// attached, along with its whole subtree.
func (n *TreeNode) ID() NodeID { return n.id }

// Header returns the display text.
func (n *TreeNode) Header() string { return n.header }

// SetHeader changes the display text and notifies header listeners.
func (n *TreeNode) SetHeader(h string) {
	if n.header == h {
		return
	}
	n.header = h
	for _, fn := range n.headerListeners {
		fn(n)
	}
}

// String implements fmt.Stringer.
func (n *TreeNode) String() string { return n.header }

// Parent returns the parent node, or nil for roots and detached nodes.
func (n *TreeNode) Parent() *TreeNode { return n.parent }

// Children returns a copy of the child list.
func (n *TreeNode) Children() []*TreeNode { return slices.Clone(n.children) }

// ChildCount returns the number of direct children.
func (n *TreeNode) ChildCount() int { return len(n.children) }

// HasChildren reports whether the node has any children.
func (n *TreeNode) HasChildren() bool { return len(n.children) > 0 }

// Child returns the child at i, or nil if out of range.
func (n *TreeNode) Child(i int) *TreeNode {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Index returns the node's position among its siblings.
func (n *TreeNode) Index() int { return n.index }

// Depth returns the number of ancestors.
func (n *TreeNode) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Root returns the top-most ancestor (n itself for a root).
func (n *TreeNode) Root() *TreeNode {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// TreeView returns the tree this node is attached to, or nil.
func (n *TreeNode) TreeView() *TreeView {
	return n.Root().tree
}

// IsAncestorOf reports whether n is a strict ancestor of other.
func (n *TreeNode) IsAncestorOf(other *TreeNode) bool {
	if other == nil {
		return false
	}
	for p := other.parent; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Walk visits n and its descendants depth-first in display order.
// Returning false from fn stops the walk. Walk reports whether it completed.
func (n *TreeNode) Walk(fn func(*TreeNode) bool) bool {
	if !fn(n) {
		return false
	}
	for _, c := range n.children {
		if !c.Walk(fn) {
			return false
		}
	}
	return true
}

// IsExpanded reports whether the node's children are shown.
func (n *TreeNode) IsExpanded() bool { return n.expanded }

// SetExpanded expands or collapses the node. The expand hooks run only when
// the state actually changes.
func (n *TreeNode) SetExpanded(v bool) {
	if n.expanded == v {
		return
	}
	if n.Hooks.OnBeforeExpand != nil {
		n.Hooks.OnBeforeExpand(n, v)
	}
	n.expanded = v
	if n.Hooks.OnAfterExpand != nil {
		n.Hooks.OnAfterExpand(n, v)
	}
}

// ExpandParents expands every collapsed ancestor so n becomes reachable.
func (n *TreeNode) ExpandParents() {
	for p := n.parent; p != nil; p = p.parent {
		p.SetExpanded(true)
	}
}

// IsChecked reports the node's own checked flag. Nodes start checked.
func (n *TreeNode) IsChecked() bool { return n.checked }

// SetChecked sets the flag on n and every descendant, notifying each node's
// checked listeners after its own subtree has been updated.
func (n *TreeNode) SetChecked(v bool) {
	n.checked = v
	for _, c := range n.children {
		c.SetChecked(v)
	}
	for _, fn := range n.checkedListeners {
		fn(n, v)
	}
}

// CheckState folds the node and its descendants into a tri-state value.
func (n *TreeNode) CheckState() CheckState {
	some, all := false, true
	n.Walk(func(d *TreeNode) bool {
		if d.checked {
			some = true
		} else {
			all = false
		}
		return true
	})
	switch {
	case all:
		return Checked
	case some:
		return Mixed
	}
	return Unchecked
}

// IsSelected reports the node's selected flag.
func (n *TreeNode) IsSelected() bool { return n.selected }

// SetSelected sets the selected flag. Inside a TreeView prefer
// TreeView.AddSelection / RemoveSelection; direct changes are picked up at the
// start of the next frame.
func (n *TreeNode) SetSelected(v bool) {
	if n.selected == v {
		return
	}
	n.selected = v
	for _, fn := range n.selectedListeners {
		fn(n)
	}
}

// ActivateRename asks the owning tree to open the rename field on this node
// on the next frame, without the click delay.
func (n *TreeNode) ActivateRename() {
	n.renameRequested = true
}

// OnHeaderChanged registers fn to run after the header changes.
func (n *TreeNode) OnHeaderChanged(fn func(n *TreeNode)) {
	n.headerListeners = append(n.headerListeners, fn)
}

// OnSelected registers fn to run after the selected flag changes.
func (n *TreeNode) OnSelected(fn func(n *TreeNode)) {
	n.selectedListeners = append(n.selectedListeners, fn)
}

// OnChecked registers fn to run after SetChecked.
func (n *TreeNode) OnChecked(fn func(n *TreeNode, checked bool)) {
	n.checkedListeners = append(n.checkedListeners, fn)
}

// OnRenamed registers fn to run after an inline rename is committed.
func (n *TreeNode) OnRenamed(fn func(n *TreeNode, oldHeader string)) {
	n.renamedListeners = append(n.renamedListeners, fn)
}

func (n *TreeNode) commitRename(text string) {
	old := n.header
	n.SetHeader(text)
	for _, fn := range n.renamedListeners {
		fn(n, old)
	}
}

// AddChild appends child. A child that already has a parent (or is a tree
// root) is detached first. Returns false for nil, n itself, or an ancestor
// of n.
func (n *TreeNode) AddChild(child *TreeNode) bool {
	return n.InsertChild(len(n.children), child)
}

// InsertChild inserts child at index i (clamped to the valid range).
func (n *TreeNode) InsertChild(i int, child *TreeNode) bool {
	if child == nil || child == n || child.IsAncestorOf(n) {
		return false
	}
	child.detach()
	if n.src != nil {
		child.adopt(n.src)
	}
	i = max(0, min(i, len(n.children)))
	n.children = slices.Insert(n.children, i, child)
	child.parent = n
	n.reindex(i)
	return true
}

// RemoveChild detaches child from n. The child keeps its own subtree.
func (n *TreeNode) RemoveChild(child *TreeNode) bool {
	if child == nil || child.parent != n {
		return false
	}
	n.RemoveChildAt(child.index)
	return true
}

// RemoveChildAt detaches and returns the child at i, or nil if out of range.
func (n *TreeNode) RemoveChildAt(i int) *TreeNode {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	c := n.children[i]
	n.children = slices.Delete(n.children, i, i+1)
	c.parent = nil
	c.index = 0
	n.reindex(i)
	return c
}

// MoveChild moves the child at from to position to.
func (n *TreeNode) MoveChild(from, to int) bool {
	if from < 0 || from >= len(n.children) || to < 0 || to >= len(n.children) {
		return false
	}
	if from == to {
		return true
	}
	c := n.children[from]
	n.children = slices.Delete(n.children, from, from+1)
	n.children = slices.Insert(n.children, to, c)
	n.reindex(min(from, to))
	return true
}

// ClearChildren detaches every child.
func (n *TreeNode) ClearChildren() {
	for _, c := range n.children {
		c.parent = nil
		c.index = 0
	}
	n.children = nil
}

// Sort orders the children by header, ascending and case-insensitive.
func (n *TreeNode) Sort() {
	n.SortFunc(compareHeaders)
}

// SortDescending orders the children by header, descending.
func (n *TreeNode) SortDescending() {
	n.SortFunc(func(a, b *TreeNode) int { return compareHeaders(b, a) })
}

// SortFunc orders the children with a stable sort using cmp.
func (n *TreeNode) SortFunc(cmp func(a, b *TreeNode) int) {
	slices.SortStableFunc(n.children, cmp)
	n.reindex(0)
}

func compareHeaders(a, b *TreeNode) int {
	return cmp.Or(
		strings.Compare(strings.ToLower(a.header), strings.ToLower(b.header)),
		strings.Compare(a.header, b.header),
	)
}

func (n *TreeNode) reindex(from int) {
	for i := from; i < len(n.children); i++ {
		n.children[i].index = i
	}
}

// adopt moves every node of the subtree that does not already draw from src
// onto it, issuing fresh IDs.
func (n *TreeNode) adopt(src *NodeIDSource) {
	n.Walk(func(d *TreeNode) bool {
		if d.src != src {
			d.src = src
			d.id = src.Next()
		}
		return true
	})
}

// detach removes n from its parent or from the tree it is a root of.
// Selection is left alone; the tree prunes detached nodes on its next frame.
func (n *TreeNode) detach() {
	switch {
	case n.parent != nil:
		n.parent.RemoveChild(n)
	case n.tree != nil:
		n.tree.removeRoot(n)
	}
}
