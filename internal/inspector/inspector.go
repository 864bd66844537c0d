// Package inspector draws a properties panel for the node a tree's
// selection last touched, with a name field, visibility and expansion
// toggles, node actions and a short event log.
package inspector

import (
	"fmt"
	"strings"

	gui "github.com/go-theft-auto/uiframework"
)

// maxEvents bounds the event log.
const maxEvents = 8

// Panel follows a tree's selection. Rows dragged out of the tree and dropped
// on the panel are pinned as the current node until the selection changes.
type Panel struct {
	tree    *gui.TreeView
	current *gui.TreeNode

	name     string // Name field buffer
	editing  bool
	editNode *gui.TreeNode // Node the open name edit applies to

	events []string
}

// New creates a panel bound to tree.
func New(tree *gui.TreeView) *Panel {
	p := &Panel{tree: tree}
	tree.OnSelectionChanged(p.selectionChanged)
	tree.OnNodeChecked(func(n *gui.TreeNode) {
		p.Log(fmt.Sprintf("%s visible=%v", n.Header(), n.IsChecked()))
	})
	return p
}

func (p *Panel) selectionChanged(n *gui.TreeNode) {
	if n != nil && n.IsSelected() {
		p.current = n
		return
	}
	if sel := p.tree.SelectedNodes(); len(sel) > 0 {
		p.current = sel[len(sel)-1]
	} else {
		p.current = nil
	}
}

// Current returns the node on display, or nil.
func (p *Panel) Current() *gui.TreeNode { return p.current }

// Log appends msg to the event log, dropping the oldest past maxEvents.
func (p *Panel) Log(msg string) {
	p.events = append(p.events, msg)
	if n := len(p.events); n > maxEvents {
		p.events = p.events[n-maxEvents:]
	}
}

// Events returns the log, oldest first.
func (p *Panel) Events() []string { return append([]string(nil), p.events...) }

// Draw lays the panel out from the cursor down.
func (p *Panel) Draw(ctx *gui.Context) {
	start := ctx.CursorPos()
	if p.current != nil && !p.tree.Contains(p.current) {
		p.current = nil
	}
	if p.current == nil {
		p.editing = false
	}

	ctx.VStack()(func() {
		if n := p.current; n != nil {
			p.drawNode(ctx, n)
		} else {
			ctx.TextDisabled("Nothing selected")
		}
		ctx.Separator()
		p.drawEvents(ctx)
	})

	area := gui.Rect{X: start.X, Y: start.Y, W: ctx.DisplaySize.X - start.X, H: ctx.CursorPos().Y - start.Y}
	if ctx.DragHovering(gui.OutlinerItemPayload, area) {
		ctx.DrawList.AddRectOutline(area.X, area.Y, area.W, area.H, ctx.Style().TextHighlightColor, 1)
	}
	if n, ok := p.tree.AcceptDrop(ctx, area); ok {
		p.current = n
		p.tree.ClearDraggedNode()
		p.Log(fmt.Sprintf("pinned %q", n.Header()))
	}
}

func (p *Panel) drawNode(ctx *gui.Context, n *gui.TreeNode) {
	p.drawName(ctx, n)

	visible := n.IsChecked()
	opts := []gui.Option{gui.WithDisabled(!n.HasCheckbox)}
	if n.CheckState() == gui.Mixed {
		opts = append(opts, gui.WithIndeterminate())
	}
	if ctx.Checkbox("Visible", &visible, opts...) {
		n.SetChecked(visible)
		p.Log(fmt.Sprintf("%s visible=%v", n.Header(), visible))
	}

	expanded := n.IsExpanded()
	if ctx.Checkbox("Expanded", &expanded, gui.WithDisabled(!n.HasChildren())) {
		n.SetExpanded(expanded)
	}

	ctx.HStack()(func() {
		if ctx.Button("Rename", gui.WithDisabled(!n.CanRename)) {
			p.tree.ScrollToNode(n)
			n.ActivateRename()
		}
		if ctx.Button("Collapse all", gui.WithDisabled(!n.HasChildren())) {
			n.Walk(func(d *gui.TreeNode) bool {
				d.SetExpanded(false)
				return true
			})
		}
		if ctx.Button("Delete") {
			p.delete(n)
		}
	})

	ctx.LabelText("ID:", fmt.Sprint(n.ID()))
	ctx.LabelText("Depth:", fmt.Sprint(n.Depth()))
	ctx.LabelText("Children:", fmt.Sprint(n.ChildCount()))
	ctx.LabelText("Check:", n.CheckState().String())
	ctx.LabelText("Selected:", fmt.Sprint(len(p.tree.SelectedNodes())))
	ctx.LabelText("Rename:", p.tree.RenameState().String())
}

// drawName shows the header in a text field. Enter or a click elsewhere
// renames the node the edit started on; Escape or an empty name reverts.
func (p *Panel) drawName(ctx *gui.Context, n *gui.TreeNode) {
	if !p.editing {
		p.name = n.Header()
		p.editNode = n
	}
	res := ctx.InputTextEx("Name", &p.name, gui.WithID("inspector.name"))
	target := p.editNode
	switch {
	case res.Cancelled:
		p.name = target.Header()
	case res.Submitted:
		name := strings.TrimSpace(p.name)
		if name != "" && name != target.Header() && p.tree.Contains(target) {
			old := target.Header()
			target.SetHeader(name)
			p.Log(fmt.Sprintf("renamed %q to %q", old, name))
		}
		p.name = n.Header()
	}
	p.editing = res.Editing
}

func (p *Panel) delete(n *gui.TreeNode) {
	removed := false
	if parent := n.Parent(); parent != nil {
		removed = parent.RemoveChild(n)
	} else {
		removed = p.tree.RemoveRoot(n)
	}
	if removed {
		p.Log(fmt.Sprintf("deleted %q", n.Header()))
		p.current = nil
	}
}

// drawEvents lists the log newest first, the newest highlighted.
func (p *Panel) drawEvents(ctx *gui.Context) {
	for i := len(p.events) - 1; i >= 0; i-- {
		if i == len(p.events)-1 {
			ctx.TextColored(p.events[i], ctx.Style().TextHighlightColor)
		} else {
			ctx.TextDisabled(p.events[i])
		}
	}
}
