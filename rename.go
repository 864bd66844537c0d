package gui

// RenameState is the state of a tree's inline rename.
type RenameState uint8

const (
	// RenameNormal means no rename is pending.
	RenameNormal RenameState = iota
	// RenameArmed means a selected node was clicked and the rename field
	// opens once the delay passes without another click.
	RenameArmed
	// RenameEditing means the rename field is open.
	RenameEditing
)

// String returns the state name.
func (s RenameState) String() string {
	switch s {
	case RenameArmed:
		return "armed"
	case RenameEditing:
		return "editing"
	}
	return "normal"
}

// renameKey is the GetIDStable key of the rename field. Node IDs count up
// from 1 and never reach it.
const renameKey = ^uint64(0)

type renameMachine struct {
	state   RenameState
	target  *TreeNode
	text    string
	armedAt float64

	cancelledFrame uint64 // frame a click cancelled arming
	fresh          bool   // field opens this frame
	drawn          bool   // field was drawn this frame
	fieldID        ID     // widget ID of the field when last drawn
}

// RenameState returns the rename state.
func (tv *TreeView) RenameState() RenameState { return tv.rename.state }

// RenameTarget returns the node being renamed or armed for rename, or nil.
func (tv *TreeView) RenameTarget() *TreeNode { return tv.rename.target }

// RenameText returns the text in the open rename field.
func (tv *TreeView) RenameText() string { return tv.rename.text }

// CancelRename closes the rename field or disarms a pending rename without
// touching the header.
func (tv *TreeView) CancelRename() {
	if tv.rename.state != RenameNormal {
		guiLogger.Debug("tree rename aborted", "tree", tv.label, "node", tv.rename.target.id)
	}
	tv.rename.reset()
}

func (r *renameMachine) reset() {
	r.state = RenameNormal
	r.target = nil
	r.text = ""
	r.armedAt = 0
	r.fresh = false
}

// armRename starts the click delay for n.
func (tv *TreeView) armRename(n *TreeNode, now float64) {
	r := &tv.rename
	if r.state != RenameNormal || r.cancelledFrame == tv.frame {
		return
	}
	r.state = RenameArmed
	r.target = n
	r.armedAt = now
	guiLogger.Debug("tree rename armed", "tree", tv.label, "node", n.id, "at", now)
}

// activateRename opens the rename field on n without a delay.
func (tv *TreeView) activateRename(n *TreeNode) {
	if n == nil || !n.CanRename || !tv.Contains(n) {
		return
	}
	if tv.rename.state == RenameEditing && tv.rename.target == n {
		return
	}
	if tv.rename.state == RenameEditing {
		tv.commitRename()
	}
	n.ExpandParents()
	tv.rename.state = RenameEditing
	tv.rename.target = n
	tv.rename.text = n.header
	tv.rename.fresh = true
	guiLogger.Debug("tree rename editing", "tree", tv.label, "node", n.id, "header", n.header)
}

// commitRename writes the field text to the target header. A target that
// left the tree is not touched.
func (tv *TreeView) commitRename() {
	r := &tv.rename
	n := r.target
	if r.state == RenameEditing && n != nil {
		if tv.Contains(n) {
			guiLogger.Debug("tree rename committed", "tree", tv.label, "node", n.id, "header", r.text)
			n.commitRename(r.text)
		} else {
			guiLogger.Debug("tree rename target detached", "tree", tv.label, "node", n.id)
		}
	}
	r.reset()
}

// updateRename runs the frame-start transitions: a click cancels an armed
// rename, an elapsed delay opens the field, a detached target ends editing.
func (tv *TreeView) updateRename(in *InputState) {
	r := &tv.rename
	r.drawn = false
	if in == nil {
		return
	}
	switch r.state {
	case RenameArmed:
		if in.MouseClicked(MouseButtonLeft) || in.MouseClicked(MouseButtonRight) || in.KeyPressed(KeyEscape) {
			guiLogger.Debug("tree rename cancelled", "tree", tv.label, "node", r.target.id)
			r.reset()
			r.cancelledFrame = tv.frame
			return
		}
		if in.Time-r.armedAt <= tv.RenameDelay {
			return
		}
		n := r.target
		r.reset()
		if tv.Contains(n) && tv.IsNodeSelected(n) {
			tv.activateRename(n)
		}
	case RenameEditing:
		if !tv.Contains(r.target) {
			tv.commitRename()
		}
	}
}

// drawRenameField draws the inline field over a row and applies its result.
func (tv *TreeView) drawRenameField(ctx *Context, pos Vec2, maxWidth float32) {
	r := &tv.rename
	r.drawn = true
	id := ctx.GetIDStable(renameKey)
	r.fieldID = id

	var opts []Option
	if r.fresh {
		DeleteState(ctx, id)
		opts = append(opts, ForceFocus())
		r.fresh = false
	}
	w := minf(ctx.MeasureText(r.text).X+20, maxWidth)
	w = maxf(w, 40)

	res := ctx.InputTextAt(id, Vec2{X: pos.X - 4, Y: pos.Y}, w, &r.text, opts...)
	switch {
	case res.Submitted:
		tv.commitRename()
		DeleteState(ctx, id)
	case res.Cancelled:
		tv.CancelRename()
		DeleteState(ctx, id)
	}
}

// releaseRenameFocus drops the keyboard focus the rename field held once
// editing ended without the field seeing it.
func (tv *TreeView) releaseRenameFocus(ctx *Context) {
	r := &tv.rename
	if r.state == RenameEditing || r.fieldID == 0 {
		return
	}
	if ctx.IsFocused(r.fieldID) {
		ctx.ClearFocus()
	}
	DeleteState(ctx, r.fieldID)
	r.fieldID = 0
}
