package gui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// treeHarness drives a TreeView through whole GUI frames with synthetic
// input. The tree is drawn at the origin, 300x400, without a search box, so
// row i spans y in [i*20, i*20+20) with the default style.
type treeHarness struct {
	t   *testing.T
	ui  *GUI
	in  *InputState
	tv  *TreeView
	now float64

	// after runs once per frame after the tree, for widgets beside it.
	after func(ctx *Context)
}

const (
	harnessW float32 = 300
	harnessH float32 = 400
	rowH     float32 = 20
)

func newTreeHarness(t *testing.T, opts ...TreeOption) *treeHarness {
	t.Helper()
	h := &treeHarness{
		t:   t,
		ui:  New(nil),
		in:  NewInputState(),
		tv:  NewTreeView(append([]TreeOption{WithSearchBox(false)}, opts...)...),
		now: 1,
	}
	h.in.SetTime(h.now)
	return h
}

// roots adds one root per header and returns them.
func (h *treeHarness) roots(headers ...string) []*TreeNode {
	out := make([]*TreeNode, len(headers))
	for i, hd := range headers {
		out[i] = h.tv.NewNode(hd)
		h.tv.AddRoot(out[i])
	}
	return out
}

func (h *treeHarness) step(dt float64) {
	h.now += dt
	h.in.SetTime(h.now)
}

func (h *treeHarness) frame() {
	h.t.Helper()
	ctx := h.ui.Begin(h.in, Vec2{X: 800, Y: 600}, 0.016)
	h.tv.Draw(ctx, WithWidth(harnessW), WithHeight(harnessH))
	if h.after != nil {
		h.after(ctx)
	}
	require.NoError(h.t, h.ui.End())
	h.in.Reset()
	h.step(0.016)
}

// rowY is the vertical centre of display row i.
func rowY(i int) float32 { return float32(i)*rowH + rowH/2 }

// textX is just inside the header text of a row at depth d.
func textX(d int) float32 { return 2 + float32(d+1)*16 + 3 }

func (h *treeHarness) move(x, y float32) {
	h.in.SetMousePos(x, y)
	h.frame()
}

func (h *treeHarness) press(x, y float32) {
	h.in.SetMousePos(x, y)
	h.in.SetMouseButton(MouseButtonLeft, true)
	h.frame()
}

func (h *treeHarness) release() {
	h.in.SetMouseButton(MouseButtonLeft, false)
	h.frame()
}

// click waits long enough not to form a double-click, then presses and
// releases at (x, y).
func (h *treeHarness) click(x, y float32) {
	h.step(0.4)
	h.press(x, y)
	h.release()
}

func (h *treeHarness) clickMods(x, y float32, ctrl, shift bool) {
	h.in.ModCtrl, h.in.ModShift = ctrl, shift
	h.click(x, y)
	h.in.ModCtrl, h.in.ModShift = false, false
}

func (h *treeHarness) doubleClick(x, y float32) {
	h.click(x, y)
	h.press(x, y)
	h.release()
}

func (h *treeHarness) rightClick(x, y float32) {
	h.step(0.4)
	h.in.SetMousePos(x, y)
	h.in.SetMouseButton(MouseButtonRight, true)
	h.frame()
	h.in.SetMouseButton(MouseButtonRight, false)
	h.frame()
}

func (h *treeHarness) key(k Key) {
	h.in.SetKey(k, true)
	h.frame()
	h.in.SetKey(k, false)
	h.frame()
}

func (h *treeHarness) typeText(s string) {
	for _, r := range s {
		h.in.AddInputChar(r)
	}
	h.frame()
}

func (h *treeHarness) selected() []string {
	var out []string
	for _, n := range h.tv.SelectedNodes() {
		out = append(out, n.Header())
	}
	return out
}

func TestTreeView_ClickSelectsOnly(t *testing.T) {
	h := newTreeHarness(t)
	h.roots("A", "B", "C")
	h.frame()

	h.click(150, rowY(0))
	assert.Equal(t, []string{"A"}, h.selected())

	h.click(150, rowY(2))
	assert.Equal(t, []string{"C"}, h.selected())
	assert.True(t, h.tv.HasFocus())
	assert.Equal(t, "C", h.tv.Focused().Header())
}

func TestTreeView_CtrlClickToggles(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("A", "B", "C")
	h.frame()

	h.click(150, rowY(0))
	h.clickMods(150, rowY(2), true, false)
	assert.Equal(t, []string{"A", "C"}, h.selected())

	h.clickMods(150, rowY(0), true, false)
	assert.Equal(t, []string{"C"}, h.selected())
	assert.False(t, n[0].IsSelected())
}

func TestTreeView_ShiftClickSelectsRange(t *testing.T) {
	h := newTreeHarness(t)
	h.roots("A", "B", "C", "D", "E", "F")
	h.frame()

	h.click(150, rowY(1))
	h.clickMods(150, rowY(4), false, true)
	assert.Equal(t, []string{"B", "C", "D", "E"}, h.selected())

	// The anchor stays on B, so a second range goes the other way from it.
	h.click(150, rowY(1))
	h.clickMods(150, rowY(0), false, true)
	assert.ElementsMatch(t, []string{"A", "B"}, h.selected())
}

func TestTreeView_RangeSkipsCollapsedChildren(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("A", "P", "B")
	x := n[1].NewChild("x")
	y := n[1].NewChild("y")
	h.frame()

	h.click(150, rowY(0))
	h.clickMods(150, rowY(2), false, true)
	assert.Equal(t, []string{"A", "P", "B"}, h.selected())
	assert.False(t, x.IsSelected())
	assert.False(t, y.IsSelected())
}

func TestTreeView_RangeWithDetachedAnchor(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("A", "B", "C", "D")
	h.frame()

	h.click(150, rowY(1))
	require.True(t, h.tv.RemoveRoot(n[1]))
	h.frame()

	// Rows are now A, C, D
	h.clickMods(150, rowY(2), false, true)
	assert.Equal(t, []string{"D"}, h.selected())
}

func TestTreeView_BoxSelect(t *testing.T) {
	h := newTreeHarness(t)
	h.roots("A", "B", "C", "D", "E")
	h.frame()
	h.click(150, rowY(0))
	require.Equal(t, []string{"A"}, h.selected())

	h.step(0.4)
	h.press(250, 390)
	h.move(100, 30)
	h.move(100, 30)
	h.release()

	assert.ElementsMatch(t, []string{"B", "C", "D", "E"}, h.selected())
	assert.False(t, h.tv.SelectionBox().IsActive())
}

func TestTreeView_BoxSelectCtrlInverts(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("A", "B", "C", "D", "E")
	h.tv.AddSelection(n[0])
	h.tv.AddSelection(n[1])
	h.tv.AddSelection(n[3])
	h.frame()

	h.in.ModCtrl = true
	h.step(0.4)
	h.press(250, 390)
	h.move(100, 30)
	h.move(100, 30)
	h.release()
	h.in.ModCtrl = false

	// A was outside the box and keeps its selection
	assert.ElementsMatch(t, []string{"A", "C", "E"}, h.selected())
}

func TestTreeView_BoxShrinkDeselects(t *testing.T) {
	h := newTreeHarness(t)
	h.roots("A", "B", "C", "D", "E")
	h.frame()

	h.step(0.4)
	h.press(250, 390)
	h.move(100, 30)
	h.move(100, 30)
	require.ElementsMatch(t, []string{"B", "C", "D", "E"}, h.selected())

	// Shrink to rows D and E only
	h.move(100, 70)
	h.move(100, 70)
	h.release()
	assert.ElementsMatch(t, []string{"D", "E"}, h.selected())
}

func TestTreeView_BoxDisabled(t *testing.T) {
	h := newTreeHarness(t, WithSelectionBox(false))
	h.roots("A", "B")
	h.frame()

	h.step(0.4)
	h.press(250, 390)
	h.move(100, 5)
	h.move(100, 5)
	h.release()
	assert.Empty(t, h.selected())
}

func TestTreeView_RenameAfterDelay(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("Alpha", "Beta")
	n[0].CanRename = true
	h.frame()

	h.click(150, rowY(0))
	h.click(textX(0), rowY(0))
	assert.Equal(t, RenameArmed, h.tv.RenameState())
	assert.Same(t, n[0], h.tv.RenameTarget())

	// Not yet: 0.4s since the press
	h.step(0.4 - 0.032)
	h.frame()
	assert.Equal(t, RenameArmed, h.tv.RenameState())

	h.step(0.2)
	h.frame()
	assert.Equal(t, RenameEditing, h.tv.RenameState())
	assert.Equal(t, "Alpha", h.tv.RenameText())
}

func TestTreeView_SecondClickCancelsArmedRename(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("Alpha", "Beta")
	n[0].CanRename = true
	h.frame()

	h.click(150, rowY(0))
	h.click(textX(0), rowY(0))
	require.Equal(t, RenameArmed, h.tv.RenameState())

	// Second press 0.3s after the first one
	h.step(0.3 - 0.032)
	h.press(textX(0), rowY(0))
	h.release()
	assert.Equal(t, RenameNormal, h.tv.RenameState())

	h.step(0.6)
	h.frame()
	assert.Equal(t, RenameNormal, h.tv.RenameState())
	assert.Equal(t, "Alpha", n[0].Header())
}

func TestTreeView_RenameNeedsSelectedNode(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("Alpha")
	n[0].CanRename = true
	h.frame()

	// First click only selects
	h.click(textX(0), rowY(0))
	assert.Equal(t, RenameNormal, h.tv.RenameState())
	assert.True(t, n[0].IsSelected())
}

func TestTreeView_RenameNotAllowed(t *testing.T) {
	h := newTreeHarness(t)
	h.roots("Alpha")
	h.frame()

	h.click(150, rowY(0))
	h.click(textX(0), rowY(0))
	assert.Equal(t, RenameNormal, h.tv.RenameState())
}

func TestTreeView_EscapeCancelsArmedRename(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("Alpha")
	n[0].CanRename = true
	h.frame()

	h.click(150, rowY(0))
	h.click(textX(0), rowY(0))
	require.Equal(t, RenameArmed, h.tv.RenameState())
	h.key(KeyEscape)
	assert.Equal(t, RenameNormal, h.tv.RenameState())
}

func TestTreeView_F2RenameCommit(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("Alpha", "Beta")
	n[0].CanRename = true
	var renamedFrom string
	n[0].OnRenamed(func(_ *TreeNode, old string) { renamedFrom = old })
	h.frame()

	h.click(150, rowY(0))
	h.key(KeyF2)
	require.Equal(t, RenameEditing, h.tv.RenameState())

	// The whole header is selected, so typing replaces it.
	h.typeText("Gamma")
	assert.Equal(t, "Gamma", h.tv.RenameText())
	assert.Equal(t, "Alpha", n[0].Header())

	h.key(KeyEnter)
	assert.Equal(t, RenameNormal, h.tv.RenameState())
	assert.Equal(t, "Gamma", n[0].Header())
	assert.Equal(t, "Alpha", renamedFrom)
}

func TestTreeView_RenameEscapeKeepsHeader(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("Alpha")
	n[0].CanRename = true
	n[0].ActivateRename()
	h.frame()
	require.Equal(t, RenameEditing, h.tv.RenameState())

	h.typeText("Other")
	h.key(KeyEscape)
	assert.Equal(t, RenameNormal, h.tv.RenameState())
	assert.Equal(t, "Alpha", n[0].Header())
}

func TestTreeView_ClickElsewhereCommitsRename(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("Alpha", "Beta", "Gamma")
	n[0].CanRename = true
	n[0].ActivateRename()
	h.frame()
	h.typeText("Q")

	h.click(150, rowY(2))
	assert.Equal(t, RenameNormal, h.tv.RenameState())
	assert.Equal(t, "Q", n[0].Header())
	assert.Equal(t, []string{"Gamma"}, h.selected())
}

func TestTreeView_ActivateRenameExpandsParents(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("Root")
	c := n[0].NewChild("Child")
	c.CanRename = true
	c.ActivateRename()
	h.frame()

	assert.True(t, n[0].IsExpanded())
	assert.Equal(t, RenameEditing, h.tv.RenameState())
	assert.Same(t, c, h.tv.RenameTarget())
}

func TestTreeView_RenameDetachedTargetIsNoop(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("Alpha", "Beta")
	n[0].CanRename = true
	n[0].ActivateRename()
	h.frame()
	require.Equal(t, RenameEditing, h.tv.RenameState())

	h.tv.rename.text = "Changed"
	h.tv.RemoveRoot(n[0])
	h.frame()

	assert.Equal(t, RenameNormal, h.tv.RenameState())
	assert.Equal(t, "Alpha", n[0].Header())
}

func TestTreeView_DoubleClickTogglesParent(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("P", "Leaf")
	n[0].NewChild("c")
	hookCalls := 0
	n[0].Hooks.OnDoubleClick = func(*TreeNode) { hookCalls++ }
	leafCalls := 0
	n[1].Hooks.OnDoubleClick = func(*TreeNode) { leafCalls++ }
	h.frame()

	h.doubleClick(150, rowY(0))
	assert.True(t, n[0].IsExpanded())
	assert.Zero(t, hookCalls)

	// Leaf is now row 2
	h.doubleClick(150, rowY(2))
	assert.Equal(t, 1, leafCalls)
}

func TestTreeView_ArrowClickToggles(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("P")
	n[0].NewChild("c")
	h.frame()

	h.click(10, rowY(0))
	assert.True(t, n[0].IsExpanded())
	assert.Empty(t, h.selected(), "arrow click should not select")

	h.click(10, rowY(0))
	assert.False(t, n[0].IsExpanded())
}

func TestTreeView_ReconcilesExternalFlags(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("A", "B")
	var changed []*TreeNode
	h.tv.OnSelectionChanged(func(n *TreeNode) { changed = append(changed, n) })

	n[1].SetSelected(true)
	assert.False(t, h.tv.IsNodeSelected(n[1]), "flag alone is not the selection")
	h.frame()
	assert.True(t, h.tv.IsNodeSelected(n[1]))
	assert.Equal(t, []*TreeNode{n[1]}, changed)

	n[1].SetSelected(false)
	h.frame()
	assert.False(t, h.tv.IsNodeSelected(n[1]))
	assert.Empty(t, h.tv.SelectedNodes())
	assert.Equal(t, []*TreeNode{n[1], n[1]}, changed)
}

func TestTreeView_PrunesRemovedNodes(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("P", "Q")
	c := n[0].NewChild("c")
	h.tv.AddSelection(c)
	h.tv.AddSelection(n[1])

	n[0].RemoveChild(c)
	h.frame()
	assert.Equal(t, []string{"Q"}, h.selected())
	assert.False(t, c.IsSelected())

	h.tv.RemoveRoot(n[1])
	assert.Empty(t, h.tv.SelectedNodes(), "RemoveRoot prunes immediately")
}

func TestTreeView_DeselectAllNotifiesOnce(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("A", "B", "C")
	h.tv.SelectAll()
	require.Len(t, h.tv.SelectedNodes(), 3)

	var changed []*TreeNode
	h.tv.OnSelectionChanged(func(n *TreeNode) { changed = append(changed, n) })
	h.tv.DeselectAll()
	assert.Equal(t, []*TreeNode{nil}, changed)
	for _, x := range n {
		assert.False(t, x.IsSelected())
	}

	h.tv.DeselectAll()
	assert.Len(t, changed, 1, "empty selection does not notify")
}

func TestTreeView_AddSelectionIgnoresForeignNodes(t *testing.T) {
	h := newTreeHarness(t)
	h.roots("A")
	other := NewTreeNode(nil, "elsewhere")
	h.tv.AddSelection(other)
	assert.Empty(t, h.tv.SelectedNodes())
	assert.False(t, other.IsSelected())
}

func TestTreeView_FilterFlattens(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("Fruits", "Vegetables")
	n[0].NewChild("Apple")
	n[0].NewChild("Banana")
	cherry := n[0].NewChild("Cherry")
	cherry.NewChild("Cherry Pie")
	n[1].NewChild("Carrot")
	n[1].SetExpanded(true)

	headers := func() []string {
		var out []string
		for _, x := range h.tv.DisplayOrder() {
			out = append(out, x.Header())
		}
		return out
	}

	assert.Equal(t, []string{"Fruits", "Vegetables", "Carrot"}, headers())

	h.tv.SetSearchText("e")
	assert.True(t, h.tv.IsFiltering())
	assert.Equal(t, []string{"Apple", "Cherry", "Cherry Pie", "Vegetables"}, headers())

	h.tv.SetSearchText("CHERRY")
	assert.Equal(t, []string{"Cherry", "Cherry Pie"}, headers())

	h.tv.SetSearchText("   ")
	assert.False(t, h.tv.IsFiltering())

	h.tv.SetSearchText("")
	assert.Equal(t, []string{"Fruits", "Vegetables", "Carrot"}, headers())
	assert.False(t, n[0].IsExpanded(), "filtering does not touch expansion")
	assert.True(t, n[1].IsExpanded())
}

func TestTreeView_FuzzyFilter(t *testing.T) {
	h := newTreeHarness(t, WithFilterMode(FilterFuzzy))
	n := h.roots("Cherry", "Cherry Pie", "Apple")

	h.tv.SetSearchText("cpe")
	assert.Equal(t, []*TreeNode{n[1]}, h.tv.DisplayOrder())

	h.tv.FilterMode = FilterSubstring
	assert.Empty(t, h.tv.DisplayOrder())
}

func TestTreeView_ClickWhileFiltering(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("Fruits")
	n[0].NewChild("Apple")
	cherry := n[0].NewChild("Cherry")
	cherry.NewChild("Cherry Pie")
	h.tv.SetSearchText("e")
	h.frame()

	// Rows: Apple, Cherry, Cherry Pie. Cherry has children but no arrow.
	h.click(10, rowY(1))
	assert.Equal(t, []string{"Cherry"}, h.selected())
	assert.False(t, cherry.IsExpanded())
}

func TestTreeView_NodeOffset(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("A", "B", "C")
	a1 := n[0].NewChild("a1")
	n[0].SetExpanded(true)

	off, ok := h.tv.NodeOffset(n[1], 20)
	require.True(t, ok)
	assert.Equal(t, float32(40), off, "B is the third visible row")

	off, ok = h.tv.NodeOffset(a1, 20)
	require.True(t, ok)
	assert.Equal(t, float32(20), off)

	n[0].SetExpanded(false)
	_, ok = h.tv.NodeOffset(a1, 20)
	assert.False(t, ok, "hidden under a collapsed parent")

	_, ok = h.tv.NodeOffset(NewTreeNode(nil, "x"), 20)
	assert.False(t, ok)

	h.tv.SetSearchText("a1")
	off, ok = h.tv.NodeOffset(a1, 20)
	require.True(t, ok)
	assert.Zero(t, off)
}

func TestTreeView_ScrollToNode(t *testing.T) {
	h := newTreeHarness(t)
	var nodes []*TreeNode
	for i := 0; i < 50; i++ {
		nodes = append(nodes, h.tv.NewNode("n"))
		h.tv.AddRoot(nodes[i])
	}
	deep := nodes[10].NewChild("deep")
	h.frame()

	h.tv.ScrollToNode(nodes[30])
	h.frame()
	assert.Equal(t, float32(600), h.tv.Scroll().Y)

	h.tv.ScrollToNode(deep)
	assert.True(t, nodes[10].IsExpanded())
	h.frame()
	assert.Equal(t, float32(11*20), h.tv.Scroll().Y)

	// Selected nodes are assumed to be in view
	h.tv.AddSelection(nodes[40])
	h.tv.ScrollToNode(nodes[40])
	h.frame()
	assert.Equal(t, float32(11*20), h.tv.Scroll().Y)
}

func TestTreeView_ScrollClampsAndWheel(t *testing.T) {
	h := newTreeHarness(t)
	for i := 0; i < 50; i++ {
		h.tv.AddRoot(h.tv.NewNode("n"))
	}
	h.tv.SetScroll(0, 10000)
	h.frame()
	assert.Equal(t, float32(50*20-400), h.tv.Scroll().Y)

	h.tv.SetScroll(0, 0)
	h.in.SetMousePos(150, 100)
	h.in.SetMouseWheel(0, -1)
	h.frame()
	assert.Equal(t, float32(60), h.tv.Scroll().Y)
}

func TestTreeView_ScrolledRowsHitTest(t *testing.T) {
	h := newTreeHarness(t)
	var nodes []*TreeNode
	for i := 0; i < 50; i++ {
		nodes = append(nodes, h.tv.NewNode("n"))
		h.tv.AddRoot(nodes[i])
	}
	h.tv.SetScroll(0, 200)
	h.frame()

	h.click(150, rowY(0))
	assert.Equal(t, []*TreeNode{nodes[10]}, h.tv.SelectedNodes())
}

func TestTreeView_KeyboardNavigation(t *testing.T) {
	h := newTreeHarness(t)
	h.roots("A", "B", "C", "D", "E")
	h.tv.SetFocus(true)
	h.frame()

	h.key(KeyDown)
	assert.Equal(t, []string{"A"}, h.selected())
	h.key(KeyDown)
	assert.Equal(t, []string{"B"}, h.selected())

	h.in.ModShift = true
	h.key(KeyDown)
	h.in.ModShift = false
	assert.Equal(t, []string{"B", "C"}, h.selected())

	h.key(KeyEnd)
	assert.Equal(t, []string{"E"}, h.selected())
	h.key(KeyHome)
	assert.Equal(t, []string{"A"}, h.selected())
	h.key(KeyUp)
	assert.Equal(t, "A", h.tv.Focused().Header())

	h.in.ModCtrl = true
	h.key(KeyA)
	h.in.ModCtrl = false
	assert.Len(t, h.tv.SelectedNodes(), 5)
}

func TestTreeView_FocusSelectsOnlyWhenFocusMoves(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("A", "B", "C")
	changes := 0
	h.tv.OnSelectionChanged(func(*TreeNode) { changes++ })
	h.tv.SetFocus(true)
	h.frame()

	h.key(KeyDown)
	require.Same(t, n[0], h.tv.Focused())
	assert.Equal(t, 1, changes)

	// Focus stays on A
	for range 5 {
		h.frame()
	}
	h.key(KeyUp)
	assert.Equal(t, 1, changes)

	// Ctrl-deselecting the focused node sticks while focus stays put
	h.clickMods(150, rowY(0), true, false)
	require.Empty(t, h.selected())
	require.Same(t, n[0], h.tv.Focused())
	changes = 0
	for range 5 {
		h.frame()
	}
	h.key(KeyUp)
	assert.Zero(t, changes)
	assert.Empty(t, h.selected())

	h.key(KeyDown)
	assert.Equal(t, 1, changes)
	assert.Equal(t, []string{"B"}, h.selected())
}

func TestTreeView_FocusOutlineOnUnselectedRow(t *testing.T) {
	h := newTreeHarness(t)
	rs := h.roots("A", "B")
	focusColor := h.ui.style.FocusColor

	outlined := false
	h.after = func(ctx *Context) {
		outlined = false
		for _, v := range ctx.DrawList.VtxBuffer {
			if v.Color == focusColor {
				outlined = true
			}
		}
	}

	h.click(textX(0), rowY(0))
	h.move(textX(0), rowY(0))
	assert.False(t, outlined, "a selected row shows its selection instead")

	h.clickMods(textX(0), rowY(0), true, false)
	h.move(textX(0), rowY(0))
	require.False(t, rs[0].IsSelected())
	assert.True(t, outlined)

	h.click(harnessW+50, rowY(0)) // a click outside takes focus away
	h.move(harnessW+50, rowY(0))
	assert.False(t, outlined)
}

func TestTreeView_KeyboardExpandCollapse(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("P", "Q")
	c1 := n[0].NewChild("c1")
	n[0].NewChild("c2")
	h.tv.SetFocus(true)
	h.frame()

	h.key(KeyDown)
	require.Same(t, n[0], h.tv.Focused())

	h.key(KeyRight)
	assert.True(t, n[0].IsExpanded())
	h.key(KeyRight)
	assert.Same(t, c1, h.tv.Focused())

	h.key(KeyLeft)
	assert.Same(t, n[0], h.tv.Focused())
	h.key(KeyLeft)
	assert.False(t, n[0].IsExpanded())
}

func TestTreeView_NoKeyboardWithoutFocus(t *testing.T) {
	h := newTreeHarness(t)
	h.roots("A", "B")
	h.frame()
	h.key(KeyDown)
	assert.Empty(t, h.selected())
}

func TestTreeView_CheckboxAppliesToSelection(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("A", "B", "C")
	for _, x := range n {
		x.HasCheckbox = true
	}
	h.tv.AddSelection(n[1])
	h.tv.AddSelection(n[2])
	var checked []*TreeNode
	h.tv.OnNodeChecked(func(n *TreeNode) { checked = append(checked, n) })
	h.frame()

	h.click(24, rowY(0))
	assert.False(t, n[0].IsChecked())
	assert.False(t, n[1].IsChecked())
	assert.False(t, n[2].IsChecked())
	assert.Equal(t, []*TreeNode{n[0]}, checked)
	assert.Equal(t, []string{"B", "C"}, h.selected(), "checkbox click does not select")
}

func TestTreeView_ContextMenu(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("A", "B", "C")
	ran := false
	n[1].MenuItems = []*MenuItem{NewMenuItem("Do", func() { ran = true })}
	h.frame()

	h.rightClick(150, rowY(0))
	assert.False(t, h.tv.ContextMenu().IsOpen(), "A has no menu items")
	assert.Equal(t, []string{"A"}, h.selected())

	h.rightClick(150, rowY(1))
	require.True(t, h.tv.ContextMenu().IsOpen())
	assert.Equal(t, []string{"B"}, h.selected())

	// First entry sits just below the opening point
	h.click(160, rowY(1)+12)
	assert.True(t, ran)
	assert.False(t, h.tv.ContextMenu().IsOpen())
	assert.Equal(t, []string{"B"}, h.selected(), "click on the menu does not reach the rows")
}

func TestTreeView_ContextMenuClosesOnEscape(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("A")
	n[0].MenuItems = []*MenuItem{NewMenuItem("Do", nil)}
	h.frame()

	h.rightClick(150, rowY(0))
	require.True(t, h.tv.ContextMenu().IsOpen())
	h.key(KeyEscape)
	assert.False(t, h.tv.ContextMenu().IsOpen())
}

func TestTreeView_DragDropNotifies(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("A", "B", "C")
	for _, x := range n {
		x.CanDrag = true
	}
	var gotDragged, gotTarget *TreeNode
	h.tv.OnNodeDropped(func(d, tgt *TreeNode) { gotDragged, gotTarget = d, tgt })
	h.frame()

	h.step(0.4)
	h.press(150, rowY(0))
	h.move(150, rowY(2))
	assert.Same(t, n[0], h.tv.DraggedNode())
	assert.False(t, h.tv.SelectionBox().IsActive(), "dragging a row does not start the box")
	h.release()

	assert.Same(t, n[0], gotDragged)
	assert.Same(t, n[2], gotTarget)
	// The tree leaves structure alone
	assert.Nil(t, n[0].Parent())
	assert.Equal(t, 0, n[0].Index())
}

func TestTreeView_AcceptDropOutsideTree(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("A", "B")
	n[0].CanDrag = true
	n[1].CanDrag = true
	panel := Rect{X: 400, Y: 0, W: 100, H: 100}
	var dropped []*TreeNode
	h.after = func(ctx *Context) {
		if got, ok := h.tv.AcceptDrop(ctx, panel); ok {
			dropped = append(dropped, got)
		}
	}
	h.frame()

	h.step(0.4)
	h.press(150, rowY(0))
	h.move(150, rowY(1))
	h.move(450, 50)
	require.Same(t, n[0], h.tv.DraggedNode())
	assert.Empty(t, dropped, "nothing until release")
	h.release()

	assert.Equal(t, []*TreeNode{n[0]}, dropped)
	assert.Same(t, n[0], h.tv.DraggedNode(), "kept after the drop")
	h.tv.ClearDraggedNode()
	assert.Nil(t, h.tv.DraggedNode())

	// Released outside the panel: not delivered
	h.step(0.4)
	h.press(150, rowY(1))
	h.move(150, rowY(0))
	h.move(450, 300)
	h.release()
	assert.Len(t, dropped, 1)
	assert.Same(t, n[1], h.tv.DraggedNode())
}

func TestTreeView_ContextMenuDisarmedByReleaseElsewhere(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("A", "B")
	n[1].MenuItems = []*MenuItem{NewMenuItem("Do", nil)}
	h.frame()

	// Press on B, release below the rows
	h.step(0.4)
	h.in.SetMousePos(150, rowY(1))
	h.in.SetMouseButton(MouseButtonRight, true)
	h.frame()
	h.in.SetMousePos(150, rowY(6))
	h.in.SetMouseButton(MouseButtonRight, false)
	h.frame()
	require.False(t, h.tv.ContextMenu().IsOpen())
	require.Equal(t, []string{"B"}, h.selected())

	// Press outside the tree, release over B
	h.step(0.4)
	h.in.SetMousePos(500, rowY(1))
	h.in.SetMouseButton(MouseButtonRight, true)
	h.frame()
	h.in.SetMousePos(150, rowY(1))
	h.in.SetMouseButton(MouseButtonRight, false)
	h.frame()
	assert.False(t, h.tv.ContextMenu().IsOpen())
}

func TestTreeView_LeftClickedNotification(t *testing.T) {
	h := newTreeHarness(t)
	n := h.roots("A", "B")
	var clicked []*TreeNode
	h.tv.OnNodeLeftClicked(func(n *TreeNode) { clicked = append(clicked, n) })
	h.frame()

	h.click(150, rowY(1))
	h.clickMods(150, rowY(1), true, false)
	assert.Equal(t, []*TreeNode{n[1]}, clicked, "deselecting click does not notify")
}

func TestTreeView_FindByIDAndWalk(t *testing.T) {
	tv := NewTreeView()
	a := tv.NewNode("A")
	b := a.NewChild("B")
	tv.AddRoot(a)

	assert.Same(t, b, tv.FindByID(b.ID()))
	assert.Nil(t, tv.FindByID(NodeID(9999)))
	assert.True(t, tv.Contains(b))

	var seen []string
	tv.Walk(func(n *TreeNode) bool {
		seen = append(seen, n.Header())
		return true
	})
	assert.Equal(t, []string{"A", "B"}, seen)

	tv.ClearRoots()
	assert.False(t, tv.Contains(b))
	assert.Empty(t, tv.Roots())
}

func TestTreeView_AttachIssuesUniqueIDs(t *testing.T) {
	tv := NewTreeView()
	a := NewTreeNode(nil, "a")
	b := NewTreeNode(nil, "b")
	a1 := a.NewChild("a1")
	c := tv.NewNode("c")
	assert.Zero(t, a.ID(), "no source, no ID yet")

	tv.AddRoot(c)
	tv.AddRoot(a)
	tv.AddRoot(b)

	ids := map[NodeID]bool{}
	for _, n := range []*TreeNode{a, a1, b, c} {
		require.NotZero(t, n.ID(), n.Header())
		require.False(t, ids[n.ID()], "duplicate ID for %s", n.Header())
		ids[n.ID()] = true
	}
	assert.Same(t, b, tv.FindByID(b.ID()))
	assert.Same(t, a1, tv.FindByID(a1.ID()))
}

func TestTreeView_ForeignNodesAreReissued(t *testing.T) {
	t1 := NewTreeView()
	t2 := NewTreeView()
	x := t1.NewNode("x")
	x.NewChild("x1")
	y := t2.NewNode("y")
	require.Equal(t, x.ID(), y.ID(), "both sources start at 1")

	t2.AddRoot(y)
	y.AddChild(x)
	assert.NotEqual(t, y.ID(), x.ID())
	assert.Same(t, x, t2.FindByID(x.ID()))
	assert.Equal(t, uint64(3), t2.IDSource().Issued())

	// Moving within the tree keeps the ID
	id := x.ID()
	t2.AddRoot(x)
	assert.Equal(t, id, x.ID())
}

func TestTreeView_InsertRootMovesNode(t *testing.T) {
	tv := NewTreeView()
	a := tv.NewNode("A")
	b := tv.NewNode("B")
	c := a.NewChild("C")
	tv.AddRoot(a)
	tv.AddRoot(b)

	require.True(t, tv.InsertRoot(0, c))
	assert.Nil(t, c.Parent())
	assert.Zero(t, a.ChildCount())
	assert.Equal(t, []*TreeNode{c, a, b}, tv.Roots())
	for i, r := range tv.Roots() {
		assert.Equal(t, i, r.Index())
	}
}
