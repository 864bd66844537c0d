/*
Package gui provides an immediate-mode widget toolkit with a hierarchical tree
view control, designed as idiomatic Go with a dedicated Context type.

# Overview

The UI is rebuilt every frame. Simple widgets (Button, Checkbox, InputText)
keep no state of their own and return interaction results directly. The
TreeView is the exception: it owns its nodes, the selection set and its
interaction state (rename, rubber-band box, scroll, drag), and is drawn once
per frame with TreeView.Draw.

# Quick Start

	renderer, _ := opengl.NewRenderer(1280, 720)
	ui := gui.New(renderer, gui.WithStyle(gui.GTAStyle()))

	tree := gui.NewTreeView(gui.WithFilterMode(gui.FilterFuzzy))
	scene := tree.NewNode("Scene")
	scene.CanRename = true
	scene.NewChild("Camera")
	scene.NewChild("Light")
	tree.AddRoot(scene)

	tree.OnSelectionChanged(func(n *gui.TreeNode) {
	    // n was added to or removed from the selection; nil means cleared
	})

	for !window.ShouldClose() {
	    ctx := ui.Begin(input.Poll(), gui.Vec2{X: 1280, Y: 720}, dt)
	    ctx.Panel("Outliner", gui.Width(320), gui.Height(600))(func() {
	        tree.Draw(ctx)
	    })
	    ui.End()
	    window.SwapBuffers()
	}

# Selection

The selection set is the single source of truth. Each node's selected flag
mirrors it; a flag changed from application code with TreeNode.SetSelected is
folded into the set at the start of the next Draw. Nodes removed from the tree
leave the set at the same point.

Mouse:

	Click            Select only this node (moves the range anchor)
	Ctrl+Click       Add to the selection, or remove an already selected node
	Shift+Click      Select every displayed node from the anchor to this one
	Drag on empty    Rubber-band selection (Ctrl inverts instead of replacing)
	Click selected   Rename after RenameDelay if nothing else is clicked
	Double-click     Expand or collapse, or run NodeHooks.OnDoubleClick
	Right-click      Select; release over a selected node opens its menu

Keyboard (when the tree has focus):

	Up/Down          Move focus; selection follows
	PageUp/PageDown  Move focus by a page
	Home/End         First or last row
	Left             Collapse, or move to the parent
	Right            Expand, or move to the first child
	Ctrl+A           Select every displayed node
	F2               Rename the focused node
	Enter            Run NodeHooks.OnDoubleClick on the focused node
	Escape           Cancel a pending rename

# Filtering

Non-blank search text switches the tree to a flat list of every node whose
header matches, at any depth. FilterSubstring matches case-insensitively;
FilterFuzzy matches the query's runes in order.

# InputText Shortcuts

The search field and the rename field are InputText widgets:

	Left/Right       Move cursor (Ctrl: by word; Shift: extend selection)
	Home/End         Jump to start or end
	Ctrl+A           Select all text
	Ctrl+C/X/V       Copy, cut, paste through the ClipboardProvider
	Ctrl+Z/Y         Undo, redo
	Enter            Confirm and unfocus
	Escape           Cancel and unfocus

# Themes

Styles can be loaded from TOML theme files that override any colour of a
base style:

	base = "gta"

	[colors]
	selected_bg = "#2a6fdb"
	selection_box_fill = "#3d7eff40"

See LoadTheme for the search path.

# Logging

Debug logging of selection, rename, drag and scroll transitions goes through
log/slog on stderr and is enabled with SetVerbose(true).
*/
package gui
