package gui

import (
	"slices"
	"unicode"
)

// InputTextResult reports what happened to a text field this frame.
type InputTextResult struct {
	Changed   bool // Text was edited
	Submitted bool // Enter, or a click elsewhere ended editing
	Cancelled bool // Escape
	Editing   bool // Still in edit mode after this frame
	Rect      Rect // The field on screen
}

// InputText draws a labelled single-line text field bound to value and
// reports whether it was edited. The field supports selection, clipboard
// cut/copy/paste, undo and redo, and word-wise cursor movement.
func (ctx *Context) InputText(label string, value *string, opts ...Option) bool {
	return ctx.InputTextEx(label, value, opts...).Changed
}

// InputTextEx is InputText with the full result.
func (ctx *Context) InputTextEx(label string, value *string, opts ...Option) InputTextResult {
	o := applyOptions(opts)
	pos := ctx.ItemPos()
	id := ctx.widgetID(label, o)

	x := pos.X
	if label != "" {
		ctx.addText(x, pos.Y+ctx.style.InputPadding, label, ctx.style.TextColor)
		x += ctx.MeasureText(label).X + ctx.style.ItemSpacing
	}
	w := GetOpt(o, OptWidth)
	if w <= 0 {
		w = ctx.currentLayoutWidth() - (x - pos.X)
	}
	res := ctx.inputText(id, Vec2{X: x, Y: pos.Y}, maxf(w, 20), value, o)
	ctx.advanceCursor(Vec2{X: res.Rect.X + res.Rect.W - pos.X, Y: res.Rect.H})
	return res
}

// InputTextAt draws a text field at pos without moving the layout cursor.
// The tree uses it for inline rename and the search box.
func (ctx *Context) InputTextAt(id ID, pos Vec2, width float32, value *string, opts ...Option) InputTextResult {
	return ctx.inputText(id, pos, width, value, applyOptions(opts))
}

func (ctx *Context) inputText(id ID, pos Vec2, w float32, value *string, o options) InputTextResult {
	st := GetState(ctx, id, InputTextState{
		CursorPos:      len([]rune(*value)),
		SelectionStart: -1,
		SelectionEnd:   -1,
	})
	s := &ctx.style
	if n := len([]rune(*value)); st.CursorPos > n || st.SelectionStart > n || st.SelectionEnd > n {
		// Text was replaced from outside since the last frame
		st.CursorPos = min(st.CursorPos, n)
		st.ClearSelection()
	}

	// The key that opened the field is not typed into it
	opening := GetOpt(o, OptForceFocus) && !st.Editing
	if opening {
		st.StartEditing(*value)
	}

	r := Rect{X: pos.X, Y: pos.Y, W: w, H: ctx.lineHeight() + s.InputPadding*2}
	res := InputTextResult{Rect: r}

	if ctx.Input != nil && !opening {
		switch {
		case ctx.isClicked(id, r):
			st.Editing = true
			st.CursorBlinkTime = 0
			st.CursorPos = ctx.runeAt([]rune(*value), ctx.Input.MouseX-(r.X+s.InputPadding)+st.ScrollOffset)
			st.ClearSelection()
		case st.Editing && !ctx.isHovered(r) &&
			(ctx.Input.MouseClicked(MouseButtonLeft) || ctx.Input.MouseClicked(MouseButtonRight)):
			st.Editing = false
			res.Submitted = true
		}
	}

	if st.Editing && ctx.Input != nil {
		ctx.WantCaptureKeyboard = true
		ctx.SetFocused(id)
		if !opening {
			e := textEdit{st: &st, value: value, runes: []rune(*value)}
			switch ctx.editText(&e) {
			case inputSubmit:
				res.Submitted = true
			case inputCancel:
				res.Cancelled = true
			}
			res.Changed = e.changed
		}
	}
	if !st.Editing && ctx.IsFocused(id) {
		ctx.ClearFocus()
	}

	ctx.drawInputText(r, *value, &st, GetOpt(o, OptPlaceholder))

	res.Editing = st.Editing
	SetState(ctx, id, st)
	return res
}

// runeAt returns the caret position closest to x pixels into runes.
func (ctx *Context) runeAt(runes []rune, x float32) int {
	at := 0
	for i := 1; i <= len(runes); i++ {
		if ctx.MeasureText(string(runes[:i])).X > x {
			break
		}
		at = i
	}
	return at
}

func (ctx *Context) drawInputText(r Rect, text string, st *InputTextState, hint string) {
	s := &ctx.style
	dl := ctx.DrawList
	runes := []rune(text)
	st.CursorPos = max(0, min(st.CursorPos, len(runes)))

	fill := s.InputBgColor
	if st.Editing {
		fill = s.InputFocusedBgColor
	}
	dl.AddRect(r.X, r.Y, r.W, r.H, fill)
	dl.AddRectOutline(r.X, r.Y, r.W, r.H, s.InputBorderColor, 1)

	tx, ty := r.X+s.InputPadding, r.Y+s.InputPadding
	inner := r.W - s.InputPadding*2

	// Scroll so the caret stays inside the field
	caret := ctx.MeasureText(string(runes[:st.CursorPos])).X
	if caret-st.ScrollOffset > inner {
		st.ScrollOffset = caret - inner + 10
	}
	st.ScrollOffset = maxf(0, minf(st.ScrollOffset, caret))

	dl.PushClipRect(tx, r.Y, tx+inner, r.Y+r.H)
	if st.Editing && st.HasSelection() {
		lo, hi := st.GetSelectedRange()
		x0 := ctx.MeasureText(string(runes[:lo])).X - st.ScrollOffset
		x1 := ctx.MeasureText(string(runes[:hi])).X - st.ScrollOffset
		dl.AddRect(tx+x0, r.Y+2, x1-x0, r.H-4, s.SelectedBgColor)
	}
	switch {
	case text != "" || st.Editing:
		ctx.addText(tx-st.ScrollOffset, ty, text, s.TextColor)
	case hint != "":
		ctx.addText(tx, ty, hint, s.TextDisabledColor)
	}
	dl.PopClipRect()

	if st.Editing {
		st.CursorBlinkTime += ctx.DeltaTime
		// Blinks at 1Hz
		if int(st.CursorBlinkTime*2)%2 == 0 {
			cx := tx + caret - st.ScrollOffset
			dl.AddLine(cx, r.Y+2, cx, r.Y+r.H-2, s.TextColor, 1)
		}
	}
}

// inputExit says why a text field left edit mode.
type inputExit uint8

const (
	inputStay inputExit = iota
	inputSubmit
	inputCancel
)

// textEdit is one frame of edits to a field's text.
type textEdit struct {
	st      *InputTextState
	value   *string
	runes   []rune
	changed bool
}

func (e *textEdit) commit() {
	*e.value = string(e.runes)
	e.changed = true
}

func (e *textEdit) selected() string {
	if !e.st.HasSelection() {
		return ""
	}
	lo, hi := e.st.GetSelectedRange()
	return string(e.runes[lo:hi])
}

// erase removes runes [lo, hi) and leaves the caret at lo.
func (e *textEdit) erase(lo, hi int) {
	if lo < 0 || hi > len(e.runes) || lo >= hi {
		return
	}
	e.st.PushUndo(*e.value)
	e.runes = slices.Delete(e.runes, lo, hi)
	e.st.CursorPos = lo
	e.st.ClearSelection()
	e.commit()
}

func (e *textEdit) deleteSelection() bool {
	if !e.st.HasSelection() {
		return false
	}
	e.erase(e.st.GetSelectedRange())
	return true
}

// insert replaces the selection, if any, with rs.
func (e *textEdit) insert(rs []rune) {
	if len(rs) == 0 {
		return
	}
	e.deleteSelection()
	e.st.PushUndo(*e.value)
	at := e.st.CursorPos
	e.runes = slices.Insert(e.runes, at, rs...)
	e.st.CursorPos = at + len(rs)
	e.commit()
}

// replace swaps in a whole new text, as undo and redo do.
func (e *textEdit) replace(text string) {
	e.runes = []rune(text)
	e.st.CursorPos = len(e.runes)
	e.st.ClearSelection()
	e.commit()
}

// moveTo places the caret, extending the selection when extend is set.
func (e *textEdit) moveTo(pos int, extend bool) {
	pos = max(0, min(pos, len(e.runes)))
	if extend {
		if e.st.SelectionStart < 0 {
			e.st.SelectionStart = e.st.CursorPos
		}
		e.st.SelectionEnd = pos
	} else {
		e.st.ClearSelection()
	}
	e.st.CursorPos = pos
	e.st.CursorBlinkTime = 0
}

// shortcut handles a Ctrl chord and reports whether it was one.
func (e *textEdit) shortcut(in *InputState) bool {
	switch {
	case in.KeyPressed(KeyA):
		e.st.SelectAll(len(e.runes))
	case in.KeyPressed(KeyC):
		if sel := e.selected(); sel != "" {
			ClipboardSetText(sel)
		}
	case in.KeyPressed(KeyX):
		if sel := e.selected(); sel != "" {
			ClipboardSetText(sel)
			e.deleteSelection()
		}
	case in.KeyPressed(KeyV):
		e.insert([]rune(ClipboardGetText()))
	case in.KeyPressed(KeyZ) && !in.ModShift:
		if prev, ok := e.st.Undo(*e.value); ok {
			e.replace(prev)
		}
	case in.KeyPressed(KeyZ), in.KeyPressed(KeyY):
		if next, ok := e.st.Redo(); ok {
			e.replace(next)
		}
	default:
		return false
	}
	return true
}

// editText applies this frame's keys and typed characters to e.
func (ctx *Context) editText(e *textEdit) inputExit {
	in := ctx.Input
	st := e.st

	if in.ModCtrl && e.shortcut(in) {
		return inputStay
	}

	if in.KeyRepeated(KeyLeft) {
		to := st.CursorPos - 1
		if in.ModCtrl {
			to = wordStart(e.runes, st.CursorPos)
		}
		e.moveTo(to, in.ModShift)
	}
	if in.KeyRepeated(KeyRight) {
		to := st.CursorPos + 1
		if in.ModCtrl {
			to = wordEnd(e.runes, st.CursorPos)
		}
		e.moveTo(to, in.ModShift)
	}
	if in.KeyPressed(KeyHome) {
		e.moveTo(0, in.ModShift)
	}
	if in.KeyPressed(KeyEnd) {
		e.moveTo(len(e.runes), in.ModShift)
	}
	if in.KeyRepeated(KeyBackspace) && !e.deleteSelection() {
		e.erase(st.CursorPos-1, st.CursorPos)
	}
	if in.KeyRepeated(KeyDelete) && !e.deleteSelection() {
		e.erase(st.CursorPos, st.CursorPos+1)
	}

	switch {
	case in.KeyPressed(KeyEscape):
		st.Editing = false
		return inputCancel
	case in.KeyPressed(KeyEnter):
		st.Editing = false
		return inputSubmit
	}

	typed := make([]rune, 0, len(in.InputChars))
	for _, ch := range in.InputChars {
		if unicode.IsPrint(ch) {
			typed = append(typed, ch)
		}
	}
	e.insert(typed)
	return inputStay
}

// wordStart returns the start of the word left of pos.
func wordStart(runes []rune, pos int) int {
	for pos > 0 && unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	for pos > 0 && !unicode.IsSpace(runes[pos-1]) {
		pos--
	}
	return pos
}

// wordEnd returns the position past the word right of pos and the spaces
// after it.
func wordEnd(runes []rune, pos int) int {
	for pos < len(runes) && !unicode.IsSpace(runes[pos]) {
		pos++
	}
	for pos < len(runes) && unicode.IsSpace(runes[pos]) {
		pos++
	}
	return pos
}
