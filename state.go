package gui

// StateStore holds widget state between frames, keyed by widget ID.
type StateStore interface {
	Get(id ID) (any, bool)
	Set(id ID, value any)
	Delete(id ID)
}

// MapStateStore is the default in-memory StateStore.
type MapStateStore map[ID]any

func (m MapStateStore) Get(id ID) (any, bool) {
	v, ok := m[id]
	return v, ok
}

func (m MapStateStore) Set(id ID, value any) { m[id] = value }

func (m MapStateStore) Delete(id ID) { delete(m, id) }

// GetState returns the state stored for id, or def when there is none or it
// has another type.
func GetState[T any](ctx *Context, id ID, def T) T {
	if v, ok := ctx.stateStore.Get(id); ok {
		if typed, ok := v.(T); ok {
			return typed
		}
	}
	return def
}

// SetState stores state for id.
func SetState[T any](ctx *Context, id ID, value T) {
	ctx.stateStore.Set(id, value)
}

// DeleteState forgets the state of id.
func DeleteState(ctx *Context, id ID) {
	ctx.stateStore.Delete(id)
}

// maxTextUndo bounds the undo history of one text field.
const maxTextUndo = 50

// InputTextState is the persistent state of a text field. Positions count
// runes, not bytes.
type InputTextState struct {
	Editing bool // Capturing keyboard input

	CursorPos int
	// SelectionStart is where a selection was anchored and SelectionEnd
	// follows the cursor; -1 means no selection.
	SelectionStart int
	SelectionEnd   int

	ScrollOffset    float32 // Horizontal scroll of long text
	CursorBlinkTime float32

	UndoStack []string
	UndoIndex int // Entries below this index can be undone
}

// HasSelection reports a non-empty selection.
func (s *InputTextState) HasSelection() bool {
	return s.SelectionStart >= 0 && s.SelectionStart != s.SelectionEnd
}

// GetSelectedRange returns the selection ordered low to high, or -1, -1.
func (s *InputTextState) GetSelectedRange() (start, end int) {
	if !s.HasSelection() {
		return -1, -1
	}
	return min(s.SelectionStart, s.SelectionEnd), max(s.SelectionStart, s.SelectionEnd)
}

// ClearSelection drops the selection.
func (s *InputTextState) ClearSelection() {
	s.SelectionStart, s.SelectionEnd = -1, -1
}

// SelectAll selects textLen runes and puts the cursor at the end.
func (s *InputTextState) SelectAll(textLen int) {
	s.SelectionStart, s.SelectionEnd = 0, textLen
	s.CursorPos = textLen
}

// PushUndo records text before an edit. Redo history past the current
// point is discarded and repeats of the last entry are skipped.
func (s *InputTextState) PushUndo(text string) {
	s.UndoStack = s.UndoStack[:min(s.UndoIndex, len(s.UndoStack))]
	if n := len(s.UndoStack); n > 0 && s.UndoStack[n-1] == text {
		return
	}
	s.UndoStack = append(s.UndoStack, text)
	if len(s.UndoStack) > maxTextUndo {
		s.UndoStack = s.UndoStack[1:]
	}
	s.UndoIndex = len(s.UndoStack)
}

// Undo steps back one entry. The current text is saved first so Redo can
// return to it.
func (s *InputTextState) Undo(current string) (string, bool) {
	if s.UndoIndex == 0 {
		return "", false
	}
	if n := len(s.UndoStack); s.UndoIndex == n && s.UndoStack[n-1] != current {
		s.UndoStack = append(s.UndoStack, current)
	}
	s.UndoIndex--
	return s.UndoStack[s.UndoIndex], true
}

// Redo steps forward one entry.
func (s *InputTextState) Redo() (string, bool) {
	if s.UndoIndex >= len(s.UndoStack)-1 {
		return "", false
	}
	s.UndoIndex++
	return s.UndoStack[s.UndoIndex], true
}

// StartEditing enters edit mode with the whole text selected, the way the
// rename field opens.
func (s *InputTextState) StartEditing(text string) {
	s.Editing = true
	s.CursorBlinkTime = 0
	s.ScrollOffset = 0
	s.SelectAll(len([]rune(text)))
}
