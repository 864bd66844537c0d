package gui

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputTextState_UndoRedo(t *testing.T) {
	s := InputTextState{SelectionStart: -1, SelectionEnd: -1}

	_, ok := s.Undo("a")
	assert.False(t, ok, "nothing to undo")

	s.PushUndo("a")
	s.PushUndo("ab")
	s.PushUndo("ab") // repeat is skipped
	require.Len(t, s.UndoStack, 2)

	text, ok := s.Undo("abc")
	require.True(t, ok)
	assert.Equal(t, "ab", text)
	text, ok = s.Undo(text)
	require.True(t, ok)
	assert.Equal(t, "a", text)

	text, ok = s.Redo()
	require.True(t, ok)
	assert.Equal(t, "ab", text)
	text, ok = s.Redo()
	require.True(t, ok)
	assert.Equal(t, "abc", text)
	_, ok = s.Redo()
	assert.False(t, ok)

	// An edit after undoing drops the redo branch.
	s.Undo("abc")
	s.PushUndo("ab")
	_, ok = s.Redo()
	assert.False(t, ok)
}

func TestInputTextState_UndoIsBounded(t *testing.T) {
	var s InputTextState
	for i := range maxTextUndo + 10 {
		s.PushUndo(fmt.Sprint(i))
	}
	assert.Len(t, s.UndoStack, maxTextUndo)
	assert.Equal(t, "10", s.UndoStack[0])
}

func TestInputTextState_Selection(t *testing.T) {
	s := InputTextState{SelectionStart: -1, SelectionEnd: -1}
	assert.False(t, s.HasSelection())

	s.SelectionStart, s.SelectionEnd = 5, 2
	lo, hi := s.GetSelectedRange()
	assert.Equal(t, [2]int{2, 5}, [2]int{lo, hi})

	s.StartEditing("héllo")
	assert.True(t, s.Editing)
	assert.Equal(t, 5, s.CursorPos, "positions count runes")
	lo, hi = s.GetSelectedRange()
	assert.Equal(t, [2]int{0, 5}, [2]int{lo, hi})
}

func TestTextEdit(t *testing.T) {
	value := "hello world"
	st := InputTextState{SelectionStart: -1, SelectionEnd: -1, CursorPos: 5}
	e := textEdit{st: &st, value: &value, runes: []rune(value)}

	e.insert([]rune(","))
	assert.Equal(t, "hello, world", value)
	assert.Equal(t, 6, st.CursorPos)

	e.moveTo(0, true)
	assert.Equal(t, "hello,", e.selected())
	e.insert([]rune("hi,"))
	assert.Equal(t, "hi, world", value)

	e.erase(st.CursorPos-1, st.CursorPos)
	assert.Equal(t, "hi world", value)
	assert.True(t, e.changed)

	prev, ok := st.Undo(value)
	require.True(t, ok)
	e.replace(prev)
	assert.Equal(t, "hi, world", value)

	// Out of range erases are ignored.
	e.erase(-1, 0)
	e.erase(3, 100)
	assert.Equal(t, "hi, world", value)
}

func TestWordBoundaries(t *testing.T) {
	runes := []rune("one  two three")
	assert.Equal(t, 5, wordStart(runes, 8))
	assert.Equal(t, 5, wordStart(runes, 7))
	assert.Equal(t, 0, wordStart(runes, 5))
	assert.Equal(t, 5, wordEnd(runes, 0))
	assert.Equal(t, 9, wordEnd(runes, 6))
	assert.Equal(t, len(runes), wordEnd(runes, 9))
}

func TestFrameStore_EvictsUnusedEntries(t *testing.T) {
	s := NewFrameStore[int]()

	s.Advance()
	*s.Get(1, 0) = 10
	*s.Get(2, 0) = 20

	// Entry 2 is skipped for a whole frame.
	s.Advance()
	assert.Equal(t, 10, *s.Get(1, 0))
	s.Advance()
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, 0, *s.Get(2, 0), "evicted entries start over")
	assert.Equal(t, 10, *s.Get(1, 0))
}
