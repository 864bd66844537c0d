package gui

import (
	"log/slog"
	"os"

	"github.com/mattn/go-runewidth"
)

// guiLogLevel gates the package logger. Info by default, so the per-frame
// Debug records of the tree and its helpers stay silent.
var guiLogLevel = new(slog.LevelVar)

// SetVerbose switches debug logging of widget transitions on or off.
// Call it from main() after parsing flags.
func SetVerbose(v bool) {
	if v {
		guiLogLevel.Set(slog.LevelDebug)
	} else {
		guiLogLevel.Set(slog.LevelInfo)
	}
}

// guiVerbose guards debug attributes that are costly to build.
func guiVerbose() bool {
	return guiLogLevel.Level() <= slog.LevelDebug
}

var guiLogger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: guiLogLevel}))

// Context is the per-frame drawing and input state handed to widgets.
// It is not a context.Context. One Context lives for the whole life of a GUI;
// Reset rewinds the per-frame parts and keeps focus, popups and drags.
type Context struct {
	DrawList           *DrawList
	ForegroundDrawList *DrawList // Menus, tooltips and drag previews

	Input *InputState

	DisplaySize   Vec2
	FrameCount    uint64
	DeltaTime     float32
	FontTextureID uint32 // Set by the renderer

	// Outputs for the host application
	WantCaptureMouse    bool
	WantCaptureKeyboard bool

	style       Style
	cursor      Vec2
	layoutStack []*Layout
	stateStore  StateStore

	idStack   []ID
	idCounter uint32

	focusedID ID // Text field in edit mode

	// A popup owner claims its popup every frame; an unclaimed one closes.
	popupID     ID
	prevPopupID ID

	drag *DragPayload // Survives frames until released

	measured map[string]Vec2 // MeasureText cache, cleared each frame
}

// NewContext creates a context with the default style and an in-memory
// state store.
func NewContext() *Context {
	return &Context{
		style:       DefaultStyle(),
		layoutStack: make([]*Layout, 0, 8),
		idStack:     make([]ID, 0, 16),
		stateStore:  make(MapStateStore),
		measured:    make(map[string]Vec2, 64),
	}
}

// Style returns the active style.
func (ctx *Context) Style() Style { return ctx.style }

// SetStyle replaces the active style.
func (ctx *Context) SetStyle(style Style) { ctx.style = style }

// Reset prepares the context for a new frame.
func (ctx *Context) Reset(displaySize Vec2, dt float32) {
	ctx.cursor = Vec2{}
	ctx.layoutStack = ctx.layoutStack[:0]
	ctx.idStack = ctx.idStack[:0]
	ctx.idCounter = 0
	ctx.DisplaySize = displaySize
	ctx.DeltaTime = dt
	ctx.WantCaptureMouse = false
	ctx.WantCaptureKeyboard = false
	clear(ctx.measured)

	ctx.prevPopupID, ctx.popupID = ctx.popupID, 0

	if ctx.drag != nil && ctx.drag.Delivered {
		ctx.drag = nil
	}
}

func (ctx *Context) isHovered(rect Rect) bool {
	return ctx.Input != nil && rect.Contains(ctx.Input.MousePos())
}

// isClicked reports a left press inside rect this frame.
func (ctx *Context) isClicked(id ID, rect Rect) bool {
	if ctx.Input == nil || !ctx.Input.MouseClicked(MouseButtonLeft) || !ctx.isHovered(rect) {
		return false
	}
	if guiVerbose() {
		guiLogger.Debug("click", "id", id, "rect", rect, "mouse", ctx.Input.MousePos())
	}
	return true
}

// SetFocused gives keyboard focus to a text field.
func (ctx *Context) SetFocused(id ID) { ctx.focusedID = id }

// IsFocused reports whether id has keyboard focus.
func (ctx *Context) IsFocused(id ID) bool { return ctx.focusedID == id }

// ClearFocus drops keyboard focus.
func (ctx *Context) ClearFocus() { ctx.focusedID = 0 }

// HasWidgetFocus reports whether any text field is in edit mode.
func (ctx *Context) HasWidgetFocus() bool { return ctx.focusedID != 0 }

// SetActivePopup claims the popup slot for this frame. Zero releases it.
func (ctx *Context) SetActivePopup(id ID) {
	ctx.popupID = id
	if id != 0 {
		ctx.WantCaptureKeyboard = true
	}
}

// HasActivePopup reports whether a popup was open last frame or has been
// claimed in this one.
func (ctx *Context) HasActivePopup() bool {
	return ctx.popupID != 0 || ctx.prevPopupID != 0
}

// ActivePopupID returns the open popup, or 0.
func (ctx *Context) ActivePopupID() ID {
	if ctx.popupID != 0 {
		return ctx.popupID
	}
	return ctx.prevPopupID
}

// SetCursorPos moves the layout cursor.
func (ctx *Context) SetCursorPos(x, y float32) {
	ctx.cursor = Vec2{X: x, Y: y}
}

// CursorPos returns where the next item would go, before any layout gap.
func (ctx *Context) CursorPos() Vec2 { return ctx.cursor }

func (ctx *Context) lineHeight() float32 {
	return ctx.style.CharHeight * ctx.style.FontScale
}

// MeasureText returns the drawn size of a single line of text. Widths count
// terminal cells: wide runes take two, combining marks none, the same way
// DrawList.AddText advances.
func (ctx *Context) MeasureText(text string) Vec2 {
	if v, ok := ctx.measured[text]; ok {
		return v
	}
	scale := ctx.style.FontScale
	v := Vec2{
		X: float32(runewidth.StringWidth(text)) * ctx.style.CharWidth * scale,
		Y: ctx.style.CharHeight * scale,
	}
	if ctx.measured != nil {
		ctx.measured[text] = v
	}
	return v
}

func (ctx *Context) currentLayout() *Layout {
	if n := len(ctx.layoutStack); n > 0 {
		return ctx.layoutStack[n-1]
	}
	return nil
}

func (ctx *Context) currentLayoutWidth() float32 {
	if l := ctx.currentLayout(); l != nil {
		return l.space().X
	}
	return ctx.DisplaySize.X - ctx.cursor.X
}

func (ctx *Context) currentLayoutHeight() float32 {
	if l := ctx.currentLayout(); l != nil {
		return l.space().Y
	}
	return ctx.DisplaySize.Y - ctx.cursor.Y
}

func (ctx *Context) addText(x, y float32, text string, color uint32) {
	ctx.AddTextTo(ctx.DrawList, x, y, text, color)
}

// AddText draws text on the main layer with the active font metrics.
func (ctx *Context) AddText(x, y float32, text string, color uint32) {
	ctx.AddTextTo(ctx.DrawList, x, y, text, color)
}

// AddTextTo draws text on dl, typically the foreground layer.
func (ctx *Context) AddTextTo(dl *DrawList, x, y float32, text string, color uint32) {
	if dl == nil {
		return
	}
	dl.SetTexture(ctx.FontTextureID)
	dl.AddText(x, y, text, color, ctx.style.FontScale, ctx.style.CharWidth, ctx.style.CharHeight)
	dl.SetTexture(0)
}

// beginItem inserts the layout gap before every item but the first.
func (ctx *Context) beginItem() {
	l := ctx.currentLayout()
	if l == nil || l.items == 0 {
		return
	}
	if l.Type == LayoutVertical {
		ctx.cursor.Y += l.Gap
	} else {
		ctx.cursor.X += l.Gap
	}
}

// ItemPos returns where the next item goes, gap included.
func (ctx *Context) ItemPos() Vec2 {
	ctx.beginItem()
	return ctx.cursor
}

// advanceCursor moves past an item of the given size.
func (ctx *Context) advanceCursor(size Vec2) {
	l := ctx.currentLayout()
	if l == nil {
		ctx.cursor.Y += size.Y + ctx.style.ItemSpacing
		return
	}
	if l.Type == LayoutVertical {
		ctx.cursor.Y += size.Y
	} else {
		ctx.cursor.X += size.X
	}
	l.grow(ctx.cursor, size)
}
