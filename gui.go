package gui

import "fmt"

// Renderer draws a finished DrawList. Backends implement it.
type Renderer interface {
	Render(dl *DrawList) error
	FontTextureID() uint32
	Resize(width, height int)
}

// GUI owns the per-frame Context and hands its draw lists to a Renderer.
type GUI struct {
	renderer Renderer
	store    StateStore
	style    Style
	ctx      *Context
}

// GUIOption configures New.
type GUIOption func(*GUI)

// WithStyle replaces the default style.
func WithStyle(style Style) GUIOption {
	return func(g *GUI) { g.style = style }
}

// WithTheme uses a theme loaded with LoadTheme. A nil theme keeps the
// current style.
func WithTheme(t *Theme) GUIOption {
	return func(g *GUI) {
		if t != nil {
			g.style = t.Style()
		}
	}
}

// WithStateStore keeps widget state in store instead of a private map.
func WithStateStore(store StateStore) GUIOption {
	return func(g *GUI) { g.store = store }
}

// WithClipboard sets the process-wide clipboard used by text fields.
func WithClipboard(cp ClipboardProvider) GUIOption {
	return func(*GUI) { SetClipboardProvider(cp) }
}

// New returns a GUI drawing through renderer. A nil renderer builds frames
// without drawing them.
func New(renderer Renderer, opts ...GUIOption) *GUI {
	g := &GUI{renderer: renderer, store: make(MapStateStore), style: DefaultStyle(), ctx: NewContext()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Begin starts a frame of displaySize pixels, deltaTime seconds after the
// last one. Widgets draw into the returned Context until End.
func (g *GUI) Begin(input *InputState, displaySize Vec2, deltaTime float32) *Context {
	ctx := g.ctx
	ctx.FrameCount++
	ctx.DrawList = AcquireDrawList()
	ctx.ForegroundDrawList = AcquireDrawList()
	ctx.Input = input
	ctx.stateStore = g.store
	ctx.SetStyle(g.style)
	if g.renderer != nil {
		ctx.FontTextureID = g.renderer.FontTextureID()
	}
	if input != nil {
		input.UpdateKeyRepeat(deltaTime)
	}
	ctx.Reset(displaySize, deltaTime)
	return ctx
}

// End renders the frame: the main layer, then the foreground layer when
// anything (tooltips, menus, drag previews) was drawn on it.
func (g *GUI) End() error {
	ctx := g.ctx
	if ctx.DrawList == nil {
		return nil
	}
	defer g.releaseLists()
	g.dropUnclaimedDrag()

	if g.renderer == nil {
		return nil
	}
	if err := g.renderer.Render(ctx.DrawList); err != nil {
		return fmt.Errorf("render main layer: %w", err)
	}
	if len(ctx.ForegroundDrawList.CmdBuffer) == 0 {
		return nil
	}
	if err := g.renderer.Render(ctx.ForegroundDrawList); err != nil {
		return fmt.Errorf("render foreground layer: %w", err)
	}
	return nil
}

// dropUnclaimedDrag ends a drag whose button came up this frame, whether or
// not a target accepted it.
func (g *GUI) dropUnclaimedDrag() {
	ctx := g.ctx
	if ctx.drag == nil || ctx.Input == nil || ctx.Input.MouseDown(MouseButtonLeft) {
		return
	}
	if !ctx.drag.Delivered {
		guiLogger.Debug("drag dropped without target", "type", ctx.drag.Type)
	}
	ctx.drag = nil
}

func (g *GUI) releaseLists() {
	ReleaseDrawList(g.ctx.DrawList)
	ReleaseDrawList(g.ctx.ForegroundDrawList)
	g.ctx.DrawList, g.ctx.ForegroundDrawList = nil, nil
}
