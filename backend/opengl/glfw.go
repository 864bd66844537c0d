package opengl

import (
	"github.com/go-gl/glfw/v3.3/glfw"

	gui "github.com/go-theft-auto/uiframework"
)

var glfwKeys = map[glfw.Key]gui.Key{
	glfw.KeyTab:       gui.KeyTab,
	glfw.KeyLeft:      gui.KeyLeft,
	glfw.KeyRight:     gui.KeyRight,
	glfw.KeyUp:        gui.KeyUp,
	glfw.KeyDown:      gui.KeyDown,
	glfw.KeyPageUp:    gui.KeyPageUp,
	glfw.KeyPageDown:  gui.KeyPageDown,
	glfw.KeyHome:      gui.KeyHome,
	glfw.KeyEnd:       gui.KeyEnd,
	glfw.KeyDelete:    gui.KeyDelete,
	glfw.KeyBackspace: gui.KeyBackspace,
	glfw.KeySpace:     gui.KeySpace,
	glfw.KeyEnter:     gui.KeyEnter,
	glfw.KeyKPEnter:   gui.KeyEnter,
	glfw.KeyEscape:    gui.KeyEscape,
	glfw.KeyA:         gui.KeyA,
	glfw.KeyC:         gui.KeyC,
	glfw.KeyV:         gui.KeyV,
	glfw.KeyX:         gui.KeyX,
	glfw.KeyY:         gui.KeyY,
	glfw.KeyZ:         gui.KeyZ,
	glfw.KeyF2:        gui.KeyF2,
}

var glfwButtons = map[glfw.MouseButton]gui.MouseButton{
	glfw.MouseButtonLeft:   gui.MouseButtonLeft,
	glfw.MouseButtonRight:  gui.MouseButtonRight,
	glfw.MouseButtonMiddle: gui.MouseButtonMiddle,
}

// WindowInput feeds a GLFW window's events into a gui.InputState.
type WindowInput struct {
	window *glfw.Window
	state  *gui.InputState
}

// NewWindowInput installs input callbacks on window.
func NewWindowInput(window *glfw.Window) *WindowInput {
	wi := &WindowInput{window: window, state: gui.NewInputState()}

	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if k, ok := glfwKeys[key]; ok && action != glfw.Repeat {
			wi.state.SetKey(k, action == glfw.Press)
		}
	})
	window.SetCharCallback(func(_ *glfw.Window, r rune) {
		wi.state.AddInputChar(r)
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		if mb, ok := glfwButtons[b]; ok {
			wi.state.SetMouseButton(mb, action == glfw.Press)
		}
	})
	window.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		wi.state.SetMouseWheel(float32(dx), float32(dy))
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		wi.state.SetMousePos(float32(x), float32(y))
	})
	return wi
}

// Poll clears last frame's edges, stamps the clock and collects pending
// events. Call it once per frame before gui.Begin.
func (wi *WindowInput) Poll() *gui.InputState {
	s := wi.state
	s.Reset()
	s.SetTime(glfw.GetTime())
	glfw.PollEvents()

	x, y := wi.window.GetCursorPos()
	s.SetMousePos(float32(x), float32(y))
	s.ModCtrl = wi.held(glfw.KeyLeftControl, glfw.KeyRightControl)
	s.ModShift = wi.held(glfw.KeyLeftShift, glfw.KeyRightShift)
	s.ModAlt = wi.held(glfw.KeyLeftAlt, glfw.KeyRightAlt)
	s.ModSuper = wi.held(glfw.KeyLeftSuper, glfw.KeyRightSuper)
	return s
}

func (wi *WindowInput) held(keys ...glfw.Key) bool {
	for _, k := range keys {
		if wi.window.GetKey(k) == glfw.Press {
			return true
		}
	}
	return false
}
