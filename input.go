package gui

// MouseButton identifies a mouse button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonRight
	MouseButtonMiddle
	MouseButtonCount
)

// Key identifies the keys widgets react to.
type Key int

const (
	KeyNone Key = iota
	KeyTab
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
	KeyDelete
	KeyBackspace
	KeySpace
	KeyEnter
	KeyEscape
	KeyA
	KeyC
	KeyV
	KeyX
	KeyY
	KeyZ
	KeyF2
	KeyCount
)

// Held keys repeat after KeyRepeatDelay seconds, then every
// KeyRepeatInterval.
const (
	KeyRepeatDelay    float32 = 0.4
	KeyRepeatInterval float32 = 0.03
)

// Two presses of a button at most DoubleClickTime seconds and
// DoubleClickMaxDist pixels apart make a double-click.
const (
	DoubleClickTime    = 0.30
	DoubleClickMaxDist = 6.0
)

type buttonState struct {
	down, pressed, released, double bool

	// Previous press, for double-click detection; lastPress < 0 when the
	// next press cannot complete one.
	lastPress float64
	lastPos   Vec2
}

type keyState struct {
	down, pressed bool
	held          float32 // seconds held, advanced by UpdateKeyRepeat
	prevHeld      float32
}

// InputState is one frame of input. The backend writes it between frames and
// widgets only read it. Edges (presses, releases, typed text, wheel) last
// until Reset; held state persists.
type InputState struct {
	MouseX, MouseY float32
	MouseWheelX    float32
	MouseWheelY    float32

	// Time is the backend's monotonic clock in seconds.
	Time float64

	// InputChars holds the text typed this frame.
	InputChars []rune

	ModCtrl, ModShift, ModAlt, ModSuper bool

	buttons [MouseButtonCount]buttonState
	keys    [KeyCount]keyState
}

// NewInputState returns an InputState with nothing held.
func NewInputState() *InputState {
	s := &InputState{InputChars: make([]rune, 0, 16)}
	for i := range s.buttons {
		s.buttons[i].lastPress = -1
	}
	return s
}

// Reset clears this frame's edges. Backends call it before collecting the
// next frame's events.
func (s *InputState) Reset() {
	for i := range s.buttons {
		b := &s.buttons[i]
		b.pressed, b.released, b.double = false, false, false
	}
	for i := range s.keys {
		s.keys[i].pressed = false
	}
	s.InputChars = s.InputChars[:0]
	s.MouseWheelX, s.MouseWheelY = 0, 0
}

// SetTime stamps the frame with the backend clock.
func (s *InputState) SetTime(t float64) { s.Time = t }

// SetMousePos moves the pointer.
func (s *InputState) SetMousePos(x, y float32) {
	s.MouseX, s.MouseY = x, y
}

// MousePos returns the pointer position.
func (s *InputState) MousePos() Vec2 { return Vec2{s.MouseX, s.MouseY} }

// SetMouseWheel records this frame's wheel movement.
func (s *InputState) SetMouseWheel(x, y float32) {
	s.MouseWheelX, s.MouseWheelY = x, y
}

// AddInputChar appends a typed rune.
func (s *InputState) AddInputChar(r rune) {
	s.InputChars = append(s.InputChars, r)
}

// SetMouseButton records a button going down or up. Set the time and pointer
// position first: a press is checked against the previous one for a
// double-click.
func (s *InputState) SetMouseButton(button MouseButton, down bool) {
	if button < 0 || button >= MouseButtonCount {
		return
	}
	b := &s.buttons[button]
	switch {
	case down && !b.down:
		b.pressed = true
		pos := s.MousePos()
		d := pos.Sub(b.lastPos)
		if b.lastPress >= 0 && s.Time-b.lastPress <= DoubleClickTime &&
			d.X*d.X+d.Y*d.Y <= DoubleClickMaxDist*DoubleClickMaxDist {
			b.double = true
			b.lastPress = -1 // a third press starts over
		} else {
			b.lastPress = s.Time
		}
		b.lastPos = pos
	case !down && b.down:
		b.released = true
	}
	b.down = down
}

// SetKey records a key going down or up. Repeats come from UpdateKeyRepeat,
// so backends forward only presses and releases.
func (s *InputState) SetKey(key Key, down bool) {
	if key < 0 || key >= KeyCount {
		return
	}
	k := &s.keys[key]
	if down != k.down {
		k.held, k.prevHeld = 0, 0
	}
	if down && !k.down {
		k.pressed = true
	}
	k.down = down
}

// UpdateKeyRepeat advances the hold time of every held key by dt seconds.
func (s *InputState) UpdateKeyRepeat(dt float32) {
	for i := range s.keys {
		k := &s.keys[i]
		k.prevHeld = k.held
		if k.down {
			k.held += dt
		}
	}
}

func (s *InputState) button(b MouseButton) buttonState {
	if b < 0 || b >= MouseButtonCount {
		return buttonState{}
	}
	return s.buttons[b]
}

func (s *InputState) key(k Key) keyState {
	if k < 0 || k >= KeyCount {
		return keyState{}
	}
	return s.keys[k]
}

// MouseDown reports whether button is held.
func (s *InputState) MouseDown(button MouseButton) bool { return s.button(button).down }

// MouseClicked reports whether button went down this frame.
func (s *InputState) MouseClicked(button MouseButton) bool { return s.button(button).pressed }

// MouseDoubleClicked reports whether this frame's press of button completed
// a double-click.
func (s *InputState) MouseDoubleClicked(button MouseButton) bool { return s.button(button).double }

// MouseReleased reports whether button came up this frame.
func (s *InputState) MouseReleased(button MouseButton) bool { return s.button(button).released }

// AnyMouseClicked reports whether any button went down this frame.
func (s *InputState) AnyMouseClicked() bool {
	for _, b := range s.buttons {
		if b.pressed {
			return true
		}
	}
	return false
}

// KeyDown reports whether key is held.
func (s *InputState) KeyDown(key Key) bool { return s.key(key).down }

// KeyPressed reports whether key went down this frame.
func (s *InputState) KeyPressed(key Key) bool { return s.key(key).pressed }

// KeyRepeated reports whether key should act this frame: on the press, then
// once for each repeat interval crossed since the last UpdateKeyRepeat.
func (s *InputState) KeyRepeated(key Key) bool {
	k := s.key(key)
	if k.pressed {
		return true
	}
	if !k.down || k.held < KeyRepeatDelay {
		return false
	}
	repeats := func(held float32) int {
		if held < KeyRepeatDelay {
			return -1
		}
		return int((held - KeyRepeatDelay) / KeyRepeatInterval)
	}
	return repeats(k.held) > repeats(k.prevHeld)
}
