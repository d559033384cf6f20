package nodeeditor

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// InputState is one frame of polled input. Positions are in screen space.
type InputState struct {
	MousePos Vec2
	// Buttons holds the buttons currently held down.
	Buttons [mouseButtonCount]bool
	// Wheel is the vertical wheel movement since the last frame.
	Wheel float64
	// KeysPressed holds the keys that went down this frame.
	KeysPressed [keyCount]bool
	Modifiers   KeyModifiers
	// Focused is false while the window does not receive input.
	Focused bool
	// DeltaTime is the time since the previous frame in seconds.
	DeltaTime float64
}

// InputSource supplies input once per frame. Poll must not block.
type InputSource interface {
	Poll() InputState
}

// --- Ebiten ---

// EbitenInput polls ebiten's global input state.
type EbitenInput struct{}

var ebitenKeys = [keyCount]ebiten.Key{
	KeyDelete: ebiten.KeyDelete,
	KeyF:      ebiten.KeyF,
	KeyX:      ebiten.KeyX,
	KeyC:      ebiten.KeyC,
	KeyV:      ebiten.KeyV,
	KeyD:      ebiten.KeyD,
	KeySpace:  ebiten.KeySpace,
	KeyEscape: ebiten.KeyEscape,
}

var ebitenButtons = [mouseButtonCount]ebiten.MouseButton{
	MouseButtonLeft:   ebiten.MouseButtonLeft,
	MouseButtonRight:  ebiten.MouseButtonRight,
	MouseButtonMiddle: ebiten.MouseButtonMiddle,
}

// Poll implements InputSource.
func (EbitenInput) Poll() InputState {
	mx, my := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	st := InputState{
		MousePos:  Vec2{float64(mx), float64(my)},
		Wheel:     wy,
		Modifiers: readModifiers(),
		Focused:   ebiten.IsFocused(),
		DeltaTime: 1 / float64(ebiten.TPS()),
	}
	for b, eb := range ebitenButtons {
		st.Buttons[b] = ebiten.IsMouseButtonPressed(eb)
	}
	for k, ek := range ebitenKeys {
		st.KeysPressed[k] = inpututil.IsKeyJustPressed(ek)
	}
	return st
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// --- Per-frame derived state ---

// buttonState is the press/drag state machine of one mouse button.
type buttonState struct {
	down     bool
	pressed  bool // went down this frame
	released bool // went up this frame
	double   bool // pressed this frame within the double-click window
	dragging bool // moved past the threshold since the press; kept on the release frame

	pressPos    Vec2 // screen space
	pressCanvas Vec2 // canvas space at press time

	lastClickTime float64
	lastClickPos  Vec2
	hasLastClick  bool
}

// mouseTracker turns raw polled state into edges, drags and double-clicks.
type mouseTracker struct {
	state   InputState
	prevPos Vec2
	now     float64
	buttons [mouseButtonCount]buttonState
}

func (m *mouseTracker) update(st InputState, opts *Options, toCanvas func(Vec2) Vec2) {
	m.prevPos = m.state.MousePos
	m.state = st
	m.now += st.DeltaTime
	for i := range m.buttons {
		b := &m.buttons[i]
		held := st.Buttons[i]
		b.pressed = held && !b.down
		b.released = !held && b.down
		b.double = false
		if !b.released && !held {
			b.dragging = false
		}
		switch {
		case b.pressed:
			b.pressPos = st.MousePos
			b.pressCanvas = toCanvas(st.MousePos)
			b.dragging = false
			if b.hasLastClick && m.now-b.lastClickTime <= opts.DoubleClickTime &&
				st.MousePos.Sub(b.lastClickPos).Len() <= opts.DoubleClickDist {
				b.double = true
				b.hasLastClick = false
			} else {
				b.lastClickTime = m.now
				b.lastClickPos = st.MousePos
				b.hasLastClick = true
			}
		case held:
			if !b.dragging && st.MousePos.Sub(b.pressPos).Len() > opts.DragThreshold {
				b.dragging = true
			}
		}
		b.down = held
	}
}

// cancel forgets all held buttons, as if they were released without effect.
func (m *mouseTracker) cancel() {
	for i := range m.buttons {
		b := &m.buttons[i]
		b.down, b.pressed, b.released, b.double, b.dragging = false, false, false, false, false
	}
}

func (m *mouseTracker) pos() Vec2 { return m.state.MousePos }
func (m *mouseTracker) mods() KeyModifiers { return m.state.Modifiers }
func (m *mouseTracker) keyPressed(k Key) bool { return m.state.KeysPressed[k] }
func (m *mouseTracker) button(b MouseButton) *buttonState { return &m.buttons[b] }

// isDragging reports whether b is held and has moved past the threshold.
func (m *mouseTracker) isDragging(b MouseButton) bool {
	s := &m.buttons[b]
	return s.down && s.dragging
}

// dragDelta returns the screen-space movement since b was pressed.
func (m *mouseTracker) dragDelta(b MouseButton) Vec2 {
	return m.state.MousePos.Sub(m.buttons[b].pressPos)
}
