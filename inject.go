package nodeeditor

// defaultFrameTime is the DeltaTime of scripted frames.
const defaultFrameTime = 1.0 / 60

// ScriptedInput is an InputSource fed from a queue of synthetic frames.
// Each queued step is consumed by one Poll. When the queue is empty the last
// state repeats with edges (key presses, wheel) cleared, so held buttons stay
// held.
//
// Coordinates are screen coordinates, identical to what EbitenInput reports.
type ScriptedInput struct {
	queue []InputState
	last  InputState
	// FrameTime is the DeltaTime of queued frames. Zero means 1/60 s.
	FrameTime float64
}

// NewScriptedInput returns a focused ScriptedInput with the cursor at (0,0).
func NewScriptedInput() *ScriptedInput {
	return &ScriptedInput{last: InputState{Focused: true}}
}

// Poll implements InputSource.
func (s *ScriptedInput) Poll() InputState {
	if len(s.queue) == 0 {
		st := s.last
		st.KeysPressed = [keyCount]bool{}
		st.Wheel = 0
		st.DeltaTime = s.frameTime()
		return st
	}
	st := s.queue[0]
	copy(s.queue, s.queue[1:])
	s.queue = s.queue[:len(s.queue)-1]
	return st
}

// Pending returns the number of queued frames.
func (s *ScriptedInput) Pending() int { return len(s.queue) }

func (s *ScriptedInput) frameTime() float64 {
	if s.FrameTime > 0 {
		return s.FrameTime
	}
	return defaultFrameTime
}

// tail returns the state the next queued frame starts from.
func (s *ScriptedInput) tail() InputState {
	st := s.last
	st.KeysPressed = [keyCount]bool{}
	st.Wheel = 0
	st.DeltaTime = s.frameTime()
	return st
}

func (s *ScriptedInput) push(st InputState) {
	s.queue = append(s.queue, st)
	s.last = st
}

// Idle queues n frames with no change.
func (s *ScriptedInput) Idle(n int) {
	for i := 0; i < n; i++ {
		s.push(s.tail())
	}
}

// Move queues a frame with the cursor at (x, y). Held buttons stay held.
func (s *ScriptedInput) Move(x, y float64) {
	st := s.tail()
	st.MousePos = Vec2{x, y}
	s.push(st)
}

// Press queues a frame pressing button at (x, y).
func (s *ScriptedInput) Press(button MouseButton, x, y float64) {
	st := s.tail()
	st.MousePos = Vec2{x, y}
	st.Buttons[button] = true
	s.push(st)
}

// Release queues a frame releasing button at (x, y).
func (s *ScriptedInput) Release(button MouseButton, x, y float64) {
	st := s.tail()
	st.MousePos = Vec2{x, y}
	st.Buttons[button] = false
	s.push(st)
}

// Click queues a press and a release of the left button. Consumes two frames.
func (s *ScriptedInput) Click(x, y float64) {
	s.Press(MouseButtonLeft, x, y)
	s.Release(MouseButtonLeft, x, y)
}

// DoubleClick queues two clicks at (x, y). Consumes four frames.
func (s *ScriptedInput) DoubleClick(x, y float64) {
	s.Click(x, y)
	s.Click(x, y)
}

// Drag queues a press at (fromX, fromY), frames-2 interpolated moves, and a
// release at (toX, toY). Minimum frames is 2.
func (s *ScriptedInput) Drag(button MouseButton, fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.Press(button, fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.Move(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.Release(button, toX, toY)
}

// Key queues a frame in which k goes down with the given modifiers held.
func (s *ScriptedInput) Key(k Key, mods KeyModifiers) {
	st := s.tail()
	st.Modifiers = mods
	st.KeysPressed[k] = true
	s.push(st)
	s.last.Modifiers = 0
}

// Scroll queues a wheel movement with the cursor at (x, y).
func (s *ScriptedInput) Scroll(delta, x, y float64) {
	st := s.tail()
	st.MousePos = Vec2{x, y}
	st.Wheel = delta
	s.push(st)
}

// SetModifiers changes the modifiers held in subsequent frames.
func (s *ScriptedInput) SetModifiers(mods KeyModifiers) {
	s.last.Modifiers = mods
}

// SetFocused queues a frame with the given window focus.
func (s *ScriptedInput) SetFocused(focused bool) {
	st := s.tail()
	st.Focused = focused
	s.push(st)
}
