package nodeeditor

import "testing"

func TestScriptedInputPollConsumesQueue(t *testing.T) {
	in := NewScriptedInput()
	in.Move(10, 20)
	in.Press(MouseButtonLeft, 10, 20)
	if in.Pending() != 2 {
		t.Fatalf("Pending = %d, want 2", in.Pending())
	}

	st := in.Poll()
	if st.MousePos != (Vec2{10, 20}) || st.Buttons[MouseButtonLeft] {
		t.Errorf("first frame = %+v", st)
	}
	st = in.Poll()
	if !st.Buttons[MouseButtonLeft] {
		t.Error("second frame should hold the left button")
	}
	if in.Pending() != 0 {
		t.Errorf("Pending = %d after draining", in.Pending())
	}
}

func TestScriptedInputEmptyQueueRepeatsLastState(t *testing.T) {
	in := NewScriptedInput()
	in.Press(MouseButtonRight, 5, 5)
	in.Scroll(2, 5, 5)
	in.Key(KeyDelete, 0)
	for range 3 {
		in.Poll()
	}

	st := in.Poll()
	if !st.Buttons[MouseButtonRight] {
		t.Error("held button should stay held on an empty queue")
	}
	if st.Wheel != 0 || st.KeysPressed[KeyDelete] {
		t.Error("edges should not repeat")
	}
	if !st.Focused {
		t.Error("scripted input starts focused")
	}
	assertNear(t, "DeltaTime", st.DeltaTime, defaultFrameTime)
}

func TestScriptedInputKeyModifiersLastOneFrame(t *testing.T) {
	in := NewScriptedInput()
	in.Key(KeyC, ModCtrl)
	in.Idle(1)

	st := in.Poll()
	if !st.KeysPressed[KeyC] || st.Modifiers != ModCtrl {
		t.Errorf("key frame = keys %v mods %v", st.KeysPressed, st.Modifiers)
	}
	st = in.Poll()
	if st.Modifiers != 0 || st.KeysPressed[KeyC] {
		t.Errorf("frame after key: mods %v", st.Modifiers)
	}
}

func TestScriptedInputSetModifiersPersist(t *testing.T) {
	in := NewScriptedInput()
	in.SetModifiers(ModAlt | ModShift)
	in.Move(1, 1)
	in.Move(2, 2)
	for i := range 2 {
		if st := in.Poll(); st.Modifiers != ModAlt|ModShift {
			t.Errorf("frame %d mods = %v", i, st.Modifiers)
		}
	}
}

func TestScriptedInputDrag(t *testing.T) {
	in := NewScriptedInput()
	in.Drag(MouseButtonLeft, 0, 0, 30, 60, 4)
	if in.Pending() != 4 {
		t.Fatalf("Pending = %d, want 4", in.Pending())
	}
	want := []struct {
		pos  Vec2
		held bool
	}{
		{Vec2{0, 0}, true},
		{Vec2{10, 20}, true},
		{Vec2{20, 40}, true},
		{Vec2{30, 60}, false},
	}
	for i, w := range want {
		st := in.Poll()
		assertVec(t, "pos", st.MousePos, w.pos)
		if st.Buttons[MouseButtonLeft] != w.held {
			t.Errorf("frame %d held = %v, want %v", i, st.Buttons[MouseButtonLeft], w.held)
		}
	}

	in.Drag(MouseButtonLeft, 0, 0, 1, 1, 0)
	if in.Pending() != 2 {
		t.Errorf("short drag queued %d frames, want 2", in.Pending())
	}
}

func TestScriptedInputFrameTime(t *testing.T) {
	in := NewScriptedInput()
	in.FrameTime = 0.5
	in.Idle(1)
	assertNear(t, "queued", in.Poll().DeltaTime, 0.5)
	assertNear(t, "repeated", in.Poll().DeltaTime, 0.5)
}

func TestScriptedInputFocus(t *testing.T) {
	in := NewScriptedInput()
	in.SetFocused(false)
	in.SetFocused(true)
	if in.Poll().Focused {
		t.Error("blur frame reported focus")
	}
	if !in.Poll().Focused {
		t.Error("focus frame reported no focus")
	}
}

// --- mouseTracker ---

func trackerFrames(t *testing.T, in *ScriptedInput) []buttonState {
	t.Helper()
	opts := DefaultOptions()
	var m mouseTracker
	var out []buttonState
	for in.Pending() > 0 {
		m.update(in.Poll(), &opts, func(v Vec2) Vec2 { return v })
		out = append(out, m.buttons[MouseButtonLeft])
	}
	return out
}

func TestMouseTrackerEdges(t *testing.T) {
	in := NewScriptedInput()
	in.Click(5, 5)
	in.Idle(1)
	frames := trackerFrames(t, in)

	if !frames[0].pressed || !frames[0].down || frames[0].released {
		t.Errorf("press frame = %+v", frames[0])
	}
	if frames[1].pressed || !frames[1].released || frames[1].down {
		t.Errorf("release frame = %+v", frames[1])
	}
	if frames[2].pressed || frames[2].released {
		t.Errorf("idle frame = %+v", frames[2])
	}
}

func TestMouseTrackerDragThreshold(t *testing.T) {
	in := NewScriptedInput()
	in.Press(MouseButtonLeft, 0, 0)
	in.Move(2, 2)
	in.Move(3, 3)
	in.Release(MouseButtonLeft, 3, 3)
	in.Idle(1)
	frames := trackerFrames(t, in)

	if frames[1].dragging {
		t.Error("movement under the threshold started a drag")
	}
	if !frames[2].dragging {
		t.Error("movement past the threshold did not start a drag")
	}
	if !frames[3].dragging || !frames[3].released {
		t.Error("dragging should be kept on the release frame")
	}
	if frames[4].dragging {
		t.Error("dragging should clear after the release frame")
	}
}

func TestMouseTrackerDoubleClick(t *testing.T) {
	tests := []struct {
		name  string
		build func(in *ScriptedInput)
		want  bool
	}{
		{"fast and close", func(in *ScriptedInput) {
			in.Click(10, 10)
			in.Click(12, 12)
		}, true},
		{"too far apart", func(in *ScriptedInput) {
			in.Click(10, 10)
			in.Click(30, 10)
		}, false},
		{"too slow", func(in *ScriptedInput) {
			in.Click(10, 10)
			in.Idle(30)
			in.Click(10, 10)
		}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := NewScriptedInput()
			tt.build(in)
			frames := trackerFrames(t, in)
			second := frames[len(frames)-2]
			if !second.pressed {
				t.Fatal("expected the second press")
			}
			if second.double != tt.want {
				t.Errorf("double = %v, want %v", second.double, tt.want)
			}
		})
	}
}

func TestMouseTrackerCancel(t *testing.T) {
	opts := DefaultOptions()
	var m mouseTracker
	id := func(v Vec2) Vec2 { return v }
	m.update(InputState{Buttons: [mouseButtonCount]bool{true}, DeltaTime: defaultFrameTime}, &opts, id)
	m.update(InputState{MousePos: Vec2{20, 0}, Buttons: [mouseButtonCount]bool{true}, DeltaTime: defaultFrameTime}, &opts, id)
	if !m.isDragging(MouseButtonLeft) {
		t.Fatal("expected a drag")
	}
	m.cancel()
	if m.isDragging(MouseButtonLeft) || m.button(MouseButtonLeft).down {
		t.Error("cancel should forget the held button")
	}
	assertVec(t, "dragDelta", m.dragDelta(MouseButtonLeft), Vec2{20, 0})
}
