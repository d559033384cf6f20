package nodeeditor

import (
	"slices"
	"testing"
)

// --- Drag ---

func TestDragSnapsToGrid(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)

	h.in.Press(MouseButtonLeft, node1Body.X, node1Body.Y)
	h.in.Move(246, 184)
	h.run(2)
	if h.ed.CurrentAction() != "drag" {
		t.Fatalf("CurrentAction = %q, want drag", h.ed.CurrentAction())
	}
	if ev := h.sink.ofType(EventNodesMoved); len(ev) != 0 {
		t.Fatal("moved event before release")
	}

	h.in.Release(MouseButtonLeft, 246, 184)
	h.drain()

	pos, _ := h.ed.NodePosition(1)
	if pos != (Vec2{192, 160}) {
		t.Errorf("position = %v, want (192,160)", pos)
	}
	if got := h.ed.stats.processed; got != "drag" {
		t.Errorf("processed = %q, want drag", got)
	}
	ev := h.sink.ofType(EventNodesMoved)
	if len(ev) != 1 || !slices.Equal(ev[0].Nodes, []NodeID{1}) {
		t.Fatalf("moved events = %+v", ev)
	}
	if ev[0].Position != pos {
		t.Errorf("event position = %v, want %v", ev[0].Position, pos)
	}
	if h.ed.CurrentAction() != "" {
		t.Errorf("CurrentAction = %q after release", h.ed.CurrentAction())
	}
}

func TestDragAltSkipsGrid(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)

	h.in.SetModifiers(ModAlt)
	h.in.Press(MouseButtonLeft, node1Body.X, node1Body.Y)
	h.in.Move(155, 127)
	h.in.Release(MouseButtonLeft, 155, 127)
	h.in.SetModifiers(0)
	h.drain()

	if pos, _ := h.ed.NodePosition(1); pos != (Vec2{101, 103}) {
		t.Errorf("position = %v, want (101,103)", pos)
	}
}

func TestDragMovesSelection(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)
	h.ed.SelectNode(1, false)
	h.ed.SelectNode(2, true)

	h.in.Press(MouseButtonLeft, node1Body.X, node1Body.Y)
	h.in.Move(node1Body.X+32, node1Body.Y+16)
	h.in.Release(MouseButtonLeft, node1Body.X+32, node1Body.Y+16)
	h.drain()

	p1, _ := h.ed.NodePosition(1)
	p2, _ := h.ed.NodePosition(2)
	if p1 != (Vec2{128, 112}) || p2 != (Vec2{432, 112}) {
		t.Errorf("positions = %v %v, want (128,112) (432,112)", p1, p2)
	}
	ev := h.sink.ofType(EventNodesMoved)
	if len(ev) != 1 || len(ev[0].Nodes) != 2 {
		t.Errorf("moved events = %+v", ev)
	}
}

func TestDragCancelledByFocusLoss(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)

	h.in.Press(MouseButtonLeft, node1Body.X, node1Body.Y)
	h.in.Move(246, 184)
	h.run(2)
	if pos, _ := h.ed.NodePosition(1); pos == (Vec2{96, 96}) {
		t.Fatal("drag did not move the node")
	}

	h.in.SetFocused(false)
	h.in.Release(MouseButtonLeft, 246, 184)
	h.drain()
	h.run(2)

	if pos, _ := h.ed.NodePosition(1); pos != (Vec2{96, 96}) {
		t.Errorf("position = %v, want the drag start (96,96)", pos)
	}
	if h.ed.CurrentAction() != "" {
		t.Errorf("CurrentAction = %q, want none", h.ed.CurrentAction())
	}
	if ev := h.sink.ofType(EventNodesMoved); len(ev) != 0 {
		t.Errorf("cancelled drag reported a move: %+v", ev)
	}
}

func TestDragCancelledByEscape(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)

	h.in.Press(MouseButtonLeft, node1Body.X, node1Body.Y)
	h.in.Move(246, 184)
	h.in.Key(KeyEscape, 0)
	h.drain()
	if h.ed.CurrentAction() != "" {
		t.Errorf("CurrentAction = %q after Escape, want none", h.ed.CurrentAction())
	}

	h.in.Release(MouseButtonLeft, 246, 184)
	h.drain()
	h.run(1)
	if pos, _ := h.ed.NodePosition(1); pos != (Vec2{96, 96}) {
		t.Errorf("position = %v, want the drag start (96,96)", pos)
	}
	if ev := h.sink.ofType(EventNodesMoved); len(ev) != 0 {
		t.Errorf("cancelled drag reported a move: %+v", ev)
	}
}

func TestDragAtEdgeScrollsView(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)

	h.in.Press(MouseButtonLeft, node1Body.X, node1Body.Y)
	h.in.Move(testScreen.X-5, node1Body.Y)
	h.in.Idle(5)
	h.drain()
	if s := h.ed.View().Scroll; s.X <= 0 || s.Y != 0 {
		t.Errorf("scroll = %v, want positive X only", s)
	}

	h.in.Release(MouseButtonLeft, testScreen.X-5, node1Body.Y)
	before := h.ed.View().Scroll
	h.drain()
	h.run(2)
	if h.ed.View().Scroll.X > before.X+1 {
		t.Error("view kept scrolling after the drag ended")
	}
}

// --- Selection ---

func TestSelectionRectangle(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)

	h.in.Press(MouseButtonLeft, 60, 60)
	h.in.Move(250, 200)
	h.run(2)
	if h.ed.CurrentAction() != "select" {
		t.Fatalf("CurrentAction = %q, want select", h.ed.CurrentAction())
	}
	if h.ed.SelectedObjectCount() != 0 {
		t.Error("rectangle selection committed before release")
	}

	h.in.Release(MouseButtonLeft, 250, 200)
	h.drain()

	if got := h.ed.SelectedNodes(); !slices.Equal(got, []NodeID{1}) {
		t.Errorf("selected = %v, want [1]", got)
	}
	if got := h.ed.stats.processed; got != "select" {
		t.Errorf("processed = %q, want select", got)
	}
	if !h.ed.HasSelectionChanged() {
		t.Error("HasSelectionChanged = false on the commit frame")
	}
	ev := h.sink.ofType(EventSelectionChanged)
	if len(ev) != 1 || !slices.Equal(ev[0].Nodes, []NodeID{1}) {
		t.Errorf("selection events = %+v", ev)
	}

	h.run(1)
	if h.ed.HasSelectionChanged() {
		t.Error("HasSelectionChanged stays true")
	}
}

func TestSelectionRectangleCtrlKeepsPrevious(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)
	h.ed.SelectNode(2, false)

	h.in.SetModifiers(ModCtrl)
	h.in.Press(MouseButtonLeft, 60, 60)
	h.in.Move(250, 200)
	h.in.Release(MouseButtonLeft, 250, 200)
	h.in.SetModifiers(0)
	h.drain()

	got := h.ed.SelectedNodes()
	slices.Sort(got)
	if !slices.Equal(got, []NodeID{1, 2}) {
		t.Errorf("selected = %v, want [1 2]", got)
	}
}

func TestClickSelection(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)

	h.in.Click(node1Body.X, node1Body.Y)
	h.drain()
	if got := h.ed.SelectedNodes(); !slices.Equal(got, []NodeID{1}) {
		t.Fatalf("after click: %v, want [1]", got)
	}

	h.in.SetModifiers(ModCtrl)
	h.in.Click(node2Body.X, node2Body.Y)
	h.in.SetModifiers(0)
	h.drain()
	if got := h.ed.SelectedNodes(); !slices.Equal(got, []NodeID{1, 2}) {
		t.Fatalf("after ctrl+click: %v, want [1 2]", got)
	}

	h.in.SetModifiers(ModCtrl)
	h.in.Click(node1Body.X, node1Body.Y)
	h.in.SetModifiers(0)
	h.drain()
	if got := h.ed.SelectedNodes(); !slices.Equal(got, []NodeID{2}) {
		t.Fatalf("after ctrl+click on selected: %v, want [2]", got)
	}

	h.in.Click(node1Body.X, node1Body.Y)
	h.drain()
	if got := h.ed.SelectedNodes(); !slices.Equal(got, []NodeID{1}) {
		t.Errorf("plain click should replace: %v", got)
	}
	if !h.ed.IsNodeSelected(1) || h.ed.IsNodeSelected(2) {
		t.Error("IsNodeSelected disagrees with SelectedNodes")
	}
}

func TestPinClickSelectsOwnerNode(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)

	h.in.Click(pin10Center.X, pin10Center.Y)
	h.drain()
	if got := h.ed.SelectedNodes(); !slices.Equal(got, []NodeID{1}) {
		t.Fatalf("after pin click: %v, want [1]", got)
	}

	h.in.SetModifiers(ModCtrl)
	h.in.Click(pin20Center.X, pin20Center.Y)
	h.in.Click(pin10Center.X, pin10Center.Y)
	h.in.SetModifiers(0)
	h.drain()
	if got := h.ed.SelectedNodes(); !slices.Equal(got, []NodeID{2}) {
		t.Errorf("after ctrl+clicks: %v, want [2]", got)
	}
	if len(h.created) != 0 || len(h.newNodeFrom) != 0 {
		t.Error("a pin click started the create handshake")
	}
}

func TestBackgroundClickClearsSelection(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)
	h.ed.SelectNode(1, false)
	h.run(1)

	h.in.Click(emptySpot.X, emptySpot.Y)
	h.drain()

	if !h.ed.IsBackgroundClicked() {
		t.Error("IsBackgroundClicked = false on the release frame")
	}
	if h.ed.SelectedObjectCount() != 0 {
		t.Errorf("selection = %v, want empty", h.ed.SelectedNodes())
	}
	if ev := h.sink.ofType(EventBackgroundClicked); len(ev) != 1 {
		t.Errorf("background click events = %d, want 1", len(ev))
	}

	h.run(1)
	if h.ed.IsBackgroundClicked() {
		t.Error("IsBackgroundClicked stays set")
	}
}

func TestDoubleClickEvents(t *testing.T) {
	tests := []struct {
		name string
		at   Vec2
		typ  EventType
		node NodeID
		pin  PinID
	}{
		{"node", node1Body, EventNodeDoubleClicked, 1, 0},
		{"pin", pin10Center, EventPinDoubleClicked, 1, 10},
		{"background", emptySpot, EventBackgroundDoubleClicked, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHost(t, Config{})
			h.place()
			h.run(1)

			h.in.DoubleClick(tt.at.X, tt.at.Y)
			h.drain()

			ev := h.sink.ofType(tt.typ)
			if len(ev) != 1 {
				t.Fatalf("%v events = %d, want 1", tt.typ, len(ev))
			}
			if ev[0].Node != tt.node || ev[0].Pin != tt.pin {
				t.Errorf("event = node %d pin %d, want node %d pin %d", ev[0].Node, ev[0].Pin, tt.node, tt.pin)
			}
		})
	}
}

func TestSlowClicksAreNotDouble(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)

	h.in.Click(node1Body.X, node1Body.Y)
	h.in.Idle(30)
	h.in.Click(node1Body.X, node1Body.Y)
	h.drain()

	if ev := h.sink.ofType(EventNodeDoubleClicked); len(ev) != 0 {
		t.Errorf("clicks half a second apart reported a double-click")
	}
}

// --- Group resize ---

func TestGroupResizeRightEdge(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.addGroup(50, Vec2{300, 300}, Vec2{200, 150})
	h.run(1)

	g := h.ed.FindNode(50)
	if !g.IsGroup() {
		t.Fatal("node 50 is not a group")
	}
	if b := g.Bounds(); b != (Rect{X: 300, Y: 300, Width: 216, Height: 186}) {
		t.Fatalf("group bounds = %v", b)
	}

	h.in.Press(MouseButtonLeft, 512, 400)
	h.in.Move(576, 400)
	h.run(2)
	if h.ed.CurrentAction() != "size" {
		t.Fatalf("CurrentAction = %q, want size", h.ed.CurrentAction())
	}
	h.in.Release(MouseButtonLeft, 576, 400)
	h.drain()
	h.run(1)

	assertNear(t, "group width", g.GroupBounds().Width, 268)
	assertNear(t, "group height", g.GroupBounds().Height, 150)
	if pos, _ := h.ed.NodePosition(50); pos != (Vec2{300, 300}) {
		t.Errorf("resizing the right edge moved the group to %v", pos)
	}
	ev := h.sink.ofType(EventNodeResized)
	if len(ev) != 1 || ev[0].Node != 50 {
		t.Errorf("resize events = %+v", ev)
	}
	if ev := h.sink.ofType(EventNodesMoved); len(ev) != 0 {
		t.Error("edge drag also moved the node")
	}
}

func TestGroupResizeKeepsMinimum(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.addGroup(50, Vec2{300, 300}, Vec2{200, 150})
	h.run(1)

	// bottom edge pulled far above the top
	h.in.Press(MouseButtonLeft, 400, 482)
	h.in.Move(400, 200)
	h.in.Release(MouseButtonLeft, 400, 200)
	h.drain()
	h.run(1)

	g := h.ed.FindNode(50)
	assertNear(t, "group height", g.GroupBounds().Height, h.ed.Options().MinGroupHeight)
}

func TestGroupInteriorDragMovesChildren(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.addGroup(50, Vec2{0, 288}, Vec2{400, 200})
	// node 3 sits inside the group interior
	h.nodes = append(h.nodes, testNode{id: 3, size: Vec2{40, 20}})
	h.ed.SetNodePosition(3, Vec2{64, 384})
	h.run(1)

	// grab the group by its title, away from the edges
	h.in.Press(MouseButtonLeft, 100, 300)
	h.in.Move(132, 300)
	h.in.Release(MouseButtonLeft, 132, 300)
	h.drain()

	if pos, _ := h.ed.NodePosition(50); pos != (Vec2{32, 288}) {
		t.Errorf("group position = %v, want (32,288)", pos)
	}
	if pos, _ := h.ed.NodePosition(3); pos != (Vec2{96, 384}) {
		t.Errorf("child position = %v, want (96,384)", pos)
	}
}

// --- Navigation ---

func TestRightDragPans(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)

	h.in.Press(MouseButtonRight, 400, 300)
	h.in.Move(350, 280)
	h.run(2)
	if h.ed.CurrentAction() != "navigate" {
		t.Fatalf("CurrentAction = %q, want navigate", h.ed.CurrentAction())
	}
	h.in.Release(MouseButtonRight, 350, 280)
	h.drain()
	h.run(1)

	assertVec(t, "scroll", h.ed.View().Scroll, Vec2{50, 20})
	if len(h.menus) != 0 {
		t.Errorf("panning opened a menu: %+v", h.menus)
	}
	if h.store.LastReason&SaveReasonNavigation == 0 {
		t.Errorf("pan not saved: reason %v", h.store.LastReason)
	}
}

func TestWheelZoomKeepsCursorPoint(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)

	h.in.Scroll(1, 400, 300)
	h.in.Idle(10)
	h.drain()

	assertNear(t, "zoom", h.ed.View().Zoom, 1.25)
	assertVec(t, "anchor", h.ed.Canvas().FromScreen(Vec2{400, 300}), Vec2{400, 300})

	h.in.Scroll(-1, 400, 300)
	h.in.Scroll(-1, 400, 300)
	h.in.Idle(10)
	h.drain()
	assertNear(t, "zoom", h.ed.View().Zoom, 0.75)
	assertVec(t, "anchor", h.ed.Canvas().FromScreen(Vec2{400, 300}), Vec2{400, 300})
}

func TestNavigateToBounds(t *testing.T) {
	tests := []struct {
		name   string
		zoomIn bool
		zoom   float64
		scroll Vec2
	}{
		{"zoom in", true, 3.85, Vec2{-15, -107.5}},
		{"keep zoom", false, 1, Vec2{-300, -250}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHost(t, Config{})
			h.place()
			h.run(1)

			h.ed.NavigateTo(Rect{Width: 200, Height: 100}, tt.zoomIn, 0)
			h.run(1)

			v := h.ed.View()
			assertNear(t, "zoom", v.Zoom, tt.zoom)
			assertVec(t, "scroll", v.Scroll, tt.scroll)
			if h.ed.IsNavigating() {
				t.Error("zero duration should finish at once")
			}
		})
	}
}

func TestNavigateToContent(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.ed.NavigateToContent(0)
	h.run(1)

	// content {96,96,420,56} fits by width at 770/420
	v := h.ed.View()
	assertNear(t, "zoom", v.Zoom, 770.0/420)
	assertVec(t, "scroll", v.Scroll, Vec2{161, 124*770.0/420 - 300})
}

func TestNavigateAnimates(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)

	h.ed.NavigateTo(Rect{Width: 200, Height: 100}, true, -1)
	h.run(2)
	if !h.ed.IsNavigating() {
		t.Fatal("negative duration should animate")
	}
	if z := h.ed.View().Zoom; z <= 1 || z >= 3.85 {
		t.Errorf("mid-animation zoom = %v", z)
	}

	h.run(30)
	if h.ed.IsNavigating() {
		t.Error("animation still running after the scroll duration")
	}
	assertNear(t, "zoom", h.ed.View().Zoom, 3.85)
}

func TestFocusKeyShowsSelection(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)
	h.ed.SelectNode(1, false)

	h.in.Key(KeyF, 0)
	h.in.Idle(30)
	h.drain()

	// node 1 is {96,96,116,56}; F alone never zooms in
	v := h.ed.View()
	assertNear(t, "zoom", v.Zoom, 1)
	assertVec(t, "scroll", v.Scroll, Vec2{154 - 400, 124 - 300})
}

func TestSetViewStopsAnimation(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.run(1)

	h.ed.NavigateTo(Rect{Width: 200, Height: 100}, true, 1)
	h.run(2)
	h.ed.SetView(View{Scroll: Vec2{10, 10}, Zoom: 0})
	h.run(1)

	if h.ed.IsNavigating() {
		t.Error("SetView should stop navigation")
	}
	if v := h.ed.View(); v.Zoom != 1 || v.Scroll != (Vec2{10, 10}) {
		t.Errorf("view = %+v", v)
	}
}

// --- Scripts ---

func TestScriptedClickSelects(t *testing.T) {
	in, err := LoadInputScript([]byte(`{"steps":[
		{"action":"wait","frames":1},
		{"action":"click","x":150,"y":120},
		{"action":"key","key":"c","mods":"ctrl"}
	]}`))
	if err != nil {
		t.Fatalf("LoadInputScript: %v", err)
	}
	h := newTestHost(t, Config{Input: in})
	h.place()
	h.drain()
	h.run(1)

	if got := h.ed.SelectedNodes(); !slices.Equal(got, []NodeID{1}) {
		t.Errorf("selected = %v, want [1]", got)
	}
	if len(h.shortcuts) != 1 || h.shortcuts[0].kind != ShortcutCopy {
		t.Errorf("shortcuts = %+v, want one copy", h.shortcuts)
	}
}
