package nodeeditor

import (
	"slices"
	"testing"
)

func texts(cmds []DrawCmd) []string {
	var out []string
	for _, c := range cmds {
		out = append(out, c.Text)
	}
	return out
}

func buildLayeredList() *DrawList {
	d := newDrawList()
	d.setLayer(layerBackground)
	d.AddText(Vec2{}, "bg", Color{})
	d.setLayer(layerLinks)
	d.AddText(Vec2{}, "link", Color{})
	for _, id := range []NodeID{1, 2} {
		d.setNode(id)
		name := string(rune('0' + id))
		d.setLayer(layerNodeFg)
		d.AddText(Vec2{}, "fg"+name, Color{})
		d.setLayer(layerNodeBg)
		d.AddText(Vec2{}, "nbg"+name, Color{})
		d.setLayer(layerNodeContent)
		d.AddText(Vec2{}, "content"+name, Color{})
	}
	d.setLayer(layerOverlay)
	d.AddText(Vec2{}, "overlay", Color{})
	d.setLayer(layerForeground)
	d.AddText(Vec2{}, "fg", Color{})
	return d
}

func TestDrawListFlattenOrder(t *testing.T) {
	tests := []struct {
		name       string
		order      []NodeID
		linksOnTop bool
		want       []string
	}{
		{"links below", []NodeID{1, 2}, false,
			[]string{"bg", "link", "nbg1", "content1", "fg1", "nbg2", "content2", "fg2", "fg", "overlay"}},
		{"links on top", []NodeID{2, 1}, true,
			[]string{"bg", "nbg2", "content2", "fg2", "nbg1", "content1", "fg1", "link", "fg", "overlay"}},
		{"unknown node skipped", []NodeID{9, 1}, false,
			[]string{"bg", "link", "nbg1", "content1", "fg1", "fg", "overlay"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := buildLayeredList()
			d.flatten(tt.order, tt.linksOnTop)
			if got := texts(d.Commands()); !slices.Equal(got, tt.want) {
				t.Errorf("order = %v\nwant  %v", got, tt.want)
			}
			if d.Len() != len(tt.want) {
				t.Errorf("Len = %d", d.Len())
			}
		})
	}
}

func TestDrawListScreenRouting(t *testing.T) {
	d := newDrawList()
	d.setNode(1)
	d.setLayer(layerNodeContent)
	d.screen = true
	d.AddRectFilled(Rect{Width: 1, Height: 1}, Color{}, 0)
	d.screen = false
	d.setLayer(layerOverlay)
	d.AddLine(Vec2{}, Vec2{1, 1}, Color{}, 1)
	d.setLayer(layerForeground)
	d.AddCircleFilled(Vec2{}, 2, Color{})
	d.flatten([]NodeID{1}, false)

	cmds := d.Commands()
	if len(cmds) != 3 {
		t.Fatalf("got %d commands", len(cmds))
	}
	if cmds[0].Kind != DrawCircleFilled || cmds[0].Screen {
		t.Errorf("foreground command = %+v", cmds[0])
	}
	if !cmds[1].Screen || !cmds[2].Screen {
		t.Error("suspended and overlay commands should be screen space")
	}
}

func TestDrawListNodeLayerWithoutNode(t *testing.T) {
	d := newDrawList()
	d.setLayer(layerNodeContent)
	d.AddText(Vec2{}, "orphan", Color{})
	d.flatten(nil, false)
	if got := texts(d.Commands()); !slices.Equal(got, []string{"orphan"}) {
		t.Errorf("commands = %v", got)
	}
}

func TestDrawListResetAndPrune(t *testing.T) {
	d := buildLayeredList()
	d.reset()
	d.flatten([]NodeID{1, 2}, false)
	if d.Len() != 0 {
		t.Errorf("reset left %d commands", d.Len())
	}
	if d.layer != layerForeground || d.node != nil {
		t.Error("reset should restore the default layer")
	}

	d.prune(func(id NodeID) bool { return id == 2 })
	if _, ok := d.nodes[1]; ok {
		t.Error("prune kept node 1")
	}
	if _, ok := d.nodes[2]; !ok {
		t.Error("prune dropped node 2")
	}
}

func TestCountBatches(t *testing.T) {
	tests := []struct {
		name string
		cmds []DrawCmd
		want int
	}{
		{"empty", nil, 0},
		{"one", []DrawCmd{{Kind: DrawRectFilled}}, 1},
		{"same kind", []DrawCmd{{Kind: DrawBezier}, {Kind: DrawBezier}, {Kind: DrawBezier}}, 1},
		{"alternating", []DrawCmd{{Kind: DrawRectFilled}, {Kind: DrawText}, {Kind: DrawRectFilled}}, 3},
		{"screen splits", []DrawCmd{{Kind: DrawText}, {Kind: DrawText, Screen: true}}, 2},
	}
	for _, tt := range tests {
		if got := countBatches(tt.cmds); got != tt.want {
			t.Errorf("%s: countBatches = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestBezierSegments(t *testing.T) {
	short := CubicBezier{P0: Vec2{0, 0}, P1: Vec2{1, 0}, P2: Vec2{2, 0}, P3: Vec2{3, 0}}
	if n := bezierSegments(short, 1); n != 4 {
		t.Errorf("short curve = %d segments, want 4", n)
	}
	mid := CubicBezier{P0: Vec2{0, 0}, P1: Vec2{100, 0}, P2: Vec2{200, 0}, P3: Vec2{300, 0}}
	if n := bezierSegments(mid, 1); n != 37 {
		t.Errorf("300px curve = %d segments, want 37", n)
	}
	if n := bezierSegments(mid, 10); n != 64 {
		t.Errorf("zoomed curve = %d segments, want 64", n)
	}
}
