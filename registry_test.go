package nodeeditor

import (
	"slices"
	"testing"
)

func addTestPin(r *registry, id PinID, node NodeID, at, dir Vec2) *Pin {
	p, _ := r.createPin(id)
	p.node = node
	p.bounds = Rect{X: at.X, Y: at.Y}
	p.pivot = Rect{X: at.X, Y: at.Y}
	p.dir = dir
	p.strength = 100
	return p
}

func addTestLink(r *registry, id LinkID, start, end PinID) *Link {
	l, _ := r.createLink(id)
	l.startPin, l.endPin = start, end
	return l
}

func addTestNode(r *registry, id NodeID, bounds Rect, z int) *Node {
	n, _ := r.createNode(id)
	n.position = bounds.Min()
	n.bounds = bounds
	n.zPosition = z
	return n
}

func nodeIDs(nodes []*Node) []NodeID {
	var out []NodeID
	for _, n := range nodes {
		out = append(out, n.id)
	}
	return out
}

func TestRegistryCreateIsIdempotent(t *testing.T) {
	var r registry
	a, created := r.createNode(5)
	if !created {
		t.Error("first createNode should report created")
	}
	b, created := r.createNode(5)
	if created || a != b {
		t.Error("second createNode should return the same node")
	}
	if r.nodes.len() != 1 {
		t.Errorf("table has %d nodes, want 1", r.nodes.len())
	}
}

func TestRegistryTableStaysSorted(t *testing.T) {
	var r registry
	for _, id := range []LinkID{7, 3, 11, 1, 5} {
		r.createLink(id)
	}
	var got []LinkID
	for _, e := range r.links.entries {
		got = append(got, e.id)
	}
	if !slices.Equal(got, []LinkID{1, 3, 5, 7, 11}) {
		t.Errorf("ids = %v, want sorted", got)
	}
	if r.findLink(4) != nil {
		t.Error("findLink(4) should be nil")
	}
	if l := r.findLink(11); l == nil || l.id != 11 {
		t.Error("findLink(11) missed")
	}
}

func TestRegistryResetAndRevive(t *testing.T) {
	var r registry
	n := addTestNode(&r, 1, Rect{Width: 10, Height: 10}, 1)
	n.pins = append(n.pins, 10)
	r.collectDeleted()

	r.reset()
	if n.IsLive() || len(n.pins) != 0 {
		t.Fatal("reset should clear liveness and the pin list")
	}
	if r.findNodeAt(Vec2{5, 5}) != nil {
		t.Error("not-live node took part in hit-testing")
	}
	if got := r.findNodesInRect(Rect{Width: 100, Height: 100}, true, true); len(got) != 0 {
		t.Errorf("not-live node found in rect: %v", nodeIDs(got))
	}
	if _, ok := r.contentBounds(); ok {
		t.Error("contentBounds counted a not-live node")
	}

	r.collectDeleted()
	if !slices.Equal(r.deletedNodes, []NodeID{1}) {
		t.Errorf("deletedNodes = %v, want [1]", r.deletedNodes)
	}

	r.reset()
	revived, created := r.createNode(1)
	if created || revived != n || !n.IsLive() {
		t.Error("resubmitting should revive the same node")
	}
	r.collectDeleted()
	if len(r.deletedNodes) != 0 {
		t.Errorf("revived node reported deleted: %v", r.deletedNodes)
	}
}

func TestRegistryPruneLinks(t *testing.T) {
	var r registry
	addTestPin(&r, 1, 1, Vec2{0, 0}, Vec2{1, 0})
	addTestPin(&r, 2, 2, Vec2{100, 0}, Vec2{-1, 0})
	good := addTestLink(&r, 5, 1, 2)
	missing := addTestLink(&r, 6, 1, 99)
	r.pruneLinks()

	if !good.IsLive() {
		t.Error("link with live pins was pruned")
	}
	if missing.IsLive() {
		t.Error("link to a missing pin stayed live")
	}
	if !r.findPin(1).HasConnection() || !r.findPin(2).HasConnection() {
		t.Error("connected pins should report a connection")
	}
	assertVec(t, "curve start", good.Curve().P0, Vec2{0, 0})
	assertVec(t, "curve end", good.Curve().P3, Vec2{100, 0})
	// strength is capped at half the distance
	assertVec(t, "P1", good.Curve().P1, Vec2{50, 0})
	r.collectDeleted()

	// pin 2 goes away: the link is pruned and pin 1 loses its connection
	r.reset()
	addTestPin(&r, 1, 1, Vec2{0, 0}, Vec2{1, 0})
	addTestLink(&r, 5, 1, 2)
	r.pruneLinks()
	r.collectDeleted()
	if good.IsLive() {
		t.Error("link to a not-live pin stayed live")
	}
	if !slices.Contains(r.deletedLinks, 5) {
		t.Errorf("deletedLinks = %v, want 5", r.deletedLinks)
	}
	if !r.findPin(1).lostConnection {
		t.Error("pin 1 should have lost its connection")
	}
}

func TestRegistryFindLinkAtPrefersLowerID(t *testing.T) {
	var r registry
	addTestPin(&r, 1, 1, Vec2{0, 0}, Vec2{1, 0})
	addTestPin(&r, 2, 2, Vec2{100, 0}, Vec2{-1, 0})
	addTestLink(&r, 7, 1, 2)
	addTestLink(&r, 3, 1, 2)
	r.pruneLinks()

	l := r.findLinkAt(Vec2{50, 0}, 5)
	if l == nil || l.id != 3 {
		t.Fatalf("findLinkAt = %v, want link 3", l)
	}
	if r.findLinkAt(Vec2{50, 40}, 5) != nil {
		t.Error("point far from the curve hit a link")
	}
	if l := r.findLinkAt(Vec2{50, 5}, 5); l == nil {
		t.Error("point within the hit radius missed")
	}
}

func TestRegistryFindLinksInRect(t *testing.T) {
	var r registry
	addTestPin(&r, 1, 1, Vec2{0, 0}, Vec2{1, 0})
	addTestPin(&r, 2, 2, Vec2{100, 0}, Vec2{-1, 0})
	addTestLink(&r, 4, 1, 2)
	r.pruneLinks()

	crossing := Rect{X: 40, Y: -10, Width: 20, Height: 20}
	if got := r.findLinksInRect(crossing, true); len(got) != 1 {
		t.Errorf("intersecting query found %d links, want 1", len(got))
	}
	if got := r.findLinksInRect(crossing, false); len(got) != 0 {
		t.Error("containment query matched a link sticking out")
	}
	if got := r.findLinksInRect(Rect{X: -10, Y: -10, Width: 120, Height: 20}, false); len(got) != 1 {
		t.Error("containment query missed an enclosed link")
	}
	if got := r.findLinksInRect(Rect{X: 40, Y: 20, Width: 20, Height: 20}, true); len(got) != 0 {
		t.Error("rect below the link matched it")
	}
}

func TestRegistryNodesByZ(t *testing.T) {
	var r registry
	addTestNode(&r, 1, Rect{Width: 10, Height: 10}, 1)
	addTestNode(&r, 2, Rect{Width: 10, Height: 10}, 3)
	addTestNode(&r, 3, Rect{Width: 10, Height: 10}, 2)
	g := addTestNode(&r, 4, Rect{Width: 10, Height: 10}, 4)
	g.nodeType = NodeTypeGroup

	got := nodeIDs(r.nodesByZ())
	if !slices.Equal(got, []NodeID{2, 3, 1, 4}) {
		t.Errorf("nodesByZ = %v, want [2 3 1 4]", got)
	}
	if n := r.findNodeAt(Vec2{5, 5}); n == nil || n.id != 2 {
		t.Errorf("findNodeAt picked %v, want the topmost node 2", n)
	}
}

func TestRegistryFindNodesInRect(t *testing.T) {
	var r registry
	addTestNode(&r, 1, Rect{X: 0, Y: 0, Width: 10, Height: 10}, 1)
	addTestNode(&r, 2, Rect{X: 20, Y: 0, Width: 10, Height: 10}, 2)
	g := addTestNode(&r, 3, Rect{X: 0, Y: 0, Width: 50, Height: 50}, 3)
	g.nodeType = NodeTypeGroup

	q := Rect{X: -1, Y: -1, Width: 25, Height: 12}
	if got := nodeIDs(r.findNodesInRect(q, false, true)); !slices.Equal(got, []NodeID{1}) {
		t.Errorf("contained = %v, want [1]", got)
	}
	if got := nodeIDs(r.findNodesInRect(q, true, false)); !slices.Equal(got, []NodeID{1, 2}) {
		t.Errorf("intersecting without groups = %v, want [1 2]", got)
	}
	if got := nodeIDs(r.findNodesInRect(q, true, true)); !slices.Equal(got, []NodeID{1, 2, 3}) {
		t.Errorf("intersecting with groups = %v, want [1 2 3]", got)
	}
}

func TestRegistryLinksOfNode(t *testing.T) {
	var r registry
	addTestPin(&r, 10, 1, Vec2{0, 0}, Vec2{1, 0})
	addTestPin(&r, 20, 2, Vec2{100, 0}, Vec2{-1, 0})
	addTestPin(&r, 30, 3, Vec2{200, 0}, Vec2{-1, 0})
	addTestLink(&r, 1, 10, 20)
	addTestLink(&r, 2, 10, 30)
	addTestLink(&r, 3, 20, 30)
	r.pruneLinks()

	var got []LinkID
	for _, l := range r.linksOfNode(1) {
		got = append(got, l.id)
	}
	if !slices.Equal(got, []LinkID{1, 2}) {
		t.Errorf("linksOfNode(1) = %v, want [1 2]", got)
	}
	if len(r.linksOfNode(9)) != 0 {
		t.Error("unknown node has links")
	}
}

func TestRegistryGroupedNodes(t *testing.T) {
	var r registry
	g := addTestNode(&r, 1, Rect{X: 0, Y: 0, Width: 200, Height: 200}, 1)
	g.nodeType = NodeTypeGroup
	g.groupBounds = Rect{X: 8, Y: 30, Width: 184, Height: 162}
	addTestNode(&r, 2, Rect{X: 20, Y: 40, Width: 30, Height: 30}, 2)
	addTestNode(&r, 3, Rect{X: 180, Y: 40, Width: 30, Height: 30}, 3)
	addTestNode(&r, 4, Rect{X: 500, Y: 500, Width: 30, Height: 30}, 4)

	if got := nodeIDs(r.groupedNodes(g)); !slices.Equal(got, []NodeID{2}) {
		t.Errorf("groupedNodes = %v, want [2]", got)
	}
	if r.groupedNodes(r.findNode(2)) != nil {
		t.Error("plain node should have no grouped nodes")
	}
}
