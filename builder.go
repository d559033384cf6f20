package nodeeditor

import "math"

// NodeBuilder describes one node per Begin/End pair. Rectangles passed to it
// are relative to the content origin, the node position inset by the style's
// node padding. Commands added to the editor's DrawList while a node is open
// are painted with that node.
//
//	b := ed.BeginNode(1)
//	b.Content(Vec2{120, 24})
//	b.BeginPin(10, PinKindOutput)
//	b.PinRect(Rect{X: 110, Y: 4, Width: 10, Height: 16})
//	b.EndPin()
//	b.End()
type NodeBuilder struct {
	e    *Editor
	node *Node
	pin  *Pin

	origin  Vec2
	content boundsAccumulator

	pinRect      Rect
	hasPinRect   bool
	pivotRect    Rect
	hasPivotRect bool
	pivotScale   Vec2
}

// BeginNode opens node id. Nodes cannot be nested.
func (e *Editor) BeginNode(id NodeID) *NodeBuilder {
	e.builder.begin(id)
	return &e.builder
}

func (b *NodeBuilder) begin(id NodeID) {
	e := b.e
	switch {
	case !e.inFrame:
		e.assertf("BeginNode(%d) outside Begin/End", id)
		return
	case b.node != nil:
		e.assertf("BeginNode(%d) inside node %d", id, b.node.id)
		return
	case e.suspend > 0:
		e.assertf("BeginNode(%d) while suspended", id)
		return
	}

	n, created := e.reg.createNode(id)
	if created {
		n.restoreState = true
	}
	if n.restoreState {
		e.restoreNode(n)
		n.restoreState = false
	}
	n.hostPosition, n.hostGroupSize = false, false
	n.nodeType = NodeTypeNode
	e.zCounter++
	n.zPosition = e.zCounter
	e.settings.AddNode(id).WasUsed = true

	pad := e.style.NodePadding
	b.node = n
	b.origin = n.position.Add(Vec2{pad.X, pad.Y})
	b.content = boundsAccumulator{}

	e.drawList.setNode(id)
	e.drawList.setLayer(layerNodeContent)
}

// ContentOrigin returns the canvas point rectangles are relative to.
func (b *NodeBuilder) ContentOrigin() Vec2 { return b.origin }

// Content reserves a content area of size at the content origin.
func (b *NodeBuilder) Content(size Vec2) {
	b.ContentRect(Rect{Width: size.X, Height: size.Y})
}

// ContentRect reserves a content rectangle.
func (b *NodeBuilder) ContentRect(r Rect) {
	if !b.open("ContentRect") {
		return
	}
	b.content.add(r.Translate(b.origin))
}

func (b *NodeBuilder) open(op string) bool {
	if b.node == nil {
		b.e.assertf("%s outside BeginNode/End", op)
		return false
	}
	return true
}

// BeginPin opens pin id on the current node.
func (b *NodeBuilder) BeginPin(id PinID, kind PinKind) {
	if !b.open("BeginPin") {
		return
	}
	if b.pin != nil {
		b.e.assertf("BeginPin(%d) inside pin %d", id, b.pin.id)
		return
	}
	e := b.e
	p, _ := e.reg.createPin(id)
	p.node = b.node.id
	p.kind = kind
	p.strength = e.style.LinkStrength
	if kind == PinKindOutput {
		p.dir = e.style.SourceDirection
	} else {
		p.dir = e.style.TargetDirection
	}
	p.pivotAlignment = e.style.PivotAlignment
	p.pivotSize = e.style.PivotSize
	b.pivotScale = e.style.PivotScale

	b.pin = p
	b.hasPinRect = false
	b.hasPivotRect = false
	b.node.pins = append(b.node.pins, id)
	b.node.lastPin = id
}

// PinRect sets the pin rectangle.
func (b *NodeBuilder) PinRect(r Rect) {
	if b.pinOpen("PinRect") {
		b.pinRect = r
		b.hasPinRect = true
	}
}

// PinPivotRect sets the region links attach to, overriding alignment and
// size.
func (b *NodeBuilder) PinPivotRect(r Rect) {
	if b.pinOpen("PinPivotRect") {
		b.pivotRect = r
		b.hasPivotRect = true
	}
}

// PinPivotSize sets the size of the attach region inside the pin rectangle.
func (b *NodeBuilder) PinPivotSize(size Vec2) {
	if b.pinOpen("PinPivotSize") {
		b.pin.pivotSize = size
	}
}

// PinPivotScale scales the attach region around its center.
func (b *NodeBuilder) PinPivotScale(scale Vec2) {
	if b.pinOpen("PinPivotScale") {
		b.pivotScale = scale
	}
}

// PinPivotAlignment places the attach region inside the pin rectangle;
// (0,0) is top-left and (1,1) bottom-right.
func (b *NodeBuilder) PinPivotAlignment(align Vec2) {
	if b.pinOpen("PinPivotAlignment") {
		b.pin.pivotAlignment = align
	}
}

func (b *NodeBuilder) pinOpen(op string) bool {
	if b.pin == nil {
		b.e.assertf("%s outside BeginPin/EndPin", op)
		return false
	}
	return true
}

// EndPin closes the current pin.
func (b *NodeBuilder) EndPin() {
	if !b.pinOpen("EndPin") {
		return
	}
	p := b.pin
	if b.hasPinRect {
		p.bounds = b.pinRect.Translate(b.origin)
	} else {
		p.bounds = Rect{X: b.origin.X, Y: b.origin.Y}
	}
	if b.hasPivotRect {
		p.pivot = b.pivotRect.Translate(b.origin)
	} else {
		p.updatePivot()
	}
	if s := b.pivotScale; s != (Vec2{1, 1}) {
		c := p.pivot.Center()
		size := p.pivot.Size().Mul(s)
		p.pivot = Rect{X: c.X - size.X/2, Y: c.Y - size.Y/2, Width: size.X, Height: size.Y}
	}
	b.content.add(p.bounds)
	b.pin = nil
}

// Group turns the node into a resizable group. size is used the first time
// only; afterwards the editor owns the size.
func (b *NodeBuilder) Group(size Vec2) {
	if !b.open("Group") {
		return
	}
	n := b.node
	n.nodeType = NodeTypeGroup
	if !n.hasGroupSize {
		n.groupSize = size
		n.hasGroupSize = true
	}
}

// End closes the node and computes its bounds.
func (b *NodeBuilder) End() {
	if !b.open("EndNode") {
		return
	}
	e := b.e
	if b.pin != nil {
		e.assertf("EndNode with pin %d open", b.pin.id)
		b.EndPin()
	}
	n := b.node

	content := Rect{X: b.origin.X, Y: b.origin.Y}
	if b.content.ok {
		content = b.content.rect
	}
	total := content
	if n.IsGroup() {
		n.groupSize.X = math.Max(n.groupSize.X, content.Width)
		top := b.origin.Y
		if b.content.ok {
			top = content.Y + content.Height
		}
		n.groupBounds = Rect{X: b.origin.X, Y: top, Width: n.groupSize.X, Height: n.groupSize.Y}
		total = total.Union(n.groupBounds)
	} else {
		n.groupBounds = Rect{}
	}
	n.contentBounds = content

	pad := e.style.NodePadding
	n.bounds = Rect{
		X:      total.X - pad.X,
		Y:      total.Y - pad.Y,
		Width:  total.Width + pad.X + pad.Z,
		Height: total.Height + pad.Y + pad.W,
	}

	if n.centerOnScreen {
		n.centerOnScreen = false
		vis := e.canvas.VisibleBounds()
		target := vis.Center().Sub(n.bounds.Size().Scale(0.5))
		n.setPosition(n.position.Add(target.Sub(n.bounds.Min())))
	}

	b.node = nil
	e.drawList.node = nil
	e.drawList.setLayer(layerForeground)
}

// abort closes a node the host left open.
func (b *NodeBuilder) abort() {
	b.pin = nil
	if b.node != nil {
		b.End()
	}
}

// --- HintBuilder ---

// HintBuilder exposes the screen placement of a node for drawing overlays
// such as labels over zoomed-out groups. Commands added to the DrawList
// between Begin and End are in screen space. Hints take no part in
// hit-testing.
type HintBuilder struct {
	e    *Editor
	node *Node
}

// BeginHint opens a hint for node id. It returns nil when the node is not
// live.
func (e *Editor) BeginHint(id NodeID) *HintBuilder {
	if e.hints.node != nil {
		e.assertf("BeginHint(%d) inside hint for node %d", id, e.hints.node.id)
		return nil
	}
	n := e.reg.findNode(id)
	if n == nil || !n.live {
		return nil
	}
	e.hints.node = n
	e.Suspend()
	return &e.hints
}

// Bounds returns the node rectangle in screen space.
func (h *HintBuilder) Bounds() Rect { return h.e.canvas.ToScreenRect(h.node.bounds) }

// GroupMin returns the top-left of the group interior in screen space.
func (h *HintBuilder) GroupMin() Vec2 { return h.e.canvas.ToScreen(h.node.groupBounds.Min()) }

// GroupMax returns the bottom-right of the group interior in screen space.
func (h *HintBuilder) GroupMax() Vec2 { return h.e.canvas.ToScreen(h.node.groupBounds.Max()) }

// End closes the hint.
func (h *HintBuilder) End() {
	if h.node == nil {
		h.e.assertf("EndHint without BeginHint")
		return
	}
	h.node = nil
	h.e.Resume()
}
