package nodeeditor

import "math"

// ObjectKind tags the concrete type behind an Object.
type ObjectKind uint8

const (
	ObjectKindNone ObjectKind = iota
	ObjectKindNode
	ObjectKindPin
	ObjectKindLink
)

func (k ObjectKind) String() string {
	switch k {
	case ObjectKindNode:
		return "node"
	case ObjectKindPin:
		return "pin"
	case ObjectKindLink:
		return "link"
	default:
		return "none"
	}
}

// Object is the closed set {*Node, *Pin, *Link}. The unexported methods keep
// other packages from adding implementations.
type Object interface {
	Kind() ObjectKind
	// RawID returns the host-assigned identifier without its kind.
	RawID() int32
	IsLive() bool
	Bounds() Rect

	header() *objectHeader
	testHit(p Vec2, extraThickness float64) bool
	testHitRect(r Rect, allowIntersect bool) bool
	isSelectable() bool
}

// objectHeader is the state every object kind shares.
type objectHeader struct {
	live    bool
	wasLive bool // live at the end of the previous frame
}

func (h *objectHeader) header() *objectHeader { return h }

// IsLive reports whether the object was submitted during the current frame.
func (h *objectHeader) IsLive() bool { return h.live }

// draggable is implemented by objects the DragAction can move.
type draggable interface {
	Object
	acceptDrag()
	updateDrag(offset Vec2)
	endDrag() bool
	cancelDrag()
}

// sameObject reports whether a and b refer to the same object. Nil interfaces
// are equal only to each other.
func sameObject(a, b Object) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Kind() == b.Kind() && a.RawID() == b.RawID()
}

// --- Node ---

// Node is a rectangle with pins. A group node is a resizable container whose
// interior is transparent to hit-testing.
type Node struct {
	objectHeader

	id       NodeID
	nodeType NodeType

	position      Vec2 // canvas-space top-left
	bounds        Rect
	contentBounds Rect
	groupBounds   Rect
	groupSize     Vec2
	hasGroupSize  bool

	// zPosition orders nodes for hit-testing and painting.
	zPosition int

	pins    []PinID
	lastPin PinID

	restoreState   bool
	centerOnScreen bool
	// set by the host before submission; restoring keeps these
	hostPosition  bool
	hostGroupSize bool

	dragStart Vec2
}

func newNode(id NodeID) *Node {
	return &Node{id: id}
}

// ID returns the node identifier.
func (n *Node) ID() NodeID { return n.id }

func (n *Node) Kind() ObjectKind { return ObjectKindNode }
func (n *Node) RawID() int32     { return int32(n.id) }

// Bounds returns the node rectangle in canvas space.
func (n *Node) Bounds() Rect { return n.bounds }

// Type returns whether the node is a plain node or a group.
func (n *Node) Type() NodeType { return n.nodeType }

// IsGroup reports whether the node is a group container.
func (n *Node) IsGroup() bool { return n.nodeType == NodeTypeGroup }

// Position returns the canvas-space top-left corner.
func (n *Node) Position() Vec2 { return n.position }

// GroupBounds returns the group interior. Empty for plain nodes.
func (n *Node) GroupBounds() Rect { return n.groupBounds }

// Pins returns the pins submitted for the node this frame.
func (n *Node) Pins() []PinID { return n.pins }

func (n *Node) setPosition(p Vec2) {
	delta := p.Sub(n.position)
	n.position = p
	n.bounds = n.bounds.Translate(delta)
	n.contentBounds = n.contentBounds.Translate(delta)
	if n.IsGroup() {
		n.groupBounds = n.groupBounds.Translate(delta)
	}
}

func (n *Node) testHit(p Vec2, _ float64) bool {
	if !n.live || !n.bounds.ContainsPoint(p) {
		return false
	}
	if n.IsGroup() && !n.groupBounds.IsEmpty() {
		inner := n.groupBounds
		// The edges stay grabbable for resizing.
		if p.X > inner.X && p.X < inner.X+inner.Width && p.Y > inner.Y && p.Y < inner.Y+inner.Height {
			return false
		}
	}
	return true
}

func (n *Node) testHitRect(r Rect, allowIntersect bool) bool {
	if !n.live {
		return false
	}
	if allowIntersect {
		return r.Intersects(n.bounds)
	}
	return r.ContainsRect(n.bounds)
}

func (n *Node) isSelectable() bool { return true }

func (n *Node) acceptDrag() { n.dragStart = n.position }

func (n *Node) updateDrag(offset Vec2) { n.setPosition(n.dragStart.Add(offset)) }

func (n *Node) endDrag() bool { return n.position != n.dragStart }

func (n *Node) cancelDrag() { n.setPosition(n.dragStart) }

// --- Pin ---

// Pin is a connection point owned by a node.
type Pin struct {
	objectHeader

	id   PinID
	node NodeID
	kind PinKind

	bounds         Rect
	pivotAlignment Vec2
	pivotSize      Vec2
	pivot          Rect
	dir            Vec2
	strength       float64

	hasConnection  bool
	hadConnection  bool
	lostConnection bool // connected last frame, not this one
}

func newPin(id PinID) *Pin {
	return &Pin{id: id, pivotAlignment: Vec2{0.5, 0.5}}
}

// ID returns the pin identifier.
func (p *Pin) ID() PinID { return p.id }

// Node returns the owning node.
func (p *Pin) Node() NodeID { return p.node }

// PinKind returns whether the pin is an input or an output.
func (p *Pin) PinKind() PinKind { return p.kind }

func (p *Pin) Kind() ObjectKind { return ObjectKindPin }
func (p *Pin) RawID() int32     { return int32(p.id) }

// Bounds returns the pin rectangle in canvas space.
func (p *Pin) Bounds() Rect { return p.bounds }

// HasConnection reports whether a link was attached this frame.
func (p *Pin) HasConnection() bool { return p.hasConnection }

// HadConnection reports whether a link was attached in the previous frame.
func (p *Pin) HadConnection() bool { return p.hadConnection }

// updatePivot recomputes the connection region from the pin rectangle.
func (p *Pin) updatePivot() {
	size := Vec2{math.Min(p.pivotSize.X, p.bounds.Width), math.Min(p.pivotSize.Y, p.bounds.Height)}
	origin := p.bounds.Min().Add(p.bounds.Size().Sub(size).Mul(p.pivotAlignment))
	p.pivot = Rect{X: origin.X, Y: origin.Y, Width: size.X, Height: size.Y}
}

// closestPoint returns the connection point nearest to target.
func (p *Pin) closestPoint(target Vec2) Vec2 {
	if p.pivot.Width == 0 && p.pivot.Height == 0 {
		return p.pivot.Min()
	}
	return p.pivot.ClosestPoint(target, true)
}

func (p *Pin) testHit(pt Vec2, _ float64) bool {
	return p.live && p.bounds.ContainsPoint(pt)
}

func (p *Pin) testHitRect(r Rect, allowIntersect bool) bool {
	if !p.live {
		return false
	}
	if allowIntersect {
		return r.Intersects(p.bounds)
	}
	return r.ContainsRect(p.bounds)
}

func (p *Pin) isSelectable() bool { return false }

// --- Link ---

// Link connects an output pin to an input pin.
type Link struct {
	objectHeader

	id        LinkID
	startPin  PinID
	endPin    PinID
	color     Color
	thickness float64

	start Vec2
	end   Vec2
	curve CubicBezier
	// curveBounds caches curve.Bounds().
	curveBounds Rect
}

func newLink(id LinkID) *Link {
	return &Link{id: id, color: ColorWhite, thickness: 1}
}

// ID returns the link identifier.
func (l *Link) ID() LinkID { return l.id }

func (l *Link) Kind() ObjectKind { return ObjectKindLink }
func (l *Link) RawID() int32     { return int32(l.id) }

// StartPin returns the pin the link originates from.
func (l *Link) StartPin() PinID { return l.startPin }

// EndPin returns the pin the link ends at.
func (l *Link) EndPin() PinID { return l.endPin }

// Bounds returns the bounds of the link curve.
func (l *Link) Bounds() Rect {
	return l.curveBounds.Expand(l.thickness / 2)
}

// Curve returns the link curve in canvas space.
func (l *Link) Curve() CubicBezier { return l.curve }

// updateEndpoints derives the curve from the current pin placement.
func (l *Link) updateEndpoints(start, end *Pin) {
	l.start = start.closestPoint(end.pivot.Center())
	l.end = end.closestPoint(l.start)
	l.curve = linkCurve(l.start, l.end, start.dir, end.dir, start.strength, end.strength)
	l.curveBounds = l.curve.Bounds()
}

// linkCurve shapes a link between two points leaving along startDir and
// entering against endDir.
func linkCurve(start, end, startDir, endDir Vec2, startStrength, endStrength float64) CubicBezier {
	easing := func(d Vec2, strength float64) Vec2 {
		length := math.Min(end.Sub(start).Len()/2, strength)
		return d.Scale(length)
	}
	return CubicBezier{
		P0: start,
		P1: start.Add(easing(startDir, startStrength)),
		P2: end.Add(easing(endDir, endStrength)),
		P3: end,
	}
}

// distance returns the distance from p to the link curve.
func (l *Link) distance(p Vec2) float64 {
	_, d := l.curve.ProjectPoint(p)
	return d
}

func (l *Link) testHit(p Vec2, extraThickness float64) bool {
	if !l.live {
		return false
	}
	radius := l.thickness/2 + extraThickness
	if !l.curveBounds.Expand(radius).ContainsPoint(p) {
		return false
	}
	return l.distance(p) <= radius
}

func (l *Link) testHitRect(r Rect, allowIntersect bool) bool {
	if !l.live {
		return false
	}
	bounds := l.Bounds()
	if r.ContainsRect(bounds) {
		return true
	}
	if !allowIntersect || !r.Intersects(bounds) {
		return false
	}
	pts := l.curve.Flatten(linkFlattenSegments)
	for i := 1; i < len(pts); i++ {
		if segmentIntersectsRect(pts[i-1], pts[i], r) {
			return true
		}
	}
	return false
}

func (l *Link) isSelectable() bool { return true }

const linkFlattenSegments = 24

// segmentIntersectsRect clips the segment a-b against r (Liang-Barsky).
func segmentIntersectsRect(a, b Vec2, r Rect) bool {
	if r.ContainsPoint(a) || r.ContainsPoint(b) {
		return true
	}
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0
	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			if t > t0 {
				t0 = t
			}
		} else {
			if t < t0 {
				return false
			}
			if t < t1 {
				t1 = t
			}
		}
		return true
	}
	return clip(-d.X, a.X-r.X) &&
		clip(d.X, r.X+r.Width-a.X) &&
		clip(-d.Y, a.Y-r.Y) &&
		clip(d.Y, r.Y+r.Height-a.Y)
}
