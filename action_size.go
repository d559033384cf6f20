package nodeeditor

// sizeRegion locates a point relative to a group's frame.
type sizeRegion uint8

const (
	regionTop sizeRegion = 1 << iota
	regionBottom
	regionLeft
	regionRight
	regionCenter

	regionEdges = regionTop | regionBottom | regionLeft | regionRight
)

// SizeAction resizes group nodes by their edges and corners.
type SizeAction struct {
	actionBase

	active bool
	node   NodeID
	region sizeRegion
	// hover is the region under the cursor while the action is only possible.
	hover sizeRegion

	startBounds Rect
	startGroup  Rect
	startPos    Vec2
}

func newSizeAction(e *Editor) *SizeAction { return &SizeAction{actionBase: actionBase{e}} }

func (s *SizeAction) name() string { return "size" }

func (s *SizeAction) isDragging() bool { return s.active }

func (s *SizeAction) accept(c *control) acceptResult {
	e := s.e
	s.hover = 0
	if n := c.activeNode; n != nil && c.activePin == nil && n.IsGroup() && e.mouse.isDragging(MouseButtonLeft) {
		if r := s.regionAt(n, e.mouse.button(MouseButtonLeft).pressCanvas); r&regionEdges != 0 {
			s.active = true
			s.node = n.id
			s.region = r
			s.startBounds = n.bounds
			s.startGroup = n.groupBounds
			s.startPos = n.position
			return acceptTrue
		}
	}
	if n := c.hotNode; n != nil && c.hotPin == nil && n.IsGroup() {
		if r := s.regionAt(n, e.canvas.FromScreen(e.mouse.pos())); r&regionEdges != 0 {
			s.hover = r
			return acceptPossible
		}
	}
	return acceptFalse
}

func (s *SizeAction) reject() { s.hover = 0 }

// regionAt classifies p against the frame of group n. Edges win over the
// interior within the region tolerance (constant on screen).
func (s *SizeAction) regionAt(n *Node, p Vec2) sizeRegion {
	b := n.bounds
	if !b.ContainsPoint(p) {
		return 0
	}
	tol := s.e.opts.RegionTolerance * s.e.canvas.InvZoom().X
	var r sizeRegion
	if p.Y-b.Y <= tol {
		r |= regionTop
	} else if b.Y+b.Height-p.Y <= tol {
		r |= regionBottom
	}
	if p.X-b.X <= tol {
		r |= regionLeft
	} else if b.X+b.Width-p.X <= tol {
		r |= regionRight
	}
	if r == 0 && n.groupBounds.ContainsPoint(p) {
		r = regionCenter
	}
	return r
}

func (s *SizeAction) process(*control) bool {
	if !s.active {
		return false
	}
	e := s.e
	n := e.reg.findNode(s.node)
	if n == nil || !n.live {
		s.active = false
		return false
	}
	left := e.mouse.button(MouseButtonLeft)
	if left.down {
		s.apply(n, e.canvas.FromScreen(e.mouse.pos()).Sub(left.pressCanvas))
		return true
	}
	s.active = false
	if n.bounds != s.startBounds {
		e.makeNodeDirty(n, SaveReasonSize|SaveReasonPosition)
		e.events.push(Event{Type: EventNodeResized, Node: n.id, Position: n.position})
	}
	return false
}

func (s *SizeAction) cancel() {
	if !s.active {
		return
	}
	s.active = false
	if n := s.e.reg.findNode(s.node); n != nil {
		s.restore(n)
	}
}

func (s *SizeAction) restore(n *Node) {
	n.contentBounds = n.contentBounds.Translate(s.startPos.Sub(n.position))
	n.position = s.startPos
	n.bounds = s.startBounds
	n.groupBounds = s.startGroup
	n.groupSize = s.startGroup.Size()
}

// apply moves the grabbed edges of the start interior by offset, snapping to
// the grid and keeping the minimum size. The frame around the interior keeps
// its thickness.
func (s *SizeAction) apply(n *Node, offset Vec2) {
	e := s.e
	g := s.startGroup
	lo, hi := g.Min(), g.Max()
	minW := max(e.opts.MinGroupWidth, n.contentBounds.Width)
	minH := e.opts.MinGroupHeight

	if s.region&regionLeft != 0 {
		lo.X = min(e.alignToGrid(lo.X+offset.X), hi.X-minW)
	}
	if s.region&regionRight != 0 {
		hi.X = max(e.alignToGrid(hi.X+offset.X), lo.X+minW)
	}
	if s.region&regionTop != 0 {
		lo.Y = min(e.alignToGrid(lo.Y+offset.Y), hi.Y-minH)
	}
	if s.region&regionBottom != 0 {
		hi.Y = max(e.alignToGrid(hi.Y+offset.Y), lo.Y+minH)
	}

	group := RectFromPoints(lo, hi)
	padLo := g.Min().Sub(s.startBounds.Min())
	padHi := s.startBounds.Max().Sub(g.Max())
	bounds := RectFromPoints(group.Min().Sub(padLo), group.Max().Add(padHi))

	pos := s.startPos.Add(bounds.Min().Sub(s.startBounds.Min()))
	n.contentBounds = n.contentBounds.Translate(pos.Sub(n.position))
	n.position = pos
	n.bounds = bounds
	n.groupBounds = group
	n.groupSize = group.Size()
	n.hasGroupSize = true
}
