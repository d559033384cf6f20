package nodeeditor

import "math"

// gridSpacing returns the canvas spacing of background grid lines.
func (e *Editor) gridSpacing() float64 {
	if e.opts.GridSize > 0 {
		return e.opts.GridSize * 4
	}
	return 64
}

// draw emits the editor's own commands for the frame and orders the list.
func (e *Editor) draw() {
	dl := e.drawList
	st := e.style
	dl.screen = false
	dl.node = nil

	vis := e.canvas.VisibleBounds()
	dl.setLayer(layerBackground)
	dl.AddRectFilled(vis, st.Color(StyleColorBg), 0)
	e.drawGrid(vis)

	order := e.reg.nodesByZ()
	ids := make([]NodeID, 0, len(order))
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if !n.bounds.Intersects(vis) {
			continue
		}
		ids = append(ids, n.id)
		e.drawNode(n)
	}

	dl.setLayer(layerLinks)
	for _, ent := range e.reg.links.entries {
		l := ent.obj
		if l.live && l.Bounds().Intersects(vis) {
			e.drawLink(l)
		}
	}

	dl.setLayer(layerForeground)
	e.drawCandidateLink()
	e.drawSelectionRect()

	if e.opts.ShowMetricsOverlay {
		dl.setLayer(layerOverlay)
		dl.AddText(e.canvas.WindowScreenPos().Add(Vec2{4, 4}), e.MetricsText(), ColorWhite)
	}
	dl.setLayer(layerForeground)

	dl.prune(func(id NodeID) bool { return e.reg.findNode(id) != nil })
	dl.flatten(ids, e.opts.LinksOnTop)
}

func (e *Editor) drawGrid(vis Rect) {
	step := e.gridSpacing()
	if step*e.canvas.Zoom().X < 8 {
		return
	}
	c := e.style.Color(StyleColorGrid)
	for x := math.Floor(vis.X/step) * step; x <= vis.X+vis.Width; x += step {
		e.drawList.AddLine(Vec2{x, vis.Y}, Vec2{x, vis.Y + vis.Height}, c, 1)
	}
	for y := math.Floor(vis.Y/step) * step; y <= vis.Y+vis.Height; y += step {
		e.drawList.AddLine(Vec2{vis.X, y}, Vec2{vis.X + vis.Width, y}, c, 1)
	}
}

func (e *Editor) drawNode(n *Node) {
	dl := e.drawList
	st := e.style
	dl.setNode(n.id)

	dl.setLayer(layerNodeBg)
	if n.IsGroup() {
		dl.AddRectFilled(n.bounds, st.Color(StyleColorGroupBg), st.GroupRounding)
		dl.AddRect(n.groupBounds, st.Color(StyleColorGroupBorder), st.GroupRounding, st.GroupBorderWidth)
	} else {
		dl.AddRectFilled(n.bounds, st.Color(StyleColorNodeBg), st.NodeRounding)
	}

	dl.setLayer(layerNodeFg)
	rounding := st.NodeRounding
	if n.IsGroup() {
		rounding = st.GroupRounding
	}
	hovered := sameObject(e.control.hotObject, n) || e.selectAct.isCandidate(n) ||
		(n.IsGroup() && (e.sizeAct.hover != 0 || e.sizeAct.active) && e.resizing(n))
	switch {
	case e.sel.contains(n):
		dl.AddRect(n.bounds, st.Color(StyleColorSelNodeBorder), rounding, st.SelectedNodeBorderWidth)
	case hovered:
		dl.AddRect(n.bounds, st.Color(StyleColorHovNodeBorder), rounding, st.HoveredNodeBorderWidth)
	case st.NodeBorderWidth > 0:
		dl.AddRect(n.bounds, st.Color(StyleColorNodeBorder), rounding, st.NodeBorderWidth)
	}

	if hot := e.control.hotPin; hot != nil && hot.node == n.id {
		dl.AddRectFilled(hot.bounds, st.Color(StyleColorPinRect), st.PinRounding)
		if st.PinBorderWidth > 0 {
			dl.AddRect(hot.bounds, st.Color(StyleColorPinRectBorder), st.PinRounding, st.PinBorderWidth)
		}
	}
	dl.node = nil
}

// resizing reports whether n is the group the size action is on or over.
func (e *Editor) resizing(n *Node) bool {
	if e.sizeAct.active {
		return e.sizeAct.node == n.id
	}
	return e.control.hotNode == n
}

func (e *Editor) drawLink(l *Link) {
	dl := e.drawList
	st := e.style
	switch {
	case e.sel.contains(l):
		dl.AddBezier(l.curve, st.Color(StyleColorSelLinkBorder), l.thickness+4)
	case sameObject(e.control.hotObject, l) || e.selectAct.isCandidate(l):
		dl.AddBezier(l.curve, st.Color(StyleColorHovLinkBorder), l.thickness+4)
	}
	dl.AddBezier(l.curve, l.color, l.thickness)

	if fa := e.flows.Active(l.id); fa != nil {
		pts, alpha := fa.markers(l)
		c := st.Color(StyleColorFlowMarker).WithAlpha(alpha)
		for _, p := range pts {
			dl.AddCircleFilled(p, 2+l.thickness, c)
		}
	}
}

func (e *Editor) drawCandidateLink() {
	from, to, ok := e.createAct.candidate()
	if !ok {
		return
	}
	pin := e.reg.findPin(from)
	if pin == nil {
		return
	}
	start := pin.closestPoint(to)
	endDir := pin.dir.Neg()
	if hot := e.control.hotPin; hot != nil && hot.id != from && e.createAct.decision == userAccepted {
		endDir = hot.dir
	}
	curve := linkCurve(start, to, pin.dir, endDir, pin.strength, pin.strength)
	dl := e.drawList
	dl.AddBezier(curve, e.createAct.linkColor, e.createAct.linkThickness)
}

func (e *Editor) drawSelectionRect() {
	r, alpha, linkMode, ok := e.selectAct.rect()
	if !ok || alpha <= 0 {
		return
	}
	fill, border := StyleColorNodeSelRect, StyleColorNodeSelRectBorder
	if linkMode {
		fill, border = StyleColorLinkSelRect, StyleColorLinkSelRectBorder
	}
	dl := e.drawList
	dl.AddRectFilled(r, e.style.Color(fill).WithAlpha(alpha), 0)
	dl.AddRect(r, e.style.Color(border).WithAlpha(alpha), 0, 1)
}
