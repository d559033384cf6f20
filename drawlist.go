package nodeeditor

// DrawCmdKind identifies a draw primitive.
type DrawCmdKind uint8

const (
	DrawRectFilled DrawCmdKind = iota
	DrawRectStroke
	DrawLine
	DrawBezier
	DrawCircleFilled
	DrawText
)

// DrawCmd is one primitive. Coordinates are canvas space unless Screen is
// set. Only the fields the kind uses are meaningful.
type DrawCmd struct {
	Kind      DrawCmdKind
	Rect      Rect
	Rounding  float64
	Curve     CubicBezier // DrawLine uses P0 and P3
	Center    Vec2
	Radius    float64
	Thickness float64
	Color     Color
	Text      string
	Screen    bool
}

// nodeLayers holds the three paint layers of one node.
type nodeLayers struct {
	bg, content, fg []DrawCmd
}

func (l *nodeLayers) reset() {
	l.bg = l.bg[:0]
	l.content = l.content[:0]
	l.fg = l.fg[:0]
}

// drawLayer selects where new commands go.
type drawLayer uint8

const (
	layerBackground drawLayer = iota
	layerLinks
	layerForeground
	layerOverlay
	layerNodeBg
	layerNodeContent
	layerNodeFg
)

// DrawList collects the frame's draw commands in paint layers: background,
// then per node background, content and foreground, links below or above the
// nodes, canvas foreground and finally the screen-space overlay. The host
// appends to it while building node content; the editor adds everything else
// at End.
type DrawList struct {
	background []DrawCmd
	links      []DrawCmd
	foreground []DrawCmd
	overlay    []DrawCmd
	nodes      map[NodeID]*nodeLayers

	layer  drawLayer
	node   *nodeLayers
	screen bool

	commands []DrawCmd
}

func newDrawList() *DrawList {
	return &DrawList{nodes: make(map[NodeID]*nodeLayers), layer: layerForeground}
}

func (d *DrawList) reset() {
	d.background = d.background[:0]
	d.links = d.links[:0]
	d.foreground = d.foreground[:0]
	d.overlay = d.overlay[:0]
	for _, l := range d.nodes {
		l.reset()
	}
	d.layer = layerForeground
	d.node = nil
	d.screen = false
}

// setLayer routes subsequent commands. Node layers use the node set by
// setNode.
func (d *DrawList) setLayer(l drawLayer) { d.layer = l }

func (d *DrawList) setNode(id NodeID) {
	l, ok := d.nodes[id]
	if !ok {
		l = &nodeLayers{}
		d.nodes[id] = l
	}
	d.node = l
}

func (d *DrawList) target() *[]DrawCmd {
	if d.screen {
		return &d.overlay
	}
	switch d.layer {
	case layerBackground:
		return &d.background
	case layerLinks:
		return &d.links
	case layerOverlay:
		return &d.overlay
	case layerNodeBg, layerNodeContent, layerNodeFg:
		if d.node == nil {
			return &d.foreground
		}
		switch d.layer {
		case layerNodeBg:
			return &d.node.bg
		case layerNodeFg:
			return &d.node.fg
		}
		return &d.node.content
	}
	return &d.foreground
}

func (d *DrawList) add(cmd DrawCmd) {
	cmd.Screen = cmd.Screen || d.screen || d.layer == layerOverlay
	t := d.target()
	*t = append(*t, cmd)
}

// AddRectFilled appends a filled rectangle.
func (d *DrawList) AddRectFilled(r Rect, c Color, rounding float64) {
	d.add(DrawCmd{Kind: DrawRectFilled, Rect: r, Color: c, Rounding: rounding})
}

// AddRect appends a rectangle outline.
func (d *DrawList) AddRect(r Rect, c Color, rounding, thickness float64) {
	d.add(DrawCmd{Kind: DrawRectStroke, Rect: r, Color: c, Rounding: rounding, Thickness: thickness})
}

// AddLine appends a straight segment.
func (d *DrawList) AddLine(a, b Vec2, c Color, thickness float64) {
	d.add(DrawCmd{Kind: DrawLine, Curve: CubicBezier{P0: a, P1: a, P2: b, P3: b}, Color: c, Thickness: thickness})
}

// AddBezier appends a cubic curve.
func (d *DrawList) AddBezier(b CubicBezier, c Color, thickness float64) {
	d.add(DrawCmd{Kind: DrawBezier, Curve: b, Color: c, Thickness: thickness})
}

// AddCircleFilled appends a filled circle.
func (d *DrawList) AddCircleFilled(center Vec2, radius float64, c Color) {
	d.add(DrawCmd{Kind: DrawCircleFilled, Center: center, Radius: radius, Color: c})
}

// AddText appends a text label with its top-left corner at p.
func (d *DrawList) AddText(p Vec2, text string, c Color) {
	d.add(DrawCmd{Kind: DrawText, Center: p, Text: text, Color: c})
}

// flatten builds the ordered command list. order lists the nodes bottom to
// top.
func (d *DrawList) flatten(order []NodeID, linksOnTop bool) {
	d.commands = append(d.commands[:0], d.background...)
	if !linksOnTop {
		d.commands = append(d.commands, d.links...)
	}
	for _, id := range order {
		if l, ok := d.nodes[id]; ok {
			d.commands = append(d.commands, l.bg...)
			d.commands = append(d.commands, l.content...)
			d.commands = append(d.commands, l.fg...)
		}
	}
	if linksOnTop {
		d.commands = append(d.commands, d.links...)
	}
	d.commands = append(d.commands, d.foreground...)
	d.commands = append(d.commands, d.overlay...)
}

// prune forgets layers of nodes that no longer exist.
func (d *DrawList) prune(keep func(NodeID) bool) {
	for id := range d.nodes {
		if !keep(id) {
			delete(d.nodes, id)
		}
	}
}

// Commands returns the commands of the last finished frame in paint order.
// The slice is reused by the next frame.
func (d *DrawList) Commands() []DrawCmd { return d.commands }

// Len returns the number of commands of the last finished frame.
func (d *DrawList) Len() int { return len(d.commands) }
