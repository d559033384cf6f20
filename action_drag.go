package nodeeditor

// DragAction moves nodes. Dragging a selected node moves the whole selection;
// dragging a group also moves the nodes inside it unless Shift is held.
type DragAction struct {
	actionBase

	active  bool
	primary *Node
	objects []draggable
}

func newDragAction(e *Editor) *DragAction { return &DragAction{actionBase: actionBase{e}} }

func (d *DragAction) name() string { return "drag" }

func (d *DragAction) isDragging() bool { return d.active }

func (d *DragAction) accept(c *control) acceptResult {
	e := d.e
	if c.activePin != nil || !e.mouse.isDragging(MouseButtonLeft) {
		return acceptFalse
	}
	primary, ok := c.activeObject.(*Node)
	if !ok {
		return acceptFalse
	}

	d.objects = append(d.objects[:0], primary)
	if e.sel.contains(primary) {
		for _, o := range e.sel.objects {
			if od, ok := o.(draggable); ok && !d.has(od) {
				d.objects = append(d.objects, od)
			}
		}
	}
	if !e.mouse.mods().Has(ModShift) {
		for _, o := range d.objects {
			if n, ok := o.(*Node); ok && n.IsGroup() {
				for _, child := range e.reg.groupedNodes(n) {
					if !d.has(child) {
						d.objects = append(d.objects, child)
					}
				}
			}
		}
	}

	for _, o := range d.objects {
		o.acceptDrag()
	}
	d.primary = primary
	d.active = true
	return acceptTrue
}

func (d *DragAction) has(obj Object) bool {
	for _, o := range d.objects {
		if sameObject(o, obj) {
			return true
		}
	}
	return false
}

func (d *DragAction) process(*control) bool {
	if !d.active {
		return false
	}
	e := d.e
	left := e.mouse.button(MouseButtonLeft)
	if left.down {
		offset := e.canvas.FromScreen(e.mouse.pos()).Sub(left.pressCanvas)
		if !e.mouse.mods().Has(ModAlt) {
			start := d.primary.dragStart
			offset = e.alignPointToGrid(start.Add(offset)).Sub(start)
		}
		for _, o := range d.objects {
			o.updateDrag(offset)
		}
		return true
	}

	var moved []NodeID
	for _, o := range d.objects {
		if o.endDrag() {
			if n, ok := o.(*Node); ok {
				moved = append(moved, n.id)
				e.makeNodeDirty(n, SaveReasonPosition)
			}
		}
	}
	if len(moved) > 0 {
		e.events.push(Event{Type: EventNodesMoved, Node: d.primary.id, Nodes: moved, Position: d.primary.position})
	}
	d.reset()
	return false
}

func (d *DragAction) cancel() {
	if !d.active {
		return
	}
	for _, o := range d.objects {
		o.cancelDrag()
	}
	d.reset()
}

func (d *DragAction) reset() {
	d.active = false
	d.primary = nil
	clear(d.objects)
	d.objects = d.objects[:0]
}
