package nodeeditor

import (
	"slices"
	"sort"
)

// objectEntry pairs an ID with the object it owns.
type objectEntry[K ~int32, T any] struct {
	id  K
	obj *T
}

// objectTable is an ID-sorted table. Lookups are binary searches; inserts
// shift the tail.
type objectTable[K ~int32, T any] struct {
	entries []objectEntry[K, T]
}

func (t *objectTable[K, T]) search(id K) (int, bool) {
	i := sort.Search(len(t.entries), func(i int) bool { return t.entries[i].id >= id })
	return i, i < len(t.entries) && t.entries[i].id == id
}

func (t *objectTable[K, T]) find(id K) *T {
	if i, ok := t.search(id); ok {
		return t.entries[i].obj
	}
	return nil
}

// getOrCreate returns the object for id, inserting newFn(id) at its sorted
// position when absent.
func (t *objectTable[K, T]) getOrCreate(id K, newFn func(K) *T) (*T, bool) {
	i, ok := t.search(id)
	if ok {
		return t.entries[i].obj, false
	}
	obj := newFn(id)
	t.entries = slices.Insert(t.entries, i, objectEntry[K, T]{id: id, obj: obj})
	return obj, true
}

func (t *objectTable[K, T]) len() int { return len(t.entries) }

// registry owns every node, pin and link the host has ever submitted.
type registry struct {
	nodes objectTable[NodeID, Node]
	pins  objectTable[PinID, Pin]
	links objectTable[LinkID, Link]

	// Objects that stopped being live at the last frame boundary.
	deletedNodes []NodeID
	deletedLinks []LinkID
}

// createNode is get-or-create plus revive.
func (r *registry) createNode(id NodeID) (*Node, bool) {
	n, created := r.nodes.getOrCreate(id, newNode)
	n.live = true
	return n, created
}

func (r *registry) createPin(id PinID) (*Pin, bool) {
	p, created := r.pins.getOrCreate(id, newPin)
	p.live = true
	return p, created
}

func (r *registry) createLink(id LinkID) (*Link, bool) {
	l, created := r.links.getOrCreate(id, newLink)
	l.live = true
	return l, created
}

func (r *registry) findNode(id NodeID) *Node { return r.nodes.find(id) }
func (r *registry) findPin(id PinID) *Pin    { return r.pins.find(id) }
func (r *registry) findLink(id LinkID) *Link { return r.links.find(id) }

// findObject resolves a kind-tagged ID.
func (r *registry) findObject(kind ObjectKind, id int32) Object {
	switch kind {
	case ObjectKindNode:
		if n := r.findNode(NodeID(id)); n != nil {
			return n
		}
	case ObjectKindPin:
		if p := r.findPin(PinID(id)); p != nil {
			return p
		}
	case ObjectKindLink:
		if l := r.findLink(LinkID(id)); l != nil {
			return l
		}
	}
	return nil
}

// reset marks every object not-live at the start of a frame.
func (r *registry) reset() {
	for _, e := range r.nodes.entries {
		e.obj.live = false
		e.obj.pins = e.obj.pins[:0]
		e.obj.lastPin = 0
	}
	for _, e := range r.pins.entries {
		e.obj.live = false
		e.obj.hadConnection = e.obj.hasConnection
		e.obj.hasConnection = false
	}
	for _, e := range r.links.entries {
		e.obj.live = false
	}
}

// pruneLinks drops links whose endpoints are missing or not-live from the
// live set and refreshes the curves of the survivors.
func (r *registry) pruneLinks() {
	for _, e := range r.links.entries {
		l := e.obj
		if !l.live {
			continue
		}
		start, end := r.findPin(l.startPin), r.findPin(l.endPin)
		if start == nil || end == nil || !start.live || !end.live {
			l.live = false
			continue
		}
		start.hasConnection = true
		end.hasConnection = true
		l.updateEndpoints(start, end)
	}
}

// collectDeleted records objects that were live last frame but not this one
// and rolls the liveness history forward.
func (r *registry) collectDeleted() {
	r.deletedNodes = r.deletedNodes[:0]
	r.deletedLinks = r.deletedLinks[:0]
	for _, e := range r.nodes.entries {
		if e.obj.wasLive && !e.obj.live {
			r.deletedNodes = append(r.deletedNodes, e.id)
		}
		e.obj.wasLive = e.obj.live
	}
	for _, e := range r.pins.entries {
		p := e.obj
		p.lostConnection = p.hadConnection && !p.hasConnection
		p.wasLive = p.live
	}
	for _, e := range r.links.entries {
		if e.obj.wasLive && !e.obj.live {
			r.deletedLinks = append(r.deletedLinks, e.id)
		}
		e.obj.wasLive = e.obj.live
	}
}

// nodesByZ returns live nodes topmost first: plain nodes above groups, then
// by descending z position.
func (r *registry) nodesByZ() []*Node {
	var out []*Node
	for _, e := range r.nodes.entries {
		if e.obj.live {
			out = append(out, e.obj)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.IsGroup() != b.IsGroup() {
			return !a.IsGroup()
		}
		return a.zPosition > b.zPosition
	})
	return out
}

// findNodeAt returns the topmost live node containing p.
func (r *registry) findNodeAt(p Vec2) *Node {
	for _, n := range r.nodesByZ() {
		if n.testHit(p, 0) {
			return n
		}
	}
	return nil
}

// findNodesInRect returns live nodes touching (or fully inside, when
// allowIntersect is false) rect in ascending ID order.
func (r *registry) findNodesInRect(rect Rect, allowIntersect, includeGroups bool) []*Node {
	var out []*Node
	for _, e := range r.nodes.entries {
		n := e.obj
		if !includeGroups && n.IsGroup() {
			continue
		}
		if n.testHitRect(rect, allowIntersect) {
			out = append(out, n)
		}
	}
	return out
}

// findLinksInRect returns live links crossing rect in ascending ID order.
func (r *registry) findLinksInRect(rect Rect, allowIntersect bool) []*Link {
	var out []*Link
	for _, e := range r.links.entries {
		if e.obj.testHitRect(rect, allowIntersect) {
			out = append(out, e.obj)
		}
	}
	return out
}

// findLinkAt returns the live link whose curve passes closest to p within
// its thickness plus extraThickness. Equal distances resolve to the lower ID.
func (r *registry) findLinkAt(p Vec2, extraThickness float64) *Link {
	var best *Link
	bestDist := 0.0
	for _, e := range r.links.entries {
		l := e.obj
		if !l.testHit(p, extraThickness) {
			continue
		}
		if d := l.distance(p); best == nil || d < bestDist {
			best, bestDist = l, d
		}
	}
	return best
}

// linksOfNode returns live links attached to any pin of node.
func (r *registry) linksOfNode(id NodeID) []*Link {
	var out []*Link
	for _, e := range r.links.entries {
		l := e.obj
		if !l.live {
			continue
		}
		sp, ep := r.findPin(l.startPin), r.findPin(l.endPin)
		if (sp != nil && sp.node == id) || (ep != nil && ep.node == id) {
			out = append(out, l)
		}
	}
	return out
}

// contentBounds unions the bounds of all live nodes.
func (r *registry) contentBounds() (Rect, bool) {
	acc := boundsAccumulator{}
	for _, e := range r.nodes.entries {
		if e.obj.live {
			acc.add(e.obj.bounds)
		}
	}
	return acc.rect, acc.ok
}

// groupedNodes returns live nodes whose bounds lie inside the group interior.
func (r *registry) groupedNodes(group *Node) []*Node {
	if !group.IsGroup() {
		return nil
	}
	var out []*Node
	for _, e := range r.nodes.entries {
		n := e.obj
		if n == group || !n.live {
			continue
		}
		if group.groupBounds.ContainsRect(n.bounds) {
			out = append(out, n)
		}
	}
	return out
}
