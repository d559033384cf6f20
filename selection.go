package nodeeditor

// selection is an insertion-ordered set of objects. id advances on every
// mutation so observers can detect change without comparing contents.
type selection struct {
	objects []Object
	id      uint64
}

func (s *selection) indexOf(obj Object) int {
	for i, o := range s.objects {
		if sameObject(o, obj) {
			return i
		}
	}
	return -1
}

func (s *selection) contains(obj Object) bool { return s.indexOf(obj) >= 0 }

func (s *selection) len() int { return len(s.objects) }

func (s *selection) bump() { s.id++ }

// add appends obj when absent. Returns false when nothing changed.
func (s *selection) add(obj Object) bool {
	if obj == nil || s.contains(obj) {
		return false
	}
	s.objects = append(s.objects, obj)
	s.bump()
	return true
}

// remove drops obj, keeping the order of the others.
func (s *selection) remove(obj Object) bool {
	i := s.indexOf(obj)
	if i < 0 {
		return false
	}
	s.objects = append(s.objects[:i], s.objects[i+1:]...)
	s.bump()
	return true
}

// toggle flips membership and always advances the id.
func (s *selection) toggle(obj Object) {
	if obj == nil {
		return
	}
	if i := s.indexOf(obj); i >= 0 {
		s.objects = append(s.objects[:i], s.objects[i+1:]...)
	} else {
		s.objects = append(s.objects, obj)
	}
	s.bump()
}

func (s *selection) clear() bool {
	if len(s.objects) == 0 {
		return false
	}
	s.objects = s.objects[:0]
	s.bump()
	return true
}

// setExclusive makes obj the only selected object.
func (s *selection) setExclusive(obj Object) bool {
	if len(s.objects) == 1 && sameObject(s.objects[0], obj) {
		return false
	}
	s.objects = s.objects[:0]
	if obj != nil {
		s.objects = append(s.objects, obj)
	}
	s.bump()
	return true
}

// replace swaps in a new set, advancing the id only when it differs.
func (s *selection) replace(objs []Object) bool {
	if equalObjects(s.objects, objs) {
		return false
	}
	s.objects = append(s.objects[:0], objs...)
	s.bump()
	return true
}

// snapshot returns a copy of the current objects.
func (s *selection) snapshot() []Object {
	return append([]Object(nil), s.objects...)
}

// pruneDead removes objects that are no longer live.
func (s *selection) pruneDead() bool {
	kept := s.objects[:0]
	for _, o := range s.objects {
		if o.IsLive() {
			kept = append(kept, o)
		}
	}
	changed := len(kept) != len(s.objects)
	for i := len(kept); i < len(s.objects); i++ {
		s.objects[i] = nil
	}
	s.objects = kept
	if changed {
		s.bump()
	}
	return changed
}

func (s *selection) nodes() []NodeID {
	var out []NodeID
	for _, o := range s.objects {
		if n, ok := o.(*Node); ok {
			out = append(out, n.id)
		}
	}
	return out
}

func (s *selection) links() []LinkID {
	var out []LinkID
	for _, o := range s.objects {
		if l, ok := o.(*Link); ok {
			out = append(out, l.id)
		}
	}
	return out
}

// bounds unions the bounds of the selected objects.
func (s *selection) bounds() (Rect, bool) {
	acc := boundsAccumulator{}
	for _, o := range s.objects {
		acc.add(o.Bounds())
	}
	return acc.rect, acc.ok
}

func equalObjects(a, b []Object) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !sameObject(a[i], b[i]) {
			return false
		}
	}
	return true
}
