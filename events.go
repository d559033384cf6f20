package nodeeditor

// EventType identifies a kind of editor event.
type EventType uint8

const (
	EventSelectionChanged   EventType = iota // selection set differs from the previous frame
	EventNodesMoved                          // a drag committed with non-zero movement
	EventNodeResized                         // a group resize committed with a new size
	EventContextMenu                         // a context menu was requested
	EventShortcut                            // a shortcut handshake started
	EventNodeDoubleClicked                   // a node was double-clicked
	EventPinDoubleClicked                    // a pin was double-clicked
	EventLinkDoubleClicked                   // a link was double-clicked
	EventBackgroundClicked                   // the background was clicked
	EventBackgroundDoubleClicked             // the background was double-clicked
	EventNodeDeleted                         // a node stopped being submitted
	EventLinkDeleted                         // a link stopped being submitted or was pruned
	EventSettingsSaved                       // settings were flushed to the store
)

var eventTypeNames = [...]string{
	EventSelectionChanged:        "selection-changed",
	EventNodesMoved:              "nodes-moved",
	EventNodeResized:             "node-resized",
	EventContextMenu:             "context-menu",
	EventShortcut:                "shortcut",
	EventNodeDoubleClicked:       "node-double-clicked",
	EventPinDoubleClicked:        "pin-double-clicked",
	EventLinkDoubleClicked:       "link-double-clicked",
	EventBackgroundClicked:       "background-clicked",
	EventBackgroundDoubleClicked: "background-double-clicked",
	EventNodeDeleted:             "node-deleted",
	EventLinkDeleted:             "link-deleted",
	EventSettingsSaved:           "settings-saved",
}

func (t EventType) String() string {
	if int(t) < len(eventTypeNames) {
		return eventTypeNames[t]
	}
	return "unknown"
}

// EventSink is the interface for optional event forwarding, such as an ECS
// bridge. Events are emitted at the end of the frame that produced them.
type EventSink interface {
	EmitEvent(event Event)
}

// Event carries editor notifications for an EventSink. Only the fields that
// apply to Type are set.
type Event struct {
	Type  EventType
	Node  NodeID
	Pin   PinID
	Link  LinkID
	Nodes []NodeID
	Links []LinkID
	// Canvas position of the pointer when the event fired.
	Position Vec2
	// Menu is the context menu kind (valid for EventContextMenu).
	Menu ContextMenuKind
	// Shortcut is the requested command (valid for EventShortcut).
	Shortcut ShortcutKind
	// Reason is the save reason (valid for EventSettingsSaved).
	Reason SaveReasonFlags
}

// eventQueue buffers events produced during a frame.
type eventQueue struct {
	sink    EventSink
	pending []Event
}

func (q *eventQueue) push(e Event) {
	if q.sink == nil {
		return
	}
	q.pending = append(q.pending, e)
}

func (q *eventQueue) flush() {
	if q.sink == nil {
		q.pending = q.pending[:0]
		return
	}
	for _, e := range q.pending {
		q.sink.EmitEvent(e)
	}
	q.pending = q.pending[:0]
}
