// Package ecs provides ECS adapters for nodeeditor.
package ecs

import (
	"github.com/phanxgames/nodeeditor"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EditorEventType is the Donburi event type for editor events.
// Subscribe to this in your ECS systems to receive selection, move, resize,
// context-menu, shortcut and deletion notifications.
var EditorEventType = events.NewEventType[nodeeditor.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Editor events are published to EditorEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) nodeeditor.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event nodeeditor.Event) {
	EditorEventType.Publish(s.world, event)
}
