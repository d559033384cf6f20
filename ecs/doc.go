// Package ecs provides ECS adapters for nodeeditor's event system.
//
// The primary adapter is [NewDonburiSink], which bridges editor events
// (selection changes, committed moves and resizes, context menus, shortcuts,
// deletions) into a [Donburi] world as typed events. Subscribe to
// [EditorEventType] in your ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	ed, err := nodeeditor.NewEditor(nodeeditor.Config{Events: sink})
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
