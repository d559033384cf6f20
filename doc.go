// Package nodeeditor is the interaction core of an immediate-mode node graph
// editor for [Ebitengine].
//
// The host owns the graph. Every frame it describes the nodes, pins and links
// it wants shown, and the editor turns pointer and keyboard input into
// selection, dragging, panning, zooming, group resizing and proposals for new
// or deleted links. Proposals are handed back to the host, which decides
// whether to apply them; the editor never changes the graph on its own.
//
// # Frame protocol
//
// Call [Editor.Begin] and [Editor.End] exactly once per frame, from
// ebiten's Update. Everything else goes between them:
//
//	ed, _ := nodeeditor.NewEditor(nodeeditor.Config{SettingsFile: "graph.json"})
//
//	func (g *Game) Update() error {
//		g.ed.Begin(nodeeditor.Vec2{}, nodeeditor.Vec2{X: 800, Y: 600})
//
//		b := g.ed.BeginNode(1)
//		b.Content(nodeeditor.Vec2{X: 120, Y: 24})
//		b.BeginPin(10, nodeeditor.PinKindOutput)
//		b.PinRect(nodeeditor.Rect{X: 110, Y: 4, Width: 10, Height: 16})
//		b.EndPin()
//		b.End()
//
//		g.ed.DoLink(100, 10, 20, nodeeditor.ColorWhite, 2)
//		g.ed.End()
//		return nil
//	}
//
//	func (g *Game) Draw(screen *ebiten.Image) { g.ed.Draw(screen) }
//
// Objects not submitted during a frame stop being live at End: they take no
// part in hit-testing or drawing and are reported by [Editor.DeletedNodes]
// and [Editor.DeletedLinks]. Links whose pins are missing are dropped.
//
// # Handshakes
//
// Link creation and deletion are pull-based. The host polls between
// [Editor.BeginCreate] and [Editor.EndCreate] (or [Editor.BeginDelete] and
// [Editor.EndDelete]) and answers each proposal with accept or reject.
// Context menus and clipboard shortcuts are reported the same way, for
// exactly one frame.
//
// # Interactions
//
// At most one interaction holds input capture at a time. When none does,
// candidates are tried in priority order: context menu, shortcut, link
// creation, deletion, group resize, node drag, selection and navigation.
//
// # Coordinate spaces
//
// [Canvas] converts between screen, client (relative to the editor's
// top-left corner) and canvas space. Node geometry is in canvas space and
// independent of pan and zoom.
//
// # Persistence
//
// Node positions, group sizes, the selection and the view are kept in
// [Settings] and written through a [SettingsStore] when they change and no
// interaction is in progress. [FileStore] writes a JSON file;
// [MemoryStore] is convenient in tests.
//
// # Options
//
// Interaction tunables live in [Options], which can be read from TOML with
// [LoadOptions] and reloaded on change with [OptionsWatcher].
//
// # Testing
//
// [ScriptedInput] is an [InputSource] driven frame by frame, and
// [LoadInputScript] builds one from a JSON step list.
//
// # ECS integration
//
// Set [Config.Events] to receive [Event] values at the end of each frame.
// The ecs sub-module publishes them into a Donburi world.
//
// [Ebitengine]: https://ebitengine.org
package nodeeditor
