package nodeeditor

import (
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// Config configures a new Editor. Zero fields take defaults.
type Config struct {
	// SettingsFile is used through a FileStore when Store is nil.
	SettingsFile string
	Store        SettingsStore
	// Input defaults to EbitenInput.
	Input InputSource
	// Options defaults to DefaultOptions when ZoomLevels is empty.
	Options Options
	Style   *Style
	Logger  *zap.Logger
	Events  EventSink
	Debug   bool
}

// Editor is one node editor session. All methods must be called from the
// goroutine that runs the frame loop, and all builder, handshake and query
// calls must happen between Begin and End.
type Editor struct {
	logger *zap.Logger
	debug  bool

	input    InputSource
	opts     Options
	style    *Style
	store    SettingsStore
	settings *Settings

	reg     registry
	sel     selection
	mouse   mouseTracker
	press   pressTarget
	control control

	view      View
	canvas    Canvas
	screenPos Vec2
	size      Vec2

	animations animationController
	flows      *FlowAnimationController

	navigateAct *NavigateAction
	sizeAct     *SizeAction
	dragAct     *DragAction
	selectAct   *SelectAction
	createAct   *CreateItemAction
	deleteAct   *DeleteItemsAction
	contextAct  *ContextMenuAction
	shortcutAct *ShortcutAction
	// actions in arbitration priority order.
	actions []action
	current action

	builder  NodeBuilder
	hints    HintBuilder
	drawList *DrawList
	events   eventQueue

	inFrame          bool
	firstFrame       bool
	suspend          int
	zCounter         int
	navigate         navigateRequest
	lastSelectionID  uint64
	selectionChanged bool
	saveFailed       bool

	stats frameStats
}

// navigateRequest is a navigation the host asked for during the frame. It
// runs at End, once every node has been submitted.
type navigateRequest struct {
	pending  bool
	target   navigateTarget
	bounds   Rect
	zoomIn   bool
	duration float64
}

type navigateTarget uint8

const (
	navigateContent navigateTarget = iota
	navigateSelection
	navigateBounds
)

// NewEditor creates an editor and loads its persisted settings. Missing or
// corrupt settings are logged and replaced by defaults.
func NewEditor(cfg Config) (*Editor, error) {
	opts := cfg.Options
	if len(opts.ZoomLevels) == 0 {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("new editor: %w", err)
	}

	e := &Editor{
		logger:     cfg.Logger,
		debug:      cfg.Debug,
		input:      cfg.Input,
		opts:       opts,
		style:      cfg.Style,
		store:      cfg.Store,
		firstFrame: true,
		drawList:   newDrawList(),
		events:     eventQueue{sink: cfg.Events},
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.input == nil {
		e.input = EbitenInput{}
	}
	if e.style == nil {
		e.style = DefaultStyle()
	}
	if e.store == nil && cfg.SettingsFile != "" {
		e.store = &FileStore{Path: cfg.SettingsFile}
	}
	e.builder.e = e
	e.hints.e = e
	e.flows = newFlowAnimationController(&e.animations)

	e.navigateAct = newNavigateAction(e)
	e.sizeAct = newSizeAction(e)
	e.dragAct = newDragAction(e)
	e.selectAct = newSelectAction(e)
	e.createAct = newCreateItemAction(e)
	e.deleteAct = newDeleteItemsAction(e)
	e.contextAct = newContextMenuAction(e)
	e.shortcutAct = newShortcutAction(e)
	e.actions = []action{
		e.contextAct,
		e.shortcutAct,
		e.createAct,
		e.deleteAct,
		e.sizeAct,
		e.dragAct,
		e.selectAct,
		e.navigateAct,
	}

	e.settings = e.loadSettings()
	e.view = e.settings.View
	e.canvas = canvasForView(Vec2{}, Vec2{}, e.view)
	return e, nil
}

func (e *Editor) loadSettings() *Settings {
	if e.store == nil {
		return NewSettings()
	}
	data, err := e.store.Load()
	if err != nil {
		e.logger.Warn("load settings failed, using defaults", zap.Error(err))
		return NewSettings()
	}
	s, err := ParseSettings(data)
	switch {
	case errors.Is(err, ErrNoSettings) && data == "":
		return NewSettings()
	case err != nil:
		e.logger.Info("no usable settings, using defaults", zap.Error(err))
		return NewSettings()
	}
	e.logger.Debug("settings loaded",
		zap.Int("nodes", len(s.Nodes)),
		zap.Int("selection", len(s.Selection)))
	return s
}

// --- Frame lifecycle ---

// Begin starts a frame for an editor occupying the screen rectangle at
// screenPos with the given size. It polls input and advances animations.
func (e *Editor) Begin(screenPos, size Vec2) {
	if e.inFrame {
		e.assertf("Begin called twice without End")
		return
	}
	e.inFrame = true
	e.stats.frame++
	e.screenPos, e.size = screenPos, size

	st := e.input.Poll()
	e.reg.reset()
	e.zCounter = 0
	e.animations.update(st.DeltaTime)

	e.canvas = canvasForView(screenPos, size, e.view)
	e.mouse.update(st, &e.opts, e.canvas.FromScreen)
	e.drawList.reset()
}

// End finishes the frame: it prunes stale objects, runs the interaction
// state machines, emits the draw list and saves dirty settings.
func (e *Editor) End() {
	if !e.inFrame {
		e.assertf("End called without Begin")
		return
	}
	e.checkBalanced()

	var t0 time.Time
	if e.debug {
		t0 = time.Now()
	}

	e.reg.pruneLinks()
	e.sel.pruneDead()
	if e.firstFrame {
		e.restoreSelection()
		e.firstFrame = false
	}

	// focus loss or Escape abandons a drag in progress
	lost := !e.mouse.state.Focused || e.mouse.keyPressed(KeyEscape)
	if lost && e.current != nil && e.current.isDragging() {
		e.cancelCurrent()
		e.mouse.cancel()
		e.press = pressTarget{}
	}

	e.control = e.buildControl(e.current != nil && e.current.isDragging())
	if e.debug {
		e.stats.controlTime = time.Since(t0)
		t0 = time.Now()
	}
	e.reportClicks(&e.control)
	e.runNavigateRequest()
	e.runActions(&e.control)
	if e.current != nil && e.current.isDragging() {
		e.navigateAct.moveOverEdge(e.mouse.state.DeltaTime)
	}
	e.canvas = canvasForView(e.screenPos, e.size, e.view)
	e.trackSelection()
	if e.debug {
		e.stats.actionTime = time.Since(t0)
		t0 = time.Now()
	}

	e.draw()
	if e.debug {
		e.stats.drawTime = time.Since(t0)
	}

	e.reg.collectDeleted()
	e.reportDeleted()
	e.save()

	e.stats.collect(e)
	if e.debug {
		e.LogMetrics()
		e.debugCheckSceneSize()
	}
	e.events.flush()
	e.inFrame = false
}

// checkBalanced reports and repairs protocol state the host left open.
func (e *Editor) checkBalanced() {
	if e.builder.node != nil {
		e.assertf("node %d not ended before End", e.builder.node.id)
		e.builder.abort()
	}
	if e.hints.node != nil {
		e.assertf("hint for node %d not ended before End", e.hints.node.id)
		e.hints.End()
	}
	if e.createAct.inProgress {
		e.assertf("EndCreate not called before End")
		e.createAct.inProgress = false
	}
	if e.deleteAct.inInteraction {
		e.assertf("EndDelete not called before End")
		e.deleteAct.inInteraction = false
	}
	if e.shortcutAct.inInteraction {
		e.assertf("EndShortcut not called before End")
		e.shortcutAct.inInteraction = false
	}
	if e.suspend != 0 {
		e.assertf("%d Suspend calls not resumed before End", e.suspend)
		e.suspend = 0
		e.drawList.screen = false
	}
	if !e.style.balanced() {
		e.assertf("style stack not balanced at End")
	}
}

func (e *Editor) restoreSelection() {
	for _, ref := range e.settings.Selection {
		obj := e.reg.findObject(ref.Kind, ref.ID)
		if obj != nil && obj.IsLive() && obj.isSelectable() {
			e.sel.add(obj)
		}
	}
	e.lastSelectionID = e.sel.id
}

func (e *Editor) trackSelection() {
	e.selectionChanged = e.sel.id != e.lastSelectionID
	if !e.selectionChanged {
		return
	}
	e.lastSelectionID = e.sel.id
	refs := make([]ObjectRef, 0, e.sel.len())
	for _, o := range e.sel.objects {
		refs = append(refs, refOf(o))
	}
	e.settings.Selection = refs
	e.makeDirty(SaveReasonSelection)
	e.events.push(Event{
		Type:  EventSelectionChanged,
		Nodes: e.sel.nodes(),
		Links: e.sel.links(),
	})
}

func (e *Editor) reportClicks(c *control) {
	pos := e.canvas.FromScreen(e.mouse.pos())
	switch o := c.doubleClickedObject.(type) {
	case *Node:
		e.events.push(Event{Type: EventNodeDoubleClicked, Node: o.id, Position: pos})
	case *Pin:
		e.events.push(Event{Type: EventPinDoubleClicked, Pin: o.id, Node: o.node, Position: pos})
	case *Link:
		e.events.push(Event{Type: EventLinkDoubleClicked, Link: o.id, Position: pos})
	}
	if c.backgroundDoubleClicked {
		e.events.push(Event{Type: EventBackgroundDoubleClicked, Position: pos})
	}
	if c.backgroundClicked {
		e.events.push(Event{Type: EventBackgroundClicked, Position: pos})
	}
}

func (e *Editor) reportDeleted() {
	for _, id := range e.reg.deletedNodes {
		e.events.push(Event{Type: EventNodeDeleted, Node: id})
	}
	for _, id := range e.reg.deletedLinks {
		e.events.push(Event{Type: EventLinkDeleted, Link: id})
	}
}

func (e *Editor) runNavigateRequest() {
	req := e.navigate
	if !req.pending {
		return
	}
	e.navigate = navigateRequest{}
	var (
		bounds Rect
		ok     bool
	)
	switch req.target {
	case navigateContent:
		bounds, ok = e.reg.contentBounds()
	case navigateSelection:
		bounds, ok = e.sel.bounds()
	case navigateBounds:
		bounds, ok = req.bounds, true
	}
	if ok {
		e.navigateAct.navigateTo(bounds, req.zoomIn, req.duration)
	}
}

// --- Persistence ---

func (e *Editor) makeDirty(reason SaveReasonFlags) {
	e.settings.makeDirty(reason)
}

func (e *Editor) makeNodeDirty(n *Node, reason SaveReasonFlags) {
	ns := e.settings.AddNode(n.id)
	ns.dirty = true
	ns.reason |= reason
	e.settings.makeDirty(reason)
}

// syncSettings copies the live layout into the settings model.
func (e *Editor) syncSettings() {
	for _, ent := range e.reg.nodes.entries {
		n := ent.obj
		if !n.live {
			continue
		}
		ns := e.settings.AddNode(n.id)
		ns.Location = n.position
		ns.Size = n.bounds.Size()
		ns.GroupSize = nil
		if n.IsGroup() {
			gs := n.groupSize
			ns.GroupSize = &gs
		}
		ns.WasUsed = true
	}
	e.settings.View = e.navigateAct.targetView()
}

// save flushes dirty settings unless an interaction is in progress. A failed
// save keeps the settings dirty and is retried next frame.
func (e *Editor) save() {
	dirty, reason := e.settings.IsDirty()
	if !dirty || e.current != nil {
		return
	}
	e.syncSettings()
	if e.store == nil {
		e.settings.clearDirty()
		return
	}
	if s, ok := e.store.(SaveSession); ok {
		s.BeginSave()
		defer s.EndSave()
	}

	data, err := e.settings.Serialize()
	if err != nil {
		e.logger.Error("serialize settings", zap.Error(err))
		e.settings.clearDirty()
		return
	}
	ok := e.store.Save(data, reason)
	if ns, isNodeStore := e.store.(NodeSettingsStore); isNodeStore && ok {
		for i := range e.settings.Nodes {
			n := &e.settings.Nodes[i]
			if !n.dirty {
				continue
			}
			nd, err := n.Serialize()
			if err != nil {
				e.logger.Error("serialize node settings", zap.Error(err))
				continue
			}
			ok = ns.SaveNode(n.ID, nd, n.reason) && ok
		}
	}
	if !ok {
		if !e.saveFailed {
			e.logger.Warn("settings save failed, will retry", zap.Uint8("reason", uint8(reason)))
		}
		e.saveFailed = true
		return
	}
	e.saveFailed = false
	e.settings.clearDirty()
	e.events.push(Event{Type: EventSettingsSaved, Reason: reason})
}

// restoreNode applies persisted layout to n, preferring the node-scoped
// store when there is one.
func (e *Editor) restoreNode(n *Node) {
	ns := e.settings.FindNode(n.id)
	if s, ok := e.store.(NodeSettingsStore); ok {
		if data, found := s.LoadNode(n.id); found {
			loaded, err := ParseNodeSettings(data)
			if err != nil {
				e.logger.Info("ignoring node settings", zap.Int32("node", int32(n.id)), zap.Error(err))
			} else {
				ns = e.settings.AddNode(n.id)
				ns.Location = loaded.Location
				ns.Size = loaded.Size
				ns.GroupSize = loaded.GroupSize
			}
		}
	}
	if ns == nil {
		return
	}
	if !n.hostPosition {
		n.position = ns.Location
	}
	if ns.GroupSize != nil && !n.hostGroupSize {
		n.groupSize = *ns.GroupSize
		n.hasGroupSize = true
	}
}

// MarkDirty schedules a save with the user reason.
func (e *Editor) MarkDirty() { e.makeDirty(SaveReasonUser) }

// Settings returns the persisted model. It is synced with the live layout on
// every save.
func (e *Editor) Settings() *Settings { return e.settings }

// --- Grid ---

func (e *Editor) alignToGrid(v float64) float64 {
	if g := e.opts.GridSize; g > 0 {
		return math.Round(v/g) * g
	}
	return v
}

func (e *Editor) alignPointToGrid(p Vec2) Vec2 {
	return Vec2{e.alignToGrid(p.X), e.alignToGrid(p.Y)}
}

// --- Configuration ---

// SetOptions replaces the tunables. Invalid options are rejected.
func (e *Editor) SetOptions(o Options) error {
	if err := o.Validate(); err != nil {
		return err
	}
	e.opts = o
	e.logger.Debug("options applied")
	return nil
}

// Options returns the current tunables.
func (e *Editor) Options() Options { return e.opts }

// Style returns the editor style.
func (e *Editor) Style() *Style { return e.style }

// SetDebugMode switches per-frame metrics logging and panicking assertions.
func (e *Editor) SetDebugMode(on bool) { e.debug = on }

// DebugMode reports whether debug mode is on.
func (e *Editor) DebugMode() bool { return e.debug }

// DrawList returns the list hosts add node content to during the frame and
// read the finished frame from after End.
func (e *Editor) DrawList() *DrawList { return e.drawList }

// View returns the current scroll and zoom.
func (e *Editor) View() View { return e.view }

// SetView jumps to v, stopping any navigation animation.
func (e *Editor) SetView(v View) {
	if v.Zoom <= 0 {
		v.Zoom = 1
	}
	e.navigateAct.anim.Stop()
	e.view = v
	e.canvas = canvasForView(e.screenPos, e.size, e.view)
	e.makeDirty(SaveReasonNavigation)
}

// Canvas returns the coordinate transform of the current frame.
func (e *Editor) Canvas() Canvas { return e.canvas }

// CurrentAction names the interaction holding input capture, or "".
func (e *Editor) CurrentAction() string {
	if e.current == nil {
		return ""
	}
	return e.current.name()
}

// IsActive reports whether an interaction holds input capture.
func (e *Editor) IsActive() bool { return e.current != nil }

// --- Suspend ---

// Suspend routes subsequent draw commands to screen space, for overlays the
// host draws outside the canvas transform. Calls nest and must be balanced
// by Resume before End. Suspend has no effect on hit-testing or interaction:
// those run at End, after every Suspend has been resumed.
func (e *Editor) Suspend() {
	e.suspend++
	e.drawList.screen = true
}

// Resume undoes one Suspend.
func (e *Editor) Resume() {
	if e.suspend == 0 {
		e.assertf("Resume without Suspend")
		return
	}
	e.suspend--
	e.drawList.screen = e.suspend > 0
}

// IsSuspended reports whether a Suspend is in effect.
func (e *Editor) IsSuspended() bool { return e.suspend > 0 }
