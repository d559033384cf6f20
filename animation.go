package nodeeditor

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// AnimationState is either Stopped or Playing.
type AnimationState uint8

const (
	AnimationStopped AnimationState = iota
	AnimationPlaying
)

// animationHooks are the per-kind callbacks of an Animation. Any may be nil.
type animationHooks struct {
	onPlay   func()
	onUpdate func(progress float64)
	onStop   func()
	onFinish func()
}

// Animation drives a 0-to-1 progress value over a fixed duration. Playing
// animations are advanced by their controller once per frame.
type Animation struct {
	controller *animationController
	hooks      animationHooks
	easing     ease.TweenFunc

	state    AnimationState
	duration float64
	elapsed  float64
	progress float64
	tween    *gween.Tween
}

func (a *Animation) init(c *animationController, hooks animationHooks, easing ease.TweenFunc) {
	a.controller = c
	a.hooks = hooks
	if easing == nil {
		easing = ease.Linear
	}
	a.easing = easing
}

// State returns whether the animation is playing.
func (a *Animation) State() AnimationState { return a.state }

// IsPlaying reports whether the animation is playing.
func (a *Animation) IsPlaying() bool { return a.state == AnimationPlaying }

// Progress returns the eased progress in [0, 1].
func (a *Animation) Progress() float64 { return a.progress }

// Duration returns the length of the current run in seconds.
func (a *Animation) Duration() float64 { return a.duration }

// Play restarts the animation. A non-positive duration finishes at once.
func (a *Animation) Play(duration float64) {
	if a.state == AnimationPlaying {
		a.Stop()
	}
	a.duration = duration
	a.elapsed = 0
	a.progress = 0
	a.state = AnimationPlaying
	if a.hooks.onPlay != nil {
		a.hooks.onPlay()
	}
	if duration <= 0 {
		a.Finish()
		return
	}
	a.tween = gween.New(0, 1, float32(duration), a.easing)
	if a.controller != nil {
		a.controller.add(a)
	}
}

// Stop halts the animation without completing it.
func (a *Animation) Stop() {
	if a.state != AnimationPlaying {
		return
	}
	a.state = AnimationStopped
	if a.controller != nil {
		a.controller.remove(a)
	}
	if a.hooks.onStop != nil {
		a.hooks.onStop()
	}
}

// Finish jumps to the end and completes the animation.
func (a *Animation) Finish() {
	if a.state != AnimationPlaying {
		return
	}
	a.elapsed = a.duration
	a.progress = 1
	if a.hooks.onUpdate != nil {
		a.hooks.onUpdate(1)
	}
	a.state = AnimationStopped
	if a.controller != nil {
		a.controller.remove(a)
	}
	if a.hooks.onFinish != nil {
		a.hooks.onFinish()
	}
}

// update advances the animation by dt seconds.
func (a *Animation) update(dt float64) {
	if a.state != AnimationPlaying {
		return
	}
	a.elapsed += dt
	val, done := a.tween.Update(float32(dt))
	if done || a.elapsed >= a.duration {
		a.Finish()
		return
	}
	a.progress = clamp01(float64(val))
	if a.hooks.onUpdate != nil {
		a.hooks.onUpdate(a.progress)
	}
}

// animationController owns the set of playing animations.
type animationController struct {
	playing []*Animation
}

func (c *animationController) add(a *Animation) {
	for _, p := range c.playing {
		if p == a {
			return
		}
	}
	c.playing = append(c.playing, a)
}

func (c *animationController) remove(a *Animation) {
	for i, p := range c.playing {
		if p == a {
			c.playing = append(c.playing[:i], c.playing[i+1:]...)
			return
		}
	}
}

// update advances a snapshot so hooks may start or stop animations.
func (c *animationController) update(dt float64) {
	if len(c.playing) == 0 {
		return
	}
	snapshot := append([]*Animation(nil), c.playing...)
	for _, a := range snapshot {
		a.update(dt)
	}
}

// --- NavigateAnimation ---

// NavigateAnimation moves the view from its current scroll and zoom to a
// target.
type NavigateAnimation struct {
	Animation
	view   *View
	start  View
	target View
	// finished runs after the target has been applied.
	finished func()
}

func newNavigateAnimation(c *animationController, view *View, finished func()) *NavigateAnimation {
	na := &NavigateAnimation{view: view, finished: finished}
	na.init(c, animationHooks{
		onUpdate: na.apply,
		onFinish: na.onFinish,
	}, ease.OutQuad)
	return na
}

// NavigateTo animates from the current view to target over duration.
func (na *NavigateAnimation) NavigateTo(target View, duration float64) {
	na.Stop()
	na.start = *na.view
	na.target = target
	na.Play(duration)
}

// Target returns the view the animation ends at.
func (na *NavigateAnimation) Target() View { return na.target }

func (na *NavigateAnimation) apply(p float64) {
	na.view.Scroll = na.start.Scroll.Lerp(na.target.Scroll, p)
	na.view.Zoom = na.start.Zoom + (na.target.Zoom-na.start.Zoom)*p
}

func (na *NavigateAnimation) onFinish() {
	*na.view = na.target
	if na.finished != nil {
		na.finished()
	}
}

// --- FlowAnimation ---

// FlowAnimation draws markers that travel along a link.
type FlowAnimation struct {
	Animation
	owner *FlowAnimationController

	link           LinkID
	Speed          float64
	MarkerDistance float64
	offset         float64

	path      arcLengthPath
	lastStart Vec2
	lastEnd   Vec2
	hasPath   bool

	restarting bool
}

func newFlowAnimation(owner *FlowAnimationController) *FlowAnimation {
	fa := &FlowAnimation{owner: owner}
	fa.init(owner.animations, animationHooks{
		onUpdate: fa.onUpdate,
		onStop:   fa.release,
		onFinish: fa.release,
	}, ease.Linear)
	return fa
}

// Link returns the animated link.
func (fa *FlowAnimation) Link() LinkID { return fa.link }

// Offset returns the distance of the first marker from the link start.
func (fa *FlowAnimation) Offset() float64 { return fa.offset }

func (fa *FlowAnimation) flow(l *Link, markerDistance, speed, duration float64) {
	fa.restarting = true
	fa.Stop()
	fa.restarting = false
	if fa.link != l.id {
		fa.hasPath = false
	}
	fa.link = l.id
	fa.MarkerDistance = markerDistance
	fa.Speed = speed
	fa.offset = 0
	fa.Play(duration)
}

func (fa *FlowAnimation) onUpdate(p float64) {
	fa.offset = p * fa.duration * fa.Speed
	if fa.MarkerDistance > 0 {
		fa.offset = math.Mod(fa.offset, fa.MarkerDistance)
	}
}

func (fa *FlowAnimation) release() {
	if fa.restarting {
		return
	}
	fa.hasPath = false
	fa.owner.release(fa)
}

// updatePath rebuilds the sampled path when the link endpoints moved.
func (fa *FlowAnimation) updatePath(l *Link) {
	if fa.hasPath && l.start == fa.lastStart && l.end == fa.lastEnd {
		return
	}
	fa.path = newArcLengthPath(l.curve, flowPathStep)
	fa.lastStart, fa.lastEnd = l.start, l.end
	fa.hasPath = true
}

// markers returns marker positions along the path, plus the alpha they are
// drawn with.
func (fa *FlowAnimation) markers(l *Link) ([]Vec2, float64) {
	fa.updatePath(l)
	length := fa.path.Length()
	if length == 0 || fa.MarkerDistance <= 0 {
		return nil, 0
	}
	var out []Vec2
	for d := fa.offset; d < length; d += fa.MarkerDistance {
		out = append(out, fa.path.At(d))
	}
	// Markers fade out over the last half of the run.
	alpha := 1.0
	if p := fa.progress; p > 0.5 {
		alpha = 1 - (p-0.5)*2
	}
	return out, alpha
}

const flowPathStep = 5.0

// FlowAnimationController recycles one FlowAnimation per link.
type FlowAnimationController struct {
	animations *animationController
	active     map[LinkID]*FlowAnimation
	free       []*FlowAnimation
}

func newFlowAnimationController(c *animationController) *FlowAnimationController {
	return &FlowAnimationController{animations: c, active: make(map[LinkID]*FlowAnimation)}
}

// Flow gets or creates the animation for l and restarts it.
func (fc *FlowAnimationController) Flow(l *Link, markerDistance, speed, duration float64) *FlowAnimation {
	fa, ok := fc.active[l.id]
	if !ok {
		if n := len(fc.free); n > 0 {
			fa = fc.free[n-1]
			fc.free = fc.free[:n-1]
		} else {
			fa = newFlowAnimation(fc)
		}
	}
	fa.flow(l, markerDistance, speed, duration)
	if fa.IsPlaying() {
		fc.active[l.id] = fa
	} else if !ok {
		fc.free = append(fc.free, fa)
	}
	return fa
}

// Active returns the animation playing on link, if any.
func (fc *FlowAnimationController) Active(link LinkID) *FlowAnimation {
	return fc.active[link]
}

// Len returns the number of playing flow animations.
func (fc *FlowAnimationController) Len() int { return len(fc.active) }

func (fc *FlowAnimationController) release(fa *FlowAnimation) {
	if cur, ok := fc.active[fa.link]; !ok || cur != fa {
		return
	}
	delete(fc.active, fa.link)
	fc.free = append(fc.free, fa)
}
