package nodeeditor

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// frameStats holds per-frame timing and scene metrics.
// Timings are only collected when the editor is in debug mode.
type frameStats struct {
	frame uint64

	nodes, pins, links int
	commands, batches  int
	flows              int
	processed          string

	controlTime time.Duration
	actionTime  time.Duration
	drawTime    time.Duration
}

// collect counts live objects and draw output.
func (s *frameStats) collect(e *Editor) {
	s.nodes, s.pins, s.links = 0, 0, 0
	for _, ent := range e.reg.nodes.entries {
		if ent.obj.live {
			s.nodes++
		}
	}
	for _, ent := range e.reg.pins.entries {
		if ent.obj.live {
			s.pins++
		}
	}
	for _, ent := range e.reg.links.entries {
		if ent.obj.live {
			s.links++
		}
	}
	s.commands = e.drawList.Len()
	s.batches = countBatches(e.drawList.Commands())
	s.flows = e.flows.Len()
}

// LogMetrics writes the last frame's metrics to the logger at Debug level.
func (e *Editor) LogMetrics() {
	s := &e.stats
	current := "none"
	if e.current != nil {
		current = e.current.name()
	}
	e.logger.Debug("frame metrics",
		zap.Uint64("frame", s.frame),
		zap.Int("nodes", s.nodes),
		zap.Int("pins", s.pins),
		zap.Int("links", s.links),
		zap.Int("commands", s.commands),
		zap.Int("batches", s.batches),
		zap.Int("flows", s.flows),
		zap.String("action", current),
		zap.String("processed", s.processed),
		zap.Duration("control", s.controlTime),
		zap.Duration("actions", s.actionTime),
		zap.Duration("draw", s.drawTime),
	)
}

// MetricsText formats the last frame's metrics for an on-screen overlay.
func (e *Editor) MetricsText() string {
	s := &e.stats
	current := "none"
	if e.current != nil {
		current = e.current.name()
	}
	return fmt.Sprintf("frame %d | nodes %d | pins %d | links %d\ncommands %d | batches %d | flows %d\naction %s | zoom %.2f",
		s.frame, s.nodes, s.pins, s.links, s.commands, s.batches, s.flows, current, e.view.Zoom)
}

// assertf reports host protocol misuse. In debug mode it panics; otherwise
// the call is logged and the caller degrades to a no-op.
func (e *Editor) assertf(format string, args ...any) {
	msg := fmt.Sprintf("nodeeditor: "+format, args...)
	if e.debug {
		panic(msg)
	}
	e.logger.Error("protocol misuse", zap.String("detail", msg))
}

// debugMaxLiveObjects is the scene size above which debug mode warns.
const debugMaxLiveObjects = 10000

func (e *Editor) debugCheckSceneSize() {
	if n := e.stats.nodes + e.stats.links; n > debugMaxLiveObjects {
		e.logger.Warn("large scene",
			zap.Int("live objects", n),
			zap.Int("threshold", debugMaxLiveObjects))
	}
}
