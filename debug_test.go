package nodeeditor

import (
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestMetricsCountLiveObjects(t *testing.T) {
	h := newTestHost(t, Config{})
	h.place()
	h.link(1, 10, 20)
	h.run(1)

	s := h.ed.stats
	if s.nodes != 2 || s.pins != 2 || s.links != 1 {
		t.Errorf("nodes %d pins %d links %d, want 2 2 1", s.nodes, s.pins, s.links)
	}
	if s.commands == 0 || s.batches == 0 || s.batches > s.commands {
		t.Errorf("commands %d batches %d", s.commands, s.batches)
	}

	text := h.ed.MetricsText()
	for _, want := range []string{"frame 1", "nodes 2", "links 1", "action none", "zoom 1.00"} {
		if !strings.Contains(text, want) {
			t.Errorf("MetricsText missing %q:\n%s", want, text)
		}
	}

	// node 2 is no longer submitted
	h.nodes = h.nodes[:1]
	h.links = nil
	h.run(1)
	if h.ed.stats.nodes != 1 || h.ed.stats.links != 0 {
		t.Errorf("after removal: nodes %d links %d", h.ed.stats.nodes, h.ed.stats.links)
	}
}

func TestDebugModeLogsMetrics(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := newTestHost(t, Config{Debug: true, Logger: zap.New(core)})
	h.place()
	h.run(2)

	entries := logs.FilterMessage("frame metrics").All()
	if len(entries) != 2 {
		t.Fatalf("logged %d metric entries, want 2", len(entries))
	}
	fields := entries[1].ContextMap()
	if fields["frame"] != uint64(2) || fields["nodes"] != int64(2) {
		t.Errorf("fields = %v", fields)
	}
	if fields["action"] != "none" {
		t.Errorf("action = %v, want none", fields["action"])
	}
}

func TestMetricsNotLoggedOutsideDebug(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	h := newTestHost(t, Config{Logger: zap.New(core)})
	h.run(1)
	if n := logs.FilterMessage("frame metrics").Len(); n != 0 {
		t.Errorf("logged %d metric entries without debug mode", n)
	}

	h.ed.LogMetrics()
	if n := logs.FilterMessage("frame metrics").Len(); n != 1 {
		t.Errorf("explicit LogMetrics logged %d entries", n)
	}
}
