package nodeeditor

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// optionsReloadDelay coalesces the burst of writes editors produce on save.
const optionsReloadDelay = 200 * time.Millisecond

// OptionsWatcher reloads an options file when it changes on disk. Reloaded
// options arrive on Updates; the host drains the channel between frames and
// hands the value to Editor.SetOptions. Only the latest pending value is kept.
type OptionsWatcher struct {
	path    string
	logger  *zap.Logger
	watcher *fsnotify.Watcher
	updates chan Options

	mu     sync.Mutex
	timer  *time.Timer
	closed bool
	done   chan struct{}
}

// NewOptionsWatcher starts watching path. The parent directory is watched so
// that atomic rename-on-save is picked up.
func NewOptionsWatcher(path string, logger *zap.Logger) (*OptionsWatcher, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create options watcher: %w", err)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch options %s: %w", path, err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch options %s: %w", path, err)
	}
	w := &OptionsWatcher{
		path:    abs,
		logger:  logger,
		watcher: fsw,
		updates: make(chan Options, 1),
		done:    make(chan struct{}),
	}
	go w.loop()
	logger.Debug("watching options file", zap.String("path", abs))
	return w, nil
}

// Updates delivers successfully reloaded and validated options.
func (w *OptionsWatcher) Updates() <-chan Options { return w.updates }

// Close stops the watcher. Safe to call more than once.
func (w *OptionsWatcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	err := w.watcher.Close()
	<-w.done
	return err
}

func (w *OptionsWatcher) loop() {
	defer close(w.done)
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("options watcher error", zap.Error(err))
		}
	}
}

func (w *OptionsWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(optionsReloadDelay, w.reload)
}

func (w *OptionsWatcher) reload() {
	opts, err := LoadOptions(w.path)
	if err != nil {
		w.logger.Warn("options reload failed", zap.String("path", w.path), zap.Error(err))
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	// Replace a value the host has not drained yet.
	select {
	case <-w.updates:
	default:
	}
	w.updates <- opts
	w.logger.Info("options reloaded", zap.String("path", w.path))
}
