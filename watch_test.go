package nodeeditor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestWatcher(t *testing.T) (*OptionsWatcher, string, *observer.ObservedLogs) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "editor.toml")
	require.NoError(t, SaveOptions(path, DefaultOptions()))
	core, logs := observer.New(zapcore.DebugLevel)
	w, err := NewOptionsWatcher(path, zap.New(core))
	require.NoError(t, err)
	t.Cleanup(func() { w.Close() })
	return w, path, logs
}

func TestOptionsWatcherReloads(t *testing.T) {
	w, path, logs := newTestWatcher(t)

	opts := DefaultOptions()
	opts.GridSize = 24
	require.NoError(t, SaveOptions(path, opts))

	select {
	case got := <-w.Updates():
		assert.Equal(t, 24.0, got.GridSize)
	case <-time.After(2 * time.Second):
		t.Fatal("no reload after the file changed")
	}
	assert.NotZero(t, logs.FilterMessage("options reloaded").Len())
}

func TestOptionsWatcherSkipsInvalidFile(t *testing.T) {
	w, path, logs := newTestWatcher(t)

	require.NoError(t, os.WriteFile(path, []byte("grid_size = -1.0\n"), 0o644))
	require.Eventually(t, func() bool {
		return logs.FilterMessage("options reload failed").Len() > 0
	}, 2*time.Second, 20*time.Millisecond)

	select {
	case got := <-w.Updates():
		t.Fatalf("invalid options delivered: %+v", got)
	default:
	}
}

func TestOptionsWatcherIgnoresOtherFiles(t *testing.T) {
	w, path, _ := newTestWatcher(t)

	other := filepath.Join(filepath.Dir(path), "other.toml")
	require.NoError(t, os.WriteFile(other, []byte("grid_size = 4.0\n"), 0o644))

	select {
	case got := <-w.Updates():
		t.Fatalf("unrelated file triggered a reload: %+v", got)
	case <-time.After(3 * optionsReloadDelay):
	}
}

func TestOptionsWatcherCloseIsIdempotent(t *testing.T) {
	w, _, _ := newTestWatcher(t)
	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
}

func TestOptionsWatcherMissingDir(t *testing.T) {
	_, err := NewOptionsWatcher(filepath.Join(t.TempDir(), "nope", "editor.toml"), nil)
	assert.ErrorContains(t, err, "watch options")
}
