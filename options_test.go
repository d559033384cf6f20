package nodeeditor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultOptionsValidate(t *testing.T) {
	opts := DefaultOptions()
	require.NoError(t, opts.Validate())
	assert.Equal(t, 16.0, opts.GridSize)
	assert.True(t, opts.ShortcutsEnabled)
	assert.IsIncreasing(t, opts.ZoomLevels)
	assert.Contains(t, opts.ZoomLevels, 1.0)
}

func TestParseOptionsOverridesDefaults(t *testing.T) {
	opts, err := ParseOptions([]byte(`
grid_size = 8.0
shortcuts_enabled = false
zoom_levels = [0.5, 1.0, 2.0]
`))
	require.NoError(t, err)
	assert.Equal(t, 8.0, opts.GridSize)
	assert.False(t, opts.ShortcutsEnabled)
	assert.Equal(t, []float64{0.5, 1, 2}, opts.ZoomLevels)
	assert.Equal(t, DefaultOptions().DragThreshold, opts.DragThreshold, "unset keys keep their defaults")
}

func TestParseOptionsRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		toml string
		want string
	}{
		{"descending ladder", "zoom_levels = [2.0, 1.0]", `invalid options: zoomlevels failed "ascending"`},
		{"empty ladder", "zoom_levels = []", `zoomlevels failed "min"`},
		{"non-positive level", "zoom_levels = [0.0, 1.0]", `failed "gt"`},
		{"negative grid", "grid_size = -1.0", `gridsize failed "gte"`},
		{"zero double-click time", "double_click_time = 0.0", `doubleclicktime failed "gt"`},
		{"malformed", "grid_size = ", "parse options"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ParseOptions([]byte(tt.toml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Equal(t, DefaultOptions(), opts, "a rejected file falls back to the defaults")
		})
	}
}

func TestLoadOptionsMissingFile(t *testing.T) {
	opts, err := LoadOptions(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions(), opts)
}

func TestLoadOptionsUnreadable(t *testing.T) {
	_, err := LoadOptions(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read options")
}

func TestSaveLoadOptionsRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf", "editor.toml")
	opts := DefaultOptions()
	opts.GridSize = 32
	opts.LinksOnTop = true
	opts.ZoomLevels = []float64{0.25, 0.5, 1, 3}

	require.NoError(t, SaveOptions(path, opts))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "grid_size = 32.0")

	got, err := LoadOptions(path)
	require.NoError(t, err)
	assert.Equal(t, opts, got)
}
