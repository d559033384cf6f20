package nodeeditor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
)

// Options holds the interaction tunables. Durations are in seconds and
// distances in pixels unless noted otherwise.
type Options struct {
	// ZoomLevels is the ladder wheel zooming steps through.
	ZoomLevels []float64 `toml:"zoom_levels" validate:"min=1,ascending,dive,gt=0"`
	// GridSize is the canvas-space snapping step for dragged nodes. Zero
	// disables snapping.
	GridSize float64 `toml:"grid_size" validate:"gte=0"`

	NavigateMargin     float64 `toml:"navigate_margin" validate:"gte=0"`
	NavigateDuration   float64 `toml:"navigate_duration" validate:"gte=0"`
	ZoomDuration       float64 `toml:"zoom_duration" validate:"gte=0"`
	EdgeBand           float64 `toml:"edge_band" validate:"gte=0"`
	EdgeScrollSpeed    float64 `toml:"edge_scroll_speed" validate:"gte=0"`
	DragThreshold      float64 `toml:"drag_threshold" validate:"gte=0"`
	DoubleClickTime    float64 `toml:"double_click_time" validate:"gt=0"`
	DoubleClickDist    float64 `toml:"double_click_distance" validate:"gte=0"`
	LinkHitThickness   float64 `toml:"link_hit_thickness" validate:"gte=0"`
	RegionTolerance    float64 `toml:"region_tolerance" validate:"gt=0"`
	MinGroupWidth      float64 `toml:"min_group_width" validate:"gte=0"`
	MinGroupHeight     float64 `toml:"min_group_height" validate:"gte=0"`
	SelectionFadeTime  float64 `toml:"selection_fade_time" validate:"gte=0"`
	ShortcutsEnabled   bool    `toml:"shortcuts_enabled"`
	LinksOnTop         bool    `toml:"links_on_top"`
	ShowMetricsOverlay bool    `toml:"show_metrics_overlay"`
}

// DefaultOptions returns the stock tunables.
func DefaultOptions() Options {
	return Options{
		ZoomLevels:        []float64{0.1, 0.15, 0.2, 0.25, 0.33, 0.5, 0.75, 1, 1.25, 1.5, 2, 2.5, 3, 4, 5},
		GridSize:          16,
		NavigateMargin:    15,
		NavigateDuration:  0.35,
		ZoomDuration:      0.1,
		EdgeBand:          10,
		EdgeScrollSpeed:   10,
		DragThreshold:     3,
		DoubleClickTime:   0.3,
		DoubleClickDist:   6,
		LinkHitThickness:  5,
		RegionTolerance:   8,
		MinGroupWidth:     40,
		MinGroupHeight:    40,
		SelectionFadeTime: 0.15,
		ShortcutsEnabled:  true,
	}
}

var optionsValidator = newOptionsValidator()

func newOptionsValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("ascending", func(fl validator.FieldLevel) bool {
		levels, ok := fl.Field().Interface().([]float64)
		if !ok {
			return false
		}
		for i := 1; i < len(levels); i++ {
			if levels[i] <= levels[i-1] {
				return false
			}
		}
		return true
	})
	return v
}

// Validate checks the options against their struct tags.
func (o Options) Validate() error {
	if err := optionsValidator.Struct(o); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.ToLower(fe.Field()), fe.Tag()))
			}
			return fmt.Errorf("invalid options: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid options: %w", err)
	}
	return nil
}

// LoadOptions reads TOML options from path over the defaults. A missing file
// yields the defaults.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return opts, nil
	}
	if err != nil {
		return opts, fmt.Errorf("read options %s: %w", path, err)
	}
	return ParseOptions(data)
}

// ParseOptions decodes TOML options over the defaults and validates them.
func ParseOptions(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := toml.Unmarshal(data, &opts); err != nil {
		return DefaultOptions(), fmt.Errorf("parse options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return DefaultOptions(), err
	}
	return opts, nil
}

// SaveOptions writes opts to path as TOML.
func SaveOptions(path string, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save options: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save options: %w", err)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(opts); err != nil {
		return fmt.Errorf("encode options: %w", err)
	}
	return nil
}
