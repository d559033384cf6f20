package nodeeditor

import (
	"encoding/json"
	"fmt"
	"strings"
)

// scriptStep represents a single action in an input script.
type scriptStep struct {
	Action string  `json:"action"`
	Button string  `json:"button,omitempty"`
	Key    string  `json:"key,omitempty"`
	Mods   string  `json:"mods,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Delta  float64 `json:"delta,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// inputScript is the top-level JSON structure for an input script.
type inputScript struct {
	FrameTime float64      `json:"frameTime,omitempty"`
	Steps     []scriptStep `json:"steps"`
}

var scriptButtons = map[string]MouseButton{
	"":       MouseButtonLeft,
	"left":   MouseButtonLeft,
	"right":  MouseButtonRight,
	"middle": MouseButtonMiddle,
}

var scriptKeys = map[string]Key{
	"delete": KeyDelete,
	"f":      KeyF,
	"x":      KeyX,
	"c":      KeyC,
	"v":      KeyV,
	"d":      KeyD,
	"space":  KeySpace,
	"escape": KeyEscape,
}

var scriptMods = map[string]KeyModifiers{
	"shift": ModShift,
	"ctrl":  ModCtrl,
	"alt":   ModAlt,
	"meta":  ModMeta,
}

// LoadInputScript parses a JSON input script and returns a ScriptedInput with
// every step queued. Steps:
//
//	{"action":"move","x":..,"y":..}
//	{"action":"press"|"release","button":"left","x":..,"y":..}
//	{"action":"click"|"doubleclick","x":..,"y":..}
//	{"action":"drag","button":"right","fromX":..,"fromY":..,"toX":..,"toY":..,"frames":n}
//	{"action":"key","key":"delete","mods":"ctrl+shift"}
//	{"action":"mods","mods":"alt"}
//	{"action":"scroll","delta":1,"x":..,"y":..}
//	{"action":"blur"} / {"action":"focus"}
//	{"action":"wait","frames":n}
func LoadInputScript(jsonData []byte) (*ScriptedInput, error) {
	var script inputScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse input script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse input script: no steps")
	}
	in := NewScriptedInput()
	in.FrameTime = script.FrameTime
	for i, st := range script.Steps {
		if err := in.apply(st); err != nil {
			return nil, fmt.Errorf("parse input script: step %d: %w", i, err)
		}
	}
	return in, nil
}

func (s *ScriptedInput) apply(st scriptStep) error {
	button, ok := scriptButtons[strings.ToLower(st.Button)]
	if !ok {
		return fmt.Errorf("unknown button %q", st.Button)
	}
	mods, err := parseScriptMods(st.Mods)
	if err != nil {
		return err
	}
	switch st.Action {
	case "move":
		s.Move(st.X, st.Y)
	case "press":
		s.Press(button, st.X, st.Y)
	case "release":
		s.Release(button, st.X, st.Y)
	case "click":
		s.Click(st.X, st.Y)
	case "doubleclick":
		s.DoubleClick(st.X, st.Y)
	case "drag":
		s.Drag(button, st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		k, ok := scriptKeys[strings.ToLower(st.Key)]
		if !ok {
			return fmt.Errorf("unknown key %q", st.Key)
		}
		s.Key(k, mods)
	case "mods":
		s.SetModifiers(mods)
	case "scroll":
		s.Scroll(st.Delta, st.X, st.Y)
	case "blur":
		s.SetFocused(false)
	case "focus":
		s.SetFocused(true)
	case "wait":
		s.Idle(st.Frames)
	default:
		return fmt.Errorf("unknown action %q", st.Action)
	}
	return nil
}

// parseScriptMods parses "ctrl+shift" style modifier lists.
func parseScriptMods(spec string) (KeyModifiers, error) {
	var mods KeyModifiers
	if spec == "" {
		return 0, nil
	}
	for _, name := range strings.Split(strings.ToLower(spec), "+") {
		m, ok := scriptMods[strings.TrimSpace(name)]
		if !ok {
			return 0, fmt.Errorf("unknown modifier %q", name)
		}
		mods |= m
	}
	return mods, nil
}
