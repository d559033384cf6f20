package nodeeditor

import (
	"errors"
	"fmt"
)

// ErrStyleStackUnderflow is returned when more entries are popped than were
// pushed.
var ErrStyleStackUnderflow = errors.New("nodeeditor: style stack underflow")

// ErrStyleVarKind is returned when a value of the wrong shape is pushed for a
// variable slot.
var ErrStyleVarKind = errors.New("nodeeditor: style variable kind mismatch")

// Vec4 holds four components. Paddings use X=left, Y=top, Z=right, W=bottom.
type Vec4 struct {
	X, Y, Z, W float64
}

// StyleColor names a color slot.
type StyleColor uint8

const (
	StyleColorBg StyleColor = iota
	StyleColorGrid
	StyleColorNodeBg
	StyleColorNodeBorder
	StyleColorHovNodeBorder
	StyleColorSelNodeBorder
	StyleColorNodeSelRect
	StyleColorNodeSelRectBorder
	StyleColorHovLinkBorder
	StyleColorSelLinkBorder
	StyleColorLinkSelRect
	StyleColorLinkSelRectBorder
	StyleColorPinRect
	StyleColorPinRectBorder
	StyleColorFlow
	StyleColorFlowMarker
	StyleColorGroupBg
	StyleColorGroupBorder

	styleColorCount
)

var styleColorNames = [styleColorCount]string{
	"Bg", "Grid", "NodeBg", "NodeBorder", "HovNodeBorder", "SelNodeBorder",
	"NodeSelRect", "NodeSelRectBorder", "HovLinkBorder", "SelLinkBorder",
	"LinkSelRect", "LinkSelRectBorder", "PinRect", "PinRectBorder",
	"Flow", "FlowMarker", "GroupBg", "GroupBorder",
}

func (c StyleColor) String() string {
	if c < styleColorCount {
		return styleColorNames[c]
	}
	return fmt.Sprintf("StyleColor(%d)", uint8(c))
}

// StyleVar names a numeric or vector variable slot.
type StyleVar uint8

const (
	StyleVarNodePadding StyleVar = iota
	StyleVarNodeRounding
	StyleVarNodeBorderWidth
	StyleVarHoveredNodeBorderWidth
	StyleVarSelectedNodeBorderWidth
	StyleVarPinRounding
	StyleVarPinBorderWidth
	StyleVarLinkStrength
	StyleVarSourceDirection
	StyleVarTargetDirection
	StyleVarScrollDuration
	StyleVarFlowMarkerDistance
	StyleVarFlowSpeed
	StyleVarFlowDuration
	StyleVarPivotAlignment
	StyleVarPivotSize
	StyleVarPivotScale
	StyleVarGroupRounding
	StyleVarGroupBorderWidth

	styleVarCount
)

type styleVarKind uint8

const (
	varFloat styleVarKind = iota
	varVec2
	varVec4
)

var styleVarKinds = [styleVarCount]styleVarKind{
	StyleVarNodePadding:             varVec4,
	StyleVarSourceDirection:         varVec2,
	StyleVarTargetDirection:         varVec2,
	StyleVarPivotAlignment:          varVec2,
	StyleVarPivotSize:               varVec2,
	StyleVarPivotScale:              varVec2,
	StyleVarNodeRounding:            varFloat,
	StyleVarNodeBorderWidth:         varFloat,
	StyleVarHoveredNodeBorderWidth:  varFloat,
	StyleVarSelectedNodeBorderWidth: varFloat,
	StyleVarPinRounding:             varFloat,
	StyleVarPinBorderWidth:          varFloat,
	StyleVarLinkStrength:            varFloat,
	StyleVarScrollDuration:          varFloat,
	StyleVarFlowMarkerDistance:      varFloat,
	StyleVarFlowSpeed:               varFloat,
	StyleVarFlowDuration:            varFloat,
	StyleVarGroupRounding:           varFloat,
	StyleVarGroupBorderWidth:        varFloat,
}

// Style is the theme table. Values may be set directly or overridden
// temporarily with the Push/Pop methods, which must be balanced.
type Style struct {
	NodePadding             Vec4
	NodeRounding            float64
	NodeBorderWidth         float64
	HoveredNodeBorderWidth  float64
	SelectedNodeBorderWidth float64
	PinRounding             float64
	PinBorderWidth          float64
	LinkStrength            float64
	SourceDirection         Vec2
	TargetDirection         Vec2
	ScrollDuration          float64
	FlowMarkerDistance      float64
	FlowSpeed               float64
	FlowDuration            float64
	PivotAlignment          Vec2
	PivotSize               Vec2
	PivotScale              Vec2
	GroupRounding           float64
	GroupBorderWidth        float64

	Colors [styleColorCount]Color

	colorStack []colorModifier
	varStack   []varModifier
}

type colorModifier struct {
	index StyleColor
	value Color
}

type varModifier struct {
	index StyleVar
	value Vec4
}

func rgba8(r, g, b, a uint8) Color {
	return Color{float64(r) / 255, float64(g) / 255, float64(b) / 255, float64(a) / 255}
}

// DefaultStyle returns the stock theme.
func DefaultStyle() *Style {
	s := &Style{
		NodePadding:             Vec4{8, 8, 8, 8},
		NodeRounding:            12,
		NodeBorderWidth:         1.5,
		HoveredNodeBorderWidth:  3.5,
		SelectedNodeBorderWidth: 3.5,
		PinRounding:             4,
		PinBorderWidth:          0,
		LinkStrength:            100,
		SourceDirection:         Vec2{1, 0},
		TargetDirection:         Vec2{-1, 0},
		ScrollDuration:          0.35,
		FlowMarkerDistance:      30,
		FlowSpeed:               150,
		FlowDuration:            2,
		PivotAlignment:          Vec2{0.5, 0.5},
		PivotSize:               Vec2{0, 0},
		PivotScale:              Vec2{1, 1},
		GroupRounding:           6,
		GroupBorderWidth:        1,
	}
	s.Colors = [styleColorCount]Color{
		StyleColorBg:                rgba8(60, 60, 70, 200),
		StyleColorGrid:              rgba8(120, 120, 120, 40),
		StyleColorNodeBg:            rgba8(32, 32, 32, 200),
		StyleColorNodeBorder:        rgba8(255, 255, 255, 96),
		StyleColorHovNodeBorder:     rgba8(50, 176, 255, 255),
		StyleColorSelNodeBorder:     rgba8(255, 176, 50, 255),
		StyleColorNodeSelRect:       rgba8(5, 130, 255, 64),
		StyleColorNodeSelRectBorder: rgba8(5, 130, 255, 128),
		StyleColorHovLinkBorder:     rgba8(50, 176, 255, 255),
		StyleColorSelLinkBorder:     rgba8(255, 176, 50, 255),
		StyleColorLinkSelRect:       rgba8(5, 130, 255, 64),
		StyleColorLinkSelRectBorder: rgba8(5, 130, 255, 128),
		StyleColorPinRect:           rgba8(60, 180, 255, 100),
		StyleColorPinRectBorder:     rgba8(60, 180, 255, 128),
		StyleColorFlow:              rgba8(255, 128, 64, 255),
		StyleColorFlowMarker:        rgba8(255, 128, 64, 255),
		StyleColorGroupBg:           rgba8(0, 0, 0, 160),
		StyleColorGroupBorder:       rgba8(255, 255, 255, 32),
	}
	return s
}

// Color returns the current value of a color slot.
func (s *Style) Color(idx StyleColor) Color {
	if idx >= styleColorCount {
		return Color{}
	}
	return s.Colors[idx]
}

// PushColor overrides a color slot until the matching PopColor.
func (s *Style) PushColor(idx StyleColor, c Color) {
	if idx >= styleColorCount {
		return
	}
	s.colorStack = append(s.colorStack, colorModifier{index: idx, value: s.Colors[idx]})
	s.Colors[idx] = c
}

// PopColor restores the last count color overrides.
func (s *Style) PopColor(count int) error {
	if count > len(s.colorStack) {
		return fmt.Errorf("pop %d colors, %d pushed: %w", count, len(s.colorStack), ErrStyleStackUnderflow)
	}
	for ; count > 0; count-- {
		m := s.colorStack[len(s.colorStack)-1]
		s.colorStack = s.colorStack[:len(s.colorStack)-1]
		s.Colors[m.index] = m.value
	}
	return nil
}

// PushVar overrides a float variable slot.
func (s *Style) PushVar(idx StyleVar, v float64) error {
	return s.pushVar(idx, varFloat, Vec4{X: v})
}

// PushVarVec2 overrides a two-component variable slot.
func (s *Style) PushVarVec2(idx StyleVar, v Vec2) error {
	return s.pushVar(idx, varVec2, Vec4{X: v.X, Y: v.Y})
}

// PushVarVec4 overrides a four-component variable slot.
func (s *Style) PushVarVec4(idx StyleVar, v Vec4) error {
	return s.pushVar(idx, varVec4, v)
}

func (s *Style) pushVar(idx StyleVar, kind styleVarKind, v Vec4) error {
	if idx >= styleVarCount || styleVarKinds[idx] != kind {
		return fmt.Errorf("push style var %d: %w", idx, ErrStyleVarKind)
	}
	s.varStack = append(s.varStack, varModifier{index: idx, value: s.getVar(idx)})
	s.setVar(idx, v)
	return nil
}

// PopVar restores the last count variable overrides.
func (s *Style) PopVar(count int) error {
	if count > len(s.varStack) {
		return fmt.Errorf("pop %d vars, %d pushed: %w", count, len(s.varStack), ErrStyleStackUnderflow)
	}
	for ; count > 0; count-- {
		m := s.varStack[len(s.varStack)-1]
		s.varStack = s.varStack[:len(s.varStack)-1]
		s.setVar(m.index, m.value)
	}
	return nil
}

// balanced reports whether every push has been popped.
func (s *Style) balanced() bool {
	return len(s.colorStack) == 0 && len(s.varStack) == 0
}

func (s *Style) floatVar(idx StyleVar) *float64 {
	switch idx {
	case StyleVarNodeRounding:
		return &s.NodeRounding
	case StyleVarNodeBorderWidth:
		return &s.NodeBorderWidth
	case StyleVarHoveredNodeBorderWidth:
		return &s.HoveredNodeBorderWidth
	case StyleVarSelectedNodeBorderWidth:
		return &s.SelectedNodeBorderWidth
	case StyleVarPinRounding:
		return &s.PinRounding
	case StyleVarPinBorderWidth:
		return &s.PinBorderWidth
	case StyleVarLinkStrength:
		return &s.LinkStrength
	case StyleVarScrollDuration:
		return &s.ScrollDuration
	case StyleVarFlowMarkerDistance:
		return &s.FlowMarkerDistance
	case StyleVarFlowSpeed:
		return &s.FlowSpeed
	case StyleVarFlowDuration:
		return &s.FlowDuration
	case StyleVarGroupRounding:
		return &s.GroupRounding
	case StyleVarGroupBorderWidth:
		return &s.GroupBorderWidth
	}
	return nil
}

func (s *Style) vec2Var(idx StyleVar) *Vec2 {
	switch idx {
	case StyleVarSourceDirection:
		return &s.SourceDirection
	case StyleVarTargetDirection:
		return &s.TargetDirection
	case StyleVarPivotAlignment:
		return &s.PivotAlignment
	case StyleVarPivotSize:
		return &s.PivotSize
	case StyleVarPivotScale:
		return &s.PivotScale
	}
	return nil
}

func (s *Style) getVar(idx StyleVar) Vec4 {
	if f := s.floatVar(idx); f != nil {
		return Vec4{X: *f}
	}
	if v := s.vec2Var(idx); v != nil {
		return Vec4{X: v.X, Y: v.Y}
	}
	if idx == StyleVarNodePadding {
		return s.NodePadding
	}
	return Vec4{}
}

func (s *Style) setVar(idx StyleVar, v Vec4) {
	if f := s.floatVar(idx); f != nil {
		*f = v.X
		return
	}
	if p := s.vec2Var(idx); p != nil {
		*p = Vec2{v.X, v.Y}
		return
	}
	if idx == StyleVarNodePadding {
		s.NodePadding = v
	}
}
