package nodeeditor

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// batchKey groups draw commands that share submission state. Only used for
// metrics; every command is still one vector call.
type batchKey struct {
	kind   DrawCmdKind
	screen bool
}

func commandBatchKey(cmd *DrawCmd) batchKey {
	return batchKey{kind: cmd.Kind, screen: cmd.Screen}
}

// countBatches counts contiguous groups of commands sharing the same batchKey.
func countBatches(commands []DrawCmd) int {
	if len(commands) == 0 {
		return 0
	}
	count := 1
	prev := commandBatchKey(&commands[0])
	for i := 1; i < len(commands); i++ {
		cur := commandBatchKey(&commands[i])
		if cur != prev {
			count++
			prev = cur
		}
	}
	return count
}

// Draw renders the last finished frame onto target, clipped to the editor
// rectangle. target is the window image; the editor position passed to Begin
// is in its pixel space.
func (e *Editor) Draw(target *ebiten.Image) {
	r := e.canvas.ScreenRect()
	clip := image.Rect(int(math.Floor(r.X)), int(math.Floor(r.Y)),
		int(math.Ceil(r.X+r.Width)), int(math.Ceil(r.Y+r.Height)))
	dst, ok := target.SubImage(clip).(*ebiten.Image)
	if !ok {
		dst = target
	}
	submitDrawList(dst, e.drawList.Commands(), e.canvas)
}

// submitDrawList converts canvas commands to screen space and draws them.
func submitDrawList(dst *ebiten.Image, commands []DrawCmd, c Canvas) {
	for i := range commands {
		submitCommand(dst, &commands[i], c)
	}
}

func submitCommand(dst *ebiten.Image, cmd *DrawCmd, c Canvas) {
	toScreen := c.ToScreen
	scale := c.Zoom().X
	if cmd.Screen {
		toScreen = func(p Vec2) Vec2 { return p }
		scale = 1
	}
	clr := cmd.Color.toRGBA()
	width := float32(math.Max(cmd.Thickness*scale, 1))

	switch cmd.Kind {
	case DrawRectFilled, DrawRectStroke:
		a := toScreen(cmd.Rect.Min())
		b := toScreen(cmd.Rect.Max())
		x, y := float32(a.X), float32(a.Y)
		w, h := float32(b.X-a.X), float32(b.Y-a.Y)
		if cmd.Kind == DrawRectFilled {
			vector.DrawFilledRect(dst, x, y, w, h, clr, true)
		} else {
			vector.StrokeRect(dst, x, y, w, h, width, clr, true)
		}
	case DrawLine:
		a, b := toScreen(cmd.Curve.P0), toScreen(cmd.Curve.P3)
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
	case DrawBezier:
		pts := cmd.Curve.Flatten(bezierSegments(cmd.Curve, scale))
		for i := 1; i < len(pts); i++ {
			a, b := toScreen(pts[i-1]), toScreen(pts[i])
			vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), width, clr, true)
		}
	case DrawCircleFilled:
		p := toScreen(cmd.Center)
		vector.DrawFilledCircle(dst, float32(p.X), float32(p.Y), float32(cmd.Radius*scale), clr, true)
	case DrawText:
		p := toScreen(cmd.Center)
		ebitenutil.DebugPrintAt(dst, cmd.Text, int(p.X), int(p.Y))
	}
}

// bezierSegments picks a flattening resolution from the on-screen size of
// the curve's control polygon.
func bezierSegments(b CubicBezier, scale float64) int {
	length := (b.P1.Sub(b.P0).Len() + b.P2.Sub(b.P1).Len() + b.P3.Sub(b.P2).Len()) * scale
	n := int(length / 8)
	return max(4, min(n, 64))
}
