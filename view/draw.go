package view

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/stickfigure"
)

// DrawOptions controls DrawFigure.
type DrawOptions struct {
	Palette     stickfigure.Palette
	StrokeWidth float32
	Decorations bool
	// Debug draws sticks in the debug color, start pivots blue, end pivots
	// green, and segment names next to their ends.
	Debug bool
}

const pivotRadius = 4

// DrawFigure draws one rendered pose onto dst. Segments are drawn in
// reverse pre-order so parents cover their children.
func DrawFigure(dst *ebiten.Image, transforms []stickfigure.SegmentTransform, opts DrawOptions) {
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = 3
	}
	stick := opts.Palette.Stick.RGBA()
	if opts.Debug {
		stick = opts.Palette.DebugLine.RGBA()
	}
	deco := opts.Palette.Decoration
	deco.A *= 0.6
	decoColor := deco.RGBA()

	for i := len(transforms) - 1; i >= 0; i-- {
		st := &transforms[i]
		if opts.Decorations && st.HasDecoration {
			drawDecoration(dst, st.Decoration, decoColor)
		}
		if st.Length > 0 {
			vector.StrokeLine(dst,
				float32(st.Origin.X), float32(st.Origin.Y),
				float32(st.End.X), float32(st.End.Y),
				opts.StrokeWidth, stick, true)
		}
	}

	if !opts.Debug {
		return
	}
	start := opts.Palette.StartPivot.RGBA()
	end := opts.Palette.EndPivot.RGBA()
	for i := range transforms {
		st := &transforms[i]
		vector.DrawFilledCircle(dst, float32(st.Origin.X), float32(st.Origin.Y), pivotRadius, start, true)
		vector.DrawFilledCircle(dst, float32(st.End.X), float32(st.End.Y), pivotRadius, end, true)
		ebitenutil.DebugPrintAt(dst, st.Name, int(st.End.X)+6, int(st.End.Y)-8)
	}
}

// drawDecoration outlines a decoration's rectangle in its own frame.
func drawDecoration(dst *ebiten.Image, d stickfigure.DecorationTransform, clr color.Color) {
	w, h := d.Decoration.Height, d.Decoration.Width
	if w <= 0 || h <= 0 {
		return
	}
	corners := [4]stickfigure.Vec2{
		d.World.Apply(0, 0),
		d.World.Apply(w, 0),
		d.World.Apply(w, h),
		d.World.Apply(0, h),
	}
	for i := range corners {
		a, b := corners[i], corners[(i+1)%4]
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, clr, true)
	}
}

// drawJoystick draws the on-screen joystick base and knob.
func drawJoystick(dst *ebiten.Image, j *stickfigure.Joystick, center, knob stickfigure.Vec2, p stickfigure.Palette) {
	base := p.Decoration
	base.A = 0.35
	knobColor := p.Stick
	knobColor.A = 0.8
	vector.DrawFilledCircle(dst, float32(center.X), float32(center.Y), float32(j.Size/2), base.RGBA(), true)
	vector.StrokeCircle(dst, float32(center.X), float32(center.Y), float32(j.Size/2), 2, p.Stick.RGBA(), true)
	vector.DrawFilledCircle(dst, float32(center.X+knob.X), float32(center.Y+knob.Y), float32(j.KnobRadius), knobColor.RGBA(), true)
}
