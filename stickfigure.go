package stickfigure

import (
	"image/color"
	"math"
)

// Vec2 is a 2D vector used for positions, offsets and directions throughout
// the API. Y grows downward.
type Vec2 struct {
	X, Y float64
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v scaled by s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Len returns the length of v.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// RGBA converts c to a premultiplied color.RGBA.
func (c Color) RGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Palette holds the colors renderers use for one figure. The debug colors
// mirror the pivot markers: start pivots blue, end pivots green, stick lines
// red.
type Palette struct {
	Background Color
	Stick      Color
	Decoration Color
	DebugLine  Color
	StartPivot Color
	EndPivot   Color
	Label      Color
}

// LightPalette is used when dark mode is off.
var LightPalette = Palette{
	Background: Color{0.96, 0.95, 0.92, 1},
	Stick:      Color{0.12, 0.12, 0.14, 1},
	Decoration: Color{0.55, 0.52, 0.48, 1},
	DebugLine:  Color{1, 0, 0, 1},
	StartPivot: Color{0, 0, 1, 1},
	EndPivot:   Color{0, 0.6, 0, 1},
	Label:      Color{0.2, 0.2, 0.2, 1},
}

// DarkPalette is used when dark mode is on.
var DarkPalette = Palette{
	Background: Color{0.09, 0.09, 0.11, 1},
	Stick:      Color{0.92, 0.92, 0.9, 1},
	Decoration: Color{0.42, 0.44, 0.5, 1},
	DebugLine:  Color{1, 0.3, 0.3, 1},
	StartPivot: Color{0.35, 0.55, 1, 1},
	EndPivot:   Color{0.3, 0.9, 0.4, 1},
	Label:      Color{0.85, 0.85, 0.85, 1},
}

// PaletteFor returns the dark or light palette.
func PaletteFor(dark bool) Palette {
	if dark {
		return DarkPalette
	}
	return LightPalette
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Bounds returns the smallest Rect containing every segment end point and
// origin in transforms. The zero Rect is returned for an empty slice.
func Bounds(transforms []SegmentTransform) Rect {
	if len(transforms) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(p Vec2) {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	for i := range transforms {
		grow(transforms[i].Origin)
		grow(transforms[i].End)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

func degToRad(d float64) float64 { return d * math.Pi / 180 }
