package stickfigure

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// RasterOptions controls Rasterize.
type RasterOptions struct {
	Width, Height int
	Palette       Palette
	StrokeWidth   float64
	// Offset is added to every world coordinate before drawing.
	Offset Vec2
	// Decorations draws each decoration as a translucent rectangle.
	Decorations bool
	// Debug draws stick lines in the debug color, start and end pivots,
	// and segment names.
	Debug bool
}

// DefaultRasterOptions returns options for a 400x400 light image.
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{
		Width:       400,
		Height:      400,
		Palette:     LightPalette,
		StrokeWidth: 3,
		Decorations: true,
	}
}

// Rasterize draws transforms into a new RGBA image without a GPU. Parents are
// painted over their children so limbs tuck under the segment they hang
// from.
func Rasterize(transforms []SegmentTransform, opts RasterOptions) *image.RGBA {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = 400, 400
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = 3
	}
	img := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Palette.Background.RGBA()), image.Point{}, draw.Src)

	rz := vector.NewRasterizer(opts.Width, opts.Height)
	fill := func(c Color, pts []Vec2) {
		if len(pts) < 3 {
			return
		}
		rz.Reset(opts.Width, opts.Height)
		rz.DrawOp = draw.Over
		rz.MoveTo(float32(pts[0].X+opts.Offset.X), float32(pts[0].Y+opts.Offset.Y))
		for _, p := range pts[1:] {
			rz.LineTo(float32(p.X+opts.Offset.X), float32(p.Y+opts.Offset.Y))
		}
		rz.ClosePath()
		rz.Draw(img, img.Bounds(), image.NewUniform(c.RGBA()), image.Point{})
	}

	stick := opts.Palette.Stick
	if opts.Debug {
		stick = opts.Palette.DebugLine
	}

	for i := len(transforms) - 1; i >= 0; i-- {
		st := &transforms[i]
		if opts.Decorations && st.HasDecoration {
			d := st.Decoration
			if d.Decoration.Width > 0 && d.Decoration.Height > 0 {
				c := opts.Palette.Decoration
				c.A *= 0.6
				fill(c, []Vec2{
					d.World.Apply(0, 0),
					d.World.Apply(d.Decoration.Height, 0),
					d.World.Apply(d.Decoration.Height, d.Decoration.Width),
					d.World.Apply(0, d.Decoration.Width),
				})
			}
		}
		if st.Length > 0 {
			fill(stick, strokeQuad(st.Origin, st.End, opts.StrokeWidth))
		}
	}

	if opts.Debug {
		face := basicfont.Face7x13
		for i := range transforms {
			st := &transforms[i]
			fill(opts.Palette.StartPivot, circlePoly(st.Origin, 4, 12))
			fill(opts.Palette.EndPivot, circlePoly(st.End, 4, 12))
			dr := font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(opts.Palette.Label.RGBA()),
				Face: face,
				Dot:  fixed.P(int(st.End.X+opts.Offset.X)+5, int(st.End.Y+opts.Offset.Y)),
			}
			dr.DrawString(st.Name)
		}
	}
	return img
}

// strokeQuad returns the rectangle covering a line of the given width.
func strokeQuad(a, b Vec2, width float64) []Vec2 {
	d := b.Sub(a)
	l := d.Len()
	if l == 0 {
		return nil
	}
	n := Vec2{-d.Y / l, d.X / l}.Scale(width / 2)
	return []Vec2{a.Add(n), b.Add(n), b.Sub(n), a.Sub(n)}
}

// circlePoly approximates a circle with n vertices.
func circlePoly(c Vec2, r float64, n int) []Vec2 {
	pts := make([]Vec2, n)
	for i := range pts {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(n))
		pts[i] = Vec2{c.X + cos*r, c.Y + sin*r}
	}
	return pts
}

// EncodePNG writes img to w as PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// WritePNG encodes an image to a PNG file at the given path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// FrameFileName builds "<dir>/<label>_<index>.png" with the label made safe
// for file systems.
func FrameFileName(dir, label string, index int) string {
	return fmt.Sprintf("%s/%s_%05d.png", dir, SanitizeLabel(label), index)
}

// SanitizeLabel replaces characters that are unsafe in file names with
// underscores and falls back to "unlabeled" for empty strings.
func SanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
