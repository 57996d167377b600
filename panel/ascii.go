package panel

import (
	"math"
	"strings"

	"github.com/phanxgames/stickfigure"
)

// RenderASCII draws transforms into a w x h character grid, scaled to fit.
// Sticks are drawn with '*', joints with 'o'. Terminal cells are roughly
// twice as tall as wide, so the vertical axis is halved.
func RenderASCII(transforms []stickfigure.SegmentTransform, w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	grid := make([][]rune, h)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", w))
	}

	b := stickfigure.Bounds(transforms)
	scale := 1.0
	if b.Width > 0 || b.Height > 0 {
		sx := float64(w-1) / math.Max(b.Width, 1e-9)
		sy := float64(h-1) / math.Max(b.Height/2, 1e-9)
		scale = math.Min(sx, sy)
	}
	// Center the figure.
	offX := (float64(w-1) - b.Width*scale) / 2
	offY := (float64(h-1) - b.Height/2*scale) / 2
	cell := func(p stickfigure.Vec2) (int, int) {
		return int(math.Round((p.X-b.X)*scale + offX)),
			int(math.Round((p.Y-b.Y)/2*scale + offY))
	}
	plot := func(x, y int, r rune) {
		if x >= 0 && x < w && y >= 0 && y < h {
			grid[y][x] = r
		}
	}

	for _, st := range transforms {
		x0, y0 := cell(st.Origin)
		x1, y1 := cell(st.End)
		n := max(abs(x1-x0), abs(y1-y0))
		for i := 0; i <= n; i++ {
			t := 0.0
			if n > 0 {
				t = float64(i) / float64(n)
			}
			plot(int(math.Round(float64(x0)+float64(x1-x0)*t)),
				int(math.Round(float64(y0)+float64(y1-y0)*t)), '*')
		}
	}
	for _, st := range transforms {
		x, y := cell(st.Origin)
		plot(x, y, 'o')
	}

	lines := make([]string, h)
	for i, row := range grid {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return strings.Join(lines, "\n")
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
