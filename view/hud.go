package view

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// bannerSeconds is how long a status banner takes to fade out.
const bannerSeconds = 1.5

// HUD shows the frame rate, the figure state and a fading status banner.
type HUD struct {
	ShowFPS bool

	banner      string
	bannerAlpha float64
	fade        *gween.Tween

	fpsText   string
	sinceFPS  float64
	stateText string
}

// NewHUD creates an empty HUD.
func NewHUD(showFPS bool) *HUD {
	return &HUD{ShowFPS: showFPS}
}

// Flash shows msg and fades it out.
func (h *HUD) Flash(msg string) {
	h.banner = msg
	h.bannerAlpha = 1
	h.fade = gween.New(1, 0, bannerSeconds, ease.InQuad)
}

// Banner returns the current banner text and its opacity.
func (h *HUD) Banner() (string, float64) {
	return h.banner, h.bannerAlpha
}

// SetState sets the figure state line.
func (h *HUD) SetState(s string) { h.stateText = s }

// Update advances the banner fade and refreshes the FPS text about twice a
// second.
func (h *HUD) Update(dt float64) {
	if h.fade != nil {
		v, done := h.fade.Update(float32(dt))
		h.bannerAlpha = float64(v)
		if done {
			h.fade = nil
			h.banner = ""
			h.bannerAlpha = 0
		}
	}
	h.sinceFPS += dt
	if h.sinceFPS >= 0.5 {
		h.sinceFPS = 0
		h.fpsText = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
	}
}

// Draw renders the HUD on top of screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	var lines []string
	if h.ShowFPS && h.fpsText != "" {
		lines = append(lines, h.fpsText)
	}
	if h.stateText != "" {
		lines = append(lines, h.stateText)
	}
	if len(lines) > 0 {
		ebitenutil.DebugPrint(screen, strings.Join(lines, "\n"))
	}

	if h.banner == "" || h.bannerAlpha <= 0 {
		return
	}
	w := screen.Bounds().Dx()
	bw := len(h.banner)*6 + 16
	img := ebiten.NewImage(bw, 20)
	defer img.Deallocate()
	img.Fill(color.RGBA{0, 0, 0, 160})
	ebitenutil.DebugPrintAt(img, h.banner, 8, 2)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(w-bw)/2, 12)
	op.ColorScale.ScaleAlpha(float32(h.bannerAlpha))
	screen.DrawImage(img, op)
}
