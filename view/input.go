package view

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/phanxgames/stickfigure"
)

// pointerSample is the pointer position and button state for one frame.
type pointerSample struct {
	x, y    float64
	pressed bool
}

// keyState holds the movement keys held this frame.
type keyState struct {
	up, down, left, right bool
}

// inputState tracks what the pointer grabbed on press.
type inputState struct {
	pressed  bool
	grabbed  *Figure
	joystick bool
	keyboard bool
}

// popInjected dequeues the next injected pointer sample.
func (s *Scene) popInjected() (pointerSample, bool) {
	if len(s.injectQueue) == 0 {
		return pointerSample{}, false
	}
	p := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]
	return p, true
}

func readPointer() pointerSample {
	mx, my := ebiten.CursorPosition()
	return pointerSample{
		x:       float64(mx),
		y:       float64(my),
		pressed: ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
}

func readKeys() keyState {
	return keyState{
		up:    ebiten.IsKeyPressed(ebiten.KeyArrowUp) || ebiten.IsKeyPressed(ebiten.KeyW),
		down:  ebiten.IsKeyPressed(ebiten.KeyArrowDown) || ebiten.IsKeyPressed(ebiten.KeyS),
		left:  ebiten.IsKeyPressed(ebiten.KeyArrowLeft) || ebiten.IsKeyPressed(ebiten.KeyA),
		right: ebiten.IsKeyPressed(ebiten.KeyArrowRight) || ebiten.IsKeyPressed(ebiten.KeyD),
	}
}

var presetKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3, ebiten.KeyDigit4}

// handleShortcuts processes one-shot keys: F1 debug, F2 dark mode, F12
// screenshot, space for the demo sequence and 1-4 for presets.
func (s *Scene) handleShortcuts() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		s.SetDebugMode(!s.debug)
		s.hud.Flash(onOff("debug", s.debug))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		s.SetDarkMode(!s.dark)
		s.hud.Flash(onOff("dark mode", s.dark))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		s.Screenshot("manual")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		_ = s.PlaySequence(stickfigure.DemoSequence())
	}
	if len(s.figures) == 0 {
		return
	}
	names := s.figures[0].Presets.Names()
	for i, k := range presetKeys {
		if i < len(names) && inpututil.IsKeyJustPressed(k) {
			_ = s.PlayPreset(names[i])
		}
	}
}

func onOff(what string, on bool) string {
	if on {
		return what + " on"
	}
	return what + " off"
}

// handlePointer routes a pointer sample to the joystick or a figure's
// dragger, depending on what the press landed on.
func (s *Scene) handlePointer(p pointerSample, dt time.Duration) {
	in := &s.input
	switch {
	case p.pressed && !in.pressed:
		in.pressed = true
		if s.joystickContains(p.x, p.y) {
			in.joystick = true
			s.applyJoystick(s.joystick.Read(p.x-s.joyCenter.X, p.y-s.joyCenter.Y), dt)
			return
		}
		// Topmost figure first.
		for i := len(s.figures) - 1; i >= 0; i-- {
			f := s.figures[i]
			if f.Dragger.Press(p.x, p.y) {
				in.grabbed = f
				return
			}
		}
	case p.pressed:
		if in.joystick {
			s.applyJoystick(s.joystick.Read(p.x-s.joyCenter.X, p.y-s.joyCenter.Y), dt)
		} else if in.grabbed != nil {
			in.grabbed.Dragger.Move(p.x, p.y)
		}
	case in.pressed:
		if in.joystick {
			s.applyJoystick(s.joystick.Release(), dt)
		} else if in.grabbed != nil {
			in.grabbed.Dragger.Release(p.x, p.y)
		}
		*in = inputState{keyboard: in.keyboard}
	}
}

// handleKeys turns held movement keys into joystick events at full
// deflection. It stays quiet while the pointer drives the joystick.
func (s *Scene) handleKeys(k keyState, dt time.Duration) {
	if s.input.joystick {
		return
	}
	dx, dy := keyVector(k)
	if dx == 0 && dy == 0 {
		if s.input.keyboard {
			s.input.keyboard = false
			s.applyJoystick(s.joystick.Release(), dt)
		}
		return
	}
	s.input.keyboard = true
	r := s.joystick.MaxDistance
	s.applyJoystick(s.joystick.Read(dx*r, dy*r), dt)
}

// keyVector returns a unit direction in screen axes for the held keys.
func keyVector(k keyState) (float64, float64) {
	var dx, dy float64
	if k.left {
		dx--
	}
	if k.right {
		dx++
	}
	if k.up {
		dy--
	}
	if k.down {
		dy++
	}
	if dx != 0 && dy != 0 {
		dx /= math.Sqrt2
		dy /= math.Sqrt2
	}
	return dx, dy
}

func (s *Scene) applyJoystick(ev stickfigure.JoystickEvent, dt time.Duration) {
	s.joyKnob = ev.Knob
	if len(s.figures) == 0 {
		return
	}
	f := s.figures[0]
	f.Sequencer.Stop()
	f.Driver.Apply(ev, dt)
}

func (s *Scene) joystickContains(x, y float64) bool {
	if !s.showJoystick {
		return false
	}
	return stickfigure.HitCircle{
		CenterX: s.joyCenter.X,
		CenterY: s.joyCenter.Y,
		Radius:  s.joystick.Size / 2,
	}.Contains(x, y)
}

// --- Injection ---

// InjectPress queues a pointer press at screen coordinates. Injected samples
// replace the mouse for one Update each.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, pointerSample{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, pointerSample{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, pointerSample{x: x, y: y})
}

// InjectClick queues a press and release at the same point.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a press, frames-2 interpolated moves and a release.
// Minimum frames is 2.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}
