// Package view displays animated stick figures in an ebiten window. A Scene
// owns the frame queue every figure's animator schedules on, so animation
// advances exactly once per ebiten Update.
package view

import (
	"fmt"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/stickfigure"
)

// Figure is one animated skeleton in a Scene.
type Figure struct {
	Animator  *stickfigure.Animator
	Sequencer *stickfigure.Sequencer
	Presets   *stickfigure.PresetLibrary
	Dragger   *stickfigure.Dragger
	Driver    *stickfigure.JoystickDriver

	Decorations bool
}

// Scene holds figures, input state and render settings.
type Scene struct {
	ScreenshotDir string

	figures []*Figure
	queue   *stickfigure.FrameQueue
	now     time.Time
	hud     *HUD

	palette stickfigure.Palette
	dark    bool
	debug   bool

	joystick     *stickfigure.Joystick
	joyCenter    stickfigure.Vec2
	joyKnob      stickfigure.Vec2
	showJoystick bool

	input           inputState
	injectQueue     []pointerSample
	testRunner      *TestRunner
	screenshotQueue []string
	updateFn        func() error
}

// NewScene creates an empty scene with the light palette.
func NewScene() *Scene {
	return &Scene{
		ScreenshotDir: "screenshots",
		queue:         stickfigure.NewFrameQueue(),
		now:           time.Now(),
		hud:           NewHUD(false),
		palette:       stickfigure.LightPalette,
		joystick:      stickfigure.NewJoystick(stickfigure.DefaultJoystickSize, stickfigure.DefaultJoystickDeadZone),
	}
}

// Queue returns the scene's frame queue.
func (s *Scene) Queue() *stickfigure.FrameQueue { return s.queue }

// HUD returns the scene's heads-up display.
func (s *Scene) HUD() *HUD { return s.hud }

// Figures returns the scene's figures. The returned slice MUST NOT be
// mutated.
func (s *Scene) Figures() []*Figure { return s.figures }

// AddFigure creates an animator for sk resting at initial and adds it to
// the scene. The first figure added receives joystick and keyboard input.
func (s *Scene) AddFigure(sk *stickfigure.Skeleton, lib *stickfigure.PresetLibrary, initial stickfigure.Pose) *Figure {
	if lib == nil {
		lib = stickfigure.NewPresetLibrary()
	}
	anim := stickfigure.NewAnimator(sk, s.queue, initial)
	anim.SetDebug(s.debug)
	f := &Figure{
		Animator:    anim,
		Sequencer:   stickfigure.NewSequencer(anim, s.queue, lib),
		Presets:     lib,
		Dragger:     stickfigure.NewFigureDragger(anim),
		Driver:      stickfigure.NewJoystickDriver(anim, lib),
		Decorations: true,
	}
	f.Sequencer.OnStep = func(i int) {
		if s.debug {
			_, _ = fmt.Fprintf(os.Stderr, "[stickfigure] %s: sequence step %d\n", anim.Name, i)
		}
	}
	s.figures = append(s.figures, f)
	return f
}

// SetDebugMode toggles debug drawing and retarget logging on every figure.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	for _, f := range s.figures {
		f.Animator.SetDebug(enabled)
	}
}

// DebugMode reports whether debug drawing is on.
func (s *Scene) DebugMode() bool { return s.debug }

// SetDarkMode switches between the dark and light palettes.
func (s *Scene) SetDarkMode(dark bool) {
	s.dark = dark
	s.palette = stickfigure.PaletteFor(dark)
}

// DarkMode reports whether the dark palette is in use.
func (s *Scene) DarkMode() bool { return s.dark }

// ShowJoystick places an on-screen joystick centered at (x, y).
func (s *Scene) ShowJoystick(x, y float64) {
	s.showJoystick = true
	s.joyCenter = stickfigure.Vec2{X: x, Y: y}
}

// SetUpdateFunc sets a callback run at the end of every Update.
func (s *Scene) SetUpdateFunc(fn func() error) {
	s.updateFn = fn
}

// Update reads input, runs one animation frame and advances the HUD.
func (s *Scene) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.handleShortcuts()
	ptr, ok := s.popInjected()
	if !ok {
		ptr = readPointer()
	}
	return s.advance(dt, ptr, readKeys())
}

// advance is Update with input supplied by the caller.
func (s *Scene) advance(dt time.Duration, ptr pointerSample, keys keyState) error {
	s.handlePointer(ptr, dt)
	s.handleKeys(keys, dt)

	s.now = s.now.Add(dt)
	s.queue.RunFrame(s.now)

	if len(s.figures) > 0 {
		a := s.figures[0].Animator
		s.hud.SetState(fmt.Sprintf("%s: %s", a.Name, a.State()))
	}
	s.hud.Update(dt.Seconds())

	if s.updateFn != nil {
		return s.updateFn()
	}
	return nil
}

// Draw renders every figure, the joystick and the HUD.
func (s *Scene) Draw(screen *ebiten.Image) {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	screen.Fill(s.palette.Background.RGBA())
	segments := 0
	for _, f := range s.figures {
		tr := f.Animator.Transforms()
		segments += len(tr)
		DrawFigure(screen, tr, DrawOptions{
			Palette:     s.palette,
			Decorations: f.Decorations,
			Debug:       s.debug,
		})
	}
	if s.showJoystick {
		drawJoystick(screen, s.joystick, s.joyCenter, s.joyKnob, s.palette)
	}
	s.hud.Draw(screen)

	if s.debug {
		s.debugLog(time.Since(t0), segments)
	}
	s.flushScreenshots(screen)
}

func (s *Scene) debugLog(drawTime time.Duration, segments int) {
	_, _ = fmt.Fprintf(os.Stderr, "[stickfigure] draw: %v | figures: %d | segments: %d | frames: %d\n",
		drawTime, len(s.figures), segments, s.queue.Frames())
}

// PlayPreset animates the first figure to a named preset.
func (s *Scene) PlayPreset(name string) error {
	if len(s.figures) == 0 {
		return nil
	}
	f := s.figures[0]
	p, err := f.Presets.Get(name)
	if err != nil {
		return err
	}
	f.Sequencer.Stop()
	f.Animator.SetTargetDefault(p)
	s.hud.Flash(name)
	return nil
}

// PlaySequence plays seq on the first figure.
func (s *Scene) PlaySequence(seq *stickfigure.Sequence) error {
	if len(s.figures) == 0 {
		return nil
	}
	if err := s.figures[0].Sequencer.Play(seq); err != nil {
		return err
	}
	s.hud.Flash("sequence " + seq.Name)
	return nil
}
