package view

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/phanxgames/stickfigure"
)

// scriptStep is one action of a scripted viewer session.
type scriptStep struct {
	Action     string           `json:"action"`
	Label      string           `json:"label,omitempty"`
	X          float64          `json:"x,omitempty"`
	Y          float64          `json:"y,omitempty"`
	FromX      float64          `json:"fromX,omitempty"`
	FromY      float64          `json:"fromY,omitempty"`
	ToX        float64          `json:"toX,omitempty"`
	ToY        float64          `json:"toY,omitempty"`
	Frames     int              `json:"frames,omitempty"`
	Preset     string           `json:"preset,omitempty"`
	Pose       stickfigure.Pose `json:"pose,omitempty"`
	DurationMs *int             `json:"durationMs,omitempty"`
}

type script struct {
	Steps []scriptStep `json:"steps"`
}

// TestRunner feeds scripted input, poses and screenshots into a Scene one
// step per frame. Attach with Scene.SetTestRunner.
//
// Actions: screenshot, click, drag, wait, preset, pose, sequence.
type TestRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadTestScript parses a JSON script.
func LoadTestScript(data []byte) (*TestRunner, error) {
	var sc script
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range sc.Steps {
		switch st.Action {
		case "screenshot", "click", "drag", "wait", "sequence":
		case "preset":
			if st.Preset == "" {
				return nil, fmt.Errorf("parse test script: step %d: preset name required", i)
			}
		case "pose":
			if len(st.Pose) == 0 {
				return nil, fmt.Errorf("parse test script: step %d: pose required", i)
			}
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: sc.Steps}, nil
}

// SetTestRunner attaches a runner, stepped at the start of every Update.
func (s *Scene) SetTestRunner(r *TestRunner) {
	s.testRunner = r
}

// Done reports whether every step has run.
func (r *TestRunner) Done() bool { return r.done }

// Err returns the first error raised by a preset or pose step.
func (r *TestRunner) Err() error { return r.err }

func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1
		}
	case "preset":
		r.fail(s.PlayPreset(st.Preset))
	case "pose":
		if len(s.figures) > 0 {
			a := s.figures[0].Animator
			d := a.DefaultDuration()
			if st.DurationMs != nil {
				d = time.Duration(*st.DurationMs) * time.Millisecond
			}
			s.figures[0].Sequencer.Stop()
			a.SetTarget(st.Pose, d)
		}
	case "sequence":
		r.fail(s.PlaySequence(stickfigure.DemoSequence()))
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}

func (r *TestRunner) fail(err error) {
	if err != nil && r.err == nil {
		r.err = err
	}
}
