package stickfigure

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrEmptySequence is returned for a sequence without steps.
var ErrEmptySequence = errors.New("sequence has no steps")

// Step is one entry of a Sequence: move to a preset and/or explicit pose
// (the pose overrides the preset key by key), then hold.
type Step struct {
	Preset     string `json:"preset,omitempty" yaml:"preset,omitempty"`
	Pose       Pose   `json:"pose,omitempty" yaml:"pose,omitempty"`
	DurationMs int    `json:"durationMs,omitempty" yaml:"durationMs,omitempty"`
	HoldMs     int    `json:"holdMs,omitempty" yaml:"holdMs,omitempty"`
}

// Duration returns the step's transition time. Zero means the animator's
// default; a negative value snaps.
func (s Step) Duration() time.Duration { return time.Duration(s.DurationMs) * time.Millisecond }

// Hold returns how long the step's pose is held after it is reached.
func (s Step) Hold() time.Duration {
	if s.HoldMs <= 0 {
		return 0
	}
	return time.Duration(s.HoldMs) * time.Millisecond
}

// Sequence is an ordered list of target poses played one after another.
type Sequence struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty"`
	Loop  bool   `json:"loop,omitempty" yaml:"loop,omitempty"`
	Steps []Step `json:"steps" yaml:"steps"`
}

// LoadSequence parses a YAML (or JSON) sequence document.
func LoadSequence(data []byte) (*Sequence, error) {
	var seq Sequence
	if err := yaml.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("parse sequence: %w", err)
	}
	if len(seq.Steps) == 0 {
		return nil, fmt.Errorf("parse sequence: %w", ErrEmptySequence)
	}
	return &seq, nil
}

// Marshal encodes the sequence as YAML.
func (s *Sequence) Marshal() ([]byte, error) {
	return yaml.Marshal(s)
}

// Validate checks that every step names a target and that named presets
// exist in lib.
func (s *Sequence) Validate(lib *PresetLibrary) error {
	if len(s.Steps) == 0 {
		return ErrEmptySequence
	}
	for i, st := range s.Steps {
		if st.Preset == "" && len(st.Pose) == 0 {
			return fmt.Errorf("step %d: no preset or pose", i)
		}
		if st.Preset != "" && (lib == nil || !lib.Has(st.Preset)) {
			return fmt.Errorf("step %d: preset %q: %w", i, st.Preset, ErrUnknownPreset)
		}
	}
	return nil
}

// DemoSequence resets to the straight pose and then runs, each transition
// taking 100ms with a 100ms pause between them.
func DemoSequence() *Sequence {
	return &Sequence{
		Name: "demo",
		Steps: []Step{
			{Preset: PresetStraight, DurationMs: 100, HoldMs: 100},
			{Preset: PresetRun, DurationMs: 100},
		},
	}
}

// Sequencer plays a Sequence on an Animator. It polls the animator once per
// frame through the same scheduler, advancing when a step's pose is reached
// and its hold has elapsed.
type Sequencer struct {
	// OnStep is called with the index of each step as it starts.
	OnStep func(index int)
	// OnDone is called when a non-looping sequence finishes.
	OnDone func()

	anim    *Animator
	lib     *PresetLibrary
	sched   Scheduler
	seq     *Sequence
	index   int
	holding bool
	until   time.Time
	handle  FrameHandle
	running bool
}

// NewSequencer creates a sequencer for anim using the presets in lib.
func NewSequencer(anim *Animator, sched Scheduler, lib *PresetLibrary) *Sequencer {
	return &Sequencer{anim: anim, sched: sched, lib: lib}
}

// Play starts seq from its first step, replacing any sequence in progress.
func (s *Sequencer) Play(seq *Sequence) error {
	if err := seq.Validate(s.lib); err != nil {
		return fmt.Errorf("play %q: %w", seq.Name, err)
	}
	s.Stop()
	s.seq = seq
	s.running = true
	return s.start(0)
}

// Stop cancels the sequence. The animator keeps whatever motion it has.
func (s *Sequencer) Stop() {
	s.handle.Cancel()
	s.handle = FrameHandle{}
	s.running = false
	s.holding = false
}

// Running reports whether a sequence is playing.
func (s *Sequencer) Running() bool { return s.running }

// Index returns the current step index.
func (s *Sequencer) Index() int { return s.index }

// Sequence returns the sequence last passed to Play.
func (s *Sequencer) Sequence() *Sequence { return s.seq }

func (s *Sequencer) start(i int) error {
	st := s.seq.Steps[i]
	target := Pose{}
	if st.Preset != "" {
		p, err := s.lib.Get(st.Preset)
		if err != nil {
			s.running = false
			return err
		}
		target = p
	}
	target = target.Merge(st.Pose)

	s.index = i
	s.holding = false
	d := st.Duration()
	if d == 0 {
		d = s.anim.DefaultDuration()
	}
	s.anim.SetTarget(target, d)
	if s.OnStep != nil {
		s.OnStep(i)
	}
	s.handle = s.sched.Schedule(s.poll)
	return nil
}

func (s *Sequencer) poll(now time.Time) {
	s.handle = FrameHandle{}
	if !s.running {
		return
	}
	if s.anim.State() != Idle {
		s.handle = s.sched.Schedule(s.poll)
		return
	}
	if !s.holding {
		s.holding = true
		s.until = now.Add(s.seq.Steps[s.index].Hold())
	}
	if now.Before(s.until) {
		s.handle = s.sched.Schedule(s.poll)
		return
	}

	next := s.index + 1
	if next >= len(s.seq.Steps) {
		if !s.seq.Loop {
			s.running = false
			if s.OnDone != nil {
				s.OnDone()
			}
			return
		}
		next = 0
	}
	if err := s.start(next); err != nil {
		debugf(s.anim.Name, "sequence %q stopped at step %d: %v", s.seq.Name, next, err)
	}
}
