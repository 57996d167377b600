package stickfigure

import (
	"errors"
	"fmt"
	"slices"
)

// ErrUnknownPreset is returned when a preset name is not in the library.
var ErrUnknownPreset = errors.New("unknown preset")

// PresetLibrary is an ordered collection of named poses.
type PresetLibrary struct {
	names []string
	poses map[string]Pose
}

// NewPresetLibrary creates an empty library.
func NewPresetLibrary() *PresetLibrary {
	return &PresetLibrary{poses: make(map[string]Pose)}
}

// Add stores a copy of pose under name, replacing any previous entry.
func (l *PresetLibrary) Add(name string, pose Pose) {
	if _, ok := l.poses[name]; !ok {
		l.names = append(l.names, name)
	}
	l.poses[name] = pose.Clone()
}

// Get returns a copy of the named pose.
func (l *PresetLibrary) Get(name string) (Pose, error) {
	p, ok := l.poses[name]
	if !ok {
		return nil, fmt.Errorf("preset %q: %w", name, ErrUnknownPreset)
	}
	return p.Clone(), nil
}

// Remove deletes name from the library. Missing names are ignored.
func (l *PresetLibrary) Remove(name string) {
	if _, ok := l.poses[name]; !ok {
		return
	}
	delete(l.poses, name)
	l.names = slices.DeleteFunc(l.names, func(n string) bool { return n == name })
}

// Has reports whether name is in the library.
func (l *PresetLibrary) Has(name string) bool {
	_, ok := l.poses[name]
	return ok
}

// Names returns preset names in insertion order.
func (l *PresetLibrary) Names() []string {
	out := make([]string, len(l.names))
	copy(out, l.names)
	return out
}

// Human preset names.
const (
	PresetStraight = "straight"
	PresetRun      = "run"
	PresetWave     = "wave"
	PresetSit      = "sit"
)

// HumanPresets returns the built-in poses for the human skeleton. Root
// offsets are left out so presets never move the figure.
func HumanPresets() *PresetLibrary {
	straight := HumanJoints.Neutral()
	delete(straight, JointX)
	delete(straight, JointY)

	run := straight.Merge(Pose{HumanRotation: 320})

	wave := straight.Merge(Pose{
		ForeUpperArmRotation: 30,
		ForeLowerArmRotation: -60,
		ForeHandRotation:     -15,
		HeadRotation:         10,
	})

	sit := straight.Merge(Pose{
		HipRotation:          200,
		ForeUpperLegRotation: -110,
		HindUpperLegRotation: -100,
		ForeLowerLegRotation: 90,
		HindLowerLegRotation: 90,
		ForeFootRotation:     -90,
		HindFootRotation:     -90,
		ForeUpperArmRotation: 150,
		HindUpperArmRotation: 160,
	})

	lib := NewPresetLibrary()
	lib.Add(PresetStraight, straight)
	lib.Add(PresetRun, run)
	lib.Add(PresetWave, wave)
	lib.Add(PresetSit, sit)
	return lib
}

// PuppetPresets returns the presets for NewPuppet: "rest" (the authored
// neutral) and "spread". Neither moves the root.
func PuppetPresets() *PresetLibrary {
	rest := PuppetJoints.Neutral()
	delete(rest, JointX)
	delete(rest, JointY)

	lib := NewPresetLibrary()
	lib.Add("rest", rest)
	lib.Add("spread", Pose{
		PuppetMain:   -20,
		PuppetLong:   -80,
		PuppetShortA: -120,
		PuppetShortB: 80,
		PuppetShortC: 120,
	})
	return lib
}
