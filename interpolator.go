package stickfigure

import (
	"time"

	"github.com/tanema/gween/ease"
)

// AnimationState is the complete state of one pose animation. It is owned by
// a single Interpolator and updated in place by Tick.
type AnimationState struct {
	Start   Pose // pose at the moment of the last retarget (or completion)
	Target  Pose // complete destination pose
	Current Pose // most recently produced pose

	T0       time.Time // clock reference, valid when HasT0 is set
	HasT0    bool
	Duration time.Duration
	Done     bool
}

// Interpolator moves a complete pose toward a target over time. Linear
// joints are interpolated directly; angular joints travel the shortest arc
// and are reported in [0, 360).
//
// An Interpolator is not safe for concurrent use; one frame loop owns it.
type Interpolator struct {
	joints *JointSet
	state  AnimationState

	// Easing shapes progress; nil means ease.Linear.
	Easing ease.TweenFunc
}

// NewInterpolator creates an interpolator resting at initial. Missing keys
// take neutral values; the interpolator starts Done.
func NewInterpolator(joints *JointSet, initial Pose) *Interpolator {
	cur := joints.Complete(joints.Sanitize(initial, nil), nil)
	normalizeAngular(joints, cur)
	return &Interpolator{
		joints: joints,
		state: AnimationState{
			Start:   cur.Clone(),
			Target:  cur.Clone(),
			Current: cur,
			Done:    true,
		},
	}
}

// Joints returns the joint set the interpolator was built with.
func (ip *Interpolator) Joints() *JointSet { return ip.joints }

// State returns a snapshot of the animation state. Poses are shared with the
// interpolator and MUST NOT be mutated.
func (ip *Interpolator) State() AnimationState { return ip.state }

// Current returns the most recently produced pose. The returned map MUST NOT
// be mutated by the caller.
func (ip *Interpolator) Current() Pose { return ip.state.Current }

// Target returns the complete destination pose. The returned map MUST NOT be
// mutated by the caller.
func (ip *Interpolator) Target() Pose { return ip.state.Target }

// Done reports whether the current animation has completed.
func (ip *Interpolator) Done() bool { return ip.state.Done }

// Retarget starts a new animation from the last produced pose toward target
// merged over the previous target. Unknown keys in target are ignored and
// values are sanitized against the joint set. A duration <= 0 snaps to the
// target on the next Tick. The clock reference is cleared so the next Tick
// becomes t0.
func (ip *Interpolator) Retarget(target Pose, d time.Duration) {
	clean := ip.joints.Sanitize(target, ip.state.Target)
	ip.state.Start = ip.state.Current.Clone()
	ip.state.Target = ip.state.Target.Merge(clean)
	ip.state.Duration = d
	ip.state.HasT0 = false
	ip.state.Done = false
}

// Snap jumps immediately to pose merged over the current target, without
// animating. The new pose is both start and target.
func (ip *Interpolator) Snap(pose Pose) Pose {
	clean := ip.joints.Sanitize(pose, ip.state.Target)
	cur := ip.state.Target.Merge(clean)
	normalizeAngular(ip.joints, cur)
	ip.state.Current = cur
	ip.state.Start = cur.Clone()
	ip.state.Target = cur.Clone()
	ip.state.HasT0 = false
	ip.state.Done = true
	return cur
}

// Tick advances the animation to now and returns the resulting pose. The
// first Tick after Retarget establishes t0. Once Done, Tick returns the
// unchanged pose. The returned map MUST NOT be mutated by the caller.
func (ip *Interpolator) Tick(now time.Time) Pose {
	st := &ip.state
	if st.Done {
		return st.Current
	}
	if !st.HasT0 {
		st.T0 = now
		st.HasT0 = true
	}

	t := 1.0
	if st.Duration > 0 {
		t = float64(now.Sub(st.T0)) / float64(st.Duration)
		if t < 0 {
			t = 0
		} else if t > 1 {
			t = 1
		}
	}
	finished := t >= 1
	e := ip.ease(t)

	next := make(Pose, ip.joints.Len())
	for _, spec := range ip.joints.specs {
		start := st.Start[spec.Name]
		end := st.Target[spec.Name]
		switch {
		case spec.Kind == Linear && finished:
			next[spec.Name] = end
		case spec.Kind == Linear:
			next[spec.Name] = start + (end-start)*e
		case finished:
			next[spec.Name] = NormalizeDegrees(end)
		default:
			next[spec.Name] = LerpAngle(start, end, e)
		}
	}
	st.Current = next

	if finished {
		st.Start = next.Clone()
		st.Done = true
	}
	return next
}

func (ip *Interpolator) ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	fn := ip.Easing
	if fn == nil {
		return t
	}
	return float64(fn(float32(t), 0, 1, 1))
}

func normalizeAngular(joints *JointSet, p Pose) {
	for _, spec := range joints.specs {
		if spec.Kind != Angular {
			continue
		}
		if v, ok := p[spec.Name]; ok {
			p[spec.Name] = NormalizeDegrees(v)
		}
	}
}

// --- Easing ---

var easings = map[string]ease.TweenFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inOutCubic": ease.InOutCubic,
	"inOutSine":  ease.InOutSine,
	"outBounce":  ease.OutBounce,
	"outElastic": ease.OutElastic,
}

// EasingByName looks up a named easing curve. The empty name is linear.
func EasingByName(name string) (ease.TweenFunc, bool) {
	if name == "" {
		return ease.Linear, true
	}
	fn, ok := easings[name]
	return fn, ok
}
