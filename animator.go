package stickfigure

import (
	"fmt"
	"time"
)

// Default durations for pose changes that do not name one.
const (
	DefaultDuration = 500 * time.Millisecond
	QuickDuration   = 300 * time.Millisecond
)

// AnimatorState is the scheduling state of an Animator.
type AnimatorState uint8

const (
	Idle      AnimatorState = iota // no frame scheduled
	Animating                      // a frame callback is pending
)

func (s AnimatorState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	default:
		return fmt.Sprintf("AnimatorState(%d)", uint8(s))
	}
}

// Frame is what an Animator hands to its consumer on every tick.
type Frame struct {
	Now        time.Time
	Pose       Pose
	Transforms []SegmentTransform
	Done       bool
}

// Animator drives one skeleton: it accepts target poses, ticks its
// interpolator once per scheduled frame until the target is reached, and
// hands each live pose and its transforms to OnFrame.
//
// Only the most recent target matters. A new target cancels the pending
// frame synchronously, so no stale frame can apply a superseded animation.
type Animator struct {
	Name string

	// OnFrame receives every rendered frame. The Frame's pose and transforms
	// are reused by later frames and MUST be copied to be retained.
	OnFrame func(Frame)

	skeleton        *Skeleton
	interp          *Interpolator
	sched           Scheduler
	handle          FrameHandle
	state           AnimatorState
	defaultDuration time.Duration
	transforms      []SegmentTransform
	frames          uint64
	debug           bool
}

// NewAnimator creates an idle animator resting at initial (merged over the
// skeleton's neutral pose).
func NewAnimator(sk *Skeleton, sched Scheduler, initial Pose) *Animator {
	a := &Animator{
		Name:            sk.Name,
		skeleton:        sk,
		interp:          NewInterpolator(sk.Joints(), initial),
		sched:           sched,
		defaultDuration: DefaultDuration,
	}
	a.transforms = sk.RenderInto(a.transforms, a.interp.Current())
	return a
}

// Skeleton returns the driven skeleton.
func (a *Animator) Skeleton() *Skeleton { return a.skeleton }

// Interpolator returns the animator's interpolator, e.g. to set Easing.
func (a *Animator) Interpolator() *Interpolator { return a.interp }

// State returns Idle or Animating.
func (a *Animator) State() AnimatorState { return a.state }

// Pose returns the live pose. MUST NOT be mutated.
func (a *Animator) Pose() Pose { return a.interp.Current() }

// Target returns the complete target pose. MUST NOT be mutated.
func (a *Animator) Target() Pose { return a.interp.Target() }

// Transforms returns the transforms of the last rendered frame. MUST NOT be
// mutated.
func (a *Animator) Transforms() []SegmentTransform { return a.transforms }

// Frames returns how many frames have been rendered.
func (a *Animator) Frames() uint64 { return a.frames }

// DefaultDuration returns the duration used by SetTargetDefault.
func (a *Animator) DefaultDuration() time.Duration { return a.defaultDuration }

// SetDefaultDuration sets the duration used by SetTargetDefault. Values <= 0
// restore DefaultDuration.
func (a *Animator) SetDefaultDuration(d time.Duration) {
	if d <= 0 {
		d = DefaultDuration
	}
	a.defaultDuration = d
}

// SetDebug enables retarget and completion logging to stderr.
func (a *Animator) SetDebug(enabled bool) { a.debug = enabled }

// SetTarget animates toward target over d. Partial targets merge over the
// current target. Returns false when the animator is idle and target would
// not change anything.
func (a *Animator) SetTarget(target Pose, d time.Duration) bool {
	if a.state == Idle && a.interp.Done() {
		merged := a.interp.Target().Merge(a.skeleton.Joints().Sanitize(target, a.interp.Target()))
		if merged.Equal(a.interp.Target(), 1e-9) {
			return false
		}
	}
	a.handle.Cancel()
	a.interp.Retarget(target, d)
	if a.debug {
		debugf(a.Name, "retarget over %v (was %s)", d, a.state)
	}
	a.schedule()
	return true
}

// SetTargetDefault is SetTarget with the animator's default duration.
func (a *Animator) SetTargetDefault(target Pose) bool {
	return a.SetTarget(target, a.defaultDuration)
}

// SetOffset animates the root offset to (x, y).
func (a *Animator) SetOffset(x, y float64, d time.Duration) bool {
	return a.SetTarget(Pose{JointX: x, JointY: y}, d)
}

// Snap jumps to pose without animating. The new pose is delivered on the
// next frame.
func (a *Animator) Snap(pose Pose) {
	a.handle.Cancel()
	a.interp.Snap(pose)
	a.schedule()
}

// Stop cancels the pending frame and freezes the figure at its live pose.
func (a *Animator) Stop() {
	a.handle.Cancel()
	a.handle = FrameHandle{}
	a.interp.Snap(a.interp.Current())
	a.state = Idle
}

func (a *Animator) schedule() {
	a.state = Animating
	a.handle = a.sched.Schedule(a.frame)
}

func (a *Animator) frame(now time.Time) {
	a.handle = FrameHandle{}
	pose := a.interp.Tick(now)
	a.transforms = a.skeleton.RenderInto(a.transforms, pose)
	a.frames++
	done := a.interp.Done()

	// Schedule before notifying so a consumer that retargets from OnFrame
	// cancels this handle rather than racing a second one.
	if done {
		a.state = Idle
		if a.debug {
			debugf(a.Name, "reached target after %d frames", a.frames)
		}
	} else {
		a.handle = a.sched.Schedule(a.frame)
	}

	if a.OnFrame != nil {
		a.OnFrame(Frame{Now: now, Pose: pose, Transforms: a.transforms, Done: done})
	}
}
