package stickfigure

import (
	"testing"
	"time"
)

// frameClock steps a FrameQueue at a fixed refresh rate.
type frameClock struct {
	q   *FrameQueue
	now time.Time
}

func newFrameClock() *frameClock {
	return &frameClock{q: NewFrameQueue(), now: t0}
}

func (c *frameClock) step(n int) {
	for i := 0; i < n; i++ {
		c.q.RunFrame(c.now)
		c.now = c.now.Add(16 * time.Millisecond)
	}
}

func TestAnimatorReachesTargetAndGoesIdle(t *testing.T) {
	c := newFrameClock()
	a := NewAnimator(NewHumanSkeleton(1), c.q, nil)
	if a.State() != Idle {
		t.Fatalf("state = %s", a.State())
	}
	var frames []Frame
	a.OnFrame = func(f Frame) { frames = append(frames, f) }

	if !a.SetTarget(Pose{HeadRotation: 30}, 100*time.Millisecond) {
		t.Fatal("SetTarget returned false")
	}
	if a.State() != Animating {
		t.Fatalf("state = %s", a.State())
	}
	c.step(20)
	if a.State() != Idle {
		t.Errorf("state = %s after completion", a.State())
	}
	if c.q.Len() != 0 {
		t.Errorf("%d frames still scheduled", c.q.Len())
	}
	last := frames[len(frames)-1]
	if !last.Done {
		t.Error("last frame not marked done")
	}
	assertNear(t, "head", last.Pose[HeadRotation], 30)
	if len(last.Transforms) != a.Skeleton().Rig().Len() {
		t.Errorf("transforms = %d", len(last.Transforms))
	}
}

func TestAnimatorNoOpTarget(t *testing.T) {
	c := newFrameClock()
	a := NewAnimator(NewHumanSkeleton(1), c.q, nil)
	if a.SetTarget(Pose{HeadRotation: 0}, time.Second) {
		t.Error("unchanged target should not animate")
	}
	if c.q.Len() != 0 {
		t.Error("frame scheduled for no-op target")
	}
}

func TestAnimatorRetargetCancelsPendingFrame(t *testing.T) {
	c := newFrameClock()
	a := NewAnimator(NewHumanSkeleton(1), c.q, nil)
	a.SetTarget(Pose{HeadRotation: 30}, time.Second)
	a.SetTarget(Pose{HeadRotation: 60}, time.Second)
	a.SetTarget(Pose{HeadRotation: 90}, time.Second)
	if c.q.Len() != 1 {
		t.Fatalf("pending = %d, want 1", c.q.Len())
	}
	calls := 0
	a.OnFrame = func(Frame) { calls++ }
	c.step(1)
	if calls != 1 {
		t.Errorf("OnFrame calls = %d, want 1", calls)
	}
	assertNear(t, "target head", a.Target()[HeadRotation], 90)
}

func TestAnimatorRetargetFromOnFrame(t *testing.T) {
	c := newFrameClock()
	a := NewAnimator(NewHumanSkeleton(1), c.q, nil)
	n := 0
	a.OnFrame = func(f Frame) {
		n++
		if n == 2 {
			a.SetTarget(Pose{HeadRotation: 5}, 50*time.Millisecond)
		}
	}
	a.SetTarget(Pose{HeadRotation: 90}, time.Second)
	c.step(3)
	if c.q.Len() != 1 {
		t.Errorf("pending = %d, want exactly one frame", c.q.Len())
	}
}

func TestAnimatorStop(t *testing.T) {
	c := newFrameClock()
	a := NewAnimator(NewHumanSkeleton(1), c.q, nil)
	a.SetTarget(Pose{HeadRotation: 90}, time.Second)
	c.step(5)
	live := a.Pose()[HeadRotation]
	a.Stop()
	c.step(5)
	if a.State() != Idle {
		t.Errorf("state = %s", a.State())
	}
	assertNear(t, "frozen", a.Pose()[HeadRotation], live)
	assertNear(t, "target", a.Target()[HeadRotation], live)
}

func TestAnimatorSetOffsetMovesRoot(t *testing.T) {
	c := newFrameClock()
	a := NewAnimator(NewHumanSkeleton(1), c.q, nil)
	a.SetOffset(40, -10, 0)
	c.step(1)
	assertVec(t, "root", a.Transforms()[0].Origin, Vec2{40, -10})
}

func TestAnimatorDefaultDuration(t *testing.T) {
	a := NewAnimator(NewPuppet(), NewFrameQueue(), nil)
	a.SetDefaultDuration(-1)
	if a.DefaultDuration() != DefaultDuration {
		t.Errorf("default = %v", a.DefaultDuration())
	}
	a.SetDefaultDuration(QuickDuration)
	if a.DefaultDuration() != QuickDuration {
		t.Errorf("default = %v", a.DefaultDuration())
	}
}
