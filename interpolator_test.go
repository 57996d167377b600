package stickfigure

import (
	"math"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func testJoints() *JointSet {
	return NewJointSet(
		LinearJoint(JointX, 0),
		AngularJoint("a", 0),
		AngularJoint("b", 90),
	)
}

func TestInterpolatorStartsDone(t *testing.T) {
	ip := NewInterpolator(testJoints(), Pose{"a": -90})
	if !ip.Done() {
		t.Error("new interpolator should be done")
	}
	assertNear(t, "a normalized", ip.Current()["a"], 270)
	assertNear(t, "b neutral", ip.Current()["b"], 90)
	got := ip.Tick(t0)
	assertNear(t, "tick a", got["a"], 270)
}

func TestInterpolatorLinearAndAngular(t *testing.T) {
	ip := NewInterpolator(testJoints(), Pose{JointX: 0, "a": 350})
	ip.Retarget(Pose{JointX: 100, "a": 10}, time.Second)

	p := ip.Tick(t0)
	assertNear(t, "x@0", p[JointX], 0)
	assertNear(t, "a@0", p["a"], 350)

	p = ip.Tick(t0.Add(500 * time.Millisecond))
	assertNear(t, "x@.5", p[JointX], 50)
	assertNear(t, "a@.5", p["a"], 0)

	p = ip.Tick(t0.Add(time.Second))
	assertNear(t, "x@1", p[JointX], 100)
	assertNear(t, "a@1", p["a"], 10)
	if !ip.Done() {
		t.Error("expected done")
	}
}

func TestInterpolatorZeroDurationSnap(t *testing.T) {
	ip := NewInterpolator(testJoints(), nil)
	target := Pose{JointX: -12.5, "a": 123, "b": 321}
	ip.Retarget(target, 0)
	p := ip.Tick(t0)
	for k, v := range target {
		if p[k] != v {
			t.Errorf("%s = %v, want %v", k, p[k], v)
		}
	}
	if !ip.Done() {
		t.Error("zero duration should complete in one tick")
	}
}

func TestInterpolatorContinuityOnRetarget(t *testing.T) {
	for _, frac := range []float64{0.1, 0.33, 0.5, 0.9} {
		ip := NewInterpolator(testJoints(), Pose{JointX: 0, "a": 0, "b": 0})
		ip.Retarget(Pose{JointX: 100, "a": 170, "b": 300}, time.Second)
		ip.Tick(t0)
		before := ip.Tick(t0.Add(time.Duration(frac * float64(time.Second)))).Clone()

		ip.Retarget(Pose{JointX: -50, "a": 10, "b": 45}, time.Second)
		// The first tick after a retarget is t0 of the new animation.
		after := ip.Tick(t0.Add(2 * time.Second))
		for k, v := range before {
			if math.Abs(after[k]-v) > 1e-9 {
				t.Errorf("frac %v: %s jumped %v -> %v", frac, k, v, after[k])
			}
		}
	}
}

func TestInterpolatorIdempotentCompletion(t *testing.T) {
	ip := NewInterpolator(testJoints(), nil)
	ip.Retarget(Pose{"a": 45}, 100*time.Millisecond)
	ip.Tick(t0)
	done := ip.Tick(t0.Add(time.Second)).Clone()
	for i := 1; i <= 3; i++ {
		p := ip.Tick(t0.Add(time.Duration(i) * time.Hour))
		if !p.Equal(done, 0) {
			t.Fatalf("tick %d changed pose: %s -> %s", i, done, p)
		}
	}
	if !ip.State().Start.Equal(done, 0) {
		t.Error("start not frozen at completion")
	}

	ip.Retarget(Pose{"a": 45}, 100*time.Millisecond)
	ip.Tick(t0.Add(2 * time.Hour))
	p := ip.Tick(t0.Add(2*time.Hour + 50*time.Millisecond))
	if !p.Equal(done, 1e-9) {
		t.Errorf("identical retarget moved pose: %s", p)
	}
}

func TestInterpolatorOppositeAnglesTieBreak(t *testing.T) {
	ip := NewInterpolator(testJoints(), Pose{"a": 0})
	ip.Retarget(Pose{"a": 180}, time.Second)
	ip.Tick(t0)
	p := ip.Tick(t0.Add(500 * time.Millisecond))
	assertNear(t, "a", p["a"], 90)
}

func TestInterpolatorPartialTargetMerges(t *testing.T) {
	ip := NewInterpolator(HumanJoints, nil)
	before := ip.Target().Clone()
	ip.Retarget(Pose{HeadRotation: 10}, time.Second)
	for k, v := range before {
		if k == HeadRotation {
			continue
		}
		if ip.Target()[k] != v {
			t.Errorf("%s = %v, want %v", k, ip.Target()[k], v)
		}
	}
	assertNear(t, "head", ip.Target()[HeadRotation], 10)
}

func TestInterpolatorIgnoresUnknownKeys(t *testing.T) {
	ip := NewInterpolator(testJoints(), nil)
	ip.Retarget(Pose{"tail": 40}, 0)
	p := ip.Tick(t0)
	if _, ok := p["tail"]; ok {
		t.Error("unknown key leaked into pose")
	}
	if len(p) != 3 {
		t.Errorf("len = %d, want 3", len(p))
	}
}

func TestInterpolatorEasing(t *testing.T) {
	ip := NewInterpolator(testJoints(), nil)
	ip.Easing = ease.InQuad
	ip.Retarget(Pose{JointX: 100}, time.Second)
	ip.Tick(t0)
	p := ip.Tick(t0.Add(500 * time.Millisecond))
	if math.Abs(p[JointX]-25) > 1e-3 {
		t.Errorf("x = %v, want 25", p[JointX])
	}
}

func TestEasingByName(t *testing.T) {
	if _, ok := EasingByName(""); !ok {
		t.Error("empty name should be linear")
	}
	if _, ok := EasingByName("inOutSine"); !ok {
		t.Error("inOutSine missing")
	}
	if _, ok := EasingByName("wobble"); ok {
		t.Error("unknown easing found")
	}
}

func TestInterpolatorWrapsAnglesPastOneTurn(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{450, 90},
		{-370, 350},
		{720, 0},
	}
	for _, tt := range tests {
		ip := NewInterpolator(testJoints(), nil)
		ip.Retarget(Pose{"a": tt.in}, 0)
		got := ip.Tick(t0)["a"]
		assertNear(t, "a", got, tt.want)
		if math.Signbit(got) {
			t.Errorf("Retarget(%v) produced -0", tt.in)
		}
	}
}
