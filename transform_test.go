package stickfigure

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertVec(t *testing.T, name string, got, want Vec2) {
	t.Helper()
	if math.Abs(got.X-want.X) > 1e-6 || math.Abs(got.Y-want.Y) > 1e-6 {
		t.Errorf("%s = (%v, %v), want (%v, %v)", name, got.X, got.Y, want.X, want.Y)
	}
}

func assertMatrix(t *testing.T, name string, got, want [6]float64) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

// --- localTransform ---

func TestLocalTransformIdentity(t *testing.T) {
	assertMatrix(t, "identity", localTransform(0, 0), identityTransform)
}

func TestLocalTransformAnchor(t *testing.T) {
	assertMatrix(t, "anchor", localTransform(50, 0), [6]float64{1, 0, 0, 1, 50, 0})
}

func TestLocalTransformRotation90(t *testing.T) {
	// cos(90)=0, sin(90)=1; +90 turns the x axis toward screen-down.
	assertMatrix(t, "rot90", localTransform(0, 90), [6]float64{0, 1, -1, 0, 0, 0})
}

func TestRootTransform(t *testing.T) {
	got := rootTransform(100, 200, -90)
	assertMatrix(t, "root", got, [6]float64{0, -1, 1, 0, 100, 200})
	x, y := transformPoint(got, 10, 0)
	assertNear(t, "x", x, 100)
	assertNear(t, "y", y, 190)
}

// --- multiplyAffine ---

func TestMultiplyAffineIdentity(t *testing.T) {
	m := [6]float64{2, 0.5, -0.5, 3, 10, 20}
	assertMatrix(t, "I*m", multiplyAffine(identityTransform, m), m)
	assertMatrix(t, "m*I", multiplyAffine(m, identityTransform), m)
}

func TestMultiplyAffineComposesTranslationThroughRotation(t *testing.T) {
	parent := localTransform(0, 90)
	child := localTransform(50, 0)
	got := multiplyAffine(parent, child)
	x, y := transformPoint(got, 0, 0)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 50)
}

// --- invertAffine ---

func TestInvertAffineRoundTrip(t *testing.T) {
	m := multiplyAffine(rootTransform(30, -40, 37), localTransform(12, -120))
	inv := invertAffine(m)
	assertMatrix(t, "m*inv", multiplyAffine(m, inv), identityTransform)
}

func TestInvertAffineSingular(t *testing.T) {
	assertMatrix(t, "singular", invertAffine([6]float64{0, 0, 0, 0, 5, 5}), identityTransform)
}

func TestTransformApplyInverse(t *testing.T) {
	tr := Transform(rootTransform(100, 50, 45))
	w := tr.Apply(10, 20)
	l := tr.Inverse(w.X, w.Y)
	assertVec(t, "local", l, Vec2{10, 20})
}
