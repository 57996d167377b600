package stickfigure

import (
	"image/color"
	"math"
	"testing"
)

func nanValue() float64 { return math.NaN() }

func TestCheckRigWarnings(t *testing.T) {
	r := NewRig("root", 0, 0)
	r.AddChild(r.Root(), "child", 10, 0)
	r.AddChildAt(r.Root(), -5, "behind", 10, 0)
	if n := CheckRig(r); n != 2 {
		t.Errorf("warnings = %d, want 2", n)
	}
}

func TestCheckRigDeepChain(t *testing.T) {
	r := NewRig("s0", 1, 0)
	id := r.Root()
	for i := 1; i <= debugMaxRigDepth+1; i++ {
		id = r.AddChild(id, "s"+string(rune('A'+i%26))+string(rune('a'+i/26)), 1, 0)
	}
	if n := CheckRig(r); n != 1 {
		t.Errorf("warnings = %d, want 1", n)
	}
}

func TestColorRGBAPremultiplies(t *testing.T) {
	got := Color{1, 0.5, 0, 0.5}.RGBA()
	want := color.RGBA{R: 128, G: 64, B: 0, A: 128}
	if got != want {
		t.Errorf("RGBA = %+v, want %+v", got, want)
	}
}
