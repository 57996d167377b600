package stickfigure

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Pose maps joint names to values: degrees for angular joints, plain units
// for the root offsets. A nil Pose is a valid empty pose.
type Pose map[Joint]float64

// Clone returns a copy of p.
func (p Pose) Clone() Pose {
	out := make(Pose, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// Merge returns a new pose holding p's values overlaid with over's.
// Neither input is modified.
func (p Pose) Merge(over Pose) Pose {
	out := make(Pose, len(p)+len(over))
	for k, v := range p {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Equal reports whether p and o hold the same keys with values within eps.
// Angular equivalence is not considered; 0 and 360 differ.
func (p Pose) Equal(o Pose, eps float64) bool {
	if len(p) != len(o) {
		return false
	}
	for k, v := range p {
		ov, ok := o[k]
		if !ok || math.Abs(v-ov) > eps {
			return false
		}
	}
	return true
}

// String formats the pose with keys sorted, for logs and test failures.
func (p Pose) String() string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %.3f", k, p[Joint(k)])
	}
	b.WriteByte('}')
	return b.String()
}

// --- Angles ---

// NormalizeDegrees maps a to [0, 360).
func NormalizeDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// -1e-15 + 360 rounds to 360.
	if a >= 360 {
		a -= 360
	}
	// Mod keeps the sign of a, so -360 yields -0.
	return a + 0
}

// ShortestDelta returns the signed rotation in (-180, 180] that turns from
// onto to. Exactly opposite angles resolve to +180.
func ShortestDelta(from, to float64) float64 {
	d := NormalizeDegrees(to-from+180) - 180
	if d == -180 {
		return 180
	}
	return d
}

// LerpAngle interpolates along the shortest arc and returns a value in
// [0, 360).
func LerpAngle(from, to, t float64) float64 {
	return NormalizeDegrees(from + ShortestDelta(from, to)*t)
}
