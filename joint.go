package stickfigure

import (
	"fmt"
	"math"
)

// Joint names one interpolated quantity of a pose.
type Joint string

// Root offsets. These are the only linear joints of the human figure.
const (
	JointX Joint = "x"
	JointY Joint = "y"
)

// Human figure joints.
const (
	HumanRotation        Joint = "humanRotation"
	HeadRotation         Joint = "headRotation"
	ForeUpperArmRotation Joint = "foreUpperArmRotation"
	ForeLowerArmRotation Joint = "foreLowerArmRotation"
	ForeHandRotation     Joint = "foreHandRotation"
	HindUpperArmRotation Joint = "hindUpperArmRotation"
	HindLowerArmRotation Joint = "hindLowerArmRotation"
	HindHandRotation     Joint = "hindHandRotation"
	HipRotation          Joint = "hipRotation"
	ForeUpperLegRotation Joint = "foreUpperLegRotation"
	ForeLowerLegRotation Joint = "foreLowerLegRotation"
	ForeFootRotation     Joint = "foreFootRotation"
	HindUpperLegRotation Joint = "hindUpperLegRotation"
	HindLowerLegRotation Joint = "hindLowerLegRotation"
	HindFootRotation     Joint = "hindFootRotation"
)

// JointKind selects how a joint is interpolated.
type JointKind uint8

const (
	Angular JointKind = iota // degrees, equivalent modulo 360
	Linear                   // plain units, no wraparound
)

func (k JointKind) String() string {
	switch k {
	case Angular:
		return "angular"
	case Linear:
		return "linear"
	default:
		return fmt.Sprintf("JointKind(%d)", uint8(k))
	}
}

// JointSpec declares one joint: its kind, the range values are clamped to,
// and the neutral value used when nothing else is known.
type JointSpec struct {
	Name    Joint     `json:"name" yaml:"name"`
	Kind    JointKind `json:"kind" yaml:"kind"`
	Min     float64   `json:"min" yaml:"min"`
	Max     float64   `json:"max" yaml:"max"`
	Neutral float64   `json:"neutral" yaml:"neutral"`
}

// Clamp limits v to the joint's range. NaN is returned unchanged; callers
// decide what replaces it.
func (s JointSpec) Clamp(v float64) float64 {
	if v < s.Min {
		return s.Min
	}
	if v > s.Max {
		return s.Max
	}
	return v
}

// Default ranges. Angular joints accept one full turn either way so authored
// negative angles (e.g. -20) survive untouched.
const (
	angularMin = -360.0
	angularMax = 360.0
	linearMin  = -100000.0
	linearMax  = 100000.0
)

// AngularJoint declares an angular joint with the default range.
func AngularJoint(name Joint, neutral float64) JointSpec {
	return JointSpec{Name: name, Kind: Angular, Min: angularMin, Max: angularMax, Neutral: neutral}
}

// LinearJoint declares a linear joint with the default range.
func LinearJoint(name Joint, neutral float64) JointSpec {
	return JointSpec{Name: name, Kind: Linear, Min: linearMin, Max: linearMax, Neutral: neutral}
}

// JointSet is the fixed, ordered set of joints a skeleton is driven by.
// Build it with NewJointSet; the zero value is an empty set.
type JointSet struct {
	specs []JointSpec
	index map[Joint]int
}

// NewJointSet validates specs and returns a set preserving their order.
// Panics on an empty or duplicate name, an inverted range, a non-finite
// bound, or a neutral value outside its range.
func NewJointSet(specs ...JointSpec) *JointSet {
	js := &JointSet{
		specs: make([]JointSpec, 0, len(specs)),
		index: make(map[Joint]int, len(specs)),
	}
	for _, s := range specs {
		if s.Name == "" {
			panic("stickfigure: joint name must not be empty")
		}
		if _, dup := js.index[s.Name]; dup {
			panic(fmt.Sprintf("stickfigure: duplicate joint %q", s.Name))
		}
		if math.IsNaN(s.Min) || math.IsNaN(s.Max) || math.IsInf(s.Min, 0) || math.IsInf(s.Max, 0) {
			panic(fmt.Sprintf("stickfigure: joint %q has a non-finite range", s.Name))
		}
		if s.Min > s.Max {
			panic(fmt.Sprintf("stickfigure: joint %q has min %v > max %v", s.Name, s.Min, s.Max))
		}
		if s.Neutral < s.Min || s.Neutral > s.Max || math.IsNaN(s.Neutral) {
			panic(fmt.Sprintf("stickfigure: joint %q neutral %v outside [%v, %v]", s.Name, s.Neutral, s.Min, s.Max))
		}
		js.index[s.Name] = len(js.specs)
		js.specs = append(js.specs, s)
	}
	return js
}

// Len returns the number of joints.
func (js *JointSet) Len() int { return len(js.specs) }

// Specs returns the joint specs in declaration order. The returned slice
// MUST NOT be mutated by the caller.
func (js *JointSet) Specs() []JointSpec { return js.specs }

// Keys returns the joint names in declaration order.
func (js *JointSet) Keys() []Joint {
	keys := make([]Joint, len(js.specs))
	for i, s := range js.specs {
		keys[i] = s.Name
	}
	return keys
}

// Spec returns the spec for name.
func (js *JointSet) Spec(name Joint) (JointSpec, bool) {
	i, ok := js.index[name]
	if !ok {
		return JointSpec{}, false
	}
	return js.specs[i], true
}

// Contains reports whether name belongs to the set.
func (js *JointSet) Contains(name Joint) bool {
	_, ok := js.index[name]
	return ok
}

// Neutral returns a complete pose of neutral values.
func (js *JointSet) Neutral() Pose {
	p := make(Pose, len(js.specs))
	for _, s := range js.specs {
		p[s.Name] = s.Neutral
	}
	return p
}

// Sanitize returns the known keys of p with every value made usable:
// unknown keys are dropped, finite angles outside their joint's range wrap
// into [0, 360) before clamping, other values are clamped (±Inf to the
// matching bound), and NaN is replaced by the value in last, or by the
// joint's neutral value when last has none.
func (js *JointSet) Sanitize(p, last Pose) Pose {
	out := make(Pose, len(p))
	for k, v := range p {
		s, ok := js.Spec(k)
		if !ok {
			continue
		}
		if math.IsNaN(v) {
			if lv, ok := last[k]; ok && !math.IsNaN(lv) {
				v = lv
			} else {
				v = s.Neutral
			}
		}
		if s.Kind == Angular && !math.IsInf(v, 0) && (v < s.Min || v > s.Max) {
			v = NormalizeDegrees(v)
		}
		out[k] = s.Clamp(v)
	}
	return out
}

// Complete returns a pose with exactly the set's keys: values from p where
// present, otherwise from fallback, otherwise neutral.
func (js *JointSet) Complete(p, fallback Pose) Pose {
	out := make(Pose, len(js.specs))
	for _, s := range js.specs {
		if v, ok := p[s.Name]; ok {
			out[s.Name] = v
		} else if fv, ok := fallback[s.Name]; ok {
			out[s.Name] = fv
		} else {
			out[s.Name] = s.Neutral
		}
	}
	return out
}

// HumanJoints is the joint set of the human skeleton. Neutral values form
// the straight pose.
var HumanJoints = NewJointSet(
	LinearJoint(JointX, 0),
	LinearJoint(JointY, 0),
	AngularJoint(HumanRotation, 0),
	AngularJoint(HeadRotation, 0),
	AngularJoint(ForeUpperArmRotation, 180),
	AngularJoint(ForeLowerArmRotation, 0),
	AngularJoint(ForeHandRotation, 0),
	AngularJoint(HindUpperArmRotation, 180),
	AngularJoint(HindLowerArmRotation, 0),
	AngularJoint(HindHandRotation, 0),
	AngularJoint(HipRotation, 200),
	AngularJoint(ForeUpperLegRotation, -20),
	AngularJoint(ForeLowerLegRotation, 0),
	AngularJoint(ForeFootRotation, 70),
	AngularJoint(HindUpperLegRotation, -20),
	AngularJoint(HindLowerLegRotation, 0),
	AngularJoint(HindFootRotation, 70),
)
