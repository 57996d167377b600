package stickfigure

import "fmt"

// Skeleton is a rig paired with the joint set that drives it. Rendering is a
// pure function of the pose; a Skeleton holds no animation state and may be
// shared by any number of animators.
type Skeleton struct {
	Name   string
	rig    *Rig
	joints *JointSet
}

// NewSkeleton pairs rig with joints. Panics if a segment is bound to a joint
// missing from the set.
func NewSkeleton(name string, rig *Rig, joints *JointSet) *Skeleton {
	for i := 0; i < rig.Len(); i++ {
		seg := rig.Segment(SegmentID(i))
		if seg.Joint != "" && !joints.Contains(seg.Joint) {
			panic(fmt.Sprintf("stickfigure: segment %q bound to unknown joint %q", seg.Name, seg.Joint))
		}
	}
	return &Skeleton{Name: name, rig: rig, joints: joints}
}

// Rig returns the underlying segment arena.
func (s *Skeleton) Rig() *Rig { return s.rig }

// Joints returns the skeleton's joint set.
func (s *Skeleton) Joints() *JointSet { return s.joints }

// Neutral returns the skeleton's neutral pose.
func (s *Skeleton) Neutral() Pose { return s.joints.Neutral() }

// Render sanitizes pose against the joint set, fills missing keys with
// neutral values and composes absolute transforms for every segment.
func (s *Skeleton) Render(pose Pose) []SegmentTransform {
	return s.RenderInto(nil, pose)
}

// RenderInto is Render appending into dst[:0].
func (s *Skeleton) RenderInto(dst []SegmentTransform, pose Pose) []SegmentTransform {
	live := s.joints.Complete(s.joints.Sanitize(pose, nil), nil)
	return s.rig.RenderInto(dst[:0], live)
}

// --- Human ---

// humanBaseRotation points the root stick upward in screen space.
const humanBaseRotation = -90

// Human segment names.
const (
	SegmentBody         = "body"
	SegmentHead         = "head"
	SegmentTorso        = "torso"
	SegmentHip          = "hip"
	SegmentForeUpperArm = "foreUpperArm"
	SegmentForeLowerArm = "foreLowerArm"
	SegmentForeHand     = "foreHand"
	SegmentHindUpperArm = "hindUpperArm"
	SegmentHindLowerArm = "hindLowerArm"
	SegmentHindHand     = "hindHand"
	SegmentForeUpperLeg = "foreUpperLeg"
	SegmentForeLowerLeg = "foreLowerLeg"
	SegmentForeFoot     = "foreFoot"
	SegmentHindUpperLeg = "hindUpperLeg"
	SegmentHindLowerLeg = "hindLowerLeg"
	SegmentHindFoot     = "hindFoot"
)

// HumanDef returns the human figure definition at the given scale. Lengths,
// anchors and decoration geometry are multiplied by scale; rotations are not.
func HumanDef(scale float64) SegmentDef {
	if scale <= 0 {
		scale = 1
	}
	deco := func(name string, x, y, r, h float64) *Decoration {
		return &Decoration{
			Name:           name,
			OffsetX:        x * scale,
			OffsetY:        y * scale,
			OffsetRotation: r,
			Width:          h * 0.4 * scale,
			Height:         h * scale,
		}
	}
	limb := func(name string, joint Joint, length, rot float64, d *Decoration, children ...SegmentDef) SegmentDef {
		return SegmentDef{
			Name:       name,
			Length:     length * scale,
			Rotation:   rot,
			Joint:      joint,
			Decoration: d,
			Children:   children,
		}
	}

	hindArm := limb(SegmentHindUpperArm, HindUpperArmRotation, 45, -120, deco("hind_upper_arm", 12, -28, -90, 58),
		limb(SegmentHindLowerArm, HindLowerArmRotation, 45, 10, deco("hind_lower_arm", 22, -36, -90, 73),
			limb(SegmentHindHand, HindHandRotation, 12, 0, nil)))
	foreArm := limb(SegmentForeUpperArm, ForeUpperArmRotation, 45, -80, deco("fore_upper_arm", 12, -30, -90, 60),
		limb(SegmentForeLowerArm, ForeLowerArmRotation, 45, 10, deco("fore_lower_arm", 22, -36, -90, 75),
			limb(SegmentForeHand, ForeHandRotation, 12, 0, nil)))
	head := limb(SegmentHead, HeadRotation, 45, 0, deco("head", 3, -40, 90, 63))
	torso := limb(SegmentTorso, "", 90, 0, deco("torso", 25, -55, 90, 100))
	hindLeg := limb(SegmentHindUpperLeg, HindUpperLegRotation, 60, 0, deco("hind_upper_leg", 12, -38, -90, 80),
		limb(SegmentHindLowerLeg, HindLowerLegRotation, 50, -50, deco("hind_lower_leg", 10, -35, -90, 70),
			limb(SegmentHindFoot, HindFootRotation, 20, 90, deco("hind_foot", -15, -15, 180, 20))))
	foreLeg := limb(SegmentForeUpperLeg, ForeUpperLegRotation, 60, 70, deco("fore_upper_leg", 12, -38, -90, 80),
		limb(SegmentForeLowerLeg, ForeLowerLegRotation, 50, -90, deco("fore_lower_leg", 10, -35, -90, 70),
			limb(SegmentForeFoot, ForeFootRotation, 20, 90, deco("fore_foot", -15, -15, 180, 20))))
	hip := limb(SegmentHip, HipRotation, 15, 220, deco("hip", -20, -20, -90, 50), hindLeg, foreLeg)

	return SegmentDef{
		Name:      SegmentBody,
		Length:    10 * scale,
		Joint:     HumanRotation,
		ChildAxes: []float64{75 * scale, 90 * scale, 0, 0, 75 * scale},
		// Hind limbs first so they draw behind the torso, fore limbs last.
		Children: []SegmentDef{hindArm, head, hip, torso, foreArm},
	}
}

// NewHumanSkeleton builds the human figure at the given scale, driven by
// HumanJoints.
func NewHumanSkeleton(scale float64) *Skeleton {
	rig := BuildRig(HumanDef(scale))
	rig.BaseRotation = humanBaseRotation
	return NewSkeleton("human", rig, HumanJoints)
}

// --- Puppet ---

// Puppet joints.
const (
	PuppetMain   Joint = "main"
	PuppetLong   Joint = "long"
	PuppetShortA Joint = "shortA"
	PuppetShortB Joint = "shortB"
	PuppetShortC Joint = "shortC"
)

// PuppetJoints drives NewPuppet. Neutral values reproduce the authored
// rotations.
var PuppetJoints = NewJointSet(
	LinearJoint(JointX, 0),
	LinearJoint(JointY, 0),
	AngularJoint(PuppetMain, 0),
	AngularJoint(PuppetLong, -30),
	AngularJoint(PuppetShortA, -45),
	AngularJoint(PuppetShortB, 30),
	AngularJoint(PuppetShortC, 45),
)

// NewPuppet builds a minimal demonstration figure: one 200 unit main stick
// with two children at its start and two at its end.
func NewPuppet() *Skeleton {
	def := SegmentDef{
		Name:      "main",
		Length:    200,
		Joint:     PuppetMain,
		ChildAxes: []float64{0, 0, 200, 200},
		Children: []SegmentDef{
			{Name: "long", Length: 100, Rotation: -30, Joint: PuppetLong},
			{Name: "shortA", Length: 50, Rotation: -45, Joint: PuppetShortA},
			{Name: "shortB", Length: 50, Rotation: 30, Joint: PuppetShortB},
			{Name: "shortC", Length: 50, Rotation: 45, Joint: PuppetShortC},
		},
	}
	return NewSkeleton("puppet", BuildRig(def), PuppetJoints)
}
