package stickfigure

import (
	"fmt"
	"math"
)

// SegmentID indexes a segment inside its Rig. IDs are dense and stable for
// the lifetime of the rig; the root is always 0.
type SegmentID int

// NoSegment is the parent of the root segment.
const NoSegment SegmentID = -1

// Decoration is a visual attached to a segment at a fixed offset and
// rotation inside the segment's local frame. Width and Height are size hints
// for renderers; the kinematic core never reads them.
type Decoration struct {
	Name           string
	OffsetX        float64
	OffsetY        float64
	OffsetRotation float64 // degrees
	Width          float64
	Height         float64
}

// Segment is one rigid member of a Rig. A single flat record is used for all
// segments; relations are expressed through IDs so the tree lives in one
// slice.
type Segment struct {
	ID     SegmentID
	Name   string
	Length float64

	// Rotation is the authored rotation in degrees, relative to the parent's
	// rotated frame. It is used whenever Joint is empty or the pose has no
	// usable value for Joint.
	Rotation float64
	Joint    Joint

	Decoration *Decoration

	// Hierarchy
	Parent   SegmentID
	Anchor   float64 // distance along the parent where this segment pivots
	children []SegmentID
}

// Children returns the ordered child IDs. The returned slice MUST NOT be
// mutated by the caller.
func (s *Segment) Children() []SegmentID {
	return s.children
}

// Rig is an arena of segments forming one rooted tree. Topology is fixed
// once built; only rotation values supplied per render call vary.
type Rig struct {
	segments []Segment
	byName   map[string]SegmentID

	// BaseRotation is added to the root's rotation, in degrees.
	BaseRotation float64
	// Origin is the world position of the root before the pose's x/y
	// offsets are applied.
	Origin Vec2
}

// NewRig creates a rig with a single root segment.
func NewRig(rootName string, length, rotation float64) *Rig {
	if length < 0 || math.IsNaN(length) {
		panic("stickfigure: segment length must be >= 0")
	}
	r := &Rig{byName: make(map[string]SegmentID)}
	r.segments = append(r.segments, Segment{
		ID:       0,
		Name:     rootName,
		Length:   length,
		Rotation: rotation,
		Parent:   NoSegment,
	})
	r.byName[rootName] = 0
	return r
}

// Root returns the root segment ID.
func (r *Rig) Root() SegmentID { return 0 }

// Len returns the number of segments.
func (r *Rig) Len() int { return len(r.segments) }

// Segment returns the segment with the given ID.
// Panics if id is out of range.
func (r *Rig) Segment(id SegmentID) *Segment {
	r.checkID(id)
	return &r.segments[id]
}

// Lookup finds a segment by name.
func (r *Rig) Lookup(name string) (SegmentID, bool) {
	id, ok := r.byName[name]
	return id, ok
}

// AddChild appends a child anchored at the end of parent.
func (r *Rig) AddChild(parent SegmentID, name string, length, rotation float64) SegmentID {
	r.checkID(parent)
	return r.AddChildAt(parent, r.segments[parent].Length, name, length, rotation)
}

// AddChildAt appends a child anchored anchor units along parent.
// Panics on an unknown parent, a duplicate name or a negative length.
func (r *Rig) AddChildAt(parent SegmentID, anchor float64, name string, length, rotation float64) SegmentID {
	r.checkID(parent)
	if length < 0 || math.IsNaN(length) {
		panic("stickfigure: segment length must be >= 0")
	}
	if math.IsNaN(anchor) || math.IsInf(anchor, 0) {
		panic("stickfigure: anchor must be finite")
	}
	if _, dup := r.byName[name]; dup {
		panic(fmt.Sprintf("stickfigure: duplicate segment name %q", name))
	}
	id := SegmentID(len(r.segments))
	r.segments = append(r.segments, Segment{
		ID:       id,
		Name:     name,
		Length:   length,
		Rotation: rotation,
		Parent:   parent,
		Anchor:   anchor,
	})
	r.segments[parent].children = append(r.segments[parent].children, id)
	r.byName[name] = id
	return id
}

// Bind drives the segment's rotation from the named joint.
func (r *Rig) Bind(id SegmentID, joint Joint) {
	r.checkID(id)
	r.segments[id].Joint = joint
}

// SetDecoration attaches a decoration to the segment.
func (r *Rig) SetDecoration(id SegmentID, d Decoration) {
	r.checkID(id)
	r.segments[id].Decoration = &d
}

// Depth returns the number of ancestors of id.
func (r *Rig) Depth(id SegmentID) int {
	r.checkID(id)
	depth := 0
	for p := r.segments[id].Parent; p != NoSegment; p = r.segments[p].Parent {
		depth++
	}
	return depth
}

func (r *Rig) checkID(id SegmentID) {
	if id < 0 || int(id) >= len(r.segments) {
		panic(fmt.Sprintf("stickfigure: segment id %d out of range", id))
	}
}

// --- Declarative construction ---

// SegmentDef describes a segment and its subtree. ChildAxes holds the anchor
// distance for each child by index; a child with no entry is anchored at the
// end of this segment.
type SegmentDef struct {
	Name       string
	Length     float64
	Rotation   float64
	Joint      Joint
	Decoration *Decoration
	ChildAxes  []float64
	Children   []SegmentDef
}

// BuildRig creates a rig from a nested definition.
func BuildRig(def SegmentDef) *Rig {
	r := NewRig(def.Name, def.Length, def.Rotation)
	r.applyDef(r.Root(), def)
	return r
}

func (r *Rig) applyDef(id SegmentID, def SegmentDef) {
	if def.Joint != "" {
		r.Bind(id, def.Joint)
	}
	if def.Decoration != nil {
		r.SetDecoration(id, *def.Decoration)
	}
	for i, child := range def.Children {
		anchor := def.Length
		if i < len(def.ChildAxes) {
			anchor = def.ChildAxes[i]
		}
		cid := r.AddChildAt(id, anchor, child.Name, child.Length, child.Rotation)
		r.applyDef(cid, child)
	}
}

// --- Composition ---

// SegmentTransform is the absolute placement of one segment for one pose.
type SegmentTransform struct {
	ID     SegmentID
	Name   string
	Joint  Joint
	Depth  int
	Length float64

	Origin   Vec2    // world position of the segment's pivot
	End      Vec2    // world position of the segment's far end
	Rotation float64 // absolute rotation in degrees, not normalized
	World    Transform

	HasDecoration bool
	Decoration    DecorationTransform
}

// DecorationTransform is the absolute placement of a segment's decoration.
type DecorationTransform struct {
	Decoration Decoration
	Position   Vec2
	Rotation   float64 // absolute rotation in degrees
	World      Transform
}

// Render composes absolute transforms for every segment in depth-first
// pre-order. Joint values come from pose; segments whose joint is missing or
// non-finite in pose use their authored rotation. The pose's x and y keys
// offset the root.
func (r *Rig) Render(pose Pose) []SegmentTransform {
	return r.RenderInto(make([]SegmentTransform, 0, len(r.segments)), pose)
}

// RenderInto is Render appending into dst, so callers can reuse a buffer
// across frames.
func (r *Rig) RenderInto(dst []SegmentTransform, pose Pose) []SegmentTransform {
	x := r.Origin.X + finiteOr(pose[JointX], 0)
	y := r.Origin.Y + finiteOr(pose[JointY], 0)
	root := &r.segments[0]
	rot := r.BaseRotation + r.rotationOf(root, pose)
	return r.compose(dst, 0, rootTransform(x, y, rot), rot, 0, pose)
}

func (r *Rig) compose(dst []SegmentTransform, id SegmentID, world [6]float64, absRot float64, depth int, pose Pose) []SegmentTransform {
	s := &r.segments[id]
	ox, oy := transformPoint(world, 0, 0)
	ex, ey := transformPoint(world, s.Length, 0)
	st := SegmentTransform{
		ID:       id,
		Name:     s.Name,
		Joint:    s.Joint,
		Depth:    depth,
		Length:   s.Length,
		Origin:   Vec2{ox, oy},
		End:      Vec2{ex, ey},
		Rotation: absRot,
		World:    Transform(world),
	}
	if d := s.Decoration; d != nil {
		dw := multiplyAffine(world, localTransform(0, d.OffsetRotation))
		dw[4], dw[5] = transformPoint(world, d.OffsetX, d.OffsetY)
		st.HasDecoration = true
		st.Decoration = DecorationTransform{
			Decoration: *d,
			Position:   Vec2{dw[4], dw[5]},
			Rotation:   absRot + d.OffsetRotation,
			World:      Transform(dw),
		}
	}
	dst = append(dst, st)

	for _, cid := range s.children {
		c := &r.segments[cid]
		rot := r.rotationOf(c, pose)
		cw := multiplyAffine(world, localTransform(c.Anchor, rot))
		dst = r.compose(dst, cid, cw, absRot+rot, depth+1, pose)
	}
	return dst
}

func (r *Rig) rotationOf(s *Segment, pose Pose) float64 {
	if s.Joint == "" {
		return s.Rotation
	}
	v, ok := pose[s.Joint]
	if !ok {
		return s.Rotation
	}
	return finiteOr(v, s.Rotation)
}

func finiteOr(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}
