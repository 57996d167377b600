package stickfigure

import (
	"math"
	"time"
)

// Direction is an 8-way quantized joystick direction.
type Direction string

const (
	DirCenter    Direction = "center"
	DirNorth     Direction = "n"
	DirNorthEast Direction = "ne"
	DirEast      Direction = "e"
	DirSouthEast Direction = "se"
	DirSouth     Direction = "s"
	DirSouthWest Direction = "sw"
	DirWest      Direction = "w"
	DirNorthWest Direction = "nw"
)

// sectors maps 45° sectors counter-clockwise from east.
var sectors = [8]Direction{
	DirEast, DirNorthEast, DirNorth, DirNorthWest,
	DirWest, DirSouthWest, DirSouth, DirSouthEast,
}

// JoystickEvent is one reading of a Joystick.
type JoystickEvent struct {
	X         float64   `json:"x"`         // [-1, 1], right positive
	Y         float64   `json:"y"`         // [-1, 1], up positive
	Angle     float64   `json:"angle"`     // radians, counter-clockwise from east
	Magnitude float64   `json:"magnitude"` // [0, 1]
	Direction Direction `json:"direction"`
	Knob      Vec2      `json:"-"` // clamped knob offset in pixels, screen axes
}

// Joystick quantizes raw pointer offsets from its center into events. The
// knob travels inside a disk of radius MaxDistance; offsets within DeadZone
// pixels report DirCenter regardless of angle.
type Joystick struct {
	Size        float64
	DeadZone    float64
	KnobRadius  float64
	MaxDistance float64
}

// Joystick defaults.
const (
	DefaultJoystickSize     = 140
	DefaultJoystickDeadZone = 10
)

// NewJoystick creates a joystick whose base is size pixels across.
func NewJoystick(size, deadZone float64) *Joystick {
	if size <= 0 {
		size = DefaultJoystickSize
	}
	if deadZone < 0 {
		deadZone = 0
	}
	knob := math.Max(16, math.Round(size*0.22))
	return &Joystick{
		Size:        size,
		DeadZone:    deadZone,
		KnobRadius:  knob,
		MaxDistance: math.Max(0, size/2-knob),
	}
}

// Read converts a pointer offset from the joystick center (screen axes, y
// down) into an event.
func (j *Joystick) Read(dx, dy float64) JoystickEvent {
	if math.IsNaN(dx) || math.IsNaN(dy) {
		dx, dy = 0, 0
	}
	dist := math.Hypot(dx, dy)
	if dist > j.MaxDistance && dist > 0 {
		s := j.MaxDistance / dist
		dx *= s
		dy *= s
		dist = j.MaxDistance
	}

	var x, y float64
	if j.MaxDistance > 0 {
		x = dx / j.MaxDistance
		y = -dy / j.MaxDistance
	}
	angle := math.Atan2(y, x)
	dir := DirCenter
	if dist > j.DeadZone {
		dir = QuantizeAngle(angle)
	}
	return JoystickEvent{
		X:         x,
		Y:         y,
		Angle:     angle,
		Magnitude: math.Min(1, math.Hypot(x, y)),
		Direction: dir,
		Knob:      Vec2{dx, dy},
	}
}

// Release recenters the knob.
func (j *Joystick) Release() JoystickEvent {
	return j.Read(0, 0)
}

// QuantizeAngle maps an angle in radians (counter-clockwise from east) to
// the nearest of eight directions.
func QuantizeAngle(rad float64) Direction {
	twoPi := 2 * math.Pi
	a := math.Mod(rad, twoPi)
	if a < 0 {
		a += twoPi
	}
	sector := int(math.Round(a/twoPi*8)) % 8
	return sectors[sector]
}

// JoystickDriver turns joystick events into target poses: deflection walks
// the root offset and leans the body, the first deflection switches to the
// run preset and recentering returns to straight. Transitions use
// QuickDuration so the figure follows input closely.
type JoystickDriver struct {
	Speed   float64 // offset units per second at full deflection
	MaxLean float64 // degrees of body lean at full horizontal deflection

	anim   *Animator
	lib    *PresetLibrary
	moving bool
}

// NewJoystickDriver drives anim with presets from lib.
func NewJoystickDriver(anim *Animator, lib *PresetLibrary) *JoystickDriver {
	return &JoystickDriver{Speed: 160, MaxLean: 20, anim: anim, lib: lib}
}

// Moving reports whether the last applied event was outside the dead zone.
func (d *JoystickDriver) Moving() bool { return d.moving }

// Apply feeds one event covering dt of input time.
func (d *JoystickDriver) Apply(ev JoystickEvent, dt time.Duration) {
	target := Pose{}
	switch {
	case ev.Direction != DirCenter:
		if !d.moving {
			if p, err := d.lib.Get(PresetRun); err == nil {
				target = p
			}
		}
		cur := d.anim.Target()
		step := d.Speed * dt.Seconds()
		target[JointX] = cur[JointX] + ev.X*step
		target[JointY] = cur[JointY] - ev.Y*step
		target[HumanRotation] = NormalizeDegrees(ev.X * d.MaxLean)
		d.moving = true
	case d.moving:
		if p, err := d.lib.Get(PresetStraight); err == nil {
			target = p
		}
		d.moving = false
	default:
		return
	}
	d.anim.SetTarget(target, QuickDuration)
}
