package stickfigure

import "math"

// defaultDragDeadZone is how far, in pixels, a pointer must travel after a
// press before a drag starts.
const defaultDragDeadZone = 4.0

// HitShape is a region used to decide whether a press grabs a figure.
type HitShape interface {
	Contains(x, y float64) bool
}

// HitRect is an axis-aligned rectangular hit area.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// HitCircle is a circular hit area.
type HitCircle struct {
	CenterX, CenterY, Radius float64
}

// Contains reports whether (x, y) lies inside or on the circle.
func (c HitCircle) Contains(x, y float64) bool {
	dx := x - c.CenterX
	dy := y - c.CenterY
	return dx*dx+dy*dy <= c.Radius*c.Radius
}

// DragContext carries drag event data. Delta is the movement since the
// previous drag event.
type DragContext struct {
	StartX, StartY float64
	X, Y           float64
	DeltaX, DeltaY float64
}

// Dragger turns press/move/release pointer input into drag events once the
// pointer leaves the dead zone.
type Dragger struct {
	DeadZone float64
	// Hit, when set, decides whether a press at (x, y) may start a drag.
	Hit HitShape

	OnDragStart func(DragContext)
	OnDrag      func(DragContext)
	OnDragEnd   func(DragContext)

	down     bool
	dragging bool
	start    Vec2
	last     Vec2
}

// NewDragger creates a dragger with the default dead zone.
func NewDragger() *Dragger {
	return &Dragger{DeadZone: defaultDragDeadZone}
}

// Dragging reports whether a drag is in progress.
func (d *Dragger) Dragging() bool { return d.dragging }

// Press begins tracking a pointer. Returns false when Hit rejects the
// point.
func (d *Dragger) Press(x, y float64) bool {
	if d.Hit != nil && !d.Hit.Contains(x, y) {
		return false
	}
	d.down = true
	d.dragging = false
	d.start = Vec2{x, y}
	d.last = d.start
	return true
}

// Move updates the pointer position, starting the drag when the pointer has
// travelled beyond the dead zone.
func (d *Dragger) Move(x, y float64) {
	if !d.down {
		return
	}
	if !d.dragging {
		if math.Hypot(x-d.start.X, y-d.start.Y) <= d.DeadZone {
			return
		}
		d.dragging = true
		if d.OnDragStart != nil {
			d.OnDragStart(d.context(x, y))
		}
	}
	ctx := d.context(x, y)
	d.last = Vec2{x, y}
	if ctx.DeltaX == 0 && ctx.DeltaY == 0 {
		return
	}
	if d.OnDrag != nil {
		d.OnDrag(ctx)
	}
}

// Release ends tracking, firing OnDragEnd if a drag was in progress.
func (d *Dragger) Release(x, y float64) {
	if !d.down {
		return
	}
	if d.dragging {
		d.Move(x, y)
		if d.OnDragEnd != nil {
			d.OnDragEnd(d.context(x, y))
		}
	}
	d.down = false
	d.dragging = false
}

func (d *Dragger) context(x, y float64) DragContext {
	return DragContext{
		StartX: d.start.X,
		StartY: d.start.Y,
		X:      x,
		Y:      y,
		DeltaX: x - d.last.X,
		DeltaY: y - d.last.Y,
	}
}

// figureHit grabs a figure anywhere inside its last rendered bounds plus a
// margin.
type figureHit struct {
	anim   *Animator
	margin float64
}

func (h figureHit) Contains(x, y float64) bool {
	b := Bounds(h.anim.Transforms())
	return HitRect{
		X:      b.X - h.margin,
		Y:      b.Y - h.margin,
		Width:  b.Width + 2*h.margin,
		Height: b.Height + 2*h.margin,
	}.Contains(x, y)
}

// NewFigureDragger returns a Dragger that repositions anim's root offset as
// the pointer drags the figure. Offsets snap so the figure stays under the
// pointer.
// Each move retargets the whole merged pose with zero duration, so a preset
// still animating when the drag starts snaps to its target along with the
// root.
func NewFigureDragger(anim *Animator) *Dragger {
	d := NewDragger()
	d.Hit = figureHit{anim: anim, margin: 10}
	d.OnDrag = func(ctx DragContext) {
		t := anim.Target()
		anim.SetOffset(t[JointX]+ctx.DeltaX, t[JointY]+ctx.DeltaY, 0)
	}
	return d
}
