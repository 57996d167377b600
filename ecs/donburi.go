package ecs

import (
	"github.com/phanxgames/stickfigure"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
	"github.com/yohamta/donburi/filter"
)

// Figure is the component Spawn stores on each figure entity.
type Figure struct {
	Animator  *stickfigure.Animator
	Sequencer *stickfigure.Sequencer
}

// FigureComponent holds the Figure of a spawned entity.
var FigureComponent = donburi.NewComponentType[Figure]()

// FrameEvent is published for every animator frame.
type FrameEvent struct {
	Entity donburi.Entity
	Name   string
	Pose   stickfigure.Pose
	Done   bool
}

// StepEvent is published when a sequence step starts, and with Index -1
// when the sequence finishes.
type StepEvent struct {
	Entity donburi.Entity
	Index  int
}

var (
	FrameEventType = events.NewEventType[FrameEvent]()
	StepEventType  = events.NewEventType[StepEvent]()
)

var figures = donburi.NewQuery(filter.Contains(FigureComponent))

// Spawn creates an entity for anim and seqr (which may be nil). Existing
// OnFrame, OnStep and OnDone callbacks keep running before the events are
// published.
func Spawn(world donburi.World, anim *stickfigure.Animator, seqr *stickfigure.Sequencer) donburi.Entity {
	e := world.Create(FigureComponent)
	FigureComponent.SetValue(world.Entry(e), Figure{Animator: anim, Sequencer: seqr})

	prevFrame := anim.OnFrame
	anim.OnFrame = func(f stickfigure.Frame) {
		if prevFrame != nil {
			prevFrame(f)
		}
		FrameEventType.Publish(world, FrameEvent{Entity: e, Name: anim.Name, Pose: f.Pose.Clone(), Done: f.Done})
	}

	if seqr != nil {
		prevStep, prevDone := seqr.OnStep, seqr.OnDone
		seqr.OnStep = func(i int) {
			if prevStep != nil {
				prevStep(i)
			}
			StepEventType.Publish(world, StepEvent{Entity: e, Index: i})
		}
		seqr.OnDone = func() {
			if prevDone != nil {
				prevDone()
			}
			StepEventType.Publish(world, StepEvent{Entity: e, Index: -1})
		}
	}
	return e
}

// EachFigure calls fn for every spawned figure.
func EachFigure(world donburi.World, fn func(donburi.Entity, *Figure)) {
	figures.Each(world, func(entry *donburi.Entry) {
		fn(entry.Entity(), FigureComponent.Get(entry))
	})
}

// Idle reports whether every figure in world is idle with no sequence
// running.
func Idle(world donburi.World) bool {
	idle := true
	EachFigure(world, func(_ donburi.Entity, f *Figure) {
		if f.Animator.State() != stickfigure.Idle || (f.Sequencer != nil && f.Sequencer.Running()) {
			idle = false
		}
	})
	return idle
}
