// Package ecs attaches stick figures to a [Donburi] world.
//
// [Spawn] stores an animator and its sequencer as a component on a new
// entity and republishes their callbacks as typed events, so ECS systems
// can react to frames and sequence steps without holding the animator.
//
// Usage:
//
//	e := ecs.Spawn(world, fig.Animator, fig.Sequencer)
//	ecs.FrameEventType.Subscribe(world, onFrame)
//	// once per tick, after the frame queue has run:
//	events.ProcessAllEvents(world)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
