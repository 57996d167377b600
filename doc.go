// Package stickfigure animates hierarchical stick figures.
//
// A figure is a [Rig]: a tree of [Segment] sticks, each attached to its
// parent at an anchor distance along the parent and rotated relative to it.
// Composing the tree yields one [SegmentTransform] per stick, in pre-order,
// with absolute start and end points ready for any renderer.
//
// # Poses and joints
//
// A [Pose] maps [Joint] names to values. A [JointSet] declares which joints a
// skeleton understands, whether each is angular (degrees, wrapped) or linear
// (the root offset), its neutral value and its clamp range. Unknown keys are
// dropped, NaN falls back to the previous value and infinities clamp.
//
//	sk := stickfigure.NewHumanSkeleton(1)
//	transforms := sk.Render(stickfigure.Pose{
//		stickfigure.JointX:       320,
//		stickfigure.JointY:       260,
//		stickfigure.HeadRotation: 15,
//	})
//
// # Animation
//
// An [Animator] eases a skeleton from its live pose toward a target with an
// [Interpolator]. Angular joints take the shortest way round; a target
// exactly opposite turns through +180. Partial targets merge over the
// previous target. Retargeting mid-flight starts from the live pose, so
// motion never jumps.
//
// Animators do not own a clock. They schedule one callback per frame on a
// [Scheduler]; [FrameQueue] is the implementation everything here uses,
// driven by an ebiten Update, a server ticker or a simulated clock:
//
//	q := stickfigure.NewFrameQueue()
//	anim := stickfigure.NewAnimator(sk, q, nil)
//	run, _ := stickfigure.HumanPresets().Get(stickfigure.PresetRun)
//	anim.SetTarget(run, 300*time.Millisecond)
//	for range 30 {
//		now = now.Add(time.Second / 60)
//		q.RunFrame(now)
//	}
//
// [Sequencer] plays named presets and poses in order, optionally looping.
//
// # Input
//
// [Joystick] quantizes pointer offsets into eight-way [JoystickEvent]s and
// [JoystickDriver] turns them into running and leaning. [Dragger] starts a
// drag once the pointer leaves its dead zone; [NewFigureDragger] moves a
// figure's root offset.
//
// # Rendering
//
// [Rasterize] draws transforms into an image without a GPU, which is what
// the HTTP server's frame endpoint and the frame exporter use. The view
// package draws the same transforms with ebiten.
package stickfigure
