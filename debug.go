package stickfigure

import (
	"fmt"
	"os"
)

// debugf prints a tagged line to stderr. Callers check their own debug flag
// first so release builds pay nothing for formatting.
func debugf(who, format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, "[stickfigure] %s: %s\n", who, fmt.Sprintf(format, args...))
}

// debugMaxRigDepth is the chain depth above which CheckRig warns.
const debugMaxRigDepth = 32

// CheckRig prints warnings to stderr for suspicious rig geometry: chains
// deeper than debugMaxRigDepth, negative anchors, and zero-length segments
// that carry children. It returns the number of warnings.
func CheckRig(r *Rig) int {
	warnings := 0
	for i := 0; i < r.Len(); i++ {
		s := r.Segment(SegmentID(i))
		if d := r.Depth(s.ID); d > debugMaxRigDepth {
			_, _ = fmt.Fprintf(os.Stderr, "[stickfigure] warning: segment %q depth %d exceeds %d\n",
				s.Name, d, debugMaxRigDepth)
			warnings++
		}
		if s.Parent != NoSegment && s.Anchor < 0 {
			_, _ = fmt.Fprintf(os.Stderr, "[stickfigure] warning: segment %q anchored behind parent %q at %v\n",
				s.Name, r.Segment(s.Parent).Name, s.Anchor)
			warnings++
		}
		if s.Length == 0 && len(s.children) > 0 {
			_, _ = fmt.Fprintf(os.Stderr, "[stickfigure] warning: zero-length segment %q has %d children\n",
				s.Name, len(s.children))
			warnings++
		}
	}
	return warnings
}
