package config

import (
	"fmt"

	"github.com/phanxgames/stickfigure"
)

// Build returns the skeleton and preset library named by Kind.
func (f FigureConfig) Build() (*stickfigure.Skeleton, *stickfigure.PresetLibrary, error) {
	switch f.Kind {
	case "", "human":
		return stickfigure.NewHumanSkeleton(f.Scale), stickfigure.HumanPresets(), nil
	case "puppet":
		return stickfigure.NewPuppet(), stickfigure.PuppetPresets(), nil
	default:
		return nil, nil, fmt.Errorf("unknown figure kind %q", f.Kind)
	}
}

// Origin returns the root offset pose.
func (f FigureConfig) Origin() stickfigure.Pose {
	return stickfigure.Pose{stickfigure.JointX: f.OriginX, stickfigure.JointY: f.OriginY}
}
