package component

import "image/color"

// Avatar tunes how an entity responds to virtual input.
type Avatar struct {
	Size        float64
	MoveSpeed   float64
	DashImpulse float64
	Color       color.Color

	// Heading is the facing angle in radians, screen space.
	Heading float64
	Dashes  int
}

var AvatarComponent = NewComponent[Avatar]()
