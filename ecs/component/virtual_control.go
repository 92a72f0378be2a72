package component

import (
	"image/color"

	"github.com/milk9111/touchpad/touch"
)

// VirtualControl places a touch.Control on screen. The control's anchored
// position is the visual's position; Radius is its hit area.
type VirtualControl struct {
	Name    string
	Label   string
	Radius  float64
	Color   color.Color
	Control *touch.Control
}

var VirtualControlComponent = NewComponent[VirtualControl]()
