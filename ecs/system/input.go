package system

import (
	"github.com/milk9111/touchpad/ecs"
	"github.com/milk9111/touchpad/ecs/component"
)

// Virtual input names the demo layout maps.
const (
	InputHorizontal     = "Horizontal"
	InputVertical       = "Vertical"
	InputLookHorizontal = "LookHorizontal"
	InputLookVertical   = "LookVertical"
	InputTurn           = "Turn"
	InputDash           = "Dash"
	InputPause          = "Pause"
)

// VirtualInput is the query side of the input registry.
type VirtualInput interface {
	Axis(name string) float64
	Button(name string) bool
	ButtonDown(name string) bool
	ButtonUp(name string) bool
}

// InputSystem copies virtual input values into every Input component. It
// must run after TouchDispatchSystem in the same tick.
//
// Axis queries advance control smoothing, so the registry is read once per
// tick here and everything else reads Last.
type InputSystem struct {
	input VirtualInput
	last  component.Input
}

func NewInputSystem(input VirtualInput) *InputSystem {
	return &InputSystem{input: input}
}

func (i *InputSystem) Update(w *ecs.World) {
	if i == nil || w == nil || i.input == nil {
		return
	}

	i.last = component.Input{
		MoveX:        i.input.Axis(InputHorizontal),
		MoveY:        i.input.Axis(InputVertical),
		LookX:        i.input.Axis(InputLookHorizontal),
		LookY:        i.input.Axis(InputLookVertical),
		Turn:         i.input.Axis(InputTurn),
		Dash:         i.input.Button(InputDash),
		DashPressed:  i.input.ButtonDown(InputDash),
		DashReleased: i.input.ButtonUp(InputDash),
		PausePressed: i.input.ButtonDown(InputPause),
	}

	ecs.ForEach(w, component.InputComponent, func(e ecs.Entity, input *component.Input) {
		*input = i.last
	})
}

// Last returns the values sampled by the most recent Update.
func (i *InputSystem) Last() component.Input {
	if i == nil {
		return component.Input{}
	}
	return i.last
}
