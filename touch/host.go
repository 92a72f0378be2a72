package touch

import "github.com/milk9111/touchpad/common"

// NoFinger marks a control with no engaged finger.
const NoFinger = -1

// Handler receives pointer callbacks from the host's event dispatch.
type Handler interface {
	OnPointerDown(eventID int)
	OnPointerUp(eventID int)
	OnDrag(delta common.Vec2)
}

// Source answers per-frame virtual input queries.
type Source interface {
	Button() bool
	ButtonDown() bool
	ButtonUp() bool
	Axis(name string) float64
}

// Binding is what a control hands to the registry for each of its names.
type Binding interface {
	Handler
	Source
}

// Registry is the named virtual input table controls register with.
type Registry interface {
	Register(name string, b Binding) error
	Unregister(name string) bool
}

// State is the live data for one finger.
type State struct {
	Position      common.Vec2
	DeltaPosition common.Vec2
}

// TouchProvider exposes the host's current touch state.
type TouchProvider interface {
	TouchCount() int
	Touch(fingerID int) (State, bool)
	TouchStartPosition(fingerID int) common.Vec2
}

// Clock is the host's frame counter.
type Clock interface {
	CurrentFrame() int
	DeltaTime() float64
}

// Host groups the collaborators a Control is wired to.
type Host struct {
	Registry Registry
	Touches  TouchProvider
	Clock    Clock
	// Resolver defaults to EventIDResolver when nil.
	Resolver PointerIDResolver
}
