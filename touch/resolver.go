package touch

// PointerIDResolver turns the id reported by a pointer event into the finger id
// used for touch lookups.
type PointerIDResolver interface {
	Resolve(eventID int) int
}

// EventIDResolver trusts the id reported by the event.
type EventIDResolver struct{}

func (EventIDResolver) Resolve(eventID int) int {
	return eventID
}

// TouchCountResolver derives the finger id from the number of active touches.
// Simulators that emulate a single touch with the mouse report unreliable
// event ids, but always expose the emulated touch as the last index.
type TouchCountResolver struct {
	Touches TouchProvider
}

func (r TouchCountResolver) Resolve(int) int {
	if r.Touches == nil {
		return 0
	}
	if n := r.Touches.TouchCount(); n > 0 {
		return n - 1
	}
	return 0
}

// ResolverByName maps a layout resolver name to an implementation.
// An empty name selects EventIDResolver.
func ResolverByName(name string, touches TouchProvider) (PointerIDResolver, bool) {
	switch name {
	case "", "event":
		return EventIDResolver{}, true
	case "touch_count":
		return TouchCountResolver{Touches: touches}, true
	}
	return nil, false
}
