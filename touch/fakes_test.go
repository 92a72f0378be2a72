package touch

import (
	"errors"

	"github.com/milk9111/touchpad/common"
)

type fakeRegistry struct {
	bindings map[string]Binding
	failOn   string
}

func newFakeRegistry() *fakeRegistry {
	return &fakeRegistry{bindings: make(map[string]Binding)}
}

func (r *fakeRegistry) Register(name string, b Binding) error {
	if name == r.failOn {
		return errors.New("fake: refused")
	}
	r.bindings[name] = b
	return nil
}

func (r *fakeRegistry) Unregister(name string) bool {
	_, ok := r.bindings[name]
	delete(r.bindings, name)
	return ok
}

type fakeTouches struct {
	states map[int]State
	starts map[int]common.Vec2
}

func newFakeTouches() *fakeTouches {
	return &fakeTouches{
		states: make(map[int]State),
		starts: make(map[int]common.Vec2),
	}
}

func (f *fakeTouches) TouchCount() int {
	return len(f.states)
}

func (f *fakeTouches) Touch(id int) (State, bool) {
	s, ok := f.states[id]
	return s, ok
}

func (f *fakeTouches) TouchStartPosition(id int) common.Vec2 {
	return f.starts[id]
}

type fakeClock struct {
	frame int
	dt    float64
}

func (c *fakeClock) CurrentFrame() int {
	return c.frame
}

func (c *fakeClock) DeltaTime() float64 {
	return c.dt
}
