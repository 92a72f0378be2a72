package input

import (
	"errors"
	"fmt"
	"sort"

	"github.com/milk9111/touchpad/touch"
)

var (
	ErrEmptyName         = errors.New("input: empty virtual input name")
	ErrNilBinding        = errors.New("input: binding is nil")
	ErrAlreadyRegistered = errors.New("input: name already registered")
)

// Registry maps virtual input names to the controls that drive them.
type Registry struct {
	bindings map[string]touch.Binding
}

func NewRegistry() *Registry {
	return &Registry{bindings: make(map[string]touch.Binding)}
}

func (r *Registry) Register(name string, b touch.Binding) error {
	if name == "" {
		return ErrEmptyName
	}
	if b == nil {
		return ErrNilBinding
	}
	if r.bindings == nil {
		r.bindings = make(map[string]touch.Binding)
	}
	if _, ok := r.bindings[name]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	r.bindings[name] = b
	return nil
}

func (r *Registry) Unregister(name string) bool {
	if r == nil {
		return false
	}
	if _, ok := r.bindings[name]; !ok {
		return false
	}
	delete(r.bindings, name)
	return true
}

func (r *Registry) Lookup(name string) (touch.Binding, bool) {
	if r == nil {
		return nil, false
	}
	b, ok := r.bindings[name]
	return b, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.bindings))
	for name := range r.bindings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Axis(name string) float64 {
	if b, ok := r.Lookup(name); ok {
		return b.Axis(name)
	}
	return 0
}

func (r *Registry) Button(name string) bool {
	if b, ok := r.Lookup(name); ok {
		return b.Button()
	}
	return false
}

func (r *Registry) ButtonDown(name string) bool {
	if b, ok := r.Lookup(name); ok {
		return b.ButtonDown()
	}
	return false
}

func (r *Registry) ButtonUp(name string) bool {
	if b, ok := r.Lookup(name); ok {
		return b.ButtonUp()
	}
	return false
}
