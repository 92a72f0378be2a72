package entity

import (
	"errors"
	"fmt"

	"github.com/milk9111/touchpad/common"
	"github.com/milk9111/touchpad/ecs"
	"github.com/milk9111/touchpad/ecs/component"
	"github.com/milk9111/touchpad/prefabs"
	"github.com/milk9111/touchpad/touch"
	"golang.org/x/image/colornames"
)

// ControlHost carries the collaborators every built control shares.
type ControlHost struct {
	Registry touch.Registry
	Touches  touch.TouchProvider
	Clock    touch.Clock
	// Resolver, when set, replaces the resolver named by each control spec.
	Resolver touch.PointerIDResolver
}

// BuildControls creates and activates one entity per control in the layout.
// On failure every control built so far is torn down again.
func BuildControls(w *ecs.World, layout *prefabs.LayoutSpec, host ControlHost) ([]ecs.Entity, error) {
	if layout == nil {
		return nil, errors.New("controls: nil layout")
	}

	built := make([]ecs.Entity, 0, len(layout.Controls))
	fail := func(err error) ([]ecs.Entity, error) {
		for _, e := range built {
			destroyControl(w, e)
		}
		return nil, err
	}

	for _, spec := range layout.Controls {
		e, err := buildControl(w, spec, host)
		if err != nil {
			return fail(fmt.Errorf("controls: %s: %w", spec.Name, err))
		}
		built = append(built, e)
	}
	return built, nil
}

func buildControl(w *ecs.World, spec prefabs.ControlSpec, host ControlHost) (ecs.Entity, error) {
	cfg, err := spec.Config()
	if err != nil {
		return 0, err
	}

	resolver := host.Resolver
	if resolver == nil {
		r, ok := touch.ResolverByName(spec.Resolver, host.Touches)
		if !ok {
			return 0, fmt.Errorf("unknown resolver %q", spec.Resolver)
		}
		resolver = r
	}

	ctrl := touch.New(cfg, touch.Host{
		Registry: host.Registry,
		Touches:  host.Touches,
		Clock:    host.Clock,
		Resolver: resolver,
	})
	ctrl.SetAnchoredPosition(common.Vec2{X: spec.X, Y: spec.Y})
	if err := ctrl.Activate(); err != nil {
		return 0, err
	}

	label := spec.Label
	if label == "" {
		label = spec.Name
	}

	e := w.CreateEntity()
	if err := ecs.Add(w, e, component.TransformComponent, &component.Transform{X: spec.X, Y: spec.Y}); err != nil {
		ctrl.Deactivate()
		return 0, err
	}
	if err := ecs.Add(w, e, component.VirtualControlComponent, &component.VirtualControl{
		Name:    spec.Name,
		Label:   label,
		Radius:  spec.Radius,
		Color:   spec.Color.ColorOr(colornames.Lightgray),
		Control: ctrl,
	}); err != nil {
		ctrl.Deactivate()
		w.DestroyEntity(e)
		return 0, err
	}
	return e, nil
}

// DestroyControls deactivates and removes every virtual control entity.
func DestroyControls(w *ecs.World) int {
	ents := w.Query(component.VirtualControlComponent.Kind())
	for _, e := range ents {
		destroyControl(w, e)
	}
	return len(ents)
}

func destroyControl(w *ecs.World, e ecs.Entity) {
	if vc, ok := ecs.Get(w, e, component.VirtualControlComponent); ok && vc.Control != nil {
		vc.Control.Deactivate()
	}
	w.DestroyEntity(e)
}
