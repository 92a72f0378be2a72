package entity

import (
	"errors"

	"github.com/milk9111/touchpad/ecs"
	"github.com/milk9111/touchpad/ecs/component"
	"github.com/milk9111/touchpad/prefabs"
	"golang.org/x/image/colornames"
)

func NewAvatar(w *ecs.World, spec *prefabs.AvatarSpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, errors.New("avatar: nil spec")
	}

	e := w.CreateEntity()
	adds := []func() error{
		func() error {
			return ecs.Add(w, e, component.TransformComponent, &component.Transform{X: spec.X, Y: spec.Y})
		},
		func() error { return ecs.Add(w, e, component.PlayerTagComponent, &component.PlayerTag{}) },
		func() error { return ecs.Add(w, e, component.InputComponent, &component.Input{}) },
		func() error {
			return ecs.Add(w, e, component.AvatarComponent, &component.Avatar{
				Size:        spec.Size,
				MoveSpeed:   spec.MoveSpeed,
				DashImpulse: spec.DashImpulse,
				Color:       spec.Color.ColorOr(colornames.Limegreen),
			})
		},
		func() error {
			return ecs.Add(w, e, component.PhysicsBodyComponent, &component.PhysicsBody{
				Width:      spec.Size,
				Height:     spec.Size,
				Mass:       1,
				Friction:   0.4,
				Elasticity: 0.3,
			})
		},
	}
	for _, add := range adds {
		if err := add(); err != nil {
			w.DestroyEntity(e)
			return 0, err
		}
	}
	return e, nil
}
