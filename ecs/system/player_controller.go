package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/touchpad/ecs"
	"github.com/milk9111/touchpad/ecs/component"
)

const (
	lookDeadzone = 0.15
	turnRate     = 0.12
	steerBlend   = 0.25
)

type PlayerControllerSystem struct{}

func NewPlayerControllerSystem() *PlayerControllerSystem {
	return &PlayerControllerSystem{}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.InputComponent.Kind(),
		component.AvatarComponent.Kind(),
		component.PhysicsBodyComponent.Kind(),
	)
	for _, e := range entities {
		input, ok := ecs.Get(w, e, component.InputComponent)
		if !ok {
			continue
		}
		avatar, ok := ecs.Get(w, e, component.AvatarComponent)
		if !ok {
			continue
		}
		bodyComp, ok := ecs.Get(w, e, component.PhysicsBodyComponent)
		if !ok || bodyComp.Body == nil {
			continue
		}

		if math.Hypot(input.LookX, input.LookY) > lookDeadzone {
			avatar.Heading = math.Atan2(input.LookY, input.LookX)
		}
		avatar.Heading += input.Turn * turnRate

		target := cp.Vector{X: input.MoveX * avatar.MoveSpeed, Y: input.MoveY * avatar.MoveSpeed}
		vel := bodyComp.Body.Velocity().Lerp(target, steerBlend)
		if input.DashPressed {
			dir := cp.Vector{X: math.Cos(avatar.Heading), Y: math.Sin(avatar.Heading)}
			if move := (cp.Vector{X: input.MoveX, Y: input.MoveY}); move.Length() > 0 {
				dir = move.Normalize()
			}
			vel = vel.Add(dir.Mult(avatar.DashImpulse))
			avatar.Dashes++
		}

		bodyComp.Body.SetVelocityVector(vel)
		bodyComp.Body.SetAngle(avatar.Heading)
		bodyComp.Body.SetAngularVelocity(0)
	}
}
