package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/touchpad/ecs"
	"github.com/milk9111/touchpad/ecs/component"
)

const wallThickness = 4.0

// PhysicsSystem owns the Chipmunk space. Bodies are created lazily for
// entities with Transform and PhysicsBody and removed when the entity dies.
type PhysicsSystem struct {
	space      *cp.Space
	dt         float64
	width      float64
	height     float64
	wallsReady bool

	entities map[ecs.Entity]*component.PhysicsBody
}

func NewPhysicsSystem(dt, width, height, damping float64) *PhysicsSystem {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})
	if damping > 0 && damping <= 1 {
		space.SetDamping(damping)
	}
	return &PhysicsSystem{
		space:    space,
		dt:       dt,
		width:    width,
		height:   height,
		entities: make(map[ecs.Entity]*component.PhysicsBody),
	}
}

func (ps *PhysicsSystem) Space() *cp.Space {
	if ps == nil {
		return nil
	}
	return ps.space
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || w == nil {
		return
	}
	if !ps.wallsReady {
		ps.buildWalls()
	}

	for _, e := range w.Query(component.TransformComponent.Kind(), component.PhysicsBodyComponent.Kind()) {
		body, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
		if body.Body != nil {
			continue
		}
		t, _ := ecs.Get(w, e, component.TransformComponent)
		ps.ensureBody(e, t, body)
	}

	for e, body := range ps.entities {
		if current, ok := ecs.Get(w, e, component.PhysicsBodyComponent); ok && current == body {
			continue
		}
		ps.removeBody(e, body)
	}

	if ps.dt > 0 {
		ps.space.Step(ps.dt)
	}

	for e, body := range ps.entities {
		t, ok := ecs.Get(w, e, component.TransformComponent)
		if !ok {
			continue
		}
		pos := body.Body.Position()
		t.X = pos.X
		t.Y = pos.Y
		t.Rotation = body.Body.Angle()
	}
}

func (ps *PhysicsSystem) ensureBody(e ecs.Entity, t *component.Transform, body *component.PhysicsBody) {
	mass := body.Mass
	if mass <= 0 {
		mass = 1
	}
	// rotation is driven by the controller, never by contacts
	cpBody := cp.NewBody(mass, math.Inf(1))
	cpBody.SetPosition(cp.Vector{X: t.X, Y: t.Y})
	cpBody.SetAngle(t.Rotation)

	shape := cp.NewBox(cpBody, body.Width, body.Height, 0)
	shape.SetFriction(body.Friction)
	shape.SetElasticity(body.Elasticity)

	ps.space.AddBody(cpBody)
	ps.space.AddShape(shape)

	body.Body = cpBody
	body.Shape = shape
	ps.entities[e] = body
}

func (ps *PhysicsSystem) removeBody(e ecs.Entity, body *component.PhysicsBody) {
	if body.Shape != nil {
		ps.space.RemoveShape(body.Shape)
	}
	if body.Body != nil {
		ps.space.RemoveBody(body.Body)
	}
	body.Body = nil
	body.Shape = nil
	delete(ps.entities, e)
}

func (ps *PhysicsSystem) buildWalls() {
	corners := []cp.Vector{
		{X: 0, Y: 0},
		{X: ps.width, Y: 0},
		{X: ps.width, Y: ps.height},
		{X: 0, Y: ps.height},
	}
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		wall := cp.NewSegment(ps.space.StaticBody, a, b, wallThickness)
		wall.SetFriction(0.5)
		wall.SetElasticity(0.6)
		ps.space.AddShape(wall)
	}
	ps.wallsReady = true
}
