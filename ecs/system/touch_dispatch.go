package system

import (
	"math"

	"github.com/milk9111/touchpad/common"
	"github.com/milk9111/touchpad/ecs"
	"github.com/milk9111/touchpad/ecs/component"
	"github.com/milk9111/touchpad/touch"
)

// PointerSource is the per-tick touch snapshot the dispatcher reads.
type PointerSource interface {
	IDs() []int
	JustPressed() []int
	JustReleased() []int
	Touch(id int) (touch.State, bool)
}

// TouchDispatchSystem delivers pointer callbacks to virtual controls. A touch
// that lands inside a control keeps driving it until lifted, even when it
// slides outside the hit area.
type TouchDispatchSystem struct {
	source PointerSource
	owners map[int]ecs.Entity
}

func NewTouchDispatchSystem(source PointerSource) *TouchDispatchSystem {
	return &TouchDispatchSystem{
		source: source,
		owners: make(map[int]ecs.Entity),
	}
}

func (d *TouchDispatchSystem) Update(w *ecs.World) {
	if d == nil || w == nil || d.source == nil {
		return
	}

	for _, id := range d.source.JustReleased() {
		e, ok := d.owners[id]
		if !ok {
			continue
		}
		delete(d.owners, id)
		if vc, ok := ecs.Get(w, e, component.VirtualControlComponent); ok && vc.Control != nil {
			vc.Control.OnPointerUp(id)
		}
	}

	for _, id := range d.source.IDs() {
		e, ok := d.owners[id]
		if !ok {
			continue
		}
		vc, ok := ecs.Get(w, e, component.VirtualControlComponent)
		if !ok || vc.Control == nil {
			delete(d.owners, id)
			continue
		}
		st, ok := d.source.Touch(id)
		if !ok || st.DeltaPosition == (common.Vec2{}) {
			continue
		}
		vc.Control.OnDrag(st.DeltaPosition)
	}

	for _, id := range d.source.JustPressed() {
		st, ok := d.source.Touch(id)
		if !ok {
			continue
		}
		e, ok := d.hit(w, st.Position)
		if !ok {
			continue
		}
		vc, _ := ecs.Get(w, e, component.VirtualControlComponent)
		vc.Control.OnPointerDown(id)
		d.owners[id] = e
	}
}

// hit picks the free control whose centre is nearest to p among those whose
// hit circle contains p.
func (d *TouchDispatchSystem) hit(w *ecs.World, p common.Vec2) (ecs.Entity, bool) {
	var (
		best     ecs.Entity
		bestDist = math.Inf(1)
		found    bool
	)
	ecs.ForEach(w, component.VirtualControlComponent, func(e ecs.Entity, vc *component.VirtualControl) {
		if vc.Control == nil || !vc.Control.Active() || vc.Control.Button() {
			return
		}
		dist := p.Sub(vc.Control.RestPosition()).Len()
		if dist > vc.Radius || dist >= bestDist {
			return
		}
		best, bestDist, found = e, dist, true
	})
	return best, found
}

// Owner reports which control entity a finger is driving.
func (d *TouchDispatchSystem) Owner(id int) (ecs.Entity, bool) {
	e, ok := d.owners[id]
	return e, ok
}

// Reset forgets finger ownership, e.g. after the controls were rebuilt.
func (d *TouchDispatchSystem) Reset() {
	clear(d.owners)
}

// RunsWhilePaused keeps releases flowing to controls under the pause overlay.
func (d *TouchDispatchSystem) RunsWhilePaused() bool {
	return true
}
