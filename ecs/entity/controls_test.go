package entity

import (
	"reflect"
	"testing"

	"github.com/milk9111/touchpad/device"
	"github.com/milk9111/touchpad/ecs"
	"github.com/milk9111/touchpad/ecs/component"
	"github.com/milk9111/touchpad/input"
	"github.com/milk9111/touchpad/prefabs"
	"github.com/milk9111/touchpad/touch"
)

func newHost() (ControlHost, *input.Registry) {
	reg := input.NewRegistry()
	return ControlHost{
		Registry: reg,
		Touches:  device.NewTracker(),
		Clock:    device.NewFrameClock(60),
	}, reg
}

func TestBuildControlsFromEmbeddedLayout(t *testing.T) {
	layout, err := prefabs.LoadLayout(prefabs.LayoutFile)
	if err != nil {
		t.Fatalf("load layout: %v", err)
	}
	w := ecs.NewWorld()
	host, reg := newHost()

	ents, err := BuildControls(w, layout, host)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(ents) != len(layout.Controls) {
		t.Fatalf("expected %d entities, got %d", len(layout.Controls), len(ents))
	}

	var want []string
	for _, c := range layout.Controls {
		for _, m := range c.Mappings {
			want = append(want, m.Name)
		}
	}
	got := reg.Names()
	if len(got) != len(want) {
		t.Fatalf("registered %v, want names %v", got, want)
	}

	vc, ok := ecs.Get(w, ents[0], component.VirtualControlComponent)
	if !ok || vc.Control == nil || !vc.Control.Active() {
		t.Fatalf("expected active control on first entity")
	}
	if vc.Control.RestPosition().X != layout.Controls[0].X {
		t.Fatalf("rest position should come from the layout")
	}

	if n := DestroyControls(w); n != len(ents) {
		t.Fatalf("destroyed %d, want %d", n, len(ents))
	}
	if len(reg.Names()) != 0 {
		t.Fatalf("expected registry empty, got %v", reg.Names())
	}
	if vc.Control.Active() {
		t.Fatalf("control should be deactivated")
	}
}

func TestBuildControlsUnwindsOnConflict(t *testing.T) {
	layout := &prefabs.LayoutSpec{Controls: []prefabs.ControlSpec{
		{Name: "a", Radius: 10, Mappings: []prefabs.MappingSpec{{Name: "Fire", Type: "press"}}},
		{Name: "b", Radius: 10, Mappings: []prefabs.MappingSpec{{Name: "Jump", Type: "press"}}},
	}}
	w := ecs.NewWorld()
	host, reg := newHost()
	if err := reg.Register("Jump", touch.New(touch.Config{}, touch.Host{})); err != nil {
		t.Fatal(err)
	}

	if _, err := BuildControls(w, layout, host); err == nil {
		t.Fatalf("expected conflict error")
	}
	if len(w.Entities()) != 0 {
		t.Fatalf("expected no entities left, got %d", len(w.Entities()))
	}
	if !reflect.DeepEqual(reg.Names(), []string{"Jump"}) {
		t.Fatalf("expected only pre-existing name, got %v", reg.Names())
	}
}

func TestResolverOverride(t *testing.T) {
	layout := &prefabs.LayoutSpec{Controls: []prefabs.ControlSpec{
		{Name: "a", Radius: 10, Resolver: "event", Mappings: []prefabs.MappingSpec{{Name: "Fire", Type: "press"}}},
	}}
	w := ecs.NewWorld()
	host, _ := newHost()
	tracker := host.Touches.(*device.Tracker)
	host.Resolver = touch.TouchCountResolver{Touches: tracker}

	ents, err := BuildControls(w, layout, host)
	if err != nil {
		t.Fatal(err)
	}
	vc, _ := ecs.Get(w, ents[0], component.VirtualControlComponent)
	vc.Control.OnPointerDown(42)
	if vc.Control.EngagedFinger() != 0 {
		t.Fatalf("expected touch-count resolver to win, got finger %d", vc.Control.EngagedFinger())
	}
}

func TestNewAvatar(t *testing.T) {
	spec, err := prefabs.LoadAvatarSpec()
	if err != nil {
		t.Fatal(err)
	}
	w := ecs.NewWorld()
	e, err := NewAvatar(w, spec)
	if err != nil {
		t.Fatalf("new avatar: %v", err)
	}
	for name, has := range map[string]bool{
		"transform": ecs.Has(w, e, component.TransformComponent),
		"input":     ecs.Has(w, e, component.InputComponent),
		"avatar":    ecs.Has(w, e, component.AvatarComponent),
		"physics":   ecs.Has(w, e, component.PhysicsBodyComponent),
		"player":    ecs.Has(w, e, component.PlayerTagComponent),
	} {
		if !has {
			t.Fatalf("avatar missing %s", name)
		}
	}
}
