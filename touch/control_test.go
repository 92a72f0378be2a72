package touch

import (
	"math"
	"testing"

	"github.com/milk9111/touchpad/common"
)

const epsilon = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

type harness struct {
	reg     *fakeRegistry
	touches *fakeTouches
	clock   *fakeClock
	ctrl    *Control
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()
	h := &harness{
		reg:     newFakeRegistry(),
		touches: newFakeTouches(),
		clock:   &fakeClock{frame: 10, dt: 0.1},
	}
	h.ctrl = New(cfg, Host{Registry: h.reg, Touches: h.touches, Clock: h.clock})
	h.ctrl.SetAnchoredPosition(common.Vec2{X: 200, Y: 500})
	if err := h.ctrl.Activate(); err != nil {
		t.Fatalf("activate: %v", err)
	}
	return h
}

func joystickConfig() Config {
	return Config{
		Mappings: []Mapping{
			{Name: "Horizontal", Type: HorizontalJoystick},
			{Name: "Vertical", Type: VerticalJoystick},
		},
		MovementRange: 100,
	}
}

func TestActivateRegistersNames(t *testing.T) {
	h := newHarness(t, joystickConfig())

	for _, name := range []string{"Horizontal", "Vertical"} {
		if h.reg.bindings[name] != h.ctrl {
			t.Fatalf("expected %s bound to control", name)
		}
	}
	if h.ctrl.RestPosition() != (common.Vec2{X: 200, Y: 500}) {
		t.Fatalf("rest position not captured, got %v", h.ctrl.RestPosition())
	}

	h.ctrl.Deactivate()
	if len(h.reg.bindings) != 0 {
		t.Fatalf("expected registry empty after deactivate, got %v", h.reg.bindings)
	}
	if got := h.ctrl.Axis("Horizontal"); got != 0 {
		t.Fatalf("expected 0 after deactivate, got %v", got)
	}
}

func TestDeactivateWithoutActivate(t *testing.T) {
	reg := newFakeRegistry()
	reg.bindings["Horizontal"] = nil
	c := New(joystickConfig(), Host{Registry: reg})

	c.Deactivate()
	c.Deactivate()

	if _, ok := reg.bindings["Horizontal"]; !ok {
		t.Fatalf("deactivate of an inactive control must not touch the registry")
	}
}

func TestActivateUnwindsOnFailure(t *testing.T) {
	reg := newFakeRegistry()
	reg.failOn = "Vertical"
	c := New(joystickConfig(), Host{Registry: reg})

	if err := c.Activate(); err == nil {
		t.Fatalf("expected activation error")
	}
	if len(reg.bindings) != 0 {
		t.Fatalf("expected earlier registrations removed, got %v", reg.bindings)
	}
	if c.Active() {
		t.Fatalf("control should not be active")
	}
}

func TestAxisUnknownName(t *testing.T) {
	h := newHarness(t, joystickConfig())
	h.touches.states[3] = State{}
	h.ctrl.OnPointerDown(3)
	h.ctrl.OnDrag(common.Vec2{X: 40, Y: 40})

	for _, name := range []string{"", "horizontal", "Jump", "Vertical "} {
		t.Run(name, func(t *testing.T) {
			if got := h.ctrl.Axis(name); got != 0 {
				t.Fatalf("expected 0 for %q, got %v", name, got)
			}
		})
	}
}

func TestPointerDownWhilePressed(t *testing.T) {
	h := newHarness(t, joystickConfig())
	h.touches.states[1] = State{}

	h.ctrl.OnPointerDown(1)
	h.ctrl.OnDrag(common.Vec2{X: 25, Y: 5})

	h.clock.frame++
	h.ctrl.OnPointerDown(2)

	if h.ctrl.LastPressedFrame() != 10 {
		t.Fatalf("expected last pressed frame 10, got %d", h.ctrl.LastPressedFrame())
	}
	if h.ctrl.DragDelta() != (common.Vec2{X: 25, Y: 5}) {
		t.Fatalf("drag delta reset by second press: %v", h.ctrl.DragDelta())
	}
	if h.ctrl.EngagedFinger() != 1 {
		t.Fatalf("expected finger 1 to stay engaged, got %d", h.ctrl.EngagedFinger())
	}
}

func TestButtonEdges(t *testing.T) {
	h := newHarness(t, Config{Mappings: []Mapping{{Name: "Jump", Type: Press}}})

	if h.ctrl.ButtonDown() || h.ctrl.ButtonUp() {
		t.Fatalf("no edge expected before any input")
	}

	h.ctrl.OnPointerDown(0)
	cases := []struct {
		frame int
		down  bool
	}{
		{10, false},
		{11, true},
		{12, false},
		{20, false},
	}
	for _, c := range cases {
		h.clock.frame = c.frame
		if got := h.ctrl.ButtonDown(); got != c.down {
			t.Fatalf("frame %d: ButtonDown=%v, want %v", c.frame, got, c.down)
		}
		if !h.ctrl.Button() {
			t.Fatalf("frame %d: expected button held", c.frame)
		}
	}

	h.clock.frame = 30
	h.ctrl.OnPointerUp(0)
	cases = []struct {
		frame int
		down  bool
	}{
		{30, false},
		{31, true},
		{32, false},
	}
	for _, c := range cases {
		h.clock.frame = c.frame
		if got := h.ctrl.ButtonUp(); got != c.down {
			t.Fatalf("frame %d: ButtonUp=%v, want %v", c.frame, got, c.down)
		}
		if h.ctrl.Button() {
			t.Fatalf("frame %d: expected button released", c.frame)
		}
	}
}

func TestJoystickDragClamps(t *testing.T) {
	h := newHarness(t, joystickConfig())
	h.touches.states[0] = State{}

	h.ctrl.OnPointerDown(0)
	h.ctrl.OnDrag(common.Vec2{X: 100, Y: -10})
	h.ctrl.OnDrag(common.Vec2{X: 50, Y: -20})

	if h.ctrl.DragDelta() != (common.Vec2{X: 100, Y: -30}) {
		t.Fatalf("expected clamped drag (100,-30), got %v", h.ctrl.DragDelta())
	}
	if got := h.ctrl.AnchoredPosition(); got != (common.Vec2{X: 300, Y: 470}) {
		t.Fatalf("unexpected anchored position %v", got)
	}
	if got := h.ctrl.Axis("Horizontal"); !approx(got, 1.0) {
		t.Fatalf("horizontal: got %v, want 1", got)
	}
	if got := h.ctrl.Axis("Vertical"); !approx(got, -0.3) {
		t.Fatalf("vertical: got %v, want -0.3", got)
	}
}

func TestJoystickReleaseReturnsToRest(t *testing.T) {
	h := newHarness(t, joystickConfig())
	h.touches.states[4] = State{}

	h.ctrl.OnPointerDown(4)
	h.ctrl.OnDrag(common.Vec2{X: -80, Y: 300})
	h.ctrl.OnPointerUp(99)

	if h.ctrl.AnchoredPosition() != h.ctrl.RestPosition() {
		t.Fatalf("expected rest %v, got %v", h.ctrl.RestPosition(), h.ctrl.AnchoredPosition())
	}
	if h.ctrl.EngagedFinger() != NoFinger {
		t.Fatalf("expected no finger after release")
	}
	if got := h.ctrl.Axis("Horizontal"); got != 0 {
		t.Fatalf("expected 0 after release, got %v", got)
	}
}

func TestDragIgnoredForMixedMappings(t *testing.T) {
	h := newHarness(t, Config{Mappings: []Mapping{
		{Name: "Fire", Type: Press},
		{Name: "Horizontal", Type: HorizontalJoystick},
	}})
	h.touches.states[0] = State{}

	h.ctrl.OnPointerDown(0)
	h.ctrl.OnDrag(common.Vec2{X: 60, Y: 60})

	if h.ctrl.DragDelta() != (common.Vec2{}) {
		t.Fatalf("expected no drag, got %v", h.ctrl.DragDelta())
	}
	if h.ctrl.AnchoredPosition() != h.ctrl.RestPosition() {
		t.Fatalf("visual moved for mixed mappings")
	}
	if got := h.ctrl.Axis("Horizontal"); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestRelativeAxisTracksSwipe(t *testing.T) {
	tests := []struct {
		name   string
		interp float64
		want   []float64
		wantY  float64
	}{
		{"immediate", 10, []float64{0.5, 0.5}, 1},
		{"smoothed", 5, []float64{0.25, 0.375, 0.4375}, 1},
		{"slow", 1, []float64{0.05, 0.095}, 0.3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, Config{
				Mappings: []Mapping{
					{Name: "LookX", Type: RelativeHorizontal},
					{Name: "LookY", Type: RelativeVertical},
				},
				InterpolateTime:   tc.interp,
				FullSwipeDistance: 100,
			})
			h.touches.starts[2] = common.Vec2{X: 100, Y: 100}
			h.touches.states[2] = State{Position: common.Vec2{X: 150, Y: 400}}
			h.ctrl.OnPointerDown(2)

			for i, want := range tc.want {
				if got := h.ctrl.Axis("LookX"); !approx(got, want) {
					t.Fatalf("query %d: got %v, want %v", i, got, want)
				}
			}
			// y travel is 300 against a full swipe of 100, x travel only 50.
			if got := h.ctrl.Axis("LookY"); !approx(got, tc.wantY) {
				t.Fatalf("vertical relative axis: got %v, want %v", got, tc.wantY)
			}
		})
	}
}

func TestSwipeAxisClamps(t *testing.T) {
	h := newHarness(t, Config{
		Mappings: []Mapping{
			{Name: "SwipeX", Type: Horizontal},
			{Name: "SwipeY", Type: Vertical},
		},
		InterpolateTime:  10,
		SwipeSensitivity: 0.1,
	})
	h.touches.states[0] = State{DeltaPosition: common.Vec2{X: 20, Y: -4}}
	h.ctrl.OnPointerDown(0)

	if got := h.ctrl.Axis("SwipeX"); !approx(got, 1) {
		t.Fatalf("swipe x: got %v, want 1", got)
	}
	if got := h.ctrl.Axis("SwipeY"); !approx(got, -0.4) {
		t.Fatalf("swipe y: got %v, want -0.4", got)
	}
}

func TestRelativeAxisDecay(t *testing.T) {
	h := newHarness(t, Config{
		Mappings:          []Mapping{{Name: "LookX", Type: RelativeHorizontal}},
		InterpolateTime:   5,
		FullSwipeDistance: 100,
	})
	h.clock.dt = 0.01
	h.ctrl.axisX = 0.4

	prev := 0.4
	queries := 0
	for prev != 0 && queries < 20 {
		got := h.ctrl.Axis("LookX")
		queries++
		if got < 0 {
			t.Fatalf("query %d: decayed below zero: %v", queries, got)
		}
		if got != 0 && !approx(prev-got, 0.05) {
			t.Fatalf("query %d: expected step of 0.05, %v -> %v", queries, prev, got)
		}
		prev = got
	}
	if prev != 0 || queries > 9 {
		t.Fatalf("expected exactly 0 within 9 queries, got %v after %d", prev, queries)
	}
	if got := h.ctrl.Axis("LookX"); got != 0 {
		t.Fatalf("expected to stay at 0, got %v", got)
	}
}

func TestStaleFingerDisengages(t *testing.T) {
	h := newHarness(t, joystickConfig())
	h.touches.states[5] = State{}
	h.ctrl.OnPointerDown(5)
	h.ctrl.OnDrag(common.Vec2{X: 50})

	delete(h.touches.states, 5)

	if got := h.ctrl.Axis("Horizontal"); got != 0 {
		t.Fatalf("expected 0 for stale finger, got %v", got)
	}
	if h.ctrl.EngagedFinger() != NoFinger {
		t.Fatalf("expected stale finger cleared, got %d", h.ctrl.EngagedFinger())
	}
}

func TestRelativeVerticalDecayReportsHorizontal(t *testing.T) {
	h := newHarness(t, Config{
		Mappings: []Mapping{
			{Name: "LookX", Type: RelativeHorizontal},
			{Name: "LookY", Type: RelativeVertical},
		},
		InterpolateTime: 1,
	})
	h.ctrl.axisX = 0.7
	h.ctrl.axisY = -0.2

	if got := h.ctrl.Axis("LookY"); !approx(got, 0.7) {
		t.Fatalf("expected horizontal value 0.7, got %v", got)
	}
	if !approx(h.ctrl.axisY, -0.1) {
		t.Fatalf("expected vertical value decayed to -0.1, got %v", h.ctrl.axisY)
	}
}

func TestPointerDownUsesResolver(t *testing.T) {
	touches := newFakeTouches()
	touches.states[0] = State{}
	touches.states[1] = State{}
	c := New(Config{Mappings: []Mapping{{Name: "Fire", Type: Press}}}, Host{
		Touches:  touches,
		Clock:    &fakeClock{},
		Resolver: TouchCountResolver{Touches: touches},
	})

	c.OnPointerDown(1234)
	if c.EngagedFinger() != 1 {
		t.Fatalf("expected finger derived from touch count, got %d", c.EngagedFinger())
	}
}

func TestDefaultMovementRange(t *testing.T) {
	c := New(Config{Mappings: []Mapping{{Name: "H", Type: HorizontalJoystick}}}, Host{})
	if c.MovementRange() != DefaultMovementRange {
		t.Fatalf("expected default range %d, got %d", DefaultMovementRange, c.MovementRange())
	}
}
