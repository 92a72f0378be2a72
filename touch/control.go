package touch

import (
	"fmt"
	"math"

	"github.com/milk9111/touchpad/common"
)

const DefaultMovementRange = 100

// neverFrame keeps edge checks false until the first press or release.
const neverFrame = math.MinInt

// Config is the static configuration of one on-screen control.
type Config struct {
	Mappings          []Mapping
	InterpolateTime   float64
	FullSwipeDistance float64
	SwipeSensitivity  float64
	// MovementRange bounds the joystick knob travel. Zero means DefaultMovementRange.
	MovementRange int
}

// Control turns pointer callbacks on one on-screen element into named button
// and axis values. It tracks a single finger at a time.
//
// All methods must be called from the frame loop that owns the host
// collaborators; a Control is not safe for concurrent use.
type Control struct {
	cfg  Config
	host Host

	types  map[string]TouchType
	active bool

	anchored common.Vec2
	rest     common.Vec2

	finger           int
	pressed          bool
	lastPressedFrame int
	releasedFrame    int
	dragDelta        common.Vec2

	axisX float64
	axisY float64
}

func New(cfg Config, host Host) *Control {
	if cfg.MovementRange <= 0 {
		cfg.MovementRange = DefaultMovementRange
	}
	cfg.Mappings = append([]Mapping(nil), cfg.Mappings...)
	if host.Resolver == nil {
		host.Resolver = EventIDResolver{}
	}
	return &Control{
		cfg:              cfg,
		host:             host,
		finger:           NoFinger,
		lastPressedFrame: neverFrame,
		releasedFrame:    neverFrame,
	}
}

// Activate captures the rest position and registers every mapped name.
func (c *Control) Activate() error {
	if c.active {
		return nil
	}

	c.rest = c.anchored
	c.types = make(map[string]TouchType, len(c.cfg.Mappings))
	for _, m := range c.cfg.Mappings {
		c.types[m.Name] = m.Type
	}

	if c.host.Registry != nil {
		for i, m := range c.cfg.Mappings {
			if err := c.host.Registry.Register(m.Name, c); err != nil {
				for _, prev := range c.cfg.Mappings[:i] {
					c.host.Registry.Unregister(prev.Name)
				}
				c.types = nil
				return fmt.Errorf("touch: register %s: %w", m.Name, err)
			}
		}
	}

	c.active = true
	return nil
}

// Deactivate unregisters every mapped name. It is safe to call at any time.
func (c *Control) Deactivate() {
	if c.active && c.host.Registry != nil {
		for _, m := range c.cfg.Mappings {
			c.host.Registry.Unregister(m.Name)
		}
	}
	c.types = nil
	c.active = false
}

func (c *Control) OnPointerDown(eventID int) {
	if c.pressed {
		return
	}
	c.pressed = true
	c.lastPressedFrame = c.frame()
	c.dragDelta = common.Vec2{}
	c.finger = c.host.Resolver.Resolve(eventID)
}

// OnPointerUp releases the control whichever finger is reported.
func (c *Control) OnPointerUp(int) {
	c.pressed = false
	c.releasedFrame = c.frame()
	c.finger = NoFinger
	if c.HasJoystick() {
		c.anchored = c.rest
	}
}

// OnDrag moves the joystick knob. Controls that mix joystick and
// non-joystick mappings never move.
func (c *Control) OnDrag(delta common.Vec2) {
	if !c.allJoystick() {
		return
	}
	limit := float64(c.cfg.MovementRange)
	c.dragDelta = common.Vec2{
		X: common.Clamp(c.dragDelta.X+delta.X, -limit, limit),
		Y: common.Clamp(c.dragDelta.Y+delta.Y, -limit, limit),
	}
	c.anchored = c.rest.Add(c.dragDelta)
}

func (c *Control) Button() bool {
	return c.pressed
}

// ButtonDown is true on the frame right after the press.
func (c *Control) ButtonDown() bool {
	return c.lastPressedFrame == c.frame()-1
}

// ButtonUp is true on the frame right after the release.
func (c *Control) ButtonUp() bool {
	return c.releasedFrame == c.frame()-1
}

// Axis returns the value of the named mapping, or 0 for names this control
// does not map.
func (c *Control) Axis(name string) float64 {
	t, ok := c.types[name]
	if !ok {
		return 0
	}

	if st, live := c.liveTouch(); live {
		rate := c.cfg.InterpolateTime * c.deltaTime()
		switch {
		case t.isRelative():
			var target common.Vec2
			if c.cfg.FullSwipeDistance > 0 {
				start := c.host.Touches.TouchStartPosition(c.finger)
				target = st.Position.Sub(start).Scale(1 / c.cfg.FullSwipeDistance)
			}
			return c.smooth(t == RelativeHorizontal, target, rate)
		case t.isSwipe():
			target := st.DeltaPosition.Scale(c.cfg.SwipeSensitivity)
			return c.smooth(t == Horizontal, target, rate)
		case t == HorizontalJoystick:
			return (c.anchored.X - c.rest.X) / float64(c.cfg.MovementRange)
		case t == VerticalJoystick:
			return (c.anchored.Y - c.rest.Y) / float64(c.cfg.MovementRange)
		}
		return 0
	}

	c.finger = NoFinger
	step := c.cfg.InterpolateTime * c.deltaTime()
	switch t {
	case RelativeHorizontal:
		c.axisX = common.MoveTowards(c.axisX, 0, step)
		return c.axisX
	case RelativeVertical:
		c.axisY = common.MoveTowards(c.axisY, 0, step)
		// FIXME: reports the horizontal value; kept until the vertical decay
		// behaviour is confirmed by design.
		return c.axisX
	}
	return 0
}

func (c *Control) smooth(horizontal bool, target common.Vec2, rate float64) float64 {
	if horizontal {
		c.axisX = common.Clamp(common.Lerp(c.axisX, target.X, rate), -1, 1)
		return c.axisX
	}
	c.axisY = common.Clamp(common.Lerp(c.axisY, target.Y, rate), -1, 1)
	return c.axisY
}

func (c *Control) liveTouch() (State, bool) {
	if c.finger == NoFinger || c.host.Touches == nil {
		return State{}, false
	}
	return c.host.Touches.Touch(c.finger)
}

func (c *Control) frame() int {
	if c.host.Clock == nil {
		return 0
	}
	return c.host.Clock.CurrentFrame()
}

func (c *Control) deltaTime() float64 {
	if c.host.Clock == nil {
		return 0
	}
	return c.host.Clock.DeltaTime()
}

// HasJoystick reports whether any mapping is a joystick type.
func (c *Control) HasJoystick() bool {
	for _, m := range c.cfg.Mappings {
		if m.Type.IsJoystick() {
			return true
		}
	}
	return false
}

func (c *Control) allJoystick() bool {
	if len(c.cfg.Mappings) == 0 {
		return false
	}
	for _, m := range c.cfg.Mappings {
		if !m.Type.IsJoystick() {
			return false
		}
	}
	return true
}

func (c *Control) Active() bool {
	return c.active
}

func (c *Control) Mappings() []Mapping {
	return append([]Mapping(nil), c.cfg.Mappings...)
}

func (c *Control) MovementRange() int {
	return c.cfg.MovementRange
}

func (c *Control) AnchoredPosition() common.Vec2 {
	return c.anchored
}

// SetAnchoredPosition places the visual. Layout code calls it before Activate.
func (c *Control) SetAnchoredPosition(p common.Vec2) {
	c.anchored = p
}

func (c *Control) RestPosition() common.Vec2 {
	return c.rest
}

func (c *Control) DragDelta() common.Vec2 {
	return c.dragDelta
}

func (c *Control) EngagedFinger() int {
	return c.finger
}

func (c *Control) LastPressedFrame() int {
	return c.lastPressedFrame
}
