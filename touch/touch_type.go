package touch

import (
	"fmt"
	"strings"
)

// TouchType selects how a named control turns finger movement into a value.
type TouchType int

const (
	Press TouchType = iota
	RelativeHorizontal
	RelativeVertical
	Horizontal
	Vertical
	HorizontalJoystick
	VerticalJoystick
)

var touchTypeNames = map[TouchType]string{
	Press:              "press",
	RelativeHorizontal: "relative_horizontal",
	RelativeVertical:   "relative_vertical",
	Horizontal:         "horizontal",
	Vertical:           "vertical",
	HorizontalJoystick: "horizontal_joystick",
	VerticalJoystick:   "vertical_joystick",
}

func (t TouchType) String() string {
	if name, ok := touchTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("TouchType(%d)", int(t))
}

// ParseTouchType accepts the snake_case names used in layout files.
func ParseTouchType(s string) (TouchType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for t, name := range touchTypeNames {
		if name == key {
			return t, nil
		}
	}
	return 0, fmt.Errorf("touch: unknown touch type %q", s)
}

func (t TouchType) IsJoystick() bool {
	return t == HorizontalJoystick || t == VerticalJoystick
}

func (t TouchType) isRelative() bool {
	return t == RelativeHorizontal || t == RelativeVertical
}

func (t TouchType) isSwipe() bool {
	return t == Horizontal || t == Vertical
}

// Mapping binds a virtual input name to a touch type.
type Mapping struct {
	Name string
	Type TouchType
}
