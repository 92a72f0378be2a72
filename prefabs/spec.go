package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/milk9111/touchpad/touch"
	"gopkg.in/yaml.v3"
)

const (
	LayoutFile = "touch_controls.yaml"
	AvatarFile = "avatar.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// LayoutSpec describes every on-screen control of a scene.
type LayoutSpec struct {
	Name     string        `yaml:"name"`
	Controls []ControlSpec `yaml:"controls"`
}

type ControlSpec struct {
	Name              string        `yaml:"name"`
	Label             string        `yaml:"label"`
	X                 float64       `yaml:"x"`
	Y                 float64       `yaml:"y"`
	Radius            float64       `yaml:"radius"`
	Resolver          string        `yaml:"resolver"`
	InterpolateTime   float64       `yaml:"interpolate_time"`
	FullSwipeDistance float64       `yaml:"full_swipe_distance"`
	SwipeSensitivity  float64       `yaml:"swipe_sensitivity"`
	MovementRange     int           `yaml:"movement_range"`
	Color             *YAMLColor    `yaml:"color"`
	Mappings          []MappingSpec `yaml:"mappings"`
}

type MappingSpec struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// LoadLayout reads and validates a layout prefab.
func LoadLayout(filename string) (*LayoutSpec, error) {
	data, err := Load(filename)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	spec, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

func ParseLayout(data []byte) (*LayoutSpec, error) {
	var spec LayoutSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("unmarshal layout: %w", err)
	}
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// Validate rejects layouts the registry would refuse at activation time.
func (s LayoutSpec) Validate() error {
	controls := make(map[string]struct{}, len(s.Controls))
	names := make(map[string]string)
	for i, c := range s.Controls {
		if c.Name == "" {
			return fmt.Errorf("control %d: missing name", i)
		}
		if _, ok := controls[c.Name]; ok {
			return fmt.Errorf("control %s: duplicate control name", c.Name)
		}
		controls[c.Name] = struct{}{}

		if _, err := c.Config(); err != nil {
			return err
		}
		if _, ok := touch.ResolverByName(c.Resolver, nil); !ok {
			return fmt.Errorf("control %s: unknown resolver %q", c.Name, c.Resolver)
		}
		for _, m := range c.Mappings {
			if owner, ok := names[m.Name]; ok {
				return fmt.Errorf("control %s: input %s already mapped by %s", c.Name, m.Name, owner)
			}
			names[m.Name] = c.Name
		}
	}
	return nil
}

// Config converts the spec into a touch.Config.
func (c ControlSpec) Config() (touch.Config, error) {
	if len(c.Mappings) == 0 {
		return touch.Config{}, fmt.Errorf("control %s: no mappings", c.Name)
	}
	if c.InterpolateTime < 0 || c.FullSwipeDistance < 0 || c.SwipeSensitivity < 0 || c.MovementRange < 0 {
		return touch.Config{}, fmt.Errorf("control %s: negative parameter", c.Name)
	}

	cfg := touch.Config{
		Mappings:          make([]touch.Mapping, 0, len(c.Mappings)),
		InterpolateTime:   c.InterpolateTime,
		FullSwipeDistance: c.FullSwipeDistance,
		SwipeSensitivity:  c.SwipeSensitivity,
		MovementRange:     c.MovementRange,
	}
	seen := make(map[string]struct{}, len(c.Mappings))
	for _, m := range c.Mappings {
		if m.Name == "" {
			return touch.Config{}, fmt.Errorf("control %s: mapping without name", c.Name)
		}
		if _, ok := seen[m.Name]; ok {
			return touch.Config{}, fmt.Errorf("control %s: duplicate mapping %s", c.Name, m.Name)
		}
		seen[m.Name] = struct{}{}
		t, err := touch.ParseTouchType(m.Type)
		if err != nil {
			return touch.Config{}, fmt.Errorf("control %s: %w", c.Name, err)
		}
		cfg.Mappings = append(cfg.Mappings, touch.Mapping{Name: m.Name, Type: t})
	}
	return cfg, nil
}

// AvatarSpec tunes the demo avatar driven by the controls.
type AvatarSpec struct {
	Name        string     `yaml:"name"`
	X           float64    `yaml:"x"`
	Y           float64    `yaml:"y"`
	Size        float64    `yaml:"size"`
	MoveSpeed   float64    `yaml:"move_speed"`
	DashImpulse float64    `yaml:"dash_impulse"`
	Damping     float64    `yaml:"damping"`
	Color       *YAMLColor `yaml:"color"`
}

func LoadAvatarSpec() (*AvatarSpec, error) {
	spec, err := LoadSpec[AvatarSpec](AvatarFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}

// ColorOr returns the parsed color or fallback when unset.
func (c *YAMLColor) ColorOr(fallback color.Color) color.Color {
	if c == nil || c.Color == nil {
		return fallback
	}
	return c.Color
}
