// Package replay feeds scripted touches through a single virtual control
// without a window, one fixed tick at a time.
package replay

import (
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/milk9111/touchpad/common"
	"github.com/milk9111/touchpad/device"
	"github.com/milk9111/touchpad/ecs"
	"github.com/milk9111/touchpad/ecs/component"
	"github.com/milk9111/touchpad/ecs/entity"
	"github.com/milk9111/touchpad/ecs/system"
	"github.com/milk9111/touchpad/input"
	"github.com/milk9111/touchpad/prefabs"
	"github.com/milk9111/touchpad/touch"
	"gopkg.in/yaml.v3"
)

const defaultTPS = 60

type EventType string

const (
	EventDown EventType = "down"
	EventMove EventType = "move"
	EventUp   EventType = "up"
)

type Event struct {
	Frame  int       `yaml:"frame"`
	Type   EventType `yaml:"type"`
	Finger int       `yaml:"finger"`
	X      float64   `yaml:"x"`
	Y      float64   `yaml:"y"`
}

// Script is a gesture recording. A control with no radius accepts touches
// anywhere on screen.
type Script struct {
	Name    string              `yaml:"name"`
	TPS     int                 `yaml:"tps"`
	Frames  int                 `yaml:"frames"`
	Control prefabs.ControlSpec `yaml:"control"`
	Events  []Event             `yaml:"events"`
}

// Sample is the control state observed after one tick.
type Sample struct {
	Frame  int
	Button bool
	Down   bool
	Up     bool
	Axes   map[string]float64
}

func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("replay: read %s: %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("replay: %s: %w", path, err)
	}
	return s, nil
}

func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) Validate() error {
	if s.Frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", s.Frames)
	}
	if s.TPS < 0 {
		return fmt.Errorf("tps must not be negative, got %d", s.TPS)
	}
	if s.Control.Name == "" {
		s.Control.Name = "control"
	}
	if err := (prefabs.LayoutSpec{Controls: []prefabs.ControlSpec{s.Control}}).Validate(); err != nil {
		return err
	}
	for i, ev := range s.Events {
		if ev.Frame < 1 || ev.Frame > s.Frames {
			return fmt.Errorf("event %d: frame %d outside 1..%d", i, ev.Frame, s.Frames)
		}
		switch ev.Type {
		case EventDown, EventMove, EventUp:
		default:
			return fmt.Errorf("event %d: unknown type %q", i, ev.Type)
		}
	}
	return nil
}

// Run plays the script and returns one sample per frame.
func Run(s *Script) ([]Sample, error) {
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}

	tps := s.TPS
	if tps == 0 {
		tps = defaultTPS
	}

	spec := s.Control
	if spec.Radius <= 0 {
		spec.Radius = math.Inf(1)
	}

	w := ecs.NewWorld()
	registry := input.NewRegistry()
	tracker := device.NewTracker()
	clock := device.NewFrameClock(tps)
	dispatch := system.NewTouchDispatchSystem(tracker)

	ents, err := entity.BuildControls(w, &prefabs.LayoutSpec{Controls: []prefabs.ControlSpec{spec}}, entity.ControlHost{
		Registry: registry,
		Touches:  tracker,
		Clock:    clock,
	})
	if err != nil {
		return nil, fmt.Errorf("replay: %w", err)
	}
	defer entity.DestroyControls(w)
	ctrl, err := controlOf(w, ents[0])
	if err != nil {
		return nil, err
	}

	events := append([]Event(nil), s.Events...)
	sort.SliceStable(events, func(i, j int) bool { return events[i].Frame < events[j].Frame })

	points := make(map[int]common.Vec2)
	samples := make([]Sample, 0, s.Frames)
	next := 0
	for frame := 1; frame <= s.Frames; frame++ {
		clock.Tick()
		for ; next < len(events) && events[next].Frame == frame; next++ {
			ev := events[next]
			switch ev.Type {
			case EventDown, EventMove:
				points[ev.Finger] = common.Vec2{X: ev.X, Y: ev.Y}
			case EventUp:
				delete(points, ev.Finger)
			}
		}
		tracker.Sample(points)
		dispatch.Update(w)

		sample := Sample{
			Frame:  clock.CurrentFrame(),
			Button: ctrl.Button(),
			Down:   ctrl.ButtonDown(),
			Up:     ctrl.ButtonUp(),
			Axes:   make(map[string]float64, len(spec.Mappings)),
		}
		for _, m := range spec.Mappings {
			sample.Axes[m.Name] = registry.Axis(m.Name)
		}
		samples = append(samples, sample)
	}
	return samples, nil
}

func controlOf(w *ecs.World, e ecs.Entity) (*touch.Control, error) {
	vc, ok := ecs.Get(w, e, component.VirtualControlComponent)
	if !ok || vc.Control == nil {
		return nil, fmt.Errorf("replay: entity %s has no control", e)
	}
	return vc.Control, nil
}

// Series extracts one axis from samples in frame order.
func Series(samples []Sample, name string) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Axes[name]
	}
	return out
}
