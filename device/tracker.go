package device

import (
	"sort"

	"github.com/milk9111/touchpad/common"
	"github.com/milk9111/touchpad/touch"
)

type trackedTouch struct {
	start common.Vec2
	pos   common.Vec2
	prev  common.Vec2
}

// Tracker keeps per-finger history from one positional sample per tick.
// It satisfies touch.TouchProvider.
type Tracker struct {
	touches      map[int]*trackedTouch
	ids          []int
	justPressed  []int
	justReleased []int
	last         common.Vec2
}

func NewTracker() *Tracker {
	return &Tracker{touches: make(map[int]*trackedTouch)}
}

// Sample replaces the live touch set with points, keyed by finger id.
func (t *Tracker) Sample(points map[int]common.Vec2) {
	if t.touches == nil {
		t.touches = make(map[int]*trackedTouch)
	}
	t.justPressed = t.justPressed[:0]
	t.justReleased = t.justReleased[:0]

	for id := range t.touches {
		if _, ok := points[id]; !ok {
			delete(t.touches, id)
			t.justReleased = append(t.justReleased, id)
		}
	}

	t.ids = t.ids[:0]
	for id, p := range points {
		t.ids = append(t.ids, id)
		tt, ok := t.touches[id]
		if !ok {
			t.touches[id] = &trackedTouch{start: p, pos: p, prev: p}
			t.justPressed = append(t.justPressed, id)
			continue
		}
		tt.prev = tt.pos
		tt.pos = p
	}

	sort.Ints(t.ids)
	sort.Ints(t.justPressed)
	sort.Ints(t.justReleased)
	if n := len(t.ids); n > 0 {
		t.last = t.touches[t.ids[n-1]].pos
	}
}

func (t *Tracker) TouchCount() int {
	return len(t.touches)
}

func (t *Tracker) Touch(id int) (touch.State, bool) {
	tt, ok := t.touches[id]
	if !ok {
		return touch.State{}, false
	}
	return touch.State{Position: tt.pos, DeltaPosition: tt.pos.Sub(tt.prev)}, true
}

// TouchStartPosition returns where the finger first landed, or the zero
// vector for unknown ids.
func (t *Tracker) TouchStartPosition(id int) common.Vec2 {
	if tt, ok := t.touches[id]; ok {
		return tt.start
	}
	return common.Vec2{}
}

func (t *Tracker) LastTouchPosition() common.Vec2 {
	return t.last
}

// IDs returns the live finger ids in ascending order.
func (t *Tracker) IDs() []int {
	return t.ids
}

func (t *Tracker) JustPressed() []int {
	return t.justPressed
}

func (t *Tracker) JustReleased() []int {
	return t.justReleased
}

// SetLastTouchPosition overrides the fallback position reported when no
// finger is down, e.g. with the mouse cursor in a simulator.
func (t *Tracker) SetLastTouchPosition(p common.Vec2) {
	t.last = p
}
