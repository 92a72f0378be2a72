package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/touchpad/common"
	"github.com/milk9111/touchpad/device"
)

// MouseTouchID is the finger id the left mouse button plays in simulate mode.
// It matches the index the touch-count resolver derives for a single touch.
const MouseTouchID = 0

// ebitenTouches samples Ebiten's touch state into a device.Tracker once per tick.
type ebitenTouches struct {
	*device.Tracker

	simulate bool
	ids      []ebiten.TouchID
	points   map[int]common.Vec2
}

func newEbitenTouches(simulate bool) *ebitenTouches {
	return &ebitenTouches{
		Tracker:  device.NewTracker(),
		simulate: simulate,
		points:   make(map[int]common.Vec2),
	}
}

func (t *ebitenTouches) Update() {
	clear(t.points)

	t.ids = ebiten.AppendTouchIDs(t.ids[:0])
	for _, id := range t.ids {
		x, y := ebiten.TouchPosition(id)
		t.points[int(id)] = common.Vec2{X: float64(x), Y: float64(y)}
	}

	cx, cy := ebiten.CursorPosition()
	cursor := common.Vec2{X: float64(cx), Y: float64(cy)}
	if t.simulate && len(t.ids) == 0 && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		t.points[MouseTouchID] = cursor
	}

	t.Sample(t.points)
	if t.simulate && len(t.points) == 0 {
		t.SetLastTouchPosition(cursor)
	}
}
