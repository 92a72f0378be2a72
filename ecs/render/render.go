// Package render draws the demo world. It is the only ECS package that
// depends on Ebiten.
package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/touchpad/ecs"
	"github.com/milk9111/touchpad/ecs/component"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font/basicfont"
)

const (
	ringWidth   = 3
	knobScale   = 0.45
	headingLine = 1.2
)

type RenderSystem struct {
	face ebtext.Face
}

func NewRenderSystem() *RenderSystem {
	return &RenderSystem{face: ebtext.NewGoXFace(basicfont.Face7x13)}
}

func (r *RenderSystem) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}
	r.drawAvatars(w, screen)
	r.drawControls(w, screen)
}

func (r *RenderSystem) drawAvatars(w *ecs.World, screen *ebiten.Image) {
	for _, e := range w.Query(component.TransformComponent.Kind(), component.AvatarComponent.Kind()) {
		t, _ := ecs.Get(w, e, component.TransformComponent)
		a, _ := ecs.Get(w, e, component.AvatarComponent)

		half := a.Size / 2
		vector.DrawFilledRect(screen, float32(t.X-half), float32(t.Y-half), float32(a.Size), float32(a.Size), a.Color, true)

		reach := a.Size * headingLine
		hx := t.X + math.Cos(a.Heading)*reach
		hy := t.Y + math.Sin(a.Heading)*reach
		vector.StrokeLine(screen, float32(t.X), float32(t.Y), float32(hx), float32(hy), 2, colornames.White, true)
	}
}

func (r *RenderSystem) drawControls(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach(w, component.VirtualControlComponent, func(e ecs.Entity, vc *component.VirtualControl) {
		if vc.Control == nil || !vc.Control.Active() {
			return
		}
		rest := vc.Control.RestPosition()
		radius := float32(vc.Radius)
		ring := withAlpha(vc.Color, 160)

		vector.StrokeCircle(screen, float32(rest.X), float32(rest.Y), radius, ringWidth, ring, true)
		if vc.Control.Button() {
			vector.DrawFilledCircle(screen, float32(rest.X), float32(rest.Y), radius, withAlpha(vc.Color, 60), true)
		}

		if vc.Control.HasJoystick() {
			knob := vc.Control.AnchoredPosition()
			vector.DrawFilledCircle(screen, float32(knob.X), float32(knob.Y), radius*knobScale, withAlpha(vc.Color, 200), true)
		}

		if vc.Label == "" {
			return
		}
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(rest.X, rest.Y+vc.Radius+4)
		op.ColorScale.ScaleWithColor(vc.Color)
		op.PrimaryAlign = ebtext.AlignCenter
		ebtext.Draw(screen, vc.Label, r.face, op)
	})
}

func withAlpha(c color.Color, a uint8) color.NRGBA {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = a
	return n
}
