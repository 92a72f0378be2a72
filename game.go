package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/touchpad/common"
	"github.com/milk9111/touchpad/device"
	"github.com/milk9111/touchpad/ecs"
	"github.com/milk9111/touchpad/ecs/component"
	"github.com/milk9111/touchpad/ecs/entity"
	"github.com/milk9111/touchpad/ecs/render"
	"github.com/milk9111/touchpad/ecs/system"
	"github.com/milk9111/touchpad/input"
	"github.com/milk9111/touchpad/prefabs"
	"github.com/milk9111/touchpad/touch"
	"golang.org/x/image/colornames"
)

type Game struct {
	debug      bool
	simulate   bool
	layoutFile string

	clock    *device.FrameClock
	touches  *ebitenTouches
	registry *input.Registry

	world     *ecs.World
	scheduler *ecs.Scheduler
	dispatch  *system.TouchDispatchSystem
	inputs    *system.InputSystem
	renderer  *render.RenderSystem
	player    ecs.Entity

	pauseUI *ebitenui.UI

	watcher *prefabs.Watcher
}

func NewGame(layoutFile string, debug, simulate bool) (*Game, error) {
	if layoutFile == "" {
		layoutFile = prefabs.LayoutFile
	}

	g := &Game{
		debug:      debug,
		simulate:   simulate,
		layoutFile: layoutFile,
		clock:      device.NewFrameClock(ebiten.DefaultTPS),
		touches:    newEbitenTouches(simulate),
		registry:   input.NewRegistry(),
		world:      ecs.NewWorld(),
		renderer:   render.NewRenderSystem(),
	}

	avatarSpec, err := prefabs.LoadAvatarSpec()
	if err != nil {
		return nil, err
	}
	g.player, err = entity.NewAvatar(g.world, avatarSpec)
	if err != nil {
		return nil, err
	}

	if err := g.buildControls(); err != nil {
		return nil, err
	}

	g.dispatch = system.NewTouchDispatchSystem(g.touches)
	g.inputs = system.NewInputSystem(g.registry)
	g.scheduler = ecs.NewScheduler(
		g.dispatch,
		g.inputs,
		system.NewPlayerControllerSystem(),
		system.NewPhysicsSystem(g.clock.DeltaTime(), common.BaseWidth, common.BaseHeight, avatarSpec.Damping),
	)
	g.pauseUI = NewPauseUI(g)

	if prefabs.OnDisk() {
		w, err := prefabs.NewWatcher(prefabs.Dir)
		if err != nil {
			log.Printf("Game: layout hot reload disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	return g, nil
}

// controlHost shares the game's collaborators with every control. Simulated
// touches always come from the mouse, so the touch count picks the finger.
func (g *Game) controlHost() entity.ControlHost {
	host := entity.ControlHost{
		Registry: g.registry,
		Touches:  g.touches,
		Clock:    g.clock,
	}
	if g.simulate {
		host.Resolver = touch.TouchCountResolver{Touches: g.touches}
	}
	return host
}

func (g *Game) buildControls() error {
	layout, err := prefabs.LoadLayout(g.layoutFile)
	if err != nil {
		return err
	}
	_, err = entity.BuildControls(g.world, layout, g.controlHost())
	return err
}

// reloadControls swaps the layout in place. A broken layout keeps the
// previous controls.
func (g *Game) reloadControls() {
	layout, err := prefabs.LoadLayout(g.layoutFile)
	if err != nil {
		log.Printf("Game: reload %s: %v", g.layoutFile, err)
		return
	}

	entity.DestroyControls(g.world)
	g.dispatch.Reset()
	if _, err := entity.BuildControls(g.world, layout, g.controlHost()); err != nil {
		log.Printf("Game: rebuild controls: %v", err)
		return
	}
	log.Printf("Game: reloaded %s (%d controls)", g.layoutFile, len(layout.Controls))
}

func (g *Game) Update() error {
	g.clock.Tick()
	g.touches.Update()

	if g.watcher != nil {
		for _, path := range g.watcher.Poll() {
			if prefabs.Matches(path, g.layoutFile) {
				g.reloadControls()
				break
			}
		}
	}

	g.scheduler.Update(g.world)
	if g.scheduler.Paused() {
		g.pauseUI.Update()
		return nil
	}

	if in, ok := ecs.Get(g.world, g.player, component.InputComponent); ok && in.PausePressed {
		g.scheduler.SetPaused(true)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Black)
	g.renderer.Draw(g.world, screen)

	if g.simulate {
		p := g.touches.LastTouchPosition()
		vector.StrokeCircle(screen, float32(p.X), float32(p.Y), 6, 1, colornames.Yellow, true)
	}

	if g.debug {
		ebitenutil.DebugPrint(screen, g.debugText())
	}

	if g.scheduler.Paused() {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) debugText() string {
	s := fmt.Sprintf("Frame: %d    FPS: %.2f    Touches: %d\n", g.clock.CurrentFrame(), ebiten.ActualFPS(), g.touches.TouchCount())
	in := g.inputs.Last()
	s += fmt.Sprintf("Move: %.2f %.2f    Look: %.2f %.2f    Turn: %.2f\n", in.MoveX, in.MoveY, in.LookX, in.LookY, in.Turn)
	s += fmt.Sprintf("Dash: %v    Bound: %s\n", in.Dash, strings.Join(g.registry.Names(), " "))
	return s
}

func (g *Game) Close() error {
	entity.DestroyControls(g.world)
	if g.watcher != nil {
		return g.watcher.Close()
	}
	return nil
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
