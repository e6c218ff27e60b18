package main

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/arena/config"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/system"
	"github.com/milk9111/arena/encounter"
	"github.com/milk9111/arena/prefabs"
	"go.uber.org/zap"
)

var background = color.RGBA{R: 0x14, G: 0x14, B: 0x1c, A: 0xff}

// Game hosts one encounter in an ebiten window: it feeds the player input in,
// draws the world and shows the pause panel.
type Game struct {
	cfg     *config.Config
	log     *zap.Logger
	watcher *prefabs.Watcher

	enc    *encounter.Encounter
	events *eventLog
	panel  *panelUI

	width, height int
	frames        int
	paused        bool
	exited        bool
	debug         bool
	quit          bool
	allAbilities  bool
}

func NewGame(cfg *config.Config, log *zap.Logger, watcher *prefabs.Watcher, debug, allAbilities bool) (*Game, error) {
	g := &Game{
		cfg:          cfg,
		log:          log,
		watcher:      watcher,
		events:       &eventLog{},
		width:        cfg.Viewer.Width,
		height:       cfg.Viewer.Height,
		debug:        debug,
		allAbilities: allAbilities,
	}
	g.panel = newPanelUI(g)
	if err := g.start(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) start() error {
	g.events.reset()
	enc := encounter.New(encounter.Options{
		Log:       g.log,
		Rand:      rand.New(rand.NewPCG(g.cfg.Sim.Seed, g.cfg.Sim.Seed)),
		TickRate:  g.cfg.Sim.TickRate,
		Watcher:   g.watcher,
		Listeners: []encounter.Listener{g.events.listener(), encounter.LogListener(g.log.Named("events"))},
	})
	if err := enc.LoadFile(g.cfg.Sim.Encounter); err != nil {
		return err
	}
	if g.allAbilities {
		for _, id := range component.AbilityOrder {
			enc.Unlock(id)
		}
	}
	g.enc = enc
	g.paused, g.exited = false, false
	return nil
}

func (g *Game) resume() {
	if !g.exited {
		g.paused = false
	}
}

func (g *Game) restart() {
	if err := g.start(); err != nil {
		g.log.Error("restart failed", zap.Error(err))
		g.panel.setStatus(err.Error())
	}
}

func (g *Game) copyLog() {
	if err := g.events.copyToClipboard(); err != nil {
		g.log.Warn("copy event log", zap.Error(err))
		g.panel.setStatus(err.Error())
		return
	}
	g.panel.setStatus(fmt.Sprintf("copied %d lines", len(g.events.lines)))
}

func (g *Game) camera() camera {
	cam := camera{scale: g.cfg.Viewer.Scale, width: float64(g.width), height: float64(g.height)}
	if t, ok := ecs.Get(g.enc.World(), g.enc.Player(), component.TransformComponent.Kind()); ok {
		cam.x, cam.y = t.X, t.Y
	}
	return cam
}

func (g *Game) Update() error {
	if g.quit || inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		return ebiten.Termination
	}
	g.frames++
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.copyLog()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && !g.exited {
		g.paused = !g.paused
		g.panel.setTitle("Paused")
		g.panel.setStatus("")
	}
	if g.paused || g.exited {
		g.panel.ui.Update()
		return nil
	}

	cam := g.camera()
	in := pollInput(cam, cam.x, cam.y)
	g.enc.Step(in)

	if in.Interact && g.enc.TryExit() {
		g.exited = true
		g.panel.setTitle("Encounter cleared")
		g.panel.setStatus(fmt.Sprintf("%s in %.1fs", g.enc.Name(), g.enc.Now()))
	}
	if ecs.Has(g.enc.World(), g.enc.Player(), component.DeadComponent.Kind()) && !g.paused {
		g.paused = true
		g.panel.setTitle("You died")
		g.panel.setStatus("")
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	cam := g.camera()
	w := g.enc.World()
	drawWorld(screen, w, cam, g.frames/6%2 == 0)
	if g.debug {
		debugDrawSpace(screen, g.enc.Physics().Space(), cam)
	}

	ebitenutil.DebugPrint(screen, g.hud())
	ebitenutil.DebugPrintAt(screen, g.events.tail(), 8, g.height-eventLogLines*16-8)

	if g.paused || g.exited {
		g.panel.ui.Draw(screen)
	}
}

func (g *Game) hud() string {
	w := g.enc.World()
	p := g.enc.Player()
	hp := "-"
	if h, ok := ecs.Get(w, p, component.HealthComponent.Kind()); ok {
		hp = fmt.Sprintf("%d/%d", h.Current, h.Max)
	}
	abilities, _ := ecs.Get(w, p, component.AbilitiesComponent.Kind())
	line := fmt.Sprintf("%s  t=%.1f  hp %s  FPS %.0f\n", g.enc.Name(), g.enc.Now(), hp, ebiten.ActualFPS())
	for i, id := range component.AbilityOrder {
		state := "locked"
		if abilities.Unlocked(id) {
			state = fmt.Sprintf("%.1fs", system.Ledger(w, p).Remaining(string(id), w.Now()))
		}
		line += fmt.Sprintf("[%d] %s %s  ", i+1, id, state)
	}
	if g.enc.Cleared() {
		line += "\ngate open: stand in it and press E"
	}
	return line
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return float64(g.width), float64(g.height)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}
