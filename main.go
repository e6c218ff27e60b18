package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/arena/config"
	"github.com/milk9111/arena/prefabs"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config")
	allAbilities := flag.Bool("ab", false, "start with all abilities unlocked")
	debug := flag.Bool("debug", false, "draw physics shapes")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	name := flag.String("encounter", "", "encounter under prefabs/ (overrides sim.encounter)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *name != "" {
		cfg.Sim.Encounter = *name
	}
	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	prefabs.Dir = cfg.Prefabs.Dir
	var watcher *prefabs.Watcher
	if cfg.Prefabs.HotReload {
		if watcher, err = prefabs.NewWatcher(); err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(cfg.Viewer.Width, cfg.Viewer.Height)
	ebiten.SetWindowTitle("arena")
	ebiten.SetTPS(cfg.Sim.TickRate)

	game, err := NewGame(cfg, logger, watcher, *debug, *allAbilities)
	if err != nil {
		logger.Fatal("start encounter", zap.Error(err))
	}
	if err := ebiten.RunGame(game); err != nil {
		logger.Fatal("run", zap.Error(err))
	}
}
