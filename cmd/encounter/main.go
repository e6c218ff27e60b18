package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"

	"github.com/milk9111/arena/config"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/encounter"
	"github.com/milk9111/arena/prefabs"
	"go.uber.org/zap"
)

// encounter runs an arena headless with the autopilot at the controls and
// logs the event stream.
func main() {
	configPath := flag.String("config", "config.toml", "path to the TOML config")
	name := flag.String("encounter", "", "encounter under prefabs/ (overrides sim.encounter)")
	seed := flag.Uint64("seed", 0, "drop roll seed (overrides sim.seed)")
	allAbilities := flag.Bool("ab", false, "start with all abilities unlocked")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *name != "" {
		cfg.Sim.Encounter = *name
	}
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}

	code := run(cfg, logger, *allAbilities)
	_ = logger.Sync()
	os.Exit(code)
}

func run(cfg *config.Config, logger *zap.Logger, allAbilities bool) int {
	prefabs.Dir = cfg.Prefabs.Dir

	opts := encounter.Options{
		Log:       logger,
		Rand:      rand.New(rand.NewPCG(cfg.Sim.Seed, cfg.Sim.Seed)),
		TickRate:  cfg.Sim.TickRate,
		Listeners: []encounter.Listener{encounter.LogListener(logger.Named("events"))},
	}
	if cfg.Prefabs.HotReload {
		watcher, err := prefabs.NewWatcher()
		if err != nil {
			logger.Warn("hot reload disabled", zap.Error(err))
		} else {
			defer watcher.Close()
			opts.Watcher = watcher
		}
	}

	enc := encounter.New(opts)
	if err := enc.LoadFile(cfg.Sim.Encounter); err != nil {
		logger.Error("load failed", zap.Error(err))
		return 1
	}
	if allAbilities {
		for _, id := range component.AbilityOrder {
			enc.Unlock(id)
		}
	}

	maxTicks := int(cfg.Sim.Duration.Seconds() * float64(cfg.Sim.TickRate))
	pilot := encounter.Autopilot{}
	var tally summary
	for tick := 0; maxTicks == 0 || tick < maxTicks; tick++ {
		tally.add(enc.Step(pilot.Input(enc)))
		if enc.TryExit() {
			tally.exited = true
			break
		}
		if ecs.Has(enc.World(), enc.Player(), component.DeadComponent.Kind()) {
			break
		}
	}

	logger.Info("run finished",
		zap.String("encounter", enc.Name()),
		zap.Float64("seconds", enc.Now()),
		zap.Bool("cleared", enc.Cleared()),
		zap.Bool("exited", tally.exited),
		zap.Int("kills", tally.kills),
		zap.Int("hits", tally.hits),
		zap.Int("phases", tally.phases),
	)
	fmt.Println(tally.String())
	if !enc.Cleared() {
		return 2
	}
	return 0
}

type summary struct {
	kills, hits, phases int
	exited              bool
}

func (s *summary) add(events []ecs.Event) {
	for _, evt := range events {
		switch evt.Kind {
		case ecs.EventActorDied:
			s.kills++
		case ecs.EventDamageDealt:
			if evt.Outcome != component.DamageIgnored {
				s.hits++
			}
		case ecs.EventPhaseEntered:
			s.phases++
		}
	}
}

func (s summary) String() string {
	return fmt.Sprintf("kills=%d hits=%d phases=%d exited=%v", s.kills, s.hits, s.phases, s.exited)
}
