package encounter

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/google/uuid"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/entity"
	"github.com/milk9111/arena/ecs/system"
	"github.com/milk9111/arena/prefabs"
	"go.uber.org/zap"
)

var ErrNoPlayer = errors.New("encounter: no player")

const defaultTickRate = 60

type Options struct {
	Log       *zap.Logger
	Rand      *rand.Rand
	Listeners []Listener
	Loader    Loader
	TickRate  int
	// Watcher, when set, is drained every tick and reloads edited prefabs.
	Watcher *prefabs.Watcher
}

// Encounter owns one arena: the world, its systems in tick order and the
// subscribers of its event stream.
type Encounter struct {
	id        uuid.UUID
	log       *zap.Logger
	world     *ecs.World
	scheduler *ecs.Scheduler
	physics   *system.PhysicsSystem
	selector  *system.AttackSelector
	loader    *cachingLoader
	watcher   *prefabs.Watcher
	listeners []Listener

	name    string
	player  ecs.Entity
	byID    map[string]ecs.Entity
	cleared bool
}

func New(opts Options) *Encounter {
	id := uuid.New()
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("run", id.String()))
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	rate := opts.TickRate
	if rate <= 0 {
		rate = defaultTickRate
	}

	w := ecs.NewWorld()
	w.SetDeltaTime(1 / float64(rate))

	loader := newCachingLoader(opts.Loader)
	selector := system.NewAttackSelector(loader.Script)
	damage := system.NewDamageResolver(log.Named("damage"))
	physics := system.NewPhysicsSystem()

	scheduler := ecs.NewScheduler(
		system.NewStatusSystem(),
		system.NewGroupAlertSystem(),
		system.NewAISystem(log.Named("ai"), rng, selector),
		system.NewTurretSystem(log.Named("trap")),
		system.NewAbilitySystem(log.Named("ability")),
		system.NewPlayerControllerSystem(),
		system.NewHitboxSystem(damage),
		system.NewProjectileSystem(damage, log.Named("projectile")),
		system.NewHazardSystem(damage),
		system.NewContactDamageSystem(damage),
		system.NewKnockbackSystem(),
		physics,
		system.NewPickupSystem(log.Named("pickup")),
		system.NewDeathSystem(log.Named("death"), rng),
		system.NewGateSystem(log.Named("gate")),
	)

	e := &Encounter{
		id:        id,
		log:       log,
		world:     w,
		scheduler: scheduler,
		physics:   physics,
		selector:  selector,
		loader:    loader,
		watcher:   opts.Watcher,
		byID:      make(map[string]ecs.Entity),
	}
	for _, l := range opts.Listeners {
		e.Subscribe(l)
	}
	return e
}

func (e *Encounter) ID() string { return e.id.String() }
func (e *Encounter) Name() string { return e.name }
func (e *Encounter) World() *ecs.World { return e.world }
func (e *Encounter) Player() ecs.Entity { return e.player }
func (e *Encounter) Now() float64 { return e.world.Now() }
func (e *Encounter) Log() *zap.Logger { return e.log }
func (e *Encounter) Physics() *system.PhysicsSystem { return e.physics }

// Subscribe adds a listener. Nil listeners are ignored.
func (e *Encounter) Subscribe(l Listener) {
	if l == nil {
		return
	}
	e.listeners = append(e.listeners, l)
}

// LoadFile reads an encounter by name and spawns it.
func (e *Encounter) LoadFile(name string) error {
	spec, err := e.loader.Encounter(name)
	if err != nil {
		return fmt.Errorf("encounter: %w", err)
	}
	return e.Load(spec)
}

// Load spawns everything an encounter spec places. Enemies and traps that
// cannot be built are logged and skipped; a missing player is an error.
func (e *Encounter) Load(spec *prefabs.EncounterSpec) error {
	if spec == nil {
		return fmt.Errorf("encounter: nil spec")
	}
	e.name = spec.Name
	e.log.Info("loading encounter", zap.String("encounter", spec.Name))

	if _, err := e.SpawnPlayer(spec.Player.X, spec.Player.Y); err != nil {
		return err
	}
	if _, err := entity.Roster(e.world); err != nil {
		return fmt.Errorf("encounter: %w", err)
	}
	for _, ws := range spec.Walls {
		if _, err := entity.BuildWall(e.world, ws); err != nil {
			e.log.Warn("wall skipped", zap.Error(err))
		}
	}
	for _, p := range spec.Enemies {
		en, err := e.SpawnEnemy(p.Prefab, entity.Placement{X: p.X, Y: p.Y, Group: p.Group})
		if err != nil {
			e.log.Warn("enemy skipped", zap.String("prefab", p.Prefab), zap.Error(err))
			continue
		}
		if p.ID != "" {
			e.byID[p.ID] = en
		}
	}
	for _, p := range spec.Traps {
		var linked ecs.Entity
		if p.Linked != "" {
			var ok bool
			if linked, ok = e.byID[p.Linked]; !ok {
				e.log.Warn("trap linked to unknown placement", zap.String("prefab", p.Prefab), zap.String("linked", p.Linked))
			}
		}
		if _, err := e.SpawnTrap(p.Prefab, p.X, p.Y, linked); err != nil {
			e.log.Warn("trap skipped", zap.String("prefab", p.Prefab), zap.Error(err))
		}
	}
	for _, ps := range spec.Pickups {
		if _, err := entity.BuildPickup(e.world, ps); err != nil {
			e.log.Warn("pickup skipped", zap.String("pickup", ps.Name), zap.Error(err))
		}
	}
	if spec.Gate != nil {
		if _, err := entity.BuildGate(e.world, *spec.Gate); err != nil {
			e.log.Warn("gate skipped", zap.Error(err))
		}
	}
	e.physics.Sync(e.world)
	return nil
}

// SpawnPlayer creates the player. An encounter has at most one.
func (e *Encounter) SpawnPlayer(x, y float64) (ecs.Entity, error) {
	if ecs.IsAlive(e.world, e.player) {
		return e.player, nil
	}
	spec, err := e.loader.Player()
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoPlayer, err)
	}
	p, err := entity.BuildPlayer(e.world, spec, x, y)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrNoPlayer, err)
	}
	e.player = p
	e.physics.Sync(e.world)
	return p, nil
}

// SpawnEnemy builds an archetype and registers it with the exit gate.
func (e *Encounter) SpawnEnemy(prefab string, at entity.Placement) (ecs.Entity, error) {
	spec, err := e.loader.Archetype(prefab)
	if err != nil {
		return 0, err
	}
	if err := spec.Validate(); err != nil {
		e.log.Warn("archetype has unusable attacks", zap.String("prefab", prefab), zap.Error(err))
	}
	en, err := entity.BuildEnemy(e.world, spec, at)
	if err != nil {
		return 0, err
	}
	e.cleared = false
	e.physics.Sync(e.world)
	e.log.Debug("enemy spawned", zap.String("prefab", prefab), zap.Stringer("entity", en))
	return en, nil
}

func (e *Encounter) SpawnTrap(prefab string, x, y float64, linked ecs.Entity) (ecs.Entity, error) {
	spec, err := e.loader.Trap(prefab)
	if err != nil {
		return 0, err
	}
	return entity.BuildTrap(e.world, spec, x, y, linked)
}

// Step copies in onto the player, runs one tick and hands the tick's events
// to every listener. The events are also returned.
func (e *Encounter) Step(in component.Input) []ecs.Event {
	e.applyReloads()
	if input, ok := ecs.Get(e.world, e.player, component.InputComponent.Kind()); ok {
		*input = in
	}
	e.scheduler.Update(e.world)

	events := e.world.Events().Drain()
	for _, evt := range events {
		if evt.Kind == ecs.EventEncounterCleared {
			e.cleared = true
		}
		e.dispatch(evt)
	}
	return events
}

func (e *Encounter) dispatch(evt ecs.Event) {
	for _, l := range e.listeners {
		func() {
			defer func() {
				if r := recover(); r != nil {
					e.log.Error("listener panicked", zap.String("event", string(evt.Kind)), zap.Any("panic", r))
				}
			}()
			deliver(l, evt)
		}()
	}
}

// Cleared reports whether every registered enemy has died.
func (e *Encounter) Cleared() bool {
	return e.cleared
}

// TryExit reports whether the living player stands inside an open exit gate.
func (e *Encounter) TryExit() bool {
	if !e.cleared || ecs.Has(e.world, e.player, component.DeadComponent.Kind()) {
		return false
	}
	pt, ok := ecs.Get(e.world, e.player, component.TransformComponent.Kind())
	if !ok {
		return false
	}
	exit := false
	ecs.ForEach2(e.world, component.ExitGateComponent.Kind(), component.TransformComponent.Kind(), func(_ ecs.Entity, g *component.ExitGate, t *component.Transform) {
		dx, dy := pt.X-t.X, pt.Y-t.Y
		if g.Open && dx*dx+dy*dy <= g.Radius*g.Radius {
			exit = true
		}
	})
	return exit
}

// Unlock grants an ability to the player as if a pickup had been collected.
func (e *Encounter) Unlock(id component.AbilityID) bool {
	return system.Unlock(e.world, e.player, id)
}

// Reload drops the cached copy of a prefab or script so future spawns and
// attack selections use the edited file. Actors already spawned keep their
// data.
func (e *Encounter) Reload(name string) {
	e.loader.invalidate(name)
	e.selector.Invalidate(name)
	e.log.Info("prefab reloaded", zap.String("prefab", name))
}

func (e *Encounter) applyReloads() {
	if e.watcher == nil {
		return
	}
	for _, c := range e.watcher.Drain() {
		e.Reload(c.Name)
	}
	select {
	case err, ok := <-e.watcher.Errors:
		if ok {
			e.log.Warn("prefab watcher", zap.Error(err))
		}
	default:
	}
}
