package system

import (
	"math"
	"testing"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

const testDT = 1.0 / 60.0

func newTestWorld() *ecs.World {
	w := ecs.NewWorld()
	w.SetDeltaTime(testDT)
	return w
}

type actorOpts struct {
	x, y    float64
	hp      int
	faction component.Faction
	radius  float64
	stagger float64
	blink   float64
	body    bool
}

func spawnActor(t *testing.T, w *ecs.World, o actorOpts) ecs.Entity {
	t.Helper()
	if o.radius == 0 {
		o.radius = 0.5
	}
	e := ecs.CreateEntity(w)
	must(t, ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{X: o.x, Y: o.y}))
	must(t, ecs.Add(w, e, component.HealthComponent.Kind(), &component.Health{Current: o.hp, Max: o.hp}))
	must(t, ecs.Add(w, e, component.HurtboxComponent.Kind(), &component.Hurtbox{Radius: o.radius}))
	must(t, ecs.Add(w, e, component.CombatantComponent.Kind(), &component.Combatant{
		Faction:            o.faction,
		StaggerDuration:    o.stagger,
		BlinkInvincibility: o.blink,
	}))
	switch o.faction {
	case component.FactionPlayer:
		must(t, ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	case component.FactionEnemy:
		must(t, ecs.Add(w, e, component.EnemyTagComponent.Kind(), &component.EnemyTag{}))
	}
	if o.body {
		must(t, ecs.Add(w, e, component.PhysicsBodyComponent.Kind(), &component.PhysicsBody{Radius: o.radius, Mass: 1}))
	}
	return e
}

func spawnPlayer(t *testing.T, w *ecs.World, x, y float64) ecs.Entity {
	t.Helper()
	e := spawnActor(t, w, actorOpts{x: x, y: y, hp: 100, faction: component.FactionPlayer, radius: 0.4, blink: 1, body: true})
	must(t, ecs.Add(w, e, component.PlayerControllerComponent.Kind(), &component.PlayerController{}))
	must(t, ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{}))
	must(t, ecs.Add(w, e, component.AbilitiesComponent.Kind(), &component.Abilities{}))
	must(t, ecs.Add(w, e, component.PlayerTuningComponent.Kind(), &component.PlayerTuning{
		MoveSpeed:      5,
		AttackCooldown: 0.5,
		SlashDamage:    20,
		SlashRadius:    1.5,
		SlashOffset:    1,
		SlashDuration:  0.3,
		Fireball: component.ProjectileDef{
			Speed: 12, Damage: 30, Lifetime: 5, DestroyOnHit: true, DestroyOnWall: true,
		},
		Explosion:          component.ExplosionDef{Radius: 2.5, Damage: 25, Duration: 0.2},
		DashDistance:       5,
		DashDuration:       0.2,
		DefenseMaxDuration: 3,
	}))
	ledger := Ledger(w, e)
	ledger.Register(attackAction, 0.5, 0)
	for id, cd := range map[component.AbilityID]float64{
		component.AbilityFireball:  1,
		component.AbilityExplosion: 5,
		component.AbilityDefense:   5,
		component.AbilityDash:      1,
	} {
		ledger.Register(string(id), cd, 0)
	}
	return e
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}

func health(t *testing.T, w *ecs.World, e ecs.Entity) int {
	t.Helper()
	h, ok := ecs.Get(w, e, component.HealthComponent.Kind())
	if !ok {
		t.Fatalf("entity %s has no health", e)
	}
	return h.Current
}

func countEvents(events []ecs.Event, kind ecs.EventKind) int {
	n := 0
	for _, ev := range events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

// run steps the given systems n ticks and advances the clock after each.
func run(w *ecs.World, n int, systems ...ecs.System) {
	s := ecs.NewScheduler(systems...)
	for i := 0; i < n; i++ {
		s.Update(w)
	}
}
