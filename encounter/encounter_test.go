package encounter

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/ecs/entity"
	"github.com/milk9111/arena/ecs/system"
	"github.com/milk9111/arena/prefabs"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	events []ecs.Event
}

func (r *recorder) listener() ListenerFuncs {
	rec := func(evt ecs.Event) { r.events = append(r.events, evt) }
	return ListenerFuncs{
		DamageDealt:      rec,
		ActorDied:        rec,
		PhaseEntered:     rec,
		AbilityUnlocked:  rec,
		AbilityActivated: rec,
		EncounterCleared: rec,
	}
}

func (r *recorder) count(kind ecs.EventKind) int {
	n := 0
	for _, evt := range r.events {
		if evt.Kind == kind {
			n++
		}
	}
	return n
}

func idle() component.Input { return component.Input{} }

func quietArena(enemies ...prefabs.PlacementSpec) *prefabs.EncounterSpec {
	return &prefabs.EncounterSpec{
		Name:    "test",
		Player:  prefabs.PlacementSpec{X: 0, Y: 0},
		Enemies: enemies,
		Gate:    &prefabs.GateSpec{X: -5, Y: 0, Radius: 1},
	}
}

func enemies(w *ecs.World) []ecs.Entity {
	return ecs.Query(w, component.EnemyTagComponent.Kind())
}

func kill(enc *Encounter, e ecs.Entity) {
	system.NewDamageResolver(nil).ApplyDamage(enc.World(), e, 1000, enc.Player())
}

func TestLoadEmbeddedEncounters(t *testing.T) {
	for _, name := range []string{"encounters/forest.yaml", "encounters/crypt.yaml", "encounters/wizard_tower.yaml", "encounters/final.yaml"} {
		t.Run(name, func(t *testing.T) {
			enc := New(Options{})
			require.NoError(t, enc.LoadFile(name))
			require.True(t, enc.Player().Valid())
			require.NotEmpty(t, enemies(enc.World()))
			for i := 0; i < 120; i++ {
				enc.Step(idle())
			}
			require.False(t, enc.Cleared())
		})
	}
}

func TestGateOpensOnlyWhenAllEnemiesDead(t *testing.T) {
	rec := &recorder{}
	enc := New(Options{Listeners: []Listener{rec.listener()}})
	require.NoError(t, enc.Load(quietArena(
		prefabs.PlacementSpec{Prefab: "slime.yaml", X: 20, Y: 0},
		prefabs.PlacementSpec{Prefab: "slime.yaml", X: 20, Y: 10},
	)))
	foes := enemies(enc.World())
	require.Len(t, foes, 2)

	kill(enc, foes[0])
	enc.Step(idle())
	require.False(t, enc.Cleared())
	require.False(t, enc.TryExit())

	kill(enc, foes[1])
	enc.Step(idle())
	require.True(t, enc.Cleared())
	require.Equal(t, 1, rec.count(ecs.EventEncounterCleared))
	require.Equal(t, 2, rec.count(ecs.EventActorDied))

	require.False(t, enc.TryExit(), "player is not at the gate yet")
	pt, _ := ecs.Get(enc.World(), enc.Player(), component.TransformComponent.Kind())
	pt.X, pt.Y = -5, 0.5
	require.True(t, enc.TryExit())

	for i := 0; i < 10; i++ {
		enc.Step(idle())
	}
	require.Equal(t, 1, rec.count(ecs.EventEncounterCleared))
}

func TestListenerPanicDoesNotStallTick(t *testing.T) {
	rec := &recorder{}
	enc := New(Options{})
	enc.Subscribe(nil)
	enc.Subscribe(ListenerFuncs{DamageDealt: func(ecs.Event) { panic("boom") }})
	enc.Subscribe(rec.listener())
	require.NoError(t, enc.Load(quietArena(prefabs.PlacementSpec{Prefab: "werewolf.yaml", X: 20, Y: 0})))

	system.NewDamageResolver(nil).ApplyDamage(enc.World(), enemies(enc.World())[0], 10, enc.Player())
	events := enc.Step(idle())
	require.Len(t, events, 1)
	require.Equal(t, 1, rec.count(ecs.EventDamageDealt))
	require.Equal(t, uint64(1), enc.World().Tick())
}

func TestDefenseWithoutHeldFlagRunsFullDuration(t *testing.T) {
	enc := New(Options{})
	require.NoError(t, enc.Load(quietArena(prefabs.PlacementSpec{Prefab: "slime.yaml", X: 30, Y: 0})))
	require.True(t, enc.Unlock(component.AbilityDefense))
	w := enc.World()
	source := enemies(w)[0]
	damage := system.NewDamageResolver(nil)
	pc, ok := ecs.Get(w, enc.Player(), component.PlayerControllerComponent.Kind())
	require.True(t, ok)

	enc.Step(component.Input{Ability: [4]bool{false, false, true}})
	require.True(t, pc.Defending(), "press alone starts defense")
	require.Equal(t, component.DamageIgnored, damage.ApplyDamage(w, enc.Player(), 10, source))

	for i := 0; i < 60; i++ {
		enc.Step(idle())
	}
	require.True(t, pc.Defending(), "defense lasts its full duration when never held")
	require.Equal(t, component.DamageIgnored, damage.ApplyDamage(w, enc.Player(), 10, source))
	h, _ := ecs.Get(w, enc.Player(), component.HealthComponent.Kind())
	require.Equal(t, 100, h.Current)

	for i := 0; i < 60; i++ {
		enc.Step(idle())
	}
	require.False(t, pc.Defending())
	require.NotEqual(t, component.DamageIgnored, damage.ApplyDamage(w, enc.Player(), 10, source))
}

func TestDefenseEndsWhenHeldKeyIsReleased(t *testing.T) {
	enc := New(Options{})
	require.NoError(t, enc.Load(quietArena(prefabs.PlacementSpec{Prefab: "slime.yaml", X: 30, Y: 0})))
	require.True(t, enc.Unlock(component.AbilityDefense))
	pc, _ := ecs.Get(enc.World(), enc.Player(), component.PlayerControllerComponent.Kind())

	enc.Step(component.Input{Ability: [4]bool{false, false, true}, DefenseHeld: true})
	for i := 0; i < 10; i++ {
		enc.Step(component.Input{DefenseHeld: true})
	}
	require.True(t, pc.Defending())
	enc.Step(idle())
	require.False(t, pc.Defending())
}

func TestBossPhaseThroughEncounter(t *testing.T) {
	rec := &recorder{}
	enc := New(Options{Listeners: []Listener{rec.listener()}})
	require.NoError(t, enc.Load(quietArena(prefabs.PlacementSpec{Prefab: "wizard.yaml", X: 30, Y: 0})))
	boss := enemies(enc.World())[0]

	outcome := system.NewDamageResolver(nil).ApplyDamage(enc.World(), boss, 60, enc.Player())
	require.Equal(t, component.DamageStaggered, outcome)
	enc.Step(idle())

	h, _ := ecs.Get(enc.World(), boss, component.HealthComponent.Kind())
	require.Equal(t, 40, h.Current)
	b, _ := ecs.Get(enc.World(), boss, component.BossComponent.Kind())
	require.Equal(t, 2, b.Phase)
	require.Equal(t, 1, rec.count(ecs.EventPhaseEntered))

	set, _ := ecs.Get(enc.World(), boss, component.AttackSetComponent.Kind())
	require.Equal(t, "arcane_fan", set.Attacks[0].Name)
}

type brokenLoader struct{ Loader }

func (brokenLoader) Player() (*prefabs.PlayerSpec, error) {
	return nil, errors.New("player.yaml missing")
}

func TestMissingPlayer(t *testing.T) {
	enc := New(Options{Loader: brokenLoader{prefabLoader{}}})
	err := enc.Load(quietArena())
	require.ErrorIs(t, err, ErrNoPlayer)
}

func TestUnknownArchetypeIsSkipped(t *testing.T) {
	enc := New(Options{})
	require.NoError(t, enc.Load(quietArena(
		prefabs.PlacementSpec{Prefab: "dragon.yaml", X: 20},
		prefabs.PlacementSpec{Prefab: "slime.yaml", X: 20, Y: 5},
	)))
	require.Len(t, enemies(enc.World()), 1)
	_, err := enc.SpawnEnemy("dragon.yaml", entity.Placement{})
	require.ErrorIs(t, err, prefabs.ErrUnknownArchetype)
}

func TestDropsAreDeterministicUnderSeed(t *testing.T) {
	roll := func(seed uint64) []string {
		enc := New(Options{Rand: rand.New(rand.NewPCG(seed, seed))})
		var spec []prefabs.PlacementSpec
		for i := 0; i < 6; i++ {
			spec = append(spec, prefabs.PlacementSpec{Prefab: "slime.yaml", X: 30 + float64(i)*3, Y: 0})
		}
		require.NoError(t, enc.Load(quietArena(spec...)))
		for _, foe := range enemies(enc.World()) {
			kill(enc, foe)
		}
		enc.Step(idle())
		var names []string
		ecs.ForEach(enc.World(), component.PickupComponent.Kind(), func(_ ecs.Entity, p *component.Pickup) {
			names = append(names, p.Name)
		})
		return names
	}
	first := roll(42)
	require.Equal(t, first, roll(42))
	require.NotEmpty(t, append(first, roll(7)...), "twelve rolls at 30% and 50% should drop something")
}

func TestSpellbookUnlocksBothSpells(t *testing.T) {
	rec := &recorder{}
	enc := New(Options{Listeners: []Listener{rec.listener()}})
	spec := quietArena(prefabs.PlacementSpec{Prefab: "slime.yaml", X: 30})
	spec.Pickups = []prefabs.PickupPlacement{{
		PickupSpec: prefabs.PickupSpec{Name: "wizard_spellbook", Abilities: []string{"fireball", "explosion"}},
		X:          0.2,
	}}
	require.NoError(t, enc.Load(spec))

	enc.Step(idle())
	require.Equal(t, 2, rec.count(ecs.EventAbilityUnlocked))
	require.Zero(t, ecs.Count(enc.World(), component.PickupComponent.Kind()))

	enc.Step(component.Input{AimX: 1, Ability: [4]bool{true}})
	require.Equal(t, 1, rec.count(ecs.EventAbilityActivated))
	require.Equal(t, 1, ecs.Count(enc.World(), component.ProjectileComponent.Kind()))

	require.False(t, enc.Unlock(component.AbilityFireball))
	require.True(t, enc.Unlock(component.AbilityDash))
}

func TestAutopilotClearsAndExits(t *testing.T) {
	enc := New(Options{})
	require.NoError(t, enc.Load(quietArena(prefabs.PlacementSpec{Prefab: "slime.yaml", X: 3, Y: 0})))
	pilot := Autopilot{}

	for i := 0; i < 900 && !enc.Cleared(); i++ {
		enc.Step(pilot.Input(enc))
	}
	require.True(t, enc.Cleared(), "autopilot should kill a lone slime")

	exited := false
	for i := 0; i < 900 && !exited; i++ {
		enc.Step(pilot.Input(enc))
		exited = enc.TryExit()
	}
	require.True(t, exited, "autopilot should reach the open gate")
}
