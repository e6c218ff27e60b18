package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

func TestCorruptedZoneTicksOncePerInterval(t *testing.T) {
	w := newTestWorld()
	boss := spawnActor(t, w, actorOpts{x: 20, hp: 100, faction: component.FactionEnemy})
	p := spawnActor(t, w, actorOpts{hp: 100, faction: component.FactionPlayer, radius: 0.4})
	SpawnHazardZone(w, boss, cp.Vector{}, component.ZoneDef{Radius: 1, FadeIn: 0.5, Duration: 5, TickInterval: 1, Damage: 5})

	hazards := NewHazardSystem(NewDamageResolver(nil))
	run(w, 29, hazards)
	if got := health(t, w, p); got != 100 {
		t.Fatalf("zone hurt before fading in: hp %d", got)
	}
	run(w, 6*60, hazards)
	if got := health(t, w, p); got != 75 {
		t.Fatalf("hp = %d, want 75 after five ticks", got)
	}
	if n := ecs.Count(w, component.HazardZoneComponent.Kind()); n != 0 {
		t.Fatalf("zone should expire, %d left", n)
	}
}

func TestGroundBurstHitsOnceAfterDelay(t *testing.T) {
	w := newTestWorld()
	wizard := spawnActor(t, w, actorOpts{x: 20, hp: 100, faction: component.FactionEnemy})
	p := spawnActor(t, w, actorOpts{x: 1, hp: 100, faction: component.FactionPlayer, radius: 0.4})
	outside := spawnActor(t, w, actorOpts{x: 9, hp: 100, faction: component.FactionPlayer, radius: 0.4})
	SpawnGroundBurst(w, wizard, cp.Vector{}, component.BurstDef{Delay: 1, Radius: 3, Damage: 20})

	hazards := NewHazardSystem(NewDamageResolver(nil))
	run(w, 50, hazards)
	if got := health(t, w, p); got != 100 {
		t.Fatalf("burst went off early: hp %d", got)
	}
	run(w, 120, hazards)
	if got := health(t, w, p); got != 80 {
		t.Fatalf("hp = %d, want 80", got)
	}
	if got := health(t, w, outside); got != 100 {
		t.Fatalf("actor outside the burst hit: hp %d", got)
	}
	if n := ecs.Count(w, component.GroundBurstComponent.Kind()); n != 0 {
		t.Fatalf("burst should be removed after exploding")
	}
	if reg := hitRegistry(w); reg.Active() != 0 {
		t.Fatalf("burst activation leaked: %d active", reg.Active())
	}
}

func TestContactDamageInterval(t *testing.T) {
	tests := []struct {
		name      string
		staggered bool
		wantHP    int
	}{
		{"touching", false, 80},
		{"staggered_enemy_does_not_hurt", true, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld()
			p := spawnActor(t, w, actorOpts{hp: 100, faction: component.FactionPlayer, radius: 0.4})
			slime := spawnActor(t, w, actorOpts{x: 0.9, hp: 50, faction: component.FactionEnemy})
			must(t, ecs.Add(w, slime, component.ContactDamageComponent.Kind(), &component.ContactDamage{Damage: 10, Interval: 1}))
			if tc.staggered {
				must(t, ecs.Add(w, slime, component.StaggerComponent.Kind(), &component.Stagger{Remaining: 10}))
			}
			run(w, 90, NewContactDamageSystem(NewDamageResolver(nil)))
			if got := health(t, w, p); got != tc.wantHP {
				t.Fatalf("hp = %d, want %d", got, tc.wantHP)
			}
		})
	}
}
