package entity

import (
	"errors"
	"testing"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"github.com/milk9111/arena/prefabs"
)

func TestBuildEmbeddedArchetypes(t *testing.T) {
	tests := []struct {
		prefab  string
		boss    bool
		script  bool
		contact bool
	}{
		{prefab: "slime.yaml"},
		{prefab: "werewolf.yaml"},
		{prefab: "skeleton.yaml"},
		{prefab: "skeleton_archer.yaml", contact: true},
		{prefab: "wizard.yaml", boss: true, script: true},
		{prefab: "lancer.yaml", boss: true},
	}
	for _, tc := range tests {
		t.Run(tc.prefab, func(t *testing.T) {
			w := ecs.NewWorld()
			e, err := NewEnemy(w, tc.prefab, Placement{X: 3, Y: 4})
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if got := ecs.Has(w, e, component.BossComponent.Kind()); got != tc.boss {
				t.Fatalf("boss = %v, want %v", got, tc.boss)
			}
			if got := ecs.Has(w, e, component.AttackScriptComponent.Kind()); got != tc.script {
				t.Fatalf("script = %v, want %v", got, tc.script)
			}
			if got := ecs.Has(w, e, component.ContactDamageComponent.Kind()); got != tc.contact {
				t.Fatalf("contact = %v, want %v", got, tc.contact)
			}
			h, _ := ecs.Get(w, e, component.HealthComponent.Kind())
			if h.Current != h.Max || h.Max <= 0 {
				t.Fatalf("unexpected health %+v", h)
			}
			roster, err := Roster(w)
			if err != nil || len(roster.Enemies) != 1 || roster.Enemies[0] != e.ID() {
				t.Fatalf("enemy not on roster: %+v %v", roster, err)
			}
		})
	}
}

func TestInitialDelayDefersFirstAttack(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewEnemy(w, "lancer.yaml", Placement{})
	if err != nil {
		t.Fatal(err)
	}
	ledger, ok := ecs.Get(w, e, component.CooldownLedgerComponent.Kind())
	if !ok {
		t.Fatal("no ledger")
	}
	if !ledger.IsReady("dash", 0) {
		t.Fatal("dash should be ready at spawn")
	}
	if ledger.IsReady("lunge", 2.9) || !ledger.IsReady("lunge", 3) {
		t.Fatalf("lunge should first be ready after its initial delay, remaining %v", ledger.Remaining("lunge", 0))
	}
}

func TestGroupPlacement(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewEnemy(w, "skeleton.yaml", Placement{Group: "crypt"})
	if err != nil {
		t.Fatal(err)
	}
	g, ok := ecs.Get(w, e, component.AlertGroupComponent.Kind())
	if !ok || g.Name != "crypt" || g.Range != 8 {
		t.Fatalf("unexpected group %+v", g)
	}
}

func TestBuildPlayer(t *testing.T) {
	w := ecs.NewWorld()
	e, err := NewPlayerAt(w, 1, 2)
	if err != nil {
		t.Fatal(err)
	}
	tuning, _ := ecs.Get(w, e, component.PlayerTuningComponent.Kind())
	if tuning.DashDistance != 5 || tuning.DashDuration != 0.2 {
		t.Fatalf("unexpected dash tuning %+v", tuning)
	}
	ledger, _ := ecs.Get(w, e, component.CooldownLedgerComponent.Kind())
	if ledger.Cooldown(string(component.AbilityExplosion)) != 3 || ledger.Cooldown("attack") != 0.5 {
		t.Fatalf("cooldowns not registered")
	}
	ab, _ := ecs.Get(w, e, component.AbilitiesComponent.Kind())
	for _, id := range component.AbilityOrder {
		if ab.Unlocked(id) {
			t.Fatalf("%s should start locked", id)
		}
	}
}

func TestBuildTrapLinkedToBoss(t *testing.T) {
	w := ecs.NewWorld()
	boss, err := NewEnemy(w, "wizard.yaml", Placement{})
	if err != nil {
		t.Fatal(err)
	}
	trap, err := NewTrap(w, "arrow_trap_quintuple.yaml", 5, 5, boss)
	if err != nil {
		t.Fatal(err)
	}
	tur, _ := ecs.Get(w, trap, component.TurretComponent.Kind())
	if tur.LinkedBoss != boss.ID() || !tur.Active || tur.Pattern.Count != 5 {
		t.Fatalf("unexpected turret %+v", tur)
	}
	if ecs.Has(w, trap, component.HealthComponent.Kind()) {
		t.Fatal("traps have no health")
	}
	roster, _ := Roster(w)
	if len(roster.Enemies) != 1 {
		t.Fatalf("trap must not join the roster, got %v", roster.Enemies)
	}
}

func TestBuildErrors(t *testing.T) {
	w := ecs.NewWorld()
	if _, err := NewEnemy(w, "dragon.yaml", Placement{}); !errors.Is(err, prefabs.ErrUnknownArchetype) {
		t.Fatalf("expected ErrUnknownArchetype, got %v", err)
	}
	bad := &prefabs.ArchetypeSpec{Name: "bad", Health: 10, Drops: []prefabs.DropSpec{{Chance: 1, Pickup: prefabs.PickupSpec{Abilities: []string{"teleport"}}}}}
	if _, err := BuildEnemy(w, bad, Placement{}); err == nil {
		t.Fatal("expected unknown ability error")
	}
	if _, err := BuildEnemy(w, &prefabs.ArchetypeSpec{Name: "ghost"}, Placement{}); err == nil {
		t.Fatal("expected zero health error")
	}
	if _, err := BuildWall(w, prefabs.WallSpec{Width: 0, Height: 1}); err == nil {
		t.Fatal("expected wall size error")
	}
	if n := ecs.Count(w, component.HealthComponent.Kind()); n != 0 {
		t.Fatalf("failed builds left %d actors behind", n)
	}
}
