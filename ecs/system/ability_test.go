package system

import (
	"testing"

	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
)

func TestTryActivateGuards(t *testing.T) {
	tests := []struct {
		name    string
		ability component.AbilityID
		prepare func(t *testing.T, w *ecs.World, p ecs.Entity)
		want    bool
	}{
		{name: "locked", ability: component.AbilityFireball, want: false},
		{
			name: "unlocked", ability: component.AbilityFireball, want: true,
			prepare: func(t *testing.T, w *ecs.World, p ecs.Entity) { Unlock(w, p, component.AbilityFireball) },
		},
		{
			name: "on_cooldown", ability: component.AbilityFireball, want: false,
			prepare: func(t *testing.T, w *ecs.World, p ecs.Entity) {
				Unlock(w, p, component.AbilityFireball)
				MarkFired(w, p, string(component.AbilityFireball))
			},
		},
		{
			name: "while_dashing", ability: component.AbilityExplosion, want: false,
			prepare: func(t *testing.T, w *ecs.World, p ecs.Entity) {
				Unlock(w, p, component.AbilityExplosion)
				pc, _ := ecs.Get(w, p, component.PlayerControllerComponent.Kind())
				pc.Mode = component.ModeDashing
			},
		},
		{
			name: "while_defending", ability: component.AbilityDash, want: false,
			prepare: func(t *testing.T, w *ecs.World, p ecs.Entity) {
				Unlock(w, p, component.AbilityDash)
				pc, _ := ecs.Get(w, p, component.PlayerControllerComponent.Kind())
				pc.Mode = component.ModeDefending
			},
		},
		{
			name: "stunned", ability: component.AbilityDefense, want: false,
			prepare: func(t *testing.T, w *ecs.World, p ecs.Entity) {
				Unlock(w, p, component.AbilityDefense)
				ApplyStun(w, p, 1.5)
			},
		},
		{
			name: "no_controller", ability: component.AbilityDefense, want: false,
			prepare: func(t *testing.T, w *ecs.World, p ecs.Entity) {
				Unlock(w, p, component.AbilityDefense)
				ecs.Remove(w, p, component.PlayerControllerComponent.Kind())
			},
		},
		{
			name: "no_tuning", ability: component.AbilityDash, want: false,
			prepare: func(t *testing.T, w *ecs.World, p ecs.Entity) {
				Unlock(w, p, component.AbilityDash)
				ecs.Remove(w, p, component.PlayerTuningComponent.Kind())
			},
		},
		{
			name: "dead", ability: component.AbilityDefense, want: false,
			prepare: func(t *testing.T, w *ecs.World, p ecs.Entity) {
				Unlock(w, p, component.AbilityDefense)
				must(t, ecs.Add(w, p, component.DeadComponent.Kind(), &component.Dead{}))
			},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld()
			p := spawnPlayer(t, w, 0, 0)
			if tc.prepare != nil {
				tc.prepare(t, w, p)
			}
			w.Events().Drain()
			s := NewAbilitySystem(nil)
			if got := s.TryActivate(w, p, tc.ability); got != tc.want {
				t.Fatalf("TryActivate = %v, want %v", got, tc.want)
			}
			if n := countEvents(w.Events().Drain(), ecs.EventAbilityActivated); (n == 1) != tc.want {
				t.Fatalf("activation events = %d", n)
			}
		})
	}
}

func TestUnlockIsPermanentAndAnnouncedOnce(t *testing.T) {
	w := newTestWorld()
	p := spawnPlayer(t, w, 0, 0)
	if !Unlock(w, p, component.AbilityDash) {
		t.Fatalf("first unlock should report true")
	}
	if Unlock(w, p, component.AbilityDash) {
		t.Fatalf("second unlock should report false")
	}
	if n := countEvents(w.Events().Drain(), ecs.EventAbilityUnlocked); n != 1 {
		t.Fatalf("unlock events = %d, want 1", n)
	}
}

func TestDashVelocityForFullDuration(t *testing.T) {
	w := newTestWorld()
	p := spawnPlayer(t, w, 0, 0)
	Unlock(w, p, component.AbilityDash)
	physics := NewPhysicsSystem()
	physics.Sync(w)
	sched := ecs.NewScheduler(NewStatusSystem(), NewAbilitySystem(nil), NewPlayerControllerSystem(), physics)

	input, _ := ecs.Get(w, p, component.InputComponent.Kind())
	pc, _ := ecs.Get(w, p, component.PlayerControllerComponent.Kind())
	input.MoveX = 1
	input.Ability[3] = true

	for tick := 0; tick < 12; tick++ {
		sched.Update(w)
		input.Ability[3] = false
		if v := velocity(w, p); !near(v.X, 25) || !near(v.Y, 0) {
			t.Fatalf("tick %d: velocity %v, want 25 along x", tick, v)
		}
		if tick < 11 && !pc.Dashing() {
			t.Fatalf("tick %d: dash ended early", tick)
		}
	}
	if pc.Dashing() {
		t.Fatalf("dash should end after its duration")
	}
	if pos, _ := position(w, p); !near(pos.X, 5) {
		t.Fatalf("dash covered %v, want 5", pos.X)
	}

	sched.Update(w)
	if v := velocity(w, p); !near(v.X, 5) {
		t.Fatalf("control should return after dash, velocity %v", v)
	}
}

func TestDefenseEndsOnReleaseOrTimeout(t *testing.T) {
	tests := []struct {
		name     string
		holdFor  int
		wantMode component.MovementMode
		ticks    int
	}{
		{"released", 30, component.ModeNormal, 31},
		{"held_past_max", 1000, component.ModeNormal, 181},
		{"still_held", 1000, component.ModeDefending, 90},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := newTestWorld()
			p := spawnPlayer(t, w, 0, 0)
			Unlock(w, p, component.AbilityDefense)
			sched := ecs.NewScheduler(NewAbilitySystem(nil), NewPlayerControllerSystem())
			input, _ := ecs.Get(w, p, component.InputComponent.Kind())
			input.Ability[2] = true
			for i := 0; i < tc.ticks; i++ {
				input.DefenseHeld = i < tc.holdFor
				sched.Update(w)
				input.Ability[2] = false
			}
			pc, _ := ecs.Get(w, p, component.PlayerControllerComponent.Kind())
			if pc.Mode != tc.wantMode {
				t.Fatalf("mode = %v, want %v", pc.Mode, tc.wantMode)
			}
		})
	}
}

func TestSlashHitsEachTargetOnce(t *testing.T) {
	w := newTestWorld()
	p := spawnPlayer(t, w, 0, 0)
	enemy := spawnActor(t, w, actorOpts{x: 1, hp: 50, faction: component.FactionEnemy})
	input, _ := ecs.Get(w, p, component.InputComponent.Kind())
	input.AimX = 1
	input.Attack = true

	sched := ecs.NewScheduler(NewAbilitySystem(nil), NewHitboxSystem(NewDamageResolver(nil)))
	sched.Update(w)
	input.Attack = false
	for i := 0; i < 20; i++ {
		sched.Update(w)
	}
	if got := health(t, w, enemy); got != 30 {
		t.Fatalf("enemy hp = %d, want 30", got)
	}
}
