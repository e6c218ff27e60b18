package ecs

import (
	"testing"

	"github.com/milk9111/arena/ecs/component"
)

func intPtr(i int) *int {
	return &i
}

func toSet(ents []Entity) map[Entity]struct{} {
	m := make(map[Entity]struct{}, len(ents))
	for _, e := range ents {
		m[e] = struct{}{}
	}
	return m
}

func TestWorldEntityLifecycle(t *testing.T) {
	cases := []struct {
		name         string
		create       int
		destroyIndex int // -1 = none
	}{
		{"single", 1, 0},
		{"three_destroy_middle", 3, 1},
		{"none_destroyed", 2, -1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld()
			ents := make([]Entity, 0, c.create)
			for i := 0; i < c.create; i++ {
				ents = append(ents, CreateEntity(w))
			}
			if len(Entities(w)) != c.create {
				t.Fatalf("expected %d entities, got %d", c.create, len(Entities(w)))
			}
			if c.destroyIndex < 0 {
				return
			}
			if !DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("DestroyEntity should return true for alive entity")
			}
			if IsAlive(w, ents[c.destroyIndex]) {
				t.Fatalf("entity should not be alive after destruction")
			}
			if DestroyEntity(w, ents[c.destroyIndex]) {
				t.Fatalf("second DestroyEntity should return false")
			}
		})
	}
}

func TestWorldReusesSlotWithNewGeneration(t *testing.T) {
	w := NewWorld()
	old := CreateEntity(w)
	DestroyEntity(w, old)
	fresh := CreateEntity(w)

	if fresh.id() != old.id() {
		t.Fatalf("expected slot reuse, got ids %d and %d", old.id(), fresh.id())
	}
	if fresh.generation() == old.generation() {
		t.Fatalf("expected bumped generation")
	}
	if IsAlive(w, old) {
		t.Fatalf("stale handle must not be alive")
	}

	kind := component.NewComponentKind[int]()
	if err := Add(w, old, kind, intPtr(1)); err != component.ErrEntityNotAlive {
		t.Fatalf("expected ErrEntityNotAlive, got %v", err)
	}
}

func TestWorldComponents(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	e := CreateEntity(w)

	tests := []struct {
		name  string
		run   func() error
		check func(t *testing.T)
	}{
		{
			name: "add",
			run:  func() error { return Add(w, e, h.Kind(), intPtr(10)) },
			check: func(t *testing.T) {
				v, ok := Get(w, e, h.Kind())
				if !ok || *v != 10 {
					t.Fatalf("expected 10, got %v ok=%v", v, ok)
				}
			},
		},
		{
			name: "replace",
			run:  func() error { return Add(w, e, h.Kind(), intPtr(11)) },
			check: func(t *testing.T) {
				v, _ := Get(w, e, h.Kind())
				if *v != 11 || Count(w, h.Kind()) != 1 {
					t.Fatalf("expected single component 11, got %d count=%d", *v, Count(w, h.Kind()))
				}
			},
		},
		{
			name: "nil_rejected",
			run: func() error {
				if err := Add[int](w, e, h.Kind(), nil); err != component.ErrNilComponent {
					t.Fatalf("expected ErrNilComponent, got %v", err)
				}
				return nil
			},
			check: func(t *testing.T) {},
		},
		{
			name: "remove",
			run:  func() error { Remove(w, e, h.Kind()); return nil },
			check: func(t *testing.T) {
				if Has(w, e, h.Kind()) {
					t.Fatalf("expected component removed")
				}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); err != nil {
				t.Fatalf("run failed: %v", err)
			}
			tc.check(t)
		})
	}
}

func TestForEachSurvivesDestroyDuringWalk(t *testing.T) {
	w := NewWorld()
	h := component.NewComponent[int]()
	var ents []Entity
	for i := 0; i < 4; i++ {
		e := CreateEntity(w)
		ents = append(ents, e)
		if err := Add(w, e, h.Kind(), intPtr(i)); err != nil {
			t.Fatal(err)
		}
	}

	var visited []Entity
	ForEach(w, h.Kind(), func(e Entity, v *int) {
		visited = append(visited, e)
		if *v == 0 {
			DestroyEntity(w, ents[2])
		}
	})

	set := toSet(visited)
	if _, ok := set[ents[2]]; ok {
		t.Fatalf("destroyed entity should be skipped")
	}
	if len(visited) != 3 {
		t.Fatalf("expected 3 visits, got %d", len(visited))
	}
}

func TestForEach3Intersection(t *testing.T) {
	w := NewWorld()
	e1 := CreateEntity(w)
	e2 := CreateEntity(w)
	e3 := CreateEntity(w)

	ka := component.NewComponentKind[int]()
	kb := component.NewComponentKind[int]()
	kc := component.NewComponentKind[int]()

	for _, step := range []struct {
		e    Entity
		kind component.ComponentKind[int]
	}{
		{e1, ka}, {e2, ka}, {e2, kb}, {e2, kc}, {e3, kb},
	} {
		if err := Add(w, step.e, step.kind, intPtr(1)); err != nil {
			t.Fatal(err)
		}
	}

	var res []Entity
	ForEach3(w, ka, kb, kc, func(e Entity, _ *int, _ *int, _ *int) { res = append(res, e) })
	if len(res) != 1 || res[0] != e2 {
		t.Fatalf("expected only e2, got %v", res)
	}
}

type countingSystem struct {
	seen []float64
}

func (s *countingSystem) Update(w *World) {
	s.seen = append(s.seen, w.Now())
}

func TestSchedulerAdvancesClockAfterSystems(t *testing.T) {
	w := NewWorld()
	w.SetDeltaTime(0.5)
	a := &countingSystem{}
	b := &countingSystem{}
	s := NewScheduler(a, nil, b)

	s.Update(w)
	s.Update(w)

	if len(s.Systems()) != 2 {
		t.Fatalf("nil system should be skipped")
	}
	if a.seen[1] != 0.5 || b.seen[1] != 0.5 {
		t.Fatalf("systems of one tick should observe the same time, got %v %v", a.seen, b.seen)
	}
	if w.Now() != 1.0 || w.Tick() != 2 {
		t.Fatalf("expected now=1 tick=2, got %v %d", w.Now(), w.Tick())
	}
}

func TestEventQueueDrain(t *testing.T) {
	w := NewWorld()
	w.Events().Push(Event{Kind: EventActorDied})
	w.Events().Push(Event{Kind: EventPhaseEntered, Phase: 2})

	got := w.Events().Drain()
	if len(got) != 2 || got[1].Phase != 2 {
		t.Fatalf("unexpected drain %v", got)
	}
	if w.Events().Len() != 0 || w.Events().Drain() != nil {
		t.Fatalf("queue should be empty after drain")
	}
}
