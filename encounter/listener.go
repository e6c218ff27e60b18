package encounter

import "github.com/milk9111/arena/ecs"

// Listener receives the combat events of every tick, in the order they
// happened. Listeners run on the simulation thread after the tick completes.
type Listener interface {
	OnDamageDealt(evt ecs.Event)
	OnActorDied(evt ecs.Event)
	OnPhaseEntered(evt ecs.Event)
	OnAbilityUnlocked(evt ecs.Event)
	OnAbilityActivated(evt ecs.Event)
	OnEncounterCleared(evt ecs.Event)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	DamageDealt      func(ecs.Event)
	ActorDied        func(ecs.Event)
	PhaseEntered     func(ecs.Event)
	AbilityUnlocked  func(ecs.Event)
	AbilityActivated func(ecs.Event)
	EncounterCleared func(ecs.Event)
}

func (f ListenerFuncs) OnDamageDealt(evt ecs.Event) { call(f.DamageDealt, evt) }
func (f ListenerFuncs) OnActorDied(evt ecs.Event) { call(f.ActorDied, evt) }
func (f ListenerFuncs) OnPhaseEntered(evt ecs.Event) { call(f.PhaseEntered, evt) }
func (f ListenerFuncs) OnAbilityUnlocked(evt ecs.Event) { call(f.AbilityUnlocked, evt) }
func (f ListenerFuncs) OnAbilityActivated(evt ecs.Event) { call(f.AbilityActivated, evt) }
func (f ListenerFuncs) OnEncounterCleared(evt ecs.Event) { call(f.EncounterCleared, evt) }

func call(fn func(ecs.Event), evt ecs.Event) {
	if fn != nil {
		fn(evt)
	}
}

func deliver(l Listener, evt ecs.Event) {
	switch evt.Kind {
	case ecs.EventDamageDealt:
		l.OnDamageDealt(evt)
	case ecs.EventActorDied:
		l.OnActorDied(evt)
	case ecs.EventPhaseEntered:
		l.OnPhaseEntered(evt)
	case ecs.EventAbilityUnlocked:
		l.OnAbilityUnlocked(evt)
	case ecs.EventAbilityActivated:
		l.OnAbilityActivated(evt)
	case ecs.EventEncounterCleared:
		l.OnEncounterCleared(evt)
	}
}
