package ecs

import "github.com/milk9111/arena/ecs/component"

// EventKind identifies a combat notification for external collaborators.
type EventKind string

const (
	EventDamageDealt      EventKind = "damage_dealt"
	EventActorDied        EventKind = "actor_died"
	EventPhaseEntered     EventKind = "phase_entered"
	EventAbilityUnlocked  EventKind = "ability_unlocked"
	EventAbilityActivated EventKind = "ability_activated"
	EventEncounterCleared EventKind = "encounter_cleared"
)

// Event is a fire-and-forget notification. Only the fields relevant to Kind
// are set.
type Event struct {
	Kind    EventKind
	Time    float64
	Entity  Entity
	Source  Entity
	Amount  int
	Outcome component.DamageOutcome
	Phase   int
	Ability component.AbilityID
}

// EventQueue is a FIFO filled by systems during a tick and drained by the
// encounter after it.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

func (q *EventQueue) Len() int {
	if q == nil {
		return 0
	}
	return len(q.items)
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
