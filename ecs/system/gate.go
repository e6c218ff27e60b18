package system

import (
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"go.uber.org/zap"
)

// GateSystem opens the exit gates once every enemy on the roster is dead.
type GateSystem struct {
	log *zap.Logger
}

func NewGateSystem(log *zap.Logger) *GateSystem {
	return &GateSystem{log: orNop(log)}
}

func (s *GateSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	ecs.ForEach(w, component.EncounterRosterComponent.Kind(), func(_ ecs.Entity, roster *component.EncounterRoster) {
		if roster.Cleared || !rosterCleared(w, roster) {
			return
		}
		roster.Cleared = true
		ecs.ForEach(w, component.ExitGateComponent.Kind(), func(_ ecs.Entity, g *component.ExitGate) {
			g.Open = true
		})
		w.Events().Push(ecs.Event{Kind: ecs.EventEncounterCleared, Time: w.Now()})
		s.log.Info("encounter cleared", zap.Int("enemies", len(roster.Enemies)))
	})
}

func rosterCleared(w *ecs.World, roster *component.EncounterRoster) bool {
	for _, id := range roster.Enemies {
		if living(w, ecs.Entity(id)) {
			return false
		}
	}
	return true
}
