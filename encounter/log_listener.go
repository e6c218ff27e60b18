package encounter

import (
	"github.com/milk9111/arena/ecs"
	"go.uber.org/zap"
)

// LogListener writes every event to log at info level, damage at debug.
func LogListener(log *zap.Logger) Listener {
	if log == nil {
		log = zap.NewNop()
	}
	base := func(evt ecs.Event) []zap.Field {
		return []zap.Field{
			zap.String("event", string(evt.Kind)),
			zap.Float64("t", evt.Time),
			zap.Uint64("entity", evt.Entity.ID()),
		}
	}
	return ListenerFuncs{
		DamageDealt: func(evt ecs.Event) {
			log.Debug("damage", append(base(evt),
				zap.Uint64("source", evt.Source.ID()),
				zap.Int("amount", evt.Amount),
				zap.String("outcome", evt.Outcome.String()))...)
		},
		ActorDied: func(evt ecs.Event) {
			log.Info("died", append(base(evt), zap.Uint64("killer", evt.Source.ID()))...)
		},
		PhaseEntered: func(evt ecs.Event) {
			log.Info("phase", append(base(evt), zap.Int("phase", evt.Phase))...)
		},
		AbilityUnlocked: func(evt ecs.Event) {
			log.Info("unlocked", append(base(evt), zap.String("ability", string(evt.Ability)))...)
		},
		AbilityActivated: func(evt ecs.Event) {
			log.Debug("ability", append(base(evt), zap.String("ability", string(evt.Ability)))...)
		},
		EncounterCleared: func(evt ecs.Event) {
			log.Info("cleared", base(evt)...)
		},
	}
}
