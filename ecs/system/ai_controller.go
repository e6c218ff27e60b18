package system

import (
	"math/rand/v2"
	"sort"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/arena/ecs"
	"github.com/milk9111/arena/ecs/component"
	"go.uber.org/zap"
)

const wanderAction = "wander"

// AISystem is the shared enemy and boss controller. Each actor is steered by
// its AIConfig and fights with its AttackSet; attacks run as timed stages in
// an AttackRuntime.
type AISystem struct {
	log      *zap.Logger
	warn     *warnOnce
	rng      *rand.Rand
	selector *AttackSelector
}

func NewAISystem(log *zap.Logger, rng *rand.Rand, selector *AttackSelector) *AISystem {
	log = orNop(log)
	if rng == nil {
		rng = rand.New(rand.NewPCG(1, 2))
	}
	return &AISystem{log: log, warn: newWarnOnce(log), rng: rng, selector: selector}
}

func (s *AISystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	player, hasPlayer := findPlayer(w)
	var target cp.Vector
	if hasPlayer {
		target, hasPlayer = position(w, player)
	}

	ecs.ForEach2(w, component.AIConfigComponent.Kind(), component.AIStateComponent.Kind(), func(e ecs.Entity, cfg *component.AIConfig, state *component.AIState) {
		if ecs.Has(w, e, component.DeadComponent.Kind()) {
			s.transition(w, state, component.AIDead)
			return
		}
		self, ok := position(w, e)
		if !ok {
			return
		}

		if rt, ok := ecs.Get(w, e, component.AttackRuntimeComponent.Kind()); ok {
			s.transition(w, state, component.AIAttacking)
			s.stepAttack(w, e, rt, target, hasPlayer)
			return
		}

		if !hasPlayer {
			s.transition(w, state, component.AIIdle)
			steer(w, e, cp.Vector{})
			return
		}
		dir, dist := direction(self, target)

		if cfg.StaggerHaltsMovement && staggered(w, e) {
			steer(w, e, cp.Vector{})
			return
		}
		if !state.Alerted && dist > cfg.DetectionRange {
			s.transition(w, state, component.AIIdle)
			steer(w, e, cp.Vector{})
			return
		}

		if def := s.selectAttack(w, e, dist); def != nil {
			s.startAttack(w, e, state, *def, target, hasPlayer)
			return
		}
		s.move(w, e, cfg, state, dir, dist)
	})
}

func (s *AISystem) transition(w *ecs.World, state *component.AIState, next component.AIStateID) {
	if state.Current == next {
		return
	}
	state.Current = next
	state.Since = w.Now()
}

func moveSpeed(cfg *component.AIConfig) float64 {
	if cfg.SpeedMultiplier > 0 {
		return cfg.MoveSpeed * cfg.SpeedMultiplier
	}
	return cfg.MoveSpeed
}

// engagedState is Pursue while the target is beyond reach, Positioning once
// it is within AttackRange (melee) or inside the preferred band (ranged).
func engagedState(cfg *component.AIConfig, dist float64) component.AIStateID {
	reach := cfg.AttackRange
	if cfg.Ranged() {
		reach = cfg.PreferredMax
	}
	if dist > reach {
		return component.AIPursue
	}
	return component.AIPositioning
}

// move covers Pursue and Positioning. Melee actors close to AttackRange and
// stop; ranged actors hold a distance band and strafe inside it.
func (s *AISystem) move(w *ecs.World, e ecs.Entity, cfg *component.AIConfig, state *component.AIState, dir cp.Vector, dist float64) {
	speed := moveSpeed(cfg)
	s.transition(w, state, engagedState(cfg, dist))
	if !cfg.Ranged() {
		if dist > cfg.AttackRange {
			steer(w, e, dir.Mult(speed))
			return
		}
		steer(w, e, cp.Vector{})
		return
	}

	switch {
	case dist > cfg.PreferredMax:
		steer(w, e, dir.Mult(speed*factorOr(cfg.ApproachFactor, 1)))
	case cfg.RetreatDistance > 0 && dist < cfg.RetreatDistance:
		steer(w, e, dir.Neg().Mult(speed))
	case dist < cfg.PreferredMin:
		steer(w, e, dir.Neg().Mult(speed*factorOr(cfg.AdjustFactor, 1)))
	default:
		if cfg.WanderInterval <= 0 {
			steer(w, e, cp.Vector{})
			return
		}
		ledger := Ledger(w, e)
		ledger.Register(wanderAction, cfg.WanderInterval, 0)
		if ledger.IsReady(wanderAction, w.Now()) {
			ledger.MarkFired(wanderAction, w.Now())
			state.WanderDir = float64(s.rng.IntN(3) - 1)
		}
		steer(w, e, dir.Perp().Mult(state.WanderDir*speed*factorOr(cfg.AdjustFactor, 1)))
	}
}

func factorOr(f, fallback float64) float64 {
	if f > 0 {
		return f
	}
	return fallback
}

// selectAttack returns the first attack by priority that is in range and
// ready. A selection script may pick a different ready attack.
func (s *AISystem) selectAttack(w *ecs.World, e ecs.Entity, dist float64) *component.AttackDefinition {
	set, ok := ecs.Get(w, e, component.AttackSetComponent.Kind())
	if !ok || len(set.Attacks) == 0 {
		return nil
	}
	order := make([]int, len(set.Attacks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return set.Attacks[order[a]].Priority < set.Attacks[order[b]].Priority
	})

	ledger := Ledger(w, e)
	now := w.Now()
	var ready []*component.AttackDefinition
	for _, i := range order {
		def := &set.Attacks[i]
		if def.Range > 0 && dist > def.Range {
			continue
		}
		if !ledger.IsReady(def.Name, now) {
			continue
		}
		ready = append(ready, def)
	}
	if len(ready) == 0 {
		return nil
	}

	if script, ok := ecs.Get(w, e, component.AttackScriptComponent.Kind()); ok && script.Path != "" && s.selector != nil {
		if def := s.scriptChoice(w, e, script.Path, ready, dist); def != nil {
			return def
		}
	}
	return ready[0]
}

func (s *AISystem) scriptChoice(w *ecs.World, e ecs.Entity, path string, ready []*component.AttackDefinition, dist float64) *component.AttackDefinition {
	in := SelectionInput{Distance: dist, Phase: 1, HealthRatio: 1}
	for _, def := range ready {
		in.Ready = append(in.Ready, def.Name)
	}
	if boss, ok := ecs.Get(w, e, component.BossComponent.Kind()); ok && boss.Phase > 0 {
		in.Phase = boss.Phase
	}
	if h, ok := ecs.Get(w, e, component.HealthComponent.Kind()); ok && h.Max > 0 {
		in.HealthRatio = float64(h.Current) / float64(h.Max)
	}
	choice, err := s.selector.Choose(path, in)
	if err != nil {
		s.warn.Warn(e.String()+"/script", "attack script failed, using priority order", zap.Stringer("entity", e), zap.String("script", path), zap.Error(err))
		return nil
	}
	for _, def := range ready {
		if def.Name == choice {
			return def
		}
	}
	if choice != "" {
		s.log.Debug("attack script chose an attack that is not ready", zap.Stringer("entity", e), zap.String("choice", choice))
	}
	return nil
}
