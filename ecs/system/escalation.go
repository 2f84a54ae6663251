package system

import (
	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
	"github.com/milk9111/hakenslash/ecs/entity"
)

// EscalationSystem raises the difficulty each time the player's kill
// threshold counter reaches the configured value. Kills past the threshold
// carry into the next round; at most one escalation runs per tick.
type EscalationSystem struct {
	props  *common.Properties
	spawns []cp.Vector
	log    zerolog.Logger
}

func NewEscalationSystem(props *common.Properties, spawns []cp.Vector, log zerolog.Logger) *EscalationSystem {
	return &EscalationSystem{props: props, spawns: append([]cp.Vector(nil), spawns...), log: log}
}

func (s *EscalationSystem) Update(w *ecs.World) {
	if w == nil || s.props == nil {
		return
	}
	threshold := s.props.Combat.EscalationThreshold
	if threshold <= 0 {
		return
	}

	ecs.ForEach(w, component.PlayerComponent.Kind(), func(e ecs.Entity, player *component.Player) {
		if player.KillThreshold < threshold {
			return
		}
		data := s.escalate(w)
		player.KillThreshold -= threshold
		w.Emit(ecs.Event{Type: ecs.EventEscalation, Entity: e, Data: data})
		s.log.Info().
			Int("ranged_added", data.RangedAdded).
			Bool("melee_promoted", data.MeleePromoted).
			Float64("speed_modifier", data.SpeedModifier).
			Msg("escalation")
	})
}

func (s *EscalationSystem) escalate(w *ecs.World) ecs.EscalationData {
	var data ecs.EscalationData

	for _, spawn := range s.spawns {
		if _, err := entity.NewRangedEnemy(w, spawn, s.props.Enemy.HalfExtents); err != nil {
			s.log.Error().Err(err).Msg("escalation: spawn ranged enemy")
			continue
		}
		data.RangedAdded++
	}

	if next, ok := frontOfReserve(w); ok {
		ecs.Remove(w, next, component.DormantComponent.Kind())
		data.MeleePromoted = true
	}

	ecs.ForEach(w, component.MeleeAIComponent.Kind(), func(e ecs.Entity, ai *component.MeleeAI) {
		if ecs.Has(w, e, component.DormantComponent.Kind()) {
			return
		}
		ai.SpeedModifier += s.props.Combat.SpeedIncrement
		data.SpeedModifier = ai.SpeedModifier
	})

	return data
}

// frontOfReserve returns the dormant melee enemy with the lowest queue order.
func frontOfReserve(w *ecs.World) (ecs.Entity, bool) {
	var (
		front ecs.Entity
		order int
		found bool
	)
	ecs.ForEach(w, component.DormantComponent.Kind(), func(e ecs.Entity, d *component.Dormant) {
		if !found || d.Order < order {
			front, order, found = e, d.Order, true
		}
	})
	return front, found
}
