package system

import (
	"math"

	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
)

// CooldownSystem runs the attack timers down by one timestep.
type CooldownSystem struct {
	timestep float64
}

func NewCooldownSystem(timestep float64) *CooldownSystem {
	if timestep <= 0 {
		timestep = common.Timestep
	}
	return &CooldownSystem{timestep: timestep}
}

func (s *CooldownSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.AttackComponent.Kind(), func(e ecs.Entity, atk *component.Attack) {
		atk.Cooldown = math.Max(0, atk.Cooldown-s.timestep)
		atk.Animation = math.Max(0, atk.Animation-s.timestep)
	})
}
