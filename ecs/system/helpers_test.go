package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
	"github.com/milk9111/hakenslash/ecs/entity"
)

// fixedRand returns the same draws every call. Intn clamps to n-1.
type fixedRand struct {
	intn int
	f    float64
}

func (r fixedRand) Intn(n int) int {
	if r.intn >= n {
		return n - 1
	}
	return r.intn
}

func (r fixedRand) Float64() float64 { return r.f }

// testProps are per-tick values for 60 ticks per second with a wide gap so
// collision snaps are easy to read.
func testProps() *common.Properties {
	return &common.Properties{
		HAccel:    0.5,
		HCoeff:    0.8,
		HOpposite: 2,
		HAir:      0.6,
		HVelMin:   0.1,
		HVelMax:   5,
		Gravity:   0.5,
		VAccel:    -4,
		VHold:     8,
		VSafe:     6,
		VVelCut:   -3,
		VVelMax:   12,
		Gap:       2,
		Combat:    common.DefaultCombat(),
		Enemy: common.EnemyProperties{
			HalfExtents: cp.Vector{X: 20, Y: 20},
			ChaseBand:   40,
			JumpChance:  0,
			JumpAccel:   -4,
			JumpFrames:  6,
			RoamFrames:  90,
		},
	}
}

func mustPlayer(t *testing.T, w *ecs.World, pos cp.Vector) ecs.Entity {
	t.Helper()
	e, err := entity.NewPlayer(w, pos, common.DefaultCombat())
	if err != nil {
		t.Fatalf("new player: %v", err)
	}
	return e
}

func mustStatic(t *testing.T, w *ecs.World, pos, half cp.Vector) ecs.Entity {
	t.Helper()
	e, err := entity.NewObstacle(w, pos, half, nil)
	if err != nil {
		t.Fatalf("new obstacle: %v", err)
	}
	return e
}

func mustBody(t *testing.T, w *ecs.World, e ecs.Entity) *component.Body {
	t.Helper()
	b, ok := ecs.Get(w, e, component.BodyComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no body", e)
	}
	return b
}

func mustVelocity(t *testing.T, w *ecs.World, e ecs.Entity) *component.Velocity {
	t.Helper()
	v, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
	if !ok {
		t.Fatalf("entity %v has no velocity", e)
	}
	return v
}

func eventsOf(evts []ecs.Event, typ ecs.EventType) []ecs.Event {
	var out []ecs.Event
	for _, e := range evts {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}
