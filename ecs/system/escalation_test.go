package system

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
	"github.com/milk9111/hakenslash/ecs/entity"
)

var escalationSpawns = []cp.Vector{{X: 300, Y: 400}, {X: 900, Y: 400}}

func TestEscalationAtThreshold(t *testing.T) {
	w := ecs.NewWorld()
	props := testProps()
	player := mustPlayer(t, w, cp.Vector{X: 600, Y: 1100})
	active, err := entity.NewMeleeEnemy(w, cp.Vector{X: 500, Y: 200}, props.Enemy.HalfExtents, entity.MeleeConfig{}, false, 0)
	if err != nil {
		t.Fatalf("new melee: %v", err)
	}
	second, err := entity.NewMeleeEnemy(w, cp.Vector{X: 400, Y: 120}, props.Enemy.HalfExtents, entity.MeleeConfig{}, true, 1)
	if err != nil {
		t.Fatalf("new reserve: %v", err)
	}
	first, err := entity.NewMeleeEnemy(w, cp.Vector{X: 600, Y: 420}, props.Enemy.HalfExtents, entity.MeleeConfig{}, true, 0)
	if err != nil {
		t.Fatalf("new reserve: %v", err)
	}

	pl, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	pl.Kills = 10
	pl.KillThreshold = 10

	NewEscalationSystem(props, escalationSpawns, zerolog.Nop()).Update(w)

	if got := w.Count(component.RangedAIComponent.Kind()); got != 2 {
		t.Fatalf("expected 2 ranged enemies, got %d", got)
	}
	if ecs.Has(w, first, component.DormantComponent.Kind()) {
		t.Fatalf("front of the reserve should be promoted")
	}
	if !ecs.Has(w, second, component.DormantComponent.Kind()) {
		t.Fatalf("only one reserve enemy should be promoted")
	}
	ai, _ := ecs.Get(w, active, component.MeleeAIComponent.Kind())
	if ai.SpeedModifier != props.Combat.SpeedIncrement {
		t.Fatalf("expected speed modifier %v, got %v", props.Combat.SpeedIncrement, ai.SpeedModifier)
	}
	idle, _ := ecs.Get(w, second, component.MeleeAIComponent.Kind())
	if idle.SpeedModifier != 0 {
		t.Fatalf("dormant enemies keep their speed, got %v", idle.SpeedModifier)
	}
	if pl.KillThreshold != 0 || pl.Kills != 10 {
		t.Fatalf("expected threshold reset only, got %+v", pl)
	}

	evts := eventsOf(w.Events().Drain(), ecs.EventEscalation)
	if len(evts) != 1 {
		t.Fatalf("expected 1 escalation event, got %d", len(evts))
	}
	data := evts[0].Data.(ecs.EscalationData)
	if data.RangedAdded != 2 || !data.MeleePromoted {
		t.Fatalf("unexpected escalation data %+v", data)
	}
}

func TestEscalationWithEmptyReserve(t *testing.T) {
	w := ecs.NewWorld()
	props := testProps()
	player := mustPlayer(t, w, cp.Vector{X: 600, Y: 1100})
	pl, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	pl.KillThreshold = 12

	NewEscalationSystem(props, escalationSpawns, zerolog.Nop()).Update(w)

	evts := eventsOf(w.Events().Drain(), ecs.EventEscalation)
	if len(evts) != 1 {
		t.Fatalf("expected 1 escalation event, got %d", len(evts))
	}
	if data := evts[0].Data.(ecs.EscalationData); data.MeleePromoted || data.RangedAdded != 2 {
		t.Fatalf("unexpected escalation data %+v", data)
	}
	if pl.KillThreshold != 0 {
		t.Fatalf("expected threshold reset, got %d", pl.KillThreshold)
	}
}

func TestEscalationBelowThreshold(t *testing.T) {
	w := ecs.NewWorld()
	props := testProps()
	player := mustPlayer(t, w, cp.Vector{X: 600, Y: 1100})
	pl, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	pl.KillThreshold = 9

	NewEscalationSystem(props, escalationSpawns, zerolog.Nop()).Update(w)

	if w.Events().Len() != 0 || w.Count(component.RangedAIComponent.Kind()) != 0 {
		t.Fatalf("expected no escalation below threshold")
	}
	if pl.KillThreshold != 9 {
		t.Fatalf("threshold should be untouched, got %d", pl.KillThreshold)
	}
}

func TestSpeedModifierAccumulates(t *testing.T) {
	w := ecs.NewWorld()
	props := testProps()
	player := mustPlayer(t, w, cp.Vector{X: 600, Y: 1100})
	melee, err := entity.NewMeleeEnemy(w, cp.Vector{X: 500, Y: 200}, props.Enemy.HalfExtents, entity.MeleeConfig{}, false, 0)
	if err != nil {
		t.Fatalf("new melee: %v", err)
	}
	pl, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	sys := NewEscalationSystem(props, nil, zerolog.Nop())

	for i := 0; i < 4; i++ {
		pl.KillThreshold = props.Combat.EscalationThreshold
		sys.Update(w)
	}

	ai, _ := ecs.Get(w, melee, component.MeleeAIComponent.Kind())
	if diff := ai.SpeedModifier - 4*props.Combat.SpeedIncrement; diff > 1e-12 || diff < -1e-12 {
		t.Fatalf("expected modifier %v, got %v", 4*props.Combat.SpeedIncrement, ai.SpeedModifier)
	}
}

func TestEscalationCarriesOverflowKills(t *testing.T) {
	w := ecs.NewWorld()
	props := testProps()
	player := mustPlayer(t, w, cp.Vector{X: 600, Y: 1100})
	pl, _ := ecs.Get(w, player, component.PlayerComponent.Kind())
	pl.KillThreshold = props.Combat.EscalationThreshold + 1

	sys := NewEscalationSystem(props, escalationSpawns, zerolog.Nop())
	sys.Update(w)

	if pl.KillThreshold != 1 {
		t.Fatalf("expected one kill carried over, got %d", pl.KillThreshold)
	}
	if n := len(eventsOf(w.Events().Drain(), ecs.EventEscalation)); n != 1 {
		t.Fatalf("expected one escalation, got %d", n)
	}

	pl.KillThreshold = 2 * props.Combat.EscalationThreshold
	sys.Update(w)
	sys.Update(w)
	if pl.KillThreshold != 0 {
		t.Fatalf("expected both rounds consumed, got %d", pl.KillThreshold)
	}
	if n := len(eventsOf(w.Events().Drain(), ecs.EventEscalation)); n != 2 {
		t.Fatalf("expected one escalation per tick, got %d", n)
	}
}
