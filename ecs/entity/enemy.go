package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
)

// MeleeConfig selects how a melee enemy roams.
type MeleeConfig struct {
	Roam       component.RoamMode
	Script     string
	RoamFrames int
}

// NewMeleeEnemy creates a melee enemy at spawn. Reserve enemies are created
// dormant with their queue position.
func NewMeleeEnemy(w *ecs.World, spawn, half cp.Vector, cfg MeleeConfig, dormant bool, order int) (ecs.Entity, error) {
	roam := cfg.Roam
	if roam == "" {
		roam = component.RoamTimer
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.MeleeAIComponent.Kind(), &component.MeleeAI{
		State:     component.StatePatrol,
		Heading:   component.DirLeft,
		Roam:      roam,
		RoamTimer: cfg.RoamFrames,
		Script:    cfg.Script,
		Spawn:     spawn,
	}); err != nil {
		return 0, fmt.Errorf("melee enemy: add ai state: %w", err)
	}

	if err := ecs.Add(w, entity, component.BodyComponent.Kind(), component.NewBody(spawn, half)); err != nil {
		return 0, fmt.Errorf("melee enemy: add body: %w", err)
	}

	if err := ecs.Add(w, entity, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("melee enemy: add velocity: %w", err)
	}

	if dormant {
		if err := ecs.Add(w, entity, component.DormantComponent.Kind(), &component.Dormant{Order: order}); err != nil {
			return 0, fmt.Errorf("melee enemy: add dormant tag: %w", err)
		}
	}

	return entity, nil
}

// NewRangedEnemy creates a ranged enemy at spawn.
func NewRangedEnemy(w *ecs.World, spawn, half cp.Vector) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.RangedAIComponent.Kind(), &component.RangedAI{
		Heading: component.DirLeft,
		Spawn:   spawn,
	}); err != nil {
		return 0, fmt.Errorf("ranged enemy: add ai state: %w", err)
	}

	if err := ecs.Add(w, entity, component.BodyComponent.Kind(), component.NewBody(spawn, half)); err != nil {
		return 0, fmt.Errorf("ranged enemy: add body: %w", err)
	}

	if err := ecs.Add(w, entity, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("ranged enemy: add velocity: %w", err)
	}

	return entity, nil
}
