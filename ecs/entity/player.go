package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hakenslash/common"
	shared "github.com/milk9111/hakenslash/component"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
)

// NewPlayer creates the player at spawn together with its weapon hitbox.
func NewPlayer(w *ecs.World, spawn cp.Vector, c common.CombatProperties) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.PlayerTagComponent.Kind(), &component.PlayerTag{}); err != nil {
		return 0, fmt.Errorf("player: add player tag: %w", err)
	}

	if err := ecs.Add(w, entity, component.PlayerComponent.Kind(), &component.Player{Facing: component.DirRight}); err != nil {
		return 0, fmt.Errorf("player: add player component: %w", err)
	}

	if err := ecs.Add(w, entity, component.InputComponent.Kind(), &component.Input{}); err != nil {
		return 0, fmt.Errorf("player: add input: %w", err)
	}

	if err := ecs.Add(w, entity, component.BodyComponent.Kind(), component.NewBody(spawn, c.PlayerHalfExtents)); err != nil {
		return 0, fmt.Errorf("player: add body: %w", err)
	}

	if err := ecs.Add(w, entity, component.VelocityComponent.Kind(), &component.Velocity{}); err != nil {
		return 0, fmt.Errorf("player: add velocity: %w", err)
	}

	if err := ecs.Add(w, entity, component.HealthComponent.Kind(), shared.NewHealth(c.PlayerMaxHealth)); err != nil {
		return 0, fmt.Errorf("player: add health: %w", err)
	}

	if err := ecs.Add(w, entity, component.AttackComponent.Kind(), &component.Attack{}); err != nil {
		return 0, fmt.Errorf("player: add attack: %w", err)
	}

	if _, err := NewWeapon(w, entity, c); err != nil {
		return 0, err
	}

	return entity, nil
}

// NewWeapon creates the melee hitbox that follows owner.
func NewWeapon(w *ecs.World, owner ecs.Entity, c common.CombatProperties) (ecs.Entity, error) {
	pos := cp.Vector{}
	if body, ok := ecs.Get(w, owner, component.BodyComponent.Kind()); ok {
		pos = body.Position
		pos.X += c.WeaponOffset
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.WeaponComponent.Kind(), &component.Weapon{
		Owner:  uint64(owner),
		Offset: c.WeaponOffset,
	}); err != nil {
		return 0, fmt.Errorf("weapon: add weapon: %w", err)
	}

	if err := ecs.Add(w, entity, component.BodyComponent.Kind(), component.NewBody(pos, c.WeaponHalfExtents)); err != nil {
		return 0, fmt.Errorf("weapon: add body: %w", err)
	}

	return entity, nil
}
