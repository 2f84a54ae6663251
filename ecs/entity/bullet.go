package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
)

// NewBullet creates a projectile at pos travelling along dir.
func NewBullet(w *ecs.World, owner ecs.Entity, pos, dir cp.Vector, speed float64, half cp.Vector) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.BulletComponent.Kind(), &component.Bullet{
		Direction: dir,
		Speed:     speed,
		Owner:     uint64(owner),
	}); err != nil {
		return 0, fmt.Errorf("bullet: add bullet: %w", err)
	}

	if err := ecs.Add(w, entity, component.BodyComponent.Kind(), component.NewBody(pos, half)); err != nil {
		return 0, fmt.Errorf("bullet: add body: %w", err)
	}

	return entity, nil
}
