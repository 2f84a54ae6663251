package entity

import (
	"fmt"

	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
)

// NewLevelBounds creates the singleton holding the projectile bounds.
func NewLevelBounds(w *ecs.World, bounds common.Rect) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)
	if err := ecs.Add(w, entity, component.LevelBoundsComponent.Kind(), &component.LevelBounds{Rect: bounds}); err != nil {
		return 0, fmt.Errorf("level: add bounds: %w", err)
	}
	return entity, nil
}
