package entity

import (
	"fmt"

	"github.com/jakecoffman/cp"
	shared "github.com/milk9111/hakenslash/component"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
)

// NewObstacle creates a solid box. A nil path makes a static obstacle at pos;
// otherwise the obstacle starts on the first waypoint and moves along path.
func NewObstacle(w *ecs.World, pos, half cp.Vector, path *shared.CurvePath) (ecs.Entity, error) {
	obstacle := &component.Obstacle{Kind: component.ObstacleStatic}
	if path != nil {
		obstacle = &component.Obstacle{
			Kind:    component.ObstacleMoving,
			Order:   path.Order(),
			Path:    path,
			Forward: true,
		}
		pos = path.Start()
	}

	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.ObstacleComponent.Kind(), obstacle); err != nil {
		return 0, fmt.Errorf("obstacle: add obstacle: %w", err)
	}

	if err := ecs.Add(w, entity, component.BodyComponent.Kind(), component.NewBody(pos, half)); err != nil {
		return 0, fmt.Errorf("obstacle: add body: %w", err)
	}

	return entity, nil
}
