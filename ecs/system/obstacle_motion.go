package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
)

// ObstacleMotionSystem moves every moving obstacle one waypoint along its
// path. Riders are not carried; they resolve against the new position.
type ObstacleMotionSystem struct{}

func NewObstacleMotionSystem() *ObstacleMotionSystem {
	return &ObstacleMotionSystem{}
}

func (s *ObstacleMotionSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.ObstacleComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, o *component.Obstacle, b *component.Body) {
		if o.Kind != component.ObstacleMoving || o.Path == nil {
			return
		}
		b.Position = Advance(o)
	})
}

// Advance steps the obstacle's progress, flipping direction at either end of
// the path, and returns the waypoint it now occupies.
func Advance(o *component.Obstacle) cp.Vector {
	n := o.Path.Len()
	if n == 0 {
		return cp.Vector{}
	}
	if n == 1 {
		o.Progress = 0
		return o.Path.At(0)
	}

	if o.Forward {
		o.Progress++
		if o.Progress >= n-1 {
			o.Progress = n - 1
			o.Forward = false
		}
	} else {
		o.Progress--
		if o.Progress <= 0 {
			o.Progress = 0
			o.Forward = true
		}
	}
	return o.Path.At(o.Progress)
}
