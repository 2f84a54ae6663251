package component

import shared "github.com/milk9111/hakenslash/component"

type ObstacleKind int

const (
	ObstacleStatic ObstacleKind = iota
	ObstacleMoving
)

func (k ObstacleKind) String() string {
	if k == ObstacleMoving {
		return "moving"
	}
	return "static"
}

// Obstacle marks a solid box. Moving obstacles follow Path back and forth;
// Progress indexes its waypoints.
type Obstacle struct {
	Kind     ObstacleKind
	Order    int
	Path     *shared.CurvePath
	Progress int
	Forward  bool
}

var ObstacleComponent = NewComponent[Obstacle]("obstacle")
