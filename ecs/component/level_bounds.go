package component

import "github.com/milk9111/hakenslash/common"

// LevelBounds stores the world-space area projectiles may occupy.
type LevelBounds struct {
	common.Rect
}

var LevelBoundsComponent = NewComponent[LevelBounds]("level_bounds")
