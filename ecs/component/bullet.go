package component

import "github.com/jakecoffman/cp"

// Bullet is a projectile fired by a ranged enemy.
type Bullet struct {
	Direction cp.Vector
	Speed     float64
	Deflected bool
	Owner     uint64
}

var BulletComponent = NewComponent[Bullet]("bullet")
