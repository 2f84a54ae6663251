package system

import (
	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
)

// BulletSystem moves bullets in straight lines and resolves their hits.
type BulletSystem struct {
	props    *common.Properties
	timestep float64
}

func NewBulletSystem(props *common.Properties, timestep float64) *BulletSystem {
	if timestep <= 0 {
		timestep = common.Timestep
	}
	return &BulletSystem{props: props, timestep: timestep}
}

func (s *BulletSystem) Update(w *ecs.World) {
	if w == nil || s.props == nil {
		return
	}
	bounds := s.props.Combat.Bounds
	if e, ok := w.First(component.LevelBoundsComponent.Kind()); ok {
		if lb, ok := ecs.Get(w, e, component.LevelBoundsComponent.Kind()); ok {
			bounds = lb.Rect
		}
	}
	playerEnt, playerBody, havePlayer := findPlayer(w)

	ecs.ForEach2(w, component.BulletComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, b *component.Bullet, body *component.Body) {
		if l := b.Direction.Length(); l > 0 {
			body.Position = body.Position.Add(b.Direction.Mult(b.Speed * s.timestep / l))
		}

		if havePlayer && body.Rect().Intersects(playerBody.Rect()) {
			damagePlayer(w, playerEnt, s.props.Combat.BulletDamage, KindBullet)
			ecs.DestroyEntity(w, e)
			return
		}

		if b.Deflected && s.hitRanged(w, playerEnt, body) {
			ecs.DestroyEntity(w, e)
			return
		}

		if outside(bounds, body) {
			ecs.DestroyEntity(w, e)
		}
	})
}

// hitRanged kills the first ranged enemy a deflected bullet touches.
func (s *BulletSystem) hitRanged(w *ecs.World, player ecs.Entity, body *component.Body) bool {
	r := body.Rect()
	for _, e := range w.Query(component.RangedAIComponent.Kind(), component.BodyComponent.Kind()) {
		target, ok := ecs.Get(w, e, component.BodyComponent.Kind())
		if !ok || !r.Intersects(target.Rect()) {
			continue
		}
		ecs.DestroyEntity(w, e)
		creditKill(w, player, e, KindRanged, true)
		return true
	}
	return false
}

func outside(bounds common.Rect, body *component.Body) bool {
	return !bounds.ContainsVect(body.Position)
}
