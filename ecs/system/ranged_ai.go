package system

import (
	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
	"github.com/milk9111/hakenslash/ecs/entity"
)

// RangedAISystem rolls each ranged enemy's shot, patrols it between ledges
// and walls and removes it when it touches the player.
type RangedAISystem struct {
	props *common.Properties
	rng   Rand
	log   zerolog.Logger
}

func NewRangedAISystem(props *common.Properties, rng Rand, log zerolog.Logger) *RangedAISystem {
	return &RangedAISystem{props: props, rng: rng, log: log}
}

func (s *RangedAISystem) Update(w *ecs.World) {
	if w == nil || s.props == nil {
		return
	}
	p := s.props
	obstacles := ObstacleRefs(w)
	playerEnt, playerBody, havePlayer := findPlayer(w)

	ecs.ForEach3(w, component.RangedAIComponent.Kind(), component.BodyComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, ai *component.RangedAI, body *component.Body, vel *component.Velocity) {
		if s.rng.Intn(100) > p.Combat.FireRoll && havePlayer {
			s.shoot(w, e, ai, body, playerBody)
		}

		if ai.Heading == component.DirNone {
			ai.Heading = component.DirLeft
		}
		body.Position.X += MoveHorizontal(&vel.Vector, ai.Heading, RangedHorizontal(p))
		if !HasLedgeSupport(body, obstacles) {
			ai.Heading = ai.Heading.Opposite()
		} else if CollideHorizontal(body, &vel.Vector, obstacles, p.Gap) {
			ai.Heading = ai.Heading.Opposite()
		}

		body.Position.Y += MoveVertical(&vel.Vector, Vertical(p))
		CollideVertical(body, &vel.Vector, obstacles, p.Gap)

		if havePlayer && body.Rect().Intersects(playerBody.Rect()) {
			damagePlayer(w, playerEnt, p.Combat.ContactDamage, KindRanged)
			ecs.DestroyEntity(w, e)
		}
	})
}

// shoot spawns a bullet at the enemy aimed at the player's current position.
func (s *RangedAISystem) shoot(w *ecs.World, e ecs.Entity, ai *component.RangedAI, body, target *component.Body) {
	dir := target.Position.Sub(body.Position)
	if dir.Length() == 0 {
		dir = cp.Vector{X: ai.Heading.Sign()}
	}

	c := s.props.Combat
	bullet, err := entity.NewBullet(w, e, body.Position, dir, c.BulletSpeed, c.BulletHalfExtents)
	if err != nil {
		s.log.Error().Err(err).Uint64("entity", uint64(e)).Msg("spawn bullet")
		return
	}
	w.Emit(ecs.Event{Type: ecs.EventProjectileSpawn, Entity: bullet})
}
