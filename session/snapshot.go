package session

import (
	"github.com/jakecoffman/cp"

	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
)

// Snapshot is a read-only copy of everything the frontend draws.
type Snapshot struct {
	Tick    uint64
	Elapsed float64

	Player    PlayerView
	Weapon    WeaponView
	Obstacles []ObstacleView
	Melee     []MeleeView
	Ranged    []RangedView
	Bullets   []BulletView
}

type PlayerView struct {
	Position  cp.Vector
	Velocity  cp.Vector
	Rect      common.Rect
	Facing    component.Direction
	Grounded  bool
	Health    int
	MaxHealth int
	Kills     int
	Dead      bool
}

type WeaponView struct {
	Rect       common.Rect
	Swinging   bool
	ShowHitbox bool
	Cooldown   float64
}

type ObstacleView struct {
	Entity   ecs.Entity
	Rect     common.Rect
	Moving   bool
	Path     []cp.Vector
	Controls []cp.Vector
}

type MeleeView struct {
	Entity        ecs.Entity
	Rect          common.Rect
	State         component.StateID
	Heading       component.Direction
	SpeedModifier float64
}

type RangedView struct {
	Entity  ecs.Entity
	Rect    common.Rect
	Heading component.Direction
}

type BulletView struct {
	Entity    ecs.Entity
	Rect      common.Rect
	Deflected bool
}

// Snapshot copies the current state. Dormant enemies are left out.
func (s *Session) Snapshot() Snapshot {
	w := s.world
	snap := Snapshot{Tick: s.ticks, Elapsed: s.Elapsed()}

	if body, ok := ecs.Get(w, s.player, component.BodyComponent.Kind()); ok {
		snap.Player.Position = body.Position
		snap.Player.Rect = body.Rect()
	}
	if vel, ok := ecs.Get(w, s.player, component.VelocityComponent.Kind()); ok {
		snap.Player.Velocity = vel.Vector
	}
	if p, ok := ecs.Get(w, s.player, component.PlayerComponent.Kind()); ok {
		snap.Player.Facing = p.Facing
		snap.Player.Grounded = p.Grounded
		snap.Player.Kills = p.Kills
	}
	if h, ok := ecs.Get(w, s.player, component.HealthComponent.Kind()); ok {
		snap.Player.Health = h.Current
		snap.Player.MaxHealth = h.Max
		snap.Player.Dead = !h.IsAlive()
	}
	if atk, ok := ecs.Get(w, s.player, component.AttackComponent.Kind()); ok {
		snap.Weapon.Swinging = atk.Swinging()
		snap.Weapon.ShowHitbox = atk.ShowHitbox
		snap.Weapon.Cooldown = atk.Cooldown
	}
	ecs.ForEach2(w, component.WeaponComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, weapon *component.Weapon, body *component.Body) {
		if ecs.Entity(weapon.Owner) == s.player {
			snap.Weapon.Rect = body.Rect()
		}
	})

	ecs.ForEach2(w, component.ObstacleComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, o *component.Obstacle, body *component.Body) {
		view := ObstacleView{Entity: e, Rect: body.Rect(), Moving: o.Kind == component.ObstacleMoving}
		if o.Path != nil {
			view.Path = o.Path.Waypoints()
			view.Controls = o.Path.ControlPoints()
		}
		snap.Obstacles = append(snap.Obstacles, view)
	})

	ecs.ForEach2(w, component.MeleeAIComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, ai *component.MeleeAI, body *component.Body) {
		if ecs.Has(w, e, component.DormantComponent.Kind()) {
			return
		}
		snap.Melee = append(snap.Melee, MeleeView{
			Entity:        e,
			Rect:          body.Rect(),
			State:         ai.State,
			Heading:       ai.Heading,
			SpeedModifier: ai.SpeedModifier,
		})
	})

	ecs.ForEach2(w, component.RangedAIComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, ai *component.RangedAI, body *component.Body) {
		snap.Ranged = append(snap.Ranged, RangedView{Entity: e, Rect: body.Rect(), Heading: ai.Heading})
	})

	ecs.ForEach2(w, component.BulletComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, b *component.Bullet, body *component.Body) {
		snap.Bullets = append(snap.Bullets, BulletView{Entity: e, Rect: body.Rect(), Deflected: b.Deflected})
	})

	return snap
}
