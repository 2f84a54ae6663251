package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
)

// Rand is the subset of *rand.Rand the simulation draws from.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

const (
	KindMelee  = "melee"
	KindRanged = "ranged"
	KindBullet = "bullet"
)

// CombatSystem resolves the player's attack: on a fresh attack edge off
// cooldown it opens the swing window, kills every active enemy under the
// weapon and reflects every bullet under it.
type CombatSystem struct {
	props *common.Properties
}

func NewCombatSystem(props *common.Properties) *CombatSystem {
	return &CombatSystem{props: props}
}

func (s *CombatSystem) Update(w *ecs.World) {
	if w == nil || s.props == nil {
		return
	}
	c := s.props.Combat

	ecs.ForEach2(w, component.InputComponent.Kind(), component.AttackComponent.Kind(), func(e ecs.Entity, in *component.Input, atk *component.Attack) {
		if !in.AttackPressed || !atk.CanSwing() {
			return
		}
		atk.Animation = c.AttackAnimation
		atk.Cooldown = c.AttackCooldown
		w.Emit(ecs.Event{Type: ecs.EventAttack, Entity: e})

		weapon, ok := weaponRect(w, e)
		if !ok {
			return
		}

		ecs.ForEach2(w, component.MeleeAIComponent.Kind(), component.BodyComponent.Kind(), func(m ecs.Entity, ai *component.MeleeAI, body *component.Body) {
			if ecs.Has(w, m, component.DormantComponent.Kind()) || !weapon.Intersects(body.Rect()) {
				return
			}
			removed := killMelee(w, m, ai, body, c.KillPolicy)
			creditKill(w, e, m, KindMelee, removed)
		})

		ecs.ForEach2(w, component.RangedAIComponent.Kind(), component.BodyComponent.Kind(), func(r ecs.Entity, _ *component.RangedAI, body *component.Body) {
			if !weapon.Intersects(body.Rect()) {
				return
			}
			ecs.DestroyEntity(w, r)
			creditKill(w, e, r, KindRanged, true)
		})

		ecs.ForEach2(w, component.BulletComponent.Kind(), component.BodyComponent.Kind(), func(b ecs.Entity, bullet *component.Bullet, body *component.Body) {
			if !weapon.Intersects(body.Rect()) {
				return
			}
			bullet.Direction = bullet.Direction.Neg()
			bullet.Deflected = true
			w.Emit(ecs.Event{Type: ecs.EventDeflect, Entity: b})
		})
	})
}

func weaponRect(w *ecs.World, owner ecs.Entity) (common.Rect, bool) {
	var (
		out   common.Rect
		found bool
	)
	ecs.ForEach2(w, component.WeaponComponent.Kind(), component.BodyComponent.Kind(), func(_ ecs.Entity, weapon *component.Weapon, body *component.Body) {
		if found || ecs.Entity(weapon.Owner) != owner {
			return
		}
		out = body.Rect()
		found = true
	})
	return out, found
}

// killMelee applies the kill policy and reports whether the enemy left the
// world.
func killMelee(w *ecs.World, e ecs.Entity, ai *component.MeleeAI, body *component.Body, policy common.KillPolicy) bool {
	if policy == common.KillRemove {
		ecs.DestroyEntity(w, e)
		return true
	}

	body.Position = ai.Spawn
	if vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind()); ok {
		vel.Vector = cp.Vector{}
	}
	ai.State = component.StatePatrol
	ai.JumpFrame = 0
	ai.HitWall = false

	if policy == common.KillReserve {
		_ = ecs.Add(w, e, component.DormantComponent.Kind(), &component.Dormant{Order: nextReserveOrder(w)})
		return true
	}
	return false
}

func nextReserveOrder(w *ecs.World) int {
	next := 0
	ecs.ForEach(w, component.DormantComponent.Kind(), func(_ ecs.Entity, d *component.Dormant) {
		if d.Order >= next {
			next = d.Order + 1
		}
	})
	return next
}

func creditKill(w *ecs.World, player, victim ecs.Entity, kind string, removed bool) {
	kills := 0
	if pl, ok := ecs.Get(w, player, component.PlayerComponent.Kind()); ok {
		pl.Kills++
		pl.KillThreshold++
		kills = pl.Kills
	}
	w.Emit(ecs.Event{Type: ecs.EventKill, Entity: victim, Data: ecs.KillData{Kind: kind, Kills: kills, Removed: removed}})
}

// findPlayer returns the first player entity and its body.
func findPlayer(w *ecs.World) (ecs.Entity, *component.Body, bool) {
	e, ok := w.First(component.PlayerTagComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	body, ok := ecs.Get(w, e, component.BodyComponent.Kind())
	if !ok {
		return 0, nil, false
	}
	return e, body, true
}

func damagePlayer(w *ecs.World, player ecs.Entity, amount int, source string) {
	health, ok := ecs.Get(w, player, component.HealthComponent.Kind())
	if !ok {
		return
	}
	left := health.Damage(amount)
	w.Emit(ecs.Event{Type: ecs.EventPlayerHit, Entity: player, Data: ecs.HitData{Source: source, Amount: amount, Health: left}})
}
