package system

import (
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
)

// WeaponSystem places each weapon hitbox beside its owner on the side the
// owner faces.
type WeaponSystem struct{}

func NewWeaponSystem() *WeaponSystem {
	return &WeaponSystem{}
}

func (s *WeaponSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.WeaponComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, weapon *component.Weapon, body *component.Body) {
		owner := ecs.Entity(weapon.Owner)
		ownerBody, ok := ecs.Get(w, owner, component.BodyComponent.Kind())
		if !ok {
			return
		}
		facing := component.DirRight
		if player, ok := ecs.Get(w, owner, component.PlayerComponent.Kind()); ok && player.Facing != component.DirNone {
			facing = player.Facing
		}
		body.Position = ownerBody.Position
		body.Position.X += facing.Sign() * weapon.Offset
	})
}
