package component

// Weapon is the player's melee hitbox. Its Body is derived from the owner
// every tick.
type Weapon struct {
	Owner  uint64
	Offset float64
}

var WeaponComponent = NewComponent[Weapon]("weapon")
