package component

// Attack tracks the player's swing timers in seconds. The weapon hitbox is
// drawn while Animation is positive.
type Attack struct {
	Cooldown   float64
	Animation  float64
	ShowHitbox bool
}

// CanSwing reports whether the cooldown has elapsed.
func (a *Attack) CanSwing() bool {
	return a.Cooldown <= 0
}

// Swinging reports whether the attack animation window is open.
func (a *Attack) Swinging() bool {
	return a.Animation > 0
}

var AttackComponent = NewComponent[Attack]("attack")
