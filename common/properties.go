package common

import "github.com/jakecoffman/cp"

// KillPolicy decides what happens to a melee enemy hit by the player weapon.
type KillPolicy string

const (
	// KillRespawn moves the enemy back to its spawn point and keeps it active.
	KillRespawn KillPolicy = "respawn"
	// KillRemove destroys the enemy.
	KillRemove KillPolicy = "remove"
	// KillReserve returns the enemy to the back of the reserve queue.
	KillReserve KillPolicy = "reserve"
)

// Properties holds the simulation tuning values in per-tick units.
type Properties struct {
	HAccel    float64 // velocity gained per tick of directional input
	HCoeff    float64 // friction multiplier per tick without input
	HOpposite float64 // multiplier on HAccel when reversing direction
	HAir      float64 // multiplier on HAccel while airborne
	HVelMin   float64 // |vx| at or below this snaps to zero
	HVelMax   float64 // horizontal speed cap

	Gravity float64
	VAccel  float64 // jump impulse, negative is up
	VHold   float64 // ticks the jump impulse may be extended
	VSafe   float64 // ticks after leaving ground a jump is still honored
	VVelCut float64 // upward speed is clipped to this when the jump is cut
	VVelMax float64 // downward speed cap

	Gap float64

	CamUpperLeft  cp.Vector
	CamLowerRight cp.Vector
	CamDrift      float64

	Combat CombatProperties
	Enemy  EnemyProperties
}

// CombatProperties configures attacks, projectiles and escalation.
type CombatProperties struct {
	AttackCooldown  float64 // seconds
	AttackAnimation float64 // seconds

	WeaponHalfExtents cp.Vector
	WeaponOffset      float64

	PlayerHalfExtents cp.Vector
	PlayerMaxHealth   int

	BulletSpeed       float64 // pixels per second
	BulletHalfExtents cp.Vector
	// FireRoll: a ranged enemy fires when a roll in [0,100) exceeds it.
	FireRoll int

	ContactDamage int
	BulletDamage  int

	EscalationThreshold int
	SpeedIncrement      float64
	KillPolicy          KillPolicy

	Bounds Rect
}

// EnemyProperties configures enemy AI.
type EnemyProperties struct {
	HalfExtents cp.Vector
	ChaseBand   float64 // vertical distance within which melee enemies chase
	JumpChance  float64 // per tick, melee only
	JumpAccel   float64 // per tick, negative is up
	JumpFrames  int
	RoamFrames  int
}

// DefaultCombat mirrors the values the game shipped with.
func DefaultCombat() CombatProperties {
	return CombatProperties{
		AttackCooldown:      0.75,
		AttackAnimation:     0.15,
		WeaponHalfExtents:   cp.Vector{X: 40, Y: 60},
		WeaponOffset:        40,
		PlayerHalfExtents:   cp.Vector{X: 12, Y: 16},
		PlayerMaxHealth:     100,
		BulletSpeed:         300,
		BulletHalfExtents:   cp.Vector{X: 4, Y: 4},
		FireRoll:            98,
		ContactDamage:       1,
		BulletDamage:        1,
		EscalationThreshold: 10,
		SpeedIncrement:      0.025,
		KillPolicy:          KillRespawn,
		Bounds:              NewRect(0, 0, 1200, 1200),
	}
}
