package component

import "github.com/jakecoffman/cp"

// StateID identifies an AI FSM state.
type StateID string

// EventID identifies an AI FSM event.
type EventID string

const (
	StatePatrol    StateID = "patrol"
	StateChase     StateID = "chase"
	StateJumping   StateID = "jumping"
	StateAttacking StateID = "attacking"
)

const (
	EventPlayerInBand    EventID = "player_in_band"
	EventPlayerOutOfBand EventID = "player_out_of_band"
	EventJumpRoll        EventID = "jump_roll"
	EventLanded          EventID = "landed"
	EventPlayerContact   EventID = "player_contact"
	EventContactLost     EventID = "contact_lost"
)

// RoamMode selects how a patrolling melee enemy picks its heading.
type RoamMode string

const (
	RoamTimer  RoamMode = "timer"
	RoamWall   RoamMode = "wall"
	RoamScript RoamMode = "script"
)

// MeleeAI is the state of a melee enemy.
type MeleeAI struct {
	State         StateID
	Heading       Direction
	JumpFrame     int
	SpeedModifier float64
	Roam          RoamMode
	RoamTimer     int
	// HitWall is set when the last horizontal move ran into an obstacle.
	HitWall bool
	// Script names the roam script for RoamScript.
	Script string
	Spawn  cp.Vector
}

var MeleeAIComponent = NewComponent[MeleeAI]("melee_ai")

// RangedAI is the state of a ranged enemy.
type RangedAI struct {
	Heading Direction
	Spawn   cp.Vector
}

var RangedAIComponent = NewComponent[RangedAI]("ranged_ai")
