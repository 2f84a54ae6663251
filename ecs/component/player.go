package component

// Player holds the controller state of the player character.
type Player struct {
	Grounded            bool
	JumpFrame           int
	FramesSinceGrounded int
	Facing              Direction
	Kills               int
	// KillThreshold counts kills since the last escalation.
	KillThreshold int
}

var PlayerComponent = NewComponent[Player]("player")
