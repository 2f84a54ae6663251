package component

// Input stores per-tick input state for an entity. The *Pressed and
// *Released fields are edges and hold for a single tick.
type Input struct {
	MoveLeft          bool
	MoveRight         bool
	JumpPressed       bool
	JumpHeld          bool
	JumpReleased      bool
	AttackPressed     bool
	ToggleHitboxDebug bool
}

// Intent resolves held directions; left wins when both are held.
func (in Input) Intent() Direction {
	if in.MoveLeft {
		return DirLeft
	}
	if in.MoveRight {
		return DirRight
	}
	return DirNone
}

// Held returns in with its edge fields cleared.
func (in Input) Held() Input {
	return Input{MoveLeft: in.MoveLeft, MoveRight: in.MoveRight, JumpHeld: in.JumpHeld}
}

var InputComponent = NewComponent[Input]("input")
