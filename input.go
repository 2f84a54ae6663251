package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/hakenslash/ecs/component"
)

// Input polls keyboard and the first gamepad into a simulation input.
type Input struct {
	prevJumpHeld bool
}

func NewInput() *Input {
	return &Input{}
}

// Poll reads the devices for this frame.
func (i *Input) Poll() component.Input {
	var in component.Input

	in.MoveLeft = ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyLeft)
	in.MoveRight = ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyRight)
	in.JumpHeld = ebiten.IsKeyPressed(ebiten.KeySpace)
	in.AttackPressed = inpututil.IsKeyJustPressed(ebiten.KeyJ) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	in.ToggleHitboxDebug = inpututil.IsKeyJustPressed(ebiten.KeyQ)

	// Gamepad: left stick or d-pad to move, bottom face button to jump, left
	// face button to attack.
	if ids := ebiten.AppendGamepadIDs(nil); len(ids) > 0 {
		gid := ids[0]

		leftX := ebiten.StandardGamepadAxisValue(gid, ebiten.StandardGamepadAxisLeftStickHorizontal)
		if leftX < -0.3 || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftLeft) {
			in.MoveLeft = true
		}
		if leftX > 0.3 || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonLeftRight) {
			in.MoveRight = true
		}

		in.JumpHeld = in.JumpHeld || ebiten.IsStandardGamepadButtonPressed(gid, ebiten.StandardGamepadButtonRightBottom)
		in.AttackPressed = in.AttackPressed || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonRightLeft)
		in.ToggleHitboxDebug = in.ToggleHitboxDebug || inpututil.IsStandardGamepadButtonJustPressed(gid, ebiten.StandardGamepadButtonCenterLeft)
	}

	// Edges come from the merged held state so keyboard and pad can't
	// double-fire a jump.
	in.JumpPressed = in.JumpHeld && !i.prevJumpHeld
	in.JumpReleased = !in.JumpHeld && i.prevJumpHeld
	i.prevJumpHeld = in.JumpHeld

	return in
}
