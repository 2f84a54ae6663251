package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
)

// PlayerControllerSystem moves the player from its input and resolves it
// against the obstacles, one axis at a time.
type PlayerControllerSystem struct {
	props *common.Properties
}

func NewPlayerControllerSystem(props *common.Properties) *PlayerControllerSystem {
	return &PlayerControllerSystem{props: props}
}

func (s *PlayerControllerSystem) Update(w *ecs.World) {
	if w == nil || s.props == nil {
		return
	}
	p := s.props
	obstacles := ObstacleRefs(w)

	entities := w.Query(
		component.PlayerTagComponent.Kind(),
		component.PlayerComponent.Kind(),
		component.InputComponent.Kind(),
		component.BodyComponent.Kind(),
		component.VelocityComponent.Kind(),
	)
	for _, e := range entities {
		player, ok := ecs.Get(w, e, component.PlayerComponent.Kind())
		if !ok {
			continue
		}
		input, ok := ecs.Get(w, e, component.InputComponent.Kind())
		if !ok {
			continue
		}
		body, ok := ecs.Get(w, e, component.BodyComponent.Kind())
		if !ok {
			continue
		}
		vel, ok := ecs.Get(w, e, component.VelocityComponent.Kind())
		if !ok {
			continue
		}

		intent := input.Intent()
		if intent != component.DirNone {
			player.Facing = intent
		}

		body.Position.X += MoveHorizontal(&vel.Vector, intent, PlayerHorizontal(p))
		if CollideHorizontal(body, &vel.Vector, obstacles, p.Gap) {
			vel.X = 0
		}

		jumped := player.JumpFrame > 0
		applyJump(player, &vel.Vector, input, p)

		body.Position.Y += MoveVertical(&vel.Vector, Vertical(p))

		wasGrounded := player.Grounded
		player.Grounded = false
		if _, landed := CollideVertical(body, &vel.Vector, obstacles, p.Gap); landed {
			player.JumpFrame = 0
			player.FramesSinceGrounded = 0
			player.Grounded = true
			if jumped {
				w.Emit(ecs.Event{Type: ecs.EventLanded, Entity: e})
			}
		}

		if (wasGrounded && !player.Grounded) || (!player.Grounded && player.FramesSinceGrounded > 0) {
			player.FramesSinceGrounded++
		}

		if input.ToggleHitboxDebug {
			if atk, ok := ecs.Get(w, e, component.AttackComponent.Kind()); ok {
				atk.ShowHitbox = !atk.ShowHitbox
			}
		}
	}
}

// applyJump starts a jump inside the grace window, extends it while the
// button is held and clips upward speed once the hold window is spent or the
// button is released.
func applyJump(player *component.Player, vel *cp.Vector, input *component.Input, p *common.Properties) {
	switch {
	case input.JumpPressed && player.JumpFrame <= 0 && float64(player.FramesSinceGrounded) <= p.VSafe:
		vel.Y += p.VAccel
		player.JumpFrame++
	case input.JumpHeld && vel.Y < 0:
		if float64(player.JumpFrame) < p.VHold {
			vel.Y += p.VAccel * (p.VHold - float64(player.JumpFrame)) / p.VHold
			player.JumpFrame++
		} else if vel.Y < p.VVelCut {
			vel.Y = p.VVelCut
		}
	}

	if input.JumpReleased && vel.Y < p.VVelCut {
		vel.Y = p.VVelCut
	}
}
