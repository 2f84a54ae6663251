package system

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
)

// MeleeAISystem steers, moves and resolves every active melee enemy, then
// feeds contact and chase-band events through the FSM.
type MeleeAISystem struct {
	props   *common.Properties
	rng     Rand
	fsm     *FSMDef
	scripts *RoamScripts
	log     zerolog.Logger
	tick    int
}

func NewMeleeAISystem(props *common.Properties, rng Rand, fsm *FSMDef, scripts *RoamScripts, log zerolog.Logger) *MeleeAISystem {
	if fsm == nil {
		fsm = DefaultMeleeFSM()
	}
	return &MeleeAISystem{props: props, rng: rng, fsm: fsm, scripts: scripts, log: log}
}

// SetFSM swaps the transition table used from the next tick on.
func (s *MeleeAISystem) SetFSM(fsm *FSMDef) {
	if fsm != nil {
		s.fsm = fsm
	}
}

func (s *MeleeAISystem) Update(w *ecs.World) {
	if w == nil || s.props == nil {
		return
	}
	s.tick++
	p := s.props
	obstacles := ObstacleRefs(w)
	playerEnt, playerBody, havePlayer := findPlayer(w)

	ecs.ForEach3(w, component.MeleeAIComponent.Kind(), component.BodyComponent.Kind(), component.VelocityComponent.Kind(), func(e ecs.Entity, ai *component.MeleeAI, body *component.Body, vel *component.Velocity) {
		if ecs.Has(w, e, component.DormantComponent.Kind()) {
			return
		}
		if ai.State == "" {
			ai.State = s.fsm.Initial
		}

		s.steer(e, ai, body, playerBody)

		if ai.State == component.StatePatrol && s.rng.Float64() < p.Enemy.JumpChance {
			if s.fire(e, ai, component.EventJumpRoll) {
				vel.Y += p.Enemy.JumpAccel
				ai.JumpFrame = 1
			}
		} else if ai.State == component.StateJumping && vel.Y < 0 && ai.JumpFrame < p.Enemy.JumpFrames {
			hold := float64(p.Enemy.JumpFrames)
			vel.Y += p.Enemy.JumpAccel * (hold - float64(ai.JumpFrame)) / hold
			ai.JumpFrame++
		}

		body.Position.X += MoveHorizontal(&vel.Vector, ai.Heading, MeleeHorizontal(p, ai.SpeedModifier))
		ai.HitWall = CollideHorizontal(body, &vel.Vector, obstacles, p.Gap)
		if ai.HitWall && !(ai.State == component.StatePatrol && ai.Roam == component.RoamScript) {
			ai.Heading = ai.Heading.Opposite()
		}

		body.Position.Y += MoveVertical(&vel.Vector, Vertical(p))
		if _, landed := CollideVertical(body, &vel.Vector, obstacles, p.Gap); landed && ai.State == component.StateJumping {
			s.fire(e, ai, component.EventLanded)
		}

		if !havePlayer {
			s.fire(e, ai, component.EventPlayerOutOfBand)
			return
		}

		if body.Rect().Intersects(playerBody.Rect()) {
			damagePlayer(w, playerEnt, p.Combat.ContactDamage, KindMelee)
			s.fire(e, ai, component.EventPlayerContact)
		} else if ai.State == component.StateAttacking {
			s.fire(e, ai, component.EventContactLost)
		}

		if math.Abs(playerBody.Position.Y-body.Position.Y) <= p.Enemy.ChaseBand {
			s.fire(e, ai, component.EventPlayerInBand)
		} else {
			s.fire(e, ai, component.EventPlayerOutOfBand)
		}
	})
}

// steer picks this tick's heading from the current state.
func (s *MeleeAISystem) steer(e ecs.Entity, ai *component.MeleeAI, body *component.Body, player *component.Body) {
	switch ai.State {
	case component.StateChase, component.StateAttacking:
		if player == nil {
			return
		}
		if player.Position.X < body.Position.X {
			ai.Heading = component.DirLeft
		} else if player.Position.X > body.Position.X {
			ai.Heading = component.DirRight
		}
	case component.StatePatrol:
		s.roam(e, ai, body, player)
	}
	if ai.Heading == component.DirNone {
		ai.Heading = component.DirLeft
	}
}

func (s *MeleeAISystem) roam(e ecs.Entity, ai *component.MeleeAI, body *component.Body, player *component.Body) {
	switch ai.Roam {
	case component.RoamWall:
		// Heading only changes on wall contact.
	case component.RoamScript:
		in := RoamInput{
			Heading: ai.Heading,
			X:       body.Position.X,
			Y:       body.Position.Y,
			Tick:    s.tick,
			Wall:    ai.HitWall,
			Roll:    s.rng.Float64(),
		}
		if player != nil {
			in.PlayerX, in.PlayerY = player.Position.X, player.Position.Y
		}
		heading, err := s.scripts.Heading(ai.Script, in)
		if err != nil {
			s.log.Error().Err(err).Uint64("entity", uint64(e)).Msg("roam script failed, falling back to wall roam")
			ai.Roam = component.RoamWall
			return
		}
		ai.Heading = heading
	default:
		ai.RoamTimer--
		if ai.RoamTimer > 0 {
			return
		}
		ai.RoamTimer = s.props.Enemy.RoamFrames
		if s.rng.Intn(2) == 0 {
			ai.Heading = component.DirLeft
		} else {
			ai.Heading = component.DirRight
		}
	}
}

func (s *MeleeAISystem) fire(e ecs.Entity, ai *component.MeleeAI, ev component.EventID) bool {
	next, ok := s.fsm.Next(ai.State, ev)
	if !ok {
		return false
	}
	s.log.Debug().Uint64("entity", uint64(e)).Str("from", string(ai.State)).Str("to", string(next)).Str("event", string(ev)).Msg("melee state")
	if ai.State == component.StateJumping {
		ai.JumpFrame = 0
	}
	ai.State = next
	return true
}
