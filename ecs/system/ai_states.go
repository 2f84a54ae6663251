package system

import (
	"errors"
	"fmt"

	"github.com/milk9111/hakenslash/ecs/component"
	"github.com/milk9111/hakenslash/prefabs"
)

var ErrInvalidFSM = errors.New("invalid fsm")

// FSMDef is an explicit transition table keyed by state, then event.
type FSMDef struct {
	Initial     component.StateID
	Transitions map[component.StateID]map[component.EventID]component.StateID
}

var meleeStates = map[component.StateID]bool{
	component.StatePatrol:    true,
	component.StateChase:     true,
	component.StateJumping:   true,
	component.StateAttacking: true,
}

var meleeEvents = map[component.EventID]bool{
	component.EventPlayerInBand:    true,
	component.EventPlayerOutOfBand: true,
	component.EventJumpRoll:        true,
	component.EventLanded:          true,
	component.EventPlayerContact:   true,
	component.EventContactLost:     true,
}

// DefaultMeleeFSM is the melee enemy state machine.
func DefaultMeleeFSM() *FSMDef {
	return &FSMDef{
		Initial: component.StatePatrol,
		Transitions: map[component.StateID]map[component.EventID]component.StateID{
			component.StatePatrol: {
				component.EventPlayerInBand:  component.StateChase,
				component.EventJumpRoll:      component.StateJumping,
				component.EventPlayerContact: component.StateAttacking,
			},
			component.StateChase: {
				component.EventPlayerOutOfBand: component.StatePatrol,
				component.EventPlayerContact:   component.StateAttacking,
			},
			component.StateJumping: {
				component.EventLanded:        component.StatePatrol,
				component.EventPlayerContact: component.StateAttacking,
			},
			component.StateAttacking: {
				component.EventContactLost: component.StatePatrol,
			},
		},
	}
}

// Next returns the state reached from cur on ev.
func (f *FSMDef) Next(cur component.StateID, ev component.EventID) (component.StateID, bool) {
	if f == nil {
		return cur, false
	}
	next, ok := f.Transitions[cur][ev]
	if !ok || next == cur {
		return cur, false
	}
	return next, true
}

// CompileFSM validates a prefab FSM against the melee states and events.
func CompileFSM(spec prefabs.FSMSpec) (*FSMDef, error) {
	initial := component.StateID(spec.Initial)
	if initial == "" {
		initial = component.StatePatrol
	}
	if !meleeStates[initial] {
		return nil, fmt.Errorf("fsm: unknown initial state %q: %w", initial, ErrInvalidFSM)
	}

	transitions := make(map[component.StateID]map[component.EventID]component.StateID, len(spec.Transitions))
	for from, evs := range spec.Transitions {
		fromID := component.StateID(from)
		if !meleeStates[fromID] {
			return nil, fmt.Errorf("fsm: unknown state %q: %w", from, ErrInvalidFSM)
		}
		m := make(map[component.EventID]component.StateID, len(evs))
		for ev, to := range evs {
			if !meleeEvents[component.EventID(ev)] {
				return nil, fmt.Errorf("fsm: unknown event %q in state %q: %w", ev, from, ErrInvalidFSM)
			}
			if !meleeStates[component.StateID(to)] {
				return nil, fmt.Errorf("fsm: unknown target state %q: %w", to, ErrInvalidFSM)
			}
			m[component.EventID(ev)] = component.StateID(to)
		}
		transitions[fromID] = m
	}

	return &FSMDef{Initial: initial, Transitions: transitions}, nil
}
