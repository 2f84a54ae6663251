package system

import (
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
)

// InputSystem copies the tick's input snapshot onto every entity that reads
// input.
type InputSystem struct {
	source *component.Input
}

// NewInputSystem reads from source each tick; the caller rewrites it between
// ticks.
func NewInputSystem(source *component.Input) *InputSystem {
	return &InputSystem{source: source}
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil || s.source == nil {
		return
	}

	in := *s.source
	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		*input = in
	})
}
