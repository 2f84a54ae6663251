package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/milk9111/hakenslash/ecs/component"
)

var ErrBadPattern = errors.New("bad input pattern")

type step struct {
	in    component.Input
	ticks int
}

// Pattern replays a looping sequence of held inputs. Each comma separated
// segment is a set of keys with an optional tick count, e.g. "R*30,RJ*10,A,-*5".
// Keys: L left, R right, J jump held, A attack press, H hitbox toggle, - idle.
type Pattern struct {
	steps    []step
	cur      int
	left     int
	prevJump bool
}

func ParsePattern(s string) (*Pattern, error) {
	p := &Pattern{}
	for _, seg := range strings.Split(s, ",") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		keys, count, hasCount := strings.Cut(seg, "*")
		n := 1
		if hasCount {
			v, err := strconv.Atoi(count)
			if err != nil || v <= 0 {
				return nil, fmt.Errorf("%w: count %q", ErrBadPattern, count)
			}
			n = v
		}

		var in component.Input
		for _, k := range strings.ToUpper(keys) {
			switch k {
			case 'L':
				in.MoveLeft = true
			case 'R':
				in.MoveRight = true
			case 'J':
				in.JumpHeld = true
			case 'A':
				in.AttackPressed = true
			case 'H':
				in.ToggleHitboxDebug = true
			case '-':
			default:
				return nil, fmt.Errorf("%w: key %q", ErrBadPattern, k)
			}
		}
		p.steps = append(p.steps, step{in: in, ticks: n})
	}
	if len(p.steps) == 0 {
		p.steps = []step{{ticks: 1}}
	}
	p.left = p.steps[0].ticks
	return p, nil
}

// Next returns the input for the next tick. Attack and hitbox presses fire on
// the first tick of their segment; jump edges follow the held state.
func (p *Pattern) Next() component.Input {
	if p.left == 0 {
		p.cur = (p.cur + 1) % len(p.steps)
		p.left = p.steps[p.cur].ticks
	}
	st := p.steps[p.cur]
	first := p.left == st.ticks
	p.left--

	in := st.in
	if !first {
		in.AttackPressed = false
		in.ToggleHitboxDebug = false
	}
	in.JumpPressed = in.JumpHeld && !p.prevJump
	in.JumpReleased = !in.JumpHeld && p.prevJump
	p.prevJump = in.JumpHeld
	return in
}
