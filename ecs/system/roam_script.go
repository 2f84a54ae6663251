package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/hakenslash/ecs/component"
	"github.com/milk9111/hakenslash/prefabs"
)

// RoamInput is what a roam script sees each tick.
type RoamInput struct {
	Heading component.Direction
	X       float64
	Y       float64
	PlayerX float64
	PlayerY float64
	Tick    int
	Wall    bool
	// Roll is a uniform sample in [0,1) drawn from the session RNG.
	Roll float64
}

// RoamScripts compiles tengo roam policies on first use and runs them with
// per-enemy inputs. A script reads the globals below and may reassign
// heading to -1 or 1.
type RoamScripts struct {
	load     func(name string) ([]byte, error)
	compiled map[string]*tengo.Compiled
}

func NewRoamScripts(load func(name string) ([]byte, error)) *RoamScripts {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &RoamScripts{load: load, compiled: map[string]*tengo.Compiled{}}
}

// Reload drops compiled scripts; the next call recompiles from source.
func (r *RoamScripts) Reload() {
	if r == nil {
		return
	}
	r.compiled = map[string]*tengo.Compiled{}
}

// Heading runs the named script and returns the heading it chose. A script
// that leaves heading at zero keeps the current heading.
func (r *RoamScripts) Heading(name string, in RoamInput) (component.Direction, error) {
	if r == nil {
		return in.Heading, fmt.Errorf("roam script %s: no script runtime", name)
	}
	c, err := r.get(name)
	if err != nil {
		return in.Heading, err
	}

	vars := map[string]any{
		"heading":  int(in.Heading),
		"x":        in.X,
		"y":        in.Y,
		"player_x": in.PlayerX,
		"player_y": in.PlayerY,
		"tick":     in.Tick,
		"wall":     in.Wall,
		"roll":     in.Roll,
	}
	for k, v := range vars {
		if err := c.Set(k, v); err != nil {
			return in.Heading, fmt.Errorf("roam script %s: set %s: %w", name, k, err)
		}
	}
	if err := run(c); err != nil {
		return in.Heading, fmt.Errorf("roam script %s: run: %w", name, err)
	}

	switch out := c.Get("heading").Int(); {
	case out < 0:
		return component.DirLeft, nil
	case out > 0:
		return component.DirRight, nil
	default:
		return in.Heading, nil
	}
}

// run executes c, turning a Go panic raised inside the VM (integer divide by
// zero, for one) into an error.
func run(c *tengo.Compiled) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()
	return c.Run()
}

func (r *RoamScripts) get(name string) (*tengo.Compiled, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("roam script: empty name")
	}
	if c, ok := r.compiled[name]; ok {
		return c, nil
	}

	src, err := r.load(name)
	if err != nil {
		return nil, fmt.Errorf("roam script %s: load: %w", name, err)
	}

	script := tengo.NewScript(src)
	_ = script.Add("heading", 0)
	_ = script.Add("x", 0.0)
	_ = script.Add("y", 0.0)
	_ = script.Add("player_x", 0.0)
	_ = script.Add("player_y", 0.0)
	_ = script.Add("tick", 0)
	_ = script.Add("wall", false)
	_ = script.Add("roll", 0.0)
	script.SetImports(stdlib.GetModuleMap("math", "text"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("roam script %s: compile: %w", name, err)
	}
	r.compiled[name] = compiled
	return compiled, nil
}
