package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// VecSpec is a 2D point or extent.
type VecSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// FSMSpec is a transition table in old-style map[from]map[event]to form.
type FSMSpec struct {
	Initial     string                       `yaml:"initial"`
	Transitions map[string]map[string]string `yaml:"transitions"`
}

func LoadFSMSpec(filename string) (FSMSpec, error) {
	return LoadSpec[FSMSpec](filename)
}

// MeleeSpawnSpec places one melee enemy.
type MeleeSpawnSpec struct {
	X          float64 `yaml:"x"`
	Y          float64 `yaml:"y"`
	Roam       string  `yaml:"roam"`
	Script     string  `yaml:"script"`
	RoamFrames int     `yaml:"roam_frames"`
}

// RosterSpec lists the enemies of a session. Reserve melee enemies are
// promoted in list order.
type RosterSpec struct {
	Melee struct {
		Active  []MeleeSpawnSpec `yaml:"active"`
		Reserve []MeleeSpawnSpec `yaml:"reserve"`
	} `yaml:"melee"`
	Ranged           []VecSpec `yaml:"ranged"`
	EscalationSpawns []VecSpec `yaml:"escalation_spawns"`
}

func LoadRoster() (RosterSpec, error) {
	roster, err := LoadSpec[RosterSpec]("roster.yaml")
	if err != nil {
		return RosterSpec{}, err
	}
	for i, m := range append(roster.Melee.Active, roster.Melee.Reserve...) {
		switch m.Roam {
		case "", "timer", "wall":
		case "script":
			if m.Script == "" {
				return RosterSpec{}, fmt.Errorf("prefabs: roster melee %d: script roam without script", i)
			}
		default:
			return RosterSpec{}, fmt.Errorf("prefabs: roster melee %d: unknown roam mode %q", i, m.Roam)
		}
	}
	return roster, nil
}
