package prefabs

import (
	"errors"
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/hakenslash/common"
)

const PropertiesFile = "properties.yaml"

var (
	ErrUnknownProperty = errors.New("unknown property")
	ErrMissingProperty = errors.New("missing property")
)

// PropertiesSpec mirrors properties.yaml. Values marked per second are
// divided by the tick rate when converted.
type PropertiesSpec struct {
	HAccel    float64   `yaml:"h_accel"` // per second
	HCoeff    float64   `yaml:"h_coeff"`
	HOpposite float64   `yaml:"h_opposite"`
	HAir      float64   `yaml:"h_air"`
	MinHVel   float64   `yaml:"min_h_vel"`
	MaxHVel   float64   `yaml:"max_h_vel"` // per second
	Gravity   float64   `yaml:"gravity"`   // per second
	VAccel    float64   `yaml:"v_accel"`   // per second
	VHold     float64   `yaml:"v_hold"`
	VSafe     float64   `yaml:"v_safe"`
	CutVVel   float64   `yaml:"cut_v_vel"` // per second
	MaxVVel   float64   `yaml:"max_v_vel"` // per second
	Gap       float64   `yaml:"gap"`
	CamDrift  float64   `yaml:"cam_drift"` // per second
	CamEdges  []float64 `yaml:"cam_edges"`

	Combat CombatSpec `yaml:"combat"`
	Enemy  EnemySpec  `yaml:"enemy"`
}

type CombatSpec struct {
	AttackCooldown      float64  `yaml:"attack_cooldown"`
	AttackAnimation     float64  `yaml:"attack_animation"`
	WeaponHalfExtents   VecSpec  `yaml:"weapon_half_extents"`
	WeaponOffset        float64  `yaml:"weapon_offset"`
	PlayerHalfExtents   VecSpec  `yaml:"player_half_extents"`
	PlayerMaxHealth     int      `yaml:"player_max_health"`
	BulletSpeed         float64  `yaml:"bullet_speed"`
	BulletHalfExtents   VecSpec  `yaml:"bullet_half_extents"`
	FireRoll            int      `yaml:"fire_roll"`
	ContactDamage       int      `yaml:"contact_damage"`
	BulletDamage        int      `yaml:"bullet_damage"`
	EscalationThreshold int      `yaml:"escalation_threshold"`
	SpeedIncrement      float64  `yaml:"speed_increment"`
	KillPolicy          string   `yaml:"kill_policy"`
	Bounds              RectSpec `yaml:"bounds"`
}

type EnemySpec struct {
	HalfExtents VecSpec `yaml:"half_extents"`
	ChaseBand   float64 `yaml:"chase_band"`
	JumpChance  float64 `yaml:"jump_chance"`
	JumpAccel   float64 `yaml:"jump_accel"` // per second
	JumpFrames  int     `yaml:"jump_frames"`
	RoamFrames  int     `yaml:"roam_frames"`
}

var (
	knownProperties = keySet("h_accel", "h_coeff", "h_opposite", "h_air", "min_h_vel", "max_h_vel",
		"gravity", "v_accel", "v_hold", "v_safe", "cut_v_vel", "max_v_vel", "gap", "cam_drift", "cam_edges",
		"combat", "enemy")
	knownCombat = keySet("attack_cooldown", "attack_animation", "weapon_half_extents", "weapon_offset",
		"player_half_extents", "player_max_health", "bullet_speed", "bullet_half_extents", "fire_roll",
		"contact_damage", "bullet_damage", "escalation_threshold", "speed_increment", "kill_policy", "bounds")
	// requiredProperties have no default. cam_edges and the combat and enemy
	// sections may be left out.
	requiredProperties = []string{"h_accel", "h_coeff", "h_opposite", "h_air", "min_h_vel", "max_h_vel",
		"gravity", "v_accel", "v_hold", "v_safe", "cut_v_vel", "max_v_vel", "gap", "cam_drift"}
	knownEnemy = keySet("half_extents", "chase_band", "jump_chance", "jump_accel", "jump_frames", "roam_frames")
)

func keySet(keys ...string) map[string]bool {
	m := make(map[string]bool, len(keys))
	for _, k := range keys {
		m[k] = true
	}
	return m
}

// DefaultPropertiesSpec returns the combat and enemy values used when
// properties.yaml leaves them out.
func DefaultPropertiesSpec() PropertiesSpec {
	c := common.DefaultCombat()
	return PropertiesSpec{
		Combat: CombatSpec{
			AttackCooldown:      c.AttackCooldown,
			AttackAnimation:     c.AttackAnimation,
			WeaponHalfExtents:   VecSpec{X: c.WeaponHalfExtents.X, Y: c.WeaponHalfExtents.Y},
			WeaponOffset:        c.WeaponOffset,
			PlayerHalfExtents:   VecSpec{X: c.PlayerHalfExtents.X, Y: c.PlayerHalfExtents.Y},
			PlayerMaxHealth:     c.PlayerMaxHealth,
			BulletSpeed:         c.BulletSpeed,
			BulletHalfExtents:   VecSpec{X: c.BulletHalfExtents.X, Y: c.BulletHalfExtents.Y},
			FireRoll:            c.FireRoll,
			ContactDamage:       c.ContactDamage,
			BulletDamage:        c.BulletDamage,
			EscalationThreshold: c.EscalationThreshold,
			SpeedIncrement:      c.SpeedIncrement,
			KillPolicy:          string(c.KillPolicy),
			Bounds:              RectSpec{X: c.Bounds.Left(), Y: c.Bounds.Top(), Width: c.Bounds.Width(), Height: c.Bounds.Height()},
		},
		Enemy: EnemySpec{
			HalfExtents: VecSpec{X: 20, Y: 20},
			ChaseBand:   40,
			JumpChance:  0.005,
			JumpAccel:   -240,
			JumpFrames:  6,
			RoamFrames:  90,
		},
	}
}

// ParseProperties decodes properties YAML on top of the section defaults.
// Unknown keys are rejected with ErrUnknownProperty and absent movement keys
// with ErrMissingProperty.
func ParseProperties(data []byte) (PropertiesSpec, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return PropertiesSpec{}, fmt.Errorf("prefabs: unmarshal properties: %w", err)
	}
	if err := checkKeys("", raw, knownProperties); err != nil {
		return PropertiesSpec{}, err
	}
	var missing []string
	for _, k := range requiredProperties {
		if _, ok := raw[k]; !ok {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return PropertiesSpec{}, fmt.Errorf("prefabs: %v: %w", missing, ErrMissingProperty)
	}
	if m, ok := raw["combat"].(map[string]any); ok {
		if err := checkKeys("combat.", m, knownCombat); err != nil {
			return PropertiesSpec{}, err
		}
	}
	if m, ok := raw["enemy"].(map[string]any); ok {
		if err := checkKeys("enemy.", m, knownEnemy); err != nil {
			return PropertiesSpec{}, err
		}
	}

	spec := DefaultPropertiesSpec()
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return PropertiesSpec{}, fmt.Errorf("prefabs: unmarshal properties: %w", err)
	}
	if n := len(spec.CamEdges); n != 0 && n != 4 {
		return PropertiesSpec{}, fmt.Errorf("prefabs: cam_edges needs 4 values, got %d", n)
	}
	switch common.KillPolicy(spec.Combat.KillPolicy) {
	case common.KillRespawn, common.KillRemove, common.KillReserve:
	default:
		return PropertiesSpec{}, fmt.Errorf("prefabs: combat.kill_policy %q: %w", spec.Combat.KillPolicy, ErrUnknownProperty)
	}
	return spec, nil
}

func checkKeys(prefix string, raw map[string]any, known map[string]bool) error {
	var unknown []string
	for k := range raw {
		if !known[k] {
			unknown = append(unknown, prefix+k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("prefabs: %v: %w", unknown, ErrUnknownProperty)
}

// LoadProperties reads properties.yaml and converts it for the given tick
// rate.
func LoadProperties(tps int) (common.Properties, error) {
	data, err := Load(PropertiesFile)
	if err != nil {
		return common.Properties{}, fmt.Errorf("prefabs: load %s: %w", PropertiesFile, err)
	}
	spec, err := ParseProperties(data)
	if err != nil {
		return common.Properties{}, err
	}
	return spec.Properties(tps), nil
}

// Properties converts the spec into per-tick values.
func (s PropertiesSpec) Properties(tps int) common.Properties {
	if tps <= 0 {
		tps = common.TargetTPS
	}
	rate := float64(tps)

	p := common.Properties{
		HAccel:    s.HAccel / rate,
		HCoeff:    s.HCoeff,
		HOpposite: s.HOpposite,
		HAir:      s.HAir,
		HVelMin:   s.MinHVel,
		HVelMax:   s.MaxHVel / rate,
		Gravity:   s.Gravity / rate,
		VAccel:    s.VAccel / rate,
		VHold:     s.VHold,
		VSafe:     s.VSafe,
		VVelCut:   s.CutVVel / rate,
		VVelMax:   s.MaxVVel / rate,
		Gap:       s.Gap,
		CamDrift:  s.CamDrift / rate,
	}
	if len(s.CamEdges) == 4 {
		p.CamUpperLeft = cp.Vector{X: s.CamEdges[0], Y: s.CamEdges[1]}
		p.CamLowerRight = cp.Vector{X: s.CamEdges[2], Y: s.CamEdges[3]}
	}

	c := s.Combat
	p.Combat = common.CombatProperties{
		AttackCooldown:      c.AttackCooldown,
		AttackAnimation:     c.AttackAnimation,
		WeaponHalfExtents:   c.WeaponHalfExtents.Vector(),
		WeaponOffset:        c.WeaponOffset,
		PlayerHalfExtents:   c.PlayerHalfExtents.Vector(),
		PlayerMaxHealth:     c.PlayerMaxHealth,
		BulletSpeed:         c.BulletSpeed,
		BulletHalfExtents:   c.BulletHalfExtents.Vector(),
		FireRoll:            c.FireRoll,
		ContactDamage:       c.ContactDamage,
		BulletDamage:        c.BulletDamage,
		EscalationThreshold: c.EscalationThreshold,
		SpeedIncrement:      c.SpeedIncrement,
		KillPolicy:          common.KillPolicy(c.KillPolicy),
		Bounds:              common.NewRect(c.Bounds.X, c.Bounds.Y, c.Bounds.Width, c.Bounds.Height),
	}

	e := s.Enemy
	p.Enemy = common.EnemyProperties{
		HalfExtents: e.HalfExtents.Vector(),
		ChaseBand:   e.ChaseBand,
		JumpChance:  e.JumpChance,
		JumpAccel:   e.JumpAccel / rate,
		JumpFrames:  e.JumpFrames,
		RoamFrames:  e.RoamFrames,
	}
	return p
}

func (v VecSpec) Vector() cp.Vector {
	return cp.Vector{X: v.X, Y: v.Y}
}
