package session

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/google/uuid"
	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"

	"github.com/milk9111/hakenslash/common"
	shared "github.com/milk9111/hakenslash/component"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
	"github.com/milk9111/hakenslash/ecs/entity"
	"github.com/milk9111/hakenslash/ecs/system"
	"github.com/milk9111/hakenslash/levels"
	"github.com/milk9111/hakenslash/prefabs"
)

// tickUnits is the accumulator resolution per tick. Elapsed time is rounded
// to it so equal totals give equal tick counts however they are split.
const tickUnits = 1_000_000

// Session is one run of a level: the world, its systems and everything they
// share.
type Session struct {
	id       uuid.UUID
	seed     int64
	tps      int
	timestep float64
	log      zerolog.Logger

	props   *common.Properties
	level   *levels.Level
	table   *shared.CoefficientTable
	rng     *rand.Rand
	world   *ecs.World
	sched   *ecs.Scheduler
	melee   *system.MeleeAISystem
	scripts *system.RoamScripts

	player  ecs.Entity
	input   component.Input
	pending component.Input
	acc     int64
	ticks   uint64

	sinks      []func(ecs.Event)
	tickHooks  []func(uint64)
	deadLogged bool
}

// New builds a session from a level and an enemy roster. Curve and level
// errors are returned before anything runs.
func New(props common.Properties, level *levels.Level, roster prefabs.RosterSpec, opts ...Option) (*Session, error) {
	if level == nil {
		return nil, fmt.Errorf("session: nil level: %w", levels.ErrInvalidLevel)
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.table == nil {
		o.table = shared.NewCoefficientTable()
	}
	if o.scripts == nil {
		o.scripts = system.NewRoamScripts(nil)
	}

	id := uuid.New()
	s := &Session{
		id:       id,
		seed:     o.seed,
		tps:      o.tps,
		timestep: 1 / float64(o.tps),
		log:      o.log.With().Str("session", id.String()).Int64("seed", o.seed).Logger(),
		props:    &props,
		level:    level,
		table:    o.table,
		rng:      rand.New(rand.NewSource(o.seed)),
		world:    ecs.NewWorld(),
		scripts:  o.scripts,
	}

	if err := s.buildLevel(); err != nil {
		return nil, err
	}
	if err := s.buildRoster(roster); err != nil {
		return nil, err
	}

	spawns := make([]cp.Vector, 0, len(roster.EscalationSpawns))
	for _, p := range roster.EscalationSpawns {
		spawns = append(spawns, p.Vector())
	}

	s.melee = system.NewMeleeAISystem(s.props, s.rng, o.fsm, s.scripts, s.log)
	s.sched = ecs.NewScheduler(
		system.NewInputSystem(&s.input),
		system.NewObstacleMotionSystem(),
		system.NewPlayerControllerSystem(s.props),
		system.NewWeaponSystem(),
		s.melee,
		system.NewBulletSystem(s.props, s.timestep),
		system.NewRangedAISystem(s.props, s.rng, s.log),
		system.NewCombatSystem(s.props),
		system.NewEscalationSystem(s.props, spawns, s.log),
		system.NewCooldownSystem(s.timestep),
	)

	s.log.Info().
		Str("level", level.Name).
		Int("static_obstacles", len(level.StaticObstacles)).
		Int("moving_obstacles", len(level.MovingObstacles)).
		Int("melee", len(roster.Melee.Active)).
		Int("reserve", len(roster.Melee.Reserve)).
		Int("ranged", len(roster.Ranged)).
		Msg("level loaded")

	if ev := s.log.Debug(); ev.Enabled() {
		for _, k := range component.Kinds() {
			ev.Int(k.Name(), s.world.Count(k))
		}
		ev.Msg("component stores")
	}

	return s, nil
}

func (s *Session) buildLevel() error {
	lvl := s.level
	if _, err := entity.NewLevelBounds(s.world, lvl.Bounds.Rect()); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	for i, o := range lvl.StaticObstacles {
		if _, err := entity.NewObstacle(s.world, cp.Vector{X: o.X, Y: o.Y}, cp.Vector{X: o.HalfW, Y: o.HalfH}, nil); err != nil {
			return fmt.Errorf("session: static obstacle %d: %w", i, err)
		}
	}

	for i, o := range lvl.MovingObstacles {
		points := make([]cp.Vector, len(o.Points))
		for j, p := range o.Points {
			points[j] = cp.Vector{X: p.X, Y: p.Y}
		}
		path, err := shared.NewCurvePath(s.table, o.Order, points, o.Steps)
		if err != nil {
			return fmt.Errorf("session: moving obstacle %d: %w", i, err)
		}
		if _, err := entity.NewObstacle(s.world, path.Start(), cp.Vector{X: o.HalfW, Y: o.HalfH}, path); err != nil {
			return fmt.Errorf("session: moving obstacle %d: %w", i, err)
		}
		s.log.Debug().Int("obstacle", i).Int("order", path.Order()).Int("steps", path.Steps()).Int("waypoints", path.Len()).Msg("moving obstacle")
	}

	player, err := entity.NewPlayer(s.world, cp.Vector{X: lvl.PlayerSpawn.X, Y: lvl.PlayerSpawn.Y}, s.props.Combat)
	if err != nil {
		return fmt.Errorf("session: %w", err)
	}
	s.player = player
	return nil
}

func (s *Session) buildRoster(roster prefabs.RosterSpec) error {
	half := s.props.Enemy.HalfExtents

	melee := func(m prefabs.MeleeSpawnSpec, dormant bool, order int) error {
		frames := m.RoamFrames
		if frames <= 0 {
			frames = s.props.Enemy.RoamFrames
		}
		cfg := entity.MeleeConfig{Roam: component.RoamMode(m.Roam), Script: m.Script, RoamFrames: frames}
		_, err := entity.NewMeleeEnemy(s.world, cp.Vector{X: m.X, Y: m.Y}, half, cfg, dormant, order)
		return err
	}

	for i, m := range roster.Melee.Active {
		if err := melee(m, false, 0); err != nil {
			return fmt.Errorf("session: melee %d: %w", i, err)
		}
	}
	for i, m := range roster.Melee.Reserve {
		if err := melee(m, true, i); err != nil {
			return fmt.Errorf("session: reserve melee %d: %w", i, err)
		}
	}
	for i, r := range roster.Ranged {
		if _, err := entity.NewRangedEnemy(s.world, r.Vector(), half); err != nil {
			return fmt.Errorf("session: ranged %d: %w", i, err)
		}
	}
	return nil
}

// Tick runs one fixed step with in as the input snapshot.
func (s *Session) Tick(in component.Input) {
	s.input = in
	s.sched.Update(s.world)
	s.ticks++

	for _, evt := range s.world.Events().Drain() {
		if evt.Type == ecs.EventKill {
			if data, ok := evt.Data.(ecs.KillData); ok {
				s.log.Debug().Uint64("entity", uint64(evt.Entity)).Str("kind", data.Kind).Int("kills", data.Kills).Msg("kill")
			}
		}
		for _, sink := range s.sinks {
			sink(evt)
		}
	}
	for _, hook := range s.tickHooks {
		hook(s.ticks)
	}

	if !s.deadLogged && s.PlayerDead() {
		s.deadLogged = true
		s.log.Info().Uint64("tick", s.ticks).Int("kills", s.Kills()).Msg("player health reached zero")
	}
}

// Advance adds elapsed seconds to the accumulator and runs every whole tick
// it holds. Press and release edges go to the first tick that runs; if none
// runs they wait for the next call.
func (s *Session) Advance(elapsed float64, in component.Input) int {
	s.pending = mergeEdges(s.pending, in)
	if elapsed > 0 {
		s.acc += int64(math.Round(elapsed * float64(s.tps) * tickUnits))
	}

	n := 0
	for s.acc >= tickUnits {
		tickIn := in.Held()
		if n == 0 {
			tickIn = s.pending
			s.pending = component.Input{}
		}
		s.Tick(tickIn)
		s.acc -= tickUnits
		n++
	}
	return n
}

func mergeEdges(pending, in component.Input) component.Input {
	out := in.Held()
	out.JumpPressed = pending.JumpPressed || in.JumpPressed
	out.JumpReleased = pending.JumpReleased || in.JumpReleased
	out.AttackPressed = pending.AttackPressed || in.AttackPressed
	out.ToggleHitboxDebug = pending.ToggleHitboxDebug != in.ToggleHitboxDebug
	return out
}

// Subscribe registers fn for every event, in emission order.
func (s *Session) Subscribe(fn func(ecs.Event)) {
	if fn != nil {
		s.sinks = append(s.sinks, fn)
	}
}

// OnTick registers fn to run after every tick with the tick count.
func (s *Session) OnTick(fn func(uint64)) {
	if fn != nil {
		s.tickHooks = append(s.tickHooks, fn)
	}
}

// SetProperties swaps the tunables in place; systems see them next tick. A
// new player_max_health resizes the player's pool.
func (s *Session) SetProperties(p common.Properties) {
	*s.props = p
	if h, ok := ecs.Get(s.world, s.player, component.HealthComponent.Kind()); ok && h.Max != p.Combat.PlayerMaxHealth {
		h.SetMax(p.Combat.PlayerMaxHealth)
	}
	s.log.Info().Msg("properties reloaded")
}

func (s *Session) Properties() common.Properties {
	return *s.props
}

// SetFSM replaces the melee transition table.
func (s *Session) SetFSM(fsm *system.FSMDef) {
	s.melee.SetFSM(fsm)
	s.log.Info().Msg("melee fsm reloaded")
}

// ReloadScripts drops compiled roam scripts so edits are picked up.
func (s *Session) ReloadScripts() {
	s.scripts.Reload()
	s.log.Info().Msg("roam scripts reloaded")
}

// PlayerDead reports whether the player's health is at or below zero.
func (s *Session) PlayerDead() bool {
	h, ok := ecs.Get(s.world, s.player, component.HealthComponent.Kind())
	return ok && !h.IsAlive()
}

// PlayerPosition returns the player's center.
func (s *Session) PlayerPosition() cp.Vector {
	if body, ok := ecs.Get(s.world, s.player, component.BodyComponent.Kind()); ok {
		return body.Position
	}
	return cp.Vector{}
}

func (s *Session) Kills() int {
	if p, ok := ecs.Get(s.world, s.player, component.PlayerComponent.Kind()); ok {
		return p.Kills
	}
	return 0
}

// Elapsed is the simulated time in seconds.
func (s *Session) Elapsed() float64 {
	return float64(s.ticks) * s.timestep
}

func (s *Session) Ticks() uint64          { return s.ticks }
func (s *Session) ID() uuid.UUID          { return s.id }
func (s *Session) Seed() int64            { return s.seed }
func (s *Session) TPS() int               { return s.tps }
func (s *Session) Level() *levels.Level   { return s.level }
func (s *Session) World() *ecs.World      { return s.world }
func (s *Session) Logger() zerolog.Logger { return s.log }
