package main

import (
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/system"
	"github.com/milk9111/hakenslash/levels"
	"github.com/milk9111/hakenslash/prefabs"
	"github.com/milk9111/hakenslash/session"
)

type summary struct {
	Ticks       uint64
	Elapsed     float64
	Kills       int
	Health      int
	Dead        bool
	Bullets     int
	Deflects    int
	PlayerHits  int
	Escalations int
}

func main() {
	ticks := flag.Int("ticks", 3600, "ticks to simulate")
	seed := flag.Int64("seed", 1, "rng seed")
	script := flag.String("script", "R*90,RJ*20,A,-*30,L*90,LJ*20,A,-*30", "looping input pattern")
	levelName := flag.String("level", "level1", "level name in levels/")
	tps := flag.Int("tps", common.TargetTPS, "simulation ticks per second")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if *verbose {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	s, err := run(log, *levelName, *seed, *tps)
	if err != nil {
		log.Fatal().Err(err).Msg("build session")
	}
	pattern, err := ParsePattern(*script)
	if err != nil {
		log.Fatal().Err(err).Msg("parse script")
	}

	var sum summary
	s.Subscribe(func(evt ecs.Event) {
		switch evt.Type {
		case ecs.EventProjectileSpawn:
			sum.Bullets++
		case ecs.EventDeflect:
			sum.Deflects++
		case ecs.EventPlayerHit:
			sum.PlayerHits++
		case ecs.EventEscalation:
			sum.Escalations++
		}
	})

	start := time.Now()
	for i := 0; i < *ticks && !s.PlayerDead(); i++ {
		s.Tick(pattern.Next())
	}

	snap := s.Snapshot()
	sum.Ticks = s.Ticks()
	sum.Elapsed = s.Elapsed()
	sum.Kills = s.Kills()
	sum.Health = snap.Player.Health
	sum.Dead = s.PlayerDead()

	log.Info().
		Str("session", s.ID().String()).
		Int64("seed", s.Seed()).
		Dur("wall", time.Since(start)).
		Uint64("ticks", sum.Ticks).
		Float64("elapsed", sum.Elapsed).
		Int("kills", sum.Kills).
		Int("health", sum.Health).
		Bool("dead", sum.Dead).
		Int("bullets", sum.Bullets).
		Int("deflects", sum.Deflects).
		Int("player_hits", sum.PlayerHits).
		Int("escalations", sum.Escalations).
		Msg("summary")
}

func run(log zerolog.Logger, levelName string, seed int64, tps int) (*session.Session, error) {
	props, err := prefabs.LoadProperties(tps)
	if err != nil {
		return nil, err
	}
	lvl, err := levels.Load(levelName)
	if err != nil {
		return nil, err
	}
	roster, err := prefabs.LoadRoster()
	if err != nil {
		return nil, err
	}
	spec, err := prefabs.LoadFSMSpec("melee_fsm.yaml")
	if err != nil {
		return nil, err
	}
	fsm, err := system.CompileFSM(spec)
	if err != nil {
		return nil, err
	}

	return session.New(props, lvl, roster,
		session.WithLogger(log),
		session.WithSeed(seed),
		session.WithTPS(tps),
		session.WithFSM(fsm),
	)
}
