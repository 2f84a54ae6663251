package main

import (
	"flag"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/metrics"
	"github.com/milk9111/hakenslash/prefabs"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging and overlays")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "level1", "level name in levels/ (basename, .json optional)")
	seed := flag.Int64("seed", 0, "rng seed (0 picks one from the clock)")
	watch := flag.Bool("watch", false, "hot reload prefabs/ and levels/ on change")
	metricsAddr := flag.String("metrics", "", "serve prometheus metrics on this address, e.g. :2112")
	tps := flag.Int("tps", common.TargetTPS, "simulation ticks per second")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	if *debug {
		log = log.Level(zerolog.DebugLevel)
	} else {
		log = log.Level(zerolog.InfoLevel)
	}

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	var collector *metrics.Collector
	if *metricsAddr != "" {
		c, err := metrics.NewCollector(prometheus.DefaultRegisterer)
		if err != nil {
			log.Fatal().Err(err).Msg("register metrics")
		}
		collector = c
		metrics.Serve(*metricsAddr, log)
	}

	var watcher *prefabs.Watcher
	if *watch {
		w, err := prefabs.NewWatcher(existingDirs(append(prefabs.WatchDirs(), "levels")...)...)
		if err != nil {
			log.Fatal().Err(err).Msg("watch prefabs")
		}
		defer w.Close()
		watcher = w
	}

	game, err := NewGame(GameConfig{
		Level: *levelName,
		Seed:  *seed,
		TPS:   *tps,
		Debug: *debug,
	}, log, collector, watcher)
	if err != nil {
		log.Fatal().Err(err).Str("level", *levelName).Msg("load game")
	}

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("hakenslash")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal().Err(err).Msg("run game")
	}
}

func existingDirs(dirs ...string) []string {
	var out []string
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			out = append(out, d)
		}
	}
	return out
}
