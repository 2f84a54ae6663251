package main

import (
	"fmt"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/jakecoffman/cp"
	"github.com/rs/zerolog"
	"golang.org/x/image/font/basicfont"

	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/component"
	"github.com/milk9111/hakenslash/ecs/system"
	"github.com/milk9111/hakenslash/levels"
	"github.com/milk9111/hakenslash/metrics"
	"github.com/milk9111/hakenslash/prefabs"
	"github.com/milk9111/hakenslash/session"
)

// maxFrameTime caps the wall-clock time fed to the simulation per frame so a
// stall does not turn into a burst of ticks.
const maxFrameTime = 0.25

type GameConfig struct {
	Level string
	Seed  int64
	TPS   int
	Debug bool
}

type Game struct {
	cfg       GameConfig
	log       zerolog.Logger
	collector *metrics.Collector
	watcher   *prefabs.Watcher

	table   *component.CoefficientTable
	scripts *system.RoamScripts
	sess    *session.Session
	input   *Input
	camera  *Camera
	face    text.Face

	last    time.Time
	paused  bool
	over    bool
	restart bool
	ui      *ebitenui.UI
}

func NewGame(cfg GameConfig, log zerolog.Logger, collector *metrics.Collector, watcher *prefabs.Watcher) (*Game, error) {
	g := &Game{
		cfg:       cfg,
		log:       log,
		collector: collector,
		watcher:   watcher,
		table:     component.NewCoefficientTable(),
		scripts:   system.NewRoamScripts(nil),
		input:     NewInput(),
		face:      text.NewGoXFace(basicfont.Face7x13),
	}
	if err := g.newSession(); err != nil {
		return nil, err
	}
	return g, nil
}

// newSession loads the level and prefabs from scratch and replaces the
// running session only when everything loads.
func (g *Game) newSession() error {
	props, err := prefabs.LoadProperties(g.cfg.TPS)
	if err != nil {
		return err
	}
	lvl, err := levels.Load(g.cfg.Level)
	if err != nil {
		return err
	}
	roster, err := prefabs.LoadRoster()
	if err != nil {
		return err
	}
	fsm, err := loadFSM()
	if err != nil {
		return err
	}

	sess, err := session.New(props, lvl, roster,
		session.WithLogger(g.log),
		session.WithSeed(g.cfg.Seed),
		session.WithTPS(g.cfg.TPS),
		session.WithFSM(fsm),
		session.WithScripts(g.scripts),
		session.WithCoefficientTable(g.table),
	)
	if err != nil {
		return err
	}
	if g.collector != nil {
		g.collector.Attach(sess)
	}
	// The camera steps with the simulation so it follows the player's
	// position at every tick, not just the last one of a frame.
	sess.OnTick(func(uint64) {
		props := sess.Properties()
		g.camera.Update(sess.PlayerPosition(), props.CamUpperLeft, props.CamLowerRight, props.CamDrift)
	})

	bounds := lvl.Bounds.Rect()
	g.sess = sess
	g.camera = NewCamera(common.BaseWidth, common.BaseHeight, bounds, cp.Vector{X: lvl.PlayerSpawn.X, Y: lvl.PlayerSpawn.Y})
	g.last = time.Time{}
	g.paused = false
	g.over = false
	g.ui = nil
	return nil
}

func loadFSM() (*system.FSMDef, error) {
	spec, err := prefabs.LoadFSMSpec("melee_fsm.yaml")
	if err != nil {
		return nil, err
	}
	return system.CompileFSM(spec)
}

func (g *Game) Update() error {
	g.applyChanges()

	if g.restart {
		g.restart = false
		if err := g.newSession(); err != nil {
			g.log.Error().Err(err).Msg("restart")
		}
	}

	if !g.over && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
		if g.paused {
			g.ui = NewPauseUI(g, "Paused", true)
		}
	}

	if g.paused || g.over {
		g.last = time.Time{}
		if g.ui != nil {
			g.ui.Update()
		}
		return nil
	}

	now := time.Now()
	elapsed := 0.0
	if !g.last.IsZero() {
		elapsed = min(now.Sub(g.last).Seconds(), maxFrameTime)
	}
	g.last = now

	g.sess.Advance(elapsed, g.input.Poll())

	if g.sess.PlayerDead() {
		g.over = true
		g.ui = NewPauseUI(g, fmt.Sprintf("Game over - %d kills in %.0fs", g.sess.Kills(), g.sess.Elapsed()), false)
	}
	return nil
}

// applyChanges drains the watcher and reloads whatever changed.
func (g *Game) applyChanges() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case change, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.apply(change)
		case err, ok := <-g.watcher.Errors:
			if ok {
				g.log.Warn().Err(err).Msg("watch")
			}
		default:
			return
		}
	}
}

func (g *Game) apply(change prefabs.Change) {
	log := g.log.With().Str("path", change.Path).Str("kind", change.Kind.String()).Logger()

	switch change.Kind {
	case prefabs.ChangeProperties:
		props, err := prefabs.LoadProperties(g.cfg.TPS)
		if err != nil {
			log.Error().Err(err).Msg("reload properties")
			return
		}
		g.sess.SetProperties(props)
	case prefabs.ChangeFSM:
		fsm, err := loadFSM()
		if err != nil {
			log.Error().Err(err).Msg("reload fsm")
			return
		}
		g.sess.SetFSM(fsm)
	case prefabs.ChangeScript:
		g.sess.ReloadScripts()
	case prefabs.ChangeRoster, prefabs.ChangeLevel:
		if err := g.newSession(); err != nil {
			log.Error().Err(err).Msg("reload level")
			return
		}
		log.Info().Msg("session restarted")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	snap := g.sess.Snapshot()
	drawWorld(screen, snap, g.camera.ViewTopLeft(), g.cfg.Debug)
	g.drawHUD(screen, snap)

	if (g.paused || g.over) && g.ui != nil {
		g.ui.Draw(screen)
	}
}

func (g *Game) drawHUD(screen *ebiten.Image, snap session.Snapshot) {
	lines := []string{
		fmt.Sprintf("Health: %d/%d", snap.Player.Health, snap.Player.MaxHealth),
		fmt.Sprintf("Kills: %d", snap.Player.Kills),
		fmt.Sprintf("Time: %.1fs", snap.Elapsed),
	}
	if g.cfg.Debug {
		lines = append(lines,
			fmt.Sprintf("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()),
			fmt.Sprintf("Enemies: %d melee, %d ranged  Bullets: %d", len(snap.Melee), len(snap.Ranged), len(snap.Bullets)),
		)
	}

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(10, float64(10+i*16))
		text.Draw(screen, line, g.face, op)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
