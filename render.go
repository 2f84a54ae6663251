package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/ecs/component"
	"github.com/milk9111/hakenslash/session"
)

var (
	staticColor   = colornames.Slategray
	movingColor   = colornames.Steelblue
	playerColor   = colornames.Gold
	weaponColor   = color.RGBA{R: 255, G: 255, B: 255, A: 160}
	meleeColor    = colornames.Crimson
	chaseColor    = colornames.Orangered
	attackColor   = colornames.Darkred
	rangedColor   = colornames.Mediumpurple
	bulletColor   = colornames.Yellow
	deflectColor  = colornames.Lime
	pathColor     = colornames.Lightgrey
	controlColor  = colornames.Orange
	hitboxOutline = color.RGBA{R: 255, G: 0, B: 0, A: 200}
)

func drawWorld(screen *ebiten.Image, snap session.Snapshot, cam cp.Vector, debug bool) {
	screen.Fill(colornames.Midnightblue)

	for _, o := range snap.Obstacles {
		clr := staticColor
		if o.Moving {
			clr = movingColor
		}
		fillRect(screen, o.Rect, cam, clr)
		if debug && len(o.Path) > 1 {
			drawPath(screen, o.Path, cam)
			for _, c := range o.Controls {
				strokeRect(screen, common.RectFromCenter(c, cp.Vector{X: 3, Y: 3}), cam, controlColor)
			}
		}
	}

	for _, m := range snap.Melee {
		clr := meleeColor
		switch m.State {
		case component.StateChase:
			clr = chaseColor
		case component.StateAttacking:
			clr = attackColor
		}
		fillRect(screen, m.Rect, cam, clr)
	}
	for _, r := range snap.Ranged {
		fillRect(screen, r.Rect, cam, rangedColor)
	}
	for _, b := range snap.Bullets {
		clr := bulletColor
		if b.Deflected {
			clr = deflectColor
		}
		fillRect(screen, b.Rect, cam, clr)
	}

	if !snap.Player.Dead {
		fillRect(screen, snap.Player.Rect, cam, playerColor)
	}
	if snap.Weapon.Swinging {
		fillRect(screen, snap.Weapon.Rect, cam, weaponColor)
	}
	if snap.Weapon.ShowHitbox || debug {
		strokeRect(screen, snap.Weapon.Rect, cam, hitboxOutline)
	}
}

func fillRect(screen *ebiten.Image, r common.Rect, cam cp.Vector, clr color.Color) {
	vector.FillRect(screen, float32(r.Left()-cam.X), float32(r.Top()-cam.Y), float32(r.Width()), float32(r.Height()), clr, false)
}

func strokeRect(screen *ebiten.Image, r common.Rect, cam cp.Vector, clr color.Color) {
	vector.StrokeRect(screen, float32(r.Left()-cam.X), float32(r.Top()-cam.Y), float32(r.Width()), float32(r.Height()), 1.0, clr, false)
}

func drawPath(screen *ebiten.Image, path []cp.Vector, cam cp.Vector) {
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		vector.StrokeLine(screen, float32(a.X-cam.X), float32(a.Y-cam.Y), float32(b.X-cam.X), float32(b.Y-cam.Y), 1, pathColor, true)
	}
}
