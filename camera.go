package main

import (
	"math"

	"github.com/jakecoffman/cp"

	"github.com/milk9111/hakenslash/common"
)

// Camera keeps the player inside a dead zone around the view center and
// drifts toward it at a capped speed once the player leaves it.
type Camera struct {
	Pos cp.Vector

	screenW float64
	screenH float64
	bounds  common.Rect
}

func NewCamera(screenW, screenH int, bounds common.Rect, start cp.Vector) *Camera {
	c := &Camera{screenW: float64(screenW), screenH: float64(screenH), bounds: bounds, Pos: start}
	c.clampToBounds()
	return c
}

// Update moves the camera toward target. upperLeft and lowerRight are the
// dead-zone corners relative to the view center; drift is the most the
// camera moves per call on each axis.
func (c *Camera) Update(target, upperLeft, lowerRight cp.Vector, drift float64) {
	off := target.Sub(c.Pos)
	c.Pos.X += follow(off.X, upperLeft.X, lowerRight.X, drift)
	c.Pos.Y += follow(off.Y, upperLeft.Y, lowerRight.Y, drift)
	c.clampToBounds()
}

func follow(off, lo, hi, drift float64) float64 {
	var excess float64
	switch {
	case off < lo:
		excess = off - lo
	case off > hi:
		excess = off - hi
	default:
		return 0
	}
	if drift <= 0 {
		return excess
	}
	return common.Clamp(excess, -drift, drift)
}

func (c *Camera) clampToBounds() {
	if c.bounds.Width() <= 0 || c.bounds.Height() <= 0 {
		return
	}
	halfW, halfH := c.screenW/2, c.screenH/2
	if c.bounds.Width() <= c.screenW {
		c.Pos.X = c.bounds.Center().X
	} else {
		c.Pos.X = common.Clamp(c.Pos.X, c.bounds.Left()+halfW, c.bounds.Right()-halfW)
	}
	if c.bounds.Height() <= c.screenH {
		c.Pos.Y = c.bounds.Center().Y
	} else {
		c.Pos.Y = common.Clamp(c.Pos.Y, c.bounds.Top()+halfH, c.bounds.Bottom()-halfH)
	}
}

// ViewTopLeft returns the world-space top-left of the view, snapped to whole
// pixels.
func (c *Camera) ViewTopLeft() cp.Vector {
	return cp.Vector{X: math.Round(c.Pos.X - c.screenW/2), Y: math.Round(c.Pos.Y - c.screenH/2)}
}
