package component

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/hakenslash/common"
)

// Body is an axis-aligned box centered on Position.
type Body struct {
	Position    cp.Vector
	HalfExtents cp.Vector
}

// NewBody clamps negative extents to zero.
func NewBody(pos, half cp.Vector) *Body {
	if half.X < 0 {
		half.X = 0
	}
	if half.Y < 0 {
		half.Y = 0
	}
	return &Body{Position: pos, HalfExtents: half}
}

// Rect returns the collider in world space.
func (b *Body) Rect() common.Rect {
	return common.RectFromCenter(b.Position, b.HalfExtents)
}

func (b *Body) Top() float64    { return b.Position.Y - b.HalfExtents.Y }
func (b *Body) Bottom() float64 { return b.Position.Y + b.HalfExtents.Y }
func (b *Body) Left() float64   { return b.Position.X - b.HalfExtents.X }
func (b *Body) Right() float64  { return b.Position.X + b.HalfExtents.X }

var BodyComponent = NewComponent[Body]("body")

// Velocity is in pixels per tick.
type Velocity struct {
	cp.Vector
}

var VelocityComponent = NewComponent[Velocity]("velocity")
