package system

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/hakenslash/common"
	"github.com/milk9111/hakenslash/ecs"
	"github.com/milk9111/hakenslash/ecs/component"
)

// ledgeSensorSize is the edge length of the squares cast below a patrolling
// enemy's bottom corners.
const ledgeSensorSize = 10

// ObstacleRef is a read-only view of an obstacle for collision scans.
type ObstacleRef struct {
	Entity ecs.Entity
	Kind   component.ObstacleKind
	Rect   common.Rect
}

// ObstacleRefs snapshots every obstacle in level order.
func ObstacleRefs(w *ecs.World) []ObstacleRef {
	var out []ObstacleRef
	ecs.ForEach2(w, component.ObstacleComponent.Kind(), component.BodyComponent.Kind(), func(e ecs.Entity, o *component.Obstacle, b *component.Body) {
		out = append(out, ObstacleRef{Entity: e, Kind: o.Kind, Rect: b.Rect()})
	})
	return out
}

// HorizontalParams configures MoveHorizontal for one mover profile.
type HorizontalParams struct {
	Accel    float64
	Opposite float64
	Air      float64
	Friction float64
	Min      float64
	Cap      float64
	// AirControl scales acceleration by Air while vertical velocity is non-zero.
	AirControl bool
	// SnapToZero zeroes speeds at or below Min.
	SnapToZero bool
}

// PlayerHorizontal is the player's movement profile.
func PlayerHorizontal(p *common.Properties) HorizontalParams {
	return HorizontalParams{
		Accel:      p.HAccel,
		Opposite:   p.HOpposite,
		Air:        p.HAir,
		Friction:   p.HCoeff,
		Min:        p.HVelMin,
		Cap:        p.HVelMax,
		AirControl: true,
		SnapToZero: true,
	}
}

// RangedHorizontal is the ranged enemy's movement profile.
func RangedHorizontal(p *common.Properties) HorizontalParams {
	return HorizontalParams{
		Accel:      p.HAccel,
		Opposite:   p.HOpposite,
		Air:        1,
		Friction:   p.HCoeff,
		Min:        p.HVelMin,
		Cap:        p.HVelMax,
		SnapToZero: true,
	}
}

// MeleeHorizontal is the melee enemy's movement profile. The speed modifier
// raises the cap; melee movers never snap small speeds to zero.
func MeleeHorizontal(p *common.Properties, speedModifier float64) HorizontalParams {
	return HorizontalParams{
		Accel:    p.HAccel,
		Opposite: p.HOpposite,
		Air:      1,
		Friction: p.HCoeff,
		Min:      p.HVelMin,
		Cap:      p.HVelMax * (1 + speedModifier),
	}
}

// VerticalParams configures MoveVertical.
type VerticalParams struct {
	Gravity float64
	MaxFall float64
}

func Vertical(p *common.Properties) VerticalParams {
	return VerticalParams{Gravity: p.Gravity, MaxFall: p.VVelMax}
}

// MoveHorizontal applies intent to vel.X and returns the displacement for
// this tick.
func MoveHorizontal(vel *cp.Vector, intent component.Direction, p HorizontalParams) float64 {
	air := 1.0
	if p.AirControl && vel.Y != 0 {
		air = p.Air
	}

	switch intent {
	case component.DirLeft:
		if vel.X > 0 {
			vel.X -= p.Accel * p.Opposite * air
		} else {
			vel.X -= p.Accel * air
		}
	case component.DirRight:
		if vel.X < 0 {
			vel.X += p.Accel * p.Opposite * air
		} else {
			vel.X += p.Accel * air
		}
	default:
		vel.X *= p.Friction
	}

	vel.X = common.Clamp(vel.X, -p.Cap, p.Cap)
	if p.SnapToZero && math.Abs(vel.X) <= p.Min {
		vel.X = 0
	}
	return vel.X
}

// MoveVertical applies gravity, caps the fall speed and returns the
// displacement for this tick. Upward speed is not capped.
func MoveVertical(vel *cp.Vector, p VerticalParams) float64 {
	vel.Y += p.Gravity
	if vel.Y > p.MaxFall {
		vel.Y = p.MaxFall
	}
	return vel.Y
}

// CollideHorizontal resolves body against the first intersecting obstacle.
// Static obstacles snap the body to the edge it moved into; moving ones push
// it back by gap. Velocity is left to the caller.
func CollideHorizontal(body *component.Body, vel *cp.Vector, obstacles []ObstacleRef, gap float64) bool {
	r := body.Rect()
	for _, o := range obstacles {
		if !r.Intersects(o.Rect) {
			continue
		}
		if o.Kind == component.ObstacleStatic {
			if vel.X > 0 {
				body.Position.X = o.Rect.Left() - body.HalfExtents.X - gap
			} else {
				body.Position.X = o.Rect.Right() + body.HalfExtents.X + gap
			}
		} else {
			if vel.X > 0 {
				body.Position.X -= gap
			} else {
				body.Position.X += gap
			}
		}
		return true
	}
	return false
}

// CollideVertical resolves body against the first intersecting obstacle.
// Falling onto a surface zeroes vel.Y and reports landed; hitting a ceiling
// reverses vel.Y.
func CollideVertical(body *component.Body, vel *cp.Vector, obstacles []ObstacleRef, gap float64) (hit, landed bool) {
	r := body.Rect()
	for _, o := range obstacles {
		if !r.Intersects(o.Rect) {
			continue
		}
		if o.Kind == component.ObstacleStatic {
			if vel.Y > 0 {
				body.Position.Y = o.Rect.Top() - body.HalfExtents.Y - gap
			} else {
				body.Position.Y = o.Rect.Bottom() + body.HalfExtents.Y + gap
			}
		} else {
			body.Position.Y = o.Rect.Top() - body.HalfExtents.Y
		}

		if vel.Y >= 0 {
			vel.Y = 0
			return true, true
		}
		vel.Y = -vel.Y
		return true, false
	}
	return false, false
}

// LedgeSensors returns the squares just below and outside the body's bottom
// corners.
func LedgeSensors(body *component.Body) (left, right common.Rect) {
	left = common.NewRect(body.Left()-ledgeSensorSize, body.Bottom(), ledgeSensorSize, ledgeSensorSize)
	right = common.NewRect(body.Right(), body.Bottom(), ledgeSensorSize, ledgeSensorSize)
	return left, right
}

// HasLedgeSupport reports whether both sensors rest on some obstacle.
func HasLedgeSupport(body *component.Body, obstacles []ObstacleRef) bool {
	left, right := LedgeSensors(body)
	if !anyIntersects(left, obstacles) {
		return false
	}
	return anyIntersects(right, obstacles)
}

func anyIntersects(r common.Rect, obstacles []ObstacleRef) bool {
	for _, o := range obstacles {
		if r.Intersects(o.Rect) {
			return true
		}
	}
	return false
}
