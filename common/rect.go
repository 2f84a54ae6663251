package common

import "github.com/jakecoffman/cp"

// Rect is an axis-aligned box in screen space. Y grows downward, so BB.B is
// the top edge and BB.T the bottom one.
type Rect struct {
	cp.BB
}

// NewRect builds a rect from its top-left corner and size.
func NewRect(x, y, width, height float64) Rect {
	return Rect{cp.BB{L: x, B: y, R: x + width, T: y + height}}
}

// RectFromCenter builds the collider of an entity centered at pos with the
// given half extents.
func RectFromCenter(pos, half cp.Vector) Rect {
	return Rect{cp.NewBBForExtents(pos, half.X, half.Y)}
}

// Intersects reports strict overlap. Rectangles that only share an edge do
// not intersect, unlike cp.BB.Intersects.
func (r Rect) Intersects(other Rect) bool {
	return r.L < other.R && r.R > other.L && r.B < other.T && r.T > other.B
}

func (r Rect) Left() float64   { return r.L }
func (r Rect) Right() float64  { return r.R }
func (r Rect) Top() float64    { return r.B }
func (r Rect) Bottom() float64 { return r.T }
func (r Rect) Width() float64  { return r.R - r.L }
func (r Rect) Height() float64 { return r.T - r.B }
