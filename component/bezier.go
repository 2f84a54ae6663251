package component

import (
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/jakecoffman/cp"
)

// DefaultCurveSteps is the number of samples taken along a curve when none is given.
const DefaultCurveSteps = 50

var (
	ErrInvalidCurveOrder        = errors.New("curve order must be a positive integer")
	ErrInvalidControlPointCount = errors.New("control point count does not fit curve order")
)

// CoefficientTable memoizes rows of Pascal's triangle. Rows are only ever
// appended; a row that has been computed once is never computed again.
type CoefficientTable struct {
	mu   sync.Mutex
	rows [][]float64
}

func NewCoefficientTable() *CoefficientTable {
	return &CoefficientTable{rows: [][]float64{{1}, {1, 1}}}
}

// Row returns the binomial coefficients C(order, 0..order). The returned
// slice is shared with the table and must not be modified.
func (t *CoefficientTable) Row(order int) ([]float64, error) {
	if order < 0 {
		return nil, fmt.Errorf("coefficients: order %d: %w", order, ErrInvalidCurveOrder)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	for i := len(t.rows); i <= order; i++ {
		prev := t.rows[i-1]
		row := make([]float64, i+1)
		row[0], row[i] = 1, 1
		for j := 1; j < i; j++ {
			row[j] = prev[j-1] + prev[j]
		}
		t.rows = append(t.rows, row)
	}
	return t.rows[order], nil
}

// Rows reports how many rows the table currently holds.
func (t *CoefficientTable) Rows() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.rows)
}

// ValidateControlPointCount reports whether count control points decompose
// into order-sized segments that share their endpoints.
func ValidateControlPointCount(order, count int) bool {
	if order <= 0 {
		return false
	}
	return count > order && (count-1)%order == 0
}

// PointOnCurve evaluates the Bezier curve of degree len(points)-1 at t.
// coeffs must be the coefficient row for that degree.
func PointOnCurve(points []cp.Vector, t float64, coeffs []float64) cp.Vector {
	var out cp.Vector
	n := len(points) - 1
	for i, p := range points {
		w := coeffs[i] * math.Pow(1-t, float64(n-i)) * math.Pow(t, float64(i))
		out.X += w * p.X
		out.Y += w * p.Y
	}
	return out
}

// CurvePath is the immutable waypoint sequence sampled from a piecewise
// Bezier curve.
type CurvePath struct {
	order     int
	steps     int
	points    []cp.Vector
	waypoints []cp.Vector
}

// NewCurvePath samples the curve through points at steps equally spaced
// parameters and appends the final control point. Consecutive segments of
// order+1 points share their endpoints.
func NewCurvePath(table *CoefficientTable, order int, points []cp.Vector, steps int) (*CurvePath, error) {
	if order <= 0 {
		return nil, fmt.Errorf("curve: order %d: %w", order, ErrInvalidCurveOrder)
	}
	if !ValidateControlPointCount(order, len(points)) {
		return nil, fmt.Errorf("curve: %d points for order %d: %w", len(points), order, ErrInvalidControlPointCount)
	}
	if steps <= 0 {
		steps = DefaultCurveSteps
	}
	if table == nil {
		table = NewCoefficientTable()
	}

	coeffs, err := table.Row(order)
	if err != nil {
		return nil, fmt.Errorf("curve: %w", err)
	}

	c := &CurvePath{
		order:     order,
		steps:     steps,
		points:    append([]cp.Vector(nil), points...),
		waypoints: make([]cp.Vector, 0, steps+1),
	}

	segments := (len(points) - 1) / order
	for i := 0; i < steps; i++ {
		s := float64(i) / float64(steps) * float64(segments)
		seg := int(s)
		if seg >= segments {
			seg = segments - 1
		}
		start := seg * order
		c.waypoints = append(c.waypoints, PointOnCurve(c.points[start:start+order+1], s-float64(seg), coeffs))
	}
	c.waypoints = append(c.waypoints, c.points[len(c.points)-1])

	return c, nil
}

func (c *CurvePath) Order() int { return c.order }

func (c *CurvePath) Steps() int { return c.steps }

// ControlPoints returns a copy of the control points.
func (c *CurvePath) ControlPoints() []cp.Vector {
	return append([]cp.Vector(nil), c.points...)
}

// Waypoints returns a copy of the sampled waypoints.
func (c *CurvePath) Waypoints() []cp.Vector {
	return append([]cp.Vector(nil), c.waypoints...)
}

func (c *CurvePath) Len() int {
	if c == nil {
		return 0
	}
	return len(c.waypoints)
}

func (c *CurvePath) At(i int) cp.Vector {
	return c.waypoints[i]
}

func (c *CurvePath) Start() cp.Vector {
	return c.waypoints[0]
}

func (c *CurvePath) End() cp.Vector {
	return c.waypoints[len(c.waypoints)-1]
}
