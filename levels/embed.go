package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/milk9111/hakenslash/common"
)

//go:embed *.json
var LevelsFS embed.FS

var ErrInvalidLevel = errors.New("invalid level")

// Level describes the static and moving geometry of one stage.
type Level struct {
	Name            string           `json:"name,omitempty"`
	PlayerSpawn     Point            `json:"player_spawn"`
	Bounds          Bounds           `json:"bounds"`
	StaticObstacles []StaticObstacle `json:"static_obstacles"`
	MovingObstacles []MovingObstacle `json:"moving_obstacles,omitempty"`
}

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (b Bounds) Rect() common.Rect {
	return common.NewRect(b.X, b.Y, b.Width, b.Height)
}

// StaticObstacle is a fixed box centered at X,Y.
type StaticObstacle struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	HalfW float64 `json:"half_w"`
	HalfH float64 `json:"half_h"`
}

// MovingObstacle follows a Bezier path through Points. The first point is
// its spawn. Steps of zero uses the curve default.
type MovingObstacle struct {
	HalfW  float64 `json:"half_w"`
	HalfH  float64 `json:"half_h"`
	Order  int     `json:"order"`
	Steps  int     `json:"steps,omitempty"`
	Points []Point `json:"points"`
}

// Parse decodes and validates a level. Curve order and control point
// counts are checked when the path is built.
func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("levels: unmarshal level: %w: %v", ErrInvalidLevel, err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, err
	}
	return &lvl, nil
}

func (l *Level) Validate() error {
	if l.Bounds.Width <= 0 || l.Bounds.Height <= 0 {
		return fmt.Errorf("levels: bounds %vx%v: %w", l.Bounds.Width, l.Bounds.Height, ErrInvalidLevel)
	}
	for i, o := range l.StaticObstacles {
		if o.HalfW < 0 || o.HalfH < 0 {
			return fmt.Errorf("levels: static obstacle %d has negative extents: %w", i, ErrInvalidLevel)
		}
	}
	for i, o := range l.MovingObstacles {
		if o.HalfW < 0 || o.HalfH < 0 {
			return fmt.Errorf("levels: moving obstacle %d has negative extents: %w", i, ErrInvalidLevel)
		}
		if len(o.Points) < 2 {
			return fmt.Errorf("levels: moving obstacle %d needs at least 2 points: %w", i, ErrInvalidLevel)
		}
		if o.Steps < 0 {
			return fmt.Errorf("levels: moving obstacle %d has negative steps: %w", i, ErrInvalidLevel)
		}
	}
	return nil
}

// Load reads a level from levels/ on disk when present, otherwise from the
// embedded copy.
func Load(name string) (*Level, error) {
	clean := cleanLevelPath(name)
	data, err := os.ReadFile(filepath.Join("levels", filepath.FromSlash(clean)))
	if err != nil {
		data, err = fs.ReadFile(LevelsFS, clean)
		if err != nil {
			return nil, fmt.Errorf("levels: read level %s: %w", name, err)
		}
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("levels: %s: %w", name, err)
	}
	if lvl.Name == "" {
		lvl.Name = strings.TrimSuffix(clean, ".json")
	}
	return lvl, nil
}

// List returns the embedded level names.
func List() ([]string, error) {
	entries, err := fs.ReadDir(LevelsFS, ".")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

func cleanLevelPath(name string) string {
	s := filepath.ToSlash(name)
	s = strings.TrimPrefix(s, "levels/")
	if !strings.HasSuffix(s, ".json") {
		s += ".json"
	}
	return s
}
