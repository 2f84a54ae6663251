package system

import (
	"errors"
	"testing"

	"github.com/milk9111/hakenslash/ecs/component"
)

func TestBundledRoamScript(t *testing.T) {
	scripts := NewRoamScripts(nil)

	cases := []struct {
		name string
		in   RoamInput
		want component.Direction
	}{
		{"turns at wall", RoamInput{Heading: component.DirRight, Wall: true, Tick: 1, Roll: 0.5}, component.DirLeft},
		{"heads toward player on schedule", RoamInput{Heading: component.DirLeft, X: 100, PlayerX: 500, Tick: 240, Roll: 0.5}, component.DirRight},
		{"heads left toward player", RoamInput{Heading: component.DirRight, X: 500, PlayerX: 100, Tick: 120, Roll: 0.5}, component.DirLeft},
		{"keeps heading", RoamInput{Heading: component.DirRight, Tick: 7, Roll: 0.5}, component.DirRight},
		{"random turn", RoamInput{Heading: component.DirRight, Tick: 7, Roll: 0.001}, component.DirLeft},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := scripts.Heading("roam.tengo", c.in)
			if err != nil {
				t.Fatalf("heading: %v", err)
			}
			if got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
		})
	}
}

func TestRoamScriptZeroKeepsHeading(t *testing.T) {
	scripts := NewRoamScripts(func(string) ([]byte, error) {
		return []byte(`heading = 0`), nil
	})
	got, err := scripts.Heading("zero.tengo", RoamInput{Heading: component.DirLeft})
	if err != nil {
		t.Fatalf("heading: %v", err)
	}
	if got != component.DirLeft {
		t.Fatalf("expected left, got %v", got)
	}
}

func TestRoamScriptErrors(t *testing.T) {
	errMissing := errors.New("missing")
	scripts := NewRoamScripts(func(name string) ([]byte, error) {
		switch name {
		case "broken.tengo":
			return []byte(`heading = (`), nil
		case "panic.tengo":
			return []byte(`heading = 1 / 0`), nil
		}
		return nil, errMissing
	})

	if _, err := scripts.Heading("nope.tengo", RoamInput{}); !errors.Is(err, errMissing) {
		t.Fatalf("expected load error, got %v", err)
	}
	if _, err := scripts.Heading("broken.tengo", RoamInput{}); err == nil {
		t.Fatalf("expected compile error")
	}
	if _, err := scripts.Heading("panic.tengo", RoamInput{}); err == nil {
		t.Fatalf("expected runtime error")
	}
	if _, err := scripts.Heading("", RoamInput{}); err == nil {
		t.Fatalf("expected error for empty name")
	}

	var nilScripts *RoamScripts
	if got, err := nilScripts.Heading("roam.tengo", RoamInput{Heading: component.DirRight}); err == nil || got != component.DirRight {
		t.Fatalf("expected error and unchanged heading, got %v %v", got, err)
	}
}

func TestRoamScriptReload(t *testing.T) {
	src := `heading = 1`
	loads := 0
	scripts := NewRoamScripts(func(string) ([]byte, error) {
		loads++
		return []byte(src), nil
	})

	if got, _ := scripts.Heading("s.tengo", RoamInput{Heading: component.DirLeft}); got != component.DirRight {
		t.Fatalf("expected right, got %v", got)
	}
	if _, err := scripts.Heading("s.tengo", RoamInput{}); err != nil || loads != 1 {
		t.Fatalf("expected compiled script reused, loads=%d err=%v", loads, err)
	}

	src = `heading = -1`
	scripts.Reload()
	if got, _ := scripts.Heading("s.tengo", RoamInput{Heading: component.DirRight}); got != component.DirLeft {
		t.Fatalf("expected left after reload, got %v", got)
	}
	if loads != 2 {
		t.Fatalf("expected reload to read the source again, loads=%d", loads)
	}
}
