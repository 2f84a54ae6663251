package prefabs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/hakenslash/common"
)

func TestLoadPropertiesConvertsPerSecondValues(t *testing.T) {
	p, err := LoadProperties(60)
	require.NoError(t, err)

	assert.InDelta(t, 0.5, p.HAccel, 1e-9)
	assert.InDelta(t, 5, p.HVelMax, 1e-9)
	assert.InDelta(t, 0.5, p.Gravity, 1e-9)
	assert.InDelta(t, -4, p.VAccel, 1e-9)
	assert.InDelta(t, -3, p.VVelCut, 1e-9)
	assert.InDelta(t, 12, p.VVelMax, 1e-9)
	assert.InDelta(t, 2, p.CamDrift, 1e-9)
	assert.InDelta(t, -4, p.Enemy.JumpAccel, 1e-9)

	// Per-tick and unitless values pass through.
	assert.Equal(t, 0.8, p.HCoeff)
	assert.Equal(t, 0.1, p.HVelMin)
	assert.Equal(t, 8.0, p.VHold)
	assert.Equal(t, 0.25, p.Gap)
	assert.Equal(t, -200.0, p.CamUpperLeft.X)
	assert.Equal(t, 150.0, p.CamLowerRight.Y)

	assert.Equal(t, 98, p.Combat.FireRoll)
	assert.Equal(t, 10, p.Combat.EscalationThreshold)
	assert.Equal(t, common.KillRespawn, p.Combat.KillPolicy)
	assert.Equal(t, 1200.0, p.Combat.Bounds.Width())
}

// movementYAML returns every required key set to 1, with overrides applied.
func movementYAML(overrides map[string]string) string {
	var b strings.Builder
	for _, k := range requiredProperties {
		v, ok := overrides[k]
		if !ok {
			v = "1"
		}
		fmt.Fprintf(&b, "%s: %s\n", k, v)
	}
	return b.String()
}

func TestPropertiesScaleWithTickRate(t *testing.T) {
	spec, err := ParseProperties([]byte(movementYAML(map[string]string{"gravity": "30", "max_h_vel": "300"})))
	require.NoError(t, err)

	at30 := spec.Properties(30)
	at120 := spec.Properties(120)
	assert.InDelta(t, 1, at30.Gravity, 1e-9)
	assert.InDelta(t, 0.25, at120.Gravity, 1e-9)
	assert.InDelta(t, 10, at30.HVelMax, 1e-9)

	// Zero falls back to the target rate.
	assert.InDelta(t, 0.5, spec.Properties(0).Gravity, 1e-9)
}

func TestParsePropertiesDefaultsSections(t *testing.T) {
	spec, err := ParseProperties([]byte(movementYAML(nil)))
	require.NoError(t, err)

	p := spec.Properties(60)
	assert.Equal(t, common.DefaultCombat(), p.Combat)
	assert.Equal(t, 20.0, p.Enemy.HalfExtents.X)
	assert.Equal(t, 6, p.Enemy.JumpFrames)
}

func TestParsePropertiesRejectsUnknownKeys(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{name: "top level", yaml: "h_acel: 30\n"},
		{name: "combat", yaml: "combat:\n  fire_chance: 3\n"},
		{name: "enemy", yaml: "enemy:\n  speed: 3\n"},
		{name: "kill policy", yaml: movementYAML(nil) + "combat:\n  kill_policy: vanish\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProperties([]byte(tt.yaml))
			assert.ErrorIs(t, err, ErrUnknownProperty)
		})
	}
}

func TestParsePropertiesRejectsMissingKeys(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		missing string
	}{
		{name: "empty file", yaml: "", missing: "gravity"},
		{name: "half written", yaml: "h_accel: 30\nh_coeff: 0.8\n", missing: "max_h_vel"},
		{name: "one key", yaml: strings.Replace(movementYAML(nil), "gap: 1\n", "", 1), missing: "gap"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseProperties([]byte(tt.yaml))
			require.ErrorIs(t, err, ErrMissingProperty)
			assert.Contains(t, err.Error(), tt.missing)
		})
	}
}

func TestParsePropertiesRejectsBadCamEdges(t *testing.T) {
	_, err := ParseProperties([]byte(movementYAML(nil) + "cam_edges: [1, 2]\n"))
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrMissingProperty)
}

func TestLoadRoster(t *testing.T) {
	roster, err := LoadRoster()
	require.NoError(t, err)

	require.Len(t, roster.Melee.Active, 3)
	assert.Len(t, roster.Melee.Reserve, 6)
	assert.Len(t, roster.Ranged, 2)
	assert.Len(t, roster.EscalationSpawns, 2)
	assert.Equal(t, "script", roster.Melee.Active[2].Roam)
	assert.Equal(t, "roam.tengo", roster.Melee.Active[2].Script)
}

func TestLoadFSMSpec(t *testing.T) {
	spec, err := LoadFSMSpec("melee_fsm.yaml")
	require.NoError(t, err)

	assert.Equal(t, "patrol", spec.Initial)
	assert.Equal(t, "chase", spec.Transitions["patrol"]["player_in_band"])
	assert.Equal(t, "patrol", spec.Transitions["attacking"]["contact_lost"])
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"roam.tengo", "scripts/roam.tengo", "prefabs/scripts/roam.tengo"} {
		data, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(data), "heading")
	}

	_, err := LoadScript("missing.tengo")
	assert.Error(t, err)
}

func TestLoadPrefersDiskCopy(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "roster.yaml"), []byte("edited: true\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "roam.tengo"), []byte("heading := 0"), 0o644))

	prev := DiskDir
	DiskDir = dir
	t.Cleanup(func() { DiskDir = prev })

	data, err := Load("prefabs/roster.yaml")
	require.NoError(t, err)
	assert.Equal(t, "edited: true\n", string(data))

	data, err = LoadScript("roam.tengo")
	require.NoError(t, err)
	assert.Equal(t, "heading := 0", string(data))

	// files missing on disk still come from the embedded copy
	data, err = Load("properties.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "gravity")

	assert.Equal(t, []string{dir, filepath.Join(dir, "scripts")}, WatchDirs())
}

func TestClassify(t *testing.T) {
	tests := map[string]ChangeKind{
		"prefabs/properties.yaml":    ChangeProperties,
		"prefabs/roster.yml":         ChangeRoster,
		"prefabs/melee_fsm.yaml":     ChangeFSM,
		"prefabs/scripts/roam.tengo": ChangeScript,
		"levels/level1.json":         ChangeLevel,
		"prefabs/other.yaml":         ChangeUnknown,
		"README.md":                  ChangeUnknown,
	}
	for path, want := range tests {
		assert.Equal(t, want, Classify(path), path)
	}
}

func TestWatcherReportsChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "properties.yaml")
	require.NoError(t, os.WriteFile(path, []byte("gap: 1\n"), 0o644))

	select {
	case change := <-w.Events:
		assert.Equal(t, ChangeProperties, change.Kind)
		assert.Equal(t, "properties.yaml", filepath.Base(change.Path))
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestWatcherCoalescesBurst(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, "roster.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	require.NoError(t, os.WriteFile(path, []byte("ranged: []\n"), 0o644))

	select {
	case change := <-w.Events:
		assert.Equal(t, ChangeRoster, change.Kind)
		data, err := os.ReadFile(change.Path)
		require.NoError(t, err)
		assert.Equal(t, "ranged: []\n", string(data))
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	select {
	case change := <-w.Events:
		t.Fatalf("burst reported twice: %+v", change)
	case <-time.After(3 * debounce):
	}
}
