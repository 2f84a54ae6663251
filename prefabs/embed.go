package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed *.yaml scripts/*.tengo
var files embed.FS

// DiskDir is checked before the embedded copy so edits made while the game
// runs are picked up on reload.
var DiskDir = "prefabs"

// Load returns a yaml file such as properties.yaml or roster.yaml.
func Load(name string) ([]byte, error) {
	return read(trimRoot(name))
}

// LoadScript returns a roam script; name may be bare ("roam.tengo") or
// rooted at prefabs/ or scripts/.
func LoadScript(name string) ([]byte, error) {
	return read(path.Join("scripts", strings.TrimPrefix(trimRoot(name), "scripts/")))
}

// WatchDirs lists the on-disk directories Load and LoadScript read from.
func WatchDirs() []string {
	return []string{DiskDir, filepath.Join(DiskDir, "scripts")}
}

func read(rel string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(DiskDir, filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return files.ReadFile(rel)
}

func trimRoot(name string) string {
	return strings.TrimPrefix(filepath.ToSlash(name), "prefabs/")
}
