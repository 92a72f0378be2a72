package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
)

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is the on-disk prefab directory checked before the embedded copy.
const Dir = "prefabs"

// Load returns the named prefab, preferring an on-disk copy so layouts can be
// edited without a rebuild.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if data, err := os.ReadFile(diskPrefabPath(clean)); err == nil {
		return data, nil
	}
	return PrefabsFS.ReadFile(clean)
}

// OnDisk reports whether the prefab directory exists next to the binary's
// working directory.
func OnDisk() bool {
	info, err := os.Stat(Dir)
	return err == nil && info.IsDir()
}

// Matches reports whether path refers to the named prefab.
func Matches(path, name string) bool {
	return filepath.Base(filepath.ToSlash(path)) == cleanPrefabPath(name)
}

func cleanPrefabPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	if after, ok := strings.CutPrefix(s, Dir+"/"); ok {
		return after
	}
	return s
}

func diskPrefabPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
